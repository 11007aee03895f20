package definition

import (
	"fmt"
)

// parser is a recursive descent parser over the lexed token stream. The
// original source text is kept so behavior expressions can be captured
// verbatim rather than reassembled from tokens.
type parser struct {
	src    string
	tokens []token
	pos    int
}

// Parse parses a complete definition source. Any syntactic deviation is a
// fatal error carrying the source line; there is no partial result.
func Parse(src []byte) (*Definition, error) {
	tokens, err := lex(string(src))
	if err != nil {
		return nil, err
	}
	p := &parser{src: string(src), tokens: tokens}

	def := &Definition{}
	if err := p.expectKeyword("Properties"); err != nil {
		return nil, err
	}
	if err := p.expectType(tokArrow); err != nil {
		return nil, err
	}
	if def.Properties, err = p.parseProperties(); err != nil {
		return nil, err
	}
	if err := p.expectType(tokComma); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("Blocks"); err != nil {
		return nil, err
	}
	if err := p.expectType(tokArrow); err != nil {
		return nil, err
	}
	if def.Blocks, err = p.parseBlocks(); err != nil {
		return nil, err
	}
	// A trailing comma after the Blocks section is allowed.
	if p.peek().typ == tokComma {
		p.advance()
	}
	if tok := p.peek(); tok.typ != tokEOF {
		return nil, fmt.Errorf("line %d: unexpected %s after Blocks section", tok.line, tok.describe())
	}
	return def, nil
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) advance() token {
	t := p.tokens[p.pos]
	if t.typ != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) expectType(typ tokenType) error {
	if tok := p.peek(); tok.typ != typ {
		return fmt.Errorf("line %d: expected %s, got %s", tok.line, describeType(typ), tok.describe())
	}
	p.advance()
	return nil
}

func (p *parser) expectKeyword(word string) error {
	tok := p.peek()
	if tok.typ != tokIdent || tok.val != word {
		return fmt.Errorf("line %d: expected %q section keyword, got %s", tok.line, word, tok.describe())
	}
	p.advance()
	return nil
}

// parseProperties parses `{ "<name>" => <domain>, ... }`. Every declaration
// is terminated by a comma, matching the original definition sets.
func (p *parser) parseProperties() ([]Property, error) {
	if err := p.expectType(tokLBrace); err != nil {
		return nil, err
	}
	var props []Property
	for p.peek().typ != tokRBrace {
		prop, err := p.parseProperty()
		if err != nil {
			return nil, err
		}
		props = append(props, prop)
		if err := p.expectType(tokComma); err != nil {
			return nil, err
		}
	}
	p.advance() // consume '}'
	return props, nil
}

// parseProperty parses `"snowy" => bool` or `"axis" => Axis { X, Y, Z }`.
func (p *parser) parseProperty() (Property, error) {
	tok := p.peek()
	if tok.typ != tokString {
		return Property{}, fmt.Errorf("line %d: expected quoted property name, got %s", tok.line, tok.describe())
	}
	p.advance()
	prop := Property{Label: tok.val, Line: tok.line}

	if err := p.expectType(tokArrow); err != nil {
		return Property{}, err
	}

	kind := p.peek()
	if kind.typ != tokIdent {
		return Property{}, fmt.Errorf("line %d: expected property domain, got %s", kind.line, kind.describe())
	}
	p.advance()
	if kind.val == "bool" {
		return prop, nil
	}

	prop.Enum = true
	prop.Type = kind.val
	if err := p.expectType(tokLBrace); err != nil {
		return Property{}, err
	}
	for p.peek().typ != tokRBrace {
		variant := p.peek()
		if variant.typ != tokIdent {
			return Property{}, fmt.Errorf("line %d: expected variant name in %s, got %s", variant.line, prop.Type, variant.describe())
		}
		p.advance()
		prop.Variants = append(prop.Variants, variant.val)
		if p.peek().typ == tokComma {
			p.advance()
			continue
		}
		break
	}
	if err := p.expectType(tokRBrace); err != nil {
		return Property{}, err
	}
	if len(prop.Variants) == 0 {
		return Property{}, fmt.Errorf("line %d: enumeration %s has no variants", prop.Line, prop.Type)
	}
	return prop, nil
}

// parseBlocks parses `{ <name> => <behavior>, { <fields> }, ... }`.
func (p *parser) parseBlocks() ([]Block, error) {
	if err := p.expectType(tokLBrace); err != nil {
		return nil, err
	}
	var blocks []Block
	for p.peek().typ != tokRBrace {
		block, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, block)
		if p.peek().typ == tokComma {
			p.advance()
			continue
		}
		break
	}
	if err := p.expectType(tokRBrace); err != nil {
		return nil, err
	}
	return blocks, nil
}

// parseBlock parses one block declaration:
//
//	acacia_button => BlockBehavior::default(), {
//	    face: Face::Wall,
//	    facing: Facing::North,
//	    powered: false,
//	},
func (p *parser) parseBlock() (Block, error) {
	tok := p.peek()
	if tok.typ != tokIdent {
		return Block{}, fmt.Errorf("line %d: expected block name, got %s", tok.line, tok.describe())
	}
	p.advance()
	block := Block{Name: tok.val, Line: tok.line}

	if err := p.expectType(tokArrow); err != nil {
		return Block{}, err
	}

	behavior, err := p.parseBehavior(block.Name)
	if err != nil {
		return Block{}, err
	}
	block.Behavior = behavior

	if err := p.expectType(tokComma); err != nil {
		return Block{}, err
	}
	if err := p.expectType(tokLBrace); err != nil {
		return Block{}, err
	}
	for p.peek().typ != tokRBrace {
		field, err := p.parseField()
		if err != nil {
			return Block{}, err
		}
		block.Fields = append(block.Fields, field)
		if p.peek().typ == tokComma {
			p.advance()
			continue
		}
		break
	}
	if err := p.expectType(tokRBrace); err != nil {
		return Block{}, err
	}
	return block, nil
}

// parseBehavior captures a behavior expression verbatim: every token up to
// the first comma at bracket depth zero. The expression is opaque to the
// compiler and passed through unexamined.
func (p *parser) parseBehavior(blockName string) (string, error) {
	start := p.peek()
	if start.typ == tokComma || start.typ == tokEOF {
		return "", fmt.Errorf("line %d: block %s is missing a behavior expression", start.line, blockName)
	}
	depth := 0
	end := start
	for {
		tok := p.peek()
		if tok.typ == tokEOF {
			return "", fmt.Errorf("line %d: unterminated behavior expression for block %s", start.line, blockName)
		}
		if depth == 0 && tok.typ == tokComma {
			break
		}
		switch tok.typ {
		case tokLParen, tokLBrace:
			depth++
		case tokRParen, tokRBrace:
			depth--
			if depth < 0 {
				return "", fmt.Errorf("line %d: unbalanced brackets in behavior expression for block %s", tok.line, blockName)
			}
		}
		end = tok
		p.advance()
	}
	return p.src[start.pos:end.end], nil
}

// parseField parses `snowy: false` or `facing: Facing::North`. Which domain
// the field uses is carried by the default value: a boolean literal means the
// builtin boolean, `Type::Variant` names an enumeration.
func (p *parser) parseField() (Field, error) {
	tok := p.peek()
	if tok.typ != tokIdent {
		return Field{}, fmt.Errorf("line %d: expected field name, got %s", tok.line, tok.describe())
	}
	p.advance()
	field := Field{Name: tok.val, Line: tok.line}

	if err := p.expectType(tokColon); err != nil {
		return Field{}, err
	}

	value := p.peek()
	if value.typ != tokIdent {
		return Field{}, fmt.Errorf("line %d: expected field value, got %s", value.line, value.describe())
	}
	p.advance()

	if p.peek().typ == tokDoubleColon {
		p.advance()
		variant := p.peek()
		if variant.typ != tokIdent {
			return Field{}, fmt.Errorf("line %d: expected variant after %s::, got %s", variant.line, value.val, variant.describe())
		}
		p.advance()
		field.Type = value.val
		field.Default = variant.val
		return field, nil
	}

	if value.val != "true" && value.val != "false" {
		return Field{}, fmt.Errorf("line %d: field %s: expected a boolean literal or Type::Variant, got %q", value.line, field.Name, value.val)
	}
	field.Bool = true
	field.Default = value.val
	return field, nil
}

func describeType(typ tokenType) string {
	switch typ {
	case tokArrow:
		return `"=>"`
	case tokDoubleColon:
		return `"::"`
	case tokColon:
		return `":"`
	case tokComma:
		return `","`
	case tokLBrace:
		return `"{"`
	case tokRBrace:
		return `"}"`
	case tokLParen:
		return `"("`
	case tokRParen:
		return `")"`
	case tokString:
		return "quoted name"
	case tokIdent:
		return "identifier"
	case tokDot:
		return `"."`
	case tokNumber:
		return "number"
	default:
		return "end of input"
	}
}
