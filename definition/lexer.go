package definition

import (
	"fmt"
	"unicode"
)

// tokenType classifies lexer tokens.
type tokenType int

const (
	tokEOF tokenType = iota
	tokIdent
	tokString      // "snowy"
	tokArrow       // =>
	tokDoubleColon // ::
	tokColon
	tokComma
	tokLBrace
	tokRBrace
	tokLParen
	tokRParen
	tokDot
	tokNumber
)

// token is a single lexer token.
type token struct {
	typ  tokenType
	val  string
	pos  int // byte offset of the first character
	end  int // byte offset one past the last character
	line int // 1-based source line
}

func (t token) describe() string {
	if t.typ == tokEOF {
		return "end of input"
	}
	return fmt.Sprintf("%q", t.val)
}

// lex tokenizes a definition source.
func lex(input string) ([]token, error) {
	var tokens []token
	i, line := 0, 1
	for i < len(input) {
		ch := rune(input[i])

		if ch == '\n' {
			line++
			i++
			continue
		}
		if unicode.IsSpace(ch) {
			i++
			continue
		}

		// Comments run to the end of the line.
		if ch == '#' {
			for i < len(input) && input[i] != '\n' {
				i++
			}
			continue
		}

		// Quoted property labels.
		if ch == '"' {
			start := i
			i++
			for i < len(input) && input[i] != '"' && input[i] != '\n' {
				i++
			}
			if i >= len(input) || input[i] != '"' {
				return nil, fmt.Errorf("line %d: unterminated string", line)
			}
			i++
			tokens = append(tokens, token{tokString, input[start+1 : i-1], start, i, line})
			continue
		}

		// Numbers only appear inside behavior expressions, where they are
		// captured verbatim rather than interpreted.
		if unicode.IsDigit(ch) {
			start := i
			for i < len(input) && (unicode.IsDigit(rune(input[i])) || input[i] == '.') {
				i++
			}
			tokens = append(tokens, token{tokNumber, input[start:i], start, i, line})
			continue
		}

		// Identifiers: block names, type names, variants, keywords.
		if unicode.IsLetter(ch) || ch == '_' {
			start := i
			for i < len(input) && (unicode.IsLetter(rune(input[i])) || unicode.IsDigit(rune(input[i])) || input[i] == '_') {
				i++
			}
			tokens = append(tokens, token{tokIdent, input[start:i], start, i, line})
			continue
		}

		// Two-character operators.
		if i+1 < len(input) {
			switch input[i : i+2] {
			case "=>":
				tokens = append(tokens, token{tokArrow, "=>", i, i + 2, line})
				i += 2
				continue
			case "::":
				tokens = append(tokens, token{tokDoubleColon, "::", i, i + 2, line})
				i += 2
				continue
			}
		}

		switch ch {
		case ':':
			tokens = append(tokens, token{tokColon, ":", i, i + 1, line})
		case ',':
			tokens = append(tokens, token{tokComma, ",", i, i + 1, line})
		case '{':
			tokens = append(tokens, token{tokLBrace, "{", i, i + 1, line})
		case '}':
			tokens = append(tokens, token{tokRBrace, "}", i, i + 1, line})
		case '(':
			tokens = append(tokens, token{tokLParen, "(", i, i + 1, line})
		case ')':
			tokens = append(tokens, token{tokRParen, ")", i, i + 1, line})
		case '.':
			tokens = append(tokens, token{tokDot, ".", i, i + 1, line})
		default:
			return nil, fmt.Errorf("line %d: unexpected character %q", line, ch)
		}
		i++
	}
	tokens = append(tokens, token{tokEOF, "", len(input), len(input), line})
	return tokens, nil
}
