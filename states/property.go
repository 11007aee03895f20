// Package states compiles parsed block definitions into a dense, bijective
// state id space: every block owns a contiguous range of 32-bit ids, and each
// id inside a range encodes one combination of the block's property values.
package states

import "fmt"

// Property is a named, ordered, finite set of variants with stable zero-based
// ordinals. Properties are built once during compilation and never mutated.
type Property struct {
	label    string
	typeName string
	boolean  bool
	variants []string
	ordinals map[string]uint32
}

// Boolean is the builtin boolean domain. Its ordinal assignment is fixed:
// ordinal 0 is true and ordinal 1 is false. The polarity is inherited from
// the original definition sets and is a contract, not a convention.
var Boolean = &Property{
	label:    "bool",
	typeName: "bool",
	boolean:  true,
	variants: []string{"true", "false"},
	ordinals: map[string]uint32{"true": 0, "false": 1},
}

// newEnum builds an enumerated domain from a declaration. Variant ordinals
// equal declaration order. Duplicate variant names are rejected.
func newEnum(label, typeName string, variants []string) (*Property, error) {
	p := &Property{
		label:    label,
		typeName: typeName,
		variants: variants,
		ordinals: make(map[string]uint32, len(variants)),
	}
	for i, v := range variants {
		if _, ok := p.ordinals[v]; ok {
			return nil, fmt.Errorf("property %s: duplicate variant %s", typeName, v)
		}
		p.ordinals[v] = uint32(i)
	}
	return p, nil
}

// Label returns the declared field label of the domain, e.g. "facing".
func (p *Property) Label() string {
	return p.label
}

// Type returns the domain type name, e.g. "Facing", or "bool" for the
// builtin boolean.
func (p *Property) Type() string {
	return p.typeName
}

// Boolean reports whether the domain is the builtin boolean.
func (p *Property) Boolean() bool {
	return p.boolean
}

// Size returns the number of variants in the domain.
func (p *Property) Size() uint32 {
	return uint32(len(p.variants))
}

// Variants returns the variant names in ordinal order.
func (p *Property) Variants() []string {
	return p.variants
}

// Ordinal returns the ordinal of the named variant.
func (p *Property) Ordinal(variant string) (uint32, bool) {
	ord, ok := p.ordinals[variant]
	return ord, ok
}

// Variant returns the variant name at the given ordinal.
func (p *Property) Variant(ordinal uint32) (string, bool) {
	if ordinal >= uint32(len(p.variants)) {
		return "", false
	}
	return p.variants[ordinal], true
}
