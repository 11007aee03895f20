// Package definition parses the textual block-state definition format: an
// ordered Properties section declaring property domains, followed by an
// ordered Blocks section declaring blocks with behaviors and field defaults.
package definition

// Definition is the parsed form of a complete definition source.
type Definition struct {
	// Properties are the declared property domains, in declaration order.
	Properties []Property
	// Blocks are the declared blocks, in declaration order.
	Blocks []Block
}

// Property is a single declaration from the Properties section, either
// `"snowy" => bool` or `"axis" => Axis { X, Y, Z }`.
type Property struct {
	// Label is the quoted name on the left of the arrow, e.g. "axis".
	Label string
	// Enum reports whether the declaration is an enumeration. When false,
	// the property is the builtin boolean.
	Enum bool
	// Type is the enumeration type name, e.g. "Axis". Empty for booleans.
	Type string
	// Variants are the enumeration variant names in declaration order.
	Variants []string
	// Line is the source line of the declaration.
	Line int
}

// Block is a single declaration from the Blocks section.
type Block struct {
	// Name is the block identifier, e.g. "grass_block".
	Name string
	// Behavior is the behavior expression, captured verbatim and never
	// interpreted here.
	Behavior string
	// Fields are the property usages with their declared defaults, in
	// declaration order.
	Fields []Field
	// Line is the source line of the declaration.
	Line int
}

// Field is one property usage within a block, `snowy: false` or
// `facing: Facing::North`.
type Field struct {
	// Name is the field name as written.
	Name string
	// Bool reports whether the default is a boolean literal. When true the
	// field uses the builtin boolean domain and Type is empty.
	Bool bool
	// Type is the enumeration type name referenced by the default value.
	Type string
	// Default is the default variant name; "true" or "false" for booleans.
	Default string
	// Line is the source line of the usage.
	Line int
}
