// Package registry exposes the external block-identity namespace: a fixed,
// exhaustively enumerated set of canonical block names with stable ids. It
// is supplied to the state compiler, which binds every identity to a
// compiled block.
package registry

import (
	_ "embed"
	"strings"

	"github.com/tidwall/gjson"
)

// Block is one value of the block-identity enumeration.
type Block uint32

var (
	//go:embed blocks.json
	blockData []byte
	// blockNames is a map between a Block and its canonical name.
	blockNames []string
	// blocksByName is a map between a canonical name and its Block.
	blocksByName = make(map[string]Block)
)

func init() {
	parsedData := gjson.ParseBytes(blockData)
	parsedData.ForEach(func(_, value gjson.Result) bool {
		name := value.String()
		blocksByName[name] = Block(len(blockNames))
		blockNames = append(blockNames, name)
		return true
	})
}

// String returns the canonical name of the block identity.
func (b Block) String() string {
	if int(b) >= len(blockNames) {
		return "unknown"
	}
	return blockNames[b]
}

// Valid reports whether the value is part of the enumeration.
func (b Block) Valid() bool {
	return int(b) < len(blockNames)
}

// ByName looks up a block identity by canonical name. A "minecraft:"
// namespace prefix is accepted and stripped.
func ByName(name string) (Block, bool) {
	b, ok := blocksByName[strings.TrimPrefix(name, "minecraft:")]
	return b, ok
}

// Count returns the number of values in the enumeration.
func Count() int {
	return len(blockNames)
}

// All returns every value of the enumeration in id order.
func All() []Block {
	blocks := make([]Block, len(blockNames))
	for i := range blocks {
		blocks[i] = Block(i)
	}
	return blocks
}
