// Package blockstate compiles declarative block definitions into a dense,
// bijective state id space. The definition format and the compiled semantics
// follow the Java edition: every block owns a contiguous range of 32-bit
// state ids, one id per combination of its property values.
package blockstate

import (
	_ "embed"
	"fmt"

	"github.com/justtaldevelops/blockstate/definition"
	"github.com/justtaldevelops/blockstate/states"
	"github.com/sirupsen/logrus"
)

//go:embed blockstates.txt
var defaultDefinition []byte

// Compile parses and compiles a definition source into a state registry.
// Compilation is a single deterministic pass; any error aborts it with no
// partial result. The returned registry is immutable and safe to share
// between any number of concurrent readers.
func Compile(src []byte) (*states.Registry, error) {
	def, err := definition.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("parse definition: %w", err)
	}
	reg, err := compileDefinition(def)
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"properties": len(reg.Properties()),
		"blocks":     len(reg.Blocks()),
		"states":     uint64(reg.MaxState()) + 1,
	}).Debug("Compiled block state registry.")
	return reg, nil
}

// Load compiles the embedded default definition set.
func Load() (*states.Registry, error) {
	return Compile(defaultDefinition)
}

// compileDefinition runs the compiler and the registry bridge over a parsed
// definition.
func compileDefinition(def *definition.Definition) (*states.Registry, error) {
	reg, err := states.Compile(def)
	if err != nil {
		return nil, fmt.Errorf("compile definition: %w", err)
	}
	if err := reg.Bind(); err != nil {
		return nil, fmt.Errorf("bind registry identities: %w", err)
	}
	return reg, nil
}
