package blockstate

import (
	"fmt"
	"io"

	"github.com/justtaldevelops/blockstate/definition"
	"github.com/justtaldevelops/blockstate/states"
	"github.com/klauspost/compress/gzip"
	"github.com/sandertv/gophertunnel/minecraft/nbt"
)

// snapshotFormat is bumped whenever the snapshot layout changes.
const snapshotFormat int32 = 1

// snapshot is the payload of a compiled-definition snapshot: the parsed
// definition plus the expected state count, gzip-compressed big endian NBT.
// Loading re-runs the compiler, so a snapshot can never smuggle in tables
// that violate the range invariants.
type snapshot struct {
	Format     int32              `nbt:"format"`
	States     int32              `nbt:"states"`
	Properties []snapshotProperty `nbt:"properties"`
	Blocks     []snapshotBlock    `nbt:"blocks"`
}

type snapshotProperty struct {
	Label    string   `nbt:"label"`
	Type     string   `nbt:"type"`
	Variants []string `nbt:"variants,omitempty"`
}

type snapshotBlock struct {
	Name     string          `nbt:"name"`
	Behavior string          `nbt:"behavior"`
	Fields   []snapshotField `nbt:"fields,omitempty"`
}

type snapshotField struct {
	Name    string `nbt:"name"`
	Type    string `nbt:"type"`
	Default string `nbt:"default"`
}

// WriteSnapshot writes a parsed definition as a snapshot. The definition is
// compiled first, so an inconsistent definition can never become a snapshot.
func WriteSnapshot(w io.Writer, def *definition.Definition) error {
	reg, err := compileDefinition(def)
	if err != nil {
		return err
	}

	snap := snapshot{
		Format: snapshotFormat,
		States: int32(uint64(reg.MaxState()) + 1),
	}
	for _, prop := range def.Properties {
		sp := snapshotProperty{Label: prop.Label, Type: "bool"}
		if prop.Enum {
			sp.Type = prop.Type
			sp.Variants = prop.Variants
		}
		snap.Properties = append(snap.Properties, sp)
	}
	for _, block := range def.Blocks {
		sb := snapshotBlock{Name: block.Name, Behavior: block.Behavior}
		for _, field := range block.Fields {
			sf := snapshotField{Name: field.Name, Type: field.Type, Default: field.Default}
			if field.Bool {
				sf.Type = "bool"
			}
			sb.Fields = append(sb.Fields, sf)
		}
		snap.Blocks = append(snap.Blocks, sb)
	}

	z := gzip.NewWriter(w)
	if err := nbt.NewEncoderWithEncoding(z, nbt.BigEndian).Encode(snap); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return z.Close()
}

// ReadSnapshot reads a snapshot and compiles it into a state registry. The
// stored state count is checked against the compiled one; a mismatch means
// the snapshot was produced by an incompatible definition set.
func ReadSnapshot(r io.Reader) (*states.Registry, error) {
	z, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	var snap snapshot
	if err := nbt.NewDecoderWithEncoding(z, nbt.BigEndian).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if err := z.Close(); err != nil {
		return nil, err
	}
	if snap.Format != snapshotFormat {
		return nil, fmt.Errorf("unsupported snapshot format %d", snap.Format)
	}

	def := &definition.Definition{}
	for _, sp := range snap.Properties {
		prop := definition.Property{Label: sp.Label}
		if sp.Type != "bool" {
			prop.Enum = true
			prop.Type = sp.Type
			prop.Variants = sp.Variants
		}
		def.Properties = append(def.Properties, prop)
	}
	for _, sb := range snap.Blocks {
		block := definition.Block{Name: sb.Name, Behavior: sb.Behavior}
		for _, sf := range sb.Fields {
			field := definition.Field{Name: sf.Name, Type: sf.Type, Default: sf.Default}
			if sf.Type == "bool" {
				field.Bool = true
				field.Type = ""
			}
			block.Fields = append(block.Fields, field)
		}
		def.Blocks = append(def.Blocks, block)
	}

	reg, err := compileDefinition(def)
	if err != nil {
		return nil, err
	}
	if got := uint64(reg.MaxState()) + 1; got != uint64(snap.States) {
		return nil, fmt.Errorf("internal consistency error: snapshot declares %d states, compiled %d", snap.States, got)
	}
	return reg, nil
}
