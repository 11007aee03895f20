package states

import (
	"fmt"
	"math"

	"github.com/justtaldevelops/blockstate/definition"
	"github.com/kr/pretty"
)

// Compile runs the compilation pass over a parsed definition: property
// domains, block descriptors and state space assignment. It is a single
// deterministic pass; any definition error aborts it with no partial result.
// Bind completes the pipeline by attaching the external registry identities.
// The returned registry is immutable and safe for concurrent readers.
func Compile(def *definition.Definition) (*Registry, error) {
	r := &Registry{
		domains: make(map[string]*Property),
		byName:  make(map[string]*Descriptor),
	}
	if err := r.buildDomains(def); err != nil {
		return nil, err
	}
	if err := r.buildDescriptors(def); err != nil {
		return nil, err
	}
	if err := r.assignStates(); err != nil {
		return nil, err
	}
	return r, nil
}

// buildDomains builds the enumerated property domains with ordinals equal to
// variant declaration order, and records the declared label of each domain
// for field naming. The builtin boolean is not declared here; boolean
// declarations in the Properties section only introduce field labels.
func (r *Registry) buildDomains(def *definition.Definition) error {
	for _, decl := range def.Properties {
		if !decl.Enum {
			continue
		}
		if _, ok := r.domains[decl.Type]; ok {
			return fmt.Errorf("line %d: property domain %s declared twice", decl.Line, decl.Type)
		}
		domain, err := newEnum(decl.Label, decl.Type, decl.Variants)
		if err != nil {
			return fmt.Errorf("line %d: %w", decl.Line, err)
		}
		r.domains[decl.Type] = domain
		r.properties = append(r.properties, domain)
	}
	return nil
}

// buildDescriptors resolves every block's field usages against the domain
// table and produces one immutable descriptor per block, with fields in
// declaration order. A domain used more than once within a block yields
// field names suffixed with the zero-based occurrence index.
func (r *Registry) buildDescriptors(def *definition.Definition) error {
	for _, block := range def.Blocks {
		if _, ok := r.byName[block.Name]; ok {
			return fmt.Errorf("line %d: block %s declared twice", block.Line, block.Name)
		}

		labels := make([]string, len(block.Fields))
		uses := make(map[string]int, len(block.Fields))
		fields := make([]Field, 0, len(block.Fields))

		for i, usage := range block.Fields {
			domain := Boolean
			if !usage.Bool {
				var ok bool
				if domain, ok = r.domains[usage.Type]; !ok {
					return fmt.Errorf("line %d: block %s: property domain %s not found", usage.Line, block.Name, usage.Type)
				}
			}

			// Enum fields are labeled with the domain's declared label,
			// boolean fields with the name as written.
			label := usage.Name
			if !usage.Bool && domain.Label() != "" {
				label = domain.Label()
			}
			labels[i] = label
			uses[label]++

			ord, ok := domain.Ordinal(usage.Default)
			if !ok {
				return fmt.Errorf("line %d: block %s: %s is not a variant of %s (default for field %s)",
					usage.Line, block.Name, usage.Default, domain.Type(), label)
			}
			fields = append(fields, Field{Name: label, Domain: domain, Default: ord})
		}

		// Apply occurrence suffixes to repeated labels.
		seen := make(map[string]int, len(fields))
		for i := range fields {
			label := labels[i]
			if uses[label] > 1 {
				fields[i].Name = fmt.Sprintf("%s_%d", label, seen[label])
			}
			seen[label]++
		}
		names := make(map[string]struct{}, len(fields))
		for _, f := range fields {
			if _, ok := names[f.Name]; ok {
				return fmt.Errorf("line %d: block %s: duplicate field name %s", block.Line, block.Name, f.Name)
			}
			names[f.Name] = struct{}{}
		}

		desc := &Descriptor{
			name:     block.Name,
			behavior: Behavior(block.Behavior),
			fields:   fields,
		}
		r.blocks = append(r.blocks, desc)
		r.byName[block.Name] = desc
	}
	if len(r.blocks) == 0 {
		return fmt.Errorf("definition declares no blocks")
	}
	return nil
}

// assignStates walks the descriptors in declaration order with a single
// running counter, giving each block a contiguous range sized by the product
// of its field domain sizes, then locates each block's default state id by
// scanning its range.
func (r *Registry) assignStates() error {
	counter := uint64(0)
	for _, desc := range r.blocks {
		size := uint64(1)
		desc.weights = make([]uint32, len(desc.fields))
		for i := len(desc.fields) - 1; i >= 0; i-- {
			desc.weights[i] = uint32(size)
			size *= uint64(desc.fields[i].Domain.Size())
		}
		if counter+size-1 > math.MaxUint32 {
			return fmt.Errorf("block %s: state space exceeds 32 bits", desc.name)
		}

		desc.first = StateID(counter)
		desc.last = StateID(counter + size - 1)
		counter += size

		if err := desc.findDefaultState(); err != nil {
			return err
		}
	}
	r.maxState = StateID(counter - 1)
	return nil
}

// findDefaultState scans every id in the block's range for the one whose
// decoded field values equal every declared default. A missing match means
// the declared defaults name no reachable combination, which is a definition
// error.
func (d *Descriptor) findDefaultState() error {
	for id := d.first; ; id++ {
		instance := d.decode(id)
		match := true
		for i, f := range d.fields {
			if instance.ordinals[i] != f.Default {
				match = false
				break
			}
		}
		if match {
			d.defaultState = id
			return nil
		}
		if id == d.last {
			break
		}
	}
	defaults := make([]string, len(d.fields))
	for i, f := range d.fields {
		v, _ := f.Domain.Variant(f.Default)
		defaults[i] = f.Name + "=" + v
	}
	return fmt.Errorf("block %s: no state id matches the declared defaults %s", d.name, pretty.Sprint(defaults))
}
