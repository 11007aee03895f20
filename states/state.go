package states

import (
	"fmt"
	"sort"
)

// Registry holds the output of one compilation pass: property domains, block
// descriptors, their state id ranges and the registry bindings. Every field
// is written exactly once, during Compile, after which the registry is a
// read-only table shared freely between concurrent readers.
type Registry struct {
	properties []*Property
	domains    map[string]*Property

	blocks []*Descriptor
	byName map[string]*Descriptor

	maxState StateID

	// bindings maps each external registry identity, by its enumeration
	// value, to the descriptor bound to it.
	bindings []*Descriptor
}

// Properties returns the enumerated property domains in declaration order.
// The builtin boolean is not included.
func (r *Registry) Properties() []*Property {
	return r.properties
}

// Property returns an enumerated domain by type name.
func (r *Registry) Property(typeName string) (*Property, bool) {
	p, ok := r.domains[typeName]
	return p, ok
}

// Blocks returns the block descriptors in declaration order.
func (r *Registry) Blocks() []*Descriptor {
	return r.blocks
}

// Block returns a block descriptor by canonical name.
func (r *Registry) Block(name string) (*Descriptor, bool) {
	d, ok := r.byName[name]
	return d, ok
}

// MaxState returns the highest state id in the compiled space. Ids in
// [0, MaxState()] are exactly the valid states.
func (r *Registry) MaxState() StateID {
	return r.maxState
}

// FromStateID decodes a global state id into a block instance. Ids outside
// [0, MaxState()] are invalid input. An in-range id that no block range owns
// would mean the range invariant is broken elsewhere; it is reported as an
// internal consistency error rather than silently defaulted.
func (r *Registry) FromStateID(id StateID) (Instance, error) {
	if id > r.maxState {
		return Instance{}, fmt.Errorf("invalid state id %d: outside [0, %d]", id, r.maxState)
	}
	n := sort.Search(len(r.blocks), func(i int) bool {
		return r.blocks[i].last >= id
	})
	if n >= len(r.blocks) || r.blocks[n].first > id {
		return Instance{}, fmt.Errorf("internal consistency error: state id %d is not owned by any block range", id)
	}
	return r.blocks[n].decode(id), nil
}
