package states

import (
	"fmt"

	"github.com/justtaldevelops/blockstate/registry"
)

// Bind builds the bridge between the external block-identity enumeration and
// the compiled blocks. The binding must be total in both directions: every
// identity has exactly one compiled block and every compiled block has
// exactly one identity. Any hole is a fatal configuration error at compile
// time, never a runtime fallback.
func (r *Registry) Bind() error {
	r.bindings = make([]*Descriptor, registry.Count())
	for _, desc := range r.blocks {
		rb, ok := registry.ByName(desc.name)
		if !ok {
			return fmt.Errorf("block %s has no identity in the block registry", desc.name)
		}
		if r.bindings[rb] != nil {
			return fmt.Errorf("registry identity %s is bound to both %s and %s", rb, r.bindings[rb].name, desc.name)
		}
		r.bindings[rb] = desc
	}
	for _, rb := range registry.All() {
		if r.bindings[rb] == nil {
			return fmt.Errorf("registry identity %s has no compiled block", rb)
		}
	}
	return nil
}

// lookup resolves a registry identity to its bound descriptor. A miss can
// only happen before Bind or for values outside the enumeration, since Bind
// verified the mapping is exhaustive.
func (r *Registry) lookup(b registry.Block) (*Descriptor, error) {
	if r.bindings == nil {
		return nil, fmt.Errorf("internal consistency error: registry bridge not built")
	}
	if !b.Valid() || int(b) >= len(r.bindings) {
		return nil, fmt.Errorf("internal consistency error: no binding for registry identity %d", uint32(b))
	}
	return r.bindings[b], nil
}

// DescriptorOf returns the block descriptor bound to a registry identity.
func (r *Registry) DescriptorOf(b registry.Block) (*Descriptor, error) {
	return r.lookup(b)
}

// DefaultState returns the default state id of the block bound to a registry
// identity.
func (r *Registry) DefaultState(b registry.Block) (StateID, error) {
	desc, err := r.lookup(b)
	if err != nil {
		return 0, err
	}
	return desc.defaultState, nil
}

// DefaultInstance returns the default instance of the block bound to a
// registry identity, with every field at its declared default.
func (r *Registry) DefaultInstance(b registry.Block) (Instance, error) {
	desc, err := r.lookup(b)
	if err != nil {
		return Instance{}, err
	}
	return desc.DefaultInstance(), nil
}

// StateRange returns the [first, last] state id range of the block bound to
// a registry identity.
func (r *Registry) StateRange(b registry.Block) (StateID, StateID, error) {
	desc, err := r.lookup(b)
	if err != nil {
		return 0, 0, err
	}
	return desc.first, desc.last, nil
}
