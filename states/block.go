package states

import "fmt"

// StateID is a flat 32-bit id uniquely identifying one (block, field-values)
// combination in the compiled state space.
type StateID uint32

// Behavior is an opaque behavior expression attached to a block. It is
// carried through compilation unexamined.
type Behavior string

// Block is the capability surface common to descriptors and instances.
type Block interface {
	// ID returns the canonical identifying string of the block.
	ID() string
	// Behavior returns the opaque behavior value of the block.
	Behavior() Behavior
}

// Field is one (name, domain, default) triple on a block descriptor. When a
// block uses the same domain more than once, field names carry a zero-based
// occurrence suffix, e.g. has_bottle_0, has_bottle_1, has_bottle_2.
type Field struct {
	// Name is the disambiguated field name.
	Name string
	// Domain is the property domain the field draws its values from.
	Domain *Property
	// Default is the ordinal of the field's declared default variant.
	Default uint32
}

// Descriptor is the compiled, immutable form of one block definition. It is
// constructed once during compilation and shared by reference thereafter.
type Descriptor struct {
	name     string
	behavior Behavior
	fields   []Field

	// weights holds the mixed-radix positional weight of each field: the
	// product of the domain sizes of all fields declared after it. The last
	// declared field always has weight 1.
	weights []uint32

	first        StateID
	last         StateID
	defaultState StateID
}

// ID returns the canonical identifying string of the block, which is the
// block name exactly as declared.
func (d *Descriptor) ID() string {
	return d.name
}

// Behavior returns the opaque behavior value of the block.
func (d *Descriptor) Behavior() Behavior {
	return d.behavior
}

// Fields returns the descriptor's fields in declaration order.
func (d *Descriptor) Fields() []Field {
	return d.fields
}

// Range returns the contiguous state id range [first, last] owned by the
// block.
func (d *Descriptor) Range() (StateID, StateID) {
	return d.first, d.last
}

// Size returns the number of states the block owns: the product of its field
// domain sizes, or 1 for a field-less block.
func (d *Descriptor) Size() uint32 {
	return uint32(d.last-d.first) + 1
}

// DefaultState returns the state id whose decoded field values equal every
// field's declared default.
func (d *Descriptor) DefaultState() StateID {
	return d.defaultState
}

// DefaultInstance returns the instance with every field at its declared
// default.
func (d *Descriptor) DefaultInstance() Instance {
	ordinals := make([]uint32, len(d.fields))
	for i, f := range d.fields {
		ordinals[i] = f.Default
	}
	return Instance{desc: d, ordinals: ordinals}
}

// encode computes the global state id of a field ordinal assignment using
// mixed-radix positional encoding.
func (d *Descriptor) encode(ordinals []uint32) StateID {
	offset := uint32(0)
	for i, ord := range ordinals {
		offset += ord * d.weights[i]
	}
	return d.first + StateID(offset)
}

// decode recovers the field ordinals of a state id owned by this block,
// extracting mixed-radix digits from least to most significant.
func (d *Descriptor) decode(id StateID) Instance {
	local := uint32(id - d.first)
	ordinals := make([]uint32, len(d.fields))
	for i := len(d.fields) - 1; i >= 0; i-- {
		ordinals[i] = (local / d.weights[i]) % d.fields[i].Domain.Size()
	}
	return Instance{desc: d, ordinals: ordinals}
}

// Instance is one concrete combination of field values of a block. Instances
// are values: changing a property means deriving a new instance (and with it
// a new state id), never mutating in place.
type Instance struct {
	desc     *Descriptor
	ordinals []uint32
}

// ID returns the canonical identifying string of the instance's block.
func (i Instance) ID() string {
	return i.desc.ID()
}

// Behavior returns the opaque behavior value of the instance's block.
func (i Instance) Behavior() Behavior {
	return i.desc.Behavior()
}

// Descriptor returns the descriptor the instance belongs to.
func (i Instance) Descriptor() *Descriptor {
	return i.desc
}

// State returns the global state id encoding this instance.
func (i Instance) State() StateID {
	return i.desc.encode(i.ordinals)
}

// Value returns the variant name held by the named field.
func (i Instance) Value(field string) (string, bool) {
	for n, f := range i.desc.fields {
		if f.Name == field {
			v, _ := f.Domain.Variant(i.ordinals[n])
			return v, true
		}
	}
	return "", false
}

// Bool returns the value of a boolean field. The second return is false if
// the field does not exist or is not boolean.
func (i Instance) Bool(field string) (bool, bool) {
	for n, f := range i.desc.fields {
		if f.Name == field {
			if !f.Domain.Boolean() {
				return false, false
			}
			return i.ordinals[n] == 0, true
		}
	}
	return false, false
}

// With derives a new instance with the named field set to the given variant.
// The receiver is left untouched.
func (i Instance) With(field, variant string) (Instance, error) {
	for n, f := range i.desc.fields {
		if f.Name != field {
			continue
		}
		ord, ok := f.Domain.Ordinal(variant)
		if !ok {
			return Instance{}, fmt.Errorf("block %s: %s is not a variant of %s", i.desc.name, variant, f.Domain.Type())
		}
		ordinals := make([]uint32, len(i.ordinals))
		copy(ordinals, i.ordinals)
		ordinals[n] = ord
		return Instance{desc: i.desc, ordinals: ordinals}, nil
	}
	return Instance{}, fmt.Errorf("block %s has no field %s", i.desc.name, field)
}

// Equal reports whether two instances are the same block with the same field
// values.
func (i Instance) Equal(other Instance) bool {
	if i.desc != other.desc || len(i.ordinals) != len(other.ordinals) {
		return false
	}
	for n := range i.ordinals {
		if i.ordinals[n] != other.ordinals[n] {
			return false
		}
	}
	return true
}

// String formats the instance as name[field=value, ...] for diagnostics.
func (i Instance) String() string {
	if len(i.desc.fields) == 0 {
		return i.desc.name
	}
	s := i.desc.name + "["
	for n, f := range i.desc.fields {
		if n > 0 {
			s += ", "
		}
		v, _ := f.Domain.Variant(i.ordinals[n])
		s += f.Name + "=" + v
	}
	return s + "]"
}
