// rotorset
package rotorset

import (
	"sort"

	"github.com/bgallie/rotorsim/cryptors"
	"github.com/bgallie/rotorsim/cryptors/permutation"
)

// RotorSet is a named catalogue of rotor wirings and notch-ring patterns
// for one machine family.  All wirings in a set share one contact count.
// Sets are owned by their machine; there is no process-global registry.
type RotorSet struct {
	name     string
	size     int
	perms    map[int]*permutation.Permutation
	rings    map[int][]byte
	constIDs map[int]bool
}

func New(name string, size int) *RotorSet {
	return &RotorSet{
		name:     name,
		size:     size,
		perms:    make(map[int]*permutation.Permutation),
		rings:    make(map[int][]byte),
		constIDs: make(map[int]bool),
	}
}

func (rs *RotorSet) Name() string {
	return rs.name
}

func (rs *RotorSet) Size() int {
	return rs.size
}

// AddRotor registers a wiring under the given id, replacing any previous
// entry.
func (rs *RotorSet) AddRotor(id int, perm *permutation.Permutation) error {
	if perm.Size() != rs.size {
		return cryptors.NewError(cryptors.ErrObjectCreate, "rotor %d has %d contacts, set %q has %d", id, perm.Size(), rs.name, rs.size)
	}
	rs.perms[id] = perm
	return nil
}

// AddRing registers a notch pattern under the given id.
func (rs *RotorSet) AddRing(id int, data []byte) error {
	if len(data) != rs.size {
		return cryptors.NewError(cryptors.ErrObjectCreate, "ring %d has %d positions, set %q has %d", id, len(data), rs.name, rs.size)
	}
	rs.rings[id] = append([]byte(nil), data...)
	return nil
}

func (rs *RotorSet) RemoveRotor(id int) {
	delete(rs.perms, id)
	delete(rs.constIDs, id)
}

func (rs *RotorSet) RemoveRing(id int) {
	delete(rs.rings, id)
}

// MarkConst protects a wiring from bulk randomisation (reflectors, entry
// wheels).
func (rs *RotorSet) MarkConst(ids ...int) {
	for _, id := range ids {
		rs.constIDs[id] = true
	}
}

func (rs *RotorSet) IsConst(id int) bool {
	return rs.constIDs[id]
}

// Rotor returns the wiring registered under id.
func (rs *RotorSet) Rotor(id int) (*permutation.Permutation, error) {
	p, ok := rs.perms[id]
	if !ok {
		return nil, cryptors.NewError(cryptors.ErrObjectCreate, "rotor id %d is not in set %q", id, rs.name)
	}
	return p, nil
}

// Ring returns the notch pattern registered under id.
func (rs *RotorSet) Ring(id int) ([]byte, error) {
	d, ok := rs.rings[id]
	if !ok {
		return nil, cryptors.NewError(cryptors.ErrObjectCreate, "ring id %d is not in set %q", id, rs.name)
	}
	return append([]byte(nil), d...), nil
}

func (rs *RotorSet) RotorIDs() []int {
	ids := make([]int, 0, len(rs.perms))
	for id := range rs.perms {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (rs *RotorSet) RingIDs() []int {
	ids := make([]int, 0, len(rs.rings))
	for id := range rs.rings {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Subset extracts a new set holding only the named rotors and rings.
func (rs *RotorSet) Subset(name string, rotorIDs, ringIDs []int) (*RotorSet, error) {
	out := New(name, rs.size)
	for _, id := range rotorIDs {
		p, err := rs.Rotor(id)
		if err != nil {
			return nil, err
		}
		out.perms[id] = p
		if rs.constIDs[id] {
			out.constIDs[id] = true
		}
	}
	for _, id := range ringIDs {
		d, err := rs.Ring(id)
		if err != nil {
			return nil, err
		}
		out.rings[id] = d
	}
	return out, nil
}

// Randomize replaces every non-const wiring by a fresh uniform draw.  Ring
// patterns and const wirings are untouched.
func (rs *RotorSet) Randomize(src cryptors.RandomSource) {
	for id := range rs.perms {
		if rs.constIDs[id] {
			continue
		}
		rs.perms[id] = permutation.Random(rs.size, src)
	}
}

// Equal compares names, wirings and ring patterns.
func (rs *RotorSet) Equal(o *RotorSet) bool {
	if o == nil || rs.name != o.name || rs.size != o.size {
		return false
	}
	if len(rs.perms) != len(o.perms) || len(rs.rings) != len(o.rings) {
		return false
	}
	for id, p := range rs.perms {
		q, ok := o.perms[id]
		if !ok || !p.Equal(q) {
			return false
		}
	}
	for id, d := range rs.rings {
		e, ok := o.rings[id]
		if !ok || len(d) != len(e) {
			return false
		}
		for i := range d {
			if d[i] != e[i] {
				return false
			}
		}
	}
	return true
}
