package rotor

import (
	"github.com/bgallie/rotorsim/cryptors/alphabet"
	"github.com/bgallie/rotorsim/cryptors/permutation"
)

// Ring is the marked collar around a rotor: an offset that rotates the
// visible position scale relative to the wiring core, plus a per-contact
// notch pattern (1 = notch present).
type Ring struct {
	ID     int
	Offset int
	Data   []byte
}

// Descriptor aggregates one rotor slot of a machine: the rotor identity
// within its set, the mounted rotor, the optional ring, and the current
// displacement.  Stepping engines and explicit setters are the only
// writers of the displacement.
type Descriptor struct {
	Slot     string
	RotorID  int
	Reversed bool

	rotor        *Rotor
	ring         *Ring
	displacement alphabet.ModInt

	// LetterRing is the KL7 letter-ring offset: the position shown to the
	// operator is displacement - LetterRing (mod N).
	LetterRing int

	// Wheel is the SG39 pin wheel riding along with this slot; nil
	// everywhere else.
	Wheel *PinWheel
}

// NewDescriptor creates a slot holding the given wiring.  When reversed is
// true the wiring is transformed at construction time; the runtime signal
// path never needs to know.
func NewDescriptor(slot string, rotorID int, perm *permutation.Permutation, reversed bool) *Descriptor {
	p := perm
	if reversed {
		p = Reversed(perm)
	}
	return &Descriptor{
		Slot:         slot,
		RotorID:      rotorID,
		Reversed:     reversed,
		rotor:        New(p),
		displacement: alphabet.NewModInt(0, p.Size()),
	}
}

// SetRing mounts a notch ring.  For reversed rotors the pattern is
// mirrored, matching the reversal of the wiring.
func (d *Descriptor) SetRing(id, offset int, data []byte) {
	dat := append([]byte(nil), data...)
	if d.Reversed {
		dat = ReversedRing(dat)
	}
	d.ring = &Ring{ID: id, Offset: ((offset % d.Size()) + d.Size()) % d.Size(), Data: dat}
}

func (d *Descriptor) Ring() *Ring {
	return d.ring
}

func (d *Descriptor) Rotor() *Rotor {
	return d.rotor
}

func (d *Descriptor) Size() int {
	return d.rotor.Size()
}

// ReplacePerm swaps the wiring under the slot, keeping displacement and
// ring.  Used by rotor-set randomisation and the SG39 Enigma-equivalence
// randomizer.
func (d *Descriptor) ReplacePerm(perm *permutation.Permutation, reversed bool) {
	p := perm
	if reversed {
		p = Reversed(perm)
	}
	d.Reversed = reversed
	d.rotor = New(p)
}

func (d *Descriptor) Displacement() int {
	return d.displacement.Val()
}

func (d *Descriptor) SetDisplacement(v int) {
	d.displacement = d.displacement.Set(v)
}

// Advance rotates the slot forward by one contact.
func (d *Descriptor) Advance() {
	d.displacement = d.displacement.Inc()
}

// Retract rotates the slot backward by one contact (SIGABA CSP 2900).
func (d *Descriptor) Retract() {
	d.displacement = d.displacement.Sub(1)
}

// Pos is the visible position of the slot: displacement - ring offset.
// Without a ring it equals the displacement.
func (d *Descriptor) Pos() int {
	if d.ring == nil {
		return d.displacement.Val()
	}
	return d.displacement.Sub(d.ring.Offset).Val()
}

// SetPos moves the slot so that Pos() == p.
func (d *Descriptor) SetPos(p int) {
	off := 0
	if d.ring != nil {
		off = d.ring.Offset
	}
	d.displacement = d.displacement.Set(p + off)
}

// CurrentData reads the notch pattern k contacts ahead of the current
// displacement.  Slots without a ring read as all zero.
func (d *Descriptor) CurrentData(k int) byte {
	if d.ring == nil {
		return 0
	}
	return d.ring.Data[d.displacement.Add(k).Val()]
}

// NotchAtPos reports whether the notch under the visible position is set.
// The notch sits on the ring, so the reading depends only on the window
// position, not on the ring offset.
func (d *Descriptor) NotchAtPos() bool {
	if d.ring == nil {
		return false
	}
	return d.ring.Data[d.Pos()] != 0
}

func (d *Descriptor) RotEnc(x int) int {
	return d.rotor.Encrypt(x, d.displacement.Val())
}

func (d *Descriptor) RotDec(x int) int {
	return d.rotor.Decrypt(x, d.displacement.Val())
}
