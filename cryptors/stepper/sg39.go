package stepper

import (
	"github.com/bgallie/rotorsim/cryptors/rotor"
)

// Sg39 steps the three movable rotors of the Schlüsselgerät 39.  Each
// rotor rides together with a pin wheel of coprime size; on every tick
// the wheels advance first, then each rotor moves when its wheel shows a
// set pin or one of the gating rotor notches is raised.  The fourth
// rotor never moves.
type Sg39 struct {
	rotor1 *rotor.Descriptor
	rotor2 *rotor.Descriptor
	rotor3 *rotor.Descriptor
}

func NewSg39(rotor1, rotor2, rotor3 *rotor.Descriptor) *Sg39 {
	return &Sg39{rotor1: rotor1, rotor2: rotor2, rotor3: rotor3}
}

func (s *Sg39) Step() {
	s.rotor1.Wheel.Advance()
	s.rotor2.Wheel.Advance()
	s.rotor3.Wheel.Advance()

	n1 := s.rotor1.NotchAtPos()
	n2 := s.rotor2.NotchAtPos()
	n3 := s.rotor3.NotchAtPos()

	move1 := s.rotor1.Wheel.AtPin() || n3
	move2 := s.rotor2.Wheel.AtPin() || n1 || n2
	move3 := s.rotor3.Wheel.AtPin() || n2

	if move1 {
		s.rotor1.Advance()
	}
	if move2 {
		s.rotor2.Advance()
	}
	if move3 {
		s.rotor3.Advance()
	}
}

func (s *Sg39) Reset() {
	for _, d := range []*rotor.Descriptor{s.rotor1, s.rotor2, s.rotor3} {
		d.SetPos(0)
		d.Wheel.SetPos(0)
	}
}
