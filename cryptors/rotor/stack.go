package rotor

import (
	"github.com/bgallie/rotorsim/cryptors"
	"github.com/bgallie/rotorsim/cryptors/permutation"
)

// StackMode selects how the signal traverses the rotor sequence.
type StackMode int

const (
	// Unidirectional passes the signal through every rotor once.
	Unidirectional StackMode = iota
	// Reflecting treats the last rotor as a reflector: the signal passes
	// forward through the prefix, once through the reflector, then back
	// through the prefix in reverse.
	Reflecting
	// Feedback re-injects the signal at the stack entry, through a fixed
	// permutation, whenever it exits on one of the feedback contacts.
	Feedback
)

// Stack drives a signal through an ordered sequence of rotor slots.  The
// first slot in the list is the entry side.  The stack borrows the
// descriptors; it never moves them.
type Stack struct {
	rotors []*Descriptor
	mode   StackMode
	size   int
	points map[int]bool
	fperm  *permutation.Permutation
}

// NewStack builds a pass-through or reflecting stack.  Reflecting mode
// needs at least two rotors, the last of which supplies an involution.
func NewStack(rotors []*Descriptor, mode StackMode) (*Stack, error) {
	if mode == Reflecting && len(rotors) < 2 {
		return nil, cryptors.NewError(cryptors.ErrObjectCreate, "reflecting stack needs at least 2 rotors, got %d", len(rotors))
	}
	size := 0
	for _, r := range rotors {
		if size == 0 {
			size = r.Size()
		} else if r.Size() != size {
			return nil, cryptors.NewError(cryptors.ErrObjectCreate, "rotor %q has size %d, stack has size %d", r.Slot, r.Size(), size)
		}
	}
	return &Stack{rotors: rotors, mode: mode, size: size}, nil
}

// NewFeedbackStack builds a feedback stack.  The feedback permutation must
// match the rotor contact count.  Inputs fed to Encrypt and Decrypt must
// lie outside the feedback contact set.
func NewFeedbackStack(rotors []*Descriptor, points []int, fperm *permutation.Permutation) (*Stack, error) {
	s, err := NewStack(rotors, Feedback)
	if err != nil {
		return nil, err
	}
	if len(rotors) == 0 || fperm.Size() != rotors[0].Size() {
		return nil, cryptors.NewError(cryptors.ErrObjectCreate, "feedback permutation size does not match rotor contact count")
	}
	s.points = make(map[int]bool, len(points))
	for _, p := range points {
		s.points[p] = true
	}
	s.fperm = fperm
	return s, nil
}

func (s *Stack) Mode() StackMode {
	return s.mode
}

func (s *Stack) Rotors() []*Descriptor {
	return s.rotors
}

func (s *Stack) forward(x int) int {
	for _, r := range s.rotors {
		x = r.RotEnc(x)
	}
	return x
}

func (s *Stack) backward(x int) int {
	for i := len(s.rotors) - 1; i >= 0; i-- {
		x = s.rotors[i].RotDec(x)
	}
	return x
}

// Encrypt drives one contact through the stack at its current state.
func (s *Stack) Encrypt(x int) int {
	switch s.mode {
	case Reflecting:
		last := len(s.rotors) - 1
		for i := 0; i < last; i++ {
			x = s.rotors[i].RotEnc(x)
		}
		x = s.rotors[last].RotEnc(x)
		for i := last - 1; i >= 0; i-- {
			x = s.rotors[i].RotDec(x)
		}
		return x
	case Feedback:
		// One full turn of the contacts bounds the walk: a wiring whose
		// cycle stays inside the feedback set must not trap the signal.
		x = s.forward(x)
		for i := 0; s.points[x] && i < s.size; i++ {
			x = s.forward(s.fperm.Encrypt(x))
		}
		return x
	default:
		return s.forward(x)
	}
}

// Decrypt inverts Encrypt at the same state.  In Reflecting mode the two
// are one and the same map.
func (s *Stack) Decrypt(x int) int {
	switch s.mode {
	case Reflecting:
		return s.Encrypt(x)
	case Feedback:
		for i := 0; i < s.size; i++ {
			t := s.backward(x)
			w := s.fperm.Decrypt(t)
			if !s.points[w] {
				return t
			}
			x = w
		}
		return x
	default:
		return s.backward(x)
	}
}
