package stepper

import (
	"github.com/bgallie/rotorsim/cryptors/rotor"
)

// Enigma drives the three movable wheels of the steckered Enigmas and the
// Typex.  All notch readings are taken before any wheel moves, which
// produces the double-stepping anomaly of the middle wheel: it advances
// both when the fast wheel shows a turnover and when it shows one itself.
type Enigma struct {
	fast   *rotor.Descriptor
	middle *rotor.Descriptor
	slow   *rotor.Descriptor
}

func NewEnigma(fast, middle, slow *rotor.Descriptor) *Enigma {
	return &Enigma{fast: fast, middle: middle, slow: slow}
}

func (e *Enigma) Step() {
	fastAt := e.fast.NotchAtPos()
	middleAt := e.middle.NotchAtPos()
	if fastAt || middleAt {
		e.middle.Advance()
	}
	if middleAt {
		e.slow.Advance()
	}
	e.fast.Advance()
}

func (e *Enigma) Reset() {
	e.fast.SetPos(0)
	e.middle.SetPos(0)
	e.slow.SetPos(0)
}
