package stepper

import (
	"github.com/bgallie/rotorsim/cryptors/rotor"
)

// Abwehr drives the four wheels of the Enigma G like an odometer: the
// fast wheel always moves, each slower wheel moves when every faster
// wheel shows a turnover, and even the reflector rotates.
type Abwehr struct {
	fast   *rotor.Descriptor
	middle *rotor.Descriptor
	slow   *rotor.Descriptor
	ukw    *rotor.Descriptor
}

func NewAbwehr(fast, middle, slow, ukw *rotor.Descriptor) *Abwehr {
	return &Abwehr{fast: fast, middle: middle, slow: slow, ukw: ukw}
}

func (a *Abwehr) Step() {
	fastAt := a.fast.NotchAtPos()
	middleAt := a.middle.NotchAtPos()
	slowAt := a.slow.NotchAtPos()
	if fastAt && middleAt && slowAt {
		a.ukw.Advance()
	}
	if fastAt && middleAt {
		a.slow.Advance()
	}
	if fastAt {
		a.middle.Advance()
	}
	a.fast.Advance()
}

func (a *Abwehr) Reset() {
	a.fast.SetPos(0)
	a.middle.SetPos(0)
	a.slow.SetPos(0)
	a.ukw.SetPos(0)
}
