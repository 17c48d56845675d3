package stepper

import (
	"github.com/bgallie/rotorsim/cryptors"
	"github.com/bgallie/rotorsim/cryptors/rotor"
)

// letterO is the stepping reference letter of the CSP 889/2900.
const letterO = 14

// Driver bank slot indices, left to right as mounted.
const (
	driverStatorL = 0
	driverSlow    = 1
	driverFast    = 2
	driverMiddle  = 3
	driverStatorR = 4
)

// indexBus889 routes a driver bank output letter to an index bank input
// contact on the CSP 889.
var indexBus889 = [26]int{
	9, 1, 2, 3, 3, 4, 4, 4, 5, 5, 5, 6, 6,
	6, 6, 7, 7, 7, 7, 7, 8, 8, 8, 8, 8, 8,
}

// indexBus2900 is the CSP 2900 wiring of the same bus: the outputs
// p, q and r are left unconnected.
var indexBus2900 = [26]int{
	9, 1, 2, 3, 3, 4, 4, 4, 5, 5, 5, 6, 6,
	6, 6, -1, -1, -1, 7, 7, 8, 8, 8, 8, 8, 8,
}

// cipherStepMap names the cipher rotor moved by each index bank output.
var cipherStepMap = [10]int{0, 4, 4, 3, 3, 2, 2, 1, 1, 0}

// Sigaba moves the five cipher rotors of the CSP 889/2900.  On each step
// the three moving driver rotors advance like a counter keyed to the
// letter o, a fixed group of driver contacts is energized, and the
// currents surviving the driver and index banks select the cipher rotors
// that move.  On the CSP 2900 two of the cipher rotors turn backward.
type Sigaba struct {
	cipher  []*rotor.Descriptor
	driver  []*rotor.Descriptor
	index   []*rotor.Descriptor
	csp2900 bool
}

func NewSigaba(cipher, driver, index []*rotor.Descriptor, csp2900 bool) *Sigaba {
	return &Sigaba{cipher: cipher, driver: driver, index: index, csp2900: csp2900}
}

// posO is the displacement at which a driver rotor shows the letter o in
// its window.  Reversed rotors carry their scale mirrored.
func posO(d *rotor.Descriptor) int {
	if d.Reversed {
		return (d.Size() - letterO) % d.Size()
	}
	return letterO
}

func (s *Sigaba) atO(d *rotor.Descriptor) bool {
	return d.Pos() == posO(d)
}

func (s *Sigaba) Step() {
	s.moveCipherRotors()
	fastAt := s.atO(s.driver[driverFast])
	middleAt := s.atO(s.driver[driverMiddle])
	if fastAt && middleAt {
		s.driver[driverSlow].Advance()
	}
	if fastAt {
		s.driver[driverMiddle].Advance()
	}
	s.driver[driverFast].Advance()
}

// SetupStep models the zeroizing levers: the named driver rotor is
// advanced by hand and the cipher rotors follow the resulting currents,
// but the normal driver stepping is suppressed.
func (s *Sigaba) SetupStep(slot string) error {
	for _, d := range s.driver {
		if d.Slot == slot {
			d.Advance()
			s.moveCipherRotors()
			return nil
		}
	}
	return cryptors.NewError(cryptors.ErrSemanticsInput, "unknown driver rotor "+slot)
}

func (s *Sigaba) moveCipherRotors() {
	lo, hi := 5, 8
	bus := &indexBus889
	if s.csp2900 {
		lo = 3
		bus = &indexBus2900
	}
	var moved [5]bool
	for c := lo; c <= hi; c++ {
		x := c
		for i := len(s.driver) - 1; i >= 0; i-- {
			x = s.driver[i].RotDec(x)
		}
		ic := bus[x]
		if ic < 0 {
			continue
		}
		for _, d := range s.index {
			ic = d.RotEnc(ic)
		}
		moved[cipherStepMap[ic]] = true
	}
	for i, m := range moved {
		if !m {
			continue
		}
		if s.csp2900 && (i == 1 || i == 3) {
			s.cipher[i].Retract()
		} else {
			s.cipher[i].Advance()
		}
	}
}

func (s *Sigaba) Reset() {
	for _, d := range s.cipher {
		d.SetPos(posO(d))
	}
	for _, d := range s.driver {
		d.SetPos(posO(d))
	}
	for _, d := range s.index {
		d.SetPos(0)
	}
}
