package stepper

import (
	"github.com/bgallie/rotorsim/cryptors/rotor"
)

// Nema steps the wheel train of the Swiss Nema.  Wheels are arranged
// right to left as red wheel, four (drive wheel, contact rotor) pairs,
// red wheel, reflector.  Both red wheels advance on every tick; each
// pair follows the notch ring of the nearest drive wheel on its right,
// and the reflector follows the left red wheel.  All notches are read
// before anything moves.
type Nema struct {
	redRight  *rotor.Descriptor
	redLeft   *rotor.Descriptor
	drive     []*rotor.Descriptor
	contact   []*rotor.Descriptor
	reflector *rotor.Descriptor
}

func NewNema(redRight, redLeft *rotor.Descriptor, drive, contact []*rotor.Descriptor, reflector *rotor.Descriptor) *Nema {
	return &Nema{
		redRight:  redRight,
		redLeft:   redLeft,
		drive:     drive,
		contact:   contact,
		reflector: reflector,
	}
}

func (n *Nema) Step() {
	rightAt := n.redRight.NotchAtPos()
	leftAt := n.redLeft.NotchAtPos()
	driveAt := make([]bool, len(n.drive))
	for i, d := range n.drive {
		driveAt[i] = d.NotchAtPos()
	}

	n.redRight.Advance()
	n.redLeft.Advance()
	for i := range n.drive {
		at := rightAt
		if i > 0 {
			at = driveAt[i-1]
		}
		if at {
			n.drive[i].Advance()
			n.contact[i].Advance()
		}
	}
	if leftAt {
		n.reflector.Advance()
	}
}

func (n *Nema) Reset() {
	n.redRight.SetPos(0)
	n.redLeft.SetPos(0)
	for i := range n.drive {
		n.drive[i].SetPos(0)
		n.contact[i].SetPos(0)
	}
	n.reflector.SetPos(0)
}
