package stepper

import (
	"github.com/bgallie/rotorsim/cryptors/rotor"
)

// kl7NotchSense is the distance, in contacts, between a rotor's active
// contact row and the cam that reads its notch ring.
const kl7NotchSense = 10

// kl7Movable lists the rotor slots that step.  Slot 3 carries the wide
// ring and never moves.
var kl7Movable = [7]int{0, 1, 2, 4, 5, 6, 7}

// Kl7 steps the seven movable rotors of the TSEC/KL-7.  All notch rings
// are read first, at the fixed cam offset; each movable rotor then
// advances when the readings of three designated neighbours permit it.
// At least one rotor moves on every tick.
type Kl7 struct {
	slots []*rotor.Descriptor
}

func NewKl7(slots []*rotor.Descriptor) *Kl7 {
	return &Kl7{slots: slots}
}

func (k *Kl7) Step() {
	var sense [7]bool
	for i, s := range kl7Movable {
		sense[i] = k.slots[s].CurrentData(kl7NotchSense) != 0
	}
	for i, s := range kl7Movable {
		blocker := sense[(i+1)%7]
		release := sense[(i+2)%7] && sense[(i+4)%7]
		if !blocker || release {
			k.slots[s].Advance()
		}
	}
}

func (k *Kl7) Reset() {
	for _, d := range k.slots {
		d.SetDisplacement(0)
	}
}
