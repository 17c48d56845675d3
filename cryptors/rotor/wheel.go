package rotor

// PinWheel is one of the three SG39 notch wheels: a circle of 21, 23 or 25
// positions, each carrying a settable pin.  The wheel advances by one on
// every tick and its pin reading gates the stepping of its rotor.
type PinWheel struct {
	pos  int
	pins []byte
}

func NewPinWheel(size int) *PinWheel {
	return &PinWheel{pins: make([]byte, size)}
}

func (w *PinWheel) Size() int {
	return len(w.pins)
}

func (w *PinWheel) Pos() int {
	return w.pos
}

func (w *PinWheel) SetPos(p int) {
	n := len(w.pins)
	w.pos = ((p % n) + n) % n
}

func (w *PinWheel) Advance() {
	w.pos = (w.pos + 1) % len(w.pins)
}

// AtPin reports whether the pin at the current position is set.
func (w *PinWheel) AtPin() bool {
	return w.pins[w.pos] != 0
}

// Pins returns a copy of the pin pattern.
func (w *PinWheel) Pins() []byte {
	return append([]byte(nil), w.pins...)
}

// SetPins replaces the pin pattern; extra entries are ignored, missing
// entries read as unset.
func (w *PinWheel) SetPins(pins []byte) {
	data := make([]byte, len(w.pins))
	copy(data, pins)
	w.pins = data
}

// SetPin sets or clears a single pin.
func (w *PinWheel) SetPin(i int, set bool) {
	n := len(w.pins)
	i = ((i % n) + n) % n
	if set {
		w.pins[i] = 1
	} else {
		w.pins[i] = 0
	}
}
