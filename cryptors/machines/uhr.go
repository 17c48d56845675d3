package machines

import (
	"github.com/bgallie/rotorsim/cryptors"
)

// uhrScrambler is the wiring of the rotatable Uhr disk: upper contact i
// connects to lower contact uhrScrambler[i].  The table carries the
// designed-in pairing W[4j+2] = W[4j]-2, which makes the box reciprocal
// at every fourth dial position and non-reciprocal everywhere else.
var uhrScrambler = [40]int{
	26, 11, 24, 21, 2, 31, 0, 25, 30, 39,
	28, 13, 22, 35, 20, 37, 6, 23, 4, 33,
	34, 19, 32, 9, 18, 7, 16, 17, 10, 3,
	8, 1, 38, 27, 36, 29, 14, 15, 12, 5,
}

var uhrScramblerInv = func() [40]int {
	var inv [40]int
	for i, v := range uhrScrambler {
		inv[v] = i
	}
	return inv
}()

// Uhr replaces the plugboard of a steckered Enigma.  Ten red a-plugs sit
// on the upper plate with their thick pins at contacts 0,4,..,36; the ten
// black b-plugs mirror them on the lower plate.  Current always enters a
// thick pin, crosses the dial-rotated scrambler disk, and leaves through
// the thin return wire two contacts below, so the letter substitution
// stops being an involution as soon as the dial leaves a multiple of 4.
type Uhr struct {
	dial   int
	cables [10][2]int
	enc    [26]int
	dec    [26]int
}

// NewUhr builds an Uhr with the given cable list ((a,b) letter pairs, in
// plug order) and dial position.  Exactly 10 cables are required and no
// letter may appear twice.
func NewUhr(cables [][2]int, dial int) (*Uhr, error) {
	if len(cables) != 10 {
		return nil, cryptors.NewError(cryptors.ErrSemanticsInput, "uhr needs exactly 10 cables, got %d", len(cables))
	}
	if dial < 0 || dial > 39 {
		return nil, cryptors.NewError(cryptors.ErrSemanticsInput, "uhr dial position %d out of range 0..39", dial)
	}
	u := &Uhr{dial: dial}
	seen := make(map[int]bool, 20)
	for i, c := range cables {
		for _, l := range []int{c[0], c[1]} {
			if l < 0 || l > 25 {
				return nil, cryptors.NewError(cryptors.ErrSemanticsInput, "uhr cable letter %d out of range", l)
			}
			if seen[l] {
				return nil, cryptors.NewError(cryptors.ErrSemanticsInput, "letter %c appears on two uhr cables", 'a'+rune(l))
			}
			seen[l] = true
		}
		u.cables[i] = c
	}
	u.rebuild()
	return u, nil
}

func (u *Uhr) Dial() int {
	return u.dial
}

func (u *Uhr) SetDial(d int) error {
	if d < 0 || d > 39 {
		return cryptors.NewError(cryptors.ErrSemanticsInput, "uhr dial position %d out of range 0..39", d)
	}
	u.dial = d
	u.rebuild()
	return nil
}

// Cables returns the cable list in plug order.
func (u *Uhr) Cables() [][2]int {
	out := make([][2]int, 10)
	for i, c := range u.cables {
		out[i] = c
	}
	return out
}

// rebuild recomputes the letter tables for the current dial.  The decrypt
// table is the wire-for-wire reversal of the encrypt table.
func (u *Uhr) rebuild() {
	for i := range u.enc {
		u.enc[i] = i
	}
	d := u.dial
	for j, c := range u.cables {
		lower := (uhrScrambler[(4*j+d)%40] - d - 2 + 80) % 40
		u.enc[c[0]] = u.cables[lower/4][1]
	}
	for k, c := range u.cables {
		upper := (uhrScramblerInv[(4*k+d)%40] - d - 2 + 80) % 40
		u.enc[c[1]] = u.cables[upper/4][0]
	}
	for i, v := range u.enc {
		u.dec[v] = i
	}
}

func (u *Uhr) Encrypt(x int) int {
	return u.enc[x]
}

func (u *Uhr) Decrypt(x int) int {
	return u.dec[x]
}
