package machines

import (
	"fmt"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/bgallie/rotorsim/cryptors"
	"github.com/bgallie/rotorsim/cryptors/alphabet"
	"github.com/bgallie/rotorsim/cryptors/permutation"
	"github.com/bgallie/rotorsim/cryptors/rotor"
	"github.com/bgallie/rotorsim/cryptors/rotorset"
	"github.com/bgallie/rotorsim/cryptors/stepper"
)

// kl7Alpha is the 36-symbol rotor alphabet: the 26 letters with the ten
// digit contacts interleaved at their historical positions.
var kl7Alpha = alphabet.FromString("ab1cde2fg3hij4klm5no6pq7rs8tu9vw0xyz")

// kl7ShiftCode is the J key, which toggles between letters and figures
// in both directions.
const kl7ShiftCode = 12

// kl7StaticSlot is the rotor position carrying the wide ring; it never
// moves.
const kl7StaticSlot = 3

// Kl7 is the TSEC/KL-7: eight 36-contact rotors in a feedback stack
// whose ten digit contacts re-enter the stack, a seven-rotor stepping
// gear read through selectable notch rings, and a letter ring on every
// rotor that offsets the visible position.
type Kl7 struct {
	RotorMachine
	set *rotorset.RotorSet
}

// kl7FeedbackPoints lists the digit contacts of the rotor alphabet.
func kl7FeedbackPoints() []int {
	points := make([]int, 0, 10)
	for i, r := range "ab1cde2fg3hij4klm5no6pq7rs8tu9vw0xyz" {
		if r >= '0' && r <= '9' {
			points = append(points, i)
		}
	}
	return points
}

// NewKl7 builds the default machine with rotors a-h and notch rings 1-7
// on the movable slots.
func NewKl7() (*Kl7, error) {
	k := &Kl7{
		RotorMachine: newRotorMachine(MachineKl7, "", "TSEC/KL-7", kl7Alpha),
		set:          rotorset.NewKl7Set(),
	}
	k.AddRotorSet(k.set)
	k.windowByLetterRing = true
	k.preStep = true

	ringID := 1
	for i := 0; i < 8; i++ {
		p, err := k.set.Rotor(i)
		if err != nil {
			return nil, err
		}
		d := rotor.NewDescriptor(fmt.Sprintf("r%d", i+1), i, p, false)
		if i != kl7StaticSlot {
			data, err := k.set.Ring(ringID)
			if err != nil {
				return nil, err
			}
			d.SetRing(ringID, 0, data)
			ringID++
		}
		k.slots = append(k.slots, d)
	}

	var err error
	k.stack, err = rotor.NewFeedbackStack(k.slots, kl7FeedbackPoints(), permutation.Identity(36))
	if err != nil {
		return nil, err
	}
	k.engine = stepper.NewKl7(k.slots)
	k.keyboard = NewShiftState(kl7ShiftCode, kl7ShiftCode)
	k.printer = NewShiftState(kl7ShiftCode, kl7ShiftCode)
	return k, nil
}

func (k *Kl7) SaveIni(f *ini.File) {
	k.saveBase(f)
}

func (k *Kl7) LoadIni(f *ini.File) error {
	cand, err := NewKl7()
	if err != nil {
		return err
	}
	if err := cand.loadBase(f); err != nil {
		return err
	}
	*k = *cand
	return nil
}

func (k *Kl7) RandomizerParams() []string {
	return []string{RandBasic}
}

func (k *Kl7) Randomize(param string) error {
	_ = param
	c := &kl7Configurator{}
	return randomizeMachine(k, c, func() map[string]string {
		letters := []byte("abcdefghijklm")
		for i := len(letters) - 1; i > 0; i-- {
			j := k.rng.Intn(i + 1)
			letters[i], letters[j] = letters[j], letters[i]
		}
		alphaRings := make([]int, 8)
		for i := range alphaRings {
			alphaRings[i] = 1 + k.rng.Intn(36)
		}
		ringIDs := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}
		for i := len(ringIDs) - 1; i > 0; i-- {
			j := k.rng.Intn(i + 1)
			ringIDs[i], ringIDs[j] = ringIDs[j], ringIDs[i]
		}
		var notches strings.Builder
		for i := 0; i < 7; i++ {
			notches.WriteByte(byte('a' + k.rng.Intn(26)))
			if k.rng.Intn(2) == 1 {
				notches.WriteByte('+')
			}
		}
		return map[string]string{
			"rotors":      string(letters[:8]),
			"alpharings":  rotorset.IntsToString(alphaRings),
			"notchselect": rotorset.IntsToString(ringIDs[:7]),
			"notchrings":  notches.String(),
		}
	})
}

// parseNotchRings reads seven notch ring settings, each a letter
// optionally followed by + for the numeric contact after that letter.
// The returned values are contact indices in the 36-symbol alphabet.
func parseNotchRings(val string) ([]int, error) {
	out := make([]int, 0, 7)
	for i := 0; i < len(val); i++ {
		c := val[i]
		if c < 'a' || c > 'z' {
			return nil, cryptors.NewError(cryptors.ErrSyntaxInput, "notch ring setting %q is not a letter", c)
		}
		v, err := kl7Alpha.FromVal(rune(c))
		if err != nil {
			return nil, cryptors.NewError(cryptors.ErrSyntaxInput, "notch ring letter %q is not on the ring", c)
		}
		if i+1 < len(val) && val[i+1] == '+' {
			v = (v + 1) % 36
			i++
		}
		out = append(out, v)
	}
	if len(out) != 7 {
		return nil, cryptors.NewError(cryptors.ErrSyntaxInput, "notchrings needs 7 settings, got %d", len(out))
	}
	return out, nil
}

type kl7Configurator struct{}

func (c *kl7Configurator) Keywords() []Keyword {
	return []Keyword{
		{Name: "rotors", Type: "string", Help: "eight unique rotor letters a-m, the fourth slot is static"},
		{Name: "alpharings", Type: "ints", Help: "eight letter ring positions 1-36"},
		{Name: "notchselect", Type: "ints", Help: "seven unique notch ring numbers 1-11 for the movable slots"},
		{Name: "notchrings", Type: "string", Help: "seven notch ring settings, a letter optionally followed by +"},
	}
}

type kl7Staging struct {
	rotorIDs    [8]int
	letterRings [8]int
	ringIDs     [7]int
	ringOffsets [7]int
}

func (c *kl7Configurator) parse(conf map[string]string) (*kl7Staging, error) {
	if err := requireKeywords(conf, "rotors", "alpharings", "notchselect", "notchrings"); err != nil {
		return nil, err
	}
	st := &kl7Staging{}
	rotors := conf["rotors"]
	if len(rotors) != 8 {
		return nil, cryptors.NewError(cryptors.ErrSyntaxInput, "rotors needs 8 letters, got %d", len(rotors))
	}
	seen := make(map[byte]bool, 8)
	for i := 0; i < 8; i++ {
		l := rotors[i]
		if l < 'a' || l > 'm' {
			return nil, cryptors.NewError(cryptors.ErrSemanticsInput, "rotor letter %q out of range a..m", l)
		}
		if seen[l] {
			return nil, cryptors.NewError(cryptors.ErrSemanticsInput, "rotor %q mounted twice", l)
		}
		seen[l] = true
		st.rotorIDs[i] = int(l - 'a')
	}
	alphaRings, err := rotorset.StringToInts(conf["alpharings"])
	if err != nil {
		return nil, err
	}
	if len(alphaRings) != 8 {
		return nil, cryptors.NewError(cryptors.ErrSyntaxInput, "alpharings needs 8 values, got %d", len(alphaRings))
	}
	for i, v := range alphaRings {
		if v < 1 || v > 36 {
			return nil, cryptors.NewError(cryptors.ErrSemanticsInput, "letter ring position %d out of range 1..36", v)
		}
		st.letterRings[i] = v - 1
	}
	ringIDs, err := rotorset.StringToInts(conf["notchselect"])
	if err != nil {
		return nil, err
	}
	if len(ringIDs) != 7 {
		return nil, cryptors.NewError(cryptors.ErrSyntaxInput, "notchselect needs 7 values, got %d", len(ringIDs))
	}
	seenRing := make(map[int]bool, 7)
	for i, v := range ringIDs {
		if v < 1 || v > 11 {
			return nil, cryptors.NewError(cryptors.ErrSemanticsInput, "notch ring number %d out of range 1..11", v)
		}
		if seenRing[v] {
			return nil, cryptors.NewError(cryptors.ErrSemanticsInput, "notch ring %d mounted twice", v)
		}
		seenRing[v] = true
		st.ringIDs[i] = v
	}
	contacts, err := parseNotchRings(conf["notchrings"])
	if err != nil {
		return nil, err
	}
	for i, v := range contacts {
		st.ringOffsets[i] = (36 - v) % 36
	}
	return st, nil
}

func (c *kl7Configurator) ConfigureMachine(conf map[string]string, m Machine) error {
	k, ok := m.(*Kl7)
	if !ok {
		return cryptors.NewError(cryptors.ErrObjectCreate, "KL7 configurator got a different machine")
	}
	st, err := c.parse(conf)
	if err != nil {
		return err
	}
	ring := 0
	for i, d := range k.slots {
		p, err := k.set.Rotor(st.rotorIDs[i])
		if err != nil {
			return err
		}
		d.RotorID = st.rotorIDs[i]
		d.ReplacePerm(p, false)
		d.LetterRing = st.letterRings[i]
		if i == kl7StaticSlot {
			continue
		}
		data, err := k.set.Ring(st.ringIDs[ring])
		if err != nil {
			return err
		}
		d.SetRing(st.ringIDs[ring], st.ringOffsets[ring], data)
		ring++
	}
	k.engine.Reset()
	k.counter = 0
	return nil
}

func (c *kl7Configurator) GetConfig(m Machine) (map[string]string, error) {
	k, ok := m.(*Kl7)
	if !ok {
		return nil, cryptors.NewError(cryptors.ErrObjectCreate, "KL7 configurator got a different machine")
	}
	var rotors, notches strings.Builder
	alphaRings := make([]int, 0, 8)
	ringIDs := make([]int, 0, 7)
	for i, d := range k.slots {
		rotors.WriteByte(byte('a' + d.RotorID))
		alphaRings = append(alphaRings, d.LetterRing+1)
		if i == kl7StaticSlot {
			continue
		}
		r := d.Ring()
		ringIDs = append(ringIDs, r.ID)
		v := (36 - r.Offset) % 36
		sym := kl7Alpha.ToVal(v)
		if sym >= '0' && sym <= '9' {
			notches.WriteRune(kl7Alpha.ToVal((v + 35) % 36))
			notches.WriteByte('+')
		} else {
			notches.WriteRune(sym)
		}
	}
	return map[string]string{
		"rotors":      rotors.String(),
		"alpharings":  rotorset.IntsToString(alphaRings),
		"notchselect": rotorset.IntsToString(ringIDs),
		"notchrings":  notches.String(),
	}, nil
}

func (c *kl7Configurator) MakeMachine(conf map[string]string) (Machine, error) {
	k, err := NewKl7()
	if err != nil {
		return nil, err
	}
	if err := c.ConfigureMachine(conf, k); err != nil {
		return nil, err
	}
	return k, nil
}
