package machines

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bgallie/rotorsim/cryptors"
	"github.com/bgallie/rotorsim/cryptors/permutation"
	"github.com/bgallie/rotorsim/cryptors/rotorset"
)

func boolString(b bool) string {
	return strconv.FormatBool(b)
}

func intString(v int) string {
	return strconv.Itoa(v)
}

// parsePlugLetters reads an even-length string of distinct letters as a
// cable list in plug order.
func parsePlugLetters(s string) ([][2]int, error) {
	if len(s)%2 != 0 {
		return nil, cryptors.NewError(cryptors.ErrSyntaxInput, "plug list %q has odd length", s)
	}
	if len(s) > 26 {
		return nil, cryptors.NewError(cryptors.ErrSemanticsInput, "plug list %q names more than 13 cables", s)
	}
	seen := make(map[byte]bool, len(s))
	pairs := make([][2]int, 0, len(s)/2)
	for i := 0; i+1 < len(s); i += 2 {
		for j := i; j < i+2; j++ {
			c := s[j]
			if c < 'a' || c > 'z' {
				return nil, cryptors.NewError(cryptors.ErrSyntaxInput, "plug letter %q out of range", c)
			}
			if seen[c] {
				return nil, cryptors.NewError(cryptors.ErrSemanticsInput, "letter %c is plugged twice", c)
			}
			seen[c] = true
		}
		pairs = append(pairs, [2]int{int(s[i] - 'a'), int(s[i+1] - 'a')})
	}
	return pairs, nil
}

func formatPlugLetters(pairs [][2]int) string {
	var sb strings.Builder
	for _, p := range pairs {
		sb.WriteByte(byte('a' + p[0]))
		sb.WriteByte(byte('a' + p[1]))
	}
	return sb.String()
}

// parsePlugboardValue reads the plugboard keyword: an optional "NN:"
// Uhr dial prefix followed by the cable letters.  With an Uhr exactly 10
// cables are required.  The returned dial is -1 without an Uhr.
func parsePlugboardValue(s string) ([][2]int, int, error) {
	dial := -1
	if i := strings.IndexByte(s, ':'); i >= 0 {
		d, err := strconv.Atoi(s[:i])
		if err != nil || d < 0 || d > 39 {
			return nil, 0, cryptors.NewError(cryptors.ErrSyntaxInput, "uhr dial %q out of range 0..39", s[:i])
		}
		dial = d
		s = s[i+1:]
		if len(s) != 20 {
			return nil, 0, cryptors.NewError(cryptors.ErrSemanticsInput, "uhr needs exactly 10 cables, got %d letters", len(s))
		}
	}
	pairs, err := parsePlugLetters(s)
	if err != nil {
		return nil, 0, err
	}
	return pairs, dial, nil
}

type enigmaConfigurator struct {
	v *enigmaVariant
}

func newEnigmaConfigurator(machineType string) (Configurator, error) {
	if machineType == "" {
		machineType = EnigmaServices
	}
	v, ok := enigmaVariants[machineType]
	if !ok {
		return nil, cryptors.NewError(cryptors.ErrObjectCreate, "no Enigma variant is called %q", machineType)
	}
	return &enigmaConfigurator{v: v}, nil
}

func (c *enigmaConfigurator) Keywords() []Keyword {
	kws := []Keyword{
		{Name: "rotors", Type: "string", Help: "rotor selection digits, rightmost is the fast rotor"},
		{Name: "rings", Type: "string", Help: "ring setting letters, one per rotor"},
	}
	if c.v.steckered {
		kws = append(kws, Keyword{Name: "plugboard", Type: "string", Help: "plug pairs, optionally prefixed by an uhr dial NN:"})
	}
	if c.v.ukwdCapable {
		kws = append(kws, Keyword{Name: "ukwdwiring", Type: "string", Help: "12 reflector pairs over the 24 free contacts"})
	}
	return kws
}

type enigmaStaging struct {
	ukwID       int
	greekID     int
	movables    [3]int
	ringOffsets []int
	plugPairs   [][2]int
	uhrDial     int
	ukwdPerm    *permutation.Permutation
}

func (c *enigmaConfigurator) parse(conf map[string]string) (*enigmaStaging, error) {
	v := c.v
	required := []string{"rotors", "rings"}
	if v.steckered {
		required = append(required, "plugboard")
	}
	if v.typ == EnigmaKD {
		required = append(required, "ukwdwiring")
	}
	if err := requireKeywords(conf, required...); err != nil {
		return nil, err
	}

	st := &enigmaStaging{uhrDial: -1}
	rotors := conf["rotors"]
	want := 3
	if len(v.ukwChoices) > 0 {
		want++
	}
	if v.hasGreek {
		want++
	}
	if len(rotors) != want {
		return nil, cryptors.NewError(cryptors.ErrSyntaxInput, "rotors needs %d digits, got %d", want, len(rotors))
	}
	pos := 0
	if len(v.ukwChoices) > 0 {
		id, ok := v.ukwChoices[rotors[pos]]
		if !ok {
			return nil, cryptors.NewError(cryptors.ErrSemanticsInput, "no reflector is selected by %q", rotors[pos])
		}
		st.ukwID = id
		pos++
	}
	if v.hasGreek {
		id, ok := v.greekChoices[rotors[pos]]
		if !ok {
			return nil, cryptors.NewError(cryptors.ErrSemanticsInput, "no greek wheel is selected by %q", rotors[pos])
		}
		st.greekID = id
		pos++
	}
	seen := make(map[byte]bool)
	for i := 0; i < 3; i++ {
		d := rotors[pos+i]
		if d < '1' || d > byte('0'+v.rotorDigits) {
			return nil, cryptors.NewError(cryptors.ErrSemanticsInput, "rotor digit %q out of range 1..%d", d, v.rotorDigits)
		}
		if seen[d] {
			return nil, cryptors.NewError(cryptors.ErrSemanticsInput, "rotor %q selected twice", d)
		}
		seen[d] = true
		st.movables[i] = int(d - '0')
	}

	rings := conf["rings"]
	ringCount := 3
	if v.hasGreek {
		ringCount++
	}
	if len(rings) != ringCount {
		return nil, cryptors.NewError(cryptors.ErrSyntaxInput, "rings needs %d letters, got %d", ringCount, len(rings))
	}
	st.ringOffsets = make([]int, ringCount)
	for i := 0; i < ringCount; i++ {
		c := rings[i]
		if c < 'a' || c > 'z' {
			return nil, cryptors.NewError(cryptors.ErrSyntaxInput, "ring letter %q out of range", c)
		}
		st.ringOffsets[i] = (26 - int(c-'a')) % 26
	}

	if v.steckered {
		pairs, dial, err := parsePlugboardValue(conf["plugboard"])
		if err != nil {
			return nil, err
		}
		if dial >= 0 && !v.uhrCapable {
			return nil, cryptors.NewError(cryptors.ErrSemanticsInput, "variant %s takes no uhr", v.typ)
		}
		st.plugPairs, st.uhrDial = pairs, dial
	}

	if wiring, ok := conf["ukwdwiring"]; ok {
		if !v.ukwdCapable {
			return nil, cryptors.NewError(cryptors.ErrSemanticsInput, "variant %s has no rewirable reflector", v.typ)
		}
		p, err := ParseUkwdWiring(wiring)
		if err != nil {
			return nil, err
		}
		st.ukwdPerm = p
	}
	return st, nil
}

func (c *enigmaConfigurator) ConfigureMachine(conf map[string]string, m Machine) error {
	e, ok := m.(*Enigma)
	if !ok || e.machineType != c.v.typ {
		return cryptors.NewError(cryptors.ErrObjectCreate, "configurator for Enigma %s got a different machine", c.v.typ)
	}
	st, err := c.parse(conf)
	if err != nil {
		return err
	}
	if st.ukwdPerm != nil {
		e.set.AddRotor(rotorset.UkwD, st.ukwdPerm)
	}
	ukwID := st.ukwID
	if ukwID == 0 {
		ukwID = c.v.defaultUkw
	}
	if err := e.mountReflector(ukwID); err != nil {
		return err
	}
	ringPos := 0
	if c.v.hasGreek {
		if err := e.mountWalze(slotGreek, st.greekID, st.ringOffsets[0]); err != nil {
			return err
		}
		ringPos = 1
	}
	for i, slot := range []string{slotSlow, slotMiddle, slotFast} {
		if err := e.mountWalze(slot, st.movables[i], st.ringOffsets[ringPos+i]); err != nil {
			return err
		}
	}
	if c.v.steckered {
		if st.uhrDial >= 0 {
			if err := e.setUhr(st.plugPairs, st.uhrDial); err != nil {
				return err
			}
		} else if err := e.setPlugboard(st.plugPairs); err != nil {
			return err
		}
	}
	for _, d := range e.slots {
		d.SetPos(0)
	}
	e.counter = 0
	return nil
}

func (c *enigmaConfigurator) GetConfig(m Machine) (map[string]string, error) {
	e, ok := m.(*Enigma)
	if !ok || e.machineType != c.v.typ {
		return nil, cryptors.NewError(cryptors.ErrObjectCreate, "configurator for Enigma %s got a different machine", c.v.typ)
	}
	conf := make(map[string]string)
	var rotors []byte
	if len(c.v.ukwChoices) > 0 {
		d, err := digitFor(c.v.ukwChoices, e.Slot(slotUmkehrwalze).RotorID)
		if err != nil {
			return nil, err
		}
		rotors = append(rotors, d)
	}
	ringSlots := []string{slotSlow, slotMiddle, slotFast}
	if c.v.hasGreek {
		d, err := digitFor(c.v.greekChoices, e.Slot(slotGreek).RotorID)
		if err != nil {
			return nil, err
		}
		rotors = append(rotors, d)
		ringSlots = append([]string{slotGreek}, ringSlots...)
	}
	var rings []byte
	for _, name := range ringSlots {
		sl := e.Slot(name)
		if name != slotGreek {
			rotors = append(rotors, byte('0'+sl.RotorID))
		}
		rings = append(rings, byte('a'+(26-sl.Ring().Offset)%26))
	}
	conf["rotors"] = string(rotors)
	conf["rings"] = string(rings)
	if c.v.steckered {
		val := formatPlugLetters(e.plugPairs)
		if e.uhr != nil {
			val = fmt.Sprintf("%02d:%s", e.uhr.Dial(), val)
		}
		conf["plugboard"] = val
	}
	if c.v.ukwdCapable && e.ukwdMounted() {
		wiring, err := FormatUkwdWiring(e.Slot(slotUmkehrwalze).Rotor().Perm())
		if err != nil {
			return nil, err
		}
		conf["ukwdwiring"] = wiring
	}
	return conf, nil
}

func (c *enigmaConfigurator) MakeMachine(conf map[string]string) (Machine, error) {
	e, err := NewEnigma(c.v.typ)
	if err != nil {
		return nil, err
	}
	if err := c.ConfigureMachine(conf, e); err != nil {
		return nil, err
	}
	return e, nil
}

func digitFor(choices map[byte]int, id int) (byte, error) {
	for d, v := range choices {
		if v == id {
			return d, nil
		}
	}
	return 0, cryptors.NewError(cryptors.ErrCallFailed, "rotor id %d matches no selection digit", id)
}

// Randomizer parameter tags of the Enigma family.
const (
	RandUhr      = "uhr"
	RandNoUhr    = "nouhr"
	RandUhrOnly  = "uhronly"
	RandUkwdOnly = "ukwdonly"
	RandBasic    = "basic"
	RandFancy    = "fancy"
)

func (e *Enigma) RandomizerParams() []string {
	switch e.machineType {
	case EnigmaServices:
		return []string{RandUhr, RandNoUhr, RandUhrOnly, RandUkwdOnly, RandBasic, RandFancy}
	case EnigmaM3:
		return []string{RandUkwdOnly, RandBasic}
	}
	// The remaining variants have no tunable dimensions beyond rotor and
	// ring choice; the parameter is advisory and ignored.
	return []string{RandBasic}
}

// drawPlugLetters deals k cables by permuting the alphabet and pairing
// the first 2k letters.
func (e *Enigma) drawPlugLetters(k int) string {
	perm := lowerAlpha.RandomPermutation(e.rng)
	out := make([]byte, 2*k)
	for i := range out {
		out[i] = byte('a' + perm[i])
	}
	return string(out)
}

func (e *Enigma) drawRotorDigits() string {
	v := e.variant
	var out []byte
	if len(v.ukwChoices) > 0 {
		if v.typ == EnigmaM4 {
			out = append(out, byte('1'+e.rng.Intn(2)))
		} else {
			out = append(out, byte('1'+e.rng.Intn(3)))
		}
	}
	if v.hasGreek {
		out = append(out, byte('1'+e.rng.Intn(2)))
	}
	avail := make([]byte, 0, v.rotorDigits)
	for d := byte('1'); d <= byte('0'+v.rotorDigits); d++ {
		avail = append(avail, d)
	}
	for i := 0; i < 3; i++ {
		j := e.rng.Intn(len(avail))
		out = append(out, avail[j])
		avail = append(avail[:j], avail[j+1:]...)
	}
	return string(out)
}

func (e *Enigma) drawRingLetters() string {
	n := 3
	if e.variant.hasGreek {
		n++
	}
	return string(lowerAlpha.RandomString(n, e.rng))
}

func (e *Enigma) Randomize(param string) error {
	if param == "" {
		param = RandBasic
	}
	c, err := newEnigmaConfigurator(e.machineType)
	if err != nil {
		return err
	}
	switch param {
	case RandUhrOnly, RandUkwdOnly:
		if param == RandUhrOnly && !e.variant.uhrCapable {
			return cryptors.NewError(cryptors.ErrSemanticsInput, "variant %s takes no uhr", e.machineType)
		}
		if param == RandUkwdOnly && !e.variant.ukwdCapable {
			return cryptors.NewError(cryptors.ErrSemanticsInput, "variant %s has no rewirable reflector", e.machineType)
		}
		base, err := c.GetConfig(e)
		if err != nil {
			return err
		}
		return randomizeMachine(e, c, func() map[string]string {
			conf := make(map[string]string, len(base))
			for k, v := range base {
				conf[k] = v
			}
			if param == RandUhrOnly {
				conf["plugboard"] = fmt.Sprintf("%02d:%s", e.rng.Intn(40), e.drawPlugLetters(10))
			} else {
				conf["ukwdwiring"], _ = FormatUkwdWiring(RandomUkwd(e.rng))
				if r := []byte(conf["rotors"]); len(e.variant.ukwChoices) > 0 {
					r[0] = '4'
					conf["rotors"] = string(r)
				}
			}
			return conf
		})
	}
	withUhr := e.variant.uhrCapable && (param == RandUhr || param == RandFancy)
	withUkwd := e.variant.ukwdCapable && param == RandFancy
	return randomizeMachine(e, c, func() map[string]string {
		conf := map[string]string{
			"rotors": e.drawRotorDigits(),
			"rings":  e.drawRingLetters(),
		}
		if e.variant.steckered {
			if withUhr {
				conf["plugboard"] = fmt.Sprintf("%02d:%s", e.rng.Intn(40), e.drawPlugLetters(10))
			} else {
				conf["plugboard"] = e.drawPlugLetters(10)
			}
		}
		if withUkwd {
			conf["ukwdwiring"], _ = FormatUkwdWiring(RandomUkwd(e.rng))
			r := []byte(conf["rotors"])
			r[0] = '4'
			conf["rotors"] = string(r)
		}
		if e.machineType == EnigmaKD {
			conf["ukwdwiring"], _ = FormatUkwdWiring(RandomUkwd(e.rng))
		}
		return conf
	})
}
