package machines

import (
	"fmt"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/bgallie/rotorsim/cryptors"
	"github.com/bgallie/rotorsim/cryptors/permutation"
	"github.com/bgallie/rotorsim/cryptors/rotor"
	"github.com/bgallie/rotorsim/cryptors/rotorset"
	"github.com/bgallie/rotorsim/cryptors/stepper"
)

// sg39WheelSizes are the pin wheel circumferences of rotors 1-3.
var sg39WheelSizes = [3]int{21, 23, 25}

// Sg39 is the Schlüsselgerät 39: four wired rotors and a rewirable
// reflector behind a 26-letter plug field.  Rotors 1-3 ride together
// with pin wheels of coprime sizes; rotor 4 is static.
type Sg39 struct {
	RotorMachine
	set   *rotorset.RotorSet
	plugs *permutation.Permutation
}

// NewSg39 builds the default machine with rotors 0-3, straight plugs,
// empty pin wheels and blank notch rings.
func NewSg39() (*Sg39, error) {
	s := &Sg39{
		RotorMachine: newRotorMachine(MachineSg39, "", "Schlüsselgerät 39", lowerAlpha),
		set:          rotorset.NewSg39Set(),
		plugs:        permutation.Identity(26),
	}
	s.AddRotorSet(s.set)
	s.preStep = true

	reflPerm, err := s.set.Rotor(rotorset.Sg39Reflector)
	if err != nil {
		return nil, err
	}
	refl := rotor.NewDescriptor("reflector", rotorset.Sg39Reflector, reflPerm, false)
	rotors := make([]*rotor.Descriptor, 4)
	for i := 0; i < 4; i++ {
		p, err := s.set.Rotor(i)
		if err != nil {
			return nil, err
		}
		d := rotor.NewDescriptor(fmt.Sprintf("r%d", i+1), i, p, false)
		d.SetRing(0, 0, make([]byte, 26))
		if i < 3 {
			d.Wheel = rotor.NewPinWheel(sg39WheelSizes[i])
		}
		rotors[i] = d
	}
	s.slots = []*rotor.Descriptor{refl, rotors[3], rotors[2], rotors[1], rotors[0]}
	s.hidden["reflector"] = true

	s.stack, err = rotor.NewStack([]*rotor.Descriptor{
		rotors[0], rotors[1], rotors[2], rotors[3], refl,
	}, rotor.Reflecting)
	if err != nil {
		return nil, err
	}
	s.engine = stepper.NewSg39(rotors[0], rotors[1], rotors[2])
	return s, nil
}

func (s *Sg39) setPlugs(p *permutation.Permutation) {
	t := NewPermTransform(p)
	s.inTrans, s.outTrans = t, t
	s.plugs = p
}

func (s *Sg39) SaveIni(f *ini.File) {
	s.saveBase(f)
	f.Section("plugboard").Key("entry").SetValue(rotorset.IntsToString(s.plugs.Fwd()))
}

func (s *Sg39) LoadIni(f *ini.File) error {
	cand, err := NewSg39()
	if err != nil {
		return err
	}
	if err := cand.loadBase(f); err != nil {
		return err
	}
	vals, err := rotorset.StringToInts(f.Section("plugboard").Key("entry").String())
	if err != nil {
		return err
	}
	p, err := permutation.New(vals)
	if err != nil {
		return err
	}
	cand.setPlugs(p)
	*s = *cand
	return nil
}

// SG39 randomizer parameter tags.
const (
	RandSg39One      = "one"
	RandSg39Two      = "two"
	RandSg39Three    = "three"
	RandSg39Special  = "special"
	RandSg39EnigmaM4 = "enigmam4"
)

func (s *Sg39) RandomizerParams() []string {
	return []string{RandSg39One, RandSg39Two, RandSg39Three, RandSg39Special, RandSg39EnigmaM4}
}

// drawSparsePins sets pins so that no two neighbouring positions are
// both set, wrapping around the wheel.
func drawSparsePins(size int, src cryptors.RandomSource) []byte {
	pins := make([]byte, size)
	for i := 0; i < size; i++ {
		if i > 0 && pins[i-1] == 1 {
			continue
		}
		if src.Intn(2) == 1 {
			pins[i] = 1
		}
	}
	if pins[0] == 1 && pins[size-1] == 1 {
		pins[size-1] = 0
	}
	return pins
}

// drawNotches sets exactly count notches at distinct random positions.
func drawNotches(size, count int, src cryptors.RandomSource) []byte {
	data := make([]byte, size)
	for set := 0; set < count; {
		i := src.Intn(size)
		if data[i] == 0 {
			data[i] = 1
			set++
		}
	}
	return data
}

func pinLetters(pins []byte) string {
	var sb strings.Builder
	for i, p := range pins {
		if p != 0 {
			sb.WriteByte(byte('a' + i))
		}
	}
	return sb.String()
}

func (s *Sg39) Randomize(param string) error {
	if param == "" {
		param = RandSg39One
	}
	var wheelPins, rotorNotches func(i int) []byte
	switch param {
	case RandSg39One:
		wheelPins = func(i int) []byte { return drawSparsePins(sg39WheelSizes[i], s.rng) }
		rotorNotches = func(i int) []byte { return drawNotches(26, 1+s.rng.Intn(3), s.rng) }
	case RandSg39Two:
		wheelPins = func(i int) []byte { return drawNotches(sg39WheelSizes[i], sg39WheelSizes[i]/3, s.rng) }
		rotorNotches = func(i int) []byte { return drawNotches(26, 2, s.rng) }
	case RandSg39Three:
		wheelPins = func(i int) []byte { return drawNotches(sg39WheelSizes[i], sg39WheelSizes[i]/2, s.rng) }
		rotorNotches = func(i int) []byte { return drawNotches(26, 3, s.rng) }
	case RandSg39Special:
		// Wheels alone drive the movement.
		wheelPins = func(i int) []byte { return drawSparsePins(sg39WheelSizes[i], s.rng) }
		rotorNotches = func(i int) []byte { return make([]byte, 26) }
	case RandSg39EnigmaM4:
		// Wheel 1 carries a full pin circle, so rotor 1 steps on every
		// tick and the notch chain mimics a four rotor Enigma; the plug
		// field is drawn as an involution.
		wheelPins = func(i int) []byte {
			pins := make([]byte, sg39WheelSizes[i])
			if i == 0 {
				for j := range pins {
					pins[j] = 1
				}
			}
			return pins
		}
		rotorNotches = func(i int) []byte {
			if i == 2 {
				return make([]byte, 26)
			}
			return drawNotches(26, 1, s.rng)
		}
	default:
		return cryptors.NewError(cryptors.ErrSemanticsInput, "unknown randomizer parameter %q", param)
	}
	c := &sg39Configurator{}
	return randomizeMachine(s, c, func() map[string]string {
		digits := []byte("0123456789")
		for i := len(digits) - 1; i > 0; i-- {
			j := s.rng.Intn(i + 1)
			digits[i], digits[j] = digits[j], digits[i]
		}
		var plugs string
		if param == RandSg39EnigmaM4 {
			inv, _ := permutation.RandomInvolution(26, s.rng)
			plugs = permLetters(inv)
		} else {
			plugs = permLetters(permutation.Random(26, s.rng))
		}
		refl, _ := permutation.RandomInvolution(26, s.rng)
		conf := map[string]string{
			"rotors":    string(digits[:4]),
			"rings":     string(lowerAlpha.RandomString(4, s.rng)),
			"reflector": renderInvolution(refl),
			"plugs":     plugs,
		}
		for i := 0; i < 3; i++ {
			conf[fmt.Sprintf("pinswheel%d", i+1)] = pinLetters(wheelPins(i))
			conf[fmt.Sprintf("pinsrotor%d", i+1)] = pinLetters(rotorNotches(i))
		}
		return conf
	})
}

func permLetters(p *permutation.Permutation) string {
	var sb strings.Builder
	for _, v := range p.Fwd() {
		sb.WriteByte(byte('a' + v))
	}
	return sb.String()
}

// parsePinSubset reads a set of unique letters a..max into a pin pattern
// of the given size.
func parsePinSubset(keyword, val string, size int) ([]byte, error) {
	pins := make([]byte, size)
	max := byte('a' + size - 1)
	for i := 0; i < len(val); i++ {
		l := val[i]
		if l < 'a' || l > max {
			return nil, cryptors.NewError(cryptors.ErrSemanticsInput, "pin letter %q of keyword %q out of range a..%c", l, keyword, max)
		}
		if pins[l-'a'] != 0 {
			return nil, cryptors.NewError(cryptors.ErrSemanticsInput, "pin %q of keyword %q named twice", l, keyword)
		}
		pins[l-'a'] = 1
	}
	return pins, nil
}

type sg39Configurator struct{}

func (c *sg39Configurator) Keywords() []Keyword {
	return []Keyword{
		{Name: "rotors", Type: "string", Help: "four unique rotor digits 0-9 for slots 1-4"},
		{Name: "rings", Type: "string", Help: "four ring setting letters"},
		{Name: "reflector", Type: "string", Help: "13 reflector pairs as 26 letters"},
		{Name: "plugs", Type: "string", Help: "plug field as a 26 letter substitution"},
		{Name: "pinswheel1", Type: "string", Help: "set pins of the 21 wheel as letters a-u"},
		{Name: "pinswheel2", Type: "string", Help: "set pins of the 23 wheel as letters a-w"},
		{Name: "pinswheel3", Type: "string", Help: "set pins of the 25 wheel as letters a-y"},
		{Name: "pinsrotor1", Type: "string", Help: "notch positions of rotor 1 as letters a-z"},
		{Name: "pinsrotor2", Type: "string", Help: "notch positions of rotor 2 as letters a-z"},
		{Name: "pinsrotor3", Type: "string", Help: "notch positions of rotor 3 as letters a-z"},
	}
}

type sg39Staging struct {
	rotorIDs    [4]int
	ringOffsets [4]int
	refl        *permutation.Permutation
	plugs       *permutation.Permutation
	wheelPins   [3][]byte
	notches     [3][]byte
}

func (c *sg39Configurator) parse(conf map[string]string) (*sg39Staging, error) {
	if err := requireKeywords(conf, "rotors", "rings", "reflector", "plugs",
		"pinswheel1", "pinswheel2", "pinswheel3",
		"pinsrotor1", "pinsrotor2", "pinsrotor3"); err != nil {
		return nil, err
	}
	st := &sg39Staging{}
	rotors := conf["rotors"]
	if len(rotors) != 4 {
		return nil, cryptors.NewError(cryptors.ErrSyntaxInput, "rotors needs 4 digits, got %d", len(rotors))
	}
	seen := make(map[byte]bool, 4)
	for i := 0; i < 4; i++ {
		d := rotors[i]
		if d < '0' || d > '9' {
			return nil, cryptors.NewError(cryptors.ErrSemanticsInput, "rotor digit %q out of range 0..9", d)
		}
		if seen[d] {
			return nil, cryptors.NewError(cryptors.ErrSemanticsInput, "rotor %q mounted twice", d)
		}
		seen[d] = true
		st.rotorIDs[i] = int(d - '0')
	}
	rings := conf["rings"]
	if len(rings) != 4 {
		return nil, cryptors.NewError(cryptors.ErrSyntaxInput, "rings needs 4 letters, got %d", len(rings))
	}
	for i := 0; i < 4; i++ {
		if rings[i] < 'a' || rings[i] > 'z' {
			return nil, cryptors.NewError(cryptors.ErrSyntaxInput, "ring letter %q out of range", rings[i])
		}
		st.ringOffsets[i] = (26 - int(rings[i]-'a')) % 26
	}
	refl, err := parseInvolutionPairs("reflector", conf["reflector"])
	if err != nil {
		return nil, err
	}
	st.refl = refl
	plugs := conf["plugs"]
	if len(plugs) != 26 {
		return nil, cryptors.NewError(cryptors.ErrSyntaxInput, "plugs needs 26 letters, got %d", len(plugs))
	}
	fwd := make([]int, 26)
	for i := 0; i < 26; i++ {
		if plugs[i] < 'a' || plugs[i] > 'z' {
			return nil, cryptors.NewError(cryptors.ErrSyntaxInput, "plug letter %q out of range", plugs[i])
		}
		fwd[i] = int(plugs[i] - 'a')
	}
	p, err := permutation.New(fwd)
	if err != nil {
		return nil, cryptors.NewError(cryptors.ErrSemanticsInput, "plugs is not a permutation")
	}
	st.plugs = p
	for i := 0; i < 3; i++ {
		pins, err := parsePinSubset(fmt.Sprintf("pinswheel%d", i+1), conf[fmt.Sprintf("pinswheel%d", i+1)], sg39WheelSizes[i])
		if err != nil {
			return nil, err
		}
		st.wheelPins[i] = pins
		notches, err := parsePinSubset(fmt.Sprintf("pinsrotor%d", i+1), conf[fmt.Sprintf("pinsrotor%d", i+1)], 26)
		if err != nil {
			return nil, err
		}
		st.notches[i] = notches
	}
	return st, nil
}

func (c *sg39Configurator) ConfigureMachine(conf map[string]string, m Machine) error {
	s, ok := m.(*Sg39)
	if !ok {
		return cryptors.NewError(cryptors.ErrObjectCreate, "SG39 configurator got a different machine")
	}
	st, err := c.parse(conf)
	if err != nil {
		return err
	}
	for i := 0; i < 4; i++ {
		d := s.Slot(fmt.Sprintf("r%d", i+1))
		p, err := s.set.Rotor(st.rotorIDs[i])
		if err != nil {
			return err
		}
		d.RotorID = st.rotorIDs[i]
		d.ReplacePerm(p, false)
		data := make([]byte, 26)
		if i < 3 {
			data = st.notches[i]
			d.Wheel.SetPins(st.wheelPins[i])
			d.Wheel.SetPos(0)
		}
		d.SetRing(0, st.ringOffsets[i], data)
	}
	s.Slot("reflector").ReplacePerm(st.refl, false)
	s.setPlugs(st.plugs)
	for _, d := range s.slots {
		d.SetPos(0)
	}
	s.counter = 0
	return nil
}

func (c *sg39Configurator) GetConfig(m Machine) (map[string]string, error) {
	s, ok := m.(*Sg39)
	if !ok {
		return nil, cryptors.NewError(cryptors.ErrObjectCreate, "SG39 configurator got a different machine")
	}
	var rotors, rings strings.Builder
	conf := make(map[string]string)
	for i := 0; i < 4; i++ {
		d := s.Slot(fmt.Sprintf("r%d", i+1))
		rotors.WriteByte(byte('0' + d.RotorID))
		rings.WriteByte(byte('a' + (26-d.Ring().Offset)%26))
		if i < 3 {
			conf[fmt.Sprintf("pinswheel%d", i+1)] = pinLetters(d.Wheel.Pins())
			conf[fmt.Sprintf("pinsrotor%d", i+1)] = pinLetters(d.Ring().Data)
		}
	}
	conf["rotors"] = rotors.String()
	conf["rings"] = rings.String()
	conf["reflector"] = renderInvolution(s.Slot("reflector").Rotor().Perm())
	conf["plugs"] = permLetters(s.plugs)
	return conf, nil
}

func (c *sg39Configurator) MakeMachine(conf map[string]string) (Machine, error) {
	s, err := NewSg39()
	if err != nil {
		return nil, err
	}
	if err := c.ConfigureMachine(conf, s); err != nil {
		return nil, err
	}
	return s, nil
}
