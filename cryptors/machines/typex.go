package machines

import (
	"strings"

	"gopkg.in/ini.v1"

	"github.com/bgallie/rotorsim/cryptors"
	"github.com/bgallie/rotorsim/cryptors/permutation"
	"github.com/bgallie/rotorsim/cryptors/rotor"
	"github.com/bgallie/rotorsim/cryptors/rotorset"
	"github.com/bgallie/rotorsim/cryptors/stepper"
)

// Typex shift codes: the letters x and v double as the letter and figure
// shift keys.
const (
	typexLtrShift = 23
	typexFigShift = 21
)

// typexRotorSlots names the five insertable rotor slots in operator
// order.  The left three move under the double stepping law; the right
// two are stators.
var typexRotorSlots = [5]string{"slow", "middle", "fast", "statorl", "statorr"}

// Typex is the British Typex Mark 22: five insertable rotors, any of
// which may be mounted reversed, in front of a rewirable reflector.
type Typex struct {
	RotorMachine
	set *rotorset.RotorSet
}

// NewTypex builds the default machine with rotors a-e mounted upright and
// the stock reflector wiring.
func NewTypex() (*Typex, error) {
	t := &Typex{
		RotorMachine: newRotorMachine(MachineTypex, "", "Typex Mark 22", lowerAlpha),
		set:          rotorset.NewTypexSet(),
	}
	t.AddRotorSet(t.set)

	reflPerm, err := t.set.Rotor(rotorset.TypexReflector)
	if err != nil {
		return nil, err
	}
	refl := rotor.NewDescriptor("reflector", rotorset.TypexReflector, reflPerm, false)
	t.slots = []*rotor.Descriptor{refl}
	for i, name := range typexRotorSlots {
		p, err := t.set.Rotor(i)
		if err != nil {
			return nil, err
		}
		d := rotor.NewDescriptor(name, i, p, false)
		data, err := t.set.Ring(i)
		if err != nil {
			return nil, err
		}
		d.SetRing(i, 0, data)
		t.slots = append(t.slots, d)
	}
	t.hidden["reflector"] = true

	stackOrder := make([]*rotor.Descriptor, 0, len(t.slots))
	for i := len(t.slots) - 1; i >= 0; i-- {
		stackOrder = append(stackOrder, t.slots[i])
	}
	t.stack, err = rotor.NewStack(stackOrder, rotor.Reflecting)
	if err != nil {
		return nil, err
	}
	t.engine = stepper.NewEnigma(t.Slot("fast"), t.Slot("middle"), t.Slot("slow"))
	t.keyboard = NewShiftState(typexLtrShift, typexFigShift)
	t.printer = NewShiftState(typexLtrShift, typexFigShift)
	return t, nil
}

func (t *Typex) SaveIni(f *ini.File) {
	t.saveBase(f)
}

func (t *Typex) LoadIni(f *ini.File) error {
	cand, err := NewTypex()
	if err != nil {
		return err
	}
	if err := cand.loadBase(f); err != nil {
		return err
	}
	refl := cand.Slot("reflector").Rotor().Perm()
	if _, ok := refl.InvolutionPairs(); !ok {
		return cryptors.NewError(cryptors.ErrSemanticsInput, "reflector wiring is not an involution")
	}
	*t = *cand
	return nil
}

func (t *Typex) RandomizerParams() []string {
	return []string{RandBasic}
}

func (t *Typex) Randomize(param string) error {
	_ = param
	c := &typexConfigurator{}
	return randomizeMachine(t, c, func() map[string]string {
		letters := []byte("abcdefg")
		for i := len(letters) - 1; i > 0; i-- {
			j := t.rng.Intn(i + 1)
			letters[i], letters[j] = letters[j], letters[i]
		}
		var rotors strings.Builder
		for i := 0; i < 5; i++ {
			rotors.WriteByte(letters[i])
			rotors.WriteByte(nrLetter(t.rng.Intn(2) == 1))
		}
		refl, _ := permutation.RandomInvolution(26, t.rng)
		return map[string]string{
			"rotors":    rotors.String(),
			"rings":     string(lowerAlpha.RandomString(5, t.rng)),
			"reflector": renderInvolution(refl),
		}
	})
}

// renderInvolution writes a fixed-point-free involution as 13 letter
// pairs, each pair led by its smaller letter.
func renderInvolution(p *permutation.Permutation) string {
	var sb strings.Builder
	used := make([]bool, 26)
	for i := 0; i < 26; i++ {
		if used[i] {
			continue
		}
		j := p.Encrypt(i)
		used[i], used[j] = true, true
		sb.WriteByte(byte('a' + i))
		sb.WriteByte(byte('a' + j))
	}
	return sb.String()
}

// parseInvolutionPairs reads 26 distinct letters as 13 consecutive
// pairs and returns the involution they define.
func parseInvolutionPairs(keyword, val string) (*permutation.Permutation, error) {
	if len(val) != 26 {
		return nil, cryptors.NewError(cryptors.ErrSyntaxInput, "keyword %q needs 26 letters, got %d", keyword, len(val))
	}
	seen := make([]bool, 26)
	pairs := make([][2]int, 0, 13)
	for i := 0; i+1 < 26; i += 2 {
		a, b := val[i], val[i+1]
		if a < 'a' || a > 'z' || b < 'a' || b > 'z' {
			return nil, cryptors.NewError(cryptors.ErrSyntaxInput, "keyword %q holds a non-letter", keyword)
		}
		if seen[a-'a'] || seen[b-'a'] {
			return nil, cryptors.NewError(cryptors.ErrSemanticsInput, "keyword %q repeats a letter", keyword)
		}
		seen[a-'a'], seen[b-'a'] = true, true
		pairs = append(pairs, [2]int{int(a - 'a'), int(b - 'a')})
	}
	return permutation.FromCycles(26, pairs)
}

type typexConfigurator struct{}

func (c *typexConfigurator) Keywords() []Keyword {
	return []Keyword{
		{Name: "rotors", Type: "string", Help: "five of letter a-g plus N or R, leftmost first"},
		{Name: "rings", Type: "string", Help: "five ring setting letters"},
		{Name: "reflector", Type: "string", Help: "13 reflector pairs as 26 letters"},
	}
}

type typexStaging struct {
	picks       [5]bankPick
	ringOffsets [5]int
	refl        *permutation.Permutation
}

func (c *typexConfigurator) parse(conf map[string]string) (*typexStaging, error) {
	if err := requireKeywords(conf, "rotors", "rings", "reflector"); err != nil {
		return nil, err
	}
	st := &typexStaging{}
	rotors := conf["rotors"]
	if len(rotors) != 10 {
		return nil, cryptors.NewError(cryptors.ErrSyntaxInput, "rotors needs 10 characters, got %d", len(rotors))
	}
	seen := make(map[byte]bool, 5)
	for i := 0; i < 5; i++ {
		l, nr := rotors[2*i], rotors[2*i+1]
		if l < 'a' || l > 'g' {
			return nil, cryptors.NewError(cryptors.ErrSemanticsInput, "rotor letter %q out of range a..g", l)
		}
		if seen[l] {
			return nil, cryptors.NewError(cryptors.ErrSemanticsInput, "rotor %q mounted twice", l)
		}
		if nr != 'N' && nr != 'R' {
			return nil, cryptors.NewError(cryptors.ErrSyntaxInput, "insertion mark %q must be N or R", nr)
		}
		seen[l] = true
		st.picks[i] = bankPick{id: int(l - 'a'), reversed: nr == 'R'}
	}
	rings := conf["rings"]
	if len(rings) != 5 {
		return nil, cryptors.NewError(cryptors.ErrSyntaxInput, "rings needs 5 letters, got %d", len(rings))
	}
	for i := 0; i < 5; i++ {
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
	return st, nil
}

func (c *typexConfigurator) ConfigureMachine(conf map[string]string, m Machine) error {
	t, ok := m.(*Typex)
	if !ok {
		return cryptors.NewError(cryptors.ErrObjectCreate, "Typex configurator got a different machine")
	}
	st, err := c.parse(conf)
	if err != nil {
		return err
	}
	for i, name := range typexRotorSlots {
		d := t.Slot(name)
		p, err := t.set.Rotor(st.picks[i].id)
		if err != nil {
			return err
		}
		data, err := t.set.Ring(st.picks[i].id)
		if err != nil {
			return err
		}
		d.RotorID = st.picks[i].id
		d.ReplacePerm(p, st.picks[i].reversed)
		d.SetRing(st.picks[i].id, st.ringOffsets[i], data)
	}
	t.Slot("reflector").ReplacePerm(st.refl, false)
	for _, d := range t.slots {
		d.SetPos(0)
	}
	t.counter = 0
	return nil
}

func (c *typexConfigurator) GetConfig(m Machine) (map[string]string, error) {
	t, ok := m.(*Typex)
	if !ok {
		return nil, cryptors.NewError(cryptors.ErrObjectCreate, "Typex configurator got a different machine")
	}
	var rotors, rings strings.Builder
	for _, name := range typexRotorSlots {
		d := t.Slot(name)
		rotors.WriteByte(byte('a' + d.RotorID))
		rotors.WriteByte(nrLetter(d.Reversed))
		rings.WriteByte(byte('a' + (26-d.Ring().Offset)%26))
	}
	return map[string]string{
		"rotors":    rotors.String(),
		"rings":     rings.String(),
		"reflector": renderInvolution(t.Slot("reflector").Rotor().Perm()),
	}, nil
}

func (c *typexConfigurator) MakeMachine(conf map[string]string) (Machine, error) {
	t, err := NewTypex()
	if err != nil {
		return nil, err
	}
	if err := c.ConfigureMachine(conf, t); err != nil {
		return nil, err
	}
	return t, nil
}
