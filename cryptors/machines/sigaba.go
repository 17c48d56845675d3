package machines

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/bgallie/rotorsim/cryptors"
	"github.com/bgallie/rotorsim/cryptors/rotor"
	"github.com/bgallie/rotorsim/cryptors/rotorset"
	"github.com/bgallie/rotorsim/cryptors/stepper"
)

// SIGABA variant tags, stored under machine.machinetype.
const (
	SigabaCsp889  = "CSP889"
	SigabaCsp2900 = "CSP2900"
)

// Driver bank slot names, leftmost first.
var sigabaDriverSlots = [5]string{"statorl", "slow", "fast", "middle", "statorr"}

// Sigaba is the ECM Mark II in its CSP 889 or CSP 2900 configuration:
// five cipher rotors moved by currents that pass through a bank of five
// driver rotors and a bank of five ten-contact index rotors.  Only the
// cipher bank carries the signal; the other two banks exist for the
// stepping engine.
type Sigaba struct {
	RotorMachine
	csp2900 bool

	driver []*rotor.Descriptor
	index  []*rotor.Descriptor

	set      *rotorset.RotorSet
	indexSet *rotorset.RotorSet
	stepper  *stepper.Sigaba
}

// NewSigaba builds the default machine with cipher rotors 0-4, driver
// rotors 5-9 and index rotors 0-4, all upright, grounded at the letter o.
func NewSigaba(csp2900 bool) (*Sigaba, error) {
	typ := SigabaCsp889
	if csp2900 {
		typ = SigabaCsp2900
	}
	s := &Sigaba{
		RotorMachine: newRotorMachine(MachineSigaba, typ, "ECM Mark II ("+typ+")", lowerAlpha),
		csp2900:      csp2900,
		set:          rotorset.NewSigabaSet(),
		indexSet:     rotorset.NewSigabaIndexSet(),
	}
	s.AddRotorSet(s.set)
	s.AddRotorSet(s.indexSet)

	for i := 0; i < 5; i++ {
		p, err := s.set.Rotor(i)
		if err != nil {
			return nil, err
		}
		s.slots = append(s.slots, rotor.NewDescriptor(fmt.Sprintf("c%d", i), i, p, false))
	}
	for i, name := range sigabaDriverSlots {
		p, err := s.set.Rotor(5 + i)
		if err != nil {
			return nil, err
		}
		s.driver = append(s.driver, rotor.NewDescriptor(name, 5+i, p, false))
	}
	for i := 0; i < 5; i++ {
		p, err := s.indexSet.Rotor(i)
		if err != nil {
			return nil, err
		}
		s.index = append(s.index, rotor.NewDescriptor(fmt.Sprintf("i%d", i), i, p, false))
	}

	var err error
	s.stack, err = rotor.NewStack(s.slots, rotor.Unidirectional)
	if err != nil {
		return nil, err
	}
	s.stepper = stepper.NewSigaba(s.slots, s.driver, s.index, csp2900)
	s.engine = s.stepper
	s.engine.Reset()
	return s, nil
}

// Csp2900 reports whether the machine runs with the CSP 2900 bus and
// retracting cipher rotors.
func (s *Sigaba) Csp2900() bool {
	return s.csp2900
}

func (s *Sigaba) setMode(csp2900 bool) {
	s.csp2900 = csp2900
	if csp2900 {
		s.machineType = SigabaCsp2900
	} else {
		s.machineType = SigabaCsp889
	}
	s.description = "ECM Mark II (" + s.machineType + ")"
	s.stepper = stepper.NewSigaba(s.slots, s.driver, s.index, csp2900)
	s.engine = s.stepper
}

// SetupStep advances one named driver rotor by hand and lets the cipher
// rotors follow, without running the normal driver step.
func (s *Sigaba) SetupStep(slot string) error {
	return s.stepper.SetupStep(slot)
}

// DriverSlots returns the driver bank descriptors, leftmost first.
func (s *Sigaba) DriverSlots() []*rotor.Descriptor {
	return s.driver
}

// IndexSlots returns the index bank descriptors, leftmost first.
func (s *Sigaba) IndexSlots() []*rotor.Descriptor {
	return s.index
}

// VisualizeDriverPositions renders the letters in the driver bank
// windows.
func (s *Sigaba) VisualizeDriverPositions() string {
	var sb strings.Builder
	for _, d := range s.driver {
		sb.WriteRune(s.alpha.ToVal(d.Pos()))
	}
	return sb.String()
}

// MoveDriverRotors turns the driver bank so the given letters show.
func (s *Sigaba) MoveDriverRotors(pos string) error {
	if len(pos) != len(s.driver) {
		return cryptors.NewError(cryptors.ErrSyntaxInput, "need %d position letters, got %d", len(s.driver), len(pos))
	}
	vals := make([]int, len(pos))
	for i := range pos {
		v, err := s.alpha.FromVal(rune(pos[i]))
		if err != nil {
			return cryptors.NewError(cryptors.ErrSyntaxInput, "position symbol %q is not on the rings", pos[i])
		}
		vals[i] = v
	}
	for i, d := range s.driver {
		d.SetPos(vals[i])
	}
	return nil
}

// VisualizeIndexPositions renders the digits showing on the index bank.
func (s *Sigaba) VisualizeIndexPositions() string {
	var sb strings.Builder
	for _, d := range s.index {
		sb.WriteByte(byte('0' + d.Pos()))
	}
	return sb.String()
}

// MoveIndexRotors turns the index bank so the given digits show.
func (s *Sigaba) MoveIndexRotors(pos string) error {
	if len(pos) != len(s.index) {
		return cryptors.NewError(cryptors.ErrSyntaxInput, "need %d position digits, got %d", len(s.index), len(pos))
	}
	vals := make([]int, len(pos))
	for i := range pos {
		if pos[i] < '0' || pos[i] > '9' {
			return cryptors.NewError(cryptors.ErrSyntaxInput, "position symbol %q is not a digit", pos[i])
		}
		vals[i] = int(pos[i] - '0')
	}
	for i, d := range s.index {
		d.SetPos(vals[i])
	}
	return nil
}

func (s *Sigaba) SaveIni(f *ini.File) {
	s.saveBase(f)
	f.Section("machine").Key("csp2900").SetValue(boolString(s.csp2900))
	s.saveSlots(f, "driverbank.", s.driver)
	s.saveSlots(f, "indexbank.", s.index)
}

func (s *Sigaba) LoadIni(f *ini.File) error {
	csp2900, err := requireBoolKey(f.Section("machine"), "csp2900")
	if err != nil {
		return err
	}
	cand, err := NewSigaba(csp2900)
	if err != nil {
		return err
	}
	if err := cand.loadBase(f); err != nil {
		return err
	}
	if err := cand.loadSlots(f, "driverbank.", cand.driver); err != nil {
		return err
	}
	if err := cand.loadSlots(f, "indexbank.", cand.index); err != nil {
		return err
	}
	*s = *cand
	return nil
}

func (s *Sigaba) RandomizerParams() []string {
	return []string{RandBasic}
}

func (s *Sigaba) Randomize(param string) error {
	_ = param
	c := &sigabaConfigurator{}
	return randomizeMachine(s, c, func() map[string]string {
		order := make([]int, 10)
		for i := range order {
			order[i] = i
		}
		for i := len(order) - 1; i > 0; i-- {
			j := s.rng.Intn(i + 1)
			order[i], order[j] = order[j], order[i]
		}
		var cipher, control strings.Builder
		for i := 0; i < 5; i++ {
			cipher.WriteByte(byte('0' + order[i]))
			cipher.WriteByte(nrLetter(s.rng.Intn(2) == 1))
			control.WriteByte(byte('0' + order[5+i]))
			control.WriteByte(nrLetter(s.rng.Intn(2) == 1))
		}
		var index strings.Builder
		iorder := []int{0, 1, 2, 3, 4}
		for i := len(iorder) - 1; i > 0; i-- {
			j := s.rng.Intn(i + 1)
			iorder[i], iorder[j] = iorder[j], iorder[i]
		}
		for i := 0; i < 5; i++ {
			index.WriteByte(byte('0' + iorder[i]))
			index.WriteByte(nrLetter(s.rng.Intn(2) == 1))
		}
		return map[string]string{
			"cipher":  cipher.String(),
			"control": control.String(),
			"index":   index.String(),
			"csp2900": boolString(s.csp2900),
		}
	})
}

func nrLetter(rev bool) byte {
	if rev {
		return 'R'
	}
	return 'N'
}

// bankPick is one rotor choice of a SIGABA bank keyword: the rotor
// number and its insertion direction.
type bankPick struct {
	id       int
	reversed bool
}

func parseBankPicks(keyword, val string, maxDigit byte) ([]bankPick, error) {
	if len(val) != 10 {
		return nil, cryptors.NewError(cryptors.ErrSyntaxInput, "keyword %q needs 10 characters, got %d", keyword, len(val))
	}
	picks := make([]bankPick, 0, 5)
	for i := 0; i+1 < len(val); i += 2 {
		d, nr := val[i], val[i+1]
		if d < '0' || d > maxDigit {
			return nil, cryptors.NewError(cryptors.ErrSemanticsInput, "rotor number %q of keyword %q out of range 0..%c", d, keyword, maxDigit)
		}
		if nr != 'N' && nr != 'R' {
			return nil, cryptors.NewError(cryptors.ErrSyntaxInput, "insertion mark %q of keyword %q must be N or R", nr, keyword)
		}
		picks = append(picks, bankPick{id: int(d - '0'), reversed: nr == 'R'})
	}
	return picks, nil
}

type sigabaConfigurator struct{}

func (c *sigabaConfigurator) Keywords() []Keyword {
	return []Keyword{
		{Name: "cipher", Type: "string", Help: "cipher bank rotors, five of digit 0-9 plus N or R"},
		{Name: "control", Type: "string", Help: "driver bank rotors, five of digit 0-9 plus N or R"},
		{Name: "index", Type: "string", Help: "index bank rotors, five of digit 0-4 plus N or R"},
		{Name: "csp2900", Type: "bool", Help: "run as CSP 2900 instead of CSP 889"},
	}
}

func (c *sigabaConfigurator) parse(conf map[string]string) (cipher, control, index []bankPick, csp2900 bool, err error) {
	if err = requireKeywords(conf, "cipher", "control", "index", "csp2900"); err != nil {
		return
	}
	if cipher, err = parseBankPicks("cipher", conf["cipher"], '9'); err != nil {
		return
	}
	if control, err = parseBankPicks("control", conf["control"], '9'); err != nil {
		return
	}
	seen := make(map[int]bool, 10)
	for _, p := range append(append([]bankPick(nil), cipher...), control...) {
		if seen[p.id] {
			err = cryptors.NewError(cryptors.ErrSemanticsInput, "rotor %d mounted twice across cipher and control", p.id)
			return
		}
		seen[p.id] = true
	}
	if index, err = parseBankPicks("index", conf["index"], '4'); err != nil {
		return
	}
	seenIdx := make(map[int]bool, 5)
	for _, p := range index {
		if seenIdx[p.id] {
			err = cryptors.NewError(cryptors.ErrSemanticsInput, "index rotor %d mounted twice", p.id)
			return
		}
		seenIdx[p.id] = true
	}
	csp2900, perr := strconv.ParseBool(conf["csp2900"])
	if perr != nil {
		err = cryptors.NewError(cryptors.ErrSyntaxInput, "csp2900 value %q is not a boolean", conf["csp2900"])
	}
	return
}

func mountBank(set *rotorset.RotorSet, slots []*rotor.Descriptor, picks []bankPick) error {
	for i, p := range picks {
		perm, err := set.Rotor(p.id)
		if err != nil {
			return err
		}
		slots[i].RotorID = p.id
		slots[i].ReplacePerm(perm, p.reversed)
	}
	return nil
}

func (c *sigabaConfigurator) ConfigureMachine(conf map[string]string, m Machine) error {
	s, ok := m.(*Sigaba)
	if !ok {
		return cryptors.NewError(cryptors.ErrObjectCreate, "SIGABA configurator got a different machine")
	}
	cipher, control, index, csp2900, err := c.parse(conf)
	if err != nil {
		return err
	}
	if err := mountBank(s.set, s.slots, cipher); err != nil {
		return err
	}
	if err := mountBank(s.set, s.driver, control); err != nil {
		return err
	}
	if err := mountBank(s.indexSet, s.index, index); err != nil {
		return err
	}
	s.setMode(csp2900)
	s.engine.Reset()
	s.counter = 0
	return nil
}

func (c *sigabaConfigurator) GetConfig(m Machine) (map[string]string, error) {
	s, ok := m.(*Sigaba)
	if !ok {
		return nil, cryptors.NewError(cryptors.ErrObjectCreate, "SIGABA configurator got a different machine")
	}
	render := func(slots []*rotor.Descriptor) string {
		var sb strings.Builder
		for _, d := range slots {
			sb.WriteByte(byte('0' + d.RotorID))
			sb.WriteByte(nrLetter(d.Reversed))
		}
		return sb.String()
	}
	return map[string]string{
		"cipher":  render(s.slots),
		"control": render(s.driver),
		"index":   render(s.index),
		"csp2900": boolString(s.csp2900),
	}, nil
}

func (c *sigabaConfigurator) MakeMachine(conf map[string]string) (Machine, error) {
	s, err := NewSigaba(false)
	if err != nil {
		return nil, err
	}
	if err := c.ConfigureMachine(conf, s); err != nil {
		return nil, err
	}
	return s, nil
}
