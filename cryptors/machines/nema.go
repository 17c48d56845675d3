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

// Nema variant tags, stored under machine.machinetype.
const (
	NemaTraining = "Training"
	NemaWar      = "War"
)

// Drive wheel ring numbers issued with each variant.
var (
	nemaTrainingRings = []int{16, 19, 20, 21}
	nemaWarRings      = []int{12, 13, 14, 15, 17, 18}
)

// Nema is the Swiss Nema model 45: four contact rotors paired with
// notched drive wheels between two red drive wheels, in front of a
// movable reflector.  Only the contact rotors and the reflector carry
// the signal; the drive wheels and the red wheels exist for the
// stepping gear.
type Nema struct {
	RotorMachine
	war bool
	set *rotorset.RotorSet

	redRight  *rotor.Descriptor
	redLeft   *rotor.Descriptor
	drive     []*rotor.Descriptor
	contact   []*rotor.Descriptor
	reflector *rotor.Descriptor
}

// NewNema builds the default machine of the given issue: contact rotors
// a-d, the first four ring numbers of the issue, all wheels at a.
func NewNema(war bool) (*Nema, error) {
	typ := NemaTraining
	rings := nemaTrainingRings
	if war {
		typ = NemaWar
		rings = nemaWarRings
	}
	n := &Nema{
		RotorMachine: newRotorMachine(MachineNema, typ, "Nema model 45 ("+typ+")", lowerAlpha),
		war:          war,
		set:          rotorset.NewNemaSet(),
	}
	n.AddRotorSet(n.set)

	redData, err := n.set.Ring(rotorset.NemaRedRing)
	if err != nil {
		return nil, err
	}
	mkRed := func(slot string) *rotor.Descriptor {
		d := rotor.NewDescriptor(slot, 0, permutation.Identity(26), false)
		d.SetRing(rotorset.NemaRedRing, 0, redData)
		return d
	}
	n.redLeft = mkRed("redleft")
	n.redRight = mkRed("redright")

	reflPerm, err := n.set.Rotor(rotorset.NemaReflector)
	if err != nil {
		return nil, err
	}
	n.reflector = rotor.NewDescriptor("reflector", rotorset.NemaReflector, reflPerm, false)

	// Pair index 0 is the rightmost pair; contact rotor ids and ring
	// numbers are assigned leftmost first.
	n.drive = make([]*rotor.Descriptor, 4)
	n.contact = make([]*rotor.Descriptor, 4)
	for i := 0; i < 4; i++ {
		id := 3 - i
		p, err := n.set.Rotor(id)
		if err != nil {
			return nil, err
		}
		n.contact[i] = rotor.NewDescriptor(fmt.Sprintf("contact%d", i), id, p, false)
		data, err := n.set.Ring(rings[3-i])
		if err != nil {
			return nil, err
		}
		n.drive[i] = rotor.NewDescriptor(fmt.Sprintf("drive%d", i), 0, permutation.Identity(26), false)
		n.drive[i].SetRing(rings[3-i], 0, data)
	}

	n.slots = []*rotor.Descriptor{n.reflector, n.redLeft}
	for i := 3; i >= 0; i-- {
		n.slots = append(n.slots, n.drive[i], n.contact[i])
	}
	n.slots = append(n.slots, n.redRight)

	n.stack, err = rotor.NewStack([]*rotor.Descriptor{
		n.contact[0], n.contact[1], n.contact[2], n.contact[3], n.reflector,
	}, rotor.Reflecting)
	if err != nil {
		return nil, err
	}
	n.engine = stepper.NewNema(n.redRight, n.redLeft, n.drive, n.contact, n.reflector)
	return n, nil
}

// War reports whether the machine is the war issue.
func (n *Nema) War() bool {
	return n.war
}

func (n *Nema) SaveIni(f *ini.File) {
	n.saveBase(f)
	f.Section("machine").Key("warmachine").SetValue(boolString(n.war))
}

func (n *Nema) LoadIni(f *ini.File) error {
	war, err := requireBoolKey(f.Section("machine"), "warmachine")
	if err != nil {
		return err
	}
	cand, err := NewNema(war)
	if err != nil {
		return err
	}
	if err := cand.loadBase(f); err != nil {
		return err
	}
	*n = *cand
	return nil
}

func (n *Nema) RandomizerParams() []string {
	return []string{RandBasic}
}

func (n *Nema) Randomize(param string) error {
	_ = param
	c := &nemaConfigurator{}
	letters := []byte("abcd")
	rings := nemaTrainingRings
	if n.war {
		letters = []byte("abcdef")
		rings = nemaWarRings
	}
	return randomizeMachine(n, c, func() map[string]string {
		ls := append([]byte(nil), letters...)
		for i := len(ls) - 1; i > 0; i-- {
			j := n.rng.Intn(i + 1)
			ls[i], ls[j] = ls[j], ls[i]
		}
		rs := append([]int(nil), rings...)
		for i := len(rs) - 1; i > 0; i-- {
			j := n.rng.Intn(i + 1)
			rs[i], rs[j] = rs[j], rs[i]
		}
		return map[string]string{
			"rotors":     string(ls[:4]),
			"ringselect": rotorset.IntsToString(rs[:4]),
			"warmachine": boolString(n.war),
		}
	})
}

type nemaConfigurator struct{}

func (c *nemaConfigurator) Keywords() []Keyword {
	return []Keyword{
		{Name: "rotors", Type: "string", Help: "four unique contact rotor letters, leftmost first"},
		{Name: "ringselect", Type: "ints", Help: "four drive wheel ring numbers of the issue, leftmost first"},
		{Name: "warmachine", Type: "bool", Help: "war issue instead of training issue"},
	}
}

type nemaStaging struct {
	war      bool
	rotorIDs [4]int
	ringIDs  [4]int
}

func (c *nemaConfigurator) parse(conf map[string]string) (*nemaStaging, error) {
	if err := requireKeywords(conf, "rotors", "ringselect", "warmachine"); err != nil {
		return nil, err
	}
	st := &nemaStaging{}
	switch conf["warmachine"] {
	case "true":
		st.war = true
	case "false":
		st.war = false
	default:
		return nil, cryptors.NewError(cryptors.ErrSyntaxInput, "warmachine value %q is not a boolean", conf["warmachine"])
	}
	maxLetter := byte('d')
	allowed := nemaTrainingRings
	if st.war {
		maxLetter = 'f'
		allowed = nemaWarRings
	}
	rotors := conf["rotors"]
	if len(rotors) != 4 {
		return nil, cryptors.NewError(cryptors.ErrSyntaxInput, "rotors needs 4 letters, got %d", len(rotors))
	}
	seen := make(map[byte]bool, 4)
	for i := 0; i < 4; i++ {
		l := rotors[i]
		if l < 'a' || l > maxLetter {
			return nil, cryptors.NewError(cryptors.ErrSemanticsInput, "rotor letter %q out of range a..%c", l, maxLetter)
		}
		if seen[l] {
			return nil, cryptors.NewError(cryptors.ErrSemanticsInput, "rotor %q mounted twice", l)
		}
		seen[l] = true
		st.rotorIDs[i] = int(l - 'a')
	}
	rings, err := rotorset.StringToInts(conf["ringselect"])
	if err != nil {
		return nil, err
	}
	if len(rings) != 4 {
		return nil, cryptors.NewError(cryptors.ErrSyntaxInput, "ringselect needs 4 values, got %d", len(rings))
	}
	seenRing := make(map[int]bool, 4)
	for i, v := range rings {
		ok := false
		for _, a := range allowed {
			if v == a {
				ok = true
			}
		}
		if !ok {
			return nil, cryptors.NewError(cryptors.ErrSemanticsInput, "ring number %d is not issued with this machine", v)
		}
		if seenRing[v] {
			return nil, cryptors.NewError(cryptors.ErrSemanticsInput, "ring %d mounted twice", v)
		}
		seenRing[v] = true
		st.ringIDs[i] = v
	}
	return st, nil
}

func (c *nemaConfigurator) ConfigureMachine(conf map[string]string, m Machine) error {
	n, ok := m.(*Nema)
	if !ok {
		return cryptors.NewError(cryptors.ErrObjectCreate, "Nema configurator got a different machine")
	}
	st, err := c.parse(conf)
	if err != nil {
		return err
	}
	if st.war != n.war {
		return cryptors.NewError(cryptors.ErrSemanticsInput, "configuration is for the other issue of the machine")
	}
	for i := 0; i < 4; i++ {
		p, err := n.set.Rotor(st.rotorIDs[i])
		if err != nil {
			return err
		}
		data, err := n.set.Ring(st.ringIDs[i])
		if err != nil {
			return err
		}
		pair := 3 - i
		n.contact[pair].RotorID = st.rotorIDs[i]
		n.contact[pair].ReplacePerm(p, false)
		n.drive[pair].SetRing(st.ringIDs[i], 0, data)
	}
	n.engine.Reset()
	n.counter = 0
	return nil
}

func (c *nemaConfigurator) GetConfig(m Machine) (map[string]string, error) {
	n, ok := m.(*Nema)
	if !ok {
		return nil, cryptors.NewError(cryptors.ErrObjectCreate, "Nema configurator got a different machine")
	}
	var rotors strings.Builder
	rings := make([]int, 0, 4)
	for i := 0; i < 4; i++ {
		pair := 3 - i
		rotors.WriteByte(byte('a' + n.contact[pair].RotorID))
		rings = append(rings, n.drive[pair].Ring().ID)
	}
	return map[string]string{
		"rotors":     rotors.String(),
		"ringselect": rotorset.IntsToString(rings),
		"warmachine": boolString(n.war),
	}, nil
}

func (c *nemaConfigurator) MakeMachine(conf map[string]string) (Machine, error) {
	war := conf["warmachine"] == "true"
	n, err := NewNema(war)
	if err != nil {
		return nil, err
	}
	if err := c.ConfigureMachine(conf, n); err != nil {
		return nil, err
	}
	return n, nil
}
