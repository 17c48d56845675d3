package machines

import (
	"gopkg.in/ini.v1"

	"github.com/bgallie/rotorsim/cryptors"
	"github.com/bgallie/rotorsim/cryptors/alphabet"
	"github.com/bgallie/rotorsim/cryptors/permutation"
	"github.com/bgallie/rotorsim/cryptors/rotor"
	"github.com/bgallie/rotorsim/cryptors/rotorset"
	"github.com/bgallie/rotorsim/cryptors/stepper"
)

var lowerAlpha = alphabet.FromString("abcdefghijklmnopqrstuvwxyz")

// Enigma variant tags, stored under machine.machinetype.
const (
	EnigmaServices = "Services"
	EnigmaM3       = "M3"
	EnigmaM4       = "M4"
	EnigmaRailway  = "Railway"
	EnigmaTirpitz  = "Tirpitz"
	EnigmaAbwehr   = "Abwehr"
	EnigmaKD       = "KD"
)

// Slot names of the Enigma family.
const (
	slotUmkehrwalze = "umkehrwalze"
	slotGreek       = "greek"
	slotSlow        = "slow"
	slotMiddle      = "middle"
	slotFast        = "fast"
)

type enigmaVariant struct {
	typ         string
	description string
	newSet      func() *rotorset.RotorSet

	hasGreek    bool
	steckered   bool
	uhrCapable  bool
	ukwdCapable bool
	// movableUkw: the reflector can be turned by hand and shows in the
	// windows (Railway, Tirpitz, Abwehr, KD); on the Abwehr it also
	// steps.
	movableUkw  bool
	odometer    bool
	rotorDigits int

	ukwChoices   map[byte]int
	greekChoices map[byte]int
	defaultUkw   int
	defaultGreek int
	etw          int
}

var enigmaVariants = map[string]*enigmaVariant{
	EnigmaServices: {
		typ:         EnigmaServices,
		description: "Enigma I (Services)",
		newSet:      rotorset.NewEnigmaSet,
		steckered:   true,
		uhrCapable:  true,
		ukwdCapable: true,
		rotorDigits: 5,
		ukwChoices: map[byte]int{
			'1': rotorset.UkwA, '2': rotorset.UkwB,
			'3': rotorset.UkwC, '4': rotorset.UkwD,
		},
		defaultUkw: rotorset.UkwB,
	},
	EnigmaM3: {
		typ:         EnigmaM3,
		description: "Enigma M3",
		newSet:      rotorset.NewEnigmaSet,
		steckered:   true,
		ukwdCapable: true,
		rotorDigits: 8,
		ukwChoices: map[byte]int{
			'1': rotorset.UkwA, '2': rotorset.UkwB,
			'3': rotorset.UkwC, '4': rotorset.UkwD,
		},
		defaultUkw: rotorset.UkwB,
	},
	EnigmaM4: {
		typ:         EnigmaM4,
		description: "Enigma M4",
		newSet:      rotorset.NewEnigmaSet,
		hasGreek:    true,
		steckered:   true,
		rotorDigits: 8,
		ukwChoices: map[byte]int{
			'1': rotorset.UkwBThin, '2': rotorset.UkwCThin,
		},
		greekChoices: map[byte]int{
			'1': rotorset.WalzeBeta, '2': rotorset.WalzeGamma,
		},
		defaultUkw:   rotorset.UkwBThin,
		defaultGreek: rotorset.WalzeBeta,
	},
	EnigmaRailway: {
		typ:         EnigmaRailway,
		description: "Enigma Railway (Rocket K)",
		newSet:      rotorset.NewRailwaySet,
		movableUkw:  true,
		rotorDigits: 3,
		defaultUkw:  rotorset.UkwRail,
		etw:         rotorset.EtwQwertz,
	},
	EnigmaTirpitz: {
		typ:         EnigmaTirpitz,
		description: "Enigma T (Tirpitz)",
		newSet:      rotorset.NewTirpitzSet,
		movableUkw:  true,
		rotorDigits: 8,
		defaultUkw:  rotorset.UkwTirpitz,
		etw:         rotorset.EtwTirpitz,
	},
	EnigmaAbwehr: {
		typ:         EnigmaAbwehr,
		description: "Enigma G (Abwehr)",
		newSet:      rotorset.NewAbwehrSet,
		movableUkw:  true,
		odometer:    true,
		rotorDigits: 3,
		defaultUkw:  rotorset.UkwAbwehr,
		etw:         rotorset.EtwQwertz,
	},
	EnigmaKD: {
		typ:         EnigmaKD,
		description: "Enigma KD",
		newSet:      rotorset.NewKDSet,
		ukwdCapable: true,
		movableUkw:  true,
		rotorDigits: 3,
		defaultUkw:  rotorset.UkwD,
		etw:         rotorset.EtwQwertz,
	},
}

// Enigma is any of the seven Enigma variants: a reflecting three (or, on
// the M4, four) rotor machine with a per-variant entry wheel or
// plugboard in front of the stack.
type Enigma struct {
	RotorMachine
	variant *enigmaVariant
	set     *rotorset.RotorSet

	// plugPairs is the cable list in plug order; empty on unsteckered
	// variants and unplugged boards.
	plugPairs [][2]int
	uhr       *Uhr
}

// NewEnigma builds the default machine of the given variant; an empty
// variant tag means Services.
func NewEnigma(machineType string) (*Enigma, error) {
	if machineType == "" {
		machineType = EnigmaServices
	}
	v, ok := enigmaVariants[machineType]
	if !ok {
		return nil, cryptors.NewError(cryptors.ErrObjectCreate, "no Enigma variant is called %q", machineType)
	}
	set := v.newSet()
	e := &Enigma{
		RotorMachine: newRotorMachine(MachineEnigma, v.typ, v.description, lowerAlpha),
		variant:      v,
		set:          set,
	}
	e.AddRotorSet(set)
	e.preStep = true

	ukwPerm, err := set.Rotor(v.defaultUkw)
	if err != nil {
		return nil, err
	}
	ukw := rotor.NewDescriptor(slotUmkehrwalze, v.defaultUkw, ukwPerm, false)
	e.slots = []*rotor.Descriptor{ukw}
	if v.hasGreek {
		greek, err := e.newWalze(slotGreek, v.defaultGreek)
		if err != nil {
			return nil, err
		}
		e.slots = append(e.slots, greek)
	}
	for i, name := range []string{slotSlow, slotMiddle, slotFast} {
		d, err := e.newWalze(name, rotorset.WalzeI+i)
		if err != nil {
			return nil, err
		}
		e.slots = append(e.slots, d)
	}

	stackOrder := make([]*rotor.Descriptor, 0, len(e.slots))
	for i := len(e.slots) - 1; i >= 0; i-- {
		stackOrder = append(stackOrder, e.slots[i])
	}
	e.stack, err = rotor.NewStack(stackOrder, rotor.Reflecting)
	if err != nil {
		return nil, err
	}

	fast, middle, slow := e.Slot(slotFast), e.Slot(slotMiddle), e.Slot(slotSlow)
	if v.odometer {
		e.engine = stepper.NewAbwehr(fast, middle, slow, ukw)
	} else {
		e.engine = stepper.NewEnigma(fast, middle, slow)
	}
	if !v.movableUkw {
		e.hidden[slotUmkehrwalze] = true
	}
	if v.steckered {
		if err := e.setPlugboard(nil); err != nil {
			return nil, err
		}
	} else if v.etw != 0 {
		etwPerm, err := set.Rotor(v.etw)
		if err != nil {
			return nil, err
		}
		t := NewPermTransform(etwPerm.Invert())
		e.inTrans, e.outTrans = t, t
	}
	return e, nil
}

// newWalze mounts the catalogue rotor id into a fresh slot together with
// its turnover ring at offset 0.
func (e *Enigma) newWalze(slot string, id int) (*rotor.Descriptor, error) {
	p, err := e.set.Rotor(id)
	if err != nil {
		return nil, err
	}
	d := rotor.NewDescriptor(slot, id, p, false)
	data, err := e.set.Ring(id)
	if err != nil {
		return nil, err
	}
	d.SetRing(id, 0, data)
	return d, nil
}

// mountWalze replaces the wiring and ring of an existing slot.
func (e *Enigma) mountWalze(slot string, id, ringOffset int) error {
	d := e.Slot(slot)
	p, err := e.set.Rotor(id)
	if err != nil {
		return err
	}
	d.RotorID = id
	d.ReplacePerm(p, false)
	data, err := e.set.Ring(id)
	if err != nil {
		return err
	}
	d.SetRing(id, ringOffset, data)
	return nil
}

func (e *Enigma) mountReflector(id int) error {
	d := e.Slot(slotUmkehrwalze)
	p, err := e.set.Rotor(id)
	if err != nil {
		return err
	}
	d.RotorID = id
	d.ReplacePerm(p, false)
	return nil
}

// setPlugboard wires the board with the given cable pairs; nil or empty
// unplugs everything.
func (e *Enigma) setPlugboard(pairs [][2]int) error {
	p, err := permutation.FromCycles(26, pairs)
	if err != nil {
		return err
	}
	t := NewPermTransform(p)
	e.inTrans, e.outTrans = t, t
	e.plugPairs = append([][2]int(nil), pairs...)
	e.uhr = nil
	return nil
}

// setUhr mounts the Uhr box in place of the plugboard.
func (e *Enigma) setUhr(cables [][2]int, dial int) error {
	u, err := NewUhr(cables, dial)
	if err != nil {
		return err
	}
	e.inTrans, e.outTrans = u, u
	e.plugPairs = append([][2]int(nil), cables...)
	e.uhr = u
	return nil
}

func (e *Enigma) ukwdMounted() bool {
	return e.Slot(slotUmkehrwalze).RotorID == rotorset.UkwD
}

func (e *Enigma) SaveIni(f *ini.File) {
	e.saveBase(f)
	if e.ukwdMounted() {
		perm := e.Slot(slotUmkehrwalze).Rotor().Perm()
		f.Section("machine").Key("ukwdwiring").SetValue(rotorset.IntsToString(perm.Fwd()))
	}
	if e.variant.steckered {
		sec := f.Section("plugboard")
		entry := make([]int, 26)
		for i := range entry {
			entry[i] = e.inTrans.Encrypt(i)
		}
		sec.Key("entry").SetValue(rotorset.IntsToString(entry))
		sec.Key("usesuhr").SetValue(boolString(e.uhr != nil))
		if e.uhr != nil {
			sec.Key("uhrcabling").SetValue(formatPlugLetters(e.plugPairs))
			sec.Key("uhrdialpos").SetValue(intString(e.uhr.Dial()))
		}
	}
}

func (e *Enigma) LoadIni(f *ini.File) error {
	cand, err := NewEnigma(e.machineType)
	if err != nil {
		return err
	}
	if err := cand.loadBase(f); err != nil {
		return err
	}
	msec := f.Section("machine")
	if msec.HasKey("ukwdwiring") {
		vals, err := rotorset.StringToInts(msec.Key("ukwdwiring").String())
		if err != nil {
			return err
		}
		p, err := permutation.New(vals)
		if err != nil {
			return err
		}
		if _, err := UkwdPairs(p); err != nil {
			return err
		}
		cand.set.AddRotor(rotorset.UkwD, p)
	}
	if cand.variant.steckered {
		sec := f.Section("plugboard")
		usesUhr, err := requireBoolKey(sec, "usesuhr")
		if err != nil {
			return err
		}
		if usesUhr {
			if !cand.variant.uhrCapable {
				return cryptors.NewError(cryptors.ErrSemanticsInput, "variant %s takes no uhr", cand.machineType)
			}
			cables, err := parsePlugLetters(sec.Key("uhrcabling").String())
			if err != nil {
				return err
			}
			dial, err := requireIntKey(sec, "uhrdialpos")
			if err != nil {
				return err
			}
			if err := cand.setUhr(cables, dial); err != nil {
				return err
			}
		} else {
			vals, err := rotorset.StringToInts(sec.Key("entry").String())
			if err != nil {
				return err
			}
			p, err := permutation.New(vals)
			if err != nil {
				return err
			}
			pairs, ok := p.InvolutionPairs()
			if !ok {
				return cryptors.NewError(cryptors.ErrSemanticsInput, "plugboard entry is not an involution")
			}
			if err := cand.setPlugboard(pairs); err != nil {
				return err
			}
		}
	}
	*e = *cand
	return nil
}
