// Package machines assembles rotors, stacks, stepping engines and the
// auxiliary transforms into complete simulated cipher machines, and adds
// the keyword configurators, randomizers and the INI state codec on top.
package machines

import (
	"sort"
	"strings"

	"gopkg.in/ini.v1"
	"gopkg.in/op/go-logging.v1"

	"github.com/bgallie/rotorsim/cryptors"
	"github.com/bgallie/rotorsim/cryptors/alphabet"
	"github.com/bgallie/rotorsim/cryptors/rotor"
	"github.com/bgallie/rotorsim/cryptors/rotorset"
	"github.com/bgallie/rotorsim/cryptors/stepper"
	"github.com/bgallie/rotorsim/log"
)

var mlog = log.NewDefault("ERROR", false).GetLogger("machines")

// SetLogBackend redirects the package's logging, typically to the backend
// the embedding program configured.
func SetLogBackend(b *log.Backend) {
	mlog = b.GetLogger("machines")
}

// Machine is the full simulator contract: a Crypter plus positioning,
// state persistence, randomisation and rotor-set management.
type Machine interface {
	cryptors.Crypter
	Name() string
	MachineType() string
	Description() string
	Counter() int
	Alphabet() *alphabet.Alphabet[rune]
	VisualizeAllPositions() string
	MoveAllRotors(pos string) error
	CurrentPerm() []int
	SaveIni(f *ini.File)
	LoadIni(f *ini.File) error
	Randomize(param string) error
	RandomizerParams() []string
	RotorSetNames() []string
	RotorSet(name string) (*rotorset.RotorSet, error)
	AddRotorSet(rs *rotorset.RotorSet)
	DeleteRotorSet(name string)
}

// RotorMachine carries everything the machine types share: the symbol
// alphabet, the rotor slots in the order the operator sees them, the
// signal path (input transform, stack, output transform), the stepping
// engine and the owned rotor-set catalogues.  The concrete machines
// embed it and add their own configurator, randomizer and persistence.
type RotorMachine struct {
	name        string
	machineType string
	description string

	alpha *alphabet.Alphabet[rune]
	slots []*rotor.Descriptor

	stack    *rotor.Stack
	engine   stepper.Stepper
	inTrans  Transform
	outTrans Transform

	// preStep: the Enigma family, SG39 and KL7 move before the lookup;
	// SIGABA, Nema and Typex move after it.
	preStep bool

	// windowByLetterRing: the KL7 operator reads positions off a letter
	// ring that is independent of the notch ring.
	windowByLetterRing bool

	hidden map[string]bool
	sets   map[string]*rotorset.RotorSet

	keyboard *ShiftState
	printer  *ShiftState
	counter  int

	rng cryptors.RandomSource
	log *logging.Logger
}

func newRotorMachine(name, machineType, description string, alpha *alphabet.Alphabet[rune]) RotorMachine {
	return RotorMachine{
		name:        name,
		machineType: machineType,
		description: description,
		alpha:       alpha,
		inTrans:     IdentityTransform(),
		outTrans:    IdentityTransform(),
		hidden:      make(map[string]bool),
		sets:        make(map[string]*rotorset.RotorSet),
		rng:         cryptors.NewRandomSource(),
		log:         mlog,
	}
}

func (m *RotorMachine) Name() string        { return m.name }
func (m *RotorMachine) MachineType() string { return m.machineType }
func (m *RotorMachine) Description() string { return m.description }

// Alphabet returns the symbol alphabet the machine enciphers over.
func (m *RotorMachine) Alphabet() *alphabet.Alphabet[rune] {
	return m.alpha
}

// Counter returns the number of symbols processed since the last reset.
func (m *RotorMachine) Counter() int {
	return m.counter
}

// Keyboard returns the keyboard shift state, or nil for machines without
// a letters/figures shift.
func (m *RotorMachine) Keyboard() *ShiftState { return m.keyboard }

// Printer returns the printer shift state, or nil.
func (m *RotorMachine) Printer() *ShiftState { return m.printer }

// Slot returns the descriptor mounted under the given slot name.
func (m *RotorMachine) Slot(name string) *rotor.Descriptor {
	for _, d := range m.slots {
		if d.Slot == name {
			return d
		}
	}
	return nil
}

// Slots returns the descriptors in operator order, leftmost first.
func (m *RotorMachine) Slots() []*rotor.Descriptor {
	return m.slots
}

func (m *RotorMachine) stepOnce() {
	m.engine.Step()
}

// Encrypt enciphers one symbol index and advances the machine exactly
// once, before the lookup on prestepping machines and after it
// otherwise.
func (m *RotorMachine) Encrypt(x int) int {
	if m.preStep {
		m.stepOnce()
	}
	if m.keyboard != nil {
		m.keyboard.Feed(x)
	}
	y := m.inTrans.Encrypt(x)
	y = m.stack.Encrypt(y)
	y = m.outTrans.Decrypt(y)
	if m.printer != nil {
		m.printer.Feed(y)
	}
	if !m.preStep {
		m.stepOnce()
	}
	m.counter++
	return y
}

// Decrypt inverts Encrypt at the same state.  On reflecting machines the
// two are the same map.
func (m *RotorMachine) Decrypt(x int) int {
	if m.stack.Mode() == rotor.Reflecting {
		return m.Encrypt(x)
	}
	if m.preStep {
		m.stepOnce()
	}
	if m.keyboard != nil {
		m.keyboard.Feed(x)
	}
	y := m.outTrans.Encrypt(x)
	y = m.stack.Decrypt(y)
	y = m.inTrans.Decrypt(y)
	if m.printer != nil {
		m.printer.Feed(y)
	}
	if !m.preStep {
		m.stepOnce()
	}
	m.counter++
	return y
}

// Step advances the rotor state machine by one tick without enciphering.
func (m *RotorMachine) Step() {
	m.stepOnce()
}

// Reset returns the machine to its canonical ground state.
func (m *RotorMachine) Reset() {
	m.engine.Reset()
	m.counter = 0
	if m.keyboard != nil {
		m.keyboard.SetMode(Letters)
	}
	if m.printer != nil {
		m.printer.SetMode(Letters)
	}
}

func (m *RotorMachine) window(d *rotor.Descriptor) int {
	if m.windowByLetterRing {
		n := d.Size()
		return ((d.Displacement()-d.LetterRing)%n + n) % n
	}
	return d.Pos()
}

// VisualizeAllPositions renders the symbols showing in the machine's
// windows, leftmost slot first.  Slots without a window are skipped.
func (m *RotorMachine) VisualizeAllPositions() string {
	var sb strings.Builder
	for _, d := range m.slots {
		if m.hidden[d.Slot] {
			continue
		}
		sb.WriteRune(m.alpha.ToVal(m.window(d)))
	}
	return sb.String()
}

// MoveAllRotors is the inverse of VisualizeAllPositions: it turns every
// visible slot so that the given symbols show.  The machine is left
// untouched when the string has the wrong length or holds a symbol
// outside the alphabet.
func (m *RotorMachine) MoveAllRotors(pos string) error {
	visible := make([]*rotor.Descriptor, 0, len(m.slots))
	for _, d := range m.slots {
		if !m.hidden[d.Slot] {
			visible = append(visible, d)
		}
	}
	runes := []rune(pos)
	if len(runes) != len(visible) {
		return cryptors.NewError(cryptors.ErrSyntaxInput, "need %d position symbols, got %d", len(visible), len(runes))
	}
	vals := make([]int, len(runes))
	for i, r := range runes {
		v, err := m.alpha.FromVal(r)
		if err != nil {
			return cryptors.NewError(cryptors.ErrSyntaxInput, "position symbol %q is not on the rings", r)
		}
		vals[i] = v
	}
	for i, d := range visible {
		if m.windowByLetterRing {
			d.SetDisplacement(vals[i] + d.LetterRing)
		} else {
			d.SetPos(vals[i])
		}
	}
	return nil
}

// CurrentPerm tabulates the end-to-end substitution at the current state
// without advancing anything.
func (m *RotorMachine) CurrentPerm() []int {
	out := make([]int, m.alpha.Size())
	for x := range out {
		y := m.inTrans.Encrypt(x)
		y = m.stack.Encrypt(y)
		out[x] = m.outTrans.Decrypt(y)
	}
	return out
}

func (m *RotorMachine) RotorSetNames() []string {
	names := make([]string, 0, len(m.sets))
	for n := range m.sets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (m *RotorMachine) RotorSet(name string) (*rotorset.RotorSet, error) {
	rs, ok := m.sets[name]
	if !ok {
		return nil, cryptors.NewError(cryptors.ErrRotorSetUnknown, "machine %q has no rotor set %q", m.name, name)
	}
	return rs, nil
}

func (m *RotorMachine) AddRotorSet(rs *rotorset.RotorSet) {
	m.sets[rs.Name()] = rs
}

func (m *RotorMachine) DeleteRotorSet(name string) {
	delete(m.sets, name)
}
