package machines

import (
	"strconv"

	"gopkg.in/ini.v1"

	"github.com/bgallie/rotorsim/cryptors"
	"github.com/bgallie/rotorsim/cryptors/permutation"
	"github.com/bgallie/rotorsim/cryptors/rotor"
	"github.com/bgallie/rotorsim/cryptors/rotorset"
)

// Machine names as they appear under machine.machinename in state files.
const (
	MachineEnigma = "Enigma"
	MachineSigaba = "SIGABA"
	MachineTypex  = "Typex"
	MachineKl7    = "KL7"
	MachineNema   = "Nema"
	MachineSg39   = "SG39"
)

// RestoreFromIni reads a complete state file, builds the default machine
// it names and loads the state into it.  A broken file never yields a
// half-loaded machine.
func RestoreFromIni(data []byte) (Machine, error) {
	f, err := ini.Load(data)
	if err != nil {
		return nil, cryptors.NewError(cryptors.ErrSyntaxInput, "state data does not parse: %v", err)
	}
	sec := f.Section("machine")
	name := sec.Key("machinename").String()
	if name == "" {
		return nil, cryptors.NewError(cryptors.ErrSyntaxInput, "state data names no machine")
	}
	m, err := MakeMachineByName(name, sec.Key("machinetype").String())
	if err != nil {
		return nil, err
	}
	if err := m.LoadIni(f); err != nil {
		return nil, err
	}
	return m, nil
}

// saveBase writes the machine and stepper groups plus every slot.
func (m *RotorMachine) saveBase(f *ini.File) {
	sec := f.Section("machine")
	sec.Key("machinename").SetValue(m.name)
	if m.machineType != "" {
		sec.Key("machinetype").SetValue(m.machineType)
	}
	st := f.Section("stepper")
	st.Key("charcounter").SetValue(strconv.Itoa(m.counter))
	if m.keyboard != nil {
		st.Key("keyboardshift").SetValue(m.keyboard.Mode().String())
	}
	if m.printer != nil {
		st.Key("printershift").SetValue(m.printer.Mode().String())
	}
	m.saveSlots(f, "", m.slots)
}

// saveSlots writes one rotor_<slot> group per descriptor.  Reversed
// slots store their catalogue wiring and ring, not the mounted mirror
// image, so rid/ringid stay meaningful on load.
func (m *RotorMachine) saveSlots(f *ini.File, prefix string, slots []*rotor.Descriptor) {
	for _, d := range slots {
		sec := f.Section(prefix + "rotor_" + d.Slot)
		sec.Key("rid").SetValue(strconv.Itoa(d.RotorID))
		sec.Key("insertinverse").SetValue(strconv.FormatBool(d.Reversed))
		perm := d.Rotor().Perm()
		if d.Reversed {
			perm = rotor.Reversed(perm)
		}
		sec.Key("permutation").SetValue(rotorset.IntsToString(perm.Fwd()))
		sec.Key("rotordisplacement").SetValue(strconv.Itoa(d.Displacement()))
		if r := d.Ring(); r != nil {
			data := r.Data
			if d.Reversed {
				data = rotor.ReversedRing(data)
			}
			sec.Key("ringid").SetValue(strconv.Itoa(r.ID))
			sec.Key("ringdata").SetValue(rotorset.BytesToString(data))
			sec.Key("ringoffset").SetValue(strconv.Itoa(r.Offset))
		}
		if d.Wheel != nil {
			sec.Key("wheelpos").SetValue(strconv.Itoa(d.Wheel.Pos()))
			sec.Key("wheeldata").SetValue(rotorset.BytesToString(d.Wheel.Pins()))
		}
		if m.windowByLetterRing {
			sec.Key("letterring").SetValue(strconv.Itoa(d.LetterRing))
		}
	}
}

func requireIntKey(sec *ini.Section, name string) (int, error) {
	if !sec.HasKey(name) {
		return 0, cryptors.NewError(cryptors.ErrSyntaxInput, "group %q has no key %q", sec.Name(), name)
	}
	v, err := sec.Key(name).Int()
	if err != nil {
		return 0, cryptors.NewError(cryptors.ErrSyntaxInput, "key %s of group %q is not an integer", name, sec.Name())
	}
	return v, nil
}

func requireBoolKey(sec *ini.Section, name string) (bool, error) {
	if !sec.HasKey(name) {
		return false, cryptors.NewError(cryptors.ErrSyntaxInput, "group %q has no key %q", sec.Name(), name)
	}
	v, err := sec.Key(name).Bool()
	if err != nil {
		return false, cryptors.NewError(cryptors.ErrSyntaxInput, "key %s of group %q is not a boolean", name, sec.Name())
	}
	return v, nil
}

// loadBase reads the machine and stepper groups plus every slot into the
// receiver.  Callers run it on a throwaway candidate and swap the result
// in only on success.
func (m *RotorMachine) loadBase(f *ini.File) error {
	sec := f.Section("machine")
	if got := sec.Key("machinename").String(); got != m.name {
		return cryptors.NewError(cryptors.ErrObjectCreate, "state file is for machine %q, not %q", got, m.name)
	}
	if m.machineType != "" {
		if got := sec.Key("machinetype").String(); got != m.machineType {
			return cryptors.NewError(cryptors.ErrObjectCreate, "state file is for variant %q, not %q", got, m.machineType)
		}
	}
	st := f.Section("stepper")
	counter, err := requireIntKey(st, "charcounter")
	if err != nil {
		return err
	}
	m.counter = counter
	if m.keyboard != nil {
		if err := loadShift(st, "keyboardshift", m.keyboard); err != nil {
			return err
		}
	}
	if m.printer != nil {
		if err := loadShift(st, "printershift", m.printer); err != nil {
			return err
		}
	}
	return m.loadSlots(f, "", m.slots)
}

func loadShift(sec *ini.Section, name string, s *ShiftState) error {
	switch sec.Key(name).String() {
	case "letters":
		s.SetMode(Letters)
	case "figures":
		s.SetMode(Figures)
	default:
		return cryptors.NewError(cryptors.ErrSyntaxInput, "key %s holds no shift state", name)
	}
	return nil
}

func (m *RotorMachine) loadSlots(f *ini.File, prefix string, slots []*rotor.Descriptor) error {
	for _, d := range slots {
		if err := m.loadSlot(f, prefix, d); err != nil {
			return err
		}
	}
	return nil
}

func (m *RotorMachine) loadSlot(f *ini.File, prefix string, d *rotor.Descriptor) error {
	sec := f.Section(prefix + "rotor_" + d.Slot)
	rid, err := requireIntKey(sec, "rid")
	if err != nil {
		return err
	}
	reversed, err := requireBoolKey(sec, "insertinverse")
	if err != nil {
		return err
	}
	if !sec.HasKey("permutation") {
		return cryptors.NewError(cryptors.ErrSyntaxInput, "slot %s has no permutation", d.Slot)
	}
	vals, err := rotorset.StringToInts(sec.Key("permutation").String())
	if err != nil {
		return err
	}
	if len(vals) != d.Size() {
		return cryptors.NewError(cryptors.ErrObjectCreate, "slot %s wiring has %d contacts, needs %d", d.Slot, len(vals), d.Size())
	}
	perm, err := permutation.New(vals)
	if err != nil {
		return err
	}
	d.RotorID = rid
	d.ReplacePerm(perm, reversed)
	if sec.HasKey("ringdata") {
		data, err := rotorset.StringToBytes(sec.Key("ringdata").String())
		if err != nil {
			return err
		}
		if len(data) != d.Size() {
			return cryptors.NewError(cryptors.ErrObjectCreate, "slot %s ring has %d positions, needs %d", d.Slot, len(data), d.Size())
		}
		ringID, err := requireIntKey(sec, "ringid")
		if err != nil {
			return err
		}
		offset, err := requireIntKey(sec, "ringoffset")
		if err != nil {
			return err
		}
		d.SetRing(ringID, offset, data)
	}
	disp, err := requireIntKey(sec, "rotordisplacement")
	if err != nil {
		return err
	}
	d.SetDisplacement(disp)
	if d.Wheel != nil {
		pos, err := requireIntKey(sec, "wheelpos")
		if err != nil {
			return err
		}
		if !sec.HasKey("wheeldata") {
			return cryptors.NewError(cryptors.ErrSyntaxInput, "slot %s has no wheel data", d.Slot)
		}
		pins, err := rotorset.StringToBytes(sec.Key("wheeldata").String())
		if err != nil {
			return err
		}
		if len(pins) != d.Wheel.Size() {
			return cryptors.NewError(cryptors.ErrObjectCreate, "slot %s wheel has %d pins, needs %d", d.Slot, len(pins), d.Wheel.Size())
		}
		d.Wheel.SetPins(pins)
		d.Wheel.SetPos(pos)
	}
	if m.windowByLetterRing {
		lr, err := requireIntKey(sec, "letterring")
		if err != nil {
			return err
		}
		d.LetterRing = lr
	}
	return nil
}
