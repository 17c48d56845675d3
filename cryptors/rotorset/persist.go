package rotorset

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/bgallie/rotorsim/cryptors"
	"github.com/bgallie/rotorsim/cryptors/permutation"
)

// IntsToString renders an integer list in the state-file format: values
// joined by semicolons.
func IntsToString(vals []int) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ";")
}

// StringToInts parses a semicolon-separated integer list.
func StringToInts(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ";")
	out := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, cryptors.NewError(cryptors.ErrSyntaxInput, "bad integer list element %q", p)
		}
		out[i] = v
	}
	return out, nil
}

// BytesToString renders a notch or pin pattern as a 0/1 integer list.
func BytesToString(data []byte) string {
	vals := make([]int, len(data))
	for i, b := range data {
		vals[i] = int(b)
	}
	return IntsToString(vals)
}

// StringToBytes parses a 0/1 integer list into a pattern.
func StringToBytes(s string) ([]byte, error) {
	vals, err := StringToInts(s)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(vals))
	for i, v := range vals {
		if v != 0 {
			out[i] = 1
		}
	}
	return out, nil
}

// SaveIni writes the catalogue into the given file under the group
// "rotorset" with one child group per wiring and ring.
func (rs *RotorSet) SaveIni(f *ini.File) {
	sec := f.Section("rotorset")
	sec.Key("name").SetValue(rs.name)
	sec.Key("rotorsize").SetValue(strconv.Itoa(rs.size))
	sec.Key("rotorids").SetValue(IntsToString(rs.RotorIDs()))
	sec.Key("ringids").SetValue(IntsToString(rs.RingIDs()))
	constIDs := make([]int, 0, len(rs.constIDs))
	for _, id := range rs.RotorIDs() {
		if rs.constIDs[id] {
			constIDs = append(constIDs, id)
		}
	}
	sec.Key("constids").SetValue(IntsToString(constIDs))
	for _, id := range rs.RotorIDs() {
		f.Section(fmt.Sprintf("rotorset.rotor_%d", id)).Key("permutation").SetValue(IntsToString(rs.perms[id].Fwd()))
	}
	for _, id := range rs.RingIDs() {
		f.Section(fmt.Sprintf("rotorset.ring_%d", id)).Key("ringdata").SetValue(BytesToString(rs.rings[id]))
	}
}

// LoadIni reads a catalogue previously written by SaveIni.
func LoadIni(f *ini.File) (*RotorSet, error) {
	sec := f.Section("rotorset")
	name := sec.Key("name").String()
	if name == "" {
		return nil, cryptors.NewError(cryptors.ErrSyntaxInput, "rotor set data has no name")
	}
	size, err := sec.Key("rotorsize").Int()
	if err != nil || size <= 0 {
		return nil, cryptors.NewError(cryptors.ErrSyntaxInput, "rotor set %q has a bad size", name)
	}
	rs := New(name, size)
	rotorIDs, err := StringToInts(sec.Key("rotorids").String())
	if err != nil {
		return nil, err
	}
	ringIDs, err := StringToInts(sec.Key("ringids").String())
	if err != nil {
		return nil, err
	}
	for _, id := range rotorIDs {
		vals, err := StringToInts(f.Section(fmt.Sprintf("rotorset.rotor_%d", id)).Key("permutation").String())
		if err != nil {
			return nil, err
		}
		p, err := permutation.New(vals)
		if err != nil {
			return nil, err
		}
		if err := rs.AddRotor(id, p); err != nil {
			return nil, err
		}
	}
	for _, id := range ringIDs {
		data, err := StringToBytes(f.Section(fmt.Sprintf("rotorset.ring_%d", id)).Key("ringdata").String())
		if err != nil {
			return nil, err
		}
		if err := rs.AddRing(id, data); err != nil {
			return nil, err
		}
	}
	constIDs, err := StringToInts(sec.Key("constids").String())
	if err != nil {
		return nil, err
	}
	rs.MarkConst(constIDs...)
	return rs, nil
}
