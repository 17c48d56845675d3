package rotorset

import (
	"github.com/bgallie/rotorsim/cryptors/permutation"
)

// SIGABA index rotor identifiers.  Cipher and control rotors are numbered
// 0..9 directly.
const (
	IndexRotor0 = iota
	IndexRotor1
	IndexRotor2
	IndexRotor3
	IndexRotor4
)

// NewSigabaSet returns the published CSP 889 cipher/control rotor
// wirings.  The same ten wheels serve both the cipher and the driver
// bank.
func NewSigabaSet() *RotorSet {
	rs := New("sigaba", 26)
	wirings := []string{
		"ychlqsugbdixnzkerpvjtawfom",
		"inpxbwetguysaochvldmqkzjfr",
		"wndriozptaxhfjyqbmsvekucgl",
		"tzghobkrvuxlqdmpnfwcjyeias",
		"ywtahrqjvlcexungbipzmsdfok",
		"qslrbtekogaicfwyvmhjnxzudp",
		"chjdqignbsakvtuoxfwleprmzy",
		"cdfajxtimnbeqhsugrylwzkvpo",
		"xhfeszdnrbcgkqijltvmuoyapw",
		"ezjqxmogytcsfriupvnadlhwbk",
	}
	for id, wiring := range wirings {
		rs.AddRotor(id, MakePerm(wiring))
	}
	return rs
}

// NewSigabaIndexSet returns the published index rotor wirings: five
// ten-contact rotors.
func NewSigabaIndexSet() *RotorSet {
	rs := New("sigaba_index", 10)
	wirings := []string{
		"7591482630",
		"3810592764",
		"4086153297",
		"3980526174",
		"6497135280",
	}
	for id, wiring := range wirings {
		fwd := make([]int, len(wiring))
		for i, c := range wiring {
			fwd[i] = int(c - '0')
		}
		rs.AddRotor(id, permutation.MustNew(fwd))
	}
	return rs
}
