package rotorset

import (
	"github.com/bgallie/rotorsim/cryptors/permutation"
)

// Rotor and ring identifiers of the Enigma family catalogues.
const (
	WalzeI = iota + 1
	WalzeII
	WalzeIII
	WalzeIV
	WalzeV
	WalzeVI
	WalzeVII
	WalzeVIII
	WalzeBeta
	WalzeGamma
	UkwA
	UkwB
	UkwC
	UkwBThin
	UkwCThin
	UkwD
	UkwRail
	UkwTirpitz
	UkwAbwehr
	EtwQwertz
	EtwTirpitz
)

// MakePerm converts a lower-case wiring string into a permutation: the
// contact at position i is wired to the letter at position i.
func MakePerm(wiring string) *permutation.Permutation {
	fwd := make([]int, len(wiring))
	for i, c := range wiring {
		fwd[i] = int(c - 'a')
	}
	return permutation.MustNew(fwd)
}

// MakeRing builds a 26-position notch pattern with a notch at every listed
// turnover letter.
func MakeRing(turnovers string) []byte {
	data := make([]byte, 26)
	for _, c := range turnovers {
		data[c-'a'] = 1
	}
	return data
}

// NewEnigmaSet returns the catalogue of the steckered Enigma variants
// (Services, M3, M4): Walzen I-VIII with their historical turnover rings,
// the Greek wheels, and the reflectors.  The reflector and Greek wirings
// are marked const; randomising the set replaces only the movable Walzen.
func NewEnigmaSet() *RotorSet {
	rs := New("enigma", 26)
	rotors := map[int]string{
		WalzeI:     "ekmflgdqvzntowyhxuspaibrcj",
		WalzeII:    "ajdksiruxblhwtmcqgznpyfvoe",
		WalzeIII:   "bdfhjlcprtxvznyeiwgakmusqo",
		WalzeIV:    "esovpzjayquirhxlnftgkdcmwb",
		WalzeV:     "vzbrgityupsdnhlxawmjqofeck",
		WalzeVI:    "jpgvoumfyqbenhzrdkasxlictw",
		WalzeVII:   "nzjhgrcxmyswboufaivlpekqdt",
		WalzeVIII:  "fkqhtlxocbjspdzramewniuygv",
		WalzeBeta:  "leyjvcnixwpbqmdrtakzgfuhos",
		WalzeGamma: "fsokanuerhmbtiycwlqpzxvgjd",
		UkwA:       "ejmzalyxvbwfcrquontspikhgd",
		UkwB:       "yruhqsldpxngokmiebfzcwvjat",
		UkwC:       "fvpjiaoyedrzxwgctkuqsbnmhl",
		UkwBThin:   "enkqauywjicopblmdxzvfthrgs",
		UkwCThin:   "rdobjntkvehmlfcwzaxgyipsuq",
		UkwD:       "votmznxqsyrudfbwhkiclapgje",
	}
	for id, wiring := range rotors {
		rs.AddRotor(id, MakePerm(wiring))
	}
	rings := map[int]string{
		WalzeI:     "q",
		WalzeII:    "e",
		WalzeIII:   "v",
		WalzeIV:    "j",
		WalzeV:     "z",
		WalzeVI:    "zm",
		WalzeVII:   "zm",
		WalzeVIII:  "zm",
		WalzeBeta:  "",
		WalzeGamma: "",
	}
	for id, turnovers := range rings {
		rs.AddRing(id, MakeRing(turnovers))
	}
	rs.MarkConst(WalzeBeta, WalzeGamma, UkwA, UkwB, UkwC, UkwBThin, UkwCThin, UkwD)
	return rs
}

// NewRailwaySet returns the Railway (Rocket K) catalogue: three Walzen
// with single-notch rings, the fixed reflector, and the QWERTZ entry
// wheel.
func NewRailwaySet() *RotorSet {
	rs := New("railway", 26)
	rs.AddRotor(WalzeI, MakePerm("jgdqoxuscamifrvtpnewkblzyh"))
	rs.AddRotor(WalzeII, MakePerm("ntzpsfbokmwrcjdivlaeyuxhgq"))
	rs.AddRotor(WalzeIII, MakePerm("jviubhtcdyakeqzposgxnrmwfl"))
	rs.AddRotor(UkwRail, MakePerm("qyhognecvpuztfdjaxwmkisrbl"))
	rs.AddRotor(EtwQwertz, MakePerm("qwertzuioasdfghjkpyxcvbnml"))
	rs.AddRing(WalzeI, MakeRing("n"))
	rs.AddRing(WalzeII, MakeRing("e"))
	rs.AddRing(WalzeIII, MakeRing("y"))
	rs.MarkConst(UkwRail, EtwQwertz)
	return rs
}

// NewTirpitzSet returns the Enigma T catalogue: eight Walzen with five
// notches each, the reflector, and the Tirpitz entry wheel.
func NewTirpitzSet() *RotorSet {
	rs := New("tirpitz", 26)
	rotors := map[int]string{
		WalzeI:     "kptyuelocvgrfqdanjmbswhzxi",
		WalzeII:    "uphzlweqmtdjxcaksoigvbyfnr",
		WalzeIII:   "qudlyrfekonvzaxwhmgpjbsict",
		WalzeIV:    "ciwtbkxnrespflydagvhquojzm",
		WalzeV:     "uaxgisnjbverdylfzwtpckohmq",
		WalzeVI:    "xfuzgalvhcnysewqtdmrbkpioj",
		WalzeVII:   "bjvftxplnayozikwgdqeruchsm",
		WalzeVIII:  "ymtpnzhwkodqejvrgcuxbisfal",
		UkwTirpitz: "gekpbtaumocniljdxzyfhwvqsr",
		EtwTirpitz: "kzrouqhyaigblwvstdxfpnmcje",
	}
	for id, wiring := range rotors {
		rs.AddRotor(id, MakePerm(wiring))
	}
	rings := map[int]string{
		WalzeI:    "wzekq",
		WalzeII:   "wzflr",
		WalzeIII:  "wzekq",
		WalzeIV:   "wzflr",
		WalzeV:    "ycfkr",
		WalzeVI:   "xeimq",
		WalzeVII:  "ycfkr",
		WalzeVIII: "xeimq",
	}
	for id, turnovers := range rings {
		rs.AddRing(id, MakeRing(turnovers))
	}
	rs.MarkConst(UkwTirpitz, EtwTirpitz)
	return rs
}

// NewAbwehrSet returns the Enigma G-312 catalogue: three multi-notch
// Walzen, the rotating reflector, and the QWERTZ entry wheel.
func NewAbwehrSet() *RotorSet {
	rs := New("abwehr", 26)
	rs.AddRotor(WalzeI, MakePerm("dmtwsilruyqnkfejcazbpgxohv"))
	rs.AddRotor(WalzeII, MakePerm("hqzgpjtmoblncifdyawveusrkx"))
	rs.AddRotor(WalzeIII, MakePerm("uqntlszfmrehdpxkibvygjcwoa"))
	rs.AddRotor(UkwAbwehr, MakePerm("rulqmzjsygocetkwdahnbxpvif"))
	rs.AddRotor(EtwQwertz, MakePerm("qwertzuioasdfghjkpyxcvbnml"))
	rs.AddRing(WalzeI, MakeRing("suvwzabcefgiklopq"))
	rs.AddRing(WalzeII, MakeRing("stvyzacdfghkmnq"))
	rs.AddRing(WalzeIII, MakeRing("uwxaefhkmnr"))
	rs.MarkConst(UkwAbwehr, EtwQwertz)
	return rs
}

// NewKDSet returns the Enigma KD catalogue: three nine-notch Walzen, the
// QWERTZ entry wheel, and the rewirable UKW D with its delivery wiring.
func NewKDSet() *RotorSet {
	rs := New("kd", 26)
	rs.AddRotor(WalzeI, MakePerm("veziojcxkyduntwaplqgbhsfmr"))
	rs.AddRotor(WalzeII, MakePerm("hgrbsjzetdlvpmqycxaokinfuw"))
	rs.AddRotor(WalzeIII, MakePerm("nwlhxgrbyojsazdvtpkfqmeuic"))
	rs.AddRotor(UkwD, MakePerm("votmznxqsyrudfbwhkiclapgje"))
	rs.AddRotor(EtwQwertz, MakePerm("qwertzuioasdfghjkpyxcvbnml"))
	for _, id := range []int{WalzeI, WalzeII, WalzeIII} {
		rs.AddRing(id, MakeRing("suyaehlnq"))
	}
	rs.MarkConst(UkwD, EtwQwertz)
	return rs
}
