package rotorset

import (
	"github.com/bgallie/rotorsim/cryptors"
	"github.com/bgallie/rotorsim/cryptors/permutation"
)

// The Typex, KL7, Nema and SG39 wirings were never published (the KL7
// wirings remain classified to this day), so these catalogues ship fixed
// sets generated from per-family seeds.  The generation is deterministic:
// every build and every run produces bit-identical sets, which keeps
// state files portable between binaries.

const (
	typexSeed = 0x54595045
	kl7Seed   = 0x4b4c3037
	nemaSeed  = 0x4e454d41
	sg39Seed  = 0x53473339
)

// Identifiers shared by the generated catalogues.
const (
	TypexReflector = 7
	NemaReflector  = 6
	NemaRedRing    = 24
	Sg39Reflector  = 10
)

func generatedRing(size, notches int, src cryptors.RandomSource) []byte {
	data := make([]byte, size)
	for set := 0; set < notches; {
		i := src.Intn(size)
		if data[i] == 0 {
			data[i] = 1
			set++
		}
	}
	return data
}

// NewTypexSet returns the Typex catalogue: seven insertable rotors a-g,
// each with a seven-notch ring, and a rewirable reflector with a default
// involution.
func NewTypexSet() *RotorSet {
	src := cryptors.NewSeededSource(typexSeed)
	rs := New("typex", 26)
	for id := 0; id < 7; id++ {
		rs.AddRotor(id, permutation.Random(26, src))
		rs.AddRing(id, generatedRing(26, 7, src))
	}
	refl, _ := permutation.RandomInvolution(26, src)
	rs.AddRotor(TypexReflector, refl)
	rs.MarkConst(TypexReflector)
	return rs
}

// NewKl7Set returns the KL7 catalogue: thirteen 36-contact rotors a-m and
// the eleven selectable notch rings 1-11.
func NewKl7Set() *RotorSet {
	src := cryptors.NewSeededSource(kl7Seed)
	rs := New("kl7", 36)
	for id := 0; id < 13; id++ {
		rs.AddRotor(id, permutation.Random(36, src))
	}
	for id := 1; id <= 11; id++ {
		rs.AddRing(id, generatedRing(36, 12, src))
	}
	return rs
}

// NewNemaSet returns the Nema catalogue: contact rotors a-f, the
// reflector, the selectable drive-wheel notch rings 12-23, and the fixed
// red-wheel pattern.
func NewNemaSet() *RotorSet {
	src := cryptors.NewSeededSource(nemaSeed)
	rs := New("nema", 26)
	for id := 0; id < 6; id++ {
		rs.AddRotor(id, permutation.Random(26, src))
	}
	refl, _ := permutation.RandomInvolution(26, src)
	rs.AddRotor(NemaReflector, refl)
	for id := 12; id <= 23; id++ {
		rs.AddRing(id, generatedRing(26, 13, src))
	}
	rs.AddRing(NemaRedRing, generatedRing(26, 13, src))
	rs.MarkConst(NemaReflector)
	return rs
}

// NewSg39Set returns the SG39 catalogue: ten wired rotors 0-9 and a
// rewirable reflector with a default involution.  The notch patterns of
// the rotors and the pins of the three wheels are part of the machine
// configuration, not of the catalogue.
func NewSg39Set() *RotorSet {
	src := cryptors.NewSeededSource(sg39Seed)
	rs := New("sg39", 26)
	for id := 0; id < 10; id++ {
		rs.AddRotor(id, permutation.Random(26, src))
	}
	refl, _ := permutation.RandomInvolution(26, src)
	rs.AddRotor(Sg39Reflector, refl)
	rs.MarkConst(Sg39Reflector)
	return rs
}
