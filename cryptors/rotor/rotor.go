// rotor
package rotor

import (
	"github.com/bgallie/rotorsim/cryptors/permutation"
)

// Rotor is a wired permutation on N contacts.  Its physical rotation is
// modelled by a displacement that shifts the entry and exit contact by the
// same amount; the displacement itself lives in the enclosing Descriptor
// and is passed in on every call, so a rotor holds no mutable state.
type Rotor struct {
	perm *permutation.Permutation
}

func New(perm *permutation.Permutation) *Rotor {
	return &Rotor{perm: perm}
}

func (r *Rotor) Size() int {
	return r.perm.Size()
}

func (r *Rotor) Perm() *permutation.Permutation {
	return r.perm
}

// Encrypt sends contact x through the rotor at the given displacement:
// perm((x + d) mod N) - d (mod N).
func (r *Rotor) Encrypt(x, displacement int) int {
	n := r.perm.Size()
	d := ((displacement % n) + n) % n
	return ((r.perm.Encrypt((x+d)%n) - d) + n) % n
}

// Decrypt is the inverse of Encrypt at the same displacement.
func (r *Rotor) Decrypt(x, displacement int) int {
	n := r.perm.Size()
	d := ((displacement % n) + n) % n
	return ((r.perm.Decrypt((x+d)%n) - d) + n) % n
}

// Reversed transforms a wiring for a rotor that is mounted back to front:
// R o p^-1 o R with R(i) = -i mod N.  This is what physically turning the
// rotor over does to its permutation, and it is distinct from using the
// plain inverse.
func Reversed(p *permutation.Permutation) *permutation.Permutation {
	n := p.Size()
	fwd := make([]int, n)
	for i := 0; i < n; i++ {
		fwd[i] = (n - p.Decrypt((n-i)%n)) % n
	}
	return permutation.MustNew(fwd)
}

// ReversedRing mirrors a notch pattern for a rotor mounted back to front.
func ReversedRing(data []byte) []byte {
	n := len(data)
	out := make([]byte, n)
	for i := range data {
		out[i] = data[(n-i)%n]
	}
	return out
}
