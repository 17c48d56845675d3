package machines

import (
	"github.com/bgallie/rotorsim/cryptors/permutation"
)

// Transform is a stateless-looking map applied before the rotor stack on
// the way in and, inverted, on the way out.  Decrypt must be the exact
// inverse of Encrypt.
type Transform interface {
	Encrypt(x int) int
	Decrypt(x int) int
}

// permTransform wraps a permutation.  Plugboards use an involution here,
// the SG39 plug field an arbitrary permutation.
type permTransform struct {
	perm *permutation.Permutation
}

func NewPermTransform(p *permutation.Permutation) Transform {
	return &permTransform{perm: p}
}

func (t *permTransform) Encrypt(x int) int {
	return t.perm.Encrypt(x)
}

func (t *permTransform) Decrypt(x int) int {
	return t.perm.Decrypt(x)
}

type identityTransform struct{}

func (identityTransform) Encrypt(x int) int { return x }
func (identityTransform) Decrypt(x int) int { return x }

// IdentityTransform passes symbols through unchanged.
func IdentityTransform() Transform {
	return identityTransform{}
}
