// permutation
package permutation

import (
	"bytes"
	"fmt"

	"github.com/bgallie/rotorsim/cryptors"
)

// Permutation is a bijection on 0..N-1, held as a pair of mutually inverse
// lookup arrays so that both directions are O(1).
type Permutation struct {
	fwd []int
	inv []int
}

// New builds a permutation from its forward array.  The array must contain
// every value 0..len-1 exactly once.
func New(fwd []int) (*Permutation, error) {
	n := len(fwd)
	inv := make([]int, n)
	seen := make([]bool, n)
	for i, v := range fwd {
		if v < 0 || v >= n || seen[v] {
			return nil, cryptors.NewError(cryptors.ErrSyntaxInput, "value %d at position %d does not describe a permutation of 0..%d", v, i, n-1)
		}
		seen[v] = true
		inv[v] = i
	}
	return &Permutation{fwd: append([]int(nil), fwd...), inv: inv}, nil
}

// MustNew is New for the static wiring tables; it panics on bad input.
func MustNew(fwd []int) *Permutation {
	p, err := New(fwd)
	if err != nil {
		panic(err)
	}
	return p
}

// Identity returns the identity permutation on 0..n-1.
func Identity(n int) *Permutation {
	fwd := make([]int, n)
	for i := range fwd {
		fwd[i] = i
	}
	p, _ := New(fwd)
	return p
}

// Random draws a uniform permutation on 0..n-1 via Fisher-Yates.
func Random(n int, src cryptors.RandomSource) *Permutation {
	fwd := make([]int, n)
	for i := range fwd {
		fwd[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := src.Intn(i + 1)
		fwd[i], fwd[j] = fwd[j], fwd[i]
	}
	p, _ := New(fwd)
	return p
}

// RandomInvolution draws a fixed-point-free involution on 0..n-1 for even
// n: a uniform permutation is drawn and its consecutive elements paired.
func RandomInvolution(n int, src cryptors.RandomSource) (*Permutation, error) {
	if n%2 != 0 {
		return nil, cryptors.NewError(cryptors.ErrCallFailed, "involution on %d points would need a fixed point", n)
	}
	shuffled := Random(n, src).Fwd()
	pairs := make([][2]int, n/2)
	for i := range pairs {
		pairs[i] = [2]int{shuffled[2*i], shuffled[2*i+1]}
	}
	return FromCycles(n, pairs)
}

// FromCycles builds the involution on 0..n-1 whose 2-cycles are the given
// pairs; all unpaired points are fixed.  A point may appear at most once.
func FromCycles(n int, pairs [][2]int) (*Permutation, error) {
	fwd := make([]int, n)
	for i := range fwd {
		fwd[i] = i
	}
	used := make([]bool, n)
	for _, pr := range pairs {
		a, b := pr[0], pr[1]
		if a < 0 || a >= n || b < 0 || b >= n || a == b {
			return nil, cryptors.NewError(cryptors.ErrSyntaxInput, "invalid transposition (%d %d)", a, b)
		}
		if used[a] || used[b] {
			return nil, cryptors.NewError(cryptors.ErrSemanticsInput, "point in transposition (%d %d) is already paired", a, b)
		}
		used[a], used[b] = true, true
		fwd[a], fwd[b] = b, a
	}
	return New(fwd)
}

func (p *Permutation) Size() int {
	return len(p.fwd)
}

func (p *Permutation) Encrypt(i int) int {
	return p.fwd[i]
}

func (p *Permutation) Decrypt(i int) int {
	return p.inv[i]
}

// Invert returns the inverse permutation.  The receiver is unchanged.
func (p *Permutation) Invert() *Permutation {
	return &Permutation{
		fwd: append([]int(nil), p.inv...),
		inv: append([]int(nil), p.fwd...),
	}
}

// Compose returns the permutation that applies q first and the receiver
// second: result(x) = p(q(x)).
func (p *Permutation) Compose(q *Permutation) (*Permutation, error) {
	if p.Size() != q.Size() {
		return nil, cryptors.NewError(cryptors.ErrCallFailed, "composing permutations of sizes %d and %d", p.Size(), q.Size())
	}
	fwd := make([]int, p.Size())
	for i := range fwd {
		fwd[i] = p.fwd[q.fwd[i]]
	}
	return New(fwd)
}

// InvolutionPairs returns the 2-cycles of the permutation if squaring it
// yields the identity, together with true.  Fixed points are not listed.
// For non-involutions it returns nil and false.
func (p *Permutation) InvolutionPairs() ([][2]int, bool) {
	var pairs [][2]int
	for i, v := range p.fwd {
		if p.fwd[v] != i {
			return nil, false
		}
		if v > i {
			pairs = append(pairs, [2]int{i, v})
		}
	}
	return pairs, true
}

// Fwd returns a copy of the forward lookup array.
func (p *Permutation) Fwd() []int {
	return append([]int(nil), p.fwd...)
}

func (p *Permutation) Equal(q *Permutation) bool {
	if q == nil || len(p.fwd) != len(q.fwd) {
		return false
	}
	for i, v := range p.fwd {
		if q.fwd[i] != v {
			return false
		}
	}
	return true
}

func (p *Permutation) Clone() *Permutation {
	return &Permutation{
		fwd: append([]int(nil), p.fwd...),
		inv: append([]int(nil), p.inv...),
	}
}

func (p *Permutation) String() string {
	var output bytes.Buffer
	for i, v := range p.fwd {
		if i > 0 {
			output.WriteString(", ")
		}
		output.WriteString(fmt.Sprintf("%d", v))
	}
	return output.String()
}
