// alphabet
package alphabet

import (
	"github.com/bgallie/rotorsim/cryptors"
)

// Alphabet is a fixed ordered set of distinct symbols with bidirectional
// index/symbol lookup.
type Alphabet[T comparable] struct {
	symbols []T
	index   map[T]int
}

// New builds an alphabet from an ordered symbol list.  The list must not
// contain duplicates.
func New[T comparable](symbols []T) (*Alphabet[T], error) {
	a := &Alphabet[T]{
		symbols: append([]T(nil), symbols...),
		index:   make(map[T]int, len(symbols)),
	}
	for i, s := range symbols {
		if _, dup := a.index[s]; dup {
			return nil, cryptors.NewError(cryptors.ErrSyntaxInput, "duplicate symbol at position %d", i)
		}
		a.index[s] = i
	}
	return a, nil
}

// FromString builds a rune alphabet from the characters of s, in order.
// It panics on duplicates and is meant for the static alphabets that ship
// with the machine catalogues.
func FromString(s string) *Alphabet[rune] {
	a, err := New([]rune(s))
	if err != nil {
		panic(err)
	}
	return a
}

func (a *Alphabet[T]) Size() int {
	return len(a.symbols)
}

// ToVal returns the symbol at index i.
func (a *Alphabet[T]) ToVal(i int) T {
	return a.symbols[((i%len(a.symbols))+len(a.symbols))%len(a.symbols)]
}

// FromVal returns the index of symbol t.
func (a *Alphabet[T]) FromVal(t T) (int, error) {
	i, ok := a.index[t]
	if !ok {
		return 0, cryptors.NewError(cryptors.ErrSyntaxInput, "symbol not in alphabet")
	}
	return i, nil
}

func (a *Alphabet[T]) Contains(t T) bool {
	_, ok := a.index[t]
	return ok
}

// Symbols returns a copy of the ordered symbol list.
func (a *Alphabet[T]) Symbols() []T {
	return append([]T(nil), a.symbols...)
}

// RandomString draws n symbols uniformly and independently.
func (a *Alphabet[T]) RandomString(n int, src cryptors.RandomSource) []T {
	out := make([]T, n)
	for i := range out {
		out[i] = a.symbols[src.Intn(len(a.symbols))]
	}
	return out
}

// RandomPermutation draws a uniform permutation of the symbol indices
// using Fisher-Yates.
func (a *Alphabet[T]) RandomPermutation(src cryptors.RandomSource) []int {
	p := make([]int, len(a.symbols))
	for i := range p {
		p[i] = i
	}
	for i := len(p) - 1; i > 0; i-- {
		j := src.Intn(i + 1)
		p[i], p[j] = p[j], p[i]
	}
	return p
}
