package alphabet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bgallie/rotorsim/cryptors"
)

func TestFromStringLookups(t *testing.T) {
	assert := assert.New(t)
	a := FromString("abcdefghijklmnopqrstuvwxyz")
	assert.Equal(26, a.Size())
	v, err := a.FromVal('a')
	require.NoError(t, err)
	assert.Equal(0, v)
	v, err = a.FromVal('z')
	require.NoError(t, err)
	assert.Equal(25, v)
	assert.Equal('a', a.ToVal(0))
	assert.Equal('z', a.ToVal(25))
	// ToVal is modular in both directions.
	assert.Equal('a', a.ToVal(26))
	assert.Equal('z', a.ToVal(-1))
}

func TestFromValUnknownSymbol(t *testing.T) {
	assert := assert.New(t)
	a := FromString("abc")
	_, err := a.FromVal('x')
	assert.Error(err)
	assert.Equal(cryptors.ErrSyntaxInput, cryptors.KindOf(err))
	assert.False(a.Contains('x'))
	assert.True(a.Contains('b'))
}

func TestNewRejectsDuplicates(t *testing.T) {
	assert := assert.New(t)
	_, err := New([]rune("abca"))
	assert.Error(err)
}

func TestMixedSymbolAlphabet(t *testing.T) {
	assert := assert.New(t)
	a := FromString("ab1cde2fg3hij4klm5no6pq7rs8tu9vw0xyz")
	assert.Equal(36, a.Size())
	v, err := a.FromVal('1')
	require.NoError(t, err)
	assert.Equal(2, v)
	assert.Equal('j', a.ToVal(12))
}

func TestRandomPermutationIsValid(t *testing.T) {
	assert := assert.New(t)
	a := FromString("abcdefghijklmnopqrstuvwxyz")
	src := cryptors.NewSeededSource(7)
	p := a.RandomPermutation(src)
	require.Len(t, p, 26)
	seen := make([]bool, 26)
	for _, v := range p {
		seen[v] = true
	}
	for _, s := range seen {
		assert.True(s)
	}
}

func TestRandomStringStaysInAlphabet(t *testing.T) {
	assert := assert.New(t)
	a := FromString("abcd")
	src := cryptors.NewSeededSource(8)
	for _, r := range a.RandomString(50, src) {
		assert.True(a.Contains(r))
	}
}
