package rotorset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/ini.v1"

	"github.com/bgallie/rotorsim/cryptors"
	"github.com/bgallie/rotorsim/cryptors/permutation"
)

func TestListCodecs(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("1;2;3", IntsToString([]int{1, 2, 3}))
	vals, err := StringToInts("4; 5;6")
	require.NoError(t, err)
	assert.Equal([]int{4, 5, 6}, vals)
	vals, err = StringToInts("")
	require.NoError(t, err)
	assert.Nil(vals)
	_, err = StringToInts("1;x")
	assert.Error(err)

	assert.Equal("1;0;1", BytesToString([]byte{1, 0, 1}))
	data, err := StringToBytes("0;1;7")
	require.NoError(t, err)
	assert.Equal([]byte{0, 1, 1}, data)
}

func TestSetLookupsAndErrors(t *testing.T) {
	assert := assert.New(t)
	rs := NewEnigmaSet()
	p, err := rs.Rotor(WalzeI)
	require.NoError(t, err)
	assert.Equal(26, p.Size())
	_, err = rs.Rotor(999)
	assert.Error(err)
	assert.Equal(cryptors.ErrObjectCreate, cryptors.KindOf(err))
	_, err = rs.Ring(999)
	assert.Error(err)

	ring, err := rs.Ring(WalzeVI)
	require.NoError(t, err)
	assert.Equal(byte(1), ring['z'-'a'])
	assert.Equal(byte(1), ring['m'-'a'])
}

func TestSetSizeGuards(t *testing.T) {
	assert := assert.New(t)
	rs := New("test", 26)
	assert.Error(rs.AddRotor(1, permutation.Identity(21)))
	assert.Error(rs.AddRing(1, make([]byte, 21)))
	assert.NoError(rs.AddRotor(1, permutation.Identity(26)))
	assert.NoError(rs.AddRing(1, make([]byte, 26)))
}

func TestSubset(t *testing.T) {
	assert := assert.New(t)
	rs := NewEnigmaSet()
	sub, err := rs.Subset("small", []int{WalzeI, UkwB}, []int{WalzeI})
	require.NoError(t, err)
	assert.Equal([]int{WalzeI, UkwB}, sub.RotorIDs())
	assert.Equal([]int{WalzeI}, sub.RingIDs())
	assert.True(sub.IsConst(UkwB))
	assert.False(sub.IsConst(WalzeI))
	_, err = rs.Subset("bad", []int{999}, nil)
	assert.Error(err)
}

func TestRandomizeKeepsConstWirings(t *testing.T) {
	assert := assert.New(t)
	rs := NewEnigmaSet()
	ukwBefore, _ := rs.Rotor(UkwB)
	walzeBefore, _ := rs.Rotor(WalzeI)
	rs.Randomize(cryptors.NewSeededSource(3))
	ukwAfter, _ := rs.Rotor(UkwB)
	walzeAfter, _ := rs.Rotor(WalzeI)
	assert.True(ukwBefore.Equal(ukwAfter))
	assert.False(walzeBefore.Equal(walzeAfter))
}

func TestGeneratedSetsAreDeterministic(t *testing.T) {
	assert := assert.New(t)
	assert.True(NewTypexSet().Equal(NewTypexSet()))
	assert.True(NewKl7Set().Equal(NewKl7Set()))
	assert.True(NewNemaSet().Equal(NewNemaSet()))
	assert.True(NewSg39Set().Equal(NewSg39Set()))
}

func TestSetIniRoundTrip(t *testing.T) {
	assert := assert.New(t)
	rs := NewTypexSet()
	f := ini.Empty()
	rs.SaveIni(f)
	loaded, err := LoadIni(f)
	require.NoError(t, err)
	assert.True(rs.Equal(loaded))
	assert.True(loaded.IsConst(TypexReflector))
}
