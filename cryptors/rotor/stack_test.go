package rotor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bgallie/rotorsim/cryptors"
	"github.com/bgallie/rotorsim/cryptors/permutation"
)

func testRotors(n int, seed int64) []*Descriptor {
	src := cryptors.NewSeededSource(seed)
	out := make([]*Descriptor, n)
	for i := range out {
		out[i] = NewDescriptor("slot", i, permutation.Random(26, src), false)
	}
	return out
}

func TestUnidirectionalStackRoundTrip(t *testing.T) {
	assert := assert.New(t)
	rotors := testRotors(5, 11)
	s, err := NewStack(rotors, Unidirectional)
	require.NoError(t, err)
	rotors[2].SetDisplacement(13)
	for x := 0; x < 26; x++ {
		assert.Equal(x, s.Decrypt(s.Encrypt(x)))
	}
}

func TestReflectingStackIsSelfReciprocal(t *testing.T) {
	assert := assert.New(t)
	src := cryptors.NewSeededSource(12)
	rotors := testRotors(3, 13)
	refl, err := permutation.RandomInvolution(26, src)
	require.NoError(t, err)
	rotors = append(rotors, NewDescriptor("reflector", 9, refl, false))
	s, err := NewStack(rotors, Reflecting)
	require.NoError(t, err)
	for x := 0; x < 26; x++ {
		y := s.Encrypt(x)
		assert.NotEqual(x, y)
		assert.Equal(x, s.Encrypt(y))
		assert.Equal(x, s.Decrypt(y))
	}
}

func TestReflectingStackNeedsTwoRotors(t *testing.T) {
	assert := assert.New(t)
	_, err := NewStack(testRotors(1, 14), Reflecting)
	assert.Error(err)
	assert.Equal(cryptors.ErrObjectCreate, cryptors.KindOf(err))
}

func TestStackRejectsMixedSizes(t *testing.T) {
	assert := assert.New(t)
	rotors := testRotors(2, 15)
	rotors = append(rotors, NewDescriptor("odd", 2, permutation.Identity(21), false))
	_, err := NewStack(rotors, Unidirectional)
	assert.Error(err)
}

func TestFeedbackStackRoundTrip(t *testing.T) {
	assert := assert.New(t)
	rotors := testRotors(4, 16)
	points := []int{2, 6, 9, 13, 17, 20, 23}
	s, err := NewFeedbackStack(rotors, points, permutation.Identity(26))
	require.NoError(t, err)

	isPoint := make(map[int]bool)
	for _, p := range points {
		isPoint[p] = true
	}
	for x := 0; x < 26; x++ {
		if isPoint[x] {
			continue
		}
		y := s.Encrypt(x)
		assert.False(isPoint[y])
		assert.Equal(x, s.Decrypt(y))
	}
}

func TestFeedbackStackEscapesTrappedContacts(t *testing.T) {
	assert := assert.New(t)
	// The wiring swaps the two feedback contacts with each other, so a
	// signal entering on one of them can never leave the feedback set.
	// The walk must still return instead of circling forever.
	fwd := make([]int, 26)
	for i := range fwd {
		fwd[i] = i
	}
	fwd[0], fwd[1] = 1, 0
	rotors := []*Descriptor{NewDescriptor("slot", 0, permutation.MustNew(fwd), false)}
	s, err := NewFeedbackStack(rotors, []int{0, 1}, permutation.Identity(26))
	require.NoError(t, err)
	for _, x := range []int{0, 1} {
		y := s.Encrypt(x)
		assert.GreaterOrEqual(y, 0)
		assert.Less(y, 26)
		y = s.Decrypt(x)
		assert.GreaterOrEqual(y, 0)
		assert.Less(y, 26)
	}
}

func TestFeedbackStackRejectsSizeMismatch(t *testing.T) {
	assert := assert.New(t)
	_, err := NewFeedbackStack(testRotors(2, 17), []int{1}, permutation.Identity(21))
	assert.Error(err)
}

func TestPinWheel(t *testing.T) {
	assert := assert.New(t)
	w := NewPinWheel(21)
	assert.Equal(21, w.Size())
	w.SetPins([]byte{1, 0, 1})
	assert.True(w.AtPin())
	w.Advance()
	assert.False(w.AtPin())
	w.Advance()
	assert.True(w.AtPin())
	w.SetPos(20)
	w.Advance()
	assert.Equal(0, w.Pos())
	w.SetPin(5, true)
	assert.Equal(byte(1), w.Pins()[5])
	w.SetPin(5, false)
	assert.Equal(byte(0), w.Pins()[5])
}
