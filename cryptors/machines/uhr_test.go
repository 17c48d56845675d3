package machines

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uhrTestCables() [][2]int {
	// ad cn et fl gi jv kz pu qy wx
	pairs := [][2]int{}
	for _, s := range []string{"ad", "cn", "et", "fl", "gi", "jv", "kz", "pu", "qy", "wx"} {
		pairs = append(pairs, [2]int{int(s[0] - 'a'), int(s[1] - 'a')})
	}
	return pairs
}

func TestUhrValidation(t *testing.T) {
	assert := assert.New(t)
	_, err := NewUhr(uhrTestCables()[:9], 0)
	assert.Error(err)
	_, err = NewUhr(uhrTestCables(), 40)
	assert.Error(err)
	double := uhrTestCables()
	double[9] = [2]int{0, 25}
	_, err = NewUhr(double, 0)
	assert.Error(err)
}

func TestUhrDecryptInvertsAtEveryDial(t *testing.T) {
	assert := assert.New(t)
	u, err := NewUhr(uhrTestCables(), 0)
	require.NoError(t, err)
	for dial := 0; dial < 40; dial++ {
		require.NoError(t, u.SetDial(dial))
		for x := 0; x < 26; x++ {
			assert.Equal(x, u.Decrypt(u.Encrypt(x)))
		}
	}
}

func TestUhrReciprocalOnlyAtFourthDials(t *testing.T) {
	assert := assert.New(t)
	u, err := NewUhr(uhrTestCables(), 0)
	require.NoError(t, err)
	for dial := 0; dial < 40; dial++ {
		require.NoError(t, u.SetDial(dial))
		selfInverse := true
		for x := 0; x < 26; x++ {
			if u.Encrypt(u.Encrypt(x)) != x {
				selfInverse = false
				break
			}
		}
		if dial%4 == 0 {
			assert.True(selfInverse, "dial %d", dial)
		} else {
			assert.False(selfInverse, "dial %d", dial)
		}
	}
}

func TestUhrUnpluggedLettersPassThrough(t *testing.T) {
	assert := assert.New(t)
	u, err := NewUhr(uhrTestCables(), 0)
	require.NoError(t, err)
	// b, h, m, o, r, s are not cabled here.
	for dial := 0; dial < 40; dial++ {
		require.NoError(t, u.SetDial(dial))
		for _, x := range []int{1, 7, 12, 14, 17, 18} {
			assert.Equal(x, u.Encrypt(x))
		}
	}
}

func TestUhrMovesOffTheInvolution(t *testing.T) {
	assert := assert.New(t)
	u, err := NewUhr(uhrTestCables(), 3)
	require.NoError(t, err)
	// Off the fourth dials cabled letters map asymmetrically, so the
	// Enigma signal path has to run the box backward on the way out.
	a, d := 0, 3
	assert.NotEqual(u.Encrypt(a), d)
	assert.Equal(a, u.Decrypt(u.Encrypt(a)))
}
