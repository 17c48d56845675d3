package machines

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/ini.v1"
)

func TestKl7RoundTrip(t *testing.T) {
	assert := assert.New(t)
	k, err := NewKl7()
	require.NoError(t, err)
	assert.Equal("aaaaaaaa", k.VisualizeAllPositions())

	plain := "requestfreshkeys"
	cipher := encryptString(k, plain)
	assert.NotEqual(plain, cipher)

	twin, err := NewKl7()
	require.NoError(t, err)
	assert.Equal(plain, decryptString(twin, cipher))
}

func TestKl7CipherNeverOnDigitContact(t *testing.T) {
	assert := assert.New(t)
	k, err := NewKl7()
	require.NoError(t, err)
	digits := make(map[int]bool)
	letters := make([]int, 0, 26)
	for _, v := range kl7FeedbackPoints() {
		digits[v] = true
	}
	for v := 0; v < 36; v++ {
		if !digits[v] {
			letters = append(letters, v)
		}
	}
	for i := 0; i < 300; i++ {
		out := k.Encrypt(letters[i%len(letters)])
		assert.False(digits[out], "step %d landed on a digit contact", i)
	}
}

func TestKl7EncryptReturnsOnEveryContact(t *testing.T) {
	assert := assert.New(t)
	k, err := NewKl7()
	require.NoError(t, err)
	// Digit contacts are not message symbols, but feeding one must come
	// back in bounded time instead of circling the feedback wiring.
	for i := 0; i < 360; i++ {
		out := k.Encrypt(i % 36)
		assert.GreaterOrEqual(out, 0)
		assert.Less(out, 36)
	}
}

func TestKl7WindowsFollowLetterRing(t *testing.T) {
	assert := assert.New(t)
	c := &kl7Configurator{}
	conf := map[string]string{
		"rotors":      "abcdefgh",
		"alpharings":  "2;1;1;1;1;1;1;1",
		"notchselect": "1;2;3;4;5;6;7",
		"notchrings":  "aaaaaaa",
	}
	k, err := c.MakeMachine(conf)
	require.NoError(t, err)
	// Letter ring position 2 offsets the leftmost window back one symbol.
	assert.Equal("zaaaaaaa", k.VisualizeAllPositions())

	require.NoError(t, k.MoveAllRotors("ab1cde2f"))
	assert.Equal("ab1cde2f", k.VisualizeAllPositions())
}

func TestKl7NotchRingRendering(t *testing.T) {
	assert := assert.New(t)
	c := &kl7Configurator{}
	conf := map[string]string{
		"rotors":      "mklahcfb",
		"alpharings":  "1;5;9;13;17;21;25;29",
		"notchselect": "7;2;9;4;11;6;1",
		"notchrings":  "b+e+g+j+m+o+q",
	}
	k, err := c.MakeMachine(conf)
	require.NoError(t, err)
	got, err := c.GetConfig(k)
	require.NoError(t, err)
	assert.Equal(conf, got)
}

func TestKl7ConfigValidation(t *testing.T) {
	assert := assert.New(t)
	k, err := NewKl7()
	require.NoError(t, err)
	c := &kl7Configurator{}
	before, err := c.GetConfig(k)
	require.NoError(t, err)
	bad := []map[string]string{
		{"rotors": "abcdefgh", "alpharings": "1;1;1;1;1;1;1;1", "notchselect": "1;2;3;4;5;6;7"},
		{"rotors": "abcdefg", "alpharings": "1;1;1;1;1;1;1;1", "notchselect": "1;2;3;4;5;6;7", "notchrings": "aaaaaaa"},
		{"rotors": "abcdefga", "alpharings": "1;1;1;1;1;1;1;1", "notchselect": "1;2;3;4;5;6;7", "notchrings": "aaaaaaa"},
		{"rotors": "abcdefgn", "alpharings": "1;1;1;1;1;1;1;1", "notchselect": "1;2;3;4;5;6;7", "notchrings": "aaaaaaa"},
		{"rotors": "abcdefgh", "alpharings": "1;1;1;1;1;1;1", "notchselect": "1;2;3;4;5;6;7", "notchrings": "aaaaaaa"},
		{"rotors": "abcdefgh", "alpharings": "1;1;1;1;1;1;1;37", "notchselect": "1;2;3;4;5;6;7", "notchrings": "aaaaaaa"},
		{"rotors": "abcdefgh", "alpharings": "1;1;1;1;1;1;1;1", "notchselect": "1;2;3;4;5;6;6", "notchrings": "aaaaaaa"},
		{"rotors": "abcdefgh", "alpharings": "1;1;1;1;1;1;1;1", "notchselect": "1;2;3;4;5;6;12", "notchrings": "aaaaaaa"},
		{"rotors": "abcdefgh", "alpharings": "1;1;1;1;1;1;1;1", "notchselect": "1;2;3;4;5;6;7", "notchrings": "aaaaaa"},
		{"rotors": "abcdefgh", "alpharings": "1;1;1;1;1;1;1;1", "notchselect": "1;2;3;4;5;6;7", "notchrings": "aaaaaaA"},
	}
	for i, conf := range bad {
		assert.Error(c.ConfigureMachine(conf, k), "case %d", i)
		after, gerr := c.GetConfig(k)
		require.NoError(t, gerr)
		assert.Equal(before, after, "case %d changed the machine", i)
	}
}

func TestKl7RandomizeReproducible(t *testing.T) {
	assert := assert.New(t)
	k, err := NewKl7()
	require.NoError(t, err)
	require.NoError(t, k.Randomize(""))
	c := &kl7Configurator{}
	conf, err := c.GetConfig(k)
	require.NoError(t, err)
	twin, err := c.MakeMachine(conf)
	require.NoError(t, err)
	assert.Equal(k.VisualizeAllPositions(), twin.VisualizeAllPositions())
	assert.Equal(encryptString(k, "heavysettingsfreight"), encryptString(twin, "heavysettingsfreight"))
}

func TestKl7ShiftToggle(t *testing.T) {
	assert := assert.New(t)
	k, err := NewKl7()
	require.NoError(t, err)
	assert.Equal(Letters, k.Keyboard().Mode())
	encryptString(k, "j")
	assert.Equal(Figures, k.Keyboard().Mode())
	encryptString(k, "j")
	assert.Equal(Letters, k.Keyboard().Mode())
}

func TestKl7IniRoundTrip(t *testing.T) {
	assert := assert.New(t)
	k, err := NewKl7()
	require.NoError(t, err)
	require.NoError(t, k.Randomize(""))
	require.NoError(t, k.MoveAllRotors("ab1cde2f"))
	encryptString(k, "primingtraffic")

	f := ini.Empty()
	k.SaveIni(f)
	twin, err := NewKl7()
	require.NoError(t, err)
	require.NoError(t, twin.LoadIni(f))
	assert.Equal(k.VisualizeAllPositions(), twin.VisualizeAllPositions())
	assert.Equal(k.Counter(), twin.Counter())
	assert.Equal(encryptString(k, "continuation"), encryptString(twin, "continuation"))
}
