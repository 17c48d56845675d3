package machines

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/ini.v1"
)

func TestTypexSelfReciprocal(t *testing.T) {
	assert := assert.New(t)
	x, err := NewTypex()
	require.NoError(t, err)
	assert.Equal("aaaaa", x.VisualizeAllPositions())

	plain := "interoperabilitymatters"
	cipher := encryptString(x, plain)
	assert.NotEqual(plain, cipher)

	twin, err := NewTypex()
	require.NoError(t, err)
	assert.Equal(plain, decryptString(twin, cipher))
}

func TestTypexOnlyLeftRotorsMove(t *testing.T) {
	assert := assert.New(t)
	x, err := NewTypex()
	require.NoError(t, err)
	statorL := x.Slot("statorl").Displacement()
	statorR := x.Slot("statorr").Displacement()
	refl := x.Slot("reflector").Displacement()
	for i := 0; i < 200; i++ {
		x.Step()
	}
	assert.Equal(statorL, x.Slot("statorl").Displacement())
	assert.Equal(statorR, x.Slot("statorr").Displacement())
	assert.Equal(refl, x.Slot("reflector").Displacement())
	assert.NotEqual(0, x.Slot("fast").Displacement())
}

func TestTypexShiftCodes(t *testing.T) {
	assert := assert.New(t)
	x, err := NewTypex()
	require.NoError(t, err)
	require.NotNil(t, x.Keyboard())
	assert.Equal(Letters, x.Keyboard().Mode())
	// v shifts to figures, x back to letters.
	encryptString(x, "v")
	assert.Equal(Figures, x.Keyboard().Mode())
	encryptString(x, "abc")
	assert.Equal(Figures, x.Keyboard().Mode())
	encryptString(x, "x")
	assert.Equal(Letters, x.Keyboard().Mode())
}

func TestTypexReversedRotors(t *testing.T) {
	assert := assert.New(t)
	c := &typexConfigurator{}
	conf := map[string]string{
		"rotors":    "aRbNcRdNeN",
		"rings":     "qetal",
		"reflector": "azbychdwesfxgvirjqkplumont",
	}
	m, err := c.MakeMachine(conf)
	require.NoError(t, err)
	got, err := c.GetConfig(m)
	require.NoError(t, err)
	assert.Equal(conf, got)

	plain := "reversedwheelsstillpair"
	cipher := encryptString(m, plain)
	twin, err := c.MakeMachine(conf)
	require.NoError(t, err)
	assert.Equal(plain, decryptString(twin, cipher))
}

func TestTypexConfigValidation(t *testing.T) {
	assert := assert.New(t)
	c := &typexConfigurator{}
	x, err := NewTypex()
	require.NoError(t, err)
	before, err := c.GetConfig(x)
	require.NoError(t, err)
	bad := []map[string]string{
		{"rotors": "aRbNcRdNeN", "rings": "qetal"},
		{"rotors": "aRbNcRdNaN", "rings": "qetal", "reflector": before["reflector"]},
		{"rotors": "aRbNcRdNhN", "rings": "qetal", "reflector": before["reflector"]},
		{"rotors": "aRbNcRdNeX", "rings": "qetal", "reflector": before["reflector"]},
		{"rotors": "aRbNcRdNeN", "rings": "qeta", "reflector": before["reflector"]},
		{"rotors": "aRbNcRdNeN", "rings": "qetal", "reflector": "aabbccddeeffgghhiijjkkllmm"},
	}
	for i, conf := range bad {
		assert.Error(c.ConfigureMachine(conf, x), "case %d", i)
		after, gerr := c.GetConfig(x)
		require.NoError(t, gerr)
		assert.Equal(before, after, "case %d changed the machine", i)
	}
}

func TestTypexIniRoundTrip(t *testing.T) {
	assert := assert.New(t)
	x, err := NewTypex()
	require.NoError(t, err)
	require.NoError(t, x.Randomize(""))
	require.NoError(t, x.MoveAllRotors("crypt"))
	encryptString(x, "leadin")

	f := ini.Empty()
	x.SaveIni(f)
	twin, err := NewTypex()
	require.NoError(t, err)
	require.NoError(t, twin.LoadIni(f))
	assert.Equal(x.VisualizeAllPositions(), twin.VisualizeAllPositions())
	assert.Equal(encryptString(x, "followup"), encryptString(twin, "followup"))
}
