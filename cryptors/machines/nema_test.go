package machines

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/ini.v1"

	"github.com/bgallie/rotorsim/cryptors"
)

func TestNemaRoundTrip(t *testing.T) {
	assert := assert.New(t)
	n, err := NewNema(false)
	require.NoError(t, err)
	assert.Equal("aaaaaaaaaaa", n.VisualizeAllPositions())
	assert.False(n.War())

	plain := "bernkeepsitsownsecrets"
	cipher := encryptString(n, plain)
	assert.NotEqual(plain, cipher)

	twin, err := NewNema(false)
	require.NoError(t, err)
	assert.Equal(plain, decryptString(twin, cipher))
}

func TestNemaRedWheelsAlwaysTurn(t *testing.T) {
	assert := assert.New(t)
	n, err := NewNema(true)
	require.NoError(t, err)
	for i := 0; i < 40; i++ {
		n.Step()
	}
	assert.Equal(40%26, n.Slot("redright").Displacement())
	assert.Equal(40%26, n.Slot("redleft").Displacement())
}

func TestNemaIssueMismatch(t *testing.T) {
	assert := assert.New(t)
	c := &nemaConfigurator{}
	training, err := NewNema(false)
	require.NoError(t, err)

	warConf := map[string]string{
		"rotors":     "fdea",
		"ringselect": "12;17;13;18",
		"warmachine": "true",
	}
	err = c.ConfigureMachine(warConf, training)
	assert.Error(err)
	assert.Equal(cryptors.ErrSemanticsInput, cryptors.KindOf(err))

	war, err := NewNema(true)
	require.NoError(t, err)
	assert.NoError(c.ConfigureMachine(warConf, war))
	got, err := c.GetConfig(war)
	require.NoError(t, err)
	assert.Equal(warConf, got)
}

func TestNemaConfigValidation(t *testing.T) {
	assert := assert.New(t)
	c := &nemaConfigurator{}
	n, err := NewNema(false)
	require.NoError(t, err)
	before, err := c.GetConfig(n)
	require.NoError(t, err)
	bad := []map[string]string{
		{"rotors": "abcd", "ringselect": "16;19;20;21"},
		{"rotors": "abcd", "ringselect": "16;19;20;21", "warmachine": "maybe"},
		{"rotors": "abc", "ringselect": "16;19;20;21", "warmachine": "false"},
		{"rotors": "abca", "ringselect": "16;19;20;21", "warmachine": "false"},
		{"rotors": "abce", "ringselect": "16;19;20;21", "warmachine": "false"},
		{"rotors": "abcd", "ringselect": "16;19;20", "warmachine": "false"},
		{"rotors": "abcd", "ringselect": "16;19;20;12", "warmachine": "false"},
		{"rotors": "abcd", "ringselect": "16;19;20;20", "warmachine": "false"},
	}
	for i, conf := range bad {
		assert.Error(c.ConfigureMachine(conf, n), "case %d", i)
		after, gerr := c.GetConfig(n)
		require.NoError(t, gerr)
		assert.Equal(before, after, "case %d changed the machine", i)
	}
}

func TestNemaRandomizeReproducible(t *testing.T) {
	assert := assert.New(t)
	n, err := NewNema(true)
	require.NoError(t, err)
	require.NoError(t, n.Randomize(""))
	c := &nemaConfigurator{}
	conf, err := c.GetConfig(n)
	require.NoError(t, err)
	assert.Equal("true", conf["warmachine"])
	twin, err := c.MakeMachine(conf)
	require.NoError(t, err)
	assert.Equal(encryptString(n, "zurichtrafficreport"), encryptString(twin, "zurichtrafficreport"))
}

func TestNemaIniRoundTrip(t *testing.T) {
	assert := assert.New(t)
	n, err := NewNema(true)
	require.NoError(t, err)
	require.NoError(t, n.Randomize(""))
	require.NoError(t, n.MoveAllRotors("qwertzuiopa"))
	encryptString(n, "leadin")

	f := ini.Empty()
	n.SaveIni(f)
	// Loading flips the issue to match the saved state.
	twin, err := NewNema(false)
	require.NoError(t, err)
	require.NoError(t, twin.LoadIni(f))
	assert.True(twin.War())
	assert.Equal(n.VisualizeAllPositions(), twin.VisualizeAllPositions())
	assert.Equal(encryptString(n, "followup"), encryptString(twin, "followup"))
}
