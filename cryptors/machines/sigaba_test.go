package machines

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/ini.v1"
)

func TestSigabaDefaultRoundTrip(t *testing.T) {
	assert := assert.New(t)
	s, err := NewSigaba(false)
	require.NoError(t, err)
	// Grounded at the stepping reference letter.
	assert.Equal("ooooo", s.VisualizeAllPositions())
	assert.Equal("ooooo", s.VisualizeDriverPositions())
	assert.Equal("00000", s.VisualizeIndexPositions())

	plain := "aaaaaaaaaa"
	cipher := encryptString(s, plain)
	assert.Len(cipher, 10)
	assert.NotEqual(plain, cipher)

	twin, err := NewSigaba(false)
	require.NoError(t, err)
	assert.Equal(plain, decryptString(twin, cipher))
}

func TestSigabaCipherRotorsKeepMoving(t *testing.T) {
	assert := assert.New(t)
	s, err := NewSigaba(false)
	require.NoError(t, err)
	for tick := 0; tick < 100; tick++ {
		before := make([]int, 5)
		for i, d := range s.Slots() {
			before[i] = d.Displacement()
		}
		s.Step()
		moved := 0
		for i, d := range s.Slots() {
			if d.Displacement() != before[i] {
				moved++
			}
		}
		assert.GreaterOrEqual(moved, 1, "tick %d", tick)
		assert.LessOrEqual(moved, 4, "tick %d", tick)
	}
}

func TestCsp2900RetractsMiddlePair(t *testing.T) {
	assert := assert.New(t)
	s, err := NewSigaba(true)
	require.NoError(t, err)
	require.Equal(t, SigabaCsp2900, s.MachineType())

	forward := [5]int{}
	backward := [5]int{}
	start := make([]int, 5)
	for i, d := range s.Slots() {
		start[i] = d.Displacement()
	}
	for tick := 0; tick < 200; tick++ {
		before := make([]int, 5)
		for i, d := range s.Slots() {
			before[i] = d.Displacement()
		}
		s.Step()
		for i, d := range s.Slots() {
			switch (d.Displacement() - before[i] + 26) % 26 {
			case 1:
				forward[i]++
			case 25:
				backward[i]++
			}
		}
	}
	// Rotors 1 and 3 only ever turn backward, the others only forward.
	for _, i := range []int{1, 3} {
		assert.Zero(forward[i], "cipher rotor %d stepped forward", i)
	}
	for _, i := range []int{0, 2, 4} {
		assert.Zero(backward[i], "cipher rotor %d stepped backward", i)
	}
}

func TestSigabaSetupStep(t *testing.T) {
	assert := assert.New(t)
	s, err := NewSigaba(false)
	require.NoError(t, err)
	before := s.VisualizeDriverPositions()
	require.NoError(t, s.SetupStep("slow"))
	after := s.VisualizeDriverPositions()
	assert.NotEqual(before, after)
	// Only the named driver rotor moved.
	diff := 0
	for i := range before {
		if before[i] != after[i] {
			diff++
		}
	}
	assert.Equal(1, diff)
	assert.Error(s.SetupStep("nosuchrotor"))
}

func TestSigabaConfiguratorValidation(t *testing.T) {
	assert := assert.New(t)
	c := &sigabaConfigurator{}
	s, err := NewSigaba(false)
	require.NoError(t, err)
	before, err := c.GetConfig(s)
	require.NoError(t, err)

	bad := []map[string]string{
		{"cipher": "0N1N2N3N4N", "control": "5N6N7N8N9N", "index": "0N1N2N3N4N"},                    // csp2900 missing
		{"cipher": "0N1N2N3N4N", "control": "5N6N7N8N9N", "index": "0N1N2N3N4N", "csp2900": "nah"}, // bad bool
		{"cipher": "0N1N2N3N0N", "control": "5N6N7N8N9N", "index": "0N1N2N3N4N", "csp2900": "false"},
		{"cipher": "0N1N2N3N4N", "control": "0N6N7N8N9N", "index": "0N1N2N3N4N", "csp2900": "false"},
		{"cipher": "0N1N2N3N4X", "control": "5N6N7N8N9N", "index": "0N1N2N3N4N", "csp2900": "false"},
		{"cipher": "0N1N2N3N4N", "control": "5N6N7N8N9N", "index": "0N1N2N3N5N", "csp2900": "false"},
		{"cipher": "0N1N2N3N4", "control": "5N6N7N8N9N", "index": "0N1N2N3N4N", "csp2900": "false"},
	}
	for i, conf := range bad {
		assert.Error(c.ConfigureMachine(conf, s), "case %d", i)
		after, gerr := c.GetConfig(s)
		require.NoError(t, gerr)
		assert.Equal(before, after, "case %d changed the machine", i)
	}
}

func TestSigabaConfigSwitchesMode(t *testing.T) {
	assert := assert.New(t)
	c := &sigabaConfigurator{}
	s, err := NewSigaba(false)
	require.NoError(t, err)
	conf := map[string]string{
		"cipher":  "1R3N5N7R9N",
		"control": "0N2R4N6N8R",
		"index":   "4N3N2N1N0N",
		"csp2900": "true",
	}
	require.NoError(t, c.ConfigureMachine(conf, s))
	assert.True(s.Csp2900())
	assert.Equal(SigabaCsp2900, s.MachineType())
	got, err := c.GetConfig(s)
	require.NoError(t, err)
	assert.Equal(conf, got)
}

func TestSigabaIniRoundTrip(t *testing.T) {
	assert := assert.New(t)
	s, err := NewSigaba(true)
	require.NoError(t, err)
	require.NoError(t, s.Randomize(RandBasic))
	require.NoError(t, s.MoveDriverRotors("qfxbw"))
	require.NoError(t, s.MoveIndexRotors("31415"))
	encryptString(s, "aheadbyafew")

	f := ini.Empty()
	s.SaveIni(f)
	twin, err := NewSigaba(false)
	require.NoError(t, err)
	require.NoError(t, twin.LoadIni(f))
	assert.True(twin.Csp2900())
	assert.Equal(s.VisualizeAllPositions(), twin.VisualizeAllPositions())
	assert.Equal(s.VisualizeDriverPositions(), twin.VisualizeDriverPositions())
	assert.Equal(s.VisualizeIndexPositions(), twin.VisualizeIndexPositions())
	assert.Equal(encryptString(s, "matchingtails"), encryptString(twin, "matchingtails"))
}

func TestSigabaRandomizeReproducible(t *testing.T) {
	assert := assert.New(t)
	s, err := NewSigaba(false)
	require.NoError(t, err)
	require.NoError(t, s.Randomize(""))
	c := &sigabaConfigurator{}
	conf, err := c.GetConfig(s)
	require.NoError(t, err)
	twin, err := c.MakeMachine(conf)
	require.NoError(t, err)
	assert.Equal(encryptString(s, "repeatably"), encryptString(twin, "repeatably"))
}
