package machines

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/ini.v1"

	"github.com/bgallie/rotorsim/cryptors"
)

func stateBytes(t *testing.T, m Machine) []byte {
	t.Helper()
	f := ini.Empty()
	m.SaveIni(f)
	var buf bytes.Buffer
	_, err := f.WriteTo(&buf)
	require.NoError(t, err)
	return buf.Bytes()
}

func TestRestoreFromIniEveryMachine(t *testing.T) {
	builders := map[string]func() (Machine, error){
		"enigma services": func() (Machine, error) { return NewEnigma(EnigmaServices) },
		"enigma m4":       func() (Machine, error) { return NewEnigma(EnigmaM4) },
		"sigaba":          func() (Machine, error) { return NewSigaba(true) },
		"typex":           func() (Machine, error) { return NewTypex() },
		"kl7":             func() (Machine, error) { return NewKl7() },
		"nema war":        func() (Machine, error) { return NewNema(true) },
		"sg39":            func() (Machine, error) { return NewSg39() },
	}
	for name, build := range builders {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			m, err := build()
			require.NoError(t, err)
			require.NoError(t, m.Randomize(""))
			encryptString(m, "aaaaa")

			restored, err := RestoreFromIni(stateBytes(t, m))
			require.NoError(t, err)
			assert.Equal(m.Name(), restored.Name())
			assert.Equal(m.MachineType(), restored.MachineType())
			assert.Equal(m.VisualizeAllPositions(), restored.VisualizeAllPositions())
			assert.Equal(m.Counter(), restored.Counter())
			assert.Equal(encryptString(m, "zzzzz"), encryptString(restored, "zzzzz"))
		})
	}
}

func TestRestoreFromIniBadData(t *testing.T) {
	assert := assert.New(t)
	_, err := RestoreFromIni([]byte("[machine]\nmachinetype = Services\n"))
	assert.Error(err)
	assert.Equal(cryptors.ErrSyntaxInput, cryptors.KindOf(err))

	_, err = RestoreFromIni([]byte("[machine]\nmachinename = Zebra\n"))
	assert.Error(err)
	assert.Equal(cryptors.ErrObjectCreate, cryptors.KindOf(err))

	// A named machine with no slot data never comes back half loaded.
	_, err = RestoreFromIni([]byte("[machine]\nmachinename = Typex\n"))
	assert.Error(err)
}

func TestLoadIniRejectsOtherMachine(t *testing.T) {
	assert := assert.New(t)
	x, err := NewTypex()
	require.NoError(t, err)
	f := ini.Empty()
	x.SaveIni(f)

	k, err := NewKl7()
	require.NoError(t, err)
	before := k.VisualizeAllPositions()
	err = k.LoadIni(f)
	assert.Error(err)
	assert.Equal(cryptors.ErrObjectCreate, cryptors.KindOf(err))
	assert.Equal(before, k.VisualizeAllPositions())
}

func TestShiftStateRoundTrips(t *testing.T) {
	assert := assert.New(t)
	m, err := NewKl7()
	require.NoError(t, err)
	m.Keyboard().SetMode(Figures)
	m.Printer().SetMode(Figures)

	f := ini.Empty()
	m.SaveIni(f)
	twin, err := NewKl7()
	require.NoError(t, err)
	require.NoError(t, twin.LoadIni(f))
	assert.Equal(Figures, twin.Keyboard().Mode())
	assert.Equal(Figures, twin.Printer().Mode())
}

func TestMoveAllRotorsValidation(t *testing.T) {
	assert := assert.New(t)
	e, err := NewEnigma(EnigmaServices)
	require.NoError(t, err)
	before := e.VisualizeAllPositions()

	err = e.MoveAllRotors("ab")
	assert.Error(err)
	assert.Equal(cryptors.ErrSyntaxInput, cryptors.KindOf(err))
	assert.Equal(before, e.VisualizeAllPositions())

	err = e.MoveAllRotors("a1c")
	assert.Error(err)
	assert.Equal(before, e.VisualizeAllPositions())
}

func TestConfiguratorFor(t *testing.T) {
	assert := assert.New(t)
	for _, name := range []string{MachineSigaba, MachineTypex, MachineKl7, MachineNema, MachineSg39} {
		c, err := ConfiguratorFor(name, "")
		require.NoError(t, err)
		assert.NotEmpty(c.Keywords(), name)
	}
	c, err := ConfiguratorFor(MachineEnigma, EnigmaM4)
	require.NoError(t, err)
	assert.NotEmpty(c.Keywords())

	_, err = ConfiguratorFor("Purple", "")
	assert.Error(err)
	assert.Equal(cryptors.ErrObjectCreate, cryptors.KindOf(err))
}

func TestMakeMachineByName(t *testing.T) {
	assert := assert.New(t)
	m, err := MakeMachineByName(MachineEnigma, EnigmaTirpitz)
	require.NoError(t, err)
	assert.Equal(EnigmaTirpitz, m.MachineType())

	_, err = MakeMachineByName("Purple", "")
	assert.Error(err)
}
