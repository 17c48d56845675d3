package machines

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/ini.v1"
)

// encryptString drives every letter of in through the machine.
func encryptString(m Machine, in string) string {
	out := make([]rune, 0, len(in))
	for _, r := range in {
		v, err := m.Alphabet().FromVal(r)
		if err != nil {
			panic(err)
		}
		out = append(out, m.Alphabet().ToVal(m.Encrypt(v)))
	}
	return string(out)
}

func decryptString(m Machine, in string) string {
	out := make([]rune, 0, len(in))
	for _, r := range in {
		v, err := m.Alphabet().FromVal(r)
		if err != nil {
			panic(err)
		}
		out = append(out, m.Alphabet().ToVal(m.Decrypt(v)))
	}
	return string(out)
}

func TestServicesDefaultGrundstellung(t *testing.T) {
	assert := assert.New(t)
	e, err := NewEnigma(EnigmaServices)
	require.NoError(t, err)
	assert.Equal("aaa", e.VisualizeAllPositions())
	assert.Equal("bdzgo", encryptString(e, "aaaaa"))
}

func TestServicesMessageKey(t *testing.T) {
	assert := assert.New(t)
	c, err := newEnigmaConfigurator(EnigmaServices)
	require.NoError(t, err)
	m, err := c.MakeMachine(map[string]string{
		"rotors":    "2143",
		"rings":     "pzh",
		"plugboard": "adcnetflgijvkzpuqywx",
	})
	require.NoError(t, err)
	require.NoError(t, m.MoveAllRotors("rtz"))

	plain := "dasoberkommandoderwehrmaqtgibtbekanntxaachenxaachenxistger"
	cipher := "ljpqhsvdwclyxzqfxhiuvwdjobjnzxrcweotvnjciontfqnsxwisxkhjda"
	assert.Equal(cipher, encryptString(m, plain))

	// The machine is reciprocal: the same setup decrypts.
	require.NoError(t, m.MoveAllRotors("rtz"))
	assert.Equal(plain, decryptString(m, cipher))
}

func TestM4LooksMessage(t *testing.T) {
	assert := assert.New(t)
	c, err := newEnigmaConfigurator(EnigmaM4)
	require.NoError(t, err)
	m, err := c.MakeMachine(map[string]string{
		"rotors":    "11241",
		"rings":     "aaav",
		"plugboard": "atbldfgjhmnwopqyrzvx",
	})
	require.NoError(t, err)
	require.NoError(t, m.MoveAllRotors("vjna"))

	plain := "vonvonjlooksjhffttteinseinsdreizwoyy" +
		"qnnsneuninhaltxxbeiangriffunterwassergedruecktywabosx" +
		"letztergegnerstandnulachtdreinuluhrmarquantonjotaneuna"
	cipher := "nczwvusxpnyminhzxmqxsfwxwlkjahshnmco" +
		"ccakuqpmkcsmhkseinjusblkiosxckubhmllxcsjusrrdvkohulxw" +
		"ccbgvliyxeoahxrhkkfvdrewezlxobafgyujqukgrtvukameurbvek"
	assert.Equal(cipher, encryptString(m, plain))

	twin, err := c.MakeMachine(map[string]string{
		"rotors":    "11241",
		"rings":     "aaav",
		"plugboard": "atbldfgjhmnwopqyrzvx",
	})
	require.NoError(t, err)
	require.NoError(t, twin.MoveAllRotors("vjna"))
	assert.Equal(plain, decryptString(twin, cipher))
}

func TestReflectingMachineNeverMapsToItself(t *testing.T) {
	assert := assert.New(t)
	e, err := NewEnigma(EnigmaM3)
	require.NoError(t, err)
	require.NoError(t, e.Randomize(RandBasic))
	for i := 0; i < 200; i++ {
		perm := e.CurrentPerm()
		for x, y := range perm {
			assert.NotEqual(x, y)
			assert.Equal(x, perm[y])
		}
		e.Step()
	}
}

func TestAbwehrReflectorRotates(t *testing.T) {
	assert := assert.New(t)
	e, err := NewEnigma(EnigmaAbwehr)
	require.NoError(t, err)
	// All four wheels show in the windows, reflector first.
	assert.Equal("aaaa", e.VisualizeAllPositions())
	plain := "aaaaaaaaaaaaaaaaaaaa"
	cipher := encryptString(e, plain)
	assert.NotEqual(plain, cipher)

	f, err := NewEnigma(EnigmaAbwehr)
	require.NoError(t, err)
	assert.Equal(plain, decryptString(f, cipher))
}

func TestAbwehrG312Message(t *testing.T) {
	assert := assert.New(t)
	c, err := newEnigmaConfigurator(EnigmaAbwehr)
	require.NoError(t, err)
	e, err := NewEnigma(EnigmaAbwehr)
	require.NoError(t, err)
	// G-312: Walze III slow, II middle, I fast, everything else at rest.
	require.NoError(t, c.ConfigureMachine(map[string]string{
		"rotors": "321",
		"rings":  "aaa",
	}, e))

	plain := strings.Repeat("a", 65)
	cipher := encryptString(e, plain)
	assert.Equal("gjuiycmdguvttffqpzmxkvctzusobzldzumhqmjxwtzwmqnnuwidyeqpgvfzetolb", cipher)

	f, err := c.MakeMachine(map[string]string{
		"rotors": "321",
		"rings":  "aaa",
	})
	require.NoError(t, err)
	assert.Equal(plain, decryptString(f, cipher))
}

func TestEnigmaConfigValidation(t *testing.T) {
	assert := assert.New(t)
	c, err := newEnigmaConfigurator(EnigmaServices)
	require.NoError(t, err)
	e, err := NewEnigma(EnigmaServices)
	require.NoError(t, err)
	before, err := c.GetConfig(e)
	require.NoError(t, err)
	beforePerm := e.CurrentPerm()

	bad := []map[string]string{
		{"rotors": "2143", "rings": "pzh"},                                 // plugboard missing
		{"rotors": "214", "rings": "pzh", "plugboard": ""},                 // reflector digit missing
		{"rotors": "2113", "rings": "pzh", "plugboard": ""},                // rotor twice
		{"rotors": "2149", "rings": "pzh", "plugboard": ""},                // digit out of range
		{"rotors": "2143", "rings": "pzhh", "plugboard": ""},               // too many rings
		{"rotors": "2143", "rings": "pzh", "plugboard": "aab"},             // odd plug list
		{"rotors": "2143", "rings": "pzh", "plugboard": "aa"},              // letter twice
		{"rotors": "2143", "rings": "pzh", "plugboard": "99:adcn"},         // uhr needs 10 cables
		{"rotors": "5143", "rings": "pzh", "plugboard": ""},                // no such reflector
		{"rotors": "2143", "rings": "pzh", "plugboard": "", "ukwdwiring": "short"},
	}
	for i, conf := range bad {
		err := c.ConfigureMachine(conf, e)
		assert.Error(err, "case %d", i)
		after, cerr := c.GetConfig(e)
		require.NoError(t, cerr)
		assert.Equal(before, after, "case %d changed the machine", i)
		assert.Equal(beforePerm, e.CurrentPerm(), "case %d changed the wiring", i)
	}
}

func TestEnigmaConfigureResetsPositions(t *testing.T) {
	assert := assert.New(t)
	c, _ := newEnigmaConfigurator(EnigmaServices)
	e, err := NewEnigma(EnigmaServices)
	require.NoError(t, err)
	require.NoError(t, e.MoveAllRotors("xyz"))
	conf, err := c.GetConfig(e)
	require.NoError(t, err)
	require.NoError(t, c.ConfigureMachine(conf, e))
	assert.Equal("aaa", e.VisualizeAllPositions())
	assert.Equal(0, e.Counter())
}

func TestEnigmaGetConfigRoundTrip(t *testing.T) {
	assert := assert.New(t)
	for _, typ := range []string{EnigmaServices, EnigmaM3, EnigmaM4, EnigmaRailway, EnigmaTirpitz, EnigmaAbwehr, EnigmaKD} {
		c, err := newEnigmaConfigurator(typ)
		require.NoError(t, err)
		e, err := NewEnigma(typ)
		require.NoError(t, err)
		require.NoError(t, e.Randomize(RandBasic), typ)
		conf, err := c.GetConfig(e)
		require.NoError(t, err, typ)
		twin, err := c.MakeMachine(conf)
		require.NoError(t, err, typ)
		assert.Equal(e.VisualizeAllPositions(), twin.VisualizeAllPositions(), typ)
		assert.Equal(encryptString(e, "thequickbrownfox"), encryptString(twin, "thequickbrownfox"), typ)
	}
}

func TestEnigmaIniRoundTrip(t *testing.T) {
	assert := assert.New(t)
	for _, typ := range []string{EnigmaServices, EnigmaM4, EnigmaKD} {
		e, err := NewEnigma(typ)
		require.NoError(t, err)
		require.NoError(t, e.Randomize(RandBasic), typ)
		encryptString(e, "advance")

		f := ini.Empty()
		e.SaveIni(f)
		twin, err := NewEnigma(typ)
		require.NoError(t, err)
		require.NoError(t, twin.LoadIni(f), typ)
		assert.Equal(e.VisualizeAllPositions(), twin.VisualizeAllPositions(), typ)
		assert.Equal(encryptString(e, "continuation"), encryptString(twin, "continuation"), typ)
	}
}

func TestEnigmaUhrRandomizer(t *testing.T) {
	assert := assert.New(t)
	e, err := NewEnigma(EnigmaServices)
	require.NoError(t, err)
	require.NoError(t, e.Randomize(RandUhr))
	assert.NotNil(e.uhr)
	c, _ := newEnigmaConfigurator(EnigmaServices)
	conf, err := c.GetConfig(e)
	require.NoError(t, err)
	assert.Len(conf["plugboard"], 23) // NN: plus 20 letters

	// uhronly keeps rotors and rings.
	rotors, rings := conf["rotors"], conf["rings"]
	require.NoError(t, e.Randomize(RandUhrOnly))
	conf, err = c.GetConfig(e)
	require.NoError(t, err)
	assert.Equal(rotors, conf["rotors"])
	assert.Equal(rings, conf["rings"])
}

func TestEnigmaUhrRejectedOnM3(t *testing.T) {
	assert := assert.New(t)
	c, err := newEnigmaConfigurator(EnigmaM3)
	require.NoError(t, err)
	e, err := NewEnigma(EnigmaM3)
	require.NoError(t, err)
	err = c.ConfigureMachine(map[string]string{
		"rotors":    "2123",
		"rings":     "aaa",
		"plugboard": "05:adcnetflgijvkzpuqywx",
	}, e)
	assert.Error(err)
	assert.Error(e.Randomize(RandUhrOnly))
}

func TestKDRequiresReflectorWiring(t *testing.T) {
	assert := assert.New(t)
	c, err := newEnigmaConfigurator(EnigmaKD)
	require.NoError(t, err)
	e, err := NewEnigma(EnigmaKD)
	require.NoError(t, err)
	err = c.ConfigureMachine(map[string]string{
		"rotors": "123",
		"rings":  "aaa",
	}, e)
	assert.Error(err)

	err = c.ConfigureMachine(map[string]string{
		"rotors":     "123",
		"rings":      "aaa",
		"ukwdwiring": "azbpchdqesfngxiklmortuvw",
	}, e)
	assert.NoError(err)
}
