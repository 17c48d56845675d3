package machines

import (
	"github.com/bgallie/rotorsim/cryptors"
)

// Keyword describes one configurator setting: its name, a value-type tag
// and a short operator-facing explanation.
type Keyword struct {
	Name string
	Type string
	Help string
}

// Configurator validates keyword maps and applies them.  ConfigureMachine
// checks everything eagerly and leaves the machine untouched unless the
// whole map is acceptable.
type Configurator interface {
	Keywords() []Keyword
	GetConfig(m Machine) (map[string]string, error)
	ConfigureMachine(conf map[string]string, m Machine) error
	MakeMachine(conf map[string]string) (Machine, error)
}

// ConfiguratorFor returns the configurator of the named machine.  Enigma
// variants need the machine type tag, everything else ignores it.
func ConfiguratorFor(name, machineType string) (Configurator, error) {
	switch name {
	case MachineEnigma:
		return newEnigmaConfigurator(machineType)
	case MachineSigaba:
		return &sigabaConfigurator{}, nil
	case MachineTypex:
		return &typexConfigurator{}, nil
	case MachineKl7:
		return &kl7Configurator{}, nil
	case MachineNema:
		return &nemaConfigurator{}, nil
	case MachineSg39:
		return &sg39Configurator{}, nil
	}
	return nil, cryptors.NewError(cryptors.ErrObjectCreate, "no machine is called %q", name)
}

// MakeMachineByName builds the default machine of the given name and, for
// Enigma, variant type.
func MakeMachineByName(name, machineType string) (Machine, error) {
	switch name {
	case MachineEnigma:
		return NewEnigma(machineType)
	case MachineSigaba:
		return NewSigaba(false)
	case MachineTypex:
		return NewTypex()
	case MachineKl7:
		return NewKl7()
	case MachineNema:
		return NewNema(false)
	case MachineSg39:
		return NewSg39()
	}
	return nil, cryptors.NewError(cryptors.ErrObjectCreate, "no machine is called %q", name)
}

// maxRandomizeTries bounds the draw-and-configure loop of every
// randomizer.
const maxRandomizeTries = 20

func randomizeMachine(m Machine, c Configurator, draw func() map[string]string) error {
	var lastErr error
	for i := 0; i < maxRandomizeTries; i++ {
		conf := draw()
		if lastErr = c.ConfigureMachine(conf, m); lastErr == nil {
			return nil
		}
	}
	return cryptors.NewError(cryptors.ErrRandomizationFailed, "no valid configuration in %d draws: %v", maxRandomizeTries, lastErr)
}

// requireKeywords checks that every named keyword is present.
func requireKeywords(conf map[string]string, names ...string) error {
	for _, n := range names {
		if _, ok := conf[n]; !ok {
			return cryptors.NewError(cryptors.ErrSyntaxInput, "keyword %q is missing", n)
		}
	}
	return nil
}
