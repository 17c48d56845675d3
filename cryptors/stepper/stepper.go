// stepper
package stepper

// Stepper is the per-machine stepping engine: Step advances the rotor
// state machine by exactly one tick, Reset returns it to its canonical
// initial configuration.  Engines hold non-owning references into the
// machine's rotor descriptors and never touch the signal path.
type Stepper interface {
	Step()
	Reset()
}
