package alphabet

// ModInt is an integer in 0..m-1 with all arithmetic taken mod m.  The
// zero value is unusable; construct with NewModInt.
type ModInt struct {
	val int
	mod int
}

func NewModInt(val, mod int) ModInt {
	return ModInt{val: ((val % mod) + mod) % mod, mod: mod}
}

func (m ModInt) Val() int {
	return m.val
}

func (m ModInt) Mod() int {
	return m.mod
}

func (m ModInt) Add(k int) ModInt {
	return NewModInt(m.val+k, m.mod)
}

func (m ModInt) Sub(k int) ModInt {
	return NewModInt(m.val-k, m.mod)
}

func (m ModInt) Neg() ModInt {
	return NewModInt(-m.val, m.mod)
}

// Inc advances the value by one, wrapping at the modulus.
func (m ModInt) Inc() ModInt {
	return m.Add(1)
}

// Set replaces the value, keeping the modulus.
func (m ModInt) Set(val int) ModInt {
	return NewModInt(val, m.mod)
}
