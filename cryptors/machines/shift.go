package machines

// ShiftMode is the letters/figures state of a keyboard or printer.
type ShiftMode int

const (
	Letters ShiftMode = iota
	Figures
)

func (m ShiftMode) String() string {
	if m == Figures {
		return "figures"
	}
	return "letters"
}

// ShiftState tracks one letters/figures shift.  The KL7 uses a single
// symbol that toggles both ways; the Typex has distinct shift and
// unshift codes.  A machine carries two of these, one for the keyboard
// and one for the printer.
type ShiftState struct {
	mode    ShiftMode
	ltrCode int
	figCode int
}

// NewShiftState builds a shift in letters mode.  Pass the same code for
// both directions to get a toggle; pass -1 for both to disable shifting.
func NewShiftState(ltrCode, figCode int) *ShiftState {
	return &ShiftState{ltrCode: ltrCode, figCode: figCode}
}

func (s *ShiftState) Mode() ShiftMode {
	return s.mode
}

func (s *ShiftState) SetMode(m ShiftMode) {
	s.mode = m
}

// Feed updates the state for one symbol and reports whether the symbol
// was a shift code.
func (s *ShiftState) Feed(sym int) bool {
	if s.ltrCode < 0 && s.figCode < 0 {
		return false
	}
	if s.ltrCode == s.figCode {
		if sym == s.ltrCode {
			if s.mode == Letters {
				s.mode = Figures
			} else {
				s.mode = Letters
			}
			return true
		}
		return false
	}
	switch sym {
	case s.figCode:
		s.mode = Figures
		return true
	case s.ltrCode:
		s.mode = Letters
		return true
	}
	return false
}
