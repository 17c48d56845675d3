package machines

import (
	"sort"
	"strings"

	"github.com/bgallie/rotorsim/cryptors"
	"github.com/bgallie/rotorsim/cryptors/permutation"
)

// The field-rewirable reflector UKW D always connects contacts j and y;
// the remaining 24 contacts form 12 operator-chosen pairs.
const (
	ukwdFixedA = 'j' - 'a'
	ukwdFixedB = 'y' - 'a'
)

// UkwdFromPairs builds the reflector involution from the 12 free pairs.
// The fixed (j,y) pair is appended automatically; supplying it is an
// error, as is any use of j or y inside a pair.
func UkwdFromPairs(pairs [][2]int) (*permutation.Permutation, error) {
	if len(pairs) != 12 {
		return nil, cryptors.NewError(cryptors.ErrSemanticsInput, "ukw d needs 12 wired pairs, got %d", len(pairs))
	}
	all := make([][2]int, 0, 13)
	for _, p := range pairs {
		for _, l := range []int{p[0], p[1]} {
			if l == ukwdFixedA || l == ukwdFixedB {
				return nil, cryptors.NewError(cryptors.ErrSemanticsInput, "contact %c of ukw d is hard wired", 'a'+rune(l))
			}
			if l < 0 || l > 25 {
				return nil, cryptors.NewError(cryptors.ErrSemanticsInput, "ukw d contact %d out of range", l)
			}
		}
		all = append(all, p)
	}
	all = append(all, [2]int{ukwdFixedA, ukwdFixedB})
	return permutation.FromCycles(26, all)
}

// UkwdPairs extracts the 12 free pairs from a reflector involution,
// sorted by their lower contact.
func UkwdPairs(p *permutation.Permutation) ([][2]int, error) {
	pairs, ok := p.InvolutionPairs()
	if !ok {
		return nil, cryptors.NewError(cryptors.ErrSemanticsInput, "ukw d wiring is not an involution")
	}
	out := make([][2]int, 0, 12)
	fixedSeen := false
	for _, pr := range pairs {
		a, b := pr[0], pr[1]
		if a > b {
			a, b = b, a
		}
		if a == ukwdFixedA && b == ukwdFixedB {
			fixedSeen = true
			continue
		}
		out = append(out, [2]int{a, b})
	}
	if !fixedSeen || len(out) != 12 {
		return nil, cryptors.NewError(cryptors.ErrSemanticsInput, "ukw d wiring does not keep the j-y pair")
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out, nil
}

// ParseUkwdWiring reads the keyword encoding: 24 distinct letters a-z
// without j and y, taken as 12 consecutive pairs.
func ParseUkwdWiring(s string) (*permutation.Permutation, error) {
	if len(s) != 24 {
		return nil, cryptors.NewError(cryptors.ErrSyntaxInput, "ukw d wiring needs 24 letters, got %d", len(s))
	}
	pairs := make([][2]int, 0, 12)
	seen := make(map[rune]bool, 24)
	for i := 0; i+1 < len(s); i += 2 {
		for _, c := range s[i : i+2] {
			if c < 'a' || c > 'z' {
				return nil, cryptors.NewError(cryptors.ErrSyntaxInput, "ukw d wiring letter %q out of range", c)
			}
			if seen[c] {
				return nil, cryptors.NewError(cryptors.ErrSemanticsInput, "letter %c wired twice in ukw d", c)
			}
			seen[c] = true
		}
		pairs = append(pairs, [2]int{int(s[i] - 'a'), int(s[i+1] - 'a')})
	}
	return UkwdFromPairs(pairs)
}

// FormatUkwdWiring renders the keyword encoding of a reflector wiring.
func FormatUkwdWiring(p *permutation.Permutation) (string, error) {
	pairs, err := UkwdPairs(p)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, pr := range pairs {
		sb.WriteByte(byte('a' + pr[0]))
		sb.WriteByte(byte('a' + pr[1]))
	}
	return sb.String(), nil
}

// bpSwap translates between the German service notation and the Bletchley
// Park notation of the same contacts: BP labelled the hard-wired pair b-o
// where the German sheets wrote j-y.
func bpSwap(l int) int {
	switch l {
	case ukwdFixedA:
		return 'b' - 'a'
	case 'b' - 'a':
		return ukwdFixedA
	case ukwdFixedB:
		return 'o' - 'a'
	case 'o' - 'a':
		return ukwdFixedB
	}
	return l
}

// FormatUkwdBp renders a wiring in BP notation, including the fixed pair.
func FormatUkwdBp(p *permutation.Permutation) (string, error) {
	pairs, err := UkwdPairs(p)
	if err != nil {
		return "", err
	}
	pairs = append(pairs, [2]int{ukwdFixedA, ukwdFixedB})
	bp := make([][2]int, len(pairs))
	for i, pr := range pairs {
		a, b := bpSwap(pr[0]), bpSwap(pr[1])
		if a > b {
			a, b = b, a
		}
		bp[i] = [2]int{a, b}
	}
	sort.Slice(bp, func(i, j int) bool { return bp[i][0] < bp[j][0] })
	var sb strings.Builder
	for i, pr := range bp {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte(byte('a' + pr[0]))
		sb.WriteByte(byte('a' + pr[1]))
	}
	return sb.String(), nil
}

// RandomUkwd draws a uniform rewirable reflector: a random pairing of the
// 24 free contacts plus the fixed pair.
func RandomUkwd(src cryptors.RandomSource) *permutation.Permutation {
	free := make([]int, 0, 24)
	for l := 0; l < 26; l++ {
		if l != ukwdFixedA && l != ukwdFixedB {
			free = append(free, l)
		}
	}
	for i := len(free) - 1; i > 0; i-- {
		j := src.Intn(i + 1)
		free[i], free[j] = free[j], free[i]
	}
	pairs := make([][2]int, 0, 12)
	for i := 0; i+1 < len(free); i += 2 {
		pairs = append(pairs, [2]int{free[i], free[i+1]})
	}
	p, err := UkwdFromPairs(pairs)
	if err != nil {
		panic(err)
	}
	return p
}
