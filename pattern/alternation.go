package pattern

import (
	"strconv"
	"strings"
)

const altPrefix = "alt"

// Alternation is a single expression built of ordered alternatives.
// It finds the leftmost lexeme matching any alternative; of the alternatives matching at
// the same offset the first one wins.
type Alternation struct {
	p     *Pattern
	names []string
}

// NewAlternation joins alts, each alternative is wrapped in its own named group.
// Alternatives must not contain named groups with "alt" prefix.
// Returns nil, nil if alts is empty.
func NewAlternation(alts []string, opts Options) (*Alternation, error) {
	if len(alts) == 0 {
		return nil, nil
	}

	names := make([]string, len(alts))
	parts := make([]string, len(alts))
	groups := 0
	for i, alt := range alts {
		names[i] = altPrefix + strconv.Itoa(i)
		shifted, cnt := shiftBackrefs(alt, groups)
		groups += cnt
		parts[i] = "(?<" + names[i] + ">" + shifted + ")"
	}

	p, e := Compile(strings.Join(parts, "|"), opts)
	if e != nil {
		return nil, e
	}

	return &Alternation{p, names}, nil
}

// Len returns the number of alternatives.
func (a *Alternation) Len() int {
	return len(a.names)
}

// FindAt returns the index of the matched alternative and the match or -1, nil.
func (a *Alternation) FindAt(runes []rune, pos int) (int, *Match) {
	m := a.p.FindAt(runes, pos)
	if m == nil {
		return -1, nil
	}

	for i, name := range a.names {
		if _, _, ok := m.Group(name); ok {
			return i, m
		}
	}

	return -1, nil
}

// String returns the joined expression.
func (a *Alternation) String() string {
	return a.p.String()
}

// shiftBackrefs renumbers numeric backreferences in expr by offset
// and returns the number of unnamed capturing groups in expr.
// Unnamed groups are numbered before named ones, so offset is the number
// of unnamed groups in preceding alternatives.
func shiftBackrefs(expr string, offset int) (string, int) {
	rs := []rune(expr)
	var sb strings.Builder
	groups := 0
	inClass := false
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		switch {
		case r == '\\' && i+1 < len(rs):
			i++
			next := rs[i]
			if !inClass && next >= '1' && next <= '9' {
				j := i
				for j < len(rs) && rs[j] >= '0' && rs[j] <= '9' {
					j++
				}
				n, _ := strconv.Atoi(string(rs[i:j]))
				sb.WriteRune('\\')
				sb.WriteString(strconv.Itoa(n + offset))
				i = j - 1
				continue
			}
			sb.WriteRune(r)
			sb.WriteRune(next)
			continue

		case inClass:
			if r == ']' {
				inClass = false
			}

		case r == '[':
			inClass = true

		case r == '(':
			if i+1 >= len(rs) || rs[i+1] != '?' {
				groups++
			}
		}
		sb.WriteRune(r)
	}

	if offset == 0 {
		return expr, groups
	}
	return sb.String(), groups
}
