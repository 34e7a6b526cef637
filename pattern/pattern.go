// Package pattern wraps regular expressions used by grammars.
//
// Patterns follow .NET/JavaScript regex syntax: lookahead, lookbehind, named groups,
// and Unicode property classes are supported. ^ and $ always match at line boundaries.
// All offsets are rune offsets into the scanned text.
package pattern

import (
	"time"
	"unicode"

	"github.com/dlclark/regexp2"

	"github.com/ava12/hilite/internal/logging"
	"github.com/ava12/hilite/internal/logging/logfields"
)

var log = logging.DefaultLogger.WithField(logfields.LogSubsys, "pattern")

// Unicode identifier classes.
const (
	IdentStart    = `[\p{L}\p{Nl}_]`
	IdentContinue = `[\p{L}\p{Nl}\p{Mn}\p{Mc}\p{Nd}\p{Pc}]`
	IdentRe       = IdentStart + IdentContinue + `*`
)

// IsIdentRune reports whether r may continue an identifier.
func IsIdentRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) ||
		unicode.In(r, unicode.Nl, unicode.Mn, unicode.Mc, unicode.Pc)
}

// Options affect pattern compilation.
type Options struct {
	// IgnoreCase makes the whole pattern case-insensitive.
	IgnoreCase bool

	// MatchTimeout limits the time spent by a single search, 0 means no limit.
	// A search that times out is reported as no match.
	MatchTimeout time.Duration
}

// Pattern is a compiled regular expression. It is immutable and safe for concurrent use.
type Pattern struct {
	expr string
	re   *regexp2.Regexp
}

// Compile compiles expr, returns hilite.Error with WrongPatternError code on failure.
func Compile(expr string, opts Options) (*Pattern, error) {
	var flags regexp2.RegexOptions = regexp2.Multiline
	if opts.IgnoreCase {
		flags |= regexp2.IgnoreCase
	}

	re, e := regexp2.Compile(expr, flags)
	if e != nil {
		return nil, wrongPatternError(expr, e)
	}

	if opts.MatchTimeout > 0 {
		re.MatchTimeout = opts.MatchTimeout
	}
	return &Pattern{expr, re}, nil
}

// MustCompile is like Compile but panics on error. It is intended for patterns in Go sources.
func MustCompile(expr string, opts Options) *Pattern {
	p, e := Compile(expr, opts)
	if e != nil {
		panic(e)
	}
	return p
}

// Quote escapes all regex metacharacters in text.
func Quote(text string) string {
	return regexp2.Escape(text)
}

// String returns source expression.
func (p *Pattern) String() string {
	return p.expr
}

// FindAt returns the leftmost match starting at or after pos or nil.
func (p *Pattern) FindAt(runes []rune, pos int) *Match {
	if pos < 0 {
		pos = 0
	}
	if pos > len(runes) {
		return nil
	}

	m, e := p.re.FindRunesMatchStartingAt(runes, pos)
	if e != nil {
		log.WithError(e).WithField(logfields.Pattern, p.expr).WithField(logfields.Offset, pos).Warn("search failed")
		return nil
	}
	if m == nil {
		return nil
	}

	return &Match{Start: m.Index, End: m.Index + m.Length, m: m}
}

// MatchAt returns a match starting exactly at pos or nil.
func (p *Pattern) MatchAt(runes []rune, pos int) *Match {
	m := p.FindAt(runes, pos)
	if m == nil || m.Start != pos {
		return nil
	}
	return m
}

// Match describes a found lexeme.
type Match struct {
	// Start and End are rune offsets, End is exclusive.
	Start, End int

	m *regexp2.Match
}

// Len returns match length in runes.
func (m *Match) Len() int {
	return m.End - m.Start
}

// IsEmpty reports whether the match is zero-width.
func (m *Match) IsEmpty() bool {
	return m.End == m.Start
}

// Group returns bounds of named group. ok is false if the group does not exist
// or did not participate in the match.
func (m *Match) Group(name string) (start, end int, ok bool) {
	g := m.m.GroupByName(name)
	if g == nil || len(g.Captures) == 0 {
		return 0, 0, false
	}
	return g.Index, g.Index + g.Length, true
}

// GroupNumber returns bounds of numbered group, see Group.
func (m *Match) GroupNumber(n int) (start, end int, ok bool) {
	g := m.m.GroupByNumber(n)
	if g == nil || len(g.Captures) == 0 {
		return 0, 0, false
	}
	return g.Index, g.Index + g.Length, true
}
