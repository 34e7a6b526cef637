package pattern

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava12/hilite"
)

func TestCompileError(t *testing.T) {
	_, e := Compile("(foo", Options{})
	require.Error(t, e)
	require.Equal(t, WrongPatternError, hilite.ErrorCode(e))
	require.Contains(t, e.Error(), `"(foo"`)
}

func TestFindAt(t *testing.T) {
	p := MustCompile(`\d+`, Options{})
	text := []rune("ab 12 ж 345")

	m := p.FindAt(text, 0)
	require.NotNil(t, m)
	require.Equal(t, 3, m.Start)
	require.Equal(t, 5, m.End)

	m = p.FindAt(text, 5)
	require.NotNil(t, m)
	require.Equal(t, 8, m.Start)
	require.Equal(t, 3, m.Len())

	require.Nil(t, p.FindAt(text, len(text)))
	require.Nil(t, p.FindAt(text, len(text)+1))
}

func TestMatchAt(t *testing.T) {
	p := MustCompile(`b+`, Options{})
	text := []rune("abb")
	require.Nil(t, p.MatchAt(text, 0))
	m := p.MatchAt(text, 1)
	require.NotNil(t, m)
	require.Equal(t, 3, m.End)
}

func TestLookaround(t *testing.T) {
	p := MustCompile(`(?<=\.)\w+(?=\()`, Options{})
	text := []rune("x.foo(1) y.bar")
	m := p.FindAt(text, 0)
	require.NotNil(t, m)
	require.Equal(t, "foo", string(text[m.Start:m.End]))
	require.Nil(t, p.FindAt(text, m.End))
}

func TestLineAnchors(t *testing.T) {
	p := MustCompile(`^>>>`, Options{})
	text := []rune("a >>>\n>>> b")
	m := p.FindAt(text, 0)
	require.NotNil(t, m)
	require.Equal(t, 6, m.Start)
}

func TestIgnoreCase(t *testing.T) {
	p := MustCompile(`select`, Options{IgnoreCase: true})
	require.NotNil(t, p.FindAt([]rune("SeLeCt"), 0))
	p = MustCompile(`select`, Options{})
	require.Nil(t, p.FindAt([]rune("SeLeCt"), 0))
}

func TestGroups(t *testing.T) {
	p := MustCompile(`(?<kw>def)(?<sp>\s+)(?<name>\w+)(?<opt>!)?`, Options{})
	text := []rune("def  foo(")
	m := p.FindAt(text, 0)
	require.NotNil(t, m)

	s, e, ok := m.Group("name")
	require.True(t, ok)
	require.Equal(t, "foo", string(text[s:e]))

	_, _, ok = m.Group("opt")
	require.False(t, ok)
	_, _, ok = m.Group("missing")
	require.False(t, ok)
}

func TestIdent(t *testing.T) {
	p := MustCompile(IdentRe, Options{})
	text := []rune("  названиеʹ2_x + 1")
	m := p.FindAt(text, 0)
	require.NotNil(t, m)
	require.Equal(t, "названиеʹ2_x", string(text[m.Start:m.End]))

	require.True(t, IsIdentRune('ж'))
	require.True(t, IsIdentRune('_'))
	require.True(t, IsIdentRune('7'))
	require.False(t, IsIdentRune(' '))
	require.False(t, IsIdentRune('('))
}

func TestAlternation(t *testing.T) {
	a, e := NewAlternation([]string{`\n`, `"`, `\w+`, `[a-z]`}, Options{})
	require.NoError(t, e)
	require.Equal(t, 4, a.Len())

	samples := []struct {
		text       string
		pos, index int
		start, end int
	}{
		{`  "x"`, 0, 1, 2, 3},
		{`abc"`, 0, 2, 0, 3},
		{"\nabc", 0, 0, 0, 1},
		{"abc", 3, -1, 0, 0},
	}

	for i, s := range samples {
		index, m := a.FindAt([]rune(s.text), s.pos)
		require.Equal(t, s.index, index, "sample #%d", i)
		if index < 0 {
			require.Nil(t, m, "sample #%d", i)
			continue
		}
		require.Equal(t, s.start, m.Start, "sample #%d", i)
		require.Equal(t, s.end, m.End, "sample #%d", i)
	}
}

func TestAlternationZeroWidth(t *testing.T) {
	a, e := NewAlternation([]string{`(?=x)`, `x`}, Options{})
	require.NoError(t, e)
	index, m := a.FindAt([]rune("abx"), 0)
	require.Equal(t, 0, index)
	require.True(t, m.IsEmpty())
	require.Equal(t, 2, m.Start)
}

func TestAlternationEmpty(t *testing.T) {
	a, e := NewAlternation(nil, Options{})
	require.NoError(t, e)
	require.Nil(t, a)
}

func TestAlternationBackrefs(t *testing.T) {
	a, e := NewAlternation([]string{`(a)(b)c`, `(["'])x\1`}, Options{})
	require.NoError(t, e)
	index, m := a.FindAt([]rune(`'x"  'x'`), 0)
	require.Equal(t, 1, index)
	require.Equal(t, 5, m.Start)
	require.Equal(t, 8, m.End)
}

func TestShiftBackrefs(t *testing.T) {
	samples := []struct {
		expr     string
		offset   int
		expected string
		groups   int
	}{
		{`(a)\1`, 0, `(a)\1`, 1},
		{`(a)\1`, 2, `(a)\3`, 1},
		{`(?:a)(?<n>b)[(\1]\\1`, 3, `(?:a)(?<n>b)[(\1]\\1`, 0},
		{`\((x)\)\12`, 1, `\((x)\)\13`, 1},
	}

	for _, s := range samples {
		got, groups := shiftBackrefs(s.expr, s.offset)
		require.Equal(t, s.expected, got, s.expr)
		require.Equal(t, s.groups, groups, s.expr)
	}
}

func TestQuote(t *testing.T) {
	p := MustCompile(Quote("a.b(c)"), Options{})
	require.NotNil(t, p.MatchAt([]rune("a.b(c)"), 0))
	require.Nil(t, p.FindAt([]rune("axb(c)"), 0))
}
