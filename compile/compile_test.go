package compile

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava12/hilite"
	"github.com/ava12/hilite/grammar"
	"github.com/ava12/hilite/keywords"
	"github.com/ava12/hilite/pattern"
)

func mustCompile(t *testing.T, g *grammar.Grammar) *Language {
	t.Helper()
	l, e := Compile(g, Options{})
	require.NoError(t, e)
	return l
}

func TestVariants(t *testing.T) {
	str := &grammar.Mode{
		Scope:    "string",
		Contains: []*grammar.Mode{grammar.BackslashEscape},
		Variants: []*grammar.Mode{
			{Begin: `"""`, End: `"""`, Relevance: grammar.Rel(10)},
			{Begin: `"`, End: `"`},
		},
	}
	l := mustCompile(t, &grammar.Grammar{Name: "test", Contains: []*grammar.Mode{str}})

	root := l.Root()
	require.Equal(t, []int{1, 2}, root.Children)
	require.Equal(t, 2, root.Dispatch.Len())

	triple := l.Modes[1]
	require.Equal(t, "string", triple.Scope)
	require.Equal(t, 10, triple.Relevance)
	require.Equal(t, `"""`, triple.Begin.String())
	require.Equal(t, `"""`, triple.End.String())
	require.False(t, triple.SelfTerminating)

	single := l.Modes[2]
	require.Equal(t, 1, single.Relevance)
	require.Equal(t, `"`, single.End.String())

	escape := l.Modes[3]
	require.Equal(t, []int{3}, triple.Children)
	require.Equal(t, []int{3}, single.Children)
	require.True(t, escape.SelfTerminating)
	require.Equal(t, 0, escape.Relevance)
	require.Len(t, l.Modes, 4)
}

func TestTargets(t *testing.T) {
	child := &grammar.Mode{Scope: "number", Begin: `\d+`}
	parens := &grammar.Mode{
		Scope:    "params",
		Begin:    `\(`,
		End:      `\)`,
		Illegal:  `;`,
		Contains: []*grammar.Mode{grammar.Self(), child},
	}
	l := mustCompile(t, &grammar.Grammar{Name: "test", Illegal: `=>`, Contains: []*grammar.Mode{parens}})

	require.Equal(t, []Target{{IllegalTarget, -1}, {ChildTarget, 1}}, l.Root().Targets)
	m := l.Modes[1]
	require.Equal(t, []Target{
		{IllegalTarget, -1},
		{EndTarget, -1},
		{ChildTarget, 1},
		{ChildTarget, 2},
	}, m.Targets)

	index, match := m.Dispatch.FindAt([]rune("a (b) 12 )"), 0)
	require.Equal(t, 2, index)
	require.Equal(t, 2, match.Start)

	index, match = m.Dispatch.FindAt([]rune("x; 1"), 0)
	require.Equal(t, 0, index)
	require.Equal(t, 1, match.Start)
}

func TestRepositoryRefs(t *testing.T) {
	subst := &grammar.Mode{
		Scope:    "subst",
		Begin:    `\{`,
		End:      `\}`,
		Contains: []*grammar.Mode{grammar.Ref("string")},
	}
	str := &grammar.Mode{
		Scope:    "string",
		Begin:    `"`,
		End:      `"`,
		Contains: []*grammar.Mode{grammar.Ref("subst")},
	}
	g := &grammar.Grammar{
		Name:     "test",
		Contains: []*grammar.Mode{grammar.Ref("alias")},
		Repository: map[string]*grammar.Mode{
			"alias":  grammar.Ref("string"),
			"string": str,
			"subst":  subst,
			"unused": {Begin: "x"},
		},
	}
	l := mustCompile(t, g)

	require.Len(t, l.Modes, 3)
	require.Equal(t, "string", l.Modes[1].Scope)
	require.Equal(t, "subst", l.Modes[2].Scope)
	require.Equal(t, []int{2}, l.Modes[1].Children)
	require.Equal(t, []int{1}, l.Modes[2].Children)
}

func TestSharedMode(t *testing.T) {
	shared := &grammar.Mode{Scope: "number", Begin: `\d+`}
	a := &grammar.Mode{Begin: "a", End: "a", Contains: []*grammar.Mode{shared}}
	b := &grammar.Mode{Begin: "b", End: "b", Contains: []*grammar.Mode{shared}}
	l := mustCompile(t, &grammar.Grammar{Name: "test", Contains: []*grammar.Mode{a, b, shared}})

	require.Len(t, l.Modes, 4)
	require.Equal(t, []int{1, 2, 3}, l.Root().Children)
	require.Equal(t, []int{3}, l.Modes[1].Children)
	require.Equal(t, []int{3}, l.Modes[2].Children)
}

func TestBeginSeq(t *testing.T) {
	def := &grammar.Mode{
		BeginSeq:   []string{`\bdef`, `\s+`, pattern.IdentRe},
		BeginScope: map[int]string{1: "keyword", 3: "title.function"},
	}
	l := mustCompile(t, &grammar.Grammar{Name: "test", Contains: []*grammar.Mode{def}})

	m := l.Modes[1]
	require.True(t, m.SplitsBegin())
	require.Equal(t, []string{"keyword", "", "title.function"}, m.BeginScopes)

	text := []rune("x = def  foo")
	match := m.Begin.FindAt(text, 0)
	require.NotNil(t, match)
	s, e, ok := match.Group(PartGroup(2))
	require.True(t, ok)
	require.Equal(t, "foo", string(text[s:e]))

	index, match := l.Root().Dispatch.FindAt(text, 0)
	require.Equal(t, 0, index)
	require.Equal(t, 4, match.Start)
	require.Equal(t, len(text), match.End)
}

func TestBeginKeywords(t *testing.T) {
	l := mustCompile(t, &grammar.Grammar{
		Name:     "test",
		Contains: []*grammar.Mode{{BeginKeywords: "if elif", Relevance: grammar.Rel(0)}},
	})

	m := l.Modes[1]
	require.NotNil(t, m.Keywords)
	entry, found := m.Keywords.LookupString("elif")
	require.True(t, found)
	require.Equal(t, keywords.Keyword, entry.Category)

	text := []rune("iffy if. elif x")
	match := m.Begin.FindAt(text, 0)
	require.NotNil(t, match)
	require.Equal(t, 9, match.Start)
	require.Equal(t, 13, match.End)
}

func TestKeywords(t *testing.T) {
	kw := &grammar.Keywords{Keyword: []string{"SELECT"}}
	l := mustCompile(t, &grammar.Grammar{
		Name:            "test",
		CaseInsensitive: true,
		Keywords:        kw,
		Contains:        []*grammar.Mode{{Scope: "string", Begin: `'`, End: `'`}},
	})

	require.NotNil(t, l.Root().Keywords)
	_, found := l.Root().Keywords.LookupString("select")
	require.True(t, found)
	require.Nil(t, l.Modes[1].Keywords)
	require.True(t, l.CaseInsensitive)
	require.NotNil(t, l.Modes[1].End.FindAt([]rune("'"), 0))
}

func TestSelfTerminating(t *testing.T) {
	l := mustCompile(t, &grammar.Grammar{
		Name: "test",
		Contains: []*grammar.Mode{
			{Begin: "a"},
			{Begin: "b", End: "c"},
			{Begin: "d", EndsWithParent: true},
			{Scope: "x"},
		},
	})

	require.False(t, l.Root().SelfTerminating)
	require.True(t, l.Modes[1].SelfTerminating)
	require.False(t, l.Modes[2].SelfTerminating)
	require.False(t, l.Modes[3].SelfTerminating)
	require.True(t, l.Modes[4].SelfTerminating)
	require.Nil(t, l.Modes[4].Begin)
}

func TestErrors(t *testing.T) {
	samples := []struct {
		g    *grammar.Grammar
		code int
	}{
		{nil, EmptyGrammarError},
		{&grammar.Grammar{Name: "empty"}, EmptyGrammarError},
		{&grammar.Grammar{Name: "g", Contains: []*grammar.Mode{{Begin: "(a"}}}, pattern.WrongPatternError},
		{&grammar.Grammar{Name: "g", Contains: []*grammar.Mode{{Begin: "a", End: "[b"}}}, pattern.WrongPatternError},
		{&grammar.Grammar{Name: "g", Illegal: "(", Contains: []*grammar.Mode{{Begin: "a"}}}, pattern.WrongPatternError},
		{&grammar.Grammar{Name: "g", Contains: []*grammar.Mode{grammar.Ref("missing")}}, UnresolvedRefError},
		{&grammar.Grammar{Name: "g", Contains: []*grammar.Mode{{Variants: []*grammar.Mode{grammar.Self()}}}}, UnresolvedRefError},
		{
			&grammar.Grammar{
				Name:       "g",
				Contains:   []*grammar.Mode{grammar.Ref("a")},
				Repository: map[string]*grammar.Mode{"a": grammar.Ref("b"), "b": grammar.Ref("a")},
			},
			RefCycleError,
		},
		{
			&grammar.Grammar{Name: "g", Contains: []*grammar.Mode{{Begin: "a", BeginScope: map[int]string{2: "x"}}}},
			BeginScopeError,
		},
		{
			&grammar.Grammar{Name: "g", Contains: []*grammar.Mode{{BeginScope: map[int]string{1: "x"}}}},
			BeginScopeError,
		},
		{
			&grammar.Grammar{Name: "g", Contains: []*grammar.Mode{{Begin: "a", Keywords: &grammar.Keywords{Keyword: []string{"x|y"}}}}},
			keywords.WrongWeightError,
		},
	}

	for i, s := range samples {
		_, e := Compile(s.g, Options{})
		require.Error(t, e, "sample #%d", i)
		require.Equal(t, s.code, hilite.ErrorCode(e), "sample #%d: %v", i, e)
		if s.g != nil && s.g.Name == "g" {
			he := e.(*hilite.Error)
			require.Equal(t, "g", he.SourceName, "sample #%d", i)
		}
	}
}
