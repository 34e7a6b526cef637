package grammar

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/ava12/hilite/keywords"
)

func TestMerge(t *testing.T) {
	base := &Mode{
		Scope:     "string",
		Contains:  []*Mode{BackslashEscape},
		Relevance: Rel(3),
		Variants:  []*Mode{{Begin: `'`}},
	}

	got := base.Merge(&Mode{Begin: `"""`, End: `"""`, ExcludeEnd: true})
	expected := &Mode{
		Scope:      "string",
		Begin:      `"""`,
		End:        `"""`,
		Contains:   []*Mode{BackslashEscape},
		Relevance:  Rel(3),
		ExcludeEnd: true,
	}
	require.Empty(t, cmp.Diff(expected, got))
	require.Len(t, base.Variants, 1)
	require.Equal(t, "", base.Begin)

	got = base.Merge(&Mode{BeginSeq: []string{"a", "b"}, Relevance: Rel(0)})
	require.Equal(t, []string{"a", "b"}, got.BeginSeq)
	require.Equal(t, 0, got.Weight())
}

func TestWeight(t *testing.T) {
	require.Equal(t, DefaultRelevance, (&Mode{}).Weight())
	require.Equal(t, 10, (&Mode{Relevance: Rel(10)}).Weight())
}

func TestRefs(t *testing.T) {
	require.True(t, Self().IsRef())
	require.Equal(t, SelfRef, Self().Ref)
	require.Equal(t, "string", Ref("string").Ref)
	require.False(t, QuoteString.IsRef())
}

func TestKeywordsSpec(t *testing.T) {
	var k *Keywords
	require.Empty(t, k.Spec())

	k = &Keywords{
		Keyword: []string{"if else"},
		Literal: []string{"None"},
		Other:   map[string][]string{"type": {"int"}, "empty": nil},
	}
	expected := keywords.Spec{
		keywords.Keyword: {"if else"},
		keywords.Literal: {"None"},
		"type":           {"int"},
	}
	require.Empty(t, cmp.Diff(expected, k.Spec()))
}

func TestRoot(t *testing.T) {
	g := &Grammar{
		Name:     "test",
		Illegal:  `=>`,
		Keywords: &Keywords{Keyword: []string{"if"}},
		Contains: []*Mode{HashComment},
	}
	root := g.Root()
	require.Equal(t, "", root.Scope)
	require.Equal(t, g.Illegal, root.Illegal)
	require.Same(t, g.Keywords, root.Keywords)
	require.Equal(t, []*Mode{HashComment}, root.Contains)
}
