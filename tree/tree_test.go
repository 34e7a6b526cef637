package tree

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// sample tree for `def foo(x):`
var sampleSrc = []byte("def foo(x):")

func sampleTree() *Span {
	return &Span{Start: 0, End: 11, Children: []*Span{
		{Scope: "keyword", Start: 0, End: 3},
		{Start: 3, End: 4},
		{Scope: "title.function", Start: 4, End: 7},
		{Scope: "params", Start: 7, End: 10, Children: []*Span{
			{Start: 7, End: 8},
			{Scope: "variable", Start: 8, End: 9},
			{Start: 9, End: 10},
		}},
		{Start: 10, End: 11},
	}}
}

func scopes(spans []*Span) []string {
	res := make([]string, len(spans))
	for i, s := range spans {
		res[i] = s.Scope
	}
	return res
}

func TestWalk(t *testing.T) {
	root := sampleTree()
	var ltr, rtl []string
	Walk(root, WalkLtr, func(s *Span) (bool, bool) {
		ltr = append(ltr, s.Scope)
		return s.Scope != "params", true
	})
	Walk(root, WalkRtl, func(s *Span) (bool, bool) {
		rtl = append(rtl, s.Scope)
		return true, s.Scope != "params"
	})

	require.Empty(t, cmp.Diff([]string{"", "keyword", "", "title.function", "params", ""}, ltr))
	require.Empty(t, cmp.Diff([]string{"", "", "params", "", "variable", ""}, rtl))
}

func TestLeavesText(t *testing.T) {
	root := sampleTree()
	leaves := Leaves(root)
	require.Len(t, leaves, 7)
	require.Equal(t, string(sampleSrc), string(Text(root, sampleSrc)))
	require.Equal(t, "(x)", string(root.Children[3].Text(sampleSrc)))
	require.Equal(t, 3, root.Children[3].Len())
	require.Same(t, root.Children[4], root.LastChild())
	require.Nil(t, root.Children[0].LastChild())
}

func TestCheck(t *testing.T) {
	require.NoError(t, Check(sampleTree(), len(sampleSrc)))
	require.NoError(t, Check(&Span{}, 0))
	require.Error(t, Check(nil, 0))
	require.Error(t, Check(sampleTree(), 12))

	gap := sampleTree()
	gap.Children[3].Children[1].Start = 9
	require.Error(t, Check(gap, 11))

	overlap := sampleTree()
	overlap.Children[0].End = 4
	require.Error(t, Check(overlap, 11))

	short := sampleTree()
	short.Children = short.Children[:4]
	require.Error(t, Check(short, 11))

	inverted := &Span{Start: 0, End: 1, Children: []*Span{{Start: 0, End: 1, Children: []*Span{{Start: 1, End: 0}}}}}
	require.Error(t, Check(inverted, 1))
}

func TestSelector(t *testing.T) {
	root := sampleTree()

	found := NewSelector().Search(IsClassified, true).Apply(root)
	require.Equal(t, []string{"keyword", "title.function", "params", "variable"}, scopes(found))

	found = NewSelector().Search(IsClassified, false).Apply(root)
	require.Equal(t, []string{"keyword", "title.function", "params"}, scopes(found))

	found = NewSelector().Search(IsA("params"), false).Children().Filter(IsClassified).Apply(root)
	require.Equal(t, []string{"variable"}, scopes(found))

	found = NewSelector().Children().Filter(IsAll(IsLeaf, IsNot(IsClassified))).Apply(root, root)
	require.Len(t, found, 2)

	found = NewSelector().Search(IsAny(IsIn("title"), IsText(sampleSrc, "x")), true).Apply(root)
	require.Equal(t, []string{"title.function", "variable"}, scopes(found))

	require.False(t, IsIn("title")(&Span{Scope: "titles"}))
	require.Len(t, NewSelector().Apply(root, nil), 1)
}

func TestDump(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, Dump(&sb, sampleTree(), sampleSrc))
	expected := `-
  keyword "def"
  - " "
  title.function "foo"
  params
    - "("
    variable "x"
    - ")"
  - ":"
`
	require.Equal(t, expected, sb.String())
}
