package source

import (
	"testing"

	. "github.com/ava12/hilite/internal/test"
)

type result struct {
	pos, line, col int
}

func TestSourceLineCol(t *testing.T) {
	samples := map[string][]result{
		"": {
			{0, 1, 1},
			{100, 1, 1},
		},
		"\n": {
			{0, 1, 1},
			{1, 2, 1},
			{100, 2, 1},
		},
		"0\n2\n4\n6789abcde\ng\ni\n": {
			{4, 3, 1},
			{5, 3, 2},
			{6, 4, 1},
			{7, 4, 2},
			{14, 4, 9},
			{19, 6, 2},
			{20, 7, 1},
			{9, 4, 4},
			{5, 3, 2},
		},
		"ж\nыz": {
			{2, 1, 2},
			{3, 2, 1},
			{5, 2, 2},
			{6, 2, 3},
		},
	}

	for text, results := range samples {
		source := New("", []byte(text))
		for _, res := range results {
			l, c := source.LineCol(res.pos)
			if l != res.line || c != res.col {
				t.Errorf("sample %q: expected %v, got line: %d, col: %d", text, res, l, c)
			}
		}
	}
}

func TestSourcePos(t *testing.T) {
	samples := map[string][]result{
		"": {
			{0, 0, 1},
			{0, 1, 0},
			{0, 1, 1},
			{0, 1, 2},
			{0, 2, 1},
		},
		"\n": {
			{0, 1, 1},
			{1, 1, 2},
			{1, 2, 1},
			{1, 3, 1},
		},
		"hello\nworld\n": {
			{1, 1, 2},
			{6, 2, 1},
			{7, 2, 2},
			{12, 2, 10},
			{12, 3, 1},
			{12, 4, 1},
		},
	}

	for text, results := range samples {
		source := New("", []byte(text))
		for _, res := range results {
			p := source.Pos(res.line, res.col)
			if p != res.pos {
				t.Errorf("sample %q: expected %v, got pos: %d", text, res, p)
			}
		}
	}
}

func TestRuneOffsets(t *testing.T) {
	s := NewString("sample", "aж€b")
	ExpectInt(t, 4, s.RuneLen())
	ExpectInt(t, 7, s.Len())

	expected := []int{0, 1, 3, 6, 7}
	for i, offset := range expected {
		ExpectInt(t, offset, s.ByteOffset(i))
	}
	ExpectInt(t, 0, s.ByteOffset(-1))
	ExpectInt(t, 7, s.ByteOffset(10))
	Expect(t, string(s.Slice(1, 3)) == "ж€", "ж€", string(s.Slice(1, 3)))
}

func TestInvalidUtf8(t *testing.T) {
	s := New("", []byte{'a', 0xff, 0xfe, 'b'})
	ExpectInt(t, 4, s.RuneLen())
	ExpectInt(t, 2, s.ByteOffset(2))
	ExpectInt(t, 4, s.ByteOffset(4))
}

func TestNewPos(t *testing.T) {
	s := NewString("file.py", "foo\nbar")
	p := NewPos(s, 5)
	Assert(t, p.SourceName() == "file.py", "unexpected source name %q", p.SourceName())
	ExpectInt(t, 2, p.Line())
	ExpectInt(t, 2, p.Col())
	ExpectInt(t, 5, p.Pos())
}
