package scanner

import (
	"github.com/ava12/hilite/compile"
	"github.com/ava12/hilite/pattern"
	"github.com/ava12/hilite/tree"
)

// searchCache keeps the result of the last search of a pattern. A found match stays valid
// while the cursor does not pass its start, a failed search stays valid for any later cursor.
type searchCache struct {
	valid bool
	from  int
	index int
	match *pattern.Match
}

func (c *searchCache) get(cursor int) (int, *pattern.Match, bool) {
	if !c.valid || cursor < c.from || (c.match != nil && c.match.Start < cursor) {
		return -1, nil, false
	}
	return c.index, c.match, true
}

func (c *searchCache) set(cursor, index int, m *pattern.Match) {
	c.valid = true
	c.from = cursor
	c.index = index
	c.match = m
}

// frame is an open mode. start is the rune offset of its span start,
// entry is the offset of zero-width begin lexeme or -1.
type frame struct {
	mode      *compile.Mode
	start     int
	entry     int
	spans     []*tree.Span
	relevance int
	next      searchCache
	end       searchCache
}

type frameStack struct {
	frames []*frame
}

func newFrameStack() *frameStack {
	return &frameStack{}
}

func (s *frameStack) IsEmpty() bool {
	return len(s.frames) == 0
}

func (s *frameStack) Len() int {
	return len(s.frames)
}

func (s *frameStack) Push(f *frame) {
	s.frames = append(s.frames, f)
}

// Pop removes and returns the top frame or returns nil if the stack is empty.
func (s *frameStack) Pop() *frame {
	if len(s.frames) == 0 {
		return nil
	}

	l := len(s.frames) - 1
	f := s.frames[l]
	s.frames[l] = nil
	s.frames = s.frames[:l]
	return f
}

func (s *frameStack) Top() *frame {
	if len(s.frames) == 0 {
		return nil
	}

	return s.frames[len(s.frames)-1]
}

// At returns the frame at given depth, 0 is the bottom.
func (s *frameStack) At(depth int) *frame {
	if depth < 0 || depth >= len(s.frames) {
		return nil
	}

	return s.frames[depth]
}
