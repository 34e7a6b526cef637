// Package tree defines classified span tree produced by scanner and functions to traverse it.
package tree

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Span is a classified range of source text. Start and End are byte offsets, End is exclusive.
// Scope is empty for plain text and for the root span.
// Children of a span cover its whole range, ordered and never overlapping;
// every byte of source belongs to exactly one leaf.
type Span struct {
	Scope    string  `json:"scope,omitempty"`
	Start    int     `json:"start"`
	End      int     `json:"end"`
	Children []*Span `json:"children,omitempty"`
}

func (s *Span) IsLeaf() bool {
	return len(s.Children) == 0
}

func (s *Span) IsPlain() bool {
	return s.Scope == ""
}

func (s *Span) Len() int {
	return s.End - s.Start
}

// Text returns span content.
func (s *Span) Text(src []byte) []byte {
	return src[s.Start:s.End]
}

// LastChild returns the last child or nil.
func (s *Span) LastChild() *Span {
	if len(s.Children) == 0 {
		return nil
	}
	return s.Children[len(s.Children)-1]
}

type NodeVisitor func(s *Span) (walkChildren, walkSiblings bool)

type WalkMode int

const (
	WalkLtr WalkMode = 0
	WalkRtl WalkMode = 1
)

// Walk visits s and its descendants in depth-first order.
func Walk(s *Span, mode WalkMode, visitor NodeVisitor) {
	if s != nil {
		visitNode(s, visitor, (mode&WalkRtl) != 0)
	}
}

func visitNode(s *Span, v NodeVisitor, rtl bool) (visitSiblings bool) {
	vc, vs := v(s)
	if !vc {
		return vs
	}

	cnt := len(s.Children)
	for i := 0; i < cnt && vc; i++ {
		c := s.Children[i]
		if rtl {
			c = s.Children[cnt-i-1]
		}
		vc = visitNode(c, v, rtl)
	}
	return vs
}

// Leaves returns leaf spans in source order.
func Leaves(s *Span) []*Span {
	res := make([]*Span, 0)
	Walk(s, WalkLtr, func(n *Span) (bool, bool) {
		if n.IsLeaf() {
			res = append(res, n)
		}
		return true, true
	})
	return res
}

// Text concatenates leaf texts. For a well-formed tree the result equals the source.
func Text(s *Span, src []byte) []byte {
	res := make([]byte, 0, len(src))
	for _, l := range Leaves(s) {
		res = append(res, l.Text(src)...)
	}
	return res
}

// Check verifies that s covers exactly size bytes and that every span covers its children
// exactly, with no gaps and no overlaps.
func Check(s *Span, size int) error {
	if s == nil {
		return errors.New("nil root span")
	}
	if s.Start != 0 || s.End != size {
		return errors.Errorf("root span %d..%d does not cover source of %d bytes", s.Start, s.End, size)
	}
	return checkSpan(s)
}

func checkSpan(s *Span) error {
	if s.Start > s.End {
		return errors.Errorf("span %q: start %d is after end %d", s.Scope, s.Start, s.End)
	}
	if len(s.Children) == 0 {
		return nil
	}

	pos := s.Start
	for _, c := range s.Children {
		if c == nil {
			return errors.Errorf("span %q %d..%d: nil child", s.Scope, s.Start, s.End)
		}
		if c.Start != pos {
			return errors.Errorf("span %q %d..%d: child %q starts at %d, expecting %d", s.Scope, s.Start, s.End, c.Scope, c.Start, pos)
		}
		e := checkSpan(c)
		if e != nil {
			return e
		}
		pos = c.End
	}
	if pos != s.End {
		return errors.Errorf("span %q %d..%d: children end at %d", s.Scope, s.Start, s.End, pos)
	}
	return nil
}

// StringWriter is implemented by strings.Builder, bytes.Buffer, bufio.Writer, etc.
type StringWriter interface {
	WriteString(string) (int, error)
}

// Dump writes indented span tree, one span per line: scope (or "-" for plain text) and quoted text of leaves.
func Dump(w StringWriter, s *Span, src []byte) error {
	var e error
	level := 0
	var dump func(n *Span)
	dump = func(n *Span) {
		if e != nil {
			return
		}

		scope := n.Scope
		if scope == "" {
			scope = "-"
		}
		line := strings.Repeat("  ", level) + scope
		if n.IsLeaf() {
			line += " " + strconv.Quote(string(n.Text(src)))
		}
		_, e = w.WriteString(line + "\n")

		level++
		for _, c := range n.Children {
			dump(c)
		}
		level--
	}
	if s != nil {
		dump(s)
	}
	return e
}
