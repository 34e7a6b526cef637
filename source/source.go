// Package source defines the text being highlighted.
package source

import (
	"bytes"
	"unicode/utf8"
)

// Source contains text to scan: raw bytes, decoded runes and a line index.
// Scanner works with rune offsets, produced spans use byte offsets;
// Source converts between the two.
// Source is immutable and safe for concurrent use.
type Source struct {
	name       string
	content    []byte
	runes      []rune
	byteOffs   []int
	lineStarts []int
}

// New creates Source. Invalid UTF-8 bytes are decoded as utf8.RuneError, one rune per byte,
// so that every byte of content belongs to exactly one rune.
func New(name string, content []byte) *Source {
	s := &Source{name: name, content: content}
	lineCnt := bytes.Count(content, []byte("\n")) + 1
	s.lineStarts = make([]int, 1, lineCnt)

	s.runes = make([]rune, 0, len(content))
	s.byteOffs = make([]int, 0, len(content)+1)
	for i := 0; i < len(content); {
		r, size := utf8.DecodeRune(content[i:])
		s.runes = append(s.runes, r)
		s.byteOffs = append(s.byteOffs, i)
		i += size
		if r == '\n' {
			s.lineStarts = append(s.lineStarts, i)
		}
	}
	s.byteOffs = append(s.byteOffs, len(content))

	return s
}

// NewString creates Source from a string.
func NewString(name, content string) *Source {
	return New(name, []byte(content))
}

// Name returns source name, may be empty.
func (s *Source) Name() string {
	return s.name
}

// Content returns source bytes.
func (s *Source) Content() []byte {
	return s.content
}

// Len returns content length in bytes.
func (s *Source) Len() int {
	return len(s.content)
}

// Runes returns decoded content. The result must not be modified.
func (s *Source) Runes() []rune {
	return s.runes
}

// RuneLen returns content length in runes.
func (s *Source) RuneLen() int {
	return len(s.runes)
}

// ByteOffset converts rune offset to byte offset. Offsets out of range are clamped.
func (s *Source) ByteOffset(runeOffset int) int {
	if runeOffset <= 0 {
		return 0
	}
	if runeOffset >= len(s.runes) {
		return len(s.content)
	}
	return s.byteOffs[runeOffset]
}

// Slice returns content bytes between rune offsets.
func (s *Source) Slice(from, to int) []byte {
	return s.content[s.ByteOffset(from):s.ByteOffset(to)]
}

// LineCol converts byte offset to 1-based line and column numbers, columns are counted in runes.
func (s *Source) LineCol(pos int) (line, col int) {
	if pos < 0 {
		pos = 0
	} else if pos > len(s.content) {
		pos = len(s.content)
	}

	lineIndex := s.findLineIndex(pos)
	lineStart := s.lineStarts[lineIndex]
	return lineIndex + 1, utf8.RuneCount(s.content[lineStart:pos]) + 1
}

// Pos converts 1-based line and byte column numbers to byte offset.
func (s *Source) Pos(line, col int) int {
	if line <= 0 || col <= 0 {
		return 0
	}

	l := len(s.content)
	if line > len(s.lineStarts) {
		return l
	}

	res := s.lineStarts[line-1] + col - 1
	if res > l {
		return l
	}
	return res
}

func (s *Source) findLineIndex(pos int) int {
	left := 0
	right := len(s.lineStarts) - 1
	for left < right {
		index := (left + right + 1) >> 1
		if s.lineStarts[index] <= pos {
			left = index
		} else {
			right = index - 1
		}
	}
	return left
}

// Pos is a source position, implements hilite.SourcePos.
type Pos struct {
	src            *Source
	pos, line, col int
}

// NewPos creates Pos for given byte offset.
func NewPos(s *Source, pos int) Pos {
	line, col := s.LineCol(pos)
	return Pos{s, pos, line, col}
}

func (p Pos) Source() *Source {
	return p.src
}

func (p Pos) SourceName() string {
	if p.src == nil {
		return ""
	}
	return p.src.name
}

func (p Pos) Pos() int {
	return p.pos
}

func (p Pos) Line() int {
	return p.line
}

func (p Pos) Col() int {
	return p.col
}
