package scanner

import (
	"strings"

	"github.com/ava12/hilite/compile"
	"github.com/ava12/hilite/keywords"
	"github.com/ava12/hilite/pattern"
	"github.com/ava12/hilite/tree"
)

// appendSpan adds span to frame, adjacent plain leaves are merged.
func (s *scanState) appendSpan(f *frame, span *tree.Span) {
	if span.IsPlain() && span.IsLeaf() {
		if span.Start >= span.End {
			return
		}

		if last := lastSpan(f); last != nil && last.IsPlain() && last.IsLeaf() && last.End == span.Start {
			last.End = span.End
			return
		}
	}
	f.spans = append(f.spans, span)
}

func lastSpan(f *frame) *tree.Span {
	if len(f.spans) == 0 {
		return nil
	}
	return f.spans[len(f.spans)-1]
}

// addPlain adds text between rune offsets as plain text.
func (s *scanState) addPlain(f *frame, from, to int) {
	if from >= to {
		return
	}
	s.appendSpan(f, &tree.Span{Start: s.src.ByteOffset(from), End: s.src.ByteOffset(to)})
}

// addSpan adds classified leaf.
func (s *scanState) addSpan(f *frame, scope string, from, to int) {
	if from >= to {
		return
	}
	s.appendSpan(f, &tree.Span{Scope: scope, Start: s.src.ByteOffset(from), End: s.src.ByteOffset(to)})
}

// hitKey counts keyword hits per classifier.
type hitKey struct {
	cls  *keywords.Classifier
	word string
}

// tokenSearch is the last token search result for a pattern.
// A failed search from pos fails from any later position,
// a found match is the leftmost one for any position up to its start.
type tokenSearch struct {
	from  int
	match *pattern.Match
}

func (s *scanState) findToken(token *pattern.Pattern, pos int) *pattern.Match {
	ts := s.tokens[token]
	if ts != nil && pos >= ts.from && (ts.match == nil || ts.match.Start >= pos) {
		return ts.match
	}

	if ts == nil {
		ts = &tokenSearch{}
		s.tokens[token] = ts
	}
	ts.from = pos
	ts.match = token.FindAt(s.runes, pos)
	s.res.TokenSearches++
	return ts.match
}

// addText adds text between rune offsets classifying words with frame keywords.
func (s *scanState) addText(f *frame, from, to int) {
	cls := f.mode.Keywords
	if cls == nil || from >= to {
		s.addPlain(f, from, to)
		return
	}

	token := cls.Token()
	plain := from
	pos := from
	for pos < to {
		m := s.findToken(token, pos)
		if m == nil || m.Start >= to {
			break
		}

		start, end := m.Start, m.End
		if end > to {
			end = to
		}
		if start == end {
			pos = start + 1
			continue
		}
		pos = end
		if !s.isWord(start, end) {
			continue
		}

		word := s.src.Slice(start, end)
		entry, found := cls.Lookup(word)
		if !found {
			continue
		}

		s.addPlain(f, plain, start)
		s.addSpan(f, entry.Category, start, end)
		plain = end

		key := hitKey{cls, string(word)}
		if cls.CaseInsensitive() {
			key.word = strings.ToLower(key.word)
		}
		s.hits[key]++
		if s.hits[key] <= maxKeywordHits {
			f.relevance += entry.Relevance
		}
	}
	s.addPlain(f, plain, to)
}

// isWord reports whether runes between offsets are not a part of a longer identifier.
func (s *scanState) isWord(start, end int) bool {
	if start > 0 && pattern.IsIdentRune(s.runes[start-1]) && pattern.IsIdentRune(s.runes[start]) {
		return false
	}
	if end < len(s.runes) && pattern.IsIdentRune(s.runes[end]) && pattern.IsIdentRune(s.runes[end-1]) {
		return false
	}
	return true
}

// addParts adds begin sequence parts, scoped parts become classified leaves.
func (s *scanState) addParts(f *frame, m *pattern.Match) {
	pos := m.Start
	for i, scope := range f.mode.BeginScopes {
		start, end, ok := m.Group(compile.PartGroup(i))
		if !ok || start < pos || start == end {
			continue
		}

		s.addText(f, pos, start)
		if scope == "" {
			s.addText(f, start, end)
		} else {
			s.addSpan(f, scope, start, end)
		}
		pos = end
	}
	s.addText(f, pos, m.End)
}
