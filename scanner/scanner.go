// Package scanner implements the scanning engine producing classified span trees.
//
// Scanning never fails: unterminated modes are closed at the end of input, illegal lexemes
// abort the current mode, zero-width matches cannot stall the engine.
// Compiled languages are shared, each scan owns its state, so any number of scans
// may run concurrently.
package scanner

import (
	"github.com/ava12/hilite/compile"
	"github.com/ava12/hilite/internal/logging"
	"github.com/ava12/hilite/internal/logging/logfields"
	"github.com/ava12/hilite/pattern"
	"github.com/ava12/hilite/source"
	"github.com/ava12/hilite/tree"
)

var log = logging.DefaultLogger.WithField(logfields.LogSubsys, "scanner")

const (
	// stallLimit is the number of consecutive steps entering modes with no progress
	// after which one rune is consumed as plain text.
	stallLimit = 16

	// maxKeywordHits is the number of occurrences of the same keyword counted for relevance.
	maxKeywordHits = 7

	stepsPerRune = 2*stallLimit + 8
)

// Options affect a single scan.
type Options struct {
	// MaxSteps limits the number of engine steps, the rest of input becomes plain text.
	// 0 means a limit proportional to input length.
	MaxSteps int
}

type Option func(*Options)

func MaxSteps(n int) Option {
	return func(o *Options) {
		o.MaxSteps = n
	}
}

// Result is the outcome of a scan.
type Result struct {
	// Language is the name of scanning language.
	Language string

	// Root covers the whole input.
	Root *tree.Span

	// Relevance is the sum of relevance of closed modes and of found keywords.
	Relevance int

	// Illegal is set if an illegal lexeme was found, RootIllegal is set if it was found at root level.
	Illegal     bool
	RootIllegal bool

	Steps       int
	ForcedSteps int

	// TokenSearches counts keyword token searches, cached results are not counted.
	TokenSearches int

	// Truncated is set if step limit was reached.
	Truncated bool
}

// Score is the relevance used for language detection.
func (r *Result) Score() int {
	if r.RootIllegal {
		return 0
	}
	return r.Relevance
}

type targetKind int

const (
	noTarget targetKind = iota
	illegalTarget
	endTarget
	ancestorEndTarget
	childTarget
)

type lexeme struct {
	kind  targetKind
	mode  int
	depth int
	match *pattern.Match
}

type scanState struct {
	lang     *compile.Language
	src      *source.Source
	runes    []rune
	cursor   int
	stack    *frameStack
	hits     map[hitKey]int
	tokens   map[*pattern.Pattern]*tokenSearch
	stall    int
	maxSteps int
	res      *Result
}

// Scan highlights src using lang.
func Scan(lang *compile.Language, src *source.Source, opts ...Option) *Result {
	o := Options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.MaxSteps <= 0 {
		o.MaxSteps = (src.RuneLen() + 1) * stepsPerRune
	}

	s := &scanState{
		lang:     lang,
		src:      src,
		runes:    src.Runes(),
		stack:    newFrameStack(),
		hits:     make(map[hitKey]int),
		tokens:   make(map[*pattern.Pattern]*tokenSearch),
		maxSteps: o.MaxSteps,
		res:      &Result{Language: lang.Name},
	}
	s.stack.Push(&frame{mode: lang.Root()})
	s.run()

	root := s.stack.Pop()
	s.res.Root = &tree.Span{Start: 0, End: src.Len(), Children: root.spans}
	s.res.Relevance = root.relevance
	return s.res
}

// ScanString is a shortcut for Scan(lang, source.NewString(name, text)).
func ScanString(lang *compile.Language, name, text string, opts ...Option) *Result {
	return Scan(lang, source.NewString(name, text), opts...)
}

func (s *scanState) run() {
	for {
		if s.res.Steps >= s.maxSteps {
			log.WithField(logfields.Language, s.lang.Name).
				WithField(logfields.Steps, s.res.Steps).
				WithField(logfields.Offset, s.cursor).
				Debug("step limit reached")
			s.res.Truncated = true
			for s.stack.Len() > 1 {
				s.closeTop(s.cursor)
			}
			s.addPlain(s.stack.Top(), s.cursor, len(s.runes))
			s.cursor = len(s.runes)
			break
		}

		if s.stall > stallLimit && !s.forceProgress() {
			break
		}

		s.res.Steps++
		if !s.step() {
			break
		}
	}

	for s.stack.Len() > 1 {
		s.closeTop(len(s.runes))
	}
}

func (s *scanState) forceProgress() bool {
	s.stall = 0
	if s.cursor >= len(s.runes) {
		return false
	}

	log.WithField(logfields.Language, s.lang.Name).WithField(logfields.Offset, s.cursor).Debug("forced progress")
	s.res.ForcedSteps++
	s.addPlain(s.stack.Top(), s.cursor, s.cursor+1)
	s.cursor++
	return true
}

// checkLoop forces progress if f was entered with zero-width match and is closed at the same offset:
// the next step would enter it again.
func (s *scanState) checkLoop(f *frame) {
	if f.entry == s.cursor {
		s.stall = stallLimit + 1
	}
}

func (s *scanState) advance(pos int) {
	if pos > s.cursor {
		s.stall = 0
	}
	s.cursor = pos
}

// step processes the nearest lexeme, returns false when the input is exhausted.
func (s *scanState) step() bool {
	top := s.stack.Top()
	lex := s.nextLexeme(top)

	if top.mode.SelfTerminating && (lex.match == nil || lex.match.Start > s.cursor) {
		s.closeTop(s.cursor)
		s.checkLoop(top)
		return true
	}

	if lex.match == nil {
		s.addText(top, s.cursor, len(s.runes))
		s.advance(len(s.runes))
		return false
	}

	s.addText(top, s.cursor, lex.match.Start)
	s.advance(lex.match.Start)

	switch lex.kind {
	case illegalTarget:
		s.doIllegal(lex.match)

	case endTarget:
		s.doEnd(lex.match)
		s.checkLoop(top)

	case ancestorEndTarget:
		for s.stack.Len()-1 > lex.depth {
			s.closeTop(lex.match.Start)
		}
		s.doEnd(lex.match)

	case childTarget:
		s.doBegin(lex.mode, lex.match)
	}
	return true
}

// nextLexeme finds the nearest lexeme: illegal, end, ancestor end, or child begin.
// Of the lexemes starting at the same offset the first one in that order wins.
func (s *scanState) nextLexeme(top *frame) lexeme {
	res := lexeme{kind: noTarget}
	m := top.mode
	if m.Dispatch != nil {
		index, match, cached := top.next.get(s.cursor)
		if !cached {
			index, match = m.Dispatch.FindAt(s.runes, s.cursor)
			top.next.set(s.cursor, index, match)
		}

		if match != nil {
			t := m.Targets[index]
			res.match = match
			res.mode = t.Mode
			switch t.Kind {
			case compile.IllegalTarget:
				res.kind = illegalTarget
			case compile.EndTarget:
				res.kind = endTarget
			default:
				res.kind = childTarget
			}
		}
	}

	depth, match := s.ancestorEnd(top)
	if match != nil && (res.match == nil || match.Start < res.match.Start ||
		(match.Start == res.match.Start && res.kind == childTarget)) {
		res = lexeme{kind: ancestorEndTarget, depth: depth, match: match}
	}

	return res
}

// ancestorEnd finds the nearest end lexeme of ancestors closing the top frame.
func (s *scanState) ancestorEnd(top *frame) (int, *pattern.Match) {
	var best *pattern.Match
	bestDepth := -1
	depth := s.stack.Len() - 1
	for f := top; f.mode.EndsWithParent && depth > 0; {
		depth--
		f = s.stack.At(depth)
		if f.mode.End == nil {
			continue
		}

		_, match, cached := f.end.get(s.cursor)
		if !cached {
			match = f.mode.End.FindAt(s.runes, s.cursor)
			f.end.set(s.cursor, 0, match)
		}
		if match != nil && (best == nil || match.Start < best.Start) {
			best = match
			bestDepth = depth
		}
	}
	return bestDepth, best
}

func (s *scanState) doIllegal(match *pattern.Match) {
	s.res.Illegal = true
	log.WithField(logfields.Language, s.lang.Name).WithField(logfields.Offset, match.Start).Debug("illegal lexeme")

	if s.stack.Len() == 1 {
		s.res.RootIllegal = true
		s.addPlain(s.stack.Top(), match.Start, match.End)
		if match.IsEmpty() {
			s.stall = stallLimit + 1
		}
		s.advance(match.End)
		return
	}

	f := s.stack.Pop()
	s.addPlain(s.stack.Top(), f.start, match.Start)
	s.checkLoop(f)
}

func (s *scanState) doEnd(match *pattern.Match) {
	f := s.stack.Top()
	switch {
	case f.mode.ReturnEnd:
		s.closeTop(match.Start)

	case f.mode.ExcludeEnd:
		s.closeTop(match.Start)
		s.addText(s.stack.Top(), match.Start, match.End)
		s.advance(match.End)

	default:
		s.addText(f, match.Start, match.End)
		s.advance(match.End)
		s.closeTop(match.End)
	}
}

func (s *scanState) doBegin(index int, match *pattern.Match) {
	parent := s.stack.Top()
	mode := s.lang.Modes[index]
	split := false
	if mode.SplitsBegin() {
		if m := mode.Begin.MatchAt(s.runes, match.Start); m != nil {
			match = m
			split = true
		}
	}

	f := &frame{mode: mode, start: match.Start, entry: -1}
	switch {
	case mode.ExcludeBegin:
		s.addText(parent, match.Start, match.End)
		f.start = match.End
		s.stack.Push(f)

	case split:
		s.stack.Push(f)
		s.addParts(f, match)

	default:
		s.stack.Push(f)
		s.addText(f, match.Start, match.End)
	}

	if match.IsEmpty() {
		f.entry = match.Start
		s.stall++
	}
	s.advance(match.End)
}

// closeTop closes the top frame at pos and attaches its span to the parent frame.
// Anonymous spans are replaced by their children, empty classified spans are dropped.
func (s *scanState) closeTop(pos int) {
	f := s.stack.Pop()
	parent := s.stack.Top()
	parent.relevance += f.relevance + f.mode.Relevance

	if f.mode.Scope == "" {
		for _, c := range f.spans {
			s.appendSpan(parent, c)
		}
		return
	}

	if pos <= f.start {
		return
	}

	span := &tree.Span{
		Scope:    f.mode.Scope,
		Start:    s.src.ByteOffset(f.start),
		End:      s.src.ByteOffset(pos),
		Children: f.spans,
	}
	if len(span.Children) == 1 {
		c := span.Children[0]
		if c.IsPlain() && c.IsLeaf() && c.Start == span.Start && c.End == span.End {
			span.Children = nil
		}
	}
	s.appendSpan(parent, span)
}
