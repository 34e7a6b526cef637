// Package compile turns grammar data into dispatch tables used by scanner.
//
// Compiled modes live in an arena (Language.Modes) and refer to each other by index,
// so recursive grammars (a mode containing itself, a string containing a substitution
// containing a string) need no special handling. Variants of a mode expand into
// consecutive arena entries. Compiled languages are immutable and safe for concurrent use.
package compile

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ava12/hilite/grammar"
	"github.com/ava12/hilite/internal/logging"
	"github.com/ava12/hilite/internal/logging/logfields"
	"github.com/ava12/hilite/internal/queue"
	"github.com/ava12/hilite/keywords"
	"github.com/ava12/hilite/pattern"
)

var log = logging.DefaultLogger.WithField(logfields.LogSubsys, "compile")

// RootIndex is the arena index of language root mode.
const RootIndex = 0

// Options affect grammar compilation.
type Options struct {
	// MatchTimeout is passed to every compiled pattern.
	MatchTimeout time.Duration
}

// TargetKind tells what a dispatch alternative stands for.
type TargetKind int

const (
	IllegalTarget TargetKind = iota
	EndTarget
	ChildTarget
)

// Target describes a dispatch alternative. Mode is the arena index of child mode for ChildTarget.
type Target struct {
	Kind TargetKind
	Mode int
}

// Mode is a compiled mode.
type Mode struct {
	Index int
	Scope string

	// Begin is nil for modes entered with zero-width match.
	Begin *pattern.Pattern

	// BeginScopes contains categories of begin sequence parts (empty for unscoped parts)
	// or is nil if begin lexeme is not split.
	BeginScopes []string

	// End is nil if the mode has no end pattern.
	End *pattern.Pattern

	// Keywords is nil if bare words are not classified.
	Keywords *keywords.Classifier

	Relevance int

	ExcludeBegin   bool
	ExcludeEnd     bool
	ReturnEnd      bool
	EndsWithParent bool

	// SelfTerminating modes close right after begin lexeme unless a child mode starts there.
	SelfTerminating bool

	Children []int

	// Dispatch finds the nearest of illegal, end, and child begin lexemes, Targets describe its alternatives.
	// Dispatch is nil if the mode has none of these.
	Dispatch *pattern.Alternation
	Targets  []Target

	beginExpr string
	def       *grammar.Mode
}

// SplitsBegin reports whether begin lexeme is emitted as scoped parts.
func (m *Mode) SplitsBegin() bool {
	return m.BeginScopes != nil
}

// Language is a compiled grammar.
type Language struct {
	Name              string
	Aliases           []string
	CaseInsensitive   bool
	DisableAutodetect bool

	// Modes is the mode arena, root mode has RootIndex.
	Modes []*Mode
}

// Root returns root mode.
func (l *Language) Root() *Mode {
	return l.Modes[RootIndex]
}

type compiler struct {
	g         *grammar.Grammar
	opts      pattern.Options
	timeout   time.Duration
	modes     []*Mode
	expanded  map[*grammar.Mode][]int
	pending   *queue.Queue[int]
	usedNames map[string]bool
}

// Compile compiles grammar. All patterns are compiled and all references are resolved here,
// returned errors are *hilite.Error carrying grammar name.
func Compile(g *grammar.Grammar, opts Options) (*Language, error) {
	if g == nil {
		return nil, emptyGrammarError("")
	}
	if len(g.Contains) == 0 && g.Keywords == nil {
		return nil, emptyGrammarError(g.Name)
	}

	c := &compiler{
		g:         g,
		opts:      pattern.Options{IgnoreCase: g.CaseInsensitive, MatchTimeout: opts.MatchTimeout},
		timeout:   opts.MatchTimeout,
		expanded:  make(map[*grammar.Mode][]int),
		pending:   queue.New[int](),
		usedNames: make(map[string]bool),
	}

	root := &Mode{Index: RootIndex, def: g.Root()}
	c.modes = append(c.modes, root)
	c.pending.Append(RootIndex)

	for {
		index, fetched := c.pending.First()
		if !fetched {
			break
		}

		e := c.compileMode(c.modes[index])
		if e != nil {
			return nil, e
		}
	}

	c.logUnused()
	log.WithField(logfields.Language, g.Name).WithField(logfields.Modes, len(c.modes)).Debug("grammar compiled")

	return &Language{
		Name:              g.Name,
		Aliases:           g.Aliases,
		CaseInsensitive:   g.CaseInsensitive,
		DisableAutodetect: g.DisableAutodetect,
		Modes:             c.modes,
	}, nil
}

func modeName(def *grammar.Mode, index int) string {
	if def.Scope != "" {
		return "mode " + strconv.Itoa(index) + " (" + def.Scope + ")"
	}
	return "mode " + strconv.Itoa(index)
}

// resolve follows repository references. $self is resolved by caller.
func (c *compiler) resolve(def *grammar.Mode, owner string) (*grammar.Mode, error) {
	for i := 0; def.IsRef(); i++ {
		if i > len(c.g.Repository) {
			return nil, refCycleError(c.g.Name, def.Ref)
		}

		name := def.Ref
		target := c.g.Repository[name]
		if name == grammar.SelfRef || target == nil {
			return nil, unresolvedRefError(c.g.Name, owner, name)
		}
		c.usedNames[name] = true
		def = target
	}
	return def, nil
}

// expand assigns arena indexes to the mode or to all its variants and queues them for compilation.
func (c *compiler) expand(def *grammar.Mode, owner string) ([]int, error) {
	def, e := c.resolve(def, owner)
	if e != nil {
		return nil, e
	}

	if indexes, has := c.expanded[def]; has {
		return indexes, nil
	}

	defs := []*grammar.Mode{def}
	if len(def.Variants) > 0 {
		defs = make([]*grammar.Mode, len(def.Variants))
		for i, v := range def.Variants {
			v, e = c.resolve(v, owner)
			if e != nil {
				return nil, e
			}
			defs[i] = def.Merge(v)
		}
	}

	indexes := make([]int, len(defs))
	for i, d := range defs {
		m := &Mode{Index: len(c.modes), def: d}
		e = c.compileBegin(m)
		if e != nil {
			return nil, e
		}

		indexes[i] = m.Index
		c.modes = append(c.modes, m)
		c.pending.Append(m.Index)
	}
	c.expanded[def] = indexes
	return indexes, nil
}

func (c *compiler) compilePattern(m *Mode, kind, expr string) (*pattern.Pattern, error) {
	p, e := pattern.Compile(expr, c.opts)
	if e != nil {
		return nil, modeError(c.g.Name, modeName(m.def, m.Index), kind, e)
	}
	return p, nil
}

func beginKeywordsExpr(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = pattern.Quote(w)
	}
	return `\b(?:` + strings.Join(quoted, "|") + `)(?!\.)(?=\b|\s)`
}

// compileBegin compiles begin pattern. Begin expression used for dispatch has no named groups,
// begin sequence parts are named groups p1, p2, ... in the pattern itself.
func (c *compiler) compileBegin(m *Mode) error {
	def := m.def
	parts := def.BeginSeq
	switch {
	case def.BeginKeywords != "":
		parts = []string{beginKeywordsExpr(strings.Fields(def.BeginKeywords))}
	case len(parts) == 0 && def.Begin != "":
		parts = []string{def.Begin}
	}

	if len(parts) == 0 {
		if len(def.BeginScope) > 0 {
			return c.beginScopeError(m, 0)
		}
		return nil
	}

	plain := make([]string, len(parts))
	for i, p := range parts {
		plain[i] = "(?:" + p + ")"
	}
	m.beginExpr = strings.Join(plain, "")
	if len(parts) == 1 {
		m.beginExpr = parts[0]
	}

	if len(def.BeginScope) == 0 {
		p, e := c.compilePattern(m, "begin", m.beginExpr)
		m.Begin = p
		return e
	}

	m.BeginScopes = make([]string, len(parts))
	for index, scope := range def.BeginScope {
		if index < 1 || index > len(parts) {
			return c.beginScopeError(m, index)
		}
		m.BeginScopes[index-1] = scope
	}

	named := make([]string, len(parts))
	for i, p := range parts {
		named[i] = "(?<" + PartGroup(i) + ">" + p + ")"
	}
	p, e := c.compilePattern(m, "begin", strings.Join(named, ""))
	m.Begin = p
	return e
}

func (c *compiler) beginScopeError(m *Mode, index int) error {
	parts := len(m.def.BeginSeq)
	if parts == 0 && (m.def.Begin != "" || m.def.BeginKeywords != "") {
		parts = 1
	}
	return beginScopeError(c.g.Name, modeName(m.def, m.Index), index, parts)
}

// PartGroup returns the name of capturing group for i-th (0-based) begin sequence part.
func PartGroup(i int) string {
	return "p" + strconv.Itoa(i+1)
}

func (c *compiler) compileKeywords(m *Mode) error {
	def := m.def
	spec := def.Keywords.Spec()
	tokenExpr := ""
	if def.Keywords != nil {
		tokenExpr = def.Keywords.Pattern
	} else if def.BeginKeywords != "" {
		spec = keywords.Spec{keywords.Keyword: {def.BeginKeywords}}
	} else {
		return nil
	}

	cls, e := keywords.New(spec, keywords.Options{
		Pattern:         tokenExpr,
		CaseInsensitive: c.g.CaseInsensitive,
		MatchTimeout:    c.timeout,
	})
	if e != nil {
		return modeError(c.g.Name, modeName(def, m.Index), "keywords", e)
	}
	m.Keywords = cls
	return nil
}

func (c *compiler) compileMode(m *Mode) error {
	def := m.def
	name := modeName(def, m.Index)
	m.Scope = def.Scope
	m.Relevance = def.Weight()
	m.ExcludeBegin = def.ExcludeBegin
	m.ExcludeEnd = def.ExcludeEnd
	m.ReturnEnd = def.ReturnEnd
	m.EndsWithParent = def.EndsWithParent
	m.SelfTerminating = (m.Index != RootIndex && def.End == "" && !def.EndsWithParent)

	e := c.compileKeywords(m)
	if e != nil {
		return e
	}

	var alts []string
	if def.Illegal != "" {
		_, e = c.compilePattern(m, "illegal", def.Illegal)
		if e != nil {
			return e
		}
		alts = append(alts, def.Illegal)
		m.Targets = append(m.Targets, Target{IllegalTarget, -1})
	}

	if def.End != "" && m.Index != RootIndex {
		m.End, e = c.compilePattern(m, "end", def.End)
		if e != nil {
			return e
		}
		alts = append(alts, def.End)
		m.Targets = append(m.Targets, Target{EndTarget, -1})
	}

	for _, child := range def.Contains {
		if child == nil {
			continue
		}

		var indexes []int
		if child.Ref == grammar.SelfRef {
			indexes = []int{m.Index}
		} else {
			indexes, e = c.expand(child, name)
			if e != nil {
				return e
			}
		}

		for _, index := range indexes {
			m.Children = append(m.Children, index)
			alts = append(alts, c.modes[index].beginExpr)
			m.Targets = append(m.Targets, Target{ChildTarget, index})
		}
	}

	m.Dispatch, e = pattern.NewAlternation(alts, c.opts)
	if e != nil {
		return modeError(c.g.Name, name, "dispatch", e)
	}

	return nil
}

func (c *compiler) logUnused() {
	var names []string
	for name := range c.g.Repository {
		if !c.usedNames[name] {
			names = append(names, name)
		}
	}
	if len(names) > 0 {
		sort.Strings(names)
		log.WithField(logfields.Language, c.g.Name).Warnf("unused repository modes: %s", strings.Join(names, ", "))
	}
}
