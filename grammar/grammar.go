// Package grammar defines data types describing a language as a tree of modes.
//
// A grammar is plain data: it is built as Go literals or decoded from YAML by langdef,
// compiled once by compile package and never changed afterwards.
package grammar

import (
	"strconv"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/ava12/hilite/keywords"
)

// SelfRef is the reference to the enclosing mode.
const SelfRef = "$self"

// DefaultRelevance is used for modes having no explicit relevance.
const DefaultRelevance = 1

type Keywords struct {
	// Pattern defines token pattern, pattern.IdentRe is used if empty.
	Pattern string              `yaml:"pattern,omitempty"`
	Keyword []string            `yaml:"keyword,omitempty"`
	BuiltIn []string            `yaml:"built_in,omitempty"`
	Literal []string            `yaml:"literal,omitempty"`
	Other   map[string][]string `yaml:"other,omitempty"`
}

// Spec converts word lists to classifier spec.
func (k *Keywords) Spec() keywords.Spec {
	res := keywords.Spec{}
	if k == nil {
		return res
	}

	add := func(category string, words []string) {
		if len(words) > 0 {
			res[category] = append(res[category], words...)
		}
	}
	add(keywords.Keyword, k.Keyword)
	add(keywords.BuiltIn, k.BuiltIn)
	add(keywords.Literal, k.Literal)
	for category, words := range k.Other {
		add(category, words)
	}
	return res
}

// Mode describes a lexical context. A mode having non-empty Ref is a reference
// to another mode and all its other fields are ignored.
type Mode struct {
	// Ref is either SelfRef or a name from Grammar.Repository.
	Ref string `yaml:"ref,omitempty"`

	// Scope is the category of produced span, empty for anonymous modes.
	Scope string `yaml:"scope,omitempty"`

	// Begin is the entry pattern. A mode having no Begin and no BeginSeq is entered
	// immediately with zero-width match.
	Begin string `yaml:"begin,omitempty"`

	// BeginSeq is a sequence of patterns matched one after another as a single entry pattern,
	// BeginScope assigns categories to its parts by 1-based index.
	BeginSeq   []string `yaml:"begin_seq,omitempty"`
	BeginScope Scopes   `yaml:"begin_scope,omitempty"`

	// BeginKeywords is a space-separated list of words, the mode begins at any of these words.
	BeginKeywords string `yaml:"begin_keywords,omitempty"`

	// End is the exit pattern. A mode having no End is closed right after its begin lexeme
	// unless EndsWithParent is set.
	End string `yaml:"end,omitempty"`

	// Illegal aborts the mode.
	Illegal string `yaml:"illegal,omitempty"`

	Contains []*Mode `yaml:"contains,omitempty"`

	// Variants are alternative forms of the mode, each one overrides non-zero fields of the mode.
	Variants []*Mode `yaml:"variants,omitempty"`

	// Keywords classifies bare words inside the mode, words are left plain if nil.
	// Classifiers are not inherited by contained modes.
	Keywords *Keywords `yaml:"keywords,omitempty"`

	// Relevance is nil for DefaultRelevance.
	Relevance *int `yaml:"relevance,omitempty"`

	ExcludeBegin   bool `yaml:"exclude_begin,omitempty"`
	ExcludeEnd     bool `yaml:"exclude_end,omitempty"`
	ReturnEnd      bool `yaml:"return_end,omitempty"`
	EndsWithParent bool `yaml:"ends_with_parent,omitempty"`
}

// Scopes maps 1-based begin sequence part indexes to categories.
type Scopes map[int]string

// UnmarshalYAML accepts both numeric and string keys, JSON objects have string keys only.
func (s *Scopes) UnmarshalYAML(value *yaml.Node) error {
	var raw map[string]string
	if e := value.Decode(&raw); e != nil {
		return e
	}

	res := make(Scopes, len(raw))
	for k, scope := range raw {
		index, e := strconv.Atoi(k)
		if e != nil {
			return errors.Errorf("line %d: begin scope index %q is not a number", value.Line, k)
		}
		res[index] = scope
	}
	*s = res
	return nil
}

// Self returns a reference to the enclosing mode.
func Self() *Mode {
	return &Mode{Ref: SelfRef}
}

// Ref returns a reference to named repository mode.
func Ref(name string) *Mode {
	return &Mode{Ref: name}
}

// Rel returns a relevance value suitable for Mode.Relevance.
func Rel(n int) *int {
	return &n
}

// IsRef reports whether the mode is a reference.
func (m *Mode) IsRef() bool {
	return m.Ref != ""
}

// Weight returns mode relevance.
func (m *Mode) Weight() int {
	if m.Relevance == nil {
		return DefaultRelevance
	}
	return *m.Relevance
}

// Merge returns a copy of m overridden by non-zero fields of variant. Variants of the result are cleared.
func (m *Mode) Merge(variant *Mode) *Mode {
	res := *m
	res.Variants = nil

	if variant.Scope != "" {
		res.Scope = variant.Scope
	}
	if variant.Begin != "" || len(variant.BeginSeq) > 0 {
		res.Begin = variant.Begin
		res.BeginSeq = variant.BeginSeq
	}
	if variant.BeginScope != nil {
		res.BeginScope = variant.BeginScope
	}
	if variant.BeginKeywords != "" {
		res.BeginKeywords = variant.BeginKeywords
	}
	if variant.End != "" {
		res.End = variant.End
	}
	if variant.Illegal != "" {
		res.Illegal = variant.Illegal
	}
	if variant.Contains != nil {
		res.Contains = variant.Contains
	}
	if variant.Keywords != nil {
		res.Keywords = variant.Keywords
	}
	if variant.Relevance != nil {
		res.Relevance = variant.Relevance
	}
	res.ExcludeBegin = res.ExcludeBegin || variant.ExcludeBegin
	res.ExcludeEnd = res.ExcludeEnd || variant.ExcludeEnd
	res.ReturnEnd = res.ReturnEnd || variant.ReturnEnd
	res.EndsWithParent = res.EndsWithParent || variant.EndsWithParent
	return &res
}

// Grammar is the root mode of a language.
type Grammar struct {
	Name    string   `yaml:"name"`
	Aliases []string `yaml:"aliases,omitempty"`

	// CaseInsensitive applies to all patterns and keywords of the grammar.
	CaseInsensitive bool `yaml:"case_insensitive,omitempty"`

	// DisableAutodetect excludes the grammar from language detection.
	DisableAutodetect bool `yaml:"disable_autodetect,omitempty"`

	Keywords *Keywords `yaml:"keywords,omitempty"`
	Illegal  string    `yaml:"illegal,omitempty"`
	Contains []*Mode   `yaml:"contains,omitempty"`

	// Repository contains named modes available for references.
	Repository map[string]*Mode `yaml:"repository,omitempty"`
}

// Root returns the implicit root mode.
func (g *Grammar) Root() *Mode {
	return &Mode{
		Keywords: g.Keywords,
		Illegal:  g.Illegal,
		Contains: g.Contains,
	}
}
