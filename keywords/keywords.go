// Package keywords implements the classifier mapping identifier tokens to categories.
package keywords

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ava12/hilite/pattern"
)

// Categories known to grammars, other category names are allowed as well.
const (
	Keyword = "keyword"
	BuiltIn = "built_in"
	Literal = "literal"
)

// DefaultRelevance is the relevance of a word having no weight suffix.
const DefaultRelevance = 1

var commonWords = map[string]bool{
	"of": true, "and": true, "for": true, "in": true, "not": true, "or": true,
	"if": true, "then": true, "parent": true, "list": true, "value": true,
}

// Spec maps category name to word entries. Each entry contains one or more space-separated words,
// a word may be followed by "|N" suffix setting its relevance to N.
type Spec map[string][]string

// Options affect classifier construction.
type Options struct {
	// Pattern defines what counts as a token, pattern.IdentRe is used if empty.
	Pattern string

	// CaseInsensitive makes lookups fold tokens to lower case, stored words are folded as well.
	CaseInsensitive bool

	// MatchTimeout is passed to token pattern.
	MatchTimeout time.Duration
}

// Entry is the classification of a single word.
type Entry struct {
	Category  string
	Relevance int
}

// Classifier is immutable and safe for concurrent use.
type Classifier struct {
	token *pattern.Pattern
	words map[string]Entry
	fold  bool
}

// New creates a classifier. A word listed in several categories keeps the first one;
// keyword, built_in, and literal categories go first, the rest in alphabetical order.
func New(spec Spec, opts Options) (*Classifier, error) {
	expr := opts.Pattern
	if expr == "" {
		expr = pattern.IdentRe
	}
	token, e := pattern.Compile(expr, pattern.Options{
		IgnoreCase:   opts.CaseInsensitive,
		MatchTimeout: opts.MatchTimeout,
	})
	if e != nil {
		return nil, e
	}

	c := &Classifier{
		token: token,
		words: make(map[string]Entry),
		fold:  opts.CaseInsensitive,
	}
	for _, category := range categories(spec) {
		for _, entry := range spec[category] {
			e = c.add(category, entry)
			if e != nil {
				return nil, e
			}
		}
	}

	return c, nil
}

func categories(spec Spec) []string {
	res := make([]string, 0, len(spec))
	for _, name := range []string{Keyword, BuiltIn, Literal} {
		if _, has := spec[name]; has {
			res = append(res, name)
		}
	}
	start := len(res)
	for name := range spec {
		if name != Keyword && name != BuiltIn && name != Literal {
			res = append(res, name)
		}
	}
	sort.Strings(res[start:])
	return res
}

func (c *Classifier) add(category, entry string) error {
	for _, field := range strings.Fields(entry) {
		word, rel, e := ParseWord(field)
		if e != nil {
			return e
		}

		if c.fold {
			word = strings.ToLower(word)
		}
		if _, has := c.words[word]; !has {
			c.words[word] = Entry{category, rel}
		}
	}
	return nil
}

// ParseWord splits a single "word|N" entry. Common English words get zero relevance by default.
func ParseWord(field string) (word string, relevance int, e error) {
	word, weight, hasWeight := strings.Cut(field, "|")
	if word == "" {
		return "", 0, emptyWordError(field)
	}

	if hasWeight {
		relevance, e = strconv.Atoi(weight)
		if e != nil || relevance < 0 {
			return "", 0, wrongWeightError(field)
		}
		return word, relevance, nil
	}

	if commonWords[strings.ToLower(word)] {
		return word, 0, nil
	}
	return word, DefaultRelevance, nil
}

// Token returns compiled token pattern.
func (c *Classifier) Token() *pattern.Pattern {
	return c.token
}

// Len returns the number of classified words.
func (c *Classifier) Len() int {
	return len(c.words)
}

// CaseInsensitive reports whether lookups fold case.
func (c *Classifier) CaseInsensitive() bool {
	return c.fold
}

// Lookup returns word classification.
func (c *Classifier) Lookup(word []byte) (Entry, bool) {
	if c.fold {
		return c.LookupString(string(word))
	}
	res, has := c.words[string(word)]
	return res, has
}

// LookupString is the same as Lookup.
func (c *Classifier) LookupString(word string) (Entry, bool) {
	if c.fold {
		word = strings.ToLower(word)
	}
	res, has := c.words[word]
	return res, has
}
