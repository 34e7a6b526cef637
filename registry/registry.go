// Package registry keeps compiled languages and selects one for a text.
//
// Registration compiles the grammar and is guarded by a write lock,
// everything else only reads the registry and may run concurrently.
package registry

import (
	"context"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ava12/hilite"
	"github.com/ava12/hilite/compile"
	"github.com/ava12/hilite/grammar"
	"github.com/ava12/hilite/internal/ints"
	"github.com/ava12/hilite/internal/logging"
	"github.com/ava12/hilite/internal/logging/logfields"
	"github.com/ava12/hilite/scanner"
	"github.com/ava12/hilite/source"
	"github.com/ava12/hilite/tree"
)

var log = logging.DefaultLogger.WithField(logfields.LogSubsys, "registry")

// Options apply to every language of a registry.
type Options struct {
	// MatchTimeout limits a single regular expression match, 0 means no limit.
	MatchTimeout time.Duration

	// MaxSteps limits scanning, see scanner.MaxSteps.
	MaxSteps int
}

type Option func(*Options)

func MatchTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.MatchTimeout = d
	}
}

func MaxSteps(n int) Option {
	return func(o *Options) {
		o.MaxSteps = n
	}
}

// Registry is an append-only set of compiled languages addressed by case-insensitive names and aliases.
type Registry struct {
	opts  Options
	lock  sync.RWMutex
	langs []*compile.Language
	names map[string]int
}

func New(opts ...Option) *Registry {
	r := &Registry{names: make(map[string]int)}
	for _, opt := range opts {
		opt(&r.opts)
	}
	return r
}

func key(name string) string {
	return strings.ToLower(name)
}

// Register compiles g and registers it under name and aliases.
// Empty name means g.Name, aliases are added to g.Aliases.
// Compilation errors are returned as is, name collisions return DuplicateNameError,
// nothing is registered in both cases.
func (r *Registry) Register(name string, aliases []string, g *grammar.Grammar) error {
	if g == nil {
		return hilite.NewError(compile.EmptyGrammarError, "empty grammar", name, 0, 0)
	}
	if name == "" {
		name = g.Name
	}
	if name == "" {
		return emptyNameError()
	}

	gc := *g
	gc.Name = name
	gc.Aliases = mergeAliases(name, g.Aliases, aliases)

	lang, e := compile.Compile(&gc, compile.Options{MatchTimeout: r.opts.MatchTimeout})
	if e != nil {
		return e
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	for _, n := range append([]string{name}, gc.Aliases...) {
		if index, has := r.names[key(n)]; has {
			return duplicateNameError(n, r.langs[index].Name)
		}
	}

	index := len(r.langs)
	r.langs = append(r.langs, lang)
	r.names[key(name)] = index
	for _, alias := range gc.Aliases {
		r.names[key(alias)] = index
	}

	log.WithField(logfields.Language, name).WithField(logfields.Aliases, gc.Aliases).Debug("language registered")
	return nil
}

// mergeAliases drops duplicates and aliases equal to name, comparing case-insensitively.
func mergeAliases(name string, lists ...[]string) []string {
	seen := map[string]bool{key(name): true}
	var res []string
	for _, list := range lists {
		for _, alias := range list {
			k := key(alias)
			if alias == "" || seen[k] {
				continue
			}
			seen[k] = true
			res = append(res, alias)
		}
	}
	return res
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(name string, aliases []string, g *grammar.Grammar) {
	if e := r.Register(name, aliases, g); e != nil {
		panic(e)
	}
}

// Language returns compiled language registered under name or alias.
func (r *Registry) Language(name string) (*compile.Language, bool) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	index, has := r.names[key(name)]
	if !has {
		return nil, false
	}
	return r.langs[index], true
}

// Names returns names of registered languages in registration order.
func (r *Registry) Names() []string {
	r.lock.RLock()
	defer r.lock.RUnlock()

	res := make([]string, len(r.langs))
	for i, l := range r.langs {
		res[i] = l.Name
	}
	return res
}

// Languages returns registered languages in registration order.
func (r *Registry) Languages() []*compile.Language {
	r.lock.RLock()
	defer r.lock.RUnlock()

	return append([]*compile.Language(nil), r.langs...)
}

func (r *Registry) scanOptions() []scanner.Option {
	if r.opts.MaxSteps > 0 {
		return []scanner.Option{scanner.MaxSteps(r.opts.MaxSteps)}
	}
	return nil
}

// Scan scans src with the language registered under name or alias.
func (r *Registry) Scan(name string, src *source.Source) (*scanner.Result, error) {
	lang, found := r.Language(name)
	if !found {
		return nil, unknownLanguageError(name)
	}
	return scanner.Scan(lang, src, r.scanOptions()...), nil
}

// Highlight scans text with the language registered under name or alias.
func (r *Registry) Highlight(name, text string) (*scanner.Result, error) {
	return r.Scan(name, source.NewString("", text))
}

// Detection is the outcome of language detection.
type Detection struct {
	// Best is the result of the highest scoring language.
	// If no language could be tried it is a plain text result with empty Language.
	Best *scanner.Result

	// SecondBest is the runner-up result or nil.
	SecondBest *scanner.Result

	// Results contains results for all tried languages, best first.
	Results []*scanner.Result
}

// Detect scans text with every language allowing auto-detection, or only with languages
// listed in subset, and picks the one with the highest score.
// Languages with equal scores are ordered by registration.
// Scans run in parallel, the only error is context cancellation or an unknown subset name.
func (r *Registry) Detect(ctx context.Context, text string, subset ...string) (*Detection, error) {
	langs, e := r.candidates(subset)
	if e != nil {
		return nil, e
	}

	src := source.NewString("", text)
	if len(langs) == 0 {
		return &Detection{Best: plainResult(src)}, nil
	}

	results := make([]*scanner.Result, len(langs))
	opts := r.scanOptions()
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, lang := range langs {
		i, lang := i, lang
		g.Go(func() error {
			if e := ctx.Err(); e != nil {
				return e
			}
			results[i] = scanner.Scan(lang, src, opts...)
			return nil
		})
	}
	if e = g.Wait(); e != nil {
		return nil, e
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score() > results[j].Score()
	})

	for _, res := range results {
		log.WithField(logfields.Language, res.Language).WithField(logfields.Relevance, res.Score()).Debug("detection score")
	}

	d := &Detection{Best: results[0], Results: results}
	if len(results) > 1 {
		d.SecondBest = results[1]
	}
	return d, nil
}

// candidates returns languages in registration order.
func (r *Registry) candidates(subset []string) ([]*compile.Language, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	indexes := ints.NewSet()
	if len(subset) == 0 {
		for i := range r.langs {
			indexes.Add(i)
		}
	} else {
		for _, name := range subset {
			index, has := r.names[key(name)]
			if !has {
				return nil, unknownLanguageError(name)
			}
			indexes.Add(index)
		}
	}

	var res []*compile.Language
	for _, index := range indexes.ToSlice() {
		if !r.langs[index].DisableAutodetect {
			res = append(res, r.langs[index])
		}
	}
	return res, nil
}

func plainResult(src *source.Source) *scanner.Result {
	root := &tree.Span{End: src.Len()}
	if src.Len() > 0 {
		root.Children = []*tree.Span{{End: src.Len()}}
	}
	return &scanner.Result{Root: root}
}
