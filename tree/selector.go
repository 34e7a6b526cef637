package tree

import (
	"strings"
)

type NodeFilter func(s *Span) bool
type NodeSelector func(s *Span) []*Span

// Selector is a chain of node selectors, each one is applied to results of the previous one.
type Selector struct {
	selectors []NodeSelector
}

func NewSelector() *Selector {
	return &Selector{}
}

// Apply returns distinct selected spans in order of appearance.
func (s *Selector) Apply(input ...*Span) []*Span {
	res := make([]*Span, 0)
	index := make(map[*Span]bool)

	for i, n := range input {
		if n == nil {
			continue
		}

		ns := input[i : i+1]
		if len(s.selectors) > 0 {
			ns = selectNodes(ns, s.selectors)
		}

		for _, tn := range ns {
			if !index[tn] {
				index[tn] = true
				res = append(res, tn)
			}
		}
	}

	return res
}

func selectNodes(ns []*Span, nss []NodeSelector) []*Span {
	res := make([]*Span, 0)
	sel := nss[0]
	nss = nss[1:]
	for _, n := range ns {
		if len(nss) > 0 {
			res = append(res, selectNodes(sel(n), nss)...)
		} else {
			res = append(res, sel(n)...)
		}
	}
	return res
}

func (s *Selector) Use(ns NodeSelector) *Selector {
	if ns != nil {
		s.selectors = append(s.selectors, ns)
	}
	return s
}

func (s *Selector) Filter(nf NodeFilter) *Selector {
	return s.Use(func(n *Span) []*Span {
		if nf(n) {
			return []*Span{n}
		}
		return nil
	})
}

// Search selects descendants (and the span itself) matching nf.
// Descendants of matching spans are searched only if deepSearch is set.
func (s *Selector) Search(nf NodeFilter, deepSearch bool) *Selector {
	return s.Use(func(n *Span) []*Span {
		res := make([]*Span, 0)
		visitNode(n, func(nn *Span) (bool, bool) {
			if nf(nn) {
				res = append(res, nn)
				return deepSearch, true
			}
			return true, true
		}, false)
		return res
	})
}

// Children selects direct children.
func (s *Selector) Children() *Selector {
	return s.Use(func(n *Span) []*Span {
		return n.Children
	})
}

func IsNot(f NodeFilter) NodeFilter {
	return func(s *Span) bool {
		return !f(s)
	}
}

func IsAny(fs ...NodeFilter) NodeFilter {
	return func(s *Span) bool {
		for _, f := range fs {
			if f(s) {
				return true
			}
		}
		return false
	}
}

func IsAll(fs ...NodeFilter) NodeFilter {
	return func(s *Span) bool {
		for _, f := range fs {
			if !f(s) {
				return false
			}
		}
		return true
	}
}

// IsA matches spans having one of given scopes.
func IsA(scopes ...string) NodeFilter {
	return func(s *Span) bool {
		for _, scope := range scopes {
			if s.Scope == scope {
				return true
			}
		}
		return false
	}
}

// IsIn matches spans whose scope is prefix or one of its dot-separated sub-scopes,
// e.g. IsIn("title") matches "title" and "title.function".
func IsIn(prefix string) NodeFilter {
	return func(s *Span) bool {
		return s.Scope == prefix || strings.HasPrefix(s.Scope, prefix+".")
	}
}

// IsClassified matches spans having non-empty scope.
func IsClassified(s *Span) bool {
	return s.Scope != ""
}

// IsLeaf matches spans having no children.
func IsLeaf(s *Span) bool {
	return s.IsLeaf()
}

// IsText matches leaves having given text.
func IsText(src []byte, texts ...string) NodeFilter {
	return func(s *Span) bool {
		if !s.IsLeaf() {
			return false
		}

		t := string(s.Text(src))
		for _, text := range texts {
			if t == text {
				return true
			}
		}
		return false
	}
}
