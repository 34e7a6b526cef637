// Package languages contains built-in grammars.
package languages

import (
	_ "embed"
	"sync"

	"github.com/ava12/hilite/grammar"
	"github.com/ava12/hilite/langdef"
	"github.com/ava12/hilite/registry"
)

//go:embed pgsql.yaml
var pgsqlData []byte

// PgSQL returns the grammar of PostgreSQL dialect of SQL.
func PgSQL() (*grammar.Grammar, error) {
	return langdef.ParseYAML("pgsql.yaml", pgsqlData)
}

// Register adds built-in languages to r.
func Register(r *registry.Registry) error {
	e := r.Register("", nil, Python())
	if e != nil {
		return e
	}

	g, e := PgSQL()
	if e != nil {
		return e
	}
	return r.Register("", nil, g)
}

var (
	defaultRegistry *registry.Registry
	defaultOnce     sync.Once
)

// Default returns the registry holding built-in languages. It is created on first call.
func Default() *registry.Registry {
	defaultOnce.Do(func() {
		r := registry.New()
		if e := Register(r); e != nil {
			panic(e)
		}
		defaultRegistry = r
	})
	return defaultRegistry
}
