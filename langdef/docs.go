/*
Package langdef loads grammar.Grammar from YAML or JSON descriptions.

Description is a mapping with the fields of grammar.Grammar, nested modes use the fields
of grammar.Mode. Field names are snake_case. Unknown fields are errors. Example:

	name: ini
	aliases: [toml]
	case_insensitive: true
	keywords:
	  literal: [true false|2 on off yes no]
	contains:
	  - ref: comment
	  - scope: section
	    begin: '^\s*\['
	    end: '\]'
	  - scope: attr
	    begin_seq: ['^\s*', '[\w.-]+', '\s*=']
	    begin_scope: {2: attr}
	  - scope: string
	    variants:
	      - {begin: "'", end: "'"}
	      - {begin: '"', end: '"'}
	repository:
	  comment:
	    scope: comment
	    begin: '[;#]'
	    end: $

Keyword entries are space-separated words, a word may carry relevance weight after
vertical bar. Mode reference "$self" refers to the enclosing mode, other references refer
to repository entries. Relevance is omitted for default value.

JSON descriptions use the same fields. begin_scope keys may be strings.
*/
package langdef
