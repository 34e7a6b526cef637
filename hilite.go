/*
Package hilite is a declarative, mode-based syntax highlighting engine.

Consists of subpackages:
  - grammar: data types describing a language as a tree of modes (lexical contexts);
  - pattern: regular expressions with lookaround and Unicode identifier classes;
  - keywords: keyword classifier mapping identifier tokens to categories;
  - compile: resolves variants and references and builds mode dispatch tables;
  - scanner: scanning engine producing a classified span tree;
  - tree: classified span tree and functions to traverse and check it;
  - registry: language registration, lookup by name or alias, auto-detection;
  - langdef: loads grammar descriptions written as YAML or JSON data;
  - languages: built-in grammars;
  - cmd/hlscan: console utility scanning files and dumping span trees.

Typical usage is:

1. Describe a language as grammar.Grammar, either as Go data or as YAML loaded with langdef.

2. Register it in a registry.Registry. Registration compiles all patterns,
broken grammars are rejected here and never at scan time.

3. Highlight text with a pinned language or let the registry detect the language.
The result is a tree of classified spans (byte ranges of the input),
rendering it to markup is up to the caller.
*/
package hilite

import (
	"fmt"
)

// Error classes used by subpackages, each class contains up to 99 error codes:
const (
	GrammarErrors  = 1   // used by pattern, keywords, and compile
	RegistryErrors = 101 // used by registry
	LangDefErrors  = 201 // used by langdef
)

// Error is the error type used by hilite subpackages.
type Error struct {
	// Code contains non-zero error code.
	Code int

	// Message contains non-empty error message including source name and position information if provided.
	Message string

	// SourceName contains grammar or file name that caused this error or empty string.
	SourceName string

	// Line contains line number in source file or 0.
	Line int

	// Col contains column number in source file or 0.
	Col int

	// Cause contains underlying error (e.g. pattern syntax error) or nil.
	Cause error
}

// SourcePos is used to retrieve source name and position information when constructing an error.
type SourcePos interface {
	// SourceName returns source file name or empty string.
	SourceName() string
	// Line returns line number or 0.
	Line() int
	// Col returns column number or 0.
	Col() int
}

// NewError creates new Error structure.
// name, line, and col will be added to error message if provided (non-zero).
func NewError(code int, msg, name string, line, col int) *Error {
	if name != "" && line != 0 && col != 0 {
		msg += fmt.Sprintf(" in %s at line %d col %d", name, line, col)
	} else if name != "" {
		msg += " in " + name
	}
	return &Error{Code: code, Message: msg, SourceName: name, Line: line, Col: col}
}

// Error simply returns Error.Message.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// FormatError creates Error structure with no source and position information.
// params will be added to error message using fmt.Sprintf function.
func FormatError(code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, "", 0, 0)
}

// FormatErrorPos creates Error structure with source and position information.
// pos must not be nil.
// params will be added to error message using fmt.Sprintf function.
func FormatErrorPos(pos SourcePos, code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, pos.SourceName(), pos.Line(), pos.Col())
}

// WrapError creates Error structure for given source name keeping cause as the underlying error.
// Cause message is appended to msg.
func WrapError(cause error, code int, name, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	if cause != nil {
		msg += ": " + cause.Error()
	}
	e := NewError(code, msg, name, 0, 0)
	e.Cause = cause
	return e
}

// ErrorCode returns the code of the first Error found in the chain of e or 0.
func ErrorCode(e error) int {
	for e != nil {
		if he, is := e.(*Error); is {
			return he.Code
		}

		u, can := e.(interface{ Unwrap() error })
		if !can {
			break
		}
		e = u.Unwrap()
	}
	return 0
}
