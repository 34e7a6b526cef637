package pattern

import (
	"github.com/ava12/hilite"
)

// Error codes used by pattern:
const (
	// WrongPatternError indicates that a regular expression cannot be compiled.
	// Error message contains the expression and the compiler message.
	WrongPatternError = hilite.GrammarErrors + iota
)

func wrongPatternError(expr string, cause error) *hilite.Error {
	return hilite.WrapError(cause, WrongPatternError, "", "wrong pattern %q", expr)
}
