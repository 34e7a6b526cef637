package compile

import (
	"fmt"

	"github.com/ava12/hilite"
	"github.com/ava12/hilite/pattern"
)

// Error codes used by compile, pattern errors keep pattern.WrongPatternError code:
const (
	// UnresolvedRefError indicates a reference to a mode missing from grammar repository.
	UnresolvedRefError = hilite.GrammarErrors + 20 + iota

	// BeginScopeError indicates begin scope index outside of begin sequence.
	BeginScopeError

	// EmptyGrammarError indicates a grammar having neither modes nor keywords.
	EmptyGrammarError

	// RefCycleError indicates repository entries referring to each other with no definition.
	RefCycleError
)

// modeError wraps pattern and keyword errors keeping their codes.
func modeError(g, mode, kind string, cause error) *hilite.Error {
	code := hilite.ErrorCode(cause)
	if code == 0 {
		code = pattern.WrongPatternError
	}
	return hilite.WrapError(cause, code, g, "%s: %s", mode, kind)
}

func unresolvedRefError(g, mode, ref string) *hilite.Error {
	return hilite.NewError(UnresolvedRefError, mode+": unresolved reference "+ref, g, 0, 0)
}

func beginScopeError(g, mode string, index, parts int) *hilite.Error {
	msg := fmt.Sprintf("%s: begin scope index %d out of range 1..%d", mode, index, parts)
	return hilite.NewError(BeginScopeError, msg, g, 0, 0)
}

func emptyGrammarError(g string) *hilite.Error {
	return hilite.NewError(EmptyGrammarError, "empty grammar", g, 0, 0)
}

func refCycleError(g, ref string) *hilite.Error {
	return hilite.NewError(RefCycleError, "reference cycle at "+ref, g, 0, 0)
}
