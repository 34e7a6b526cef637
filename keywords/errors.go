package keywords

import (
	"github.com/ava12/hilite"
)

// Error codes used by keywords:
const (
	// WrongWeightError indicates a word having malformed relevance suffix, e.g. "foo|x".
	WrongWeightError = hilite.GrammarErrors + 10 + iota

	// EmptyWordError indicates a word entry having no word before relevance suffix, e.g. "|10".
	EmptyWordError
)

func wrongWeightError(entry string) *hilite.Error {
	return hilite.FormatError(WrongWeightError, "wrong keyword weight in %q", entry)
}

func emptyWordError(entry string) *hilite.Error {
	return hilite.FormatError(EmptyWordError, "empty keyword in %q", entry)
}
