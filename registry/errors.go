package registry

import (
	"github.com/ava12/hilite"
)

const (
	// DuplicateNameError indicates a language name or alias already taken by another language.
	DuplicateNameError = hilite.RegistryErrors + iota

	// UnknownLanguageError indicates a name or alias no language is registered under.
	UnknownLanguageError

	// EmptyNameError indicates registration with neither name argument nor grammar name.
	EmptyNameError
)

func duplicateNameError(name, owner string) *hilite.Error {
	return hilite.FormatError(DuplicateNameError, "name %q is already used by %s language", name, owner)
}

func unknownLanguageError(name string) *hilite.Error {
	return hilite.FormatError(UnknownLanguageError, "unknown language %q", name)
}

func emptyNameError() *hilite.Error {
	return hilite.FormatError(EmptyNameError, "language name is empty")
}
