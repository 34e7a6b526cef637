package langdef

import (
	"github.com/ava12/hilite"
)

const (
	// DecodeError indicates malformed YAML or JSON or a value of wrong type.
	DecodeError = hilite.LangDefErrors + iota

	// MissingNameError indicates a grammar with no name.
	MissingNameError

	// EmptyModeError indicates a null mode in contains, variants or repository.
	EmptyModeError

	// UnknownFormatError indicates a file extension other than .yaml, .yml, or .json.
	UnknownFormatError

	// ReadError indicates a file that cannot be read.
	ReadError
)

func decodeError(name string, cause error) *hilite.Error {
	return hilite.WrapError(cause, DecodeError, name, "cannot decode grammar")
}

func missingNameError(name string) *hilite.Error {
	return hilite.NewError(MissingNameError, "grammar name is missing", name, 0, 0)
}

func emptyModeError(name, path string) *hilite.Error {
	return hilite.NewError(EmptyModeError, "empty mode at "+path, name, 0, 0)
}

func unknownFormatError(name string) *hilite.Error {
	return hilite.NewError(UnknownFormatError, "unknown grammar file format", name, 0, 0)
}

func readError(name string, cause error) *hilite.Error {
	return hilite.WrapError(cause, ReadError, name, "cannot read grammar")
}
