// Package logfields defines common logging fields which are used across packages
package logfields

const (
	// LogSubsys is the field denoting the subsystem when logging
	LogSubsys = "subsys"

	// Language is the registered name of a language
	Language = "language"

	// Aliases are the alternative names of a language
	Aliases = "aliases"

	// Modes is the number of compiled modes
	Modes = "modes"

	// Pattern is the source of a regular expression
	Pattern = "pattern"

	// Offset is a rune offset in scanned text
	Offset = "offset"

	// Relevance is a language detection score
	Relevance = "relevance"

	// Steps is the number of scanning steps
	Steps = "steps"

	// File is a file name
	File = "file"
)
