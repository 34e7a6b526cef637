package grammar

// Modes shared by grammars.
var (
	BackslashEscape = &Mode{
		Begin:     `\\[\s\S]`,
		Relevance: Rel(0),
	}

	AposString = &Mode{
		Scope:    "string",
		Begin:    `'`,
		End:      `'`,
		Illegal:  `\n`,
		Contains: []*Mode{BackslashEscape},
	}

	QuoteString = &Mode{
		Scope:    "string",
		Begin:    `"`,
		End:      `"`,
		Illegal:  `\n`,
		Contains: []*Mode{BackslashEscape},
	}

	Doctag = &Mode{
		Scope:     "doctag",
		Begin:     `\b(?:TODO|FIXME|NOTE|BUG|OPTIMIZE|HACK|XXX):`,
		Relevance: Rel(0),
	}

	HashComment = Comment(`#`, `$`)
)

// Comment returns comment mode with given delimiters, doctags are highlighted inside.
func Comment(begin, end string) *Mode {
	return &Mode{
		Scope:    "comment",
		Begin:    begin,
		End:      end,
		Contains: []*Mode{Doctag},
	}
}
