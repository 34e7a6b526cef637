package languages

import (
	"strings"

	"github.com/ava12/hilite/grammar"
	"github.com/ava12/hilite/pattern"
)

var pyReserved = []string{
	"and", "as", "assert", "async", "await", "break", "case", "class", "continue", "def", "del",
	"elif", "else", "except", "finally", "for", "from", "global", "if", "import", "in", "is",
	"lambda", "match", "nonlocal|10", "not", "or", "pass", "raise", "return", "try", "while",
	"with", "yield",
}

var pyBuiltIns = []string{
	"__import__", "abs", "all", "any", "ascii", "bin", "bool", "breakpoint", "bytearray", "bytes",
	"callable", "chr", "classmethod", "compile", "complex", "delattr", "dict", "dir", "divmod",
	"enumerate", "eval", "exec", "filter", "float", "format", "frozenset", "getattr", "globals",
	"hasattr", "hash", "help", "hex", "input", "int", "isinstance", "issubclass", "iter", "len",
	"list", "locals", "map", "max", "memoryview", "min", "next", "object", "oct", "open", "ord",
	"pow", "print", "property", "range", "repr", "reversed", "round", "set", "setattr", "slice",
	"sorted", "staticmethod", "str", "sum", "super", "tuple", "type", "vars", "zip",
}

var pyLiterals = []string{"__debug__", "Ellipsis", "False", "None", "NotImplemented", "True"}

// pgKeywords are highlighted inside strings holding SQL statements.
const pgKeywords = `ABORT ALTER ANALYZE BEGIN CALL CHECKPOINT|10 CLOSE CLUSTER COMMENT COMMIT COPY CREATE
DEALLOCATE DECLARE DELETE DISCARD DO DROP END EXECUTE EXPLAIN FETCH GRANT IMPORT INSERT LISTEN LOAD
LOCK MOVE NOTIFY PREPARE REASSIGN|10 REFRESH REINDEX RELEASE RESET REVOKE ROLLBACK SAVEPOINT SECURITY
SELECT SET SHOW START TRUNCATE UNLISTEN|10 UPDATE VACUUM|10 VALUES AGGREGATE COLLATION CONVERSION|10
DATABASE DEFAULT PRIVILEGES DOMAIN TRIGGER EXTENSION FOREIGN WRAPPER|10 TABLE FUNCTION GROUP LANGUAGE
LARGE OBJECT MATERIALIZED VIEW OPERATOR CLASS FAMILY POLICY PUBLICATION|10 ROLE RULE SCHEMA SEQUENCE
SERVER STATISTICS SUBSCRIPTION SYSTEM TABLESPACE CONFIGURATION DICTIONARY PARSER TEMPLATE TYPE USER
MAPPING PREPARED ACCESS METHOD CAST AS TRANSFORM TRANSACTION OWNED TO INTO SESSION AUTHORIZATION
INDEX PROCEDURE ASSERTION ALL ANALYSE AND ANY ARRAY ASC ASYMMETRIC|10 BOTH CASE CHECK COLLATE COLUMN
CONCURRENTLY|10 CONSTRAINT CROSS DEFERRABLE RANGE DESC DISTINCT ELSE EXCEPT FOR FREEZE|10 FROM FULL
HAVING ILIKE IN INITIALLY INNER INTERSECT IS ISNULL JOIN LATERAL LEADING LIKE LIMIT NATURAL NOT
NOTNULL NULL OFFSET ON ONLY ORDER OR OUTER OVERLAPS PLACING PRIMARY REFERENCES RETURNING SIMILAR
SOME SYMMETRIC TABLESAMPLE THEN TRAILING UNION UNIQUE USING VARIADIC|10 VERBOSE WHEN WHERE WINDOW
WITH BY RETURNS INOUT OUT SETOF|10 IF STRICT CURRENT CONTINUE OWNER LOCATION OVER PARTITION WITHIN
BETWEEN ESCAPE EXTERNAL INVOKER DEFINER WORK RENAME VERSION CONNECTION CONNECT TABLES TEMP TEMPORARY
FUNCTIONS SEQUENCES TYPES SCHEMAS OPTION CASCADE RESTRICT ADD ADMIN EXISTS VALID VALIDATE ENABLE
DISABLE REPLICA|10 ALWAYS PASSING COLUMNS PATH REF VALUE OVERRIDING IMMUTABLE STABLE VOLATILE BEFORE
AFTER EACH ROW PROCEDURAL ROUTINE NO HANDLER VALIDATOR OPTIONS STORAGE OIDS|10 WITHOUT INHERIT
DEPENDS CALLED INPUT LEAKPROOF|10 COST ROWS NOWAIT SEARCH UNTIL ENCRYPTED|10 PASSWORD CONFLICT|10
INSTEAD INHERITS CHARACTERISTICS WRITE CURSOR ALSO STATEMENT SHARE EXCLUSIVE INLINE ISOLATION
REPEATABLE READ COMMITTED SERIALIZABLE UNCOMMITTED LOCAL GLOBAL SQL PROCEDURES RECURSIVE SNAPSHOT
ROLLUP CUBE TRUSTED|10 INCLUDE FOLLOWING PRECEDING UNBOUNDED GROUPS UNENCRYPTED|10 SYSID FORMAT
DELIMITER HEADER QUOTE ENCODING FILTER OFF FORCE_QUOTE FORCE_NOT_NULL FORCE_NULL COSTS BUFFERS
TIMING SUMMARY DISABLE_PAGE_SKIPPING RESTART CYCLE GENERATED IDENTITY DEFERRED IMMEDIATE LEVEL
LOGGED UNLOGGED OF NOTHING NONE EXCLUDE ATTRIBUTE USAGE ROUTINES TRUE FALSE NAN INFINITY KEY vector`

// plainWords strips relevance suffixes.
func plainWords(words []string) []string {
	res := make([]string, len(words))
	for i, w := range words {
		res[i], _, _ = strings.Cut(w, "|")
	}
	return res
}

func quoteAll(words []string) []string {
	res := make([]string, len(words))
	for i, w := range words {
		res[i] = pattern.Quote(w)
	}
	return res
}

// Python returns the grammar of Python 3 source code, interactive sessions included.
func Python() *grammar.Grammar {
	kw := &grammar.Keywords{
		Pattern: `(?:[A-Za-z]\w*|__\w+__)(?!=)`,
		Keyword: pyReserved,
		BuiltIn: pyBuiltIns,
		Literal: pyLiterals,
	}

	prompt := &grammar.Mode{
		Scope: "meta",
		Begin: `^(>>>|\.\.\.) `,
	}

	subst := &grammar.Mode{
		Scope:    "subst",
		Begin:    `\{`,
		End:      `\}`,
		Keywords: kw,
		Illegal:  `#`,
	}

	literalBracket := &grammar.Mode{
		Begin:     `\{\{`,
		Relevance: grammar.Rel(0),
	}

	esc := grammar.BackslashEscape
	const (
		bytesPrefix  = `([uU]|[bB]|[rR]|[bB][rR]|[rR][bB])?`
		fmtPrefix    = `([fF][rR]|[rR][fF]|[fF])`
		rawPrefix    = `([uU]|[rR])`
		bytesPrefix1 = `([bB]|[bB][rR]|[rR][bB])`
	)
	str := &grammar.Mode{
		Scope:    "string",
		Contains: []*grammar.Mode{esc},
		Variants: []*grammar.Mode{
			{Begin: bytesPrefix + `'''`, End: `'''`, Contains: []*grammar.Mode{esc, prompt}, Relevance: grammar.Rel(10)},
			{Begin: bytesPrefix + `"""`, End: `"""`, Contains: []*grammar.Mode{esc, prompt}, Relevance: grammar.Rel(10)},
			{Begin: fmtPrefix + `'''`, End: `'''`, Contains: []*grammar.Mode{esc, prompt, literalBracket, subst}},
			{Begin: fmtPrefix + `"""`, End: `"""`, Contains: []*grammar.Mode{esc, prompt, literalBracket, subst}},
			{Begin: rawPrefix + `'`, End: `'`, Relevance: grammar.Rel(10)},
			{Begin: rawPrefix + `"`, End: `"`, Relevance: grammar.Rel(10)},
			{Begin: bytesPrefix1 + `'`, End: `'`},
			{Begin: bytesPrefix1 + `"`, End: `"`},
			{Begin: fmtPrefix + `'`, End: `'`, Contains: []*grammar.Mode{esc, literalBracket, subst}},
			{Begin: fmtPrefix + `"`, End: `"`, Contains: []*grammar.Mode{esc, literalBracket, subst}},
			grammar.AposString,
			grammar.QuoteString,
		},
	}

	const digitPart = `[0-9](_?[0-9])*`
	const pointFloat = `(\b(` + digitPart + `))?\.(` + digitPart + `)|\b(` + digitPart + `)\.`
	lookahead := `\b|` + strings.Join(plainWords(pyReserved), "|")
	number := &grammar.Mode{
		Scope:     "number",
		Relevance: grammar.Rel(0),
		Variants: []*grammar.Mode{
			{Begin: `(\b(` + digitPart + `)|(` + pointFloat + `))[eE][+-]?(` + digitPart + `)[jJ]?(?=` + lookahead + `)`},
			{Begin: `(` + pointFloat + `)[jJ]?`},
			{Begin: `\b([1-9](_?[0-9])*|0+(_?0)*)[lLjJ]?(?=` + lookahead + `)`},
			{Begin: `\b0[bB](_?[01])+[lL]?(?=` + lookahead + `)`},
			{Begin: `\b0[oO](_?[0-7])+[lL]?(?=` + lookahead + `)`},
			{Begin: `\b0[xX](_?[0-9a-fA-F])+[lL]?(?=` + lookahead + `)`},
			{Begin: `\b(` + digitPart + `)[jJ](?=` + lookahead + `) `},
		},
	}

	subst.Contains = []*grammar.Mode{
		str,
		number,
		prompt,
		{
			Begin:     `\{`,
			End:       `\}`,
			Keywords:  kw,
			Contains:  []*grammar.Mode{grammar.Self(), str, number},
			Relevance: grammar.Rel(0),
		},
	}

	commentType := &grammar.Mode{
		Scope:    "comment",
		Begin:    `(?=# type:)`,
		End:      `$`,
		Keywords: kw,
		Contains: []*grammar.Mode{
			{Begin: `# type:`},
			{Begin: `#`, End: `\b\B`, EndsWithParent: true},
		},
	}

	emptyParams := &grammar.Mode{
		Begin:     `\(\s*\)`,
		Relevance: grammar.Rel(0),
	}
	params := &grammar.Mode{
		Scope:    "params",
		Begin:    `\(`,
		End:      `\)`,
		Keywords: kw,
		Contains: []*grammar.Mode{grammar.Self(), prompt, number, str, grammar.HashComment},
	}

	ident := pattern.IdentRe
	callable := `\b(?!(?:` + strings.Join(quoteAll(pyBuiltIns), "|") + `)(?=\s*\())(` + ident + `)`

	sqlString := &grammar.Mode{
		Scope:    "string",
		Begin:    `(?i)(["'])(\s*)(?=SELECT|INSERT|UPDATE|DELETE|CREATE|ALTER|DROP|TRUNCATE)\b`,
		End:      `(["'])`,
		Keywords: &grammar.Keywords{Keyword: []string{pgKeywords}},
		Contains: []*grammar.Mode{
			{Scope: "type", Begin: `%s`},
			{Scope: "sql-text", Begin: `[;*,+_a-z<>\-=]|\(|\)`},
			{Scope: "number", Begin: `\b\d+\b`},
		},
	}

	return &grammar.Grammar{
		Name:     "python",
		Aliases:  []string{"py", "gyp", "ipython"},
		Keywords: kw,
		Illegal:  `(<\/|\?)|=>`,
		Contains: []*grammar.Mode{
			prompt,
			number,
			{Scope: "variable.language", Begin: `\bself\b`},
			{BeginKeywords: "if", Relevance: grammar.Rel(0)},
			{Scope: "keyword", Begin: `\bor\b`},
			commentType,
			grammar.HashComment,
			{
				BeginSeq:   []string{`\bdef`, `\s+`, ident},
				BeginScope: grammar.Scopes{1: "keyword", 3: "title.function"},
				Contains:   []*grammar.Mode{emptyParams, params},
			},
			{
				Variants: []*grammar.Mode{
					{
						BeginSeq:   []string{`\bclass`, `\s+`, ident, `\s*`, `\(\s*`, ident, `\s*\)`},
						BeginScope: grammar.Scopes{1: "keyword", 3: "title.class", 6: "title.class.inherited"},
					},
					{
						BeginSeq:   []string{`\bclass`, `\s+`, ident},
						BeginScope: grammar.Scopes{1: "keyword", 3: "title.class"},
					},
				},
			},
			{
				Scope:    "meta",
				Begin:    `^[\t ]*@`,
				End:      `(?=#)|$`,
				Contains: []*grammar.Mode{number, emptyParams, params, str},
			},
			{
				Scope: "type",
				Begin: `\b(?![TFN](?:rue|alse|one)\b)(?:[A-Z][a-zA-Z0-9]*|_[A-Z][a-zA-Z0-9]*)\b(?!\s*\()`,
			},
			{
				BeginSeq:   []string{`\.`, ident, `\s*\(`},
				BeginScope: grammar.Scopes{2: "title.function"},
			},
			{
				BeginSeq:   []string{`([A-Z][a-zA-Z0-9_]*)`, `\s*\(`},
				BeginScope: grammar.Scopes{1: "title.function"},
			},
			{
				BeginSeq:   []string{callable, `\s*\(`},
				BeginScope: grammar.Scopes{1: "title.function"},
			},
			sqlString,
			str,
		},
	}
}
