// Package token defines the fixed, closed set of lexical token kinds
// produced by the lexer and layout filter, and the Info descriptor
// that pins one to a byte range inside a source.File.
package token

import "github.com/jinrudals/wake/source"

// Kind enumerates every token the lexer, layout filter, or parser can
// produce. The set is closed: no stage invents a Kind that is not named
// here, since the CST's leaf ids are this same enumeration.
type Kind int

const (
	ILLEGAL Kind = iota

	// Layout.
	WS
	COMMENT
	NL
	INDENT
	DEDENT
	EOF

	// Punctuation.
	BOPEN // {
	BCLOSE
	SOPEN // [
	SCLOSE
	POPEN // (
	PCLOSE
	COLON
	EQUALS
	HOLE // _
	BSLASH
	COMMA

	// Operators, grouped by precedence class (see spec §4.3).
	DOT
	QUANT // ^
	EXP
	MULDIV
	ADDSUB
	COMPARE
	INEQUAL // != and friends
	AND
	OR
	DOLLAR
	LRARROW
	EQARROW

	// Literals.
	INTEGER
	DOUBLE
	STR_RAW
	STR_SINGLE
	STR_OPEN
	STR_MID
	STR_CLOSE
	REG_SINGLE
	REG_OPEN
	REG_MID
	REG_CLOSE

	// Identifiers.
	ID

	// Keywords.
	PACKAGE
	FROM
	IMPORT
	EXPORT
	DEF
	TYPE
	TOPIC
	UNARY
	BINARY
	GLOBAL
	PUBLISH
	DATA
	TUPLE
	TARGET
	HERE
	SUBSCRIBE
	PRIM
	MATCH
	IF
	THEN
	ELSE
	REQUIRE

	maxKind
)

var names = [maxKind]string{
	ILLEGAL:    "ILLEGAL",
	WS:         "WS",
	COMMENT:    "COMMENT",
	NL:         "NL",
	INDENT:     "INDENT",
	DEDENT:     "DEDENT",
	EOF:        "EOF",
	BOPEN:      "BOPEN",
	BCLOSE:     "BCLOSE",
	SOPEN:      "SOPEN",
	SCLOSE:     "SCLOSE",
	POPEN:      "POPEN",
	PCLOSE:     "PCLOSE",
	COLON:      "COLON",
	EQUALS:     "EQUALS",
	HOLE:       "HOLE",
	BSLASH:     "BSLASH",
	COMMA:      "COMMA",
	DOT:        "DOT",
	QUANT:      "QUANT",
	EXP:        "EXP",
	MULDIV:     "MULDIV",
	ADDSUB:     "ADDSUB",
	COMPARE:    "COMPARE",
	INEQUAL:    "INEQUAL",
	AND:        "AND",
	OR:         "OR",
	DOLLAR:     "DOLLAR",
	LRARROW:    "LRARROW",
	EQARROW:    "EQARROW",
	INTEGER:    "INTEGER",
	DOUBLE:     "DOUBLE",
	STR_RAW:    "STR_RAW",
	STR_SINGLE: "STR_SINGLE",
	STR_OPEN:   "STR_OPEN",
	STR_MID:    "STR_MID",
	STR_CLOSE:  "STR_CLOSE",
	REG_SINGLE: "REG_SINGLE",
	REG_OPEN:   "REG_OPEN",
	REG_MID:    "REG_MID",
	REG_CLOSE:  "REG_CLOSE",
	ID:         "ID",
	PACKAGE:    "PACKAGE",
	FROM:       "FROM",
	IMPORT:     "IMPORT",
	EXPORT:     "EXPORT",
	DEF:        "DEF",
	TYPE:       "TYPE",
	TOPIC:      "TOPIC",
	UNARY:      "UNARY",
	BINARY:     "BINARY",
	GLOBAL:     "GLOBAL",
	PUBLISH:    "PUBLISH",
	DATA:       "DATA",
	TUPLE:      "TUPLE",
	TARGET:     "TARGET",
	HERE:       "HERE",
	SUBSCRIBE:  "SUBSCRIBE",
	PRIM:       "PRIM",
	MATCH:      "MATCH",
	IF:         "IF",
	THEN:       "THEN",
	ELSE:       "ELSE",
	REQUIRE:    "REQUIRE",
}

// String renders a token Kind's name, for diagnostics and test output.
func (k Kind) String() string {
	if k < 0 || k >= maxKind {
		return "INVALID"
	}
	return names[k]
}

// Keywords maps reserved identifier spellings to their Kind. The lexer
// consults this after matching an identifier-shaped run: a hit wins
// over ID.
var Keywords = map[string]Kind{
	"package":   PACKAGE,
	"from":      FROM,
	"import":    IMPORT,
	"export":    EXPORT,
	"def":       DEF,
	"type":      TYPE,
	"topic":     TOPIC,
	"unary":     UNARY,
	"binary":    BINARY,
	"global":    GLOBAL,
	"publish":   PUBLISH,
	"data":      DATA,
	"tuple":     TUPLE,
	"target":    TARGET,
	"here":      HERE,
	"subscribe": SUBSCRIBE,
	"prim":      PRIM,
	"match":     MATCH,
	"if":        IF,
	"then":      THEN,
	"else":      ELSE,
	"require":   REQUIRE,
}

// Layout reports whether k is one of the tokens the layout filter
// consumes or synthesises (WS/COMMENT/NL/INDENT/DEDENT/EOF), as opposed
// to a grammar terminal.
func (k Kind) Layout() bool {
	switch k {
	case WS, COMMENT, NL, INDENT, DEDENT, EOF:
		return true
	default:
		return false
	}
}

// Info is a half-open byte range [Start, End) inside one source.File,
// plus the token's Kind. Tokens are immutable descriptors: they never
// own bytes, only point into the File that produced them.
type Info struct {
	Kind  Kind
	Start int
	End   int
	// OK is false for a token synthesised over an illegal byte run: the
	// lexer still emits it (with a best-guess Kind) so parsing can
	// continue, per the "never throw" error-handling rule.
	OK bool
}

// Len returns the byte length of the token.
func (t Info) Len() int { return t.End - t.Start }

// Text returns the token's source text, sliced out of file.
func (t Info) Text(file *source.File) string {
	return string(file.Bytes[t.Start:t.End])
}

// Location returns a source.Location for the token, where the end
// coordinate refers to the last included byte (not one-past-end), as
// required for console and LSP rendering.
func (t Info) Location(file *source.File) source.Location {
	return file.LocationOf(t.Start, t.End)
}
