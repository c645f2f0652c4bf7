package lexer

import (
	"github.com/jinrudals/wake/source"
	"github.com/jinrudals/wake/token"
)

// ShiftOracle is the narrow interface the Driver asks to disambiguate
// a closing '}': whether the parser, in its current state, could shift
// TOKEN_STR_CLOSE or TOKEN_REG_CLOSE next. It is satisfied structurally
// by a parser.Parser without the lexer package importing the parser
// package, per spec.md §9's instruction to pass parser state explicitly
// rather than make it global.
type ShiftOracle interface {
	Shifts(kind token.Kind) bool
}

// mode tracks which lexing function the Driver should call next: plain
// top-level lexing, or resumption of a string/regex interpolation.
type mode int

const (
	modeWake mode = iota
	modeDStr
	modeRStr
)

// Driver threads the re-entry protocol described in spec.md §4.1 and
// §9 across repeated Lex calls: ordinary bytes are scanned with
// lex_wake, but each STR_OPEN/STR_MID/REG_OPEN/REG_MID hands lexing of
// the embedded expression back to the caller (the parser consumes
// ordinary tokens there) until a bare '}' is seen, at which point the
// Driver asks its ShiftOracle whether TOKEN_STR_CLOSE or
// TOKEN_REG_CLOSE would be valid shifts and resumes lex_dstr/lex_rstr
// accordingly instead of treating '}' as an ordinary BCLOSE.
//
// All of a Driver's state (its File, Oracle, scan position and end,
// and interpolation-mode stack) lives in its own fields, matching the
// "no lexer state is global" rule — one Driver exists per file being
// scanned, not per process.
type Driver struct {
	File   *source.File
	Oracle ShiftOracle

	pos   int
	end   int
	stack []mode // innermost interpolation context, if any
}

// NewDriver returns a Driver scanning file's full byte range.
func NewDriver(file *source.File, oracle ShiftOracle) *Driver {
	return &Driver{File: file, Oracle: oracle, pos: 0, end: file.Len()}
}

// Next returns the next token, applying the dstr/rstr re-entry
// protocol. Callers (ordinarily the layout filter) call Next
// repeatedly until it returns an EOF token.
func (d *Driver) Next() token.Info {
	if len(d.stack) > 0 && d.peekIsCloseBrace() {
		top := d.stack[len(d.stack)-1]
		switch {
		case top == modeDStr && d.Oracle.Shifts(token.STR_CLOSE):
			tok, next := LexDStr(d.File, d.pos, d.end)
			d.pos = next
			d.afterInterpolationToken(tok)
			return tok
		case top == modeRStr && d.Oracle.Shifts(token.REG_CLOSE):
			tok, next := LexRStr(d.File, d.pos, d.end)
			d.pos = next
			d.afterInterpolationToken(tok)
			return tok
		}
		// Neither close is shiftable: fall through to ordinary lexing,
		// which will hand the parser a plain BCLOSE — this is how a
		// `{ ... }` block expression nested inside an interpolated
		// expression body is distinguished from the interpolation's own
		// closing brace.
	}
	tok, next := Lex(d.File, d.pos, d.end)
	d.pos = next
	d.afterInterpolationToken(tok)
	return tok
}

func (d *Driver) peekIsCloseBrace() bool {
	return d.pos < d.end && d.File.Bytes[d.pos] == '}'
}

// afterInterpolationToken updates the interpolation-context stack:
// STR_OPEN/REG_OPEN push a new context (entering the embedded
// expression); STR_MID/REG_MID keep the same context (another
// embedded expression follows); STR_CLOSE/REG_CLOSE pop it.
func (d *Driver) afterInterpolationToken(tok token.Info) {
	switch tok.Kind {
	case token.STR_OPEN:
		d.stack = append(d.stack, modeDStr)
	case token.REG_OPEN:
		d.stack = append(d.stack, modeRStr)
	case token.STR_MID, token.REG_MID:
		// context unchanged: another embedded expression follows.
	case token.STR_CLOSE, token.REG_CLOSE:
		if len(d.stack) > 0 {
			d.stack = d.stack[:len(d.stack)-1]
		}
	}
}
