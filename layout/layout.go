// Package layout implements the LayoutFilter described in spec.md
// §4.2: a small state machine, decoupled from the grammar, that turns
// significant whitespace into INDENT, DEDENT, and significant-NL
// tokens and drops WS/COMMENT otherwise.
//
// The filter's indent stack is a local field of Filter, not a package
// global, so multiple files can be filtered concurrently (the driver
// runs one Filter per source.File).
package layout

import (
	"strings"

	"github.com/jinrudals/wake/diagnostics"
	"github.com/jinrudals/wake/source"
	"github.com/jinrudals/wake/token"
)

// TokenSource yields raw tokens one at a time, e.g. a lexer.Driver.
type TokenSource interface {
	Next() token.Info
}

// ShiftOracle answers whether the parser, in its current state, could
// shift the given Kind next. The filter asks this only for token.NL,
// to decide whether an indent/dedent boundary is grammatically
// significant.
type ShiftOracle interface {
	Shifts(kind token.Kind) bool
}

type state int

const (
	stateIdle state = iota
	stateNL
	stateNLWS
)

// Filter consumes a raw TokenSource and produces the layout-filtered
// stream described in spec.md §4.2.
type Filter struct {
	src    TokenSource
	oracle ShiftOracle
	file   *source.File
	diags  *diagnostics.Sink

	state   state
	stack   []string
	newdent string
	queue   []token.Info
	done    bool
}

// NewFilter returns a Filter reading raw tokens from src.
func NewFilter(src TokenSource, oracle ShiftOracle, file *source.File, diags *diagnostics.Sink) *Filter {
	return &Filter{src: src, oracle: oracle, file: file, diags: diags}
}

// Next returns the next filtered token. Once it returns a token.EOF,
// every subsequent call also returns EOF.
func (f *Filter) Next() token.Info {
	for len(f.queue) == 0 {
		if f.done {
			return token.Info{Kind: token.EOF, OK: true}
		}
		f.advance()
	}
	t := f.queue[0]
	f.queue = f.queue[1:]
	return t
}

func (f *Filter) emit(t token.Info) { f.queue = append(f.queue, t) }

func (f *Filter) advance() {
	tok := f.src.Next()
	switch f.state {
	case stateIdle:
		switch tok.Kind {
		case token.WS, token.COMMENT:
			// dropped
		case token.NL:
			f.state = stateNL
		case token.EOF:
			f.finish(tok)
		default:
			f.emit(tok)
		}
	case stateNL:
		switch tok.Kind {
		case token.WS:
			f.newdent = tok.Text(f.file)
			f.state = stateNLWS
		default:
			// "Empty" indentation: treat exactly as stateNLWS would with
			// an empty newdent (spec.md §4.2: "process it as if we were
			// in NL_WS"), so a bare NL or COMMENT here gets the same
			// blank-line / comment-only-line treatment as it would after
			// leading whitespace.
			f.newdent = ""
			f.handleAfterIndent(tok)
		}
	case stateNLWS:
		f.handleAfterIndent(tok)
	}
}

// handleAfterIndent is reached once f.newdent (possibly empty) has been
// determined for the current line: it implements the NL_WS branch of
// spec.md §4.2's state machine.
func (f *Filter) handleAfterIndent(tok token.Info) {
	switch tok.Kind {
	case token.NL:
		// Previous line was blank: ignore it, stay in NL.
		f.state = stateNL
	case token.COMMENT:
		// Previous line was comment-only: ignore, no layout emitted.
		f.state = stateIdle
	default:
		f.processLineStart(tok)
	}
}

// processLineStart runs the indent/dedent rule against f.newdent, then
// emits a significant NL (if the parser can shift one) followed by
// tok, returning to stateIdle. An EOF token short-circuits into finish.
func (f *Filter) processLineStart(tok token.Info) {
	if tok.Kind == token.EOF {
		f.finish(tok)
		return
	}
	f.applyIndent(tok)
	if f.oracle.Shifts(token.NL) {
		f.emit(f.synthetic(token.NL, tok.Start))
	}
	f.emit(tok)
	f.state = stateIdle
}

// applyIndent pops stack entries that are not a prefix of f.newdent
// (emitting DEDENT for each), then pushes f.newdent and emits INDENT
// if it is strictly longer than the remaining top.
//
// Per spec.md §7's layout taxonomy ("top of stack is not a prefix of
// current indent, yet dedent does not reach it"), a line whose pops
// stop at an entry other than f.newdent itself is flagged as an
// inconsistent-indentation diagnostic; a plain return to an enclosing
// level is not: tabs and spaces may each be used consistently, but not
// mixed within the same nesting chain. Resolved as an explicit check here since spec.md
// §4.2's algorithm text alone is silent on how the error actually
// surfaces (Open Question, recorded in DESIGN.md).
func (f *Filter) applyIndent(tok token.Info) {
	popped := false
	for len(f.stack) > 0 {
		top := f.stack[len(f.stack)-1]
		if strings.HasPrefix(f.newdent, top) {
			break
		}
		popped = true
		f.stack = f.stack[:len(f.stack)-1]
		f.emit(f.synthetic(token.DEDENT, tok.Start))
	}
	top := ""
	if len(f.stack) > 0 {
		top = f.stack[len(f.stack)-1]
	}
	if popped && f.newdent != top && f.diags != nil {
		f.diags.Errorf(f.file.LocationOf(tok.Start, tok.Start),
			"inconsistent indentation: %q does not match the enclosing indentation", f.newdent)
	}
	if len(f.newdent) > len(top) {
		f.stack = append(f.stack, f.newdent)
		f.emit(f.synthetic(token.INDENT, tok.Start))
	}
}

// finish emits a DEDENT for every remaining stack entry, then a
// trailing significant NL if shiftable, then EOF, and marks the filter
// done.
func (f *Filter) finish(eof token.Info) {
	for len(f.stack) > 0 {
		f.stack = f.stack[:len(f.stack)-1]
		f.emit(f.synthetic(token.DEDENT, eof.Start))
	}
	if f.oracle.Shifts(token.NL) {
		f.emit(f.synthetic(token.NL, eof.Start))
	}
	f.emit(eof)
	f.done = true
}

func (f *Filter) synthetic(kind token.Kind, at int) token.Info {
	return token.Info{Kind: kind, Start: at, End: at, OK: true}
}
