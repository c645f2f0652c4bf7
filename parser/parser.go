// Package parser implements the hand-rolled shift-reduce-style parser
// described in spec.md §4.3: it drives a lexer.Driver through a
// layout.Filter, builds a cst.Tree bottom-up via cst.Builder, and
// exposes Shifts(kind) so the lexer and layout filter can ask it
// whether it would accept a given token next (spec.md §9's "small
// interface... exposed from whatever parser generator is used, or
// hand-rolled").
//
// There is no generated LR table here, so Shifts answers only the
// three questions the lexer/layout stages actually ask (re-entering
// dstr/rstr interpolation on `}`, and whether a significant NL would
// be shifted): an explicit context stack tracks which of those is
// live at the parser's current position, which is sufficient for
// those three decisions without needing full parser state.
package parser

import (
	"github.com/jinrudals/wake/cst"
	"github.com/jinrudals/wake/diagnostics"
	"github.com/jinrudals/wake/lexer"
	"github.com/jinrudals/wake/layout"
	"github.com/jinrudals/wake/source"
	"github.com/jinrudals/wake/token"
)

// context names what kind of construct is currently open, for the
// three Shifts questions the lexer/layout ask.
type context int

const (
	ctxTop context = iota // file top level: NL separates statements
	ctxBlock              // INDENT..DEDENT or brace block: same NL semantics as top
	ctxParen              // ( ) : NL is insignificant
	ctxBracket            // [ ] : NL is insignificant
	ctxStrInterp          // inside "... { <here> } ..."
	ctxRegexInterp        // inside a regex literal's { <here> } escape
)

// Parser consumes raw bytes from a source.File and produces a
// cst.Tree, pushing diagnostics for any syntax error it recovers from.
type Parser struct {
	file    *source.File
	diags   *diagnostics.Sink
	filter  *layout.Filter
	builder *cst.Builder

	stack []context
	buf   *token.Info
}

// New returns a Parser reading file, wiring a fresh lexer.Driver and
// layout.Filter in front of it (the Parser is both's ShiftOracle).
func New(file *source.File, diags *diagnostics.Sink) *Parser {
	p := &Parser{file: file, diags: diags, builder: cst.NewBuilder(), stack: []context{ctxTop}}
	driver := lexer.NewDriver(file, p)
	p.filter = layout.NewFilter(driver, p, file, diags)
	return p
}

// Parse runs the parser to completion and freezes the resulting tree.
// Parsing never aborts: unexpected input is reported as a diagnostic
// and recorded as a cst.KindError placeholder so the rest of the file
// still parses (spec.md §7's "never throw" rule).
func (p *Parser) Parse() *cst.Tree {
	p.parseTop()
	return p.builder.Freeze()
}

// Shifts answers the three questions the lexer and layout filter ask:
// whether a significant NL, a STR_CLOSE, or a REG_CLOSE token would be
// accepted at the parser's current position. Any other Kind is never
// asked for and returns false.
func (p *Parser) Shifts(kind token.Kind) bool {
	switch kind {
	case token.NL:
		switch p.top() {
		case ctxTop, ctxBlock:
			return true
		default:
			return false
		}
	case token.STR_CLOSE:
		return p.top() == ctxStrInterp
	case token.REG_CLOSE:
		return p.top() == ctxRegexInterp
	default:
		return false
	}
}

func (p *Parser) push(c context) { p.stack = append(p.stack, c) }
func (p *Parser) pop()           { p.stack = p.stack[:len(p.stack)-1] }
func (p *Parser) top() context   { return p.stack[len(p.stack)-1] }

// peek returns the next token without consuming it.
func (p *Parser) peek() token.Info {
	if p.buf == nil {
		t := p.filter.Next()
		p.buf = &t
	}
	return *p.buf
}

// advance consumes and returns the next token, recording it as a CST
// leaf. Every token reaching the grammar — including INDENT/DEDENT and
// synthetic NLs — is kept as a leaf, so the CST retains the full token
// stream per spec.md §3.
func (p *Parser) advance() token.Info {
	t := p.peek()
	p.buf = nil
	p.builder.AddToken(t)
	return t
}

// node wraps everything pushed onto the builder since before (a
// Builder.Depth() snapshot taken prior to parsing id's children) into
// one new node of the given id.
func (p *Parser) node(id cst.NodeID, before int) {
	p.builder.AddNode(id, p.builder.Depth()-before)
}

// expect consumes a token of the given kind, or — if the next token
// doesn't match — pushes a diagnostic and records an empty
// cst.KindError placeholder in its place, so callers can always treat
// expect as having produced exactly one stack entry.
func (p *Parser) expect(kind token.Kind, want string) token.Info {
	if p.peek().Kind == kind {
		return p.advance()
	}
	p.errorExpecting(want)
	at := p.peek().Start
	p.builder.AddNodeAt(cst.KindError, at, at)
	return token.Info{Kind: kind, Start: at, End: at}
}

func (p *Parser) errorExpecting(want string) {
	tok := p.peek()
	loc := tok.Location(p.file)
	p.diags.Errorf(loc, "unexpected %s, was expecting %s", tok.Kind, want)
}

// errorUnexpected reports the current token as unparseable in its
// position and records a cst.KindError leaf-like placeholder for it,
// consuming it so the caller can resynchronize.
func (p *Parser) errorUnexpected(where string) {
	tok := p.advance()
	loc := tok.Location(p.file)
	p.diags.Errorf(loc, "unexpected %s in %s", tok.Kind, where)
	p.builder.AddNode(cst.KindError, 1)
}

// synchronizeStatement discards tokens until a statement boundary (a
// significant NL, DEDENT, or EOF) so the next top-level form or block
// item starts from a clean position, per spec.md §4.3's "resume at the
// next resynchronization point".
func (p *Parser) synchronizeStatement() {
	for {
		switch p.peek().Kind {
		case token.NL, token.DEDENT, token.EOF:
			return
		default:
			p.advance()
			p.builder.AddNode(cst.KindError, 1)
		}
	}
}

// wrapOrEmpty wraps n freshly-pushed entries under id, or — if n is
// zero — records a zero-width placeholder at the current position, so
// an optional/variadic group always leaves exactly one stack entry
// with a usable location.
func (p *Parser) wrapOrEmpty(id cst.NodeID, n int) {
	if n > 0 {
		p.builder.AddNode(id, n)
		return
	}
	at := p.peek().Start
	p.builder.AddNodeAt(id, at, at)
}
