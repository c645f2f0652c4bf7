package parser

import (
	"github.com/jinrudals/wake/cst"
	"github.com/jinrudals/wake/token"
)

// isAtomStart reports whether kind can begin a primary expression (or
// a unary-prefixed one), used to decide whether application juxtaposes
// another argument.
func isAtomStart(kind token.Kind) bool {
	switch kind {
	case token.ID, token.HOLE, token.INTEGER, token.DOUBLE,
		token.STR_RAW, token.STR_SINGLE, token.STR_OPEN,
		token.REG_SINGLE, token.REG_OPEN,
		token.POPEN, token.SOPEN, token.BOPEN,
		token.BSLASH, token.HERE, token.PRIM,
		token.MATCH, token.IF, token.SUBSCRIBE, token.REQUIRE,
		token.ADDSUB, token.QUANT:
		return true
	default:
		return false
	}
}

// parseExpr parses a full expression at the loosest precedence.
func (p *Parser) parseExpr() { p.parseBinary(classTable[token.COMMA].prec) }

// parseExprBlock parses a def/target/lambda body: either an indented
// (or braced) block of further declarations ending in a trailing
// expression, or — if nothing follows EQUALS on the same line but
// indentation — a single expression.
func (p *Parser) parseExprBlock() {
	switch p.peek().Kind {
	case token.INDENT:
		p.parseIndentedBlock()
	case token.BOPEN:
		p.parseBraceBlock()
	default:
		p.parseExpr()
	}
}

// parseBinary implements precedence climbing over the operator classes
// in precedence.go: parseApp supplies the tightest-binding term
// (application), and this loop folds in each operator whose class
// binds at least as tightly as minPrec, recursing with the operator's
// own precedence plus one (or that precedence itself for a
// right-associative class) for the right operand.
func (p *Parser) parseBinary(minPrec int) {
	before := p.builder.Depth()
	p.parseApp()
	for {
		info, ok := precedenceOf(p.peek().Kind)
		if !ok || info.prec < minPrec {
			return
		}
		p.advance() // operator leaf
		nextMin := info.prec + 1
		if info.assoc == rightAssoc {
			nextMin = info.prec
		}
		p.parseBinary(nextMin)
		p.node(cst.KindBinary, before)
	}
}

// parseApp folds consecutive juxtaposed atoms into a left-associative
// CST_APP, matching spec.md §4.3's fixed appPrecedence (tighter than
// every operator class, so it never competes with parseBinary's loop).
// A token that heads an operator class (ADDSUB, QUANT) ends the run, so
// `1 + 2` is a binary operation rather than 1 applied to `+2`.
func (p *Parser) parseApp() {
	before := p.builder.Depth()
	p.parseUnary()
	count := 1
	for isAtomStart(p.peek().Kind) && !isBinaryOperator(p.peek().Kind) {
		p.parseUnary()
		count++
	}
	if count > 1 {
		p.node(cst.KindApp, before)
	}
}

// parseUnary handles a prefix ADDSUB/QUANT operator (negation,
// pointer-ish unary forms); anything else falls through to an atom.
func (p *Parser) parseUnary() {
	if p.peek().Kind == token.ADDSUB || p.peek().Kind == token.QUANT {
		before := p.builder.Depth()
		p.advance()
		p.parseUnary()
		p.node(cst.KindUnary, before)
		return
	}
	p.parseAtom()
}

// parseAtom parses one primary expression: a literal, identifier,
// hole, parenthesised/braced/bracketed group, lambda, match, if, or
// subscribe/require form.
func (p *Parser) parseAtom() {
	switch p.peek().Kind {
	case token.INTEGER, token.DOUBLE, token.STR_RAW, token.STR_SINGLE, token.REG_SINGLE, token.HERE:
		before := p.builder.Depth()
		p.advance()
		p.node(cst.KindLiteral, before)
	case token.STR_OPEN:
		p.parseInterpolated(token.STR_MID, token.STR_CLOSE, ctxStrInterp, "'}' closing string interpolation")
	case token.REG_OPEN:
		p.parseInterpolated(token.REG_MID, token.REG_CLOSE, ctxRegexInterp, "'}' closing regex interpolation")
	case token.ID:
		before := p.builder.Depth()
		p.advance()
		p.node(cst.KindID, before)
	case token.HOLE:
		before := p.builder.Depth()
		p.advance()
		p.node(cst.KindHole, before)
	case token.PRIM:
		before := p.builder.Depth()
		p.advance() // PRIM
		p.expect(token.STR_RAW, "primitive name string")
		p.node(cst.KindPrim, before)
	case token.POPEN:
		p.parseParen()
	case token.BOPEN:
		p.parseBraceBlock()
	case token.SOPEN:
		p.parseBracketGroup()
	case token.BSLASH:
		p.parseLambda()
	case token.MATCH:
		p.parseMatch()
	case token.IF:
		p.parseIf()
	case token.SUBSCRIBE:
		before := p.builder.Depth()
		p.advance()
		p.expect(token.ID, "topic name")
		p.node(cst.KindSubscribe, before)
	case token.REQUIRE:
		p.parseRequire()
	default:
		p.errorUnexpected("expression")
	}
}

// parseInterpolated parses a STR_OPEN/REG_OPEN literal: an opening
// token, then one embedded expression per MID token, ending at close.
func (p *Parser) parseInterpolated(mid, close token.Kind, ctx context, closeWant string) {
	before := p.builder.Depth()
	p.advance() // OPEN
	p.push(ctx)
	for {
		p.parseExpr()
		if p.peek().Kind == mid {
			p.advance()
			continue
		}
		break
	}
	p.pop()
	p.expect(close, closeWant)
	p.node(cst.KindInterpolate, before)
}

// parseParen parses `(` [expr] `)`: an empty pair is a unit literal,
// not an error.
func (p *Parser) parseParen() {
	before := p.builder.Depth()
	p.advance() // POPEN
	p.push(ctxParen)
	if p.peek().Kind != token.PCLOSE {
		p.parseExpr()
	}
	p.pop()
	p.expect(token.PCLOSE, "')'")
	p.node(cst.KindParen, before)
}

// parseBracketGroup parses a `[` comma-separated expr list `]`. Spec.md
// §3's CST kind enumeration has no dedicated list-literal node, so this
// reuses CST_TUPLE's shape (an ordered, unnamed element group) — a
// deliberate simplification, recorded in DESIGN.md.
func (p *Parser) parseBracketGroup() {
	before := p.builder.Depth()
	p.advance() // SOPEN
	p.push(ctxBracket)
	if p.peek().Kind != token.SCLOSE {
		for {
			p.parseExpr()
			if p.peek().Kind == token.COMMA {
				p.advance()
				continue
			}
			break
		}
	}
	p.pop()
	p.expect(token.SCLOSE, "']'")
	p.node(cst.KindTuple, before)
}

// parseLambda parses `\pattern body`. The pattern is a single term
// (parseUnary, not parseApp): unlike a def's left-hand side, nothing
// punctuates where the pattern ends and the body begins, so a
// multi-argument lambda is curried — `\x \y body`, each backslash
// introducing one parameter — rather than juxtaposed in one pattern.
func (p *Parser) parseLambda() {
	before := p.builder.Depth()
	p.advance() // BSLASH
	p.parseUnary() // pattern
	p.parseExprBlock()
	p.node(cst.KindLambda, before)
}

// parseMatch parses `match scrutinee+` followed by an indented block of
// `pattern => body` cases. Each scrutinee is a single term for the same
// reason a lambda's pattern is: juxtaposition alone can't tell two
// scrutinees apart from one applied to the other.
func (p *Parser) parseMatch() {
	before := p.builder.Depth()
	p.advance() // MATCH
	for isAtomStart(p.peek().Kind) {
		p.parseUnary()
	}
	if p.peek().Kind == token.INDENT {
		p.advance() // INDENT
		p.push(ctxBlock)
		for {
			for p.peek().Kind == token.NL {
				p.advance()
			}
			if p.peek().Kind == token.DEDENT || p.peek().Kind == token.EOF {
				break
			}
			p.parseMatchCase()
		}
		p.pop()
		p.expect(token.DEDENT, "dedent")
	}
	p.node(cst.KindMatch, before)
}

// parseMatchCase parses one `pattern => body` arm, with an optional
// `if guard` attached to the pattern.
func (p *Parser) parseMatchCase() {
	before := p.builder.Depth()
	p.parseApp() // pattern
	if p.peek().Kind == token.IF {
		p.advance()
		p.parseExpr()
		p.node(cst.KindGuard, before)
	}
	p.expect(token.EQARROW, "'=>'")
	p.parseExprBlock()
	p.node(cst.KindCase, before)
}

// parseIf parses `if cond then texpr else eexpr`.
func (p *Parser) parseIf() {
	before := p.builder.Depth()
	p.advance() // IF
	p.parseExpr()
	p.expect(token.THEN, "'then'")
	p.parseExprBlock()
	p.expect(token.ELSE, "'else'")
	p.parseExprBlock()
	p.node(cst.KindIf, before)
}

// parseRequire parses `require pattern = rhs [else otherwise]`. Its
// implicit body is the remainder of the enclosing block (spec.md
// §4.4), which the desugarer reconstructs from CST_BLOCK's flat
// sequence rather than the parser nesting it directly.
func (p *Parser) parseRequire() {
	before := p.builder.Depth()
	p.advance() // REQUIRE
	p.parseExpr() // pattern
	p.expect(token.EQUALS, "'='")
	p.parseExpr() // rhs
	if p.peek().Kind == token.ELSE {
		p.advance()
		p.parseExprBlock()
	}
	p.node(cst.KindRequire, before)
}
