package parser

import (
	"github.com/jinrudals/wake/cst"
	"github.com/jinrudals/wake/token"
)

// parseTop parses the whole file as a sequence of top-level forms
// separated by significant NLs, leaving each one on the builder's
// stack for Freeze to wrap under CST_TOP.
func (p *Parser) parseTop() {
	for {
		for p.peek().Kind == token.NL {
			p.advance()
		}
		if p.peek().Kind == token.EOF {
			p.advance()
			return
		}
		p.parseTopLevelForm()
	}
}

// parseTopLevelForm dispatches on the leading keyword of one top-level
// declaration. An unrecognised leader is reported and the rest of the
// line discarded, so later declarations still parse.
func (p *Parser) parseTopLevelForm() {
	switch p.peek().Kind {
	case token.PACKAGE:
		p.parsePackageDecl()
	case token.FROM:
		p.parseImportDecl()
	case token.EXPORT:
		p.parseExportOrFlagged()
	case token.GLOBAL:
		p.parseGlobalFlagged()
	case token.TOPIC:
		p.parseTopicDecl()
	case token.DATA:
		p.parseDataDecl()
	case token.TUPLE:
		p.parseTupleDecl()
	case token.DEF:
		p.parseDefDecl()
	case token.TARGET:
		p.parseTargetDecl()
	case token.PUBLISH:
		p.parsePublishDecl()
	case token.REQUIRE:
		p.parseRequire()
	default:
		p.errorUnexpected("top-level declaration")
		p.synchronizeStatement()
	}
}

// parseBlockItem is parseTopLevelForm's restricted counterpart inside
// an INDENT/brace block (spec.md §4.4's "parenthesised block"): only
// def/target/from may prefix the trailing expression.
func (p *Parser) parseBlockItem() {
	switch p.peek().Kind {
	case token.DEF:
		p.parseDefDecl()
	case token.TARGET:
		p.parseTargetDecl()
	case token.FROM:
		p.parseImportDecl()
	case token.REQUIRE:
		p.parseRequire()
	default:
		p.parseExpr()
	}
}

func (p *Parser) parsePackageDecl() {
	before := p.builder.Depth()
	p.advance() // PACKAGE
	p.expect(token.ID, "package name")
	p.node(cst.KindPackage, before)
}

// parseNameList parses `[unary|binary]? [def|type|topic]? ID (= ID)?`,
// comma-separated. The optional arity/kind qualifiers each wrap as a
// CST_ARITY/CST_KIND marker (empty placeholder when absent, per
// wrapOrEmpty); a rename wraps the name, '=', and its replacement name
// together as CST_IDEQ. An unrenamed item is left as a bare ID leaf,
// since nothing downstream needs to distinguish "one name" from "one
// name wrapped in a trivial node".
func (p *Parser) parseNameList() {
	for {
		qualCount := 0
		switch p.peek().Kind {
		case token.UNARY, token.BINARY:
			p.advance()
			qualCount++
		}
		p.wrapOrEmpty(cst.KindArity, qualCount)

		kindCount := 0
		switch p.peek().Kind {
		case token.DEF, token.TYPE, token.TOPIC:
			p.advance()
			kindCount++
		}
		p.wrapOrEmpty(cst.KindKind, kindCount)

		p.expect(token.ID, "identifier")
		if p.peek().Kind == token.EQUALS {
			eqBefore := p.builder.Depth() - 1 // include the name just pushed
			p.advance()                       // EQUALS
			p.expect(token.ID, "identifier")
			p.node(cst.KindIDEq, eqBefore)
		}
		if p.peek().Kind == token.COMMA {
			p.advance()
			continue
		}
		return
	}
}

func (p *Parser) parseImportDecl() {
	before := p.builder.Depth()
	p.advance() // FROM
	p.expect(token.ID, "package name")
	p.expect(token.IMPORT, "'import'")
	p.parseNameList()
	p.node(cst.KindImport, before)
}

// parseExportOrFlagged handles `export` in both of its roles: a bare
// `export name, ...` list, or a modifier in front of a def/target/data/
// tuple/topic declaration (wrapped as CST_FLAG_EXPORT around it).
func (p *Parser) parseExportOrFlagged() {
	before := p.builder.Depth()
	p.advance() // EXPORT
	switch p.peek().Kind {
	case token.DEF:
		p.parseDefDecl()
	case token.TARGET:
		p.parseTargetDecl()
	case token.TOPIC:
		p.parseTopicDecl()
	case token.DATA:
		p.parseDataDecl()
	case token.TUPLE:
		p.parseTupleDecl()
	default:
		p.parseNameList()
		p.node(cst.KindExport, before)
		return
	}
	p.node(cst.KindFlagExport, before)
}

// parseGlobalFlagged handles `global def`/`global target`, the only
// two forms the GLOBAL keyword modifies.
func (p *Parser) parseGlobalFlagged() {
	before := p.builder.Depth()
	p.advance() // GLOBAL
	switch p.peek().Kind {
	case token.DEF:
		p.parseDefDecl()
	case token.TARGET:
		p.parseTargetDecl()
	default:
		p.errorExpecting("'def' or 'target'")
		p.synchronizeStatement()
	}
	p.node(cst.KindFlagGlobal, before)
}

func (p *Parser) parseTopicDecl() {
	before := p.builder.Depth()
	p.advance() // TOPIC
	p.expect(token.ID, "topic name")
	p.expect(token.COLON, "':'")
	p.parseExpr() // type signature
	p.node(cst.KindTopic, before)
}

// parseDataConstructor parses `ID atom*` — a constructor name and its
// argument types. Reuses CST_TUPLE_ELT's shape (see parseTupleMember):
// spec.md §3's CST kind enumeration has no node dedicated to a data
// constructor either.
func (p *Parser) parseDataConstructor() {
	before := p.builder.Depth()
	p.expect(token.ID, "constructor name")
	for isAtomStart(p.peek().Kind) {
		p.parseUnary()
	}
	p.node(cst.KindTupleElt, before)
}

func (p *Parser) parseDataDecl() {
	before := p.builder.Depth()
	p.advance() // DATA
	p.expect(token.ID, "type name")
	argc := 0
	for p.peek().Kind == token.ID {
		p.advance()
		argc++
	}
	p.wrapOrEmpty(cst.KindArity, argc)
	p.expect(token.EQUALS, "'='")
	for {
		p.parseDataConstructor()
		if p.peek().Kind == token.OR {
			p.advance()
			continue
		}
		break
	}
	p.node(cst.KindData, before)
}

// parseTupleMember parses `ID : type`.
func (p *Parser) parseTupleMember() {
	before := p.builder.Depth()
	p.expect(token.ID, "member name")
	p.expect(token.COLON, "':'")
	p.parseBinary(classTable[token.COMMA].prec + 1) // type; stops at the ',' between members
	p.node(cst.KindTupleElt, before)
}

func (p *Parser) parseTupleDecl() {
	before := p.builder.Depth()
	p.advance() // TUPLE
	p.expect(token.ID, "type name")
	p.expect(token.EQUALS, "'='")
	for {
		p.parseTupleMember()
		if p.peek().Kind == token.COMMA {
			p.advance()
			continue
		}
		break
	}
	p.node(cst.KindTuple, before)
}

func (p *Parser) parseDefDecl() {
	before := p.builder.Depth()
	p.advance() // DEF
	p.parseExpr() // lhs, parsed as a pattern-shaped expression
	if p.peek().Kind == token.COLON {
		p.advance()
		p.parseExpr() // type ascription
	}
	p.expect(token.EQUALS, "'='")
	p.parseExprBlock()
	p.node(cst.KindDef, before)
}

// parseTargetDecl parses `target lhs [\ cache_args] = body`. Spec.md
// §3's CST enumeration has no CST_TARGET node; the TARGET keyword leaf
// itself is what the desugarer uses to tell a target
// from an ordinary def, so this reuses CST_DEF's shape.
func (p *Parser) parseTargetDecl() {
	before := p.builder.Depth()
	p.advance() // TARGET
	p.parseExpr() // lhs + hashed args
	if p.peek().Kind == token.BSLASH {
		p.advance()
		p.parseExpr() // cache args
	}
	p.expect(token.EQUALS, "'='")
	p.parseExprBlock()
	p.node(cst.KindDef, before)
}

// parsePublishDecl parses `publish TOPIC = value`. Like target, this
// reuses CST_DEF's shape: the leading PUBLISH keyword leaf is what
// distinguishes it downstream.
func (p *Parser) parsePublishDecl() {
	before := p.builder.Depth()
	p.advance() // PUBLISH
	p.expect(token.ID, "topic name")
	p.expect(token.EQUALS, "'='")
	p.parseExprBlock()
	p.node(cst.KindDef, before)
}

// parseIndentedBlock parses an INDENT-delimited sequence of block
// items (def/target/from, or the trailing expression), per spec.md
// §4.4's "parenthesised block": the body folds declarations in at the
// top, ending in the expression the whole block evaluates to.
func (p *Parser) parseIndentedBlock() {
	before := p.builder.Depth()
	p.advance() // INDENT
	p.push(ctxBlock)
	for {
		for p.peek().Kind == token.NL {
			p.advance()
		}
		if p.peek().Kind == token.DEDENT || p.peek().Kind == token.EOF {
			break
		}
		p.parseBlockItem()
	}
	p.pop()
	p.expect(token.DEDENT, "dedent")
	p.node(cst.KindBlock, before)
}

// parseBraceBlock parses a `{ ... }` block: the explicit-punctuation
// alternative to indentation, built from the same block-item grammar.
func (p *Parser) parseBraceBlock() {
	before := p.builder.Depth()
	p.advance() // BOPEN
	p.push(ctxBlock)
	for p.peek().Kind == token.NL {
		p.advance()
	}
	for {
		if p.peek().Kind == token.BCLOSE || p.peek().Kind == token.EOF {
			break
		}
		p.parseBlockItem()
		for p.peek().Kind == token.NL {
			p.advance()
		}
	}
	p.pop()
	p.expect(token.BCLOSE, "'}'")
	p.node(cst.KindBlock, before)
}
