package desugar

import (
	"github.com/jinrudals/wake/ast"
	"github.com/jinrudals/wake/cst"
	"github.com/jinrudals/wake/source"
)

// patFromCST converts an expression-shaped CST subtree (a def's
// left-hand side, a lambda parameter, a match arm's head) into an
// ast.Pat. Only the constructs spec.md §4.4 names as valid pattern
// positions are handled; anything else yields an error Pat with an
// empty Token, so callers can still materialise a placeholder binding
// and keep going.
func (d *Desugarer) patFromCST(e cst.Element) *ast.Pat {
	loc := d.locOf(e)
	if e.Empty() {
		return &ast.Pat{Region: loc}
	}
	switch e.ID() {
	case cst.KindID:
		name := firstLeafText(d.file, e)
		p := &ast.Pat{Token: name, Region: loc}
		if isLower(name) {
			p.Name = name
		}
		return p
	case cst.KindHole:
		return &ast.Pat{Token: "_", Region: loc}
	case cst.KindLiteral:
		return &ast.Pat{Token: firstLeafText(d.file, e), Region: loc}
	case cst.KindParen:
		inner := e.FirstChildNode()
		if inner.Empty() {
			return &ast.Pat{Token: "()", Region: loc}
		}
		return d.patFromCST(inner)
	case cst.KindUnary:
		// A signed literal pattern (`-1`): fold the operator and
		// operand's text into one literal token, since the runtime
		// value model (out of scope here) is what actually interprets
		// pattern literals.
		kids := children(e)
		if len(kids) == 2 {
			return &ast.Pat{Token: text(d.file, kids[0]) + text(d.file, kids[1]), Region: loc}
		}
		return &ast.Pat{Region: loc}
	case cst.KindApp:
		nodes := childNodes(e)
		if len(nodes) == 0 {
			return &ast.Pat{Region: loc}
		}
		head := d.patFromCST(nodes[0])
		for _, n := range nodes[1:] {
			head.Args = append(head.Args, d.argPatsFromCST(n)...)
		}
		return head
	case cst.KindBinary:
		// An operator-headed def's left-hand side (`def a + b = ...`):
		// the operator becomes the pattern's head token with the two
		// operands as its args, the same shape a prefix constructor
		// application would have.
		kids := children(e)
		if len(kids) != 3 {
			return &ast.Pat{Region: loc}
		}
		left := d.patFromCST(kids[0])
		right := d.patFromCST(kids[2])
		return &ast.Pat{Token: text(d.file, kids[1]), Region: loc, Args: []*ast.Pat{left, right}}
	default:
		d.errorf(loc, "not a valid pattern")
		return &ast.Pat{Region: loc}
	}
}

// argPatsFromCST lowers one application-argument position into one or
// more sub-patterns. `Ctor(a, b)` parses its parenthesised argument as
// a single Paren wrapping a left-associative chain of comma Binary
// nodes (parseExpr treats `,` as the lowest-precedence binary
// operator, see parser/expr.go's parseParen/parseExpr), so an
// extraction binding's named fields only surface correctly once that
// chain is flattened back into separate patterns; anything else is an
// ordinary single argument pattern.
func (d *Desugarer) argPatsFromCST(e cst.Element) []*ast.Pat {
	if e.ID() == cst.KindParen {
		inner := e.FirstChildNode()
		if !inner.Empty() {
			if list, ok := d.flattenCommaPats(inner); ok {
				return list
			}
		}
	}
	return []*ast.Pat{d.patFromCST(e)}
}

// flattenCommaPats reports whether e is a comma Binary chain and, if
// so, returns its elements as patterns in source order.
func (d *Desugarer) flattenCommaPats(e cst.Element) ([]*ast.Pat, bool) {
	if e.ID() != cst.KindBinary {
		return nil, false
	}
	kids := children(e)
	if len(kids) != 3 || text(d.file, kids[1]) != "," {
		return nil, false
	}
	var out []*ast.Pat
	if left, ok := d.flattenCommaPats(kids[0]); ok {
		out = append(out, left...)
	} else {
		out = append(out, d.patFromCST(kids[0]))
	}
	out = append(out, d.patFromCST(kids[2]))
	return out, true
}

// firstLeafText returns the text of e's single backing leaf, for a
// node that always wraps exactly one token (CST_ID, CST_LITERAL,
// CST_HOLE).
func firstLeafText(file *source.File, e cst.Element) string {
	c := e.FirstChildElement()
	if c.Empty() {
		return ""
	}
	return text(file, c)
}
