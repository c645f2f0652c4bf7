package desugar

import (
	"github.com/jinrudals/wake/ast"
	"github.com/jinrudals/wake/cst"
	"github.com/jinrudals/wake/source"
)

// desugarRequire lowers `require pattern = rhs [else otherwise]` per
// spec.md §4.4: `match rhs { pattern -> body ; _ -> otherwise }`. With
// no `else`, otherwise falls back to an `unreachable` primitive call —
// the refutable-pattern-with-no-else case this degrades to is a
// runtime condition outside this front end's scope to detect statically.
func (d *Desugarer) desugarRequire(e cst.Element, body *ast.Expr) *ast.Expr {
	loc := d.locOf(e)
	nodes := childNodes(e)
	if len(nodes) < 2 {
		return ast.BadExpr(loc, "bad require")
	}
	patNode, rhsNode := nodes[0], nodes[1]
	var otherwise *ast.Expr
	if len(nodes) == 3 {
		otherwise = d.liftHoles(d.exprFromCST(nodes[2]))
	} else {
		otherwise = ast.NewApp(loc, ast.NewPrim(loc, "unreachable"), ast.NewLiteral(loc, "()", "unit"))
		otherwise.Flags |= ast.FlagSynthetic
	}
	pat := d.patFromCST(patNode)
	rhs := d.liftHoles(d.exprFromCST(rhsNode))

	var guards []*ast.Expr
	matched := d.buildArgPattern(pat, rhs, &guards)
	cases := []ast.Case{
		{ArgPatterns: []ast.ArgPattern{matched}, Guard: andGuards(guards), Body: body},
		{ArgPatterns: []ast.ArgPattern{{}}, Body: otherwise},
	}
	return ast.NewMatch(loc, []*ast.Expr{rhs}, cases)
}

// desugarBlockBody lowers a parenthesised CST_BLOCK per spec.md §4.4:
// leading def/target/from/require items fold into a DefMap, ending in
// the trailing expression the whole block evaluates to. An empty block
// (no items at all) collapses to the unit literal.
func (d *Desugarer) desugarBlockBody(block cst.Element) *ast.Expr {
	return d.foldBlockItems(childNodes(block), d.locOf(block))
}

// foldBlockItems walks one block's flat item sequence. A `require`
// mid-sequence consumes the rest of the sequence as its own body (spec.md
// §4.4's "implicit body is the remainder of the enclosing block"), via
// the recursive call over nodes[i+1:] — whatever leading defs/imports
// were collected before the require still wrap the resulting match in a
// DefMap of their own.
func (d *Desugarer) foldBlockItems(nodes []cst.Element, loc source.Location) *ast.Expr {
	defs := make(map[string]*ast.Expr)
	var order []string
	addBinding := func(b binding) {
		if b.name == "" || b.expr == nil {
			return
		}
		if _, dup := defs[b.name]; dup {
			d.errorf(b.expr.Location, "%q already defined in this block", b.name)
			return
		}
		defs[b.name] = b.expr
		order = append(order, b.name)
	}
	wrap := func(body *ast.Expr) *ast.Expr {
		if len(defs) == 0 {
			return body
		}
		return ast.NewDefMap(loc, defs, order, nil, body)
	}

	for i := 0; i < len(nodes); i++ {
		n := nodes[i]
		switch n.ID() {
		case cst.KindDef:
			for _, b := range d.coreDesugarDef(n) {
				addBinding(b)
			}
		case cst.KindImport:
			d.desugarImport(n, false)
		case cst.KindRequire:
			rest := d.foldBlockItems(nodes[i+1:], loc)
			return wrap(d.desugarRequire(n, rest))
		default:
			if i != len(nodes)-1 {
				d.errorf(d.locOf(n), "an expression must be the last item in a block")
			}
			return wrap(d.liftHoles(d.exprFromCST(n)))
		}
	}
	// Every item was a declaration (or the block was empty): no
	// trailing value, so the block evaluates to unit.
	return wrap(ast.NewLiteral(loc, "()", "unit"))
}
