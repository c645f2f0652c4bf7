package desugar

import (
	"github.com/jinrudals/wake/ast"
	"github.com/jinrudals/wake/cst"
	"github.com/jinrudals/wake/source"
)

// exprFromCST lowers one expression-shaped CST node into an ast.Expr.
// Holes are not lifted here: callers at a binding boundary (a def
// body, a lambda body, a case body) run liftHoles over the result
// afterward, per spec.md §4.4's "Anonymous _ holes" pass.
func (d *Desugarer) exprFromCST(e cst.Element) *ast.Expr {
	loc := d.locOf(e)
	if e.Empty() {
		return ast.BadExpr(loc, "")
	}
	switch e.ID() {
	case cst.KindLiteral:
		return ast.NewLiteral(loc, firstLeafText(d.file, e), "")
	case cst.KindID:
		return ast.VarRef(loc, firstLeafText(d.file, e))
	case cst.KindHole:
		return ast.VarRef(loc, "_")
	case cst.KindPrim:
		return ast.NewPrim(loc, primName(d.file, e))
	case cst.KindSubscribe:
		return ast.NewSubscribe(loc, firstLeafText(d.file, e))
	case cst.KindParen:
		inner := e.FirstChildNode()
		if inner.Empty() {
			return ast.NewLiteral(loc, "()", "unit")
		}
		return d.exprFromCST(inner)
	case cst.KindApp:
		nodes := childNodes(e)
		if len(nodes) == 0 {
			return ast.BadExpr(loc, "empty application")
		}
		out := d.exprFromCST(nodes[0])
		for _, n := range nodes[1:] {
			out = ast.NewApp(loc, out, d.exprFromCST(n))
		}
		return out
	case cst.KindUnary:
		kids := children(e)
		if len(kids) != 2 {
			return ast.BadExpr(loc, "bad unary")
		}
		op := ast.NewPrim(loc, "unary "+text(d.file, kids[0]))
		return ast.NewApp(loc, op, d.exprFromCST(kids[1]))
	case cst.KindBinary:
		nodes := children(e)
		if len(nodes) != 3 {
			return ast.BadExpr(loc, "bad binary")
		}
		left := d.exprFromCST(nodes[0])
		opName := text(d.file, nodes[1])
		right := d.exprFromCST(nodes[2])
		op := ast.VarRef(loc, opName)
		return ast.NewApp(loc, ast.NewApp(loc, op, left), right)
	case cst.KindLambda:
		return d.desugarLambda(e)
	case cst.KindIf:
		return d.desugarIf(e)
	case cst.KindMatch:
		return d.desugarMatch(e)
	case cst.KindRequire:
		// A require with no trailing block after it (see
		// desugarBlockBody for the normal, body-carrying case) has no
		// "rest of block" to serve as its body; fall back to unit so
		// there is still something to walk.
		return d.desugarRequire(e, ast.NewLiteral(loc, "()", "unit"))
	case cst.KindBlock:
		return d.desugarBlockBody(e)
	case cst.KindInterpolate:
		return d.desugarInterpolate(e)
	default:
		d.errorf(loc, "unsupported expression form")
		return ast.BadExpr(loc, "")
	}
}

// primName returns a `prim "NAME"`'s NAME, stripping the STR_RAW
// token's surrounding quotes.
func primName(file *source.File, e cst.Element) string {
	for _, c := range children(e) {
		if !c.IsNode() {
			s := text(file, c)
			if len(s) >= 2 {
				return s[1 : len(s)-1] // strip surrounding quotes
			}
			return s
		}
	}
	return ""
}

// desugarInterpolate lowers a `"a{b}c"`-style interpolation into
// nested string-concatenation applications: spec.md §1 and §4 leave
// the exact runtime string representation to the out-of-scope value
// model, so this produces the left fold `str_cat (str_cat frag1 expr1)
// frag2 ...` via a Prim, which is the same shape the teacher's exec templates reduce
// interpolation to (see syntax/expr.go's Template/FormatString, read
// for grounding).
func (d *Desugarer) desugarInterpolate(e cst.Element) *ast.Expr {
	loc := d.locOf(e)
	parts := childNodes(e)
	if len(parts) == 0 {
		return ast.NewLiteral(loc, "", "string")
	}
	out := d.exprFromCST(parts[0])
	for _, p := range parts[1:] {
		next := d.exprFromCST(p)
		cat := ast.NewPrim(loc, "str_cat")
		out = ast.NewApp(loc, ast.NewApp(loc, cat, out), next)
	}
	return out
}

// desugarLambda lowers `\pattern body` per spec.md §4.4: a plain
// lower-case parameter with no type ascription becomes a direct
// Lambda; anything else (constructor pattern, wildcard, typed
// parameter) becomes `λ_xx. match _xx { pattern → body }`.
func (d *Desugarer) desugarLambda(e cst.Element) *ast.Expr {
	loc := d.locOf(e)
	nodes := childNodes(e)
	if len(nodes) != 2 {
		return ast.BadExpr(loc, "bad lambda")
	}
	pat := d.patFromCST(nodes[0])
	body := d.liftHoles(d.exprFromCST(nodes[1]))
	if pat.Truthy() && len(pat.Args) == 0 && pat.Type == "" {
		return ast.NewLambda(loc, pat.Name, body)
	}
	fresh := d.freshName("_xx")
	scrutinee := ast.VarRef(loc, fresh)
	var guards []*ast.Expr
	arg := d.buildArgPattern(pat, scrutinee, &guards)
	c := ast.Case{ArgPatterns: []ast.ArgPattern{arg}, Guard: andGuards(guards), Body: body}
	match := ast.NewMatch(loc, []*ast.Expr{scrutinee}, []ast.Case{c})
	return ast.NewLambda(loc, fresh, match)
}

// desugarIf lowers `if cond then t else e` to a two-armed Match over
// the boolean sum's constructors, per spec.md §4.4.
func (d *Desugarer) desugarIf(e cst.Element) *ast.Expr {
	loc := d.locOf(e)
	nodes := childNodes(e)
	if len(nodes) != 3 {
		return ast.BadExpr(loc, "bad if")
	}
	cond := d.liftHoles(d.exprFromCST(nodes[0]))
	then := d.liftHoles(d.exprFromCST(nodes[1]))
	els := d.liftHoles(d.exprFromCST(nodes[2]))
	cases := []ast.Case{
		{ArgPatterns: []ast.ArgPattern{{Ctor: "True@wake"}}, Body: then},
		{ArgPatterns: []ast.ArgPattern{{Ctor: "False@wake"}}, Body: els},
	}
	return ast.NewMatch(loc, []*ast.Expr{cond}, cases)
}

// desugarMatch lowers a `match s1 s2 ... { pattern1 pattern2 ... => body }`
// form. See buildArgPattern/bindSubPattern for the single-level pattern
// simplification, and desugarCase for how a multi-scrutinee case's
// flat pattern sequence is split one pattern per scrutinee.
func (d *Desugarer) desugarMatch(e cst.Element) *ast.Expr {
	loc := d.locOf(e)
	nodes := childNodes(e)
	var scrutinees []cst.Element
	i := 0
	for i < len(nodes) && nodes[i].ID() != cst.KindCase {
		scrutinees = append(scrutinees, nodes[i])
		i++
	}
	args := make([]*ast.Expr, len(scrutinees))
	for k, s := range scrutinees {
		args[k] = d.liftHoles(d.exprFromCST(s))
	}
	var cases []ast.Case
	for ; i < len(nodes); i++ {
		if nodes[i].ID() != cst.KindCase {
			continue
		}
		cases = append(cases, d.desugarCase(nodes[i], args))
	}
	return ast.NewMatch(loc, args, cases)
}

func (d *Desugarer) desugarCase(e cst.Element, args []*ast.Expr) ast.Case {
	loc := d.locOf(e)
	nodes := childNodes(e)
	if len(nodes) == 0 {
		return ast.Case{Body: ast.BadExpr(loc, "bad case")}
	}
	patternNode := nodes[0]
	var guardExpr cst.Element
	bodyIdx := len(nodes) - 1
	if len(nodes) == 3 {
		guardExpr = nodes[1]
	}
	body := d.liftHoles(d.exprFromCST(nodes[bodyIdx]))

	var atoms []cst.Element
	if len(args) > 1 && patternNode.ID() == cst.KindApp {
		atoms = childNodes(patternNode)
	} else {
		atoms = []cst.Element{patternNode}
	}
	if len(atoms) != len(args) {
		d.errorf(loc, "case has %d patterns for %d scrutinees", len(atoms), len(args))
	}
	var guards []*ast.Expr
	argPats := make([]ast.ArgPattern, len(args))
	for k := range args {
		var pat *ast.Pat
		if k < len(atoms) {
			pat = d.patFromCST(atoms[k])
		} else {
			pat = &ast.Pat{}
		}
		argPats[k] = d.buildArgPattern(pat, args[k], &guards)
	}
	if !guardExpr.Empty() {
		g := childNodes(guardExpr)
		if len(g) == 1 {
			guards = append(guards, d.liftHoles(d.exprFromCST(g[0])))
		}
	}
	return ast.Case{ArgPatterns: argPats, Guard: andGuards(guards), Body: body}
}
