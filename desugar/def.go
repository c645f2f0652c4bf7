package desugar

import (
	"github.com/jinrudals/wake/ast"
	"github.com/jinrudals/wake/cst"
	"github.com/jinrudals/wake/source"
	"github.com/jinrudals/wake/token"
)

// binding is one name bound by a def/target/publish form — usually
// one, but an extraction binding (`def Pair(a, b) = rhs`) produces
// several at once: a hidden binding for the whole matched value, plus
// one per named field.
type binding struct {
	name string
	expr *ast.Expr
}

// desugarDef handles a CST_DEF node at the top level, branching on its
// leading keyword leaf to tell a plain def from a target or a publish
// (parser/toplevel.go documents all three reusing CST_DEF's shape).
func (d *Desugarer) desugarDef(e cst.Element, extraFlags ast.SymFlag) {
	for _, b := range d.coreDesugarDef(e) {
		d.addTopLevelDef(b.name, b.expr, extraFlags)
	}
}

func (d *Desugarer) coreDesugarDef(e cst.Element) []binding {
	kids := children(e)
	if len(kids) == 0 {
		return nil
	}
	switch kids[0].ID() {
	case cst.NodeID(token.TARGET):
		return d.desugarTargetDef(e)
	case cst.NodeID(token.PUBLISH):
		return d.desugarPublishDef(e)
	default:
		return d.desugarPlainDef(e)
	}
}

// addTopLevelDef records one top-level binding into both the file's
// local symbol table (for duplicate detection and later name
// resolution) and its DefMap.
func (d *Desugarer) addTopLevelDef(name string, expr *ast.Expr, extraFlags ast.SymFlag) {
	if name == "" || expr == nil {
		return
	}
	qualified := name + "@" + d.pkgName
	src := ast.SymbolSource{Location: expr.Location, QualifiedName: qualified, Flags: ast.SymLeaf | extraFlags}
	if dup := d.defineLocal("", name, src); dup {
		d.errorf(expr.Location, "%q already defined in this file", name)
		return
	}
	d.defs[name] = expr
	d.order = append(d.order, name)
}

// desugarPlainDef lowers an ordinary `def lhs [: type] = body` per
// spec.md §4.4's "Definitions": a bare name binds its body directly; a
// head applied to arguments either curries (lower-case head) or
// destructures (head names a constructor already seen in this file,
// via d.ctors).
func (d *Desugarer) desugarPlainDef(e cst.Element) []binding {
	nodes := childNodes(e)
	if len(nodes) < 2 {
		return nil
	}
	lhsNode, bodyNode := nodes[0], nodes[len(nodes)-1]
	var typeText string
	if len(nodes) == 3 {
		typeText = rawSpan(d.file, nodes[1])
	}
	pat := d.patFromCST(lhsNode)
	body := d.liftHoles(d.exprFromCST(bodyNode))

	switch {
	case len(pat.Args) == 0:
		return []binding{{pat.Token, ascribeIf(typeText, body)}}
	default:
		if ctor, ok := d.ctors[pat.Token]; ok {
			return d.desugarExtraction(pat, ctor, body, typeText)
		}
		curried := d.curryParams(pat.Args, body)
		return []binding{{pat.Token, ascribeIf(typeText, curried)}}
	}
}

func ascribeIf(typeText string, e *ast.Expr) *ast.Expr {
	if typeText == "" || e == nil {
		return e
	}
	return ast.NewAscribe(e.Location, typeText, e)
}

// desugarExtraction lowers `def Ctor(a, b) = rhs` into a hidden binding
// for rhs plus one binding per named field, projected out via Get. Per
// spec.md §7's reserved-name rule, the hidden binding's name contains a
// space so it cannot collide with anything source can write.
func (d *Desugarer) desugarExtraction(pat *ast.Pat, ctor ctorInfo, body *ast.Expr, typeText string) []binding {
	hidden := d.freshName("_ extract")
	out := []binding{{hidden, ascribeIf(typeText, body)}}
	for i, sub := range pat.Args {
		if !sub.Truthy() {
			continue
		}
		get := ast.NewGet(sub.Region, ctor.sum, pat.Token, i)
		val := ast.NewApp(sub.Region, get, ast.VarRef(sub.Region, hidden))
		out = append(out, binding{sub.Name, val})
	}
	return out
}

// curryParams builds the curried function value bound to a def's head:
// plain lower-case parameters become nested lambdas directly; a
// parameter that is itself a constructor/literal/wildcard pattern lifts
// all parameters at once into a single Match arm, per spec.md §4.4's
// "argument lifting".
func (d *Desugarer) curryParams(params []*ast.Pat, body *ast.Expr) *ast.Expr {
	loc := body.Location
	simple := true
	for _, p := range params {
		if !p.Truthy() || len(p.Args) > 0 || p.IsWildcard() {
			simple = false
			break
		}
	}
	if simple {
		out := body
		for i := len(params) - 1; i >= 0; i-- {
			out = ast.NewLambda(loc, params[i].Name, out)
		}
		return out
	}

	freshNames := make([]string, len(params))
	scrutinees := make([]*ast.Expr, len(params))
	for i := range params {
		freshNames[i] = d.freshName("_ k")
		scrutinees[i] = ast.VarRef(loc, freshNames[i])
	}
	var guards []*ast.Expr
	argPats := make([]ast.ArgPattern, len(params))
	for i, p := range params {
		argPats[i] = d.buildArgPattern(p, scrutinees[i], &guards)
	}
	c := ast.Case{ArgPatterns: argPats, Guard: andGuards(guards), Body: body}
	out := ast.NewMatch(loc, scrutinees, []ast.Case{c})
	for i := len(params) - 1; i >= 0; i-- {
		out = ast.NewLambda(loc, freshNames[i], out)
	}
	return out
}

// desugarTargetDef lowers `target lhs [\ cacheargs] = body` per
// spec.md §4.4's "Targets": a companion `table NAME` definition holds
// the memoization table (built via the tnew primitive over the body's
// own source text, matching how the teacher's targets are keyed off
// their literal recipe), and the visible NAME binds a curried function
// that looks the hashed arguments up in it before ever evaluating body.
func (d *Desugarer) desugarTargetDef(e cst.Element) []binding {
	nodes := childNodes(e)
	if len(nodes) < 2 {
		return nil
	}
	loc := d.locOf(e)
	lhsNode, bodyNode := nodes[0], nodes[len(nodes)-1]
	var cacheNode cst.Element
	if len(nodes) == 3 {
		cacheNode = nodes[1]
	}
	pat := d.patFromCST(lhsNode)
	bodyExpr := d.liftHoles(d.exprFromCST(bodyNode))
	bodySrc := rawSpan(d.file, bodyNode)
	bodyDigest := ast.DigestString(bodySrc)

	tableName := "table " + pat.Token
	tableExpr := applyAll(loc, ast.NewPrim(loc, "tnew"), []*ast.Expr{
		ast.NewLiteral(loc, bodyDigest, "string"),
		ast.NewLiteral(loc, bodySrc, "string"),
	})
	tableExpr.Flags |= ast.FlagSynthetic

	var hashArgs []*ast.Expr
	paramNames := make([]string, 0, len(pat.Args))
	for _, a := range pat.Args {
		name := a.Name
		if name == "" {
			name = d.freshName("_ k")
		}
		paramNames = append(paramNames, name)
		hashArgs = append(hashArgs, ast.VarRef(loc, name))
	}
	hashExpr := applyAll(loc, ast.NewPrim(loc, "hash"), hashArgs)

	var subhashExpr *ast.Expr
	if !cacheNode.Empty() {
		subhashExpr = ast.NewApp(loc, ast.NewPrim(loc, "hash"), d.exprFromCST(cacheNode))
	} else {
		subhashExpr = ast.NewLiteral(loc, "()", "unit")
	}

	lookup := applyAll(loc, ast.NewPrim(loc, "tget"), []*ast.Expr{
		ast.VarRef(loc, tableName), hashExpr, subhashExpr, ast.NewLambda(loc, "_", bodyExpr),
	})

	curried := lookup
	for i := len(paramNames) - 1; i >= 0; i-- {
		curried = ast.NewLambda(loc, paramNames[i], curried)
	}
	return []binding{{tableName, tableExpr}, {pat.Token, curried}}
}

// desugarPublishDef lowers `publish TOPIC = value` per spec.md §4.4's
// Publish rule: a contribution to TOPIC's running list rather than a
// callable def. The front end has no value-level list-append primitive
// of its own (that belongs to the out-of-scope runtime), so this binds
// the value under a hidden name applying the `publish` primitive
// against the topic's qualified name, keeping the contribution reachable
// for whatever collaborator resolves topics into their final lists.
func (d *Desugarer) desugarPublishDef(e cst.Element) []binding {
	loc := d.locOf(e)
	topic := firstTokenText(d.file, e)
	nodes := childNodes(e)
	if len(nodes) == 0 {
		return nil
	}
	value := d.liftHoles(d.exprFromCST(nodes[len(nodes)-1]))
	hidden := d.freshName("_ publish")
	qualified := topic + "@" + d.pkgName
	publishCall := applyAll(loc, ast.NewPrim(loc, "publish"), []*ast.Expr{
		ast.NewLiteral(loc, qualified, "string"), value,
	})
	publishCall.Flags |= ast.FlagSynthetic
	return []binding{{hidden, publishCall}}
}

// applyAll folds fn applied to each of args in order, left to right.
func applyAll(loc source.Location, fn *ast.Expr, args []*ast.Expr) *ast.Expr {
	out := fn
	for _, a := range args {
		out = ast.NewApp(loc, out, a)
	}
	return out
}
