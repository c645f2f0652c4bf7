package desugar

import "github.com/jinrudals/wake/ast"

// liftHoles implements spec.md §4.4's "Anonymous _ holes" pass: every
// VarRef("_") reachable from e that has not already been lifted
// (FlagTouched) is renamed to a fresh internal binder and the whole
// expression is wrapped in one outer lambda per hole found, outermost
// first in left-to-right discovery order — so `_ + _` becomes
// `\"_ k N".\"_ k N+1". "_ k N" + "_ k N+1"`, N being the Desugarer's
// shared fresh-name counter. Already-lifted sub-expressions
// are skipped by the FlagTouched check rather than by bounding the
// walk, since a nested boundary (a lambda/match body already lowered
// by its own liftHoles call) has no remaining bare holes to find.
func (d *Desugarer) liftHoles(e *ast.Expr) *ast.Expr {
	if e == nil {
		return e
	}
	var found []string
	d.walkHoles(e, &found)
	out := e
	for i := len(found) - 1; i >= 0; i-- {
		out = ast.NewLambda(e.Location, found[i], out)
	}
	return out
}

func (d *Desugarer) walkHoles(e *ast.Expr, found *[]string) {
	if e == nil {
		return
	}
	if e.Kind == ast.ExprVarRef && e.Name == "_" && !e.Flags.Has(ast.FlagTouched) {
		name := d.freshName("_ k")
		e.Name = name
		e.Flags |= ast.FlagTouched
		*found = append(*found, name)
		return
	}
	d.walkHoles(e.Fn, found)
	d.walkHoles(e.Arg, found)
	d.walkHoles(e.Body, found)
	d.walkHoles(e.Ascribed, found)
	for _, a := range e.Args {
		d.walkHoles(a, found)
	}
	for i := range e.Cases {
		d.walkHoles(e.Cases[i].Guard, found)
		d.walkHoles(e.Cases[i].Body, found)
	}
	for _, k := range e.DefOrder {
		d.walkHoles(e.Defs[k], found)
	}
}
