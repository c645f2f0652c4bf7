package desugar

import "github.com/jinrudals/wake/ast"

// localise runs spec.md §4.4's "Localisation" pass once a file's
// top-level bindings are all collected: every top-level name (defs,
// constructor functions, tuple accessors, target tables, hidden
// extraction/publish bindings — anything addTopLevelDef registered) is
// rewritten from its bare form to its qualified "name@pkg" form, both
// as the DefMap's own keys and at every reference site within the file
// that isn't shadowed by a closer binder. d.local also gains the
// qualified name as a second lookup key alongside the short one, per
// spec.md's "local symbol table records both the short and qualified
// names".
//
// Shadowing is tracked one layer at a time (Lambda params, Match
// ArgPattern binders, nested DefMap keys) as the walk descends — a
// nested block's own `def y = ...` correctly keeps `y` referring to
// the block-local binding even when a top-level `y` also exists. A
// fully general, scope-resolved rewrite belongs to the out-of-scope
// type-checking/name-resolution collaborator; this pass only needs to
// get the common case (no accidental capture) right.
func (d *Desugarer) localise() {
	qualified := make(map[string]string, len(d.order))
	for _, name := range d.order {
		qualified[name] = name + "@" + d.pkgName
	}
	for _, name := range d.order {
		registerQualifiedAlias(d.local, name, qualified[name])
	}

	newDefs := make(map[string]*ast.Expr, len(d.defs))
	newOrder := make([]string, len(d.order))
	for i, name := range d.order {
		e := d.defs[name]
		localiseExpr(e, qualified, nil)
		q := qualified[name]
		newDefs[q] = e
		newOrder[i] = q
	}
	d.defs = newDefs
	d.order = newOrder
}

// registerQualifiedAlias mirrors name's existing entry (however it was
// recorded: DefineDef/DefineType) under its qualified form too.
func registerQualifiedAlias(s *ast.Symbols, name, qualifiedName string) {
	src, ok := s.Mixed[name]
	if !ok {
		return
	}
	s.Mixed[qualifiedName] = src
	if _, ok := s.Defs[name]; ok {
		s.Defs[qualifiedName] = src
	}
	if _, ok := s.Types[name]; ok {
		s.Types[qualifiedName] = src
	}
}

// localiseExpr rewrites e in place: a VarRef whose name matches a
// top-level binding and isn't currently shadowed gets renamed to its
// qualified form. bound holds names a closer binder has introduced
// (nil is the empty set — most call sites never shadow anything).
func localiseExpr(e *ast.Expr, qualified map[string]string, bound map[string]bool) {
	if e == nil {
		return
	}
	switch e.Kind {
	case ast.ExprVarRef:
		if bound[e.Name] {
			return
		}
		if q, ok := qualified[e.Name]; ok {
			e.Name = q
		}
		return
	case ast.ExprPrim, ast.ExprSubscribe, ast.ExprConstruct, ast.ExprGet, ast.ExprLiteral, ast.ExprError:
		// Name here is a primitive/topic/constructor name, not a
		// top-level binding reference; nothing to rewrite.
		return
	case ast.ExprLambda:
		localiseExpr(e.Body, qualified, shadow(bound, e.Param))
		return
	case ast.ExprAscribe:
		localiseExpr(e.Ascribed, qualified, bound)
		return
	case ast.ExprDefMap:
		inner := cloneBound(bound)
		for k := range e.Defs {
			inner[k] = true
		}
		for _, sub := range e.Defs {
			localiseExpr(sub, qualified, inner)
		}
		localiseExpr(e.Body, qualified, inner)
		return
	case ast.ExprMatch:
		for _, a := range e.Args {
			localiseExpr(a, qualified, bound)
		}
		for i := range e.Cases {
			inner := cloneBound(bound)
			for _, ap := range e.Cases[i].ArgPatterns {
				if ap.Bind != "" {
					inner[ap.Bind] = true
				}
				for _, a := range ap.Args {
					if a != "" {
						inner[a] = true
					}
				}
			}
			localiseExpr(e.Cases[i].Guard, qualified, inner)
			localiseExpr(e.Cases[i].Body, qualified, inner)
		}
		return
	case ast.ExprApp:
		localiseExpr(e.Fn, qualified, bound)
		localiseExpr(e.Arg, qualified, bound)
		return
	}
}

func shadow(bound map[string]bool, name string) map[string]bool {
	inner := cloneBound(bound)
	if name != "" {
		inner[name] = true
	}
	return inner
}

func cloneBound(bound map[string]bool) map[string]bool {
	inner := make(map[string]bool, len(bound)+1)
	for k, v := range bound {
		inner[k] = v
	}
	return inner
}
