package desugar

import (
	"github.com/jinrudals/wake/ast"
	"github.com/jinrudals/wake/cst"
	"github.com/jinrudals/wake/source"
)

// desugarTopic records a `topic NAME : type` declaration into the
// file's topic table. The type signature expression is parsed but not
// retained: this front end has no type AST to attach it to (type
// inference is an out-of-scope collaborator per spec.md §1), so only
// the topic's existence and qualified name survive desugaring.
func (d *Desugarer) desugarTopic(e cst.Element, extraFlags ast.SymFlag) {
	loc := d.locOf(e)
	name := firstTokenText(d.file, e)
	qualified := name + "@" + d.pkgName
	src := ast.SymbolSource{Location: loc, QualifiedName: qualified, Flags: ast.SymLeaf | extraFlags}
	if _, dup := d.topics.DefineTopic(name, src); dup {
		d.errorf(loc, "topic %q already declared in this file", name)
	}
	// Topics also need a `local` entry so a forward `export TOPIC`
	// (exportLocal's placeholder) reconciles the same way a def/type
	// does, and so localise's alias registration can find it.
	d.defineLocal("topic", name, src)
}

// desugarData lowers a `data NAME arg* = Ctor atom* | ...` declaration
// per spec.md §4.4: one Sum, one Constructor per alternative, and one
// top-level curried function def per constructor building a value of
// that Sum (parseDataConstructor reuses CST_TUPLE_ELT for each
// alternative, so a constructor's own childNodes are its argument-type
// expressions and its name is its first leaf, per parser/toplevel.go).
func (d *Desugarer) desugarData(e cst.Element, extraFlags ast.SymFlag) {
	loc := d.locOf(e)
	typeName := firstTokenText(d.file, e)
	nodes := childNodes(e)
	if len(nodes) == 0 {
		d.errorf(loc, "bad data declaration")
		return
	}
	typeArgs := leafTexts(d.file, nodes[0])
	ctorNodes := nodes[1:]

	sum := ast.NewSum(typeName, typeArgs)
	tsrc := ast.SymbolSource{Location: loc, QualifiedName: typeName + "@" + d.pkgName, Flags: ast.SymLeaf | extraFlags}
	if dup := d.defineLocal("type", typeName, tsrc); dup {
		d.errorf(loc, "%q already defined in this file", typeName)
	}

	for _, cn := range ctorNodes {
		leaves := leafTexts(d.file, cn)
		if len(leaves) == 0 {
			continue
		}
		ctorName := leaves[0]
		argNodes := childNodes(cn)
		sigArgs := make([]*ast.Pat, len(argNodes))
		for i := range argNodes {
			sigArgs[i] = &ast.Pat{}
		}
		pat := &ast.Pat{Token: ctorName, Region: d.locOf(cn), Args: sigArgs}
		ctor := sum.AddConstructor(pat, false)
		d.ctors[ctorName] = ctorInfo{sum: sum, index: ctor.Index()}
		d.addTopLevelDef(ctorName, d.buildConstructorFn(loc, sum, ctorName, len(argNodes)), extraFlags)
	}
}

// buildConstructorFn returns the curried function value a constructor
// of the given arity binds to: a nullary constructor is just the
// Construct reference itself; otherwise it's N nested lambdas wrapping
// Construct applied to each in turn.
func (d *Desugarer) buildConstructorFn(loc source.Location, sum *ast.Sum, ctorName string, arity int) *ast.Expr {
	if arity == 0 {
		return ast.NewConstruct(loc, sum, ctorName)
	}
	names := make([]string, arity)
	for i := range names {
		names[i] = d.freshName("_ c")
	}
	var args []*ast.Expr
	for _, n := range names {
		args = append(args, ast.VarRef(loc, n))
	}
	body := applyAll(loc, ast.NewConstruct(loc, sum, ctorName), args)
	out := body
	for i := arity - 1; i >= 0; i-- {
		out = ast.NewLambda(loc, names[i], out)
	}
	return out
}

// desugarTuple lowers a `tuple NAME = Member: Type, ...` declaration
// per spec.md §4.4: a Sum with exactly one Constructor (spec.md §3's
// definition of a tuple type), plus get/set/edit accessor defs for
// every member whose name is upper-case-tagged (the convention tuple
// field names follow).
func (d *Desugarer) desugarTuple(e cst.Element, extraFlags ast.SymFlag) {
	loc := d.locOf(e)
	typeName := firstTokenText(d.file, e)
	members := childNodes(e)
	names := make([]string, 0, len(members))
	for _, m := range members {
		leaves := leafTexts(d.file, m)
		if len(leaves) > 0 {
			names = append(names, leaves[0])
		}
	}

	sum := ast.NewSum(typeName, nil)
	tsrc := ast.SymbolSource{Location: loc, QualifiedName: typeName + "@" + d.pkgName, Flags: ast.SymLeaf | extraFlags}
	// The type and its constructor share typeName: the constructor def
	// added below claims the Mixed slot (and reports any duplicate), so
	// the type goes into the Types table alone.
	d.local.Types[typeName] = tsrc

	sigArgs := make([]*ast.Pat, len(names))
	for i, n := range names {
		sigArgs[i] = &ast.Pat{Name: n, Token: n}
	}
	pat := &ast.Pat{Token: typeName, Args: sigArgs, Region: loc}
	ctor := sum.AddConstructor(pat, false)
	d.ctors[typeName] = ctorInfo{sum: sum, index: ctor.Index()}
	d.addTopLevelDef(typeName, d.buildConstructorFn(loc, sum, typeName, len(names)), extraFlags)

	for i, n := range names {
		if !isUpperOrOp(n) {
			continue
		}
		d.synthesizeAccessors(loc, sum, typeName, n, i, len(names), extraFlags)
	}
}

// synthesizeAccessors builds the get<T><M>/set<T><M>/edit<T><M> trio
// spec.md §4.4 names for a tuple's upper-case-tagged members (scenario
// 3's worked example spells out `getPairFirst`, not a bare `getFirst`):
// get projects the field directly (it's just ast.NewGet); set rebuilds
// the whole value via the constructor with every other field re-read
// off the original and the named field replaced; edit composes a
// function over the current value through set.
func (d *Desugarer) synthesizeAccessors(loc source.Location, sum *ast.Sum, ctorName, member string, idx, arity int, extraFlags ast.SymFlag) {
	getName := "get" + ctorName + member
	setName := "set" + ctorName + member
	editName := "edit" + ctorName + member

	getExpr := ast.NewGet(loc, sum, ctorName, idx)
	getExpr.Flags |= ast.FlagSynthetic
	d.addTopLevelDef(getName, getExpr, extraFlags|ast.SymSynthetic)

	newVal := d.freshName("_ acc")
	self := d.freshName("_ acc")
	args := make([]*ast.Expr, arity)
	for k := 0; k < arity; k++ {
		if k == idx {
			args[k] = ast.VarRef(loc, newVal)
		} else {
			args[k] = ast.NewApp(loc, ast.NewGet(loc, sum, ctorName, k), ast.VarRef(loc, self))
		}
	}
	rebuilt := applyAll(loc, ast.NewConstruct(loc, sum, ctorName), args)
	setExpr := ast.NewLambda(loc, newVal, ast.NewLambda(loc, self, rebuilt))
	setExpr.Flags |= ast.FlagSynthetic
	d.addTopLevelDef(setName, setExpr, extraFlags|ast.SymSynthetic)

	fn := d.freshName("_ acc")
	self2 := d.freshName("_ acc")
	current := ast.NewApp(loc, ast.NewGet(loc, sum, ctorName, idx), ast.VarRef(loc, self2))
	updated := ast.NewApp(loc, ast.VarRef(loc, fn), current)
	editExpr := ast.NewLambda(loc, fn, ast.NewLambda(loc, self2,
		applyAll(loc, ast.VarRef(loc, setName), []*ast.Expr{updated, ast.VarRef(loc, self2)})))
	editExpr.Flags |= ast.FlagSynthetic
	d.addTopLevelDef(editName, editExpr, extraFlags|ast.SymSynthetic)
}
