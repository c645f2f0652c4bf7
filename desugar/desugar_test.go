package desugar

import (
	"testing"

	"github.com/jinrudals/wake/ast"
	"github.com/jinrudals/wake/diagnostics"
	"github.com/jinrudals/wake/parser"
	"github.com/jinrudals/wake/source"
	"github.com/stretchr/testify/require"
)

func desugarSrc(t *testing.T, text string) (*ast.File, *Desugarer, *diagnostics.Sink) {
	t.Helper()
	file, err := source.FromString("t", text)
	require.NoError(t, err)
	diags := diagnostics.NewSink()
	tree := parser.New(file, diags).Parse()
	d := New(file, tree, diags)
	f := d.DesugarFile("t")
	return f, d, diags
}

func TestDesugarSimpleValueDef(t *testing.T) {
	f, _, diags := desugarSrc(t, "def x = 1\n")
	require.False(t, diags.HasSeverity(diagnostics.ERROR))
	require.Contains(t, f.Defs.Defs, "x@t")
	require.Equal(t, ast.ExprLiteral, f.Defs.Defs["x@t"].Kind)
}

func TestDesugarCurriedDef(t *testing.T) {
	f, _, diags := desugarSrc(t, "def add a b = a\n")
	require.False(t, diags.HasSeverity(diagnostics.ERROR))
	fn, ok := f.Defs.Defs["add@t"]
	require.True(t, ok)
	require.Equal(t, ast.ExprLambda, fn.Kind)
	require.Equal(t, "a", fn.Param)
	require.Equal(t, ast.ExprLambda, fn.Body.Kind)
	require.Equal(t, "b", fn.Body.Param)
}

func TestDesugarOperatorDefCurries(t *testing.T) {
	f, _, diags := desugarSrc(t, "def a + b = a\n")
	require.False(t, diags.HasSeverity(diagnostics.ERROR))
	fn, ok := f.Defs.Defs["+@t"]
	require.True(t, ok)
	require.Equal(t, ast.ExprLambda, fn.Kind)
}

func TestDesugarDataConstructors(t *testing.T) {
	f, d, diags := desugarSrc(t, "data Bool2 = True2 | False2\n")
	require.False(t, diags.HasSeverity(diagnostics.ERROR))
	require.Contains(t, f.Defs.Defs, "True2@t")
	require.Contains(t, f.Defs.Defs, "False2@t")
	require.Equal(t, ast.ExprConstruct, f.Defs.Defs["True2@t"].Kind)
	ctor, ok := d.ctors["True2"]
	require.True(t, ok)
	require.Equal(t, 0, ctor.index)
	require.Equal(t, 2, len(ctor.sum.Members))
	require.True(t, ctor.sum.Refs() > 0)
}

func TestDesugarDataConstructorWithArgsCurries(t *testing.T) {
	f, _, diags := desugarSrc(t, "data Box a = MkBox a\n")
	require.False(t, diags.HasSeverity(diagnostics.ERROR))
	fn, ok := f.Defs.Defs["MkBox@t"]
	require.True(t, ok)
	require.Equal(t, ast.ExprLambda, fn.Kind)
	require.Equal(t, ast.ExprApp, fn.Body.Kind)
}

func TestDesugarTupleAccessors(t *testing.T) {
	f, _, diags := desugarSrc(t, "tuple Pair = First: Integer, Second: Integer\n")
	require.False(t, diags.HasSeverity(diagnostics.ERROR))
	require.Contains(t, f.Defs.Defs, "Pair@t")
	require.Contains(t, f.Defs.Defs, "getPairFirst@t")
	require.Contains(t, f.Defs.Defs, "setPairFirst@t")
	require.Contains(t, f.Defs.Defs, "editPairFirst@t")
	get := f.Defs.Defs["getPairFirst@t"]
	require.Equal(t, ast.ExprGet, get.Kind)
	require.Equal(t, 0, get.Index)
}

func TestDesugarExtractionDef(t *testing.T) {
	f, _, diags := desugarSrc(t, "tuple Pair = First: Integer, Second: Integer\ndef Pair(a, b) = makePair\n")
	require.False(t, diags.HasSeverity(diagnostics.ERROR))
	var hiddenCount, aCount int
	for name, e := range f.Defs.Defs {
		if name == "a@t" {
			aCount++
			require.Equal(t, ast.ExprApp, e.Kind)
			require.Equal(t, ast.ExprGet, e.Fn.Kind)
		}
		if len(name) > 10 && name[:10] == "_ extract " {
			hiddenCount++
		}
	}
	require.Equal(t, 1, aCount)
	require.Equal(t, 1, hiddenCount)
}

func TestDesugarIfLowersToMatch(t *testing.T) {
	f, _, diags := desugarSrc(t, "def x = if True then 1 else 2\n")
	require.False(t, diags.HasSeverity(diagnostics.ERROR))
	m := f.Defs.Defs["x@t"]
	require.Equal(t, ast.ExprMatch, m.Kind)
	require.Len(t, m.Cases, 2)
	require.Equal(t, "True@wake", m.Cases[0].ArgPatterns[0].Ctor)
	require.Equal(t, "False@wake", m.Cases[1].ArgPatterns[0].Ctor)
}

func TestDesugarHoleLifting(t *testing.T) {
	f, _, diags := desugarSrc(t, "def x = f _\n")
	require.False(t, diags.HasSeverity(diagnostics.ERROR))
	top := f.Defs.Defs["x@t"]
	require.Equal(t, ast.ExprLambda, top.Kind)
	require.Equal(t, ast.ExprApp, top.Body.Kind)
	require.Equal(t, top.Param, top.Body.Arg.Name)
}

func TestDesugarBlockFoldsLeadingDefs(t *testing.T) {
	f, _, diags := desugarSrc(t, "def x =\n  def y = 1\n  y\n")
	require.False(t, diags.HasSeverity(diagnostics.ERROR))
	top := f.Defs.Defs["x@t"]
	require.Equal(t, ast.ExprDefMap, top.Kind)
	require.Contains(t, top.Defs, "y")
	require.Equal(t, ast.ExprVarRef, top.Body.Kind)
	require.Equal(t, "y", top.Body.Name)
}

func TestDesugarBlockLocalDefShadowsTopLevel(t *testing.T) {
	// A block-local `def x` must not be rewritten by localisation even
	// though a top-level `x` of the same bare name also exists.
	f, _, diags := desugarSrc(t, "def x = 1\ndef f y =\n  def x = 2\n  x\n")
	require.False(t, diags.HasSeverity(diagnostics.ERROR))
	fn := f.Defs.Defs["f@t"]
	require.Equal(t, ast.ExprLambda, fn.Kind)
	block := fn.Body
	require.Equal(t, ast.ExprDefMap, block.Kind)
	require.Equal(t, "x", block.Body.Name)
}

func TestDesugarTopLevelDuplicateDefReported(t *testing.T) {
	_, _, diags := desugarSrc(t, "def x = 1\ndef x = 2\n")
	require.True(t, diags.HasSeverity(diagnostics.ERROR))
}

func TestDesugarForwardExportDoesNotCollideWithLaterDef(t *testing.T) {
	f, _, diags := desugarSrc(t, "export x\ndef x = 1\n")
	require.False(t, diags.HasSeverity(diagnostics.ERROR))
	require.Contains(t, f.Defs.Defs, "x@t")
	src, ok := f.Local.Mixed["x"]
	require.True(t, ok)
	require.True(t, src.Has(ast.SymExported))
	require.True(t, src.Has(ast.SymLeaf))
}

func TestDesugarDefaultWakeImport(t *testing.T) {
	f, _, _ := desugarSrc(t, "def x = 1\n")
	require.Equal(t, []string{"wake"}, f.ImportAll)
}
