package ast

import (
	"testing"

	"github.com/jinrudals/wake/source"
	"github.com/stretchr/testify/require"
)

func TestExprConstructors(t *testing.T) {
	var loc source.Location
	one := NewLiteral(loc, "1", "num")
	require.Equal(t, ExprLiteral, one.Kind)

	app := NewApp(loc, VarRef(loc, "f"), one)
	require.Equal(t, ExprApp, app.Kind)
	require.Equal(t, "f", app.Fn.Name)

	lam := NewLambda(loc, "x", VarRef(loc, "x"))
	require.Equal(t, ExprLambda, lam.Kind)
	require.Equal(t, "x", lam.Param)

	sum := NewSum("Bool", nil)
	sum.AddConstructor(&Pat{Token: "True"}, false)
	ctor := NewConstruct(loc, sum, "True")
	require.Equal(t, ExprConstruct, ctor.Kind)
	require.Same(t, sum, ctor.Sum)

	get := NewGet(loc, sum, "True", 0)
	require.Equal(t, 0, get.Index)

	bad := BadExpr(loc, "bad unary")
	require.Equal(t, ExprError, bad.Kind)
	require.Equal(t, "bad unary", bad.Name)
}

func TestFlagHas(t *testing.T) {
	f := FlagAST | FlagSynthetic
	require.True(t, f.Has(FlagAST))
	require.True(t, f.Has(FlagSynthetic))
	require.False(t, f.Has(FlagTouched))
}
