package ast

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSumTupleIsSingleConstructor(t *testing.T) {
	sum := NewSum("Pair", nil)
	ctor := sum.AddConstructor(&Pat{Token: "Pair", Args: []*Pat{{Name: "First"}, {Name: "Second"}}}, false)
	require.True(t, sum.IsTuple())
	require.Equal(t, 0, ctor.Index())
	require.Equal(t, 2, ctor.Arity())
	require.Equal(t, int32(1), sum.Refs())
}

func TestSumMultipleConstructorsIndexedInOrder(t *testing.T) {
	sum := NewSum("Bool", nil)
	c0 := sum.AddConstructor(&Pat{Token: "True"}, false)
	c1 := sum.AddConstructor(&Pat{Token: "False"}, false)
	require.False(t, sum.IsTuple())
	require.Equal(t, 0, c0.Index())
	require.Equal(t, 1, c1.Index())
	require.Same(t, sum, c0.Sum())
	require.Same(t, sum, c1.Sum())
	require.Equal(t, int32(2), sum.Refs())
}

func TestConstructorReleaseDropsRef(t *testing.T) {
	sum := NewSum("Bool", nil)
	ctor := sum.AddConstructor(&Pat{Token: "True"}, false)
	require.Equal(t, int32(1), sum.Refs())
	ctor.Release()
	require.Equal(t, int32(0), sum.Refs())
}

func TestPatTruthyAndWildcard(t *testing.T) {
	named := &Pat{Token: "x", Name: "x"}
	require.True(t, named.Truthy())
	require.False(t, named.IsWildcard())

	hole := &Pat{Token: "_"}
	require.False(t, hole.Truthy())
	require.True(t, hole.IsWildcard())
}
