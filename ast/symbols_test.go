package ast

import (
	"testing"

	"github.com/jinrudals/wake/source"
	"github.com/stretchr/testify/require"
)

func TestSymbolsDefineDetectsDuplicate(t *testing.T) {
	syms := NewSymbols()
	loc := source.Location{Filename: "t"}
	_, dup := syms.DefineDef("x", SymbolSource{Location: loc, QualifiedName: "x@t", Flags: SymLeaf})
	require.False(t, dup)

	prior, dup := syms.DefineDef("x", SymbolSource{Location: loc, QualifiedName: "x@t2"})
	require.True(t, dup)
	require.Equal(t, "x@t", prior.QualifiedName)
}

func TestSymbolsDefineAcrossNamespacesCollideInMixed(t *testing.T) {
	syms := NewSymbols()
	_, dup := syms.DefineDef("T", SymbolSource{QualifiedName: "T@t"})
	require.False(t, dup)
	_, dup = syms.DefineType("T", SymbolSource{QualifiedName: "T@t"})
	require.True(t, dup, "a def and a type sharing a name must collide via Mixed")
}

func TestSymbolsMergeUnionsAllFourMaps(t *testing.T) {
	a := NewSymbols()
	a.DefineDef("x", SymbolSource{QualifiedName: "x@a"})
	b := NewSymbols()
	b.DefineDef("y", SymbolSource{QualifiedName: "y@b"})

	a.Merge(b)
	require.Contains(t, a.Defs, "x")
	require.Contains(t, a.Defs, "y")
	require.Contains(t, a.Mixed, "y")
}

func TestPackageMergeConcatenatesFilesAndUnionsExports(t *testing.T) {
	p1 := NewPackage("p")
	p1.Files = append(p1.Files, NewFile("a.wake"))
	p1.Exports.DefineDef("x", SymbolSource{QualifiedName: "x@p"})

	p2 := NewPackage("p")
	p2.Files = append(p2.Files, NewFile("b.wake"))
	p2.Exports.DefineDef("y", SymbolSource{QualifiedName: "y@p"})

	p1.Merge(p2)
	require.Len(t, p1.Files, 2)
	require.Contains(t, p1.Exports.Defs, "x")
	require.Contains(t, p1.Exports.Defs, "y")
}

func TestTopPackageOrNewCreatesOnce(t *testing.T) {
	top := NewTop()
	p1 := top.PackageOrNew("p")
	p2 := top.PackageOrNew("p")
	require.Same(t, p1, p2)
}
