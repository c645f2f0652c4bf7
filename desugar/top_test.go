package desugar

import (
	"testing"

	"github.com/jinrudals/wake/ast"
	"github.com/jinrudals/wake/diagnostics"
	"github.com/jinrudals/wake/source"
	"github.com/stretchr/testify/require"
)

func srcFile(t *testing.T, name, text string) *source.File {
	t.Helper()
	f, err := source.FromString(name, text)
	require.NoError(t, err)
	return f
}

func TestDesugarTopMergesFilesOfSamePackage(t *testing.T) {
	a := srcFile(t, "a.wake", "package p\ndef x = 1\n")
	b := srcFile(t, "b.wake", "package p\ndef y = 2\n")
	diags := diagnostics.NewSink()
	top := DesugarTop([]*source.File{a, b}, diags)
	require.False(t, diags.HasSeverity(diagnostics.ERROR))

	require.Len(t, top.Packages, 1)
	pkg, ok := top.Packages["p"]
	require.True(t, ok)
	require.Len(t, pkg.Files, 2)
	require.Contains(t, pkg.Package.Mixed, "x@p")
	require.Contains(t, pkg.Package.Mixed, "y@p")
}

func TestDesugarTopKeepsDistinctPackagesSeparate(t *testing.T) {
	a := srcFile(t, "a.wake", "package p\ndef x = 1\n")
	b := srcFile(t, "b.wake", "package q\ndef x = 2\n")
	diags := diagnostics.NewSink()
	top := DesugarTop([]*source.File{a, b}, diags)
	require.False(t, diags.HasSeverity(diagnostics.ERROR))

	require.Len(t, top.Packages, 2)
	require.Contains(t, top.Packages["p"].Package.Mixed, "x@p")
	require.Contains(t, top.Packages["q"].Package.Mixed, "x@q")
}

func TestDesugarTopReportsCrossFileDuplicate(t *testing.T) {
	a := srcFile(t, "a.wake", "package p\ndef x = 1\n")
	b := srcFile(t, "b.wake", "package p\ndef x = 2\n")
	diags := diagnostics.NewSink()
	DesugarTop([]*source.File{a, b}, diags)
	require.True(t, diags.HasSeverity(diagnostics.ERROR))
}

func TestDesugarTopPackageMergeIsOrderIndependent(t *testing.T) {
	a := srcFile(t, "a.wake", "package p\ndef x = 1\n")
	b := srcFile(t, "b.wake", "package p\ndef y = 2\n")

	diags1 := diagnostics.NewSink()
	forward := DesugarTop([]*source.File{a, b}, diags1)
	require.False(t, diags1.HasSeverity(diagnostics.ERROR))

	diags2 := diagnostics.NewSink()
	backward := DesugarTop([]*source.File{b, a}, diags2)
	require.False(t, diags2.HasSeverity(diagnostics.ERROR))

	forwardNames := namesOf(forward.Packages["p"].Package)
	backwardNames := namesOf(backward.Packages["p"].Package)
	require.ElementsMatch(t, forwardNames, backwardNames)
}

func namesOf(s *ast.Symbols) []string {
	out := make([]string, 0, len(s.Mixed))
	for k := range s.Mixed {
		out = append(out, k)
	}
	return out
}

func TestDesugarTopCollectsExports(t *testing.T) {
	a := srcFile(t, "a.wake", "package p\nexport def x = 1\ndef y = 2\n")
	diags := diagnostics.NewSink()
	top := DesugarTop([]*source.File{a}, diags)
	require.False(t, diags.HasSeverity(diagnostics.ERROR))

	pkg := top.Packages["p"]
	require.Contains(t, pkg.Exports.Mixed, "x@p")
	require.NotContains(t, pkg.Exports.Mixed, "y@p")
}

func TestDesugarTopPropagatesGlobals(t *testing.T) {
	a := srcFile(t, "a.wake", "package p\nglobal def g = 1\n")
	diags := diagnostics.NewSink()
	top := DesugarTop([]*source.File{a}, diags)
	require.False(t, diags.HasSeverity(diagnostics.ERROR))
	require.Contains(t, top.Globals.Mixed, "g@p")
}

func TestDesugarTopReportsDuplicateGlobalAcrossPackages(t *testing.T) {
	a := srcFile(t, "a.wake", "package p\nglobal def g = 1\n")
	b := srcFile(t, "b.wake", "package q\nglobal def g = 2\n")
	diags := diagnostics.NewSink()
	DesugarTop([]*source.File{a, b}, diags)
	require.True(t, diags.HasSeverity(diagnostics.ERROR))
}
