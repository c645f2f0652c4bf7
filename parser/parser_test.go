package parser

import (
	"testing"

	"github.com/jinrudals/wake/cst"
	"github.com/jinrudals/wake/diagnostics"
	"github.com/jinrudals/wake/source"
	"github.com/stretchr/testify/require"
)

func parseSrc(t *testing.T, text string) (*cst.Tree, *diagnostics.Sink) {
	t.Helper()
	file, err := source.FromString("t", text)
	require.NoError(t, err)
	diags := diagnostics.NewSink()
	tree := New(file, diags).Parse()
	return tree, diags
}

func countKind(tree *cst.Tree, id cst.NodeID) int {
	n := 0
	for _, node := range tree.Nodes {
		if node.ID == id {
			n++
		}
	}
	return n
}

func TestParseSimpleDef(t *testing.T) {
	tree, diags := parseSrc(t, "def x = 1\n")
	require.False(t, diags.HasSeverity(diagnostics.ERROR))
	require.Equal(t, 1, countKind(tree, cst.KindDef))
	require.Equal(t, 1, countKind(tree, cst.KindLiteral))
	require.Equal(t, cst.KindTop, tree.Root().ID())
	require.Equal(t, cst.KindDef, tree.Root().FirstChildNode().ID())
}

func TestParsePackageThenDef(t *testing.T) {
	tree, diags := parseSrc(t, "package p\n\ndef x = 1\n")
	require.False(t, diags.HasSeverity(diagnostics.ERROR))
	require.Equal(t, 1, countKind(tree, cst.KindPackage))
	require.Equal(t, 1, countKind(tree, cst.KindDef))
}

func TestParseBinaryPrecedence(t *testing.T) {
	// 1 + 2 * 3 must bind as 1 + (2 * 3): one ADDSUB node whose right
	// child is the MULDIV node, not the reverse.
	tree, diags := parseSrc(t, "def x = 1 + 2 * 3\n")
	require.False(t, diags.HasSeverity(diagnostics.ERROR))
	require.Equal(t, 2, countKind(tree, cst.KindBinary))
	require.Equal(t, 3, countKind(tree, cst.KindLiteral))

	def := tree.Root().FirstChildNode()
	// def's interior children, in order: the lhs CST_ID node (x), then
	// the body's CST_BINARY node (the EQUALS and DEF leaves between/
	// before them are skipped by FirstChildNode/NextSiblingNode).
	lhs := def.FirstChildNode()
	require.Equal(t, cst.KindID, lhs.ID())
	top := lhs.NextSiblingNode(def)
	require.Equal(t, cst.KindBinary, top.ID())
	right := top.FirstChildElement()
	for !right.Empty() {
		next := right.NextSiblingElement(top)
		if next.Empty() {
			break
		}
		right = next
	}
	require.True(t, right.IsNode())
	require.Equal(t, cst.KindBinary, right.ID())
}

func TestParseIfThenElse(t *testing.T) {
	tree, diags := parseSrc(t, "def x = if true then 1 else 2\n")
	require.False(t, diags.HasSeverity(diagnostics.ERROR))
	require.Equal(t, 1, countKind(tree, cst.KindIf))
	require.Equal(t, 2, countKind(tree, cst.KindLiteral))
}

func TestParseTupleDecl(t *testing.T) {
	tree, diags := parseSrc(t, "tuple Pair = First: Integer, Second: String\n")
	require.False(t, diags.HasSeverity(diagnostics.ERROR))
	require.Equal(t, 1, countKind(tree, cst.KindTuple))
	require.Equal(t, 2, countKind(tree, cst.KindTupleElt))
}

func TestParseDataDecl(t *testing.T) {
	tree, diags := parseSrc(t, "data Bool = True | False\n")
	require.False(t, diags.HasSeverity(diagnostics.ERROR))
	require.Equal(t, 1, countKind(tree, cst.KindData))
	require.Equal(t, 2, countKind(tree, cst.KindTupleElt))
}

func TestParseLambdaAndApp(t *testing.T) {
	tree, diags := parseSrc(t, "def f = \\x g x\n")
	require.False(t, diags.HasSeverity(diagnostics.ERROR))
	require.Equal(t, 1, countKind(tree, cst.KindLambda))
	require.Equal(t, 1, countKind(tree, cst.KindApp))
}

func TestParseMatch(t *testing.T) {
	tree, diags := parseSrc(t, "def f x =\n  match x\n    1 => 2\n    _ => 3\n")
	require.False(t, diags.HasSeverity(diagnostics.ERROR))
	require.Equal(t, 1, countKind(tree, cst.KindMatch))
	require.Equal(t, 2, countKind(tree, cst.KindCase))
	require.Equal(t, 1, countKind(tree, cst.KindHole))
}

func TestParseExportFlagsDef(t *testing.T) {
	tree, diags := parseSrc(t, "export def x = 1\n")
	require.False(t, diags.HasSeverity(diagnostics.ERROR))
	require.Equal(t, 1, countKind(tree, cst.KindFlagExport))
	require.Equal(t, 1, countKind(tree, cst.KindDef))
}

func TestParseImportList(t *testing.T) {
	tree, diags := parseSrc(t, "from wake import def a, def b = c\n")
	require.False(t, diags.HasSeverity(diagnostics.ERROR))
	require.Equal(t, 1, countKind(tree, cst.KindImport))
}

func TestParseUnexpectedTokenRecovers(t *testing.T) {
	// A stray ')' at top level is a syntax error, but parsing must
	// recover and still see the following def.
	tree, diags := parseSrc(t, ")\ndef x = 1\n")
	require.True(t, diags.HasSeverity(diagnostics.ERROR))
	require.Equal(t, 1, countKind(tree, cst.KindDef))
}
