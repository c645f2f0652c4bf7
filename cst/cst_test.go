package cst

import (
	"testing"

	"github.com/jinrudals/wake/token"
	"github.com/stretchr/testify/require"
)

func leaf(kind token.Kind, start, end int) token.Info {
	return token.Info{Kind: kind, Start: start, End: end, OK: true}
}

// buildAppNode builds `f x`: CST_APP wrapping two ID leaves.
func buildAppNode(b *Builder) {
	b.AddToken(leaf(token.ID, 0, 1))
	b.AddToken(leaf(token.ID, 2, 3))
	b.AddNode(KindApp, 2)
}

func TestBuilderCoverage(t *testing.T) {
	b := NewBuilder()
	buildAppNode(b)
	tree := b.Freeze()

	root := tree.Root()
	require.False(t, root.Empty())
	require.Equal(t, KindTop, root.ID())
	require.True(t, root.IsNode())

	app := root.FirstChildNode()
	require.False(t, app.Empty())
	require.Equal(t, KindApp, app.ID())

	fn := app.FirstChildElement()
	require.False(t, fn.Empty())
	require.False(t, fn.IsNode())
	require.Equal(t, token.ID, token.Kind(fn.Content().Kind))

	arg := fn.NextSiblingElement(app)
	require.False(t, arg.Empty())
	require.Equal(t, 2, arg.Content().Start)

	require.True(t, arg.NextSiblingElement(app).Empty())
}

func TestFirstChildNodeSkipsLeaves(t *testing.T) {
	b := NewBuilder()
	b.AddToken(leaf(token.ID, 0, 1))
	b.AddToken(leaf(token.ID, 2, 3))
	b.AddNode(KindApp, 2)
	tree := b.Freeze()

	// KindApp's children are both leaves: FirstChildNode must be empty.
	app := tree.Root().FirstChildNode()
	require.True(t, app.FirstChildNode().Empty())
}

func TestTokenIndexAt(t *testing.T) {
	b := NewBuilder()
	b.AddToken(leaf(token.ID, 0, 1))
	b.AddToken(leaf(token.ID, 5, 6))
	tree := b.Freeze()

	require.Equal(t, 0, tree.TokenIndexAt(0))
	require.Equal(t, 1, tree.TokenIndexAt(1))
	require.Equal(t, 2, tree.TokenIndexAt(6))
}

// TestCSTCoverage checks part of property test P2 (spec.md §8): every
// node's range has begin<=end, and token ranges in document order form
// a non-decreasing sequence. Containment of children's ranges in their
// parent's is not checked here.
func TestCSTCoverage(t *testing.T) {
	b := NewBuilder()
	buildAppNode(b)
	tree := b.Freeze()

	for _, n := range tree.Nodes {
		require.LessOrEqual(t, n.Begin, n.End)
	}
	prevEnd := -1
	for _, tok := range tree.Tokens {
		require.GreaterOrEqual(t, tok.Start, prevEnd)
		prevEnd = tok.End
	}
}
