package cst

import (
	"github.com/jinrudals/wake/source"
	"github.com/jinrudals/wake/token"
)

// Element is the read-only CST walk handle described in spec.md §6: a
// cursor over one Tree's flat array, addressed by index rather than by
// pointer, so walking is just array arithmetic.
type Element struct {
	tree  *Tree
	index int
}

// Empty reports whether e addresses no node (e.g. the result of
// firstChildNode on a node whose children are all leaves).
func (e Element) Empty() bool { return e.tree == nil || e.index < 0 || e.index >= len(e.tree.Nodes) }

// ID returns the node's NodeID.
func (e Element) ID() NodeID {
	if e.Empty() {
		return 0
	}
	return e.tree.Nodes[e.index].ID
}

// IsNode reports whether e addresses an interior (non-terminal) node,
// as opposed to a leaf token.
func (e Element) IsNode() bool {
	return !e.Empty() && e.tree.Nodes[e.index].ID >= nonTerminalBase
}

// node returns the underlying Node, panicking if e is Empty (callers
// must check Empty first; this mirrors the CST walk API's contract
// that an Empty Element answers only Empty()).
func (e Element) node() Node { return e.tree.Nodes[e.index] }

// Content returns the token backing a leaf Element. Calling it on an
// interior node returns the zero token.Info.
func (e Element) Content() token.Info {
	if e.Empty() || e.IsNode() {
		return token.Info{}
	}
	idx := e.tree.TokenIndexAt(e.node().Begin)
	if idx < len(e.tree.Tokens) {
		return e.tree.Tokens[idx]
	}
	return token.Info{}
}

// Location returns the source.Location spanning e's byte range.
func (e Element) Location(file *source.File) source.Location {
	if e.Empty() {
		return source.Location{Filename: file.Filename}
	}
	n := e.node()
	return file.LocationOf(n.Begin, n.End)
}

// Span returns e's raw half-open byte range, for callers that need the
// backing source text verbatim (a target's memoized body, rendered back
// out as a string literal) rather than a rendered Location.
func (e Element) Span() (begin, end int) {
	if e.Empty() {
		return 0, 0
	}
	n := e.node()
	return n.Begin, n.End
}

// FirstChildElement returns e's first child (leaf or node), or an
// Empty Element if e is a leaf or an empty interior node.
func (e Element) FirstChildElement() Element {
	if e.Empty() || !e.IsNode() || e.node().Size <= 1 {
		return Element{tree: e.tree, index: -1}
	}
	return Element{tree: e.tree, index: e.index + 1}
}

// FirstChildNode returns e's first child that is itself an interior
// node, skipping any number of leading leaf children. Per spec.md §6's
// invariant, a node whose children are all leaves yields an Empty
// Element here.
func (e Element) FirstChildNode() Element {
	c := e.FirstChildElement()
	for !c.Empty() && !c.IsNode() {
		c = c.NextSiblingElement(e)
	}
	return c
}

// NextSiblingElement returns the Element immediately following e's
// subtree, as long as that sibling is still a child of parent (parent
// bounds the walk so it cannot run past the end of parent's own
// subtree). If e is parent's last child, returns an Empty Element.
func (e Element) NextSiblingElement(parent Element) Element {
	if e.Empty() {
		return Element{tree: e.tree, index: -1}
	}
	next := e.index + e.node().Size
	limit := parent.index + parent.node().Size
	if next >= limit {
		return Element{tree: e.tree, index: -1}
	}
	return Element{tree: e.tree, index: next}
}

// NextSiblingNode returns the next sibling of e (bounded by parent)
// that is an interior node, skipping leaf siblings.
func (e Element) NextSiblingNode(parent Element) Element {
	s := e.NextSiblingElement(parent)
	for !s.Empty() && !s.IsNode() {
		s = s.NextSiblingElement(parent)
	}
	return s
}
