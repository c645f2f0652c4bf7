package desugar

import (
	"github.com/jinrudals/wake/cst"
	"github.com/jinrudals/wake/source"
	"github.com/jinrudals/wake/token"
)

// children returns every direct child Element of e (leaves and nodes
// alike), in document order. Small helper over the low-level
// FirstChildElement/NextSiblingElement walk, used throughout desugar
// since most productions need to inspect several children by position
// rather than just the first node.
func children(e cst.Element) []cst.Element {
	var out []cst.Element
	c := e.FirstChildElement()
	for !c.Empty() {
		out = append(out, c)
		c = c.NextSiblingElement(e)
	}
	return out
}

// childNodes returns every direct child Element of e that is itself an
// interior node, skipping leaves (keyword/punctuation tokens).
func childNodes(e cst.Element) []cst.Element {
	var out []cst.Element
	c := e.FirstChildNode()
	for !c.Empty() {
		out = append(out, c)
		c = c.NextSiblingNode(e)
	}
	return out
}

// text returns the source text backing a leaf Element.
func text(file *source.File, e cst.Element) string {
	if e.Empty() || e.IsNode() {
		return ""
	}
	tok := e.Content()
	if tok.Start < 0 || tok.End > len(file.Bytes) || tok.Start > tok.End {
		return ""
	}
	return string(file.Bytes[tok.Start:tok.End])
}

// firstTokenText returns the text of the first ID/leaf token among e's
// direct children, used for simple "keyword then one name" productions
// like `package NAME` and `topic NAME : ...`.
func firstTokenText(file *source.File, e cst.Element) string {
	for _, c := range children(e) {
		if !c.IsNode() && c.ID() != cst.NodeID(token.PACKAGE) && c.ID() != cst.NodeID(token.TOPIC) &&
			c.ID() != cst.NodeID(token.DATA) && c.ID() != cst.NodeID(token.TUPLE) &&
			c.ID() != cst.NodeID(token.DEF) && c.ID() != cst.NodeID(token.TARGET) &&
			c.ID() != cst.NodeID(token.PUBLISH) && c.ID() != cst.NodeID(token.FROM) &&
			c.ID() != cst.NodeID(token.IMPORT) {
			return text(file, c)
		}
	}
	return ""
}

// leafTexts returns the text of every leaf (non-node) direct child of
// e, in order. Used for flat token runs like parseNameList's output.
func leafTexts(file *source.File, e cst.Element) []string {
	var out []string
	for _, c := range children(e) {
		if !c.IsNode() {
			out = append(out, text(file, c))
		}
	}
	return out
}

// rawSpan returns e's whole backing source text, leaves and nodes
// alike — used where the desugarer needs to capture a subtree verbatim
// rather than lower it (a target's memoized body, quoted back out as a
// string literal for the tnew primitive).
func rawSpan(file *source.File, e cst.Element) string {
	if e.Empty() {
		return ""
	}
	begin, end := e.Span()
	if begin < 0 || end > len(file.Bytes) || begin > end {
		return ""
	}
	return string(file.Bytes[begin:end])
}
