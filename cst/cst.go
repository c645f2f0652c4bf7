// Package cst implements the flat, rank-indexed Concrete Syntax Tree
// described in spec.md §3 and §4.3: an array of nodes, in document
// (pre-)order so that "size counts siblings to skip to reach the next
// sibling; children follow immediately at index+1", plus a parallel
// token vector and a rank index mapping any byte offset to the token
// starting there. The parser builds it bottom-up (post-order, as each
// grammar rule reduces) via Builder; Freeze serializes that into the
// pre-order array the walk API (Element) expects.
package cst

import (
	"sort"

	"github.com/jinrudals/wake/token"
)

// NodeID identifies a CST node: either a lexical token.Kind cast into
// this space (a leaf) or one of the Kind* non-terminal constants below
// (an interior node).
type NodeID int

// Non-terminal node ids, offset well past token.Kind's range so a leaf
// id and an interior id are never confused.
const (
	nonTerminalBase NodeID = 1 << 16

	KindApp NodeID = nonTerminalBase + iota
	KindBinary
	KindUnary
	KindDef
	KindData
	KindTuple
	KindMatch
	KindIf
	KindImport
	KindExport
	KindPackage
	KindTopic
	KindParen
	KindHole
	KindLiteral
	KindInterpolate
	KindID
	KindOp
	KindBlock
	KindGuard
	KindRequire
	KindLambda
	KindSubscribe
	KindPrim
	KindCase
	KindTupleElt
	KindTop
	KindError
	KindKind
	KindArity
	KindFlagExport
	KindFlagGlobal
	KindIDEq
)

func leafID(k token.Kind) NodeID { return NodeID(k) }

var interiorNames = map[NodeID]string{
	KindApp:         "App",
	KindBinary:      "Binary",
	KindUnary:       "Unary",
	KindDef:         "Def",
	KindData:        "Data",
	KindTuple:       "Tuple",
	KindMatch:       "Match",
	KindIf:          "If",
	KindImport:      "Import",
	KindExport:      "Export",
	KindPackage:     "Package",
	KindTopic:       "Topic",
	KindParen:       "Paren",
	KindHole:        "Hole",
	KindLiteral:     "Literal",
	KindInterpolate: "Interpolate",
	KindID:          "ID",
	KindOp:          "Op",
	KindBlock:       "Block",
	KindGuard:       "Guard",
	KindRequire:     "Require",
	KindLambda:      "Lambda",
	KindSubscribe:   "Subscribe",
	KindPrim:        "Prim",
	KindCase:        "Case",
	KindTupleElt:    "TupleElt",
	KindTop:         "Top",
	KindError:       "Error",
	KindKind:        "Kind",
	KindArity:       "Arity",
	KindFlagExport:  "FlagExport",
	KindFlagGlobal:  "FlagGlobal",
	KindIDEq:        "IDEq",
}

// String renders a NodeID's name: a token.Kind's own name for a leaf,
// or one of the names above for an interior node, matching
// token.Kind.String's "INVALID" fallback for anything out of range.
func (id NodeID) String() string {
	if id < nonTerminalBase {
		return token.Kind(id).String()
	}
	if name, ok := interiorNames[id]; ok {
		return name
	}
	return "INVALID"
}

// Node is one entry in the flat, pre-order CST array: a leaf (ID is a
// token Kind) or an interior node (ID is one of the Kind* constants).
// Size counts the number of array entries — self included — to skip to
// reach the next sibling; children immediately follow at index+1.
//
// [Begin, End) is a half-open byte range, matching token.Info's own
// Start/End — converting to a source.Location (where the end
// coordinate names the last included byte) is Element.Location's job,
// not this struct's.
type Node struct {
	ID    NodeID
	Size  int
	Begin int
	End   int
}

// Tree is the frozen result of a Builder run.
type Tree struct {
	Nodes    []Node
	Tokens   []token.Info // leaves, in document order
	tokStart []int        // Tokens[i].Start, sorted, for rank-select lookup
}

// TokenIndexAt returns the index into Tokens of the first token whose
// Start is >= offset, or len(Tokens) if none.
func (t *Tree) TokenIndexAt(offset int) int {
	return sort.Search(len(t.tokStart), func(i int) bool { return t.tokStart[i] >= offset })
}

// Root returns the element for the tree's single top-level node
// (conventionally KindTop), which spans the whole CST.
func (t *Tree) Root() Element {
	if len(t.Nodes) == 0 {
		return Element{tree: t, index: -1}
	}
	return Element{tree: t, index: 0}
}

// pending is an in-progress subtree held on the Builder's stack: either
// a leaf (token set, children nil) or an interior node under
// construction (children holds its already-completed sub-pendings, in
// order).
type pending struct {
	id       NodeID
	begin    int
	end      int
	token    token.Info
	isLeaf   bool
	children []*pending
}

// Builder constructs a Tree bottom-up, the way a shift-reduce parser
// naturally produces it: AddToken records a leaf as soon as it is
// shifted; AddNode(id, n) reduces the last n completed top-level
// entries into one new interior node, the way a grammar rule reduces
// its right-hand side. Nothing is laid into the final flat array until
// Freeze, which serializes the completed stack in pre-order.
type Builder struct {
	stack []*pending
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder { return &Builder{} }

// Depth returns the number of completed top-level entries currently on
// the stack. A production rule snapshots Depth before parsing its
// children and passes (Depth()-snapshot) to AddNode afterward, so the
// child count never has to be hand-counted or kept in sync by hand.
func (b *Builder) Depth() int { return len(b.stack) }

// AddToken pushes a leaf for tok.
func (b *Builder) AddToken(tok token.Info) {
	b.stack = append(b.stack, &pending{id: leafID(tok.Kind), begin: tok.Start, end: tok.End, token: tok, isLeaf: true})
}

// AddNode pops the last n entries off the stack (in the order they
// were pushed) and pushes one new interior node of the given id
// wrapping them as children. Its byte range spans its children's
// combined range.
func (b *Builder) AddNode(id NodeID, n int) {
	children := b.popN(n)
	begin, end := 0, 0
	if len(children) > 0 {
		begin, end = children[0].begin, children[len(children)-1].end
	}
	b.stack = append(b.stack, &pending{id: id, begin: begin, end: end, children: children})
}

// AddNodeAt is AddNode for an empty interior node (no children, e.g. an
// empty parenthesised block), where begin/end must be supplied
// explicitly since there are no children to derive them from.
func (b *Builder) AddNodeAt(id NodeID, begin, end int) {
	b.stack = append(b.stack, &pending{id: id, begin: begin, end: end})
}

func (b *Builder) popN(n int) []*pending {
	if n > len(b.stack) {
		n = len(b.stack)
	}
	start := len(b.stack) - n
	children := append([]*pending(nil), b.stack[start:]...)
	b.stack = b.stack[:start]
	return children
}

// Freeze finalizes the Builder into an immutable Tree, wrapping
// whatever remains on the stack under a single KindTop node (unless
// the stack already holds exactly one entry of that id). The Builder
// must not be used afterward.
func (b *Builder) Freeze() *Tree {
	root := b.stack
	var top *pending
	if len(root) == 1 && root[0].id == KindTop {
		top = root[0]
	} else {
		begin, end := 0, 0
		if len(root) > 0 {
			begin, end = root[0].begin, root[len(root)-1].end
		}
		top = &pending{id: KindTop, begin: begin, end: end, children: root}
	}
	t := &Tree{}
	serialize(top, t)
	starts := make([]int, len(t.Tokens))
	for i, tok := range t.Tokens {
		starts[i] = tok.Start
	}
	t.tokStart = starts
	return t
}

// serialize appends p's pre-order encoding to t, returning the number
// of Node entries written (p's own subtree size).
func serialize(p *pending, t *Tree) int {
	idx := len(t.Nodes)
	t.Nodes = append(t.Nodes, Node{ID: p.id, Begin: p.begin, End: p.end})
	if p.isLeaf {
		t.Tokens = append(t.Tokens, p.token)
		t.Nodes[idx].Size = 1
		return 1
	}
	size := 1
	for _, c := range p.children {
		size += serialize(c, t)
	}
	t.Nodes[idx].Size = size
	return size
}
