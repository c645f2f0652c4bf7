package ast

import "sync/atomic"

// Sum is a nominal algebraic data type: the desugared form of both
// `data` and `tuple` declarations (a tuple is a Sum with exactly one
// Constructor, per spec.md §3). Every Constructor in Members holds a
// back-reference to its parent Sum, which spec.md §9 calls out as an
// intentional cycle: "implement using shared ownership with reference
// counting on Sum and plain indices from Constructor to Sum::members
// (no weak pointers needed because the cycle is internal to one shared
// object)". Go's garbage collector already handles reference cycles, so
// refs here exists only to mirror that design note's externally
// observable behaviour (content-addressed identity is stable for as
// long as any Constructor referencing this Sum is reachable) rather
// than to prevent a real leak.
type Sum struct {
	Name    string
	Args    []string // type parameter names, lower-case per spec.md §7
	Members []*Constructor

	refs int32
}

// NewSum returns a Sum with no members yet; AddConstructor appends them
// one at a time so each Constructor's Index matches its final position.
func NewSum(name string, args []string) *Sum {
	return &Sum{Name: name, Args: args}
}

// AddConstructor appends a new Constructor bound to sum, at the next
// available index, and returns it.
func (s *Sum) AddConstructor(ast *Pat, scoped bool) *Constructor {
	c := &Constructor{sum: s, ast: ast, index: len(s.Members), scoped: scoped}
	s.Members = append(s.Members, c)
	s.hold()
	return c
}

// IsTuple reports whether s is a tuple type: exactly one constructor.
func (s *Sum) IsTuple() bool { return len(s.Members) == 1 }

func (s *Sum) hold()    { atomic.AddInt32(&s.refs, 1) }
func (s *Sum) release() { atomic.AddInt32(&s.refs, -1) }

// Refs returns the current number of Constructors (and any other
// explicit holder, via Hold/Release) keeping s alive, matching
// spec.md's "Sum is shared via reference counting" wording. Not needed
// for correctness under Go's GC, but kept so desugarer diagnostics and
// tests can assert on it directly (e.g. "a Sum with no remaining
// constructors after a failed data declaration still reports 0 refs").
func (s *Sum) Refs() int32 { return atomic.LoadInt32(&s.refs) }

// Hold/Release let a caller outside Constructor (e.g. the desugarer
// holding a Sum temporarily while synthesising accessors) participate
// in the same counting discipline.
func (s *Sum) Hold()    { s.hold() }
func (s *Sum) Release() { s.release() }

// Constructor is one arm of a Sum: its AST signature (head name plus
// argument patterns, reusing Pat rather than a separate type since a
// constructor's shape is exactly a pattern's), its Index (position in
// Sum.Members, fixed at construction), and whether it is package-
// scoped (visible only within its defining package) or exported.
type Constructor struct {
	sum    *Sum
	ast    *Pat
	index  int
	scoped bool
}

// Sum returns the constructor's parent sum.
func (c *Constructor) Sum() *Sum { return c.sum }

// AST returns the constructor's signature pattern.
func (c *Constructor) AST() *Pat { return c.ast }

// Index returns the constructor's position within its parent's
// Members, matching spec.md §3's "its index equals its position in
// members".
func (c *Constructor) Index() int { return c.index }

// Scoped reports whether this constructor was declared package-local.
func (c *Constructor) Scoped() bool { return c.scoped }

// Arity returns the number of arguments this constructor's signature
// carries.
func (c *Constructor) Arity() int {
	if c.ast == nil {
		return 0
	}
	return len(c.ast.Args)
}

// Release drops this constructor's hold on its parent Sum. Called when
// a desugar pass discards a partially-built constructor (e.g. after
// reporting a duplicate-name error) so Sum.Refs stays accurate.
func (c *Constructor) Release() {
	if c.sum != nil {
		c.sum.release()
	}
}
