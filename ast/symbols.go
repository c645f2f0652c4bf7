package ast

import "github.com/jinrudals/wake/source"

// SymFlag is the flags bitmask a SymbolSource carries, per spec.md §3.
type SymFlag int

const (
	// SymLeaf marks a symbol with no further qualification possible
	// (spec.md §3's SYM_LEAF): a plain def/type/topic name rather
	// than one re-exported or aliased through another symbol.
	SymLeaf SymFlag = 1 << iota
	// SymExported marks a symbol visible outside its defining package.
	SymExported
	// SymGlobal marks a symbol visible without qualification across
	// every package (the `global` keyword).
	SymGlobal
	// SymSynthetic marks a symbol the desugarer generated rather than
	// one written directly in source (tuple accessors, target tables).
	SymSynthetic
)

// SymbolSource is what a Symbols map resolves an unqualified name to:
// where it was declared, its fully qualified (`name@package`) name,
// and its flags.
type SymbolSource struct {
	Location      source.Location
	QualifiedName string
	Flags         SymFlag
}

// Has reports whether s's flags include bit.
func (s SymbolSource) Has(bit SymFlag) bool { return s.Flags&bit != 0 }

// Symbols holds the four separate name tables spec.md §3 describes:
// defs, types, topics, and mixed (the union used for plain name
// lookup, where defs/types/topics may collide across namespaces in a
// way only `mixed` needs to detect). The Share/Keep/Once invariant
// named in spec.md §3 is explicitly out of scope here: it belongs to
// the runtime value model, not the front-end's static symbol tables.
type Symbols struct {
	Defs   map[string]SymbolSource
	Types  map[string]SymbolSource
	Topics map[string]SymbolSource
	Mixed  map[string]SymbolSource
}

// NewSymbols returns an empty Symbols with all four maps initialised.
func NewSymbols() *Symbols {
	return &Symbols{
		Defs:   make(map[string]SymbolSource),
		Types:  make(map[string]SymbolSource),
		Topics: make(map[string]SymbolSource),
		Mixed:  make(map[string]SymbolSource),
	}
}

// DefineDef records name in both Defs and Mixed, returning the prior
// SymbolSource and true if name was already defined in either map (a
// duplicate-definition condition the caller should report).
func (s *Symbols) DefineDef(name string, src SymbolSource) (SymbolSource, bool) {
	return s.define(s.Defs, name, src)
}

// DefineType records name in both Types and Mixed.
func (s *Symbols) DefineType(name string, src SymbolSource) (SymbolSource, bool) {
	return s.define(s.Types, name, src)
}

// DefineTopic records name in both Topics and Mixed.
func (s *Symbols) DefineTopic(name string, src SymbolSource) (SymbolSource, bool) {
	return s.define(s.Topics, name, src)
}

func (s *Symbols) define(table map[string]SymbolSource, name string, src SymbolSource) (SymbolSource, bool) {
	if prior, ok := s.Mixed[name]; ok {
		return prior, true
	}
	table[name] = src
	s.Mixed[name] = src
	return SymbolSource{}, false
}

// Merge folds other into s in place, used when two files of the same
// package are combined (spec.md §4.4's package merge): duplicate names
// are left to the caller to detect beforehand via DefineDef/Type/Topic,
// since Merge itself doesn't know which file's declaration should win.
func (s *Symbols) Merge(other *Symbols) {
	for k, v := range other.Defs {
		s.Defs[k] = v
	}
	for k, v := range other.Types {
		s.Types[k] = v
	}
	for k, v := range other.Topics {
		s.Topics[k] = v
	}
	for k, v := range other.Mixed {
		s.Mixed[k] = v
	}
}
