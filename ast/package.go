package ast

// File is one source file's contribution to a Package: its definitions
// (in declaration order, already localised to `name@package` form by
// the time desugaring finishes, spec.md §4.4's "Localisation"), the
// topics it declares, and a `local` symbol table used while desugaring
// that file to catch collisions between its own definitions, its
// imports, and its re-exports.
type File struct {
	Name   string
	Defs   *Expr // a DefMap: the file's top-level definitions and trailing body
	Topics *Symbols
	Local  *Symbols

	// ImportAll holds package names wildcard-imported by this file
	// (spec.md §4.4's "A wildcard import ... records the package in
	// import_all").
	ImportAll []string
}

// NewFile returns an empty File named name.
func NewFile(name string) *File {
	return &File{Name: name, Topics: NewSymbols(), Local: NewSymbols()}
}

// Package groups every File sharing one package name, plus the symbol
// tables spec.md §3 assigns at the package level: Exports (names
// visible to other packages) and the package-local table joining every
// File's declarations.
type Package struct {
	Name    string
	Files   []*File
	Exports *Symbols
	Package *Symbols
}

// NewPackage returns an empty Package named name.
func NewPackage(name string) *Package {
	return &Package{Name: name, Exports: NewSymbols(), Package: NewSymbols()}
}

// Merge folds other into p in place, per spec.md §4.4's package-merge
// rule: exports are unioned (duplicates are the caller's job to detect
// before calling Merge, the same way Symbols.Merge leaves it to the
// caller), the package table is joined, and file lists concatenated.
// Order of the resulting Files slice reflects merge call order, not
// original file order; spec.md §8's P5 only requires set equality.
func (p *Package) Merge(other *Package) {
	p.Exports.Merge(other.Exports)
	p.Package.Merge(other.Package)
	p.Files = append(p.Files, other.Files...)
}

// Top is desugar_top's sole non-diagnostic result (spec.md §2, §6):
// every package assembled from the parsed files, plus a Globals symbol
// table for names declared with the `global` keyword, visible without
// package qualification anywhere.
type Top struct {
	Packages map[string]*Package
	Globals  *Symbols
}

// NewTop returns an empty Top.
func NewTop() *Top {
	return &Top{Packages: make(map[string]*Package), Globals: NewSymbols()}
}

// PackageOrNew returns the existing Package named name, creating and
// registering an empty one if none exists yet.
func (t *Top) PackageOrNew(name string) *Package {
	if pkg, ok := t.Packages[name]; ok {
		return pkg
	}
	pkg := NewPackage(name)
	t.Packages[name] = pkg
	return pkg
}
