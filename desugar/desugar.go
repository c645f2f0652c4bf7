package desugar

import (
	"fmt"

	"github.com/jinrudals/wake/ast"
	"github.com/jinrudals/wake/cst"
	"github.com/jinrudals/wake/diagnostics"
	"github.com/jinrudals/wake/source"
)

// Desugarer walks one file's cst.Tree into an ast.File, pushing
// diagnostics to a shared sink. One Desugarer is created per file;
// package assembly (merging multiple files' ast.Package) happens one
// level up, in Top.
type Desugarer struct {
	file  *source.File
	tree  *cst.Tree
	diags *diagnostics.Sink

	fresh int // counter for synthesized internal names (_ k N, _ extract N, ...)

	pkgName string
	imports []string // from-import package names seen, in order
	topics  *ast.Symbols
	local   *ast.Symbols
	defs    map[string]*ast.Expr
	order   []string

	// ctors maps a data/tuple constructor name declared earlier in this
	// file to the Sum it belongs to, so a later `def Ctor(a, b) = ...`
	// extraction binding can look up the right Get projections. Forward
	// references (a def before the data/tuple it destructures) are not
	// resolved — see DESIGN.md's desugar entry.
	ctors map[string]ctorInfo
}

// ctorInfo is one entry of Desugarer.ctors.
type ctorInfo struct {
	sum   *ast.Sum
	index int
}

// New returns a Desugarer for tree, built from file, reporting errors
// to diags.
func New(file *source.File, tree *cst.Tree, diags *diagnostics.Sink) *Desugarer {
	return &Desugarer{
		file:   file,
		tree:   tree,
		diags:  diags,
		topics: ast.NewSymbols(),
		local:  ast.NewSymbols(),
		defs:   make(map[string]*ast.Expr),
		ctors:  make(map[string]ctorInfo),
	}
}

// freshName returns a new internal name with the given prefix, unique
// within this Desugarer, reserved per spec.md §7 ("names containing
// spaces... are reserved for desugarer use and are not reachable from
// source syntax").
func (d *Desugarer) freshName(prefix string) string {
	n := fmt.Sprintf("%s %d", prefix, d.fresh)
	d.fresh++
	return n
}

func (d *Desugarer) errorf(loc source.Location, format string, args ...interface{}) {
	d.diags.Errorf(loc, format, args...)
}

func (d *Desugarer) locOf(e cst.Element) source.Location { return e.Location(d.file) }

// DesugarFile runs the full per-file pass (spec.md §4.4, minus package
// merge, which Top applies once every file in a package has been
// desugared): package name resolution, every top-level form under
// CST_TOP in order, then localisation of this file's own top-level
// names.
func (d *Desugarer) DesugarFile(defaultName string) *ast.File {
	root := d.tree.Root()
	d.pkgName = defaultName

	child := root.FirstChildNode()
	for !child.Empty() {
		d.desugarTopLevel(child)
		child = child.NextSiblingNode(root)
	}

	if len(d.imports) == 0 {
		d.imports = append(d.imports, "wake")
	}
	d.localise()

	f := ast.NewFile(defaultName)
	f.Topics = d.topics
	f.Local = d.local
	f.ImportAll = d.imports
	fileLoc := source.Location{Filename: d.file.Filename}
	body := ast.NewLiteral(fileLoc, "()", "unit")
	f.Defs = ast.NewDefMap(fileLoc, d.defs, d.order, d.imports, body)
	return f
}

// PackageName returns the package name resolved while desugaring (a
// `package NAME` form if one was seen, else the default passed to
// DesugarFile).
func (d *Desugarer) PackageName() string { return d.pkgName }

func (d *Desugarer) desugarTopLevel(e cst.Element) {
	switch e.ID() {
	case cst.KindPackage:
		d.desugarPackageDecl(e)
	case cst.KindImport:
		d.desugarImport(e, false)
	case cst.KindExport:
		d.desugarImport(e, true)
	case cst.KindFlagExport:
		d.desugarFlagged(e, ast.SymExported)
	case cst.KindFlagGlobal:
		d.desugarFlagged(e, ast.SymGlobal)
	case cst.KindTopic:
		d.desugarTopic(e, 0)
	case cst.KindData:
		d.desugarData(e, 0)
	case cst.KindTuple:
		d.desugarTuple(e, 0)
	case cst.KindDef:
		d.desugarDef(e, 0)
	case cst.KindRequire:
		// A bare top-level require has no following block to bind
		// into; its body is the defmap's trailing expression, which
		// the parenthesised-block pass handles when require occurs
		// inside a block. At true top level this is unusual enough
		// that we degrade it to a warning rather than a hard error.
		d.diags.Warnf(d.locOf(e), "require has no effect outside a block")
	default:
		d.errorf(d.locOf(e), "unexpected top-level form")
	}
}

// desugarFlagged handles CST_FLAG_EXPORT/CST_FLAG_GLOBAL wrapping a
// def/target/topic/data/tuple: the wrapped form is desugared as usual,
// then every name it introduced into d.local gets the extra flag
// OR'd in.
func (d *Desugarer) desugarFlagged(e cst.Element, flag ast.SymFlag) {
	before := snapshotNames(d.local)
	inner := e.FirstChildNode()
	if inner.Empty() {
		return
	}
	d.desugarTopLevel(inner)
	addFlagToNewNames(d.local, before, flag)
}

// snapshotNames captures the current Mixed keys, so desugarFlagged can
// tell which names a wrapped declaration just introduced.
func snapshotNames(s *ast.Symbols) map[string]bool {
	seen := make(map[string]bool, len(s.Mixed))
	for k := range s.Mixed {
		seen[k] = true
	}
	return seen
}

func addFlagToNewNames(s *ast.Symbols, before map[string]bool, flag ast.SymFlag) {
	for k := range s.Mixed {
		if before[k] {
			continue
		}
		setSymbolFlag(s, k, flag)
	}
}

// defineLocal records name into d.local's def/type/topic table (kind
// is "type", "topic", or "" for a plain def), reconciling against an
// export-declared-but-not-yet-defined placeholder (exportLocal) rather
// than reporting it as a duplicate: such a placeholder never carries
// SymLeaf, so a real declaration recognizes and overwrites it in
// place, carrying SymExported forward. Returns true for a genuine
// duplicate (two real declarations of the same name).
func (d *Desugarer) defineLocal(kind, name string, src ast.SymbolSource) bool {
	table := d.local.Defs
	switch kind {
	case "type":
		table = d.local.Types
	case "topic":
		table = d.local.Topics
	}
	if prior, ok := d.local.Mixed[name]; ok {
		if !isExportPlaceholder(prior) {
			return true
		}
		src.Flags |= ast.SymExported
	}
	table[name] = src
	d.local.Mixed[name] = src
	return false
}

func isExportPlaceholder(src ast.SymbolSource) bool {
	return src.Flags&ast.SymLeaf == 0 && src.Flags&ast.SymExported != 0
}

// setSymbolFlag ORs flag onto name's entry in every one of s's maps
// that already carries it, returning whether name was found at all.
func setSymbolFlag(s *ast.Symbols, name string, flag ast.SymFlag) bool {
	v, ok := s.Mixed[name]
	if !ok {
		return false
	}
	v.Flags |= flag
	s.Mixed[name] = v
	if e, ok := s.Defs[name]; ok {
		e.Flags |= flag
		s.Defs[name] = e
	}
	if e, ok := s.Types[name]; ok {
		e.Flags |= flag
		s.Types[name] = e
	}
	if e, ok := s.Topics[name]; ok {
		e.Flags |= flag
		s.Topics[name] = e
	}
	return true
}

func (d *Desugarer) desugarPackageDecl(e cst.Element) {
	name := firstTokenText(d.file, e)
	if d.pkgName != "" && d.pkgName != firstPackageDefault(d) && d.pkgName != name {
		d.errorf(d.locOf(e), "package redeclared as %q, previously %q", name, d.pkgName)
	}
	d.pkgName = name
}

func firstPackageDefault(d *Desugarer) string { return d.file.Filename }
