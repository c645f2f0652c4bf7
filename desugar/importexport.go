package desugar

import (
	"github.com/jinrudals/wake/ast"
	"github.com/jinrudals/wake/cst"
	"github.com/jinrudals/wake/source"
	"github.com/jinrudals/wake/token"
)

// nameItem is one parsed entry of an import/export name list:
// `[unary|binary]? [def|type|topic]? name(=rename)?`.
type nameItem struct {
	arity  string // "unary", "binary", or ""
	kind   string // "def", "type", "topic", or ""
	name   string
	rename string // "" if not renamed
	loc    source.Location
}

// parseNameItems walks the CST_ARITY/CST_KIND/ID-or-CST_IDEQ/COMMA
// sequence parser.parseNameList produces (see parser/toplevel.go).
func (d *Desugarer) parseNameItems(items []cst.Element) []nameItem {
	var out []nameItem
	i := 0
	for i < len(items) {
		var it nameItem
		if items[i].ID() == cst.KindArity {
			if leaves := leafTexts(d.file, items[i]); len(leaves) > 0 {
				it.arity = leaves[0]
			}
			i++
		}
		if i < len(items) && items[i].ID() == cst.KindKind {
			if leaves := leafTexts(d.file, items[i]); len(leaves) > 0 {
				it.kind = leaves[0]
			}
			i++
		}
		if i >= len(items) {
			break
		}
		switch items[i].ID() {
		case cst.KindIDEq:
			leaves := leafTexts(d.file, items[i])
			// leaves: [name, "=", rename] — EQUALS is a leaf too, but
			// its text ("=") is harmless noise we just skip past by
			// position.
			if len(leaves) >= 3 {
				it.name = leaves[0]
				it.rename = leaves[2]
			} else if len(leaves) >= 1 {
				it.name = leaves[0]
			}
			it.loc = d.locOf(items[i])
			i++
		default:
			it.name = text(d.file, items[i])
			it.loc = d.locOf(items[i])
			i++
		}
		if i < len(items) && items[i].ID() == cst.NodeID(token.COMMA) {
			i++
		}
		out = append(out, it)
	}
	return out
}

// desugarImport handles both CST_IMPORT (`from PKG import ...`) and
// CST_EXPORT (`export name, ...`). Both wrap their own leading keyword
// leaf (FROM.../IMPORT, or EXPORT) ahead of the name-list items, per
// how parser/toplevel.go builds them: CST_IMPORT's first three
// children are FROM, the package ID, and IMPORT; CST_EXPORT's first
// child is just EXPORT.
func (d *Desugarer) desugarImport(e cst.Element, isExport bool) {
	all := children(e)
	var pkg string
	idx := 1
	if !isExport {
		if len(all) >= 2 {
			pkg = text(d.file, all[1])
		}
		idx = 3
	}
	if idx > len(all) {
		idx = len(all)
	}
	items := d.parseNameItems(all[idx:])
	if len(items) == 0 && !isExport {
		d.imports = append(d.imports, pkg)
		return
	}
	for _, it := range items {
		if isExport {
			d.exportLocal(it)
			continue
		}
		if it.rename != "" && it.arity == "" && identKind(it.name) == ast.IdentOperator {
			d.errorf(it.loc, "operator %q imported with a rename must specify unary or binary", it.name)
		}
		local := it.name
		if it.rename != "" {
			local = it.rename
		}
		qualified := it.name + "@" + pkg
		flags := ast.SymFlag(0)
		src := ast.SymbolSource{Location: it.loc, QualifiedName: qualified, Flags: flags}
		var dup bool
		switch it.kind {
		case "type":
			_, dup = d.local.DefineType(local, src)
		case "topic":
			_, dup = d.local.DefineTopic(local, src)
		default:
			_, dup = d.local.DefineDef(local, src)
		}
		if dup {
			d.errorf(it.loc, "%q imported more than once in this file", local)
		}
	}
}

// exportLocal records that a name should be re-exported: spec.md §4.4
// says the exported symbol is duplicated into the file's local map "to
// catch collisions with defined names" — the package-level Exports
// table itself is populated by Top once every file's local names are
// known, since a bare `export name` may name something defined later
// in the same file. If the name is already local (an earlier def or
// import in this file), its existing entry just gains SymExported;
// otherwise a placeholder entry (SymExported without SymLeaf) is
// registered, which a definition appearing later in the file takes
// over through defineLocal instead of colliding with it.
func (d *Desugarer) exportLocal(it nameItem) {
	if setSymbolFlag(d.local, it.name, ast.SymExported) {
		return
	}
	src := ast.SymbolSource{Location: it.loc, QualifiedName: it.name, Flags: ast.SymExported}
	switch it.kind {
	case "type":
		d.local.DefineType(it.name, src)
	case "topic":
		d.local.DefineTopic(it.name, src)
	default:
		d.local.DefineDef(it.name, src)
	}
}
