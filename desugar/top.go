package desugar

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jinrudals/wake/ast"
	"github.com/jinrudals/wake/diagnostics"
	"github.com/jinrudals/wake/parser"
	"github.com/jinrudals/wake/source"
)

// fileResult is one file's independent parse+desugar outcome: its
// resolved package name, its desugared form, and the diagnostics
// raised while producing it.
type fileResult struct {
	pkgName string
	file    *ast.File
	diags   *diagnostics.Sink
}

// formatLoc renders a Location the same way diagnostics.Diagnostic does
// for console output, without needing a full Diagnostic (Location has no
// Stringer of its own).
func formatLoc(l source.Location) string {
	return fmt.Sprintf("%s:%d:%d-%d:%d", l.Filename, l.Start.Row, l.Start.Column, l.End.Row, l.End.Column)
}

// DesugarTop is desugar_top's entry point (spec.md §4.4's opening line
// and §2's pipeline diagram): parse and desugar every file, then group
// the results into Top by package name. Package resolution (the
// `package NAME` form, or the filename as a fallback) happens per file
// inside DesugarFile; this function's own added job is merging files
// that resolved to the same package name, per spec.md §4.4's "Multiple
// files with the same package name are merged" rule and §8's P5.
//
// Each file's parse+desugar is independent of every other file's, so
// they run concurrently via errgroup.Group, each into its own
// diagnostics.Sink; the merge step afterward — which is not
// commutative in its diagnostic output, since a cross-file duplicate
// is reported against whichever file joined the package second — folds
// results back in files' original order, giving deterministic output
// regardless of goroutine scheduling.
func DesugarTop(files []*source.File, diags *diagnostics.Sink) *ast.Top {
	results := make([]fileResult, len(files))
	var g errgroup.Group
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			fileDiags := diagnostics.NewSink()
			tree := parser.New(file, fileDiags).Parse()
			d := New(file, tree, fileDiags)
			f := d.DesugarFile(file.Filename) // sets the package name PackageName reports
			results[i] = fileResult{
				pkgName: d.PackageName(),
				file:    f,
				diags:   fileDiags,
			}
			return nil
		})
	}
	g.Wait() // every Go func above always returns nil; no error to check

	top := ast.NewTop()
	for _, r := range results {
		diags.Merge(r.diags)
		mergeFile(top, r.pkgName, r.file, diags)
	}
	return top
}

// mergeFile folds one desugared file into top's package table: a
// fresh single-file Package is built from f (its exports pulled from
// the SymExported-flagged entries of f.Local, per spec.md §4.4's
// "Exports" rule), duplicate top-level names across the package's
// files-so-far are reported, then the file joins the package via
// ast.Package.Merge — which itself only unions maps and concatenates
// file lists, leaving duplicate detection to the caller, as its own
// doc comment says.
func mergeFile(top *ast.Top, pkgName string, f *ast.File, diags *diagnostics.Sink) {
	pkg := top.PackageOrNew(pkgName)
	reportCrossFileDuplicates(pkg.Package, f.Local, diags)

	incoming := ast.NewPackage(pkgName)
	incoming.Files = []*ast.File{f}
	incoming.Package.Merge(f.Local)
	incoming.Exports.Merge(exportsOf(f.Local))
	pkg.Merge(incoming)

	mergeGlobalFlagged(top.Globals, f.Local, diags)
}

// reportCrossFileDuplicates flags a qualified name (`name@pkg`, which
// two files only share by actually being the same package) that
// already exists in a package's joined table before folding in a new
// file's local table — a genuine cross-file duplicate definition,
// as opposed to same-named-but-differently-qualified locals in
// unrelated packages, which never collide here.
func reportCrossFileDuplicates(joined *ast.Symbols, incoming *ast.Symbols, diags *diagnostics.Sink) {
	for name, src := range incoming.Mixed {
		if !isQualifiedName(name) {
			continue
		}
		if prior, ok := joined.Mixed[name]; ok {
			diags.Errorf(src.Location, "%q already defined at %s", name, formatLoc(prior.Location))
		}
	}
}

func isQualifiedName(name string) bool {
	for _, r := range name {
		if r == '@' {
			return true
		}
	}
	return false
}

// exportsOf returns the subset of local's four tables flagged
// SymExported, the package-level Exports table's contribution from one
// file.
func exportsOf(local *ast.Symbols) *ast.Symbols {
	out := ast.NewSymbols()
	copyExported(out.Defs, local.Defs)
	copyExported(out.Types, local.Types)
	copyExported(out.Topics, local.Topics)
	copyExported(out.Mixed, local.Mixed)
	return out
}

func copyExported(dst, src map[string]ast.SymbolSource) {
	for k, v := range src {
		if v.Has(ast.SymExported) {
			dst[k] = v
		}
	}
}

// mergeGlobalFlagged folds every SymGlobal-flagged local name into
// top's Globals table, visible without package qualification anywhere
// per spec.md §4.4's `global` keyword.
func mergeGlobalFlagged(globals *ast.Symbols, local *ast.Symbols, diags *diagnostics.Sink) {
	for name, src := range local.Defs {
		if src.Has(ast.SymGlobal) {
			if prior, dup := globals.DefineDef(name, src); dup {
				diags.Errorf(src.Location, "global %q already defined at %s", name, formatLoc(prior.Location))
			}
		}
	}
	for name, src := range local.Types {
		if src.Has(ast.SymGlobal) {
			if prior, dup := globals.DefineType(name, src); dup {
				diags.Errorf(src.Location, "global type %q already defined at %s", name, formatLoc(prior.Location))
			}
		}
	}
	for name, src := range local.Topics {
		if src.Has(ast.SymGlobal) {
			if prior, dup := globals.DefineTopic(name, src); dup {
				diags.Errorf(src.Location, "global topic %q already defined at %s", name, formatLoc(prior.Location))
			}
		}
	}
}
