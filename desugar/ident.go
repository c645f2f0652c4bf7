// Package desugar implements desugar_top (spec.md §4.4): the CST→AST
// lowering pass. It walks a cst.Tree built by the parser and produces
// an ast.Top, pushing diagnostics for every structural and semantic-
// sanity error spec.md §7 names along the way.
package desugar

import (
	"unicode"

	"github.com/jinrudals/wake/ast"
)

// identKind classifies name's first code point per spec.md §4.1's
// lex_kind: Ll → lower, Lu or Lt → upper, anything else → operator.
// Mirrors the teacher's reliance on unicode category tests elsewhere
// in lang/lex.go's rule table, adapted to a single rune check since
// this spec fixes the classification to exactly the first code point.
// Returns ast.IdentKind directly so it can be passed as-is to
// ast.Pat.IsUpper.
func identKind(name string) ast.IdentKind {
	if name == "" {
		return ast.IdentOperator
	}
	r := []rune(name)[0]
	switch {
	case unicode.Is(unicode.Ll, r):
		return ast.IdentLower
	case unicode.Is(unicode.Lu, r), unicode.Is(unicode.Lt, r):
		return ast.IdentUpper
	default:
		return ast.IdentOperator
	}
}

func isLower(name string) bool     { return identKind(name) == ast.IdentLower }
func isUpperOrOp(name string) bool { return identKind(name) != ast.IdentLower }
