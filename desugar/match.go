package desugar

import (
	"strings"

	"github.com/jinrudals/wake/ast"
	"github.com/jinrudals/wake/source"
)

// cmpPrimFor picks the comparison primitive spec.md §4.4 names for a
// literal sub-pattern's type: `icmp` for integers, `dcmp_nan_lt` for
// doubles, `rcmp` for regexes, and `scmp` as the default (covering
// strings and anything else). Classification is a cheap lexical sniff
// of the literal's own source text rather than routed back through the
// lexer, since by this point all that is left is the rendered token.
func cmpPrimFor(lit string) string {
	switch {
	case lit == "":
		return "scmp"
	case isIntegerLiteral(lit):
		return "icmp"
	case isDoubleLiteral(lit):
		return "dcmp_nan_lt"
	case strings.HasPrefix(lit, "`") || strings.Contains(lit, "///"):
		return "rcmp"
	default:
		return "scmp"
	}
}

func isIntegerLiteral(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '-' && i == 0 {
			continue
		}
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isDoubleLiteral(s string) bool {
	if !strings.ContainsAny(s, ".eE") {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && r != '.' && r != 'e' && r != 'E' && r != '+' && r != '-' {
			return false
		}
	}
	return true
}

// guardEquals builds the boolean guard expression comparing scrutinee
// (already bound to a fresh name) against a literal sub-pattern's
// value: `cmp scrutinee literal`. spec.md §4.4 describes these guards
// as combining via a nested match returning False@wake on LT/GT and
// the user guard's body on EQ; this implementation instead treats the
// chosen comparison primitive as already yielding the boolean equality
// test directly, since the ordering result's representation is part of
// the out-of-scope runtime value model this front end does not define.
func guardEquals(scrutinee *ast.Expr, litText string, loc source.Location) *ast.Expr {
	prim := ast.NewPrim(loc, cmpPrimFor(litText))
	lit := ast.NewLiteral(loc, litText, "")
	return ast.NewApp(loc, ast.NewApp(loc, prim, scrutinee), lit)
}

// andGuards folds a list of boolean guard expressions together with
// &&, returning nil if guards is empty.
func andGuards(guards []*ast.Expr) *ast.Expr {
	if len(guards) == 0 {
		return nil
	}
	out := guards[0]
	for _, g := range guards[1:] {
		out = ast.NewApp(out.Location, ast.NewApp(out.Location, ast.NewPrim(out.Location, "and"), out), g)
	}
	return out
}

// buildArgPattern lowers one pattern (one scrutinee position) into an
// ast.ArgPattern plus the equality guard a bare literal pattern
// requires (appended to guards).
//
// Deliberately single-level: a constructor argument that is itself a
// non-trivial nested pattern (another constructor application, or a
// literal buried inside one) cannot be destructured further here — the
// argument is bound to a fresh name and the nested shape is reported as
// unsupported, rather than recursively building the Get-chain a full
// implementation would need. See DESIGN.md's desugar entry.
func (d *Desugarer) buildArgPattern(pat *ast.Pat, scrutinee *ast.Expr, guards *[]*ast.Expr) ast.ArgPattern {
	if pat == nil || pat.IsWildcard() {
		return ast.ArgPattern{}
	}
	if pat.Truthy() && len(pat.Args) == 0 {
		return ast.ArgPattern{Bind: pat.Name}
	}
	if isUpperOrOp(pat.Token) {
		var args []string
		for _, sub := range pat.Args {
			args = append(args, d.bindSubPattern(sub, guards))
		}
		return ast.ArgPattern{Ctor: pat.Token, Args: args}
	}
	// A bare literal pattern at this position: bind the scrutinee to
	// a fresh internal name and compare it for equality.
	fresh := d.freshName("_ k")
	*guards = append(*guards, guardEquals(scrutinee, pat.Token, pat.Region))
	return ast.ArgPattern{Bind: fresh}
}

// bindSubPattern handles one constructor argument slot: wildcards bind
// nothing, plain names bind directly, and any other sub-pattern (a
// literal or a nested constructor) is reported as unsupported and bound
// to a fresh name; no guard is added for it.
func (d *Desugarer) bindSubPattern(sub *ast.Pat, guards *[]*ast.Expr) string {
	if sub == nil || sub.IsWildcard() {
		return ""
	}
	if sub.Truthy() && len(sub.Args) == 0 {
		return sub.Name
	}
	d.errorf(sub.Region, "nested constructor/literal patterns inside a constructor argument are not supported")
	return d.freshName("_ k")
}
