package parser

import "github.com/jinrudals/wake/token"

// assoc is an operator class's associativity.
type assoc int

const (
	leftAssoc assoc = iota
	rightAssoc
)

// precInfo is one operator class's binding power, per spec.md §4.3:
// "each operator class has precedence p and left/right bias". Classes
// are ordered tightest-to-loosest as spec.md §3 lists them; the actual
// numbers only need to be internally consistent, so they start well
// below appPrecedence and count down from there.
type precInfo struct {
	prec  int
	assoc assoc
}

// appPrecedence is function application's fixed precedence: tighter
// than every operator class, so `f x + g y` parses as `(f x) + (g y)`.
const appPrecedence = 130

var classTable = map[token.Kind]precInfo{
	token.DOT:     {120, leftAssoc},
	token.QUANT:   {110, leftAssoc},
	token.EXP:     {100, rightAssoc},
	token.MULDIV:  {90, leftAssoc},
	token.ADDSUB:  {80, leftAssoc},
	token.COMPARE: {70, leftAssoc},
	token.INEQUAL: {65, leftAssoc},
	token.AND:     {60, leftAssoc},
	token.OR:      {50, leftAssoc},
	token.DOLLAR:  {40, rightAssoc},
	token.LRARROW: {30, rightAssoc},
	token.EQARROW: {25, rightAssoc},
	token.COMMA:   {10, leftAssoc},
}

// isBinaryOperator reports whether kind heads an infix operator class
// (as opposed to punctuation or a literal/identifier).
func isBinaryOperator(kind token.Kind) bool {
	_, ok := classTable[kind]
	return ok
}

// precedenceOf returns kind's binding power, or ok=false if kind is
// not an operator class at all.
func precedenceOf(kind token.Kind) (precInfo, bool) {
	p, ok := classTable[kind]
	return p, ok
}
