package lexer

import (
	"testing"

	"github.com/jinrudals/wake/source"
	"github.com/jinrudals/wake/token"
	"github.com/stretchr/testify/require"
)

func lexAll(t *testing.T, text string) []token.Info {
	t.Helper()
	file, err := source.FromString("t.wake", text)
	require.NoError(t, err)
	var toks []token.Info
	pos, end := 0, file.Len()
	for {
		tok, next := Lex(file, pos, end)
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
		pos = next
	}
	return toks
}

func kinds(toks []token.Info) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestLexIdentifiersAndKeywords(t *testing.T) {
	toks := lexAll(t, "def x = 1")
	require.Equal(t, []token.Kind{
		token.DEF, token.WS, token.ID, token.WS, token.EQUALS, token.WS, token.INTEGER, token.EOF,
	}, kinds(toks))
}

func TestLexNumbers(t *testing.T) {
	toks := lexAll(t, "1 2.5 3e10 4.5e-2")
	require.Equal(t, []token.Kind{
		token.INTEGER, token.WS,
		token.DOUBLE, token.WS,
		token.DOUBLE, token.WS,
		token.DOUBLE, token.EOF,
	}, kinds(toks))
}

func TestLexOperatorClasses(t *testing.T) {
	toks := lexAll(t, ". ^ * + < != & | $ : ,")
	require.Equal(t, []token.Kind{
		token.DOT, token.WS,
		token.QUANT, token.WS,
		token.MULDIV, token.WS,
		token.ADDSUB, token.WS,
		token.COMPARE, token.WS,
		token.INEQUAL, token.WS,
		token.AND, token.WS,
		token.OR, token.WS,
		token.DOLLAR, token.WS,
		token.COLON, token.WS,
		token.COMMA, token.EOF,
	}, kinds(toks))
}

func TestLexHoleVsIdentifier(t *testing.T) {
	toks := lexAll(t, "_ _x")
	require.Equal(t, []token.Kind{token.HOLE, token.WS, token.ID, token.EOF}, kinds(toks))
}

func TestLexStringRaw(t *testing.T) {
	toks := lexAll(t, `"hello"`)
	require.Equal(t, []token.Kind{token.STR_RAW, token.EOF}, kinds(toks))
	require.True(t, toks[0].OK)
}

func TestLexStringInterpolationOpen(t *testing.T) {
	toks := lexAll(t, `"a{`)
	require.Equal(t, token.STR_OPEN, toks[0].Kind)
}

func TestLexUnterminatedStringIsNotOK(t *testing.T) {
	toks := lexAll(t, "\"abc\ndef")
	require.False(t, toks[0].OK)
}

func TestClassifyIdent(t *testing.T) {
	require.Equal(t, Lower, ClassifyIdent("foo"))
	require.Equal(t, Upper, ClassifyIdent("Foo"))
	require.Equal(t, Operator, ClassifyIdent("++"))
}

func TestLexEOFAtEnd(t *testing.T) {
	file, err := source.FromString("t.wake", "x")
	require.NoError(t, err)
	tok, next := Lex(file, 1, 1)
	require.Equal(t, token.EOF, tok.Kind)
	require.Equal(t, 1, next)
	require.Equal(t, 0, tok.Len())
}
