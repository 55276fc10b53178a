package lexer

import "testing"

func allTokens(t *testing.T, src string) []Token {
	t.Helper()
	l := New(src)
	var toks []Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("unexpected lex error: %v", err)
		}
		toks = append(toks, tok)
		if tok.Kind == TokEOF {
			return toks
		}
	}
}

func TestLexFunctionSignature(t *testing.T) {
	toks := allTokens(t, `func addOne(x int32) int32 {`)
	want := []Kind{TokFunc, TokIdent, TokLParen, TokIdent, TokInt32, TokRParen, TokInt32, TokLBrace, TokEOF}
	if len(toks) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(toks), toks)
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Fatalf("token %d: expected kind %v, got %v (%q)", i, k, toks[i].Kind, toks[i].Text)
		}
	}
}

func TestLexUseCompileDirectiveIsAStringLiteral(t *testing.T) {
	toks := allTokens(t, `"use compile";`)
	if toks[0].Kind != TokStringLit || toks[0].Text != "use compile" {
		t.Fatalf("expected a string literal \"use compile\", got %+v", toks[0])
	}
	if toks[1].Kind != TokSemi {
		t.Fatalf("expected a semicolon, got %+v", toks[1])
	}
}

func TestLexCompoundAssignOperatorsGreedyMatch(t *testing.T) {
	toks := allTokens(t, `x |= 0`)
	if toks[1].Kind != TokBitOrAssign {
		t.Fatalf("expected |=, got %+v", toks[1])
	}
}

func TestLexDistinguishesBitOrFromBitOrAssign(t *testing.T) {
	toks := allTokens(t, `x | 0`)
	if toks[1].Kind != TokBitOr {
		t.Fatalf("expected |, got %+v", toks[1])
	}
}

func TestLexFloatLiteral(t *testing.T) {
	toks := allTokens(t, `3.14`)
	if toks[0].Kind != TokFloatLit || toks[0].Text != "3.14" {
		t.Fatalf("expected float literal 3.14, got %+v", toks[0])
	}
}

func TestLexSkipsLineAndBlockComments(t *testing.T) {
	toks := allTokens(t, "x // trailing\n/* block */ y")
	if len(toks) != 3 || toks[0].Text != "x" || toks[1].Text != "y" {
		t.Fatalf("expected [x, y, EOF], got %+v", toks)
	}
}

func TestLexUnterminatedStringIsAnError(t *testing.T) {
	l := New(`"unterminated`)
	_, err := l.NextToken()
	if err == nil {
		t.Fatal("expected an error for an unterminated string literal")
	}
}

func TestLexUnknownCharacterIsAnError(t *testing.T) {
	l := New("`")
	_, err := l.NextToken()
	if err == nil {
		t.Fatal("expected an error for an unrecognized character")
	}
}
