package sql

import "testing"

func TestLexKeywordsAreCaseInsensitive(t *testing.T) {
	toks, err := Lex("select * from t")
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}
	want := []TokenKind{TokSelect, TokStar, TokFrom, TokIdent, TokEOF}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d: got %v, want %v", i, toks[i].Kind, k)
		}
	}
}

func TestLexOperators(t *testing.T) {
	toks, err := Lex("<> != <= >= < > =")
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}
	want := []TokenKind{TokNotEq, TokNotEq, TokLe, TokGe, TokLt, TokGt, TokEq, TokEOF}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d: got %v, want %v", i, toks[i].Kind, k)
		}
	}
}

func TestLexBangWithoutEqualsIsError(t *testing.T) {
	if _, err := Lex("a ! b"); err == nil {
		t.Fatal("expected a lex error for bare '!'")
	}
}

func TestLexStringEscaping(t *testing.T) {
	toks, err := Lex("'it''s'")
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}
	if toks[0].Kind != TokString || toks[0].Text != "it's" {
		t.Fatalf("got %+v, want String(it's)", toks[0])
	}
}

func TestLexUnterminatedString(t *testing.T) {
	if _, err := Lex("'abc"); err == nil {
		t.Fatal("expected a lex error for an unterminated string")
	}
}

func TestLexLineComment(t *testing.T) {
	toks, err := Lex("SELECT * -- trailing comment\nFROM t")
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}
	want := []TokenKind{TokSelect, TokStar, TokFrom, TokIdent, TokEOF}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
}

func TestLexNumbers(t *testing.T) {
	toks, err := Lex("42 3.14 2e10 1.5e-3")
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}
	if toks[0].Kind != TokInt || toks[0].I != 42 {
		t.Fatalf("got %+v, want Int(42)", toks[0])
	}
	if toks[1].Kind != TokFloat || toks[1].F != 3.14 {
		t.Fatalf("got %+v, want Float(3.14)", toks[1])
	}
	if toks[2].Kind != TokFloat {
		t.Fatalf("got %+v, want a Float for exponent form", toks[2])
	}
	if toks[3].Kind != TokFloat {
		t.Fatalf("got %+v, want a Float for negative exponent form", toks[3])
	}
}
