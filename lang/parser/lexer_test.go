package parser

import "testing"

func TestLexBasic(t *testing.T) {
	toks := lex(`package foo; use bar;`)

	want := []struct {
		kind tokenKind
		text string
	}{
		{tokKeyword, "package"},
		{tokIdent, "foo"},
		{tokSymbol, ";"},
		{tokKeyword, "use"},
		{tokIdent, "bar"},
		{tokSymbol, ";"},
		{tokEOF, ""},
	}

	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(want), toks)
	}
	for i, w := range want {
		if toks[i].kind != w.kind || toks[i].text != w.text {
			t.Errorf("token %d: got {%v %q}, want {%v %q}", i, toks[i].kind, toks[i].text, w.kind, w.text)
		}
	}
}

func TestLexArrow(t *testing.T) {
	toks := lex(`a => b;`)
	if toks[1].kind != tokSymbol || toks[1].text != "=>" {
		t.Fatalf("expected a single '=>' symbol token, got %+v", toks[1])
	}
}

func TestLexStringEscapes(t *testing.T) {
	toks := lex(`"he\"llo\n"`)
	if toks[0].kind != tokString {
		t.Fatalf("expected a string token, got %+v", toks[0])
	}
	if toks[0].text != "he\"llo\n" {
		t.Fatalf("got %q, want %q", toks[0].text, "he\"llo\n")
	}
}

func TestLexLineComment(t *testing.T) {
	toks := lex("a // this is ignored\nb")
	if len(toks) != 3 { // a, b, EOF
		t.Fatalf("got %d tokens, want 3: %+v", len(toks), toks)
	}
	if toks[0].text != "a" || toks[1].text != "b" {
		t.Fatalf("comment wasn't skipped: %+v", toks)
	}
}

func TestLexKeywordsAreNotIdents(t *testing.T) {
	for kw := range keywords {
		toks := lex(kw)
		if toks[0].kind != tokKeyword {
			t.Errorf("%q: expected tokKeyword, got %v", kw, toks[0].kind)
		}
	}
}
