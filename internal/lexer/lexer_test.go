package lexer

import (
	"testing"

	"github.com/hersac/umbral/internal/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestContextualKeywords(t *testing.T) {
	toks := New("v: x = 10;").Tokenize()
	want := []token.Kind{token.DECL_VAR, token.IDENT, token.ASSIGN, token.INT, token.SEMI, token.EOF}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestShortIdentifierNotPromoted(t *testing.T) {
	// "x" is not a reserved short form, so "x:" must stand as IDENT then COLON,
	// preserving record-key syntax per spec §9.
	toks := New("x: 1").Tokenize()
	want := []token.Kind{token.IDENT, token.COLON, token.INT, token.EOF}
	got := kinds(toks)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestTypeNameVsIdent(t *testing.T) {
	toks := New("Point point").Tokenize()
	if toks[0].Kind != token.TYPENAME {
		t.Errorf("expected TYPENAME, got %s", toks[0].Kind)
	}
	if toks[1].Kind != token.IDENT {
		t.Errorf("expected IDENT, got %s", toks[1].Kind)
	}
}

func TestLineComment(t *testing.T) {
	toks := New("v: x = 1; !! trailing comment\nv: y = 2;").Tokenize()
	var ints int
	for _, tk := range toks {
		if tk.Kind == token.INT {
			ints++
		}
	}
	if ints != 2 {
		t.Errorf("expected 2 int literals, got %d", ints)
	}
}

func TestStringLiterals(t *testing.T) {
	cases := []struct {
		src  string
		kind token.Kind
	}{
		{`"hello &n"`, token.STRING},
		{`'literal'`, token.STRING},
		{`'''multi
line'''`, token.STRINGML},
	}
	for _, c := range cases {
		toks := New(c.src).Tokenize()
		if toks[0].Kind != c.kind {
			t.Errorf("%q: got %s, want %s", c.src, toks[0].Kind, c.kind)
		}
	}
}

func TestOperatorsLongestFirst(t *testing.T) {
	toks := New("-> => == != <= >= && || ++ -- .. ..=").Tokenize()
	want := []token.Kind{
		token.ARROW, token.FATARROW, token.EQ, token.NEQ, token.LE, token.GE,
		token.AND, token.OR, token.INC, token.DEC, token.DOTDOT, token.DOTDOTEQ, token.EOF,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestUnknownByteBecomesIllegal(t *testing.T) {
	toks := New("v: x = 1 ` ;").Tokenize()
	found := false
	for _, tk := range toks {
		if tk.Kind == token.ILLEGAL {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an ILLEGAL token for unrecognised byte")
	}
}

func TestPositionsMonotonic(t *testing.T) {
	toks := New("v: abc = 123; f: foo() { r: 1; }").Tokenize()
	last := -1
	for _, tk := range toks {
		if tk.Pos.Offset < last {
			t.Fatalf("position not monotonic at %v", tk)
		}
		last = tk.Pos.Offset
	}
}

func TestBOMStripped(t *testing.T) {
	src := "\xEF\xBB\xBFv: x = 1;"
	toks := New(src).Tokenize()
	if toks[0].Kind != token.DECL_VAR {
		t.Errorf("expected DECL_VAR first token, got %s", toks[0].Kind)
	}
	if toks[0].Pos.Offset != 0 {
		t.Errorf("expected offset 0 after BOM strip, got %d", toks[0].Pos.Offset)
	}
}
