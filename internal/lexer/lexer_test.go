package lexer

import (
	"strings"
	"testing"

	"github.com/gmofishsauce/ifj24c/internal/errs"
	"github.com/gmofishsauce/ifj24c/internal/token"
)

func scan(t *testing.T, src string) ([]token.Token, *errs.Context) {
	t.Helper()
	ctx := errs.NewContext()
	toks := New(strings.NewReader(src), ctx).ScanAll()
	return toks, ctx
}

func kinds(toks []token.Token) []token.Kind {
	var ks []token.Kind
	for _, tk := range toks {
		ks = append(ks, tk.Kind)
	}
	return ks
}

func TestScanKeywordsAndPunct(t *testing.T) {
	toks, ctx := scan(t, "pub fn main() void { }")
	if ctx.HasError() {
		t.Fatalf("unexpected error: %v", ctx.Get())
	}
	want := []token.Kind{
		token.KwPub, token.KwFn, token.Ident, token.LParen, token.RParen,
		token.KwVoid, token.LBrace, token.RBrace, token.EOF,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestScanLeadingZeroRejected(t *testing.T) {
	_, ctx := scan(t, "01")
	if ctx.Code() != errs.LexicalAnalysis {
		t.Errorf("leading zero: got exit code %d, want %d", ctx.Code(), errs.LexicalAnalysis)
	}
}

func TestScanBareZeroAccepted(t *testing.T) {
	toks, ctx := scan(t, "0")
	if ctx.HasError() {
		t.Fatalf("unexpected error: %v", ctx.Get())
	}
	if toks[0].Kind != token.IntLit || toks[0].IntVal != 0 {
		t.Errorf("got %v, want int literal 0", toks[0])
	}
}

func TestScanFloatLiteral(t *testing.T) {
	toks, ctx := scan(t, "3.14")
	if ctx.HasError() {
		t.Fatalf("unexpected error: %v", ctx.Get())
	}
	if toks[0].Kind != token.FloatLit || toks[0].FloatVal != 3.14 {
		t.Errorf("got %v, want float literal 3.14", toks[0])
	}
}

func TestScanBuiltinAllowList(t *testing.T) {
	toks, ctx := scan(t, "ifj.write")
	if ctx.HasError() {
		t.Fatalf("unexpected error: %v", ctx.Get())
	}
	if toks[0].Kind != token.Ident || toks[0].StrVal != "ifj.write" {
		t.Errorf("got %v, want ident ifj.write", toks[0])
	}
}

func TestScanUnknownBuiltinRejected(t *testing.T) {
	_, ctx := scan(t, "ifj.bogus")
	if ctx.Code() != errs.LexicalAnalysis {
		t.Errorf("got exit code %d, want %d", ctx.Code(), errs.LexicalAnalysis)
	}
}

func TestScanNullableTypes(t *testing.T) {
	toks, ctx := scan(t, "?i32 ?f64 ?[]u8")
	if ctx.HasError() {
		t.Fatalf("unexpected error: %v", ctx.Get())
	}
	want := []token.Kind{token.IntNullType, token.FloatNullType, token.StringNullType, token.EOF}
	got := kinds(toks)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestScanStringEscapes(t *testing.T) {
	toks, ctx := scan(t, `"a\tb\x41c"`)
	if ctx.HasError() {
		t.Fatalf("unexpected error: %v", ctx.Get())
	}
	want := "a" + Canonicalize("\t") + "bAc"
	if toks[0].StrVal != want {
		t.Errorf("got %q, want %q", toks[0].StrVal, want)
	}
}

func TestScanInvalidHexEscape(t *testing.T) {
	_, ctx := scan(t, `"\xG0"`)
	if ctx.Code() != errs.LexicalAnalysis {
		t.Errorf("got exit code %d, want %d", ctx.Code(), errs.LexicalAnalysis)
	}
}

func TestCanonicalizeControlAndHash(t *testing.T) {
	got := Canonicalize("a#b\nc")
	want := "a\\035b\\010c"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCanonicalizeBackslash(t *testing.T) {
	got := Canonicalize(`a\b`)
	want := "a\\092b"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestScanNonIfjDottedIdentRejected(t *testing.T) {
	_, ctx := scan(t, "foo.bar")
	if ctx.Code() != errs.LexicalAnalysis {
		t.Errorf("got exit code %d, want %d", ctx.Code(), errs.LexicalAnalysis)
	}
}
