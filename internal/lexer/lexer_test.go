package lexer_test

import (
	"errors"
	"io"
	"testing"

	"github.com/hashicorp/go-multierror"

	"github.com/malphas-lang/malphas-lang/internal/lexer"
)

func lexAll(t *testing.T, source string) []lexer.Token {
	t.Helper()
	l := lexer.New(source)
	var toks []lexer.Token
	for {
		tok, err := l.Next()
		if errors.Is(err, io.EOF) {
			return toks
		}
		if err != nil {
			t.Fatalf("unexpected lexing error: %v", err)
		}
		toks = append(toks, tok)
	}
}

func TestLexKinds(t *testing.T) {
	cases := []struct {
		source string
		kind   lexer.Kind
	}{
		{"identifier_1", lexer.Identifier},
		{"42", lexer.Integer},
		{"4.2", lexer.Float},
		{"+", lexer.Plus},
		{"-", lexer.Minus},
		{"*", lexer.Multiply},
		{"/", lexer.Divide},
		{"==", lexer.Equal},
		{"!=", lexer.NotEqual},
		{"<", lexer.Less},
		{"<=", lexer.LessEqual},
		{">", lexer.Greater},
		{">=", lexer.GreaterEqual},
		{"&&", lexer.And},
		{"||", lexer.Or},
		{"=", lexer.Assignment},
		{"->", lexer.Arrow},
		{"function", lexer.Function},
		{"return", lexer.Return},
		{"if", lexer.If},
		{"else", lexer.Else},
		{"true", lexer.True},
		{"false", lexer.False},
		{"let", lexer.Let},
		{"mut", lexer.Mut},
	}
	for _, tc := range cases {
		toks := lexAll(t, tc.source)
		if len(toks) != 1 {
			t.Fatalf("%q: expected 1 token, got %d", tc.source, len(toks))
		}
		if toks[0].Kind != tc.kind {
			t.Fatalf("%q: expected kind %s, got %s", tc.source, tc.kind, toks[0].Kind)
		}
		if toks[0].Lexeme != tc.source {
			t.Fatalf("%q: expected lexeme %q, got %q", tc.source, tc.source, toks[0].Lexeme)
		}
	}
}

func TestNumericDisambiguation(t *testing.T) {
	if toks := lexAll(t, "1"); len(toks) != 1 || toks[0].Kind != lexer.Integer {
		t.Fatalf("expected single Integer token for \"1\"")
	}
	if toks := lexAll(t, "1.2"); len(toks) != 1 || toks[0].Kind != lexer.Float {
		t.Fatalf("expected single Float token for \"1.2\"")
	}

	_, err := lexer.New("1.2.3").Next()
	if err == nil {
		t.Fatalf("expected an error for \"1.2.3\"")
	}
	lexErr, ok := err.(*lexer.Error)
	if !ok || lexErr.Kind != lexer.ErrTooManyFloatingPoints {
		t.Fatalf("expected ErrTooManyFloatingPoints, got %v", err)
	}
}

func TestOperatorLongestMatch(t *testing.T) {
	cases := []struct {
		source string
		kinds  []lexer.Kind
	}{
		{"== =", []lexer.Kind{lexer.Equal, lexer.Assignment}},
		{"<= <", []lexer.Kind{lexer.LessEqual, lexer.Less}},
		{">= >", []lexer.Kind{lexer.GreaterEqual, lexer.Greater}},
		{"-> -", []lexer.Kind{lexer.Arrow, lexer.Minus}},
	}
	for _, tc := range cases {
		toks := lexAll(t, tc.source)
		if len(toks) != len(tc.kinds) {
			t.Fatalf("%q: expected %d tokens, got %d", tc.source, len(tc.kinds), len(toks))
		}
		for i, want := range tc.kinds {
			if toks[i].Kind != want {
				t.Fatalf("%q: token %d: expected %s, got %s", tc.source, i, want, toks[i].Kind)
			}
		}
	}
}

func TestWhitespaceAndComments(t *testing.T) {
	a := lexAll(t, "a+b")
	b := lexAll(t, "a   +\n\tb")
	c := lexAll(t, "a // trailing comment\n+ b")
	d := lexAll(t, "a /* block */ + /* another */ b")

	kinds := func(toks []lexer.Token) []lexer.Kind {
		ks := make([]lexer.Kind, len(toks))
		for i, tok := range toks {
			ks[i] = tok.Kind
		}
		return ks
	}

	want := kinds(a)
	for _, got := range [][]lexer.Token{b, c, d} {
		gk := kinds(got)
		if len(gk) != len(want) {
			t.Fatalf("expected %d tokens, got %d", len(want), len(gk))
		}
		for i := range want {
			if want[i] != gk[i] {
				t.Fatalf("token %d: expected %s, got %s", i, want[i], gk[i])
			}
		}
	}
}

func TestUnterminatedBlockComment(t *testing.T) {
	_, err := lexer.New("/* never closed").Next()
	if err == nil {
		t.Fatalf("expected an error for an unterminated block comment")
	}
}

func TestCollectErrorsAccumulatesMultipleBadTokens(t *testing.T) {
	err := lexer.CollectErrors("a ! b | c")
	if err == nil {
		t.Fatalf("expected accumulated lexing errors")
	}
	merr, ok := err.(*multierror.Error)
	if !ok || len(merr.Errors) != 2 {
		t.Fatalf("expected 2 accumulated errors (for '!' and '|'), got %v", err)
	}
}

func TestCollectErrorsNoErrorOnCleanSource(t *testing.T) {
	err := lexer.CollectErrors("a + b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
