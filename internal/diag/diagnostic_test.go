package diag_test

import (
	"testing"

	"github.com/malphas-lang/malphas-lang/internal/diag"
	"github.com/malphas-lang/malphas-lang/internal/lexer"
)

func TestFromLexerError(t *testing.T) {
	_, err := lexer.New("1.2.3").Next()
	if err == nil {
		t.Fatalf("expected a lexing error")
	}
	lexErr, ok := err.(*lexer.Error)
	if !ok {
		t.Fatalf("expected *lexer.Error, got %T", err)
	}

	diagnostic := lexErr.ToDiagnostic()

	if diagnostic.Stage != diag.StageLexer {
		t.Fatalf("expected stage %q, got %q", diag.StageLexer, diagnostic.Stage)
	}
	if diagnostic.Code != diag.CodeLexerTooManyFloatingPoint {
		t.Fatalf("expected code %q, got %q", diag.CodeLexerTooManyFloatingPoint, diagnostic.Code)
	}
	if diagnostic.Severity != diag.SeverityError {
		t.Fatalf("expected severity %q, got %q", diag.SeverityError, diagnostic.Severity)
	}

	wantSpan := diag.Span{Start: lexErr.Span.Start, End: lexErr.Span.End}
	if diagnostic.Span != wantSpan {
		t.Fatalf("expected span %+v, got %+v", wantSpan, diagnostic.Span)
	}
}
