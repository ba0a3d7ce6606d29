package lexer

import (
	"errors"
	"fmt"
	"io"

	"github.com/hashicorp/go-multierror"

	"github.com/malphas-lang/malphas-lang/internal/diag"
)

// ErrorKind enumerates the ways tokenization can fail, per spec.md §4.1.
type ErrorKind int

const (
	ErrUnexpectedEndOfInput ErrorKind = iota
	ErrUnexpectedToken
	ErrTooManyFloatingPoints
)

// Error is a lexing failure carrying the span where it was detected.
type Error struct {
	Kind    ErrorKind
	Message string
	Span    Span
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (at %d:%d)", e.Message, e.Span.Start, e.Span.End)
}

func newLexerError(kind ErrorKind, msg string, span Span) *Error {
	return &Error{Kind: kind, Message: msg, Span: span}
}

func (k ErrorKind) diagnosticCode() diag.Code {
	switch k {
	case ErrUnexpectedEndOfInput:
		return diag.CodeLexerUnexpectedEndOfInput
	case ErrUnexpectedToken:
		return diag.CodeLexerUnexpectedToken
	case ErrTooManyFloatingPoints:
		return diag.CodeLexerTooManyFloatingPoint
	default:
		return diag.Code("LEXER_UNKNOWN_ERROR")
	}
}

// ToDiagnostic converts a lexer error into the shared diagnostic shape.
func (e *Error) ToDiagnostic() diag.Diagnostic {
	return diag.Diagnostic{
		Stage:    diag.StageLexer,
		Severity: diag.SeverityError,
		Code:     e.Kind.diagnosticCode(),
		Message:  e.Message,
		Span:     diag.Span{Start: e.Span.Start, End: e.Span.End},
	}
}

// CollectErrors tokenizes source to completion, ignoring the fail-fast
// contract of Next: every lexing error encountered is resynchronized past
// (by skipping one rune) and accumulated via multierror, so tooling that
// wants a full picture of a broken file's lexical issues can get one in a
// single pass instead of stopping at the first.
func CollectErrors(source string) error {
	l := New(source)
	var errs *multierror.Error
	for {
		_, err := l.Next()
		switch {
		case err == nil:
			continue
		case errors.Is(err, io.EOF):
			return errs.ErrorOrNil()
		default:
			errs = multierror.Append(errs, err)
			if l.cursor.Eof() {
				return errs.ErrorOrNil()
			}
			l.cursor.Advance()
			l.cursor.ClearSpan()
		}
	}
}
