package parser

import (
	"fmt"

	"github.com/malphas-lang/malphas-lang/internal/diag"
	"github.com/malphas-lang/malphas-lang/internal/lexer"
)

// ErrorKind enumerates the ways parsing can fail, per spec.md §7.
type ErrorKind int

const (
	ErrUnexpectedEndOfInput ErrorKind = iota
	ErrUnexpectedToken
	ErrReturnOutsideFunction
	ErrBadLeftOfExpression
)

// Error is a parse failure. There is no recovery: the first Error halts
// parsing and is returned to the caller with its span.
type Error struct {
	Kind     ErrorKind
	Message  string
	Span     lexer.Span
	Expected lexer.Kind // set for ErrUnexpectedToken when a specific kind was expected
	Got      lexer.Kind
}

func (e *Error) Error() string {
	if e.Kind == ErrUnexpectedToken && e.Expected != "" {
		return fmt.Sprintf("expected %s, got %s: %s", e.Expected, e.Got, e.Message)
	}
	return e.Message
}

func (k ErrorKind) diagnosticCode() diag.Code {
	switch k {
	case ErrUnexpectedEndOfInput:
		return diag.CodeParserUnexpectedEndOfInput
	case ErrUnexpectedToken:
		return diag.CodeParserUnexpectedToken
	case ErrReturnOutsideFunction:
		return diag.CodeParserReturnOutsideFunc
	case ErrBadLeftOfExpression:
		return diag.CodeParserBadLeftOfExpression
	default:
		return diag.Code("PARSER_UNKNOWN_ERROR")
	}
}

// ToDiagnostic converts a parse error into the shared diagnostic shape.
func (e *Error) ToDiagnostic() diag.Diagnostic {
	return diag.Diagnostic{
		Stage:    diag.StageParser,
		Severity: diag.SeverityError,
		Code:     e.Kind.diagnosticCode(),
		Message:  e.Error(),
		Span:     diag.Span{Start: e.Span.Start, End: e.Span.End},
	}
}
