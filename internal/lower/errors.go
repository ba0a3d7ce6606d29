package lower

import (
	"fmt"

	"github.com/malphas-lang/malphas-lang/internal/diag"
	"github.com/malphas-lang/malphas-lang/internal/lexer"
)

// ErrorKind enumerates the ways lowering can fail, per spec.md §7/§8.
type ErrorKind int

const (
	ErrUnknownName ErrorKind = iota
	ErrNotAnIdentifier
	ErrNotBoolean
	ErrTypeMismatch
	ErrArgumentCount
	ErrUnknownFunction
	ErrCannotMutate
	ErrArithmeticOnBoolean
	ErrVoidCallResult
	ErrInvalidIntegerLiteral
	ErrInvalidFunctionBody
)

// Error is a lowering failure. Lowering is fail-fast: the first Error
// aborts the whole compilation job, per spec.md §7.
type Error struct {
	Kind    ErrorKind
	Message string
	Span    lexer.Span
}

func (e *Error) Error() string { return e.Message }

func newError(kind ErrorKind, span lexer.Span, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Span: span}
}

func (k ErrorKind) diagnosticCode() diag.Code {
	switch k {
	case ErrUnknownName:
		return diag.CodeLowerUnknownName
	case ErrNotAnIdentifier:
		return diag.CodeLowerNotAnIdentifier
	case ErrNotBoolean:
		return diag.CodeLowerNotBoolean
	case ErrTypeMismatch:
		return diag.CodeLowerTypeMismatch
	case ErrArgumentCount:
		return diag.CodeLowerArgumentCount
	case ErrUnknownFunction:
		return diag.CodeLowerUnknownFunction
	case ErrCannotMutate:
		return diag.CodeLowerCannotMutate
	case ErrArithmeticOnBoolean:
		return diag.CodeLowerArithmeticOnBoolean
	case ErrVoidCallResult:
		return diag.CodeLowerVoidCallResult
	case ErrInvalidIntegerLiteral:
		return diag.CodeLowerInvalidIntegerLit
	default:
		return diag.CodeLowerInvalidFunctionBody
	}
}

// ToDiagnostic converts a lowering error into the shared diagnostic shape.
func (e *Error) ToDiagnostic() diag.Diagnostic {
	return diag.Diagnostic{
		Stage:    diag.StageLowering,
		Severity: diag.SeverityError,
		Code:     e.Kind.diagnosticCode(),
		Message:  e.Message,
		Span:     diag.Span{Start: e.Span.Start, End: e.Span.End},
	}
}
