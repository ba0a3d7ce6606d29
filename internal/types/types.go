// Package types defines the closed set of primitive types the lowering
// pass can assign to an expression, per spec.md §4.3.
package types

import "fmt"

// Type is one member of the closed primitive type enum.
type Type int

const (
	Boolean Type = iota
	I8
	I16
	I32
	I64
	I128
	F16
	F32
	F64
	F128
	Pointer
)

var names = map[Type]string{
	Boolean: "boolean",
	I8:      "i8",
	I16:     "i16",
	I32:     "i32",
	I64:     "i64",
	I128:    "i128",
	F16:     "f16",
	F32:     "f32",
	F64:     "f64",
	F128:    "f128",
	Pointer: "pointer",
}

var byName = map[string]Type{}

func init() {
	for t, n := range names {
		byName[n] = t
	}
}

func (t Type) String() string {
	if n, ok := names[t]; ok {
		return n
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Lookup resolves a source-level type name (as spelled in a `let`
// declaration, argument list, or `->` return annotation) to a Type.
func Lookup(name string) (Type, error) {
	t, ok := byName[name]
	if !ok {
		return 0, fmt.Errorf("unknown type name %q", name)
	}
	return t, nil
}

// IsInteger reports whether t is one of the fixed-width signed integer
// types.
func (t Type) IsInteger() bool {
	switch t {
	case I8, I16, I32, I64, I128:
		return true
	default:
		return false
	}
}

// IsFloat reports whether t is one of the IEEE floating point types.
func (t Type) IsFloat() bool {
	switch t {
	case F16, F32, F64, F128:
		return true
	default:
		return false
	}
}

// IsNumeric reports whether t supports arithmetic operators.
func (t Type) IsNumeric() bool {
	return t.IsInteger() || t.IsFloat()
}

// BitWidth returns the backend bit width of t. Pointer and Boolean report
// the width of their LLVM backend representation (a pointer and i1,
// respectively).
func (t Type) BitWidth() int {
	switch t {
	case Boolean:
		return 1
	case I8:
		return 8
	case I16, F16:
		return 16
	case I32, F32:
		return 32
	case I64, F64:
		return 64
	case I128, F128:
		return 128
	case Pointer:
		return 64
	default:
		return 0
	}
}

// CompatibleWith reports whether a value of type t may be used where a
// value of type other is expected, without implicit conversion. The
// language performs no implicit numeric widening: compatibility is plain
// equality, per spec.md §4.3's "no implicit conversions" rule.
func (t Type) CompatibleWith(other Type) bool {
	return t == other
}

// LLVMName returns the textual LLVM IR type name backing t, used by
// internal/irgen when emitting alloca/load/store/arithmetic instructions.
func (t Type) LLVMName() string {
	switch t {
	case Boolean:
		return "i1"
	case I8:
		return "i8"
	case I16:
		return "i16"
	case I32:
		return "i32"
	case I64:
		return "i64"
	case I128:
		return "i128"
	case F16:
		return "half"
	case F32:
		return "float"
	case F64:
		return "double"
	case F128:
		return "fp128"
	case Pointer:
		return "ptr"
	default:
		return "void"
	}
}
