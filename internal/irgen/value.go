// Package irgen hand-rolls a textual SSA-form LLVM IR builder: the
// abstract "external collaborator" spec.md §1 describes the lowering
// pass as consuming (basic-block creation, typed alloca/store/load,
// arithmetic, compares, branches, call, return, function verification).
//
// No published Go LLVM binding appears anywhere in the retrieved corpus
// (searched every go.mod in it, including other_examples' manifests);
// original_source builds its IR with Rust's inkwell crate wrapping the
// C++ API. There is no equivalent to reach for in Go, so this package
// emits LLVM's textual assembly form directly with strings.Builder,
// mirroring inkwell's shape (block/value handles, typed builder calls)
// one level up from the C API inkwell itself wraps.
package irgen

import (
	"strconv"

	"github.com/malphas-lang/malphas-lang/internal/types"
)

// Value is a handle to an IR operand: either a compile-time constant
// (never materialized as an instruction) or a named SSA register bound by
// some emitted instruction. Folding arithmetic on two Consts into a third
// Const, instead of emitting an add/sub/etc instruction, is why `return
// 2 + 2;` lowers straight to `ret i32 4` (spec.md §8 S2) with no
// arithmetic instruction in the function body at all.
type Value struct {
	Type  types.Type
	Const bool

	// Populated when Const is true, selected by Type.
	ConstInt   int64
	ConstFloat float64
	ConstBool  bool

	// Reg is the "%name" of the instruction producing this value, set
	// when Const is false.
	Reg string
}

// Constant is a named compile-time constant handed to the lowering pass
// from outside the source file (SPEC_FULL.md §6) — a Value that is
// always Const, built with one of the constructors below.
type Constant = Value

// ConstInteger builds a constant integer value of the given type.
func ConstInteger(t types.Type, v int64) Value {
	return Value{Type: t, Const: true, ConstInt: v}
}

// ConstFloatValue builds a constant floating point value of the given
// type.
func ConstFloatValue(t types.Type, v float64) Value {
	return Value{Type: t, Const: true, ConstFloat: v}
}

// ConstBoolean builds a constant boolean value.
func ConstBoolean(v bool) Value {
	return Value{Type: types.Boolean, Const: true, ConstBool: v}
}

// Operand renders v the way it appears as an instruction or terminator
// operand: a literal for constants, a "%name" for registers.
func (v Value) Operand() string {
	if !v.Const {
		return "%" + v.Reg
	}
	switch {
	case v.Type.IsFloat():
		return formatFloat(v.ConstFloat)
	case v.Type == types.Boolean:
		return strconv.FormatBool(v.ConstBool)
	default:
		return strconv.FormatInt(v.ConstInt, 10)
	}
}

// formatFloat matches LLVM's default textual rendering for the
// double-precision case asserted in spec.md §8 S4 (`2.300000e+00`): a
// six-digit mantissa and a sign-and-two-digit-minimum exponent, which is
// exactly strconv's 'e' format with precision 6.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'e', 6, 64)
}
