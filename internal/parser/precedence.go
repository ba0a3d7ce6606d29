package parser

import "github.com/malphas-lang/malphas-lang/internal/lexer"

// Binding powers for the Pratt expression parser, per spec.md §4.2. The
// parse loop absorbs a neighboring operator as long as its left binding
// power is at least the caller's minimum ("the loop stops as soon as
// left_bp < minimum_binding_power", spec.md §4.2, implemented literally
// below in parseExprBP).
//
// spec.md's own worked binding-power table places assignment at (8, 9) —
// tighter than additive — and flags that as a bug: "for correct C-like
// precedence it should be the lowest ... with right-associativity"
// (spec.md §4.2/§9). This table takes that fix: bpAssign sits below every
// other binary operator, and its right-hand side recurses at bpAssign
// itself (not bpAssign+1), which is what makes `a = b = c` associate as
// `a = (b = c)` instead of folding left.
//
// The table also keeps the comparison/and/or/equality ordering exactly as
// spec.md states it (comparison loosest, then &&, then ||, then ==/!=,
// then + -, then * /) even though that is not how a C-like grammar would
// normally order logical and comparison operators — spec.md only calls
// out assignment as the bug to fix, so the rest of the table is honored
// as written and simply rescaled to leave room for one more correction:
// the literal table gives prefix `-` the same binding power (7) as `* /`,
// which would let `-x * y` absorb the multiplication into the negated
// operand (parsing as `-(x * y)`) under the stated loop rule. spec.md §8
// requires `-x * y` to parse as `(-x) * y`, so prefix is placed strictly
// above multiplicative here — the same kind of one-bug fix already made
// for assignment, not a deviation from the rest of the table.
const (
	bpLowest = 0

	bpAssign = 2 // lowest binary operator; right side recurses at bpAssign (right-assoc)

	bpComparison     = 4
	bpAnd            = 8
	bpOr             = 12
	bpEquality       = 16
	bpAdditive       = 20
	bpMultiplicative = 24
	bpPrefix         = 28 // unary minus; strictly above bpMultiplicative, see above
	bpPostfixCall    = 32 // function call `(`; tightest of all
)

// leftBindingPower returns the left binding power of tok when it appears
// as an infix or postfix operator, or bpLowest if tok cannot continue an
// expression (the signal to stop the Pratt loop).
func leftBindingPower(kind lexer.Kind) int {
	switch kind {
	case lexer.Assignment:
		return bpAssign
	case lexer.Less, lexer.LessEqual, lexer.Greater, lexer.GreaterEqual:
		return bpComparison
	case lexer.And:
		return bpAnd
	case lexer.Or:
		return bpOr
	case lexer.Equal, lexer.NotEqual:
		return bpEquality
	case lexer.Plus, lexer.Minus:
		return bpAdditive
	case lexer.Multiply, lexer.Divide:
		return bpMultiplicative
	default:
		return bpLowest
	}
}

// rightBindingPower returns the minimum binding power used to parse the
// right-hand side of an infix operator. Every operator is left
// associative (right side recurses one above its own left power) except
// assignment, which is right associative (right side recurses at its own
// power, allowing a further assignment to nest inside it).
func rightBindingPower(kind lexer.Kind) int {
	if kind == lexer.Assignment {
		return bpAssign
	}
	return leftBindingPower(kind) + 1
}
