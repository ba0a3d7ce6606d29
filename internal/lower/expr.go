package lower

import (
	"strconv"

	"github.com/malphas-lang/malphas-lang/internal/ast"
	"github.com/malphas-lang/malphas-lang/internal/env"
	"github.com/malphas-lang/malphas-lang/internal/irgen"
	"github.com/malphas-lang/malphas-lang/internal/types"
)

// defaultIntegerType and defaultFloatType are the types bare numeric
// literals are assigned in the absence of any contextual widening —
// spec.md's grammar carries no literal-suffix syntax, and every worked
// example in spec.md §8 types its integer literals i32 and its float
// literals f64.
const (
	defaultIntegerType = types.I32
	defaultFloatType   = types.F64
)

// lowerExpr lowers an expression node, returning its value and the type
// it was lowered at.
func (c *ctx) lowerExpr(node ast.Node, scope *env.Scope) (irgen.Value, types.Type, error) {
	switch n := node.(type) {
	case *ast.Integer:
		v, err := strconv.ParseInt(n.Literal, 10, 64)
		if err != nil {
			return irgen.Value{}, 0, newError(ErrInvalidIntegerLiteral, n.Sp, "invalid integer literal %q", n.Literal)
		}
		return irgen.ConstInteger(defaultIntegerType, v), defaultIntegerType, nil

	case *ast.Float:
		v, err := strconv.ParseFloat(n.Literal, 64)
		if err != nil {
			return irgen.Value{}, 0, newError(ErrInvalidIntegerLiteral, n.Sp, "invalid float literal %q", n.Literal)
		}
		return irgen.ConstFloatValue(defaultFloatType, v), defaultFloatType, nil

	case *ast.Boolean:
		return irgen.ConstBoolean(n.Value), types.Boolean, nil

	case *ast.Identifier:
		sym, ok := scope.Resolve(n.Name)
		if !ok {
			if k, ok := c.constants[n.Name]; ok {
				return k, k.Type, nil
			}
			return irgen.Value{}, 0, newError(ErrUnknownName, n.Sp, "unknown name %q", n.Name)
		}
		v := c.builder.Load(irgen.Value{Reg: sym.Pointer}, sym.Type)
		return v, sym.Type, nil

	case *ast.Unary:
		return c.lowerUnary(n, scope)

	case *ast.Binary:
		if n.Op == ast.OpAssign {
			return c.lowerAssign(n, scope)
		}
		return c.lowerBinary(n, scope)

	case *ast.Call:
		return c.lowerCall(n, scope, false)

	default:
		return irgen.Value{}, 0, newError(ErrInvalidFunctionBody, node.Span(), "unsupported expression node %T", node)
	}
}

func (c *ctx) lowerUnary(n *ast.Unary, scope *env.Scope) (irgen.Value, types.Type, error) {
	arg, t, err := c.lowerExpr(n.Arg, scope)
	if err != nil {
		return irgen.Value{}, 0, err
	}
	if !t.IsNumeric() {
		return irgen.Value{}, 0, newError(ErrArithmeticOnBoolean, n.Sp, "unary - requires a numeric operand, got %s", t)
	}

	if arg.Const {
		if t.IsInteger() {
			return irgen.ConstInteger(t, -arg.ConstInt), t, nil
		}
		return irgen.ConstFloatValue(t, -arg.ConstFloat), t, nil
	}

	zero := irgen.ConstInteger(t, 0)
	if t.IsFloat() {
		zero = irgen.ConstFloatValue(t, 0)
		return c.builder.EmitFloatArith(irgen.FSub, t, zero, arg), t, nil
	}
	return c.builder.EmitIntArith(irgen.ISub, t, zero, arg), t, nil
}

func (c *ctx) lowerAssign(n *ast.Binary, scope *env.Scope) (irgen.Value, types.Type, error) {
	ident, ok := n.Lhs.(*ast.Identifier)
	if !ok {
		return irgen.Value{}, 0, newError(ErrNotAnIdentifier, n.Lhs.Span(), "left side of = must be a plain identifier")
	}
	sym, ok := scope.Resolve(ident.Name)
	if !ok {
		return irgen.Value{}, 0, newError(ErrUnknownName, ident.Sp, "unknown name %q", ident.Name)
	}
	if !sym.Mutable {
		return irgen.Value{}, 0, newError(ErrCannotMutate, n.Sp, "%q is not declared mut", ident.Name)
	}
	rhs, rhsType, err := c.lowerExpr(n.Rhs, scope)
	if err != nil {
		return irgen.Value{}, 0, err
	}
	if rhsType != sym.Type {
		return irgen.Value{}, 0, newError(ErrTypeMismatch, n.Sp, "cannot assign %s to %q of type %s", rhsType, ident.Name, sym.Type)
	}
	c.builder.Store(rhs, irgen.Value{Reg: sym.Pointer}, sym.Type)
	return rhs, sym.Type, nil
}

func (c *ctx) lowerBinary(n *ast.Binary, scope *env.Scope) (irgen.Value, types.Type, error) {
	lhs, lhsType, err := c.lowerExpr(n.Lhs, scope)
	if err != nil {
		return irgen.Value{}, 0, err
	}
	rhs, rhsType, err := c.lowerExpr(n.Rhs, scope)
	if err != nil {
		return irgen.Value{}, 0, err
	}
	if lhsType != rhsType {
		return irgen.Value{}, 0, newError(ErrTypeMismatch, n.Sp, "%s and %s operands to %s", lhsType, rhsType, n.Op)
	}

	switch n.Op {
	case ast.OpAnd, ast.OpOr:
		if lhsType != types.Boolean {
			return irgen.Value{}, 0, newError(ErrNotBoolean, n.Sp, "%s requires boolean operands, got %s", n.Op, lhsType)
		}
		return c.foldOrEmitLogic(n.Op, lhs, rhs), types.Boolean, nil

	case ast.OpEqual, ast.OpNotEqual, ast.OpLess, ast.OpLessEqual, ast.OpGreater, ast.OpGreaterEqual:
		return c.lowerComparison(n, lhs, rhs, lhsType)

	default:
		if lhsType == types.Boolean {
			return irgen.Value{}, 0, newError(ErrArithmeticOnBoolean, n.Sp, "%s is not defined on boolean", n.Op)
		}
		return c.lowerArithmetic(n, lhs, rhs, lhsType)
	}
}

func (c *ctx) foldOrEmitLogic(op ast.BinaryOp, lhs, rhs irgen.Value) irgen.Value {
	if lhs.Const && rhs.Const {
		if op == ast.OpAnd {
			return irgen.ConstBoolean(lhs.ConstBool && rhs.ConstBool)
		}
		return irgen.ConstBoolean(lhs.ConstBool || rhs.ConstBool)
	}
	// Short-circuit evaluation is not observable without side-effecting
	// operands, which this grammar's expression-only boolean operators
	// cannot produce, so && and || lower to a plain bitwise and/or here.
	if op == ast.OpAnd {
		return c.builder.EmitIntArith(irgen.IntArith("and"), types.Boolean, lhs, rhs)
	}
	return c.builder.EmitIntArith(irgen.IntArith("or"), types.Boolean, lhs, rhs)
}

func (c *ctx) lowerComparison(n *ast.Binary, lhs, rhs irgen.Value, operandType types.Type) (irgen.Value, types.Type, error) {
	if lhs.Const && rhs.Const {
		return irgen.ConstBoolean(foldCompare(n.Op, lhs, rhs, operandType)), types.Boolean, nil
	}
	if operandType.IsFloat() {
		return c.builder.EmitFCmp(floatPredicate(n.Op), operandType, lhs, rhs), types.Boolean, nil
	}
	return c.builder.EmitICmp(intPredicate(n.Op), operandType, lhs, rhs), types.Boolean, nil
}

func foldCompare(op ast.BinaryOp, lhs, rhs irgen.Value, t types.Type) bool {
	if t.IsFloat() {
		a, b := lhs.ConstFloat, rhs.ConstFloat
		switch op {
		case ast.OpEqual:
			return a == b
		case ast.OpNotEqual:
			return a != b
		case ast.OpLess:
			return a < b
		case ast.OpLessEqual:
			return a <= b
		case ast.OpGreater:
			return a > b
		default:
			return a >= b
		}
	}
	a, b := lhs.ConstInt, rhs.ConstInt
	switch op {
	case ast.OpEqual:
		return a == b
	case ast.OpNotEqual:
		return a != b
	case ast.OpLess:
		return a < b
	case ast.OpLessEqual:
		return a <= b
	case ast.OpGreater:
		return a > b
	default:
		return a >= b
	}
}

func intPredicate(op ast.BinaryOp) irgen.ICmp {
	switch op {
	case ast.OpEqual:
		return irgen.ICmpEQ
	case ast.OpNotEqual:
		return irgen.ICmpNE
	case ast.OpLess:
		return irgen.ICmpSLT
	case ast.OpLessEqual:
		return irgen.ICmpSLE
	case ast.OpGreater:
		return irgen.ICmpSGT
	default:
		return irgen.ICmpSGE
	}
}

func floatPredicate(op ast.BinaryOp) irgen.FCmp {
	switch op {
	case ast.OpEqual:
		return irgen.FCmpOEQ
	case ast.OpNotEqual:
		return irgen.FCmpONE
	case ast.OpLess:
		return irgen.FCmpOLT
	case ast.OpLessEqual:
		return irgen.FCmpOLE
	case ast.OpGreater:
		return irgen.FCmpOGT
	default:
		return irgen.FCmpOGE
	}
}

func (c *ctx) lowerArithmetic(n *ast.Binary, lhs, rhs irgen.Value, t types.Type) (irgen.Value, types.Type, error) {
	if lhs.Const && rhs.Const {
		return foldArithmetic(n.Op, lhs, rhs, t), t, nil
	}
	if t.IsFloat() {
		return c.builder.EmitFloatArith(floatOp(n.Op), t, lhs, rhs), t, nil
	}
	return c.builder.EmitIntArith(intOp(n.Op), t, lhs, rhs), t, nil
}

func foldArithmetic(op ast.BinaryOp, lhs, rhs irgen.Value, t types.Type) irgen.Value {
	if t.IsFloat() {
		a, b := lhs.ConstFloat, rhs.ConstFloat
		var r float64
		switch op {
		case ast.OpAdd:
			r = a + b
		case ast.OpSub:
			r = a - b
		case ast.OpMul:
			r = a * b
		default:
			r = a / b
		}
		return irgen.ConstFloatValue(t, r)
	}
	a, b := lhs.ConstInt, rhs.ConstInt
	var r int64
	switch op {
	case ast.OpAdd:
		r = a + b
	case ast.OpSub:
		r = a - b
	case ast.OpMul:
		r = a * b
	default:
		r = a / b
	}
	return irgen.ConstInteger(t, r)
}

func intOp(op ast.BinaryOp) irgen.IntArith {
	switch op {
	case ast.OpAdd:
		return irgen.IAdd
	case ast.OpSub:
		return irgen.ISub
	case ast.OpMul:
		return irgen.IMul
	default:
		return irgen.ISDiv
	}
}

func floatOp(op ast.BinaryOp) irgen.FloatArith {
	switch op {
	case ast.OpAdd:
		return irgen.FAdd
	case ast.OpSub:
		return irgen.FSub
	case ast.OpMul:
		return irgen.FMul
	default:
		return irgen.FDiv
	}
}

// lowerCall lowers a call site. allowVoid permits calling a function with
// no declared return type; lowerExpr always passes false, since a void
// result cannot feed a larger expression — only lowerStatement's
// ExprStatement case (where the result is simply discarded) passes true.
func (c *ctx) lowerCall(n *ast.Call, scope *env.Scope, allowVoid bool) (irgen.Value, types.Type, error) {
	s, ok := c.table.Lookup(n.Callee)
	if !ok {
		return irgen.Value{}, 0, newError(ErrUnknownFunction, n.Sp, "unknown function %q", n.Callee)
	}
	if s.Void && !allowVoid {
		return irgen.Value{}, 0, newError(ErrVoidCallResult, n.Sp, "function %q returns no value and cannot be used as an expression", n.Callee)
	}
	if len(n.Args) != len(s.Parameters) {
		return irgen.Value{}, 0, newError(ErrArgumentCount, n.Sp, "function %q expects %d argument(s), got %d", n.Callee, len(s.Parameters), len(n.Args))
	}

	args := make([]irgen.Value, len(n.Args))
	argTypes := make([]types.Type, len(n.Args))
	for i, argNode := range n.Args {
		v, t, err := c.lowerExpr(argNode, scope)
		if err != nil {
			return irgen.Value{}, 0, err
		}
		if t != s.Parameters[i].Type {
			return irgen.Value{}, 0, newError(ErrTypeMismatch, argNode.Span(), "function %q: argument %d: expected %s, got %s", n.Callee, i, s.Parameters[i].Type, t)
		}
		args[i] = v
		argTypes[i] = t
	}

	v := c.builder.Call(s.Name, s.ReturnType, s.Void, args, argTypes)
	if s.Void {
		return v, 0, nil
	}
	return v, s.ReturnType, nil
}
