package lower

import (
	"github.com/malphas-lang/malphas-lang/internal/ast"
	"github.com/malphas-lang/malphas-lang/internal/env"
	"github.com/malphas-lang/malphas-lang/internal/irgen"
	"github.com/malphas-lang/malphas-lang/internal/sig"
)

func lowerFunction(fn *ast.Function, s *sig.Signature, table *sig.Table, module *irgen.Module, constants map[string]irgen.Constant) error {
	builder := irgen.NewFunction(module, fn.Name, s.ReturnType, s.Void)

	scope := env.NewScope()
	for _, param := range s.Parameters {
		builder.AddParam(param.Type, param.Name)
	}
	// Spec.md §4.5 step 2: parameter slots are allocated in the entry
	// block, in declaration order, before any other instruction — the
	// loop above only records the signature line; this one performs the
	// alloca/store/bind.
	for i, param := range s.Parameters {
		ptr := builder.Alloca(param.Type, i)
		arg := irgen.Value{Type: param.Type, Reg: param.Name}
		builder.Store(arg, ptr, param.Type)
		scope.Declare(&env.Symbol{Name: param.Name, Type: param.Type, Mutable: true, Pointer: ptr.Reg})
	}

	c := &ctx{table: table, builder: builder, slot: len(s.Parameters), constants: constants}
	if err := c.lowerBody(fn.Body, scope); err != nil {
		return err
	}

	if !builder.Terminated() {
		if s.Void {
			builder.RetVoid()
		} else {
			return newError(ErrInvalidFunctionBody, fn.Span(), "function %q does not return on every path", fn.Name)
		}
	}

	builder.Finish()
	return nil
}

// lowerBody lowers a function's body, which is either a *ast.Block or
// (for the inline `= expr;` form) a bare expression implicitly returned.
func (c *ctx) lowerBody(body ast.Node, scope *env.Scope) error {
	if blk, ok := body.(*ast.Block); ok {
		return c.lowerBlock(blk, scope)
	}
	v, t, err := c.lowerExpr(body, scope)
	if err != nil {
		return err
	}
	c.builder.Ret(v, t)
	return nil
}
