package lower

import (
	"github.com/malphas-lang/malphas-lang/internal/ast"
	"github.com/malphas-lang/malphas-lang/internal/env"
	"github.com/malphas-lang/malphas-lang/internal/irgen"
	"github.com/malphas-lang/malphas-lang/internal/types"
)

// lowerBlock lowers a sequence of statements in a fresh child scope.
// Lowering stops as soon as the current basic block is terminated
// (spec.md §8 property 9): any statements textually following a
// `return` are unreachable and are dropped rather than appended after
// the block's terminator.
func (c *ctx) lowerBlock(blk *ast.Block, parent *env.Scope) error {
	scope := parent.Push()
	for _, node := range blk.Nodes {
		if c.builder.Terminated() {
			break
		}
		if err := c.lowerStatement(node, scope); err != nil {
			return err
		}
	}
	return nil
}

// lowerBranch lowers one arm of a conditional: a `{ ... }` block gets its
// own child scope, while any other single statement (an `else if`
// conditional, a return, a let, or an expression) is lowered directly in
// scope, so a bare `let` arm binds its name in the enclosing scope.
func (c *ctx) lowerBranch(node ast.Node, scope *env.Scope) error {
	if blk, ok := node.(*ast.Block); ok {
		return c.lowerBlock(blk, scope)
	}
	return c.lowerStatement(node, scope)
}

func (c *ctx) lowerStatement(node ast.Node, scope *env.Scope) error {
	switch n := node.(type) {
	case *ast.Block:
		return c.lowerBlock(n, scope)
	case *ast.Return:
		return c.lowerReturn(n, scope)
	case *ast.Conditional:
		return c.lowerConditional(n, scope)
	case *ast.LetBinding:
		return c.lowerLetBinding(n, scope)
	case *ast.ExprStatement:
		if call, ok := n.Expr.(*ast.Call); ok {
			_, _, err := c.lowerCall(call, scope, true)
			return err
		}
		_, _, err := c.lowerExpr(n.Expr, scope)
		return err
	default:
		return newError(ErrInvalidFunctionBody, node.Span(), "unsupported statement node %T", node)
	}
}

func (c *ctx) lowerReturn(n *ast.Return, scope *env.Scope) error {
	if n.Value == nil {
		c.builder.RetVoid()
		return nil
	}
	v, t, err := c.lowerExpr(n.Value, scope)
	if err != nil {
		return err
	}
	c.builder.Ret(v, t)
	return nil
}

func (c *ctx) lowerConditional(n *ast.Conditional, scope *env.Scope) error {
	test, testType, err := c.lowerExpr(n.Test, scope)
	if err != nil {
		return err
	}
	if testType != types.Boolean {
		return newError(ErrNotBoolean, n.Test.Span(), "condition must be boolean, got %s", testType)
	}

	thenBlk := c.builder.NewBlockDetached("then")
	var elseBlk *irgen.Block
	if n.Else != nil {
		elseBlk = c.builder.NewBlockDetached("else")
	}
	contBlk := c.builder.NewBlockDetached("continue")

	if n.Else != nil {
		c.builder.CondBr(test, thenBlk, elseBlk)
	} else {
		c.builder.CondBr(test, thenBlk, contBlk)
	}

	c.builder.SetCurrent(thenBlk)
	if err := c.lowerBranch(n.Then, scope); err != nil {
		return err
	}
	if !c.builder.Terminated() {
		c.builder.Br(contBlk)
	}

	if n.Else != nil {
		c.builder.SetCurrent(elseBlk)
		if err := c.lowerBranch(n.Else, scope); err != nil {
			return err
		}
		if !c.builder.Terminated() {
			c.builder.Br(contBlk)
		}
	}

	c.builder.SetCurrent(contBlk)
	return nil
}

func (c *ctx) lowerLetBinding(n *ast.LetBinding, scope *env.Scope) error {
	if n.Init == nil {
		return newError(ErrTypeMismatch, n.Span(), "let %q: an initializer is required", n.Name)
	}
	v, initT, err := c.lowerExpr(n.Init, scope)
	if err != nil {
		return err
	}

	t := initT
	if n.DeclaredType != "" {
		declared, err := types.Lookup(n.DeclaredType)
		if err != nil {
			return newError(ErrTypeMismatch, n.Span(), "let %q: %s", n.Name, err)
		}
		if declared != initT {
			return newError(ErrTypeMismatch, n.Span(), "let %q: declared %s but initializer is %s", n.Name, declared, initT)
		}
		t = declared
	}

	slot := c.nextSlot()
	ptr := c.builder.Alloca(t, slot)
	c.builder.Store(v, ptr, t)
	scope.Declare(&env.Symbol{Name: n.Name, Type: t, Mutable: n.Mutable, Pointer: ptr.Reg})
	return nil
}
