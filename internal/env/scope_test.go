package env_test

import (
	"testing"

	"github.com/malphas-lang/malphas-lang/internal/env"
	"github.com/malphas-lang/malphas-lang/internal/types"
)

func TestResolveWalksParentChain(t *testing.T) {
	root := env.NewScope()
	root.Declare(&env.Symbol{Name: "x", Type: types.I32, Pointer: "x_ptr"})

	child := root.Push()
	if _, ok := child.Resolve("x"); !ok {
		t.Fatalf("expected child scope to resolve x through its parent")
	}
}

func TestInnerDeclarationNotVisibleAfterPop(t *testing.T) {
	root := env.NewScope()
	child := root.Push()
	child.Declare(&env.Symbol{Name: "y", Type: types.I32, Pointer: "y_ptr"})

	if _, ok := child.Resolve("y"); !ok {
		t.Fatalf("expected y to resolve within its own scope")
	}
	if _, ok := root.Resolve("y"); ok {
		t.Fatalf("y declared in a child scope must not be visible in the parent")
	}
}

func TestShadowing(t *testing.T) {
	root := env.NewScope()
	root.Declare(&env.Symbol{Name: "z", Type: types.I32, Pointer: "outer_ptr"})

	child := root.Push()
	child.Declare(&env.Symbol{Name: "z", Type: types.F64, Pointer: "inner_ptr"})

	sym, ok := child.Resolve("z")
	if !ok || sym.Type != types.F64 {
		t.Fatalf("expected the inner z to shadow the outer one, got %+v", sym)
	}

	outerSym, ok := root.Resolve("z")
	if !ok || outerSym.Type != types.I32 {
		t.Fatalf("expected the outer z to be unaffected by shadowing, got %+v", outerSym)
	}
}
