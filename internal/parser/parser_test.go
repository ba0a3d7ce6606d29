package parser_test

import (
	"testing"

	"github.com/malphas-lang/malphas-lang/internal/ast"
	"github.com/malphas-lang/malphas-lang/internal/parser"
)

func parseExprFromMain(t *testing.T, exprSource string) ast.Node {
	t.Helper()
	file, err := parser.ParseFile("function main() -> i32 { return " + exprSource + "; }")
	if err != nil {
		t.Fatalf("unexpected parse error for %q: %v", exprSource, err)
	}
	ret := file.Functions[0].Body.(*ast.Block).Nodes[0].(*ast.Return)
	return ret.Value
}

func TestPrecedenceMultiplicativeOverAdditive(t *testing.T) {
	// a + b * c must parse as a + (b * c)
	n := parseExprFromMain(t, "a + b * c").(*ast.Binary)
	if n.Op != ast.OpAdd {
		t.Fatalf("expected top-level +, got %s", n.Op)
	}
	rhs, ok := n.Rhs.(*ast.Binary)
	if !ok || rhs.Op != ast.OpMul {
		t.Fatalf("expected right side to be a * node, got %#v", n.Rhs)
	}
}

func TestPrecedencePrefixOverMultiplicative(t *testing.T) {
	// -x * y must parse as (-x) * y, per spec.md §8 property 5.
	n := parseExprFromMain(t, "-x * y").(*ast.Binary)
	if n.Op != ast.OpMul {
		t.Fatalf("expected top-level *, got %s", n.Op)
	}
	lhs, ok := n.Lhs.(*ast.Unary)
	if !ok || lhs.Op != ast.OpNeg {
		t.Fatalf("expected left side to be a unary - node, got %#v", n.Lhs)
	}
}

func TestPrecedenceEqualityOverAndOverComparison(t *testing.T) {
	// a == b && c < d: == binds tighter than &&, which binds tighter than
	// <, so this parses as ((a == b) && c) < d
	n := parseExprFromMain(t, "a == b && c < d").(*ast.Binary)
	if n.Op != ast.OpLess {
		t.Fatalf("expected top-level <, got %s", n.Op)
	}
	lhs, ok := n.Lhs.(*ast.Binary)
	if !ok || lhs.Op != ast.OpAnd {
		t.Fatalf("expected left side to be &&, got %#v", n.Lhs)
	}
	eq, ok := lhs.Lhs.(*ast.Binary)
	if !ok || eq.Op != ast.OpEqual {
		t.Fatalf("expected left side of && to be ==, got %#v", lhs.Lhs)
	}
	if _, ok := n.Rhs.(*ast.Identifier); !ok {
		t.Fatalf("expected right side to be the identifier d, got %#v", n.Rhs)
	}
}

func TestAssignmentIsRightAssociativeAndLowest(t *testing.T) {
	// a = b = c + 1 must parse as a = (b = (c + 1))
	n := parseExprFromMain(t, "a = b = c + 1").(*ast.Binary)
	if n.Op != ast.OpAssign {
		t.Fatalf("expected top-level =, got %s", n.Op)
	}
	inner, ok := n.Rhs.(*ast.Binary)
	if !ok || inner.Op != ast.OpAssign {
		t.Fatalf("expected right side to be a nested =, got %#v", n.Rhs)
	}
	innerRHS, ok := inner.Rhs.(*ast.Binary)
	if !ok || innerRHS.Op != ast.OpAdd {
		t.Fatalf("expected innermost right side to be +, got %#v", inner.Rhs)
	}
}

func TestFunctionArgumentsAndCall(t *testing.T) {
	file, err := parser.ParseFile("function add(a: i32, b: i32) -> i32 { return a + b; } function main() -> i32 { return add(1, 2); }")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if len(file.Functions) != 2 {
		t.Fatalf("expected 2 functions, got %d", len(file.Functions))
	}
	add := file.Functions[0]
	if len(add.Arguments) != 2 || add.Arguments[0].Name != "a" || add.Arguments[0].Type != "i32" {
		t.Fatalf("unexpected arguments: %#v", add.Arguments)
	}

	main := file.Functions[1]
	ret := main.Body.(*ast.Block).Nodes[0].(*ast.Return)
	call, ok := ret.Value.(*ast.Call)
	if !ok || call.Callee != "add" || len(call.Args) != 2 {
		t.Fatalf("expected a call to add/2, got %#v", ret.Value)
	}
}

func TestInlineFunctionBody(t *testing.T) {
	file, err := parser.ParseFile("function square(x: i32) -> i32 = x * x;")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if _, ok := file.Functions[0].Body.(*ast.Block); ok {
		t.Fatalf("expected a bare expression body, not a block")
	}
}

func TestConditionalWithBlockBranches(t *testing.T) {
	file, err := parser.ParseFile("function main() -> i32 { if x > 0 { return 1; } else { return 0; } }")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	cond := file.Functions[0].Body.(*ast.Block).Nodes[0].(*ast.Conditional)
	if _, ok := cond.Then.(*ast.Block); !ok {
		t.Fatalf("expected a block then-branch, got %#v", cond.Then)
	}
	if _, ok := cond.Else.(*ast.Block); !ok {
		t.Fatalf("expected a block else-branch, got %#v", cond.Else)
	}
}

func TestConditionalWithBareStatementThenBranch(t *testing.T) {
	// spec.md §4.2/§6: `if expr (block | expr ";")`, so a bare statement
	// then-branch with no surrounding block must parse.
	file, err := parser.ParseFile("function main() -> i32 { if x > 0 return 1; return 0; }")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	cond := file.Functions[0].Body.(*ast.Block).Nodes[0].(*ast.Conditional)
	ret, ok := cond.Then.(*ast.Return)
	if !ok {
		t.Fatalf("expected a bare return then-branch, got %#v", cond.Then)
	}
	if _, ok := ret.Value.(*ast.Integer); !ok {
		t.Fatalf("expected the return value to be an integer literal, got %#v", ret.Value)
	}
	if cond.Else != nil {
		t.Fatalf("expected no else-branch, got %#v", cond.Else)
	}
}

func TestConditionalWithBareStatementElseBranch(t *testing.T) {
	file, err := parser.ParseFile("function main() -> i32 { if c { a(); } else return 0; }")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	cond := file.Functions[0].Body.(*ast.Block).Nodes[0].(*ast.Conditional)
	if _, ok := cond.Then.(*ast.Block); !ok {
		t.Fatalf("expected a block then-branch, got %#v", cond.Then)
	}
	if _, ok := cond.Else.(*ast.Return); !ok {
		t.Fatalf("expected a bare return else-branch, got %#v", cond.Else)
	}
}

func TestConditionalElseIfChain(t *testing.T) {
	file, err := parser.ParseFile("function main() -> i32 { if a { return 1; } else if b { return 2; } else { return 3; } }")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	cond := file.Functions[0].Body.(*ast.Block).Nodes[0].(*ast.Conditional)
	elseIf, ok := cond.Else.(*ast.Conditional)
	if !ok {
		t.Fatalf("expected the else-branch to be a nested conditional, got %#v", cond.Else)
	}
	if _, ok := elseIf.Else.(*ast.Block); !ok {
		t.Fatalf("expected the innermost else to be a block, got %#v", elseIf.Else)
	}
}

func TestCollectErrorsAccumulatesPastFirstBadFunction(t *testing.T) {
	err := parser.CollectErrors("function broken( { } function main() -> i32 { return 1; }")
	if err == nil {
		t.Fatalf("expected at least one accumulated error")
	}
}

func TestCollectErrorsNoErrorOnValidSource(t *testing.T) {
	err := parser.CollectErrors("function main() -> i32 { return 1; }")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
