// Package ast defines the tagged-variant node types produced by the
// parser, per spec.md §3.
package ast

import "github.com/malphas-lang/malphas-lang/internal/lexer"

// Node is the sum type every parsed construct belongs to. Each concrete
// type below implements Node by exposing its span; callers type-switch on
// the concrete type to recover the variant, matching the teacher's
// tagged-variant convention (one Go type per AST alternative instead of a
// single struct with optional fields).
type Node interface {
	Span() lexer.Span
}

// Identifier is a leaf node naming a variable or function.
type Identifier struct {
	Name string
	Sp   lexer.Span
}

func (n *Identifier) Span() lexer.Span { return n.Sp }

// Integer is an integer literal leaf, stored as its source lexeme so the
// lowering pass controls parsing (and its error reporting).
type Integer struct {
	Literal string
	Sp      lexer.Span
}

func (n *Integer) Span() lexer.Span { return n.Sp }

// Float is a floating point literal leaf.
type Float struct {
	Literal string
	Sp      lexer.Span
}

func (n *Float) Span() lexer.Span { return n.Sp }

// Boolean is a true/false literal leaf.
type Boolean struct {
	Value bool
	Sp    lexer.Span
}

func (n *Boolean) Span() lexer.Span { return n.Sp }

// Block is an ordered sequence of nodes forming a lexical scope.
type Block struct {
	Nodes []Node
	Sp    lexer.Span
}

func (n *Block) Span() lexer.Span { return n.Sp }

// BinaryOp enumerates the infix operators the grammar supports.
type BinaryOp string

const (
	OpAdd          BinaryOp = "+"
	OpSub          BinaryOp = "-"
	OpMul          BinaryOp = "*"
	OpDiv          BinaryOp = "/"
	OpEqual        BinaryOp = "=="
	OpNotEqual     BinaryOp = "!="
	OpLess         BinaryOp = "<"
	OpLessEqual    BinaryOp = "<="
	OpGreater      BinaryOp = ">"
	OpGreaterEqual BinaryOp = ">="
	OpAnd          BinaryOp = "&&"
	OpOr           BinaryOp = "||"
	OpAssign       BinaryOp = "="
)

// UnaryOp enumerates the prefix operators the grammar supports. The
// closed operator set is kept in one place per spec.md §9 so adding an
// operator stays a coordinated, easy-to-audit change.
type UnaryOp string

const OpNeg UnaryOp = "-"

// Binary is a binary expression node: `lhs op rhs`.
type Binary struct {
	Op  BinaryOp
	Lhs Node
	Rhs Node
	Sp  lexer.Span
}

func (n *Binary) Span() lexer.Span { return n.Sp }

// Unary is a prefix expression node: `op arg`.
type Unary struct {
	Op  UnaryOp
	Arg Node
	Sp  lexer.Span
}

func (n *Unary) Span() lexer.Span { return n.Sp }

// Call is a function call expression: `callee(args...)`.
type Call struct {
	Callee string
	Args   []Node
	Sp     lexer.Span
}

func (n *Call) Span() lexer.Span { return n.Sp }

// Return is a `return [expr];` statement.
type Return struct {
	Value Node // nil for a bare `return;`
	Sp    lexer.Span
}

func (n *Return) Span() lexer.Span { return n.Sp }

// Conditional is an `if test then [else else_]` statement.
type Conditional struct {
	Test Node
	Then Node
	Else Node // nil when there is no else clause
	Sp   lexer.Span
}

func (n *Conditional) Span() lexer.Span { return n.Sp }

// LetBinding is a `let [mut] name [: type] [= init];` statement.
type LetBinding struct {
	Name         string
	Mutable      bool
	DeclaredType string // "" if omitted
	Init         Node   // nil if omitted
	Sp           lexer.Span
}

func (n *LetBinding) Span() lexer.Span { return n.Sp }

// ExprStatement wraps a bare expression used as a statement: `expr;`.
type ExprStatement struct {
	Expr Node
	Sp   lexer.Span
}

func (n *ExprStatement) Span() lexer.Span { return n.Sp }

// Argument is one `name: type` entry in a function's parameter list.
type Argument struct {
	Name string
	Type string
}

// Function is a top-level `function name(args) [-> type] body` item.
// Body is either a *Block or, for the inline `= expr;` form, the bare
// expression node.
type Function struct {
	Name       string
	Arguments  []Argument
	ReturnType string // "" when omitted
	Body       Node
	Sp         lexer.Span
}

func (n *Function) Span() lexer.Span { return n.Sp }

// File is the ordered list of top-level function declarations that make
// up a compilation unit.
type File struct {
	Functions []*Function
}
