// Package parser implements the Pratt (operator-precedence) parser that
// turns a token stream into the typed AST defined in internal/ast, per
// spec.md §4.2.
package parser

import (
	"fmt"

	"github.com/malphas-lang/malphas-lang/internal/ast"
	"github.com/malphas-lang/malphas-lang/internal/lexer"
)

// Parser consumes a tokenStream and builds an *ast.File. ParseFile has no
// error recovery: the first Error encountered is returned immediately and
// parsing stops, matching the teacher's fail-fast style. CollectErrors is
// the one caller that recovers, by resynchronizing to the next `function`.
type Parser struct {
	stream     *tokenStream
	cur        lexer.Token
	inFunction bool
}

// New constructs a Parser over source text.
func New(source string) (*Parser, error) {
	p := &Parser{stream: newTokenStream(source)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Parser) advance() error {
	tok, err := p.stream.next()
	if err != nil {
		return err
	}
	p.cur = tok
	return nil
}

func (p *Parser) peek() (lexer.Token, error) {
	return p.stream.peekTok()
}

func (p *Parser) unexpectedEOF() *Error {
	return &Error{
		Kind:    ErrUnexpectedEndOfInput,
		Message: "unexpected end of input",
		Span:    p.cur.Span,
	}
}

func (p *Parser) unexpectedToken(expected lexer.Kind) *Error {
	return &Error{
		Kind:     ErrUnexpectedToken,
		Message:  fmt.Sprintf("unexpected token %q", p.cur.Lexeme),
		Span:     p.cur.Span,
		Expected: expected,
		Got:      p.cur.Kind,
	}
}

// expect verifies the current token has kind k, consumes it, and advances.
func (p *Parser) expect(k lexer.Kind) (lexer.Token, error) {
	if p.cur.Kind == lexer.EOF {
		return lexer.Token{}, p.unexpectedEOF()
	}
	if p.cur.Kind != k {
		return lexer.Token{}, p.unexpectedToken(k)
	}
	tok := p.cur
	if err := p.advance(); err != nil {
		return lexer.Token{}, err
	}
	return tok, nil
}

func (p *Parser) at(k lexer.Kind) bool {
	return p.cur.Kind == k
}

// ParseFile parses a full compilation unit: zero or more top-level
// function declarations followed by end of input.
func ParseFile(source string) (*ast.File, error) {
	p, err := New(source)
	if err != nil {
		return nil, err
	}
	return p.parseFile()
}

func (p *Parser) parseFile() (*ast.File, error) {
	file := &ast.File{}
	for !p.at(lexer.EOF) {
		fn, err := p.parseFunction()
		if err != nil {
			return nil, err
		}
		file.Functions = append(file.Functions, fn)
	}
	return file, nil
}

// parseFunction parses `function name(arg: type, ...) [-> type] body`
// where body is either a `{ ... }` block or an `= expr;` inline form, per
// spec.md §3.
func (p *Parser) parseFunction() (*ast.Function, error) {
	start, err := p.expect(lexer.Function)
	if err != nil {
		return nil, err
	}
	nameTok, err := p.expect(lexer.Identifier)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(lexer.LParen); err != nil {
		return nil, err
	}
	var args []ast.Argument
	for !p.at(lexer.RParen) {
		argNameTok, err := p.expect(lexer.Identifier)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.Colon); err != nil {
			return nil, err
		}
		argTypeTok, err := p.expect(lexer.Identifier)
		if err != nil {
			return nil, err
		}
		args = append(args, ast.Argument{Name: argNameTok.Lexeme, Type: argTypeTok.Lexeme})
		if p.at(lexer.Comma) {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if _, err := p.expect(lexer.RParen); err != nil {
		return nil, err
	}

	returnType := ""
	if p.at(lexer.Arrow) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		retTok, err := p.expect(lexer.Identifier)
		if err != nil {
			return nil, err
		}
		returnType = retTok.Lexeme
	}

	wasInFunction := p.inFunction
	p.inFunction = true
	defer func() { p.inFunction = wasInFunction }()

	var body ast.Node
	if p.at(lexer.Assignment) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		expr, err := p.parseExprBP(bpLowest)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.Semicolon); err != nil {
			return nil, err
		}
		body = expr
	} else {
		block, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		body = block
	}

	end := body.Span()
	return &ast.Function{
		Name:       nameTok.Lexeme,
		Arguments:  args,
		ReturnType: returnType,
		Body:       body,
		Sp:         lexer.Span{Start: start.Span.Start, End: end.End},
	}, nil
}

// parseBlock parses a `{ statement* }` block.
func (p *Parser) parseBlock() (*ast.Block, error) {
	start, err := p.expect(lexer.LCurly)
	if err != nil {
		return nil, err
	}
	var nodes []ast.Node
	for !p.at(lexer.RCurly) {
		if p.at(lexer.EOF) {
			return nil, p.unexpectedEOF()
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, stmt)
	}
	end, err := p.expect(lexer.RCurly)
	if err != nil {
		return nil, err
	}
	return &ast.Block{Nodes: nodes, Sp: lexer.Span{Start: start.Span.Start, End: end.Span.End}}, nil
}

// parseStatement dispatches on the current token to one of the statement
// forms, falling back to a bare expression statement.
func (p *Parser) parseStatement() (ast.Node, error) {
	switch p.cur.Kind {
	case lexer.Return:
		return p.parseReturn()
	case lexer.If:
		return p.parseConditional()
	case lexer.Let:
		return p.parseLetBinding()
	case lexer.LCurly:
		return p.parseBlock()
	default:
		return p.parseExprStatement()
	}
}

func (p *Parser) parseReturn() (ast.Node, error) {
	if !p.inFunction {
		return nil, &Error{
			Kind:    ErrReturnOutsideFunction,
			Message: "return statement outside of a function body",
			Span:    p.cur.Span,
		}
	}
	start, err := p.expect(lexer.Return)
	if err != nil {
		return nil, err
	}
	if p.at(lexer.Semicolon) {
		end, err := p.expect(lexer.Semicolon)
		if err != nil {
			return nil, err
		}
		return &ast.Return{Value: nil, Sp: lexer.Span{Start: start.Span.Start, End: end.Span.End}}, nil
	}
	expr, err := p.parseExprBP(bpLowest)
	if err != nil {
		return nil, err
	}
	end, err := p.expect(lexer.Semicolon)
	if err != nil {
		return nil, err
	}
	return &ast.Return{Value: expr, Sp: lexer.Span{Start: start.Span.Start, End: end.Span.End}}, nil
}

// parseConditional parses `if test (block | expr ";") [else statement]`,
// per spec.md §4.2/§6: the then-branch and a non-`else if` else-branch
// are any statement, not just a `{ ... }` block, so `if x > 0 return 1;`
// and `if c { a; } else return 0;` are both valid.
func (p *Parser) parseConditional() (ast.Node, error) {
	start, err := p.expect(lexer.If)
	if err != nil {
		return nil, err
	}
	test, err := p.parseExprBP(bpLowest)
	if err != nil {
		return nil, err
	}
	then, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	end := then.Span()
	var elseNode ast.Node
	if p.at(lexer.Else) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.at(lexer.If) {
			elseNode, err = p.parseConditional()
		} else {
			elseNode, err = p.parseStatement()
		}
		if err != nil {
			return nil, err
		}
		end = elseNode.Span()
	}
	return &ast.Conditional{
		Test: test,
		Then: then,
		Else: elseNode,
		Sp:   lexer.Span{Start: start.Span.Start, End: end.End},
	}, nil
}

// parseLetBinding parses `let [mut] name [: type] [= init];`.
func (p *Parser) parseLetBinding() (ast.Node, error) {
	start, err := p.expect(lexer.Let)
	if err != nil {
		return nil, err
	}
	mutable := false
	if p.at(lexer.Mut) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		mutable = true
	}
	nameTok, err := p.expect(lexer.Identifier)
	if err != nil {
		return nil, err
	}
	declaredType := ""
	if p.at(lexer.Colon) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		typeTok, err := p.expect(lexer.Identifier)
		if err != nil {
			return nil, err
		}
		declaredType = typeTok.Lexeme
	}
	var init ast.Node
	if p.at(lexer.Assignment) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		init, err = p.parseExprBP(bpLowest)
		if err != nil {
			return nil, err
		}
	}
	end, err := p.expect(lexer.Semicolon)
	if err != nil {
		return nil, err
	}
	return &ast.LetBinding{
		Name:         nameTok.Lexeme,
		Mutable:      mutable,
		DeclaredType: declaredType,
		Init:         init,
		Sp:           lexer.Span{Start: start.Span.Start, End: end.Span.End},
	}, nil
}

func (p *Parser) parseExprStatement() (ast.Node, error) {
	expr, err := p.parseExprBP(bpLowest)
	if err != nil {
		return nil, err
	}
	end, err := p.expect(lexer.Semicolon)
	if err != nil {
		return nil, err
	}
	return &ast.ExprStatement{Expr: expr, Sp: lexer.Span{Start: expr.Span().Start, End: end.Span.End}}, nil
}

// parseExprBP is the Pratt loop: parse a prefix ("nud") expression, then
// keep absorbing infix/postfix operators ("led") whose left binding power
// is at least minBP, per spec.md §4.2.
func (p *Parser) parseExprBP(minBP int) (ast.Node, error) {
	lhs, err := p.parseNud()
	if err != nil {
		return nil, err
	}
	for {
		lbp := leftBindingPower(p.cur.Kind)
		if lbp < minBP || lbp == bpLowest {
			break
		}
		lhs, err = p.parseLed(lhs)
		if err != nil {
			return nil, err
		}
	}
	return lhs, nil
}

// parseNud parses a prefix position: a literal, identifier, call,
// parenthesized expression, or unary minus.
func (p *Parser) parseNud() (ast.Node, error) {
	switch p.cur.Kind {
	case lexer.EOF:
		return nil, p.unexpectedEOF()
	case lexer.Integer:
		tok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.Integer{Literal: tok.Lexeme, Sp: tok.Span}, nil
	case lexer.Float:
		tok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.Float{Literal: tok.Lexeme, Sp: tok.Span}, nil
	case lexer.True, lexer.False:
		tok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.Boolean{Value: tok.Kind == lexer.True, Sp: tok.Span}, nil
	case lexer.Identifier:
		return p.parseIdentifierOrCall()
	case lexer.LParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseExprBP(bpLowest)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RParen); err != nil {
			return nil, err
		}
		return inner, nil
	case lexer.Minus:
		start := p.cur.Span
		if err := p.advance(); err != nil {
			return nil, err
		}
		arg, err := p.parseExprBP(bpPrefix)
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Op: ast.OpNeg, Arg: arg, Sp: lexer.Span{Start: start.Start, End: arg.Span().End}}, nil
	default:
		return nil, &Error{
			Kind:    ErrBadLeftOfExpression,
			Message: fmt.Sprintf("%q cannot start an expression", p.cur.Lexeme),
			Span:    p.cur.Span,
		}
	}
}

func (p *Parser) parseIdentifierOrCall() (ast.Node, error) {
	nameTok := p.cur
	if err := p.advance(); err != nil {
		return nil, err
	}
	if !p.at(lexer.LParen) {
		return &ast.Identifier{Name: nameTok.Lexeme, Sp: nameTok.Span}, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	var args []ast.Node
	for !p.at(lexer.RParen) {
		arg, err := p.parseExprBP(bpLowest)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.at(lexer.Comma) {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	end, err := p.expect(lexer.RParen)
	if err != nil {
		return nil, err
	}
	return &ast.Call{Callee: nameTok.Lexeme, Args: args, Sp: lexer.Span{Start: nameTok.Span.Start, End: end.Span.End}}, nil
}

var binaryOps = map[lexer.Kind]ast.BinaryOp{
	lexer.Plus:         ast.OpAdd,
	lexer.Minus:        ast.OpSub,
	lexer.Multiply:     ast.OpMul,
	lexer.Divide:       ast.OpDiv,
	lexer.Equal:        ast.OpEqual,
	lexer.NotEqual:     ast.OpNotEqual,
	lexer.Less:         ast.OpLess,
	lexer.LessEqual:    ast.OpLessEqual,
	lexer.Greater:      ast.OpGreater,
	lexer.GreaterEqual: ast.OpGreaterEqual,
	lexer.And:          ast.OpAnd,
	lexer.Or:           ast.OpOr,
	lexer.Assignment:   ast.OpAssign,
}

// parseLed continues parsing at an infix/postfix operator position given
// the already-parsed left-hand side.
func (p *Parser) parseLed(lhs ast.Node) (ast.Node, error) {
	op, ok := binaryOps[p.cur.Kind]
	if !ok {
		return nil, p.unexpectedToken("")
	}
	opKind := p.cur.Kind
	if err := p.advance(); err != nil {
		return nil, err
	}
	rhs, err := p.parseExprBP(rightBindingPower(opKind))
	if err != nil {
		return nil, err
	}
	return &ast.Binary{Op: op, Lhs: lhs, Rhs: rhs, Sp: lexer.Span{Start: lhs.Span().Start, End: rhs.Span().End}}, nil
}
