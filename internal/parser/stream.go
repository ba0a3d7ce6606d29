package parser

import (
	"errors"
	"io"

	"github.com/malphas-lang/malphas-lang/internal/lexer"
)

// tokenStream is a one-token-lookahead peekable adapter over a *lexer.Lexer,
// per spec.md §2 ("Token stream — peekable adapter the parser consumes").
type tokenStream struct {
	lx    *lexer.Lexer
	peek  *lexer.Token // nil until filled
	atEOF bool
}

func newTokenStream(source string) *tokenStream {
	return &tokenStream{lx: lexer.New(source)}
}

// next consumes and returns the next token, reading through the lexer and
// reporting end of input as a single synthetic lexer.EOF-kinded token
// rather than an error.
func (s *tokenStream) next() (lexer.Token, error) {
	if s.peek != nil {
		tok := *s.peek
		s.peek = nil
		return tok, nil
	}
	return s.read()
}

// peekTok returns the next token without consuming it.
func (s *tokenStream) peekTok() (lexer.Token, error) {
	if s.peek == nil {
		tok, err := s.read()
		if err != nil {
			return lexer.Token{}, err
		}
		s.peek = &tok
	}
	return *s.peek, nil
}

func (s *tokenStream) read() (lexer.Token, error) {
	if s.atEOF {
		return lexer.Token{Kind: lexer.EOF}, nil
	}
	tok, err := s.lx.Next()
	if err != nil {
		if errors.Is(err, io.EOF) {
			s.atEOF = true
			return lexer.Token{Kind: lexer.EOF}, nil
		}
		return lexer.Token{}, err
	}
	return tok, nil
}
