package parser

import (
	"github.com/hashicorp/go-multierror"

	"github.com/malphas-lang/malphas-lang/internal/lexer"
)

// CollectErrors parses source to completion the way ParseFile does, but
// never stops at the first bad top-level declaration: on a parse failure
// it resynchronizes to the next `function` keyword (panic-mode recovery,
// the same shape as rami3l-golox's Parser.errors/synchronize) and keeps
// going, accumulating every error via multierror. A caller that wants the
// full picture of a broken file's syntax errors in one pass — e.g. an
// editor integration — uses this instead of ParseFile.
func CollectErrors(source string) error {
	p, err := New(source)
	if err != nil {
		return err
	}

	var errs *multierror.Error
	for !p.at(lexer.EOF) {
		if _, ferr := p.parseFunction(); ferr != nil {
			errs = multierror.Append(errs, ferr)
			if !p.synchronize() {
				break
			}
		}
	}
	return errs.ErrorOrNil()
}

// synchronize skips tokens until the next `function` keyword or end of
// input, discarding whatever partial declaration just failed to parse.
// Reports whether it stopped at a function keyword (false means it hit
// EOF, or a lexer error cut resynchronization short).
func (p *Parser) synchronize() bool {
	for !p.at(lexer.EOF) && !p.at(lexer.Function) {
		if err := p.advance(); err != nil {
			return false
		}
	}
	return p.at(lexer.Function)
}
