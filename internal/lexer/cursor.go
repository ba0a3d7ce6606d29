package lexer

// Cursor is a rune-indexed view over a source buffer. It never mutates the
// buffer; all offsets it reports are rune (not byte) positions, so it is
// safe over multi-byte input.
//
// Invariant: 0 <= start <= position <= len(runes). position is the index
// of the rune about to be returned by peek/advance; start marks the
// beginning of the span currently being accumulated.
type Cursor struct {
	runes    []rune
	start    int
	position int
}

// NewCursor creates a cursor positioned at the start of source.
func NewCursor(source string) *Cursor {
	return &Cursor{runes: []rune(source)}
}

// Eof reports whether the cursor has been exhausted.
func (c *Cursor) Eof() bool {
	return c.position >= len(c.runes)
}

// Peek returns the rune under the cursor without advancing it. It fails
// with UnexpectedEndOfInput if the cursor is exhausted.
func (c *Cursor) Peek() (rune, error) {
	if c.Eof() {
		return 0, newLexerError(ErrUnexpectedEndOfInput, "unexpected end of input", c.Span())
	}
	return c.runes[c.position], nil
}

// Advance moves the cursor forward one rune and returns the rune it moved
// past (the one that was under the cursor before the call).
func (c *Cursor) Advance() (rune, error) {
	r, err := c.Peek()
	if err != nil {
		return 0, err
	}
	c.position++
	return r, nil
}

// Lookup peeks k runes ahead of the current position (Lookup(0) ==
// Peek()'s rune, ignoring error). It returns 0 past the end of input.
func (c *Cursor) Lookup(k int) rune {
	idx := c.position + k
	if idx < 0 || idx >= len(c.runes) {
		return 0
	}
	return c.runes[idx]
}

// Span returns the half-open range [start, position) accumulated since the
// last ClearSpan call.
func (c *Cursor) Span() Span {
	return Span{Start: c.start, End: c.position}
}

// ClearSpan snaps the span start to the current position, beginning a new
// span.
func (c *Cursor) ClearSpan() {
	c.start = c.position
}

// Slice returns the rune range covered by span as a string.
func (c *Cursor) Slice(span Span) string {
	if span.Start < 0 {
		span.Start = 0
	}
	if span.End > len(c.runes) {
		span.End = len(c.runes)
	}
	return string(c.runes[span.Start:span.End])
}
