package token

import "fmt"

// Lexer is the external collaborator the Cursor adapts: a byte/rune stream
// turned into Tokens. The core never constructs one itself — whatever the
// caller supplies (this package's own Tokenizer, or another implementation
// entirely) only has to satisfy this contract.
type Lexer interface {
	// Peek returns the next token without consuming it. Repeated calls
	// with no intervening Next return the same token.
	Peek() Token
	// Next returns and consumes the next token. Calling Next at EOF is
	// idempotent and keeps returning an EOF token.
	Next() Token
	// SourceFile returns the name the lexer was constructed with.
	SourceFile() string
}

// Cursor is a thin adapter over a Lexer providing the peek/prev/next/consume
// vocabulary the declaration parser is written against (component C1).
// Tokens are never reordered or rewound: Next always returns lexer-order
// tokens, and Prev reports the kind most recently returned by Next/Consume.
type Cursor struct {
	lex     Lexer
	prev    Token
	hasPrev bool
}

// NewCursor wraps lex in a Cursor.
func NewCursor(lex Lexer) *Cursor {
	return &Cursor{lex: lex}
}

// SourceFile returns the name of the file being scanned.
func (c *Cursor) SourceFile() string {
	return c.lex.SourceFile()
}

// PeekToken returns the next, not-yet-consumed token in full.
func (c *Cursor) PeekToken() Token {
	return c.lex.Peek()
}

// Peek returns the kind of the next, not-yet-consumed token.
func (c *Cursor) Peek() Kind {
	return c.lex.Peek().Kind
}

// Prev returns the kind of the most recently consumed token. It is
// undefined (returns EOF) before the first call to Next/Consume.
func (c *Cursor) Prev() Kind {
	if !c.hasPrev {
		return EOF
	}
	return c.prev.Kind
}

// Next advances the cursor and returns the consumed token.
func (c *Cursor) Next() Token {
	t := c.lex.Next()
	c.prev = t
	c.hasPrev = true
	return t
}

// MismatchError is raised by Consume when the next token does not match
// what the grammar expected.
type MismatchError struct {
	Expected Kind
	Got      Kind
	Pos      Position
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("unexpected token at line %d: expected %s, got %s", e.Pos.Line, e.Expected, e.Got)
}

// StreamEndError is raised by Consume when EOF is reached before an
// expected token appears.
type StreamEndError struct {
	Expected Kind
	Pos      Position
}

func (e *StreamEndError) Error() string {
	return fmt.Sprintf("unexpected end of token stream at line %d: expected %s", e.Pos.Line, e.Expected)
}

// Consume asserts that Peek() == expected, appends the consumed token to
// sink, and returns it. It fails with a StreamEndError at EOF or a
// MismatchError otherwise.
func (c *Cursor) Consume(expected Kind, sink *[]Token) (Token, error) {
	if c.Peek() == EOF && expected != EOF {
		return Token{}, &StreamEndError{Expected: expected, Pos: c.currentPos()}
	}
	if c.Peek() != expected {
		return Token{}, &MismatchError{Expected: expected, Got: c.Peek(), Pos: c.currentPos()}
	}
	t := c.Next()
	if sink != nil {
		*sink = append(*sink, t)
	}
	return t, nil
}

// ConsumeComments consumes a run of Comment/DocComment tokens, appending
// each to sink, and returns how many were consumed.
func (c *Cursor) ConsumeComments(sink *[]Token) int {
	n := 0
	for c.Peek() == Comment || c.Peek() == DocComment {
		t := c.Next()
		if sink != nil {
			*sink = append(*sink, t)
		}
		n++
	}
	return n
}

// currentPos reports the line of the next token, falling back to the
// previously consumed token's line at EOF.
func (c *Cursor) currentPos() Position {
	if t := c.lex.Peek(); t.Kind != EOF || !c.hasPrev {
		return Position{Line: t.StartLine}
	}
	return Position{Line: c.prev.EndLine}
}
