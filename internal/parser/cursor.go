package parser

import (
	"github.com/jactl-go/jactlc/internal/lexer"
	"github.com/jactl-go/jactlc/pkg/token"
)

// Cursor is the parser's token-stream view. Unlike the teacher's
// TokenCursor (which buffers the whole token slice itself so it can return
// brand-new cursor values on every Advance), this Cursor is a thin wrapper
// around *lexer.Lexer, which already owns token buffering and mark/rollback
// (spec §6.1's tokenizer contract). Advance/Expect mutate the underlying
// lexer in place; lookahead and backtracking go through Mark/ResetTo, which
// forward straight to lexer.Marker.
type Cursor struct {
	lx *lexer.Lexer
}

// NewCursor wraps a lexer for parser consumption.
func NewCursor(lx *lexer.Lexer) *Cursor { return &Cursor{lx: lx} }

// Current returns the next not-yet-consumed token without consuming it.
func (c *Cursor) Current() token.Token { return c.lx.Peek(0) }

// Peek returns the token n positions ahead of Current (Peek(0) ==
// Current()).
func (c *Cursor) Peek(n int) token.Token { return c.lx.Peek(n) }

// Advance consumes and returns the current token.
func (c *Cursor) Advance() token.Token { return c.lx.Advance() }

// Previous returns the most recently consumed token.
func (c *Cursor) Previous() token.Token { return c.lx.Previous() }

// Is reports whether Current() has the given kind.
func (c *Cursor) Is(k token.Kind) bool { return c.Current().Kind == k }

// IsAny reports whether Current() matches any of the given kinds.
func (c *Cursor) IsAny(kinds ...token.Kind) bool {
	cur := c.Current().Kind
	for _, k := range kinds {
		if cur == k {
			return true
		}
	}
	return false
}

// PeekIs reports whether the token n positions ahead has the given kind.
func (c *Cursor) PeekIs(n int, k token.Kind) bool { return c.Peek(n).Kind == k }

// Skip advances and returns (token, true) if Current() matches k, otherwise
// returns (zero, false) without consuming.
func (c *Cursor) Skip(k token.Kind) (token.Token, bool) {
	if c.Is(k) {
		return c.Advance(), true
	}
	return token.Token{}, false
}

// IsEOF reports whether the cursor has reached end of input.
func (c *Cursor) IsEOF() bool { return c.Is(token.EOF) }

// StartRegex forwards to the underlying lexer so the next scanned token is
// read as a regex literal (spec §6.1: "start_regex()").
func (c *Cursor) StartRegex() { c.lx.StartRegex() }

// Mark is a lightweight lookahead checkpoint (spec GLOSSARY: "Marker /
// lookahead").
type Mark struct{ m *lexer.Marker }

// Mark saves the current position.
func (c *Cursor) Mark() Mark { return Mark{m: c.lx.Mark()} }

// ResetTo rolls the cursor back to a previously saved Mark, discarding any
// tokens consumed and lexical errors recorded since (spec §4.3: lookahead
// failures never surface).
func (c *Cursor) ResetTo(m Mark) { m.m.Rollback() }

// Drop releases a Mark whose speculative production succeeded.
func (m Mark) Drop() { m.m.Drop() }
