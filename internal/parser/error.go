package parser

import (
	cerrors "github.com/jactl-go/jactlc/internal/errors"
	"github.com/jactl-go/jactlc/pkg/token"
)

// anchorSet is the small recovery anchor spec §4.1 names: "on a syntax
// error the parser skips to a small anchor set (EOL, ';', '}', ')', ']')".
// There is no first-class EOL token in this stream (newlines are
// whitespace), so SEMI stands in for statement-level recovery and the
// remaining three are the delimiter anchors.
var anchorSet = map[token.Kind]bool{
	token.SEMI:  true,
	token.RBRACE: true,
	token.RPAREN: true,
	token.RBRACK: true,
	token.EOF:   true,
}

// errorf records a non-fatal CompileError at the given token and returns
// it, so callers can decide whether to also abort the current production.
func (p *Parser) errorf(tok token.Token, format string, args ...any) *cerrors.CompileError {
	e := cerrors.New(tok, p.source, p.file, format, args...)
	p.errs.Add(e)
	return e
}

// fatalf records a fatal CompileError.
func (p *Parser) fatalf(tok token.Token, format string, args ...any) *cerrors.CompileError {
	e := cerrors.NewFatal(tok, p.source, p.file, format, args...)
	p.errs.Add(e)
	return e
}

// synchronize skips tokens until the cursor sits on a recovery anchor or
// EOF, implementing spec §4.1's "Error recovery": syntax errors are
// reported and parsing continues from the next safe point rather than
// aborting the whole compilation.
func (p *Parser) synchronize() {
	for !p.cur.IsEOF() {
		if anchorSet[p.cur.Current().Kind] {
			// Consume the anchor itself when it is a delimiter so the
			// caller resumes just past it; EOF is left untouched.
			if p.cur.Current().Kind != token.EOF {
				p.cur.Advance()
			}
			return
		}
		p.cur.Advance()
	}
}

// expect consumes the current token if it has kind k, otherwise records a
// syntax error and returns the zero token with ok=false.
func (p *Parser) expect(k token.Kind, what string) (token.Token, bool) {
	if tok, ok := p.cur.Skip(k); ok {
		return tok, true
	}
	p.errorf(p.cur.Current(), "expected %s, got %q", what, p.cur.Current().Lexeme)
	return token.Token{}, false
}
