package resolver

import (
	cerrors "github.com/jactl-go/jactlc/internal/errors"
	"github.com/jactl-go/jactlc/pkg/token"
)

// errorf records a non-fatal diagnostic at tok, mirroring the parser's own
// errorf (internal/parser/error.go) so resolver diagnostics render with the
// same source-context/caret format (spec §6.4 error format).
func (r *Resolver) errorf(tok token.Token, format string, args ...any) *cerrors.CompileError {
	e := cerrors.New(tok, r.source, r.file, format, args...)
	r.errs.Add(e)
	return e
}

// fatalf records a fatal diagnostic: the enclosing declaration could not be
// resolved meaningfully (e.g. a class cycle), so downstream passes should
// not trust its descriptor.
func (r *Resolver) fatalf(tok token.Token, format string, args ...any) *cerrors.CompileError {
	e := cerrors.NewFatal(tok, r.source, r.file, format, args...)
	r.errs.Add(e)
	return e
}
