// Package errors formats and accumulates the compiler diagnostics produced
// by the parser and resolver. It formats compile errors with source
// context, line/column information, and a caret pointing at the error
// location.
package errors

import (
	"fmt"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/jactl-go/jactlc/pkg/token"
)

// CompileError is a single diagnostic: a human message, the token it points
// at, and whether it should abort the enclosing declaration. Every
// CompileError carries a token rather than a bare position, so formatting
// can always recover line/column and surrounding source, and so that every
// user-visible error is traceable to at least one token.
type CompileError struct {
	Message string
	Tok     token.Token
	Source  string // full source text of Tok.SourceID, for context rendering
	File    string
	Fatal   bool
}

// New creates a non-fatal CompileError.
func New(tok token.Token, source, file, format string, args ...any) *CompileError {
	return &CompileError{
		Message: fmt.Sprintf(format, args...),
		Tok:     tok,
		Source:  source,
		File:    file,
	}
}

// NewFatal creates a CompileError that aborts the enclosing declaration.
func NewFatal(tok token.Token, source, file, format string, args ...any) *CompileError {
	e := New(tok, source, file, format, args...)
	e.Fatal = true
	return e
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	return e.Format(false)
}

// Format formats the error message with source context.
// If color is true, ANSI color codes are used for terminal output.
func (e *CompileError) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		sb.WriteString(fmt.Sprintf("Error in %s:%d:%d\n", e.File, e.Tok.Pos.Line, e.Tok.Pos.Column))
	} else {
		sb.WriteString(fmt.Sprintf("Error at line %d:%d\n", e.Tok.Pos.Line, e.Tok.Pos.Column))
	}

	sourceLine := e.getSourceLine(e.Tok.Pos.Line)
	if sourceLine != "" {
		lineNumStr := fmt.Sprintf("%4d | ", e.Tok.Pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(sourceLine)
		sb.WriteString("\n")

		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+e.Tok.Pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m") // Red bold
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

// getSourceLine extracts a specific 1-indexed line from the source code.
func (e *CompileError) getSourceLine(lineNum int) string {
	if e.Source == "" || lineNum < 1 {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// List accumulates the non-fatal errors produced while parsing or resolving
// one compilation unit (spec: "a small accumulator collects non-fatal
// errors"). A List is not safe for concurrent use; each unit owns its own.
type List struct {
	errs []*CompileError
}

// Add appends an error to the list.
func (l *List) Add(e *CompileError) { l.errs = append(l.errs, e) }

// HasErrors reports whether any error has been added.
func (l *List) HasErrors() bool { return len(l.errs) > 0 }

// Errors returns every accumulated error, in the order added.
func (l *List) Errors() []*CompileError { return l.errs }

// Mark returns the current length, to be passed back to Reset if a
// lookahead production fails and its errors must not surface.
func (l *List) Mark() int { return len(l.errs) }

// Reset truncates the list back to a previous Mark, discarding every error
// added since -- used on lookahead rollback, whose failures never surface
// to the user.
func (l *List) Reset(mark int) {
	if mark <= len(l.errs) {
		l.errs = l.errs[:mark]
	}
}

// Format renders every accumulated error, numbering them when there is more
// than one.
func (l *List) Format(color bool) string {
	if len(l.errs) == 0 {
		return ""
	}
	if len(l.errs) == 1 {
		return l.errs[0].Format(color)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Compilation failed with %d error(s):\n\n", len(l.errs)))
	for i, e := range l.errs {
		sb.WriteString(fmt.Sprintf("[Error %d of %d]\n", i+1, len(l.errs)))
		sb.WriteString(e.Format(color))
		if i < len(l.errs)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}

// UseColor decides whether diagnostics written to the given file descriptor
// should carry ANSI color codes: only when it is a real terminal. This is
// pure CLI presentation, outside the parser/resolver core.
func UseColor(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
