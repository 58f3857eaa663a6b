package errors

import (
	"fmt"
	"strings"

	"github.com/jactl-go/jactlc/pkg/token"
)

// DeclFrame is one entry in the resolver's declaration-nesting trace: the
// function or class currently being resolved. Unlike a runtime call stack
// (out of scope -- that belongs to the external runtime library) this
// tracks lexical nesting during a single resolve pass, so a diagnostic can
// report "in function f, in closure at line N" for errors raised deep
// inside nested fun_decls.
type DeclFrame struct {
	Pos  token.Position
	Name string
}

// String matches the teacher's stack-frame rendering convention.
func (f DeclFrame) String() string {
	return fmt.Sprintf("%s [line: %d, column: %d]", f.Name, f.Pos.Line, f.Pos.Column)
}

// DeclTrace is the resolver's current nesting path, oldest (outermost)
// frame first.
type DeclTrace []DeclFrame

// String renders innermost-first, one frame per line, matching the
// teacher's stack-trace convention of printing most-recent-first.
func (t DeclTrace) String() string {
	if len(t) == 0 {
		return ""
	}
	var sb strings.Builder
	for i := len(t) - 1; i >= 0; i-- {
		sb.WriteString(t[i].String())
		if i > 0 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// Top returns the innermost frame, or nil if the trace is empty.
func (t DeclTrace) Top() *DeclFrame {
	if len(t) == 0 {
		return nil
	}
	return &t[len(t)-1]
}

// Depth returns the nesting depth.
func (t DeclTrace) Depth() int { return len(t) }

// Push returns a new trace with one more frame; DeclTrace is treated as
// immutable so the resolver can pop back to an outer frame just by holding
// onto the earlier slice value.
func (t DeclTrace) Push(name string, pos token.Position) DeclTrace {
	return append(append(DeclTrace{}, t...), DeclFrame{Name: name, Pos: pos})
}
