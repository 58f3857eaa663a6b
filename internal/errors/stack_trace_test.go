package errors

import (
	"testing"

	"github.com/jactl-go/jactlc/pkg/token"
)

func TestDeclFrameString(t *testing.T) {
	f := DeclFrame{Name: "f", Pos: token.Position{Line: 10, Column: 5}}
	want := "f [line: 10, column: 5]"
	if got := f.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestDeclTracePushIsImmutable(t *testing.T) {
	var base DeclTrace
	outer := base.Push("f", token.Position{Line: 1, Column: 1})
	inner := outer.Push("g", token.Position{Line: 2, Column: 1})

	if outer.Depth() != 1 {
		t.Fatalf("outer depth = %d, want 1", outer.Depth())
	}
	if inner.Depth() != 2 {
		t.Fatalf("inner depth = %d, want 2", inner.Depth())
	}
	if outer.Top().Name != "f" {
		t.Fatalf("outer.Top().Name = %q, want f", outer.Top().Name)
	}
	if inner.Top().Name != "g" {
		t.Fatalf("inner.Top().Name = %q, want g", inner.Top().Name)
	}
}

func TestDeclTraceStringInnermostFirst(t *testing.T) {
	var base DeclTrace
	trace := base.Push("f", token.Position{Line: 1, Column: 1}).Push("g", token.Position{Line: 2, Column: 3})
	got := trace.String()
	want := "g [line: 2, column: 3]\nf [line: 1, column: 1]"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEmptyDeclTrace(t *testing.T) {
	var empty DeclTrace
	if empty.String() != "" {
		t.Fatalf("expected empty string, got %q", empty.String())
	}
	if empty.Top() != nil {
		t.Fatalf("expected nil top for empty trace")
	}
}
