package errors

import (
	"strings"
	"testing"

	"github.com/jactl-go/jactlc/pkg/token"
)

func testToken(line, col int) token.Token {
	return token.Token{Kind: token.IDENT, Pos: token.Position{Line: line, Column: col}, Lexeme: "x"}
}

func TestCompileErrorFormatNoColor(t *testing.T) {
	e := New(testToken(2, 5), "var x\nint y = x", "", "unknown name %q", "x")
	out := e.Format(false)
	if !strings.Contains(out, "Error at line 2:5") {
		t.Fatalf("missing header: %s", out)
	}
	if !strings.Contains(out, "int y = x") {
		t.Fatalf("missing source line: %s", out)
	}
	if !strings.Contains(out, "unknown name \"x\"") {
		t.Fatalf("missing message: %s", out)
	}
	if strings.Contains(out, "\033[") {
		t.Fatalf("color codes present when color=false: %q", out)
	}
}

func TestCompileErrorFatal(t *testing.T) {
	e := NewFatal(testToken(1, 1), "", "", "boom")
	if !e.Fatal {
		t.Fatal("expected Fatal=true")
	}
}

func TestListMarkAndReset(t *testing.T) {
	var l List
	l.Add(New(testToken(1, 1), "", "", "first"))
	mark := l.Mark()
	l.Add(New(testToken(2, 1), "", "", "second"))
	if len(l.Errors()) != 2 {
		t.Fatalf("expected 2 errors before reset, got %d", len(l.Errors()))
	}
	l.Reset(mark)
	if len(l.Errors()) != 1 {
		t.Fatalf("expected 1 error after reset, got %d", len(l.Errors()))
	}
	if l.Errors()[0].Message != "first" {
		t.Fatalf("unexpected surviving error: %q", l.Errors()[0].Message)
	}
}

func TestListFormatMultiple(t *testing.T) {
	var l List
	l.Add(New(testToken(1, 1), "", "", "first"))
	l.Add(New(testToken(2, 1), "", "", "second"))
	out := l.Format(false)
	if !strings.Contains(out, "2 error(s)") {
		t.Fatalf("missing count header: %s", out)
	}
	if !strings.Contains(out, "[Error 1 of 2]") || !strings.Contains(out, "[Error 2 of 2]") {
		t.Fatalf("missing numbering: %s", out)
	}
}

func TestListHasErrors(t *testing.T) {
	var l List
	if l.HasErrors() {
		t.Fatal("expected no errors initially")
	}
	l.Add(New(testToken(1, 1), "", "", "boom"))
	if !l.HasErrors() {
		t.Fatal("expected HasErrors true after Add")
	}
}
