package lexer

import (
	"testing"

	"github.com/jactl-go/jactlc/pkg/token"
)

func kinds(t *testing.T, l *Lexer) []token.Kind {
	t.Helper()
	var ks []token.Kind
	for {
		tok := l.Advance()
		ks = append(ks, tok.Kind)
		if tok.Kind == token.EOF {
			return ks
		}
	}
}

func TestBasicTokens(t *testing.T) {
	l := New(0, "int x = 1 + 2")
	got := kinds(t, l)
	want := []token.Kind{token.IDENT, token.IDENT, token.ASSIGN, token.INT, token.PLUS, token.INT, token.EOF}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestKeywords(t *testing.T) {
	l := New(0, "def class if else while for")
	got := kinds(t, l)
	want := []token.Kind{token.DEF, token.CLASS, token.IF, token.ELSE, token.WHILE, token.FOR, token.EOF}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	l := New(0, "a b c")
	p0 := l.Peek(0)
	p1 := l.Peek(1)
	if p0.Lexeme != "a" || p1.Lexeme != "b" {
		t.Fatalf("unexpected peek: %q %q", p0.Lexeme, p1.Lexeme)
	}
	first := l.Advance()
	if first.Lexeme != "a" {
		t.Fatalf("expected advance to return 'a', got %q", first.Lexeme)
	}
	if l.Previous().Lexeme != "a" {
		t.Fatalf("expected Previous() == 'a', got %q", l.Previous().Lexeme)
	}
}

func TestMarkRollback(t *testing.T) {
	l := New(0, "a b c")
	l.Advance() // a
	m := l.Mark()
	l.Advance() // b
	l.Advance() // c
	m.Rollback()
	tok := l.Advance()
	if tok.Lexeme != "b" {
		t.Fatalf("expected rollback to replay 'b', got %q", tok.Lexeme)
	}
}

func TestNestedMarks(t *testing.T) {
	l := New(0, "a b c d")
	l.Advance() // a
	outer := l.Mark()
	l.Advance() // b
	inner := l.Mark()
	l.Advance() // c
	inner.Rollback()
	if got := l.Advance().Lexeme; got != "c" {
		t.Fatalf("inner rollback: got %q, want c", got)
	}
	outer.Rollback()
	if got := l.Advance().Lexeme; got != "b" {
		t.Fatalf("outer rollback: got %q, want b", got)
	}
}

func TestMarkErrorRecordsAndRollbackDiscards(t *testing.T) {
	l := New(0, "a")
	m := l.Mark()
	m.Error("synthetic failure")
	if len(l.Errors()) != 1 {
		t.Fatalf("expected 1 error recorded, got %d", len(l.Errors()))
	}
	m.Rollback()
	if len(l.Errors()) != 0 {
		t.Fatalf("expected rollback to discard errors, got %d", len(l.Errors()))
	}
}

func TestStartRegex(t *testing.T) {
	l := New(0, "=~ /foo.*bar/i")
	if tok := l.Advance(); tok.Kind != token.REGEX_ASSIGN {
		t.Fatalf("expected REGEX_ASSIGN, got %v", tok.Kind)
	}
	l.StartRegex()
	tok := l.Advance()
	if tok.Kind != token.REGEX_STRING {
		t.Fatalf("expected REGEX_STRING, got %v", tok.Kind)
	}
	if tok.Literal != "foo.*bar" {
		t.Fatalf("unexpected regex pattern: %q", tok.Literal)
	}
	if tok.Lexeme != "foo.*bar/i" {
		t.Fatalf("unexpected regex lexeme: %q", tok.Lexeme)
	}
}

func TestRegexNotActivatedIsDivision(t *testing.T) {
	l := New(0, "a / b")
	l.Advance() // a
	tok := l.Advance()
	if tok.Kind != token.SLASH {
		t.Fatalf("expected SLASH (division) without StartRegex, got %v", tok.Kind)
	}
}

func TestStringLiteral(t *testing.T) {
	l := New(0, `"hello\nworld"`)
	tok := l.Advance()
	if tok.Kind != token.STRING {
		t.Fatalf("expected STRING, got %v", tok.Kind)
	}
	if tok.Literal != "hello\nworld" {
		t.Fatalf("unexpected literal: %q", tok.Literal)
	}
}

func TestNumberSuffixes(t *testing.T) {
	for _, c := range []struct {
		src  string
		kind token.Kind
	}{
		{"42", token.INT},
		{"42L", token.LONG},
		{"3.14", token.DOUBLE},
		{"3D", token.DOUBLE},
		{"3.5m", token.DECIMAL},
	} {
		l := New(0, c.src)
		tok := l.Advance()
		if tok.Kind != c.kind {
			t.Fatalf("%q: got %v, want %v", c.src, tok.Kind, c.kind)
		}
	}
}

func TestCommentsAreSkipped(t *testing.T) {
	l := New(0, "a // line comment\n/* block */ b")
	got := kinds(t, l)
	want := []token.Kind{token.IDENT, token.IDENT, token.EOF}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestDoneReflectsExhaustion(t *testing.T) {
	l := New(0, "a")
	if l.Done() {
		t.Fatal("expected Done()==false before consuming")
	}
	l.Advance() // a
	l.Advance() // EOF
	if !l.Done() {
		t.Fatal("expected Done()==true after EOF consumed")
	}
}

func TestRekind(t *testing.T) {
	l := New(0, "/")
	l.Advance()
	l.Rekind(token.REGEX_STRING)
	if l.Previous().Kind != token.REGEX_STRING {
		t.Fatalf("expected rekind to stick, got %v", l.Previous().Kind)
	}
}

func TestOperatorDisambiguation(t *testing.T) {
	l := New(0, ">>> >>>= ?: =~")
	got := kinds(t, l)
	want := []token.Kind{token.USHR, token.USHR_ASSIGN, token.ELVIS, token.REGEX_ASSIGN, token.EOF}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}
