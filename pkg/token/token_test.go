package token

import "testing"

func TestLookupKeyword(t *testing.T) {
	tests := []struct {
		lexeme string
		want   Kind
		ok     bool
	}{
		{"def", DEF, true},
		{"class", CLASS, true},
		{"it", IT, true},
		{"foobar", IDENT, false},
	}
	for _, tt := range tests {
		got, ok := LookupKeyword(tt.lexeme)
		if ok != tt.ok {
			t.Fatalf("LookupKeyword(%q) ok = %v, want %v", tt.lexeme, ok, tt.ok)
		}
		if ok && got != tt.want {
			t.Fatalf("LookupKeyword(%q) = %v, want %v", tt.lexeme, got, tt.want)
		}
	}
}

func TestRekind(t *testing.T) {
	tok := Token{Kind: SLASH, Lexeme: "/"}
	rekinded := tok.Rekind(REGEX_STRING)
	if tok.Kind != SLASH {
		t.Fatalf("Rekind mutated original token")
	}
	if rekinded.Kind != REGEX_STRING {
		t.Fatalf("Rekind() Kind = %v, want REGEX_STRING", rekinded.Kind)
	}
}

func TestNormalizedLexeme(t *testing.T) {
	// "café" with a combining acute accent (NFD) should normalize to NFC.
	nfd := Token{Lexeme: "café"}
	nfc := nfd.NormalizedLexeme()
	if nfc != "café" {
		t.Fatalf("NormalizedLexeme() = %q, want %q", nfc, "café")
	}
}

func TestKindString(t *testing.T) {
	if DEF.String() != "def" {
		t.Fatalf("DEF.String() = %q, want def", DEF.String())
	}
	if PLUS.String() != "+" {
		t.Fatalf("PLUS.String() = %q, want +", PLUS.String())
	}
}

func TestIsKeywordKind(t *testing.T) {
	if !IsKeywordKind(DEF) {
		t.Fatalf("IsKeywordKind(DEF) = false, want true")
	}
	if IsKeywordKind(PLUS) {
		t.Fatalf("IsKeywordKind(PLUS) = true, want false")
	}
}
