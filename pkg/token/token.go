// Package token defines the token model shared by the lexer, parser and
// resolver: token kinds, source positions and the value-like Token itself.
//
// Tokens are intentionally cheap to copy (component A of the front end):
// a Token carries no pointers back into the lexer, so it can be stored on
// AST nodes, buffered for lookahead, or passed by value without aliasing
// concerns.
package token

import "golang.org/x/text/unicode/norm"

// Position is a single point in a source file, expressed three ways so that
// callers can pick whichever is convenient: a 1-based line/column pair for
// human-facing diagnostics, and a 0-based byte Offset for slicing the
// original source text.
type Position struct {
	Line   int
	Column int
	Offset int
}

// Kind identifies the lexical category of a Token.
type Kind int

// A Token can be re-kinded in place (e.g. a '/' that starts a regex literal),
// so Kind is mutable on the value, not baked in at construction.
const (
	ILLEGAL Kind = iota
	EOF
	COMMENT

	IDENT
	INT
	LONG
	DOUBLE
	DECIMAL
	STRING
	REGEX_STRING // /.../ literal, scanned in regex mode or re-kinded from SLASH by Lexer.Rekind
	REGEX_SUBST  // s/.../.../ literal

	literalsEnd

	keywordsStart
	TRUE
	FALSE
	NULL_
	DEF
	VAR
	CLASS
	EXTENDS
	IMPLEMENTS
	IMPORT
	PACKAGE
	STATIC
	FINAL
	IF
	ELSE
	UNLESS
	WHILE
	FOR
	DO
	UNTIL
	SWITCH
	CASE
	DEFAULT
	BREAK
	CONTINUE
	RETURN
	THROW
	TRY
	CATCH
	FINALLY
	PRINT
	PRINTLN
	DIE
	EVAL
	NEW
	THIS
	SUPER
	INSTANCEOF
	AS
	IN
	AND
	OR
	NOT
	IT
	BEGIN_BLOCK
	END_BLOCK
	keywordsEnd

	// Punctuation & operators
	LPAREN
	RPAREN
	LBRACE
	RBRACE
	LBRACK
	RBRACK
	COMMA
	SEMI
	COLON
	QUESTION
	ELVIS // ?:
	DOT
	DOT_DOT
	ARROW   // ->
	FAT_ARROW
	ASSIGN // =
	PLUS_ASSIGN
	MINUS_ASSIGN
	STAR_ASSIGN
	SLASH_ASSIGN
	PERCENT_ASSIGN
	POWER_ASSIGN
	AMP_ASSIGN
	PIPE_ASSIGN
	CARET_ASSIGN
	SHL_ASSIGN
	SHR_ASSIGN
	USHR_ASSIGN
	REGEX_ASSIGN // =~
	PLUS
	MINUS
	STAR
	SLASH
	PERCENT
	POWER // **
	INC   // ++
	DEC   // --
	EQ
	NOT_EQ
	LESS
	LESS_EQ
	GREATER
	GREATER_EQ
	AMP
	PIPE
	CARET
	TILDE
	SHL
	SHR
	USHR
)

var keywords = map[string]Kind{
	"true": TRUE, "false": FALSE, "null": NULL_,
	"def": DEF, "var": VAR, "class": CLASS, "extends": EXTENDS,
	"implements": IMPLEMENTS, "import": IMPORT, "package": PACKAGE,
	"static": STATIC, "final": FINAL,
	"if": IF, "else": ELSE, "unless": UNLESS,
	"while": WHILE, "for": FOR, "do": DO, "until": UNTIL,
	"switch": SWITCH, "case": CASE, "default": DEFAULT,
	"break": BREAK, "continue": CONTINUE, "return": RETURN,
	"throw": THROW, "try": TRY, "catch": CATCH, "finally": FINALLY,
	"print": PRINT, "println": PRINTLN, "die": DIE, "eval": EVAL,
	"new": NEW, "this": THIS, "super": SUPER,
	"instanceof": INSTANCEOF, "as": AS, "in": IN,
	"and": AND, "or": OR, "not": NOT, "it": IT,
	"begin": BEGIN_BLOCK, "end": END_BLOCK,
}

// LookupKeyword returns the keyword Kind for an identifier lexeme, or
// (IDENT, false) if the lexeme is not a keyword.
func LookupKeyword(lexeme string) (Kind, bool) {
	k, ok := keywords[lexeme]
	return k, ok
}

// Token is the value-like unit the parser and resolver operate over.
// SourceID is a small integer handle into the compiling Context's source
// table (see internal/context), not a pointer, so Token stays cheap to copy.
type Token struct {
	Kind      Kind
	SourceID  int
	Pos       Position
	Lexeme    string
	Literal   any // parsed literal value: int64, float64, string, nil
	IsKeyword bool
}

// Rekind returns a copy of t with its Kind changed. Used when the lexer's
// lexical mode reclassifies a token after the fact (e.g. a bare '/' becomes
// the start of a regex literal once the parser knows an expression is
// expected there).
func (t Token) Rekind(k Kind) Token {
	t.Kind = k
	return t
}

// NormalizedLexeme returns the Unicode NFC-normalized form of the token's
// lexeme. Identifiers are normalized before they are used as symbol-table
// keys so that visually identical names typed with different Unicode
// composition forms resolve to the same binding.
func (t Token) NormalizedLexeme() string {
	if !norm.NFC.IsNormalString(t.Lexeme) {
		return norm.NFC.String(t.Lexeme)
	}
	return t.Lexeme
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "UNKNOWN"
}

var kindNames = map[Kind]string{
	ILLEGAL: "ILLEGAL", EOF: "EOF", COMMENT: "COMMENT",
	IDENT: "IDENT", INT: "INT", LONG: "LONG", DOUBLE: "DOUBLE", DECIMAL: "DECIMAL",
	STRING: "STRING", REGEX_STRING: "REGEX_STRING", REGEX_SUBST: "REGEX_SUBST",
	LPAREN: "(", RPAREN: ")", LBRACE: "{", RBRACE: "}", LBRACK: "[", RBRACK: "]",
	COMMA: ",", SEMI: ";", COLON: ":", QUESTION: "?", ELVIS: "?:", DOT: ".", DOT_DOT: "..",
	ARROW: "->", FAT_ARROW: "=>", ASSIGN: "=", REGEX_ASSIGN: "=~",
	PLUS: "+", MINUS: "-", STAR: "*", SLASH: "/", PERCENT: "%", POWER: "**",
	INC: "++", DEC: "--", EQ: "==", NOT_EQ: "!=",
	LESS: "<", LESS_EQ: "<=", GREATER: ">", GREATER_EQ: ">=",
	AMP: "&", PIPE: "|", CARET: "^", TILDE: "~", SHL: "<<", SHR: ">>", USHR: ">>>",
}

func init() {
	for name, k := range keywords {
		kindNames[k] = name
	}
}

// IsKeywordKind reports whether k falls in the keyword range of the Kind
// enumeration (used by the parser to decide whether a contextual keyword
// can be treated as an identifier, e.g. as a method name).
func IsKeywordKind(k Kind) bool {
	return k > keywordsStart && k < keywordsEnd
}
