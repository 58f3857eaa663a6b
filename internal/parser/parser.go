// Package parser turns a token stream into the unresolved AST the resolver
// consumes (spec.md §4.1). A Parser reads tokens through a Cursor that wraps
// the lexer and advances it in place; binary operators are parsed by
// precedence climbing over a precedence table, and speculative (lookahead)
// parsing is implemented as mark/attempt/rollback around that cursor.
package parser

import (
	"strings"

	cerrors "github.com/jactl-go/jactlc/internal/errors"
	"github.com/jactl-go/jactlc/internal/lexer"
	"github.com/jactl-go/jactlc/pkg/ast"
	"github.com/jactl-go/jactlc/pkg/token"
	"github.com/jactl-go/jactlc/pkg/types"
)

// Parser produces an AST given a token stream, accumulating structured
// compile errors rather than raising exceptions (spec §4.1 responsibility).
type Parser struct {
	cur    *Cursor
	errs   errors_List
	source string
	file   string

	arena *ast.VarDeclArena

	// lookaheadDepth counts nested speculative productions (spec §4.3
	// "Parser lookahead" state machine: Normal vs Lookahead(n)).
	lookaheadDepth int
}

// errors_List is a local alias so error.go/this file do not need to repeat
// the package-qualified type at every call site.
type errors_List = cerrors.List

// New creates a Parser over lx's token stream. source/file are used purely
// for diagnostic rendering (spec §6.4 error format).
func New(lx *lexer.Lexer, source, file string, arena *ast.VarDeclArena) *Parser {
	return &Parser{cur: NewCursor(lx), source: source, file: file, arena: arena}
}

// Errors returns every accumulated diagnostic.
func (p *Parser) Errors() *cerrors.List { return &p.errs }

// InLookahead reports whether the parser is currently inside a speculative
// production (used by callers that must suppress user-visible side effects
// during lookahead, e.g. class-path existence checks against the context).
func (p *Parser) InLookahead() bool { return p.lookaheadDepth > 0 }

// lookahead runs fn speculatively: position and accumulated errors are
// rolled back if fn returns false, and never surface to the user (spec
// §4.1 "Lookahead discipline"; §4.3 "Thrown errors inside a lookahead
// become a 'failed lookahead' signal that does not surface").
func (p *Parser) lookahead(fn func() bool) bool {
	mark := p.cur.Mark()
	errMark := p.errs.Mark()
	p.lookaheadDepth++
	ok := fn()
	p.lookaheadDepth--
	if !ok {
		p.cur.ResetTo(mark)
		p.errs.Reset(errMark)
		return false
	}
	mark.Drop()
	return true
}

// ParseScript is the `parse_script(class_name)` entry point: package decl,
// imports, script body, wrapped as the body of a synthesized "script main"
// function taking a single `globals map<string,any>` parameter.
func (p *Parser) ParseScript(className string) *ast.FunDecl {
	tok := p.cur.Current()
	_, imports := p.parsePackageAndImports()

	body := ast.NewBlock(tok)
	body.IsFunctionBody = true
	for _, imp := range imports {
		body.Stmts = append(body.Stmts, imp)
	}
	for !p.cur.IsEOF() {
		if stmt := p.parseStatement(); stmt != nil {
			body.Stmts = append(body.Stmts, stmt)
		}
	}

	main := ast.NewFunDecl(tok, className)
	globalsDecl := p.arena.New(tok, "globals", types.Map)
	globalsDecl.IsParam = true
	globalsDecl.IsExplicitParam = true
	main.Params = []*ast.Param{{Name: "globals", DeclaredType: types.Map, VarDecl: globalsDecl}}
	main.Body = body
	main.Descriptor = ast.NewFunctionDescriptor(className)
	return main
}

// ParseClass is the `parse_class` entry point: package decl, imports, a
// single top-level class declaration, then EOF.
func (p *Parser) ParseClass() *ast.ClassDecl {
	pkgName, imports := p.parsePackageAndImports()
	if !p.cur.Is(token.CLASS) {
		p.fatalf(p.cur.Current(), "expected a class declaration")
		return nil
	}
	decl := p.parseClassDecl()
	decl.PackageName = pkgName
	decl.Imports = imports
	if !p.cur.IsEOF() {
		p.errorf(p.cur.Current(), "unexpected content after class declaration")
	}
	return decl
}

// ParseScriptOrClass implements `parse_script_or_class(name)`: parses the
// script body, then chooses between the script and class readings based on
// whether the body consists of exactly one class declaration.
func (p *Parser) ParseScriptOrClass(name string) (*ast.FunDecl, *ast.ClassDecl) {
	main := p.ParseScript(name)
	body, ok := main.Body.(*ast.Block)
	if !ok {
		return main, nil
	}

	var imports []*ast.Import
	var classDecl *ast.ClassDecl
	nonImportCount := 0
	for _, s := range body.Stmts {
		if imp, ok := s.(*ast.Import); ok {
			imports = append(imports, imp)
			continue
		}
		nonImportCount++
		if cd, ok := s.(*ast.ClassDecl); ok {
			classDecl = cd
		}
	}
	if nonImportCount == 1 && classDecl != nil {
		classDecl.Imports = imports
		return nil, classDecl
	}
	return main, nil
}

func (p *Parser) parsePackageAndImports() (string, []*ast.Import) {
	var pkgName string
	if p.cur.Is(token.PACKAGE) {
		p.cur.Advance()
		pkgName = p.parseDottedName()
		p.cur.Skip(token.SEMI)
	}

	var imports []*ast.Import
	for p.cur.Is(token.IMPORT) {
		tok := p.cur.Advance()
		path := p.parseDottedName()
		className := path
		if i := lastDot(path); i >= 0 {
			className = path[i+1:]
		}
		alias := ""
		if _, ok := p.cur.Skip(token.AS); ok {
			if t, ok := p.expect(token.IDENT, "import alias"); ok {
				alias = t.Lexeme
			}
		}
		p.cur.Skip(token.SEMI)
		imports = append(imports, ast.NewImport(tok, path, className, alias))
	}
	return pkgName, imports
}

func lastDot(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '.' {
			return i
		}
	}
	return -1
}

func (p *Parser) parseDottedName() string {
	name := ""
	if t, ok := p.expect(token.IDENT, "identifier"); ok {
		name = t.Lexeme
	}
	for p.cur.Is(token.DOT) {
		p.cur.Advance()
		if t, ok := p.expect(token.IDENT, "identifier"); ok {
			name += "." + t.Lexeme
		}
	}
	return name
}

// --- Precedence table -------------------------------------------------
//
// Rows are ordered lowest-to-highest exactly as spec §4.1 lists them
// (assignment is handled outside this table, as its own lowest level, since
// it requires lvalue rewriting rather than generic binary-node
// construction). Ternary/elvis is also handled outside the table because
// its RHS is itself two sub-expressions, not a single operand.
type precRow struct {
	level      int
	rightAssoc bool
	kinds      []token.Kind
}

var precedenceTable = []precRow{
	{1, false, []token.Kind{token.OR}},
	{2, false, []token.Kind{token.AND}},
	{3, false, []token.Kind{token.PIPE}},
	{4, false, []token.Kind{token.CARET}},
	{5, false, []token.Kind{token.AMP}},
	{6, false, []token.Kind{token.EQ, token.NOT_EQ, token.REGEX_ASSIGN}},
	{7, false, []token.Kind{token.LESS, token.LESS_EQ, token.GREATER, token.GREATER_EQ, token.INSTANCEOF, token.AS, token.IN}},
	{8, false, []token.Kind{token.SHL, token.SHR, token.USHR}},
	{9, false, []token.Kind{token.PLUS, token.MINUS}},
	{10, false, []token.Kind{token.STAR, token.SLASH, token.PERCENT}},
	{11, true, []token.Kind{token.POWER}},
}

var precedenceOf = func() map[token.Kind]precRow {
	m := make(map[token.Kind]precRow)
	for _, row := range precedenceTable {
		for _, k := range row.kinds {
			m[k] = row
		}
	}
	return m
}()

const minBinaryPrec = 1

// ParseExpression is the parser's expression entry point: assignment-like,
// handled first since it is the lowest, rightmost-associative level in the
// ladder.
func (p *Parser) ParseExpression() ast.Expr {
	return p.parseAssignment()
}

func (p *Parser) parseAssignment() ast.Expr {
	left := p.parseTernary()

	tok := p.cur.Current()
	switch tok.Kind {
	case token.ASSIGN:
		p.cur.Advance()
		value := p.parseAssignment()
		return p.rewriteAssign(tok, left, value)
	case token.PLUS_ASSIGN, token.MINUS_ASSIGN, token.STAR_ASSIGN, token.SLASH_ASSIGN,
		token.PERCENT_ASSIGN, token.POWER_ASSIGN, token.AMP_ASSIGN, token.PIPE_ASSIGN,
		token.CARET_ASSIGN, token.SHL_ASSIGN, token.SHR_ASSIGN, token.USHR_ASSIGN:
		p.cur.Advance()
		value := p.parseAssignment()
		return p.rewriteOpAssign(tok, left, opFromAssign(tok.Kind), value, false)
	}
	return left
}

func opFromAssign(k token.Kind) string {
	switch k {
	case token.PLUS_ASSIGN:
		return "+"
	case token.MINUS_ASSIGN:
		return "-"
	case token.STAR_ASSIGN:
		return "*"
	case token.SLASH_ASSIGN:
		return "/"
	case token.PERCENT_ASSIGN:
		return "%"
	case token.POWER_ASSIGN:
		return "**"
	case token.AMP_ASSIGN:
		return "&"
	case token.PIPE_ASSIGN:
		return "|"
	case token.CARET_ASSIGN:
		return "^"
	case token.SHL_ASSIGN:
		return "<<"
	case token.SHR_ASSIGN:
		return ">>"
	case token.USHR_ASSIGN:
		return ">>>"
	}
	return "?"
}

// parseTernary handles `cond ? then : else` and the elvis operator `?:`
// (spec §4.1: "ternary (? :)... live in this same table" conceptually, but
// implemented as its own recursive level since the production shape
// differs from a plain binary operator).
func (p *Parser) parseTernary() ast.Expr {
	cond := p.parseBinary(minBinaryPrec)

	if tok, ok := p.cur.Skip(token.ELVIS); ok {
		elseExpr := p.parseAssignment()
		return ast.NewTernary(tok, cond, cond, elseExpr, true)
	}
	if tok, ok := p.cur.Skip(token.QUESTION); ok {
		thenExpr := p.parseAssignment()
		if _, ok := p.expect(token.COLON, "':' in ternary expression"); !ok {
			return cond
		}
		elseExpr := p.parseAssignment()
		return ast.NewTernary(tok, cond, thenExpr, elseExpr, false)
	}
	return cond
}

func (p *Parser) parseBinary(minLevel int) ast.Expr {
	left := p.parseUnary()

	for {
		row, ok := precedenceOf[p.cur.Current().Kind]
		if !ok || row.level < minLevel {
			return left
		}
		opTok := p.cur.Advance()
		nextMin := row.level + 1
		if row.rightAssoc {
			nextMin = row.level
		}

		if opTok.Kind == token.AS {
			targetType := p.parseTypeRef()
			left = ast.NewCast(opTok, targetType, left)
			continue
		}
		if opTok.Kind == token.REGEX_ASSIGN {
			left = p.parseRegexRHS(opTok, left)
			continue
		}

		right := p.parseBinary(nextMin)
		left = ast.NewBinary(opTok, left, opTok.Lexeme, right)
	}
}

// parseRegexRHS handles `target =~ /pattern/mods` and
// `target =~ s/pattern/replacement/mods` (spec §4.1 disambiguation rules
// 3-4).
func (p *Parser) parseRegexRHS(opTok token.Token, target ast.Expr) ast.Expr {
	p.cur.StartRegex()
	tok := p.cur.Current()
	if tok.Kind == token.REGEX_SUBST {
		p.cur.Advance()
		sv, _ := tok.Literal.(lexer.RegexSubstValue)
		return ast.NewRegexSubst(
			opTok, target,
			ast.NewLiteral(tok, sv.Pattern), ast.NewLiteral(tok, sv.Replacement),
			sv.Modifiers, strings.ContainsRune(sv.Modifiers, 'r'),
		)
	}
	t, _ := p.expect(token.REGEX_STRING, "regex literal")
	mods := regexModifiers(t.Lexeme)
	return ast.NewRegexMatch(opTok, target, ast.NewLiteral(t, t.Literal), mods, false)
}

func regexModifiers(lexeme string) string {
	for i := len(lexeme) - 1; i >= 0; i-- {
		if lexeme[i] == '/' {
			return lexeme[i+1:]
		}
	}
	return ""
}

func hasModifier(lexeme string, mod byte) bool {
	mods := regexModifiers(lexeme)
	for i := 0; i < len(mods); i++ {
		if mods[i] == mod {
			return true
		}
	}
	return false
}

// parseUnary handles prefix unary operators (including `not`, `++`/`--`
// prefix, and explicit `(Type)` casts) before falling through to postfix.
func (p *Parser) parseUnary() ast.Expr {
	tok := p.cur.Current()
	switch tok.Kind {
	case token.NOT, token.MINUS, token.PLUS, token.TILDE:
		p.cur.Advance()
		operand := p.parseUnary()
		return ast.NewUnary(tok, tok.Lexeme, operand, false)
	case token.INC, token.DEC:
		p.cur.Advance()
		operand := p.parseUnary()
		return p.rewriteOpAssign(tok, operand, opFromIncDec(tok.Kind), ast.NewLiteral(tok, int64(1)), false)
	case token.LPAREN:
		if castType, ok := p.tryParseCastPrefix(); ok {
			operand := p.parseUnary()
			return ast.NewCast(tok, castType, operand)
		}
	}
	return p.parsePostfix()
}

func opFromIncDec(k token.Kind) string {
	if k == token.INC {
		return "+"
	}
	return "-"
}

// tryParseCastPrefix speculatively checks for `(Type)` immediately followed
// by an operand start (spec §4.1 "Lookahead discipline": "detect type
// casts (Type)").
func (p *Parser) tryParseCastPrefix() (ast.Type, bool) {
	var result ast.Type
	ok := p.lookahead(func() bool {
		p.cur.Advance() // '('
		t, isType := p.tryParseTypeName()
		if !isType {
			return false
		}
		if _, ok := p.cur.Skip(token.RPAREN); !ok {
			return false
		}
		if !p.canStartExpression(p.cur.Current().Kind) {
			return false
		}
		result = t
		return true
	})
	return result, ok
}

func (p *Parser) canStartExpression(k token.Kind) bool {
	switch k {
	case token.IDENT, token.INT, token.LONG, token.DOUBLE, token.DECIMAL, token.STRING,
		token.TRUE, token.FALSE, token.NULL_, token.LPAREN, token.LBRACK, token.LBRACE,
		token.MINUS, token.PLUS, token.NOT, token.TILDE, token.NEW, token.THIS, token.SUPER:
		return true
	}
	return false
}

// parsePostfix handles member access, indexing, calls, and postfix
// `++`/`--`, left-to-right.
func (p *Parser) parsePostfix() ast.Expr {
	expr := p.parsePrimary()

	for {
		switch p.cur.Current().Kind {
		case token.DOT:
			tok := p.cur.Advance()
			nameTok, ok := p.expect(token.IDENT, "field or method name")
			if !ok {
				return expr
			}
			if p.cur.Is(token.LPAREN) {
				expr = p.parseCallArgs(tok, ast.NewMethodCall(tok, expr, nameTok.Lexeme))
				continue
			}
			field := ast.NewIdentifier(nameTok, nameTok.Lexeme)
			expr = ast.NewFieldAccess(tok, expr, field, false)
		case token.LBRACK:
			tok := p.cur.Advance()
			idx := p.ParseExpression()
			p.expect(token.RBRACK, "']'")
			expr = ast.NewFieldAccess(tok, expr, idx, true)
		case token.LPAREN:
			tok := p.cur.Current()
			expr = p.parseCallArgs(tok, ast.NewCall(tok, expr))
		case token.LBRACE:
			// Trailing closure argument (spec §4.1 disambiguation rule 1),
			// may chain.
			if call, ok := expr.(*ast.Call); ok {
				call.Args = append(call.Args, p.parseClosure())
				continue
			}
			if mc, ok := expr.(*ast.MethodCall); ok {
				mc.Args = append(mc.Args, p.parseClosure())
				continue
			}
			return expr
		case token.INC, token.DEC:
			tok := p.cur.Advance()
			expr = p.rewriteOpAssign(tok, expr, opFromIncDec(tok.Kind), ast.NewLiteral(tok, int64(1)), true)
		default:
			return expr
		}
	}
}

func (p *Parser) parseCallArgs(tok token.Token, call ast.Expr) ast.Expr {
	p.cur.Advance() // '('
	var args []ast.Expr
	var named []ast.NamedArg
	for !p.cur.Is(token.RPAREN) && !p.cur.IsEOF() {
		if p.cur.Is(token.IDENT) && p.cur.PeekIs(1, token.COLON) {
			nameTok := p.cur.Advance()
			p.cur.Advance() // ':'
			named = append(named, ast.NamedArg{Name: nameTok.Lexeme, Value: p.ParseExpression()})
		} else {
			args = append(args, p.ParseExpression())
		}
		if _, ok := p.cur.Skip(token.COMMA); !ok {
			break
		}
	}
	p.expect(token.RPAREN, "')'")

	switch c := call.(type) {
	case *ast.Call:
		c.Args = args
		c.NamedArgs = named
		return c
	case *ast.MethodCall:
		c.Args = args
		c.NamedArgs = named
		return c
	}
	return call
}

func (p *Parser) parsePrimary() ast.Expr {
	tok := p.cur.Current()
	switch tok.Kind {
	case token.INT:
		p.cur.Advance()
		return ast.NewLiteral(tok, asInt64(tok.Literal))
	case token.LONG, token.DOUBLE, token.DECIMAL, token.STRING:
		p.cur.Advance()
		return ast.NewLiteral(tok, tok.Literal)
	case token.TRUE:
		p.cur.Advance()
		return ast.NewLiteral(tok, true)
	case token.FALSE:
		p.cur.Advance()
		return ast.NewLiteral(tok, false)
	case token.NULL_:
		p.cur.Advance()
		return ast.NewLiteral(tok, nil)
	case token.REGEX_STRING:
		// A REGEX_STRING reaching here is returned as a plain string literal
		// whatever its modifiers; no `it =~ /pattern/mods` rewrite is made.
		// Matches against a target are built only by parseRegexRHS.
		p.cur.Advance()
		return ast.NewLiteral(tok, tok.Literal)
	case token.IDENT:
		p.cur.Advance()
		return ast.NewIdentifier(tok, tok.NormalizedLexeme())
	case token.THIS:
		p.cur.Advance()
		return ast.NewIdentifier(tok, "this")
	case token.SUPER:
		p.cur.Advance()
		return ast.NewIdentifier(tok, "super")
	case token.LPAREN:
		return p.parseParenOrMultiAssignTarget()
	case token.LBRACK:
		return p.parseListOrMapLiteral()
	case token.LBRACE:
		return p.parseClosure()
	case token.NEW:
		return p.parseNewInstance()
	case token.PRINT, token.PRINTLN, token.DIE:
		p.cur.Advance()
		var x ast.Expr
		if p.canStartExpression(p.cur.Current().Kind) {
			x = p.ParseExpression()
		}
		kind := map[token.Kind]string{token.PRINT: "print", token.PRINTLN: "println", token.DIE: "die"}[tok.Kind]
		return ast.NewPrintExpr(tok, kind, x)
	case token.EVAL:
		p.cur.Advance()
		p.expect(token.LPAREN, "'(' after eval")
		src := p.ParseExpression()
		p.expect(token.RPAREN, "')'")
		return ast.NewEvalExpr(tok, src)
	case token.BREAK:
		p.cur.Advance()
		label := p.optionalLabelRef()
		return ast.NewBreakExpr(tok, label)
	case token.CONTINUE:
		p.cur.Advance()
		label := p.optionalLabelRef()
		return ast.NewContinueExpr(tok, label)
	case token.RETURN:
		p.cur.Advance()
		var x ast.Expr
		if p.canStartExpression(p.cur.Current().Kind) {
			x = p.ParseExpression()
		}
		return ast.NewReturnExpr(tok, x)
	case token.SWITCH:
		return p.parseSwitch()
	case token.DEF:
		return p.parseFunDeclExpr()
	}

	p.errorf(tok, "unexpected token %q in expression", tok.Lexeme)
	p.cur.Advance()
	return ast.NewLiteral(tok, nil)
}

func (p *Parser) optionalLabelRef() string {
	if p.cur.Is(token.IDENT) {
		return p.cur.Advance().Lexeme
	}
	return ""
}

func asInt64(v any) any {
	switch n := v.(type) {
	case int64:
		return n
	default:
		return v
	}
}

// parseParenOrMultiAssignTarget handles both a plain parenthesized
// expression and the multi-assignment lvalue form `(a, b, c) = expr`
// (spec §4.1 disambiguation rule 6).
func (p *Parser) parseParenOrMultiAssignTarget() ast.Expr {
	tok := p.cur.Advance() // '('
	first := p.ParseExpression()
	if !p.cur.Is(token.COMMA) {
		p.expect(token.RPAREN, "')'")
		return first
	}

	list := ast.NewListLiteral(tok)
	list.Elements = append(list.Elements, first)
	for {
		if _, ok := p.cur.Skip(token.COMMA); !ok {
			break
		}
		list.Elements = append(list.Elements, p.ParseExpression())
	}
	p.expect(token.RPAREN, "')'")
	return list
}

func (p *Parser) parseListOrMapLiteral() ast.Expr {
	tok := p.cur.Advance() // '['
	if _, ok := p.cur.Skip(token.COLON); ok {
		p.expect(token.RBRACK, "']'")
		return ast.NewMapLiteral(tok) // `[:]` empty map (spec disambiguation rule 2)
	}
	if p.cur.Is(token.RBRACK) {
		p.cur.Advance()
		return ast.NewListLiteral(tok)
	}

	first := p.ParseExpression()
	if _, ok := p.cur.Skip(token.COLON); ok {
		m := ast.NewMapLiteral(tok)
		val := p.ParseExpression()
		m.Entries = append(m.Entries, ast.MapEntry{Key: first, Value: val})
		for {
			if _, ok := p.cur.Skip(token.COMMA); !ok {
				break
			}
			k := p.ParseExpression()
			p.expect(token.COLON, "':' in map literal")
			v := p.ParseExpression()
			m.Entries = append(m.Entries, ast.MapEntry{Key: k, Value: v})
		}
		p.expect(token.RBRACK, "']'")
		return m
	}

	list := ast.NewListLiteral(tok)
	list.Elements = append(list.Elements, first)
	for {
		if _, ok := p.cur.Skip(token.COMMA); !ok {
			break
		}
		if p.cur.Is(token.RBRACK) {
			break
		}
		list.Elements = append(list.Elements, p.ParseExpression())
	}
	p.expect(token.RBRACK, "']'")
	return list
}

// parseClosure parses `{ [params ->] stmts }`. When no parameter list is
// present, the block is an implicit-it closure (spec §4.1 "Implicit-it");
// the resolver later strips the parameter if the closure is never invoked.
func (p *Parser) parseClosure() ast.Expr {
	tok := p.cur.Advance() // '{'

	fd := ast.NewFunDecl(tok, "")
	implicitIt := true

	if looksLikeParamList(p.cur) {
		for !p.cur.Is(token.ARROW) && !p.cur.IsEOF() {
			nameTok, ok := p.expect(token.IDENT, "closure parameter")
			if !ok {
				break
			}
			fd.Params = append(fd.Params, &ast.Param{Name: nameTok.Lexeme, DeclaredType: types.Unknown})
			if _, ok := p.cur.Skip(token.COMMA); !ok {
				break
			}
		}
		p.expect(token.ARROW, "'->' after closure parameters")
		implicitIt = false
	}

	body := ast.NewBlock(tok)
	body.IsFunctionBody = true
	for !p.cur.Is(token.RBRACE) && !p.cur.IsEOF() {
		if s := p.parseStatement(); s != nil {
			body.Stmts = append(body.Stmts, s)
		}
	}
	p.expect(token.RBRACE, "'}'")

	fd.Body = body
	fd.ImplicitIt = implicitIt
	if implicitIt {
		fd.Params = []*ast.Param{{Name: "it", DeclaredType: types.Any}}
	}
	fd.Descriptor = ast.NewFunctionDescriptor("")
	return ast.NewClosure(tok, fd)
}

// looksLikeParamList speculatively checks for `ident [, ident]* ->`
// immediately inside a `{`.
func looksLikeParamList(c *Cursor) bool {
	if !c.Is(token.IDENT) {
		return false
	}
	i := 1
	for c.PeekIs(i-1, token.IDENT) {
		if c.PeekIs(i, token.ARROW) {
			return true
		}
		if !c.PeekIs(i, token.COMMA) {
			return false
		}
		i += 2
	}
	return false
}

func (p *Parser) parseNewInstance() ast.Expr {
	tok := p.cur.Advance() // 'new'
	name := p.parseDottedName()
	ni := ast.NewNewInstance(tok, name)
	if p.cur.Is(token.LPAREN) {
		p.cur.Advance()
		for !p.cur.Is(token.RPAREN) && !p.cur.IsEOF() {
			if p.cur.Is(token.IDENT) && p.cur.PeekIs(1, token.COLON) {
				nameTok := p.cur.Advance()
				p.cur.Advance()
				ni.NamedArgs = append(ni.NamedArgs, ast.NamedArg{Name: nameTok.Lexeme, Value: p.ParseExpression()})
			} else {
				ni.Args = append(ni.Args, p.ParseExpression())
			}
			if _, ok := p.cur.Skip(token.COMMA); !ok {
				break
			}
		}
		p.expect(token.RPAREN, "')'")
	}
	return ni
}

func (p *Parser) parseSwitch() ast.Expr {
	tok := p.cur.Advance() // 'switch'
	p.expect(token.LPAREN, "'(' after switch")
	subject := p.ParseExpression()
	p.expect(token.RPAREN, "')'")
	p.expect(token.LBRACE, "'{' to start switch body")

	sw := ast.NewSwitch(tok, subject)
	for !p.cur.Is(token.RBRACE) && !p.cur.IsEOF() {
		var c ast.SwitchCase
		if _, ok := p.cur.Skip(token.DEFAULT); ok {
			c.IsDefault = true
		} else {
			c.Patterns = append(c.Patterns, p.parseSwitchPattern())
			for {
				if _, ok := p.cur.Skip(token.COMMA); !ok {
					break
				}
				c.Patterns = append(c.Patterns, p.parseSwitchPattern())
			}
		}
		p.expect(token.ARROW, "'->' in switch case")
		if p.cur.Is(token.LBRACE) {
			c.Body = p.parseBlockExpr()
		} else {
			c.Body = p.ParseExpression()
		}
		sw.Cases = append(sw.Cases, c)
		p.cur.Skip(token.SEMI)
	}
	p.expect(token.RBRACE, "'}' to close switch body")
	return sw
}

// parseSwitchPattern handles both literal patterns and constructor
// patterns like `Point(x, y)` (spec §8 scenario S5; GLOSSARY does not name
// this separately, see ast.ConstructorPattern's doc comment).
func (p *Parser) parseSwitchPattern() ast.Expr {
	if p.cur.Is(token.IDENT) && isUpper(p.cur.Current().Lexeme) && p.cur.PeekIs(1, token.LPAREN) {
		nameTok := p.cur.Advance()
		p.cur.Advance() // '('
		cp := ast.NewConstructorPattern(nameTok, nameTok.Lexeme)
		for !p.cur.Is(token.RPAREN) && !p.cur.IsEOF() {
			if t, ok := p.expect(token.IDENT, "pattern binding"); ok {
				cp.FieldVars = append(cp.FieldVars, t.Lexeme)
			}
			if _, ok := p.cur.Skip(token.COMMA); !ok {
				break
			}
		}
		p.expect(token.RPAREN, "')'")
		return cp
	}
	return p.parseAssignment()
}

func isUpper(s string) bool { return s != "" && s[0] >= 'A' && s[0] <= 'Z' }

func (p *Parser) parseBlockExpr() ast.Expr {
	tok := p.cur.Advance() // '{'
	blk := ast.NewBlock(tok)
	for !p.cur.Is(token.RBRACE) && !p.cur.IsEOF() {
		if s := p.parseStatement(); s != nil {
			blk.Stmts = append(blk.Stmts, s)
		}
	}
	p.expect(token.RBRACE, "'}'")
	return ast.NewBlockExpr(tok, blk)
}

func (p *Parser) parseFunDeclExpr() ast.Expr {
	fd := p.parseFunDecl()
	return ast.NewFunDeclExpr(fd.Token(), fd)
}

// tryParseTypeName speculatively parses a type reference, used by the cast
// lookahead and by declared-type positions.
func (p *Parser) tryParseTypeName() (ast.Type, bool) {
	if !p.cur.Is(token.IDENT) && !typeKeyword(p.cur.Current().Kind) {
		return nil, false
	}
	return p.parseTypeRef(), true
}

func typeKeyword(k token.Kind) bool { return false }

// parseTypeRef parses a (possibly array) type name into the shared type
// lattice (spec §3.2). Unknown identifiers resolve to types.Unknown and are
// corrected by the resolver once the class registry is consulted.
func (p *Parser) parseTypeRef() ast.Type {
	name := p.parseDottedName()
	base := typeFromName(name)
	for p.cur.Is(token.LBRACK) && p.cur.PeekIs(1, token.RBRACK) {
		p.cur.Advance()
		p.cur.Advance()
		base = types.NewArrayType(base)
	}
	return base
}

func typeFromName(name string) ast.Type {
	switch name {
	case "bool", "boolean":
		return types.Bool
	case "byte":
		return types.Byte
	case "int":
		return types.Int
	case "long":
		return types.Long
	case "double":
		return types.Double
	case "decimal":
		return types.Decimal
	case "String", "string":
		return types.String
	case "Map", "map":
		return types.Map
	case "List", "list":
		return types.List
	case "def", "var", "any":
		return types.Any
	}
	return types.Unknown
}

