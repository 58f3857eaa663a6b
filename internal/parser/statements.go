package parser

import (
	"github.com/jactl-go/jactlc/pkg/ast"
	"github.com/jactl-go/jactlc/pkg/token"
	"github.com/jactl-go/jactlc/pkg/types"
)

// This file implements the statement grammar of spec §3.3/§4.1: blocks,
// control flow, variable/function/class declarations, and the trailing
// `if`/`unless` statement guard.

// parseStatement parses and returns one statement, or nil for a statement
// that produced no node (a bare ';'). A syntax error is recorded and
// parsing goes on from wherever the failed production stopped;
// parseStatement does not call synchronize() and does not skip ahead to a
// recovery anchor.
func (p *Parser) parseStatement() ast.Stmt {
	tok := p.cur.Current()

	switch tok.Kind {
	case token.SEMI:
		p.cur.Advance()
		return nil
	case token.LBRACE:
		return p.parseBlock()
	case token.IF:
		return p.parseIf(false)
	case token.UNLESS:
		return p.parseIf(true)
	case token.WHILE:
		return p.parseWhile("")
	case token.FOR:
		return p.parseFor("")
	case token.DO:
		return p.parseDoUntil("")
	case token.RETURN:
		p.cur.Advance()
		var x ast.Expr
		if p.canStartExpression(p.cur.Current().Kind) {
			x = p.ParseExpression()
		}
		return p.withGuard(tok, ast.NewReturn(tok, x))
	case token.THROW:
		p.cur.Advance()
		x := p.ParseExpression()
		return p.withGuard(tok, ast.NewThrowError(tok, x))
	case token.CLASS:
		return p.parseClassDecl()
	case token.DEF:
		if p.looksLikeFunDecl() {
			return p.parseFunDecl()
		}
		return p.parseVarDeclStmt(types.Any, false)
	case token.VAR:
		p.cur.Advance()
		return p.parseVarDeclStmt(types.Any, false)
	case token.FINAL:
		p.cur.Advance()
		declared := types.Any
		if t, ok := p.tryParseTypeName(); ok {
			declared = t
		}
		return p.parseVarDeclStmt(declared, true)
	case token.IDENT:
		if label, ok := p.tryParseLabel(); ok {
			return p.parseLabeledLoop(label)
		}
		if p.looksLikeVarDeclType() {
			declared := p.parseTypeRef()
			return p.parseVarDeclStmt(declared, false)
		}
	}

	expr := p.ParseExpression()
	return p.withGuard(tok, ast.NewExprStmt(tok, expr))
}

// withGuard attaches an optional trailing `if cond`/`unless cond` modifier
// to a statement. It is applied to return, throw, expression,
// variable-declaration and do-until statements.
func (p *Parser) withGuard(tok token.Token, stmt ast.Stmt) ast.Stmt {
	if p.cur.Is(token.IF) || p.cur.Is(token.UNLESS) {
		isUnless := p.cur.Current().Kind == token.UNLESS
		p.cur.Advance()
		cond := p.ParseExpression()
		then := stmt
		if isUnless {
			cond = ast.NewUnary(tok, "not", cond, false)
		}
		return ast.NewIf(tok, cond, then, nil)
	}
	p.cur.Skip(token.SEMI)
	return stmt
}

func (p *Parser) parseBlock() *ast.Block {
	tok := p.cur.Advance() // '{'
	blk := ast.NewBlock(tok)
	for !p.cur.Is(token.RBRACE) && !p.cur.IsEOF() {
		if s := p.parseStatement(); s != nil {
			blk.Stmts = append(blk.Stmts, s)
		}
	}
	p.expect(token.RBRACE, "'}'")
	return blk
}

func (p *Parser) parseIf(negate bool) ast.Stmt {
	tok := p.cur.Advance() // 'if' | 'unless'
	p.expect(token.LPAREN, "'(' after if")
	cond := p.ParseExpression()
	p.expect(token.RPAREN, "')'")
	if negate {
		cond = ast.NewUnary(tok, "not", cond, false)
	}
	then := p.parseStatement()
	var els ast.Stmt
	if _, ok := p.cur.Skip(token.ELSE); ok {
		els = p.parseStatement()
	}
	return ast.NewIf(tok, cond, then, els)
}

func (p *Parser) tryParseLabel() (string, bool) {
	var label string
	ok := p.lookahead(func() bool {
		if !p.cur.Is(token.IDENT) {
			return false
		}
		nameTok := p.cur.Advance()
		if _, ok := p.cur.Skip(token.COLON); !ok {
			return false
		}
		if !p.cur.IsAny(token.WHILE, token.FOR, token.DO) {
			return false
		}
		label = nameTok.Lexeme
		return true
	})
	return label, ok
}

func (p *Parser) parseLabeledLoop(label string) ast.Stmt {
	switch p.cur.Current().Kind {
	case token.WHILE:
		return p.parseWhile(label)
	case token.FOR:
		return p.parseFor(label)
	case token.DO:
		return p.parseDoUntil(label)
	}
	p.errorf(p.cur.Current(), "expected a loop after label %q", label)
	return nil
}

func (p *Parser) parseWhile(label string) ast.Stmt {
	tok := p.cur.Advance() // 'while'
	p.expect(token.LPAREN, "'(' after while")
	cond := p.ParseExpression()
	p.expect(token.RPAREN, "')'")
	w := ast.NewWhile(tok)
	w.Label = label
	w.Cond = cond
	w.Body = p.parseStatement()
	return w
}

func (p *Parser) parseDoUntil(label string) ast.Stmt {
	tok := p.cur.Advance() // 'do'
	body := p.parseStatement()
	p.expect(token.UNTIL, "'until' to close a do-until loop")
	p.expect(token.LPAREN, "'(' after until")
	cond := p.ParseExpression()
	p.expect(token.RPAREN, "')'")
	w := ast.NewWhile(tok)
	w.Label = label
	w.Cond = cond
	w.Body = body
	w.IsUntil = true
	return p.withGuard(tok, w)
}

// parseFor implements both the C-style `for (init; cond; update)` loop and
// the `for (var x in iterable)` form (spec §3.3 "While (also hosts for)").
func (p *Parser) parseFor(label string) ast.Stmt {
	tok := p.cur.Advance() // 'for'
	p.expect(token.LPAREN, "'(' after for")

	if forEachVar, iterable, ok := p.tryParseForEach(); ok {
		w := ast.NewWhile(tok)
		w.Label = label
		w.IsForEach = true
		w.ForEachVar = forEachVar
		w.ForEachIterable = iterable
		p.expect(token.RPAREN, "')'")
		w.Body = p.parseStatement()
		return w
	}

	w := ast.NewWhile(tok)
	w.Label = label
	if !p.cur.Is(token.SEMI) {
		w.Init = p.parseStatement()
	} else {
		p.cur.Advance()
	}
	if !p.cur.Is(token.SEMI) {
		w.Cond = p.ParseExpression()
	}
	p.expect(token.SEMI, "';' in for loop")
	if !p.cur.Is(token.RPAREN) {
		w.Update = p.ParseExpression()
	}
	p.expect(token.RPAREN, "')'")
	w.Body = p.parseStatement()
	return w
}

func (p *Parser) tryParseForEach() (string, ast.Expr, bool) {
	var name string
	var iterable ast.Expr
	ok := p.lookahead(func() bool {
		p.cur.Skip(token.DEF)
		p.cur.Skip(token.VAR)
		if p.looksLikeVarDeclType() {
			p.parseTypeRef()
		}
		nameTok, ok := p.cur.Skip(token.IDENT)
		if !ok {
			return false
		}
		if _, ok := p.cur.Skip(token.IN); !ok {
			return false
		}
		name = nameTok.Lexeme
		iterable = p.ParseExpression()
		return true
	})
	return name, iterable, ok
}

// looksLikeFunDecl distinguishes `def name(...)` (function declaration)
// from `def x = ...` (inferred-type variable declaration) by peeking past
// the name for '('.
func (p *Parser) looksLikeFunDecl() bool {
	return p.cur.PeekIs(1, token.IDENT) && p.cur.PeekIs(2, token.LPAREN)
}

// looksLikeVarDeclType decides whether the statement starting at the
// current IDENT is a declared-type variable declaration (`int x`, `Foo x`,
// `int[] x`) as opposed to an expression statement starting with a bare
// identifier (`x = 1`, `foo()`). Mirrors the teacher's lookahead-based
// declaration/expression disambiguation.
func (p *Parser) looksLikeVarDeclType() bool {
	if _, isType := typeFromNameOK(p.cur.Current().Lexeme); isType {
		return p.cur.PeekIs(1, token.IDENT) || (p.cur.PeekIs(1, token.LBRACK) && p.cur.PeekIs(2, token.RBRACK))
	}
	if isUpper(p.cur.Current().Lexeme) {
		return p.cur.PeekIs(1, token.IDENT)
	}
	return false
}

func typeFromNameOK(name string) (ast.Type, bool) {
	t := typeFromName(name)
	return t, t != types.Unknown
}

// parseVarDeclStmt parses one or more comma-separated declarations sharing
// a declared type, wrapping more than one in a StmtList (spec §3.3
// "VarDecl"; mirrors the teacher's isVarDeclBlock unwrapping).
func (p *Parser) parseVarDeclStmt(declared ast.Type, isFinal bool) ast.Stmt {
	tok := p.cur.Current()
	first := p.parseOneVarDecl(tok, declared, isFinal)
	if !p.cur.Is(token.COMMA) {
		return p.withGuard(tok, first)
	}

	list := ast.NewStmtList(tok)
	list.Stmts = append(list.Stmts, first)
	for {
		if _, ok := p.cur.Skip(token.COMMA); !ok {
			break
		}
		list.Stmts = append(list.Stmts, p.parseOneVarDecl(p.cur.Current(), declared, isFinal))
	}
	return p.withGuard(tok, list)
}

func (p *Parser) parseOneVarDecl(tok token.Token, declared ast.Type, isFinal bool) *ast.VarDeclStmt {
	nameTok, _ := p.expect(token.IDENT, "variable name")
	decl := ast.NewVarDeclStmt(tok, nameTok.Lexeme, declared)
	decl.IsFinal = isFinal
	if _, ok := p.cur.Skip(token.ASSIGN); ok {
		decl.Initialiser = p.ParseExpression()
	}
	return decl
}

// parseFunDecl parses `def name(params) { body }`, used both for top-level
// function declarations and (via parseFunDeclExpr) named function literals.
func (p *Parser) parseFunDecl() *ast.FunDecl {
	tok := p.cur.Advance() // 'def'
	nameTok, _ := p.expect(token.IDENT, "function name")
	fd := ast.NewFunDecl(tok, nameTok.Lexeme)
	fd.Params = p.parseParamList()
	fd.ReturnType = types.Any
	fd.Body = p.parseBlock()
	fd.Descriptor = ast.NewFunctionDescriptor(nameTok.Lexeme)
	return fd
}

func (p *Parser) parseParamList() []*ast.Param {
	p.expect(token.LPAREN, "'(' to start parameter list")
	var params []*ast.Param
	for !p.cur.Is(token.RPAREN) && !p.cur.IsEOF() {
		declared := types.Any
		if p.looksLikeVarDeclType() {
			declared = p.parseTypeRef()
		} else {
			p.cur.Skip(token.DEF)
		}
		nameTok, _ := p.expect(token.IDENT, "parameter name")
		param := &ast.Param{Name: nameTok.Lexeme, DeclaredType: declared}
		if _, ok := p.cur.Skip(token.ASSIGN); ok {
			param.Default = p.ParseExpression()
		}
		params = append(params, param)
		if _, ok := p.cur.Skip(token.COMMA); !ok {
			break
		}
	}
	p.expect(token.RPAREN, "')' to close parameter list")
	return params
}
