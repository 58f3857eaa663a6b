package parser

import (
	"github.com/jactl-go/jactlc/pkg/ast"
	"github.com/jactl-go/jactlc/pkg/token"
	"github.com/jactl-go/jactlc/pkg/types"
)

// This file implements class declaration parsing (spec §3.3 "ClassDecl";
// §3.4 "ClassDescriptor"): fields, methods and inner classes share one
// brace-delimited body, disambiguated by whether a declaration looks like a
// field (`Type name [= init] ;`) or a method (`def name(...) { ... }`).

func (p *Parser) parseClassDecl() *ast.ClassDecl {
	tok := p.cur.Advance() // 'class'
	nameTok, _ := p.expect(token.IDENT, "class name")
	decl := ast.NewClassDecl(tok, nameTok.Lexeme)
	decl.Descriptor = ast.NewClassDescriptor(nameTok.Lexeme, nameTok.Lexeme)

	if _, ok := p.cur.Skip(token.EXTENDS); ok {
		decl.BaseClassName = p.parseDottedName()
	}

	if _, ok := p.cur.Skip(token.IMPLEMENTS); ok {
		decl.InterfaceNames = append(decl.InterfaceNames, p.parseDottedName())
		for {
			if _, ok := p.cur.Skip(token.COMMA); !ok {
				break
			}
			decl.InterfaceNames = append(decl.InterfaceNames, p.parseDottedName())
		}
	}

	p.expect(token.LBRACE, "'{' to start class body")
	for !p.cur.Is(token.RBRACE) && !p.cur.IsEOF() {
		p.parseClassMember(decl)
	}
	p.expect(token.RBRACE, "'}' to close class body")
	return decl
}

func (p *Parser) parseClassMember(decl *ast.ClassDecl) {
	isStatic := false
	isFinal := false
	for {
		if _, ok := p.cur.Skip(token.STATIC); ok {
			isStatic = true
			continue
		}
		if _, ok := p.cur.Skip(token.FINAL); ok {
			isFinal = true
			continue
		}
		break
	}

	switch {
	case p.cur.Is(token.CLASS):
		inner := p.parseClassDecl()
		decl.InnerClasses = append(decl.InnerClasses, inner)
		decl.Descriptor.InnerClasses[inner.Name] = inner.Descriptor

	case p.cur.Is(token.DEF) && p.looksLikeFunDecl():
		method := p.parseFunDecl()
		method.Descriptor.IsStatic = isStatic
		method.Descriptor.IsFinal = isFinal
		method.Descriptor.ImplementingClassName = decl.Descriptor.Packaged
		method.Descriptor.ImplementingMethod = method.Name
		decl.Methods = append(decl.Methods, method)
		decl.Descriptor.Methods[method.Name] = method.Descriptor

	default:
		p.parseFieldDecl(decl, isStatic, isFinal)
	}
}

func (p *Parser) parseFieldDecl(decl *ast.ClassDecl, isStatic, isFinal bool) {
	declared := types.Any
	if p.cur.Is(token.DEF) || p.cur.Is(token.VAR) {
		p.cur.Advance()
	} else if p.looksLikeVarDeclType() || isKnownOrClassTypeName(p.cur.Current().Lexeme) {
		declared = p.parseTypeRef()
	}

	for {
		nameTok, ok := p.expect(token.IDENT, "field name")
		if !ok {
			break
		}
		field := ast.NewFieldDecl(nameTok, nameTok.Lexeme, declared)
		var init ast.Expr
		mandatory := true
		if _, ok := p.cur.Skip(token.ASSIGN); ok {
			init = p.ParseExpression()
			mandatory = false
		}
		field.Initialiser = init
		decl.Fields = append(decl.Fields, field)
		decl.Descriptor.AddField(&ast.FieldInfo{Name: nameTok.Lexeme, Type: declared, Mandatory: mandatory, Default: init})

		if _, ok := p.cur.Skip(token.COMMA); !ok {
			break
		}
	}
	p.cur.Skip(token.SEMI)
	_ = isStatic
	_ = isFinal
}

func isKnownOrClassTypeName(name string) bool {
	if _, ok := typeFromNameOK(name); ok {
		return true
	}
	return isUpper(name)
}
