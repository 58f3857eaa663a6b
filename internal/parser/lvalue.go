package parser

import (
	"github.com/jactl-go/jactlc/pkg/ast"
	"github.com/jactl-go/jactlc/pkg/token"
)

// This file implements spec §4.1's "Lvalue rewriting": the parser never
// builds a generic "assignment to arbitrary expression" node. Instead it
// inspects the already-parsed left-hand side and picks the matching
// assignment variant, marking every non-final FieldAccess in a field path
// as CreateIfMissing so the codegen autovivifies missing intermediate
// maps/lists exactly once per path (testable property 6).

// rewriteAssign builds the assignment node for `target = value`.
func (p *Parser) rewriteAssign(tok token.Token, target, value ast.Expr) ast.Expr {
	switch t := target.(type) {
	case *ast.Identifier:
		return ast.NewVarAssign(tok, t, value)
	case *ast.FieldAccess:
		markCreateIfMissing(t)
		return ast.NewFieldAssign(tok, t, value)
	case *ast.ListLiteral:
		return ast.NewMultiAssign(tok, t.Elements, value)
	default:
		p.errorf(tok, "invalid assignment target")
		return target
	}
}

// rewriteOpAssign builds the compound-assignment node for `target op= value`
// (or the desugared `target++`/`++target` forms, which arrive here with
// operator "+" and value a literal 1). The field path is only ever
// traversed once: FieldOpAssign carries the path plus a Noop placeholder in
// Value standing in for the old value, rather than being expanded into
// `target = target op value`.
func (p *Parser) rewriteOpAssign(tok token.Token, target ast.Expr, op string, value ast.Expr, postfix bool) ast.Expr {
	switch t := target.(type) {
	case *ast.Identifier:
		return ast.NewVarOpAssign(tok, t, op, wrapWithNoop(tok, op, value), postfix)
	case *ast.FieldAccess:
		markCreateIfMissing(t)
		return ast.NewFieldOpAssign(tok, t, op, wrapWithNoop(tok, op, value), postfix)
	default:
		p.errorf(tok, "invalid assignment target")
		return target
	}
}

// wrapWithNoop builds the `Noop op value` expression that VarOpAssign/
// FieldOpAssign carry in their Value field, so codegen can later substitute
// the actual old value in place of the Noop exactly once.
func wrapWithNoop(tok token.Token, op string, value ast.Expr) ast.Expr {
	return ast.NewBinary(tok, ast.NewNoop(tok), op, value)
}

// markCreateIfMissing sets CreateIfMissing on every FieldAccess in fa's
// parent chain except fa itself, since fa is the final link being assigned
// to directly and therefore never needs autovivification of itself.
func markCreateIfMissing(fa *ast.FieldAccess) {
	parent, ok := fa.Parent.(*ast.FieldAccess)
	for ok {
		parent.CreateIfMissing = true
		next, nextOk := parent.Parent.(*ast.FieldAccess)
		parent, ok = next, nextOk
	}
}
