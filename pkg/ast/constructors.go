package ast

import "github.com/jactl-go/jactlc/pkg/token"

// This file collects the exported constructors for Expr variants that are
// built exclusively by the parser (pkg/ast/expressions.go and
// expressions_control.go define the type plus the constructors their own
// callers within this package need; the parser package, being external,
// can only populate the embedded exprBase through one of these).

func NewCast(tok token.Token, target Type, x Expr) *Cast {
	return &Cast{exprBase: NewExprBase(tok), TargetType: target, X: x}
}

func NewRegexMatch(tok token.Token, target, pattern Expr, modifiers string, negated bool) *RegexMatch {
	return &RegexMatch{exprBase: NewExprBase(tok), Target: target, Pattern: pattern, Modifiers: modifiers, IsNegated: negated}
}

func NewRegexSubst(tok token.Token, target, pattern, replacement Expr, modifiers string, nonDestructive bool) *RegexSubst {
	return &RegexSubst{
		exprBase: NewExprBase(tok), Target: target, Pattern: pattern,
		Replacement: replacement, Modifiers: modifiers, IsNonDestructive: nonDestructive,
	}
}

func NewVarAssign(tok token.Token, target *Identifier, value Expr) *VarAssign {
	return &VarAssign{exprBase: NewExprBase(tok), Target: target, Value: value}
}

func NewVarOpAssign(tok token.Token, target *Identifier, operator string, value Expr, postfix bool) *VarOpAssign {
	return &VarOpAssign{exprBase: NewExprBase(tok), Target: target, Operator: operator, Value: value, IsPostfix: postfix}
}

func NewFieldOpAssign(tok token.Token, target *FieldAccess, operator string, value Expr, postfix bool) *FieldOpAssign {
	return &FieldOpAssign{exprBase: NewExprBase(tok), Target: target, Operator: operator, Value: value, IsPostfix: postfix}
}

func NewFunDeclExpr(tok token.Token, fd *FunDecl) *FunDeclExpr {
	return &FunDeclExpr{exprBase: NewExprBase(tok), FunDecl: fd}
}

func NewNewInstance(tok token.Token, className string) *NewInstance {
	return &NewInstance{exprBase: NewExprBase(tok), ClassName: className}
}

func NewTypeExpr(tok token.Token, t Type) *TypeExpr {
	te := &TypeExpr{exprBase: NewExprBase(tok), ResolvedType: t}
	te.SetType(t)
	return te
}

func NewBlockExpr(tok token.Token, body *Block) *BlockExpr {
	return &BlockExpr{exprBase: NewExprBase(tok), Body: body}
}

func NewBreakExpr(tok token.Token, label string) *BreakExpr {
	return &BreakExpr{exprBase: NewExprBase(tok), Label: label}
}

func NewContinueExpr(tok token.Token, label string) *ContinueExpr {
	return &ContinueExpr{exprBase: NewExprBase(tok), Label: label}
}

func NewReturnExpr(tok token.Token, x Expr) *ReturnExpr {
	return &ReturnExpr{exprBase: NewExprBase(tok), X: x}
}

func NewPrintExpr(tok token.Token, kind string, x Expr) *PrintExpr {
	return &PrintExpr{exprBase: NewExprBase(tok), Kind: kind, X: x}
}

func NewEvalExpr(tok token.Token, source Expr) *EvalExpr {
	return &EvalExpr{exprBase: NewExprBase(tok), Source: source}
}

func NewSwitch(tok token.Token, subject Expr) *Switch {
	return &Switch{exprBase: NewExprBase(tok), Subject: subject}
}

func NewConstructorPattern(tok token.Token, className string) *ConstructorPattern {
	return &ConstructorPattern{exprBase: NewExprBase(tok), ClassName: className}
}

func NewSpecialVar(tok token.Token, name string) *SpecialVar {
	return &SpecialVar{exprBase: NewExprBase(tok), Name: name}
}

// MultiAssign is the destructuring form `(a, b, c) = expr` (spec §4.1
// disambiguation rule 6): Value is evaluated once and its elements bound to
// each of Targets in order, each of which is itself a valid assignment
// target (Identifier or FieldAccess).
type MultiAssign struct {
	exprBase
	Targets []Expr
	Value   Expr
}

func (*MultiAssign) exprNode() {}

func NewMultiAssign(tok token.Token, targets []Expr, value Expr) *MultiAssign {
	return &MultiAssign{exprBase: NewExprBase(tok), Targets: targets, Value: value}
}

// NewFieldDecl constructs a class field declaration node (the parser is
// external to this package and cannot populate the embedded stmtBase any
// other way).
func NewFieldDecl(tok token.Token, name string, declared Type) *FieldDecl {
	return &FieldDecl{stmtBase: NewStmtBase(tok), Name: name, DeclaredType: declared}
}

// NewImport constructs an import declaration node.
func NewImport(tok token.Token, packagePath, className, alias string) *Import {
	return &Import{stmtBase: NewStmtBase(tok), PackagePath: packagePath, ClassName: className, Alias: alias}
}
