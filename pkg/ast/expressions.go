package ast

import "github.com/jactl-go/jactlc/pkg/token"

// This file implements the literal, operator and lvalue Expr variants
// enumerated in spec §3.3. Synthesized/control-flow variants live in
// expressions_control.go.

// Literal is any scalar literal (int, long, double, decimal, string, bool,
// null); Value holds the parsed value (nil for null) and there is no
// separate kind field.
type Literal struct {
	exprBase
	Value any
}

func (*Literal) exprNode() {}

func NewLiteral(tok token.Token, value any) *Literal {
	l := &Literal{exprBase: NewExprBase(tok), Value: value}
	l.SetIsConst(true)
	l.SetConstValue(value)
	return l
}

// ListLiteral is a `[1, 2, 3]` expression.
type ListLiteral struct {
	exprBase
	Elements []Expr
}

func (*ListLiteral) exprNode() {}

func NewListLiteral(tok token.Token) *ListLiteral { return &ListLiteral{exprBase: NewExprBase(tok)} }

// MapEntry is one `key: value` pair inside a MapLiteral.
type MapEntry struct {
	Key   Expr
	Value Expr
}

// MapLiteral is a `{key: value, ...}` or `[key: value, ...]` expression,
// including the empty forms `[:]`/`{:}` (spec §4.1 disambiguation rule 2).
type MapLiteral struct {
	exprBase
	Entries []MapEntry
}

func (*MapLiteral) exprNode() {}

func NewMapLiteral(tok token.Token) *MapLiteral { return &MapLiteral{exprBase: NewExprBase(tok)} }

// Identifier is a name reference; VarDecl is filled in by the resolver
// (spec testable property 2).
type Identifier struct {
	exprBase
	Name    string
	VarDecl *VarDecl
}

func (*Identifier) exprNode() {}

func NewIdentifier(tok token.Token, name string) *Identifier {
	return &Identifier{exprBase: NewExprBase(tok), Name: name}
}

// VarAssign is a plain `name = value` assignment.
type VarAssign struct {
	exprBase
	Target *Identifier
	Value  Expr
}

func (*VarAssign) exprNode() {}

// VarOpAssign is a compound assignment to a simple variable (`x += 1`).
type VarOpAssign struct {
	exprBase
	Target   *Identifier
	Operator string
	Value    Expr
	// IsPostfix marks the postfix forms (`x++`, `x--`). Value is the
	// `Noop op value` Binary built by the parser, whose Noop placeholder the
	// codegen replaces with the variable's old value, so a postfix form can
	// return it (spec §4.1 "Lvalue rewriting").
	IsPostfix bool
}

func (*VarOpAssign) exprNode() {}

// FieldAccess is `parent.field` or `parent[field]`. CreateIfMissing is set
// by the parser on every binary field-access node in an lvalue path except
// the last (spec §4.1 "Lvalue rewriting"; testable property 6).
type FieldAccess struct {
	exprBase
	Parent          Expr
	Field           Expr // an Identifier for `.field`, any Expr for `[expr]`
	IsIndex         bool // true for `[expr]`, false for `.field`
	CreateIfMissing bool
}

func (*FieldAccess) exprNode() {}

func NewFieldAccess(tok token.Token, parent, field Expr, isIndex bool) *FieldAccess {
	return &FieldAccess{exprBase: NewExprBase(tok), Parent: parent, Field: field, IsIndex: isIndex}
}

// FieldAssign is `parent.field = value`.
type FieldAssign struct {
	exprBase
	Target *FieldAccess
	Value  Expr
}

func (*FieldAssign) exprNode() {}

func NewFieldAssign(tok token.Token, target *FieldAccess, value Expr) *FieldAssign {
	return &FieldAssign{exprBase: NewExprBase(tok), Target: target, Value: value}
}

// FieldOpAssign is a compound assignment through a field path (spec §4.1
// "Lvalue rewriting"): it is NOT expanded to `a.b.c = a.b.c + v` so the
// parent path is traversed exactly once, autovivifying missing intermediate
// maps/lists along the way.
type FieldOpAssign struct {
	exprBase
	Target   *FieldAccess
	Operator string
	Value    Expr // contains a Noop placeholder standing in for the old value
	// IsPostfix marks `path++`/`path--` so the codegen can return the
	// pre-increment value.
	IsPostfix bool
}

func (*FieldOpAssign) exprNode() {}

// Binary is a binary operator expression.
type Binary struct {
	exprBase
	Left     Expr
	Operator string
	Right    Expr
}

func (*Binary) exprNode() {}

func NewBinary(tok token.Token, left Expr, op string, right Expr) *Binary {
	return &Binary{exprBase: NewExprBase(tok), Left: left, Operator: op, Right: right}
}

// Ternary is `cond ? then : else`, also used for the elvis operator `?:`
// (IsElvis true, with Then set to the Cond expression itself).
type Ternary struct {
	exprBase
	Cond    Expr
	Then    Expr
	Else    Expr
	IsElvis bool
}

func (*Ternary) exprNode() {}

func NewTernary(tok token.Token, cond, then, els Expr, isElvis bool) *Ternary {
	return &Ternary{exprBase: NewExprBase(tok), Cond: cond, Then: then, Else: els, IsElvis: isElvis}
}

// Unary is a prefix or postfix unary operator expression (`-x`, `not x`,
// `x++`, `x--` when the operand is not a simple/field lvalue handled by
// VarOpAssign/FieldOpAssign -- e.g. unary `-`, `+`, `~`, `not`).
type Unary struct {
	exprBase
	Operator  string
	Operand   Expr
	IsPostfix bool
}

func (*Unary) exprNode() {}

func NewUnary(tok token.Token, op string, operand Expr, postfix bool) *Unary {
	return &Unary{exprBase: NewExprBase(tok), Operator: op, Operand: operand, IsPostfix: postfix}
}

// Cast is an explicit `(Type) expr` cast.
type Cast struct {
	exprBase
	TargetType Type
	X          Expr
}

func (*Cast) exprNode() {}

// RegexMatch is `expr =~ /pattern/mods` (spec §4.1 disambiguation rule 3/4).
type RegexMatch struct {
	exprBase
	Target   Expr
	Pattern  Expr // usually a string literal, but may be interpolated
	Modifiers string
	IsNegated bool // `!~`
}

func (*RegexMatch) exprNode() {}

// RegexSubst is `expr =~ s/pattern/replacement/mods`. Without modifier `r`
// it mutates Target in place via an implicit assignment back to Target
// (spec §4.1 rule 4); with `r` it produces a new string value instead.
type RegexSubst struct {
	exprBase
	Target      Expr
	Pattern     Expr
	Replacement Expr
	Modifiers   string
	IsNonDestructive bool // `r` modifier present
}

func (*RegexSubst) exprNode() {}
