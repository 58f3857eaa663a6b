// Package ast defines the abstract syntax tree produced by the parser and
// filled in by the resolver (spec §3.3): two sum types, Stmt and Expr, plus
// the class/function/variable descriptors (spec §3.4-§3.6) that the
// resolver attaches to declaration nodes.
//
// Go has no sum types, so each variant is its own struct implementing a
// small marker interface (stmtNode/exprNode); exhaustiveness over variants
// is achieved with a type switch in the resolver, mirroring the "visitor
// pattern -> sum types + pattern matching" design note (spec §9).
package ast

import (
	"github.com/jactl-go/jactlc/pkg/token"
	"github.com/jactl-go/jactlc/pkg/types"
)

// Type is a local alias for the resolver's type lattice, so expression and
// declaration nodes in this package can reference it without every caller
// needing to import pkg/types directly.
type Type = types.Type

// Node is the common capability of every AST node: it carries the source
// token used for diagnostics, and tracks whether the resolver has finished
// with it.
type Node interface {
	Token() token.Token
	Resolved() bool
	SetResolved(bool)
}

// Stmt is implemented by every statement variant (spec §3.3).
type Stmt interface {
	Node
	stmtNode()
}

// Expr is implemented by every expression variant (spec §3.3). In addition
// to Node, every expression carries mutable type/constant-folding
// annotations that the resolver fills in.
type Expr interface {
	Node
	exprNode()

	Type() Type
	SetType(Type)

	ConstValue() (any, bool)
	SetConstValue(any)

	IsConst() bool
	SetIsConst(bool)

	CouldBeNull() bool
	SetCouldBeNull(bool)

	IsResultUsed() bool
	SetIsResultUsed(bool)

	IsCallee() bool
	SetIsCallee(bool)
}

// base is embedded by every Stmt and Expr to provide the Node contract.
type base struct {
	tok      token.Token
	resolved bool
}

func (b *base) Token() token.Token   { return b.tok }
func (b *base) Resolved() bool       { return b.resolved }
func (b *base) SetResolved(r bool)   { b.resolved = r }

// NewBase constructs the embeddable Node state for a new AST node. Every
// node constructor in this package calls it so the source token is never
// forgotten (spec §4.2's diagnostic promise: "every error points at a
// token").
func NewBase(tok token.Token) base { return base{tok: tok} }

// exprBase is embedded by every expression variant; it adds the mutable
// annotation fields the resolver is responsible for filling in.
type exprBase struct {
	base
	typ          Type
	constValue   any
	hasConst     bool
	isConst      bool
	couldBeNull  bool
	isResultUsed bool
	isCallee     bool
}

func (e *exprBase) exprNode() {}

func (e *exprBase) Type() Type     { return e.typ }
func (e *exprBase) SetType(t Type) { e.typ = t }

func (e *exprBase) ConstValue() (any, bool) { return e.constValue, e.hasConst }
func (e *exprBase) SetConstValue(v any) {
	e.constValue = v
	e.hasConst = true
}

func (e *exprBase) IsConst() bool     { return e.isConst }
func (e *exprBase) SetIsConst(b bool) { e.isConst = b }

func (e *exprBase) CouldBeNull() bool     { return e.couldBeNull }
func (e *exprBase) SetCouldBeNull(b bool) { e.couldBeNull = b }

func (e *exprBase) IsResultUsed() bool     { return e.isResultUsed }
func (e *exprBase) SetIsResultUsed(b bool) { e.isResultUsed = b }

func (e *exprBase) IsCallee() bool     { return e.isCallee }
func (e *exprBase) SetIsCallee(b bool) { e.isCallee = b }

// NewExprBase constructs the embeddable Expr state for a new expression
// node.
func NewExprBase(tok token.Token) exprBase { return exprBase{base: NewBase(tok)} }

// stmtBase is an alias of base kept distinct for readability at call sites;
// every statement variant embeds it directly.
type stmtBase struct {
	base
}

func (s *stmtBase) stmtNode() {}

// NewStmtBase constructs the embeddable Stmt state for a new statement node.
func NewStmtBase(tok token.Token) stmtBase { return stmtBase{base: NewBase(tok)} }
