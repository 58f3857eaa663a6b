package ast

import "github.com/jactl-go/jactlc/pkg/token"

// This file implements the call/closure/control-flow and
// resolver-synthesized Expr variants enumerated in spec §3.3.

// NamedArg is one `name: value` argument in a call (spec §4.2 "Wrapper
// functions", named-arguments detection).
type NamedArg struct {
	Name  string
	Value Expr
}

// Call is a direct function call `f(args)`; method calls go through
// MethodCall instead so the receiver is explicit.
type Call struct {
	exprBase
	Callee    Expr
	Args      []Expr
	NamedArgs []NamedArg
	// ResolvedFunc is filled in by the resolver when the callee resolves to
	// a known function/wrapper descriptor.
	ResolvedFunc *FunctionDescriptor
}

func (*Call) exprNode() {}

func NewCall(tok token.Token, callee Expr) *Call {
	c := &Call{exprBase: NewExprBase(tok), Callee: callee}
	callee.SetIsCallee(true)
	return c
}

// MethodCall is `receiver.method(args)`, including the trailing-closure
// form (`list.each { ... }`, spec §4.1 disambiguation rule 1).
type MethodCall struct {
	exprBase
	Receiver     Expr
	MethodName   string
	Args         []Expr
	NamedArgs    []NamedArg
	ResolvedFunc *FunctionDescriptor
}

func (*MethodCall) exprNode() {}

func NewMethodCall(tok token.Token, receiver Expr, methodName string) *MethodCall {
	return &MethodCall{exprBase: NewExprBase(tok), Receiver: receiver, MethodName: methodName}
}

// Closure is a `{ params -> body }` or implicit-`it` brace-block closure
// (spec §3.3 "closure"; §4.1 "Implicit-it"). FunDecl holds the synthesized
// function declaration (parameters, body, descriptor); Closure itself is
// the *expression* producing a callable value from it.
type Closure struct {
	exprBase
	FunDecl *FunDecl
}

func (*Closure) exprNode() {}

func NewClosure(tok token.Token, fd *FunDecl) *Closure {
	fd.IsClosure = true
	return &Closure{exprBase: NewExprBase(tok), FunDecl: fd}
}

// FunDeclExpr wraps a named nested function declaration used in expression
// position (e.g. as a parameter default's initialiser referencing a sibling
// function value).
type FunDeclExpr struct {
	exprBase
	FunDecl *FunDecl
}

func (*FunDeclExpr) exprNode() {}

// NewInstance is `new ClassName(args)`.
type NewInstance struct {
	exprBase
	ClassName string
	Descriptor *ClassDescriptor
	Args      []Expr
	NamedArgs []NamedArg
}

func (*NewInstance) exprNode() {}

// TypeExpr is a type used in expression position (e.g. as the right operand
// of `as`/`instanceof`, or a class literal).
type TypeExpr struct {
	exprBase
	ResolvedType Type
}

func (*TypeExpr) exprNode() {}

// BlockExpr is a closure/switch-case body used as an expression, producing
// the value of its last statement (spec §4.1: "a trailing closure body with
// no declared parameters is treated as a block expression").
type BlockExpr struct {
	exprBase
	Body *Block
}

func (*BlockExpr) exprNode() {}

// BreakExpr / ContinueExpr support an optional label, matching the `for`/
// `while`/`do` labeled-loop grammar (spec §4.1).
type BreakExpr struct {
	exprBase
	Label string
}

func (*BreakExpr) exprNode() {}

type ContinueExpr struct {
	exprBase
	Label string
}

func (*ContinueExpr) exprNode() {}

// ReturnExpr is `return expr` used in expression position (e.g. inside a
// ternary branch); statement-position returns use the Return Stmt instead.
type ReturnExpr struct {
	exprBase
	X Expr
}

func (*ReturnExpr) exprNode() {}

// PrintExpr models `print`, `println` and `die`, which are expression-like
// keywords in this grammar rather than ordinary calls (spec §3.3).
type PrintExpr struct {
	exprBase
	Kind string // "print" | "println" | "die"
	X    Expr
}

func (*PrintExpr) exprNode() {}

// EvalExpr is `eval(expr)`; eval is always an async source (spec §4.2
// "Async propagation").
type EvalExpr struct {
	exprBase
	Source Expr
}

func (*EvalExpr) exprNode() {}

// SwitchCase is one `pattern, pattern -> body` arm of a Switch.
type SwitchCase struct {
	Patterns []Expr // constructor-pattern or literal patterns; nil/empty for default
	IsDefault bool
	Body     Expr // a BlockExpr or a single expression
}

// Switch is `switch (subject) { case -> body; ... }` (spec §8 scenario S5).
type Switch struct {
	exprBase
	Subject Expr
	Cases   []SwitchCase
}

func (*Switch) exprNode() {}

// ConstructorPattern is a switch-case pattern like `Point(x, y)` that both
// type-tests the subject and destructures its fields into new bindings.
type ConstructorPattern struct {
	exprBase
	ClassName string
	Descriptor *ClassDescriptor
	FieldVars []string
}

func (*ConstructorPattern) exprNode() {}

// SpecialVar is a builtin pseudo-variable reference: `$@` (regex capture
// array backing `$1..$n`), `__SOURCE__`, `__OFFSET__` (spec §4.2 "Symbol
// lookup": "The special name $@ backs all $1..$n regex-capture
// references").
type SpecialVar struct {
	exprBase
	Name string
}

func (*SpecialVar) exprNode() {}

// --- Resolver-synthesized expression variants -----------------------------
//
// The remaining variants are never written in source. ConvertTo,
// LoadParamValue and InvokeUtility are inserted by the resolver's wrapper
// and init-method synthesis; Noop is inserted by the parser's lvalue
// rewriting; no pass in this repository creates InvokeInit or CheckCast.

// ConvertTo wraps a value expression with an explicit runtime conversion to
// a target type, e.g. inserted by the wrapper synthesis step (spec §4.2
// "Wrapper functions", step 5: "Convert values into parameter types").
type ConvertTo struct {
	exprBase
	TargetType Type
	X          Expr
}

func (*ConvertTo) exprNode() {}

func NewConvertTo(tok token.Token, target Type, x Expr) *ConvertTo {
	c := &ConvertTo{exprBase: NewExprBase(tok), TargetType: target, X: x}
	c.SetType(target)
	return c
}

// LoadParamValue reads one positional/named argument out of the wrapper's
// untyped `(source_id, offset, args []any)` triple while synthesizing a
// wrapper body (spec §4.2 "Wrapper functions").
type LoadParamValue struct {
	exprBase
	Param   *VarDecl
	IsNamed bool
}

func (*LoadParamValue) exprNode() {}

func NewLoadParamValue(tok token.Token, param *VarDecl, isNamed bool) *LoadParamValue {
	return &LoadParamValue{exprBase: NewExprBase(tok), Param: param, IsNamed: isNamed}
}

// InvokeUtility calls a runtime-library helper by name (e.g.
// "copyIfNamedArgs", "checkMandatoryArgs") rather than a user function -- the bridge to the external
// runtime contract (spec §6.2).
type InvokeUtility struct {
	exprBase
	UtilityName string
	Args        []Expr
}

func (*InvokeUtility) exprNode() {}

func NewInvokeUtility(tok token.Token, utilityName string, args ...Expr) *InvokeUtility {
	return &InvokeUtility{exprBase: NewExprBase(tok), UtilityName: utilityName, Args: args}
}

// InvokeInit calls a class's synthesized init method, or with UseWrapper
// its init wrapper (spec §4.2 "Init method for classes").
type InvokeInit struct {
	exprBase
	Descriptor *ClassDescriptor
	UseWrapper bool // true selects InitWrapper (single-map-argument form)
	Args       []Expr
}

func (*InvokeInit) exprNode() {}

func NewInvokeInit(tok token.Token, desc *ClassDescriptor, useWrapper bool, args ...Expr) *InvokeInit {
	return &InvokeInit{exprBase: NewExprBase(tok), Descriptor: desc, UseWrapper: useWrapper, Args: args}
}

// CheckCast is a runtime type check, distinct from the user-written Cast
// node, e.g. verifying a named-args map value actually
// matches a parameter's declared type before binding it.
type CheckCast struct {
	exprBase
	TargetType Type
	X          Expr
}

func (*CheckCast) exprNode() {}

func NewCheckCast(tok token.Token, targetType Type, x Expr) *CheckCast {
	return &CheckCast{exprBase: NewExprBase(tok), TargetType: targetType, X: x}
}

// Noop is the lvalue-rewrite placeholder described in spec §4.1: it stands
// in for "the old value at this point in the field path" inside the
// synthesized Binary expression carried by FieldOpAssign/VarOpAssign, so
// the codegen can substitute the actual runtime-read value exactly once.
type Noop struct {
	exprBase
}

func (*Noop) exprNode() {}

func NewNoop(tok token.Token) *Noop { return &Noop{exprBase: NewExprBase(tok)} }
