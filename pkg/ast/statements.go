package ast

import "github.com/jactl-go/jactlc/pkg/token"

// This file implements the Stmt variants enumerated in spec §3.3.

// ClassDecl declares a class (and, for the script's own synthesized
// top-level "class", the script itself is NOT a ClassDecl -- see FunDecl's
// doc comment on the synthesized script-main function).
type ClassDecl struct {
	stmtBase
	Name        string
	// BaseClassName/InterfaceNames are the dotted names as written by the
	// parser; the resolver's class pass looks them up in the class registry
	// and fills Descriptor.Base/Interfaces (spec §4.2 "Class resolution").
	BaseClassName  string
	InterfaceNames []string
	PackageName string
	Imports     []*Import
	Descriptor  *ClassDescriptor
	Fields      []*FieldDecl
	Methods     []*FunDecl
	InnerClasses []*ClassDecl
}

// FieldDecl is one `type name = init` field declaration inside a ClassDecl.
type FieldDecl struct {
	stmtBase
	Name        string
	DeclaredType Type
	Initialiser Expr
	VarDecl     *VarDecl
}

// Import declares an external class import (spec §1: "Host-language class
// import mechanism -- only its lookup contract is consumed").
type Import struct {
	stmtBase
	PackagePath string
	ClassName   string
	Alias       string
}

// FunDecl declares a function, closure, or class method.
//
// The top-level script body is parsed as the body of a synthesized
// "script main" FunDecl taking a single `globals map<string,any>` parameter
// (spec §4.1, parse_script).
type FunDecl struct {
	stmtBase
	Name        string
	Params      []*Param
	ReturnType  Type
	Body        Stmt // always a *Block after parsing
	Descriptor  *FunctionDescriptor
	IsClosure   bool
	// ImplicitIt is true for a brace-block-as-statement closure before the
	// resolver has determined whether the closure is invoked; the
	// resolver clears this (and strips the parameter) when the block turns
	// out never to be invoked (spec §4.1 "Implicit-it").
	ImplicitIt bool
	// WrapperDecl is the resolver-synthesized paired wrapper's own FunDecl
	// (spec §4.2 "Wrapper functions"), set once resolveFunDecl has run.
	// Descriptor.Wrapper is the companion FunctionDescriptor; this is the
	// AST node a code generator walks to emit the wrapper's body.
	WrapperDecl *FunDecl
	// Invoked tracks, for an ImplicitIt closure only, whether the resolver
	// has seen it called anywhere in the unit (spec §8 property 9). It is
	// meaningless once ImplicitIt has been cleared.
	Invoked bool
}

// Param is one formal parameter in a FunDecl's parameter list.
type Param struct {
	Name         string
	DeclaredType Type
	Default      Expr // nil if mandatory
	VarDecl      *VarDecl
}

// StmtList is a bare sequence of statements with no new lexical scope (spec
// §3.3 "Stmts (sequence)"), as distinct from Block which does introduce one.
type StmtList struct {
	stmtBase
	Stmts []Stmt
}

// Block is a lexical scope containing a sequence of statements (spec §3.3
// "Block (lexical scope)").
type Block struct {
	stmtBase
	Stmts []Stmt
	// IsFunctionBody is true when this block is a FunDecl's own body, which
	// matters for the implicit-return rewrite (spec §4.2) and for where
	// heap-local parameter promotion is injected (spec §4.2, "Parameter
	// closure in default initialisers").
	IsFunctionBody bool
}

// VarDeclStmt declares one or more local variables (spec §3.3 "VarDecl").
// Multiple comma-separated declarations with a shared declared type parse
// to multiple VarDeclStmt nodes wrapped in a StmtList (mirrors the teacher's
// isVarDeclBlock unwrapping in ParseProgram).
type VarDeclStmt struct {
	stmtBase
	Name         string
	DeclaredType Type // types.Unknown if inferred from Initialiser
	Initialiser  Expr
	VarDecl      *VarDecl
	IsFinal      bool
}

// ExprStmt wraps an expression used in statement position, optionally
// guarded by a trailing `if`/`unless` modifier (spec §4.1).
type ExprStmt struct {
	stmtBase
	X         Expr
	Guard     Expr // non-nil for `stmt if cond` / `stmt unless cond`
	GuardIsUnless bool
}

// Return is an explicit `return expr` statement, or the implicit return the
// resolver injects at the end of every function body (spec §4.2 "Implicit
// returns").
type Return struct {
	stmtBase
	X        Expr // nil for a bare `return` (implicit null-returning case)
	Implicit bool
}

// If is an if/else statement.
type If struct {
	stmtBase
	Cond Expr
	Then Stmt
	Else Stmt // nil if no else branch
}

// While hosts both `while` and the desugared `for` loop (spec §3.3: "While
// (also hosts for)"). A C-style for loop is represented as Init/Update plus
// a While; a for-in loop is represented via ForEach below, which this type
// also models as a specialization selected by IsForEach.
type While struct {
	stmtBase
	Label     string // "" if unlabeled
	Init      Stmt   // for-loop init statement, nil for plain while/until
	Cond      Expr
	Update    Expr // for-loop update expression, nil for plain while/until
	Body      Stmt
	IsUntil   bool // `do ... until cond` post-test loop
	IsForEach bool
	ForEachVar string // the loop variable name when IsForEach
	ForEachIterable Expr
}

// ThrowError is a `throw` statement.
type ThrowError struct {
	stmtBase
	X Expr
}

// Marker methods satisfying Stmt for every variant above.
func (*ClassDecl) stmtNode()  {}
func (*FieldDecl) stmtNode()  {}
func (*Import) stmtNode()    {}
func (*FunDecl) stmtNode()    {}
func (*StmtList) stmtNode()   {}
func (*Block) stmtNode()      {}
func (*VarDeclStmt) stmtNode() {}
func (*ExprStmt) stmtNode()   {}
func (*Return) stmtNode()     {}
func (*If) stmtNode()         {}
func (*While) stmtNode()      {}
func (*ThrowError) stmtNode() {}

// Constructors. Each sets the node's source token (spec §3.3: "every node
// carries a source Token for diagnostics").

func NewClassDecl(tok token.Token, name string) *ClassDecl {
	return &ClassDecl{stmtBase: NewStmtBase(tok), Name: name}
}

func NewFunDecl(tok token.Token, name string) *FunDecl {
	return &FunDecl{stmtBase: NewStmtBase(tok), Name: name}
}

func NewBlock(tok token.Token) *Block {
	return &Block{stmtBase: NewStmtBase(tok)}
}

func NewStmtList(tok token.Token) *StmtList {
	return &StmtList{stmtBase: NewStmtBase(tok)}
}

func NewVarDeclStmt(tok token.Token, name string, declared Type) *VarDeclStmt {
	return &VarDeclStmt{stmtBase: NewStmtBase(tok), Name: name, DeclaredType: declared}
}

func NewExprStmt(tok token.Token, x Expr) *ExprStmt {
	return &ExprStmt{stmtBase: NewStmtBase(tok), X: x}
}

func NewReturn(tok token.Token, x Expr) *Return {
	return &Return{stmtBase: NewStmtBase(tok), X: x}
}

func NewIf(tok token.Token, cond Expr, then, els Stmt) *If {
	return &If{stmtBase: NewStmtBase(tok), Cond: cond, Then: then, Else: els}
}

func NewWhile(tok token.Token) *While {
	return &While{stmtBase: NewStmtBase(tok)}
}

func NewThrowError(tok token.Token, x Expr) *ThrowError {
	return &ThrowError{stmtBase: NewStmtBase(tok), X: x}
}
