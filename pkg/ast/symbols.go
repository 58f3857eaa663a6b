package ast

import (
	"github.com/jactl-go/jactlc/pkg/token"
	"github.com/jactl-go/jactlc/pkg/types"
)

// This file implements the three descriptor kinds spec §3.4-§3.6 describe as
// part of the core data model: ClassDescriptor, FunctionDescriptor and the
// VarDecl symbol. They are resolver-owned (created during resolving for
// source-declared variables, synthesized wrapper parameters and heap-local
// copies; the parser allocates only the script main's `globals` parameter)
// but live in this package
// because AST declaration nodes (FunDecl, ClassDecl, VarDeclStmt) hold
// direct references to them.
//
// Per spec §5 ("AST ownership"), a heap-local's parent_var_decl chain is
// expressed as an index into an arena rather than as an owning pointer, so
// that the arena can be serialized/walked without the aliasing concerns a
// cyclic or doubly-linked pointer graph would introduce.

// VarDeclID indexes into a VarDeclArena. The sentinel NoVarDecl (-1) means
// "no such declaration".
type VarDeclID int

// NoVarDecl is the sentinel "absent" VarDeclID.
const NoVarDecl VarDeclID = -1

// VarDecl is the symbol spec §3.6 describes: a named binding's full
// lifecycle state, from its declaring token through heap-local promotion.
type VarDecl struct {
	id VarDeclID

	NameToken    token.Token
	Name         string
	DeclaredType Type
	Owner        *FunctionDescriptor

	// Slot is assigned later by the (external) code generator; the resolver
	// only tracks it for parameters, to keep wrapper argument-binding order
	// stable.
	Slot int

	IsParam             bool
	IsExplicitParam     bool
	IsField             bool
	IsGlobal            bool
	IsHeapLocal         bool
	IsPassedAsHeapLocal bool
	IsFinal             bool

	NestingLevel int

	// ParentVarDecl is this VarDecl's predecessor in a heap-local promotion
	// chain (see resolver's closure-capture algorithm): NoVarDecl if this is
	// the original declaration, or the arena index of the copy one function
	// level further out otherwise.
	ParentVarDecl VarDeclID
	// OriginalVarDecl is the arena index of the declaration that introduced
	// the binding in source, i.e. the head of the ParentVarDecl chain.
	OriginalVarDecl VarDeclID

	Initialiser Expr

	// FunDecl is set when this VarDecl names a nested function declaration
	// bound as a value (spec §3.6: "optional bound fun_decl").
	FunDecl *FunDecl
}

// ID returns this declaration's arena index.
func (v *VarDecl) ID() VarDeclID { return v.id }

// VarDeclArena owns every VarDecl created while parsing/resolving one
// compilation unit. Cross-references between VarDecls (ParentVarDecl,
// OriginalVarDecl) are indices into this arena rather than pointers, per
// spec §5.
type VarDeclArena struct {
	decls []*VarDecl
}

// NewVarDeclArena creates an empty arena.
func NewVarDeclArena() *VarDeclArena { return &VarDeclArena{} }

// New allocates a VarDecl in the arena and returns it along with its ID.
// ParentVarDecl defaults to NoVarDecl and OriginalVarDecl to the new
// declaration's own ID.
func (a *VarDeclArena) New(tok token.Token, name string, declared Type) *VarDecl {
	v := &VarDecl{
		id:              VarDeclID(len(a.decls)),
		NameToken:       tok,
		Name:            name,
		DeclaredType:    declared,
		ParentVarDecl:   NoVarDecl,
		OriginalVarDecl: NoVarDecl,
	}
	a.decls = append(a.decls, v)
	v.OriginalVarDecl = v.id
	return v
}

// Get resolves an arena index back to its VarDecl, or nil if id is
// NoVarDecl or out of range.
func (a *VarDeclArena) Get(id VarDeclID) *VarDecl {
	if id == NoVarDecl || int(id) < 0 || int(id) >= len(a.decls) {
		return nil
	}
	return a.decls[id]
}

// All returns every VarDecl allocated so far, in allocation order.
func (a *VarDeclArena) All() []*VarDecl { return a.decls }

// FieldInfo describes one declared field of a class (spec §3.4: "declared
// fields (ordered map of name -> type, with mandatoriness)").
type FieldInfo struct {
	Name      string
	Type      Type
	Mandatory bool
	Default   Expr
}

// ClassDescriptor is the class metadata spec §3.4 describes.
type ClassDescriptor struct {
	SimpleName   string
	Packaged     string
	Base         *ClassDescriptor
	Interfaces   []*ClassDescriptor
	FieldOrder   []string // preserves declaration order for FieldsByName
	FieldsByName map[string]*FieldInfo
	Methods      map[string]*FunctionDescriptor
	InnerClasses map[string]*ClassDescriptor

	InitMethod  *FunctionDescriptor
	InitWrapper *FunctionDescriptor

	IsInterface bool
}

// NewClassDescriptor creates an empty class descriptor ready to be filled in
// by the resolver's class pass.
func NewClassDescriptor(simpleName, packagedName string) *ClassDescriptor {
	return &ClassDescriptor{
		SimpleName:   simpleName,
		Packaged:     packagedName,
		FieldsByName: make(map[string]*FieldInfo),
		Methods:      make(map[string]*FunctionDescriptor),
		InnerClasses: make(map[string]*ClassDescriptor),
	}
}

// PackagedName implements types.ClassDescriptor.
func (c *ClassDescriptor) PackagedName() string { return c.Packaged }

// IsSubclassOf implements types.ClassDescriptor, walking the base-class
// chain. A class is considered a subclass of itself.
func (c *ClassDescriptor) IsSubclassOf(other types.ClassDescriptor) bool {
	for cur := c; cur != nil; cur = cur.Base {
		if cur.Packaged == other.PackagedName() {
			return true
		}
		for _, iface := range cur.Interfaces {
			if iface.Packaged == other.PackagedName() {
				return true
			}
		}
	}
	return false
}

// AddField appends a field in declaration order, enforcing spec §3.4's
// invariant that field names are unique within the class.
func (c *ClassDescriptor) AddField(info *FieldInfo) bool {
	if _, exists := c.FieldsByName[info.Name]; exists {
		return false
	}
	c.FieldsByName[info.Name] = info
	c.FieldOrder = append(c.FieldOrder, info.Name)
	return true
}

// MandatoryFields returns the fields (in declaration order) that have no
// default initialiser, which is exactly the parameter list the resolver
// synthesizes for the class's init method (spec §4.2 "Init method for
// classes").
func (c *ClassDescriptor) MandatoryFields() []*FieldInfo {
	var out []*FieldInfo
	for _, name := range c.FieldOrder {
		f := c.FieldsByName[name]
		if f.Mandatory {
			out = append(out, f)
		}
	}
	return out
}

// ExtendsCycle reports whether walking this class's base chain revisits a
// class already seen, i.e. a circular `extends` (spec §3.4 invariant; also
// exercised by spec.md §9's "circular class graph" design note).
func (c *ClassDescriptor) ExtendsCycle() bool {
	seen := map[*ClassDescriptor]bool{}
	for cur := c; cur != nil; cur = cur.Base {
		if seen[cur] {
			return true
		}
		seen[cur] = true
	}
	return false
}

// FunctionDescriptor is the function metadata spec §3.5 describes: shared
// by top-level functions, closures and class methods (including the
// synthesized init method and every function's paired wrapper).
type FunctionDescriptor struct {
	Name       string
	ReturnType Type

	ParamNames []string
	ParamTypes []Type
	// Params holds the full VarDecl for each parameter (arena indices), so
	// the resolver can find default initialisers and heap-local promotion
	// state without a second lookup.
	Params []VarDeclID

	MandatoryCount int
	MandatorySet   map[string]bool

	IsStatic     bool
	IsFinal      bool
	IsInitMethod bool
	IsWrapper    bool
	IsAsync      bool

	ImplementingClassName string
	ImplementingMethod    string

	// WrapperMethod names the paired wrapper when this descriptor is the
	// "real" function; Wrapper holds the actual descriptor once synthesized
	// (spec §3.5 invariant: "every user function has exactly one paired
	// wrapper").
	WrapperMethod string
	Wrapper       *FunctionDescriptor

	NeedsLocation bool

	// HeapLocalsByName records, for this function, the implicit heap-local
	// parameters threaded in because a nested function closes over an
	// outer variable (spec testable property 4). Keyed by the captured
	// variable's original name.
	HeapLocalsByName map[string]VarDeclID
}

// NewFunctionDescriptor creates a function descriptor with its maps
// initialized.
func NewFunctionDescriptor(name string) *FunctionDescriptor {
	return &FunctionDescriptor{
		Name:             name,
		MandatorySet:     make(map[string]bool),
		HeapLocalsByName: make(map[string]VarDeclID),
	}
}

// decorate computes the deterministic wrapper method name for a given
// implementing method name, per spec §3.5's invariant that
// implementing_method of the wrapper equals "a deterministic decoration of
// the inner method's name".
func decorate(methodName string) string { return methodName + "$wrapper" }

// WrapperMethodName returns the deterministic wrapper name for this
// function's implementing method, independent of whether the wrapper has
// been synthesized yet.
func (f *FunctionDescriptor) WrapperMethodName() string { return decorate(f.ImplementingMethod) }
