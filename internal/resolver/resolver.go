// Package resolver implements spec.md Component F (spec §1: "the
// repository's hardest engineering"): the pass that walks the parser's
// unresolved AST and turns it into the fully-annotated tree spec §6.3's
// Resolved-AST contract describes. It is grounded on the teacher's
// internal/semantic analyzer (_examples/CWBudde-go-dws/internal/semantic):
// the same scope-chain symbol table shape (symbol_table.go), the same
// "one struct walking the tree with per-construct-kind helper files"
// organisation (analyzer.go plus the many analyze_*.go files), and the
// same structured-diagnostic style (errors.go), re-expressed for this
// grammar's dynamic, case-sensitive semantics rather than DWScript's
// static, case-insensitive ones -- in particular, DefineOverload-style
// signature matching and the teacher's strings.ToLower name normalization
// are both dropped, since this language has neither function overloading
// nor case-insensitive identifiers.
package resolver

import (
	"github.com/jactl-go/jactlc/internal/context"
	cerrors "github.com/jactl-go/jactlc/internal/errors"
	"github.com/jactl-go/jactlc/internal/runtimeiface"
	"github.com/jactl-go/jactlc/pkg/ast"
)

// funcCtx is one function's resolution context: its own block-scope chain
// (topScope), a link to the lexically enclosing function (for the symbol
// lookup order spec §4.2 describes), and the class context a method body
// resolves against.
type funcCtx struct {
	parent *funcCtx

	decl     *ast.FunDecl
	topScope *Scope

	// classDesc/isStatic let identifier/this-field lookup fall through to
	// class members (spec §4.2 "Symbol lookup": "... then class members
	// with inheritance").
	classDesc *ast.ClassDescriptor
	isStatic  bool

	// resolvingParams is true while walking this function's own parameter
	// list, so a closure appearing in a later parameter's default
	// initialiser that captures an earlier parameter of the *same*
	// function can mark that parameter is_passed_as_heap_local (spec
	// §4.2 "Parameter closure in default initialisers").
	resolvingParams bool

	// loopDepth supports break/continue validation inside loop bodies.
	loopDepth int
}

// Resolver performs spec §4.2's resolution pass over one compilation unit
// (a script's synthesized main function, or a single top-level class).
// It is not safe for concurrent or repeated use -- one Resolver resolves
// one unit, mirroring the teacher's one-Analyzer-per-file discipline.
type Resolver struct {
	arena *ast.VarDeclArena
	ctx   *context.Context

	builtins runtimeiface.BuiltinRegistry
	coerce   runtimeiface.ValueCoercion

	source, file string
	errs         cerrors.List

	funcs []*funcCtx // stack; last element is the function currently being resolved

	// localClasses holds every class declared in the current compilation
	// unit (as opposed to looked up through ctx's cross-unit registry),
	// keyed by simple name (spec §4.2 "Symbol lookup": "... then local
	// classes").
	localClasses map[string]*ast.ClassDescriptor

	// allFuncs accumulates every FunctionDescriptor resolved in this unit,
	// and callGraph which FunctionDescriptors each one calls, both
	// consumed by the async fixed-point pass (async.go).
	allFuncs  []*ast.FunctionDescriptor
	callGraph map[*ast.FunctionDescriptor]map[*ast.FunctionDescriptor]bool

	// script is true while resolving a script's synthesized main function,
	// gating the globals-fallback lookup tier (spec §4.2 "Symbol lookup":
	// "... then globals, if currently resolving a script").
	script bool

	// implicitItClosures accumulates every ImplicitIt closure FunDecl
	// resolved in this unit, swept once resolution finishes to strip the
	// `it` parameter from any that were never invoked (spec §8 property 9).
	implicitItClosures []*ast.FunDecl
}

// New creates a Resolver. builtins/coerce are the runtime-provided facts
// the resolver consumes without computing itself (spec §1, §6.2); ctx is
// the shared compilation context (class registry, flags, REPL globals).
func New(arena *ast.VarDeclArena, ctx *context.Context, builtins runtimeiface.BuiltinRegistry, coerce runtimeiface.ValueCoercion, source, file string) *Resolver {
	return &Resolver{
		arena:        arena,
		ctx:          ctx,
		builtins:     builtins,
		coerce:       coerce,
		source:       source,
		file:         file,
		localClasses: make(map[string]*ast.ClassDescriptor),
		callGraph:    make(map[*ast.FunctionDescriptor]map[*ast.FunctionDescriptor]bool),
	}
}

// Errors returns every diagnostic accumulated while resolving.
func (r *Resolver) Errors() *cerrors.List { return &r.errs }

// currentFunc returns the function currently being resolved, or nil at the
// top of the stack.
func (r *Resolver) currentFunc() *funcCtx {
	if len(r.funcs) == 0 {
		return nil
	}
	return r.funcs[len(r.funcs)-1]
}

// pushFunc enters a new function's resolution context.
func (r *Resolver) pushFunc(fc *funcCtx) {
	fc.parent = r.currentFunc()
	r.funcs = append(r.funcs, fc)
}

// popFunc leaves the innermost function's resolution context.
func (r *Resolver) popFunc() { r.funcs = r.funcs[:len(r.funcs)-1] }

// enterBlockScope pushes a new lexical scope onto the current function's
// scope chain and returns a closer to restore the previous scope; callers
// use `defer r.enterBlockScope()()`.
func (r *Resolver) enterBlockScope() func() {
	fc := r.currentFunc()
	prev := fc.topScope
	fc.topScope = newScope(prev)
	return func() { fc.topScope = prev }
}

// ResolveScript resolves the synthesized script-main FunDecl produced by
// parser.ParseScript/ParseScriptOrClass (spec §4.2's top-level entry
// point). It fully populates the resolved-AST contract (spec §6.3) for
// every node reachable from main.
func (r *Resolver) ResolveScript(main *ast.FunDecl) {
	r.script = true
	r.resolveFunDecl(main, nil, false)
	r.propagateAsync()
	r.stripUnusedImplicitItClosures()
	r.script = false
}

// ResolveClass resolves a single top-level class declaration (spec §4.2's
// class pass plus §4.2's init-method/wrapper synthesis for every method).
func (r *Resolver) ResolveClass(decl *ast.ClassDecl) {
	r.resolveClassDecl(decl)
	r.propagateAsync()
	r.stripUnusedImplicitItClosures()
}
