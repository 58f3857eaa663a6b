package resolver

import "github.com/jactl-go/jactlc/pkg/ast"

// Scope is one lexical block's symbol table (spec §4.2 "Symbol lookup":
// "walking blocks from innermost to outermost within the current
// function"). Declaration and definition are tracked separately per
// variable so the "declare sentinel, resolve initialiser, define" protocol
// (spec §4.2 "Variable declaration protocol") can detect both plain
// self-reference (`int x = x + 1`) and cross-statement forward references
// that close over a not-yet-defined sibling (spec §4.2, scenario S3).
type Scope struct {
	parent *Scope

	vars    map[string]*ast.VarDecl
	defined map[string]bool

	// forwardNames records every name a VarDeclStmt anywhere in this block
	// will eventually declare, keyed to its statement index, gathered by a
	// pre-scan before the block is walked in order. It lets forward
	// references (reached through an eagerly-resolved sibling function
	// call) distinguish "not declared anywhere in this block" from "declared
	// later in this block, not yet defined".
	forwardNames map[string]int
	// scanIndex is how far resolveBlock has linearly progressed through the
	// block's statements; names whose forwardNames index is >= scanIndex
	// have not been defined yet.
	scanIndex int

	// siblingFuncs holds the same-block FunDecl statements, pre-declared by
	// name so forward calls between siblings type-check (spec §4.2:
	// "forward references to sibling functions (same block) are legal"),
	// resolved either in source order or eagerly the first time another
	// sibling calls them.
	siblingFuncs map[string]*siblingFunc
}

type siblingFunc struct {
	decl      *ast.FunDecl
	resolved  bool
	resolving bool // recursion guard for mutual recursion
	index     int
}

func newScope(parent *Scope) *Scope {
	return &Scope{
		parent:  parent,
		vars:    make(map[string]*ast.VarDecl),
		defined: make(map[string]bool),
	}
}

// declare enters name as a sentinel binding (spec: "declare the name
// (sentinel 'undefined')"). Returns false if name is already declared in
// this exact scope (duplicate declaration, spec §7 "Structural" errors).
func (s *Scope) declare(name string, vd *ast.VarDecl) bool {
	if _, exists := s.vars[name]; exists {
		return false
	}
	s.vars[name] = vd
	s.defined[name] = false
	return true
}

// define marks name as fully resolved, replacing the sentinel state.
func (s *Scope) define(name string) { s.defined[name] = true }

// lookupLocal looks up name in this scope only (no parent walk), returning
// whether it is declared and whether it is already defined.
func (s *Scope) lookupLocal(name string) (vd *ast.VarDecl, defined, found bool) {
	vd, found = s.vars[name]
	if !found {
		return nil, false, false
	}
	return vd, s.defined[name], true
}

// lookupChain walks this scope and its parents (stopping at a function
// boundary, which the caller enforces by not crossing funcCtx boundaries
// when constructing the Scope chain it passes in).
func lookupChain(s *Scope, name string) (vd *ast.VarDecl, defined, found bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if vd, defined, found = cur.lookupLocal(name); found {
			return vd, defined, true
		}
	}
	return nil, false, false
}

// forwardIndexInChain finds the statement index at which name will
// eventually be declared somewhere in s or an ancestor block, or (-1,
// false) if no block in the chain names it.
func forwardIndexInChain(s *Scope, name string) (int, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if cur.forwardNames != nil {
			if idx, ok := cur.forwardNames[name]; ok {
				return idx, true
			}
		}
	}
	return 0, false
}
