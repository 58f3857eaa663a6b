package resolver

import "github.com/jactl-go/jactlc/pkg/ast"

// stripUnusedImplicitItClosures implements spec §8 property 9: "A function
// with zero parameters and an implicit-it closure body, never invoked, is
// rewritten into a plain Block (the it parameter is removed)." Every
// ImplicitIt closure resolved in this unit was recorded in
// r.implicitItClosures as it resolved; any that markClosureInvokedIfCallee
// never flagged as Invoked had its single `it` parameter stripped here,
// along with the matching bookkeeping on its FunctionDescriptor.
func (r *Resolver) stripUnusedImplicitItClosures() {
	for _, fd := range r.implicitItClosures {
		if fd.Invoked {
			continue
		}
		fd.ImplicitIt = false
		fd.Params = nil
		desc := fd.Descriptor
		desc.Params = nil
		desc.ParamNames = nil
		desc.ParamTypes = nil
		desc.MandatoryCount = 0
		desc.MandatorySet = make(map[string]bool)
	}
}

// promoteHeapLocal implements spec §4.2's closure-capture (heap-local
// promotion) algorithm: owner is a VarDecl found in r.funcs[ownerIdx], an
// enclosing function relative to whichever function is currently being
// resolved (the top of r.funcs). Crossing a function boundary to reach a
// variable means it must survive past its declaring frame, so:
//
//  1. owner itself is marked is_heap_local.
//  2. for every function strictly between the owner and the referencing
//     function (inclusive of the referencing function), a heap-local copy
//     is synthesized, chained back via parent_var_decl, and recorded in
//     that function's HeapLocalsByName (spec testable property 4).
//
// The returned VarDecl is the copy living in the *referencing* function
// (the innermost one), which is what the Identifier at the use site links
// to.
func (r *Resolver) promoteHeapLocal(owner *ast.VarDecl, ownerIdx int) *ast.VarDecl {
	owner.IsHeapLocal = true

	// Parameter-closure-in-default-initialiser (spec §4.2): if the function
	// that owns this variable is, right now, still resolving its own
	// parameter list (i.e. we are inside a closure nested in one of its
	// later parameters' default expressions, capturing an earlier
	// parameter), that parameter must be promoted to heap-local *before*
	// the function body runs, not merely when the closure itself runs.
	if r.funcs[ownerIdx].resolvingParams {
		owner.IsPassedAsHeapLocal = true
	}

	cur := owner
	for i := ownerIdx + 1; i < len(r.funcs); i++ {
		fc := r.funcs[i]
		desc := fc.decl.Descriptor
		if existing, ok := desc.HeapLocalsByName[owner.Name]; ok {
			cur = r.arena.Get(existing)
			continue
		}
		copyDecl := r.arena.New(owner.NameToken, owner.Name, owner.DeclaredType)
		copyDecl.IsHeapLocal = true
		copyDecl.IsParam = true // threaded in as an implicit extra parameter
		copyDecl.Owner = desc
		copyDecl.NestingLevel = i
		copyDecl.ParentVarDecl = cur.ID()
		copyDecl.OriginalVarDecl = owner.OriginalVarDecl
		desc.HeapLocalsByName[owner.Name] = copyDecl.ID()
		cur = copyDecl
	}
	return cur
}
