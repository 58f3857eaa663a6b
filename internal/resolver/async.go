package resolver

// propagateAsync runs the fixed-point sweep spec §4.2 "Async propagation"
// requires: a function is async if it directly calls something async
// (itself already marked async by resolveCall/resolveMethodCall when the
// callee is a known-async built-in or a non-final instance method), or if
// it calls a user function that *becomes* async only once the sweep reaches
// it -- which is why this cannot be decided during the single top-down walk
// and needs its own pass over the accumulated call graph afterwards.
//
// Async-ness is monotonic (it is only ever set to true, never cleared), so
// repeated sweeps converge: each pass either flips at least one more
// function to async or changes nothing, and there are only len(r.allFuncs)
// functions to flip.
func (r *Resolver) propagateAsync() {
	for {
		changed := false
		for _, caller := range r.allFuncs {
			if caller.IsAsync {
				continue
			}
			for callee := range r.callGraph[caller] {
				if callee.IsAsync {
					caller.IsAsync = true
					changed = true
					break
				}
			}
		}
		if !changed {
			break
		}
	}
	r.propagateWrapperAsync()
}

// propagateWrapperAsync mirrors each function's async-ness onto its
// synthesized wrapper (spec §3.5: the wrapper tail-invokes the real
// function, so it is async exactly when the real function is).
func (r *Resolver) propagateWrapperAsync() {
	for _, fd := range r.allFuncs {
		if fd.Wrapper != nil && fd.IsAsync {
			fd.Wrapper.IsAsync = true
		}
	}
}
