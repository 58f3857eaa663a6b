package resolver

import (
	"github.com/jactl-go/jactlc/pkg/ast"
	"github.com/jactl-go/jactlc/pkg/types"
)

// lookupSiblingFuncInChain walks a block-scope chain looking for a
// same-block (or enclosing-block-within-the-same-function) sibling
// function declaration, the forward-reference tier spec §4.2 places ahead
// of the enclosing-function tier.
func lookupSiblingFuncInChain(s *Scope, name string) *siblingFunc {
	for cur := s; cur != nil; cur = cur.parent {
		if cur.siblingFuncs != nil {
			if sf, ok := cur.siblingFuncs[name]; ok {
				return sf
			}
		}
	}
	return nil
}

// lookupField walks a class's base-class chain for a field (spec §4.2
// "Symbol lookup": "class members with inheritance").
func lookupField(desc *ast.ClassDescriptor, name string) (*ast.FieldInfo, *ast.ClassDescriptor, bool) {
	for cur := desc; cur != nil; cur = cur.Base {
		if f, ok := cur.FieldsByName[name]; ok {
			return f, cur, true
		}
	}
	return nil, nil, false
}

// lookupMethod walks a class's base-class chain for a method.
func lookupMethod(desc *ast.ClassDescriptor, name string) (*ast.FunctionDescriptor, bool) {
	for cur := desc; cur != nil; cur = cur.Base {
		if m, ok := cur.Methods[name]; ok {
			return m, true
		}
	}
	return nil, false
}

// resolveIdentifier implements spec §4.2's "Symbol lookup" order in full:
// innermost block to outermost within the current function; same-block
// sibling functions (forward references legal); enclosing functions
// (closure capture, heap-local promotion); class members with
// inheritance; imported/local classes; built-ins; globals (script only).
func (r *Resolver) resolveIdentifier(id *ast.Identifier) {
	name := id.Name
	fc := r.currentFunc()

	// "this"/"super" are reserved receiver pseudo-variables (spec §4.2
	// "Init method for classes": "calls super.init"); they never go through
	// the ordinary scope chain, since no VarDecl ever declares them.
	if name == "this" && fc.classDesc != nil {
		id.SetType(&types.InstanceType{Descriptor: fc.classDesc})
		return
	}
	if name == "super" && fc.classDesc != nil {
		if fc.classDesc.Base != nil {
			id.SetType(&types.InstanceType{Descriptor: fc.classDesc.Base})
		} else {
			id.SetType(types.Any)
		}
		return
	}

	if vd, defined, found := lookupChain(fc.topScope, name); found {
		if !defined {
			r.errorf(id.Token(), "variable %q is referenced in its own initialiser", name)
		}
		id.VarDecl = vd
		typ := vd.DeclaredType
		if typ == nil {
			typ = types.Any
		}
		id.SetType(typ)
		id.SetCouldBeNull(typ.Kind() == types.KindAny)
		markClosureInvokedIfCallee(id, vd)
		return
	}

	if sf := lookupSiblingFuncInChain(fc.topScope, name); sf != nil {
		if !sf.resolved && !sf.resolving {
			r.resolveSiblingFunc(sf)
		}
		id.SetType(types.Any)
		return
	}

	if idx, ok := forwardIndexInChain(fc.topScope, name); ok {
		_ = idx
		r.errorf(id.Token(), "forward reference closes over %q, which is not yet declared at this point", name)
		id.SetType(types.Any)
		return
	}

	for i := len(r.funcs) - 2; i >= 0; i-- {
		outer := r.funcs[i]
		if vd, defined, found := lookupChain(outer.topScope, name); found {
			if !defined {
				r.errorf(id.Token(), "variable %q is referenced before it is declared in the enclosing function", name)
			}
			promoted := r.promoteHeapLocal(vd, i)
			id.VarDecl = promoted
			typ := promoted.DeclaredType
			if typ == nil {
				typ = types.Any
			}
			id.SetType(typ)
			markClosureInvokedIfCallee(id, vd)
			return
		}
		if sf := lookupSiblingFuncInChain(outer.topScope, name); sf != nil {
			if !sf.resolved && !sf.resolving {
				r.resolveSiblingFunc(sf)
			}
			id.SetType(types.Any)
			return
		}
		if _, ok := forwardIndexInChain(outer.topScope, name); ok {
			r.errorf(id.Token(), "forward reference closes over %q, which is not yet declared at this point", name)
			id.SetType(types.Any)
			return
		}
	}

	if fc.classDesc != nil {
		if field, _, ok := lookupField(fc.classDesc, name); ok {
			id.SetType(field.Type)
			id.SetCouldBeNull(true)
			return
		}
		if _, ok := lookupMethod(fc.classDesc, name); ok {
			id.SetType(types.Any)
			return
		}
	}

	if desc, ok := r.localClasses[name]; ok {
		id.SetType(&types.ClassType{Descriptor: desc})
		return
	}
	if r.ctx != nil {
		if desc, ok := r.ctx.ClassDescriptor("", name); ok {
			id.SetType(&types.ClassType{Descriptor: desc})
			return
		}
	}

	if r.builtins != nil {
		if _, ok := r.builtins.Lookup(name); ok {
			id.SetType(types.Any)
			return
		}
	}

	if r.script {
		id.SetType(types.Any)
		id.SetCouldBeNull(true)
		return
	}

	r.errorf(id.Token(), "undefined name %q", name)
	id.SetType(types.Any)
}

// markClosureInvokedIfCallee records, for spec §8 property 9, that an
// ImplicitIt closure bound to vd was seen called through an identifier
// reference (`def y = { ... }; y()`), as opposed to merely referenced as a
// value. id.IsCallee() is set by the parser at Call construction time
// (ast.NewCall), so this is available as soon as the
// identifier itself resolves.
func markClosureInvokedIfCallee(id *ast.Identifier, vd *ast.VarDecl) {
	if !id.IsCallee() || vd == nil {
		return
	}
	if c, ok := vd.Initialiser.(*ast.Closure); ok {
		c.FunDecl.Invoked = true
	}
}

// resolveSiblingFunc resolves a same-block function declaration the first
// time it is referenced, whether that happens in source order or earlier
// via a sibling's forward call (spec §4.2 scenario S2/S3). The resolving
// flag guards mutually-recursive siblings from an infinite loop.
func (r *Resolver) resolveSiblingFunc(sf *siblingFunc) {
	sf.resolving = true
	fc := r.currentFunc()
	r.resolveFunDecl(sf.decl, fc.classDesc, fc.isStatic)
	sf.resolving = false
	sf.resolved = true
}
