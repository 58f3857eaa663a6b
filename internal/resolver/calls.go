package resolver

import (
	"github.com/jactl-go/jactlc/pkg/ast"
	"github.com/jactl-go/jactlc/pkg/types"
)

// resolveCall resolves a direct call `f(args)`. When the callee resolves to
// a known user function, ResolvedFunc is filled in and an edge is recorded
// in the call graph for the async fixed-point pass (async.go); calls to a
// built-in that is already known to be async mark the enclosing function
// async immediately (spec §4.2 "Async propagation").
func (r *Resolver) resolveCall(c *ast.Call) ast.Expr {
	c.Callee = r.resolveExpr(c.Callee)
	for i, a := range c.Args {
		c.Args[i] = r.resolveExpr(a)
	}
	for i, na := range c.NamedArgs {
		c.NamedArgs[i].Value = r.resolveExpr(na.Value)
	}

	if id, ok := c.Callee.(*ast.Identifier); ok {
		r.bindCallTarget(c, id.Name)
	}
	c.SetType(types.Any)
	return c
}

// resolveMethodCall resolves `receiver.method(args)`, including the
// trailing-closure sugar the parser desugars into an extra Closure arg.
func (r *Resolver) resolveMethodCall(mc *ast.MethodCall) ast.Expr {
	mc.Receiver = r.resolveExpr(mc.Receiver)
	for i, a := range mc.Args {
		mc.Args[i] = r.resolveExpr(a)
	}
	for i, na := range mc.NamedArgs {
		mc.NamedArgs[i].Value = r.resolveExpr(na.Value)
	}

	if it, ok := mc.Receiver.Type().(*types.InstanceType); ok {
		if desc, ok := it.Descriptor.(*ast.ClassDescriptor); ok {
			if m, ok := lookupMethod(desc, mc.MethodName); ok {
				mc.ResolvedFunc = m
				r.recordCallEdge(m)
			}
		}
	}
	if mc.ResolvedFunc == nil && r.builtins != nil {
		typeName := mc.Receiver.Type().String()
		if m, ok := r.builtins.MethodOf(typeName, mc.MethodName); ok {
			mc.ResolvedFunc = m
			if m.IsAsync {
				r.currentFunc().decl.Descriptor.IsAsync = true
			}
		}
	}
	mc.SetType(types.Any)
	return mc
}

// bindCallTarget resolves a direct call's callee name against the same
// tiers resolveIdentifier does, without re-resolving the Identifier node
// (already done by the generic Identifier case): it only needs the
// resulting FunctionDescriptor, if any, to wire the call graph.
func (r *Resolver) bindCallTarget(c *ast.Call, name string) {
	fc := r.currentFunc()
	if sf := lookupSiblingFuncInChain(fc.topScope, name); sf != nil {
		c.ResolvedFunc = sf.decl.Descriptor
		r.recordCallEdge(sf.decl.Descriptor)
		return
	}
	for i := len(r.funcs) - 1; i >= 0; i-- {
		if sf := lookupSiblingFuncInChain(r.funcs[i].topScope, name); sf != nil {
			c.ResolvedFunc = sf.decl.Descriptor
			r.recordCallEdge(sf.decl.Descriptor)
			return
		}
	}
	if fc.classDesc != nil {
		if m, ok := lookupMethod(fc.classDesc, name); ok {
			c.ResolvedFunc = m
			r.recordCallEdge(m)
			return
		}
	}
	if r.builtins != nil {
		if m, ok := r.builtins.Lookup(name); ok {
			c.ResolvedFunc = m
			if m.IsAsync {
				fc.decl.Descriptor.IsAsync = true
			}
		}
	}
}

func (r *Resolver) recordCallEdge(callee *ast.FunctionDescriptor) {
	caller := r.currentFunc().decl.Descriptor
	if r.callGraph[caller] == nil {
		r.callGraph[caller] = make(map[*ast.FunctionDescriptor]bool)
	}
	r.callGraph[caller][callee] = true
}

// resolveNewInstance resolves `new ClassName(args)` against the local and
// context-registered class registries, wiring it to the class's
// (synthesized) init method/init wrapper (spec §4.2 "Init method for
// classes").
func (r *Resolver) resolveNewInstance(n *ast.NewInstance) ast.Expr {
	for i, a := range n.Args {
		n.Args[i] = r.resolveExpr(a)
	}
	for i, na := range n.NamedArgs {
		n.NamedArgs[i].Value = r.resolveExpr(na.Value)
	}

	if desc, ok := r.localClasses[n.ClassName]; ok {
		n.Descriptor = desc
	} else if r.ctx != nil {
		if desc, ok := r.ctx.ClassDescriptor("", n.ClassName); ok {
			n.Descriptor = desc
		}
	}
	if n.Descriptor == nil {
		r.errorf(n.Token(), "unknown class %q", n.ClassName)
		n.SetType(types.Any)
		return n
	}
	n.SetType(&types.InstanceType{Descriptor: n.Descriptor})
	return n
}

// resolveSwitch resolves a `switch` expression (spec §8 scenario S5),
// including constructor-pattern cases that both type-test and destructure
// the subject into new bindings visible only in that case's body.
func (r *Resolver) resolveSwitch(sw *ast.Switch) ast.Expr {
	sw.Subject = r.resolveExpr(sw.Subject)

	seenLiterals := map[any]bool{}
	var resultType types.Type
	for ci := range sw.Cases {
		c := &sw.Cases[ci]
		restore := r.enterBlockScope()

		for pi := range c.Patterns {
			c.Patterns[pi] = r.resolveExpr(c.Patterns[pi])
			if cp, ok := c.Patterns[pi].(*ast.ConstructorPattern); ok && cp.Descriptor != nil {
				r.bindConstructorPatternVars(cp)
				continue
			}
			r.checkCaseLiteralUnique(c.Patterns[pi], seenLiterals)
		}
		c.Body = r.resolveExpr(c.Body)
		restore()

		if resultType == nil {
			resultType = c.Body.Type()
		}
	}
	if resultType == nil {
		resultType = types.Any
	}
	sw.SetType(resultType)
	sw.SetCouldBeNull(true)
	return sw
}

// checkCaseLiteralUnique enforces spec §8 scenario S5: "resolver enforces
// each case literal unique". Only constant-foldable patterns participate;
// a non-const pattern (e.g. a variable reference) cannot be checked for
// duplication at resolve time and is left to runtime.
func (r *Resolver) checkCaseLiteralUnique(pattern ast.Expr, seen map[any]bool) {
	if !pattern.IsConst() {
		return
	}
	val, ok := pattern.ConstValue()
	if !ok {
		return
	}
	if seen[val] {
		r.errorf(pattern.Token(), "duplicate switch case literal %v", val)
		return
	}
	seen[val] = true
}

// bindConstructorPatternVars declares the destructured field bindings a
// constructor pattern introduces (`case Point(x, y) -> ...`) in the
// current (case-body) scope.
func (r *Resolver) bindConstructorPatternVars(cp *ast.ConstructorPattern) {
	fc := r.currentFunc()
	for _, fieldVar := range cp.FieldVars {
		var fieldType types.Type = types.Any
		if info, _, ok := lookupField(cp.Descriptor, fieldVar); ok {
			fieldType = info.Type
		}
		vd := r.arena.New(cp.Token(), fieldVar, fieldType)
		vd.Owner = fc.decl.Descriptor
		fc.topScope.declare(fieldVar, vd)
		fc.topScope.define(fieldVar)
	}
}
