package resolver

import (
	"github.com/jactl-go/jactlc/pkg/ast"
	"github.com/jactl-go/jactlc/pkg/types"
)

// resolveExpr resolves one expression: it fills in the mutable annotation
// surface every Expr exposes (Type, ConstValue/IsConst, CouldBeNull) and
// returns the node that should replace it in its parent's field -- normally
// itself, but a folded Literal when constant folding applies (spec §4.2
// "Constant folding", gated on context.Flags.ConstantFolding).
func (r *Resolver) resolveExpr(e ast.Expr) ast.Expr {
	if e == nil {
		return nil
	}
	out := r.resolveExprInner(e)
	out.SetResolved(true)
	return out
}

func (r *Resolver) resolveExprInner(e ast.Expr) ast.Expr {
	switch x := e.(type) {
	case *ast.Literal:
		if x.Type() == nil {
			x.SetType(literalType(x.Value))
		}
		return x

	case *ast.ListLiteral:
		allConst := true
		for i, el := range x.Elements {
			x.Elements[i] = r.resolveExpr(el)
			if !x.Elements[i].IsConst() {
				allConst = false
			}
		}
		x.SetType(types.List)
		return r.foldListLiteral(x, allConst)

	case *ast.MapLiteral:
		for i, entry := range x.Entries {
			x.Entries[i].Key = r.resolveExpr(entry.Key)
			x.Entries[i].Value = r.resolveExpr(entry.Value)
		}
		x.SetType(types.Map)
		return x

	case *ast.Identifier:
		r.resolveIdentifier(x)
		return x

	case *ast.VarAssign:
		r.resolveIdentifier(x.Target)
		x.Value = r.resolveExpr(x.Value)
		x.SetType(x.Target.Type())
		return x

	case *ast.VarOpAssign:
		r.resolveIdentifier(x.Target)
		x.Value = r.resolveExpr(x.Value)
		x.SetType(x.Target.Type())
		return x

	case *ast.FieldAccess:
		x.Parent = r.resolveExpr(x.Parent)
		if x.IsIndex {
			x.Field = r.resolveExpr(x.Field)
		} else if id, ok := x.Field.(*ast.Identifier); ok {
			id.SetType(types.Any)
			id.SetResolved(true)
		}
		x.SetType(types.Any)
		x.SetCouldBeNull(true)
		return x

	case *ast.FieldAssign:
		r.resolveFieldAccessTarget(x.Target)
		x.Value = r.resolveExpr(x.Value)
		x.SetType(x.Value.Type())
		return x

	case *ast.FieldOpAssign:
		r.resolveFieldAccessTarget(x.Target)
		x.Value = r.resolveExpr(x.Value)
		x.SetType(types.Any)
		return x

	case *ast.Binary:
		x.Left = r.resolveExpr(x.Left)
		x.Right = r.resolveExpr(x.Right)
		return r.resolveBinary(x)

	case *ast.Ternary:
		x.Cond = r.resolveExpr(x.Cond)
		x.Then = r.resolveExpr(x.Then)
		if x.Else != nil {
			x.Else = r.resolveExpr(x.Else)
		}
		x.SetType(x.Then.Type())
		x.SetCouldBeNull(x.Then.CouldBeNull() || (x.Else != nil && x.Else.CouldBeNull()) || x.IsElvis)
		return x

	case *ast.Unary:
		x.Operand = r.resolveExpr(x.Operand)
		return r.resolveUnary(x)

	case *ast.Cast:
		x.X = r.resolveExpr(x.X)
		x.SetType(x.TargetType)
		return x

	case *ast.RegexMatch:
		x.Target = r.resolveExpr(x.Target)
		x.Pattern = r.resolveExpr(x.Pattern)
		x.SetType(types.Bool)
		return x

	case *ast.RegexSubst:
		x.Target = r.resolveExpr(x.Target)
		x.Pattern = r.resolveExpr(x.Pattern)
		x.Replacement = r.resolveExpr(x.Replacement)
		if x.IsNonDestructive {
			x.SetType(types.String)
		} else {
			x.SetType(x.Target.Type())
		}
		return x

	case *ast.Call:
		return r.resolveCall(x)

	case *ast.MethodCall:
		return r.resolveMethodCall(x)

	case *ast.Closure:
		r.resolveFunDecl(x.FunDecl, r.currentFunc().classDesc, r.currentFunc().isStatic)
		if x.FunDecl.ImplicitIt {
			r.implicitItClosures = append(r.implicitItClosures, x.FunDecl)
			if x.IsCallee() {
				x.FunDecl.Invoked = true
			}
		}
		x.SetType(&types.FunctionType{ParamTypes: x.FunDecl.Descriptor.ParamTypes, ReturnType: types.Any})
		return x

	case *ast.FunDeclExpr:
		r.resolveFunDecl(x.FunDecl, r.currentFunc().classDesc, r.currentFunc().isStatic)
		x.SetType(&types.FunctionType{ParamTypes: x.FunDecl.Descriptor.ParamTypes, ReturnType: types.Any})
		return x

	case *ast.NewInstance:
		return r.resolveNewInstance(x)

	case *ast.TypeExpr:
		if x.ResolvedType != nil {
			x.SetType(x.ResolvedType)
		} else {
			x.SetType(types.Any)
		}
		return x

	case *ast.BlockExpr:
		r.resolveBlock(x.Body)
		x.SetType(types.Any)
		return x

	case *ast.BreakExpr:
		if r.currentFunc().loopDepth == 0 {
			r.errorf(x.Token(), "break outside a loop")
		}
		x.SetType(types.Any)
		return x

	case *ast.ContinueExpr:
		if r.currentFunc().loopDepth == 0 {
			r.errorf(x.Token(), "continue outside a loop")
		}
		x.SetType(types.Any)
		return x

	case *ast.ReturnExpr:
		if x.X != nil {
			x.X = r.resolveExpr(x.X)
		}
		x.SetType(types.Any)
		return x

	case *ast.PrintExpr:
		x.X = r.resolveExpr(x.X)
		x.SetType(types.Any)
		return x

	case *ast.EvalExpr:
		x.Source = r.resolveExpr(x.Source)
		// eval is always an async source (spec §4.2 "Async propagation").
		r.currentFunc().decl.Descriptor.IsAsync = true
		x.SetType(types.Any)
		return x

	case *ast.Switch:
		return r.resolveSwitch(x)

	case *ast.ConstructorPattern:
		if desc, ok := r.localClasses[x.ClassName]; ok {
			x.Descriptor = desc
		} else if r.ctx != nil {
			if desc, ok := r.ctx.ClassDescriptor("", x.ClassName); ok {
				x.Descriptor = desc
			}
		}
		if x.Descriptor == nil {
			r.errorf(x.Token(), "unknown class %q in pattern", x.ClassName)
			x.SetType(types.Any)
			return x
		}
		x.SetType(&types.InstanceType{Descriptor: x.Descriptor})
		return x

	case *ast.SpecialVar:
		x.SetType(types.Any)
		x.SetCouldBeNull(true)
		return x

	case *ast.Noop:
		x.SetType(types.Any)
		return x

	default:
		r.errorf(e.Token(), "internal: resolver has no case for expression type %T", e)
		e.SetType(types.Any)
		return e
	}
}

// resolveFieldAccessTarget resolves a FieldAccess used as an lvalue target,
// propagating CreateIfMissing (set by the parser) through to the resolved
// chain (spec §4.1 "Lvalue rewriting"; testable property 6).
func (r *Resolver) resolveFieldAccessTarget(fa *ast.FieldAccess) {
	fa.Parent = r.resolveExpr(fa.Parent)
	if fa.IsIndex {
		fa.Field = r.resolveExpr(fa.Field)
	}
	fa.SetType(types.Any)
	fa.SetResolved(true)
}

func literalType(v any) types.Type {
	switch v.(type) {
	case bool:
		return types.Bool
	case int64, int, int32:
		return types.Int
	case float64, float32:
		return types.Double
	case string:
		return types.String
	case nil:
		return types.Any
	default:
		return types.Any
	}
}
