package resolver

import (
	"github.com/jactl-go/jactlc/pkg/ast"
	"github.com/jactl-go/jactlc/pkg/types"
)

// resolveParams implements the parameter half of spec §4.2's variable
// declaration protocol: each parameter is declared (sentinel), its default
// initialiser (if any) is resolved in left-to-right order -- so a later
// default may reference an earlier parameter -- and only then defined, so
// `def f(x, y = x + 1)` works but a parameter cannot reference itself or a
// later sibling.
func (r *Resolver) resolveParams(fd *ast.FunDecl) {
	fc := r.currentFunc()
	desc := fd.Descriptor
	fc.resolvingParams = true
	defer func() { fc.resolvingParams = false }()

	for i, p := range fd.Params {
		if p.VarDecl != nil {
			// Already allocated by the parser (the synthesized `globals`
			// parameter of a script's main function).
			fc.topScope.declare(p.Name, p.VarDecl)
			fc.topScope.define(p.Name)
			desc.Params = append(desc.Params, p.VarDecl.ID())
			desc.ParamNames = append(desc.ParamNames, p.Name)
			desc.ParamTypes = append(desc.ParamTypes, p.DeclaredType)
			desc.MandatoryCount++
			desc.MandatorySet[p.Name] = true
			continue
		}

		vd := r.arena.New(fd.Token(), p.Name, p.DeclaredType)
		vd.IsParam = true
		vd.IsExplicitParam = true
		vd.Owner = desc
		vd.Slot = i
		vd.NestingLevel = len(r.funcs) - 1
		p.VarDecl = vd

		if !fc.topScope.declare(p.Name, vd) {
			r.errorf(fd.Token(), "duplicate parameter name %q", p.Name)
		}

		desc.Params = append(desc.Params, vd.ID())
		desc.ParamNames = append(desc.ParamNames, p.Name)
		desc.ParamTypes = append(desc.ParamTypes, p.DeclaredType)

		if p.Default != nil {
			p.Default = r.resolveExpr(p.Default)
		} else {
			desc.MandatoryCount++
			desc.MandatorySet[p.Name] = true
		}
		fc.topScope.define(p.Name)
	}
}

// resolveVarDeclStmt implements spec §4.2's "declare the name (sentinel
// 'undefined'), resolve the initialiser, then define" protocol for local
// variables: resolving an initialiser that references the variable's own
// name finds it still undefined and reports self-reference (testable via
// `int x = x + 1`).
func (r *Resolver) resolveVarDeclStmt(vds *ast.VarDeclStmt) {
	fc := r.currentFunc()
	scope := fc.topScope

	vd := r.arena.New(vds.Token(), vds.Name, vds.DeclaredType)
	vd.IsFinal = vds.IsFinal
	vd.Owner = fc.decl.Descriptor
	vd.NestingLevel = len(r.funcs) - 1
	vds.VarDecl = vd

	if !scope.declare(vds.Name, vd) {
		r.errorf(vds.Token(), "variable %q is already declared in this scope", vds.Name)
	}

	if vds.Initialiser != nil {
		vds.Initialiser = r.resolveExpr(vds.Initialiser)
		vd.Initialiser = vds.Initialiser
		if vds.DeclaredType == nil || vds.DeclaredType == types.Unknown {
			inferred := vds.Initialiser.Type()
			if inferred == nil {
				inferred = types.Any
			}
			vd.DeclaredType = inferred
			vds.DeclaredType = inferred
		}
	} else if vds.DeclaredType == nil || vds.DeclaredType == types.Unknown {
		vd.DeclaredType = types.Any
		vds.DeclaredType = types.Any
	}

	scope.define(vds.Name)
}
