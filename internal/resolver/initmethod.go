package resolver

import (
	"github.com/jactl-go/jactlc/pkg/ast"
	"github.com/jactl-go/jactlc/pkg/token"
	"github.com/jactl-go/jactlc/pkg/types"
)

// synthesizeInitMethod implements spec §4.2 "Init method for classes": a
// plain `init` method taking one parameter per mandatory field (base
// classes' mandatory fields first, so it can forward them to `super.init`),
// plus a paired init-wrapper supporting the single-map-argument form that
// can set every field (mandatory or optional) by name -- the form used for
// auto-creating intermediate instances during lvalue field-path assignment.
func (r *Resolver) synthesizeInitMethod(decl *ast.ClassDecl) {
	desc := decl.Descriptor
	tok := decl.Token()

	var baseMandatory []*ast.FieldInfo
	if desc.Base != nil {
		baseMandatory = desc.Base.MandatoryFields()
	}
	ownMandatory := desc.MandatoryFields()

	initDesc := ast.NewFunctionDescriptor("init")
	initDesc.IsInitMethod = true
	initDesc.IsStatic = false
	initDesc.ImplementingClassName = desc.Packaged
	initDesc.ImplementingMethod = "init"
	initDesc.ReturnType = &types.InstanceType{Descriptor: desc}

	initFD := ast.NewFunDecl(tok, "init")
	initFD.Descriptor = initDesc

	body := ast.NewBlock(tok)
	body.IsFunctionBody = true

	baseParamVDs := make([]*ast.VarDecl, 0, len(baseMandatory))
	ownParamVDs := make(map[string]*ast.VarDecl, len(ownMandatory))

	addParam := func(f *ast.FieldInfo) *ast.VarDecl {
		vd := r.arena.New(tok, f.Name, f.Type)
		vd.IsParam = true
		vd.IsExplicitParam = true
		vd.Owner = initDesc
		vd.Slot = len(initFD.Params)
		initFD.Params = append(initFD.Params, &ast.Param{Name: f.Name, DeclaredType: f.Type, VarDecl: vd})
		initDesc.Params = append(initDesc.Params, vd.ID())
		initDesc.ParamNames = append(initDesc.ParamNames, f.Name)
		initDesc.ParamTypes = append(initDesc.ParamTypes, f.Type)
		initDesc.MandatoryCount++
		initDesc.MandatorySet[f.Name] = true
		return vd
	}
	for _, f := range baseMandatory {
		baseParamVDs = append(baseParamVDs, addParam(f))
	}
	for _, f := range ownMandatory {
		ownParamVDs[f.Name] = addParam(f)
	}

	if desc.Base != nil {
		superArgs := make([]ast.Expr, len(baseParamVDs))
		for i, vd := range baseParamVDs {
			superArgs[i] = identRef(tok, vd)
		}
		superCall := ast.NewMethodCall(tok, superRef(tok, desc.Base), "init")
		superCall.Args = superArgs
		superCall.ResolvedFunc = desc.Base.InitMethod
		superCall.SetType(&types.InstanceType{Descriptor: desc.Base})
		superCall.SetResolved(true)
		stmt := ast.NewExprStmt(tok, superCall)
		stmt.SetResolved(true)
		body.Stmts = append(body.Stmts, stmt)
	}

	for _, name := range desc.FieldOrder {
		f := desc.FieldsByName[name]
		var value ast.Expr
		if f.Mandatory {
			value = identRef(tok, ownParamVDs[name])
		} else {
			value = f.Default
		}
		body.Stmts = append(body.Stmts, fieldAssignStmt(tok, desc, name, value))
	}

	body.Stmts = append(body.Stmts, thisReturn(tok, desc))
	body.SetResolved(true)
	initFD.Body = body
	initFD.SetResolved(true)

	desc.InitMethod = initDesc
	desc.Methods["init"] = initDesc
	decl.Methods = append(decl.Methods, initFD)
	r.allFuncs = append(r.allFuncs, initDesc)
	if r.callGraph[initDesc] == nil {
		r.callGraph[initDesc] = make(map[*ast.FunctionDescriptor]bool)
	}
	if desc.Base != nil && desc.Base.InitMethod != nil {
		r.callGraph[initDesc][desc.Base.InitMethod] = true
	}

	r.synthesizeInitWrapper(decl)
	initFD.WrapperDecl = decl.Methods[len(decl.Methods)-1]
}

// synthesizeInitWrapper builds the map-argument form of the init method
// (spec §4.2: "additionally supports a single map argument (all fields by
// name, both mandatory and optional)"). It forwards to the base class's own
// init-wrapper first (so inherited fields are set the same way), then sets
// every field this class declares from the map, falling back to each
// field's own default when the map omits it.
func (r *Resolver) synthesizeInitWrapper(decl *ast.ClassDecl) {
	desc := decl.Descriptor
	tok := decl.Token()

	wrapperDesc := ast.NewFunctionDescriptor(desc.InitMethod.WrapperMethodName())
	wrapperDesc.IsWrapper = true
	wrapperDesc.ImplementingClassName = desc.Packaged
	wrapperDesc.ImplementingMethod = "init"
	wrapperDesc.ReturnType = &types.InstanceType{Descriptor: desc}

	desc.InitMethod.Wrapper = wrapperDesc
	desc.InitMethod.WrapperMethod = wrapperDesc.Name
	desc.InitWrapper = wrapperDesc

	wrapperFD := ast.NewFunDecl(tok, wrapperDesc.Name)
	wrapperFD.Descriptor = wrapperDesc

	sourceIDVD := r.arena.New(tok, "source_id", types.Any)
	offsetVD := r.arena.New(tok, "offset", types.Int)
	argsVD := r.arena.New(tok, "args", types.List)
	for _, vd := range [...]*ast.VarDecl{sourceIDVD, offsetVD, argsVD} {
		vd.IsParam = true
		vd.IsExplicitParam = true
		vd.Owner = wrapperDesc
	}
	wrapperFD.Params = []*ast.Param{
		{Name: "source_id", DeclaredType: types.Any, VarDecl: sourceIDVD},
		{Name: "offset", DeclaredType: types.Int, VarDecl: offsetVD},
		{Name: "args", DeclaredType: types.List, VarDecl: argsVD},
	}
	wrapperDesc.Params = []ast.VarDeclID{sourceIDVD.ID(), offsetVD.ID(), argsVD.ID()}
	wrapperDesc.ParamNames = []string{"source_id", "offset", "args"}
	wrapperDesc.ParamTypes = []types.Type{types.Any, types.Int, types.List}
	wrapperDesc.MandatoryCount = 3
	wrapperDesc.MandatorySet = map[string]bool{"source_id": true, "offset": true, "args": true}

	body := ast.NewBlock(tok)
	body.IsFunctionBody = true

	mapVD := r.arena.New(tok, "args$map", types.Map)
	mapVD.Owner = wrapperDesc
	mapDecl := ast.NewVarDeclStmt(tok, mapVD.Name, types.Map)
	mapDecl.VarDecl = mapVD
	mapDecl.Initialiser = utilityCall(tok, "singleMapArg", identRef(tok, argsVD))
	mapDecl.SetResolved(true)
	body.Stmts = append(body.Stmts, mapDecl)

	allMandatory := desc.MandatoryFields()
	mandatoryNames := make([]ast.Expr, 0, len(allMandatory))
	for _, f := range allMandatory {
		mandatoryNames = append(mandatoryNames, stringLiteral(tok, f.Name))
	}
	checkStmt := ast.NewExprStmt(tok, utilityCall(tok, "checkMandatoryFields",
		append([]ast.Expr{identRef(tok, mapVD)}, mandatoryNames...)...))
	checkStmt.SetResolved(true)
	body.Stmts = append(body.Stmts, checkStmt)

	if desc.Base != nil && desc.Base.InitWrapper != nil {
		forward := ast.NewMethodCall(tok, superRef(tok, desc.Base), desc.Base.InitWrapper.Name)
		forward.Args = []ast.Expr{identRef(tok, sourceIDVD), identRef(tok, offsetVD), identRef(tok, argsVD)}
		forward.ResolvedFunc = desc.Base.InitWrapper
		forward.SetType(&types.InstanceType{Descriptor: desc.Base})
		forward.SetResolved(true)
		stmt := ast.NewExprStmt(tok, forward)
		stmt.SetResolved(true)
		body.Stmts = append(body.Stmts, stmt)
		r.recordInitWrapperEdge(wrapperDesc, desc.Base.InitWrapper)
	}

	for _, name := range desc.FieldOrder {
		f := desc.FieldsByName[name]
		lookup := ast.NewFieldAccess(tok, identRef(tok, mapVD), stringLiteral(tok, name), true)
		lookup.SetType(types.Any)
		lookup.SetCouldBeNull(true)
		lookup.SetResolved(true)

		fallback := f.Default
		if fallback == nil {
			fallback = nullLiteral(tok)
		}
		value := ast.NewTernary(tok, lookup, lookup, fallback, true)
		value.SetType(types.Any)
		value.SetResolved(true)
		body.Stmts = append(body.Stmts, fieldAssignStmt(tok, desc, name, value))
	}

	body.Stmts = append(body.Stmts, thisReturn(tok, desc))
	body.SetResolved(true)
	wrapperFD.Body = body
	wrapperFD.SetResolved(true)

	decl.Methods = append(decl.Methods, wrapperFD)
	r.allFuncs = append(r.allFuncs, wrapperDesc)
}

func (r *Resolver) recordInitWrapperEdge(caller, callee *ast.FunctionDescriptor) {
	if r.callGraph[caller] == nil {
		r.callGraph[caller] = make(map[*ast.FunctionDescriptor]bool)
	}
	r.callGraph[caller][callee] = true
}

func fieldAssignStmt(tok token.Token, desc *ast.ClassDescriptor, name string, value ast.Expr) *ast.ExprStmt {
	target := ast.NewFieldAccess(tok, thisRef(tok, desc), ast.NewIdentifier(tok, name), false)
	target.SetType(types.Any)
	target.SetResolved(true)
	assign := ast.NewFieldAssign(tok, target, value)
	assign.SetType(value.Type())
	assign.SetResolved(true)
	stmt := ast.NewExprStmt(tok, assign)
	stmt.SetResolved(true)
	return stmt
}

func nullLiteral(tok token.Token) *ast.Literal {
	lit := ast.NewLiteral(tok, nil)
	lit.SetType(types.Any)
	return lit
}

func thisRef(tok token.Token, desc *ast.ClassDescriptor) *ast.Identifier {
	id := ast.NewIdentifier(tok, "this")
	id.SetType(&types.InstanceType{Descriptor: desc})
	id.SetResolved(true)
	return id
}

func superRef(tok token.Token, baseDesc *ast.ClassDescriptor) *ast.Identifier {
	id := ast.NewIdentifier(tok, "super")
	id.SetType(&types.InstanceType{Descriptor: baseDesc})
	id.SetResolved(true)
	return id
}

func thisReturn(tok token.Token, desc *ast.ClassDescriptor) *ast.Return {
	ret := ast.NewReturn(tok, thisRef(tok, desc))
	ret.SetResolved(true)
	return ret
}
