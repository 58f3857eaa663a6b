package resolver

import (
	"github.com/jactl-go/jactlc/pkg/ast"
	"github.com/jactl-go/jactlc/pkg/token"
	"github.com/jactl-go/jactlc/pkg/types"
)

// synthesizeWrapper builds the paired wrapper FunDecl spec §4.2 "Wrapper
// functions" requires for every user function: a uniform `(source_id,
// offset, args)` entry point used whenever a call site doesn't match the
// real function's arity/types exactly, uses named arguments, or goes
// through a function value. Every numbered comment below is one of the
// spec's seven wrapper responsibilities, in order.
func (r *Resolver) synthesizeWrapper(fd *ast.FunDecl) {
	desc := fd.Descriptor
	tok := fd.Token()

	wrapperDesc := ast.NewFunctionDescriptor(desc.WrapperMethodName())
	wrapperDesc.IsWrapper = true
	wrapperDesc.IsStatic = desc.IsStatic
	wrapperDesc.IsAsync = desc.IsAsync
	wrapperDesc.ImplementingClassName = desc.ImplementingClassName
	wrapperDesc.ImplementingMethod = desc.ImplementingMethod
	wrapperDesc.ReturnType = types.Any

	desc.Wrapper = wrapperDesc
	desc.WrapperMethod = wrapperDesc.Name

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

	argsName := func() *ast.Identifier { return identRef(tok, argsVD) }

	// 1. Detect a single-Map argument as named arguments (by the runtime's
	// marker class) and copy it before consuming keys.
	namedVD := r.arena.New(tok, "args$named", types.List)
	namedVD.Owner = wrapperDesc
	namedDecl := ast.NewVarDeclStmt(tok, namedVD.Name, types.List)
	namedDecl.VarDecl = namedVD
	namedDecl.Initialiser = utilityCall(tok, "copyIfNamedArgs", argsName())
	namedDecl.SetResolved(true)
	body.Stmts = append(body.Stmts, namedDecl)

	// 2. If there is exactly one list argument and the callee takes more
	// than one parameter, expand the list as positional arguments.
	expandedVD := r.arena.New(tok, "args$expanded", types.List)
	expandedVD.Owner = wrapperDesc
	expandDecl := ast.NewVarDeclStmt(tok, expandedVD.Name, types.List)
	expandDecl.VarDecl = expandedVD
	expandDecl.Initialiser = utilityCall(tok, "expandSingleListArg",
		identRef(tok, namedVD), intLiteral(tok, len(fd.Params)))
	expandDecl.SetResolved(true)
	body.Stmts = append(body.Stmts, expandDecl)

	// 3. Check mandatory-argument count; for named args ensure each
	// mandatory parameter is present.
	mandatoryNames := make([]ast.Expr, 0, len(desc.MandatorySet))
	for _, name := range desc.ParamNames {
		if desc.MandatorySet[name] {
			mandatoryNames = append(mandatoryNames, stringLiteral(tok, name))
		}
	}
	checkStmt := ast.NewExprStmt(tok, utilityCall(tok, "checkMandatoryArgs",
		append([]ast.Expr{identRef(tok, expandedVD), intLiteral(tok, desc.MandatoryCount)}, mandatoryNames...)...))
	checkStmt.SetResolved(true)
	body.Stmts = append(body.Stmts, checkStmt)

	// 4 & 5. For each formal parameter, pop the positional slot/remove the
	// named key/evaluate the default, then convert the value into the
	// parameter's declared type (invoking sub-type init methods for
	// instance-typed parameters happens inside ConvertTo at codegen time).
	callArgs := make([]ast.Expr, 0, len(fd.Params))
	for _, p := range fd.Params {
		localVD := r.arena.New(tok, p.Name, p.DeclaredType)
		localVD.Owner = wrapperDesc
		decl := ast.NewVarDeclStmt(tok, p.Name, p.DeclaredType)
		decl.VarDecl = localVD

		load := ast.NewLoadParamValue(tok, p.VarDecl, true)
		load.SetType(types.Any)
		load.SetResolved(true)

		convert := ast.NewConvertTo(tok, p.DeclaredType, load)
		convert.SetResolved(true)
		decl.Initialiser = convert
		decl.SetResolved(true)
		body.Stmts = append(body.Stmts, decl)

		callArgs = append(callArgs, identRef(tok, localVD))
	}

	// 6. After consuming arguments, if named mode and the map is
	// non-empty, fail with "extra named arguments".
	extraStmt := ast.NewExprStmt(tok, utilityCall(tok, "checkNoExtraNamedArgs", identRef(tok, expandedVD)))
	extraStmt.SetResolved(true)
	body.Stmts = append(body.Stmts, extraStmt)

	// 7. Tail-invoke the real function with fully-typed arguments.
	callee := ast.NewIdentifier(tok, fd.Name)
	callee.VarDecl = nil
	callee.SetType(types.Any)
	callee.SetResolved(true)
	call := ast.NewCall(tok, callee)
	call.Args = callArgs
	call.ResolvedFunc = desc
	call.SetType(types.Any)
	call.SetResolved(true)

	ret := ast.NewReturn(tok, call)
	ret.SetResolved(true)
	body.Stmts = append(body.Stmts, ret)

	body.SetResolved(true)
	wrapperFD.Body = body
	wrapperFD.SetResolved(true)

	fd.WrapperDecl = wrapperFD
	r.allFuncs = append(r.allFuncs, wrapperDesc)
}

func identRef(tok token.Token, vd *ast.VarDecl) *ast.Identifier {
	id := ast.NewIdentifier(tok, vd.Name)
	id.VarDecl = vd
	id.SetType(vd.DeclaredType)
	id.SetResolved(true)
	return id
}

func utilityCall(tok token.Token, name string, args ...ast.Expr) *ast.InvokeUtility {
	u := ast.NewInvokeUtility(tok, name, args...)
	u.SetResolved(true)
	u.SetType(types.Any)
	return u
}

func intLiteral(tok token.Token, v int) *ast.Literal {
	lit := ast.NewLiteral(tok, int64(v))
	lit.SetType(types.Int)
	return lit
}

func stringLiteral(tok token.Token, v string) *ast.Literal {
	lit := ast.NewLiteral(tok, v)
	lit.SetType(types.String)
	return lit
}
