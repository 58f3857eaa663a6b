package resolver

import (
	"github.com/jactl-go/jactlc/pkg/ast"
	"github.com/jactl-go/jactlc/pkg/types"
)

// resolveFunDecl resolves one function declaration -- a top-level script
// main, a class method, a block-level sibling function, or a closure's
// synthesized FunDecl -- pushing a fresh funcCtx, resolving parameters and
// body, then running the async/wrapper synthesis passes that close out
// spec §4.2's per-function responsibilities.
func (r *Resolver) resolveFunDecl(fd *ast.FunDecl, classDesc *ast.ClassDescriptor, isStatic bool) {
	if fd.Descriptor == nil {
		fd.Descriptor = ast.NewFunctionDescriptor(fd.Name)
	}
	desc := fd.Descriptor
	desc.ImplementingClassName = ""
	if classDesc != nil {
		desc.ImplementingClassName = classDesc.Packaged
	}
	if desc.ImplementingMethod == "" {
		desc.ImplementingMethod = fd.Name
	}
	desc.IsStatic = isStatic

	fc := &funcCtx{decl: fd, classDesc: classDesc, isStatic: isStatic, topScope: newScope(nil)}
	r.pushFunc(fc)

	r.allFuncs = append(r.allFuncs, desc)
	if r.callGraph[desc] == nil {
		r.callGraph[desc] = make(map[*ast.FunctionDescriptor]bool)
	}

	r.resolveParams(fd)

	if body, ok := fd.Body.(*ast.Block); ok {
		r.resolveBlock(body)
		r.rewriteImplicitReturn(fd, body)
	}

	// spec.md §9 Open Question 1 decision (recorded in DESIGN.md): every
	// non-final, non-static, non-init instance method is treated as async
	// unconditionally, matching the teacher's own uniform async handling
	// for instance methods rather than attempting per-method escape
	// analysis.
	if classDesc != nil && !isStatic && !desc.IsFinal && !desc.IsInitMethod {
		desc.IsAsync = true
	}
	if r.ctx != nil && r.ctx.Flags().TestAsync {
		desc.IsAsync = true
	}

	if !desc.IsInitMethod && !desc.IsWrapper {
		r.synthesizeWrapper(fd)
	}

	fd.SetResolved(true)
	r.popFunc()
}

// resolveBlock resolves one lexical block (spec §3.3 "Block"): it pre-scans
// for same-block sibling function declarations and var-decl names (so
// forward references can be distinguished from genuinely undefined names,
// spec §4.2 scenario S3), then walks statements in order, resolving each
// and eagerly resolving any sibling function the first time it is called.
func (r *Resolver) resolveBlock(block *ast.Block) {
	restore := r.enterBlockScope()
	defer restore()
	scope := r.currentFunc().topScope

	scope.forwardNames = collectForwardVarNames(block.Stmts)
	scope.siblingFuncs = collectSiblingFuncs(block.Stmts)

	for i, stmt := range block.Stmts {
		scope.scanIndex = i
		if fd, ok := stmt.(*ast.FunDecl); ok {
			sf := scope.siblingFuncs[fd.Name]
			if sf != nil && !sf.resolved && !sf.resolving {
				r.resolveSiblingFunc(sf)
			}
			continue
		}
		r.resolveStmt(stmt)
	}
	block.SetResolved(true)
}

// collectForwardVarNames pre-scans a block's direct statements (not
// recursing into nested blocks) for every name a VarDeclStmt will
// eventually declare, keyed to its statement index.
func collectForwardVarNames(stmts []ast.Stmt) map[string]int {
	out := make(map[string]int)
	for i, stmt := range stmts {
		collectForwardVarNamesOne(stmt, i, out)
	}
	return out
}

func collectForwardVarNamesOne(stmt ast.Stmt, index int, out map[string]int) {
	switch s := stmt.(type) {
	case *ast.VarDeclStmt:
		if _, exists := out[s.Name]; !exists {
			out[s.Name] = index
		}
	case *ast.StmtList:
		for _, inner := range s.Stmts {
			collectForwardVarNamesOne(inner, index, out)
		}
	}
}

// collectSiblingFuncs pre-scans a block's direct statements for FunDecl
// siblings (spec §4.2: "forward references to sibling functions (same
// block) are legal").
func collectSiblingFuncs(stmts []ast.Stmt) map[string]*siblingFunc {
	out := make(map[string]*siblingFunc)
	for i, stmt := range stmts {
		if fd, ok := stmt.(*ast.FunDecl); ok {
			out[fd.Name] = &siblingFunc{decl: fd, index: i}
		}
	}
	return out
}

// resolveStmt resolves one statement and marks it resolved once its
// children have been (spec §6.3: "every node resolved=true").
func (r *Resolver) resolveStmt(stmt ast.Stmt) {
	r.resolveStmtInner(stmt)
	stmt.SetResolved(true)
}

func (r *Resolver) resolveStmtInner(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.ClassDecl:
		r.resolveClassDecl(s)

	case *ast.Import:
		// Lookup contract only; nothing further to resolve (spec §1).

	case *ast.FunDecl:
		r.resolveFunDecl(s, r.currentFunc().classDesc, r.currentFunc().isStatic)

	case *ast.StmtList:
		for _, inner := range s.Stmts {
			r.resolveStmt(inner)
		}

	case *ast.Block:
		r.resolveBlock(s)

	case *ast.VarDeclStmt:
		r.resolveVarDeclStmt(s)

	case *ast.ExprStmt:
		s.X = r.resolveExpr(s.X)
		s.X.SetIsResultUsed(false)
		if s.Guard != nil {
			s.Guard = r.resolveExpr(s.Guard)
		}

	case *ast.Return:
		if s.X != nil {
			s.X = r.resolveExpr(s.X)
			s.X.SetIsResultUsed(true)
		}

	case *ast.If:
		s.Cond = r.resolveExpr(s.Cond)
		r.resolveStmt(s.Then)
		if s.Else != nil {
			r.resolveStmt(s.Else)
		}

	case *ast.While:
		r.resolveWhile(s)

	case *ast.ThrowError:
		s.X = r.resolveExpr(s.X)

	default:
		r.errorf(stmt.Token(), "internal: resolver has no case for statement type %T", stmt)
	}
}

func (r *Resolver) resolveWhile(w *ast.While) {
	restore := r.enterBlockScope()
	defer restore()

	if w.IsForEach {
		w.ForEachIterable = r.resolveExpr(w.ForEachIterable)
		var elemType types.Type = types.Any
		if w.ForEachIterable.Type() != nil {
			if at := w.ForEachIterable.Type().ArrayElement(); at != nil {
				elemType = at
			}
		}
		vd := r.arena.New(w.Token(), w.ForEachVar, elemType)
		vd.Owner = r.currentFunc().decl.Descriptor
		r.currentFunc().topScope.declare(w.ForEachVar, vd)
		r.currentFunc().topScope.define(w.ForEachVar)
	} else {
		if w.Init != nil {
			r.resolveStmt(w.Init)
		}
		if w.Cond != nil {
			w.Cond = r.resolveExpr(w.Cond)
		}
		if w.Update != nil {
			w.Update = r.resolveExpr(w.Update)
		}
	}

	r.currentFunc().loopDepth++
	r.resolveStmt(w.Body)
	r.currentFunc().loopDepth--
}

// resolveClassDecl implements spec §4.2's class pass: fields, methods,
// inner classes, and init-method/init-wrapper synthesis (initmethod.go).
func (r *Resolver) resolveClassDecl(decl *ast.ClassDecl) {
	if decl.Descriptor == nil {
		decl.Descriptor = ast.NewClassDescriptor(decl.Name, decl.Name)
	}
	desc := decl.Descriptor
	if decl.PackageName != "" {
		desc.Packaged = decl.PackageName + "." + decl.Name
	}
	r.localClasses[decl.Name] = desc
	if r.ctx != nil {
		r.ctx.RegisterClass(desc)
	}

	if decl.BaseClassName != "" {
		if base, ok := r.localClasses[decl.BaseClassName]; ok {
			desc.Base = base
		} else if r.ctx != nil {
			if base, ok := r.ctx.ClassDescriptor("", decl.BaseClassName); ok {
				desc.Base = base
			} else {
				r.errorf(decl.Token(), "unknown base class %q", decl.BaseClassName)
			}
		}
	}
	for _, ifaceName := range decl.InterfaceNames {
		if iface, ok := r.localClasses[ifaceName]; ok {
			desc.Interfaces = append(desc.Interfaces, iface)
		} else if r.ctx != nil {
			if iface, ok := r.ctx.ClassDescriptor("", ifaceName); ok {
				desc.Interfaces = append(desc.Interfaces, iface)
			} else {
				r.errorf(decl.Token(), "unknown interface %q", ifaceName)
			}
		}
	}
	if desc.ExtendsCycle() {
		r.fatalf(decl.Token(), "class %q has a circular extends chain", decl.Name)
	}

	for _, field := range decl.Fields {
		r.resolveFieldDecl(decl, field)
	}

	for _, method := range decl.Methods {
		r.resolveFunDecl(method, desc, method.Descriptor.IsStatic)
	}

	r.synthesizeInitMethod(decl)

	for _, inner := range decl.InnerClasses {
		r.resolveClassDecl(inner)
	}

	decl.SetResolved(true)
}

func (r *Resolver) resolveFieldDecl(decl *ast.ClassDecl, field *ast.FieldDecl) {
	// A field initialiser resolves in a lightweight synthetic function
	// context so `this`-style sibling-field references fall through to
	// the class-member lookup tier (spec §4.2 "Symbol lookup").
	fc := &funcCtx{decl: ast.NewFunDecl(field.Token(), "<field-init>"), classDesc: decl.Descriptor, topScope: newScope(nil)}
	fc.decl.Descriptor = ast.NewFunctionDescriptor("<field-init>")
	r.pushFunc(fc)

	vd := r.arena.New(field.Token(), field.Name, field.DeclaredType)
	vd.IsField = true
	field.VarDecl = vd

	if field.Initialiser != nil {
		field.Initialiser = r.resolveExpr(field.Initialiser)
		if field.DeclaredType == nil || field.DeclaredType.Kind() == types.KindAny {
			field.DeclaredType = field.Initialiser.Type()
		}
	}

	r.popFunc()
	field.SetResolved(true)

	if info, ok := decl.Descriptor.FieldsByName[field.Name]; ok {
		info.Type = field.DeclaredType
		info.Default = field.Initialiser
	}
}
