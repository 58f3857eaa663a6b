package resolver

import (
	"github.com/jactl-go/jactlc/pkg/ast"
	"github.com/jactl-go/jactlc/pkg/token"
	"github.com/jactl-go/jactlc/pkg/types"
)

// rewriteImplicitReturn implements spec §4.2 "Implicit returns": the last
// statement in a function body becomes an explicit Return, recursing through
// both branches of a trailing If so each arm gets its own return. A branch
// that falls off the end with no value is filled with `return null` when the
// function's declared return type can hold null; a primitive return type
// (bool/byte/int/long/double/decimal) makes that a resolve error instead,
// since there is no null of a primitive type to fill in with.
func (r *Resolver) rewriteImplicitReturn(fd *ast.FunDecl, body *ast.Block) {
	r.rewriteTailBlock(fd.Descriptor, body)
}

func (r *Resolver) rewriteTailBlock(desc *ast.FunctionDescriptor, block *ast.Block) {
	if len(block.Stmts) == 0 {
		block.Stmts = append(block.Stmts, r.implicitNullOrError(desc, block.Token()))
		return
	}
	last := len(block.Stmts) - 1
	block.Stmts[last] = r.rewriteTailStmt(desc, block.Stmts[last])
}

// rewriteTailStmt rewrites one statement occupying tail position, returning
// the statement that should replace it.
func (r *Resolver) rewriteTailStmt(desc *ast.FunctionDescriptor, stmt ast.Stmt) ast.Stmt {
	switch s := stmt.(type) {
	case *ast.Return:
		return s

	case *ast.ExprStmt:
		if s.Guard != nil {
			// A guarded trailing expression (`x if cond`) may not execute,
			// so it cannot alone stand in for the return; fall through to
			// the no-value case below, appending the implicit return after
			// it rather than replacing it.
			fill := r.implicitNullOrError(desc, s.Token())
			list := ast.NewStmtList(s.Token())
			list.Stmts = []ast.Stmt{s, fill}
			list.SetResolved(true)
			return list
		}
		ret := ast.NewReturn(s.Token(), s.X)
		ret.Implicit = true
		ret.SetResolved(true)
		return ret

	case *ast.Block:
		r.rewriteTailBlock(desc, s)
		return s

	case *ast.If:
		s.Then = r.rewriteTailStmt(desc, s.Then)
		if s.Else != nil {
			s.Else = r.rewriteTailStmt(desc, s.Else)
		} else {
			s.Else = r.implicitNullOrError(desc, s.Token())
		}
		return s

	case *ast.StmtList:
		if len(s.Stmts) == 0 {
			fill := r.implicitNullOrError(desc, s.Token())
			s.Stmts = []ast.Stmt{fill}
			return s
		}
		last := len(s.Stmts) - 1
		s.Stmts[last] = r.rewriteTailStmt(desc, s.Stmts[last])
		return s

	default:
		// A trailing statement with no expression value (loop, throw, var
		// decl, ...) falls through to an implicit `return null`/error.
		fill := r.implicitNullOrError(desc, stmt.Token())
		list := ast.NewStmtList(stmt.Token())
		list.Stmts = []ast.Stmt{stmt, fill}
		list.SetResolved(true)
		return list
	}
}

func (r *Resolver) implicitNullOrError(desc *ast.FunctionDescriptor, tok token.Token) *ast.Return {
	if isPrimitiveKind(desc.ReturnType) {
		r.errorf(tok, "function %q must return a value of type %s on every path", desc.Name, desc.ReturnType)
	}
	ret := ast.NewReturn(tok, nil)
	ret.Implicit = true
	ret.SetResolved(true)
	return ret
}

func isPrimitiveKind(t types.Type) bool {
	if t == nil {
		return false
	}
	switch t.Kind() {
	case types.KindBool, types.KindByte, types.KindInt, types.KindLong, types.KindDouble, types.KindDecimal:
		return true
	}
	return false
}
