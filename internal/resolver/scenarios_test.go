package resolver

import (
	"testing"

	"github.com/jactl-go/jactlc/internal/context"
	"github.com/jactl-go/jactlc/internal/lexer"
	"github.com/jactl-go/jactlc/internal/parser"
	"github.com/jactl-go/jactlc/pkg/ast"
)

// TestScenarioS1ParamClosureHeapLocal covers spec §8 scenario S1: a
// parameter closed over by a later parameter's default-initialiser closure
// is promoted to heap-local, and is_passed_as_heap_local so the wrapper
// knows to pre-promote it before invoking the body.
func TestScenarioS1ParamClosureHeapLocal(t *testing.T) {
	src := `def f(x, y = { x++ }) { y(); x }
`
	main := parseAndResolveScript(t, src)
	fd := findNestedFunDecl(main, func(d *ast.FunDecl) bool { return d.Name == "f" })
	if fd == nil {
		t.Fatalf("function f not found in resolved tree")
	}
	xVD := findParam(fd, "x")
	if xVD == nil {
		t.Fatalf("parameter x not found")
	}
	if !xVD.IsHeapLocal {
		t.Errorf("expected x to be promoted to heap-local, got IsHeapLocal=false")
	}
	if !xVD.IsPassedAsHeapLocal {
		t.Errorf("expected x to be marked is_passed_as_heap_local (closed over by a sibling parameter's default), got false")
	}
}

// TestScenarioS3ForwardReferenceError covers spec §8 scenario S3: a forward
// reference to a sibling function that itself closes over a not-yet
// declared variable is a compile error, not a greedy forward-reference
// success.
func TestScenarioS3ForwardReferenceError(t *testing.T) {
	src := `def f(x){ g(x) }
def v = 1
def g(x){ v + x }
f(10)
`
	arena := ast.NewVarDeclArena()
	lx := lexer.New(0, src)
	p := parser.New(lx, src, "<test>", arena)
	main := p.ParseScript("Script")
	if p.Errors().HasErrors() {
		t.Fatalf("parser errors: %v", p.Errors().Errors())
	}
	ctx := context.New(context.Flags{ConstantFolding: true})
	r := New(arena, ctx, fakeBuiltins{}, fakeCoercion{}, src, "<test>")
	r.ResolveScript(main)
	if !r.Errors().HasErrors() {
		t.Fatalf("expected a forward-reference compile error, got none")
	}
}

// TestImplicitItClosureNeverInvoked covers spec §8 property 9: a
// never-invoked implicit-it closure loses its `it` parameter and becomes a
// plain Block.
func TestImplicitItClosureNeverInvoked(t *testing.T) {
	src := `def y = { 1 + 1 }
y
`
	fd := parseAndResolveScript(t, src)
	closureFD := findNestedFunDecl(fd, func(d *ast.FunDecl) bool { return d.IsClosure })
	if closureFD == nil {
		t.Fatalf("expected a closure FunDecl in the resolved tree")
	}
	if closureFD.ImplicitIt {
		t.Errorf("expected ImplicitIt cleared for a never-invoked implicit-it closure")
	}
	for _, p := range closureFD.Params {
		if p.Name == "it" {
			t.Errorf("expected the it parameter to be stripped once unused, found: %+v", p)
		}
	}
}

// TestImplicitItClosureInvokedKeepsParam is the converse of the above: a
// closure that IS called through its bound name keeps ImplicitIt and its
// `it` parameter intact.
func TestImplicitItClosureInvokedKeepsParam(t *testing.T) {
	src := `def y = { it + 1 }
y(41)
`
	fd := parseAndResolveScript(t, src)
	closureFD := findNestedFunDecl(fd, func(d *ast.FunDecl) bool { return d.IsClosure })
	if closureFD == nil {
		t.Fatalf("expected a closure FunDecl in the resolved tree")
	}
	if !closureFD.ImplicitIt {
		t.Errorf("expected ImplicitIt preserved for an invoked closure")
	}
	if findParam(closureFD, "it") == nil {
		t.Errorf("expected the it parameter to survive on an invoked closure")
	}
}

func findParam(fd *ast.FunDecl, name string) *ast.VarDecl {
	for _, p := range fd.Params {
		if p.Name == name {
			return p.VarDecl
		}
	}
	return nil
}

func findNestedFunDecl(fd *ast.FunDecl, pred func(*ast.FunDecl) bool) *ast.FunDecl {
	if pred(fd) {
		return fd
	}
	var found *ast.FunDecl
	var walkStmt func(ast.Stmt)
	var walkExpr func(ast.Expr)
	walkExpr = func(e ast.Expr) {
		if e == nil || found != nil {
			return
		}
		if c, ok := e.(*ast.Closure); ok && c.FunDecl != nil {
			if pred(c.FunDecl) {
				found = c.FunDecl
				return
			}
			walkStmt(c.FunDecl.Body)
		}
	}
	walkStmt = func(s ast.Stmt) {
		if s == nil || found != nil {
			return
		}
		switch n := s.(type) {
		case *ast.Block:
			for _, st := range n.Stmts {
				walkStmt(st)
			}
		case *ast.StmtList:
			for _, st := range n.Stmts {
				walkStmt(st)
			}
		case *ast.ExprStmt:
			walkExpr(n.X)
		case *ast.Return:
			walkExpr(n.X)
		case *ast.VarDeclStmt:
			walkExpr(n.Initialiser)
		case *ast.FunDecl:
			if pred(n) {
				found = n
				return
			}
			walkStmt(n.Body)
		}
	}
	walkStmt(fd.Body)
	return found
}
