package resolver

import (
	"testing"

	cerrors "github.com/jactl-go/jactlc/internal/errors"

	"github.com/jactl-go/jactlc/internal/context"
	"github.com/jactl-go/jactlc/internal/lexer"
	"github.com/jactl-go/jactlc/internal/parser"
	"github.com/jactl-go/jactlc/pkg/ast"
)

// fakeBuiltins is the smallest BuiltinRegistry that answers "no" to every
// lookup, enough to exercise resolution of scripts that only reference
// user-declared functions/variables (spec §6.2: the resolver only
// consumes this contract, it never implements it).
type fakeBuiltins struct{}

func (fakeBuiltins) Lookup(name string) (*ast.FunctionDescriptor, bool) { return nil, false }
func (fakeBuiltins) MethodOf(typeName, methodName string) (*ast.FunctionDescriptor, bool) {
	return nil, false
}

// fakeCoercion implements just enough of ValueCoercion for the constant
// folder to exercise list-literal folding and decimal arithmetic in tests.
type fakeCoercion struct{}

func (fakeCoercion) Truthy(v any) bool { return v != nil && v != false }

func (fakeCoercion) ToNumeric(v any) (any, bool) {
	switch v.(type) {
	case int64, float64:
		return v, true
	default:
		return nil, false
	}
}

func (fakeCoercion) AppendConst(collection, value any) (any, bool) {
	list, ok := collection.([]any)
	if !ok {
		return nil, false
	}
	return append(list, value), true
}

func (fakeCoercion) DecimalArith(op string, left, right any, scale int) (any, error) {
	return nil, nil
}

// parseAndResolveScript runs source through the parser and resolver end to
// end, mirroring the teacher's lexer.New -> parser.New -> analyzer style
// test setup, and fails the test immediately on any parse/resolve error.
func parseAndResolveScript(t *testing.T, src string) *ast.FunDecl {
	t.Helper()
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
	if r.Errors().HasErrors() {
		t.Fatalf("resolver errors: %v", r.Errors().Errors())
	}
	return main
}

// parseAndResolveScriptExpectErrors is parseAndResolveScript's counterpart
// for negative tests: it fails on a parser error (the script must at least
// parse) but returns the resolver's error list instead of asserting it is
// empty, for tests asserting a specific resolve-time rejection.
func parseAndResolveScriptExpectErrors(t *testing.T, src string) (*ast.FunDecl, *cerrors.List) {
	t.Helper()
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
	return main, r.Errors()
}
