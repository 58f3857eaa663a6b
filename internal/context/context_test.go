package context

import (
	"testing"

	"github.com/jactl-go/jactlc/pkg/ast"
)

func TestRegisterSourceAssignsSequentialIDs(t *testing.T) {
	ctx := New(Flags{})
	id0 := ctx.RegisterSource("a.jactl", "int x = 1")
	id1 := ctx.RegisterSource("b.jactl", "int y = 2")
	if id0 != 0 || id1 != 1 {
		t.Fatalf("expected ids 0,1 got %d,%d", id0, id1)
	}

	name, text, ok := ctx.Source(id0)
	if !ok || name != "a.jactl" || text != "int x = 1" {
		t.Fatalf("unexpected source: %q %q %v", name, text, ok)
	}

	u0, ok := ctx.SourceUUID(id0)
	if !ok || u0.String() == "" {
		t.Fatal("expected a non-empty UUID for registered source")
	}
	u1, _ := ctx.SourceUUID(id1)
	if u0 == u1 {
		t.Fatal("expected distinct UUIDs per source")
	}
}

func TestClassRegistryAndPackageExists(t *testing.T) {
	ctx := New(Flags{})
	desc := ast.NewClassDescriptor("Point", "geom.Point")
	ctx.RegisterClass(desc)

	got, ok := ctx.ClassDescriptor("", "geom.Point")
	if !ok || got != desc {
		t.Fatalf("expected to find registered class, got %v %v", got, ok)
	}

	if !ctx.PackageExists("geom") {
		t.Fatal("expected package geom to exist")
	}
	if ctx.PackageExists("nope") {
		t.Fatal("did not expect package nope to exist")
	}
}

func TestGlobalsRoundTrip(t *testing.T) {
	ctx := New(Flags{REPL: true})
	ctx.SetGlobal("x", 42)
	v, ok := ctx.Global("x")
	if !ok || v != 42 {
		t.Fatalf("expected x=42, got %v %v", v, ok)
	}
	names := ctx.GlobalNames()
	if len(names) != 1 || names[0] != "x" {
		t.Fatalf("unexpected global names: %v", names)
	}
}

func TestNewFromConfig(t *testing.T) {
	ctx := NewFromConfig(Config{ConstantFolding: true, REPL: true})
	if !ctx.Flags().ConstantFolding || !ctx.Flags().REPL {
		t.Fatalf("flags not propagated from config: %+v", ctx.Flags())
	}
	if ctx.Flags().TestAsync {
		t.Fatal("expected TestAsync false by default")
	}
}
