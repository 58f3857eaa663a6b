package resolver

import (
	"testing"

	"github.com/tidwall/gjson"
)

// TestResolveRoundTrip parses and resolves the same source twice,
// independently, and checks that the two DumpJSON outputs agree at every
// listed path; it does not feed a serialised AST back into the resolver.
// Rather than diffing Go structs directly (VarDeclID/FunctionDescriptor
// pointers differ by allocation order between two independent resolutions),
// it compares the two outputs path-by-path with gjson, which is stable under
// that kind of identity churn as long as the shape and values agree.
func TestResolveRoundTrip(t *testing.T) {
	src := `def add(int x, int y = 1) {
  def inner() { x + y }
  inner()
}
add(1)
`
	paths := []string{
		"fun_decl.body.stmts.0.kind",
		"fun_decl.body.stmts.0.name",
		"fun_decl.body.stmts.0.is_async",
		"fun_decl.body.stmts.0.body.stmts.0.kind",
		"fun_decl.body.stmts.1.kind",
		"fun_decl.body.stmts.1.x.kind",
		"fun_decl.body.stmts.1.x.resolved_func",
	}

	first := parseAndResolveScript(t, src)
	firstJSON, err := DumpJSON(first)
	if err != nil {
		t.Fatalf("DumpJSON (first): %v", err)
	}

	second := parseAndResolveScript(t, src)
	secondJSON, err := DumpJSON(second)
	if err != nil {
		t.Fatalf("DumpJSON (second): %v", err)
	}

	for _, path := range paths {
		a := gjson.Get(firstJSON, path)
		b := gjson.Get(secondJSON, path)
		if a.String() != b.String() {
			t.Errorf("path %q diverged across re-resolution: %q vs %q", path, a.String(), b.String())
		}
	}
}

// TestResolveRoundTripConstFold checks that constant folding turns `2 + 3`
// in a function body into the constant 5, observed through the same
// gjson-over-DumpJSON lens as the structural round trip above.
func TestResolveRoundTripConstFold(t *testing.T) {
	src := `def f() { 2 + 3 }
`
	fd := parseAndResolveScript(t, src)
	doc, err := DumpJSON(fd)
	if err != nil {
		t.Fatalf("DumpJSON: %v", err)
	}
	ret := gjson.Get(doc, "fun_decl.body.stmts.0.stmts.0.body.stmts.0.x")
	if !ret.Get("const_value").Exists() {
		t.Fatalf("expected folded literal to carry a const_value, got: %s", ret.Raw)
	}
	if got := ret.Get("const_value").Int(); got != 5 {
		t.Errorf("expected 2 + 3 to fold to 5, got %d", got)
	}
}
