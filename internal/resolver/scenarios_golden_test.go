package resolver

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/jactl-go/jactlc/pkg/ast"
)

// TestScenarioS2CapturedSnapshot covers spec §8 scenario S2: a top-level
// variable captured by a sibling function as a heap-local, with a later
// sibling's initialiser taking the current (pre-capture) value rather than
// the heap-local cell itself.
func TestScenarioS2CapturedSnapshot(t *testing.T) {
	src := `int x = 1
def g(){ x }
def x2 = x
g()
`
	main := parseAndResolveScript(t, src)

	var xVD *ast.VarDecl
	var x2VD *ast.VarDecl
	body := main.Body.(*ast.Block)
	for _, st := range body.Stmts {
		switch s := st.(type) {
		case *ast.VarDeclStmt:
			switch s.Name {
			case "x":
				xVD = s.VarDecl
			case "x2":
				x2VD = s.VarDecl
			}
		}
	}
	if xVD == nil {
		t.Fatalf("variable x not found")
	}
	if !xVD.IsHeapLocal {
		t.Errorf("expected x to be promoted to heap-local once captured by g, got IsHeapLocal=false")
	}
	if x2VD == nil {
		t.Fatalf("variable x2 not found")
	}
	if id, ok := x2VD.Initialiser.(*ast.Identifier); !ok || id.Name != "x" {
		t.Errorf("expected x2's initialiser to reference x directly (a snapshot read, not a heap-local alias), got %#v", x2VD.Initialiser)
	}
}

// TestScenarioS4MapLiteralClassInit covers spec §8 scenario S4: a class
// with a defaulted field resolves cleanly when declared with an empty map
// literal initialiser; the resolver does not reject the type mismatch
// between the declared class type and the map-literal initialiser, since
// the `[:]`-to-instance coercion is a runtime/codegen concern (the
// synthesized init wrapper it routes through, spec §4.2 "Init method for
// classes", lives outside what this resolver or its tests execute).
func TestScenarioS4MapLiteralClassInit(t *testing.T) {
	src := `class A { int i = 2; def f(){ i } }
A a = [:]
a.f()
`
	main := parseAndResolveScript(t, src)

	var classDecl *ast.ClassDecl
	body := main.Body.(*ast.Block)
	for _, st := range body.Stmts {
		if cd, ok := st.(*ast.ClassDecl); ok && cd.Name == "A" {
			classDecl = cd
		}
	}
	if classDecl == nil {
		t.Fatalf("class A not found in resolved tree")
	}
	desc := classDecl.Descriptor
	field, ok := desc.FieldsByName["i"]
	if !ok {
		t.Fatalf("field i not found on class A")
	}
	if field.Mandatory {
		t.Errorf("expected field i to have a default and not be mandatory")
	}
	lit, ok := field.Default.(*ast.Literal)
	if !ok || lit.Value != int64(2) {
		t.Errorf("expected field i's default to be literal 2, got %#v", field.Default)
	}
	if desc.InitWrapper == nil {
		t.Errorf("expected class A to have a synthesized init wrapper (spec §4.2), got nil")
	}
}

// TestScenarioS5SwitchUniqueCaseLiterals covers spec §8 scenario S5 (and
// property/invariant "resolver enforces each case literal unique"): a
// switch over distinct literal cases resolves cleanly, and its shape is
// golden-snapshotted via the resolved-AST JSON dump.
func TestScenarioS5SwitchUniqueCaseLiterals(t *testing.T) {
	src := `def x = 2
switch (x) { 1 -> "one"; 2, 3 -> "small"; default -> "other" }
`
	fd := parseAndResolveScript(t, src)
	doc, err := DumpJSON(fd)
	if err != nil {
		t.Fatalf("DumpJSON: %v", err)
	}
	snaps.MatchJSON(t, doc)
}

// TestScenarioS5SwitchDuplicateCaseLiteralIsError covers the converse: two
// case arms sharing the same literal value must be rejected.
func TestScenarioS5SwitchDuplicateCaseLiteralIsError(t *testing.T) {
	src := `def x = 2
switch (x) { 1 -> "one"; 1 -> "duplicate"; default -> "other" }
`
	fd, errs := parseAndResolveScriptExpectErrors(t, src)
	_ = fd
	if !errs.HasErrors() {
		t.Fatalf("expected a duplicate-case-literal compile error, got none")
	}
}

// TestScenarioS6FieldOpAssignCreateIfMissingChain covers spec §8 property 6
// / scenario S6: `a.b.c += 5` marks create_if_missing on every FieldAccess
// in the parent chain except the final one.
func TestScenarioS6FieldOpAssignCreateIfMissingChain(t *testing.T) {
	src := `def a = [:]
a.b.c += 5
`
	fd := parseAndResolveScript(t, src)
	body := fd.Body.(*ast.Block)

	var opAssign *ast.FieldOpAssign
	for _, st := range body.Stmts {
		es, ok := st.(*ast.ExprStmt)
		if !ok {
			continue
		}
		if oa, ok := es.X.(*ast.FieldOpAssign); ok {
			opAssign = oa
		}
	}
	if opAssign == nil {
		t.Fatalf("expected a FieldOpAssign statement, found none")
	}

	// opAssign.Target is the final `.c` access; its Parent is `.b`, which
	// must have create_if_missing set, while `.c` itself (the final access
	// in the chain) must not.
	finalAccess := opAssign.Target
	if finalAccess.CreateIfMissing {
		t.Errorf("expected the final FieldAccess (.c) to NOT have create_if_missing set")
	}
	parentAccess, ok := finalAccess.Parent.(*ast.FieldAccess)
	if !ok {
		t.Fatalf("expected the parent of .c to be a FieldAccess (.b), got %#v", finalAccess.Parent)
	}
	if !parentAccess.CreateIfMissing {
		t.Errorf("expected the intermediate FieldAccess (.b) to have create_if_missing set")
	}

	doc, err := DumpJSON(fd)
	if err != nil {
		t.Fatalf("DumpJSON: %v", err)
	}
	snaps.MatchJSON(t, doc)
}
