package cmd

import (
	"github.com/jactl-go/jactlc/pkg/ast"
)

// emptyBuiltins/emptyCoercion are minimal runtimeiface implementations for
// the CLI: the runtime's actual built-in function table and value-coercion
// helpers live in the backend/runtime library, explicitly out of scope for
// this repo (spec §1, §6.2 "provided by the runtime, never implemented
// here"). The CLI still needs *something* satisfying runtimeiface.BuiltinRegistry/
// ValueCoercion to drive the resolver end to end, so it wires these no-op
// stand-ins rather than leaving `resolve` unbuildable.
type emptyBuiltins struct{}

func (emptyBuiltins) Lookup(name string) (*ast.FunctionDescriptor, bool) { return nil, false }

func (emptyBuiltins) MethodOf(typeName, methodName string) (*ast.FunctionDescriptor, bool) {
	return nil, false
}

type emptyCoercion struct{}

func (emptyCoercion) Truthy(v any) bool { return v != nil && v != false }

func (emptyCoercion) ToNumeric(v any) (any, bool) {
	switch v.(type) {
	case int64, float64:
		return v, true
	default:
		return nil, false
	}
}

func (emptyCoercion) AppendConst(collection, value any) (any, bool) { return nil, false }

func (emptyCoercion) DecimalArith(op string, left, right any, scale int) (any, error) {
	return nil, nil
}
