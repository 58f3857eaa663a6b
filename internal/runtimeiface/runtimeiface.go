// Package runtimeiface declares, as pure Go interfaces, the runtime
// contract spec.md §6.2 says the resolver consumes but never implements:
// built-in function lookup, the class/package registry, value-coercion
// helpers, the marker types for named-argument maps, and the async
// scheduler. The backend code generator and runtime library (both out of
// scope per spec §1) provide the real implementations; tests in
// internal/resolver depend only on these interfaces plus a small fake.
package runtimeiface

import "github.com/jactl-go/jactlc/pkg/ast"

// BuiltinRegistry answers "is this name a built-in function/method, and is
// it async" (spec §6.2: "Built-in functions: name -> function descriptor
// (with is_async), lookup by method-of(type, name)").
type BuiltinRegistry interface {
	// Lookup finds a global built-in function by name.
	Lookup(name string) (*ast.FunctionDescriptor, bool)
	// MethodOf finds a built-in method declared on values of typeName
	// (e.g. "List", "Map", "String").
	MethodOf(typeName, methodName string) (*ast.FunctionDescriptor, bool)
}

// ClassRegistry is the class/package lookup contract (spec §6.2: "Class
// registry: class_descriptor(package, name), package_exists(name)").
type ClassRegistry interface {
	ClassDescriptor(pkg, name string) (*ast.ClassDescriptor, bool)
	PackageExists(name string) bool
}

// ValueCoercion groups the runtime value-coercion helpers the resolver's
// constant folder and wrapper synthesis call into (spec §6.2: "Value
// coercion helpers: truthiness, numeric conversions, map/list append for
// folded constants, decimal arithmetic with configurable scale, regex
// negation for numeric literals").
type ValueCoercion interface {
	Truthy(v any) bool
	ToNumeric(v any) (any, bool)
	AppendConst(collection, value any) (any, bool)
	DecimalArith(op string, left, right any, scale int) (any, error)
}

// Scheduler is the async execution environment's contract (spec §6.2:
// "only referenced by emitted code, never invoked by the core"); the
// resolver never calls these, it only needs the type to exist so emitted
// code referencing scheduling primitives type-checks against a known
// shape.
type Scheduler interface {
	ScheduleEvent(ctx any, task func())
	ScheduleEventAfter(ctx any, task func(), delayMillis int64)
	ScheduleBlocking(task func())
}

// NamedArgsMap marks a map value as a single named-arguments argument
// (spec GLOSSARY: "Named arguments"; §6.2 marker classes). The wrapper
// detects this marker to switch into named-binding mode.
type NamedArgsMap map[string]any

// NamedArgsMapCopy is the defensive copy a wrapper makes of a NamedArgsMap
// before consuming (deleting) keys from it, so the caller's original map is
// never mutated (spec §4.2 wrapper responsibility 1: "copy it before
// consuming keys").
type NamedArgsMapCopy map[string]any

// CopyNamedArgs produces a NamedArgsMapCopy from a NamedArgsMap.
func CopyNamedArgs(m NamedArgsMap) NamedArgsMapCopy {
	c := make(NamedArgsMapCopy, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}
