// Package types implements the type system described in spec §3.2: the
// lattice of primitive, reference and placeholder types the resolver uses to
// annotate every expression, plus the conversion/assignability rules and the
// arithmetic-result-type helper the resolver's operator checks depend on.
package types

import "fmt"

// Kind discriminates the Type variants.
type Kind int

const (
	KindBool Kind = iota
	KindByte
	KindInt
	KindLong
	KindDouble
	KindDecimal
	KindString
	KindMap
	KindList
	KindIterator
	KindArray
	KindClass
	KindInstance
	KindFunction
	KindAny
	KindUnknown
	KindMatcher
)

// Type is implemented by every type variant in the lattice.
type Type interface {
	Kind() Kind
	String() string

	IsPrimitive() bool
	IsNumeric() bool
	IsRef() bool

	// Boxed returns the reference-typed ("boxed") form of a type. In this
	// lattice primitives box to themselves (see init below), and
	// non-primitives return the receiver unchanged.
	Boxed() Type
	// Unboxed returns the primitive form of a boxed type; for primitives
	// and non-boxable types it returns the receiver unchanged.
	Unboxed() Type

	IsCastableTo(other Type) bool
	IsAssignableFrom(other Type) bool

	// ArrayElement returns the element type for an Array type, or nil for
	// any other Kind.
	ArrayElement() Type
}

// primitive implements Type for the fixed, numeric-ordered scalar types.
type primitive struct {
	kind Kind
	name string
	rank int // position in the byte < int < long < double < decimal ladder; -1 for bool
}

func (p *primitive) Kind() Kind      { return p.kind }
func (p *primitive) String() string  { return p.name }
func (p *primitive) IsPrimitive() bool { return true }
func (p *primitive) IsNumeric() bool   { return p.rank >= 0 }
func (p *primitive) IsRef() bool       { return false }
func (p *primitive) ArrayElement() Type { return nil }

func (p *primitive) Boxed() Type {
	if b, ok := boxedOf[p.kind]; ok {
		return b
	}
	return p
}

func (p *primitive) Unboxed() Type { return p }

func (p *primitive) IsCastableTo(other Type) bool {
	if other == nil {
		return false
	}
	if other.Kind() == KindAny {
		return true
	}
	if op, ok := other.(*primitive); ok {
		if p.IsNumeric() && op.IsNumeric() {
			return true
		}
		if p.kind == KindString || op.kind == KindString {
			// Every primitive is castable to/from string via stringification/parsing.
			return true
		}
		return p.kind == op.kind
	}
	return false
}

func (p *primitive) IsAssignableFrom(other Type) bool {
	if other == nil {
		return false
	}
	if other.Kind() == KindUnknown || other.Kind() == KindAny {
		return true
	}
	op, ok := other.(*primitive)
	if !ok {
		return false
	}
	if p.kind == op.kind {
		return true
	}
	// A narrower numeric type is assignable to a wider one (byte -> int -> long -> double -> decimal).
	if p.IsNumeric() && op.IsNumeric() {
		return op.rank <= p.rank
	}
	return false
}

// Well-known primitive singletons.
var (
	Bool    = &primitive{kind: KindBool, name: "boolean", rank: -1}
	Byte    = &primitive{kind: KindByte, name: "byte", rank: 0}
	Int     = &primitive{kind: KindInt, name: "int", rank: 1}
	Long    = &primitive{kind: KindLong, name: "long", rank: 2}
	Double  = &primitive{kind: KindDouble, name: "double", rank: 3}
	Decimal = &primitive{kind: KindDecimal, name: "Decimal", rank: 4}
	String  = &primitive{kind: KindString, name: "String", rank: -1}
)

// numericRank order, lowest to highest, per spec §3.2.
var numericOrder = []*primitive{Byte, Int, Long, Double, Decimal}

// refType implements the handful of built-in reference types that have no
// further structure (map, list, iterator, any, unknown, matcher).
type refType struct {
	kind Kind
	name string
}

func (r *refType) Kind() Kind        { return r.kind }
func (r *refType) String() string    { return r.name }
func (r *refType) IsPrimitive() bool { return false }
func (r *refType) IsNumeric() bool   { return false }
func (r *refType) IsRef() bool       { return true }
func (r *refType) Boxed() Type       { return r }
func (r *refType) Unboxed() Type     { return r }
func (r *refType) ArrayElement() Type { return nil }

func (r *refType) IsCastableTo(other Type) bool {
	if other == nil {
		return false
	}
	if other.Kind() == KindAny || r.kind == KindAny {
		return true
	}
	return r.kind == other.Kind()
}

func (r *refType) IsAssignableFrom(other Type) bool {
	if other == nil {
		return false
	}
	if r.kind == KindAny {
		return true
	}
	if other.Kind() == KindUnknown {
		return true
	}
	return r.kind == other.Kind()
}

var (
	Map      = &refType{kind: KindMap, name: "Map"}
	List     = &refType{kind: KindList, name: "List"}
	Iterator = &refType{kind: KindIterator, name: "Iterator"}
	Any      = &refType{kind: KindAny, name: "def"}
	// Unknown is only valid as the placeholder declared type of a variable
	// whose initialiser has not yet been resolved (spec §3.2 invariant); it
	// must never survive to be the final `type` of a resolved expression.
	Unknown = &refType{kind: KindUnknown, name: "unknown"}
	// Matcher is an opaque marker for regex runtime state; the runtime
	// library owns its representation entirely (spec §3.2).
	Matcher = &refType{kind: KindMatcher, name: "Matcher"}
)

// ArrayType represents element[] arrays.
type ArrayType struct {
	Element Type
}

func NewArrayType(element Type) *ArrayType { return &ArrayType{Element: element} }

func (a *ArrayType) Kind() Kind        { return KindArray }
func (a *ArrayType) String() string    { return a.Element.String() + "[]" }
func (a *ArrayType) IsPrimitive() bool { return false }
func (a *ArrayType) IsNumeric() bool   { return false }
func (a *ArrayType) IsRef() bool       { return true }
func (a *ArrayType) Boxed() Type       { return a }
func (a *ArrayType) Unboxed() Type     { return a }
func (a *ArrayType) ArrayElement() Type { return a.Element }

func (a *ArrayType) IsCastableTo(other Type) bool {
	if other == nil {
		return false
	}
	if other.Kind() == KindAny {
		return true
	}
	oa, ok := other.(*ArrayType)
	return ok && a.Element.IsCastableTo(oa.Element)
}

func (a *ArrayType) IsAssignableFrom(other Type) bool {
	if other == nil {
		return false
	}
	if other.Kind() == KindUnknown {
		return true
	}
	oa, ok := other.(*ArrayType)
	return ok && a.Element.IsAssignableFrom(oa.Element)
}

// FunctionType represents the statically-known shape of a function value:
// used for the "function" variant of spec §3.2, distinct from the per-
// declaration FunctionDescriptor in pkg/ast which also carries names,
// defaults and wrapper linkage.
type FunctionType struct {
	ParamTypes []Type
	ReturnType Type
}

func (f *FunctionType) Kind() Kind        { return KindFunction }
func (f *FunctionType) IsPrimitive() bool { return false }
func (f *FunctionType) IsNumeric() bool   { return false }
func (f *FunctionType) IsRef() bool       { return true }
func (f *FunctionType) Boxed() Type       { return f }
func (f *FunctionType) Unboxed() Type     { return f }
func (f *FunctionType) ArrayElement() Type { return nil }

func (f *FunctionType) String() string {
	s := "("
	for i, p := range f.ParamTypes {
		if i > 0 {
			s += ","
		}
		s += p.String()
	}
	return s + ") -> " + f.ReturnType.String()
}

func (f *FunctionType) IsCastableTo(other Type) bool {
	return other != nil && (other.Kind() == KindAny || other.Kind() == KindFunction)
}

func (f *FunctionType) IsAssignableFrom(other Type) bool {
	return other != nil && (other.Kind() == KindUnknown || other.Kind() == KindFunction)
}

// ClassDescriptor is the minimal shape this package needs to know about a
// class in order to build Class/Instance types; the full descriptor
// (fields, methods, inheritance) lives in pkg/ast/symbols.go, whose
// *ClassDescriptor implements this interface.
type ClassDescriptor interface {
	PackagedName() string
	IsSubclassOf(other ClassDescriptor) bool
}

// ClassType is the "class" variant: the type of a class value itself
// (e.g. what `MyClass` denotes when used as a value, not as a constructor
// call target).
type ClassType struct {
	Descriptor ClassDescriptor
}

func (c *ClassType) Kind() Kind        { return KindClass }
func (c *ClassType) String() string    { return "Class<" + c.Descriptor.PackagedName() + ">" }
func (c *ClassType) IsPrimitive() bool { return false }
func (c *ClassType) IsNumeric() bool   { return false }
func (c *ClassType) IsRef() bool       { return true }
func (c *ClassType) Boxed() Type       { return c }
func (c *ClassType) Unboxed() Type     { return c }
func (c *ClassType) ArrayElement() Type { return nil }

func (c *ClassType) IsCastableTo(other Type) bool {
	return other != nil && (other.Kind() == KindAny || other.Kind() == KindClass)
}

func (c *ClassType) IsAssignableFrom(other Type) bool {
	if other == nil {
		return false
	}
	if other.Kind() == KindUnknown {
		return true
	}
	oc, ok := other.(*ClassType)
	return ok && oc.Descriptor == c.Descriptor
}

// InstanceType is the "instance" variant: the type of a value that is an
// instance of a given class (what a parameter typed `MyClass x` actually
// holds).
type InstanceType struct {
	Descriptor ClassDescriptor
}

func (i *InstanceType) Kind() Kind        { return KindInstance }
func (i *InstanceType) String() string    { return i.Descriptor.PackagedName() }
func (i *InstanceType) IsPrimitive() bool { return false }
func (i *InstanceType) IsNumeric() bool   { return false }
func (i *InstanceType) IsRef() bool       { return true }
func (i *InstanceType) Boxed() Type       { return i }
func (i *InstanceType) Unboxed() Type     { return i }
func (i *InstanceType) ArrayElement() Type { return nil }

func (i *InstanceType) IsCastableTo(other Type) bool {
	if other == nil {
		return false
	}
	if other.Kind() == KindAny {
		return true
	}
	oi, ok := other.(*InstanceType)
	if !ok {
		return false
	}
	return i.Descriptor.IsSubclassOf(oi.Descriptor) || oi.Descriptor.IsSubclassOf(i.Descriptor)
}

func (i *InstanceType) IsAssignableFrom(other Type) bool {
	if other == nil {
		return false
	}
	if other.Kind() == KindUnknown {
		return true
	}
	oi, ok := other.(*InstanceType)
	return ok && oi.Descriptor.IsSubclassOf(i.Descriptor)
}

// Result returns the arithmetic result type of `left op right`, implementing
// spec §3.2's `result(left, op, right)` helper: numeric promotion along
// byte < int < long < double < decimal, with `+`/`*` additionally promoting
// to string when either operand is a string.
func Result(left Type, op string, right Type) (Type, error) {
	if left == nil || right == nil {
		return nil, fmt.Errorf("result: nil operand type")
	}
	if (op == "+" || op == "*") && (left.Kind() == KindString || right.Kind() == KindString) {
		return String, nil
	}
	lp, lok := asNumeric(left)
	rp, rok := asNumeric(right)
	if !lok || !rok {
		if left.Kind() == KindAny || right.Kind() == KindAny {
			return Any, nil
		}
		return nil, fmt.Errorf("incompatible operand types %s %s %s", left, op, right)
	}
	if lp.rank >= rp.rank {
		return lp, nil
	}
	return rp, nil
}

func asNumeric(t Type) (*primitive, bool) {
	p, ok := t.(*primitive)
	if !ok || !p.IsNumeric() {
		return nil, false
	}
	return p, true
}

var boxedOf = map[Kind]Type{}

func init() {
	// Primitives box to themselves in this lattice: the distinction between
	// a primitive and its boxed ("any"-compatible) form is made by the
	// resolver/codegen at the value-representation level, not by a separate
	// static type here. Exposed for symmetry with spec §3.2's operation list.
	for _, p := range numericOrder {
		boxedOf[p.kind] = p
	}
	boxedOf[KindBool] = Bool
}
