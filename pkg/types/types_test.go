package types

import "testing"

func TestResultPromotion(t *testing.T) {
	tests := []struct {
		left, right Type
		op          string
		want        Type
	}{
		{Int, Long, "+", Long},
		{Byte, Int, "+", Int},
		{Long, Double, "*", Double},
		{Double, Decimal, "+", Decimal},
		{Int, Int, "+", Int},
	}
	for _, tt := range tests {
		got, err := Result(tt.left, tt.op, tt.right)
		if err != nil {
			t.Fatalf("Result(%s,%s,%s) error: %v", tt.left, tt.op, tt.right, err)
		}
		if got != tt.want {
			t.Fatalf("Result(%s,%s,%s) = %s, want %s", tt.left, tt.op, tt.right, got, tt.want)
		}
	}
}

func TestResultStringPromotion(t *testing.T) {
	got, err := Result(String, "+", Int)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != String {
		t.Fatalf("Result(String,+,Int) = %s, want String", got)
	}
}

func TestIsAssignableFromNumericWidening(t *testing.T) {
	if !Long.IsAssignableFrom(Int) {
		t.Fatalf("long should accept int")
	}
	if Int.IsAssignableFrom(Long) {
		t.Fatalf("int should not accept long (narrowing)")
	}
}

func TestUnknownAssignableEverywhere(t *testing.T) {
	if !Int.IsAssignableFrom(Unknown) {
		t.Fatalf("any concrete type must accept unknown as a placeholder source")
	}
}

func TestArrayElement(t *testing.T) {
	arr := NewArrayType(Int)
	if arr.ArrayElement() != Int {
		t.Fatalf("ArrayElement() = %v, want Int", arr.ArrayElement())
	}
	if Int.ArrayElement() != nil {
		t.Fatalf("non-array ArrayElement() should be nil")
	}
}

func TestIsCastableToAny(t *testing.T) {
	if !Int.IsCastableTo(Any) {
		t.Fatalf("every type should be castable to any")
	}
}
