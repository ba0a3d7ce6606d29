package types_test

import (
	"testing"

	"github.com/malphas-lang/malphas-lang/internal/types"
)

func TestLookupRoundTrip(t *testing.T) {
	cases := map[string]types.Type{
		"boolean": types.Boolean,
		"i8":      types.I8,
		"i128":    types.I128,
		"f16":     types.F16,
		"f128":    types.F128,
		"pointer": types.Pointer,
	}
	for name, want := range cases {
		got, err := types.Lookup(name)
		if err != nil {
			t.Fatalf("Lookup(%q): unexpected error: %v", name, err)
		}
		if got != want {
			t.Fatalf("Lookup(%q) = %v, want %v", name, got, want)
		}
		if got.String() != name {
			t.Fatalf("%v.String() = %q, want %q", got, got.String(), name)
		}
	}
}

func TestLookupUnknownName(t *testing.T) {
	if _, err := types.Lookup("int32"); err == nil {
		t.Fatalf("expected an error for an unknown type name")
	}
}

func TestCompatibleWithIsPlainEquality(t *testing.T) {
	if !types.I32.CompatibleWith(types.I32) {
		t.Fatalf("i32 should be compatible with itself")
	}
	if types.I32.CompatibleWith(types.I64) {
		t.Fatalf("i32 and i64 must not be compatible: this language performs no implicit widening")
	}
}

func TestCategoryPredicates(t *testing.T) {
	if !types.I32.IsInteger() || types.I32.IsFloat() {
		t.Fatalf("i32 must be an integer, not a float")
	}
	if !types.F64.IsFloat() || types.F64.IsInteger() {
		t.Fatalf("f64 must be a float, not an integer")
	}
	if types.Boolean.IsNumeric() || types.Pointer.IsNumeric() {
		t.Fatalf("boolean and pointer must not be numeric")
	}
}
