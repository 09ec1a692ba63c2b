package fieldset

import "testing"

func TestDefaultComparison_PrimitiveEquality(t *testing.T) {
	cmp := DefaultComparison()
	if !cmp.IsEqual(1, 1, nil) {
		t.Fatal("equal ints should compare equal")
	}
	if cmp.IsEqual(1, 2, nil) {
		t.Fatal("distinct ints should not compare equal")
	}
	if !cmp.IsEqual("a", "a", nil) {
		t.Fatal("equal strings should compare equal")
	}
}

func TestDefaultComparison_NilHandling(t *testing.T) {
	cmp := DefaultComparison()
	if !cmp.IsEqual(nil, nil, nil) {
		t.Fatal("nil should equal nil")
	}
	if cmp.IsEqual(nil, 1, nil) || cmp.IsEqual(1, nil, nil) {
		t.Fatal("nil should never equal a non-nil value")
	}
}

func TestDefaultComparison_FallsBackToStringRepresentation(t *testing.T) {
	cmp := DefaultComparison()
	if !cmp.IsEqual([]int{1, 2}, []int{1, 2}, nil) {
		t.Fatal("non-comparable but string-identical values should compare equal via fallback")
	}
	if cmp.IsEqual([]int{1, 2}, []int{1, 3}, nil) {
		t.Fatal("non-comparable, string-distinct values should not compare equal")
	}
}
