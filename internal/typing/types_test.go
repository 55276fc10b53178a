package typing

import "testing"

func TestIntLikeImpliesNumberLike(t *testing.T) {
	tests := []Type{Int32(), Float64(), Bool(), Void(), RefObject(), RefArray(ElemInt32)}

	for _, typ := range tests {
		if IsIntLike(typ) && !IsNumberLike(typ) {
			t.Fatalf("type %s is int_like but not number_like: int_like must be a subset of number_like", typ)
		}
	}
}

func TestIntLikeTestedBeforeNumberLike(t *testing.T) {
	// Direct statement of spec.md invariant 2: an int32-typed operand
	// must never take the float path. Any caller that tests
	// IsNumberLike before IsIntLike would wrongly route int32 through
	// the float branch, since IsNumberLike(Int32()) is also true.
	if !IsIntLike(Int32()) {
		t.Fatal("int32 must be int_like")
	}
	if !IsNumberLike(Int32()) {
		t.Fatal("int32 must also be number_like (subset relationship)")
	}
	if IsIntLike(Float64()) {
		t.Fatal("float64 must not be int_like")
	}
	if !IsNumberLike(Float64()) {
		t.Fatal("float64 must be number_like")
	}
}

func TestTypeEqual(t *testing.T) {
	if !Int32().Equal(Int32()) {
		t.Error("Int32 should equal Int32")
	}
	if Int32().Equal(Float64()) {
		t.Error("Int32 should not equal Float64")
	}
	if !RefArray(ElemInt32).Equal(RefArray(ElemInt32)) {
		t.Error("RefArray(ElemInt32) should equal itself")
	}
	if RefArray(ElemInt32).Equal(RefArray(ElemFloat64)) {
		t.Error("RefArray with different elem kinds should not be equal")
	}

	sigA := &Signature{Params: []Type{Int32(), Int32()}, Result: Int32()}
	sigB := &Signature{Params: []Type{Int32(), Int32()}, Result: Int32()}
	sigC := &Signature{Params: []Type{Float64()}, Result: Int32()}
	if !Function(sigA).Equal(Function(sigB)) {
		t.Error("structurally identical function signatures should be equal")
	}
	if Function(sigA).Equal(Function(sigC)) {
		t.Error("function signatures with different params should not be equal")
	}
}

func TestPredicates(t *testing.T) {
	if !IsBool(Bool()) || IsBool(Int32()) {
		t.Error("IsBool misclassifies")
	}
	if !IsRef(RefObject()) || !IsRef(RefArray(ElemBool)) || IsRef(Int32()) {
		t.Error("IsRef misclassifies")
	}
}
