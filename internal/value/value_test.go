package value

import (
	"testing"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"nitro/internal/typing"
)

func TestRValueAsRValueIsIdentity(t *testing.T) {
	c := constant.NewInt(types.I32, 42)
	v := NewRValue(c, typing.Int32())

	mod := ir.NewModule()
	fn := mod.NewFunc("f", types.Void)
	block := fn.NewBlock("entry")

	if got := v.AsRValue(block); got != value.Value(c) {
		t.Fatalf("AsRValue on an r-value should be the identity, got %v", got)
	}
	if v.IsAssignable() {
		t.Fatal("an r-value must not be assignable")
	}
}

func TestLValueLoadAndStore(t *testing.T) {
	mod := ir.NewModule()
	fn := mod.NewFunc("f", types.Void)
	entry := fn.NewBlock("entry")

	slot := entry.NewAlloca(types.I32)
	lv := NewLValue(slot, typing.Int32(), types.I32)

	if !lv.IsAssignable() {
		t.Fatal("an l-value must be assignable")
	}

	src := NewRValue(constant.NewInt(types.I32, 7), typing.Int32())
	if err := lv.Assign(entry, src); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}

	// The block should now contain a store instruction.
	loaded := lv.AsRValue(entry)
	if loaded == nil {
		t.Fatal("expected a load instruction from AsRValue")
	}
}

func TestAssignToRValueIsReadOnly(t *testing.T) {
	rv := NewRValue(constant.NewInt(types.I32, 1), typing.Int32())
	src := NewRValue(constant.NewInt(types.I32, 2), typing.Int32())

	err := rv.Assign(nil, src)
	if err == nil {
		t.Fatal("expected ReadOnlyTarget error assigning into an r-value")
	}
	aerr, ok := err.(*AssignError)
	if !ok || !aerr.ReadOnly {
		t.Fatalf("expected a ReadOnly AssignError, got %v", err)
	}
}

func TestAssignTypeMismatch(t *testing.T) {
	mod := ir.NewModule()
	fn := mod.NewFunc("f", types.Void)
	entry := fn.NewBlock("entry")

	slot := entry.NewAlloca(types.I32)
	lv := NewLValue(slot, typing.Int32(), types.I32)

	src := NewRValue(constant.NewFloat(types.Double, 1.5), typing.Float64())
	err := lv.Assign(entry, src)
	if err == nil {
		t.Fatal("expected a TypeMismatch error assigning float64 into an int32 slot")
	}
	if aerr := err.(*AssignError); aerr.ReadOnly {
		t.Fatal("type mismatch must not be reported as ReadOnlyTarget")
	}
}
