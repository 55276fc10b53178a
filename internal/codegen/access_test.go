package codegen

import (
	"testing"

	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"

	"nitro/internal/ast"
	"nitro/internal/common"
	"nitro/internal/report"
	"nitro/internal/typing"
	"nitro/internal/value"
)

func refObjectIdent(ctx interface {
	Define(sym *common.Symbol, v value.Value)
}, name string) *ast.Identifier {
	sym := &common.Symbol{Name: name}
	ctx.Define(sym, value.NewRValue(constant.NewInt(types.I32, 0), typing.RefObject()))
	return ast.NewIdentifier(report.Position{}, name, sym)
}

func TestGenPropertyAccessUsesFieldSlot(t *testing.T) {
	ctx, resolver := newTestCtx()
	objIdent := refObjectIdent(ctx, "obj")

	access := ast.NewPropertyAccess(report.Position{}, objIdent, "count")
	resolver.SetSymbol(access, &common.Symbol{Name: "count", Slot: 2})
	resolver.SetType(access, typing.Int32())

	v, err := genPropertyAccess(ctx, access)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !v.Type().Equal(typing.Int32()) {
		t.Fatalf("expected int32 field type, got %s", v.Type())
	}
}

func TestGenPropertyAccessRejectsNonRefObject(t *testing.T) {
	ctx, resolver := newTestCtx()
	scalar := ast.NewIntLiteral(report.Position{}, 1)
	resolver.SetType(scalar, typing.Int32())

	access := ast.NewPropertyAccess(report.Position{}, scalar, "count")
	resolver.SetSymbol(access, &common.Symbol{Name: "count"})
	resolver.SetType(access, typing.Int32())

	_, err := genPropertyAccess(ctx, access)
	if err == nil {
		t.Fatal("expected a TypeMismatch accessing a property off a non-ref receiver")
	}
}

func TestGenPropertyAccessUnresolvedFieldSymbol(t *testing.T) {
	ctx, resolver := newTestCtx()
	objIdent := refObjectIdent(ctx, "obj")

	access := ast.NewPropertyAccess(report.Position{}, objIdent, "count")
	resolver.SetType(access, typing.Int32())
	// Deliberately never call resolver.SetSymbol(access, ...).

	_, err := genPropertyAccess(ctx, access)
	if err == nil {
		t.Fatal("expected UnresolvedSymbol when the field has no resolved slot")
	}
	ce, ok := err.(*report.CompileError)
	if !ok || ce.Kind != report.KindUnresolvedSymbol {
		t.Fatalf("expected KindUnresolvedSymbol, got %v", err)
	}
}

func TestGenNewExprAllocatesAndSetsFields(t *testing.T) {
	ctx, resolver := newTestCtx()
	arg := ast.NewIntLiteral(report.Position{}, 5)
	resolver.SetType(arg, typing.Int32())

	newExpr := ast.NewNewExpr(report.Position{}, "Point", []ast.Node{arg})
	v, err := genNewExpr(ctx, newExpr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !v.Type().Equal(typing.RefObject()) {
		t.Fatalf("expected ref(object), got %s", v.Type())
	}
}

func TestGenArrayLiteralTypesFromResolver(t *testing.T) {
	ctx, resolver := newTestCtx()
	elem := ast.NewIntLiteral(report.Position{}, 1)
	resolver.SetType(elem, typing.Int32())

	lit := ast.NewArrayLiteral(report.Position{}, []ast.Node{elem})
	resolver.SetType(lit, typing.RefArray(typing.ElemInt32))

	v, err := genArrayLiteral(ctx, lit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !v.Type().Equal(typing.RefArray(typing.ElemInt32)) {
		t.Fatalf("expected ref(array<int32>), got %s", v.Type())
	}
}

func TestGenNewExprArrayClassNameAllocatesGrowableArray(t *testing.T) {
	ctx, _ := newTestCtx()

	newExpr := ast.NewNewExpr(report.Position{}, "Array", nil)
	v, err := genNewExpr(ctx, newExpr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !v.Type().Equal(typing.RefArray(typing.ElemInt32)) {
		t.Fatalf("expected ref(array<int32>), got %s", v.Type())
	}
}

func TestGenNewExprArrayAcceptsCapacityArg(t *testing.T) {
	ctx, resolver := newTestCtx()
	capArg := ast.NewIntLiteral(report.Position{}, 8)
	resolver.SetType(capArg, typing.Int32())

	newExpr := ast.NewNewExpr(report.Position{}, "Array", []ast.Node{capArg})
	v, err := genNewExpr(ctx, newExpr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !v.Type().Equal(typing.RefArray(typing.ElemInt32)) {
		t.Fatalf("expected ref(array<int32>), got %s", v.Type())
	}
}

func TestGenElementAccessRequiresRefArray(t *testing.T) {
	ctx, resolver := newTestCtx()
	scalar := ast.NewIntLiteral(report.Position{}, 1)
	resolver.SetType(scalar, typing.Int32())
	idx := ast.NewIntLiteral(report.Position{}, 0)
	resolver.SetType(idx, typing.Int32())

	access := ast.NewElementAccess(report.Position{}, scalar, idx)
	_, err := genElementAccess(ctx, access)
	if err == nil {
		t.Fatal("expected a TypeMismatch indexing a non-array value")
	}
}
