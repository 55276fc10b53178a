package typecheck

import (
	"testing"

	"nitro/internal/ast"
	"nitro/internal/parser"
	"nitro/internal/report"
	"nitro/internal/resolve"
	"nitro/internal/typing"
)

func mustCheck(t *testing.T, src string) ([]*ast.FuncDecl, *resolve.Table, *report.Aggregator) {
	t.Helper()
	p, err := parser.New(src)
	if err != nil {
		t.Fatalf("lexer error: %v", err)
	}
	decls, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	table, agg := Check(decls)
	return decls, table, agg
}

func TestCheckResolvesLocalIdentifierToItsParamSymbol(t *testing.T) {
	decls, _, agg := mustCheck(t, `func double(x int32) int32 { return x + x; }`)
	if agg.AnyErrors() {
		t.Fatalf("unexpected errors: %v", agg.AllErrors())
	}

	ret := decls[0].Body.Stmts[0].(*ast.Return)
	bin := ret.Value.(*ast.BinaryOp)
	left := bin.Left.(*ast.Identifier)
	right := bin.Right.(*ast.Identifier)

	if left.Sym == nil || left.Sym != decls[0].Params[0].Sym {
		t.Fatalf("left operand did not resolve to the parameter's symbol")
	}
	if right.Sym != left.Sym {
		t.Fatalf("both occurrences of x must resolve to the same symbol")
	}
}

func TestCheckResolvesSiblingAndSelfCalls(t *testing.T) {
	decls, _, agg := mustCheck(t, `
		func helper() int32 { return 7; }
		func caller() int32 { return helper() + helper(); }
		func countdown(n int32) int32 { return countdown(n - 1); }
	`)
	if agg.AnyErrors() {
		t.Fatalf("unexpected errors: %v", agg.AllErrors())
	}

	caller := decls[1]
	helper := decls[0]
	ret := caller.Body.Stmts[0].(*ast.Return)
	bin := ret.Value.(*ast.BinaryOp)
	leftCall := bin.Left.(*ast.Call)
	calleeIdent := leftCall.Callee.(*ast.Identifier)
	if calleeIdent.Sym != helper.Sym {
		t.Fatalf("call callee did not resolve to helper's FuncDecl.Sym")
	}

	countdown := decls[2]
	selfRet := countdown.Body.Stmts[0].(*ast.Return)
	selfCall := selfRet.Value.(*ast.Call)
	selfCallee := selfCall.Callee.(*ast.Identifier)
	if selfCallee.Sym != countdown.Sym {
		t.Fatalf("recursive call did not resolve to its own FuncDecl.Sym")
	}
}

func TestCheckReportsUndefinedIdentifier(t *testing.T) {
	_, _, agg := mustCheck(t, `func f() int32 { return y; }`)
	errs := agg.AllErrors()
	if len(errs) != 1 || errs[0].Kind != report.KindUnresolvedSymbol {
		t.Fatalf("expected one UnresolvedSymbol error, got %v", errs)
	}
}

func TestCheckReportsReturnTypeMismatch(t *testing.T) {
	_, _, agg := mustCheck(t, `func f() int32 { return true; }`)
	errs := agg.AllErrors()
	if len(errs) != 1 || errs[0].Kind != report.KindTypeMismatch {
		t.Fatalf("expected one TypeMismatch error, got %v", errs)
	}
}

func TestCheckAllowsIntToFloatWideningOnReturn(t *testing.T) {
	_, _, agg := mustCheck(t, `func f() float64 { let x int32 = 3; return x; }`)
	if agg.AnyErrors() {
		t.Fatalf("unexpected errors: %v", agg.AllErrors())
	}
}

func TestCheckReportsBreakOutsideLoop(t *testing.T) {
	_, _, agg := mustCheck(t, `func f() void { break; }`)
	errs := agg.AllErrors()
	if len(errs) != 1 || errs[0].Kind != report.KindUnstructuredControlFlow {
		t.Fatalf("expected one UnstructuredControlFlow error, got %v", errs)
	}
}

func TestCheckAllowsBreakInsideLoop(t *testing.T) {
	_, _, agg := mustCheck(t, `func f() void { for (let i int32 = 0; i < 10; i = i + 1) { break; } }`)
	if agg.AnyErrors() {
		t.Fatalf("unexpected errors: %v", agg.AllErrors())
	}
}

func TestCheckReportsWrongArgCount(t *testing.T) {
	_, _, agg := mustCheck(t, `
		func helper(a int32, b int32) int32 { return a + b; }
		func caller() int32 { return helper(1); }
	`)
	errs := agg.AllErrors()
	if len(errs) != 1 || errs[0].Kind != report.KindTypeMismatch {
		t.Fatalf("expected one TypeMismatch error for arg count, got %v", errs)
	}
}

func TestCheckRejectsAssignToConst(t *testing.T) {
	_, _, agg := mustCheck(t, `func f() void { const x int32 = 1; x = 2; }`)
	errs := agg.AllErrors()
	if len(errs) != 1 || errs[0].Kind != report.KindReadOnlyTarget {
		t.Fatalf("expected one ReadOnlyTarget error, got %v", errs)
	}
}

func TestCheckArrayLiteralHomogeneity(t *testing.T) {
	decls, table, agg := mustCheck(t, `func f() void { [1, 2, 3]; }`)
	if agg.AnyErrors() {
		t.Fatalf("unexpected errors: %v", agg.AllErrors())
	}

	stmt := decls[0].Body.Stmts[0].(*ast.ArrayLiteral)
	typ := table.TypeOf(stmt)
	if !typ.IsRefArray() || typ.ArrayElem() != typing.ElemInt32 {
		t.Fatalf("expected ref(array<int32>), got %s", typ)
	}
}

func TestCheckArrayLiteralRejectsMixedElementTypes(t *testing.T) {
	_, _, agg := mustCheck(t, `func f() void { [1, true, 3]; }`)
	errs := agg.AllErrors()
	if len(errs) != 1 || errs[0].Kind != report.KindTypeMismatch {
		t.Fatalf("expected one TypeMismatch error for mixed array elements, got %v", errs)
	}
}

func TestCheckPropertyAccessSharesSlotAcrossAccesses(t *testing.T) {
	decls, table, agg := mustCheck(t, `
		func f() void {
			new Point(1, 2).x;
			new Rect(1, 2, 3, 4).x;
		}
	`)
	if agg.AnyErrors() {
		t.Fatalf("unexpected errors: %v", agg.AllErrors())
	}

	first := decls[0].Body.Stmts[0].(*ast.PropertyAccess)
	second := decls[0].Body.Stmts[1].(*ast.PropertyAccess)
	firstSym, ok := table.SymbolOf(first)
	if !ok {
		t.Fatalf("expected a resolved symbol for the first property access")
	}
	secondSym, ok := table.SymbolOf(second)
	if !ok {
		t.Fatalf("expected a resolved symbol for the second property access")
	}
	if firstSym.Slot != secondSym.Slot {
		t.Fatalf("field %q should always resolve to the same slot, got %d and %d",
			"x", firstSym.Slot, secondSym.Slot)
	}
}

func TestCheckNewExprTypeIsRefObject(t *testing.T) {
	decls, table, agg := mustCheck(t, `func f() void { new Point(1, 2); }`)
	if agg.AnyErrors() {
		t.Fatalf("unexpected errors: %v", agg.AllErrors())
	}
	stmt := decls[0].Body.Stmts[0].(*ast.NewExpr)
	typ := table.TypeOf(stmt)
	if !typ.IsRefObject() {
		t.Fatalf("expected ref(object), got %s", typ)
	}
}

func TestCheckNewExprArrayYieldsRefArrayInt32(t *testing.T) {
	decls, table, agg := mustCheck(t, `func f() void { new Array(4); }`)
	if agg.AnyErrors() {
		t.Fatalf("unexpected errors: %v", agg.AllErrors())
	}
	stmt := decls[0].Body.Stmts[0].(*ast.NewExpr)
	typ := table.TypeOf(stmt)
	if !typ.Equal(typing.RefArray(typing.ElemInt32)) {
		t.Fatalf("expected ref(array<int32>), got %s", typ)
	}
}

func TestCheckNewExprArrayRejectsTooManyArgs(t *testing.T) {
	_, _, agg := mustCheck(t, `func f() void { new Array(1, 2); }`)
	if !agg.AnyErrors() {
		t.Fatal("expected a TypeMismatch for 'new Array' with more than 1 argument")
	}
}

func TestCheckArrayPushAcceptsAssignableElement(t *testing.T) {
	_, _, agg := mustCheck(t, `func f() void { new Array().push(1); }`)
	if agg.AnyErrors() {
		t.Fatalf("unexpected errors: %v", agg.AllErrors())
	}
}

func TestCheckArrayPushRejectsNonArrayReceiver(t *testing.T) {
	_, _, agg := mustCheck(t, `func f() void { let x int32 = 0; x.push(1); }`)
	if !agg.AnyErrors() {
		t.Fatal("expected a TypeMismatch pushing onto a non-array receiver")
	}
}

func TestCheckArrayPushRejectsWrongArgumentCount(t *testing.T) {
	_, _, agg := mustCheck(t, `func f() void { new Array().push(); }`)
	if !agg.AnyErrors() {
		t.Fatal("expected a TypeMismatch for 'push' with no arguments")
	}
}

func TestCheckTypeofYieldsRefObject(t *testing.T) {
	decls, table, agg := mustCheck(t, `func f() void { typeof 1; }`)
	if agg.AnyErrors() {
		t.Fatalf("unexpected errors: %v", agg.AllErrors())
	}
	stmt := decls[0].Body.Stmts[0].(*ast.UnaryOp)
	typ := table.TypeOf(stmt)
	if !typ.IsRefObject() {
		t.Fatalf("expected typeof to produce ref(object), got %s", typ)
	}
}

func TestCheckChainedAssignmentIsRightAssociative(t *testing.T) {
	_, _, agg := mustCheck(t, `func f() void { let x int32 = 0; let y int32 = 0; x = y = 3; }`)
	if agg.AnyErrors() {
		t.Fatalf("unexpected errors: %v", agg.AllErrors())
	}
}
