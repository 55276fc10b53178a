package funccompiler

import (
	"testing"

	"nitro/internal/ast"
	"nitro/internal/common"
	"nitro/internal/module"
	"nitro/internal/report"
	"nitro/internal/resolve"
	"nitro/internal/typing"
)

// addOneDecl builds `func addOne(x int32) int32 { return x + 1; }`.
func addOneDecl(resolver *resolve.Table) *ast.FuncDecl {
	xSym := &common.Symbol{Name: "x"}
	xIdent := ast.NewIdentifier(report.Position{}, "x", xSym)
	one := ast.NewIntLiteral(report.Position{}, 1)
	sum := ast.NewBinaryOp(report.Position{}, common.OpAdd, xIdent, one)
	ret := ast.NewReturn(report.Position{}, sum)
	body := ast.NewBlock(report.Position{}, []ast.Node{ret})

	resolver.SetType(xIdent, typing.Int32())
	resolver.SetSymbol(xIdent, xSym)
	resolver.SetType(one, typing.Int32())
	resolver.SetType(sum, typing.Int32())

	return ast.NewFuncDecl(report.Position{}, "addOne",
		[]ast.Param{{Sym: xSym, Type: typing.Int32()}}, typing.Int32(), body, true)
}

func TestCompileSingleReturnEmitsDirectRet(t *testing.T) {
	mod := module.New()
	resolver := resolve.NewTable()
	decl := addOneDecl(resolver)

	fn, errs := Compile(mod, resolver, decl)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if fn.Name() != "addOne" {
		t.Fatalf("expected function named addOne, got %s", fn.Name())
	}
	for _, b := range fn.Blocks {
		if b.Term == nil {
			t.Fatal("expected every block to have a terminator after Compile")
		}
	}
}

func TestCompileMultipleReturnsBuildsPhi(t *testing.T) {
	mod := module.New()
	resolver := resolve.NewTable()

	xSym := &common.Symbol{Name: "x"}
	xIdent := ast.NewIdentifier(report.Position{}, "x", xSym)
	resolver.SetType(xIdent, typing.Bool())
	resolver.SetSymbol(xIdent, xSym)

	one := ast.NewIntLiteral(report.Position{}, 1)
	two := ast.NewIntLiteral(report.Position{}, 2)
	resolver.SetType(one, typing.Int32())
	resolver.SetType(two, typing.Int32())

	thenBranch := ast.CondBranch{
		Cond: xIdent,
		Body: ast.NewBlock(report.Position{}, []ast.Node{ast.NewReturn(report.Position{}, one)}),
	}
	elseBlock := ast.NewBlock(report.Position{}, []ast.Node{ast.NewReturn(report.Position{}, two)})
	ifStmt := ast.NewIf(report.Position{}, []ast.CondBranch{thenBranch}, elseBlock)
	body := ast.NewBlock(report.Position{}, []ast.Node{ifStmt})

	decl := ast.NewFuncDecl(report.Position{}, "pick",
		[]ast.Param{{Sym: xSym, Type: typing.Bool()}}, typing.Int32(), body, true)

	fn, errs := Compile(mod, resolver, decl)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	for _, b := range fn.Blocks {
		if b.Term == nil {
			t.Fatal("expected every block to have a terminator after Compile")
		}
	}
}

func TestCompileVoidFunctionWithImplicitFallthrough(t *testing.T) {
	mod := module.New()
	resolver := resolve.NewTable()
	body := ast.NewBlock(report.Position{}, nil)
	decl := ast.NewFuncDecl(report.Position{}, "noop", nil, typing.Void(), body, true)

	fn, errs := Compile(mod, resolver, decl)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	for _, b := range fn.Blocks {
		if b.Term == nil {
			t.Fatal("expected every block to have a terminator after Compile")
		}
	}
}

func TestCompileNonVoidFunctionWithNoReturnIsMalformed(t *testing.T) {
	mod := module.New()
	resolver := resolve.NewTable()
	body := ast.NewBlock(report.Position{}, nil)
	decl := ast.NewFuncDecl(report.Position{}, "broken", nil, typing.Int32(), body, true)

	_, errs := Compile(mod, resolver, decl)
	if len(errs) == 0 {
		t.Fatal("expected a MalformedFunction error for a non-void function with no return")
	}
}
