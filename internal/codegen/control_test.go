package codegen

import (
	"testing"

	"nitro/internal/ast"
	"nitro/internal/report"
	"nitro/internal/typing"
)

func TestGenIfBothBranchesConvergeOnMergeBlock(t *testing.T) {
	ctx, resolver := newTestCtx()

	cond := ast.NewBoolLiteral(report.Position{}, true)
	resolver.SetType(cond, typing.Bool())
	thenBlock := ast.NewBlock(report.Position{}, nil)
	elseBlock := ast.NewBlock(report.Position{}, nil)
	ifStmt := ast.NewIf(report.Position{}, []ast.CondBranch{{Cond: cond, Body: thenBlock}}, elseBlock)

	startBlocks := len(ctx.Func.Blocks)
	if _, err := genIf(ctx, ifStmt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// merge + then + else == 3 new blocks.
	if len(ctx.Func.Blocks) != startBlocks+3 {
		t.Fatalf("expected 3 new blocks, got %d", len(ctx.Func.Blocks)-startBlocks)
	}
	if ctx.Block.Term != nil {
		t.Fatal("expected the merge block to still be open (no terminator) for subsequent statements")
	}
}

func TestGenWhileEntersAndLeavesLoopLandingPad(t *testing.T) {
	ctx, resolver := newTestCtx()

	cond := ast.NewBoolLiteral(report.Position{}, true)
	resolver.SetType(cond, typing.Bool())
	body := ast.NewBlock(report.Position{}, []ast.Node{ast.NewBreak(report.Position{})})
	w := ast.NewWhile(report.Position{}, cond, body)

	if _, err := genWhile(ctx, w); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := ctx.CurrentLoop(); ok {
		t.Fatal("expected the loop landing pad to be popped after genWhile returns")
	}
}

func TestGenForContinueTargetsUpdateBlock(t *testing.T) {
	ctx, resolver := newTestCtx()

	cond := ast.NewBoolLiteral(report.Position{}, true)
	resolver.SetType(cond, typing.Bool())
	body := ast.NewBlock(report.Position{}, []ast.Node{ast.NewContinue(report.Position{})})
	f := ast.NewFor(report.Position{}, nil, cond, nil, body)

	if _, err := genFor(ctx, f); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// A structural smoke test: genFor must fully terminate every block it
	// opens (the continue inside body, and the loop back-edge in update).
	for i, b := range ctx.Func.Blocks {
		if b.Term == nil && b != ctx.Block {
			t.Fatalf("block at index %d left unterminated", i)
		}
	}
}

func TestGenBreakOutsideLoopIsUnstructuredControlFlow(t *testing.T) {
	ctx, _ := newTestCtx()
	brk := ast.NewBreak(report.Position{})

	_, err := genBreak(ctx, brk)
	if err == nil {
		t.Fatal("expected UnstructuredControlFlow for a bare break")
	}
	ce, ok := err.(*report.CompileError)
	if !ok || ce.Kind != report.KindUnstructuredControlFlow {
		t.Fatalf("expected KindUnstructuredControlFlow, got %v", err)
	}
}

func TestGenContinueOutsideLoopIsUnstructuredControlFlow(t *testing.T) {
	ctx, _ := newTestCtx()
	cont := ast.NewContinue(report.Position{})

	_, err := genContinue(ctx, cont)
	if err == nil {
		t.Fatal("expected UnstructuredControlFlow for a bare continue")
	}
	ce, ok := err.(*report.CompileError)
	if !ok || ce.Kind != report.KindUnstructuredControlFlow {
		t.Fatalf("expected KindUnstructuredControlFlow, got %v", err)
	}
}

func TestGenReturnWithNoEpilogueIsMalformedFunction(t *testing.T) {
	ctx, _ := newTestCtx()
	ret := ast.NewReturn(report.Position{}, nil)

	_, err := genReturn(ctx, ret)
	if err == nil {
		t.Fatal("expected MalformedFunction when no epilogue has been wired up")
	}
	ce, ok := err.(*report.CompileError)
	if !ok || ce.Kind != report.KindMalformedFunction {
		t.Fatalf("expected KindMalformedFunction, got %v", err)
	}
}

func TestGenReturnRecordsValueAndBranchesToEpilogue(t *testing.T) {
	ctx, resolver := newTestCtx()
	epilogue := ctx.AppendBlock()
	ctx.SetEpilogue(epilogue)

	lit := ast.NewIntLiteral(report.Position{}, 7)
	resolver.SetType(lit, typing.Int32())
	ret := ast.NewReturn(report.Position{}, lit)

	if _, err := genReturn(ctx, ret); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ctx.Returns()) != 1 {
		t.Fatalf("expected exactly one recorded return, got %d", len(ctx.Returns()))
	}
	if ctx.Block.Term == nil {
		t.Fatal("expected genReturn to terminate its block with a branch to the epilogue")
	}
}
