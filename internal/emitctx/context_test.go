package emitctx

import (
	"testing"

	"github.com/llir/llvm/ir/types"

	"nitro/internal/common"
	"nitro/internal/module"
	"nitro/internal/resolve"
	"nitro/internal/typing"
	"nitro/internal/value"
)

func newTestContext() *Context {
	mod := module.New()
	fn := mod.LLVM.NewFunc("f", types.Void)
	return New(mod, fn, resolve.NewTable())
}

func TestScopeChainShadowing(t *testing.T) {
	ctx := newTestContext()
	outer := &common.Symbol{Name: "x"}

	leave := ctx.EnterScope()
	entry := ctx.Func.NewBlock("entry")
	slotOuter := entry.NewAlloca(types.I32)
	ctx.Define(outer, value.NewLValue(slotOuter, typing.Int32(), types.I32))

	innerLeave := ctx.EnterScope()
	slotInner := entry.NewAlloca(types.I32)
	inner := &common.Symbol{Name: "x"} // shadowing symbol, distinct identity
	ctx.Define(inner, value.NewLValue(slotInner, typing.Int32(), types.I32))

	if got, ok := ctx.Lookup(inner); !ok || got.Slot() != slotInner {
		t.Fatal("expected to find the inner shadowing binding")
	}
	if got, ok := ctx.Lookup(outer); !ok || got.Slot() != slotOuter {
		t.Fatal("expected to still find the outer binding by its own identity")
	}

	innerLeave()
	if _, ok := ctx.Lookup(inner); ok {
		t.Fatal("inner binding must not be visible after its scope exits")
	}
	if _, ok := ctx.Lookup(outer); !ok {
		t.Fatal("outer binding must still be visible after inner scope exits")
	}

	leave()
	if _, ok := ctx.Lookup(outer); ok {
		t.Fatal("outer binding must not be visible after its scope exits")
	}
}

func TestLoopLandingPadRestoredOnExit(t *testing.T) {
	ctx := newTestContext()

	if _, ok := ctx.CurrentLoop(); ok {
		t.Fatal("no loop should be active initially")
	}

	contBlock := ctx.Func.NewBlock("cont")
	breakBlock := ctx.Func.NewBlock("brk")
	leave := ctx.EnterLoop(contBlock, breakBlock)

	pad, ok := ctx.CurrentLoop()
	if !ok || pad.ContinueTarget != contBlock || pad.BreakTarget != breakBlock {
		t.Fatal("expected the just-entered loop pad to be current")
	}

	leave()
	if _, ok := ctx.CurrentLoop(); ok {
		t.Fatal("loop pad stack must be restored (empty) after leave")
	}
}

func TestNestedLoopsRestoreOuterPad(t *testing.T) {
	ctx := newTestContext()

	outerCont := ctx.Func.NewBlock("outer_cont")
	outerBrk := ctx.Func.NewBlock("outer_brk")
	leaveOuter := ctx.EnterLoop(outerCont, outerBrk)

	innerCont := ctx.Func.NewBlock("inner_cont")
	innerBrk := ctx.Func.NewBlock("inner_brk")
	leaveInner := ctx.EnterLoop(innerCont, innerBrk)

	pad, _ := ctx.CurrentLoop()
	if pad.BreakTarget != innerBrk {
		t.Fatal("innermost loop pad should be current")
	}

	leaveInner()
	pad, ok := ctx.CurrentLoop()
	if !ok || pad.BreakTarget != outerBrk {
		t.Fatal("leaving the inner loop must restore the outer loop's pad")
	}

	leaveOuter()
	if _, ok := ctx.CurrentLoop(); ok {
		t.Fatal("leaving the outer loop must leave no pad active")
	}
}

func TestAppendBlockDoesNotRepositionBuilder(t *testing.T) {
	ctx := newTestContext()
	entry := ctx.Func.NewBlock("entry")
	ctx.Block = entry

	newBlock := ctx.AppendBlock()
	if ctx.Block != entry {
		t.Fatal("AppendBlock must not reposition the current insertion block")
	}
	if newBlock == entry {
		t.Fatal("AppendBlock must return a distinct block")
	}
}
