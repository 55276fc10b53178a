// Package emitctx implements the per-function Emission Context of
// spec.md §3/§4.3: the current IR builder position, the scope chain, the
// loop landing-pad stack, and the current function/module being built.
// One Context exists per function compilation and is discarded when that
// function is finalized (spec.md §5).
package emitctx

import (
	"fmt"

	"github.com/llir/llvm/ir"
	llvalue "github.com/llir/llvm/ir/value"

	"nitro/internal/common"
	"nitro/internal/module"
	"nitro/internal/resolve"
	"nitro/internal/value"
)

// ReturnIncoming is one `return` statement's contribution to the
// function epilogue's phi node: the returned SSA value (nil for a void
// return) and the block the `return` branched from.
type ReturnIncoming struct {
	Value llvalue.Value
	Block *ir.Block
}

// LandingPad is the `(continue_target, break_target)` pair attached to
// an enclosing loop (spec.md Glossary).
type LandingPad struct {
	ContinueTarget *ir.Block
	BreakTarget    *ir.Block
}

// Context is the per-function emission state. Exactly one exists for the
// duration of one function's compilation (spec.md §5: "Shared resources
// are confined to the Emission Context and are owned exclusively by the
// Function Compiler for the duration of one function").
type Context struct {
	Module   *module.Module
	Resolver resolve.TypeResolver

	Func  *ir.Func
	Block *ir.Block // the single-writer current insertion block

	scopes   scopeStack
	loopPads []LandingPad

	blockCounter int

	epilogue *ir.Block
	returns  []ReturnIncoming
}

// New creates a fresh Context for compiling fn within mod, using resolver
// to answer type queries.
func New(mod *module.Module, fn *ir.Func, resolver resolve.TypeResolver) *Context {
	return &Context{Module: mod, Resolver: resolver, Func: fn}
}

// -----------------------------------------------------------------------------
// Scope chain. PushScope/PopScope must always be paired, including on
// error paths (spec.md §4.3's "Scoped acquisition" requirement); callers
// are expected to use the guard returned by EnterScope for this.

func (c *Context) PushScope() { c.scopes.push() }
func (c *Context) PopScope()  { c.scopes.pop() }

// EnterScope pushes a new scope and returns a guard function that pops
// it; calling the guard via `defer` is the scoped-guard pattern spec.md
// §4.3 calls for, guaranteeing release on every exit path including
// panics/errors.
func (c *Context) EnterScope() (leave func()) {
	c.PushScope()
	return c.PopScope
}

// Define binds sym to slot in the innermost scope.
func (c *Context) Define(sym *common.Symbol, slot value.Value) {
	c.scopes.define(sym, slot)
}

// Lookup walks the scope chain outward and returns the bound slot, or
// (zero, false) if sym has no binding -- the latter is the
// UnresolvedSymbol condition of spec.md §7, though by construction every
// symbol the resolver hands out should have been Defined by the time a
// generator looks it up.
func (c *Context) Lookup(sym *common.Symbol) (value.Value, bool) {
	return c.scopes.lookup(sym)
}

// -----------------------------------------------------------------------------
// Loop landing pads.

// EnterLoop pushes a landing pad and returns a guard that pops it
// (spec.md §4.3 "enter_loop(continue, break) / leave_loop").
func (c *Context) EnterLoop(continueTarget, breakTarget *ir.Block) (leave func()) {
	c.loopPads = append(c.loopPads, LandingPad{ContinueTarget: continueTarget, BreakTarget: breakTarget})
	return func() {
		c.loopPads = c.loopPads[:len(c.loopPads)-1]
	}
}

// CurrentLoop returns the innermost loop landing pad, or (zero, false)
// if none is active -- the latter is spec.md's UnstructuredControlFlow
// condition for a bare `continue`, or for `break` with no enclosing loop
// (checked via CurrentBreakTarget instead).
func (c *Context) CurrentLoop() (LandingPad, bool) {
	if len(c.loopPads) == 0 {
		return LandingPad{}, false
	}
	return c.loopPads[len(c.loopPads)-1], true
}

// CurrentBreakTarget returns the innermost loop's break target, or (nil,
// false) if no loop is active -- spec.md's UnstructuredControlFlow
// condition for a bare `break`. This grammar has no `switch` construct
// (spec.md §4.4.6's accepted statement forms never include one), so loop
// pads are the only landing pads a break can target.
func (c *Context) CurrentBreakTarget() (*ir.Block, bool) {
	if len(c.loopPads) == 0 {
		return nil, false
	}
	return c.loopPads[len(c.loopPads)-1].BreakTarget, true
}

// -----------------------------------------------------------------------------
// Block management.

// AppendBlock adds a new basic block to the current function without
// repositioning the builder -- callers must explicitly set c.Block
// afterward, keeping the "single-writer current insertion block"
// invariant of spec.md §5 explicit at every call site.
func (c *Context) AppendBlock() *ir.Block {
	name := fmt.Sprintf("bb%d", c.blockCounter)
	c.blockCounter++
	return c.Func.NewBlock(name)
}

// -----------------------------------------------------------------------------
// Function epilogue. internal/funccompiler wires the epilogue block before
// lowering the body; codegen/control.go's `return` generator consults it
// without needing to know anything about phi placement itself (spec.md
// §4.4.6: "the epilogue...owns the single return instruction and a phi
// over return values when multiple returns exist").

// SetEpilogue records the function's single epilogue block.
func (c *Context) SetEpilogue(block *ir.Block) { c.epilogue = block }

// Epilogue returns the function's epilogue block, or (nil, false) if
// none has been wired up yet.
func (c *Context) Epilogue() (*ir.Block, bool) {
	if c.epilogue == nil {
		return nil, false
	}
	return c.epilogue, true
}

// RecordReturn records one `return` statement's contribution to the
// epilogue's eventual phi node. val is nil for a void return.
func (c *Context) RecordReturn(val llvalue.Value, block *ir.Block) {
	c.returns = append(c.returns, ReturnIncoming{Value: val, Block: block})
}

// Returns reports every `return` statement recorded so far.
func (c *Context) Returns() []ReturnIncoming { return c.returns }
