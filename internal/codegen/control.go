package codegen

import (
	"nitro/internal/ast"
	"nitro/internal/dispatch"
	"nitro/internal/emitctx"
	"nitro/internal/report"
	"nitro/internal/value"
)

func init() {
	dispatch.Register(ast.CatBlock, genBlockStmt)
	dispatch.Register(ast.CatIf, genIf)
	dispatch.Register(ast.CatWhile, genWhile)
	dispatch.Register(ast.CatFor, genFor)
	dispatch.Register(ast.CatDoWhile, genDoWhile)
	dispatch.Register(ast.CatBreak, genBreak)
	dispatch.Register(ast.CatContinue, genContinue)
	dispatch.Register(ast.CatReturn, genReturn)
}

// genBlockStmt lowers a Block's statements in its own scope (spec.md §3
// "Scope chain"): one PushScope/PopScope pair per block, guaranteed to
// pop on every exit path via the scoped-guard pattern of spec.md §4.3.
func genBlockStmt(ctx *emitctx.Context, node ast.Node) (value.Value, error) {
	block := node.(*ast.Block)
	leave := ctx.EnterScope()
	defer leave()

	for _, stmt := range block.Stmts {
		if _, err := dispatch.Generate(ctx, stmt); err != nil {
			return value.Value{}, err
		}
	}
	return value.Value{}, nil
}

// genIf implements spec.md §4.4.6's if/else-if/else chain: each branch's
// condition is tested in the current block, true goes to a fresh `then`
// block, false falls through to the next branch test (or the final else,
// or the merge block if there is none). Every branch that doesn't end in
// its own terminator (return/break/continue) jumps to the shared merge
// block at the end.
func genIf(ctx *emitctx.Context, node ast.Node) (value.Value, error) {
	ifStmt := node.(*ast.If)
	mergeBlock := ctx.AppendBlock()

	for _, branch := range ifStmt.Branches {
		condVal, err := dispatch.Generate(ctx, branch.Cond)
		if err != nil {
			return value.Value{}, err
		}

		thenBlock := ctx.AppendBlock()
		elseBlock := ctx.AppendBlock()

		ctx.Block.NewCondBr(condVal.AsRValue(ctx.Block), thenBlock, elseBlock)

		ctx.Block = thenBlock
		if _, err := dispatch.Generate(ctx, branch.Body); err != nil {
			return value.Value{}, err
		}
		if ctx.Block.Term == nil {
			ctx.Block.NewBr(mergeBlock)
		}

		ctx.Block = elseBlock
	}

	// ctx.Block is now the final "else" landing block.
	if ifStmt.Else != nil {
		if _, err := dispatch.Generate(ctx, ifStmt.Else); err != nil {
			return value.Value{}, err
		}
	}
	if ctx.Block.Term == nil {
		ctx.Block.NewBr(mergeBlock)
	}

	ctx.Block = mergeBlock
	return value.Value{}, nil
}

// genWhile implements spec.md §4.4.6's condition-first loop: the loop
// pushes a landing pad on entry (continue -> header, break -> end) and
// pops it on exit via the scoped-guard pattern.
func genWhile(ctx *emitctx.Context, node ast.Node) (value.Value, error) {
	w := node.(*ast.While)

	headerBlock := ctx.AppendBlock()
	bodyBlock := ctx.AppendBlock()
	endBlock := ctx.AppendBlock()

	ctx.Block.NewBr(headerBlock)

	ctx.Block = headerBlock
	condVal, err := dispatch.Generate(ctx, w.Cond)
	if err != nil {
		return value.Value{}, err
	}
	ctx.Block.NewCondBr(condVal.AsRValue(ctx.Block), bodyBlock, endBlock)

	leave := ctx.EnterLoop(headerBlock, endBlock)
	ctx.Block = bodyBlock
	if _, err := dispatch.Generate(ctx, w.Body); err != nil {
		leave()
		return value.Value{}, err
	}
	leave()
	if ctx.Block.Term == nil {
		ctx.Block.NewBr(headerBlock)
	}

	ctx.Block = endBlock
	return value.Value{}, nil
}

// genFor implements spec.md §4.4.6's classic init/cond/update loop, with
// continue targeting the update block (not the header) so that `continue`
// still runs the update clause before re-testing the condition.
func genFor(ctx *emitctx.Context, node ast.Node) (value.Value, error) {
	f := node.(*ast.For)

	leaveScope := ctx.EnterScope()
	defer leaveScope()

	if f.Init != nil {
		if _, err := dispatch.Generate(ctx, f.Init); err != nil {
			return value.Value{}, err
		}
	}

	headerBlock := ctx.AppendBlock()
	bodyBlock := ctx.AppendBlock()
	updateBlock := ctx.AppendBlock()
	endBlock := ctx.AppendBlock()

	ctx.Block.NewBr(headerBlock)

	ctx.Block = headerBlock
	if f.Cond != nil {
		condVal, err := dispatch.Generate(ctx, f.Cond)
		if err != nil {
			return value.Value{}, err
		}
		ctx.Block.NewCondBr(condVal.AsRValue(ctx.Block), bodyBlock, endBlock)
	} else {
		ctx.Block.NewBr(bodyBlock)
	}

	leaveLoop := ctx.EnterLoop(updateBlock, endBlock)
	ctx.Block = bodyBlock
	if _, err := dispatch.Generate(ctx, f.Body); err != nil {
		leaveLoop()
		return value.Value{}, err
	}
	leaveLoop()
	if ctx.Block.Term == nil {
		ctx.Block.NewBr(updateBlock)
	}

	ctx.Block = updateBlock
	if f.Update != nil {
		if _, err := dispatch.Generate(ctx, f.Update); err != nil {
			return value.Value{}, err
		}
	}
	ctx.Block.NewBr(headerBlock)

	ctx.Block = endBlock
	return value.Value{}, nil
}

// genDoWhile implements spec.md §4.4.6's run-body-once-then-test loop:
// continue targets the condition test (not the body entry), matching the
// language's "test happens after the body, including after a continue"
// semantics.
func genDoWhile(ctx *emitctx.Context, node ast.Node) (value.Value, error) {
	dw := node.(*ast.DoWhile)

	bodyBlock := ctx.AppendBlock()
	condBlock := ctx.AppendBlock()
	endBlock := ctx.AppendBlock()

	ctx.Block.NewBr(bodyBlock)

	leave := ctx.EnterLoop(condBlock, endBlock)
	ctx.Block = bodyBlock
	if _, err := dispatch.Generate(ctx, dw.Body); err != nil {
		leave()
		return value.Value{}, err
	}
	leave()
	if ctx.Block.Term == nil {
		ctx.Block.NewBr(condBlock)
	}

	ctx.Block = condBlock
	condVal, err := dispatch.Generate(ctx, dw.Cond)
	if err != nil {
		return value.Value{}, err
	}
	ctx.Block.NewCondBr(condVal.AsRValue(ctx.Block), bodyBlock, endBlock)

	ctx.Block = endBlock
	return value.Value{}, nil
}

// genBreak implements `break`: branch to the nearest enclosing loop's
// break target. No enclosing loop is UnstructuredControlFlow; the grammar
// has no `switch`, so loops are the only break targets.
func genBreak(ctx *emitctx.Context, node ast.Node) (value.Value, error) {
	target, ok := ctx.CurrentBreakTarget()
	if !ok {
		return value.Value{}, report.New(report.KindUnstructuredControlFlow, node.Pos(),
			"`break` outside any enclosing loop or switch")
	}
	ctx.Block.NewBr(target)
	return value.Value{}, nil
}

// genContinue implements `continue`: branch to the nearest enclosing
// loop's continue target. No enclosing loop is UnstructuredControlFlow.
func genContinue(ctx *emitctx.Context, node ast.Node) (value.Value, error) {
	pad, ok := ctx.CurrentLoop()
	if !ok || pad.ContinueTarget == nil {
		return value.Value{}, report.New(report.KindUnstructuredControlFlow, node.Pos(),
			"`continue` outside any enclosing loop")
	}
	ctx.Block.NewBr(pad.ContinueTarget)
	return value.Value{}, nil
}

// genReturn implements `return`: the Function Compiler owns the single
// return instruction and a phi over return values when multiple returns
// exist (spec.md §4.4.6), so this generator only records the value (if
// any) and branches to the function's shared epilogue block -- both
// wired up by internal/funccompiler before the body is lowered.
func genReturn(ctx *emitctx.Context, node ast.Node) (value.Value, error) {
	ret := node.(*ast.Return)

	epilogue, ok := ctx.Epilogue()
	if !ok {
		return value.Value{}, report.New(report.KindMalformedFunction, ret.Pos(),
			"`return` encountered with no function epilogue wired up")
	}

	if ret.Value != nil {
		v, err := dispatch.Generate(ctx, ret.Value)
		if err != nil {
			return value.Value{}, err
		}
		ctx.RecordReturn(v.AsRValue(ctx.Block), ctx.Block)
	} else {
		ctx.RecordReturn(nil, ctx.Block)
	}
	ctx.Block.NewBr(epilogue)
	return value.Value{}, nil
}
