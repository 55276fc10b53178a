// Package codegen implements the per-category code-generators of
// spec.md §4.4: small units that each consume a typed node and the
// Emission Context and return a Value. Every generator in this package
// registers itself with internal/dispatch from an init() function, the
// same pattern the teacher's generate package would use if its
// genExpr/genStmt type switches (generate/gen_expr.go,
// generate/gen_control.go) were split into an open table instead of a
// closed switch, per spec.md §9's call for a registry.
package codegen

import (
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	llvalue "github.com/llir/llvm/ir/value"

	"nitro/internal/ast"
	"nitro/internal/common"
	"nitro/internal/dispatch"
	"nitro/internal/emitctx"
	"nitro/internal/report"
	"nitro/internal/typing"
	"nitro/internal/value"
)

func init() {
	dispatch.Register(ast.CatBinaryOp, genBinaryOp)
}

// genBinaryOp is the spec.md §4.4.1 binary-expression generator: L is
// evaluated before R, the operator is selected by testing int_like before
// number_like on L's type, and assignment forms (simple or compound)
// require L to be assignable and store the computed result into it.
func genBinaryOp(ctx *emitctx.Context, node ast.Node) (value.Value, error) {
	bin := node.(*ast.BinaryOp)

	lv, err := dispatch.Generate(ctx, bin.Left)
	if err != nil {
		return value.Value{}, err
	}
	rv, err := dispatch.Generate(ctx, bin.Right)
	if err != nil {
		return value.Value{}, err
	}

	if bin.Op == common.OpAssign || bin.Op.IsCompoundAssign() {
		return genAssign(ctx, bin, lv, rv)
	}

	return genArith(ctx, bin.Op, bin.Left, lv, rv)
}

// genAssign implements the `=` and compound-assign forms. For a compound
// form the bare operator is applied first (spec.md §4.4.1: "compound-
// assignment forms apply the bare operator then store"), then the result
// is stored through L's slot.
func genAssign(ctx *emitctx.Context, bin *ast.BinaryOp, lv, rv value.Value) (value.Value, error) {
	result := rv
	if bin.Op.IsCompoundAssign() {
		var err error
		result, err = genArith(ctx, bin.Op.BareForm(), bin.Left, lv, rv)
		if err != nil {
			return value.Value{}, err
		}
	}

	// DESIGN.md's resolved Open Question: the assignment result type is
	// the left operand's declared type after coercion, not the right
	// operand's static type (spec.md §9 flags the latter as a latent
	// bug in the source).
	coerced, err := coerce(ctx, bin.Pos(), result, lv.Type())
	if err != nil {
		return value.Value{}, err
	}

	if !lv.IsAssignable() {
		return value.Value{}, report.New(report.KindReadOnlyTarget, bin.Pos(),
			"left operand of %s is not assignable", bin.Op)
	}
	if err := lv.Assign(ctx.Block, coerced); err != nil {
		return value.Value{}, report.New(report.KindReadOnlyTarget, bin.Pos(), "%v", err)
	}

	// The overall expression evaluates to the assigned value, not a
	// loaded-back read of the slot (spec.md §4.4.1).
	return coerced, nil
}

// genArith implements the arithmetic/comparison/bitwise table of
// spec.md §4.4.1's Operator -> emission table. leftNode is passed through
// only to support the `|0` idiom's detection of a literal integer
// constant on the right; the dispatch itself is keyed on lType =
// lv.Type().
func genArith(ctx *emitctx.Context, op common.Operator, leftNode ast.Node, lv, rv value.Value) (value.Value, error) {
	lType := lv.Type()

	block := ctx.Block
	switch op {
	case common.OpAdd:
		return numericBinOp(ctx, leftNode.Pos(), op, lType, lv, rv,
			func(x, y llvalue.Value) llvalue.Value { return block.NewAdd(x, y) },
			func(x, y llvalue.Value) llvalue.Value { return block.NewFAdd(x, y) })
	case common.OpSub:
		return numericBinOp(ctx, leftNode.Pos(), op, lType, lv, rv,
			func(x, y llvalue.Value) llvalue.Value { return block.NewSub(x, y) },
			func(x, y llvalue.Value) llvalue.Value { return block.NewFSub(x, y) })
	case common.OpMul:
		return numericBinOp(ctx, leftNode.Pos(), op, lType, lv, rv,
			func(x, y llvalue.Value) llvalue.Value { return block.NewMul(x, y) },
			func(x, y llvalue.Value) llvalue.Value { return block.NewFMul(x, y) })
	case common.OpDiv:
		return numericBinOp(ctx, leftNode.Pos(), op, lType, lv, rv,
			func(x, y llvalue.Value) llvalue.Value { return block.NewSDiv(x, y) },
			func(x, y llvalue.Value) llvalue.Value { return block.NewFDiv(x, y) })
	case common.OpMod:
		return numericBinOp(ctx, leftNode.Pos(), op, lType, lv, rv,
			func(x, y llvalue.Value) llvalue.Value { return block.NewSRem(x, y) },
			func(x, y llvalue.Value) llvalue.Value { return block.NewFRem(x, y) })

	case common.OpLt:
		return compareOp(ctx, leftNode.Pos(), lType, lv, rv, enum.IPredSLT, enum.FPredOLT)
	case common.OpGt:
		return compareOp(ctx, leftNode.Pos(), lType, lv, rv, enum.IPredSGT, enum.FPredOGT)
	case common.OpLe:
		return compareOp(ctx, leftNode.Pos(), lType, lv, rv, enum.IPredSLE, enum.FPredOLE)
	case common.OpGe:
		return compareOp(ctx, leftNode.Pos(), lType, lv, rv, enum.IPredSGE, enum.FPredOGE)
	case common.OpStrictEq:
		return compareOp(ctx, leftNode.Pos(), lType, lv, rv, enum.IPredEQ, enum.FPredOEQ)
	case common.OpStrictNe:
		return compareOp(ctx, leftNode.Pos(), lType, lv, rv, enum.IPredNE, enum.FPredONE)

	case common.OpBitOr:
		return genBitOr(ctx, leftNode.Pos(), lType, lv, rv)
	case common.OpBitAnd:
		return intOnlyBinOp(ctx, leftNode.Pos(), op, lType, lv, rv,
			func(x, y llvalue.Value) llvalue.Value { return block.NewAnd(x, y) })
	case common.OpBitXor:
		return intOnlyBinOp(ctx, leftNode.Pos(), op, lType, lv, rv,
			func(x, y llvalue.Value) llvalue.Value { return block.NewXor(x, y) })
	case common.OpShl:
		return intOnlyBinOp(ctx, leftNode.Pos(), op, lType, lv, rv,
			func(x, y llvalue.Value) llvalue.Value { return block.NewShl(x, y) })
	case common.OpShr:
		return intOnlyBinOp(ctx, leftNode.Pos(), op, lType, lv, rv,
			func(x, y llvalue.Value) llvalue.Value { return block.NewAShr(x, y) })
	case common.OpUShr:
		return intOnlyBinOp(ctx, leftNode.Pos(), op, lType, lv, rv,
			func(x, y llvalue.Value) llvalue.Value { return block.NewLShr(x, y) })
	}

	return value.Value{}, report.New(report.KindUnsupportedBinaryOperator, leftNode.Pos(),
		"operator %s is not supported", op)
}

// numericBinOp dispatches int_like-then-number_like, as spec.md §4.4.1
// requires, between an integer and a float emitter, each supplied by the
// caller as a closure over the current block so this function itself
// stays agnostic of which concrete llir/llvm instruction type each
// operator produces.
func numericBinOp(
	ctx *emitctx.Context, pos report.Position, op common.Operator, lType typing.Type,
	lv, rv value.Value,
	intOp func(x, y llvalue.Value) llvalue.Value,
	floatOp func(x, y llvalue.Value) llvalue.Value,
) (value.Value, error) {
	if typing.IsIntLike(lType) {
		result := intOp(lv.AsRValue(ctx.Block), rv.AsRValue(ctx.Block))
		return value.NewRValue(result, typing.Int32()), nil
	}
	if typing.IsNumberLike(lType) {
		result := floatOp(lv.AsRValue(ctx.Block), rv.AsRValue(ctx.Block))
		return value.NewRValue(result, typing.Float64()), nil
	}
	return value.Value{}, report.New(report.KindUnsupportedBinaryOperator, pos,
		"operator %s has no emission rule for operand type %s", op, lType)
}

// intOnlyBinOp implements the bitwise/shift row of spec.md §4.4.1's table:
// defined for int_like, an error for number_like.
func intOnlyBinOp(
	ctx *emitctx.Context, pos report.Position, op common.Operator, lType typing.Type,
	lv, rv value.Value,
	intOp func(x, y llvalue.Value) llvalue.Value,
) (value.Value, error) {
	if !typing.IsIntLike(lType) {
		return value.Value{}, report.New(report.KindUnsupportedBinaryOperator, pos,
			"operator %s requires an int-like left operand, got %s", op, lType)
	}
	result := intOp(lv.AsRValue(ctx.Block), rv.AsRValue(ctx.Block))
	return value.NewRValue(result, typing.Int32()), nil
}

// compareOp implements the relational/equality row: signed integer
// compare for int_like, and an ordered float compare for number_like.
// DESIGN.md's resolved Open Question: every relational and equality
// operator uses an ordered float predicate, never an unordered one --
// the source's mix of ordered and unordered predicates was flagged in
// spec.md §9 as a latent bug, and "any comparison involving NaN is
// false" (the ordered-only policy) is the one we standardize on.
func compareOp(
	ctx *emitctx.Context, pos report.Position, lType typing.Type,
	lv, rv value.Value, iPred enum.IPred, fPred enum.FPred,
) (value.Value, error) {
	if typing.IsIntLike(lType) {
		result := ctx.Block.NewICmp(iPred, lv.AsRValue(ctx.Block), rv.AsRValue(ctx.Block))
		return value.NewRValue(result, typing.Bool()), nil
	}
	if typing.IsNumberLike(lType) {
		result := ctx.Block.NewFCmp(fPred, lv.AsRValue(ctx.Block), rv.AsRValue(ctx.Block))
		return value.NewRValue(result, typing.Bool()), nil
	}
	return value.Value{}, report.New(report.KindUnsupportedBinaryOperator, pos,
		"comparison has no emission rule for operand type %s", lType)
}

// genBitOr implements the `|` row's special case: for an int_like left
// operand it's an ordinary bitwise or; for a number_like (float) left
// operand, it is defined *only* when the right operand is the literal
// integer constant 0, in which case it is the `|0` truncation idiom --
// the language's canonical float-to-int32 coercion (spec.md §4.4.1).
// Any other float right-hand operand is UnsupportedBinaryOperator.
func genBitOr(ctx *emitctx.Context, pos report.Position, lType typing.Type, lv, rv value.Value) (value.Value, error) {
	if typing.IsIntLike(lType) {
		result := ctx.Block.NewOr(lv.AsRValue(ctx.Block), rv.AsRValue(ctx.Block))
		return value.NewRValue(result, typing.Int32()), nil
	}
	if typing.IsNumberLike(lType) {
		if !isZeroIntConstant(rv) {
			return value.Value{}, report.New(report.KindUnsupportedBinaryOperator, pos,
				"`|` on a float left operand is only defined as the `|0` truncation idiom")
		}
		truncated := ctx.Block.NewFPToSI(lv.AsRValue(ctx.Block), types.I32)
		return value.NewRValue(truncated, typing.Int32()), nil
	}
	return value.Value{}, report.New(report.KindUnsupportedBinaryOperator, pos,
		"`|` has no emission rule for operand type %s", lType)
}

// isZeroIntConstant reports whether v is precisely the literal integer
// constant 0 -- the `|0` idiom must be detected this precisely (spec.md
// §4.4.1: "right operand is a literal integer constant whose value is
// zero"), not merely any r-value that happens to evaluate to zero at
// runtime.
func isZeroIntConstant(v value.Value) bool {
	if v.IsAssignable() || v.IsFunctionRef() || !typing.IsIntLike(v.Type()) {
		return false
	}
	c, ok := v.AsRValue(nil).(*constant.Int)
	if !ok {
		return false
	}
	return c.X.Sign() == 0
}

// coerce implicitly converts v to target when the two types differ,
// following the widening rule spec.md §4.4.5 states for call arguments
// and which also governs the simple-assignment result-type Open Question
// this package resolves: int->float widening is implicit; float->int
// narrowing is never implicit (it requires the explicit `|0` idiom) and
// is reported as TypeMismatch here.
func coerce(ctx *emitctx.Context, pos report.Position, v value.Value, target typing.Type) (value.Value, error) {
	if v.Type().Equal(target) {
		return v, nil
	}
	if typing.IsIntLike(v.Type()) && typing.IsNumberLike(target) && !typing.IsIntLike(target) {
		widened := ctx.Block.NewSIToFP(v.AsRValue(ctx.Block), types.Double)
		return value.NewRValue(widened, typing.Float64()), nil
	}
	return value.Value{}, report.New(report.KindTypeMismatch, pos,
		"cannot implicitly coerce %s into %s", v.Type(), target)
}
