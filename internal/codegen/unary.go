package codegen

import (
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"

	"nitro/internal/ast"
	"nitro/internal/common"
	"nitro/internal/dispatch"
	"nitro/internal/emitctx"
	"nitro/internal/report"
	"nitro/internal/typing"
	"nitro/internal/value"
)

func init() {
	dispatch.Register(ast.CatUnaryOp, genUnaryOp)
}

// genUnaryOp implements spec.md §4.4.2: `+x -x !x ~x ++x x++ --x x-- typeof x`.
// Prefix increment/decrement return the new value; postfix returns the
// value the operand held before the mutation. Increment/decrement require
// an assignable operand (ReadOnlyTarget otherwise).
func genUnaryOp(ctx *emitctx.Context, node ast.Node) (value.Value, error) {
	u := node.(*ast.UnaryOp)

	operand, err := dispatch.Generate(ctx, u.Operand)
	if err != nil {
		return value.Value{}, err
	}

	switch u.Op {
	case common.OpUnaryPlus:
		return operand, nil

	case common.OpUnaryMinus:
		return genNegate(ctx, u.Pos(), operand)

	case common.OpLogicalNot:
		if !typing.IsBool(operand.Type()) {
			return value.Value{}, report.New(report.KindUnsupportedUnaryOperator, u.Pos(),
				"`!` requires a bool operand, got %s", operand.Type())
		}
		result := ctx.Block.NewXor(operand.AsRValue(ctx.Block), constant.True)
		return value.NewRValue(result, typing.Bool()), nil

	case common.OpBitNot:
		if !typing.IsIntLike(operand.Type()) {
			return value.Value{}, report.New(report.KindUnsupportedUnaryOperator, u.Pos(),
				"`~` requires an int-like operand, got %s", operand.Type())
		}
		result := ctx.Block.NewXor(operand.AsRValue(ctx.Block), constant.NewInt(types.I32, -1))
		return value.NewRValue(result, typing.Int32()), nil

	case common.OpPrefixIncr, common.OpPostfixIncr:
		return genIncrDecr(ctx, u.Pos(), operand, true, u.Postfix)
	case common.OpPrefixDecr, common.OpPostfixDecr:
		return genIncrDecr(ctx, u.Pos(), operand, false, u.Postfix)

	case common.OpTypeof:
		return genTypeof(ctx, operand)
	}

	return value.Value{}, report.New(report.KindUnsupportedUnaryOperator, u.Pos(),
		"operator %s is not supported", u.Op)
}

// genNegate implements `-x`: integer negation lowers to `0 - x` (the same
// shape as the teacher's "ineg" intrinsic in generate/gen_expr.go), float
// negation uses the dedicated FNeg instruction.
func genNegate(ctx *emitctx.Context, pos report.Position, operand value.Value) (value.Value, error) {
	if typing.IsIntLike(operand.Type()) {
		result := ctx.Block.NewSub(constant.NewInt(types.I32, 0), operand.AsRValue(ctx.Block))
		return value.NewRValue(result, typing.Int32()), nil
	}
	if typing.IsNumberLike(operand.Type()) {
		result := ctx.Block.NewFNeg(operand.AsRValue(ctx.Block))
		return value.NewRValue(result, typing.Float64()), nil
	}
	return value.Value{}, report.New(report.KindUnsupportedUnaryOperator, pos,
		"unary `-` has no emission rule for operand type %s", operand.Type())
}

// genIncrDecr implements `++x`/`x++`/`--x`/`x--`. The operand must be
// assignable; the new value is computed, stored back, and either the new
// value (prefix) or the pre-mutation value (postfix) is returned.
func genIncrDecr(ctx *emitctx.Context, pos report.Position, operand value.Value, increment, postfix bool) (value.Value, error) {
	if !operand.IsAssignable() {
		return value.Value{}, report.New(report.KindReadOnlyTarget, pos,
			"increment/decrement operand is not assignable")
	}
	if !typing.IsIntLike(operand.Type()) && !typing.IsNumberLike(operand.Type()) {
		return value.Value{}, report.New(report.KindUnsupportedUnaryOperator, pos,
			"increment/decrement requires a numeric operand, got %s", operand.Type())
	}

	old := operand.AsRValue(ctx.Block)

	var newVal value.Value
	if typing.IsIntLike(operand.Type()) {
		one := constant.NewInt(types.I32, 1)
		if increment {
			newVal = value.NewRValue(ctx.Block.NewAdd(old, one), typing.Int32())
		} else {
			newVal = value.NewRValue(ctx.Block.NewSub(old, one), typing.Int32())
		}
	} else {
		one := constant.NewFloat(types.Double, 1)
		if increment {
			newVal = value.NewRValue(ctx.Block.NewFAdd(old, one), typing.Float64())
		} else {
			newVal = value.NewRValue(ctx.Block.NewFSub(old, one), typing.Float64())
		}
	}

	if err := operand.Assign(ctx.Block, newVal); err != nil {
		return value.Value{}, report.New(report.KindReadOnlyTarget, pos, "%v", err)
	}

	if postfix {
		return value.NewRValue(old, operand.Type()), nil
	}
	return newVal, nil
}

// genTypeof materializes the operand's static-type name as a runtime
// string -- the type lattice leaf is known entirely at compile time
// (spec.md §3), so `typeof x` needs no runtime type tag, just the name of
// whichever of the seven leaves type_of(x) resolved to.
func genTypeof(ctx *emitctx.Context, operand value.Value) (value.Value, error) {
	return emitStringLiteral(ctx, operand.Type().String())
}
