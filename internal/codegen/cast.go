package codegen

import (
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"

	"nitro/internal/ast"
	"nitro/internal/dispatch"
	"nitro/internal/emitctx"
	"nitro/internal/report"
	"nitro/internal/typing"
	"nitro/internal/value"
)

func init() {
	dispatch.Register(ast.CatCast, genCast)
}

// genCast implements an explicit type conversion. Unlike the implicit
// coercion genArith/genCall perform at assignment and call boundaries
// (int->float widening only), an explicit cast also allows the narrowing
// directions the source language requires an explicit operation for:
// float->int32 truncation and bool<->int32 zero-extension/comparison.
// This is the non-`|0`-idiom route to the same float->int coercion
// spec.md §4.4.1 calls out; a Cast to int32 and `x | 0` both lower to the
// same FPToSI instruction. There is no surface syntax for a Cast:
// internal/parser never builds one.
func genCast(ctx *emitctx.Context, node ast.Node) (value.Value, error) {
	cast := node.(*ast.Cast)
	targetType := ctx.Resolver.TypeOf(cast)

	src, err := dispatch.Generate(ctx, cast.Src)
	if err != nil {
		return value.Value{}, err
	}
	srcType := src.Type()

	if srcType.Equal(targetType) {
		return src, nil
	}

	switch {
	case typing.IsIntLike(srcType) && typing.IsNumberLike(targetType) && !typing.IsIntLike(targetType):
		widened := ctx.Block.NewSIToFP(src.AsRValue(ctx.Block), types.Double)
		return value.NewRValue(widened, typing.Float64()), nil

	case typing.IsNumberLike(srcType) && !typing.IsIntLike(srcType) && typing.IsIntLike(targetType):
		truncated := ctx.Block.NewFPToSI(src.AsRValue(ctx.Block), types.I32)
		return value.NewRValue(truncated, typing.Int32()), nil

	case typing.IsBool(srcType) && typing.IsIntLike(targetType):
		widened := ctx.Block.NewZExt(src.AsRValue(ctx.Block), types.I32)
		return value.NewRValue(widened, typing.Int32()), nil

	case typing.IsIntLike(srcType) && typing.IsBool(targetType):
		nonzero := ctx.Block.NewICmp(enum.IPredNE, src.AsRValue(ctx.Block), constant.NewInt(types.I32, 0))
		return value.NewRValue(nonzero, typing.Bool()), nil
	}

	return value.Value{}, report.New(report.KindTypeMismatch, cast.Pos(),
		"no cast defined from %s to %s", srcType, targetType)
}
