package codegen

import (
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"

	"nitro/internal/ast"
	"nitro/internal/dispatch"
	"nitro/internal/emitctx"
	"nitro/internal/runtimeabi"
	"nitro/internal/typing"
	"nitro/internal/value"
)

func init() {
	dispatch.Register(ast.CatLiteral, genLiteral)
}

// genLiteral implements spec.md §4.4.4: integer, float, boolean, and
// string constants. Strings go via the runtime string helper, which
// interns/allocates the runtime string object backing a byte-array
// global -- the same two-step shape the teacher's genLiteral uses for its
// string case (generate/gen_expr.go), adapted to call into the
// rt_string_new extern instead of building a local struct by hand.
func genLiteral(ctx *emitctx.Context, node ast.Node) (value.Value, error) {
	lit := node.(*ast.Literal)

	switch {
	case lit.IsString:
		return emitStringLiteral(ctx, lit.StringValue)
	case lit.IsFloat:
		return value.NewRValue(constant.NewFloat(types.Double, lit.FloatValue), typing.Float64()), nil
	case lit.IsBool:
		return value.NewRValue(constant.NewBool(lit.BoolValue), typing.Bool()), nil
	default:
		return value.NewRValue(constant.NewInt(types.I32, int64(lit.IntValue)), typing.Int32()), nil
	}
}

// emitStringLiteral allocates a global byte array holding s's UTF-8
// bytes, then calls rt_string_new to produce the runtime string object
// Value callers observe. It is shared with codegen/unary.go's `typeof`
// generator, which also needs to materialize a compile-time-known string.
func emitStringLiteral(ctx *emitctx.Context, s string) (value.Value, error) {
	name := ctx.Module.NextStringLitName()

	bytesGlobal := ctx.Module.LLVM.NewGlobalDef(name, constant.NewCharArrayFromString(s))
	bytesGlobal.Immutable = true
	bytesGlobal.Linkage = enum.LinkagePrivate

	dataPtr := ctx.Block.NewPtrToInt(bytesGlobal, types.I32)
	lengthConst := constant.NewInt(types.I32, int64(len(s)))

	stringNew, err := runtimeabi.StringNew(ctx.Module)
	if err != nil {
		return value.Value{}, err
	}
	obj := ctx.Block.NewCall(stringNew, dataPtr, lengthConst)
	return value.NewRValue(obj, typing.RefObject()), nil
}
