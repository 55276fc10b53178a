package codegen

import (
	llvalue "github.com/llir/llvm/ir/value"

	"nitro/internal/ast"
	"nitro/internal/dispatch"
	"nitro/internal/emitctx"
	"nitro/internal/report"
	"nitro/internal/runtimeabi"
	"nitro/internal/typing"
	"nitro/internal/value"
)

func init() {
	dispatch.Register(ast.CatCall, genCall)
}

// genCall implements spec.md §4.4.5: evaluate the callee, evaluate the
// arguments left-to-right, coerce each to its parameter's declared type
// (widening int->float is implicit; narrowing float->int requires the
// explicit `|0` idiom and is a TypeMismatch here), emit a typed call, and
// yield a Value of the callee's declared return type.
//
// `arr.push(x)` (SPEC_FULL.md §11) is recognized here rather than given
// its own AST category: the parser already produces an ordinary Call
// whose Callee is a PropertyAccess for this syntax, so the one growable-
// array operation this grammar exposes is handled as a call-shape special
// case, mirroring how internal/typecheck.checkCall recognizes it.
func genCall(ctx *emitctx.Context, node ast.Node) (value.Value, error) {
	call := node.(*ast.Call)

	if access, ok := call.Callee.(*ast.PropertyAccess); ok && access.Property == "push" {
		return genArrayPush(ctx, call, access)
	}

	callee, err := dispatch.Generate(ctx, call.Callee)
	if err != nil {
		return value.Value{}, err
	}
	if !callee.IsFunctionRef() {
		return value.Value{}, report.New(report.KindTypeMismatch, call.Pos(),
			"callee is not a function reference")
	}
	sig := callee.Signature()

	if len(call.Args) != len(sig.Params) {
		return value.Value{}, report.New(report.KindTypeMismatch, call.Pos(),
			"expected %d argument(s), got %d", len(sig.Params), len(call.Args))
	}

	args := make([]llvalue.Value, len(call.Args))
	for i, argNode := range call.Args {
		argVal, err := dispatch.Generate(ctx, argNode)
		if err != nil {
			return value.Value{}, err
		}
		coerced, err := coerce(ctx, argNode.Pos(), argVal, sig.Params[i])
		if err != nil {
			return value.Value{}, err
		}
		args[i] = coerced.AsRValue(ctx.Block)
	}

	result := callee.EmitCall(ctx.Block, args)
	return value.NewRValue(result, sig.Result), nil
}

// genArrayPush implements `arr.push(x)`: evaluate the receiver and the
// single argument, then call rt_array_push. It never goes through the
// generic callee-resolution path above, since its "callee" is a property
// access rather than a function reference.
func genArrayPush(ctx *emitctx.Context, call *ast.Call, access *ast.PropertyAccess) (value.Value, error) {
	arrVal, err := dispatch.Generate(ctx, access.Object)
	if err != nil {
		return value.Value{}, err
	}
	if len(call.Args) != 1 {
		return value.Value{}, report.New(report.KindTypeMismatch, call.Pos(),
			"'push' expects exactly 1 argument, got %d", len(call.Args))
	}
	argVal, err := dispatch.Generate(ctx, call.Args[0])
	if err != nil {
		return value.Value{}, err
	}

	push, err := runtimeabi.ArrayPush(ctx.Module)
	if err != nil {
		return value.Value{}, err
	}
	result := ctx.Block.NewCall(push, arrVal.AsRValue(ctx.Block), argVal.AsRValue(ctx.Block))
	return value.NewRValue(result, typing.Void()), nil
}
