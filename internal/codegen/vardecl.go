package codegen

import (
	"nitro/internal/ast"
	"nitro/internal/dispatch"
	"nitro/internal/emitctx"
	"nitro/internal/report"
	"nitro/internal/typing"
	"nitro/internal/value"

	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
)

func init() {
	dispatch.Register(ast.CatVarDecl, genVarDecl)
}

// genVarDecl implements spec.md §4.4.7: allocate a stack slot per entry in
// the current scope, evaluate and store the initializer if present, or
// store the language-defined zero value for an uninitialized scalar.
// Entries naming a ref type with no initializer are left as a null slot;
// the front end is expected to reject genuinely uninitialized ref
// locals reachable before first assignment, which is out of this
// package's scope (spec.md's Type Resolver boundary).
func genVarDecl(ctx *emitctx.Context, node ast.Node) (value.Value, error) {
	decl := node.(*ast.VarDecl)

	for _, entry := range decl.Entries {
		typ := entry.Type
		elemType := llvmTypeOf(typ)

		slot := ctx.Block.NewAlloca(elemType)
		slotVal := value.NewLValue(slot, typ, elemType)

		if entry.Initializer != nil {
			initVal, err := dispatch.Generate(ctx, entry.Initializer)
			if err != nil {
				return value.Value{}, err
			}
			coerced, err := coerce(ctx, node.Pos(), initVal, typ)
			if err != nil {
				return value.Value{}, err
			}
			if err := slotVal.Assign(ctx.Block, coerced); err != nil {
				return value.Value{}, report.New(report.KindTypeMismatch, node.Pos(), "%v", err)
			}
		} else {
			ctx.Block.NewStore(zeroValue(typ), slot)
		}

		ctx.Define(entry.Sym, slotVal)
	}

	return value.Value{}, nil
}

// llvmTypeOf maps a lattice Type to the concrete LLVM type used for its
// storage slot.
func llvmTypeOf(t typing.Type) types.Type {
	switch t.Kind() {
	case typing.KindInt32:
		return types.I32
	case typing.KindFloat64:
		return types.Double
	case typing.KindBool:
		return types.I1
	case typing.KindRefObject, typing.KindRefArray, typing.KindFunction:
		return types.I32 // wasm32 handles, see internal/runtimeabi
	default:
		return types.Void
	}
}

// zeroValue returns the language-defined zero for an uninitialized scalar
// declaration (spec.md §4.4.7).
func zeroValue(t typing.Type) constant.Constant {
	switch t.Kind() {
	case typing.KindInt32:
		return constant.NewInt(types.I32, 0)
	case typing.KindFloat64:
		return constant.NewFloat(types.Double, 0)
	case typing.KindBool:
		return constant.NewBool(false)
	default:
		return constant.NewInt(types.I32, 0)
	}
}
