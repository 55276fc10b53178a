package codegen

import (
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
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
	dispatch.Register(ast.CatPropertyAccess, genPropertyAccess)
	dispatch.Register(ast.CatElementAccess, genElementAccess)
	dispatch.Register(ast.CatNewExpr, genNewExpr)
	dispatch.Register(ast.CatArrayLiteral, genArrayLiteral)
	dispatch.Register(ast.CatObjectLiteral, genObjectLiteral)
}

// genPropertyAccess implements spec.md §4.4.9's property-access case: the
// generator's job is only to marshal the typed object reference and
// thread the resolver's declared field type through to the runtime
// helper -- the field layout itself is the runtime collaborator's
// concern, not this package's.
//
// Field reads go through the same bounds-checked element accessor the
// runtime exposes for arrays, indexed by the field slot number the type
// resolver assigns (internal/typecheck gives each field name one
// program-wide slot, whatever the class); this mirrors how the teacher's generator
// treats every heap access (object field or array element) as a
// GetElementPtr off a single struct type (generate/gen_expr.go's
// `__strlen`/`__strbytes` intrinsics).
func genPropertyAccess(ctx *emitctx.Context, node ast.Node) (value.Value, error) {
	access := node.(*ast.PropertyAccess)

	objVal, err := dispatch.Generate(ctx, access.Object)
	if err != nil {
		return value.Value{}, err
	}
	if !typing.IsRef(objVal.Type()) {
		return value.Value{}, report.New(report.KindTypeMismatch, access.Pos(),
			"property access requires a ref(object) receiver, got %s", objVal.Type())
	}

	fieldSym, ok := ctx.Resolver.SymbolOf(access)
	if !ok {
		return value.Value{}, report.New(report.KindUnresolvedSymbol, access.Pos(),
			"property %q has no resolved field slot", access.Property)
	}
	fieldType := ctx.Resolver.TypeOf(access)

	getField, err := runtimeabi.ArrayGet(ctx.Module)
	if err != nil {
		return value.Value{}, err
	}
	slotIndex := constant.NewInt(types.I32, int64(fieldSym.Slot))
	raw := ctx.Block.NewCall(getField, objVal.AsRValue(ctx.Block), slotIndex)
	return value.NewRValue(raw, fieldType), nil
}

// genElementAccess implements spec.md §4.4.9's array element read: a
// bounds-checked call into the runtime's rt_array_get.
func genElementAccess(ctx *emitctx.Context, node ast.Node) (value.Value, error) {
	access := node.(*ast.ElementAccess)

	arrVal, err := dispatch.Generate(ctx, access.Array)
	if err != nil {
		return value.Value{}, err
	}
	idxVal, err := dispatch.Generate(ctx, access.Index)
	if err != nil {
		return value.Value{}, err
	}
	if !arrVal.Type().IsRefArray() {
		return value.Value{}, report.New(report.KindTypeMismatch, access.Pos(),
			"element access requires a ref(array<T>) receiver, got %s", arrVal.Type())
	}

	getElem, err := runtimeabi.ArrayGet(ctx.Module)
	if err != nil {
		return value.Value{}, err
	}
	raw := ctx.Block.NewCall(getElem, arrVal.AsRValue(ctx.Block), idxVal.AsRValue(ctx.Block))
	return value.NewRValue(raw, elemResultType(arrVal.Type())), nil
}

// genNewExpr implements spec.md §4.4.9's object/array construction.
// `new Array(...)` (SPEC_FULL.md §11) is the one growable-array
// constructor this grammar exposes and goes through rt_array_new with an
// optional initial-capacity argument; every other class name allocates a
// ref(object) via rt_object_alloc sized for its constructor argument
// count, followed by field initialization via rt_array_set (objects
// reuse the array element-set ABI, since both are just bounds-checked
// i32-slot storage at the runtime boundary -- see internal/runtimeabi).
func genNewExpr(ctx *emitctx.Context, node ast.Node) (value.Value, error) {
	newExpr := node.(*ast.NewExpr)

	if newExpr.ClassName == "Array" {
		return genNewArray(ctx, newExpr)
	}

	argVals := make([]llvalue.Value, 0, len(newExpr.Args))
	for _, argNode := range newExpr.Args {
		v, err := dispatch.Generate(ctx, argNode)
		if err != nil {
			return value.Value{}, err
		}
		argVals = append(argVals, v.AsRValue(ctx.Block))
	}

	alloc, err := runtimeabi.ObjectAlloc(ctx.Module)
	if err != nil {
		return value.Value{}, err
	}
	size := constant.NewInt(types.I32, int64(len(argVals)))
	obj := ctx.Block.NewCall(alloc, size)

	setField, err := runtimeabi.ArraySet(ctx.Module)
	if err != nil {
		return value.Value{}, err
	}
	for i, argVal := range argVals {
		ctx.Block.NewCall(setField, obj, constant.NewInt(types.I32, int64(i)), argVal)
	}

	return value.NewRValue(obj, typing.RefObject()), nil
}

// genNewArray allocates a growable ref(array<int32>) via rt_array_new, at
// the capacity newExpr's sole optional argument gives (0 if omitted).
// Elements are appended later via `arr.push(x)` (genArrayPush), not by
// this constructor.
func genNewArray(ctx *emitctx.Context, newExpr *ast.NewExpr) (value.Value, error) {
	capacity := llvalue.Value(constant.NewInt(types.I32, 0))
	if len(newExpr.Args) == 1 {
		v, err := dispatch.Generate(ctx, newExpr.Args[0])
		if err != nil {
			return value.Value{}, err
		}
		capacity = v.AsRValue(ctx.Block)
	}

	arrNew, err := runtimeabi.ArrayNew(ctx.Module)
	if err != nil {
		return value.Value{}, err
	}
	elemSize := constant.NewInt(types.I32, 4)
	arr := ctx.Block.NewCall(arrNew, elemSize, capacity)
	return value.NewRValue(arr, typing.RefArray(typing.ElemInt32)), nil
}

// genArrayLiteral implements spec.md §4.4.9's fixed-element-list array
// construction: allocate via rt_array_new_fixed (every element is already
// known, unlike the growable array `new Array(...)` produces), then
// store each element via rt_array_set.
func genArrayLiteral(ctx *emitctx.Context, node ast.Node) (value.Value, error) {
	lit := node.(*ast.ArrayLiteral)
	resultType := ctx.Resolver.TypeOf(lit)

	elemVals := make([]llvalue.Value, 0, len(lit.Elements))
	for _, elemNode := range lit.Elements {
		v, err := dispatch.Generate(ctx, elemNode)
		if err != nil {
			return value.Value{}, err
		}
		elemVals = append(elemVals, v.AsRValue(ctx.Block))
	}

	arrNewFixed, err := runtimeabi.ArrayNewFixed(ctx.Module)
	if err != nil {
		return value.Value{}, err
	}
	elemSize := constant.NewInt(types.I32, 4) // every element kind is a 4-byte wasm32 slot
	length := constant.NewInt(types.I32, int64(len(elemVals)))
	arr := ctx.Block.NewCall(arrNewFixed, elemSize, length)

	arrSet, err := runtimeabi.ArraySet(ctx.Module)
	if err != nil {
		return value.Value{}, err
	}
	for i, v := range elemVals {
		ctx.Block.NewCall(arrSet, arr, constant.NewInt(types.I32, int64(i)), v)
	}

	return value.NewRValue(arr, resultType), nil
}

// genObjectLiteral implements spec.md §4.4.9's named-field object
// construction: same allocation shape as genNewExpr, but fields are
// assigned by declaration order of FieldNames rather than by
// constructor-argument position.
func genObjectLiteral(ctx *emitctx.Context, node ast.Node) (value.Value, error) {
	lit := node.(*ast.ObjectLiteral)

	fieldVals := make([]llvalue.Value, 0, len(lit.FieldValues))
	for _, fieldNode := range lit.FieldValues {
		v, err := dispatch.Generate(ctx, fieldNode)
		if err != nil {
			return value.Value{}, err
		}
		fieldVals = append(fieldVals, v.AsRValue(ctx.Block))
	}

	alloc, err := runtimeabi.ObjectAlloc(ctx.Module)
	if err != nil {
		return value.Value{}, err
	}
	size := constant.NewInt(types.I32, int64(len(fieldVals)))
	obj := ctx.Block.NewCall(alloc, size)

	setField, err := runtimeabi.ArraySet(ctx.Module)
	if err != nil {
		return value.Value{}, err
	}
	for i, v := range fieldVals {
		ctx.Block.NewCall(setField, obj, constant.NewInt(types.I32, int64(i)), v)
	}

	return value.NewRValue(obj, typing.RefObject()), nil
}

// elemResultType returns the lattice Type an array-element read should be
// tagged with, given the array's own ref(array<T>) type.
func elemResultType(arrType typing.Type) typing.Type {
	switch arrType.ArrayElem() {
	case typing.ElemInt32:
		return typing.Int32()
	case typing.ElemFloat64:
		return typing.Float64()
	case typing.ElemBool:
		return typing.Bool()
	default:
		return typing.RefObject()
	}
}
