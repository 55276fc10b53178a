// Package runtimeabi is the concrete instantiation of SPEC_FULL.md §4.10:
// the fixed catalog of runtime-support externs a compiled module may call
// into (object allocation, growable/fixed array allocation, array
// indexing, string construction). It plays the role the teacher's
// cmd/prelude.go plays for chai's `core`/`core.runtime` packages, but
// instead of importing a whole prelude package, it declares a small,
// fixed ABI of C-callable externs that a wasm32 runtime support library
// (linked in by internal/linker) provides.
//
// Every helper here is declared lazily, on first use, against the Module
// the current function is being compiled into -- declaration itself goes
// through module.Module.DeclareExtern, so a second request for the same
// helper name with an incompatible signature surfaces as
// ExternSignatureConflictError rather than silently reusing the wrong
// declaration.
package runtimeabi

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"

	"nitro/internal/module"
)

const (
	nameObjectAlloc   = "rt_object_alloc"
	nameArrayNew      = "rt_array_new"
	nameArrayNewFixed = "rt_array_new_fixed"
	nameArrayPush     = "rt_array_push"
	nameArrayGet      = "rt_array_get"
	nameArraySet      = "rt_array_set"
	nameArrayLen      = "rt_array_len"
	nameStringNew     = "rt_string_new"
	nameStringConcat  = "rt_string_concat"
	nameTrap          = "rt_trap"
)

// wasmPtr is the pointer-sized integer type objects/arrays/strings are
// passed as across the ABI boundary -- wasm32 has no native pointer type
// at the LLVM IR level usable here, so handles are i32 indices into the
// runtime's own heap, mirroring how chai's generator treats `ref` values
// as opaque pointer-width SSA values (generate/conv_type.go).
var wasmPtr = types.I32

// ObjectAlloc returns rt_object_alloc(size: i32) -> ref(object), the
// runtime call backing `new ClassName(...)` once the constructor
// arguments have been evaluated (spec.md §4.4's object/array
// construction path).
func ObjectAlloc(mod *module.Module) (*ir.Func, error) {
	return mod.DeclareExtern(nameObjectAlloc, []types.Type{types.I32}, wasmPtr)
}

// ArrayNew returns rt_array_new(elemSize: i32, initialCapacity: i32) ->
// ref(array), allocating a growable array backed by the runtime's
// capacity-doubling `Array<T>` (original_source/packages/runtime/lib/
// array.h), the counterpart SPEC_FULL.md §11 calls for alongside the
// fixed-length view ArrayNewFixed provides. `new Array(...)` is the only
// construct in this grammar that produces one (internal/codegen/access.go's
// genNewExpr); its element count grows at runtime via ArrayPush rather
// than being fully known at construction.
func ArrayNew(mod *module.Module) (*ir.Func, error) {
	return mod.DeclareExtern(nameArrayNew, []types.Type{types.I32, types.I32}, wasmPtr)
}

// ArrayNewFixed returns rt_array_new_fixed(elemSize: i32, length: i32) ->
// ref(array), allocating a fixed-length array view sized exactly to a
// known element count -- the shape an array literal's construction
// always has (every element is already in hand when the literal is
// generated), as opposed to ArrayNew's growable view.
func ArrayNewFixed(mod *module.Module) (*ir.Func, error) {
	return mod.DeclareExtern(nameArrayNewFixed, []types.Type{types.I32, types.I32}, wasmPtr)
}

// ArrayPush returns rt_array_push(arr: ref(array), value: i32) -> void,
// appending to a growable array allocated via ArrayNew. Pushing onto an
// array obtained from ArrayNewFixed is a runtime contract violation the
// ABI does not itself guard against.
func ArrayPush(mod *module.Module) (*ir.Func, error) {
	return mod.DeclareExtern(nameArrayPush, []types.Type{wasmPtr, types.I32}, types.Void)
}

// ArrayGet returns rt_array_get(arr: ref(array), index: i32) -> i32, a
// bounds-checked element load; the caller is responsible for bitcasting
// the i32 payload to the array's element type when that type isn't
// itself int32 (spec.md's element-access code-generator does this).
func ArrayGet(mod *module.Module) (*ir.Func, error) {
	return mod.DeclareExtern(nameArrayGet, []types.Type{wasmPtr, types.I32}, types.I32)
}

// ArraySet returns rt_array_set(arr: ref(array), index: i32, value: i32) -> void,
// the bounds-checked element store counterpart to ArrayGet.
func ArraySet(mod *module.Module) (*ir.Func, error) {
	return mod.DeclareExtern(nameArraySet, []types.Type{wasmPtr, types.I32, types.I32}, types.Void)
}

// ArrayLen returns rt_array_len(arr: ref(array)) -> i32.
func ArrayLen(mod *module.Module) (*ir.Func, error) {
	return mod.DeclareExtern(nameArrayLen, []types.Type{wasmPtr}, types.I32)
}

// StringNew returns rt_string_new(data: i32, length: i32) -> ref(object),
// constructing a runtime string object from the UTF-8 bytes at address
// data (a string literal's private byte-array global).
func StringNew(mod *module.Module) (*ir.Func, error) {
	return mod.DeclareExtern(nameStringNew, []types.Type{wasmPtr, types.I32}, wasmPtr)
}

// StringConcat returns rt_string_concat(a, b: ref(object)) -> ref(object).
func StringConcat(mod *module.Module) (*ir.Func, error) {
	return mod.DeclareExtern(nameStringConcat, []types.Type{wasmPtr, wasmPtr}, wasmPtr)
}

// Trap returns rt_trap(code: i32) -> void, the runtime's abort entry
// point -- it never returns (the runtime aborts), but is typed as void
// rather than a diverging LLVM annotation to keep the emitted IR simple.
// No generator in internal/codegen emits a call to it: integer division
// is not checked for a zero divisor, and bounds checks happen inside
// rt_array_get/rt_array_set.
func Trap(mod *module.Module) (*ir.Func, error) {
	return mod.DeclareExtern(nameTrap, []types.Type{types.I32}, types.Void)
}
