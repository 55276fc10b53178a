//go:build cgo

// Package wasmtime is the execution harness spec.md §8's concrete
// scenario table needs: it loads a compiled `.wasm` artifact and invokes
// one of its exported functions with numeric arguments, returning the
// raw numeric result. It exists purely as test tooling (SPEC_FULL.md
// §4.13) so scenario tests can assert on a compiled artifact's actual
// runtime behavior rather than only its IR structure -- the same role
// the teacher's aratama-tunascript/internal/runtime/runner.go plays for
// its own compiler's WASI programs, trimmed from a whole `_start`/stdio/
// HTTP-callback runtime down to "call one exported numeric function and
// hand back its result."
package wasmtime

import (
	"fmt"

	"github.com/bytecodealliance/wasmtime-go"
)

// Runner loads and instantiates compiled wasm32 modules against one
// shared engine, mirroring the teacher's Runner wrapping a single
// *wasmtime.Engine across many Run calls.
type Runner struct {
	engine *wasmtime.Engine
}

// NewRunner creates a Runner backed by a fresh wasmtime engine.
func NewRunner() *Runner {
	return &Runner{engine: wasmtime.NewEngine()}
}

// CallInt32 instantiates the module in wasmBytes and invokes its export
// named fn with the given int32 arguments, returning the function's
// int32 result. This is the shape every concrete scenario in spec.md §8
// needs: every scenario function takes and returns int32 or float64
// values, never a ref(object)/ref(array<T>) (those have no stable
// cross-boundary representation spec.md specifies).
func (r *Runner) CallInt32(wasmBytes []byte, fn string, args ...int32) (int32, error) {
	result, err := r.call(wasmBytes, fn, int32Args(args))
	if err != nil {
		return 0, err
	}
	v, ok := result.(int32)
	if !ok {
		return 0, fmt.Errorf("wasmtime: export %q did not return an int32, got %T", fn, result)
	}
	return v, nil
}

// CallFloat64 is CallInt32's float64 counterpart, for scenarios whose
// exported function operates on float64 values.
func (r *Runner) CallFloat64(wasmBytes []byte, fn string, args ...float64) (float64, error) {
	result, err := r.call(wasmBytes, fn, float64Args(args))
	if err != nil {
		return 0, err
	}
	v, ok := result.(float64)
	if !ok {
		return 0, fmt.Errorf("wasmtime: export %q did not return a float64, got %T", fn, result)
	}
	return v, nil
}

// CallInt32WithFloat64Arg is CallInt32's counterpart for exports that take
// float64 arguments but return an int32 result, the shape spec.md §8's
// `x | 0` truncation scenario needs (a float64 parameter narrowed to int32
// by the bitwise-or-with-zero idiom).
func (r *Runner) CallInt32WithFloat64Arg(wasmBytes []byte, fn string, args ...float64) (int32, error) {
	result, err := r.call(wasmBytes, fn, float64Args(args))
	if err != nil {
		return 0, err
	}
	v, ok := result.(int32)
	if !ok {
		return 0, fmt.Errorf("wasmtime: export %q did not return an int32, got %T", fn, result)
	}
	return v, nil
}

func int32Args(args []int32) []interface{} {
	out := make([]interface{}, len(args))
	for i, a := range args {
		out[i] = a
	}
	return out
}

func float64Args(args []float64) []interface{} {
	out := make([]interface{}, len(args))
	for i, a := range args {
		out[i] = a
	}
	return out
}

func (r *Runner) call(wasmBytes []byte, fn string, args []interface{}) (interface{}, error) {
	store := wasmtime.NewStore(r.engine)
	linker := wasmtime.NewLinker(r.engine)

	module, err := wasmtime.NewModule(r.engine, wasmBytes)
	if err != nil {
		return nil, fmt.Errorf("wasmtime: failed to parse module: %w", err)
	}
	instance, err := linker.Instantiate(store, module)
	if err != nil {
		return nil, fmt.Errorf("wasmtime: failed to instantiate module: %w", err)
	}

	export := instance.GetExport(store, fn)
	if export == nil || export.Func() == nil {
		return nil, fmt.Errorf("wasmtime: module has no exported function %q", fn)
	}

	result, err := export.Func().Call(store, args...)
	if err != nil {
		return nil, fmt.Errorf("wasmtime: call to %q trapped: %w", fn, err)
	}
	return result, nil
}
