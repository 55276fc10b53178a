//go:build !cgo

// Package wasmtime's non-cgo build provides a stub Runner that fails
// cleanly rather than letting the package vanish from the build: cgo is
// required to link wasmtime-go's C library, so a cgo-disabled build
// keeps the same exported surface but every call reports why it cannot
// run, mirroring the teacher's runner_nocgo.go.
package wasmtime

import "fmt"

// Runner is the stub implementation used when cgo is disabled.
type Runner struct{}

// NewRunner returns a Runner that always fails calls with a clear
// explanation.
func NewRunner() *Runner {
	return &Runner{}
}

func (r *Runner) CallInt32(wasmBytes []byte, fn string, args ...int32) (int32, error) {
	return 0, fmt.Errorf("wasmtime: cgo is disabled; rebuild with CGO_ENABLED=1 to run %q", fn)
}

func (r *Runner) CallFloat64(wasmBytes []byte, fn string, args ...float64) (float64, error) {
	return 0, fmt.Errorf("wasmtime: cgo is disabled; rebuild with CGO_ENABLED=1 to run %q", fn)
}

func (r *Runner) CallInt32WithFloat64Arg(wasmBytes []byte, fn string, args ...float64) (int32, error) {
	return 0, fmt.Errorf("wasmtime: cgo is disabled; rebuild with CGO_ENABLED=1 to run %q", fn)
}
