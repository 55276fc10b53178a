// Package wasmtoolchain discovers the external WebAssembly linker/
// optimizer toolchain spec.md §1 names as an out-of-scope collaborator
// ("the production of a final .wasm artifact...is handled by an
// external toolchain"). It plays the role the teacher's wintool package
// plays for MSVC's link.exe: probe for the tool, fail with a clear error
// if it cannot be found, and hand back a ready-to-run *exec.Cmd.
//
// Unlike wintool's multi-arch, multi-SDK-version MSVC search (the
// Visual Studio instance enumeration, the per-architecture subdirectory
// table), wasm-ld has exactly one target and no SDK matrix: discovery
// is PATH lookup plus an environment-variable override, nothing more.
package wasmtoolchain

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// Tool names this package knows how to discover, and the environment
// variable that overrides each one's PATH lookup.
const (
	ToolLinker    = "wasm-ld"
	ToolCompiler  = "llc"
	ToolOptimizer = "wasm-opt"

	envLinker    = "NITRO_WASM_LD"
	envCompiler  = "NITRO_LLC"
	envOptimizer = "NITRO_WASM_OPT"
)

// NotFoundError reports that a required external tool could not be
// located on PATH or via its override environment variable.
type NotFoundError struct {
	Tool    string
	EnvVar  string
	Wrapped error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("could not locate %q (set %s to override): %v", e.Tool, e.EnvVar, e.Wrapped)
}

func (e *NotFoundError) Unwrap() error { return e.Wrapped }

// find resolves one tool's executable path: an explicit override via
// envVar takes priority over a PATH search, mirroring wintool's
// "Windows registry first, PATH as an implicit fallback via exec.Command"
// precedence but inverted to favor the environment override, since
// wasm-ld has no registry-like discovery mechanism to search first.
func find(tool, envVar string) (string, error) {
	if override := os.Getenv(envVar); override != "" {
		if _, err := os.Stat(override); err != nil {
			return "", &NotFoundError{Tool: tool, EnvVar: envVar, Wrapped: err}
		}
		return override, nil
	}
	path, err := exec.LookPath(tool)
	if err != nil {
		return "", &NotFoundError{Tool: tool, EnvVar: envVar, Wrapped: err}
	}
	return path, nil
}

// FindLinker locates wasm-ld, returning a ready *exec.Cmd with no
// arguments attached yet -- internal/linker fills in the entry point,
// output path, and input object files.
func FindLinker() (*exec.Cmd, error) {
	path, err := find(ToolLinker, envLinker)
	if err != nil {
		return nil, err
	}
	return exec.Command(path), nil
}

// FindCompiler locates llc, the LLVM static compiler that lowers the
// module's textual IR to a wasm32 object file -- the step between
// internal/module's assembled IR and internal/wasmtoolchain's linker.
func FindCompiler() (*exec.Cmd, error) {
	path, err := find(ToolCompiler, envCompiler)
	if err != nil {
		return nil, err
	}
	return exec.Command(path), nil
}

// FindOptimizer locates wasm-opt. It is optional: spec.md's pipeline
// produces a correct .wasm artifact without it, so callers should treat
// a NotFoundError here as "skip optimization," not a fatal error --
// unlike FindLinker, whose absence always aborts the build.
func FindOptimizer() (*exec.Cmd, error) {
	path, err := find(ToolOptimizer, envOptimizer)
	if err != nil {
		return nil, err
	}
	return exec.Command(path), nil
}

// ErrLinkerRequired is returned by internal/linker when FindLinker fails
// and no fallback toolchain is configured.
var ErrLinkerRequired = errors.New("wasm-ld is required to produce a .wasm artifact")
