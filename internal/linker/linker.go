// Package linker drives the external toolchain internal/wasmtoolchain
// discovers to turn an assembled Module into a final .wasm artifact:
// llc lowers the module's textual IR to a wasm32 object file, then
// wasm-ld links it into the requested output path. Grounded on the
// teacher's cmd/link.go linkExecutable -- same "build a command, run
// it, turn a *exec.ExitError into a reported link error, turn any other
// error into a 'couldn't run the tool' error, clean up the intermediate
// file" shape, retargeted from MSVC/ld object files to a single LLVM IR
// module.
package linker

import (
	"fmt"
	"os"
	"os/exec"

	"nitro/internal/module"
	"nitro/internal/wasmtoolchain"
)

// Options configures one link invocation.
type Options struct {
	OutputPath string
	// Optimize runs wasm-opt over the linked artifact if true. A missing
	// wasm-opt is not fatal when Optimize is requested -- per
	// internal/wasmtoolchain's doc comment, optimization is best-effort.
	Optimize bool
}

// LinkError wraps a failure surfaced by one of the external tools, along
// with the tool's captured output.
type LinkError struct {
	Tool   string
	Output string
	Err    error
}

func (e *LinkError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("%s failed: %s\n%s", e.Tool, e.Err, e.Output)
	}
	return fmt.Sprintf("%s failed: %s", e.Tool, e.Err)
}

func (e *LinkError) Unwrap() error { return e.Err }

// Link compiles mod's LLVM IR to a wasm32 object file via llc, links it
// via wasm-ld into opts.OutputPath, optionally runs wasm-opt over the
// result, and removes the intermediate object file -- mirroring the
// teacher's "clean up produced object files" step in linkExecutable.
func Link(mod *module.Module, opts Options) error {
	if !mod.Sealed() {
		return fmt.Errorf("linker: module must be sealed by the Module Assembler before linking")
	}

	irFile, err := os.CreateTemp("", "nitro-*.ll")
	if err != nil {
		return fmt.Errorf("linker: failed to create temporary IR file: %w", err)
	}
	irPath := irFile.Name()
	defer os.Remove(irPath)

	if _, err := fmt.Fprint(irFile, mod.LLVM.String()); err != nil {
		irFile.Close()
		return fmt.Errorf("linker: failed to write module IR: %w", err)
	}
	if err := irFile.Close(); err != nil {
		return fmt.Errorf("linker: failed to close IR file: %w", err)
	}

	objPath := irPath + ".o"
	defer os.Remove(objPath)
	if err := runCompile(irPath, objPath); err != nil {
		return err
	}

	if err := runLink(objPath, opts.OutputPath); err != nil {
		return err
	}

	if opts.Optimize {
		if err := runOptimize(opts.OutputPath); err != nil {
			// Best-effort: a missing or failing wasm-opt does not
			// invalidate the artifact wasm-ld already produced.
			return nil
		}
	}
	return nil
}

func runCompile(irPath, objPath string) error {
	cmd, err := wasmtoolchain.FindCompiler()
	if err != nil {
		return err
	}
	cmd.Args = append(cmd.Args, "-filetype=obj", "-mtriple=wasm32-unknown-unknown", "-o", objPath, irPath)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return toLinkError(wasmtoolchain.ToolCompiler, out, err)
	}
	return nil
}

func runLink(objPath, outputPath string) error {
	cmd, err := wasmtoolchain.FindLinker()
	if err != nil {
		return err
	}
	cmd.Args = append(cmd.Args,
		"--no-entry",
		"--export-all",
		"-o", outputPath,
		objPath,
	)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return toLinkError(wasmtoolchain.ToolLinker, out, err)
	}
	return nil
}

func runOptimize(wasmPath string) error {
	cmd, err := wasmtoolchain.FindOptimizer()
	if err != nil {
		return err
	}
	cmd.Args = append(cmd.Args, "-O2", "-o", wasmPath, wasmPath)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return toLinkError(wasmtoolchain.ToolOptimizer, out, err)
	}
	return nil
}

// toLinkError classifies err the way the teacher's linkExecutable does:
// an *exec.ExitError means the tool ran and reported a real failure
// (surface its output); anything else means the tool itself could not
// be run.
func toLinkError(tool string, out []byte, err error) error {
	if _, ok := err.(*exec.ExitError); ok {
		return &LinkError{Tool: tool, Output: string(out), Err: err}
	}
	return &LinkError{Tool: tool, Err: fmt.Errorf("failed to run %s: %w", tool, err)}
}
