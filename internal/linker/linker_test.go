package linker

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/llir/llvm/ir/types"

	"nitro/internal/module"
)

// writeFakeTool writes an executable shell script to dir/name and
// returns its path. body is run verbatim; common fakes either succeed
// silently or touch their -o argument so downstream stages see a file.
func writeFakeTool(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("failed to write fake %s: %v", name, err)
	}
	return path
}

func sealedModule(t *testing.T) *module.Module {
	t.Helper()
	mod := module.New()
	mod.LLVM.NewFunc("f", types.Void)
	mod.Seal()
	return mod
}

func TestLinkRejectsUnsealedModule(t *testing.T) {
	mod := module.New()
	err := Link(mod, Options{OutputPath: filepath.Join(t.TempDir(), "out.wasm")})
	if err == nil {
		t.Fatal("expected an error linking an unsealed module")
	}
}

// fakeLLC emulates `llc -filetype=obj ... -o <obj> <ir>`: it must create
// the object file at its -o argument so wasm-ld's fake has something to
// "consume".
const fakeLLCBody = `
while [ "$#" -gt 0 ]; do
  if [ "$1" = "-o" ]; then shift; touch "$1"; fi
  shift
done
`

func TestLinkRunsCompilerThenLinker(t *testing.T) {
	dir := t.TempDir()
	llc := writeFakeTool(t, dir, "llc", fakeLLCBody)
	wasmLd := writeFakeTool(t, dir, "wasm-ld", `
while [ "$#" -gt 0 ]; do
  if [ "$1" = "-o" ]; then shift; touch "$1"; fi
  shift
done
`)
	t.Setenv("NITRO_LLC", llc)
	t.Setenv("NITRO_WASM_LD", wasmLd)

	outPath := filepath.Join(dir, "out.wasm")
	mod := sealedModule(t)

	if err := Link(mod, Options{OutputPath: outPath}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(outPath); err != nil {
		t.Fatalf("expected output artifact at %s: %v", outPath, err)
	}
}

func TestLinkSurfacesCompilerExitError(t *testing.T) {
	dir := t.TempDir()
	llc := writeFakeTool(t, dir, "llc", "echo 'bad IR' >&2\nexit 1\n")
	t.Setenv("NITRO_LLC", llc)
	t.Setenv("NITRO_WASM_LD", filepath.Join(dir, "does-not-exist"))

	mod := sealedModule(t)
	err := Link(mod, Options{OutputPath: filepath.Join(dir, "out.wasm")})
	if err == nil {
		t.Fatal("expected an error when llc fails")
	}
	linkErr, ok := err.(*LinkError)
	if !ok {
		t.Fatalf("expected *LinkError, got %T: %v", err, err)
	}
	if linkErr.Tool != "llc" {
		t.Fatalf("expected tool llc, got %s", linkErr.Tool)
	}
	if _, ok := linkErr.Err.(*exec.ExitError); !ok {
		t.Fatalf("expected wrapped *exec.ExitError, got %T", linkErr.Err)
	}
}

func TestLinkFailsCleanlyWhenLinkerMissing(t *testing.T) {
	dir := t.TempDir()
	llc := writeFakeTool(t, dir, "llc", fakeLLCBody)
	t.Setenv("NITRO_LLC", llc)
	t.Setenv("NITRO_WASM_LD", filepath.Join(dir, "does-not-exist"))

	mod := sealedModule(t)
	err := Link(mod, Options{OutputPath: filepath.Join(dir, "out.wasm")})
	if err == nil {
		t.Fatal("expected an error when wasm-ld cannot be found")
	}
}

func TestLinkOptimizeFailureDoesNotInvalidateArtifact(t *testing.T) {
	dir := t.TempDir()
	llc := writeFakeTool(t, dir, "llc", fakeLLCBody)
	wasmLd := writeFakeTool(t, dir, "wasm-ld", `
while [ "$#" -gt 0 ]; do
  if [ "$1" = "-o" ]; then shift; touch "$1"; fi
  shift
done
`)
	t.Setenv("NITRO_LLC", llc)
	t.Setenv("NITRO_WASM_LD", wasmLd)
	t.Setenv("NITRO_WASM_OPT", filepath.Join(dir, "does-not-exist"))

	outPath := filepath.Join(dir, "out.wasm")
	mod := sealedModule(t)

	if err := Link(mod, Options{OutputPath: outPath, Optimize: true}); err != nil {
		t.Fatalf("expected a missing wasm-opt not to fail the link, got: %v", err)
	}
	if _, err := os.Stat(outPath); err != nil {
		t.Fatalf("expected output artifact at %s despite missing optimizer: %v", outPath, err)
	}
}
