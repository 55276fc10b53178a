// Package module implements the Module data type of spec.md §3: "A bag
// of functions plus a table of external declarations for runtime
// helpers. Created at program compile start; sealed by the Module
// Assembler." The Module Assembler's orchestration logic itself lives in
// internal/assembler, to avoid a dependency cycle with
// internal/funccompiler (which needs internal/emitctx, which in turn
// needs to reference the Module a function is being compiled into).
package module

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
)

// externEntry records an already-declared runtime extern's function and
// the LLVM signature it was declared with, for conflict detection.
type externEntry struct {
	fn        *ir.Func
	paramTyps []types.Type
	result    types.Type
}

// Module wraps the LLVM module being assembled plus the extern table.
// One Module exists per compilation unit (spec.md §3).
type Module struct {
	LLVM *ir.Module

	externs map[string]*externEntry
	sealed  bool

	stringLitCounter int
}

// New creates a Module targeting the wasm32 triple -- the concrete
// instantiation of spec.md §1's "WebAssembly modules" output, built via
// the llir/llvm IR-builder collaborator (SPEC_FULL.md §2).
func New() *Module {
	mod := ir.NewModule()
	mod.TargetTriple = "wasm32-unknown-unknown"
	mod.DataLayout = "e-m:e-p:32:32-i64:64-n32:64-S128"
	return &Module{LLVM: mod, externs: make(map[string]*externEntry)}
}

// ExternSignatureConflictError is returned by DeclareExtern when name was
// already declared with an incompatible signature (spec.md §7
// ExternSignatureConflict).
type ExternSignatureConflictError struct {
	Name string
}

func (e *ExternSignatureConflictError) Error() string {
	return fmt.Sprintf("extern %q referenced with conflicting signatures", e.Name)
}

// DeclareExtern returns the *ir.Func for a runtime extern named name,
// declaring it against the module on first reference ("first reference
// wins, identity by mangled name and signature" -- spec.md §4.6). A
// later call with an incompatible signature returns
// ExternSignatureConflictError rather than silently reusing the first
// declaration.
func (m *Module) DeclareExtern(name string, paramTyps []types.Type, result types.Type) (*ir.Func, error) {
	if existing, ok := m.externs[name]; ok {
		if !sameSignature(existing.paramTyps, existing.result, paramTyps, result) {
			return nil, &ExternSignatureConflictError{Name: name}
		}
		return existing.fn, nil
	}

	params := make([]*ir.Param, len(paramTyps))
	for i, t := range paramTyps {
		params[i] = ir.NewParam("", t)
	}
	fn := m.LLVM.NewFunc(name, result, params...)
	fn.Linkage = enum.LinkageExternal
	m.externs[name] = &externEntry{fn: fn, paramTyps: paramTyps, result: result}
	return fn, nil
}

func sameSignature(aParams []types.Type, aResult types.Type, bParams []types.Type, bResult types.Type) bool {
	if len(aParams) != len(bParams) {
		return false
	}
	for i := range aParams {
		if aParams[i].String() != bParams[i].String() {
			return false
		}
	}
	return aResult.String() == bResult.String()
}

// Seal marks the module as finalized: no further definitions should be
// added. It does not itself check the module -- the whole-module check
// (verifyModule, which checks the target triple) is internal/assembler's
// job, since verification is a property of the
// whole Module Assembler pipeline (spec.md §4.6), not of this bag-of-data
// type.
func (m *Module) Seal() { m.sealed = true }

// Sealed reports whether Seal has been called.
func (m *Module) Sealed() bool { return m.sealed }

// NextStringLitName returns a fresh, module-scoped name for a string
// literal's backing global. Scoping the counter to Module rather than to
// the process keeps two separate compilations (two Module instances) in
// the same process free of any shared mutable state, per spec.md §9's
// "the only process-wide state is the syntactic-dispatcher registry"
// invariant -- and keeps §8's "emitting the same typed AST twice with
// equal context state produces byte-identical modules" property true
// even across back-to-back compilations in one process.
func (m *Module) NextStringLitName() string {
	name := fmt.Sprintf("__strlit.%d", m.stringLitCounter)
	m.stringLitCounter++
	return name
}
