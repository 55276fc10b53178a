// Package assembler implements the Module Assembler of spec.md §4.6:
// gathers compiled functions, declares runtime externs, emits the
// module, verifies it, and hands it to the linker collaborator. It plays
// the role chai's cmd.Compiler plays across Analyze/Generate, adapted
// from a whole-project dependency graph down to this specification's
// single Module plus a flat work list of annotated functions.
package assembler

import (
	"github.com/llir/llvm/ir"

	"nitro/internal/ast"
	"nitro/internal/common"
	"nitro/internal/funccompiler"
	"nitro/internal/module"
	"nitro/internal/report"
	"nitro/internal/resolve"
	"nitro/internal/value"
)

// Result is everything the Module Assembler produces: the sealed Module
// (nil if any function failed) plus the full error aggregation.
type Result struct {
	Module     *module.Module
	Aggregator *report.Aggregator
}

// Succeeded reports whether every function compiled cleanly -- spec.md
// §7's "the final artifact is suppressed if any error occurred".
func (r *Result) Succeeded() bool { return !r.Aggregator.AnyErrors() }

// Assemble compiles every annotated function in decls against resolver
// and assembles them into one Module. One function's errors do not abort
// the others' compilation (spec.md §7); the returned Module is sealed and
// verified only if no function failed.
func Assemble(resolver resolve.TypeResolver, decls []*ast.FuncDecl) *Result {
	mod := module.New()
	agg := &report.Aggregator{}

	// First pass: declare every annotated function's prototype and bind
	// its symbol to a FunctionRef, so the second pass can lower a call to
	// any sibling (or a recursive self-call) the same way it resolves a
	// local variable -- a scope-chain lookup, not a separate code path.
	fns := make(map[string]*ir.Func)
	globals := make(map[*common.Symbol]value.Value)
	for _, decl := range decls {
		if !decl.Annotated {
			continue
		}
		fn := funccompiler.DeclareFunc(mod, decl)
		fns[decl.Name] = fn
		globals[decl.Sym] = value.NewFunctionRef(fn, decl.Signature())
	}

	for _, decl := range decls {
		if !decl.Annotated {
			continue
		}
		errs := funccompiler.CompileBody(mod, resolver, decl, fns[decl.Name], globals)
		agg.Record(decl.Name, errs)
	}

	if agg.AnyErrors() {
		return &Result{Module: nil, Aggregator: agg}
	}

	if err := verifyModule(mod); err != nil {
		agg.Record("<module>", []*report.CompileError{err})
		return &Result{Module: nil, Aggregator: agg}
	}

	mod.Seal()
	return &Result{Module: mod, Aggregator: agg}
}

// verifyModule runs the one whole-module structural check that isn't
// already covered per-function: the module as assembled must carry the
// wasm32 target triple the rest of the toolchain (internal/wasmtoolchain,
// internal/linker) expects. Per-function structural checks, including
// "every basic block has a terminator", are funccompiler's job
// (checkAllBlocksTerminated, run before a function's errors are recorded)
// and are not repeated here.
func verifyModule(mod *module.Module) *report.CompileError {
	if mod.LLVM.TargetTriple != "wasm32-unknown-unknown" {
		return report.New(report.KindMalformedFunction, report.Position{},
			"module target triple is %q, expected wasm32-unknown-unknown", mod.LLVM.TargetTriple)
	}
	return nil
}
