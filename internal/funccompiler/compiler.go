// Package funccompiler implements the Function Compiler of spec.md §4.5:
// orchestrates compilation of a single annotated function end to end --
// prologue, parameter slot materialization, body lowering via the
// Syntactic Dispatcher, epilogue with a phi over return values, and a
// structural verification pass. It is grounded on the teacher's
// generate/gen_defs.go genFunc, adapted from chai's closed genExpr switch
// to this repository's dispatch.Generate call.
package funccompiler

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"

	"nitro/internal/ast"
	"nitro/internal/common"
	"nitro/internal/dispatch"
	"nitro/internal/emitctx"
	"nitro/internal/module"
	"nitro/internal/report"
	"nitro/internal/resolve"
	"nitro/internal/typing"
	"nitro/internal/value"

	// Blank-imported so the per-category code-generators register
	// themselves with internal/dispatch on first use of this package --
	// the only place in the module that needs every generator linked in
	// (spec.md §9: "populated once at init() time").
	_ "nitro/internal/codegen"
)

// DeclareFunc declares decl's signature against mod without compiling its
// body -- the Module Assembler's first pass over a whole program's
// annotated functions, so that every sibling function (and the
// declaration itself, for recursive calls) has a concrete *ir.Func to
// bind a FunctionRef Value to before any body is lowered.
func DeclareFunc(mod *module.Module, decl *ast.FuncDecl) *ir.Func {
	llParams := make([]*ir.Param, len(decl.Params))
	for i, p := range decl.Params {
		llParams[i] = ir.NewParam(p.Sym.Name, llvmTypeOf(p.Type))
	}
	fn := mod.LLVM.NewFunc(decl.Name, llvmTypeOf(decl.ReturnType), llParams...)
	fn.FuncAttrs = []ir.FuncAttribute{enum.FuncAttrNoUnwind}
	return fn
}

// Compile declares and compiles one annotated FuncDecl into mod with no
// sibling functions visible to its body -- the single-function path
// this package's own tests use. Compiling
// a whole program with inter-function calls goes through CompileBody
// instead, after every sibling has been declared via DeclareFunc.
func Compile(mod *module.Module, resolver resolve.TypeResolver, decl *ast.FuncDecl) (*ir.Func, []*report.CompileError) {
	fn := DeclareFunc(mod, decl)
	errs := CompileBody(mod, resolver, decl, fn, nil)
	return fn, errs
}

// CompileBody lowers decl's body into the already-declared fn, binding
// every entry in globals (typically one FunctionRef per annotated
// function in the program, keyed by its own common.Symbol) into the
// function's root scope before its body is dispatched -- this is what
// lets a Call node's callee identifier resolve a sibling function the
// same way codegen/ident.go resolves a local or parameter (spec.md §4.4.5
// "evaluate the callee" is just another scope-chain lookup once the
// Module Assembler has seeded it).
func CompileBody(mod *module.Module, resolver resolve.TypeResolver, decl *ast.FuncDecl, fn *ir.Func, globals map[*common.Symbol]value.Value) []*report.CompileError {
	ctx := emitctx.New(mod, fn, resolver)
	entry := ctx.AppendBlock()
	ctx.Block = entry

	leaveScope := ctx.EnterScope()
	defer leaveScope()

	for sym, ref := range globals {
		ctx.Define(sym, ref)
	}

	llParams := fn.Params
	for i, p := range decl.Params {
		elemType := llvmTypeOf(p.Type)
		slot := entry.NewAlloca(elemType)
		entry.NewStore(llParams[i], slot)
		ctx.Define(p.Sym, value.NewLValue(slot, p.Type, elemType))
	}

	epilogue := ctx.AppendBlock()
	ctx.SetEpilogue(epilogue)

	var errs []*report.CompileError
	if _, err := dispatch.Generate(ctx, decl.Body); err != nil {
		errs = append(errs, toCompileError(err, decl.Body.Pos()))
	}

	// Every normal-fallthrough path (not already terminated by an
	// explicit `return`) also reaches the epilogue, as a void/no-value
	// implicit return -- mirrors the teacher's "NewRet is defined to
	// generate a ret void which is the desired behavior" fallthrough.
	// A fallthrough block that no other block branches to (the merge
	// block of an if/else whose branches all returned) is closed with
	// `unreachable` instead and contributes no return.
	if ctx.Block.Term == nil {
		reachable := ctx.Block == entry
		for _, b := range fn.Blocks {
			if b.Term == nil {
				continue
			}
			for _, succ := range b.Term.Succs() {
				if succ == ctx.Block {
					reachable = true
				}
			}
		}
		if reachable {
			ctx.RecordReturn(nil, ctx.Block)
			ctx.Block.NewBr(epilogue)
		} else {
			ctx.Block.NewUnreachable()
		}
	}

	if err := buildEpilogue(ctx, epilogue, decl.ReturnType); err != nil {
		errs = append(errs, toCompileError(err, decl.Body.Pos()))
	}

	if malformed := checkAllBlocksTerminated(fn); malformed != nil {
		errs = append(errs, malformed)
	}

	return errs
}

// buildEpilogue wires the function's single return instruction: a direct
// `ret` if there is exactly one incoming return, a phi merging every
// incoming return's value otherwise (spec.md §4.4.6: "the epilogue...owns
// the single return instruction and a phi over return values when
// multiple returns exist").
func buildEpilogue(ctx *emitctx.Context, epilogue *ir.Block, declaredReturn typing.Type) error {
	returns := ctx.Returns()

	if declaredReturn.IsVoid() {
		epilogue.NewRet(nil)
		return nil
	}

	if len(returns) == 0 {
		return fmt.Errorf("function declares a non-void return type but has no reachable `return` statement")
	}

	if len(returns) == 1 {
		if returns[0].Value == nil {
			return fmt.Errorf("a `return` without a value reaches a non-void function's epilogue")
		}
		epilogue.NewRet(returns[0].Value)
		return nil
	}

	var incoming []*ir.Incoming
	for _, r := range returns {
		if r.Value == nil {
			return fmt.Errorf("a `return` without a value reaches a non-void function's epilogue")
		}
		incoming = append(incoming, ir.NewIncoming(r.Value, r.Block))
	}
	phi := epilogue.NewPhi(incoming...)
	epilogue.NewRet(phi)
	return nil
}

// checkAllBlocksTerminated implements spec.md §4.4.8's "epilogue
// verifies all paths reach a terminator": any basic block lacking a
// terminator instruction is MalformedFunction. No LLVM verifier runs in
// this pipeline: internal/assembler's verifyModule checks only the
// module's target triple, so this is the one place the invariant is
// checked.
func checkAllBlocksTerminated(fn *ir.Func) *report.CompileError {
	for _, block := range fn.Blocks {
		if block.Term == nil {
			return report.New(report.KindMalformedFunction, report.Position{},
				"a basic block in function %q has no terminator", fn.Name())
		}
	}
	return nil
}

// toCompileError adapts a non-CompileError (e.g. one of this package's own
// fmt.Errorf results) into the report taxonomy as MalformedFunction --
// CompileErrors raised deeper in codegen pass through unchanged.
func toCompileError(err error, pos report.Position) *report.CompileError {
	if ce, ok := err.(*report.CompileError); ok {
		return ce
	}
	return report.New(report.KindMalformedFunction, pos, "%v", err)
}

// llvmTypeOf maps a lattice Type to the concrete LLVM type used for
// parameter/return/slot purposes -- the same mapping
// internal/codegen/vardecl.go uses for local slots, duplicated here
// rather than imported to avoid a funccompiler->codegen->funccompiler
// import cycle (codegen only needs the dispatch registry, not this
// package).
func llvmTypeOf(t typing.Type) types.Type {
	switch t.Kind() {
	case typing.KindInt32:
		return types.I32
	case typing.KindFloat64:
		return types.Double
	case typing.KindBool:
		return types.I1
	case typing.KindRefObject, typing.KindRefArray, typing.KindFunction:
		return types.I32
	default:
		return types.Void
	}
}
