package codegen

import (
	"github.com/llir/llvm/ir/types"

	"nitro/internal/emitctx"
	"nitro/internal/module"
	"nitro/internal/resolve"
)

// newTestCtx builds a fresh Context with one open scope and one open
// block in a throwaway function, backed by a resolve.Table the caller
// populates directly --
// the same shape internal/dispatch's own tests use.
func newTestCtx() (*emitctx.Context, *resolve.Table) {
	mod := module.New()
	fn := mod.LLVM.NewFunc("f", types.I32)
	resolver := resolve.NewTable()
	ctx := emitctx.New(mod, fn, resolver)
	ctx.PushScope()
	ctx.Block = ctx.AppendBlock()
	return ctx, resolver
}
