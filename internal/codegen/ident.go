package codegen

import (
	"nitro/internal/ast"
	"nitro/internal/dispatch"
	"nitro/internal/emitctx"
	"nitro/internal/report"
	"nitro/internal/value"
)

func init() {
	dispatch.Register(ast.CatIdentifier, genIdentifier)
}

// genIdentifier implements spec.md §4.4.3: look up the identifier's
// resolved symbol in the scope chain and return its bound l-value
// (parameters and locals are uniformly mutable l-values, per spec.md
// §4.4.8's "Parameter mutability" decision). A symbol with no binding
// indicates an upstream type-resolver bug -- spec.md calls this
// UnresolvedSymbol rather than a panic, since it's a user-visible
// function-compilation failure, not a programming error in this package.
func genIdentifier(ctx *emitctx.Context, node ast.Node) (value.Value, error) {
	ident := node.(*ast.Identifier)

	if ident.Sym == nil {
		return value.Value{}, report.New(report.KindUnresolvedSymbol, ident.Pos(),
			"identifier %q has no resolved symbol", ident.Name)
	}

	bound, ok := ctx.Lookup(ident.Sym)
	if !ok {
		return value.Value{}, report.New(report.KindUnresolvedSymbol, ident.Pos(),
			"identifier %q is not bound in the current scope chain", ident.Name)
	}
	return bound, nil
}
