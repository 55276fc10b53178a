// Package dispatch implements the Syntactic Dispatcher of spec.md §4.1:
// a registry mapping each syntactic category to its code-generator.
// Registration happens once at process startup (each generator package's
// init() calls Register); the registry is immutable thereafter, the only
// process-wide state the compiler carries (spec.md §9 "Global state").
package dispatch

import (
	"fmt"

	"nitro/internal/ast"
	"nitro/internal/emitctx"
	"nitro/internal/value"
)

// GenFunc lowers a single AST node of the category it's registered
// under into a Value, given the current Emission Context.
type GenFunc func(ctx *emitctx.Context, node ast.Node) (value.Value, error)

var registry = make(map[ast.Category]GenFunc)

// Register binds genFunc as the code-generator for category. It is
// intended to be called only from package init() functions; registering
// the same category twice is a programming error (it would silently
// shadow a generator) and panics rather than failing quietly.
func Register(category ast.Category, genFunc GenFunc) {
	if _, exists := registry[category]; exists {
		panic(fmt.Sprintf("dispatch: generator already registered for category %s", category))
	}
	registry[category] = genFunc
}

// UnsupportedCategoryError is returned by Generate when node's category
// has no registered generator -- spec.md §4.1's "fatal compilation error
// naming the unsupported category."
type UnsupportedCategoryError struct {
	Category ast.Category
}

func (e *UnsupportedCategoryError) Error() string {
	return fmt.Sprintf("no code-generator registered for syntactic category %s", e.Category)
}

// Generate looks up node's category in the registry and delegates to its
// generator (spec.md §4.1 "generate(node, context) -> Value"). The
// dispatcher itself is stateless: it holds no per-compilation state,
// only the immutable registry.
func Generate(ctx *emitctx.Context, node ast.Node) (value.Value, error) {
	genFunc, ok := registry[node.Category()]
	if !ok {
		return value.Value{}, &UnsupportedCategoryError{Category: node.Category()}
	}
	return genFunc(ctx, node)
}

// Registered reports whether category currently has a generator. It
// exists for tests that want to assert dispatcher coverage of the
// accepted subset without needing a live AST node of every category.
func Registered(category ast.Category) bool {
	_, ok := registry[category]
	return ok
}
