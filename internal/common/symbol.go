// Package common holds small types shared across the compiler that don't
// belong to any single pipeline stage: symbol identity and the operator
// token set.
package common

// Symbol is the identity the type resolver hands out for a declared name
// (a variable, parameter, or function). Two Symbols are the same binding
// iff they are the same pointer; the scope chain in emitctx keys its slot
// map on Symbol, not on the textual name, so shadowing across scopes never
// collides.
type Symbol struct {
	Name string

	// Mutable is true for `let`-declared locals and parameters, false for
	// `const`-declared locals. It does not affect the l-value/r-value
	// status of the resulting Value (parameters are always l-values, per
	// spec.md's "Parameter mutability" note) -- it only affects whether
	// assignment to the slot is legal at the type-check boundary, which is
	// upstream of this package.
	Mutable bool

	// Slot is the field index a class-layout pass assigned this symbol
	// when it identifies an object field rather than a variable or
	// parameter; it is meaningless (left zero) otherwise. Object field
	// reads/writes use it to address the runtime's per-object storage
	// array (internal/codegen/access.go).
	Slot int
}
