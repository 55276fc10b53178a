// Package resolve defines the Type Resolver contract (spec.md §2.1,
// §6): the boundary between the core codegen pipeline and the external
// front-end type checker. The core never infers types itself -- it only
// ever queries a TypeResolver.
package resolve

import (
	"nitro/internal/ast"
	"nitro/internal/common"
	"nitro/internal/typing"
)

// TypeResolver answers the two queries spec.md §3 grants the core:
// type_of(node) and the four derived predicates, plus symbol_of and
// signature_of from the §6 contract. Implementations are supplied by an
// upstream front end; internal/typecheck is this repository's own (thin,
// out-of-specification-depth) implementation.
type TypeResolver interface {
	// TypeOf returns the static type the front end assigned to node. It
	// panics if node was never type-checked -- that is an upstream bug,
	// the same class of defect as spec.md's UnresolvedSymbol.
	TypeOf(node ast.Node) typing.Type

	// SymbolOf returns the resolved symbol recorded for node: an
	// identifier's symbol, or a property access's field symbol (whose
	// Slot is the field slot). It returns (nil, false) if no symbol was
	// recorded for node.
	SymbolOf(node ast.Node) (*common.Symbol, bool)

	// SignatureOf returns the callable signature recorded for a call
	// node.
	SignatureOf(node ast.Node) *typing.Signature
}

// IsIntLike, IsNumberLike, IsBool, and IsRef are free functions rather
// than TypeResolver methods: once TypeOf(node) has produced a
// typing.Type, the four predicates are pure functions of that Type
// (internal/typing already implements them) and need no further access
// to the resolver. spec.md's contract table lists them beside TypeOf for
// exposition; nothing is lost by calling typing.IsIntLike(r.TypeOf(n))
// at the call site instead of r.IsIntLike(n).
var (
	IsIntLike    = typing.IsIntLike
	IsNumberLike = typing.IsNumberLike
	IsBool       = typing.IsBool
	IsRef        = typing.IsRef
)

// Table is a map-backed TypeResolver: a fully-typed AST built directly by
// a test, or by internal/typecheck, records each node's type and each
// identifier's symbol into a Table and hands it to the codegen pipeline.
// This is the simplest possible implementation of the contract and is
// what every codegen test in this repository constructs directly,
// exactly matching spec.md §6's "Input: a typed AST...plus a predicate
// marking which function declarations are to be compiled."
type Table struct {
	types   map[ast.Node]typing.Type
	symbols map[ast.Node]*common.Symbol
	sigs    map[ast.Node]*typing.Signature
}

func NewTable() *Table {
	return &Table{
		types:   make(map[ast.Node]typing.Type),
		symbols: make(map[ast.Node]*common.Symbol),
		sigs:    make(map[ast.Node]*typing.Signature),
	}
}

// SetType records the static type of node.
func (t *Table) SetType(node ast.Node, typ typing.Type) { t.types[node] = typ }

// SetSymbol records the resolved symbol of an identifier or
// property-access node.
func (t *Table) SetSymbol(node ast.Node, sym *common.Symbol) { t.symbols[node] = sym }

// SetSignature records the callable signature of a call node.
func (t *Table) SetSignature(node ast.Node, sig *typing.Signature) { t.sigs[node] = sig }

func (t *Table) TypeOf(node ast.Node) typing.Type {
	typ, ok := t.types[node]
	if !ok {
		panic("resolve: TypeOf called on an untyped node -- upstream type-checker bug")
	}
	return typ
}

func (t *Table) SymbolOf(node ast.Node) (*common.Symbol, bool) {
	sym, ok := t.symbols[node]
	return sym, ok
}

func (t *Table) SignatureOf(node ast.Node) *typing.Signature {
	return t.sigs[node]
}
