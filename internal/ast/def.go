package ast

import (
	"nitro/internal/common"
	"nitro/internal/report"
	"nitro/internal/typing"
)

// Param is a single function parameter declaration.
type Param struct {
	Sym  *common.Symbol
	Type typing.Type
}

// FuncDecl is a function declaration (spec.md §4.4.8). Annotated is true
// when the function's leading statement is the `"use compile"` directive
// that marks it a compilation candidate (spec.md §6 "Input"). Sym is the
// function's own global identity, shared across every call site that
// invokes it by name -- a Call expression's Callee identifier carries
// this same *common.Symbol, so the Module Assembler can bind one
// FunctionRef value per declaration and every sibling function (and the
// declaration itself, for recursion) resolves to it through the ordinary
// scope-chain lookup codegen/ident.go already performs.
type FuncDecl struct {
	base
	Name       string
	Sym        *common.Symbol
	Params     []Param
	ReturnType typing.Type
	Body       *Block
	Annotated  bool
}

func NewFuncDecl(pos report.Position, name string, params []Param, ret typing.Type, body *Block, annotated bool) *FuncDecl {
	return &FuncDecl{
		base:       base{pos},
		Name:       name,
		Sym:        &common.Symbol{Name: name},
		Params:     params,
		ReturnType: ret,
		Body:       body,
		Annotated:  annotated,
	}
}

func (*FuncDecl) Category() Category { return CatFuncDecl }

// Signature returns the function's type-lattice Signature, used both by
// the module assembler's extern table and by call-site argument
// coercion.
func (f *FuncDecl) Signature() *typing.Signature {
	params := make([]typing.Type, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.Type
	}
	return &typing.Signature{Params: params, Result: f.ReturnType}
}
