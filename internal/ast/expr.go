package ast

import (
	"nitro/internal/common"
	"nitro/internal/report"
)

// Literal is an integer, float, boolean, or string constant (spec.md
// §4.4.4). Which field is meaningful is determined by the resolver's
// type_of(node) classification, not by a kind tag here -- the literal
// node itself is agnostic about its lattice leaf.
type Literal struct {
	base
	IntValue    int32
	FloatValue  float64
	BoolValue   bool
	StringValue string
	IsString    bool
	IsFloat     bool
	IsBool      bool
}

func NewIntLiteral(pos report.Position, v int32) *Literal {
	return &Literal{base: base{pos}, IntValue: v}
}

func NewFloatLiteral(pos report.Position, v float64) *Literal {
	return &Literal{base: base{pos}, FloatValue: v, IsFloat: true}
}

func NewBoolLiteral(pos report.Position, v bool) *Literal {
	return &Literal{base: base{pos}, BoolValue: v, IsBool: true}
}

func NewStringLiteral(pos report.Position, v string) *Literal {
	return &Literal{base: base{pos}, StringValue: v, IsString: true}
}

func (*Literal) Category() Category { return CatLiteral }

// Identifier is a bare name reference, resolved by the external type
// resolver to a common.Symbol (spec.md §4.4.3).
type Identifier struct {
	base
	Name string
	Sym  *common.Symbol
}

func NewIdentifier(pos report.Position, name string, sym *common.Symbol) *Identifier {
	return &Identifier{base: base{pos}, Name: name, Sym: sym}
}

func (*Identifier) Category() Category { return CatIdentifier }

// BinaryOp is a two-operand operator application, including the
// compound-assign and simple-assign forms (spec.md §4.4.1).
type BinaryOp struct {
	base
	Op    common.Operator
	Left  Node
	Right Node
}

func NewBinaryOp(pos report.Position, op common.Operator, left, right Node) *BinaryOp {
	return &BinaryOp{base: base{pos}, Op: op, Left: left, Right: right}
}

func (*BinaryOp) Category() Category { return CatBinaryOp }

// UnaryOp is a one-operand operator application (spec.md §4.4.2),
// including prefix/postfix increment and decrement.
type UnaryOp struct {
	base
	Op      common.Operator
	Operand Node
	Postfix bool
}

func NewUnaryOp(pos report.Position, op common.Operator, operand Node, postfix bool) *UnaryOp {
	return &UnaryOp{base: base{pos}, Op: op, Operand: operand, Postfix: postfix}
}

func (*UnaryOp) Category() Category { return CatUnaryOp }

// Call is a function invocation (spec.md §4.4.5).
type Call struct {
	base
	Callee Node
	Args   []Node
}

func NewCall(pos report.Position, callee Node, args []Node) *Call {
	return &Call{base: base{pos}, Callee: callee, Args: args}
}

func (*Call) Category() Category { return CatCall }

// Cast is an explicit type conversion to the type the resolver records
// for the node. internal/parser never produces one; the `|0` idiom and
// the implicit int->float widening at assignments and calls are lowered
// by codegen without a Cast node.
type Cast struct {
	base
	Src Node
}

func NewCast(pos report.Position, src Node) *Cast {
	return &Cast{base: base{pos}, Src: src}
}

func (*Cast) Category() Category { return CatCast }

// PropertyAccess reads a named field off a ref(object) value.
type PropertyAccess struct {
	base
	Object   Node
	Property string
}

func NewPropertyAccess(pos report.Position, object Node, property string) *PropertyAccess {
	return &PropertyAccess{base: base{pos}, Object: object, Property: property}
}

func (*PropertyAccess) Category() Category { return CatPropertyAccess }

// ElementAccess reads an indexed element off a ref(array<T>) value.
type ElementAccess struct {
	base
	Array Node
	Index Node
}

func NewElementAccess(pos report.Position, array, index Node) *ElementAccess {
	return &ElementAccess{base: base{pos}, Array: array, Index: index}
}

func (*ElementAccess) Category() Category { return CatElementAccess }

// NewExpr allocates a fresh ref(object) or ref(array<T>) via the runtime
// collaborator.
type NewExpr struct {
	base
	ClassName string
	Args      []Node
}

func NewNewExpr(pos report.Position, className string, args []Node) *NewExpr {
	return &NewExpr{base: base{pos}, ClassName: className, Args: args}
}

func (*NewExpr) Category() Category { return CatNewExpr }

// ArrayLiteral constructs a ref(array<T>) value from a fixed element list.
type ArrayLiteral struct {
	base
	Elements []Node
}

func NewArrayLiteral(pos report.Position, elements []Node) *ArrayLiteral {
	return &ArrayLiteral{base: base{pos}, Elements: elements}
}

func (*ArrayLiteral) Category() Category { return CatArrayLiteral }

// ObjectLiteral constructs a ref(object) value from named field
// initializers.
type ObjectLiteral struct {
	base
	FieldNames  []string
	FieldValues []Node
}

func NewObjectLiteral(pos report.Position, names []string, values []Node) *ObjectLiteral {
	return &ObjectLiteral{base: base{pos}, FieldNames: names, FieldValues: values}
}

func (*ObjectLiteral) Category() Category { return CatObjectLiteral }
