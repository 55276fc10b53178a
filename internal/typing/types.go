// Package typing implements the closed type lattice of spec.md §3: every
// expression the type resolver classifies lands in exactly one of the
// leaves enumerated here.
package typing

import "fmt"

// Kind is the tag of the type lattice's leaves.
type Kind int

const (
	KindInt32 Kind = iota
	KindFloat64
	KindBool
	KindVoid
	KindRefObject
	KindRefArray
	KindFunction
)

// ElemKind enumerates the element types a ref(array<T>) may carry, per
// spec.md §3's "T in {int32,float64,bool,ref}".
type ElemKind int

const (
	ElemInt32 ElemKind = iota
	ElemFloat64
	ElemBool
	ElemRef
)

// Type is a value of the closed lattice. It is a small struct rather than
// an interface: every leaf is represented, none require their own method
// set, and a struct lets Type be compared with ==, which scope/type caches
// rely on.
type Type struct {
	kind Kind

	// elem is meaningful only when kind == KindRefArray.
	elem ElemKind

	// sig is meaningful only when kind == KindFunction.
	sig *Signature
}

// Signature describes a function type: first-class only in the limited
// positions spec.md §3 allows (a callee expression, or a function-ref
// Value; never stored in a ref(object) field or array element beyond what
// the restricted subset needs).
type Signature struct {
	Params []Type
	Result Type
}

func Int32() Type      { return Type{kind: KindInt32} }
func Float64() Type    { return Type{kind: KindFloat64} }
func Bool() Type       { return Type{kind: KindBool} }
func Void() Type       { return Type{kind: KindVoid} }
func RefObject() Type  { return Type{kind: KindRefObject} }
func Function(sig *Signature) Type {
	return Type{kind: KindFunction, sig: sig}
}

func RefArray(elem ElemKind) Type {
	return Type{kind: KindRefArray, elem: elem}
}

func (t Type) Kind() Kind { return t.kind }

// ArrayElem returns the element kind of a ref(array<T>) type. It panics if
// t is not a ref(array<T>) -- callers must check IsRefArray first, the
// same discipline the type dispatch table requires of int_like/number_like.
func (t Type) ArrayElem() ElemKind {
	if t.kind != KindRefArray {
		panic("typing: ArrayElem called on non-array type")
	}
	return t.elem
}

// Signature returns the callable signature of a function type. It panics
// if t is not KindFunction.
func (t Type) Signature() *Signature {
	if t.kind != KindFunction {
		panic("typing: Signature called on non-function type")
	}
	return t.sig
}

func (t Type) IsRefArray() bool  { return t.kind == KindRefArray }
func (t Type) IsRefObject() bool { return t.kind == KindRefObject }
func (t Type) IsFunction() bool  { return t.kind == KindFunction }
func (t Type) IsVoid() bool      { return t.kind == KindVoid }

// Equal reports whether two Types occupy the same lattice leaf. Function
// types compare by arity/param-kind/result-kind (not by identity), which
// is all the extern-signature-conflict check in internal/module needs.
func (t Type) Equal(o Type) bool {
	if t.kind != o.kind {
		return false
	}
	switch t.kind {
	case KindRefArray:
		return t.elem == o.elem
	case KindFunction:
		if len(t.sig.Params) != len(o.sig.Params) {
			return false
		}
		for i := range t.sig.Params {
			if !t.sig.Params[i].Equal(o.sig.Params[i]) {
				return false
			}
		}
		return t.sig.Result.Equal(o.sig.Result)
	default:
		return true
	}
}

func (t Type) String() string {
	switch t.kind {
	case KindInt32:
		return "int32"
	case KindFloat64:
		return "float64"
	case KindBool:
		return "bool"
	case KindVoid:
		return "void"
	case KindRefObject:
		return "ref(object)"
	case KindRefArray:
		return fmt.Sprintf("ref(array<%s>)", t.elem)
	case KindFunction:
		return "function" + t.sig.String()
	default:
		return "<invalid-type>"
	}
}

func (e ElemKind) String() string {
	switch e {
	case ElemInt32:
		return "int32"
	case ElemFloat64:
		return "float64"
	case ElemBool:
		return "bool"
	case ElemRef:
		return "ref"
	default:
		return "<invalid-elem>"
	}
}

func (s *Signature) String() string {
	out := "("
	for i, p := range s.Params {
		if i > 0 {
			out += ", "
		}
		out += p.String()
	}
	return out + ") -> " + s.Result.String()
}

// -----------------------------------------------------------------------------
// Type-resolver predicates (spec.md §3: "int_like ⊂ number_like (an int32
// expression is also number-like; callers must test int_like BEFORE
// number_like)").

// IsIntLike reports whether t is the int32 leaf.
func IsIntLike(t Type) bool { return t.kind == KindInt32 }

// IsNumberLike reports whether t is int32 or float64. int_like is a
// subset of number_like by construction: every IsIntLike type is also
// IsNumberLike.
func IsNumberLike(t Type) bool { return t.kind == KindInt32 || t.kind == KindFloat64 }

// IsBool reports whether t is the bool leaf.
func IsBool(t Type) bool { return t.kind == KindBool }

// IsRef reports whether t is ref(object) or ref(array<T>).
func IsRef(t Type) bool { return t.kind == KindRefObject || t.kind == KindRefArray }
