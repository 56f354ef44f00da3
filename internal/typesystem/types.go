// Package typesystem models Paw's Type sum: primitive widths, generics,
// named nominal types, pointers, arrays, function types, and generic
// instances, together with structural equality and the literal/width
// compatibility relation used at annotation boundaries.
package typesystem

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Type is implemented by every member of the Type sum.
type Type interface {
	String() string
	typeNode()
}

// PrimitiveKind enumerates Paw's primitive widths.
type PrimitiveKind string

const (
	I8     PrimitiveKind = "i8"
	I16    PrimitiveKind = "i16"
	I32    PrimitiveKind = "i32"
	I64    PrimitiveKind = "i64"
	I128   PrimitiveKind = "i128"
	U8     PrimitiveKind = "u8"
	U16    PrimitiveKind = "u16"
	U32    PrimitiveKind = "u32"
	U64    PrimitiveKind = "u64"
	U128   PrimitiveKind = "u128"
	F32    PrimitiveKind = "f32"
	F64    PrimitiveKind = "f64"
	Bool   PrimitiveKind = "bool"
	Char   PrimitiveKind = "char"
	Str    PrimitiveKind = "string"
	Void   PrimitiveKind = "void"
)

var IntegerKinds = map[PrimitiveKind]bool{
	I8: true, I16: true, I32: true, I64: true, I128: true,
	U8: true, U16: true, U32: true, U64: true, U128: true,
}

var FloatKinds = map[PrimitiveKind]bool{F32: true, F64: true}

// Primitive is a fixed-width scalar type.
type Primitive struct {
	Kind PrimitiveKind
}

func (p Primitive) String() string { return string(p.Kind) }
func (Primitive) typeNode()        {}

func (p Primitive) IsInteger() bool { return IntegerKinds[p.Kind] }
func (p Primitive) IsFloat() bool   { return FloatKinds[p.Kind] }

// Generic is an unresolved type parameter, e.g. `T` inside a generic
// function or type declaration body.
type Generic struct {
	Name string
}

func (g Generic) String() string { return g.Name }
func (Generic) typeNode()        {}

// Named is a nominal reference resolved via the type table (a struct,
// enum, or trait name).
type Named struct {
	Name string
}

func (n Named) String() string { return n.Name }
func (Named) typeNode()        {}

// Pointer is an owning reference to another Type.
type Pointer struct {
	Elem Type
}

func (p Pointer) String() string { return "*" + p.Elem.String() }
func (Pointer) typeNode()        {}

// Array is a sized or unsized sequence of Elem. Size == nil means unsized
// (dynamic); otherwise it carries the declared length.
type Array struct {
	Elem Type
	Size *int
}

func (a Array) String() string {
	if a.Size == nil {
		return fmt.Sprintf("[%s]", a.Elem.String())
	}
	return fmt.Sprintf("[%s; %d]", a.Elem.String(), *a.Size)
}
func (Array) typeNode() {}

// Function is a function signature type.
type Function struct {
	Params []Type
	Return Type
}

func (f Function) String() string {
	parts := lo.Map(f.Params, func(p Type, _ int) string { return p.String() })
	ret := "void"
	if f.Return != nil {
		ret = f.Return.String()
	}
	return fmt.Sprintf("fn(%s) -> %s", strings.Join(parts, ", "), ret)
}
func (Function) typeNode() {}

// GenericInstance is a named type applied to concrete type arguments, e.g.
// Box<i32> or Result<i32, string>.
type GenericInstance struct {
	Name string
	Args []Type
}

func (g GenericInstance) String() string {
	parts := lo.Map(g.Args, func(a Type, _ int) string { return a.String() })
	return fmt.Sprintf("%s<%s>", g.Name, strings.Join(parts, ", "))
}
func (GenericInstance) typeNode() {}

// MangledName returns the monomorphized name used by both backends for a
// generic instance's emitted function/type set, e.g. Box<i32> -> "Box_i32".
func (g GenericInstance) MangledName() string {
	parts := lo.Map(g.Args, func(a Type, _ int) string { return mangleComponent(a) })
	if len(parts) == 0 {
		return g.Name
	}
	return g.Name + "_" + strings.Join(parts, "_")
}

func mangleComponent(t Type) string {
	switch v := t.(type) {
	case Primitive:
		return string(v.Kind)
	case Named:
		return v.Name
	case GenericInstance:
		return v.MangledName()
	case Pointer:
		return "Ptr" + mangleComponent(v.Elem)
	case Array:
		return "Arr" + mangleComponent(v.Elem)
	default:
		return strings.ReplaceAll(t.String(), " ", "")
	}
}

// Equal reports structural equality, per spec.md's Type Invariants:
// Array(_,nil) is compatible with Array(_,Some N) given equal element
// types (treated here as part of equality, since no width information is
// lost by erasing a statically-unknown size).
func Equal(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	switch av := a.(type) {
	case Primitive:
		bv, ok := b.(Primitive)
		return ok && av.Kind == bv.Kind
	case Generic:
		bv, ok := b.(Generic)
		return ok && av.Name == bv.Name
	case Named:
		bv, ok := b.(Named)
		return ok && av.Name == bv.Name
	case Pointer:
		bv, ok := b.(Pointer)
		return ok && Equal(av.Elem, bv.Elem)
	case Array:
		bv, ok := b.(Array)
		if !ok || !Equal(av.Elem, bv.Elem) {
			return false
		}
		if av.Size == nil || bv.Size == nil {
			return true
		}
		return *av.Size == *bv.Size
	case Function:
		bv, ok := b.(Function)
		if !ok || len(av.Params) != len(bv.Params) {
			return false
		}
		for i := range av.Params {
			if !Equal(av.Params[i], bv.Params[i]) {
				return false
			}
		}
		return Equal(av.Return, bv.Return)
	case GenericInstance:
		bv, ok := b.(GenericInstance)
		if !ok || av.Name != bv.Name || len(av.Args) != len(bv.Args) {
			return false
		}
		for i := range av.Args {
			if !Equal(av.Args[i], bv.Args[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// LiteralDefaultInt and LiteralDefaultFloat are the types an untyped
// integer/float literal carries before it meets an annotation.
var (
	LiteralDefaultInt   = Primitive{Kind: I32}
	LiteralDefaultFloat = Primitive{Kind: F64}
)

// CompatibleAtAnnotation implements the literal-to-annotation compatibility
// relation: an i32-default integer literal is accepted at any
// integer-width declaration, and an f64-default float literal at any
// float-width declaration. This is distinct from, and looser than, Equal.
func CompatibleAtAnnotation(literalType, annotated Type) bool {
	if Equal(literalType, annotated) {
		return true
	}
	if bareName, ok := literalType.(Named); ok {
		if gi, ok := annotated.(GenericInstance); ok && bareName.Name == gi.Name {
			return true
		}
	}
	if gi, ok := literalType.(GenericInstance); ok {
		if bareName, ok := annotated.(Named); ok && bareName.Name == gi.Name {
			return true
		}
	}
	lp, ok := literalType.(Primitive)
	if !ok {
		return false
	}
	ap, ok := annotated.(Primitive)
	if !ok {
		return false
	}
	if lp.Kind == I32 && ap.IsInteger() {
		return true
	}
	if lp.Kind == F64 && ap.IsFloat() {
		return true
	}
	return false
}

// Subst maps generic type-parameter names to concrete Types, used when
// instantiating a generic declaration (monomorphization).
type Subst map[string]Type

// Substitute replaces every Generic(name) in t that has an entry in s.
func Substitute(t Type, s Subst) Type {
	switch v := t.(type) {
	case Generic:
		if repl, ok := s[v.Name]; ok {
			return repl
		}
		return v
	case Pointer:
		return Pointer{Elem: Substitute(v.Elem, s)}
	case Array:
		return Array{Elem: Substitute(v.Elem, s), Size: v.Size}
	case Function:
		params := make([]Type, len(v.Params))
		for i, p := range v.Params {
			params[i] = Substitute(p, s)
		}
		return Function{Params: params, Return: Substitute(v.Return, s)}
	case GenericInstance:
		args := make([]Type, len(v.Args))
		for i, a := range v.Args {
			args[i] = Substitute(a, s)
		}
		return GenericInstance{Name: v.Name, Args: args}
	default:
		return t
	}
}
