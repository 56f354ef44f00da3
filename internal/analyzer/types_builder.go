package analyzer

import (
	"github.com/funvibe/pawc/internal/ast"
	"github.com/funvibe/pawc/internal/typesystem"
)

// pendingTypeRef records a syntactic Named/GenericInstance type
// reference encountered while building a declaration's signature, so
// ErrA002 (undefined type) can be checked once every struct/enum/trait
// name is registered, regardless of the declaration order in source.
type pendingTypeRef struct {
	name string
	tok  ast.Node
}

func setOf(names []string) map[string]bool {
	s := make(map[string]bool, len(names))
	for _, n := range names {
		s[n] = true
	}
	return s
}

func mergeSets(a, b map[string]bool) map[string]bool {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	out := make(map[string]bool, len(a)+len(b))
	for k := range a {
		out[k] = true
	}
	for k := range b {
		out[k] = true
	}
	return out
}

// buildType converts a syntactic type reference into typesystem.Type.
// Generic type-parameter names in scope resolve to typesystem.Generic;
// any other bare name is assumed nominal (typesystem.Named) and queued
// for existence validation once every declaration has registered.
func (a *Analyzer) buildType(te ast.TypeExpr, generics map[string]bool) typesystem.Type {
	if te == nil {
		return nil
	}
	switch t := te.(type) {
	case *ast.PrimitiveTypeExpr:
		return typesystem.Primitive{Kind: typesystem.PrimitiveKind(t.Name)}

	case *ast.NamedTypeExpr:
		if generics[t.Name] {
			return typesystem.Generic{Name: t.Name}
		}
		a.pendingTypeRefs = append(a.pendingTypeRefs, pendingTypeRef{name: t.Name, tok: t})
		return typesystem.Named{Name: t.Name}

	case *ast.PointerTypeExpr:
		return typesystem.Pointer{Elem: a.buildType(t.Elem, generics)}

	case *ast.ArrayTypeExpr:
		return typesystem.Array{Elem: a.buildType(t.Elem, generics), Size: t.Size}

	case *ast.FunctionTypeExpr:
		params := make([]typesystem.Type, len(t.Params))
		for i, p := range t.Params {
			params[i] = a.buildType(p, generics)
		}
		ret := a.buildType(t.Return, generics)
		if ret == nil {
			ret = typesystem.Primitive{Kind: typesystem.Void}
		}
		return typesystem.Function{Params: params, Return: ret}

	case *ast.GenericInstanceTypeExpr:
		args := make([]typesystem.Type, len(t.Args))
		for i, arg := range t.Args {
			args[i] = a.buildType(arg, generics)
		}
		if !generics[t.Name] {
			a.pendingTypeRefs = append(a.pendingTypeRefs, pendingTypeRef{name: t.Name, tok: t})
		}
		return typesystem.GenericInstance{Name: t.Name, Args: args}

	default:
		return nil
	}
}

// namedTypeName extracts the nominal name a method/field lookup should
// key on, unwrapping pointers and stripping any generic arguments.
func namedTypeName(t typesystem.Type) string {
	switch v := t.(type) {
	case typesystem.Named:
		return v.Name
	case typesystem.GenericInstance:
		return v.Name
	case typesystem.Pointer:
		return namedTypeName(v.Elem)
	default:
		return ""
	}
}

// widen picks the concrete side of a binary operand pair when one side
// is still an unannotated literal default (i32 or f64) and the other
// carries a real declared width, implementing the informal "literal
// adopts its partner's width" rule the arithmetic typing rules rely on.
func widen(x, y typesystem.Type) typesystem.Type {
	if typesystem.Equal(x, typesystem.LiteralDefaultInt) || typesystem.Equal(x, typesystem.LiteralDefaultFloat) {
		return y
	}
	return x
}

func isNumeric(t typesystem.Type) bool {
	p, ok := t.(typesystem.Primitive)
	return ok && (p.IsInteger() || p.IsFloat())
}

func isInteger(t typesystem.Type) bool {
	p, ok := t.(typesystem.Primitive)
	return ok && p.IsInteger()
}

var boolType = typesystem.Primitive{Kind: typesystem.Bool}
var voidType = typesystem.Primitive{Kind: typesystem.Void}

// typesEqualOrCompatible reports whether a and b can stand in for one
// another at a boundary that requires a type match: either structurally
// equal, or one is a bare literal default compatible with the other's
// declared width.
func typesEqualOrCompatible(a, b typesystem.Type) bool {
	if typesystem.Equal(a, b) {
		return true
	}
	return typesystem.CompatibleAtAnnotation(a, b) || typesystem.CompatibleAtAnnotation(b, a)
}
