package cgen

import (
	"fmt"

	"github.com/funvibe/pawc/internal/typesystem"
)

// cBaseType renders t as a C type name usable wherever a plain
// declarator suffices (return types, cast targets, struct fields whose
// array dimension is erased to a pointer).
func cBaseType(t typesystem.Type) string {
	if t == nil {
		return "void"
	}
	switch v := t.(type) {
	case typesystem.Primitive:
		return primitiveCType(v.Kind)
	case typesystem.Named:
		return v.Name
	case typesystem.GenericInstance:
		return v.MangledName()
	case typesystem.Pointer:
		return cBaseType(v.Elem) + "*"
	case typesystem.Array:
		return cBaseType(v.Elem) + "*"
	case typesystem.Function:
		return "void*"
	default:
		return "void"
	}
}

func primitiveCType(k typesystem.PrimitiveKind) string {
	switch k {
	case typesystem.I8:
		return "int8_t"
	case typesystem.I16:
		return "int16_t"
	case typesystem.I32:
		return "int32_t"
	case typesystem.I64:
		return "int64_t"
	case typesystem.I128:
		return "__int128"
	case typesystem.U8:
		return "uint8_t"
	case typesystem.U16:
		return "uint16_t"
	case typesystem.U32:
		return "uint32_t"
	case typesystem.U64:
		return "uint64_t"
	case typesystem.U128:
		return "unsigned __int128"
	case typesystem.F32:
		return "float"
	case typesystem.F64:
		return "double"
	case typesystem.Bool:
		return "bool"
	case typesystem.Char:
		return "char"
	case typesystem.Str:
		return "char*"
	case typesystem.Void:
		return "void"
	default:
		return "void"
	}
}

// cDeclarator renders a variable declaration's full declarator,
// handling C's postfix array-dimension syntax (`int32_t xs[3]`, not
// `int32_t[3] xs`) for a fixed-size array type.
func cDeclarator(t typesystem.Type, name string) string {
	if arr, ok := t.(typesystem.Array); ok && arr.Size != nil {
		return fmt.Sprintf("%s %s[%d]", cBaseType(arr.Elem), name, *arr.Size)
	}
	return fmt.Sprintf("%s %s", cBaseType(t), name)
}

// isPointerType reports whether a value of type t is accessed through a
// field-access arrow (`->`) rather than `.` — true only for an explicit
// Pointer type. A `self` receiver, which codegen binds as `T*`, is
// handled separately by isReceiverPointer.
func isPointerType(t typesystem.Type) bool {
	_, ok := t.(typesystem.Pointer)
	return ok
}
