package llvmgen

import (
	"github.com/llir/llvm/ir/types"

	"github.com/funvibe/pawc/internal/typesystem"
)

// dataBlobBytes is the size, in bytes, of an enum's payload union when
// lowered as `[32 x i8]` rather than an LLVM union (LLVM has none): 32
// bytes holds any primitive, pointer, or two-word payload. Payloads are
// stored in the blob as they are: none is boxed behind a pointer, and
// no check is made that a payload fits in 32 bytes.
const dataBlobBytes = 32

// llvmType maps a resolved Paw type to its LLVM representation. Named
// struct/enum types must already have been declared (via
// declareTypeDeclaration/declareMonomorphized*) before this is called.
func (g *Generator) llvmType(t typesystem.Type) types.Type {
	if t == nil {
		return types.Void
	}
	switch v := t.(type) {
	case typesystem.Primitive:
		return primitiveLLVMType(v.Kind)
	case typesystem.Named:
		if st, ok := g.structTypes[v.Name]; ok {
			return st
		}
		if et, ok := g.enumTypes[v.Name]; ok {
			return et
		}
		return types.I64
	case typesystem.GenericInstance:
		name := v.MangledName()
		if st, ok := g.structTypes[name]; ok {
			return st
		}
		if et, ok := g.enumTypes[name]; ok {
			return et
		}
		return types.I64
	case typesystem.Pointer:
		return types.NewPointer(g.llvmType(v.Elem))
	case typesystem.Array:
		if v.Size != nil {
			return types.NewArray(uint64(*v.Size), g.llvmType(v.Elem))
		}
		return types.NewPointer(g.llvmType(v.Elem))
	case typesystem.Function:
		params := make([]types.Type, len(v.Params))
		for i, p := range v.Params {
			params[i] = g.llvmType(p)
		}
		return types.NewPointer(types.NewFunc(g.llvmType(v.Return), params...))
	default:
		return types.I64
	}
}

func primitiveLLVMType(k typesystem.PrimitiveKind) types.Type {
	switch k {
	case typesystem.I8, typesystem.U8:
		return types.I8
	case typesystem.I16, typesystem.U16:
		return types.I16
	case typesystem.I32, typesystem.U32:
		return types.I32
	case typesystem.I64, typesystem.U64:
		return types.I64
	case typesystem.I128, typesystem.U128:
		return types.I128
	case typesystem.F32:
		return types.Float
	case typesystem.F64:
		return types.Double
	case typesystem.Bool:
		// Booleans live in memory as i8 (LLVM's i1 cannot be addressed by
		// a pointer); every boolean-producing instruction is zero-extended
		// to i8 immediately, and every boolean consumer narrows back with
		// `icmp ne 0` before branching on it.
		return types.I8
	case typesystem.Char:
		return types.I8
	case typesystem.Str:
		return types.NewPointer(types.I8)
	case typesystem.Void:
		return types.Void
	default:
		return types.I64
	}
}
