package llvmgen

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/funvibe/pawc/internal/ast"
	"github.com/funvibe/pawc/internal/typesystem"
)

func (g *Generator) declareTypeDeclaration(td *ast.TypeDeclaration) {
	switch td.Kind {
	case ast.StructTypeKind:
		si, ok := g.table.Struct(td.Name)
		if !ok {
			return
		}
		g.declareStructType(td.Name, si.FieldNames, si.FieldTypes)

	case ast.EnumTypeKind:
		g.declareEnumType(td.Name)

	case ast.TraitTypeKind:
		// Traits have no LLVM representation of their own; only impls of
		// them are lowered.
	}
}

// declareStructType registers a named LLVM struct type with one field per
// Paw field, in declaration order.
func (g *Generator) declareStructType(name string, fieldNames []string, fieldTypes map[string]typesystem.Type) *types.StructType {
	fields := make([]types.Type, len(fieldNames))
	for i, fn := range fieldNames {
		fields[i] = g.llvmType(fieldTypes[fn])
	}
	st := types.NewStruct(fields...)
	st.TypeName = name
	g.module.NewTypeDef(name, st)
	g.structTypes[name] = st
	return st
}

// declareEnumType registers every enum, payload-carrying or not, under a
// single uniform `{i32 tag, [32 x i8] data}` shape — LLVM has no union
// type, so unlike the C backend's bare-enum optimization for a
// no-payload enum, the tag+blob layout is used unconditionally here to
// keep payload access (spill to an alloca, GEP to field 1, bitcast to
// the variant's payload type, then load or store) a single code path.
func (g *Generator) declareEnumType(name string) *types.StructType {
	st := types.NewStruct(types.I32, types.NewArray(dataBlobBytes, types.I8))
	st.TypeName = name
	g.module.NewTypeDef(name, st)
	g.enumTypes[name] = st
	return st
}

func (g *Generator) structOrEnumType(name string) types.Type {
	if st, ok := g.structTypes[name]; ok {
		return st
	}
	if et, ok := g.enumTypes[name]; ok {
		return et
	}
	return types.I64
}

func (g *Generator) declareFunction(fd *ast.FunctionDeclaration) {
	sym, ok := g.table.Resolve(fd.Name)
	if !ok {
		return
	}
	fn, ok := sym.Type.(typesystem.Function)
	if !ok {
		return
	}
	f := g.module.NewFunc(fd.Name, g.llvmType(fn.Return))
	for i, p := range fd.Params {
		idx := i
		if idx >= len(fn.Params) {
			continue
		}
		f.Params = append(f.Params, ir.NewParam(p.Name, g.llvmType(fn.Params[idx])))
	}
	g.functions[fd.Name] = f
}

func (g *Generator) declareImplMethods(id *ast.ImplDeclaration) {
	for _, m := range id.Methods {
		g.declareMethod(m, id.TypeName, id.TypeName, nil)
	}
}

func (g *Generator) declareInlineMethods(td *ast.TypeDeclaration) {
	for _, m := range td.Methods {
		g.declareMethod(m, td.Name, td.Name, nil)
	}
}

// declareMethod declares one method's LLVM signature, mangled as
// Type_method (or MangledName_method for a monomorphized instance).
// subst, when non-nil, substitutes generic parameters resolved from the
// symbol table's recorded (unsubstituted) method signature.
func (g *Generator) declareMethod(fd *ast.FunctionDeclaration, emitName, origTypeName string, subst typesystem.Subst) {
	sig, ok := g.table.Method(origTypeName, fd.Name)
	if !ok {
		return
	}
	retT := sig.Return
	if subst != nil {
		retT = typesystem.Substitute(retT, subst)
	}

	name := methodLLVMName(emitName, fd.Name)
	f := g.module.NewFunc(name, g.llvmType(retT))

	if fd.HasSelf {
		selfType := types.NewPointer(g.structOrEnumType(emitName))
		f.Params = append(f.Params, ir.NewParam("self", selfType))
	}
	paramIdx := 0
	for _, p := range fd.Params {
		if p.Name == "self" && p.Type == nil {
			continue
		}
		if paramIdx >= len(sig.Params) {
			break
		}
		pt := sig.Params[paramIdx]
		if subst != nil {
			pt = typesystem.Substitute(pt, subst)
		}
		f.Params = append(f.Params, ir.NewParam(p.Name, g.llvmType(pt)))
		paramIdx++
	}

	g.functions[name] = f
}

func (g *Generator) declareMonomorphizedStruct(td *ast.TypeDeclaration, gi typesystem.GenericInstance) {
	si, ok := g.table.Struct(td.Name)
	if !ok {
		return
	}
	subst := substFor(si.GenericParams, gi.Args)

	fieldTypes := make(map[string]typesystem.Type, len(si.FieldNames))
	for _, fn := range si.FieldNames {
		fieldTypes[fn] = typesystem.Substitute(si.FieldTypes[fn], subst)
	}
	g.declareStructType(gi.MangledName(), si.FieldNames, fieldTypes)

	for _, m := range td.Methods {
		g.declareMethod(m, gi.MangledName(), td.Name, subst)
	}
}

func (g *Generator) declareMonomorphizedEnum(td *ast.TypeDeclaration, gi typesystem.GenericInstance) {
	g.declareEnumType(gi.MangledName())

	var subst typesystem.Subst
	if ei, ok := g.table.Enum(td.Name); ok {
		subst = substFor(ei.GenericParams, gi.Args)
	}
	for _, m := range td.Methods {
		g.declareMethod(m, gi.MangledName(), td.Name, subst)
	}
}

func substFor(params []string, args []typesystem.Type) typesystem.Subst {
	subst := make(typesystem.Subst, len(params))
	for i, p := range params {
		if i < len(args) {
			subst[p] = args[i]
		}
	}
	return subst
}

// defineFunction builds emitName's (or emitName_method's) entry block,
// stack-allocates and stores every parameter — the alloca-backed
// prologue convention every local in this backend follows, matching the
// reference LLVM backend found in the example corpus — and walks the
// body before sealing a final return.
func (g *Generator) defineFunction(fd *ast.FunctionDeclaration, emitName, selfTypeName string) {
	llvmName := emitName
	var paramTypes []typesystem.Type
	var retT typesystem.Type

	if selfTypeName != "" {
		llvmName = methodLLVMName(emitName, fd.Name)
		sig, ok := g.table.Method(selfTypeName, fd.Name)
		if !ok {
			return
		}
		retT = sig.Return
		if fd.HasSelf {
			paramTypes = append(paramTypes, typesystem.Pointer{Elem: typesystem.Named{Name: emitName}})
		}
		paramTypes = append(paramTypes, sig.Params...)
	} else {
		sym, ok := g.table.Resolve(fd.Name)
		if !ok {
			return
		}
		fn, ok := sym.Type.(typesystem.Function)
		if !ok {
			return
		}
		retT = fn.Return
		paramTypes = fn.Params
	}

	f, ok := g.functions[llvmName]
	if !ok {
		return
	}

	g.curFunc = f
	g.block = f.NewBlock("entry")
	g.vars = make(map[string]value.Value)
	g.localTypes = make(map[string]typesystem.Type)
	g.retType = retT
	g.loopStack = nil

	paramNames := make([]string, 0, len(fd.Params)+1)
	if fd.HasSelf {
		paramNames = append(paramNames, "self")
	}
	for _, p := range fd.Params {
		if p.Name == "self" && p.Type == nil {
			continue
		}
		paramNames = append(paramNames, p.Name)
	}

	for i, param := range f.Params {
		if i >= len(paramNames) {
			break
		}
		var pt typesystem.Type
		if i < len(paramTypes) {
			pt = paramTypes[i]
		}
		name := paramNames[i]
		addr := g.block.NewAlloca(param.Type())
		addr.SetName(name + ".addr")
		g.block.NewStore(param, addr)
		g.vars[name] = addr
		g.localTypes[name] = pt
	}

	g.emitFunctionBody(fd.Body)
}
