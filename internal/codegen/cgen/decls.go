package cgen

import (
	"fmt"

	"github.com/funvibe/pawc/internal/ast"
	"github.com/funvibe/pawc/internal/symbols"
	"github.com/funvibe/pawc/internal/typesystem"
)

func (g *Generator) emitTypeDeclaration(td *ast.TypeDeclaration) {
	switch td.Kind {
	case ast.StructTypeKind:
		si, ok := g.table.Struct(td.Name)
		if !ok {
			return
		}
		g.emitStructTypedef(td.Name, si.FieldNames, si.FieldTypes)
		for _, m := range td.Methods {
			g.emitMethod(m, td.Name, td.Name, nil)
		}

	case ast.EnumTypeKind:
		ei, ok := g.table.Enum(td.Name)
		if !ok {
			return
		}
		g.emitEnumTypedef(ei)
		for _, m := range td.Methods {
			g.emitMethod(m, td.Name, td.Name, nil)
		}

	case ast.TraitTypeKind:
		// Traits are a compile-time-only contract; nothing is lowered for
		// the trait declaration itself, only for each impl of it.
	}
}

func (g *Generator) emitImplMethods(id *ast.ImplDeclaration) {
	for _, m := range id.Methods {
		g.emitMethod(m, id.TypeName, id.TypeName, nil)
	}
}

// emitStructTypedef renders `typedef struct { ... } Name;` with fields in
// declaration order (StructInfo.FieldNames preserves source order for
// exactly this purpose).
func (g *Generator) emitStructTypedef(cName string, fieldNames []string, fieldTypes map[string]typesystem.Type) {
	fmt.Fprintf(&g.typeDecls, "typedef struct {\n")
	for _, fn := range fieldNames {
		fmt.Fprintf(&g.typeDecls, "    %s;\n", cDeclarator(fieldTypes[fn], fn))
	}
	fmt.Fprintf(&g.typeDecls, "} %s;\n\n", cName)
}

// emitEnumTypedef renders the tag enum plus, when any variant carries
// payload data, the wrapping tagged-union struct; in both cases it emits
// one constructor function per variant.
func (g *Generator) emitEnumTypedef(ei *symbols.EnumInfo) {
	hasData := false
	for _, v := range ei.Variants {
		if len(v.Payload) > 0 {
			hasData = true
			break
		}
	}

	tagType := ei.Name + "_Tag"
	fmt.Fprintf(&g.typeDecls, "typedef enum {\n")
	for _, v := range ei.Variants {
		fmt.Fprintf(&g.typeDecls, "    %s,\n", enumTagConst(ei.Name, v.Name))
	}
	fmt.Fprintf(&g.typeDecls, "} %s;\n\n", tagType)

	if !hasData {
		// No variant carries a payload: the tag enum itself is the type.
		fmt.Fprintf(&g.typeDecls, "typedef %s %s;\n\n", tagType, ei.Name)
		for _, v := range ei.Variants {
			g.emitEnumConstructor(ei.Name, tagType, v, false)
		}
		return
	}

	fmt.Fprintf(&g.typeDecls, "typedef struct {\n    %s tag;\n    union {\n", tagType)
	for _, v := range ei.Variants {
		if len(v.Payload) == 0 {
			continue
		}
		if len(v.Payload) == 1 {
			fmt.Fprintf(&g.typeDecls, "        %s;\n", cDeclarator(v.Payload[0], v.Name+"_value"))
			continue
		}
		fmt.Fprintf(&g.typeDecls, "        struct {\n")
		for i, p := range v.Payload {
			fmt.Fprintf(&g.typeDecls, "            %s;\n", cDeclarator(p, fmt.Sprintf("field%d", i)))
		}
		fmt.Fprintf(&g.typeDecls, "        } %s_value;\n", v.Name)
	}
	fmt.Fprintf(&g.typeDecls, "    } data;\n} %s;\n\n", ei.Name)

	for _, v := range ei.Variants {
		g.emitEnumConstructor(ei.Name, tagType, v, true)
	}
}

func enumTagConst(enumName, variant string) string {
	return fmt.Sprintf("%s_TAG_%s", enumName, variant)
}

func (g *Generator) emitEnumConstructor(enumName, tagType string, v symbols.EnumVariant, hasData bool) {
	params := make([]string, len(v.Payload))
	for i, p := range v.Payload {
		params[i] = cDeclarator(p, fmt.Sprintf("a%d", i))
	}
	paramList := "void"
	if len(params) > 0 {
		paramList = joinComma(params)
	}
	fnName := enumConstructorName(enumName, v.Name)

	fmt.Fprintf(&g.protos, "%s %s(%s);\n", enumName, fnName, paramList)

	fmt.Fprintf(&g.funcDefs, "%s %s(%s) {\n", enumName, fnName, paramList)
	if !hasData {
		// A no-payload enum is the bare tag enum, which has no .tag field.
		fmt.Fprintf(&g.funcDefs, "    return %s;\n}\n\n", enumTagConst(enumName, v.Name))
		return
	}
	fmt.Fprintf(&g.funcDefs, "    %s __v;\n", enumName)
	fmt.Fprintf(&g.funcDefs, "    __v.tag = %s;\n", enumTagConst(enumName, v.Name))
	if hasData {
		if len(v.Payload) == 1 {
			fmt.Fprintf(&g.funcDefs, "    __v.data.%s_value = a0;\n", v.Name)
		} else {
			for i := range v.Payload {
				fmt.Fprintf(&g.funcDefs, "    __v.data.%s_value.field%d = a%d;\n", v.Name, i, i)
			}
		}
	}
	fmt.Fprintf(&g.funcDefs, "    return __v;\n}\n\n")
}

func enumConstructorName(enumName, variant string) string {
	return fmt.Sprintf("%s_%s", enumName, variant)
}

func methodCName(typeName, methodName string) string {
	return fmt.Sprintf("%s_%s", typeName, methodName)
}

// emitMethod lowers one function/method declaration as a free C
// function. selfCTypeName is the C type name self points to
// (mangled for a monomorphized generic instance); subst, when non-nil,
// substitutes generic parameters in the signature resolved from the
// symbol table.
func (g *Generator) emitMethod(fd *ast.FunctionDeclaration, emitName, origTypeName string, subst typesystem.Subst) {
	sig, ok := g.table.Method(origTypeName, fd.Name)
	if !ok {
		return
	}
	retT := sig.Return
	if subst != nil {
		retT = typesystem.Substitute(retT, subst)
	}

	var params []string
	if fd.HasSelf {
		params = append(params, emitName+"* self")
	}
	paramIdx := 0
	for _, p := range fd.Params {
		if p.Name == "self" && p.Type == nil {
			continue
		}
		pt := sig.Params[paramIdx]
		if subst != nil {
			pt = typesystem.Substitute(pt, subst)
		}
		params = append(params, cDeclarator(pt, p.Name))
		paramIdx++
	}
	paramList := "void"
	if len(params) > 0 {
		paramList = joinComma(params)
	}

	fnName := methodCName(emitName, fd.Name)
	retC := cBaseType(retT)

	fmt.Fprintf(&g.protos, "%s %s(%s);\n", retC, fnName, paramList)

	fmt.Fprintf(&g.funcDefs, "%s %s(%s) {\n", retC, fnName, paramList)
	ec := &emitCtx{g: g, retType: retT}
	ec.emitFunctionBody(fd.Body, &g.funcDefs)
	fmt.Fprintf(&g.funcDefs, "}\n\n")
}

func (g *Generator) emitFunction(fd *ast.FunctionDeclaration) {
	sym, ok := g.table.Resolve(fd.Name)
	if !ok {
		return
	}
	fn, ok := sym.Type.(typesystem.Function)
	if !ok {
		return
	}

	var params []string
	for i, p := range fd.Params {
		params = append(params, cDeclarator(fn.Params[i], p.Name))
	}
	paramList := "void"
	if len(params) > 0 {
		paramList = joinComma(params)
	}
	retC := cBaseType(fn.Return)

	fmt.Fprintf(&g.protos, "%s %s(%s);\n", retC, fd.Name, paramList)

	fmt.Fprintf(&g.funcDefs, "%s %s(%s) {\n", retC, fd.Name, paramList)
	ec := &emitCtx{g: g, retType: fn.Return}
	ec.emitFunctionBody(fd.Body, &g.funcDefs)
	fmt.Fprintf(&g.funcDefs, "}\n\n")
}

// emitMonomorphizedStruct substitutes gi's type arguments into the
// generic struct declaration's field types (already recorded, with
// Generic placeholders, in the symbol table) and emits one concrete
// typedef plus its inline methods under the mangled name.
func (g *Generator) emitMonomorphizedStruct(td *ast.TypeDeclaration, gi typesystem.GenericInstance) {
	si, ok := g.table.Struct(td.Name)
	if !ok {
		return
	}
	subst := substFor(si.GenericParams, gi.Args)

	fieldTypes := make(map[string]typesystem.Type, len(si.FieldNames))
	for _, fn := range si.FieldNames {
		fieldTypes[fn] = typesystem.Substitute(si.FieldTypes[fn], subst)
	}
	g.emitStructTypedef(gi.MangledName(), si.FieldNames, fieldTypes)

	for _, m := range td.Methods {
		g.emitMethod(m, gi.MangledName(), td.Name, subst)
	}
}

func (g *Generator) emitMonomorphizedEnum(td *ast.TypeDeclaration, gi typesystem.GenericInstance) {
	ei, ok := g.table.Enum(td.Name)
	if !ok {
		return
	}
	subst := substFor(ei.GenericParams, gi.Args)

	substituted := &symbols.EnumInfo{Name: gi.MangledName()}
	for _, v := range ei.Variants {
		payload := make([]typesystem.Type, len(v.Payload))
		for i, p := range v.Payload {
			payload[i] = typesystem.Substitute(p, subst)
		}
		substituted.Variants = append(substituted.Variants, symbols.EnumVariant{Name: v.Name, Payload: payload})
	}
	g.emitEnumTypedef(substituted)

	for _, m := range td.Methods {
		g.emitMethod(m, gi.MangledName(), td.Name, subst)
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

func joinComma(parts []string) string {
	out := parts[0]
	for _, p := range parts[1:] {
		out += ", " + p
	}
	return out
}
