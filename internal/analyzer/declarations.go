package analyzer

import (
	"strings"

	"github.com/funvibe/pawc/internal/ast"
	"github.com/funvibe/pawc/internal/diagnostics"
	"github.com/funvibe/pawc/internal/symbols"
	"github.com/funvibe/pawc/internal/token"
	"github.com/funvibe/pawc/internal/typesystem"
)

// registerDeclarations is Pass A: every struct/enum/trait is registered
// first (so field/variant/method signatures can reference any other
// declared type regardless of source order), then every impl block,
// then every free function, and only then are type references and
// trait completeness validated.
func (a *Analyzer) registerDeclarations(prog *ast.Program) {
	for _, decl := range prog.Declarations {
		if td, ok := decl.(*ast.TypeDeclaration); ok {
			a.registerTypeDeclaration(td)
		}
	}
	for _, decl := range prog.Declarations {
		if id, ok := decl.(*ast.ImplDeclaration); ok {
			a.registerImplDeclaration(id)
		}
	}
	for _, decl := range prog.Declarations {
		if fd, ok := decl.(*ast.FunctionDeclaration); ok {
			a.registerFunction(fd)
		}
	}

	a.checkTraitCompleteness(prog)
	a.validatePendingTypeRefs()
	a.checkMainExists(prog)
}

func (a *Analyzer) registerTypeDeclaration(td *ast.TypeDeclaration) {
	generics := setOf(td.TypeParams)

	switch td.Kind {
	case ast.StructTypeKind:
		fieldNames := make([]string, 0, len(td.Fields))
		fieldTypes := make(map[string]typesystem.Type, len(td.Fields))
		for _, f := range td.Fields {
			fieldNames = append(fieldNames, f.Name)
			fieldTypes[f.Name] = a.buildType(f.Type, generics)
		}
		a.table.DefineStruct(&symbols.StructInfo{
			Name:          td.Name,
			FieldNames:    fieldNames,
			FieldTypes:    fieldTypes,
			GenericParams: td.TypeParams,
		})
		a.registerInlineMethods(td.Name, td.Methods, generics)

	case ast.EnumTypeKind:
		variants := make([]symbols.EnumVariant, 0, len(td.Variants))
		for _, v := range td.Variants {
			payload := make([]typesystem.Type, len(v.Payload))
			for i, p := range v.Payload {
				payload[i] = a.buildType(p, generics)
			}
			variants = append(variants, symbols.EnumVariant{Name: v.Name, Payload: payload})
		}
		a.table.DefineEnum(&symbols.EnumInfo{
			Name:          td.Name,
			Variants:      variants,
			GenericParams: td.TypeParams,
		})
		a.registerInlineMethods(td.Name, td.Methods, generics)

	case ast.TraitTypeKind:
		methods := make(map[string]typesystem.Function, len(td.TraitMethods))
		for _, m := range td.TraitMethods {
			methods[m.Name] = a.buildSignature(m.Params, m.ReturnType, generics)
		}
		a.table.DefineTrait(&symbols.TraitInfo{Name: td.Name, Methods: methods})
	}
}

// registerInlineMethods handles methods declared directly inside a
// struct/enum body (as opposed to a separate `impl` block) by recording
// them as a trait-less impl, so method-call resolution (SymbolTable.Method)
// does not need to distinguish the two declaration sites.
func (a *Analyzer) registerInlineMethods(typeName string, methods []*ast.FunctionDeclaration, generics map[string]bool) {
	if len(methods) == 0 {
		return
	}
	implMethods := make(map[string]typesystem.Function, len(methods))
	for _, m := range methods {
		implMethods[m.Name] = a.buildFunctionSig(m, generics)
	}
	a.table.DefineImpl(&symbols.ImplInfo{TraitName: "", TypeName: typeName, Methods: implMethods})
}

func (a *Analyzer) registerImplDeclaration(id *ast.ImplDeclaration) {
	generics := setOf(id.TypeParams)
	methods := make(map[string]typesystem.Function, len(id.Methods))
	for _, m := range id.Methods {
		methods[m.Name] = a.buildFunctionSig(m, generics)
	}
	a.table.DefineImpl(&symbols.ImplInfo{TraitName: id.TraitName, TypeName: id.TypeName, Methods: methods})
}

func (a *Analyzer) registerFunction(fd *ast.FunctionDeclaration) {
	a.table.DefineFunction(fd.Name, a.buildFunctionSig(fd, nil))
}

// buildFunctionSig builds the callable signature of a function or method
// declaration, excluding a leading `self` receiver (method dispatch
// resolves the receiver by the call site's object type, not by a
// parameter in the signature).
func (a *Analyzer) buildFunctionSig(fd *ast.FunctionDeclaration, outerGenerics map[string]bool) typesystem.Function {
	generics := mergeSets(outerGenerics, setOf(fd.TypeParams))
	var params []ast.Parameter
	for _, p := range fd.Params {
		if p.Name == "self" && p.Type == nil {
			continue
		}
		params = append(params, p)
	}
	return a.buildSignature(params, fd.ReturnType, generics)
}

func (a *Analyzer) buildSignature(params []ast.Parameter, retType ast.TypeExpr, generics map[string]bool) typesystem.Function {
	paramTypes := make([]typesystem.Type, 0, len(params))
	for _, p := range params {
		if p.Name == "self" && p.Type == nil {
			continue
		}
		paramTypes = append(paramTypes, a.buildType(p.Type, generics))
	}
	ret := a.buildType(retType, generics)
	if ret == nil {
		ret = voidType
	}
	return typesystem.Function{Params: paramTypes, Return: ret}
}

// checkTraitCompleteness reports ErrA007 for every `impl Trait for Type`
// block that does not provide all of Trait's required methods.
func (a *Analyzer) checkTraitCompleteness(prog *ast.Program) {
	for _, decl := range prog.Declarations {
		id, ok := decl.(*ast.ImplDeclaration)
		if !ok || id.TraitName == "" {
			continue
		}
		missing := a.table.MissingTraitMethods(id.TraitName, id.TypeName)
		if len(missing) > 0 {
			a.addError(diagnostics.ErrA007, id.Token, id.TypeName, id.TraitName, strings.Join(missing, ", "))
		}
	}
}

// validatePendingTypeRefs checks every Named/GenericInstance type
// reference collected while building declaration signatures against the
// now-complete struct/enum/trait registries.
func (a *Analyzer) validatePendingTypeRefs() {
	for _, ref := range a.pendingTypeRefs {
		if _, ok := a.table.Struct(ref.name); ok {
			continue
		}
		if _, ok := a.table.Enum(ref.name); ok {
			continue
		}
		if _, ok := a.table.Trait(ref.name); ok {
			continue
		}
		a.addError(diagnostics.ErrA002, ref.tok.Pos(), ref.name)
	}
}

// checkMainExists reports the fatal ErrA008 when the program declares no
// `main` function, per the spec's entry-point requirement.
func (a *Analyzer) checkMainExists(prog *ast.Program) {
	if _, ok := a.table.Resolve("main"); ok {
		return
	}
	pos := token.Token{}
	if len(prog.Declarations) > 0 {
		pos = prog.Declarations[len(prog.Declarations)-1].Pos()
	}
	a.addError(diagnostics.ErrA008, pos)
}
