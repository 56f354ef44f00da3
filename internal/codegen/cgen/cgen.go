// Package cgen lowers a type-checked Paw program to a single C11
// translation unit. It is a textual emitter: every declaration and
// statement is rendered directly as C source into a bytes.Buffer,
// mirroring the indent-tracking buffer style the prettyprinter already
// uses for reconstructing Paw source from an AST.
package cgen

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/funvibe/pawc/internal/ast"
	"github.com/funvibe/pawc/internal/diagnostics"
	"github.com/funvibe/pawc/internal/symbols"
	"github.com/funvibe/pawc/internal/typesystem"
)

// Generator drives one translation unit's C emission. Forward
// declarations, typedefs, and function bodies are accumulated into
// separate buffers so the assembled output always has includes, then
// type declarations, then function prototypes, then definitions,
// regardless of how the source interleaved them.
type Generator struct {
	table   *symbols.SymbolTable
	typeMap map[ast.Node]typesystem.Type

	errors []*diagnostics.CompileError

	typeDecls bytes.Buffer
	protos    bytes.Buffer
	funcDefs  bytes.Buffer

	// genericStructs/genericEnums hold the generic declarations by name,
	// collected in a first pass, so monomorphization can substitute their
	// field/variant types once every distinct instantiation has been
	// discovered in typeMap.
	genericStructs map[string]*ast.TypeDeclaration
	genericEnums   map[string]*ast.TypeDeclaration

	// monomorphized tracks which mangled generic-instance names have
	// already been emitted, so a Box<i32> used at ten call sites still
	// produces exactly one Box_i32 typedef and method set.
	monomorphized map[string]bool
}

func NewGenerator(table *symbols.SymbolTable, typeMap map[ast.Node]typesystem.Type) *Generator {
	return &Generator{
		table:          table,
		typeMap:        typeMap,
		genericStructs: make(map[string]*ast.TypeDeclaration),
		genericEnums:   make(map[string]*ast.TypeDeclaration),
		monomorphized:  make(map[string]bool),
	}
}

func (g *Generator) Errors() []*diagnostics.CompileError { return g.errors }

func (g *Generator) addError(code diagnostics.ErrorCode, tok ast.Node, args ...interface{}) {
	g.errors = append(g.errors, diagnostics.NewCodegenError(code, tok.Pos(), args...))
}

// newTempName mints a collision-free C identifier for the statement-
// expression temporaries `is`-lowering introduces, using a real unique
// identifier rather than a per-generator counter so nested or sibling
// `is` expressions compiled from different translation passes can never
// collide once concatenated into one file.
func newTempName(prefix string) string {
	id := uuid.New().String()[:8]
	return fmt.Sprintf("%s_%s", prefix, id)
}

// Generate lowers prog to a complete C11 source file. Errors accumulate
// on the Generator (retrievable via Errors) rather than aborting the
// walk, per the pipeline's collect-then-abort policy; the returned
// string is still a best-effort, structurally valid translation unit.
func (g *Generator) Generate(prog *ast.Program) string {
	g.collectGenericDeclarations(prog)

	for _, decl := range prog.Declarations {
		switch d := decl.(type) {
		case *ast.TypeDeclaration:
			if len(d.TypeParams) == 0 {
				g.emitTypeDeclaration(d)
			}
		case *ast.ImplDeclaration:
			if len(d.TypeParams) == 0 {
				g.emitImplMethods(d)
			}
		case *ast.FunctionDeclaration:
			g.emitFunction(d)
		}
	}

	g.emitMonomorphizations()

	return g.assemble()
}

// collectGenericDeclarations records every generic struct/enum
// declaration by name so the monomorphization pass can substitute
// concrete field/variant types once it has seen which instantiations
// (Box<i32>, Result<i32,i32>, ...) the type-checker actually recorded.
func (g *Generator) collectGenericDeclarations(prog *ast.Program) {
	for _, decl := range prog.Declarations {
		td, ok := decl.(*ast.TypeDeclaration)
		if !ok || len(td.TypeParams) == 0 {
			continue
		}
		switch td.Kind {
		case ast.StructTypeKind:
			g.genericStructs[td.Name] = td
		case ast.EnumTypeKind:
			g.genericEnums[td.Name] = td
		}
	}
}

// emitMonomorphizations scans every type recorded during analysis for
// GenericInstance usages and emits one concrete typedef/method set per
// distinct mangled name, caching on MangledName so repeated uses of the
// same instantiation are only emitted once.
func (g *Generator) emitMonomorphizations() {
	instances := map[string]typesystem.GenericInstance{}
	for _, t := range g.typeMap {
		collectGenericInstances(t, instances)
	}

	names := make([]string, 0, len(instances))
	for name := range instances {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		gi := instances[name]
		if g.monomorphized[gi.MangledName()] {
			continue
		}
		g.monomorphized[gi.MangledName()] = true
		if td, ok := g.genericStructs[gi.Name]; ok {
			g.emitMonomorphizedStruct(td, gi)
		} else if td, ok := g.genericEnums[gi.Name]; ok {
			g.emitMonomorphizedEnum(td, gi)
		}
	}
}

// collectGenericInstances walks t's structure (recursing through
// pointers/arrays/functions) collecting every GenericInstance reachable
// from it, keyed by mangled name for dedup.
func collectGenericInstances(t typesystem.Type, out map[string]typesystem.GenericInstance) {
	switch v := t.(type) {
	case typesystem.GenericInstance:
		out[v.MangledName()] = v
		for _, a := range v.Args {
			collectGenericInstances(a, out)
		}
	case typesystem.Pointer:
		collectGenericInstances(v.Elem, out)
	case typesystem.Array:
		collectGenericInstances(v.Elem, out)
	case typesystem.Function:
		for _, p := range v.Params {
			collectGenericInstances(p, out)
		}
		collectGenericInstances(v.Return, out)
	}
}

func (g *Generator) assemble() string {
	var out bytes.Buffer
	out.WriteString("#include <stdio.h>\n")
	out.WriteString("#include <stdlib.h>\n")
	out.WriteString("#include <stdint.h>\n")
	out.WriteString("#include <stdbool.h>\n")
	out.WriteString("#include <string.h>\n\n")
	out.Write(g.typeDecls.Bytes())
	out.WriteString("\n")
	out.Write(g.protos.Bytes())
	out.WriteString("\n")
	out.Write(g.funcDefs.Bytes())
	return out.String()
}
