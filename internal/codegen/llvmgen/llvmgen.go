// Package llvmgen lowers a type-checked Paw program directly to an
// in-memory LLVM IR module via github.com/llir/llvm, rather than
// through a textual intermediate — the module's own String() method
// produces the final .ll text. Builder state (which ir.Block new
// instructions append to, which ir.Value a source variable currently
// holds) is tracked on Generator exactly the way llir/llvm's own
// examples track it: as plain map/pointer fields mutated as each
// function is walked, never held open across functions.
package llvmgen

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/funvibe/pawc/internal/ast"
	"github.com/funvibe/pawc/internal/diagnostics"
	"github.com/funvibe/pawc/internal/symbols"
	"github.com/funvibe/pawc/internal/typesystem"
)

// Generator drives one module's LLVM IR construction.
type Generator struct {
	table   *symbols.SymbolTable
	typeMap map[ast.Node]typesystem.Type

	module *ir.Module

	errors []*diagnostics.CompileError

	// functions maps every declared Paw function/method to its LLVM
	// function, keyed by the C-style mangled name (plain name for a free
	// function, Type_method for a method, Type_Arg1_method for a static
	// method on a monomorphized generic).
	functions map[string]*ir.Func

	// structTypes/enumTypes cache the named LLVM struct type emitted for
	// each Paw struct/enum, keyed by its (possibly mangled) name, so a
	// type is only ever defined once regardless of how many functions
	// reference it.
	structTypes map[string]*types.StructType
	enumTypes   map[string]*types.StructType

	genericStructs map[string]*ast.TypeDeclaration
	genericEnums   map[string]*ast.TypeDeclaration
	monomorphized  map[string]bool

	// block/vars/locals are reset per function: block is where the next
	// instruction is appended, vars maps a local name to the alloca
	// holding it (every local is stack-allocated per the parameter
	// prologue convention, never kept purely in an SSA register), and
	// localTypes records each local's Paw type for declarator-sensitive
	// lowering (array length, pointer-vs-value semantics).
	block      *ir.Block
	curFunc    *ir.Func
	vars       map[string]value.Value
	localTypes map[string]typesystem.Type
	retType    typesystem.Type

	// loopStack tracks the (continue-target, break-target) block pair for
	// each loop currently being walked, innermost last, so a bare
	// break/continue statement always resolves to its nearest enclosing
	// loop regardless of nesting depth.
	loopStack []loopFrame
}

type loopFrame struct {
	continueBlock *ir.Block
	breakBlock    *ir.Block
}

func NewGenerator(table *symbols.SymbolTable, typeMap map[ast.Node]typesystem.Type) *Generator {
	return &Generator{
		table:          table,
		typeMap:        typeMap,
		module:         ir.NewModule(),
		functions:      make(map[string]*ir.Func),
		structTypes:    make(map[string]*types.StructType),
		enumTypes:      make(map[string]*types.StructType),
		genericStructs: make(map[string]*ast.TypeDeclaration),
		genericEnums:   make(map[string]*ast.TypeDeclaration),
		monomorphized:  make(map[string]bool),
	}
}

func (g *Generator) Errors() []*diagnostics.CompileError { return g.errors }

func (g *Generator) addError(code diagnostics.ErrorCode, tok ast.Node, args ...interface{}) {
	g.errors = append(g.errors, diagnostics.NewCodegenError(code, tok.Pos(), args...))
}

// newTempName mints a collision-free LLVM value/block name, used for
// the `is`-expression merge blocks and result allocas — a real unique
// id rather than a per-generator counter, so separate monomorphized
// instantiations of the same generic method never collide on block
// names inside one module.
func newTempName(prefix string) string {
	return fmt.Sprintf("%s.%s", prefix, uuid.New().String()[:8])
}

// Generate lowers prog to a complete LLVM module and returns its
// textual IR. Declaration order is: every struct/enum type def, then
// every function signature (so forward references resolve), then the
// deferred monomorphizations, then every non-generic function body.
func (g *Generator) Generate(prog *ast.Program) string {
	g.collectGenericDeclarations(prog)

	for _, decl := range prog.Declarations {
		if td, ok := decl.(*ast.TypeDeclaration); ok && len(td.TypeParams) == 0 {
			g.declareTypeDeclaration(td)
		}
	}

	for _, decl := range prog.Declarations {
		switch d := decl.(type) {
		case *ast.FunctionDeclaration:
			g.declareFunction(d)
		case *ast.ImplDeclaration:
			if len(d.TypeParams) == 0 {
				g.declareImplMethods(d)
			}
		case *ast.TypeDeclaration:
			if len(d.TypeParams) == 0 {
				g.declareInlineMethods(d)
			}
		}
	}

	g.emitMonomorphizations()

	for _, decl := range prog.Declarations {
		switch d := decl.(type) {
		case *ast.FunctionDeclaration:
			g.defineFunction(d, d.Name, "")
		case *ast.ImplDeclaration:
			if len(d.TypeParams) == 0 {
				for _, m := range d.Methods {
					g.defineFunction(m, methodLLVMName(d.TypeName, m.Name), d.TypeName)
				}
			}
		case *ast.TypeDeclaration:
			if len(d.TypeParams) == 0 {
				for _, m := range d.Methods {
					g.defineFunction(m, methodLLVMName(d.Name, m.Name), d.Name)
				}
			}
		}
	}

	return g.module.String()
}

func methodLLVMName(typeName, methodName string) string {
	return fmt.Sprintf("%s_%s", typeName, methodName)
}

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

// emitMonomorphizations mirrors cgen's strategy exactly: scan every
// type recorded by analysis for GenericInstance occurrences and emit
// one concrete struct type + method set per distinct mangled name,
// caching on MangledName so repeated instantiations collapse to one
// definition.
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
			g.declareMonomorphizedStruct(td, gi)
		} else if td, ok := g.genericEnums[gi.Name]; ok {
			g.declareMonomorphizedEnum(td, gi)
		}
	}
}

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
