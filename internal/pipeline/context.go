package pipeline

import (
	"github.com/funvibe/pawc/internal/ast"
	"github.com/funvibe/pawc/internal/diagnostics"
	"github.com/funvibe/pawc/internal/symbols"
	"github.com/funvibe/pawc/internal/typesystem"
)

// PipelineContext holds all the data passed between pipeline stages:
// Lexer -> Parser -> TypeChecker -> CodeGen.
type PipelineContext struct {
	SourceCode  string
	FilePath    string
	TokenStream TokenStream
	Program     *ast.Program

	SymbolTable *symbols.SymbolTable
	// TypeMap stores the inferred type of every expression node,
	// populated by the analyzer (TypeChecker) pass B.
	TypeMap map[ast.Node]typesystem.Type

	Errors   []*diagnostics.CompileError
	Warnings []*diagnostics.CompileError

	// Generated output from whichever CodeGen stage ran.
	COutput    string
	LLVMOutput string
}

func NewPipelineContext(source string) *PipelineContext {
	return &PipelineContext{
		SourceCode:  source,
		SymbolTable: symbols.NewSymbolTable(),
		TypeMap:     make(map[ast.Node]typesystem.Type),
	}
}

// HasErrors reports whether any stage has recorded a fatal diagnostic.
func (c *PipelineContext) HasErrors() bool {
	return len(c.Errors) > 0
}
