// Package analyzer implements Paw's TypeChecker: a two-pass walk over a
// parsed Program that registers every top-level declaration (Pass A)
// before checking any function body (Pass B), so declaration order in
// source never affects whether a name resolves.
package analyzer

import (
	"github.com/funvibe/pawc/internal/ast"
	"github.com/funvibe/pawc/internal/diagnostics"
	"github.com/funvibe/pawc/internal/symbols"
	"github.com/funvibe/pawc/internal/typesystem"
)

// Analyzer holds all state for one translation unit's type check.
type Analyzer struct {
	table   *symbols.SymbolTable
	typeMap map[ast.Node]typesystem.Type

	errors   []*diagnostics.CompileError
	warnings []*diagnostics.CompileError
	seen     map[string]bool

	pendingTypeRefs []pendingTypeRef

	// currentReturnType/currentAsync track the enclosing function while
	// checking its body, restored on exit so nested function-like
	// constructs (there are none in Paw today, but method bodies are
	// checked one at a time) never see a stale context.
	currentReturnType typesystem.Type
	currentAsync      bool
	loopDepth         int
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{
		table:   symbols.NewSymbolTable(),
		typeMap: make(map[ast.Node]typesystem.Type),
		seen:    make(map[string]bool),
	}
}

func (a *Analyzer) Errors() []*diagnostics.CompileError   { return a.errors }
func (a *Analyzer) Warnings() []*diagnostics.CompileError { return a.warnings }
func (a *Analyzer) SymbolTable() *symbols.SymbolTable     { return a.table }
func (a *Analyzer) TypeMap() map[ast.Node]typesystem.Type { return a.typeMap }

// Analyze runs both passes over prog. Pass A populates the symbol
// table's struct/enum/trait/impl/function registries and validates
// every type reference and trait implementation; Pass B then
// type-checks each function and method body against that fully
// populated table.
func (a *Analyzer) Analyze(prog *ast.Program) {
	a.registerDeclarations(prog)
	a.checkBodies(prog)
}
