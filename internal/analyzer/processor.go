package analyzer

import (
	"github.com/funvibe/pawc/internal/pipeline"
)

// Processor implements pipeline.Processor, running the two-pass
// TypeChecker over the parsed Program and publishing its symbol table
// and inferred-type map onto the context for the codegen stages.
type Processor struct{}

func (ap *Processor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Program == nil {
		return ctx
	}

	a := NewAnalyzer()
	a.Analyze(ctx.Program)

	ctx.SymbolTable = a.SymbolTable()
	ctx.TypeMap = a.TypeMap()
	ctx.Errors = append(ctx.Errors, a.Errors()...)
	ctx.Warnings = append(ctx.Warnings, a.Warnings()...)
	return ctx
}
