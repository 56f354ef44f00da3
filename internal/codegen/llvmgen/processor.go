package llvmgen

import (
	"github.com/funvibe/pawc/internal/pipeline"
)

// Processor implements pipeline.Processor, lowering the type-checked
// Program directly to LLVM IR text and publishing it onto
// ctx.LLVMOutput. It is a no-op when an earlier stage already recorded
// a fatal diagnostic, per the pipeline's collect-then-abort policy.
type Processor struct{}

func (lp *Processor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Program == nil || ctx.HasErrors() {
		return ctx
	}

	g := NewGenerator(ctx.SymbolTable, ctx.TypeMap)
	ctx.LLVMOutput = g.Generate(ctx.Program)
	ctx.Errors = append(ctx.Errors, g.Errors()...)
	return ctx
}
