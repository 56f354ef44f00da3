package parser

import (
	"github.com/funvibe/pawc/internal/pipeline"
)

// Processor implements pipeline.Processor, turning a TokenStream into a
// parsed Program and recording any parse diagnostics on the context.
type Processor struct{}

func (pp *Processor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	p := New(ctx.TokenStream)
	ctx.Program = p.ParseProgram()
	ctx.Errors = append(ctx.Errors, p.Errors()...)
	return ctx
}
