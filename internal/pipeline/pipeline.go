// Package pipeline wires the compiler's stages — Lexer, Parser,
// TypeChecker, CodeGen — into a single linear Processor chain. Each
// translation unit flows through exactly once; there is no cooperative
// scheduler and no partial cancellation.
package pipeline

// Pipeline is an ordered sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes each stage in order. A stage that leaves errors on the
// context causes the pipeline to stop before the next stage runs, per the
// "collect within a stage, abort before the next stage" error policy —
// but the partially-populated context is still returned so the caller can
// report every diagnostic gathered so far.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
		if ctx.HasErrors() {
			break
		}
	}
	return ctx
}
