package llvmgen_test

import (
	"testing"

	"github.com/funvibe/pawc/internal/analyzer"
	"github.com/funvibe/pawc/internal/codegen/llvmgen"
	"github.com/funvibe/pawc/internal/lexer"
	"github.com/funvibe/pawc/internal/parser"
	"github.com/funvibe/pawc/internal/pipeline"
	"github.com/stretchr/testify/require"
)

func generate(t *testing.T, src string) string {
	t.Helper()
	ctx := &pipeline.PipelineContext{SourceCode: src}
	ctx = (&lexer.LexerProcessor{}).Process(ctx)
	require.Empty(t, ctx.Errors, "lex errors")
	ctx = (&parser.Processor{}).Process(ctx)
	require.Empty(t, ctx.Errors, "parse errors")
	ctx = (&analyzer.Processor{}).Process(ctx)
	require.Empty(t, ctx.Errors, "analysis errors")
	ctx = (&llvmgen.Processor{}).Process(ctx)
	require.Empty(t, ctx.Errors, "codegen errors")
	return ctx.LLVMOutput
}

func TestGenerateArithmeticReturnsExpression(t *testing.T) {
	out := generate(t, `
		fn main() -> i32 {
			return 40 + 2;
		}
	`)
	require.Contains(t, out, "define i32 @main()")
	require.Contains(t, out, "add")
	require.Contains(t, out, "ret i32")
}

func TestGenerateFunctionCallDeclaresBothSignatures(t *testing.T) {
	out := generate(t, `
		fn add(x: i32, y: i32) -> i32 {
			return x + y;
		}

		fn main() -> i32 {
			return add(40, 2);
		}
	`)
	require.Contains(t, out, "define i32 @add(i32 %x, i32 %y)")
	require.Contains(t, out, "call i32 @add(")
}

func TestGenerateParametersAreAllocaBacked(t *testing.T) {
	out := generate(t, `
		fn double(x: i32) -> i32 {
			return x + x;
		}

		fn main() -> i32 {
			return double(21);
		}
	`)
	require.Contains(t, out, "alloca i32")
	require.Contains(t, out, "store i32 %x")
}

func TestGenerateStructLoweredAsNamedType(t *testing.T) {
	out := generate(t, `
		type Point = struct {
			x: i32,
			y: i32,
		}

		fn main() -> i32 {
			let p: Point = Point { x: 1, y: 2 };
			return p.x;
		}
	`)
	require.Contains(t, out, "%Point = type { i32, i32 }")
}

func TestGenerateEnumLoweredAsUniformTaggedStruct(t *testing.T) {
	out := generate(t, `
		type Result = enum {
			Ok(i32),
			Err(i32),
		}

		fn f() -> Result {
			return Ok(1);
		}

		fn main() -> i32 {
			return f() is {
				Ok(x) => x,
				Err(e) => e,
			};
		}
	`)
	require.Contains(t, out, "%Result = type { i32, [32 x i8] }")
	require.Contains(t, out, "switch i32")
}

func TestGenerateEnumWithoutPayloadStillUsesTaggedStruct(t *testing.T) {
	out := generate(t, `
		type Color = enum {
			Red,
			Green,
			Blue,
		}

		fn main() -> i32 {
			let c: Color = Red();
			return 0;
		}
	`)
	require.Contains(t, out, "%Color = type { i32, [32 x i8] }")
}

func TestGenerateIfAsValueProducesPhi(t *testing.T) {
	out := generate(t, `
		fn main() -> i32 {
			let x: i32 = 5;
			return if x > 0 { 1 } else { 0 };
		}
	`)
	require.Contains(t, out, "phi i32")
}

func TestGenerateLoopRangeLoweredWithCondAndStepBlocks(t *testing.T) {
	out := generate(t, `
		fn main() -> i32 {
			let mut s: i32 = 0;
			loop i in 1..=10 {
				s += i;
			}
			return s;
		}
	`)
	require.Contains(t, out, "forcond")
	require.Contains(t, out, "forstep")
	require.Contains(t, out, "icmp sle")
}

func TestGenerateGenericStructMonomorphized(t *testing.T) {
	out := generate(t, `
		type Box<T> = struct {
			value: T,
		}

		fn main() -> i32 {
			let b: Box<i32> = Box<i32> { value: 42 };
			return b.value;
		}
	`)
	require.Contains(t, out, "%Box_i32 = type { i32 }")
}

func TestGenerateBreakAndContinueTargetEnclosingLoop(t *testing.T) {
	out := generate(t, `
		fn main() -> i32 {
			let mut s: i32 = 0;
			loop i in 0..10 {
				if i == 5 {
					continue;
				}
				if i == 8 {
					break;
				}
				s += i;
			}
			return s;
		}
	`)
	require.Contains(t, out, "forend")
}
