package cgen_test

import (
	"testing"

	"github.com/funvibe/pawc/internal/analyzer"
	"github.com/funvibe/pawc/internal/codegen/cgen"
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
	ctx = (&cgen.Processor{}).Process(ctx)
	require.Empty(t, ctx.Errors, "codegen errors")
	return ctx.COutput
}

func TestGenerateArithmeticReturnsExpression(t *testing.T) {
	out := generate(t, `
		fn main() -> i32 {
			return 40 + 2;
		}
	`)
	require.Contains(t, out, "int32_t main(void) {")
	require.Contains(t, out, "return (40 + 2);")
}

func TestGenerateFunctionCall(t *testing.T) {
	out := generate(t, `
		fn add(x: i32, y: i32) -> i32 {
			return x + y;
		}

		fn main() -> i32 {
			return add(40, 2);
		}
	`)
	require.Contains(t, out, "int32_t add(int32_t x, int32_t y) {")
	require.Contains(t, out, "return add(40, 2);")
}

func TestGenerateStructLoweredAsTypedefStruct(t *testing.T) {
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
	require.Contains(t, out, "typedef struct {")
	require.Contains(t, out, "int32_t x;")
	require.Contains(t, out, "int32_t y;")
	require.Contains(t, out, "} Point;")
	require.Contains(t, out, "(Point){.x = 1, .y = 2}")
}

func TestGenerateEnumWithDataLoweredAsTaggedUnion(t *testing.T) {
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
	require.Contains(t, out, "Result_TAG_Ok")
	require.Contains(t, out, "Result_TAG_Err")
	require.Contains(t, out, "union {")
	require.Contains(t, out, "Result Result_Ok(int32_t a0) {")
	require.Contains(t, out, "switch (")
}

func TestGenerateLoopRangeLoweredAsFor(t *testing.T) {
	out := generate(t, `
		fn main() -> i32 {
			let mut s: i32 = 0;
			loop i in 1..=10 {
				s += i;
			}
			return s;
		}
	`)
	require.Contains(t, out, "for (int64_t i = 1; i <= 10; i++)")
	require.Contains(t, out, "s += i;")
}

func TestGenerateEnumWithoutPayloadLoweredAsPlainEnum(t *testing.T) {
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
	require.Contains(t, out, "typedef enum {")
	require.Contains(t, out, "Color_TAG_Red,")
	require.Contains(t, out, "typedef Color_Tag Color;")
	require.NotContains(t, out, "union {")
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
	require.Contains(t, out, "} Box_i32;")
	require.Contains(t, out, "int32_t value;")
}
