package prettyprinter_test

import (
	"strings"
	"testing"

	"github.com/funvibe/pawc/internal/ast"
	"github.com/funvibe/pawc/internal/lexer"
	"github.com/funvibe/pawc/internal/parser"
	"github.com/funvibe/pawc/internal/pipeline"
	"github.com/funvibe/pawc/internal/prettyprinter"
	"github.com/stretchr/testify/require"
)

func parseProgram(t *testing.T, src string) *ast.Program {
	t.Helper()
	ctx := &pipeline.PipelineContext{SourceCode: src}
	ctx = (&lexer.LexerProcessor{}).Process(ctx)
	ctx = (&parser.Processor{}).Process(ctx)
	require.Empty(t, ctx.Errors)
	require.NotNil(t, ctx.Program)
	return ctx.Program
}

func TestCodePrinterRoundTripsFunctionDeclaration(t *testing.T) {
	prog := parseProgram(t, `
		fn add(x: i32, y: i32) -> i32 {
			return x + y;
		}
	`)
	out := prettyprinter.Print(prog)
	require.Contains(t, out, "fn add(x: i32, y: i32) -> i32")
	require.Contains(t, out, "return x + y;")

	reparsed := parseProgram(t, out)
	require.Len(t, reparsed.Declarations, 1)
	fn, ok := reparsed.Declarations[0].(*ast.FunctionDeclaration)
	require.True(t, ok)
	require.Equal(t, "add", fn.Name)
}

func TestCodePrinterRoundTripsStructAndEnum(t *testing.T) {
	prog := parseProgram(t, `
		type Point = struct {
			x: i32,
			y: i32,
		}

		type Shape = enum {
			Circle(i32),
			Square(i32),
		}
	`)
	out := prettyprinter.Print(prog)
	require.Contains(t, out, "type Point = struct {")
	require.Contains(t, out, "type Shape = enum {")
	require.Contains(t, out, "Circle(i32)")

	reparsed := parseProgram(t, out)
	require.Len(t, reparsed.Declarations, 2)
}

func TestCodePrinterRendersIsExpression(t *testing.T) {
	prog := parseProgram(t, `
		type Result = enum {
			Ok(i32),
			Err(i32),
		}

		fn unwrap(r: Result) -> i32 {
			return r is {
				Ok(x) => x,
				Err(e) => e,
			};
		}
	`)
	out := prettyprinter.Print(prog)
	require.Contains(t, out, "is {")
	require.Contains(t, out, "Ok(x) => x")
}

func TestCodePrinterRendersLoopForms(t *testing.T) {
	prog := parseProgram(t, `
		fn main() -> i32 {
			let mut s: i32 = 0;
			loop i in 0..10 {
				s += i;
			}
			return s;
		}
	`)
	out := prettyprinter.Print(prog)
	require.Contains(t, out, "loop i in 0..10 {")
	require.Contains(t, out, "s += i;")
}

func TestTreePrinterDumpsNestedStructure(t *testing.T) {
	prog := parseProgram(t, `
		fn main() -> i32 {
			return 1 + 2;
		}
	`)
	out := prettyprinter.Dump(prog)
	require.True(t, strings.HasPrefix(out, "Program\n"))
	require.Contains(t, out, "FunctionDeclaration: main")
	require.Contains(t, out, "Binary(+,")
}
