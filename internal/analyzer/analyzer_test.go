package analyzer_test

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/pawc/internal/analyzer"
	"github.com/funvibe/pawc/internal/ast"
	"github.com/funvibe/pawc/internal/diagnostics"
	"github.com/funvibe/pawc/internal/lexer"
	"github.com/funvibe/pawc/internal/parser"
	"github.com/funvibe/pawc/internal/pipeline"
)

func runAnalysis(t *testing.T, src string) *pipeline.PipelineContext {
	t.Helper()
	ctx := &pipeline.PipelineContext{SourceCode: src}
	ctx = (&lexer.LexerProcessor{}).Process(ctx)
	require.Empty(t, ctx.Errors, "lex errors")
	ctx = (&parser.Processor{}).Process(ctx)
	require.Empty(t, ctx.Errors, "parse errors")
	ctx = (&analyzer.Processor{}).Process(ctx)
	return ctx
}

func errorCodes(ctx *pipeline.PipelineContext) []diagnostics.ErrorCode {
	codes := make([]diagnostics.ErrorCode, len(ctx.Errors))
	for i, e := range ctx.Errors {
		codes[i] = e.Code
	}
	return codes
}

func TestAnalyzeValidProgramHasNoErrors(t *testing.T) {
	ctx := runAnalysis(t, `
		fn add(x: i32, y: i32) -> i32 {
			return x + y;
		}

		fn main() -> i32 {
			return add(40, 2);
		}
	`)
	require.Empty(t, ctx.Errors)
}

func TestAnalyzeSumLoopToFiftyFive(t *testing.T) {
	ctx := runAnalysis(t, `
		fn main() -> i32 {
			let mut s: i32 = 0;
			loop i in 1..=10 {
				s += i;
			}
			return s;
		}
	`)
	require.Empty(t, ctx.Errors)
}

func TestAnalyzeUndefinedIdentifier(t *testing.T) {
	ctx := runAnalysis(t, `
		fn main() -> i32 {
			return missing + 1;
		}
	`)
	require.Contains(t, errorCodes(ctx), diagnostics.ErrA001)
}

func TestAnalyzeTypeMismatchInReturn(t *testing.T) {
	ctx := runAnalysis(t, `
		fn main() -> bool {
			return 42;
		}
	`)
	require.Contains(t, errorCodes(ctx), diagnostics.ErrA003)
}

func TestAnalyzeMissingMain(t *testing.T) {
	ctx := runAnalysis(t, `
		fn helper() -> i32 {
			return 1;
		}
	`)
	require.Contains(t, errorCodes(ctx), diagnostics.ErrA008)
}

func TestAnalyzeAwaitOutsideAsync(t *testing.T) {
	ctx := runAnalysis(t, `
		fn fetch() -> i32 {
			return 1;
		}

		fn main() -> i32 {
			return await fetch();
		}
	`)
	require.Contains(t, errorCodes(ctx), diagnostics.ErrA006)
}

func TestAnalyzeAwaitInsideAsyncIsFine(t *testing.T) {
	ctx := runAnalysis(t, `
		async fn fetch() -> i32 {
			return 1;
		}

		async fn main() -> i32 {
			return await fetch();
		}
	`)
	require.Empty(t, ctx.Errors)
}

func TestAnalyzeIncompleteTraitImpl(t *testing.T) {
	ctx := runAnalysis(t, `
		type Shape = trait {
			fn area(self) -> i32;
			fn perimeter(self) -> i32;
		}

		type Square = struct {
			side: i32,
		}

		impl Shape for Square {
			fn area(self) -> i32 {
				return self.side * self.side;
			}
		}

		fn main() -> i32 {
			return 0;
		}
	`)
	require.Contains(t, errorCodes(ctx), diagnostics.ErrA007)
}

func TestAnalyzeEnumConstructionAndIsExhaustive(t *testing.T) {
	ctx := runAnalysis(t, `
		type Shape = enum {
			Circle(i32),
			Square(i32),
		}

		fn area(s: Shape) -> i32 {
			return s is {
				Circle(r) => r * r,
				Square(side) => side * side,
			};
		}

		fn main() -> i32 {
			return area(Circle(3));
		}
	`)
	require.Empty(t, ctx.Errors)
	require.Empty(t, ctx.Warnings)
}

func TestAnalyzeGenericEnumReturnAcceptsBareVariantConstruction(t *testing.T) {
	ctx := runAnalysis(t, `
		type Result = enum {
			Ok(i32),
			Err(i32),
		}

		fn f() -> Result<i32, i32> {
			return Ok(1);
		}

		fn main() -> i32 {
			return 0;
		}
	`)
	require.Empty(t, ctx.Errors)
}

func TestAnalyzeTryExpressionTypesAsOkPayload(t *testing.T) {
	ctx := runAnalysis(t, `
		type Result = enum {
			Ok(i32),
			Err(i32),
		}

		fn div(a: i32, b: i32) -> Result<i32, i32> {
			return Ok(a / b);
		}

		fn main() -> i32 {
			let v = div(10, 2)?;
			return Ok(v + 1) is {
				Ok(x) => x,
				Err(e) => e,
			};
		}
	`)
	require.Empty(t, ctx.Errors)

	fn := ctx.Program.Declarations[2].(*ast.FunctionDeclaration)
	let := fn.Body.Statements[0].(*ast.LetStatement)
	tryExpr := let.Init.(*ast.TryExpression)
	typ, ok := ctx.TypeMap[tryExpr]
	require.True(t, ok)
	require.Equal(t, "i32", typ.String())
}

func TestAnalyzeNonExhaustiveIsWarnsNotErrors(t *testing.T) {
	ctx := runAnalysis(t, `
		type Shape = enum {
			Circle(i32),
			Square(i32),
		}

		fn area(s: Shape) -> i32 {
			return s is {
				Circle(r) => r * r,
			};
		}

		fn main() -> i32 {
			return area(Circle(3));
		}
	`)
	require.Empty(t, ctx.Errors, "non-exhaustive is must warn, not fail the build")
	require.NotEmpty(t, ctx.Warnings)
	require.Equal(t, diagnostics.ErrA009, ctx.Warnings[0].Code)
}

func TestAnalyzeGenericStructFieldTypeSubstitution(t *testing.T) {
	ctx := runAnalysis(t, `
		type Box<T> = struct {
			value: T,
		}

		fn main() -> i32 {
			let b = Box<i32> { value: 7 };
			return b.value;
		}
	`)
	require.Empty(t, ctx.Errors)
}

func TestAnalyzeAsConversionBetweenIntWidths(t *testing.T) {
	ctx := runAnalysis(t, `
		fn main() -> i32 {
			let x: i64 = 10;
			let y = x as i32;
			return y;
		}
	`)
	require.Empty(t, ctx.Errors)
}

func TestAnalyzeInvalidAsConversion(t *testing.T) {
	ctx := runAnalysis(t, `
		fn main() -> i32 {
			let flag = true;
			let bad = flag as i32;
			return bad;
		}
	`)
	require.Contains(t, errorCodes(ctx), diagnostics.ErrA010)
}

func TestAnalyzeLoopIteratorVarNotVisibleAfterLoop(t *testing.T) {
	ctx := runAnalysis(t, `
		fn main() -> i32 {
			loop i in 1..=3 {
				let _ = i;
			}
			return i;
		}
	`)
	require.Contains(t, errorCodes(ctx), diagnostics.ErrA001)
}

func TestAnalyzeIfWithoutElseIsVoidNotJoined(t *testing.T) {
	ctx := runAnalysis(t, `
		fn main() -> i32 {
			if true {
				let x = 1;
			}
			return 0;
		}
	`)
	require.Empty(t, ctx.Errors)
}

func TestTypeMapPopulatedForExpressions(t *testing.T) {
	ctx := runAnalysis(t, `
		fn main() -> i32 {
			return 1 + 2;
		}
	`)
	require.Empty(t, ctx.Errors)
	fn := ctx.Program.Declarations[0].(*ast.FunctionDeclaration)
	ret := fn.Body.Statements[0].(*ast.ReturnStatement)
	bin := ret.Value.(*ast.BinaryExpression)
	typ, ok := ctx.TypeMap[bin]
	require.True(t, ok)
	require.Equal(t, "i32", typ.String())
}

// TestAnalyzeReportsEveryErrorInABadProgram collects several unrelated
// mistakes in one program and diffs the full set of codes against what's
// expected. cmp.Diff pinpoints exactly which code is missing or extra,
// which a boolean reflect.DeepEqual comparison would not.
func TestAnalyzeReportsEveryErrorInABadProgram(t *testing.T) {
	ctx := runAnalysis(t, `
		fn helper() -> bool {
			return 42;
		}

		fn other() -> i32 {
			return missing;
		}
	`)

	got := errorCodes(ctx)
	sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })

	want := []diagnostics.ErrorCode{diagnostics.ErrA001, diagnostics.ErrA003, diagnostics.ErrA008}
	sort.Slice(want, func(i, j int) bool { return want[i] < want[j] })

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("error codes mismatch (-want +got):\n%s", diff)
	}
}
