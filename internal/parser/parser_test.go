package parser_test

import (
	"testing"

	"github.com/funvibe/pawc/internal/ast"
	"github.com/funvibe/pawc/internal/lexer"
	"github.com/funvibe/pawc/internal/parser"
	"github.com/funvibe/pawc/internal/pipeline"
	"github.com/stretchr/testify/require"
)

func parseProgram(t *testing.T, src string) *ast.Program {
	t.Helper()
	ctx := &pipeline.PipelineContext{SourceCode: src}
	ctx = (&lexer.LexerProcessor{}).Process(ctx)
	ctx = (&parser.Processor{}).Process(ctx)
	if len(ctx.Errors) > 0 {
		msgs := make([]string, len(ctx.Errors))
		for i, e := range ctx.Errors {
			msgs[i] = e.Error()
		}
		t.Fatalf("parse errors: %v", msgs)
	}
	require.NotNil(t, ctx.Program)
	return ctx.Program
}

func TestParseFunctionDeclaration(t *testing.T) {
	prog := parseProgram(t, `
		fn add(x: i32, y: i32) -> i32 {
			return x + y;
		}
	`)
	require.Len(t, prog.Declarations, 1)
	fn, ok := prog.Declarations[0].(*ast.FunctionDeclaration)
	require.True(t, ok)
	require.Equal(t, "add", fn.Name)
	require.Len(t, fn.Params, 2)
	require.Equal(t, "x", fn.Params[0].Name)
	require.IsType(t, &ast.PrimitiveTypeExpr{}, fn.ReturnType)
	require.Len(t, fn.Body.Statements, 1)
	ret, ok := fn.Body.Statements[0].(*ast.ReturnStatement)
	require.True(t, ok)
	require.IsType(t, &ast.BinaryExpression{}, ret.Value)
}

func TestParseStructDeclarationAndLiteral(t *testing.T) {
	prog := parseProgram(t, `
		type Point = struct {
			x: i32,
			y: i32,
		}

		fn origin() -> Point {
			return Point { x: 0, y: 0 };
		}
	`)
	require.Len(t, prog.Declarations, 2)

	td, ok := prog.Declarations[0].(*ast.TypeDeclaration)
	require.True(t, ok)
	require.Equal(t, ast.StructTypeKind, td.Kind)
	require.Len(t, td.Fields, 2)
	require.Equal(t, "x", td.Fields[0].Name)

	fn := prog.Declarations[1].(*ast.FunctionDeclaration)
	ret := fn.Body.Statements[0].(*ast.ReturnStatement)
	lit, ok := ret.Value.(*ast.StructInitExpression)
	require.True(t, ok)
	require.Equal(t, "Point", lit.TypeName)
	require.Len(t, lit.Fields, 2)
}

func TestParseLowercaseIdentifierFollowedByBraceIsNotStructLiteral(t *testing.T) {
	prog := parseProgram(t, `
		fn main() -> i32 {
			let result = 1;
			result
			{
				let y = 2;
			}
			return result;
		}
	`)
	fn := prog.Declarations[0].(*ast.FunctionDeclaration)
	require.Len(t, fn.Body.Statements, 4)

	exprStmt, ok := fn.Body.Statements[1].(*ast.ExpressionStatement)
	require.True(t, ok)
	require.IsType(t, &ast.Identifier{}, exprStmt.Expression)

	blockStmt, ok := fn.Body.Statements[2].(*ast.ExpressionStatement)
	require.True(t, ok)
	require.IsType(t, &ast.BlockExpression{}, blockStmt.Expression)
}

func TestParseEnumVariantAndIsExpression(t *testing.T) {
	prog := parseProgram(t, `
		type Shape = enum {
			Circle(i32),
			Square(i32),
		}

		fn area(s: Shape) -> i32 {
			return s is {
				Circle(r) => r * r,
				Square(side) => side * side,
				_ => 0,
			};
		}
	`)
	td := prog.Declarations[0].(*ast.TypeDeclaration)
	require.Equal(t, ast.EnumTypeKind, td.Kind)
	require.Len(t, td.Variants, 2)
	require.Equal(t, "Circle", td.Variants[0].Name)

	fn := prog.Declarations[1].(*ast.FunctionDeclaration)
	ret := fn.Body.Statements[0].(*ast.ReturnStatement)
	is, ok := ret.Value.(*ast.IsExpression)
	require.True(t, ok)
	require.Len(t, is.Arms, 3)
	vp, ok := is.Arms[0].Pattern.(*ast.VariantPattern)
	require.True(t, ok)
	require.Equal(t, "Circle", vp.Variant)
	require.Equal(t, []string{"r"}, vp.Bindings)
	require.IsType(t, &ast.WildcardPattern{}, is.Arms[2].Pattern)
}

func TestParseGenericDisambiguation(t *testing.T) {
	prog := parseProgram(t, `
		type Box = struct {
			value: i32,
		}

		fn main() -> i32 {
			let b = Box<i32> { value: 1 };
			let flag = b.value < 2;
			return identity<i32>(b.value);
		}
	`)
	fn := prog.Declarations[1].(*ast.FunctionDeclaration)
	letBox := fn.Body.Statements[0].(*ast.LetStatement)
	boxLit, ok := letBox.Init.(*ast.StructInitExpression)
	require.True(t, ok)
	require.Len(t, boxLit.TypeArgs, 1)

	letFlag := fn.Body.Statements[1].(*ast.LetStatement)
	cmp, ok := letFlag.Init.(*ast.BinaryExpression)
	require.True(t, ok)
	require.Equal(t, "<", cmp.Operator)

	ret := fn.Body.Statements[2].(*ast.ReturnStatement)
	call, ok := ret.Value.(*ast.CallExpression)
	require.True(t, ok)
	require.Len(t, call.TypeArgs, 1)
}

func TestParseLoopForms(t *testing.T) {
	prog := parseProgram(t, `
		fn main() -> i32 {
			let mut s: i32 = 0;
			loop i in 1..=10 {
				s += i;
			}
			loop s < 100 {
				s += 1;
			}
			loop {
				break;
			}
			return s;
		}
	`)
	fn := prog.Declarations[0].(*ast.FunctionDeclaration)
	iterLoop := fn.Body.Statements[1].(*ast.LoopStatement)
	require.Equal(t, "i", iterLoop.IteratorVar)
	rng, ok := iterLoop.Iterable.(*ast.RangeExpression)
	require.True(t, ok)
	require.True(t, rng.Inclusive)

	condLoop := fn.Body.Statements[2].(*ast.LoopStatement)
	require.Nil(t, condLoop.Iterable)
	require.NotNil(t, condLoop.Cond)

	infiniteLoop := fn.Body.Statements[3].(*ast.LoopStatement)
	require.Nil(t, infiniteLoop.Cond)
	require.Equal(t, "", infiniteLoop.IteratorVar)
}

func TestParseStringInterpolation(t *testing.T) {
	prog := parseProgram(t, `
		fn greet(name: str) -> str {
			return "hello $name, total is ${1 + 2}";
		}
	`)
	fn := prog.Declarations[0].(*ast.FunctionDeclaration)
	ret := fn.Body.Statements[0].(*ast.ReturnStatement)
	interp, ok := ret.Value.(*ast.StringInterpExpression)
	require.True(t, ok)
	require.True(t, len(interp.Parts) >= 3)

	var sawExprCount int
	for _, part := range interp.Parts {
		if part.IsExpr {
			sawExprCount++
		}
	}
	require.Equal(t, 2, sawExprCount)
}

func TestParseTryAndAsExpressions(t *testing.T) {
	prog := parseProgram(t, `
		fn convert(x: i32) -> i64 {
			let y = x as i64;
			return y?;
		}
	`)
	fn := prog.Declarations[0].(*ast.FunctionDeclaration)
	letY := fn.Body.Statements[0].(*ast.LetStatement)
	asExpr, ok := letY.Init.(*ast.AsExpression)
	require.True(t, ok)
	require.Equal(t, "i64", asExpr.TargetType.String())

	ret := fn.Body.Statements[1].(*ast.ReturnStatement)
	require.IsType(t, &ast.TryExpression{}, ret.Value)
}

func TestParseImplDeclaration(t *testing.T) {
	prog := parseProgram(t, `
		type Area = trait {
			fn area(self) -> i32;
		}

		type Square = struct {
			side: i32,
		}

		impl Area for Square {
			fn area(self) -> i32 {
				return self.side * self.side;
			}
		}
	`)
	require.Len(t, prog.Declarations, 3)
	impl, ok := prog.Declarations[2].(*ast.ImplDeclaration)
	require.True(t, ok)
	require.Equal(t, "Area", impl.TraitName)
	require.Equal(t, "Square", impl.TypeName)
	require.Len(t, impl.Methods, 1)
	require.True(t, impl.Methods[0].HasSelf)
}
