package prettyprinter

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/funvibe/pawc/internal/ast"
)

// --- Code Printer (output looks like source code) ---

// CodePrinter reconstructs Paw source text from an AST by walking it as
// an ast.Visitor. Used by --print-ast and by this package's tests that
// check round-trip reparse-ability.
type CodePrinter struct {
	buf    bytes.Buffer
	indent int
}

func NewCodePrinter() *CodePrinter {
	return &CodePrinter{}
}

func (p *CodePrinter) String() string {
	return p.buf.String()
}

func (p *CodePrinter) write(s string) {
	p.buf.WriteString(s)
}

func (p *CodePrinter) writeIndent() {
	p.buf.WriteString(strings.Repeat("    ", p.indent))
}

func (p *CodePrinter) writeType(t ast.TypeExpr) {
	if t == nil {
		return
	}
	t.Accept(p)
}

// Print renders a whole program.
func Print(n *ast.Program) string {
	p := NewCodePrinter()
	n.Accept(p)
	return p.String()
}

func (p *CodePrinter) VisitProgram(n *ast.Program) {
	for _, imp := range n.Imports {
		imp.Accept(p)
	}
	if len(n.Imports) > 0 {
		p.write("\n")
	}
	for i, decl := range n.Declarations {
		if i > 0 {
			p.write("\n")
		}
		decl.Accept(p)
	}
}

func (p *CodePrinter) VisitImportStatement(n *ast.ImportStatement) {
	p.write("import \"" + n.Path + "\"")
	if n.Alias != "" {
		p.write(" as " + n.Alias)
	}
	p.write(";\n")
}

func (p *CodePrinter) printParams(params []ast.Parameter) {
	p.write("(")
	for i, param := range params {
		if i > 0 {
			p.write(", ")
		}
		p.write(param.Name)
		if param.Type != nil {
			p.write(": ")
			p.writeType(param.Type)
		}
	}
	p.write(")")
}

func (p *CodePrinter) printFunctionSignature(name string, typeParams []string, params []ast.Parameter, ret ast.TypeExpr) {
	p.write("fn ")
	p.write(name)
	if len(typeParams) > 0 {
		p.write("<" + strings.Join(typeParams, ", ") + ">")
	}
	p.printParams(params)
	if ret != nil {
		p.write(" -> ")
		p.writeType(ret)
	}
}

func (p *CodePrinter) VisitFunctionDeclaration(n *ast.FunctionDeclaration) {
	p.writeIndent()
	if n.IsPublic {
		p.write("pub ")
	}
	if n.IsAsync {
		p.write("async ")
	}
	p.printFunctionSignature(n.Name, n.TypeParams, n.Params, n.ReturnType)
	p.write(" ")
	if n.Body != nil {
		n.Body.Accept(p)
	}
	p.write("\n")
}

func (p *CodePrinter) VisitTypeDeclaration(n *ast.TypeDeclaration) {
	p.writeIndent()
	if n.IsPublic {
		p.write("pub ")
	}
	p.write("type ")
	p.write(n.Name)
	if len(n.TypeParams) > 0 {
		p.write("<" + strings.Join(n.TypeParams, ", ") + ">")
	}
	p.write(" = ")

	switch n.Kind {
	case ast.StructTypeKind:
		p.write("struct {\n")
		p.indent++
		for _, f := range n.Fields {
			p.writeIndent()
			p.write(f.Name + ": ")
			p.writeType(f.Type)
			p.write(",\n")
		}
		for _, m := range n.Methods {
			m.Accept(p)
		}
		p.indent--
		p.writeIndent()
		p.write("}\n")
	case ast.EnumTypeKind:
		p.write("enum {\n")
		p.indent++
		for _, v := range n.Variants {
			p.writeIndent()
			p.write(v.Name)
			if len(v.Payload) > 0 {
				p.write("(")
				for i, t := range v.Payload {
					if i > 0 {
						p.write(", ")
					}
					p.writeType(t)
				}
				p.write(")")
			}
			p.write(",\n")
		}
		for _, m := range n.Methods {
			m.Accept(p)
		}
		p.indent--
		p.writeIndent()
		p.write("}\n")
	case ast.TraitTypeKind:
		p.write("trait {\n")
		p.indent++
		for _, sig := range n.TraitMethods {
			p.writeIndent()
			p.printFunctionSignature(sig.Name, nil, sig.Params, sig.ReturnType)
			p.write(";\n")
		}
		p.indent--
		p.writeIndent()
		p.write("}\n")
	}
}

func (p *CodePrinter) VisitImplDeclaration(n *ast.ImplDeclaration) {
	p.writeIndent()
	p.write("impl ")
	if n.TraitName != "" {
		p.write(n.TraitName + " for ")
	}
	p.write(n.TypeName)
	if len(n.TypeParams) > 0 {
		p.write("<" + strings.Join(n.TypeParams, ", ") + ">")
	}
	p.write(" {\n")
	p.indent++
	for _, m := range n.Methods {
		m.Accept(p)
	}
	p.indent--
	p.writeIndent()
	p.write("}\n")
}

func (p *CodePrinter) VisitExpressionStatement(n *ast.ExpressionStatement) {
	p.writeIndent()
	n.Expression.Accept(p)
	p.write(";\n")
}

func (p *CodePrinter) VisitLetStatement(n *ast.LetStatement) {
	p.writeIndent()
	p.write("let ")
	if n.IsMut {
		p.write("mut ")
	}
	p.write(n.Name)
	if n.TypeAnnot != nil {
		p.write(": ")
		p.writeType(n.TypeAnnot)
	}
	if n.Init != nil {
		p.write(" = ")
		n.Init.Accept(p)
	}
	p.write(";\n")
}

func (p *CodePrinter) VisitAssignStatement(n *ast.AssignStatement) {
	p.writeIndent()
	n.Target.Accept(p)
	p.write(" = ")
	n.Value.Accept(p)
	p.write(";\n")
}

func (p *CodePrinter) VisitCompoundAssignStatement(n *ast.CompoundAssignStatement) {
	p.writeIndent()
	n.Target.Accept(p)
	p.write(" " + n.Operator + " ")
	n.Value.Accept(p)
	p.write(";\n")
}

func (p *CodePrinter) VisitReturnStatement(n *ast.ReturnStatement) {
	p.writeIndent()
	p.write("return")
	if n.Value != nil {
		p.write(" ")
		n.Value.Accept(p)
	}
	p.write(";\n")
}

func (p *CodePrinter) VisitBreakStatement(n *ast.BreakStatement) {
	p.writeIndent()
	p.write("break")
	if n.Value != nil {
		p.write(" ")
		n.Value.Accept(p)
	}
	p.write(";\n")
}

func (p *CodePrinter) VisitContinueStatement(n *ast.ContinueStatement) {
	p.writeIndent()
	p.write("continue;\n")
}

func (p *CodePrinter) VisitLoopStatement(n *ast.LoopStatement) {
	p.writeIndent()
	p.write("loop ")
	switch {
	case n.IteratorVar != "":
		p.write(n.IteratorVar)
		p.write(" in ")
		n.Iterable.Accept(p)
		p.write(" ")
	case n.Cond != nil:
		n.Cond.Accept(p)
		p.write(" ")
	}
	n.Body.Accept(p)
	p.write("\n")
}

func (p *CodePrinter) VisitIdentifier(n *ast.Identifier) { p.write(n.Value) }

func (p *CodePrinter) VisitIntegerLiteral(n *ast.IntegerLiteral) {
	p.write(fmt.Sprintf("%d", n.Value))
}

func (p *CodePrinter) VisitFloatLiteral(n *ast.FloatLiteral) {
	p.write(fmt.Sprintf("%g", n.Value))
}

func (p *CodePrinter) VisitStringLiteral(n *ast.StringLiteral) {
	p.write("\"" + n.Value + "\"")
}

func (p *CodePrinter) VisitCharLiteral(n *ast.CharLiteral) {
	p.write("'" + string(n.Value) + "'")
}

func (p *CodePrinter) VisitBoolLiteral(n *ast.BoolLiteral) {
	if n.Value {
		p.write("true")
	} else {
		p.write("false")
	}
}

func (p *CodePrinter) VisitBinaryExpression(n *ast.BinaryExpression) {
	n.Left.Accept(p)
	p.write(" " + n.Operator + " ")
	n.Right.Accept(p)
}

func (p *CodePrinter) VisitUnaryExpression(n *ast.UnaryExpression) {
	p.write(n.Operator)
	n.Right.Accept(p)
}

func (p *CodePrinter) VisitCallExpression(n *ast.CallExpression) {
	n.Callee.Accept(p)
	if len(n.TypeArgs) > 0 {
		p.write("<")
		for i, t := range n.TypeArgs {
			if i > 0 {
				p.write(", ")
			}
			p.writeType(t)
		}
		p.write(">")
	}
	p.write("(")
	for i, arg := range n.Args {
		if i > 0 {
			p.write(", ")
		}
		arg.Accept(p)
	}
	p.write(")")
}

func (p *CodePrinter) VisitStaticMethodCallExpression(n *ast.StaticMethodCallExpression) {
	p.write(n.TypeName)
	if len(n.TypeArgs) > 0 {
		p.write("<")
		for i, t := range n.TypeArgs {
			if i > 0 {
				p.write(", ")
			}
			p.writeType(t)
		}
		p.write(">")
	}
	p.write("::" + n.MethodName + "(")
	for i, arg := range n.Args {
		if i > 0 {
			p.write(", ")
		}
		arg.Accept(p)
	}
	p.write(")")
}

func (p *CodePrinter) VisitFieldAccessExpression(n *ast.FieldAccessExpression) {
	n.Object.Accept(p)
	p.write("." + n.Field)
}

func (p *CodePrinter) VisitStructInitExpression(n *ast.StructInitExpression) {
	p.write(n.TypeName)
	if len(n.TypeArgs) > 0 {
		p.write("<")
		for i, t := range n.TypeArgs {
			if i > 0 {
				p.write(", ")
			}
			p.writeType(t)
		}
		p.write(">")
	}
	p.write(" { ")
	for i, f := range n.Fields {
		if i > 0 {
			p.write(", ")
		}
		p.write(f.Name + ": ")
		f.Value.Accept(p)
	}
	p.write(" }")
}

func (p *CodePrinter) VisitEnumVariantExpression(n *ast.EnumVariantExpression) {
	if n.EnumName != "" {
		p.write(n.EnumName + "::")
	}
	p.write(n.Variant)
	p.write("(")
	for i, a := range n.Args {
		if i > 0 {
			p.write(", ")
		}
		a.Accept(p)
	}
	p.write(")")
}

func (p *CodePrinter) VisitBlockExpression(n *ast.BlockExpression) {
	p.write("{\n")
	p.indent++
	for _, stmt := range n.Statements {
		stmt.Accept(p)
	}
	p.indent--
	p.writeIndent()
	p.write("}")
}

func (p *CodePrinter) VisitIfExpression(n *ast.IfExpression) {
	p.write("if ")
	n.Condition.Accept(p)
	p.write(" ")
	n.Then.Accept(p)
	if n.Else != nil {
		p.write(" else ")
		n.Else.Accept(p)
	}
}

func (p *CodePrinter) VisitIsExpression(n *ast.IsExpression) {
	n.Value.Accept(p)
	p.write(" is {\n")
	p.indent++
	for _, arm := range n.Arms {
		p.writeIndent()
		arm.Pattern.Accept(p)
		if arm.Guard != nil {
			p.write(" if ")
			arm.Guard.Accept(p)
		}
		p.write(" => ")
		arm.Body.Accept(p)
		p.write(",\n")
	}
	p.indent--
	p.writeIndent()
	p.write("}")
}

func (p *CodePrinter) VisitAsExpression(n *ast.AsExpression) {
	n.Value.Accept(p)
	p.write(" as ")
	p.writeType(n.TargetType)
}

func (p *CodePrinter) VisitAwaitExpression(n *ast.AwaitExpression) {
	p.write("await ")
	n.Value.Accept(p)
}

func (p *CodePrinter) VisitArrayLiteral(n *ast.ArrayLiteral) {
	p.write("[")
	for i, el := range n.Elements {
		if i > 0 {
			p.write(", ")
		}
		el.Accept(p)
	}
	p.write("]")
}

func (p *CodePrinter) VisitArrayIndexExpression(n *ast.ArrayIndexExpression) {
	n.Array.Accept(p)
	p.write("[")
	n.Index.Accept(p)
	p.write("]")
}

func (p *CodePrinter) VisitRangeExpression(n *ast.RangeExpression) {
	n.Start.Accept(p)
	if n.Inclusive {
		p.write("..=")
	} else {
		p.write("..")
	}
	n.End.Accept(p)
}

func (p *CodePrinter) VisitStringInterpExpression(n *ast.StringInterpExpression) {
	p.write("\"")
	for _, part := range n.Parts {
		if part.IsExpr {
			p.write("${")
			part.Expr.Accept(p)
			p.write("}")
		} else {
			p.write(part.Literal)
		}
	}
	p.write("\"")
}

func (p *CodePrinter) VisitTryExpression(n *ast.TryExpression) {
	n.Value.Accept(p)
	p.write("?")
}

func (p *CodePrinter) VisitIdentifierPattern(n *ast.IdentifierPattern) {
	p.write(n.Name)
}

func (p *CodePrinter) VisitVariantPattern(n *ast.VariantPattern) {
	if n.EnumName != "" {
		p.write(n.EnumName + "::")
	}
	p.write(n.Variant)
	if len(n.Bindings) > 0 {
		p.write("(" + strings.Join(n.Bindings, ", ") + ")")
	}
}

func (p *CodePrinter) VisitLiteralPattern(n *ast.LiteralPattern) {
	n.Value.Accept(p)
}

func (p *CodePrinter) VisitWildcardPattern(n *ast.WildcardPattern) {
	p.write("_")
}

func (p *CodePrinter) VisitNamedTypeExpr(n *ast.NamedTypeExpr) {
	p.write(n.Name)
}

func (p *CodePrinter) VisitPrimitiveTypeExpr(n *ast.PrimitiveTypeExpr) {
	p.write(n.Name)
}

func (p *CodePrinter) VisitPointerTypeExpr(n *ast.PointerTypeExpr) {
	p.write("*")
	p.writeType(n.Elem)
}

func (p *CodePrinter) VisitArrayTypeExpr(n *ast.ArrayTypeExpr) {
	p.write("[")
	p.writeType(n.Elem)
	if n.Size != nil {
		p.write(fmt.Sprintf("; %d", *n.Size))
	}
	p.write("]")
}

func (p *CodePrinter) VisitFunctionTypeExpr(n *ast.FunctionTypeExpr) {
	p.write("fn(")
	for i, t := range n.Params {
		if i > 0 {
			p.write(", ")
		}
		p.writeType(t)
	}
	p.write(") -> ")
	p.writeType(n.Return)
}

func (p *CodePrinter) VisitGenericInstanceTypeExpr(n *ast.GenericInstanceTypeExpr) {
	p.write(n.Name)
	p.write("<")
	for i, t := range n.Args {
		if i > 0 {
			p.write(", ")
		}
		p.writeType(t)
	}
	p.write(">")
}
