package prettyprinter

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/funvibe/pawc/internal/ast"
)

// --- Tree Printer (output looks like a tree structure) ---

// TreePrinter renders an indented, line-oriented dump of an AST, used
// for debugging the parser independently of whether its output would
// still reparse as valid Paw source (that round-trip property is what
// CodePrinter is for).
type TreePrinter struct {
	buf    bytes.Buffer
	indent int
}

func NewTreePrinter() *TreePrinter {
	return &TreePrinter{}
}

func (p *TreePrinter) String() string {
	return p.buf.String()
}

func (p *TreePrinter) write(s string) {
	p.buf.WriteString(s)
}

func (p *TreePrinter) writeIndent() {
	p.write(strings.Repeat("  ", p.indent))
}

// Dump renders a whole program as a tree.
func Dump(n *ast.Program) string {
	p := NewTreePrinter()
	n.Accept(p)
	return p.String()
}

func (p *TreePrinter) VisitProgram(n *ast.Program) {
	p.write("Program\n")
	p.indent++
	for _, imp := range n.Imports {
		imp.Accept(p)
	}
	for _, decl := range n.Declarations {
		decl.Accept(p)
	}
	p.indent--
}

func (p *TreePrinter) VisitImportStatement(n *ast.ImportStatement) {
	p.writeIndent()
	p.write("Import: " + n.Path)
	if n.Alias != "" {
		p.write(" as " + n.Alias)
	}
	p.write("\n")
}

func (p *TreePrinter) printParams(params []ast.Parameter) {
	p.indent++
	for _, param := range params {
		p.writeIndent()
		p.write(param.Name + ": ")
		if param.Type != nil {
			param.Type.Accept(p)
		}
		p.write("\n")
	}
	p.indent--
}

func (p *TreePrinter) VisitFunctionDeclaration(n *ast.FunctionDeclaration) {
	p.writeIndent()
	p.write("FunctionDeclaration: " + n.Name)
	if n.IsPublic {
		p.write(" pub")
	}
	if n.IsAsync {
		p.write(" async")
	}
	if len(n.TypeParams) > 0 {
		p.write(" <" + strings.Join(n.TypeParams, ", ") + ">")
	}
	p.write("\n")
	p.indent++
	p.writeIndent()
	p.write("Params:\n")
	p.printParams(n.Params)
	if n.ReturnType != nil {
		p.writeIndent()
		p.write("Return: ")
		n.ReturnType.Accept(p)
		p.write("\n")
	}
	p.writeIndent()
	p.write("Body:\n")
	p.indent++
	if n.Body != nil {
		n.Body.Accept(p)
	}
	p.indent--
	p.indent--
}

func (p *TreePrinter) VisitTypeDeclaration(n *ast.TypeDeclaration) {
	p.writeIndent()
	p.write("TypeDeclaration: " + n.Name)
	if len(n.TypeParams) > 0 {
		p.write(" <" + strings.Join(n.TypeParams, ", ") + ">")
	}
	p.write("\n")
	p.indent++
	switch n.Kind {
	case ast.StructTypeKind:
		p.writeIndent()
		p.write("struct\n")
		p.indent++
		for _, f := range n.Fields {
			p.writeIndent()
			p.write(f.Name + ": ")
			f.Type.Accept(p)
			p.write("\n")
		}
		p.indent--
	case ast.EnumTypeKind:
		p.writeIndent()
		p.write("enum\n")
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
					t.Accept(p)
				}
				p.write(")")
			}
			p.write("\n")
		}
		p.indent--
	case ast.TraitTypeKind:
		p.writeIndent()
		p.write("trait\n")
		p.indent++
		for _, m := range n.TraitMethods {
			p.writeIndent()
			p.write(m.Name + "\n")
			p.printParams(m.Params)
		}
		p.indent--
	}
	for _, m := range n.Methods {
		m.Accept(p)
	}
	p.indent--
}

func (p *TreePrinter) VisitImplDeclaration(n *ast.ImplDeclaration) {
	p.writeIndent()
	p.write("ImplDeclaration: ")
	if n.TraitName != "" {
		p.write(n.TraitName + " for ")
	}
	p.write(n.TypeName + "\n")
	p.indent++
	for _, m := range n.Methods {
		m.Accept(p)
	}
	p.indent--
}

func (p *TreePrinter) VisitExpressionStatement(n *ast.ExpressionStatement) {
	p.writeIndent()
	n.Expression.Accept(p)
	p.write("\n")
}

func (p *TreePrinter) VisitLetStatement(n *ast.LetStatement) {
	p.writeIndent()
	p.write("Let: " + n.Name)
	if n.IsMut {
		p.write(" mut")
	}
	p.write(" = ")
	if n.Init != nil {
		n.Init.Accept(p)
	}
	p.write("\n")
}

func (p *TreePrinter) VisitAssignStatement(n *ast.AssignStatement) {
	p.writeIndent()
	p.write("Assign: ")
	n.Target.Accept(p)
	p.write(" = ")
	n.Value.Accept(p)
	p.write("\n")
}

func (p *TreePrinter) VisitCompoundAssignStatement(n *ast.CompoundAssignStatement) {
	p.writeIndent()
	p.write("CompoundAssign(" + n.Operator + "): ")
	n.Target.Accept(p)
	p.write(" = ")
	n.Value.Accept(p)
	p.write("\n")
}

func (p *TreePrinter) VisitReturnStatement(n *ast.ReturnStatement) {
	p.writeIndent()
	p.write("Return: ")
	if n.Value != nil {
		n.Value.Accept(p)
	}
	p.write("\n")
}

func (p *TreePrinter) VisitBreakStatement(n *ast.BreakStatement) {
	p.writeIndent()
	p.write("Break")
	if n.Value != nil {
		p.write(": ")
		n.Value.Accept(p)
	}
	p.write("\n")
}

func (p *TreePrinter) VisitContinueStatement(n *ast.ContinueStatement) {
	p.writeIndent()
	p.write("Continue\n")
}

func (p *TreePrinter) VisitLoopStatement(n *ast.LoopStatement) {
	p.writeIndent()
	p.write("Loop")
	switch {
	case n.IteratorVar != "":
		p.write(": " + n.IteratorVar + " in ")
		n.Iterable.Accept(p)
	case n.Cond != nil:
		p.write(": ")
		n.Cond.Accept(p)
	}
	p.write("\n")
	p.indent++
	n.Body.Accept(p)
	p.indent--
}

func (p *TreePrinter) VisitIdentifier(n *ast.Identifier) {
	p.write("Identifier(" + n.Value + ")")
}

func (p *TreePrinter) VisitIntegerLiteral(n *ast.IntegerLiteral) {
	p.write(fmt.Sprintf("IntegerLiteral(%d)", n.Value))
}

func (p *TreePrinter) VisitFloatLiteral(n *ast.FloatLiteral) {
	p.write(fmt.Sprintf("FloatLiteral(%g)", n.Value))
}

func (p *TreePrinter) VisitStringLiteral(n *ast.StringLiteral) {
	p.write(fmt.Sprintf("StringLiteral(%q)", n.Value))
}

func (p *TreePrinter) VisitCharLiteral(n *ast.CharLiteral) {
	p.write(fmt.Sprintf("CharLiteral(%q)", n.Value))
}

func (p *TreePrinter) VisitBoolLiteral(n *ast.BoolLiteral) {
	p.write(fmt.Sprintf("BoolLiteral(%v)", n.Value))
}

func (p *TreePrinter) VisitBinaryExpression(n *ast.BinaryExpression) {
	p.write("Binary(" + n.Operator + ", ")
	n.Left.Accept(p)
	p.write(", ")
	n.Right.Accept(p)
	p.write(")")
}

func (p *TreePrinter) VisitUnaryExpression(n *ast.UnaryExpression) {
	p.write("Unary(" + n.Operator + ", ")
	n.Right.Accept(p)
	p.write(")")
}

func (p *TreePrinter) VisitCallExpression(n *ast.CallExpression) {
	p.write("Call(")
	n.Callee.Accept(p)
	p.write(", [")
	for i, a := range n.Args {
		if i > 0 {
			p.write(", ")
		}
		a.Accept(p)
	}
	p.write("])")
}

func (p *TreePrinter) VisitStaticMethodCallExpression(n *ast.StaticMethodCallExpression) {
	p.write("StaticCall(" + n.TypeName + "::" + n.MethodName + ", [")
	for i, a := range n.Args {
		if i > 0 {
			p.write(", ")
		}
		a.Accept(p)
	}
	p.write("])")
}

func (p *TreePrinter) VisitFieldAccessExpression(n *ast.FieldAccessExpression) {
	p.write("FieldAccess(")
	n.Object.Accept(p)
	p.write(", " + n.Field + ")")
}

func (p *TreePrinter) VisitStructInitExpression(n *ast.StructInitExpression) {
	p.write("StructInit(" + n.TypeName + ", {")
	for i, f := range n.Fields {
		if i > 0 {
			p.write(", ")
		}
		p.write(f.Name + ": ")
		f.Value.Accept(p)
	}
	p.write("})")
}

func (p *TreePrinter) VisitEnumVariantExpression(n *ast.EnumVariantExpression) {
	p.write("EnumVariant(" + n.EnumName + "::" + n.Variant + ", [")
	for i, a := range n.Args {
		if i > 0 {
			p.write(", ")
		}
		a.Accept(p)
	}
	p.write("])")
}

func (p *TreePrinter) VisitBlockExpression(n *ast.BlockExpression) {
	p.writeIndent()
	p.write("Block\n")
	p.indent++
	for _, stmt := range n.Statements {
		stmt.Accept(p)
	}
	p.indent--
}

func (p *TreePrinter) VisitIfExpression(n *ast.IfExpression) {
	p.write("If(")
	n.Condition.Accept(p)
	p.write(")\n")
	p.indent++
	n.Then.Accept(p)
	p.indent--
	if n.Else != nil {
		p.writeIndent()
		p.write("Else\n")
		p.indent++
		n.Else.Accept(p)
		p.indent--
	}
}

func (p *TreePrinter) VisitIsExpression(n *ast.IsExpression) {
	p.write("Is(")
	n.Value.Accept(p)
	p.write(")\n")
	p.indent++
	for _, arm := range n.Arms {
		p.writeIndent()
		p.write("Arm: ")
		arm.Pattern.Accept(p)
		if arm.Guard != nil {
			p.write(" if ")
			arm.Guard.Accept(p)
		}
		p.write(" => ")
		arm.Body.Accept(p)
		p.write("\n")
	}
	p.indent--
}

func (p *TreePrinter) VisitAsExpression(n *ast.AsExpression) {
	p.write("As(")
	n.Value.Accept(p)
	p.write(", ")
	n.TargetType.Accept(p)
	p.write(")")
}

func (p *TreePrinter) VisitAwaitExpression(n *ast.AwaitExpression) {
	p.write("Await(")
	n.Value.Accept(p)
	p.write(")")
}

func (p *TreePrinter) VisitArrayLiteral(n *ast.ArrayLiteral) {
	p.write("Array([")
	for i, el := range n.Elements {
		if i > 0 {
			p.write(", ")
		}
		el.Accept(p)
	}
	p.write("])")
}

func (p *TreePrinter) VisitArrayIndexExpression(n *ast.ArrayIndexExpression) {
	p.write("Index(")
	n.Array.Accept(p)
	p.write(", ")
	n.Index.Accept(p)
	p.write(")")
}

func (p *TreePrinter) VisitRangeExpression(n *ast.RangeExpression) {
	p.write("Range(")
	n.Start.Accept(p)
	if n.Inclusive {
		p.write(", inclusive, ")
	} else {
		p.write(", exclusive, ")
	}
	n.End.Accept(p)
	p.write(")")
}

func (p *TreePrinter) VisitStringInterpExpression(n *ast.StringInterpExpression) {
	p.write("StringInterp(")
	for i, part := range n.Parts {
		if i > 0 {
			p.write(", ")
		}
		if part.IsExpr {
			part.Expr.Accept(p)
		} else {
			p.write(fmt.Sprintf("%q", part.Literal))
		}
	}
	p.write(")")
}

func (p *TreePrinter) VisitTryExpression(n *ast.TryExpression) {
	p.write("Try(")
	n.Value.Accept(p)
	p.write(")")
}

func (p *TreePrinter) VisitIdentifierPattern(n *ast.IdentifierPattern) {
	p.write("IdentifierPattern(" + n.Name + ")")
}

func (p *TreePrinter) VisitVariantPattern(n *ast.VariantPattern) {
	p.write("VariantPattern(" + n.EnumName + "::" + n.Variant)
	if len(n.Bindings) > 0 {
		p.write(", [" + strings.Join(n.Bindings, ", ") + "]")
	}
	p.write(")")
}

func (p *TreePrinter) VisitLiteralPattern(n *ast.LiteralPattern) {
	p.write("LiteralPattern(")
	n.Value.Accept(p)
	p.write(")")
}

func (p *TreePrinter) VisitWildcardPattern(n *ast.WildcardPattern) {
	p.write("WildcardPattern")
}

func (p *TreePrinter) VisitNamedTypeExpr(n *ast.NamedTypeExpr) {
	p.write("NamedType(" + n.Name + ")")
}

func (p *TreePrinter) VisitPrimitiveTypeExpr(n *ast.PrimitiveTypeExpr) {
	p.write("PrimitiveType(" + n.Name + ")")
}

func (p *TreePrinter) VisitPointerTypeExpr(n *ast.PointerTypeExpr) {
	p.write("PointerType(")
	n.Elem.Accept(p)
	p.write(")")
}

func (p *TreePrinter) VisitArrayTypeExpr(n *ast.ArrayTypeExpr) {
	p.write("ArrayType(")
	n.Elem.Accept(p)
	if n.Size != nil {
		p.write(fmt.Sprintf("; %d", *n.Size))
	}
	p.write(")")
}

func (p *TreePrinter) VisitFunctionTypeExpr(n *ast.FunctionTypeExpr) {
	p.write("FunctionType([")
	for i, t := range n.Params {
		if i > 0 {
			p.write(", ")
		}
		t.Accept(p)
	}
	p.write("], ")
	n.Return.Accept(p)
	p.write(")")
}

func (p *TreePrinter) VisitGenericInstanceTypeExpr(n *ast.GenericInstanceTypeExpr) {
	p.write("GenericInstanceType(" + n.Name + ", [")
	for i, t := range n.Args {
		if i > 0 {
			p.write(", ")
		}
		t.Accept(p)
	}
	p.write("])")
}
