package cgen

import (
	"bytes"
	"fmt"

	"github.com/funvibe/pawc/internal/ast"
	"github.com/funvibe/pawc/internal/diagnostics"
	"github.com/funvibe/pawc/internal/typesystem"
)

// emitCtx carries the per-function state statement/expression lowering
// needs: the owning Generator (for typeMap/table lookups) and the
// function's declared return type, used to decide whether a trailing
// expression statement becomes a `return`.
type emitCtx struct {
	g       *Generator
	retType typesystem.Type
}

func (ec *emitCtx) indent(sb *bytes.Buffer, depth int) {
	for i := 0; i < depth; i++ {
		sb.WriteString("    ")
	}
}

// emitFunctionBody lowers a function/method body, rewriting a trailing
// expression statement into a `return` per Paw's expression-oriented
// block semantics, unless the function returns void.
func (ec *emitCtx) emitFunctionBody(b *ast.BlockExpression, sb *bytes.Buffer) {
	ec.emitBlockStatements(b, sb, 1, true)
}

func (ec *emitCtx) emitBlockStatements(b *ast.BlockExpression, sb *bytes.Buffer, depth int, isFunctionBody bool) {
	stmts := b.Statements
	isVoid := ec.retType == nil || typesystem.Equal(ec.retType, typesystem.Primitive{Kind: typesystem.Void})

	for i, stmt := range stmts {
		last := i == len(stmts)-1
		if isFunctionBody && last && !isVoid {
			if es, ok := stmt.(*ast.ExpressionStatement); ok {
				ec.indent(sb, depth)
				fmt.Fprintf(sb, "return %s;\n", ec.lowerExpr(es.Expression))
				continue
			}
		}
		ec.emitStatement(stmt, sb, depth)
	}

	if isFunctionBody && isVoid {
		return
	}
	if isFunctionBody && len(stmts) == 0 {
		ec.indent(sb, depth)
		sb.WriteString("return 0;\n")
	}
}

func (ec *emitCtx) emitStatement(stmt ast.Statement, sb *bytes.Buffer, depth int) {
	ec.indent(sb, depth)
	switch s := stmt.(type) {
	case *ast.LetStatement:
		t := ec.letType(s)
		if s.Init != nil {
			fmt.Fprintf(sb, "%s = %s;\n", cDeclarator(t, s.Name), ec.lowerExpr(s.Init))
		} else {
			fmt.Fprintf(sb, "%s;\n", cDeclarator(t, s.Name))
		}

	case *ast.AssignStatement:
		fmt.Fprintf(sb, "%s = %s;\n", ec.lowerExpr(s.Target), ec.lowerExpr(s.Value))

	case *ast.CompoundAssignStatement:
		fmt.Fprintf(sb, "%s %s= %s;\n", ec.lowerExpr(s.Target), s.Operator, ec.lowerExpr(s.Value))

	case *ast.ReturnStatement:
		if s.Value == nil {
			sb.WriteString("return;\n")
		} else {
			fmt.Fprintf(sb, "return %s;\n", ec.lowerExpr(s.Value))
		}

	case *ast.BreakStatement:
		sb.WriteString("break;\n")

	case *ast.ContinueStatement:
		sb.WriteString("continue;\n")

	case *ast.LoopStatement:
		ec.emitLoop(s, sb, depth)

	case *ast.ExpressionStatement:
		fmt.Fprintf(sb, "%s;\n", ec.lowerExpr(s.Expression))

	case *ast.TypeDeclaration, *ast.ImplDeclaration, *ast.FunctionDeclaration:
		// Nested declarations inside a block body are not part of the C
		// lowering surface; top-level emission already handles them.
	}
}

// letType resolves the declared type of a `let` binding: from the
// initializer's recorded inference result when present, falling back to
// a direct reading of the annotation for an uninitialized binding.
func (ec *emitCtx) letType(s *ast.LetStatement) typesystem.Type {
	if s.Init != nil {
		if t, ok := ec.g.typeMap[s.Init]; ok {
			return t
		}
	}
	if s.TypeAnnot != nil {
		return ec.simpleBuildType(s.TypeAnnot)
	}
	return typesystem.Primitive{Kind: typesystem.I32}
}

// simpleBuildType converts a syntactic type reference directly, without
// resolving generics against an enclosing declaration's parameter list —
// sufficient for the local, already-monomorphized-context lets the
// function-body walk encounters.
func (ec *emitCtx) simpleBuildType(te ast.TypeExpr) typesystem.Type {
	switch t := te.(type) {
	case *ast.PrimitiveTypeExpr:
		return typesystem.Primitive{Kind: typesystem.PrimitiveKind(t.Name)}
	case *ast.NamedTypeExpr:
		return typesystem.Named{Name: t.Name}
	case *ast.PointerTypeExpr:
		return typesystem.Pointer{Elem: ec.simpleBuildType(t.Elem)}
	case *ast.ArrayTypeExpr:
		return typesystem.Array{Elem: ec.simpleBuildType(t.Elem), Size: t.Size}
	case *ast.GenericInstanceTypeExpr:
		args := make([]typesystem.Type, len(t.Args))
		for i, a := range t.Args {
			args[i] = ec.simpleBuildType(a)
		}
		return typesystem.GenericInstance{Name: t.Name, Args: args}
	default:
		return typesystem.Primitive{Kind: typesystem.I32}
	}
}

// emitLoop lowers the three `loop` forms onto their natural C
// counterpart: infinite `for (;;)`, conditional `while`, and range/array
// iteration onto an indexed `for`.
func (ec *emitCtx) emitLoop(s *ast.LoopStatement, sb *bytes.Buffer, depth int) {
	switch {
	case s.IteratorVar != "":
		ec.emitIteratorLoop(s, sb, depth)

	case s.Cond != nil:
		fmt.Fprintf(sb, "while (%s) {\n", ec.lowerExpr(s.Cond))
		ec.emitBlockStatements(s.Body, sb, depth+1, false)
		ec.indent(sb, depth)
		sb.WriteString("}\n")

	default:
		sb.WriteString("for (;;) {\n")
		ec.emitBlockStatements(s.Body, sb, depth+1, false)
		ec.indent(sb, depth)
		sb.WriteString("}\n")
	}
}

func (ec *emitCtx) emitIteratorLoop(s *ast.LoopStatement, sb *bytes.Buffer, depth int) {
	v := s.IteratorVar

	if rng, ok := s.Iterable.(*ast.RangeExpression); ok {
		cmp := "<"
		if rng.Inclusive {
			cmp = "<="
		}
		fmt.Fprintf(sb, "for (int64_t %s = %s; %s %s %s; %s++) {\n",
			v, ec.lowerExpr(rng.Start), v, cmp, ec.lowerExpr(rng.End), v)
		ec.emitBlockStatements(s.Body, sb, depth+1, false)
		ec.indent(sb, depth)
		sb.WriteString("}\n")
		return
	}

	// Array iteration: the iterable is a pointer-decayed array value, so
	// bounds are tracked by a parallel index rather than a fat pointer.
	idx := newTempName("__i")
	elemT := ec.arrayElemType(s.Iterable)
	if ec.arrayLenHint(s.Iterable) == 0 {
		ec.g.addError(diagnostics.ErrC003, s.Iterable)
	}
	fmt.Fprintf(sb, "for (int64_t %s = 0; %s < %d; %s++) {\n",
		idx, idx, ec.arrayLenHint(s.Iterable), idx)
	ec.indent(sb, depth+1)
	fmt.Fprintf(sb, "%s = %s[%s];\n", cDeclarator(elemT, v), ec.lowerExpr(s.Iterable), idx)
	ec.emitBlockStatements(s.Body, sb, depth+1, false)
	ec.indent(sb, depth)
	sb.WriteString("}\n")
}

func (ec *emitCtx) arrayElemType(iterable ast.Expression) typesystem.Type {
	if t, ok := ec.g.typeMap[iterable]; ok {
		if arr, ok := t.(typesystem.Array); ok {
			return arr.Elem
		}
	}
	return typesystem.Primitive{Kind: typesystem.I32}
}

// arrayLenHint extracts the compile-time length off the iterable's
// recorded Array type, falling back to 0 for a dynamically-sized array.
// The analyzer does not reject iteration over an unsized array;
// emitIteratorLoop reports that 0 as ErrC003.
func (ec *emitCtx) arrayLenHint(iterable ast.Expression) int {
	if t, ok := ec.g.typeMap[iterable]; ok {
		if arr, ok := t.(typesystem.Array); ok && arr.Size != nil {
			return *arr.Size
		}
	}
	return 0
}
