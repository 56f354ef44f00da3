package cgen

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/funvibe/pawc/internal/ast"
	"github.com/funvibe/pawc/internal/diagnostics"
	"github.com/funvibe/pawc/internal/typesystem"
)

// lowerExpr renders e as a single C expression. Block/if/is expressions
// used in value position are rendered as a GCC/Clang statement
// expression (`({ ...; tmp; })`), matched against the plain-statement
// lowering used when the same node appears in statement position.
func (ec *emitCtx) lowerExpr(e ast.Expression) string {
	switch v := e.(type) {
	case *ast.Identifier:
		return v.Value

	case *ast.IntegerLiteral:
		return fmt.Sprintf("%d", v.Value)

	case *ast.FloatLiteral:
		return fmt.Sprintf("%g", v.Value)

	case *ast.StringLiteral:
		return fmt.Sprintf("%q", v.Value)

	case *ast.CharLiteral:
		return fmt.Sprintf("'%c'", v.Value)

	case *ast.BoolLiteral:
		if v.Value {
			return "true"
		}
		return "false"

	case *ast.BinaryExpression:
		return fmt.Sprintf("(%s %s %s)", ec.lowerExpr(v.Left), v.Operator, ec.lowerExpr(v.Right))

	case *ast.UnaryExpression:
		return fmt.Sprintf("(%s%s)", v.Operator, ec.lowerExpr(v.Right))

	case *ast.CallExpression:
		return ec.lowerCall(v)

	case *ast.StaticMethodCallExpression:
		return ec.lowerStaticMethodCall(v)

	case *ast.FieldAccessExpression:
		return ec.lowerFieldAccess(v)

	case *ast.StructInitExpression:
		return ec.lowerStructInit(v)

	case *ast.EnumVariantExpression:
		return ec.lowerEnumVariant(v)

	case *ast.ArrayLiteral:
		return ec.lowerArrayLiteral(v)

	case *ast.ArrayIndexExpression:
		return fmt.Sprintf("%s[%s]", ec.lowerExpr(v.Array), ec.lowerExpr(v.Index))

	case *ast.AsExpression:
		return fmt.Sprintf("((%s)%s)", cBaseType(ec.simpleBuildType(v.TargetType)), ec.lowerExpr(v.Value))

	case *ast.AwaitExpression:
		// The C backend targets synchronous execution; await is a
		// pass-through since no scheduler exists at this lowering tier.
		return ec.lowerExpr(v.Value)

	case *ast.TryExpression:
		return ec.lowerTry(v)

	case *ast.StringInterpExpression:
		return ec.lowerStringInterp(v)

	case *ast.BlockExpression:
		return ec.lowerBlockAsValue(v)

	case *ast.IfExpression:
		return ec.lowerIfAsValue(v)

	case *ast.IsExpression:
		return ec.lowerIsAsValue(v)

	default:
		ec.g.addError(diagnostics.ErrC002, e, fmt.Sprintf("%T", e))
		return "0"
	}
}

// lowerCall resolves three distinct call shapes sharing CallExpression's
// syntax: an ordinary function call, a bare enum-constructor call
// (`Variant(args)`, resolved against the enum owning that variant name),
// and a method call written as `receiver.method(args)` (whose Callee is
// itself a FieldAccessExpression).
func (ec *emitCtx) lowerCall(ce *ast.CallExpression) string {
	if fa, ok := ce.Callee.(*ast.FieldAccessExpression); ok {
		return ec.lowerMethodCall(fa, ce.Args)
	}

	if id, ok := ce.Callee.(*ast.Identifier); ok {
		if ei, found := ec.g.table.EnumForVariant(id.Value); found {
			_ = ei
			args := make([]string, len(ce.Args))
			for i, a := range ce.Args {
				args[i] = ec.lowerExpr(a)
			}
			return fmt.Sprintf("%s(%s)", enumConstructorName(ei.Name, id.Value), strings.Join(args, ", "))
		}
		args := make([]string, len(ce.Args))
		for i, a := range ce.Args {
			args[i] = ec.lowerExpr(a)
		}
		return fmt.Sprintf("%s(%s)", id.Value, strings.Join(args, ", "))
	}

	args := make([]string, len(ce.Args))
	for i, a := range ce.Args {
		args[i] = ec.lowerExpr(a)
	}
	return fmt.Sprintf("%s(%s)", ec.lowerExpr(ce.Callee), strings.Join(args, ", "))
}

// lowerMethodCall lowers `obj.method(args)` to `T_method(&obj, args)` (or
// `T_method(obj, args)` when obj is already a pointer), resolving T from
// the receiver's recorded type.
func (ec *emitCtx) lowerMethodCall(fa *ast.FieldAccessExpression, callArgs []ast.Expression) string {
	recvT, _ := ec.g.typeMap[fa.Object]
	typeName := ec.namedTypeOf(recvT)

	recv := ec.lowerExpr(fa.Object)
	if !ec.isReceiverPointer(fa.Object, recvT) {
		recv = "&" + recv
	}

	args := []string{recv}
	for _, a := range callArgs {
		args = append(args, ec.lowerExpr(a))
	}
	return fmt.Sprintf("%s(%s)", methodCName(typeName, fa.Field), strings.Join(args, ", "))
}

// isReceiverPointer decides whether obj already evaluates to a pointer
// (so no address-of is needed before the call): true for a recorded
// Pointer type and, as a convention carried through unsubstituted
// generic method bodies, for a bare `self` identifier, which is always
// bound as a pointer.
func (ec *emitCtx) isReceiverPointer(obj ast.Expression, recvT typesystem.Type) bool {
	if isPointerType(recvT) {
		return true
	}
	if id, ok := obj.(*ast.Identifier); ok && id.Value == "self" {
		return true
	}
	return false
}

func (ec *emitCtx) namedTypeOf(t typesystem.Type) string {
	switch v := t.(type) {
	case typesystem.Named:
		return v.Name
	case typesystem.GenericInstance:
		return v.MangledName()
	case typesystem.Pointer:
		return ec.namedTypeOf(v.Elem)
	default:
		return ""
	}
}

// lowerStaticMethodCall lowers `Type<Args>::method(args)`, mangling the
// callee name the same way a generic struct instantiation is mangled so
// it resolves to the matching monomorphized function.
func (ec *emitCtx) lowerStaticMethodCall(sc *ast.StaticMethodCallExpression) string {
	typeName := sc.TypeName
	if len(sc.TypeArgs) > 0 {
		targs := make([]typesystem.Type, len(sc.TypeArgs))
		for i, a := range sc.TypeArgs {
			targs[i] = ec.simpleBuildType(a)
		}
		typeName = typesystem.GenericInstance{Name: sc.TypeName, Args: targs}.MangledName()
	}
	args := make([]string, len(sc.Args))
	for i, a := range sc.Args {
		args[i] = ec.lowerExpr(a)
	}
	return fmt.Sprintf("%s(%s)", methodCName(typeName, sc.MethodName), strings.Join(args, ", "))
}

func (ec *emitCtx) lowerFieldAccess(fa *ast.FieldAccessExpression) string {
	recvT, _ := ec.g.typeMap[fa.Object]
	op := "."
	if ec.isReceiverPointer(fa.Object, recvT) {
		op = "->"
	}
	return fmt.Sprintf("%s%s%s", ec.lowerExpr(fa.Object), op, fa.Field)
}

// lowerStructInit renders a struct literal as a C99 compound literal.
func (ec *emitCtx) lowerStructInit(si *ast.StructInitExpression) string {
	cName := si.TypeName
	if len(si.TypeArgs) > 0 {
		targs := make([]typesystem.Type, len(si.TypeArgs))
		for i, a := range si.TypeArgs {
			targs[i] = ec.simpleBuildType(a)
		}
		cName = typesystem.GenericInstance{Name: si.TypeName, Args: targs}.MangledName()
	}
	fields := make([]string, len(si.Fields))
	for i, f := range si.Fields {
		fields[i] = fmt.Sprintf(".%s = %s", f.Name, ec.lowerExpr(f.Value))
	}
	return fmt.Sprintf("(%s){%s}", cName, strings.Join(fields, ", "))
}

func (ec *emitCtx) lowerEnumVariant(ev *ast.EnumVariantExpression) string {
	enumName := ev.EnumName
	if enumName == "" {
		if ei, ok := ec.g.table.EnumForVariant(ev.Variant); ok {
			enumName = ei.Name
		} else {
			ec.g.addError(diagnostics.ErrC001, ev, ev.Variant)
		}
	}
	args := make([]string, len(ev.Args))
	for i, a := range ev.Args {
		args[i] = ec.lowerExpr(a)
	}
	return fmt.Sprintf("%s(%s)", enumConstructorName(enumName, ev.Variant), strings.Join(args, ", "))
}

// lowerArrayLiteral renders a fixed-size array literal as a C99
// compound literal, which decays to a pointer wherever it is consumed.
func (ec *emitCtx) lowerArrayLiteral(al *ast.ArrayLiteral) string {
	var elemT typesystem.Type = typesystem.Primitive{Kind: typesystem.I32}
	if t, ok := ec.g.typeMap[al]; ok {
		if arr, ok := t.(typesystem.Array); ok {
			elemT = arr.Elem
		}
	}
	elems := make([]string, len(al.Elements))
	for i, e := range al.Elements {
		elems[i] = ec.lowerExpr(e)
	}
	return fmt.Sprintf("(%s[]){%s}", cBaseType(elemT), strings.Join(elems, ", "))
}

// lowerTry lowers the postfix `expr?` error-propagation operator onto a
// Result-style enum tag check: on the error tag, the current function
// returns the error value immediately; otherwise evaluation continues
// with the success payload.
func (ec *emitCtx) lowerTry(te *ast.TryExpression) string {
	tmp := newTempName("__try")
	t, _ := ec.g.typeMap[te.Value]
	typeName := ec.namedTypeOf(t)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "({ %s %s = %s; ", cBaseType(t), tmp, ec.lowerExpr(te.Value))
	fmt.Fprintf(&buf, "if (%s.tag == %s) { return %s; } ", tmp, enumTagConst(typeName, "Err"), tmp)
	fmt.Fprintf(&buf, "%s.data.Ok_value; })", tmp)
	return buf.String()
}

// lowerStringInterp concatenates an interpolated string's literal and
// expression parts with snprintf into a stack buffer, since C has no
// native string-interpolation or concatenation operator.
func (ec *emitCtx) lowerStringInterp(si *ast.StringInterpExpression) string {
	tmp := newTempName("__s")
	var format strings.Builder
	var args []string
	for _, part := range si.Parts {
		if !part.IsExpr {
			format.WriteString(strings.ReplaceAll(part.Literal, "%", "%%"))
			continue
		}
		format.WriteString("%s")
		args = append(args, ec.lowerExpr(part.Expr))
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "({ char %s[256]; snprintf(%s, sizeof(%s), %q", tmp, tmp, tmp, format.String())
	for _, a := range args {
		fmt.Fprintf(&buf, ", %s", a)
	}
	fmt.Fprintf(&buf, "); %s; })", tmp)
	return buf.String()
}

// lowerBlockAsValue wraps a block used in expression position in a
// GCC/Clang statement expression, binding its trailing expression
// statement's value to a fresh temporary.
func (ec *emitCtx) lowerBlockAsValue(b *ast.BlockExpression) string {
	t, _ := ec.g.typeMap[b]
	tmp := newTempName("__bv")

	var buf bytes.Buffer
	buf.WriteString("({ ")
	ec.emitValueCarryingStatements(b.Statements, &buf, t, tmp)
	fmt.Fprintf(&buf, " %s; })", tmp)
	return buf.String()
}

// emitValueCarryingStatements writes b's statements inline (semicolon
// separated, suitable for embedding in a statement expression), binding
// the final expression statement's value into tmp of type t.
func (ec *emitCtx) emitValueCarryingStatements(stmts []ast.Statement, buf *bytes.Buffer, t typesystem.Type, tmp string) {
	fmt.Fprintf(buf, "%s %s; ", cBaseType(t), tmp)
	for i, stmt := range stmts {
		last := i == len(stmts)-1
		if last {
			if es, ok := stmt.(*ast.ExpressionStatement); ok {
				fmt.Fprintf(buf, "%s = %s; ", tmp, ec.lowerExpr(es.Expression))
				continue
			}
		}
		ec.emitStatement(stmt, buf, 0)
	}
}

// lowerIfAsValue lowers an `if` used in expression position (both
// branches required by the type-checker to agree) into a statement
// expression assigning to a shared temporary from whichever branch runs.
func (ec *emitCtx) lowerIfAsValue(ie *ast.IfExpression) string {
	t, _ := ec.g.typeMap[ie]
	tmp := newTempName("__iv")

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "({ %s %s; if (%s) { ", cBaseType(t), tmp, ec.lowerExpr(ie.Condition))
	ec.emitBranchValue(ie.Then, &buf, t, tmp)
	buf.WriteString(" } else { ")
	switch e := ie.Else.(type) {
	case *ast.BlockExpression:
		ec.emitBranchValue(e, &buf, t, tmp)
	case *ast.IfExpression:
		fmt.Fprintf(&buf, "%s = %s; ", tmp, ec.lowerIfAsValue(e))
	case nil:
		// No else branch: only valid when the if is used as a statement,
		// not a value: leave tmp default-initialized.
	}
	fmt.Fprintf(&buf, " } %s; })", tmp)
	return buf.String()
}

func (ec *emitCtx) emitBranchValue(b *ast.BlockExpression, buf *bytes.Buffer, t typesystem.Type, tmp string) {
	stmts := b.Statements
	for i, stmt := range stmts {
		last := i == len(stmts)-1
		if last {
			if es, ok := stmt.(*ast.ExpressionStatement); ok {
				fmt.Fprintf(buf, "%s = %s; ", tmp, ec.lowerExpr(es.Expression))
				continue
			}
		}
		ec.emitStatement(stmt, buf, 0)
	}
}

// lowerIsAsValue lowers a value-position `is` expression to a statement
// expression, switching on the scrutinee's tag for variant patterns or
// falling back to an if/else-if chain for literal/identifier patterns.
func (ec *emitCtx) lowerIsAsValue(ise *ast.IsExpression) string {
	scrutT, _ := ec.g.typeMap[ise.Value]
	resultT, _ := ec.g.typeMap[ise]
	mv := newTempName("__mv")
	mr := newTempName("__mr")

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "({ %s %s = %s; %s %s; ", cBaseType(scrutT), mv, ec.lowerExpr(ise.Value), cBaseType(resultT), mr)

	if ec.hasVariantPatterns(ise) {
		ec.emitVariantSwitch(ise, scrutT, mv, mr, &buf)
	} else {
		ec.emitConditionChain(ise, mv, mr, &buf)
	}

	fmt.Fprintf(&buf, " %s; })", mr)
	return buf.String()
}

func (ec *emitCtx) hasVariantPatterns(ise *ast.IsExpression) bool {
	for _, arm := range ise.Arms {
		if _, ok := arm.Pattern.(*ast.VariantPattern); ok {
			return true
		}
	}
	return false
}

func (ec *emitCtx) emitVariantSwitch(ise *ast.IsExpression, scrutT typesystem.Type, mv, mr string, buf *bytes.Buffer) {
	enumName := ec.namedTypeOf(scrutT)
	tagExpr := mv + ".tag"
	if ei, ok := ec.g.table.Enum(enumName); ok {
		plain := true
		for _, v := range ei.Variants {
			if len(v.Payload) > 0 {
				plain = false
			}
		}
		if plain {
			// A no-payload enum is lowered as the bare tag enum.
			tagExpr = mv
		}
	}
	fmt.Fprintf(buf, "switch (%s) { ", tagExpr)
	for _, arm := range ise.Arms {
		switch p := arm.Pattern.(type) {
		case *ast.VariantPattern:
			variantEnum := p.EnumName
			if variantEnum == "" {
				variantEnum = enumName
			}
			fmt.Fprintf(buf, "case %s: { ", enumTagConst(variantEnum, p.Variant))
			ec.emitVariantBindings(variantEnum, p, mv, buf)
			ec.emitArmBody(arm, mr, buf)
			buf.WriteString("break; } ")
		case *ast.WildcardPattern, *ast.IdentifierPattern:
			fmt.Fprintf(buf, "default: { ")
			if ip, ok := p.(*ast.IdentifierPattern); ok {
				fmt.Fprintf(buf, "%s %s = %s; ", cBaseType(scrutT), ip.Name, mv)
			}
			ec.emitArmBody(arm, mr, buf)
			buf.WriteString("break; } ")
		}
	}
	buf.WriteString("} ")
}

func (ec *emitCtx) emitVariantBindings(enumName string, p *ast.VariantPattern, mv string, buf *bytes.Buffer) {
	ei, ok := ec.g.table.Enum(enumName)
	if !ok {
		return
	}
	variant, ok := ei.Variant(p.Variant)
	if !ok {
		return
	}
	if len(variant.Payload) == 1 && len(p.Bindings) == 1 {
		if p.Bindings[0] != "_" {
			fmt.Fprintf(buf, "%s %s = %s.data.%s_value; ",
				cBaseType(variant.Payload[0]), p.Bindings[0], mv, p.Variant)
		}
		return
	}
	for i, b := range p.Bindings {
		if b == "_" || i >= len(variant.Payload) {
			continue
		}
		fmt.Fprintf(buf, "%s %s = %s.data.%s_value.field%d; ",
			cBaseType(variant.Payload[i]), b, mv, p.Variant, i)
	}
}

func (ec *emitCtx) emitArmBody(arm ast.IsArm, mr string, buf *bytes.Buffer) {
	if arm.Guard != nil {
		fmt.Fprintf(buf, "if (%s) { %s = %s; } ", ec.lowerExpr(arm.Guard), mr, ec.lowerExpr(arm.Body))
		return
	}
	fmt.Fprintf(buf, "%s = %s; ", mr, ec.lowerExpr(arm.Body))
}

// emitConditionChain lowers an `is` over literal/identifier patterns
// (no enum tag to switch on) to an if/else-if chain compared by value.
func (ec *emitCtx) emitConditionChain(ise *ast.IsExpression, mv, mr string, buf *bytes.Buffer) {
	for i, arm := range ise.Arms {
		keyword := "if"
		if i > 0 {
			keyword = "else if"
		}
		switch p := arm.Pattern.(type) {
		case *ast.LiteralPattern:
			fmt.Fprintf(buf, "%s (%s == %s) { ", keyword, mv, ec.lowerExpr(p.Value))
			ec.emitArmBody(arm, mr, buf)
			buf.WriteString("} ")
		case *ast.IdentifierPattern:
			fmt.Fprintf(buf, "else { %s %s = %s; ", cBaseType(typesystem.Primitive{Kind: typesystem.I32}), p.Name, mv)
			ec.emitArmBody(arm, mr, buf)
			buf.WriteString("} ")
		case *ast.WildcardPattern:
			fmt.Fprintf(buf, "else { ")
			ec.emitArmBody(arm, mr, buf)
			buf.WriteString("} ")
		}
	}
}
