package analyzer

import (
	"fmt"
	"strings"

	"github.com/funvibe/pawc/internal/ast"
	"github.com/funvibe/pawc/internal/config"
	"github.com/funvibe/pawc/internal/diagnostics"
	"github.com/funvibe/pawc/internal/symbols"
	"github.com/funvibe/pawc/internal/typesystem"
)

// inferExpr type-checks expr in scope, records its type on the
// analyzer's TypeMap, and returns it. This is the dispatch point for
// every expression kind Paw's grammar produces; unlike the AST's
// Visitor, it returns a value per node, which is why it is a type
// switch rather than a VisitX walk.
func (a *Analyzer) inferExpr(expr ast.Expression, scope *symbols.SymbolTable) typesystem.Type {
	if expr == nil {
		return voidType
	}

	var t typesystem.Type
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		t = typesystem.LiteralDefaultInt
	case *ast.FloatLiteral:
		t = typesystem.LiteralDefaultFloat
	case *ast.StringLiteral:
		t = typesystem.Primitive{Kind: typesystem.Str}
	case *ast.CharLiteral:
		t = typesystem.Primitive{Kind: typesystem.Char}
	case *ast.BoolLiteral:
		t = boolType

	case *ast.Identifier:
		t = a.inferIdentifier(e, scope)

	case *ast.BinaryExpression:
		t = a.inferBinary(e, scope)
	case *ast.UnaryExpression:
		t = a.inferUnary(e, scope)

	case *ast.CallExpression:
		t = a.inferCall(e, scope)
	case *ast.StaticMethodCallExpression:
		t = a.inferStaticMethodCall(e, scope)
	case *ast.FieldAccessExpression:
		t = a.inferFieldAccess(e, scope)
	case *ast.StructInitExpression:
		t = a.inferStructInit(e, scope)
	case *ast.EnumVariantExpression:
		t = a.inferEnumVariant(e, scope)

	case *ast.BlockExpression:
		t = a.checkBlock(e, symbols.NewEnclosedSymbolTable(scope))
	case *ast.IfExpression:
		t = a.inferIf(e, scope)
	case *ast.IsExpression:
		t = a.inferIs(e, scope)
	case *ast.AsExpression:
		t = a.inferAs(e, scope)
	case *ast.AwaitExpression:
		if !a.currentAsync {
			a.addError(diagnostics.ErrA006, e.Token)
		}
		t = a.inferExpr(e.Value, scope)

	case *ast.ArrayLiteral:
		t = a.inferArrayLiteral(e, scope)
	case *ast.ArrayIndexExpression:
		t = a.inferArrayIndex(e, scope)
	case *ast.RangeExpression:
		t = a.inferRange(e, scope)

	case *ast.StringInterpExpression:
		for _, part := range e.Parts {
			if part.IsExpr {
				a.inferExpr(part.Expr, scope)
			}
		}
		t = typesystem.Primitive{Kind: typesystem.Str}

	case *ast.TryExpression:
		t = a.inferTry(e, scope)

	default:
		t = voidType
	}

	a.typeMap[expr] = t
	return t
}

func (a *Analyzer) inferIdentifier(e *ast.Identifier, scope *symbols.SymbolTable) typesystem.Type {
	if e.Value == "_" {
		return voidType
	}
	sym, ok := scope.Resolve(e.Value)
	if !ok {
		a.addError(diagnostics.ErrA001, e.Token, e.Value)
		return voidType
	}
	return sym.Type
}

func (a *Analyzer) inferBinary(e *ast.BinaryExpression, scope *symbols.SymbolTable) typesystem.Type {
	lt := a.inferExpr(e.Left, scope)
	rt := a.inferExpr(e.Right, scope)

	switch e.Operator {
	case "+", "-", "*", "/", "%":
		if !typesEqualOrCompatible(lt, rt) {
			a.addError(diagnostics.ErrA003, e.Token, lt.String(), rt.String())
			return lt
		}
		result := widen(lt, rt)
		if !isNumeric(result) {
			a.addError(diagnostics.ErrA005, e.Token, e.Operator, result.String())
		}
		return result

	case "==", "!=", "<", "<=", ">", ">=":
		if !typesEqualOrCompatible(lt, rt) {
			a.addError(diagnostics.ErrA003, e.Token, lt.String(), rt.String())
		}
		return boolType

	case "&&", "||":
		if !typesystem.Equal(lt, boolType) {
			a.addError(diagnostics.ErrA005, e.Token, e.Operator, lt.String())
		}
		if !typesystem.Equal(rt, boolType) {
			a.addError(diagnostics.ErrA005, e.Token, e.Operator, rt.String())
		}
		return boolType

	default:
		return lt
	}
}

func (a *Analyzer) inferUnary(e *ast.UnaryExpression, scope *symbols.SymbolTable) typesystem.Type {
	rt := a.inferExpr(e.Right, scope)
	switch e.Operator {
	case "!":
		if !typesystem.Equal(rt, boolType) {
			a.addError(diagnostics.ErrA005, e.Token, e.Operator, rt.String())
		}
		return boolType
	case "-":
		if !isNumeric(rt) {
			a.addError(diagnostics.ErrA005, e.Token, e.Operator, rt.String())
		}
		return rt
	default:
		return rt
	}
}

// inferCall resolves either an ordinary function call or, when the
// callee names a known enum variant, an implicit `V(args)` enum
// construction (the bare-constructor aliasing the spec calls out).
func (a *Analyzer) inferCall(e *ast.CallExpression, scope *symbols.SymbolTable) typesystem.Type {
	if ident, ok := e.Callee.(*ast.Identifier); ok {
		if ei, ok2 := a.table.EnumForVariant(ident.Value); ok2 {
			return a.checkEnumConstructorArgs(ei, ident.Value, e, e.Args, scope)
		}

		sym, ok2 := scope.Resolve(ident.Value)
		if !ok2 {
			a.addError(diagnostics.ErrA001, ident.Token, ident.Value)
			for _, arg := range e.Args {
				a.inferExpr(arg, scope)
			}
			return voidType
		}
		fn, isFn := sym.Type.(typesystem.Function)
		argTypes := make([]typesystem.Type, len(e.Args))
		for i, arg := range e.Args {
			argTypes[i] = a.inferExpr(arg, scope)
		}
		if !isFn {
			return voidType
		}
		a.checkArgTypes(e, fn.Params, argTypes, e.Args)
		return fn.Return
	}

	if fa, ok := e.Callee.(*ast.FieldAccessExpression); ok {
		return a.inferMethodCall(fa, e.Args, scope)
	}

	ct := a.inferExpr(e.Callee, scope)
	for _, arg := range e.Args {
		a.inferExpr(arg, scope)
	}
	if fn, ok := ct.(typesystem.Function); ok {
		return fn.Return
	}
	return voidType
}

func (a *Analyzer) checkEnumConstructorArgs(ei *symbols.EnumInfo, variant string, tok ast.Node, args []ast.Expression, scope *symbols.SymbolTable) typesystem.Type {
	v, _ := ei.Variant(variant)
	if len(args) != len(v.Payload) {
		a.addError(diagnostics.ErrA003, tok.Pos(), fmt.Sprintf("%d argument(s)", len(v.Payload)), fmt.Sprintf("%d argument(s)", len(args)))
	}
	for i, arg := range args {
		at := a.inferExpr(arg, scope)
		if i < len(v.Payload) && !typesEqualOrCompatible(at, v.Payload[i]) {
			a.addError(diagnostics.ErrA003, arg.Pos(), v.Payload[i].String(), at.String())
		}
	}
	return typesystem.Named{Name: ei.Name}
}

func (a *Analyzer) checkArgTypes(tok ast.Node, params, args []typesystem.Type, argExprs []ast.Expression) {
	if len(params) != len(args) {
		a.addError(diagnostics.ErrA003, tok.Pos(), fmt.Sprintf("%d argument(s)", len(params)), fmt.Sprintf("%d argument(s)", len(args)))
		return
	}
	for i := range params {
		if !typesEqualOrCompatible(args[i], params[i]) {
			pos := tok.Pos()
			if i < len(argExprs) {
				pos = argExprs[i].Pos()
			}
			a.addError(diagnostics.ErrA003, pos, params[i].String(), args[i].String())
		}
	}
}

func (a *Analyzer) inferMethodCall(fa *ast.FieldAccessExpression, args []ast.Expression, scope *symbols.SymbolTable) typesystem.Type {
	recvT := a.inferExpr(fa.Object, scope)
	typeName := namedTypeName(recvT)
	fn, ok := a.table.Method(typeName, fa.Field)
	argTypes := make([]typesystem.Type, len(args))
	for i, arg := range args {
		argTypes[i] = a.inferExpr(arg, scope)
	}
	if !ok {
		a.addError(diagnostics.ErrA001, fa.Token, typeName+"."+fa.Field)
		return voidType
	}
	a.checkArgTypes(fa, fn.Params, argTypes, args)
	return fn.Return
}

func (a *Analyzer) inferStaticMethodCall(e *ast.StaticMethodCallExpression, scope *symbols.SymbolTable) typesystem.Type {
	fn, ok := a.table.Method(e.TypeName, e.MethodName)
	argTypes := make([]typesystem.Type, len(e.Args))
	for i, arg := range e.Args {
		argTypes[i] = a.inferExpr(arg, scope)
	}
	if !ok {
		a.addError(diagnostics.ErrA001, e.Token, e.TypeName+"::"+e.MethodName)
		return voidType
	}
	a.checkArgTypes(e, fn.Params, argTypes, e.Args)
	if len(e.TypeArgs) == 0 {
		return fn.Return
	}
	args := make([]typesystem.Type, len(e.TypeArgs))
	for i, ta := range e.TypeArgs {
		args[i] = a.buildType(ta, nil)
	}
	return typesystem.GenericInstance{Name: e.TypeName, Args: args}
}

func (a *Analyzer) inferFieldAccess(e *ast.FieldAccessExpression, scope *symbols.SymbolTable) typesystem.Type {
	objT := a.inferExpr(e.Object, scope)
	name := namedTypeName(objT)
	if si, ok := a.table.Struct(name); ok {
		if ft, ok2 := si.FieldType(e.Field); ok2 {
			if len(si.GenericParams) > 0 {
				if gi, ok3 := objT.(typesystem.GenericInstance); ok3 && len(gi.Args) == len(si.GenericParams) {
					subst := make(typesystem.Subst, len(si.GenericParams))
					for i, gp := range si.GenericParams {
						subst[gp] = gi.Args[i]
					}
					return typesystem.Substitute(ft, subst)
				}
			}
			return ft
		}
	}
	a.addError(diagnostics.ErrA001, e.Token, e.Field)
	return voidType
}

func (a *Analyzer) inferStructInit(e *ast.StructInitExpression, scope *symbols.SymbolTable) typesystem.Type {
	si, ok := a.table.Struct(e.TypeName)
	if !ok {
		a.addError(diagnostics.ErrA002, e.Token, e.TypeName)
		for _, f := range e.Fields {
			a.inferExpr(f.Value, scope)
		}
		return typesystem.Named{Name: e.TypeName}
	}

	subst := typesystem.Subst{}
	if len(e.TypeArgs) > 0 && len(si.GenericParams) == len(e.TypeArgs) {
		for i, gp := range si.GenericParams {
			subst[gp] = a.buildType(e.TypeArgs[i], nil)
		}
	}

	for _, f := range e.Fields {
		vt := a.inferExpr(f.Value, scope)
		declared, ok2 := si.FieldType(f.Name)
		if !ok2 {
			a.addError(diagnostics.ErrA001, e.Token, f.Name)
			continue
		}
		expected := declared
		if len(subst) > 0 {
			expected = typesystem.Substitute(declared, subst)
		}
		if !typesEqualOrCompatible(vt, expected) {
			a.addError(diagnostics.ErrA003, f.Value.Pos(), expected.String(), vt.String())
		}
	}

	if len(subst) > 0 {
		args := make([]typesystem.Type, len(si.GenericParams))
		for i, gp := range si.GenericParams {
			args[i] = subst[gp]
		}
		return typesystem.GenericInstance{Name: e.TypeName, Args: args}
	}
	return typesystem.Named{Name: e.TypeName}
}

func (a *Analyzer) inferEnumVariant(e *ast.EnumVariantExpression, scope *symbols.SymbolTable) typesystem.Type {
	var ei *symbols.EnumInfo
	var ok bool
	if e.EnumName != "" {
		ei, ok = a.table.Enum(e.EnumName)
		if !ok {
			a.addError(diagnostics.ErrA002, e.Token, e.EnumName)
		}
	} else {
		ei, ok = a.table.EnumForVariant(e.Variant)
		if !ok {
			a.addError(diagnostics.ErrA001, e.Token, e.Variant)
		}
	}
	for _, arg := range e.Args {
		a.inferExpr(arg, scope)
	}
	if ei == nil {
		return voidType
	}
	return typesystem.Named{Name: ei.Name}
}

// inferTry types the postfix `expr?` error-propagation operator as the
// Ok-variant payload of the scrutinized enum (config's OkCtorName),
// substituting any generic payload against the scrutinee's own type
// arguments when it is a GenericInstance (e.g. Result<i32, i32>'s Ok(T)
// resolves to i32). Codegen extracts the same payload at the value
// level in lowerTry/emitTry.
func (a *Analyzer) inferTry(e *ast.TryExpression, scope *symbols.SymbolTable) typesystem.Type {
	scrutT := a.inferExpr(e.Value, scope)

	var name string
	var args []typesystem.Type
	switch v := scrutT.(type) {
	case typesystem.Named:
		name = v.Name
	case typesystem.GenericInstance:
		name, args = v.Name, v.Args
	default:
		return scrutT
	}

	ei, ok := a.table.Enum(name)
	if !ok {
		return scrutT
	}
	variant, ok := ei.Variant(config.OkCtorName)
	if !ok || len(variant.Payload) == 0 {
		return voidType
	}
	payloadT := variant.Payload[0]
	if args == nil {
		return payloadT
	}
	subst := make(typesystem.Subst, len(ei.GenericParams))
	for i, gp := range ei.GenericParams {
		if i < len(args) {
			subst[gp] = args[i]
		}
	}
	return typesystem.Substitute(payloadT, subst)
}

func (a *Analyzer) inferIf(e *ast.IfExpression, scope *symbols.SymbolTable) typesystem.Type {
	condT := a.inferExpr(e.Condition, scope)
	if !typesystem.Equal(condT, boolType) {
		a.addError(diagnostics.ErrA005, e.Condition.Pos(), "if condition", condT.String())
	}

	thenT := a.checkBlock(e.Then, symbols.NewEnclosedSymbolTable(scope))
	if e.Else == nil {
		// No join is imposed on a missing else: the expression's value
		// outside an else-carrying context is simply void.
		return voidType
	}

	var elseT typesystem.Type
	if elseBlock, ok := e.Else.(*ast.BlockExpression); ok {
		elseT = a.checkBlock(elseBlock, symbols.NewEnclosedSymbolTable(scope))
	} else {
		elseT = a.inferExpr(e.Else, scope)
	}

	if !typesEqualOrCompatible(thenT, elseT) {
		a.addError(diagnostics.ErrA003, e.Token, thenT.String(), elseT.String())
	}
	return thenT
}

func (a *Analyzer) inferIs(e *ast.IsExpression, scope *symbols.SymbolTable) typesystem.Type {
	scrutT := a.inferExpr(e.Value, scope)

	var resultT typesystem.Type
	covered := map[string]bool{}
	hasWildcard := false

	for i, arm := range e.Arms {
		armScope := symbols.NewEnclosedSymbolTable(scope)
		a.bindPattern(arm.Pattern, scrutT, armScope)

		switch p := arm.Pattern.(type) {
		case *ast.VariantPattern:
			covered[p.Variant] = true
		case *ast.WildcardPattern:
			hasWildcard = true
		case *ast.IdentifierPattern:
			hasWildcard = true // a bare binding matches anything, same as `_`
		}

		if arm.Guard != nil {
			a.inferExpr(arm.Guard, armScope)
		}
		armT := a.inferExpr(arm.Body, armScope)
		if i == 0 {
			resultT = armT
		} else if !typesEqualOrCompatible(resultT, armT) {
			a.addError(diagnostics.ErrA003, arm.Body.Pos(), resultT.String(), armT.String())
		}
	}

	if named, ok := scrutT.(typesystem.Named); ok && !hasWildcard {
		if ei, ok2 := a.table.Enum(named.Name); ok2 {
			var missing []string
			for _, v := range ei.Variants {
				if !covered[v.Name] {
					missing = append(missing, v.Name)
				}
			}
			if len(missing) > 0 {
				a.warn(diagnostics.ErrA009, e.Token, named.Name, strings.Join(missing, ", "))
			}
		}
	}

	if resultT == nil {
		resultT = voidType
	}
	return resultT
}

func (a *Analyzer) inferAs(e *ast.AsExpression, scope *symbols.SymbolTable) typesystem.Type {
	vt := a.inferExpr(e.Value, scope)
	target := a.buildType(e.TargetType, nil)
	if !typesystem.Equal(vt, target) && !(isNumeric(vt) && isNumeric(target)) {
		a.addError(diagnostics.ErrA010, e.Token, vt.String(), target.String())
	}
	return target
}

func (a *Analyzer) inferArrayLiteral(e *ast.ArrayLiteral, scope *symbols.SymbolTable) typesystem.Type {
	if len(e.Elements) == 0 {
		zero := 0
		return typesystem.Array{Elem: voidType, Size: &zero}
	}
	elemT := a.inferExpr(e.Elements[0], scope)
	for _, el := range e.Elements[1:] {
		t := a.inferExpr(el, scope)
		if !typesEqualOrCompatible(elemT, t) {
			a.addError(diagnostics.ErrA003, el.Pos(), elemT.String(), t.String())
		}
	}
	n := len(e.Elements)
	return typesystem.Array{Elem: elemT, Size: &n}
}

func (a *Analyzer) inferArrayIndex(e *ast.ArrayIndexExpression, scope *symbols.SymbolTable) typesystem.Type {
	arrT := a.inferExpr(e.Array, scope)
	idxT := a.inferExpr(e.Index, scope)
	if !isInteger(idxT) {
		a.addError(diagnostics.ErrA005, e.Index.Pos(), "array index", idxT.String())
	}
	if arr, ok := arrT.(typesystem.Array); ok {
		return arr.Elem
	}
	return voidType
}

func (a *Analyzer) inferRange(e *ast.RangeExpression, scope *symbols.SymbolTable) typesystem.Type {
	startT := a.inferExpr(e.Start, scope)
	endT := a.inferExpr(e.End, scope)
	if !isInteger(startT) {
		a.addError(diagnostics.ErrA005, e.Start.Pos(), "range bound", startT.String())
	}
	if !isInteger(endT) {
		a.addError(diagnostics.ErrA005, e.End.Pos(), "range bound", endT.String())
	}
	return widen(startT, endT)
}
