package llvmgen

import (
	"fmt"
	"strings"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/funvibe/pawc/internal/ast"
	"github.com/funvibe/pawc/internal/diagnostics"
	"github.com/funvibe/pawc/internal/typesystem"
)

func (g *Generator) typeOf(e ast.Node) typesystem.Type {
	if e == nil {
		return nil
	}
	if t, ok := g.typeMap[e]; ok {
		return t
	}
	return nil
}

func isVoidType(t typesystem.Type) bool {
	p, ok := t.(typesystem.Primitive)
	return ok && p.Kind == typesystem.Void
}

func isFloatType(t typesystem.Type) bool {
	p, ok := t.(typesystem.Primitive)
	return ok && (p.Kind == typesystem.F32 || p.Kind == typesystem.F64)
}

func isUnsignedType(t typesystem.Type) bool {
	p, ok := t.(typesystem.Primitive)
	if !ok {
		return false
	}
	switch p.Kind {
	case typesystem.U8, typesystem.U16, typesystem.U32, typesystem.U64, typesystem.U128:
		return true
	}
	return false
}

func (g *Generator) namedTypeOf(t typesystem.Type) string {
	switch v := t.(type) {
	case typesystem.Named:
		return v.Name
	case typesystem.GenericInstance:
		return v.MangledName()
	case typesystem.Pointer:
		return g.namedTypeOf(v.Elem)
	default:
		return ""
	}
}

// isReceiverPointer decides whether obj already evaluates to a pointer:
// true for a recorded Pointer type and, as a convention carried through
// unsubstituted generic method bodies, for a bare `self` identifier,
// which is always bound as a pointer.
func (g *Generator) isReceiverPointer(obj ast.Expression, t typesystem.Type) bool {
	if _, ok := t.(typesystem.Pointer); ok {
		return true
	}
	if id, ok := obj.(*ast.Identifier); ok && id.Value == "self" {
		return true
	}
	return false
}

func fieldIndex(names []string, field string) int {
	for i, n := range names {
		if n == field {
			return i
		}
	}
	return 0
}

// zeroValue builds a zero/default constant of t's LLVM representation,
// used for the implicit fallback return of an empty or void-discarded
// function body.
func (g *Generator) zeroValue(t typesystem.Type) value.Value {
	lt := g.llvmType(t)
	switch v := lt.(type) {
	case *types.FloatType:
		return constant.NewFloat(v, 0)
	case *types.PointerType:
		return constant.NewNull(v)
	case *types.IntType:
		return constant.NewInt(v, 0)
	case *types.VoidType:
		return nil
	default:
		return constant.NewZeroInitializer(lt)
	}
}

func (g *Generator) narrowToI1(v value.Value) value.Value {
	if v.Type().Equal(types.I1) {
		return v
	}
	it, ok := v.Type().(*types.IntType)
	if !ok {
		return v
	}
	return g.block.NewICmp(enum.IPredNE, v, constant.NewInt(it, 0))
}

func (g *Generator) zextToI8(v value.Value) value.Value {
	if v.Type().Equal(types.I8) {
		return v
	}
	return g.block.NewZExt(v, types.I8)
}

// emitLValueAddr resolves e to the memory address backing it (for an
// assignment target, a compound-assignment read-modify-write, or a
// `&expr` address-of), along with the Paw type stored there.
func (g *Generator) emitLValueAddr(e ast.Expression) (value.Value, typesystem.Type) {
	switch v := e.(type) {
	case *ast.Identifier:
		return g.vars[v.Value], g.localTypes[v.Value]
	case *ast.FieldAccessExpression:
		return g.emitFieldAddr(v)
	case *ast.ArrayIndexExpression:
		return g.emitIndexAddr(v)
	default:
		return nil, nil
	}
}

func (g *Generator) emitFieldAddr(fa *ast.FieldAccessExpression) (value.Value, typesystem.Type) {
	recvT := g.typeOf(fa.Object)
	typeName := g.namedTypeOf(recvT)
	si, ok := g.table.Struct(typeName)
	if !ok {
		return nil, nil
	}
	idx := fieldIndex(si.FieldNames, fa.Field)
	fieldT := si.FieldTypes[fa.Field]

	structLLVM := g.structOrEnumType(typeName)
	var base value.Value
	if g.isReceiverPointer(fa.Object, recvT) {
		base = g.emitExpr(fa.Object)
	} else {
		base, _ = g.emitLValueAddr(fa.Object)
	}
	if base == nil {
		return nil, fieldT
	}
	addr := g.block.NewGetElementPtr(structLLVM, base,
		constant.NewInt(types.I64, 0), constant.NewInt(types.I32, int64(idx)))
	return addr, fieldT
}

func (g *Generator) emitIndexAddr(ai *ast.ArrayIndexExpression) (value.Value, typesystem.Type) {
	arrT := g.typeOf(ai.Array)
	elemT := typesystem.Type(typesystem.Primitive{Kind: typesystem.I32})
	if arr, ok := arrT.(typesystem.Array); ok {
		elemT = arr.Elem
	}
	idx := g.emitExpr(ai.Index)

	if arr, ok := arrT.(typesystem.Array); ok && arr.Size != nil {
		base, _ := g.emitLValueAddr(ai.Array)
		if base == nil {
			return nil, elemT
		}
		addr := g.block.NewGetElementPtr(g.llvmType(arrT), base, constant.NewInt(types.I64, 0), idx)
		return addr, elemT
	}

	// Pointer-decayed array: the array expression already evaluates to an
	// element pointer.
	base := g.emitExpr(ai.Array)
	addr := g.block.NewGetElementPtr(g.llvmType(elemT), base, idx)
	return addr, elemT
}

// emitExpr renders e as an LLVM value, appending whatever instructions
// it needs to the current block.
func (g *Generator) emitExpr(e ast.Expression) value.Value {
	switch v := e.(type) {
	case *ast.Identifier:
		addr, ok := g.vars[v.Value]
		if !ok {
			g.addError(diagnostics.ErrC002, e, v.Value)
			return g.zeroValue(g.typeOf(e))
		}
		return g.block.NewLoad(g.llvmType(g.localTypes[v.Value]), addr)

	case *ast.IntegerLiteral:
		it, ok := g.llvmType(g.typeOf(v)).(*types.IntType)
		if !ok {
			it = types.I32
		}
		return constant.NewInt(it, v.Value)

	case *ast.FloatLiteral:
		ft, ok := g.llvmType(g.typeOf(v)).(*types.FloatType)
		if !ok {
			ft = types.Double
		}
		return constant.NewFloat(ft, v.Value)

	case *ast.StringLiteral:
		return g.emitStringConstant(v.Value)

	case *ast.CharLiteral:
		return constant.NewInt(types.I8, int64(v.Value))

	case *ast.BoolLiteral:
		if v.Value {
			return constant.NewInt(types.I8, 1)
		}
		return constant.NewInt(types.I8, 0)

	case *ast.BinaryExpression:
		return g.emitBinaryExpr(v)

	case *ast.UnaryExpression:
		return g.emitUnary(v)

	case *ast.CallExpression:
		return g.emitCall(v)

	case *ast.StaticMethodCallExpression:
		return g.emitStaticMethodCall(v)

	case *ast.FieldAccessExpression:
		addr, fieldT := g.emitFieldAddr(v)
		if addr == nil {
			return g.zeroValue(fieldT)
		}
		return g.block.NewLoad(g.llvmType(fieldT), addr)

	case *ast.StructInitExpression:
		return g.emitStructInit(v)

	case *ast.EnumVariantExpression:
		return g.emitEnumVariantExpr(v)

	case *ast.ArrayLiteral:
		return g.emitArrayLiteral(v)

	case *ast.ArrayIndexExpression:
		addr, elemT := g.emitIndexAddr(v)
		if addr == nil {
			return g.zeroValue(elemT)
		}
		return g.block.NewLoad(g.llvmType(elemT), addr)

	case *ast.AsExpression:
		return g.emitAs(v)

	case *ast.AwaitExpression:
		// This backend targets synchronous execution; await is a
		// pass-through since no scheduler exists at this lowering tier.
		return g.emitExpr(v.Value)

	case *ast.TryExpression:
		return g.emitTry(v)

	case *ast.StringInterpExpression:
		return g.emitStringInterp(v)

	case *ast.BlockExpression:
		return g.emitValueBlock(v)

	case *ast.IfExpression:
		return g.emitIfAsValue(v)

	case *ast.IsExpression:
		return g.emitIsAsValue(v)

	default:
		g.addError(diagnostics.ErrC002, e, fmt.Sprintf("%T", e))
		return g.zeroValue(g.typeOf(e))
	}
}

func (g *Generator) emitUnary(v *ast.UnaryExpression) value.Value {
	switch v.Operator {
	case "-":
		rhs := g.emitExpr(v.Right)
		if isFloatType(g.typeOf(v.Right)) {
			ft := rhs.Type().(*types.FloatType)
			return g.block.NewFSub(constant.NewFloat(ft, 0), rhs)
		}
		it := rhs.Type().(*types.IntType)
		return g.block.NewSub(constant.NewInt(it, 0), rhs)

	case "!":
		i1 := g.narrowToI1(g.emitExpr(v.Right))
		return g.zextToI8(g.block.NewXor(i1, constant.True))

	case "~":
		rhs := g.emitExpr(v.Right)
		it := rhs.Type().(*types.IntType)
		return g.block.NewXor(rhs, constant.NewInt(it, -1))

	case "&":
		addr, _ := g.emitLValueAddr(v.Right)
		return addr

	case "*":
		ptr := g.emitExpr(v.Right)
		elemT := g.typeOf(v)
		return g.block.NewLoad(g.llvmType(elemT), ptr)

	default:
		return g.emitExpr(v.Right)
	}
}

func (g *Generator) emitBinaryExpr(be *ast.BinaryExpression) value.Value {
	switch be.Operator {
	case "&&":
		return g.emitLogicalAnd(be.Left, be.Right)
	case "||":
		return g.emitLogicalOr(be.Left, be.Right)
	default:
		lhs := g.emitExpr(be.Left)
		rhs := g.emitExpr(be.Right)
		t := g.typeOf(be.Left)
		if t == nil {
			t = g.typeOf(be.Right)
		}
		return g.emitBinaryOp(be.Operator, lhs, rhs, t)
	}
}

func (g *Generator) emitLogicalAnd(leftE, rightE ast.Expression) value.Value {
	lhs := g.narrowToI1(g.emitExpr(leftE))
	startBlock := g.block
	rhsBlock := g.curFunc.NewBlock(newTempName("andrhs"))
	mergeBlock := g.curFunc.NewBlock(newTempName("andend"))
	g.block.NewCondBr(lhs, rhsBlock, mergeBlock)

	g.block = rhsBlock
	rhs := g.narrowToI1(g.emitExpr(rightE))
	rhsEnd := g.block
	rhsEnd.NewBr(mergeBlock)

	g.block = mergeBlock
	phi := mergeBlock.NewPhi(ir.NewIncoming(constant.False, startBlock), ir.NewIncoming(rhs, rhsEnd))
	return g.zextToI8(phi)
}

func (g *Generator) emitLogicalOr(leftE, rightE ast.Expression) value.Value {
	lhs := g.narrowToI1(g.emitExpr(leftE))
	startBlock := g.block
	rhsBlock := g.curFunc.NewBlock(newTempName("orrhs"))
	mergeBlock := g.curFunc.NewBlock(newTempName("orend"))
	g.block.NewCondBr(lhs, mergeBlock, rhsBlock)

	g.block = rhsBlock
	rhs := g.narrowToI1(g.emitExpr(rightE))
	rhsEnd := g.block
	rhsEnd.NewBr(mergeBlock)

	g.block = mergeBlock
	phi := mergeBlock.NewPhi(ir.NewIncoming(constant.True, startBlock), ir.NewIncoming(rhs, rhsEnd))
	return g.zextToI8(phi)
}

func (g *Generator) emitBinaryOp(op string, lhs, rhs value.Value, operandT typesystem.Type) value.Value {
	isFloat := isFloatType(operandT)
	unsigned := isUnsignedType(operandT)

	switch op {
	case "+":
		if isFloat {
			return g.block.NewFAdd(lhs, rhs)
		}
		return g.block.NewAdd(lhs, rhs)
	case "-":
		if isFloat {
			return g.block.NewFSub(lhs, rhs)
		}
		return g.block.NewSub(lhs, rhs)
	case "*":
		if isFloat {
			return g.block.NewFMul(lhs, rhs)
		}
		return g.block.NewMul(lhs, rhs)
	case "/":
		if isFloat {
			return g.block.NewFDiv(lhs, rhs)
		}
		if unsigned {
			return g.block.NewUDiv(lhs, rhs)
		}
		return g.block.NewSDiv(lhs, rhs)
	case "%":
		if isFloat {
			return g.block.NewFRem(lhs, rhs)
		}
		if unsigned {
			return g.block.NewURem(lhs, rhs)
		}
		return g.block.NewSRem(lhs, rhs)
	case "&":
		return g.block.NewAnd(lhs, rhs)
	case "|":
		return g.block.NewOr(lhs, rhs)
	case "^":
		return g.block.NewXor(lhs, rhs)
	case "<<":
		return g.block.NewShl(lhs, rhs)
	case ">>":
		if unsigned {
			return g.block.NewLShr(lhs, rhs)
		}
		return g.block.NewAShr(lhs, rhs)
	case "==", "!=", "<", "<=", ">", ">=":
		return g.zextToI8(g.emitComparison(op, lhs, rhs, isFloat, unsigned))
	default:
		return lhs
	}
}

func (g *Generator) emitComparison(op string, lhs, rhs value.Value, isFloat, unsigned bool) value.Value {
	if isFloat {
		var pred enum.FPred
		switch op {
		case "==":
			pred = enum.FPredOEQ
		case "!=":
			pred = enum.FPredONE
		case "<":
			pred = enum.FPredOLT
		case "<=":
			pred = enum.FPredOLE
		case ">":
			pred = enum.FPredOGT
		case ">=":
			pred = enum.FPredOGE
		}
		return g.block.NewFCmp(pred, lhs, rhs)
	}

	var pred enum.IPred
	switch op {
	case "==":
		pred = enum.IPredEQ
	case "!=":
		pred = enum.IPredNE
	case "<":
		if unsigned {
			pred = enum.IPredULT
		} else {
			pred = enum.IPredSLT
		}
	case "<=":
		if unsigned {
			pred = enum.IPredULE
		} else {
			pred = enum.IPredSLE
		}
	case ">":
		if unsigned {
			pred = enum.IPredUGT
		} else {
			pred = enum.IPredSGT
		}
	case ">=":
		if unsigned {
			pred = enum.IPredUGE
		} else {
			pred = enum.IPredSGE
		}
	}
	return g.block.NewICmp(pred, lhs, rhs)
}

func (g *Generator) emitAs(ae *ast.AsExpression) value.Value {
	val := g.emitExpr(ae.Value)
	srcT := g.typeOf(ae.Value)
	dstT := g.simpleBuildType(ae.TargetType)
	return g.emitCast(val, srcT, dstT)
}

func (g *Generator) emitCast(val value.Value, srcT, dstT typesystem.Type) value.Value {
	dstLLVM := g.llvmType(dstT)
	if val.Type().Equal(dstLLVM) {
		return val
	}
	srcFloat := isFloatType(srcT)
	dstFloat := isFloatType(dstT)

	switch {
	case srcFloat && dstFloat:
		dft := dstLLVM.(*types.FloatType)
		if dft.Equal(types.Double) {
			return g.block.NewFPExt(val, types.Double)
		}
		return g.block.NewFPTrunc(val, types.Float)

	case srcFloat && !dstFloat:
		dit := dstLLVM.(*types.IntType)
		if isUnsignedType(dstT) {
			return g.block.NewFPToUI(val, dit)
		}
		return g.block.NewFPToSI(val, dit)

	case !srcFloat && dstFloat:
		dft := dstLLVM.(*types.FloatType)
		if isUnsignedType(srcT) {
			return g.block.NewUIToFP(val, dft)
		}
		return g.block.NewSIToFP(val, dft)

	default:
		sit, sok := val.Type().(*types.IntType)
		dit, dok := dstLLVM.(*types.IntType)
		if !sok || !dok {
			return val
		}
		if sit.BitSize == dit.BitSize {
			return val
		}
		if sit.BitSize > dit.BitSize {
			return g.block.NewTrunc(val, dit)
		}
		if isUnsignedType(srcT) {
			return g.block.NewZExt(val, dit)
		}
		return g.block.NewSExt(val, dit)
	}
}

// emitCall resolves CallExpression's three call shapes: an ordinary
// function call, a bare enum-constructor call (`Variant(args)`,
// resolved against the enum owning that variant name), and a method
// call written as `receiver.method(args)` (Callee a FieldAccessExpression).
func (g *Generator) emitCall(ce *ast.CallExpression) value.Value {
	if fa, ok := ce.Callee.(*ast.FieldAccessExpression); ok {
		return g.emitMethodCall(fa, ce.Args)
	}

	if id, ok := ce.Callee.(*ast.Identifier); ok {
		if ei, found := g.table.EnumForVariant(id.Value); found {
			return g.emitEnumConstruct(ce, ei.Name, id.Value, ce.Args)
		}
		fn, ok := g.functions[id.Value]
		if !ok {
			g.addError(diagnostics.ErrC002, ce, id.Value)
			return g.zeroValue(g.typeOf(ce))
		}
		args := make([]value.Value, len(ce.Args))
		for i, a := range ce.Args {
			args[i] = g.emitExpr(a)
		}
		return g.block.NewCall(fn, args...)
	}

	return g.zeroValue(g.typeOf(ce))
}

func (g *Generator) emitMethodCall(fa *ast.FieldAccessExpression, callArgs []ast.Expression) value.Value {
	recvT := g.typeOf(fa.Object)
	typeName := g.namedTypeOf(recvT)

	var recv value.Value
	if g.isReceiverPointer(fa.Object, recvT) {
		recv = g.emitExpr(fa.Object)
	} else {
		recv, _ = g.emitLValueAddr(fa.Object)
	}

	fn, ok := g.functions[methodLLVMName(typeName, fa.Field)]
	if !ok {
		g.addError(diagnostics.ErrC002, fa, fa.Field)
		return g.zeroValue(nil)
	}
	args := make([]value.Value, 0, len(callArgs)+1)
	args = append(args, recv)
	for _, a := range callArgs {
		args = append(args, g.emitExpr(a))
	}
	return g.block.NewCall(fn, args...)
}

func (g *Generator) emitStaticMethodCall(sc *ast.StaticMethodCallExpression) value.Value {
	typeName := sc.TypeName
	if len(sc.TypeArgs) > 0 {
		targs := make([]typesystem.Type, len(sc.TypeArgs))
		for i, a := range sc.TypeArgs {
			targs[i] = g.simpleBuildType(a)
		}
		typeName = typesystem.GenericInstance{Name: sc.TypeName, Args: targs}.MangledName()
	}
	fn, ok := g.functions[methodLLVMName(typeName, sc.MethodName)]
	if !ok {
		g.addError(diagnostics.ErrC002, sc, sc.MethodName)
		return g.zeroValue(g.typeOf(sc))
	}
	args := make([]value.Value, len(sc.Args))
	for i, a := range sc.Args {
		args[i] = g.emitExpr(a)
	}
	return g.block.NewCall(fn, args...)
}

func (g *Generator) emitStructInit(si *ast.StructInitExpression) value.Value {
	cName := si.TypeName
	if len(si.TypeArgs) > 0 {
		targs := make([]typesystem.Type, len(si.TypeArgs))
		for i, a := range si.TypeArgs {
			targs[i] = g.simpleBuildType(a)
		}
		cName = typesystem.GenericInstance{Name: si.TypeName, Args: targs}.MangledName()
	}
	st, ok := g.structTypes[cName]
	if !ok {
		return g.zeroValue(nil)
	}
	info, _ := g.table.Struct(si.TypeName)

	var agg value.Value = constant.NewZeroInitializer(st)
	for _, f := range si.Fields {
		idx := 0
		if info != nil {
			idx = fieldIndex(info.FieldNames, f.Name)
		}
		agg = g.block.NewInsertValue(agg, g.emitExpr(f.Value), uint64(idx))
	}
	return agg
}

// variantInfo returns a variant's declaration-order tag index (used
// consistently as both the constructed and matched-against tag value)
// and its payload types.
func (g *Generator) variantInfo(enumName, variant string) (int, []typesystem.Type) {
	ei, ok := g.table.Enum(enumName)
	if !ok {
		return 0, nil
	}
	for i, v := range ei.Variants {
		if v.Name == variant {
			return i, v.Payload
		}
	}
	return 0, nil
}

func (g *Generator) emitEnumVariantExpr(ev *ast.EnumVariantExpression) value.Value {
	enumName := ev.EnumName
	if enumName == "" {
		if ei, ok := g.table.EnumForVariant(ev.Variant); ok {
			enumName = ei.Name
		} else {
			g.addError(diagnostics.ErrC001, ev, ev.Variant)
			return g.zeroValue(nil)
		}
	}
	return g.emitEnumConstruct(ev, enumName, ev.Variant, ev.Args)
}

func (g *Generator) emitEnumConstruct(tok ast.Node, enumName, variant string, argExprs []ast.Expression) value.Value {
	enumLLVM, ok := g.enumTypes[enumName]
	if !ok {
		g.addError(diagnostics.ErrC001, tok, variant)
		return g.zeroValue(nil)
	}
	idx, _ := g.variantInfo(enumName, variant)
	args := make([]value.Value, len(argExprs))
	for i, a := range argExprs {
		args[i] = g.emitExpr(a)
	}
	return g.buildEnumValue(enumLLVM, idx, args)
}

// buildEnumValue materializes a tagged-union enum value by writing
// through a temporary alloca — LLVM has no union type, so a
// variant's payload is stored into the data blob via a bitcast pointer
// rather than an aggregate insert, mirroring how a real C union write
// works at the memory level.
func (g *Generator) buildEnumValue(enumLLVM *types.StructType, tag int, payloads []value.Value) value.Value {
	addr := g.block.NewAlloca(enumLLVM)
	addr.SetName(newTempName("enumlit"))
	tagPtr := g.block.NewGetElementPtr(enumLLVM, addr, constant.NewInt(types.I64, 0), constant.NewInt(types.I32, 0))
	g.block.NewStore(constant.NewInt(types.I32, int64(tag)), tagPtr)

	if len(payloads) > 0 {
		dataPtr := g.block.NewGetElementPtr(enumLLVM, addr, constant.NewInt(types.I64, 0), constant.NewInt(types.I32, 1))
		if len(payloads) == 1 {
			casted := g.block.NewBitCast(dataPtr, types.NewPointer(payloads[0].Type()))
			g.block.NewStore(payloads[0], casted)
		} else {
			fieldTypes := make([]types.Type, len(payloads))
			for i, p := range payloads {
				fieldTypes[i] = p.Type()
			}
			structT := types.NewStruct(fieldTypes...)
			var agg value.Value = constant.NewZeroInitializer(structT)
			for i, p := range payloads {
				agg = g.block.NewInsertValue(agg, p, uint64(i))
			}
			casted := g.block.NewBitCast(dataPtr, types.NewPointer(structT))
			g.block.NewStore(agg, casted)
		}
	}

	return g.block.NewLoad(enumLLVM, addr)
}

// extractPayload reads a variant's payload back out of an already
// materialized enum value by the inverse of buildEnumValue's write:
// spill to a temp alloca, bitcast the data blob to the payload's real
// type, and load (or load-then-extract for a multi-field payload).
func (g *Generator) extractPayload(aggVal value.Value, enumLLVM *types.StructType, payload []typesystem.Type, fieldIdx int) value.Value {
	addr := g.block.NewAlloca(enumLLVM)
	addr.SetName(newTempName("enumspill"))
	g.block.NewStore(aggVal, addr)
	dataPtr := g.block.NewGetElementPtr(enumLLVM, addr, constant.NewInt(types.I64, 0), constant.NewInt(types.I32, 1))

	if len(payload) == 1 {
		pt := g.llvmType(payload[0])
		casted := g.block.NewBitCast(dataPtr, types.NewPointer(pt))
		return g.block.NewLoad(pt, casted)
	}

	fieldTypes := make([]types.Type, len(payload))
	for i, p := range payload {
		fieldTypes[i] = g.llvmType(p)
	}
	structT := types.NewStruct(fieldTypes...)
	casted := g.block.NewBitCast(dataPtr, types.NewPointer(structT))
	full := g.block.NewLoad(structT, casted)
	return g.block.NewExtractValue(full, uint64(fieldIdx))
}

func (g *Generator) emitArrayLiteral(al *ast.ArrayLiteral) value.Value {
	t := g.typeOf(al)
	elemT := typesystem.Type(typesystem.Primitive{Kind: typesystem.I32})
	if arr, ok := t.(typesystem.Array); ok {
		elemT = arr.Elem
	}
	arrLLVM := types.NewArray(uint64(len(al.Elements)), g.llvmType(elemT))
	var agg value.Value = constant.NewZeroInitializer(arrLLVM)
	for i, e := range al.Elements {
		agg = g.block.NewInsertValue(agg, g.emitExpr(e), uint64(i))
	}
	return agg
}

// lowerTry-equivalent: lowers the postfix `expr?` error-propagation
// operator onto an assumed two-variant Ok/Err tagged-union shape,
// returning the enclosing function immediately on the error tag —
// mirroring the C backend's same documented simplification.
func (g *Generator) emitTry(te *ast.TryExpression) value.Value {
	val := g.emitExpr(te.Value)
	t := g.typeOf(te.Value)
	enumName := g.namedTypeOf(t)
	enumLLVM, ok := g.enumTypes[enumName]
	if !ok {
		return val
	}
	errIdx, _ := g.variantInfo(enumName, "Err")
	okIdx, okPayload := g.variantInfo(enumName, "Ok")
	_ = okIdx

	tag := g.block.NewExtractValue(val, 0)
	isErr := g.block.NewICmp(enum.IPredEQ, tag, constant.NewInt(types.I32, int64(errIdx)))

	errBlock := g.curFunc.NewBlock(newTempName("tryerr"))
	okBlock := g.curFunc.NewBlock(newTempName("tryok"))
	g.block.NewCondBr(isErr, errBlock, okBlock)

	g.block = errBlock
	g.block.NewRet(val)

	g.block = okBlock
	if len(okPayload) == 0 {
		return nil
	}
	return g.extractPayload(val, enumLLVM, okPayload, 0)
}

func (g *Generator) snprintfFunc() *ir.Func {
	if f, ok := g.functions["snprintf"]; ok {
		return f
	}
	f := g.module.NewFunc("snprintf", types.I32,
		ir.NewParam("", types.NewPointer(types.I8)), ir.NewParam("", types.I64))
	f.Sig.Variadic = true
	g.functions["snprintf"] = f
	return f
}

// emitStringConstant interns s as a fresh global char-array constant and
// returns a pointer to its first byte — the standard LLVM pattern for a
// string literal, there being no "string" value kind of its own.
func (g *Generator) emitStringConstant(s string) value.Value {
	data := constant.NewCharArrayFromString(s + "\x00")
	global := g.module.NewGlobalDef(newTempName("str"), data)
	global.Immutable = true
	zero := constant.NewInt(types.I64, 0)
	return g.block.NewGetElementPtr(data.Type(), global, zero, zero)
}

// emitStringInterp concatenates an interpolated string's literal and
// expression parts via a snprintf call into a stack buffer, mirroring
// the C backend's approach (including its simplification of always
// formatting an interpolated part with %s regardless of its real type).
func (g *Generator) emitStringInterp(si *ast.StringInterpExpression) value.Value {
	var format strings.Builder
	var args []value.Value
	for _, part := range si.Parts {
		if !part.IsExpr {
			format.WriteString(strings.ReplaceAll(part.Literal, "%", "%%"))
			continue
		}
		format.WriteString("%s")
		args = append(args, g.emitExpr(part.Expr))
	}

	bufT := types.NewArray(256, types.I8)
	bufAddr := g.block.NewAlloca(bufT)
	bufAddr.SetName(newTempName("sbuf"))
	bufPtr := g.block.NewGetElementPtr(bufT, bufAddr, constant.NewInt(types.I64, 0), constant.NewInt(types.I64, 0))

	callArgs := []value.Value{bufPtr, constant.NewInt(types.I64, 256), g.emitStringConstant(format.String())}
	callArgs = append(callArgs, args...)
	g.block.NewCall(g.snprintfFunc(), callArgs...)
	return bufPtr
}

// emitValueBlock executes b's statements in the current block and
// returns its trailing expression statement's value (or nil for a
// block with no such trailing expression) — used for an if-branch or
// is-arm body, where the caller owns the cross-block merge.
func (g *Generator) emitValueBlock(b *ast.BlockExpression) value.Value {
	stmts := b.Statements
	for i, stmt := range stmts {
		last := i == len(stmts)-1
		if last {
			if es, ok := stmt.(*ast.ExpressionStatement); ok {
				return g.emitExpr(es.Expression)
			}
		}
		g.emitStatement(stmt)
	}
	return nil
}

// emitIfAsValue lowers an `if` used in expression position into three
// blocks with a real PHI node joining whichever branch's value reaches
// the merge block — unlike a naive "return whichever branch ran"
// shortcut, this holds even when nested control flow inside a branch
// changes which block the branch actually falls out of.
func (g *Generator) emitIfAsValue(ie *ast.IfExpression) value.Value {
	resultT := g.typeOf(ie)
	cond := g.narrowToI1(g.emitExpr(ie.Condition))

	thenBlock := g.curFunc.NewBlock(newTempName("ifthen"))
	mergeBlock := g.curFunc.NewBlock(newTempName("ifend"))
	elseBlock := mergeBlock
	if ie.Else != nil {
		elseBlock = g.curFunc.NewBlock(newTempName("ifelse"))
	}
	g.block.NewCondBr(cond, thenBlock, elseBlock)

	g.block = thenBlock
	thenVal := g.emitValueBlock(ie.Then)
	thenEnd := g.block
	if thenEnd.Term == nil {
		thenEnd.NewBr(mergeBlock)
	}

	var elseVal value.Value
	var elseEnd *ir.Block
	if ie.Else != nil {
		g.block = elseBlock
		switch e := ie.Else.(type) {
		case *ast.BlockExpression:
			elseVal = g.emitValueBlock(e)
		case *ast.IfExpression:
			elseVal = g.emitIfAsValue(e)
		}
		elseEnd = g.block
		if elseEnd.Term == nil {
			elseEnd.NewBr(mergeBlock)
		}
	}

	g.block = mergeBlock
	if resultT == nil || isVoidType(resultT) || ie.Else == nil || thenVal == nil || elseVal == nil {
		return nil
	}
	return mergeBlock.NewPhi(ir.NewIncoming(thenVal, thenEnd), ir.NewIncoming(elseVal, elseEnd))
}

// emitIsAsValue lowers a value-position `is` expression via a
// result-slot alloca rather than an N-way PHI: every arm body stores its
// value into the slot before branching to a shared merge block, which
// then loads it. Semantically equivalent to an N-way PHI and far
// simpler to get right when an arm's body itself contains nested
// control flow (the kind of case a fixed two-predecessor PHI can't
// describe without tracking every arm's true exit block).
func (g *Generator) emitIsAsValue(ise *ast.IsExpression) value.Value {
	resultT := g.typeOf(ise)
	scrutVal := g.emitExpr(ise.Value)
	scrutT := g.typeOf(ise.Value)

	resultLLVM := g.llvmType(resultT)
	resultAddr := g.block.NewAlloca(resultLLVM)
	resultAddr.SetName(newTempName("mr"))
	mergeBlock := g.curFunc.NewBlock(newTempName("ismerge"))

	if g.hasVariantPatterns(ise) {
		g.emitVariantSwitch(ise, scrutT, scrutVal, resultAddr, mergeBlock)
	} else {
		g.emitConditionChain(ise, scrutVal, resultAddr, mergeBlock)
	}

	g.block = mergeBlock
	return g.block.NewLoad(resultLLVM, resultAddr)
}

func (g *Generator) hasVariantPatterns(ise *ast.IsExpression) bool {
	for _, arm := range ise.Arms {
		if _, ok := arm.Pattern.(*ast.VariantPattern); ok {
			return true
		}
	}
	return false
}

func (g *Generator) emitVariantSwitch(ise *ast.IsExpression, scrutT typesystem.Type, scrutVal value.Value, resultAddr *ir.InstAlloca, mergeBlock *ir.Block) {
	enumName := g.namedTypeOf(scrutT)
	enumLLVM := g.enumTypes[enumName]
	tag := g.block.NewExtractValue(scrutVal, 0)
	switchBlock := g.block

	var cases []*ir.Case
	var defaultBlock *ir.Block

	for _, arm := range ise.Arms {
		armBlock := g.curFunc.NewBlock(newTempName("ismatch"))
		switch p := arm.Pattern.(type) {
		case *ast.VariantPattern:
			variantEnum := p.EnumName
			if variantEnum == "" {
				variantEnum = enumName
			}
			idx, payload := g.variantInfo(variantEnum, p.Variant)
			cases = append(cases, ir.NewCase(constant.NewInt(types.I32, int64(idx)), armBlock))

			g.block = armBlock
			g.bindVariantPattern(p, payload, enumLLVM, scrutVal)
			g.emitArmBody(arm, resultAddr, mergeBlock)

		case *ast.WildcardPattern, *ast.IdentifierPattern:
			defaultBlock = armBlock
			g.block = armBlock
			if ip, ok := p.(*ast.IdentifierPattern); ok {
				addr := g.block.NewAlloca(g.llvmType(scrutT))
				addr.SetName(ip.Name + ".addr")
				g.block.NewStore(scrutVal, addr)
				g.vars[ip.Name] = addr
				g.localTypes[ip.Name] = scrutT
			}
			g.emitArmBody(arm, resultAddr, mergeBlock)
		}
	}

	if defaultBlock == nil {
		defaultBlock = g.curFunc.NewBlock(newTempName("ismiss"))
		g.block = defaultBlock
		g.block.NewBr(mergeBlock)
	}

	switchBlock.NewSwitch(tag, defaultBlock, cases...)
}

func (g *Generator) bindVariantPattern(p *ast.VariantPattern, payload []typesystem.Type, enumLLVM *types.StructType, scrutVal value.Value) {
	if len(payload) == 0 || len(p.Bindings) == 0 {
		return
	}
	if len(payload) == 1 && len(p.Bindings) == 1 {
		if p.Bindings[0] == "_" {
			return
		}
		val := g.extractPayload(scrutVal, enumLLVM, payload, 0)
		addr := g.block.NewAlloca(g.llvmType(payload[0]))
		addr.SetName(p.Bindings[0] + ".addr")
		g.block.NewStore(val, addr)
		g.vars[p.Bindings[0]] = addr
		g.localTypes[p.Bindings[0]] = payload[0]
		return
	}
	for i, b := range p.Bindings {
		if b == "_" || i >= len(payload) {
			continue
		}
		val := g.extractPayload(scrutVal, enumLLVM, payload, i)
		addr := g.block.NewAlloca(g.llvmType(payload[i]))
		addr.SetName(b + ".addr")
		g.block.NewStore(val, addr)
		g.vars[b] = addr
		g.localTypes[b] = payload[i]
	}
}

func (g *Generator) emitArmBody(arm ast.IsArm, resultAddr *ir.InstAlloca, mergeBlock *ir.Block) {
	if arm.Guard != nil {
		guard := g.narrowToI1(g.emitExpr(arm.Guard))
		bodyBlock := g.curFunc.NewBlock(newTempName("ismatchbody"))
		skipBlock := g.curFunc.NewBlock(newTempName("ismatchskip"))
		g.block.NewCondBr(guard, bodyBlock, skipBlock)

		g.block = bodyBlock
		val := g.emitExpr(arm.Body)
		g.block.NewStore(val, resultAddr)
		if g.block.Term == nil {
			g.block.NewBr(mergeBlock)
		}

		g.block = skipBlock
		g.block.NewBr(mergeBlock)
		return
	}

	val := g.emitExpr(arm.Body)
	g.block.NewStore(val, resultAddr)
	if g.block.Term == nil {
		g.block.NewBr(mergeBlock)
	}
}

// emitConditionChain lowers an `is` over literal/identifier/wildcard
// patterns (no enum tag to switch on) to a chain of conditional blocks
// compared by value.
func (g *Generator) emitConditionChain(ise *ast.IsExpression, scrutVal value.Value, resultAddr *ir.InstAlloca, mergeBlock *ir.Block) {
	for _, arm := range ise.Arms {
		switch p := arm.Pattern.(type) {
		case *ast.LiteralPattern:
			lit := g.emitExpr(p.Value)
			matched := g.block.NewICmp(enum.IPredEQ, scrutVal, lit)
			bodyBlock := g.curFunc.NewBlock(newTempName("iseq"))
			nextBlock := g.curFunc.NewBlock(newTempName("isne"))
			g.block.NewCondBr(matched, bodyBlock, nextBlock)

			g.block = bodyBlock
			g.emitArmBody(arm, resultAddr, mergeBlock)

			g.block = nextBlock

		case *ast.IdentifierPattern:
			addr := g.block.NewAlloca(scrutVal.Type())
			addr.SetName(p.Name + ".addr")
			g.block.NewStore(scrutVal, addr)
			g.vars[p.Name] = addr
			g.emitArmBody(arm, resultAddr, mergeBlock)
			return

		case *ast.WildcardPattern:
			g.emitArmBody(arm, resultAddr, mergeBlock)
			return
		}
	}
	if g.block.Term == nil {
		g.block.NewBr(mergeBlock)
	}
}
