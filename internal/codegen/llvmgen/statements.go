package llvmgen

import (
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/funvibe/pawc/internal/ast"
	"github.com/funvibe/pawc/internal/diagnostics"
	"github.com/funvibe/pawc/internal/typesystem"
)

// emitFunctionBody walks a function/method body, rewriting a trailing
// non-void expression statement into the function's return per Paw's
// expression-oriented block semantics, and seals whatever block is
// current with a fallback return if the walk left it unterminated.
func (g *Generator) emitFunctionBody(b *ast.BlockExpression) {
	isVoid := g.retType == nil || isVoidType(g.retType)
	stmts := b.Statements

	for i, stmt := range stmts {
		last := i == len(stmts)-1
		if last && !isVoid {
			if es, ok := stmt.(*ast.ExpressionStatement); ok {
				val := g.emitExpr(es.Expression)
				if g.block.Term == nil {
					g.block.NewRet(val)
				}
				continue
			}
		}
		g.emitStatement(stmt)
	}

	if g.block.Term == nil {
		if isVoid {
			g.block.NewRet(nil)
		} else {
			g.block.NewRet(g.zeroValue(g.retType))
		}
	}
}

// emitBlockBody walks a statement-position block (loop bodies) with no
// trailing-expression rewrite — any value a final expression statement
// produces is simply discarded, same as a bare `expr;` statement.
func (g *Generator) emitBlockBody(b *ast.BlockExpression) {
	for _, stmt := range b.Statements {
		g.emitStatement(stmt)
	}
}

func (g *Generator) emitStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.LetStatement:
		g.emitLet(s)

	case *ast.AssignStatement:
		addr, _ := g.emitLValueAddr(s.Target)
		if addr != nil {
			g.block.NewStore(g.emitExpr(s.Value), addr)
		}

	case *ast.CompoundAssignStatement:
		g.emitCompoundAssign(s)

	case *ast.ReturnStatement:
		if s.Value == nil {
			g.block.NewRet(nil)
		} else {
			g.block.NewRet(g.emitExpr(s.Value))
		}

	case *ast.BreakStatement:
		if top := g.topLoop(); top != nil && g.block.Term == nil {
			g.block.NewBr(top.breakBlock)
		}

	case *ast.ContinueStatement:
		if top := g.topLoop(); top != nil && g.block.Term == nil {
			g.block.NewBr(top.continueBlock)
		}

	case *ast.LoopStatement:
		g.emitLoop(s)

	case *ast.ExpressionStatement:
		g.emitExpr(s.Expression)

	case *ast.TypeDeclaration, *ast.ImplDeclaration, *ast.FunctionDeclaration:
		// Nested declarations are not part of this lowering surface.
	}
}

func (g *Generator) topLoop() *loopFrame {
	if len(g.loopStack) == 0 {
		return nil
	}
	return &g.loopStack[len(g.loopStack)-1]
}

func (g *Generator) emitLet(s *ast.LetStatement) {
	t := g.letType(s)
	addr := g.block.NewAlloca(g.llvmType(t))
	addr.SetName(s.Name + ".addr")
	g.vars[s.Name] = addr
	g.localTypes[s.Name] = t
	if s.Init != nil {
		g.block.NewStore(g.emitExpr(s.Init), addr)
	}
}

// letType resolves the declared type of a `let` binding from the
// initializer's recorded inference result, falling back to a direct
// reading of the annotation for an uninitialized binding.
func (g *Generator) letType(s *ast.LetStatement) typesystem.Type {
	if s.Init != nil {
		if t, ok := g.typeMap[s.Init]; ok {
			return t
		}
	}
	if s.TypeAnnot != nil {
		return g.simpleBuildType(s.TypeAnnot)
	}
	return typesystem.Primitive{Kind: typesystem.I32}
}

// simpleBuildType converts a syntactic type reference directly, without
// resolving generics against an enclosing declaration's parameter list —
// sufficient for the local, already-monomorphized-context lets the
// function-body walk encounters.
func (g *Generator) simpleBuildType(te ast.TypeExpr) typesystem.Type {
	switch t := te.(type) {
	case *ast.PrimitiveTypeExpr:
		return typesystem.Primitive{Kind: typesystem.PrimitiveKind(t.Name)}
	case *ast.NamedTypeExpr:
		return typesystem.Named{Name: t.Name}
	case *ast.PointerTypeExpr:
		return typesystem.Pointer{Elem: g.simpleBuildType(t.Elem)}
	case *ast.ArrayTypeExpr:
		return typesystem.Array{Elem: g.simpleBuildType(t.Elem), Size: t.Size}
	case *ast.GenericInstanceTypeExpr:
		args := make([]typesystem.Type, len(t.Args))
		for i, a := range t.Args {
			args[i] = g.simpleBuildType(a)
		}
		return typesystem.GenericInstance{Name: t.Name, Args: args}
	default:
		return typesystem.Primitive{Kind: typesystem.I32}
	}
}

func (g *Generator) emitCompoundAssign(s *ast.CompoundAssignStatement) {
	addr, elemT := g.emitLValueAddr(s.Target)
	if addr == nil {
		return
	}
	cur := g.block.NewLoad(g.llvmType(elemT), addr)
	rhs := g.emitExpr(s.Value)
	result := g.emitBinaryOp(s.Operator, cur, rhs, elemT)
	g.block.NewStore(result, addr)
}

func (g *Generator) emitLoop(s *ast.LoopStatement) {
	switch {
	case s.IteratorVar != "":
		g.emitIteratorLoop(s)
	case s.Cond != nil:
		g.emitCondLoop(s)
	default:
		g.emitInfiniteLoop(s)
	}
}

func (g *Generator) emitInfiniteLoop(s *ast.LoopStatement) {
	bodyBlock := g.curFunc.NewBlock(newTempName("loop"))
	endBlock := g.curFunc.NewBlock(newTempName("loopend"))
	g.block.NewBr(bodyBlock)

	g.loopStack = append(g.loopStack, loopFrame{continueBlock: bodyBlock, breakBlock: endBlock})
	g.block = bodyBlock
	g.emitBlockBody(s.Body)
	if g.block.Term == nil {
		g.block.NewBr(bodyBlock)
	}
	g.loopStack = g.loopStack[:len(g.loopStack)-1]

	g.block = endBlock
}

func (g *Generator) emitCondLoop(s *ast.LoopStatement) {
	condBlock := g.curFunc.NewBlock(newTempName("whilecond"))
	bodyBlock := g.curFunc.NewBlock(newTempName("whilebody"))
	endBlock := g.curFunc.NewBlock(newTempName("whileend"))
	g.block.NewBr(condBlock)

	g.block = condBlock
	cond := g.narrowToI1(g.emitExpr(s.Cond))
	g.block.NewCondBr(cond, bodyBlock, endBlock)

	g.loopStack = append(g.loopStack, loopFrame{continueBlock: condBlock, breakBlock: endBlock})
	g.block = bodyBlock
	g.emitBlockBody(s.Body)
	if g.block.Term == nil {
		g.block.NewBr(condBlock)
	}
	g.loopStack = g.loopStack[:len(g.loopStack)-1]

	g.block = endBlock
}

func (g *Generator) emitIteratorLoop(s *ast.LoopStatement) {
	if rng, ok := s.Iterable.(*ast.RangeExpression); ok {
		g.emitRangeLoop(s, rng)
		return
	}
	g.emitArrayLoop(s)
}

func (g *Generator) emitRangeLoop(s *ast.LoopStatement, rng *ast.RangeExpression) {
	idxT := typesystem.Primitive{Kind: typesystem.I64}
	idxAddr := g.block.NewAlloca(types.I64)
	idxAddr.SetName(s.IteratorVar + ".addr")
	g.block.NewStore(g.emitExpr(rng.Start), idxAddr)

	condBlock := g.curFunc.NewBlock(newTempName("forcond"))
	bodyBlock := g.curFunc.NewBlock(newTempName("forbody"))
	stepBlock := g.curFunc.NewBlock(newTempName("forstep"))
	endBlock := g.curFunc.NewBlock(newTempName("forend"))
	g.block.NewBr(condBlock)

	g.block = condBlock
	cur := g.block.NewLoad(types.I64, idxAddr)
	endVal := g.emitExpr(rng.End)
	pred := enum.IPredSLT
	if rng.Inclusive {
		pred = enum.IPredSLE
	}
	cond := g.block.NewICmp(pred, cur, endVal)
	g.block.NewCondBr(cond, bodyBlock, endBlock)

	g.vars[s.IteratorVar] = idxAddr
	g.localTypes[s.IteratorVar] = idxT

	g.loopStack = append(g.loopStack, loopFrame{continueBlock: stepBlock, breakBlock: endBlock})
	g.block = bodyBlock
	g.emitBlockBody(s.Body)
	if g.block.Term == nil {
		g.block.NewBr(stepBlock)
	}
	g.loopStack = g.loopStack[:len(g.loopStack)-1]

	g.block = stepBlock
	cur2 := g.block.NewLoad(types.I64, idxAddr)
	next := g.block.NewAdd(cur2, constant.NewInt(types.I64, 1))
	g.block.NewStore(next, idxAddr)
	g.block.NewBr(condBlock)

	g.block = endBlock
}

// emitArrayLoop indexes a fixed-size array by a stack-allocated counter,
// matching the C backend's parallel-index strategy for the same
// iteration form (LLVM has no fat-pointer array type to range over
// directly).
func (g *Generator) emitArrayLoop(s *ast.LoopStatement) {
	arrT := g.typeOf(s.Iterable)
	elemT := typesystem.Type(typesystem.Primitive{Kind: typesystem.I32})
	length := 0
	if arr, ok := arrT.(typesystem.Array); ok {
		elemT = arr.Elem
		if arr.Size != nil {
			length = *arr.Size
		}
	}
	if length == 0 {
		g.addError(diagnostics.ErrC003, s.Iterable)
	}

	idxAddr := g.block.NewAlloca(types.I64)
	idxAddr.SetName(newTempName("i"))
	g.block.NewStore(constant.NewInt(types.I64, 0), idxAddr)

	condBlock := g.curFunc.NewBlock(newTempName("arrcond"))
	bodyBlock := g.curFunc.NewBlock(newTempName("arrbody"))
	stepBlock := g.curFunc.NewBlock(newTempName("arrstep"))
	endBlock := g.curFunc.NewBlock(newTempName("arrend"))
	g.block.NewBr(condBlock)

	g.block = condBlock
	cur := g.block.NewLoad(types.I64, idxAddr)
	cond := g.block.NewICmp(enum.IPredSLT, cur, constant.NewInt(types.I64, int64(length)))
	g.block.NewCondBr(cond, bodyBlock, endBlock)

	g.block = bodyBlock
	arrLLVM := g.llvmType(arrT)
	elemLLVM := g.llvmType(elemT)
	var elemVal value.Value = g.zeroValue(elemT)
	if arrAddr, _ := g.emitLValueAddr(s.Iterable); arrAddr != nil {
		elemAddr := g.block.NewGetElementPtr(arrLLVM, arrAddr, constant.NewInt(types.I64, 0), cur)
		elemVal = g.block.NewLoad(elemLLVM, elemAddr)
	}
	elemAlloca := g.block.NewAlloca(elemLLVM)
	elemAlloca.SetName(s.IteratorVar + ".addr")
	g.block.NewStore(elemVal, elemAlloca)
	g.vars[s.IteratorVar] = elemAlloca
	g.localTypes[s.IteratorVar] = elemT

	g.loopStack = append(g.loopStack, loopFrame{continueBlock: stepBlock, breakBlock: endBlock})
	g.emitBlockBody(s.Body)
	if g.block.Term == nil {
		g.block.NewBr(stepBlock)
	}
	g.loopStack = g.loopStack[:len(g.loopStack)-1]

	g.block = stepBlock
	cur2 := g.block.NewLoad(types.I64, idxAddr)
	next := g.block.NewAdd(cur2, constant.NewInt(types.I64, 1))
	g.block.NewStore(next, idxAddr)
	g.block.NewBr(condBlock)

	g.block = endBlock
}
