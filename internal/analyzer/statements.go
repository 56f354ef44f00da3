package analyzer

import (
	"github.com/funvibe/pawc/internal/ast"
	"github.com/funvibe/pawc/internal/diagnostics"
	"github.com/funvibe/pawc/internal/symbols"
	"github.com/funvibe/pawc/internal/typesystem"
)

// checkBodies is Pass B: walk every function/method body now that Pass A
// has registered every declaration.
func (a *Analyzer) checkBodies(prog *ast.Program) {
	for _, decl := range prog.Declarations {
		switch d := decl.(type) {
		case *ast.FunctionDeclaration:
			a.checkFunctionBody(d, "", nil)
		case *ast.TypeDeclaration:
			generics := setOf(d.TypeParams)
			for _, m := range d.Methods {
				a.checkFunctionBody(m, d.Name, generics)
			}
		case *ast.ImplDeclaration:
			generics := setOf(d.TypeParams)
			for _, m := range d.Methods {
				a.checkFunctionBody(m, d.TypeName, generics)
			}
		}
	}
}

func (a *Analyzer) checkFunctionBody(fd *ast.FunctionDeclaration, selfTypeName string, outerGenerics map[string]bool) {
	if fd.Body == nil {
		return
	}
	generics := mergeSets(outerGenerics, setOf(fd.TypeParams))

	fnScope := symbols.NewEnclosedSymbolTable(a.table)
	if fd.HasSelf {
		fnScope.Define("self", typesystem.Named{Name: selfTypeName})
	}
	for _, p := range fd.Params {
		if p.Name == "self" && p.Type == nil {
			continue
		}
		fnScope.Define(p.Name, a.buildType(p.Type, generics))
	}

	prevReturn, prevAsync := a.currentReturnType, a.currentAsync
	a.currentReturnType = a.buildType(fd.ReturnType, generics)
	if a.currentReturnType == nil {
		a.currentReturnType = voidType
	}
	a.currentAsync = fd.IsAsync

	a.checkBlock(fd.Body, fnScope)

	a.currentReturnType, a.currentAsync = prevReturn, prevAsync
}

// checkBlock type-checks every statement in block and returns the
// block's value type: the type of its trailing expression statement, or
// void if the block ends in any other statement kind (or is empty).
func (a *Analyzer) checkBlock(block *ast.BlockExpression, scope *symbols.SymbolTable) typesystem.Type {
	result := typesystem.Type(voidType)
	for i, stmt := range block.Statements {
		if i == len(block.Statements)-1 {
			if es, ok := stmt.(*ast.ExpressionStatement); ok {
				result = a.inferExpr(es.Expression, scope)
				continue
			}
		}
		a.checkStatement(stmt, scope)
	}
	return result
}

func (a *Analyzer) checkStatement(stmt ast.Statement, scope *symbols.SymbolTable) {
	switch s := stmt.(type) {
	case *ast.LetStatement:
		a.checkLet(s, scope)
	case *ast.AssignStatement:
		a.checkAssign(s, scope)
	case *ast.CompoundAssignStatement:
		a.checkCompoundAssign(s, scope)
	case *ast.ReturnStatement:
		a.checkReturn(s, scope)
	case *ast.BreakStatement:
		if s.Value != nil {
			a.inferExpr(s.Value, scope)
		}
	case *ast.ContinueStatement:
		// nothing to check
	case *ast.LoopStatement:
		a.checkLoop(s, scope)
	case *ast.ExpressionStatement:
		a.inferExpr(s.Expression, scope)
	}
}

func (a *Analyzer) checkLet(s *ast.LetStatement, scope *symbols.SymbolTable) {
	if scope.DefinedInCurrentScope(s.Name) {
		a.addError(diagnostics.ErrA004, s.Token, s.Name)
	}

	var declType typesystem.Type
	var initType typesystem.Type
	if s.Init != nil {
		initType = a.inferExpr(s.Init, scope)
	}

	if s.TypeAnnot != nil {
		declType = a.buildType(s.TypeAnnot, nil)
		if s.Init != nil && !typesEqualOrCompatible(initType, declType) {
			a.addError(diagnostics.ErrA003, s.Init.Pos(), declType.String(), initType.String())
		}
	} else if s.Init != nil {
		declType = initType
	} else {
		declType = voidType
	}

	if s.IsMut {
		scope.DefineMutable(s.Name, declType)
	} else {
		scope.Define(s.Name, declType)
	}
}

func (a *Analyzer) checkAssign(s *ast.AssignStatement, scope *symbols.SymbolTable) {
	targetT := a.inferExpr(s.Target, scope)
	valueT := a.inferExpr(s.Value, scope)
	if !typesEqualOrCompatible(targetT, valueT) {
		a.addError(diagnostics.ErrA003, s.Token, targetT.String(), valueT.String())
	}
}

func (a *Analyzer) checkCompoundAssign(s *ast.CompoundAssignStatement, scope *symbols.SymbolTable) {
	targetT := a.inferExpr(s.Target, scope)
	valueT := a.inferExpr(s.Value, scope)
	if !typesEqualOrCompatible(targetT, valueT) {
		a.addError(diagnostics.ErrA003, s.Token, targetT.String(), valueT.String())
		return
	}
	if !isNumeric(widen(targetT, valueT)) {
		a.addError(diagnostics.ErrA005, s.Token, s.Operator, targetT.String())
	}
}

func (a *Analyzer) checkReturn(s *ast.ReturnStatement, scope *symbols.SymbolTable) {
	retT := typesystem.Type(voidType)
	if s.Value != nil {
		errsBefore := len(a.errors)
		retT = a.inferExpr(s.Value, scope)
		if len(a.errors) > errsBefore {
			// The value already failed to type; a mismatch against its
			// placeholder type would only repeat that error.
			return
		}
	}
	if a.currentReturnType != nil && !typesEqualOrCompatible(retT, a.currentReturnType) {
		a.addError(diagnostics.ErrA003, s.Token, a.currentReturnType.String(), retT.String())
	}
}

// checkLoop type-checks all three surface forms the parser already
// unified into one LoopStatement: infinite (no Cond, no Iterable),
// while-style (Cond set), and iteration (IteratorVar/Iterable set). The
// iterator binding is defined only in the loop's own child scope, so it
// is gone the moment the loop's body scope is discarded.
func (a *Analyzer) checkLoop(s *ast.LoopStatement, scope *symbols.SymbolTable) {
	loopScope := symbols.NewEnclosedSymbolTable(scope)

	switch {
	case s.IteratorVar != "":
		iterT := a.inferExpr(s.Iterable, loopScope)
		elemT := iterT
		if arr, ok := iterT.(typesystem.Array); ok {
			elemT = arr.Elem
		}
		loopScope.Define(s.IteratorVar, elemT)

	case s.Cond != nil:
		condT := a.inferExpr(s.Cond, loopScope)
		if !typesystem.Equal(condT, boolType) {
			a.addError(diagnostics.ErrA005, s.Cond.Pos(), "loop condition", condT.String())
		}
	}

	a.loopDepth++
	a.checkBlock(s.Body, loopScope)
	a.loopDepth--
}
