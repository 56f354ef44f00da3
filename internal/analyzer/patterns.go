package analyzer

import (
	"github.com/funvibe/pawc/internal/ast"
	"github.com/funvibe/pawc/internal/diagnostics"
	"github.com/funvibe/pawc/internal/symbols"
	"github.com/funvibe/pawc/internal/typesystem"
)

// bindPattern type-checks one `is`-arm pattern against the scrutinee's
// type and binds any names the pattern introduces into scope.
//
// Open question resolved: a `Variant(a, b, c)` pattern binds each name
// element-wise from the variant's declared payload types (not collapsed
// to a single default integer width), since the variant's payload shape
// is already known at this point and element-wise binding lets the arm
// body use each field at its real width without an extra `as` cast.
func (a *Analyzer) bindPattern(pat ast.Pattern, scrutT typesystem.Type, scope *symbols.SymbolTable) {
	switch p := pat.(type) {
	case *ast.WildcardPattern:
		// binds nothing

	case *ast.IdentifierPattern:
		scope.Define(p.Name, scrutT)

	case *ast.LiteralPattern:
		lt := a.inferExpr(p.Value, scope)
		if !typesEqualOrCompatible(lt, scrutT) {
			a.addError(diagnostics.ErrA003, p.Token, scrutT.String(), lt.String())
		}

	case *ast.VariantPattern:
		a.bindVariantPattern(p, scope)
	}
}

func (a *Analyzer) bindVariantPattern(p *ast.VariantPattern, scope *symbols.SymbolTable) {
	var ei *symbols.EnumInfo
	var ok bool
	if p.EnumName != "" {
		ei, ok = a.table.Enum(p.EnumName)
	} else {
		ei, ok = a.table.EnumForVariant(p.Variant)
	}
	if !ok {
		a.addError(diagnostics.ErrA001, p.Token, p.Variant)
		for _, b := range p.Bindings {
			if b != "_" {
				scope.Define(b, typesystem.LiteralDefaultInt)
			}
		}
		return
	}

	variant, ok2 := ei.Variant(p.Variant)
	if !ok2 {
		a.addError(diagnostics.ErrA001, p.Token, p.Variant)
		return
	}

	for i, b := range p.Bindings {
		if b == "_" {
			continue
		}
		if i < len(variant.Payload) {
			scope.Define(b, variant.Payload[i])
		} else {
			scope.Define(b, typesystem.LiteralDefaultInt)
		}
	}
}
