package parser

import (
	"github.com/funvibe/pawc/internal/ast"
	"github.com/funvibe/pawc/internal/diagnostics"
	"github.com/funvibe/pawc/internal/token"
)

// parseTypeDeclaration parses `type Name<T,...> = struct|enum|trait { ... }`
// with curToken starting on `type`.
func (p *Parser) parseTypeDeclaration(isPublic bool) *ast.TypeDeclaration {
	tok := p.curToken
	if !p.expectPeek(token.IDENT) {
		p.synchronize()
		return nil
	}
	name := p.curToken.Lexeme

	var typeParams []string
	if p.peekIs(token.LT) {
		p.nextToken()
		typeParams = p.parseTypeParamList()
	}

	if !p.expectPeek(token.ASSIGN) {
		p.synchronize()
		return nil
	}
	p.nextToken()

	decl := &ast.TypeDeclaration{Token: tok, Name: name, TypeParams: typeParams, IsPublic: isPublic}

	switch {
	case p.curIs(token.STRUCT):
		decl.Kind = ast.StructTypeKind
		decl.Fields, decl.Methods = p.parseStructBody()
	case p.curIs(token.ENUM):
		decl.Kind = ast.EnumTypeKind
		decl.Variants, decl.Methods = p.parseEnumBody()
	case p.curIs(token.TRAIT):
		decl.Kind = ast.TraitTypeKind
		decl.TraitMethods = p.parseTraitBody()
	default:
		p.addError(diagnostics.ErrP001, p.curToken, "struct', 'enum', or 'trait", p.curToken.Lexeme)
		p.synchronize()
	}
	return decl
}

func (p *Parser) parseMemberFunction() *ast.FunctionDeclaration {
	isPub := false
	if p.curIs(token.PUB) {
		isPub = true
		p.nextToken()
	}
	return p.parseFunctionDeclaration(isPub)
}

func (p *Parser) parseStructBody() ([]ast.StructField, []*ast.FunctionDeclaration) {
	if !p.expectPeek(token.LBRACE) {
		return nil, nil
	}
	p.nextToken()

	var fields []ast.StructField
	var methods []*ast.FunctionDeclaration
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		switch {
		case p.curIs(token.FN) || p.curIs(token.ASYNC) || p.curIs(token.PUB):
			if m := p.parseMemberFunction(); m != nil {
				methods = append(methods, m)
			}
		case p.curIs(token.IDENT):
			fname := p.curToken.Lexeme
			if !p.expectPeek(token.COLON) {
				p.nextToken()
				continue
			}
			p.nextToken()
			ftype := p.parseType()
			fields = append(fields, ast.StructField{Name: fname, Type: ftype})
			if p.peekIs(token.COMMA) {
				p.nextToken()
			}
		}
		p.nextToken()
	}
	return fields, methods
}

func (p *Parser) parseEnumBody() ([]ast.EnumVariantDecl, []*ast.FunctionDeclaration) {
	if !p.expectPeek(token.LBRACE) {
		return nil, nil
	}
	p.nextToken()

	var variants []ast.EnumVariantDecl
	var methods []*ast.FunctionDeclaration
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		switch {
		case p.curIs(token.FN) || p.curIs(token.ASYNC) || p.curIs(token.PUB):
			if m := p.parseMemberFunction(); m != nil {
				methods = append(methods, m)
			}
		case p.curIs(token.IDENT):
			vname := p.curToken.Lexeme
			var payload []ast.TypeExpr
			if p.peekIs(token.LPAREN) {
				p.nextToken()
				p.nextToken()
				for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
					payload = append(payload, p.parseType())
					if p.peekIs(token.COMMA) {
						p.nextToken()
						p.nextToken()
						continue
					}
					p.nextToken()
					break
				}
			}
			variants = append(variants, ast.EnumVariantDecl{Name: vname, Payload: payload})
			if p.peekIs(token.COMMA) {
				p.nextToken()
			}
		}
		p.nextToken()
	}
	return variants, methods
}

func (p *Parser) parseTraitBody() []ast.TraitMethodSig {
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	p.nextToken()

	var sigs []ast.TraitMethodSig
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		if p.curIs(token.FN) {
			if !p.expectPeek(token.IDENT) {
				p.nextToken()
				continue
			}
			name := p.curToken.Lexeme
			if !p.expectPeek(token.LPAREN) {
				p.nextToken()
				continue
			}
			params, _ := p.parseParamList()
			var ret ast.TypeExpr
			if p.peekIs(token.ARROW) {
				p.nextToken()
				p.nextToken()
				ret = p.parseType()
			}
			if p.peekIs(token.SEMICOLON) {
				p.nextToken()
			}
			sigs = append(sigs, ast.TraitMethodSig{Name: name, Params: params, ReturnType: ret})
		}
		p.nextToken()
	}
	return sigs
}

// parseImplDeclaration parses `impl [Trait for] Type { methods }` with
// curToken starting on `impl`.
func (p *Parser) parseImplDeclaration() *ast.ImplDeclaration {
	tok := p.curToken
	if !p.expectPeek(token.IDENT) {
		p.synchronize()
		return nil
	}
	firstName := p.curToken.Lexeme

	var typeParams []string
	if p.peekIs(token.LT) {
		p.nextToken()
		typeParams = p.parseTypeParamList()
	}

	var traitName, typeName string
	if p.peekIs(token.FOR) {
		traitName = firstName
		p.nextToken()
		if !p.expectPeek(token.IDENT) {
			p.synchronize()
			return nil
		}
		typeName = p.curToken.Lexeme
		if p.peekIs(token.LT) {
			p.nextToken()
			typeParams = p.parseTypeParamList()
		}
	} else {
		typeName = firstName
	}

	if !p.expectPeek(token.LBRACE) {
		p.synchronize()
		return nil
	}
	p.nextToken()

	var methods []*ast.FunctionDeclaration
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		if p.curIs(token.FN) || p.curIs(token.ASYNC) || p.curIs(token.PUB) {
			if m := p.parseMemberFunction(); m != nil {
				methods = append(methods, m)
			}
		}
		p.nextToken()
	}

	return &ast.ImplDeclaration{Token: tok, TraitName: traitName, TypeName: typeName, TypeParams: typeParams, Methods: methods}
}
