package parser

import (
	"strings"

	"github.com/funvibe/pawc/internal/ast"
	"github.com/funvibe/pawc/internal/diagnostics"
	"github.com/funvibe/pawc/internal/token"
)

// parseType parses one syntactic type reference. It expects curToken to
// be the type's first token and leaves curToken on the type's last
// token — the same "no trailing advance" convention parseExpression
// follows, so callers compose it the same way.
func (p *Parser) parseType() ast.TypeExpr {
	tok := p.curToken

	if token.PrimitiveTypeTokens[tok.Type] {
		return &ast.PrimitiveTypeExpr{Token: tok, Name: strings.ToLower(tok.Lexeme)}
	}

	switch tok.Type {
	case token.IDENT:
		name := tok.Lexeme
		if p.peekIs(token.LT) {
			p.nextToken() // cur = <
			p.nextToken() // cur = first type arg
			var args []ast.TypeExpr
			for {
				args = append(args, p.parseType())
				if p.peekIs(token.COMMA) {
					p.nextToken()
					p.nextToken()
					continue
				}
				break
			}
			p.expectPeek(token.GT)
			return &ast.GenericInstanceTypeExpr{Token: tok, Name: name, Args: args}
		}
		return &ast.NamedTypeExpr{Token: tok, Name: name}

	case token.ASTERISK:
		p.nextToken()
		elem := p.parseType()
		return &ast.PointerTypeExpr{Token: tok, Elem: elem}

	case token.LBRACKET:
		p.nextToken()
		elem := p.parseType()
		var size *int
		if p.peekIs(token.SEMICOLON) {
			p.nextToken() // cur = ;
			p.nextToken() // cur = INT
			if n, ok := p.curToken.Literal.(int64); ok {
				v := int(n)
				size = &v
			}
		}
		p.expectPeek(token.RBRACKET)
		return &ast.ArrayTypeExpr{Token: tok, Elem: elem, Size: size}

	case token.FN:
		p.nextToken()
		if !p.curIs(token.LPAREN) {
			p.addError(diagnostics.ErrP002, p.curToken, "(", p.curToken.Lexeme)
			return &ast.FunctionTypeExpr{Token: tok}
		}
		p.nextToken()
		var params []ast.TypeExpr
		for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
			params = append(params, p.parseType())
			if p.peekIs(token.COMMA) {
				p.nextToken()
				p.nextToken()
				continue
			}
			p.nextToken()
			break
		}
		var ret ast.TypeExpr
		if p.peekIs(token.ARROW) {
			p.nextToken()
			p.nextToken()
			ret = p.parseType()
		}
		return &ast.FunctionTypeExpr{Token: tok, Params: params, Return: ret}

	default:
		p.addError(diagnostics.ErrP001, tok, "type", tok.Lexeme)
		return &ast.NamedTypeExpr{Token: tok, Name: tok.Lexeme}
	}
}
