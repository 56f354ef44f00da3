package parser

import (
	"github.com/funvibe/pawc/internal/ast"
	"github.com/funvibe/pawc/internal/diagnostics"
	"github.com/funvibe/pawc/internal/token"
)

// parsePattern parses one `is`-arm pattern: `_`, a bare identifier
// binding, `Variant(b1, b2, ...)` / `Enum::Variant(...)`, or a literal.
// It leaves curToken on the pattern's last token.
func (p *Parser) parsePattern() ast.Pattern {
	switch {
	case p.curIs(token.UNDERSCORE):
		return &ast.WildcardPattern{Token: p.curToken}

	case p.curIs(token.INT), p.curIs(token.FLOAT), p.curIs(token.STRING),
		p.curIs(token.CHAR_LIT), p.curIs(token.TRUE), p.curIs(token.FALSE),
		p.curIs(token.MINUS):
		tok := p.curToken
		val := p.parseExpression(PREC_PREFIX)
		return &ast.LiteralPattern{Token: tok, Value: val}

	case p.curIs(token.IDENT):
		return p.parseIdentOrVariantPattern()

	default:
		p.addError(diagnostics.ErrP001, p.curToken, "pattern", p.curToken.Lexeme)
		return &ast.WildcardPattern{Token: p.curToken}
	}
}

func (p *Parser) parseIdentOrVariantPattern() ast.Pattern {
	tok := p.curToken
	name := tok.Lexeme

	enumName := ""
	variant := name
	if p.peekIs(token.DCOLON) {
		p.nextToken() // cur = ::
		if !p.expectPeek(token.IDENT) {
			return &ast.WildcardPattern{Token: tok}
		}
		enumName = name
		variant = p.curToken.Lexeme
	}

	if p.peekIs(token.LPAREN) {
		p.nextToken() // cur = (
		p.nextToken()
		var bindings []string
		for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
			if p.curIs(token.IDENT) || p.curIs(token.UNDERSCORE) {
				bindings = append(bindings, p.curToken.Lexeme)
			}
			if p.peekIs(token.COMMA) {
				p.nextToken()
				p.nextToken()
				continue
			}
			p.nextToken()
			break
		}
		return &ast.VariantPattern{Token: tok, EnumName: enumName, Variant: variant, Bindings: bindings}
	}

	if enumName != "" {
		return &ast.VariantPattern{Token: tok, EnumName: enumName, Variant: variant}
	}
	return &ast.IdentifierPattern{Token: tok, Name: name}
}
