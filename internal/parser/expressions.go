package parser

import (
	"unicode"

	"github.com/funvibe/pawc/internal/ast"
	"github.com/funvibe/pawc/internal/diagnostics"
	"github.com/funvibe/pawc/internal/lexer"
	"github.com/funvibe/pawc/internal/token"
)

// parseExpression is the Pratt loop: it runs the prefix fn for curToken,
// then keeps folding in infix operators as long as the upcoming one binds
// tighter than precedence. It leaves curToken on the expression's last
// token.
func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix, ok := p.prefixParseFns[p.curToken.Type]
	if !ok {
		p.addError(diagnostics.ErrP001, p.curToken, "expression", p.curToken.Lexeme)
		return nil
	}
	left := prefix()

	for !p.peekIs(token.SEMICOLON) && precedence < p.peekPrecedence() {
		infix, ok := p.infixParseFns[p.peekToken.Type]
		if !ok {
			return left
		}
		p.nextToken()
		left = infix(left)
	}
	return left
}

// parseExpressionNoStructLiteral parses an expression with struct-literal
// disambiguation suppressed, for use in `if`/`loop` condition position
// where a trailing `{` must open the body, not a struct literal.
func (p *Parser) parseExpressionNoStructLiteral(precedence int) ast.Expression {
	prev := p.noStructLiteral
	p.noStructLiteral = true
	expr := p.parseExpression(precedence)
	p.noStructLiteral = prev
	return expr
}

// parseExpressionList parses a comma-separated list with curToken
// starting on the opening delimiter and ending on end.
func (p *Parser) parseExpressionList(end token.TokenType) []ast.Expression {
	var list []ast.Expression
	if p.peekIs(end) {
		p.nextToken()
		return list
	}
	p.nextToken()
	list = append(list, p.parseExpression(LOWEST))
	for p.peekIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		list = append(list, p.parseExpression(LOWEST))
	}
	p.expectPeek(end)
	return list
}

func startsUpper(name string) bool {
	for _, r := range name {
		return unicode.IsUpper(r)
	}
	return false
}

// isGenericArgsStart reports whether tok opens a type, deciding the one
// ambiguous disambiguation point in the grammar: whether `identifier <`
// begins a generic argument list or a less-than comparison.
func isGenericArgsStart(tok token.Token, known map[string]bool) bool {
	if token.PrimitiveTypeTokens[tok.Type] {
		return true
	}
	if tok.Type == token.LBRACKET {
		return true
	}
	return tok.Type == token.IDENT && known[tok.Lexeme]
}

// parseGenericArgsIfPresent consumes `<T, U, ...>` when curToken is an
// identifier immediately followed by `<` and the token after that `<`
// proves it opens a type list. It leaves curToken on the matching `>`
// when it consumes anything, otherwise leaves curToken/peekToken
// untouched so the caller's `<` is free to be parsed as a comparison.
func (p *Parser) parseGenericArgsIfPresent() ([]ast.TypeExpr, bool) {
	if !p.peekIs(token.LT) {
		return nil, false
	}
	lookahead := p.stream.Peek(1)
	if len(lookahead) == 0 || !isGenericArgsStart(lookahead[0], p.knownTypes) {
		return nil, false
	}

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
	return args, true
}

// parseIdentifierOrConstruction is the prefix fn for IDENT. A bare name
// is just an Identifier; postfix calls, indexing, field access and `?`
// are handled by the registered infix fns once this returns. What this
// fn owns directly is everything the infix table can't express: an
// optional `<TypeArgs>`, then one of `::member`, a struct literal `{...}`,
// or (when type args were present) the call they belong to.
func (p *Parser) parseIdentifierOrConstruction() ast.Expression {
	tok := p.curToken
	name := tok.Lexeme
	ident := &ast.Identifier{Token: tok, Value: name}

	typeArgs, hasTypeArgs := p.parseGenericArgsIfPresent()

	switch {
	case p.peekIs(token.DCOLON):
		p.nextToken() // cur = ::
		if !p.expectPeek(token.IDENT) {
			return ident
		}
		member := p.curToken.Lexeme
		memberTok := p.curToken
		if startsUpper(member) {
			var args []ast.Expression
			if p.peekIs(token.LPAREN) {
				p.nextToken()
				args = p.parseExpressionList(token.RPAREN)
			}
			return &ast.EnumVariantExpression{Token: tok, EnumName: name, Variant: member, Args: args}
		}
		var args []ast.Expression
		if p.peekIs(token.LPAREN) {
			p.nextToken()
			args = p.parseExpressionList(token.RPAREN)
		}
		return &ast.StaticMethodCallExpression{Token: memberTok, TypeName: name, TypeArgs: typeArgs, MethodName: member, Args: args}

	case p.peekIs(token.LBRACE) && !p.noStructLiteral && (startsUpper(name) || p.knownTypes[name]):
		p.nextToken() // cur = {
		fields := p.parseStructInitFields()
		return &ast.StructInitExpression{Token: tok, TypeName: name, TypeArgs: typeArgs, Fields: fields}

	case hasTypeArgs && p.peekIs(token.LPAREN):
		p.nextToken() // cur = (
		call := p.parseCallExpression(ident)
		if ce, ok := call.(*ast.CallExpression); ok {
			ce.TypeArgs = typeArgs
		}
		return call

	default:
		return ident
	}
}

// parseStructInitFields parses `{ name: value, ... }` with curToken
// starting on `{` and ending on `}`.
func (p *Parser) parseStructInitFields() []ast.StructInitField {
	var fields []ast.StructInitField
	p.nextToken()
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		if !p.curIs(token.IDENT) {
			break
		}
		fname := p.curToken.Lexeme
		if !p.expectPeek(token.COLON) {
			break
		}
		p.nextToken()
		val := p.parseExpression(LOWEST)
		fields = append(fields, ast.StructInitField{Name: fname, Value: val})
		if p.peekIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			continue
		}
		p.nextToken()
		break
	}
	return fields
}

func (p *Parser) parseSelfIdentifier() ast.Expression {
	return &ast.Identifier{Token: p.curToken, Value: "self"}
}

func (p *Parser) parseUnderscoreIdentifier() ast.Expression {
	return &ast.Identifier{Token: p.curToken, Value: "_"}
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	tok := p.curToken
	v, _ := tok.Literal.(int64)
	return &ast.IntegerLiteral{Token: tok, Value: v}
}

func (p *Parser) parseFloatLiteral() ast.Expression {
	tok := p.curToken
	v, _ := tok.Literal.(float64)
	return &ast.FloatLiteral{Token: tok, Value: v}
}

func (p *Parser) parseCharLiteral() ast.Expression {
	tok := p.curToken
	switch lit := tok.Literal.(type) {
	case int64:
		return &ast.CharLiteral{Token: tok, Value: rune(lit)}
	case rune:
		return &ast.CharLiteral{Token: tok, Value: lit}
	default:
		return &ast.CharLiteral{Token: tok}
	}
}

func (p *Parser) parseBoolLiteral() ast.Expression {
	return &ast.BoolLiteral{Token: p.curToken, Value: p.curIs(token.TRUE)}
}

// parseStringLiteralOrInterp scans the raw string content for `$name`
// and `${expr}` interpolation sites. A literal with no `$` is returned
// as a plain StringLiteral; otherwise it becomes a StringInterpExpression
// whose `${...}` parts are lexed and parsed as independent expressions
// sharing this parser's known-type set.
func (p *Parser) parseStringLiteralOrInterp() ast.Expression {
	tok := p.curToken
	raw, _ := tok.Literal.(string)

	if !containsDollar(raw) {
		return &ast.StringLiteral{Token: tok, Value: raw}
	}

	var parts []ast.StringInterpPart
	var lit []rune
	runes := []rune(raw)
	flush := func() {
		if len(lit) > 0 {
			parts = append(parts, ast.StringInterpPart{Literal: string(lit)})
			lit = nil
		}
	}

	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		if ch != '$' || i == len(runes)-1 {
			lit = append(lit, ch)
			continue
		}
		next := runes[i+1]
		if next == '{' {
			depth := 1
			j := i + 2
			for j < len(runes) && depth > 0 {
				switch runes[j] {
				case '{':
					depth++
				case '}':
					depth--
				}
				if depth > 0 {
					j++
				}
			}
			flush()
			parts = append(parts, ast.StringInterpPart{IsExpr: true, Expr: p.parseSubExpression(string(runes[i+2 : j]))})
			i = j
			continue
		}
		if isIdentStart(next) {
			j := i + 1
			for j < len(runes) && isIdentPart(runes[j]) {
				j++
			}
			flush()
			parts = append(parts, ast.StringInterpPart{IsExpr: true, Expr: p.parseSubExpression(string(runes[i+1 : j]))})
			i = j - 1
			continue
		}
		lit = append(lit, ch)
	}
	flush()

	return &ast.StringInterpExpression{Token: tok, Parts: parts}
}

func containsDollar(s string) bool {
	for _, r := range s {
		if r == '$' {
			return true
		}
	}
	return false
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// parseSubExpression re-lexes and parses a fragment of source found
// inside string interpolation, sharing the outer parser's known-type
// set so nested generic disambiguation stays consistent.
func (p *Parser) parseSubExpression(src string) ast.Expression {
	toks, _ := lexer.AllTokens(src)
	sub := &Parser{stream: lexer.NewTokenStream(toks), knownTypes: p.knownTypes}
	sub.prefixParseFns = p.prefixParseFns
	sub.infixParseFns = p.infixParseFns
	sub.nextToken()
	sub.nextToken()
	expr := sub.parseExpression(LOWEST)
	p.errors = append(p.errors, sub.errors...)
	return expr
}

func (p *Parser) parseUnaryExpression() ast.Expression {
	tok := p.curToken
	op := string(tok.Type)
	p.nextToken()
	right := p.parseExpression(PREC_PREFIX)
	return &ast.UnaryExpression{Token: tok, Operator: op, Right: right}
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken()
	expr := p.parseExpression(LOWEST)
	p.expectPeek(token.RPAREN)
	return expr
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	tok := p.curToken
	elems := p.parseExpressionList(token.RBRACKET)
	return &ast.ArrayLiteral{Token: tok, Elements: elems}
}

func (p *Parser) parseBlockAsExpression() ast.Expression {
	return p.parseBlockExpression()
}

// parseIfExpression parses `if cond { then } [else if ... | else { ... }]`
// with curToken starting on `if`.
func (p *Parser) parseIfExpression() ast.Expression {
	tok := p.curToken
	p.nextToken()
	cond := p.parseExpressionNoStructLiteral(LOWEST)

	if !p.expectPeek(token.LBRACE) {
		p.synchronize()
		return &ast.IfExpression{Token: tok, Condition: cond}
	}
	then := p.parseBlockExpression()
	ie := &ast.IfExpression{Token: tok, Condition: cond, Then: then}

	if p.peekIs(token.ELSE) {
		p.nextToken()
		if p.peekIs(token.IF) {
			p.nextToken()
			ie.Else = p.parseIfExpression()
		} else if p.expectPeek(token.LBRACE) {
			ie.Else = p.parseBlockExpression()
		}
	}
	return ie
}

func (p *Parser) parseAwaitExpression() ast.Expression {
	tok := p.curToken
	p.nextToken()
	val := p.parseExpression(PREC_PREFIX)
	return &ast.AwaitExpression{Token: tok, Value: val}
}

func (p *Parser) parseBinaryExpression(left ast.Expression) ast.Expression {
	tok := p.curToken
	op := string(tok.Type)
	prec := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(prec)
	return &ast.BinaryExpression{Token: tok, Left: left, Operator: op, Right: right}
}

// parseRangeExpression parses the infix `..`/`..=` with Left already
// consumed as Start.
func (p *Parser) parseRangeExpression(left ast.Expression) ast.Expression {
	tok := p.curToken
	inclusive := tok.Type == token.RANGE_INC
	p.nextToken()
	end := p.parseExpression(PREC_RANGE)
	return &ast.RangeExpression{Token: tok, Start: left, End: end, Inclusive: inclusive}
}

func (p *Parser) parseAsExpression(left ast.Expression) ast.Expression {
	tok := p.curToken
	p.nextToken()
	target := p.parseType()
	return &ast.AsExpression{Token: tok, Value: left, TargetType: target}
}

// parseIsExpression parses `value is { pattern [if guard] => body, ... }`
// with Left already consumed as Value and curToken on `is`.
func (p *Parser) parseIsExpression(left ast.Expression) ast.Expression {
	tok := p.curToken
	if !p.expectPeek(token.LBRACE) {
		p.synchronize()
		return left
	}
	p.nextToken()

	var arms []ast.IsArm
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		pat := p.parsePattern()

		var guard ast.Expression
		if p.peekIs(token.IF) {
			p.nextToken()
			p.nextToken()
			guard = p.parseExpression(LOWEST)
		}

		if !p.expectPeek(token.FAT_ARROW) {
			p.synchronize()
			break
		}
		p.nextToken()
		body := p.parseExpression(LOWEST)
		arms = append(arms, ast.IsArm{Pattern: pat, Guard: guard, Body: body})

		if p.peekIs(token.COMMA) {
			p.nextToken()
		}
		p.nextToken()
	}
	return &ast.IsExpression{Token: tok, Value: left, Arms: arms}
}

// parseCallExpression parses `(args)` with curToken starting on `(`.
func (p *Parser) parseCallExpression(callee ast.Expression) ast.Expression {
	tok := p.curToken
	args := p.parseExpressionList(token.RPAREN)
	return &ast.CallExpression{Token: tok, Callee: callee, Args: args}
}

// parseArrayIndexExpression parses `[index]` with curToken starting on `[`.
func (p *Parser) parseArrayIndexExpression(left ast.Expression) ast.Expression {
	tok := p.curToken
	p.nextToken()
	idx := p.parseExpression(LOWEST)
	p.expectPeek(token.RBRACKET)
	return &ast.ArrayIndexExpression{Token: tok, Array: left, Index: idx}
}

// parseFieldAccessOrMethodCall parses `.field` or `.method(args)` with
// curToken starting on `.`.
func (p *Parser) parseFieldAccessOrMethodCall(left ast.Expression) ast.Expression {
	tok := p.curToken
	if !p.expectPeek(token.IDENT) {
		return left
	}
	field := p.curToken.Lexeme
	fa := &ast.FieldAccessExpression{Token: tok, Object: left, Field: field}
	if p.peekIs(token.LPAREN) {
		p.nextToken()
		return p.parseCallExpression(fa)
	}
	return fa
}

func (p *Parser) parseTryExpression(left ast.Expression) ast.Expression {
	return &ast.TryExpression{Token: p.curToken, Value: left}
}
