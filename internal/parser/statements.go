package parser

import (
	"github.com/funvibe/pawc/internal/ast"
	"github.com/funvibe/pawc/internal/token"
)

var compoundAssignOps = map[token.TokenType]string{
	token.PLUS_ASSIGN:     "+=",
	token.MINUS_ASSIGN:    "-=",
	token.ASTERISK_ASSIGN: "*=",
	token.SLASH_ASSIGN:    "/=",
	token.PERCENT_ASSIGN:  "%=",
}

// parseBlockExpression parses `{ stmt... }` with curToken starting on `{`
// and ending on the matching `}`.
func (p *Parser) parseBlockExpression() *ast.BlockExpression {
	block := &ast.BlockExpression{Token: p.curToken}
	p.nextToken()

	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		if stmt := p.parseStatement(); stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		p.nextToken()
	}
	return block
}

// parseStatement dispatches on curToken and leaves curToken on the
// statement's last token, matching the convention parseExpression uses.
func (p *Parser) parseStatement() ast.Statement {
	switch {
	case p.curIs(token.LET):
		return p.parseLetStatement()
	case p.curIs(token.RETURN):
		return p.parseReturnStatement()
	case p.curIs(token.BREAK):
		return p.parseBreakStatement()
	case p.curIs(token.CONTINUE):
		return p.parseContinueStatement()
	case p.curIs(token.LOOP):
		return p.parseLoopStatement()
	default:
		return p.parseExpressionOrAssignStatement()
	}
}

// parseLetStatement parses `let [mut] name[: Type] [= init];` with
// curToken starting on `let`.
func (p *Parser) parseLetStatement() *ast.LetStatement {
	tok := p.curToken
	isMut := false
	if p.peekIs(token.MUT) {
		isMut = true
		p.nextToken()
	}
	if !p.expectPeek(token.IDENT) {
		p.synchronize()
		return nil
	}
	name := p.curToken.Lexeme

	var annot ast.TypeExpr
	if p.peekIs(token.COLON) {
		p.nextToken()
		p.nextToken()
		annot = p.parseType()
	}

	var init ast.Expression
	if p.peekIs(token.ASSIGN) {
		p.nextToken()
		p.nextToken()
		init = p.parseExpression(LOWEST)
	}

	if p.peekIs(token.SEMICOLON) {
		p.nextToken()
	}
	return &ast.LetStatement{Token: tok, Name: name, IsMut: isMut, TypeAnnot: annot, Init: init}
}

func (p *Parser) parseReturnStatement() *ast.ReturnStatement {
	tok := p.curToken
	var val ast.Expression
	if !p.peekIs(token.SEMICOLON) && !p.peekIs(token.RBRACE) {
		p.nextToken()
		val = p.parseExpression(LOWEST)
	}
	if p.peekIs(token.SEMICOLON) {
		p.nextToken()
	}
	return &ast.ReturnStatement{Token: tok, Value: val}
}

func (p *Parser) parseBreakStatement() *ast.BreakStatement {
	tok := p.curToken
	var val ast.Expression
	if !p.peekIs(token.SEMICOLON) && !p.peekIs(token.RBRACE) {
		p.nextToken()
		val = p.parseExpression(LOWEST)
	}
	if p.peekIs(token.SEMICOLON) {
		p.nextToken()
	}
	return &ast.BreakStatement{Token: tok, Value: val}
}

func (p *Parser) parseContinueStatement() *ast.ContinueStatement {
	tok := p.curToken
	if p.peekIs(token.SEMICOLON) {
		p.nextToken()
	}
	return &ast.ContinueStatement{Token: tok}
}

// parseLoopStatement unifies the three `loop` forms by inspecting what
// follows the `loop` keyword before the body's `{`: nothing (infinite),
// `binding in iterable` (iteration), or any other expression (condition).
func (p *Parser) parseLoopStatement() *ast.LoopStatement {
	tok := p.curToken
	ls := &ast.LoopStatement{Token: tok}

	if p.peekIs(token.LBRACE) {
		p.nextToken()
		ls.Body = p.parseBlockExpression()
		return ls
	}

	if p.peekIs(token.IDENT) && p.looksLikeIteratorBinding() {
		p.nextToken() // cur = binding ident
		ls.IteratorVar = p.curToken.Lexeme
		p.expectPeek(token.IN)
		p.nextToken()
		ls.Iterable = p.parseExpressionNoStructLiteral(LOWEST)
		p.expectPeek(token.LBRACE)
		ls.Body = p.parseBlockExpression()
		return ls
	}

	p.nextToken()
	ls.Cond = p.parseExpressionNoStructLiteral(LOWEST)
	p.expectPeek(token.LBRACE)
	ls.Body = p.parseBlockExpression()
	return ls
}

// looksLikeIteratorBinding reports whether the upcoming tokens are
// `IDENT in`, the unambiguous shape of `loop x in iterable`.
func (p *Parser) looksLikeIteratorBinding() bool {
	next := p.stream.Peek(1)
	return len(next) > 0 && next[0].Type == token.IN
}

// parseExpressionOrAssignStatement handles a leading expression that may
// turn out to be a plain expression statement, a `target = value`
// assignment, or a `target OP= value` compound assignment.
func (p *Parser) parseExpressionOrAssignStatement() ast.Statement {
	tok := p.curToken
	expr := p.parseExpression(LOWEST)

	if p.peekIs(token.ASSIGN) {
		p.nextToken()
		p.nextToken()
		value := p.parseExpression(LOWEST)
		if p.peekIs(token.SEMICOLON) {
			p.nextToken()
		}
		return &ast.AssignStatement{Token: tok, Target: expr, Value: value}
	}

	if op, ok := compoundAssignOps[p.peekToken.Type]; ok {
		p.nextToken()
		p.nextToken()
		value := p.parseExpression(LOWEST)
		if p.peekIs(token.SEMICOLON) {
			p.nextToken()
		}
		return &ast.CompoundAssignStatement{Token: tok, Target: expr, Operator: op, Value: value}
	}

	if p.peekIs(token.SEMICOLON) {
		p.nextToken()
	}
	return &ast.ExpressionStatement{Token: tok, Expression: expr}
}
