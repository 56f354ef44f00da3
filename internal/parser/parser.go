// Package parser implements Paw's two-pass recursive-descent parser.
// Pass 1 (CollectTypeNames) scans the whole token sequence for type
// declaration names without parsing their bodies; pass 2 is a Pratt
// parser that consults the pass-1 set where `identifier <` is ambiguous
// between a generic argument list and a less-than comparison, and where
// `identifier {` may open a struct literal.
package parser

import (
	"github.com/funvibe/pawc/internal/ast"
	"github.com/funvibe/pawc/internal/diagnostics"
	"github.com/funvibe/pawc/internal/pipeline"
	"github.com/funvibe/pawc/internal/token"
)

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// Operator precedence, low to high, matching "postfix . [] () ? / unary
// - ! / * / % / + - / range .. ..= / comparison < <= > >= / equality ==
// != / && / || / as / is" read high-to-low.
const (
	LOWEST = iota
	PREC_IS
	PREC_AS
	PREC_OR
	PREC_AND
	PREC_EQUALITY
	PREC_COMPARISON
	PREC_RANGE
	PREC_SUM
	PREC_PRODUCT
	PREC_PREFIX
	PREC_CALL
)

var precedences = map[token.TokenType]int{
	token.IS:              PREC_IS,
	token.AS:               PREC_AS,
	token.OR:               PREC_OR,
	token.AND:              PREC_AND,
	token.EQ:               PREC_EQUALITY,
	token.NOT_EQ:           PREC_EQUALITY,
	token.LT:               PREC_COMPARISON,
	token.LTE:              PREC_COMPARISON,
	token.GT:               PREC_COMPARISON,
	token.GTE:              PREC_COMPARISON,
	token.RANGE:            PREC_RANGE,
	token.RANGE_INC:        PREC_RANGE,
	token.PLUS:             PREC_SUM,
	token.MINUS:            PREC_SUM,
	token.ASTERISK:         PREC_PRODUCT,
	token.SLASH:            PREC_PRODUCT,
	token.PERCENT:          PREC_PRODUCT,
	token.LPAREN:           PREC_CALL,
	token.LBRACKET:         PREC_CALL,
	token.DOT:              PREC_CALL,
	token.DCOLON:           PREC_CALL,
	token.QUESTION:         PREC_CALL,
}

// Parser holds all state for one translation unit's pass-2 parse.
type Parser struct {
	stream    pipeline.TokenStream
	curToken  token.Token
	peekToken token.Token

	knownTypes map[string]bool
	errors     []*diagnostics.CompileError

	noStructLiteral bool

	prefixParseFns map[token.TokenType]prefixParseFn
	infixParseFns  map[token.TokenType]infixParseFn
}

// New builds a Parser over stream, running pass 1 over the stream's full
// token sequence before pass 2 consumes any of it.
func New(stream pipeline.TokenStream) *Parser {
	p := &Parser{
		stream:     stream,
		knownTypes: CollectTypeNames(stream.All()),
	}

	p.prefixParseFns = make(map[token.TokenType]prefixParseFn)
	p.registerPrefix(token.IDENT, p.parseIdentifierOrConstruction)
	p.registerPrefix(token.SELF, p.parseSelfIdentifier)
	p.registerPrefix(token.UNDERSCORE, p.parseUnderscoreIdentifier)
	p.registerPrefix(token.INT, p.parseIntegerLiteral)
	p.registerPrefix(token.FLOAT, p.parseFloatLiteral)
	p.registerPrefix(token.STRING, p.parseStringLiteralOrInterp)
	p.registerPrefix(token.CHAR_LIT, p.parseCharLiteral)
	p.registerPrefix(token.TRUE, p.parseBoolLiteral)
	p.registerPrefix(token.FALSE, p.parseBoolLiteral)
	p.registerPrefix(token.BANG, p.parseUnaryExpression)
	p.registerPrefix(token.MINUS, p.parseUnaryExpression)
	p.registerPrefix(token.LPAREN, p.parseGroupedExpression)
	p.registerPrefix(token.LBRACKET, p.parseArrayLiteral)
	p.registerPrefix(token.LBRACE, p.parseBlockAsExpression)
	p.registerPrefix(token.IF, p.parseIfExpression)
	p.registerPrefix(token.AWAIT, p.parseAwaitExpression)

	p.infixParseFns = make(map[token.TokenType]infixParseFn)
	p.registerInfix(token.PLUS, p.parseBinaryExpression)
	p.registerInfix(token.MINUS, p.parseBinaryExpression)
	p.registerInfix(token.ASTERISK, p.parseBinaryExpression)
	p.registerInfix(token.SLASH, p.parseBinaryExpression)
	p.registerInfix(token.PERCENT, p.parseBinaryExpression)
	p.registerInfix(token.EQ, p.parseBinaryExpression)
	p.registerInfix(token.NOT_EQ, p.parseBinaryExpression)
	p.registerInfix(token.LT, p.parseBinaryExpression)
	p.registerInfix(token.LTE, p.parseBinaryExpression)
	p.registerInfix(token.GT, p.parseBinaryExpression)
	p.registerInfix(token.GTE, p.parseBinaryExpression)
	p.registerInfix(token.AND, p.parseBinaryExpression)
	p.registerInfix(token.OR, p.parseBinaryExpression)
	p.registerInfix(token.RANGE, p.parseRangeExpression)
	p.registerInfix(token.RANGE_INC, p.parseRangeExpression)
	p.registerInfix(token.AS, p.parseAsExpression)
	p.registerInfix(token.IS, p.parseIsExpression)
	p.registerInfix(token.LPAREN, p.parseCallExpression)
	p.registerInfix(token.LBRACKET, p.parseArrayIndexExpression)
	p.registerInfix(token.DOT, p.parseFieldAccessOrMethodCall)
	p.registerInfix(token.QUESTION, p.parseTryExpression)

	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) registerPrefix(tt token.TokenType, fn prefixParseFn) { p.prefixParseFns[tt] = fn }
func (p *Parser) registerInfix(tt token.TokenType, fn infixParseFn)   { p.infixParseFns[tt] = fn }

func (p *Parser) Errors() []*diagnostics.CompileError { return p.errors }

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.stream.Next()
}

func (p *Parser) curIs(tt token.TokenType) bool  { return p.curToken.Type == tt }
func (p *Parser) peekIs(tt token.TokenType) bool { return p.peekToken.Type == tt }

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) expectPeek(tt token.TokenType) bool {
	if p.peekIs(tt) {
		p.nextToken()
		return true
	}
	p.addError(diagnostics.ErrP002, p.peekToken, string(tt), p.peekToken.Lexeme)
	return false
}

func (p *Parser) addError(code diagnostics.ErrorCode, tok token.Token, args ...interface{}) {
	p.errors = append(p.errors, diagnostics.NewParseError(code, tok, args...))
}

// synchronize recovers from a parse error by advancing to the next
// statement boundary (`;` or `}`), per the "recovery at statement
// boundaries" error policy.
func (p *Parser) synchronize() {
	for !p.curIs(token.EOF) {
		if p.curIs(token.SEMICOLON) || p.curIs(token.RBRACE) {
			return
		}
		p.nextToken()
	}
}

// ParseProgram parses the entire translation unit.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}
	for !p.curIs(token.EOF) {
		if p.curIs(token.IMPORT) {
			if imp := p.parseImportStatement(); imp != nil {
				prog.Imports = append(prog.Imports, imp)
			}
		} else if decl := p.parseTopLevelDeclaration(); decl != nil {
			prog.Declarations = append(prog.Declarations, decl)
		}
		p.nextToken()
	}
	return prog
}

func (p *Parser) parseTopLevelDeclaration() ast.Statement {
	isPublic := false
	if p.curIs(token.PUB) {
		isPublic = true
		p.nextToken()
	}
	switch {
	case p.curIs(token.ASYNC) || p.curIs(token.FN):
		return p.parseFunctionDeclaration(isPublic)
	case p.curIs(token.TYPE):
		return p.parseTypeDeclaration(isPublic)
	case p.curIs(token.IMPL):
		return p.parseImplDeclaration()
	default:
		p.addError(diagnostics.ErrP001, p.curToken, "fn', 'type', or 'impl", p.curToken.Lexeme)
		p.synchronize()
		return nil
	}
}

func (p *Parser) parseImportStatement() *ast.ImportStatement {
	tok := p.curToken
	if !p.expectPeek(token.STRING) {
		p.synchronize()
		return nil
	}
	path, _ := p.curToken.Literal.(string)
	alias := ""
	if p.peekIs(token.AS) {
		p.nextToken()
		if p.expectPeek(token.IDENT) {
			alias = p.curToken.Lexeme
		}
	}
	if p.peekIs(token.SEMICOLON) {
		p.nextToken()
	}
	return &ast.ImportStatement{Token: tok, Path: path, Alias: alias}
}

// parseTypeParamList parses `<A, B, ...>` with curToken starting on `<`
// and ending on the matching `>`.
func (p *Parser) parseTypeParamList() []string {
	var names []string
	p.nextToken()
	for !p.curIs(token.GT) && !p.curIs(token.EOF) {
		if p.curIs(token.IDENT) {
			names = append(names, p.curToken.Lexeme)
		}
		p.nextToken()
		if p.curIs(token.COMMA) {
			p.nextToken()
		}
	}
	return names
}

// parseParamList parses `(params)` with curToken starting on `(` and
// ending on the matching `)`. It reports whether the first parameter was
// a `self`/`mut self` receiver.
func (p *Parser) parseParamList() ([]ast.Parameter, bool) {
	var params []ast.Parameter
	hasSelf := false
	p.nextToken()

	if p.curIs(token.SELF) {
		hasSelf = true
		params = append(params, ast.Parameter{Name: "self"})
		p.nextToken()
		if p.curIs(token.COMMA) {
			p.nextToken()
		}
	} else if p.curIs(token.MUT) && p.peekIs(token.SELF) {
		hasSelf = true
		p.nextToken()
		params = append(params, ast.Parameter{Name: "self"})
		p.nextToken()
		if p.curIs(token.COMMA) {
			p.nextToken()
		}
	}

	for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
		if !p.curIs(token.IDENT) {
			break
		}
		name := p.curToken.Lexeme
		if !p.expectPeek(token.COLON) {
			break
		}
		p.nextToken()
		typ := p.parseType()
		params = append(params, ast.Parameter{Name: name, Type: typ})
		if p.peekIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
		} else {
			p.nextToken()
			break
		}
	}
	return params, hasSelf
}

// parseFunctionDeclaration parses `[async] fn name<T>(params) -> Ret { body }`
// with curToken starting on `async` or `fn`.
func (p *Parser) parseFunctionDeclaration(isPublic bool) *ast.FunctionDeclaration {
	tok := p.curToken
	isAsync := false
	if p.curIs(token.ASYNC) {
		isAsync = true
		if !p.expectPeek(token.FN) {
			p.synchronize()
			return nil
		}
	}
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

	if !p.expectPeek(token.LPAREN) {
		p.synchronize()
		return nil
	}
	params, hasSelf := p.parseParamList()

	var retType ast.TypeExpr
	if p.peekIs(token.ARROW) {
		p.nextToken()
		p.nextToken()
		retType = p.parseType()
	}

	if !p.expectPeek(token.LBRACE) {
		p.synchronize()
		return nil
	}
	body := p.parseBlockExpression()

	return &ast.FunctionDeclaration{
		Token:      tok,
		Name:       name,
		IsPublic:   isPublic,
		IsAsync:    isAsync,
		HasSelf:    hasSelf,
		TypeParams: typeParams,
		Params:     params,
		ReturnType: retType,
		Body:       body,
	}
}
