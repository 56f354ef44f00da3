// Package diagnostics defines the compiler's positioned error taxonomy.
// Every stage collects CompileErrors on the pipeline context rather than
// halting on the first failure; the pipeline aborts before the next stage
// once a stage has produced one or more errors.
package diagnostics

import (
	"fmt"

	"github.com/funvibe/pawc/internal/token"
)

// Phase identifies which pipeline stage raised a diagnostic.
type Phase string

const (
	PhaseLexer    Phase = "lexer"
	PhaseParser   Phase = "parser"
	PhaseAnalyzer Phase = "analyzer"
	PhaseCodegen  Phase = "codegen"
)

type ErrorCode string

const (
	// Lexer errors
	ErrL001 ErrorCode = "L001" // unterminated string/char, malformed numeric, unknown character

	// Parser errors
	ErrP001 ErrorCode = "P001" // unexpected token
	ErrP002 ErrorCode = "P002" // missing expected token
	ErrP003 ErrorCode = "P003" // malformed numeric literal
	ErrP004 ErrorCode = "P004" // no prefix parse function for token
	ErrP005 ErrorCode = "P005" // invalid struct-literal / block disambiguation
	ErrP006 ErrorCode = "P006" // invalid pattern syntax

	// Analyzer (TypeChecker) errors
	ErrA001 ErrorCode = "A001" // undefined identifier
	ErrA002 ErrorCode = "A002" // undefined type
	ErrA003 ErrorCode = "A003" // type mismatch
	ErrA004 ErrorCode = "A004" // duplicate declaration in scope
	ErrA005 ErrorCode = "A005" // wrong operand kind
	ErrA006 ErrorCode = "A006" // await outside async
	ErrA007 ErrorCode = "A007" // incomplete trait implementation
	ErrA008 ErrorCode = "A008" // missing main
	ErrA009 ErrorCode = "A009" // non-exhaustive is expression (warning-grade)
	ErrA010 ErrorCode = "A010" // invalid as conversion

	// CodeGen errors
	ErrC001 ErrorCode = "C001" // unresolved enum constructor
	ErrC002 ErrorCode = "C002" // undefined function at lowering time
	ErrC003 ErrorCode = "C003" // unsupported iteration source
)

var templates = map[ErrorCode]string{
	ErrL001: "%s",
	ErrP001: "unexpected token: expected '%s', got '%s'",
	ErrP002: "expected '%s' but found '%s'",
	ErrP003: "could not parse '%s' as a number",
	ErrP004: "no prefix parse function for '%s'",
	ErrP005: "'%s' cannot start a struct literal here",
	ErrP006: "invalid pattern: %s",
	ErrA001: "undefined identifier '%s'",
	ErrA002: "undefined type '%s'",
	ErrA003: "type mismatch: expected %s, got %s",
	ErrA004: "'%s' is already declared in this scope",
	ErrA005: "operator '%s' cannot be applied to %s",
	ErrA006: "'await' used outside an async function",
	ErrA007: "type '%s' does not fully implement trait '%s': missing %s",
	ErrA008: "program has no 'main' function",
	ErrA009: "'is' expression does not cover all cases of %s: missing %s",
	ErrA010: "cannot cast %s to %s with 'as'",
	ErrC001: "unresolved enum constructor '%s'",
	ErrC002: "undefined function '%s' at code generation time",
	ErrC003: "unsupported iteration source in loop",
}

// CompileError is a single positioned diagnostic.
type CompileError struct {
	Code  ErrorCode
	Phase Phase
	Args  []interface{}
	Token token.Token
	File  string
}

func (e *CompileError) Error() string {
	template, ok := templates[e.Code]
	if !ok {
		return fmt.Sprintf("unknown error code: %s", e.Code)
	}
	message := fmt.Sprintf(template, e.Args...)

	prefix := ""
	if e.File != "" {
		prefix = e.File + ": "
	}
	phase := ""
	if e.Phase != "" {
		phase = fmt.Sprintf("[%s] ", e.Phase)
	}
	if e.Token.Line > 0 {
		return fmt.Sprintf("%s%serror at %d:%d [%s]: %s", prefix, phase, e.Token.Line, e.Token.Column, e.Code, message)
	}
	return fmt.Sprintf("%s%serror [%s]: %s", prefix, phase, e.Code, message)
}

func NewPhaseError(phase Phase, code ErrorCode, tok token.Token, args ...interface{}) *CompileError {
	return &CompileError{Code: code, Phase: phase, Token: tok, Args: args}
}

func NewLexError(tok token.Token, args ...interface{}) *CompileError {
	return NewPhaseError(PhaseLexer, ErrL001, tok, args...)
}

func NewParseError(code ErrorCode, tok token.Token, args ...interface{}) *CompileError {
	return NewPhaseError(PhaseParser, code, tok, args...)
}

func NewAnalyzerError(code ErrorCode, tok token.Token, args ...interface{}) *CompileError {
	return NewPhaseError(PhaseAnalyzer, code, tok, args...)
}

func NewCodegenError(code ErrorCode, tok token.Token, args ...interface{}) *CompileError {
	return NewPhaseError(PhaseCodegen, code, tok, args...)
}
