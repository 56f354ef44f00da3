package lexer

import (
	"github.com/funvibe/pawc/internal/diagnostics"
	"github.com/funvibe/pawc/internal/pipeline"
	"github.com/funvibe/pawc/internal/token"
)

// bufferedLexer serves tokens from a slice lexed once up front, so the
// parser's two passes (type-name collection, then full parse) and its
// Peek-based disambiguation all read from the same token sequence.
type bufferedLexer struct {
	tokens []token.Token
	pos    int
}

func NewTokenStream(tokens []token.Token) pipeline.TokenStream {
	return &bufferedLexer{tokens: tokens}
}

func (bl *bufferedLexer) Next() token.Token {
	tok := bl.current()
	if bl.pos < len(bl.tokens)-1 {
		bl.pos++
	}
	return tok
}

func (bl *bufferedLexer) current() token.Token {
	if bl.pos >= len(bl.tokens) {
		return token.Token{Type: token.EOF}
	}
	return bl.tokens[bl.pos]
}

func (bl *bufferedLexer) All() []token.Token {
	return bl.tokens
}

// Peek returns the n tokens immediately after peekToken: Peek(1)[0] is
// the token the parser would see two nextToken() calls from now.
func (bl *bufferedLexer) Peek(n int) []token.Token {
	start := bl.pos
	end := start + n
	if end > len(bl.tokens) {
		end = len(bl.tokens)
	}
	if start > end {
		start = end
	}
	return bl.tokens[start:end]
}

var _ pipeline.TokenStream = (*bufferedLexer)(nil)

// AllTokens lexes src to completion and returns the full token slice
// (including the terminating EOF), along with the first fatal lexical
// error encountered, if any.
func AllTokens(src string) ([]token.Token, *Fatal) {
	l := New(src)
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if l.Err != nil {
			if f, ok := l.Err.(*Fatal); ok {
				return toks, f
			}
		}
		if tok.Type == token.EOF {
			break
		}
	}
	return toks, nil
}

// LexerProcessor implements pipeline.Processor, turning source text into a
// TokenStream. A fatal lexical error is recorded as a diagnostic but does
// not stop the pipeline from producing a (possibly truncated) TokenStream
// so downstream stages can attempt recovery.
type LexerProcessor struct{}

func (lp *LexerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	toks, fatal := AllTokens(ctx.SourceCode)
	if len(toks) == 0 || toks[len(toks)-1].Type != token.EOF {
		toks = append(toks, token.Token{Type: token.EOF})
	}
	ctx.TokenStream = NewTokenStream(toks)
	if fatal != nil {
		ctx.Errors = append(ctx.Errors, diagnostics.NewPhaseError(diagnostics.PhaseLexer, diagnostics.ErrL001, token.Token{Line: fatal.Line, Column: fatal.Column}, fatal.Message))
	}
	return ctx
}
