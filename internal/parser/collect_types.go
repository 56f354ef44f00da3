package parser

import "github.com/funvibe/pawc/internal/token"

// CollectTypeNames is parser pass 1: a single linear scan that records
// every name introduced by a `type Name ...` declaration, skipping the
// body of any struct/enum/trait block by brace-matching rather than
// parsing it. Pass 2 consults the resulting set when deciding whether
// `identifier <` opens a generic argument list or starts a comparison,
// and when deciding whether `identifier {` opens a struct literal.
func CollectTypeNames(tokens []token.Token) map[string]bool {
	known := make(map[string]bool)
	i := 0
	for i < len(tokens) {
		tok := tokens[i]
		switch tok.Type {
		case token.TYPE:
			if i+1 < len(tokens) && tokens[i+1].Type == token.IDENT {
				known[tokens[i+1].Lexeme] = true
			}
		case token.STRUCT, token.ENUM, token.TRAIT:
			i = skipBracedBody(tokens, i)
			continue
		}
		i++
	}
	return known
}

// skipBracedBody advances past the next brace-matched `{ ... }` block
// starting at or after index from, returning the index just past the
// closing brace. If no opening brace is found, it returns len(tokens).
func skipBracedBody(tokens []token.Token, from int) int {
	i := from
	for i < len(tokens) && tokens[i].Type != token.LBRACE {
		i++
	}
	if i >= len(tokens) {
		return i
	}
	depth := 0
	for i < len(tokens) {
		switch tokens[i].Type {
		case token.LBRACE:
			depth++
		case token.RBRACE:
			depth--
			if depth == 0 {
				return i + 1
			}
		}
		i++
	}
	return i
}
