package config

// Builtins Configuration
//
// Single source of truth for keywords, primitive widths, and the
// handful of prelude functions the lexer/parser/analyzer/codegens all
// need to agree on.

// ============================================================================
// Keywords
// ============================================================================

// Keywords lists Paw's reserved words, per
// spec.md's Lexer contract: "fn let if else loop break continue return
// type pub mut self in is as await async import true false" plus the
// `struct`/`enum`/`trait`/`impl` declaration-kind keywords the Parser
// contract requires. The lexer does not read this list: it uses the
// token package's own keyword table, which also reserves `for`.
var Keywords = []string{
	"fn", "let", "if", "else", "loop", "break", "continue", "return",
	"type", "pub", "mut", "self", "in", "is", "as", "await", "async",
	"import", "true", "false",
	"struct", "enum", "trait", "impl",
}

// IsKeyword reports whether word is a reserved Paw keyword.
func IsKeyword(word string) bool {
	for _, kw := range Keywords {
		if kw == word {
			return true
		}
	}
	return false
}

// ============================================================================
// Primitive type keywords
// ============================================================================

type PrimitiveInfo struct {
	Name       string
	BitWidth   int // 0 for non-integer primitives
	Unsigned   bool
	IsFloat    bool
	IsBoolLike bool
}

// Primitives is the type-name-keyword table from spec.md 4.1: every
// integer width, both float widths, and the three non-numeric scalars.
var Primitives = []PrimitiveInfo{
	{Name: "i8", BitWidth: 8},
	{Name: "i16", BitWidth: 16},
	{Name: "i32", BitWidth: 32},
	{Name: "i64", BitWidth: 64},
	{Name: "i128", BitWidth: 128},
	{Name: "u8", BitWidth: 8, Unsigned: true},
	{Name: "u16", BitWidth: 16, Unsigned: true},
	{Name: "u32", BitWidth: 32, Unsigned: true},
	{Name: "u64", BitWidth: 64, Unsigned: true},
	{Name: "u128", BitWidth: 128, Unsigned: true},
	{Name: "f32", BitWidth: 32, IsFloat: true},
	{Name: "f64", BitWidth: 64, IsFloat: true},
	{Name: "bool", IsBoolLike: true},
	{Name: "char"},
	{Name: "string"},
	{Name: "void"},
}

// GetPrimitiveInfo returns primitive type info by name.
func GetPrimitiveInfo(name string) *PrimitiveInfo {
	for i := range Primitives {
		if Primitives[i].Name == name {
			return &Primitives[i]
		}
	}
	return nil
}

// IsPrimitiveTypeName reports whether name names a primitive type
// keyword, used by the parser's generic-application disambiguation
// rule (spec.md 4.2: `identifier <` parses as a generic application
// when the token after `<` is a primitive keyword, `[`, or a known
// type name).
func IsPrimitiveTypeName(name string) bool {
	return GetPrimitiveInfo(name) != nil
}

// ============================================================================
// Prelude functions
// ============================================================================

type FunctionInfo struct {
	Name        string
	Signature   string
	Description string
}

// BuiltinFunctions are the free functions available without an import,
// carried over in spirit from the corpus's own prelude table but
// trimmed to what Paw's expression-oriented, non-dynamic surface
// actually needs.
var BuiltinFunctions = []FunctionInfo{
	{Name: "print", Signature: "(...Any) -> void", Description: "Print values to stdout with newline"},
	{Name: "panic", Signature: "(string) -> !", Description: "Terminate with error message"},
	{Name: "len", Signature: "(array<T>) -> i64", Description: "Length of a fixed-size array"},
}

// GetFunctionInfo returns function info by name.
func GetFunctionInfo(name string) *FunctionInfo {
	for i := range BuiltinFunctions {
		if BuiltinFunctions[i].Name == name {
			return &BuiltinFunctions[i]
		}
	}
	return nil
}
