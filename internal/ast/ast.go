// Package ast models Paw's syntax tree: declarations, statements,
// expressions, patterns, and syntactic type references. Every concrete
// node implements Accept(Visitor) per the visitor pattern; Visitor is
// implemented by the prettyprinter's printers, while the analyzer walks
// nodes with its own type switches.
package ast

import (
	"github.com/funvibe/pawc/internal/token"
)

// Node is the base interface for all AST nodes.
type Node interface {
	TokenLiteral() string
	Pos() token.Token
	Accept(v Visitor)
}

// Statement is a Node appearing in a block or at the top level.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// TypeExpr is a syntactic type reference as written in source, resolved
// to a typesystem.Type by the analyzer.
type TypeExpr interface {
	Node
	typeExprNode()
	String() string
}

// Pattern is a matchable shape in an `is` arm.
type Pattern interface {
	Node
	patternNode()
}

// Visitor has one VisitX method per concrete node type. The teacher's
// Accept/Visitor pattern never declared this interface explicitly; it is
// made explicit here so the prettyprinter's CodePrinter and TreePrinter
// can be written against it rather than duck-typing. The analyzer does
// not use it: its inference returns a type per node, so it dispatches
// with a type switch instead.
type Visitor interface {
	VisitProgram(*Program)

	VisitFunctionDeclaration(*FunctionDeclaration)
	VisitTypeDeclaration(*TypeDeclaration)
	VisitImplDeclaration(*ImplDeclaration)
	VisitImportStatement(*ImportStatement)

	VisitExpressionStatement(*ExpressionStatement)
	VisitLetStatement(*LetStatement)
	VisitAssignStatement(*AssignStatement)
	VisitCompoundAssignStatement(*CompoundAssignStatement)
	VisitReturnStatement(*ReturnStatement)
	VisitBreakStatement(*BreakStatement)
	VisitContinueStatement(*ContinueStatement)
	VisitLoopStatement(*LoopStatement)

	VisitIdentifier(*Identifier)
	VisitIntegerLiteral(*IntegerLiteral)
	VisitFloatLiteral(*FloatLiteral)
	VisitStringLiteral(*StringLiteral)
	VisitCharLiteral(*CharLiteral)
	VisitBoolLiteral(*BoolLiteral)
	VisitBinaryExpression(*BinaryExpression)
	VisitUnaryExpression(*UnaryExpression)
	VisitCallExpression(*CallExpression)
	VisitStaticMethodCallExpression(*StaticMethodCallExpression)
	VisitFieldAccessExpression(*FieldAccessExpression)
	VisitStructInitExpression(*StructInitExpression)
	VisitEnumVariantExpression(*EnumVariantExpression)
	VisitBlockExpression(*BlockExpression)
	VisitIfExpression(*IfExpression)
	VisitIsExpression(*IsExpression)
	VisitAsExpression(*AsExpression)
	VisitAwaitExpression(*AwaitExpression)
	VisitArrayLiteral(*ArrayLiteral)
	VisitArrayIndexExpression(*ArrayIndexExpression)
	VisitRangeExpression(*RangeExpression)
	VisitStringInterpExpression(*StringInterpExpression)
	VisitTryExpression(*TryExpression)

	VisitIdentifierPattern(*IdentifierPattern)
	VisitVariantPattern(*VariantPattern)
	VisitLiteralPattern(*LiteralPattern)
	VisitWildcardPattern(*WildcardPattern)

	VisitNamedTypeExpr(*NamedTypeExpr)
	VisitPrimitiveTypeExpr(*PrimitiveTypeExpr)
	VisitPointerTypeExpr(*PointerTypeExpr)
	VisitArrayTypeExpr(*ArrayTypeExpr)
	VisitFunctionTypeExpr(*FunctionTypeExpr)
	VisitGenericInstanceTypeExpr(*GenericInstanceTypeExpr)
}

// Program is the root of every AST this parser produces: a translation
// unit's import statements followed by its top-level declarations.
type Program struct {
	Imports      []*ImportStatement
	Declarations []Statement
}

func (p *Program) Accept(v Visitor) { v.VisitProgram(p) }
func (p *Program) TokenLiteral() string {
	if len(p.Declarations) > 0 {
		return p.Declarations[0].TokenLiteral()
	}
	return ""
}
func (p *Program) Pos() token.Token {
	if len(p.Imports) > 0 {
		return p.Imports[0].Token
	}
	if len(p.Declarations) > 0 {
		return p.Declarations[0].Pos()
	}
	return token.Token{}
}

// ImportStatement represents `import "path" [as alias]`.
type ImportStatement struct {
	Token token.Token
	Path  string
	Alias string
}

func (is *ImportStatement) Accept(v Visitor)     { v.VisitImportStatement(is) }
func (is *ImportStatement) statementNode()       {}
func (is *ImportStatement) TokenLiteral() string { return is.Token.Lexeme }
func (is *ImportStatement) Pos() token.Token     { return is.Token }

// ---- Top-level declarations -----------------------------------------

// Parameter is one function-parameter binding, e.g. `x: i32`.
type Parameter struct {
	Name string
	Type TypeExpr
}

// FunctionDeclaration represents `[pub] [async] fn name<T>(params) -> Ret { body }`,
// including methods declared inside a struct/enum/impl block, which carry
// an explicit `self` in Params[0] when the method takes a receiver.
type FunctionDeclaration struct {
	Token      token.Token
	Name       string
	IsPublic   bool
	IsAsync    bool
	HasSelf    bool
	TypeParams []string
	Params     []Parameter
	ReturnType TypeExpr
	Body       *BlockExpression
}

func (fd *FunctionDeclaration) Accept(v Visitor)     { v.VisitFunctionDeclaration(fd) }
func (fd *FunctionDeclaration) statementNode()       {}
func (fd *FunctionDeclaration) TokenLiteral() string { return fd.Token.Lexeme }
func (fd *FunctionDeclaration) Pos() token.Token     { return fd.Token }

// TypeDeclKind discriminates what kind of type `type Name<T> = ...` declares.
type TypeDeclKind int

const (
	StructTypeKind TypeDeclKind = iota
	EnumTypeKind
	TraitTypeKind
)

// StructField is one field of a struct type declaration.
type StructField struct {
	Name string
	Type TypeExpr
}

// EnumVariantDecl is one constructor of an enum type declaration.
type EnumVariantDecl struct {
	Name    string
	Payload []TypeExpr
}

// TraitMethodSig is one required method signature inside a trait declaration.
type TraitMethodSig struct {
	Name       string
	Params     []Parameter
	ReturnType TypeExpr
}

// TypeDeclaration represents `[pub] type Name<T,...> = struct|enum|trait { ... }`.
type TypeDeclaration struct {
	Token      token.Token
	Name       string
	TypeParams []string
	IsPublic   bool
	Kind       TypeDeclKind

	// Populated when Kind == StructTypeKind.
	Fields  []StructField
	Methods []*FunctionDeclaration

	// Populated when Kind == EnumTypeKind (Methods shared with struct case).
	Variants []EnumVariantDecl

	// Populated when Kind == TraitTypeKind.
	TraitMethods []TraitMethodSig
}

func (td *TypeDeclaration) Accept(v Visitor)     { v.VisitTypeDeclaration(td) }
func (td *TypeDeclaration) statementNode()       {}
func (td *TypeDeclaration) TokenLiteral() string { return td.Token.Lexeme }
func (td *TypeDeclaration) Pos() token.Token     { return td.Token }

// ImplDeclaration represents `impl [Trait for] Type { methods }`.
// TraitName is "" for an inherent impl block with no trait.
type ImplDeclaration struct {
	Token      token.Token
	TraitName  string
	TypeName   string
	TypeParams []string
	Methods    []*FunctionDeclaration
}

func (id *ImplDeclaration) Accept(v Visitor)     { v.VisitImplDeclaration(id) }
func (id *ImplDeclaration) statementNode()       {}
func (id *ImplDeclaration) TokenLiteral() string { return id.Token.Lexeme }
func (id *ImplDeclaration) Pos() token.Token     { return id.Token }

// ---- Statements --------------------------------------------------------

type ExpressionStatement struct {
	Token      token.Token
	Expression Expression
}

func (es *ExpressionStatement) Accept(v Visitor)     { v.VisitExpressionStatement(es) }
func (es *ExpressionStatement) statementNode()       {}
func (es *ExpressionStatement) TokenLiteral() string { return es.Token.Lexeme }
func (es *ExpressionStatement) Pos() token.Token     { return es.Token }

// LetStatement represents `let [mut] name[: Type] [= init];`.
type LetStatement struct {
	Token      token.Token
	Name       string
	IsMut      bool
	TypeAnnot  TypeExpr
	Init       Expression
}

func (ls *LetStatement) Accept(v Visitor)     { v.VisitLetStatement(ls) }
func (ls *LetStatement) statementNode()       {}
func (ls *LetStatement) TokenLiteral() string { return ls.Token.Lexeme }
func (ls *LetStatement) Pos() token.Token     { return ls.Token }

type AssignStatement struct {
	Token  token.Token
	Target Expression
	Value  Expression
}

func (as *AssignStatement) Accept(v Visitor)     { v.VisitAssignStatement(as) }
func (as *AssignStatement) statementNode()       {}
func (as *AssignStatement) TokenLiteral() string { return as.Token.Lexeme }
func (as *AssignStatement) Pos() token.Token     { return as.Token }

// CompoundAssignStatement represents `target += value;` and its siblings
// (-= *= /= %=).
type CompoundAssignStatement struct {
	Token    token.Token
	Target   Expression
	Operator string
	Value    Expression
}

func (cs *CompoundAssignStatement) Accept(v Visitor)     { v.VisitCompoundAssignStatement(cs) }
func (cs *CompoundAssignStatement) statementNode()       {}
func (cs *CompoundAssignStatement) TokenLiteral() string { return cs.Token.Lexeme }
func (cs *CompoundAssignStatement) Pos() token.Token     { return cs.Token }

type ReturnStatement struct {
	Token token.Token
	Value Expression // nil for a bare `return;`
}

func (rs *ReturnStatement) Accept(v Visitor)     { v.VisitReturnStatement(rs) }
func (rs *ReturnStatement) statementNode()       {}
func (rs *ReturnStatement) TokenLiteral() string { return rs.Token.Lexeme }
func (rs *ReturnStatement) Pos() token.Token     { return rs.Token }

type BreakStatement struct {
	Token token.Token
	Value Expression // nil for a bare `break;`
}

func (bs *BreakStatement) Accept(v Visitor)     { v.VisitBreakStatement(bs) }
func (bs *BreakStatement) statementNode()       {}
func (bs *BreakStatement) TokenLiteral() string { return bs.Token.Lexeme }
func (bs *BreakStatement) Pos() token.Token     { return bs.Token }

type ContinueStatement struct {
	Token token.Token
}

func (cs *ContinueStatement) Accept(v Visitor)     { v.VisitContinueStatement(cs) }
func (cs *ContinueStatement) statementNode()       {}
func (cs *ContinueStatement) TokenLiteral() string { return cs.Token.Lexeme }
func (cs *ContinueStatement) Pos() token.Token     { return cs.Token }

// LoopStatement unifies the three `loop` forms described by the source
// grammar: infinite (Cond == nil, IteratorVar == ""), while-style (Cond
// set), and iteration (IteratorVar set, Iterable set).
type LoopStatement struct {
	Token       token.Token
	Cond        Expression
	IteratorVar string
	Iterable    Expression
	Body        *BlockExpression
}

func (ls *LoopStatement) Accept(v Visitor)     { v.VisitLoopStatement(ls) }
func (ls *LoopStatement) statementNode()       {}
func (ls *LoopStatement) TokenLiteral() string { return ls.Token.Lexeme }
func (ls *LoopStatement) Pos() token.Token     { return ls.Token }

// ---- Expressions --------------------------------------------------------

type Identifier struct {
	Token token.Token
	Value string
}

func (i *Identifier) Accept(v Visitor)     { v.VisitIdentifier(i) }
func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Lexeme }
func (i *Identifier) Pos() token.Token     { return i.Token }

type IntegerLiteral struct {
	Token token.Token
	Value int64
}

func (il *IntegerLiteral) Accept(v Visitor)     { v.VisitIntegerLiteral(il) }
func (il *IntegerLiteral) expressionNode()      {}
func (il *IntegerLiteral) TokenLiteral() string { return il.Token.Lexeme }
func (il *IntegerLiteral) Pos() token.Token     { return il.Token }

type FloatLiteral struct {
	Token token.Token
	Value float64
}

func (fl *FloatLiteral) Accept(v Visitor)     { v.VisitFloatLiteral(fl) }
func (fl *FloatLiteral) expressionNode()      {}
func (fl *FloatLiteral) TokenLiteral() string { return fl.Token.Lexeme }
func (fl *FloatLiteral) Pos() token.Token     { return fl.Token }

// StringLiteral holds the raw, unescaped-but-unexpanded content of a
// plain (non-interpolated) string literal.
type StringLiteral struct {
	Token token.Token
	Value string
}

func (sl *StringLiteral) Accept(v Visitor)     { v.VisitStringLiteral(sl) }
func (sl *StringLiteral) expressionNode()      {}
func (sl *StringLiteral) TokenLiteral() string { return sl.Token.Lexeme }
func (sl *StringLiteral) Pos() token.Token     { return sl.Token }

type CharLiteral struct {
	Token token.Token
	Value rune
}

func (cl *CharLiteral) Accept(v Visitor)     { v.VisitCharLiteral(cl) }
func (cl *CharLiteral) expressionNode()      {}
func (cl *CharLiteral) TokenLiteral() string { return cl.Token.Lexeme }
func (cl *CharLiteral) Pos() token.Token     { return cl.Token }

type BoolLiteral struct {
	Token token.Token
	Value bool
}

func (bl *BoolLiteral) Accept(v Visitor)     { v.VisitBoolLiteral(bl) }
func (bl *BoolLiteral) expressionNode()      {}
func (bl *BoolLiteral) TokenLiteral() string { return bl.Token.Lexeme }
func (bl *BoolLiteral) Pos() token.Token     { return bl.Token }

type BinaryExpression struct {
	Token    token.Token
	Left     Expression
	Operator string
	Right    Expression
}

func (be *BinaryExpression) Accept(v Visitor)     { v.VisitBinaryExpression(be) }
func (be *BinaryExpression) expressionNode()      {}
func (be *BinaryExpression) TokenLiteral() string { return be.Token.Lexeme }
func (be *BinaryExpression) Pos() token.Token     { return be.Token }

type UnaryExpression struct {
	Token    token.Token
	Operator string
	Right    Expression
}

func (ue *UnaryExpression) Accept(v Visitor)     { v.VisitUnaryExpression(ue) }
func (ue *UnaryExpression) expressionNode()      {}
func (ue *UnaryExpression) TokenLiteral() string { return ue.Token.Lexeme }
func (ue *UnaryExpression) Pos() token.Token     { return ue.Token }

// CallExpression represents `callee<TypeArgs>(args)`, where TypeArgs may
// be empty for a non-generic call.
type CallExpression struct {
	Token    token.Token
	Callee   Expression
	TypeArgs []TypeExpr
	Args     []Expression
}

func (ce *CallExpression) Accept(v Visitor)     { v.VisitCallExpression(ce) }
func (ce *CallExpression) expressionNode()      {}
func (ce *CallExpression) TokenLiteral() string { return ce.Token.Lexeme }
func (ce *CallExpression) Pos() token.Token     { return ce.Token }

// StaticMethodCallExpression represents `Type<TypeArgs>::method(args)`.
type StaticMethodCallExpression struct {
	Token      token.Token
	TypeName   string
	TypeArgs   []TypeExpr
	MethodName string
	Args       []Expression
}

func (sc *StaticMethodCallExpression) Accept(v Visitor)     { v.VisitStaticMethodCallExpression(sc) }
func (sc *StaticMethodCallExpression) expressionNode()      {}
func (sc *StaticMethodCallExpression) TokenLiteral() string { return sc.Token.Lexeme }
func (sc *StaticMethodCallExpression) Pos() token.Token     { return sc.Token }

type FieldAccessExpression struct {
	Token  token.Token
	Object Expression
	Field  string
}

func (fa *FieldAccessExpression) Accept(v Visitor)     { v.VisitFieldAccessExpression(fa) }
func (fa *FieldAccessExpression) expressionNode()      {}
func (fa *FieldAccessExpression) TokenLiteral() string { return fa.Token.Lexeme }
func (fa *FieldAccessExpression) Pos() token.Token     { return fa.Token }

// StructInitField is one `name: value` pair inside a struct literal.
type StructInitField struct {
	Name  string
	Value Expression
}

// StructInitExpression represents `TypeName<TypeArgs> { field: value, ... }`.
type StructInitExpression struct {
	Token    token.Token
	TypeName string
	TypeArgs []TypeExpr
	Fields   []StructInitField
}

func (si *StructInitExpression) Accept(v Visitor)     { v.VisitStructInitExpression(si) }
func (si *StructInitExpression) expressionNode()      {}
func (si *StructInitExpression) TokenLiteral() string { return si.Token.Lexeme }
func (si *StructInitExpression) Pos() token.Token     { return si.Token }

// EnumVariantExpression represents a variant construction call
// `Variant(args)` or `Enum::Variant(args)`. EnumName is "" for the bare
// form; the analyzer resolves the enum via its variant-to-enum index but
// does not write the result back into this field.
type EnumVariantExpression struct {
	Token    token.Token
	EnumName string
	Variant  string
	Args     []Expression
}

func (ev *EnumVariantExpression) Accept(v Visitor)     { v.VisitEnumVariantExpression(ev) }
func (ev *EnumVariantExpression) expressionNode()      {}
func (ev *EnumVariantExpression) TokenLiteral() string { return ev.Token.Lexeme }
func (ev *EnumVariantExpression) Pos() token.Token     { return ev.Token }

// BlockExpression is both a free-standing `{ ... }` expression and the
// body of functions, loops, and if/else branches; its value is the value
// of its final expression statement, if any.
type BlockExpression struct {
	Token      token.Token
	Statements []Statement
}

func (be *BlockExpression) Accept(v Visitor)     { v.VisitBlockExpression(be) }
func (be *BlockExpression) expressionNode()      {}
func (be *BlockExpression) TokenLiteral() string { return be.Token.Lexeme }
func (be *BlockExpression) Pos() token.Token     { return be.Token }

// IfExpression's Else is nil, a *BlockExpression, or another *IfExpression
// (for `else if`).
type IfExpression struct {
	Token     token.Token
	Condition Expression
	Then      *BlockExpression
	Else      Expression
}

func (ie *IfExpression) Accept(v Visitor)     { v.VisitIfExpression(ie) }
func (ie *IfExpression) expressionNode()      {}
func (ie *IfExpression) TokenLiteral() string { return ie.Token.Lexeme }
func (ie *IfExpression) Pos() token.Token     { return ie.Token }

// IsArm is one `pattern [if guard] => body` clause of an `is` expression.
type IsArm struct {
	Pattern Pattern
	Guard   Expression
	Body    Expression
}

// IsExpression represents `value is { arm, arm, ... }`. Arms are ordered;
// the first matching arm wins.
type IsExpression struct {
	Token token.Token
	Value Expression
	Arms  []IsArm
}

func (ise *IsExpression) Accept(v Visitor)     { v.VisitIsExpression(ise) }
func (ise *IsExpression) expressionNode()      {}
func (ise *IsExpression) TokenLiteral() string { return ise.Token.Lexeme }
func (ise *IsExpression) Pos() token.Token     { return ise.Token }

type AsExpression struct {
	Token      token.Token
	Value      Expression
	TargetType TypeExpr
}

func (ae *AsExpression) Accept(v Visitor)     { v.VisitAsExpression(ae) }
func (ae *AsExpression) expressionNode()      {}
func (ae *AsExpression) TokenLiteral() string { return ae.Token.Lexeme }
func (ae *AsExpression) Pos() token.Token     { return ae.Token }

type AwaitExpression struct {
	Token token.Token
	Value Expression
}

func (aw *AwaitExpression) Accept(v Visitor)     { v.VisitAwaitExpression(aw) }
func (aw *AwaitExpression) expressionNode()      {}
func (aw *AwaitExpression) TokenLiteral() string { return aw.Token.Lexeme }
func (aw *AwaitExpression) Pos() token.Token     { return aw.Token }

type ArrayLiteral struct {
	Token    token.Token
	Elements []Expression
}

func (al *ArrayLiteral) Accept(v Visitor)     { v.VisitArrayLiteral(al) }
func (al *ArrayLiteral) expressionNode()      {}
func (al *ArrayLiteral) TokenLiteral() string { return al.Token.Lexeme }
func (al *ArrayLiteral) Pos() token.Token     { return al.Token }

type ArrayIndexExpression struct {
	Token token.Token
	Array Expression
	Index Expression
}

func (ai *ArrayIndexExpression) Accept(v Visitor)     { v.VisitArrayIndexExpression(ai) }
func (ai *ArrayIndexExpression) expressionNode()      {}
func (ai *ArrayIndexExpression) TokenLiteral() string { return ai.Token.Lexeme }
func (ai *ArrayIndexExpression) Pos() token.Token     { return ai.Token }

// RangeExpression represents `start..end` or `start..=end`; only valid as
// the Iterable of a LoopStatement.
type RangeExpression struct {
	Token     token.Token
	Start     Expression
	End       Expression
	Inclusive bool
}

func (re *RangeExpression) Accept(v Visitor)     { v.VisitRangeExpression(re) }
func (re *RangeExpression) expressionNode()      {}
func (re *RangeExpression) TokenLiteral() string { return re.Token.Lexeme }
func (re *RangeExpression) Pos() token.Token     { return re.Token }

// StringInterpPart is either a literal fragment (IsExpr == false) or a
// `${...}` sub-expression (IsExpr == true, Expr set).
type StringInterpPart struct {
	IsExpr  bool
	Literal string
	Expr    Expression
}

type StringInterpExpression struct {
	Token token.Token
	Parts []StringInterpPart
}

func (si *StringInterpExpression) Accept(v Visitor)     { v.VisitStringInterpExpression(si) }
func (si *StringInterpExpression) expressionNode()      {}
func (si *StringInterpExpression) TokenLiteral() string { return si.Token.Lexeme }
func (si *StringInterpExpression) Pos() token.Token     { return si.Token }

// TryExpression represents the postfix `expr?` error-propagation operator.
type TryExpression struct {
	Token token.Token
	Value Expression
}

func (te *TryExpression) Accept(v Visitor)     { v.VisitTryExpression(te) }
func (te *TryExpression) expressionNode()      {}
func (te *TryExpression) TokenLiteral() string { return te.Token.Lexeme }
func (te *TryExpression) Pos() token.Token     { return te.Token }

// ---- Patterns -----------------------------------------------------------

type IdentifierPattern struct {
	Token token.Token
	Name  string
}

func (ip *IdentifierPattern) Accept(v Visitor)     { v.VisitIdentifierPattern(ip) }
func (ip *IdentifierPattern) patternNode()         {}
func (ip *IdentifierPattern) TokenLiteral() string { return ip.Token.Lexeme }
func (ip *IdentifierPattern) Pos() token.Token     { return ip.Token }

// VariantPattern represents `Variant(b1, b2, ...)` or `Enum::Variant(...)`
// inside an `is` arm; EnumName is "" when elided and stays so, since
// the analyzer resolves the variant via its variant-to-enum index
// without filling the field in.
type VariantPattern struct {
	Token    token.Token
	EnumName string
	Variant  string
	Bindings []string
}

func (vp *VariantPattern) Accept(v Visitor)     { v.VisitVariantPattern(vp) }
func (vp *VariantPattern) patternNode()         {}
func (vp *VariantPattern) TokenLiteral() string { return vp.Token.Lexeme }
func (vp *VariantPattern) Pos() token.Token     { return vp.Token }

type LiteralPattern struct {
	Token token.Token
	Value Expression
}

func (lp *LiteralPattern) Accept(v Visitor)     { v.VisitLiteralPattern(lp) }
func (lp *LiteralPattern) patternNode()         {}
func (lp *LiteralPattern) TokenLiteral() string { return lp.Token.Lexeme }
func (lp *LiteralPattern) Pos() token.Token     { return lp.Token }

type WildcardPattern struct {
	Token token.Token
}

func (wp *WildcardPattern) Accept(v Visitor)     { v.VisitWildcardPattern(wp) }
func (wp *WildcardPattern) patternNode()         {}
func (wp *WildcardPattern) TokenLiteral() string { return wp.Token.Lexeme }
func (wp *WildcardPattern) Pos() token.Token     { return wp.Token }

// ---- Syntactic type references ------------------------------------------

type NamedTypeExpr struct {
	Token token.Token
	Name  string
}

func (nt *NamedTypeExpr) Accept(v Visitor)     { v.VisitNamedTypeExpr(nt) }
func (nt *NamedTypeExpr) typeExprNode()        {}
func (nt *NamedTypeExpr) TokenLiteral() string { return nt.Token.Lexeme }
func (nt *NamedTypeExpr) Pos() token.Token     { return nt.Token }
func (nt *NamedTypeExpr) String() string       { return nt.Name }

type PrimitiveTypeExpr struct {
	Token token.Token
	Name  string
}

func (pt *PrimitiveTypeExpr) Accept(v Visitor)     { v.VisitPrimitiveTypeExpr(pt) }
func (pt *PrimitiveTypeExpr) typeExprNode()        {}
func (pt *PrimitiveTypeExpr) TokenLiteral() string { return pt.Token.Lexeme }
func (pt *PrimitiveTypeExpr) Pos() token.Token     { return pt.Token }
func (pt *PrimitiveTypeExpr) String() string       { return pt.Name }

type PointerTypeExpr struct {
	Token token.Token
	Elem  TypeExpr
}

func (pt *PointerTypeExpr) Accept(v Visitor)     { v.VisitPointerTypeExpr(pt) }
func (pt *PointerTypeExpr) typeExprNode()        {}
func (pt *PointerTypeExpr) TokenLiteral() string { return pt.Token.Lexeme }
func (pt *PointerTypeExpr) Pos() token.Token     { return pt.Token }
func (pt *PointerTypeExpr) String() string       { return "*" + pt.Elem.String() }

// ArrayTypeExpr's Size is nil for an unsized array `[T]`.
type ArrayTypeExpr struct {
	Token token.Token
	Elem  TypeExpr
	Size  *int
}

func (at *ArrayTypeExpr) Accept(v Visitor)     { v.VisitArrayTypeExpr(at) }
func (at *ArrayTypeExpr) typeExprNode()        {}
func (at *ArrayTypeExpr) TokenLiteral() string { return at.Token.Lexeme }
func (at *ArrayTypeExpr) Pos() token.Token     { return at.Token }
func (at *ArrayTypeExpr) String() string {
	if at.Size == nil {
		return "[" + at.Elem.String() + "]"
	}
	return "[" + at.Elem.String() + "; N]"
}

type FunctionTypeExpr struct {
	Token  token.Token
	Params []TypeExpr
	Return TypeExpr
}

func (ft *FunctionTypeExpr) Accept(v Visitor)     { v.VisitFunctionTypeExpr(ft) }
func (ft *FunctionTypeExpr) typeExprNode()        {}
func (ft *FunctionTypeExpr) TokenLiteral() string { return ft.Token.Lexeme }
func (ft *FunctionTypeExpr) Pos() token.Token     { return ft.Token }
func (ft *FunctionTypeExpr) String() string       { return "fn(...)" }

type GenericInstanceTypeExpr struct {
	Token token.Token
	Name  string
	Args  []TypeExpr
}

func (gt *GenericInstanceTypeExpr) Accept(v Visitor)     { v.VisitGenericInstanceTypeExpr(gt) }
func (gt *GenericInstanceTypeExpr) typeExprNode()        {}
func (gt *GenericInstanceTypeExpr) TokenLiteral() string { return gt.Token.Lexeme }
func (gt *GenericInstanceTypeExpr) Pos() token.Token     { return gt.Token }
func (gt *GenericInstanceTypeExpr) String() string       { return gt.Name + "<...>" }
