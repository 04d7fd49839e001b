package ast

import (
	"phpfront/internal/source"
	"phpfront/internal/token"
)

// BadExpr stands in for an expression that could not be parsed.
type BadExpr struct {
	Base
}

type LiteralKind uint8

const (
	LitInt LiteralKind = iota
	LitFloat
	LitString
)

// Literal keeps the raw source text; values are never evaluated.
type Literal struct {
	Base
	Lit LiteralKind
	Raw string
}

// StringFragment is a literal run inside an interpolated string.
type StringFragment struct {
	Base
	Raw string
}

type InterpolationKind uint8

const (
	InterpDoubleQuoted InterpolationKind = iota
	InterpHeredoc
	InterpNowdoc
	InterpShellExec
)

// Interpolated is "..$x..", a heredoc/nowdoc or `...`. Parts are
// *StringFragment or embedded expressions, in source order.
type Interpolated struct {
	Base
	Form  InterpolationKind
	Label string // heredoc/nowdoc label
	Parts []Expr
}

type MagicConst struct {
	Base
	Tok token.Kind
}

// Variable is $name. Name excludes the dollar sign.
type Variable struct {
	Base
	Name string
	ID   source.StringID
}

// VariableVariable is $$x or ${expr}.
type VariableVariable struct {
	Base
	Inner  Expr
	Braced bool
}

// Array covers [..], array(..) and list(..).
type Array struct {
	Base
	Items []*ArrayItem
	Short bool // [...] form
	List  bool // list(...) form
}

// ArrayItem; Skipped marks an empty slot in destructuring ([, $b]).
type ArrayItem struct {
	Base
	Key     Expr
	Value   Expr
	ByRef   bool
	Spread  bool
	Skipped bool
}

type Binary struct {
	Base
	Op    token.Kind
	OpPos source.Span
	Left  Expr
	Right Expr
}

// Unary is a prefix operator: ! - + ~ @ and by-reference &.
type Unary struct {
	Base
	Op      token.Kind
	Operand Expr
}

type IncDec struct {
	Base
	Op      token.Kind // PlusPlus or MinusMinus
	Prefix  bool
	Operand Expr
}

type Cast struct {
	Base
	Cast token.Kind
	Expr Expr
}

// Assign covers = and all compound assignments. ByRef marks "= &".
type Assign struct {
	Base
	Op     token.Kind
	Target Expr
	Value  Expr
	ByRef  bool
}

// Ternary; Then is nil for the short form a ?: b.
type Ternary struct {
	Base
	Cond Expr
	Then Expr
	Else Expr
}

type Call struct {
	Base
	Callee Expr
	Args   *ArgumentList
}

// PropertyFetch is $o->p or $o?->p. Prop is *Identifier, *Variable or a
// braced expression.
type PropertyFetch struct {
	Base
	Object   Expr
	Prop     Expr
	Nullsafe bool
}

type MethodCall struct {
	Base
	Object   Expr
	Method   Expr
	Args     *ArgumentList
	Nullsafe bool
}

type StaticPropertyFetch struct {
	Base
	Class Expr
	Prop  Expr
}

// ClassConstFetch is C::NAME, C::class or C::{expr} (Dynamic).
type ClassConstFetch struct {
	Base
	Class   Expr
	Const   Expr
	Dynamic bool
}

type StaticCall struct {
	Base
	Class  Expr
	Method Expr
	Args   *ArgumentList
}

// Index is $a[i]; Index is nil for the append form $a[].
type Index struct {
	Base
	Target Expr
	Index  Expr
	Brace  bool // legacy $a{i}
}

// New; Args is nil for "new Foo" without parentheses.
type New struct {
	Base
	Class Expr
	Args  *ArgumentList
}

type AnonymousClass struct {
	Base
	Attrs      []*AttributeGroup
	Modifiers  Modifiers
	Args       *ArgumentList
	Extends    *Name
	Implements []*Name
	Members    []ClassMember
}

type Clone struct {
	Base
	Expr Expr
}

type Instanceof struct {
	Base
	Expr  Expr
	Class Expr
}

type Closure struct {
	Base
	Attrs      []*AttributeGroup
	Static     bool
	ByRef      bool
	Params     *ParameterList
	Uses       []*ClosureUse
	ReturnType TypeHint
	Body       *Block
}

type ClosureUse struct {
	Base
	ByRef bool
	Var   *Variable
}

type ArrowFunction struct {
	Base
	Attrs      []*AttributeGroup
	Static     bool
	ByRef      bool
	Params     *ParameterList
	ReturnType TypeHint
	Body       Expr
}

type Match struct {
	Base
	Subject Expr
	Arms    []*MatchArm
}

// MatchArm; Conds is empty for the default arm.
type MatchArm struct {
	Base
	Conds   []Expr
	Default bool
	Body    Expr
}

type Print struct {
	Base
	Expr Expr
}

// Yield; both Key and Value may be nil.
type Yield struct {
	Base
	Key   Expr
	Value Expr
}

type YieldFrom struct {
	Base
	Expr Expr
}

type Throw struct {
	Base
	Expr Expr
}

// Include is include, include_once, require or require_once.
type Include struct {
	Base
	Tok  token.Kind
	Expr Expr
}

type Isset struct {
	Base
	Vars []Expr
}

type Empty struct {
	Base
	Expr Expr
}

type Eval struct {
	Base
	Expr Expr
}

// Exit is exit or die with an optional argument.
type Exit struct {
	Base
	Die bool
	Arg Expr
}

type Paren struct {
	Base
	Expr Expr
}

func (*BadExpr) Kind() Kind             { return ExprBad }
func (*Literal) Kind() Kind             { return ExprLiteral }
func (*StringFragment) Kind() Kind      { return ExprStringFragment }
func (*Interpolated) Kind() Kind        { return ExprInterpolated }
func (*MagicConst) Kind() Kind          { return ExprMagicConst }
func (*Variable) Kind() Kind            { return ExprVariable }
func (*VariableVariable) Kind() Kind    { return ExprVariableVariable }
func (*Array) Kind() Kind               { return ExprArray }
func (*ArrayItem) Kind() Kind           { return NodeArrayItem }
func (*Binary) Kind() Kind              { return ExprBinary }
func (*Unary) Kind() Kind               { return ExprUnary }
func (*IncDec) Kind() Kind              { return ExprIncDec }
func (*Cast) Kind() Kind                { return ExprCast }
func (*Assign) Kind() Kind              { return ExprAssign }
func (*Ternary) Kind() Kind             { return ExprTernary }
func (*Call) Kind() Kind                { return ExprCall }
func (*PropertyFetch) Kind() Kind       { return ExprPropertyFetch }
func (*MethodCall) Kind() Kind          { return ExprMethodCall }
func (*StaticPropertyFetch) Kind() Kind { return ExprStaticPropertyFetch }
func (*ClassConstFetch) Kind() Kind     { return ExprClassConstFetch }
func (*StaticCall) Kind() Kind          { return ExprStaticCall }
func (*Index) Kind() Kind               { return ExprIndex }
func (*New) Kind() Kind                 { return ExprNew }
func (*AnonymousClass) Kind() Kind      { return ExprAnonymousClass }
func (*Clone) Kind() Kind               { return ExprClone }
func (*Instanceof) Kind() Kind          { return ExprInstanceof }
func (*Closure) Kind() Kind             { return ExprClosure }
func (*ClosureUse) Kind() Kind          { return NodeClosureUse }
func (*ArrowFunction) Kind() Kind       { return ExprArrowFunction }
func (*Match) Kind() Kind               { return ExprMatch }
func (*MatchArm) Kind() Kind            { return NodeMatchArm }
func (*Print) Kind() Kind               { return ExprPrint }
func (*Yield) Kind() Kind               { return ExprYield }
func (*YieldFrom) Kind() Kind           { return ExprYieldFrom }
func (*Throw) Kind() Kind               { return ExprThrow }
func (*Include) Kind() Kind             { return ExprInclude }
func (*Isset) Kind() Kind               { return ExprIsset }
func (*Empty) Kind() Kind               { return ExprEmpty }
func (*Eval) Kind() Kind                { return ExprEval }
func (*Exit) Kind() Kind                { return ExprExit }
func (*Paren) Kind() Kind               { return ExprParen }

func (*BadExpr) exprNode()             {}
func (*Literal) exprNode()             {}
func (*StringFragment) exprNode()      {}
func (*Interpolated) exprNode()        {}
func (*MagicConst) exprNode()          {}
func (*Variable) exprNode()            {}
func (*VariableVariable) exprNode()    {}
func (*Array) exprNode()               {}
func (*Binary) exprNode()              {}
func (*Unary) exprNode()               {}
func (*IncDec) exprNode()              {}
func (*Cast) exprNode()                {}
func (*Assign) exprNode()              {}
func (*Ternary) exprNode()             {}
func (*Call) exprNode()                {}
func (*PropertyFetch) exprNode()       {}
func (*MethodCall) exprNode()          {}
func (*StaticPropertyFetch) exprNode() {}
func (*ClassConstFetch) exprNode()     {}
func (*StaticCall) exprNode()          {}
func (*Index) exprNode()               {}
func (*New) exprNode()                 {}
func (*AnonymousClass) exprNode()      {}
func (*Clone) exprNode()               {}
func (*Instanceof) exprNode()          {}
func (*Closure) exprNode()             {}
func (*ArrowFunction) exprNode()       {}
func (*Match) exprNode()               {}
func (*Print) exprNode()               {}
func (*Yield) exprNode()               {}
func (*YieldFrom) exprNode()           {}
func (*Throw) exprNode()               {}
func (*Include) exprNode()             {}
func (*Isset) exprNode()               {}
func (*Empty) exprNode()               {}
func (*Eval) exprNode()                {}
func (*Exit) exprNode()                {}
func (*Paren) exprNode()               {}
