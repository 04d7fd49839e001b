package ast

import (
	"phpfront/internal/source"
	"phpfront/internal/token"
)

// Node is implemented by every AST node.
type Node interface {
	Kind() Kind
	Span() source.Span
}

// Expr is a sealed interface: only types in this package implement it.
type Expr interface {
	Node
	exprNode()
}

type Stmt interface {
	Node
	stmtNode()
}

type TypeHint interface {
	Node
	typeNode()
}

// ClassMember is anything that may appear in a class-like body.
type ClassMember interface {
	Node
	memberNode()
}

// Base carries the span shared by all nodes.
type Base struct {
	Loc source.Span
}

func (b *Base) Span() source.Span { return b.Loc }

// At is a shorthand for Base{Loc: sp}.
func At(sp source.Span) Base { return Base{Loc: sp} }

// Modifier is one of abstract, final, static, readonly, public, ... kept with
// its position. Modifiers are not nodes and are not walked.
type Modifier struct {
	Tok  token.Kind
	Span source.Span
}

// Modifiers is a modifier list in source order.
type Modifiers []Modifier

// Has reports whether the list contains k.
func (ms Modifiers) Has(k token.Kind) bool {
	for _, m := range ms {
		if m.Tok == k {
			return true
		}
	}
	return false
}

// Program is the root of every parse. Trivia holds every whitespace and
// comment token of the file in source order.
type Program struct {
	Base
	Statements []Stmt
	Trivia     []token.Token
}

func (*Program) Kind() Kind { return NodeProgram }

// Identifier is a bare word: a declaration name, a member name or a label.
// It is also usable as an expression in member position ($o->name, C::NAME).
type Identifier struct {
	Base
	Name string
	ID   source.StringID
}

func (*Identifier) Kind() Kind { return NodeIdentifier }
func (*Identifier) exprNode()  {}

// NameKind distinguishes the lexical forms of a name.
type NameKind uint8

const (
	NameUnqualified    NameKind = iota // Foo
	NameQualified                      // Foo\Bar
	NameFullyQualified                 // \Foo\Bar
	NameRelative                       // namespace\Foo
)

// Name references a class, function or constant. As an expression it is a
// constant fetch (FOO, true, null).
type Name struct {
	Base
	Text string
	Form NameKind
	ID   source.StringID
}

func (*Name) Kind() Kind { return NodeName }
func (*Name) exprNode()  {}

type AttributeGroup struct {
	Base
	Attrs []*Attribute
}

func (*AttributeGroup) Kind() Kind { return NodeAttributeGroup }

type Attribute struct {
	Base
	Name *Name
	Args *ArgumentList // nil без скобок
}

func (*Attribute) Kind() Kind { return NodeAttribute }

// ArgumentList is "( ... )" of a call. Callable marks the first-class
// callable form f(...).
type ArgumentList struct {
	Base
	Args     []*Argument
	Callable bool
}

func (*ArgumentList) Kind() Kind { return NodeArgumentList }

type Argument struct {
	Base
	Name   *Identifier // named argument, nil when positional
	Spread bool
	Value  Expr
}

func (*Argument) Kind() Kind { return NodeArgument }

// ParameterList is "( ... )" of a function-like. Bad is set when the list
// could not be parsed and covers the skipped tokens.
type ParameterList struct {
	Base
	Params []*Parameter
	Bad    *BadExpr
}

func (*ParameterList) Kind() Kind { return NodeParameterList }

// Parameter; non-empty Modifiers make it a promoted constructor property.
type Parameter struct {
	Base
	Attrs     []*AttributeGroup
	Modifiers Modifiers
	Type      TypeHint
	ByRef     bool
	Variadic  bool
	Var       *Variable
	Default   Expr
	Hooks     []*PropertyHook
}

func (*Parameter) Kind() Kind { return NodeParameter }
