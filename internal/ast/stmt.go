package ast

import (
	"phpfront/internal/token"
)

// BadStmt stands in for a statement that could not be parsed; its span
// covers the tokens skipped during recovery.
type BadStmt struct {
	Base
}

type InlineHTML struct {
	Base
	Text string
}

// Tag is an opening or closing tag appearing between statements.
type Tag struct {
	Base
	Tok token.Kind
}

type ExprStmt struct {
	Base
	Expr Expr
}

// Echo; FromTag is set for the "<?= ... ?>" form.
type Echo struct {
	Base
	Exprs   []Expr
	FromTag bool
}

// If. Alt marks the "if (...): ... endif;" syntax; in that case Then and
// the clause bodies are blocks without braces.
type If struct {
	Base
	Cond    Expr
	Then    Stmt
	ElseIfs []*ElseIf
	Else    *Else
	Alt     bool
}

type ElseIf struct {
	Base
	Cond Expr
	Body Stmt
}

type Else struct {
	Base
	Body Stmt
}

type While struct {
	Base
	Cond Expr
	Body Stmt
	Alt  bool
}

type DoWhile struct {
	Base
	Body Stmt
	Cond Expr
}

type For struct {
	Base
	Init []Expr
	Cond []Expr
	Step []Expr
	Body Stmt
	Alt  bool
}

type Foreach struct {
	Base
	Expr  Expr
	Key   Expr
	ByRef bool
	Value Expr
	Body  Stmt
	Alt   bool
}

type Switch struct {
	Base
	Subject Expr
	Cases   []*SwitchCase
	Alt     bool
}

// SwitchCase; Cond is nil for default.
type SwitchCase struct {
	Base
	Cond Expr
	Body []Stmt
}

type Break struct {
	Base
	Level Expr
}

type Continue struct {
	Base
	Level Expr
}

type Return struct {
	Base
	Value Expr
}

type Global struct {
	Base
	Vars []Expr
}

// StaticVars is "static $a = 1, $b;" inside a function body.
type StaticVars struct {
	Base
	Vars []*StaticVar
}

type StaticVar struct {
	Base
	Var     *Variable
	Default Expr
}

type Unset struct {
	Base
	Vars []Expr
}

type Try struct {
	Base
	Body    *Block
	Catches []*Catch
	Finally *Finally
}

// Catch; Var is nil for catch (E) without a variable (8.0).
type Catch struct {
	Base
	Types []*Name
	Var   *Variable
	Body  *Block
}

type Finally struct {
	Base
	Body *Block
}

type Goto struct {
	Base
	Label *Identifier
}

type Label struct {
	Base
	Name *Identifier
}

// Block is { ... }, or a colon-delimited body when Braced is false.
type Block struct {
	Base
	Stmts  []Stmt
	Braced bool
}

// EmptyStmt is a lone ";".
type EmptyStmt struct {
	Base
}

// Declare; Body is nil for "declare(strict_types=1);".
type Declare struct {
	Base
	Directives []*DeclareDirective
	Body       Stmt
	Alt        bool
}

type DeclareDirective struct {
	Base
	Name  *Identifier
	Value Expr
}

// Namespace; Body is nil for the statement form "namespace A;".
type Namespace struct {
	Base
	Name *Name
	Body *Block
}

// Use is an import. Tok is KwFunction, KwConst or Invalid for classes.
// Prefix is set for group use: use A\{B, C}.
type Use struct {
	Base
	Tok    token.Kind
	Prefix *Name
	Items  []*UseItem
}

type UseItem struct {
	Base
	Tok   token.Kind // per-item kind inside a mixed group use
	Name  *Name
	Alias *Identifier
}

type Const struct {
	Base
	Items []*ConstItem
}

type ConstItem struct {
	Base
	Name  *Identifier
	Value Expr
}

// HaltCompiler; Data is everything after the terminator.
type HaltCompiler struct {
	Base
	Data string
}

func (*BadStmt) Kind() Kind          { return StmtBad }
func (*InlineHTML) Kind() Kind       { return StmtInlineHTML }
func (*Tag) Kind() Kind              { return StmtTag }
func (*ExprStmt) Kind() Kind         { return StmtExpr }
func (*Echo) Kind() Kind             { return StmtEcho }
func (*If) Kind() Kind               { return StmtIf }
func (*ElseIf) Kind() Kind           { return NodeElseIf }
func (*Else) Kind() Kind             { return NodeElse }
func (*While) Kind() Kind            { return StmtWhile }
func (*DoWhile) Kind() Kind          { return StmtDoWhile }
func (*For) Kind() Kind              { return StmtFor }
func (*Foreach) Kind() Kind          { return StmtForeach }
func (*Switch) Kind() Kind           { return StmtSwitch }
func (*SwitchCase) Kind() Kind       { return NodeSwitchCase }
func (*Break) Kind() Kind            { return StmtBreak }
func (*Continue) Kind() Kind         { return StmtContinue }
func (*Return) Kind() Kind           { return StmtReturn }
func (*Global) Kind() Kind           { return StmtGlobal }
func (*StaticVars) Kind() Kind       { return StmtStatic }
func (*StaticVar) Kind() Kind        { return NodeStaticVar }
func (*Unset) Kind() Kind            { return StmtUnset }
func (*Try) Kind() Kind              { return StmtTry }
func (*Catch) Kind() Kind            { return NodeCatch }
func (*Finally) Kind() Kind          { return NodeFinally }
func (*Goto) Kind() Kind             { return StmtGoto }
func (*Label) Kind() Kind            { return StmtLabel }
func (*Block) Kind() Kind            { return StmtBlock }
func (*EmptyStmt) Kind() Kind        { return StmtEmpty }
func (*Declare) Kind() Kind          { return StmtDeclare }
func (*DeclareDirective) Kind() Kind { return NodeDeclareDirective }
func (*Namespace) Kind() Kind        { return StmtNamespace }
func (*Use) Kind() Kind              { return StmtUse }
func (*UseItem) Kind() Kind          { return NodeUseItem }
func (*Const) Kind() Kind            { return StmtConst }
func (*ConstItem) Kind() Kind        { return NodeConstItem }
func (*HaltCompiler) Kind() Kind     { return StmtHaltCompiler }

func (*BadStmt) stmtNode()      {}
func (*InlineHTML) stmtNode()   {}
func (*Tag) stmtNode()          {}
func (*ExprStmt) stmtNode()     {}
func (*Echo) stmtNode()         {}
func (*If) stmtNode()           {}
func (*While) stmtNode()        {}
func (*DoWhile) stmtNode()      {}
func (*For) stmtNode()          {}
func (*Foreach) stmtNode()      {}
func (*Switch) stmtNode()       {}
func (*Break) stmtNode()        {}
func (*Continue) stmtNode()     {}
func (*Return) stmtNode()       {}
func (*Global) stmtNode()       {}
func (*StaticVars) stmtNode()   {}
func (*Unset) stmtNode()        {}
func (*Try) stmtNode()          {}
func (*Goto) stmtNode()         {}
func (*Label) stmtNode()        {}
func (*Block) stmtNode()        {}
func (*EmptyStmt) stmtNode()    {}
func (*Declare) stmtNode()      {}
func (*Namespace) stmtNode()    {}
func (*Use) stmtNode()          {}
func (*Const) stmtNode()        {}
func (*HaltCompiler) stmtNode() {}
