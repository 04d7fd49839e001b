package ast

import "fmt"

// Visitor receives nodes in depth-first order. Enter is called before the
// children and Leave after them; returning false from Enter skips the
// children, Leave is still called.
type Visitor interface {
	Enter(n Node) bool
	Leave(n Node)
}

// Walk traverses n and all of its descendants in source order.
func Walk(v Visitor, n Node) {
	if n == nil {
		return
	}
	if v.Enter(n) {
		for _, c := range Children(n) {
			Walk(v, c)
		}
	}
	v.Leave(n)
}

type inspector func(Node) bool

func (f inspector) Enter(n Node) bool { return f(n) }
func (inspector) Leave(Node)          {}

// Inspect is the pre-order shortcut: f is called for each node, children are
// visited while f returns true.
func Inspect(n Node, f func(Node) bool) {
	Walk(inspector(f), n)
}

// kids собирает детей без nil
type kids []Node

func (k *kids) expr(e Expr) {
	if e != nil {
		*k = append(*k, e)
	}
}

func (k *kids) stmt(s Stmt) {
	if s != nil {
		*k = append(*k, s)
	}
}

func (k *kids) typ(t TypeHint) {
	if t != nil {
		*k = append(*k, t)
	}
}

func (k *kids) ident(n *Identifier) {
	if n != nil {
		*k = append(*k, n)
	}
}

func (k *kids) name(n *Name) {
	if n != nil {
		*k = append(*k, n)
	}
}

func (k *kids) variable(n *Variable) {
	if n != nil {
		*k = append(*k, n)
	}
}

func (k *kids) block(n *Block) {
	if n != nil {
		*k = append(*k, n)
	}
}

func (k *kids) args(n *ArgumentList) {
	if n != nil {
		*k = append(*k, n)
	}
}

func (k *kids) params(n *ParameterList) {
	if n != nil {
		*k = append(*k, n)
	}
}

func each[T Node](k *kids, xs []T) {
	for _, x := range xs {
		*k = append(*k, x)
	}
}

// Children returns the direct children of n in source order.
// It panics on a node type it does not know: the node set is closed.
func Children(n Node) []Node {
	var k kids
	switch n := n.(type) {
	case *Program:
		each(&k, n.Statements)

	// leaves
	case *Identifier, *Name, *BadExpr, *Literal, *StringFragment, *MagicConst,
		*Variable, *BadType, *BadStmt, *InlineHTML, *Tag, *EmptyStmt,
		*HaltCompiler, *BadMember:

	case *AttributeGroup:
		each(&k, n.Attrs)
	case *Attribute:
		k.name(n.Name)
		k.args(n.Args)
	case *ArgumentList:
		each(&k, n.Args)
	case *Argument:
		k.ident(n.Name)
		k.expr(n.Value)
	case *ParameterList:
		each(&k, n.Params)
		if n.Bad != nil {
			k = append(k, n.Bad)
		}
	case *Parameter:
		each(&k, n.Attrs)
		k.typ(n.Type)
		k.variable(n.Var)
		k.expr(n.Default)
		each(&k, n.Hooks)

	// выражения
	case *Interpolated:
		each(&k, n.Parts)
	case *VariableVariable:
		k.expr(n.Inner)
	case *Array:
		each(&k, n.Items)
	case *ArrayItem:
		k.expr(n.Key)
		k.expr(n.Value)
	case *Binary:
		k.expr(n.Left)
		k.expr(n.Right)
	case *Unary:
		k.expr(n.Operand)
	case *IncDec:
		k.expr(n.Operand)
	case *Cast:
		k.expr(n.Expr)
	case *Assign:
		k.expr(n.Target)
		k.expr(n.Value)
	case *Ternary:
		k.expr(n.Cond)
		k.expr(n.Then)
		k.expr(n.Else)
	case *Call:
		k.expr(n.Callee)
		k.args(n.Args)
	case *PropertyFetch:
		k.expr(n.Object)
		k.expr(n.Prop)
	case *MethodCall:
		k.expr(n.Object)
		k.expr(n.Method)
		k.args(n.Args)
	case *StaticPropertyFetch:
		k.expr(n.Class)
		k.expr(n.Prop)
	case *ClassConstFetch:
		k.expr(n.Class)
		k.expr(n.Const)
	case *StaticCall:
		k.expr(n.Class)
		k.expr(n.Method)
		k.args(n.Args)
	case *Index:
		k.expr(n.Target)
		k.expr(n.Index)
	case *New:
		k.expr(n.Class)
		k.args(n.Args)
	case *AnonymousClass:
		each(&k, n.Attrs)
		k.args(n.Args)
		k.name(n.Extends)
		each(&k, n.Implements)
		each(&k, n.Members)
	case *Clone:
		k.expr(n.Expr)
	case *Instanceof:
		k.expr(n.Expr)
		k.expr(n.Class)
	case *Closure:
		each(&k, n.Attrs)
		k.params(n.Params)
		each(&k, n.Uses)
		k.typ(n.ReturnType)
		k.block(n.Body)
	case *ClosureUse:
		k.variable(n.Var)
	case *ArrowFunction:
		each(&k, n.Attrs)
		k.params(n.Params)
		k.typ(n.ReturnType)
		k.expr(n.Body)
	case *Match:
		k.expr(n.Subject)
		each(&k, n.Arms)
	case *MatchArm:
		each(&k, n.Conds)
		k.expr(n.Body)
	case *Print:
		k.expr(n.Expr)
	case *Yield:
		k.expr(n.Key)
		k.expr(n.Value)
	case *YieldFrom:
		k.expr(n.Expr)
	case *Throw:
		k.expr(n.Expr)
	case *Include:
		k.expr(n.Expr)
	case *Isset:
		each(&k, n.Vars)
	case *Empty:
		k.expr(n.Expr)
	case *Eval:
		k.expr(n.Expr)
	case *Exit:
		k.expr(n.Arg)
	case *Paren:
		k.expr(n.Expr)

	// типы
	case *NamedType:
		k.name(n.Name)
	case *NullableType:
		k.typ(n.Inner)
	case *UnionType:
		each(&k, n.Types)
	case *IntersectionType:
		each(&k, n.Types)

	// инструкции
	case *ExprStmt:
		k.expr(n.Expr)
	case *Echo:
		each(&k, n.Exprs)
	case *If:
		k.expr(n.Cond)
		k.stmt(n.Then)
		each(&k, n.ElseIfs)
		if n.Else != nil {
			k = append(k, n.Else)
		}
	case *ElseIf:
		k.expr(n.Cond)
		k.stmt(n.Body)
	case *Else:
		k.stmt(n.Body)
	case *While:
		k.expr(n.Cond)
		k.stmt(n.Body)
	case *DoWhile:
		k.stmt(n.Body)
		k.expr(n.Cond)
	case *For:
		each(&k, n.Init)
		each(&k, n.Cond)
		each(&k, n.Step)
		k.stmt(n.Body)
	case *Foreach:
		k.expr(n.Expr)
		k.expr(n.Key)
		k.expr(n.Value)
		k.stmt(n.Body)
	case *Switch:
		k.expr(n.Subject)
		each(&k, n.Cases)
	case *SwitchCase:
		k.expr(n.Cond)
		each(&k, n.Body)
	case *Break:
		k.expr(n.Level)
	case *Continue:
		k.expr(n.Level)
	case *Return:
		k.expr(n.Value)
	case *Global:
		each(&k, n.Vars)
	case *StaticVars:
		each(&k, n.Vars)
	case *StaticVar:
		k.variable(n.Var)
		k.expr(n.Default)
	case *Unset:
		each(&k, n.Vars)
	case *Try:
		k.block(n.Body)
		each(&k, n.Catches)
		if n.Finally != nil {
			k = append(k, n.Finally)
		}
	case *Catch:
		each(&k, n.Types)
		k.variable(n.Var)
		k.block(n.Body)
	case *Finally:
		k.block(n.Body)
	case *Goto:
		k.ident(n.Label)
	case *Label:
		k.ident(n.Name)
	case *Block:
		each(&k, n.Stmts)
	case *Declare:
		each(&k, n.Directives)
		k.stmt(n.Body)
	case *DeclareDirective:
		k.ident(n.Name)
		k.expr(n.Value)
	case *Namespace:
		k.name(n.Name)
		k.block(n.Body)
	case *Use:
		k.name(n.Prefix)
		each(&k, n.Items)
	case *UseItem:
		k.name(n.Name)
		k.ident(n.Alias)
	case *Const:
		each(&k, n.Items)
	case *ConstItem:
		k.ident(n.Name)
		k.expr(n.Value)

	// объявления
	case *FunctionDecl:
		each(&k, n.Attrs)
		k.ident(n.Name)
		k.params(n.Params)
		k.typ(n.ReturnType)
		k.block(n.Body)
	case *ClassDecl:
		each(&k, n.Attrs)
		k.ident(n.Name)
		k.name(n.Extends)
		each(&k, n.Implements)
		each(&k, n.Members)
	case *InterfaceDecl:
		each(&k, n.Attrs)
		k.ident(n.Name)
		each(&k, n.Extends)
		each(&k, n.Members)
	case *TraitDecl:
		each(&k, n.Attrs)
		k.ident(n.Name)
		each(&k, n.Members)
	case *EnumDecl:
		each(&k, n.Attrs)
		k.ident(n.Name)
		k.typ(n.BackingType)
		each(&k, n.Implements)
		each(&k, n.Members)

	// члены
	case *PropertyDecl:
		each(&k, n.Attrs)
		k.typ(n.Type)
		each(&k, n.Props)
		each(&k, n.Hooks)
	case *PropertyItem:
		k.variable(n.Var)
		k.expr(n.Default)
	case *PropertyHook:
		each(&k, n.Attrs)
		k.ident(n.Name)
		k.params(n.Params)
		k.expr(n.Expr)
		k.block(n.Body)
	case *MethodDecl:
		each(&k, n.Attrs)
		k.ident(n.Name)
		k.params(n.Params)
		k.typ(n.ReturnType)
		k.block(n.Body)
	case *ClassConstDecl:
		each(&k, n.Attrs)
		k.typ(n.Type)
		each(&k, n.Items)
	case *TraitUse:
		each(&k, n.Traits)
		each(&k, n.Adaptations)
	case *TraitAdaptation:
		k.name(n.Trait)
		k.ident(n.Method)
		each(&k, n.Insteadof)
		k.ident(n.Alias)
	case *EnumCase:
		each(&k, n.Attrs)
		k.ident(n.Name)
		k.expr(n.Value)

	default:
		panic(fmt.Errorf("ast.Children: unexpected node type %T", n))
	}
	return k
}
