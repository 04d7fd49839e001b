package ast

// FunctionDecl is a named top-level function.
type FunctionDecl struct {
	Base
	Attrs      []*AttributeGroup
	ByRef      bool
	Name       *Identifier
	Params     *ParameterList
	ReturnType TypeHint
	Body       *Block
}

// ClassDecl; Modifiers holds abstract, final and readonly.
type ClassDecl struct {
	Base
	Attrs      []*AttributeGroup
	Modifiers  Modifiers
	Name       *Identifier
	Extends    *Name
	Implements []*Name
	Members    []ClassMember
}

type InterfaceDecl struct {
	Base
	Attrs   []*AttributeGroup
	Name    *Identifier
	Extends []*Name
	Members []ClassMember
}

type TraitDecl struct {
	Base
	Attrs   []*AttributeGroup
	Name    *Identifier
	Members []ClassMember
}

// EnumDecl; BackingType is nil for a pure enum.
type EnumDecl struct {
	Base
	Attrs       []*AttributeGroup
	Name        *Identifier
	BackingType TypeHint
	Implements  []*Name
	Members     []ClassMember
}

// ===== Члены =====

// BadMember stands in for a class member that could not be parsed.
type BadMember struct {
	Base
}

// PropertyDecl is one property declaration statement. Hooks are allowed only
// when Props has a single entry.
type PropertyDecl struct {
	Base
	Attrs     []*AttributeGroup
	Modifiers Modifiers
	Type      TypeHint
	Props     []*PropertyItem
	Hooks     []*PropertyHook
}

type PropertyItem struct {
	Base
	Var     *Variable
	Default Expr
}

// PropertyHook is get/set inside a hooked property. Exactly one of Expr
// (=> form) and Body is set, or neither for an abstract hook.
type PropertyHook struct {
	Base
	Attrs     []*AttributeGroup
	Modifiers Modifiers
	ByRef     bool
	Name      *Identifier
	Params    *ParameterList
	Expr      Expr
	Body      *Block
}

// MethodDecl; Body is nil for abstract and interface methods.
type MethodDecl struct {
	Base
	Attrs      []*AttributeGroup
	Modifiers  Modifiers
	ByRef      bool
	Name       *Identifier
	Params     *ParameterList
	ReturnType TypeHint
	Body       *Block
}

type ClassConstDecl struct {
	Base
	Attrs     []*AttributeGroup
	Modifiers Modifiers
	Type      TypeHint
	Items     []*ConstItem
}

// TraitUse; Adaptations is nil for "use A, B;".
type TraitUse struct {
	Base
	Traits      []*Name
	Adaptations []*TraitAdaptation
	Braced      bool
}

// TraitAdaptation is either "A::m insteadof B;" (Insteadof set) or
// "m as [visibility] [alias];".
type TraitAdaptation struct {
	Base
	Trait      *Name
	Method     *Identifier
	Insteadof  []*Name
	Visibility *Modifier
	Alias      *Identifier
}

type EnumCase struct {
	Base
	Attrs []*AttributeGroup
	Name  *Identifier
	Value Expr
}

func (*FunctionDecl) Kind() Kind    { return DeclFunction }
func (*ClassDecl) Kind() Kind       { return DeclClass }
func (*InterfaceDecl) Kind() Kind   { return DeclInterface }
func (*TraitDecl) Kind() Kind       { return DeclTrait }
func (*EnumDecl) Kind() Kind        { return DeclEnum }
func (*BadMember) Kind() Kind       { return MemberBad }
func (*PropertyDecl) Kind() Kind    { return MemberProperty }
func (*PropertyItem) Kind() Kind    { return NodePropertyItem }
func (*PropertyHook) Kind() Kind    { return NodePropertyHook }
func (*MethodDecl) Kind() Kind      { return MemberMethod }
func (*ClassConstDecl) Kind() Kind  { return MemberConst }
func (*TraitUse) Kind() Kind        { return MemberTraitUse }
func (*TraitAdaptation) Kind() Kind { return NodeTraitAdaptation }
func (*EnumCase) Kind() Kind        { return MemberEnumCase }

func (*FunctionDecl) stmtNode()  {}
func (*ClassDecl) stmtNode()     {}
func (*InterfaceDecl) stmtNode() {}
func (*TraitDecl) stmtNode()     {}
func (*EnumDecl) stmtNode()      {}

func (*BadMember) memberNode()      {}
func (*PropertyDecl) memberNode()   {}
func (*MethodDecl) memberNode()     {}
func (*ClassConstDecl) memberNode() {}
func (*TraitUse) memberNode()       {}
func (*EnumCase) memberNode()       {}
