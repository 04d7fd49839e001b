package ast

// Kind tags every node variant. The set is closed: Children and Walk
// handle each one explicitly.
type Kind uint8

const (
	KindInvalid Kind = iota

	// Общие узлы
	NodeProgram
	NodeIdentifier
	NodeName
	NodeAttributeGroup
	NodeAttribute
	NodeArgumentList
	NodeArgument
	NodeParameterList
	NodeParameter
	NodeArrayItem
	NodeMatchArm
	NodeClosureUse
	NodeElseIf
	NodeElse
	NodeSwitchCase
	NodeCatch
	NodeFinally
	NodeDeclareDirective
	NodeUseItem
	NodeConstItem
	NodeStaticVar
	NodePropertyItem
	NodePropertyHook
	NodeTraitAdaptation

	// Выражения
	ExprBad
	ExprLiteral
	ExprStringFragment
	ExprInterpolated
	ExprMagicConst
	ExprVariable
	ExprVariableVariable
	ExprArray
	ExprBinary
	ExprUnary
	ExprIncDec
	ExprCast
	ExprAssign
	ExprTernary
	ExprCall
	ExprPropertyFetch
	ExprMethodCall
	ExprStaticPropertyFetch
	ExprClassConstFetch
	ExprStaticCall
	ExprIndex
	ExprNew
	ExprAnonymousClass
	ExprClone
	ExprInstanceof
	ExprClosure
	ExprArrowFunction
	ExprMatch
	ExprPrint
	ExprYield
	ExprYieldFrom
	ExprThrow
	ExprInclude
	ExprIsset
	ExprEmpty
	ExprEval
	ExprExit
	ExprParen

	// Типы
	TypeBad
	TypeNamed
	TypeNullable
	TypeUnion
	TypeIntersection

	// Инструкции
	StmtBad
	StmtInlineHTML
	StmtTag
	StmtExpr
	StmtEcho
	StmtIf
	StmtWhile
	StmtDoWhile
	StmtFor
	StmtForeach
	StmtSwitch
	StmtBreak
	StmtContinue
	StmtReturn
	StmtGlobal
	StmtStatic
	StmtUnset
	StmtTry
	StmtGoto
	StmtLabel
	StmtBlock
	StmtEmpty
	StmtDeclare
	StmtNamespace
	StmtUse
	StmtConst
	StmtHaltCompiler

	// Объявления
	DeclFunction
	DeclClass
	DeclInterface
	DeclTrait
	DeclEnum

	// Члены классов
	MemberBad
	MemberProperty
	MemberMethod
	MemberConst
	MemberTraitUse
	MemberEnumCase

	kindCount
)

var kindNames = [...]string{
	KindInvalid: "Invalid",

	NodeProgram:          "Program",
	NodeIdentifier:       "Identifier",
	NodeName:             "Name",
	NodeAttributeGroup:   "AttributeGroup",
	NodeAttribute:        "Attribute",
	NodeArgumentList:     "ArgumentList",
	NodeArgument:         "Argument",
	NodeParameterList:    "ParameterList",
	NodeParameter:        "Parameter",
	NodeArrayItem:        "ArrayItem",
	NodeMatchArm:         "MatchArm",
	NodeClosureUse:       "ClosureUse",
	NodeElseIf:           "ElseIf",
	NodeElse:             "Else",
	NodeSwitchCase:       "SwitchCase",
	NodeCatch:            "Catch",
	NodeFinally:          "Finally",
	NodeDeclareDirective: "DeclareDirective",
	NodeUseItem:          "UseItem",
	NodeConstItem:        "ConstItem",
	NodeStaticVar:        "StaticVar",
	NodePropertyItem:     "PropertyItem",
	NodePropertyHook:     "PropertyHook",
	NodeTraitAdaptation:  "TraitAdaptation",

	ExprBad:                 "BadExpr",
	ExprLiteral:             "Literal",
	ExprStringFragment:      "StringFragment",
	ExprInterpolated:        "Interpolated",
	ExprMagicConst:          "MagicConst",
	ExprVariable:            "Variable",
	ExprVariableVariable:    "VariableVariable",
	ExprArray:               "Array",
	ExprBinary:              "Binary",
	ExprUnary:               "Unary",
	ExprIncDec:              "IncDec",
	ExprCast:                "Cast",
	ExprAssign:              "Assign",
	ExprTernary:             "Ternary",
	ExprCall:                "Call",
	ExprPropertyFetch:       "PropertyFetch",
	ExprMethodCall:          "MethodCall",
	ExprStaticPropertyFetch: "StaticPropertyFetch",
	ExprClassConstFetch:     "ClassConstFetch",
	ExprStaticCall:          "StaticCall",
	ExprIndex:               "Index",
	ExprNew:                 "New",
	ExprAnonymousClass:      "AnonymousClass",
	ExprClone:               "Clone",
	ExprInstanceof:          "Instanceof",
	ExprClosure:             "Closure",
	ExprArrowFunction:       "ArrowFunction",
	ExprMatch:               "Match",
	ExprPrint:               "Print",
	ExprYield:               "Yield",
	ExprYieldFrom:           "YieldFrom",
	ExprThrow:               "Throw",
	ExprInclude:             "Include",
	ExprIsset:               "Isset",
	ExprEmpty:               "Empty",
	ExprEval:                "Eval",
	ExprExit:                "Exit",
	ExprParen:               "Paren",

	TypeBad:          "BadType",
	TypeNamed:        "NamedType",
	TypeNullable:     "NullableType",
	TypeUnion:        "UnionType",
	TypeIntersection: "IntersectionType",

	StmtBad:          "BadStmt",
	StmtInlineHTML:   "InlineHTML",
	StmtTag:          "Tag",
	StmtExpr:         "ExprStmt",
	StmtEcho:         "Echo",
	StmtIf:           "If",
	StmtWhile:        "While",
	StmtDoWhile:      "DoWhile",
	StmtFor:          "For",
	StmtForeach:      "Foreach",
	StmtSwitch:       "Switch",
	StmtBreak:        "Break",
	StmtContinue:     "Continue",
	StmtReturn:       "Return",
	StmtGlobal:       "Global",
	StmtStatic:       "StaticVars",
	StmtUnset:        "Unset",
	StmtTry:          "Try",
	StmtGoto:         "Goto",
	StmtLabel:        "Label",
	StmtBlock:        "Block",
	StmtEmpty:        "EmptyStmt",
	StmtDeclare:      "Declare",
	StmtNamespace:    "Namespace",
	StmtUse:          "Use",
	StmtConst:        "Const",
	StmtHaltCompiler: "HaltCompiler",

	DeclFunction:  "Function",
	DeclClass:     "Class",
	DeclInterface: "Interface",
	DeclTrait:     "Trait",
	DeclEnum:      "Enum",

	MemberBad:      "BadMember",
	MemberProperty: "Property",
	MemberMethod:   "Method",
	MemberConst:    "ClassConst",
	MemberTraitUse: "TraitUse",
	MemberEnumCase: "EnumCase",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsExpr, IsStmt and friends classify by range.
func (k Kind) IsExpr() bool   { return k >= ExprBad && k <= ExprParen }
func (k Kind) IsType() bool   { return k >= TypeBad && k <= TypeIntersection }
func (k Kind) IsStmt() bool   { return k >= StmtBad && k <= DeclEnum }
func (k Kind) IsDecl() bool   { return k >= DeclFunction && k <= DeclEnum }
func (k Kind) IsMember() bool { return k >= MemberBad && k <= MemberEnumCase }

// IsBad reports the error placeholders produced by recovery.
func (k Kind) IsBad() bool {
	return k == ExprBad || k == TypeBad || k == StmtBad || k == MemberBad
}
