package token

import "strconv"

// kindNames holds the display form: the exact spelling for punctuation and
// keywords, the constant name otherwise.
var kindNames = [...]string{
	Invalid:                "Invalid",
	EOF:                    "EOF",
	Whitespace:             "Whitespace",
	SingleLineComment:      "SingleLineComment",
	HashComment:            "HashComment",
	MultiLineComment:       "MultiLineComment",
	DocBlockComment:        "DocBlockComment",
	InlineText:             "InlineText",
	OpenTag:                "<?php",
	ShortOpenTag:           "<?",
	EchoTag:                "<?=",
	CloseTag:               "?>",
	HaltCompilerData:       "HaltCompilerData",
	Variable:               "Variable",
	Ident:                  "Ident",
	QualifiedIdent:         "QualifiedIdent",
	FullyQualifiedIdent:    "FullyQualifiedIdent",
	RelativeIdent:          "RelativeIdent",
	IntLit:                 "IntLit",
	FloatLit:               "FloatLit",
	StringLit:              "StringLit",
	StringPart:             "StringPart",
	DoubleQuote:            "\"",
	Backtick:               "`",
	DocumentStart:          "<<<",
	DocumentEnd:            "DocumentEnd",
	IntCast:                "(int)",
	BoolCast:               "(bool)",
	FloatCast:              "(float)",
	StringCast:             "(string)",
	ArrayCast:              "(array)",
	ObjectCast:             "(object)",
	UnsetCast:              "(unset)",
	VoidCast:               "(void)",
	Plus:                   "+",
	Minus:                  "-",
	Star:                   "*",
	Slash:                  "/",
	Percent:                "%",
	StarStar:               "**",
	Dot:                    ".",
	Assign:                 "=",
	PlusAssign:             "+=",
	MinusAssign:            "-=",
	StarAssign:             "*=",
	SlashAssign:            "/=",
	PercentAssign:          "%=",
	StarStarAssign:         "**=",
	DotAssign:              ".=",
	AmpAssign:              "&=",
	PipeAssign:             "|=",
	CaretAssign:            "^=",
	ShlAssign:              "<<=",
	ShrAssign:              ">>=",
	QuestionQuestionAssign: "??=",
	EqEq:                   "==",
	EqEqEq:                 "===",
	BangEq:                 "!=",
	BangEqEq:               "!==",
	LtGt:                   "<>",
	Lt:                     "<",
	LtEq:                   "<=",
	Gt:                     ">",
	GtEq:                   ">=",
	Spaceship:              "<=>",
	Shl:                    "<<",
	Shr:                    ">>",
	Amp:                    "&",
	Pipe:                   "|",
	Caret:                  "^",
	Tilde:                  "~",
	Bang:                   "!",
	AndAnd:                 "&&",
	OrOr:                   "||",
	Question:               "?",
	QuestionQuestion:       "??",
	NullsafeArrow:          "?->",
	Colon:                  ":",
	ColonColon:             "::",
	Semicolon:              ";",
	Comma:                  ",",
	Arrow:                  "->",
	FatArrow:               "=>",
	PlusPlus:               "++",
	MinusMinus:             "--",
	At:                     "@",
	Dollar:                 "$",
	DollarLBrace:           "${",
	Backslash:              "\\",
	Ellipsis:               "...",
	PipeGt:                 "|>",
	HashLBracket:           "#[",
	LParen:                 "(",
	RParen:                 ")",
	LBrace:                 "{",
	RBrace:                 "}",
	LBracket:               "[",
	RBracket:               "]",
	KwAbstract:             "abstract",
	KwAnd:                  "and",
	KwArray:                "array",
	KwAs:                   "as",
	KwBreak:                "break",
	KwCallable:             "callable",
	KwCase:                 "case",
	KwCatch:                "catch",
	KwClass:                "class",
	KwClone:                "clone",
	KwConst:                "const",
	KwContinue:             "continue",
	KwDeclare:              "declare",
	KwDefault:              "default",
	KwDie:                  "die",
	KwDo:                   "do",
	KwEcho:                 "echo",
	KwElse:                 "else",
	KwElseif:               "elseif",
	KwEmpty:                "empty",
	KwEnddeclare:           "enddeclare",
	KwEndfor:               "endfor",
	KwEndforeach:           "endforeach",
	KwEndif:                "endif",
	KwEndswitch:            "endswitch",
	KwEndwhile:             "endwhile",
	KwEval:                 "eval",
	KwExit:                 "exit",
	KwExtends:              "extends",
	KwFinal:                "final",
	KwFinally:              "finally",
	KwFn:                   "fn",
	KwFor:                  "for",
	KwForeach:              "foreach",
	KwFunction:             "function",
	KwGlobal:               "global",
	KwGoto:                 "goto",
	KwIf:                   "if",
	KwImplements:           "implements",
	KwInclude:              "include",
	KwIncludeOnce:          "include_once",
	KwInstanceof:           "instanceof",
	KwInsteadof:            "insteadof",
	KwInterface:            "interface",
	KwIsset:                "isset",
	KwList:                 "list",
	KwMatch:                "match",
	KwNamespace:            "namespace",
	KwNew:                  "new",
	KwOr:                   "or",
	KwPrint:                "print",
	KwPrivate:              "private",
	KwProtected:            "protected",
	KwPublic:               "public",
	KwReadonly:             "readonly",
	KwRequire:              "require",
	KwRequireOnce:          "require_once",
	KwReturn:               "return",
	KwStatic:               "static",
	KwSwitch:               "switch",
	KwThrow:                "throw",
	KwTrait:                "trait",
	KwTry:                  "try",
	KwUnset:                "unset",
	KwUse:                  "use",
	KwVar:                  "var",
	KwWhile:                "while",
	KwXor:                  "xor",
	KwYield:                "yield",
	KwHaltCompiler:         "__halt_compiler",
	KwPrivateSet:           "private(set)",
	KwProtectedSet:         "protected(set)",
	KwPublicSet:            "public(set)",
	MagicClass:             "__CLASS__",
	MagicDir:               "__DIR__",
	MagicFile:              "__FILE__",
	MagicFunction:          "__FUNCTION__",
	MagicLine:              "__LINE__",
	MagicMethod:            "__METHOD__",
	MagicNamespace:         "__NAMESPACE__",
	MagicTrait:             "__TRAIT__",
	MagicProperty:          "__PROPERTY__",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}
