package token

import "strings"

var keywords = map[string]Kind{
	"abstract":        KwAbstract,
	"and":             KwAnd,
	"array":           KwArray,
	"as":              KwAs,
	"break":           KwBreak,
	"callable":        KwCallable,
	"case":            KwCase,
	"catch":           KwCatch,
	"class":           KwClass,
	"clone":           KwClone,
	"const":           KwConst,
	"continue":        KwContinue,
	"declare":         KwDeclare,
	"default":         KwDefault,
	"die":             KwDie,
	"do":              KwDo,
	"echo":            KwEcho,
	"else":            KwElse,
	"elseif":          KwElseif,
	"empty":           KwEmpty,
	"enddeclare":      KwEnddeclare,
	"endfor":          KwEndfor,
	"endforeach":      KwEndforeach,
	"endif":           KwEndif,
	"endswitch":       KwEndswitch,
	"endwhile":        KwEndwhile,
	"eval":            KwEval,
	"exit":            KwExit,
	"extends":         KwExtends,
	"final":           KwFinal,
	"finally":         KwFinally,
	"fn":              KwFn,
	"for":             KwFor,
	"foreach":         KwForeach,
	"function":        KwFunction,
	"global":          KwGlobal,
	"goto":            KwGoto,
	"if":              KwIf,
	"implements":      KwImplements,
	"include":         KwInclude,
	"include_once":    KwIncludeOnce,
	"instanceof":      KwInstanceof,
	"insteadof":       KwInsteadof,
	"interface":       KwInterface,
	"isset":           KwIsset,
	"list":            KwList,
	"match":           KwMatch,
	"namespace":       KwNamespace,
	"new":             KwNew,
	"or":              KwOr,
	"print":           KwPrint,
	"private":         KwPrivate,
	"protected":       KwProtected,
	"public":          KwPublic,
	"readonly":        KwReadonly,
	"require":         KwRequire,
	"require_once":    KwRequireOnce,
	"return":          KwReturn,
	"static":          KwStatic,
	"switch":          KwSwitch,
	"throw":           KwThrow,
	"trait":           KwTrait,
	"try":             KwTry,
	"unset":           KwUnset,
	"use":             KwUse,
	"var":             KwVar,
	"while":           KwWhile,
	"xor":             KwXor,
	"yield":           KwYield,
	"__halt_compiler": KwHaltCompiler,
	"__class__":       MagicClass,
	"__dir__":         MagicDir,
	"__file__":        MagicFile,
	"__function__":    MagicFunction,
	"__line__":        MagicLine,
	"__method__":      MagicMethod,
	"__namespace__":   MagicNamespace,
	"__trait__":       MagicTrait,
	"__property__":    MagicProperty,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Keywords and magic constants are case-insensitive in PHP: FUNCTION, Function
// and function all map to KwFunction.
func LookupKeyword(ident string) (Kind, bool) {
	if k, ok := keywords[ident]; ok {
		return k, true
	}
	k, ok := keywords[strings.ToLower(ident)]
	return k, ok
}
