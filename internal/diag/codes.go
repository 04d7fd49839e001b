package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo                      Code = 1000
	LexUnknownChar               Code = 1001
	LexUnterminatedString        Code = 1002
	LexUnterminatedBlockComment  Code = 1003
	LexBadNumber                 Code = 1004
	LexUnterminatedHeredoc       Code = 1005
	LexUnterminatedInterpolation Code = 1006
	LexBadHeredocLabel           Code = 1007
	LexBadHeredocIndent          Code = 1008
	LexUnterminatedBacktick      Code = 1009

	// Парсерные
	SynInfo                  Code = 2000
	SynUnexpectedToken       Code = 2001
	SynUnclosedDelimiter     Code = 2002
	SynUnclosedParen         Code = 2006
	SynUnclosedBrace         Code = 2007
	SynUnclosedBracket       Code = 2008
	SynExpectSemicolon       Code = 2012
	SynExpectIdentifier      Code = 2102
	SynExpectExpression      Code = 2200
	SynExpectVariable        Code = 2201
	SynExpectType            Code = 2202
	SynInvalidAssignTarget   Code = 2203
	SynNestedTernary         Code = 2204
	SynMethodBodyInInterface Code = 2205
	SynMissingMethodBody     Code = 2206
	SynPropertyInEnum        Code = 2207
	SynClosureInAttribute    Code = 2208
	SynInvalidTypeNesting    Code = 2209
	SynMultipleDefault       Code = 2210
	SynMisplacedSkip         Code = 2211
	SynPositionalAfterNamed  Code = 2212
	SynUnexpectedEOF         Code = 2213
	SynEnumCaseOutsideEnum   Code = 2214
	SynInvalidHook           Code = 2215
	SynExpectBlock           Code = 2216
	SynInvalidStatement      Code = 2217
	SynNonAssociative        Code = 2218

	// IO (только драйвер)
	IOLoadFileError Code = 4001
	IOCacheError    Code = 4002

	// Совместимость: версия и модификаторы
	CompatInfo                 Code = 7000
	CompatFeatureUnavailable   Code = 7001
	CompatDuplicateModifier    Code = 7002
	CompatMultipleVisibility   Code = 7003
	CompatAbstractFinal        Code = 7004
	CompatModifierNotAllowed   Code = 7005
	CompatReadonlyWithoutType  Code = 7006
	CompatAbstractWithBody     Code = 7007
	CompatVisibilityNotAllowed Code = 7008
)

var (
	codeDescription = map[Code]string{
		UnknownCode:                  "Unknown error",
		LexInfo:                      "Lexical information",
		LexUnknownChar:               "Unknown character",
		LexUnterminatedString:        "Unterminated string literal",
		LexUnterminatedBlockComment:  "Unterminated block comment",
		LexBadNumber:                 "Invalid number literal",
		LexUnterminatedHeredoc:       "Unterminated heredoc or nowdoc",
		LexUnterminatedInterpolation: "Unterminated interpolation",
		LexBadHeredocLabel:           "Invalid heredoc label",
		LexBadHeredocIndent:          "Invalid heredoc body indentation",
		LexUnterminatedBacktick:      "Unterminated shell command",

		SynInfo:                  "Syntax information",
		SynUnexpectedToken:       "Unexpected token",
		SynUnclosedDelimiter:     "Unclosed delimiter",
		SynUnclosedParen:         "Unclosed parenthesis",
		SynUnclosedBrace:         "Unclosed brace",
		SynUnclosedBracket:       "Unclosed bracket",
		SynExpectSemicolon:       "Expected statement terminator",
		SynExpectIdentifier:      "Expected identifier",
		SynExpectExpression:      "Expected expression",
		SynExpectVariable:        "Expected variable",
		SynExpectType:            "Expected type",
		SynInvalidAssignTarget:   "Invalid assignment target",
		SynNestedTernary:         "Unparenthesized nested ternary",
		SynMethodBodyInInterface: "Interface method cannot have a body",
		SynMissingMethodBody:     "Method requires a body",
		SynPropertyInEnum:        "Enums cannot declare properties",
		SynClosureInAttribute:    "Closures are not allowed in attribute arguments",
		SynInvalidTypeNesting:    "Invalid type nesting",
		SynMultipleDefault:       "Multiple default arms",
		SynMisplacedSkip:         "Skipped element outside destructuring",
		SynPositionalAfterNamed:  "Positional argument after named argument",
		SynUnexpectedEOF:         "Unexpected end of file",
		SynEnumCaseOutsideEnum:   "Case declared outside enum",
		SynInvalidHook:           "Invalid property hook",
		SynExpectBlock:           "Expected block",
		SynInvalidStatement:      "Statement not allowed here",
		SynNonAssociative:        "Non-associative operator chain",

		IOLoadFileError: "Failed to load file",
		IOCacheError:    "Cache failure",

		CompatInfo:                 "Compatibility information",
		CompatFeatureUnavailable:   "Feature unavailable in target PHP version",
		CompatDuplicateModifier:    "Duplicate modifier",
		CompatMultipleVisibility:   "Multiple visibility modifiers",
		CompatAbstractFinal:        "Abstract and final combined",
		CompatModifierNotAllowed:   "Modifier not allowed here",
		CompatReadonlyWithoutType:  "Readonly property must have a type",
		CompatAbstractWithBody:     "Abstract method cannot have a body",
		CompatVisibilityNotAllowed: "Visibility not allowed here",
	}
)

// Category is the coarse taxonomy a code belongs to.
type Category uint8

const (
	CategoryOther Category = iota
	LexError
	SyntaxError
	CompatibilityWarning
)

func (c Category) String() string {
	switch c {
	case LexError:
		return "LexError"
	case SyntaxError:
		return "SyntaxError"
	case CompatibilityWarning:
		return "CompatibilityWarning"
	}
	return "Other"
}

func (c Code) Category() Category {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return LexError
	case ic >= 2000 && ic < 3000:
		return SyntaxError
	case ic >= 7000 && ic < 8000:
		return CompatibilityWarning
	}
	return CategoryOther
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 7000 && ic < 8000:
		return fmt.Sprintf("CMP%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
