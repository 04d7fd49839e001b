package parser

import (
	"fmt"

	"phpfront/internal/token"
)

// Таблица приоритетов PHP, снизу вверх.
// Чем больше число, тем выше приоритет.
const (
	precLowest         = iota
	precLogicalOrKw    // or
	precLogicalXorKw   // xor
	precLogicalAndKw   // and
	precAssignment     // = += -= ... (правоассоциативно)
	precTernary        // ? :
	precCoalesce       // ?? (правоассоциативно)
	precLogicalOr      // ||
	precLogicalAnd     // &&
	precBitwiseOr      // |
	precBitwiseXor     // ^
	precBitwiseAnd     // &
	precEquality       // == != === !== <> <=>
	precComparison     // < <= > >=
	precPipe           // |>
	precConcat         // .
	precShift          // << >>
	precAdditive       // + -
	precMultiplicative // * / %
	precNot            // ! (префикс)
	precInstanceof     // instanceof
	precUnary          // - + ~ casts @ ++ --
	precPow            // ** (правоассоциативно)
)

type assoc uint8

const (
	assocLeft assoc = iota
	assocRight
	assocNone
)

// binaryPrec возвращает приоритет и ассоциативность бинарного оператора.
// ok is false for tokens that are not binary operators.
func binaryPrec(k token.Kind) (prec int, a assoc, ok bool) {
	switch k {
	case token.KwOr:
		return precLogicalOrKw, assocLeft, true
	case token.KwXor:
		return precLogicalXorKw, assocLeft, true
	case token.KwAnd:
		return precLogicalAndKw, assocLeft, true
	case token.QuestionQuestion:
		return precCoalesce, assocRight, true
	case token.OrOr:
		return precLogicalOr, assocLeft, true
	case token.AndAnd:
		return precLogicalAnd, assocLeft, true
	case token.Pipe:
		return precBitwiseOr, assocLeft, true
	case token.Caret:
		return precBitwiseXor, assocLeft, true
	case token.Amp:
		return precBitwiseAnd, assocLeft, true
	case token.EqEq, token.BangEq, token.EqEqEq, token.BangEqEq, token.LtGt, token.Spaceship:
		return precEquality, assocNone, true
	case token.Lt, token.LtEq, token.Gt, token.GtEq:
		return precComparison, assocNone, true
	case token.PipeGt:
		return precPipe, assocLeft, true
	case token.Dot:
		return precConcat, assocLeft, true
	case token.Shl, token.Shr:
		return precShift, assocLeft, true
	case token.Plus, token.Minus:
		return precAdditive, assocLeft, true
	case token.Star, token.Slash, token.Percent:
		return precMultiplicative, assocLeft, true
	case token.KwInstanceof:
		return precInstanceof, assocNone, true
	case token.StarStar:
		return precPow, assocRight, true
	}
	return 0, assocLeft, false
}

// prefixPrec: приоритет префиксного оператора; операнд разбирается строго выше него.
func prefixPrec(k token.Kind) (int, bool) {
	switch k {
	case token.Bang:
		return precNot, true
	case token.Minus, token.Plus, token.Tilde, token.At:
		return precUnary, true
	}
	if k.IsCast() {
		return precUnary, true
	}
	return 0, false
}

// compoundBase maps a compound assignment to its binary operator.
// Only used for messages; an unknown kind is a grammar bug.
func compoundBase(k token.Kind) token.Kind {
	switch k {
	case token.PlusAssign:
		return token.Plus
	case token.MinusAssign:
		return token.Minus
	case token.StarAssign:
		return token.Star
	case token.SlashAssign:
		return token.Slash
	case token.PercentAssign:
		return token.Percent
	case token.StarStarAssign:
		return token.StarStar
	case token.DotAssign:
		return token.Dot
	case token.AmpAssign:
		return token.Amp
	case token.PipeAssign:
		return token.Pipe
	case token.CaretAssign:
		return token.Caret
	case token.ShlAssign:
		return token.Shl
	case token.ShrAssign:
		return token.Shr
	case token.QuestionQuestionAssign:
		return token.QuestionQuestion
	case token.Assign:
		return token.Assign
	}
	panic(fmt.Errorf("parser: %v is not an assignment operator", k))
}
