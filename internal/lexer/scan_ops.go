package lexer

import (
	"phpfront/internal/token"
)

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	tok, ok := lx.tryOperatorOrPunct()
	if !ok {
		start := lx.cursor.Mark()
		lx.cursor.Bump()
		return lx.emitFrom(token.Invalid, start)
	}
	return tok
}

// Жадность: сначала 3-символьные, затем 2-символьные, затем 1-символьные.
func (lx *Lexer) tryOperatorOrPunct() (token.Token, bool) {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) (token.Token, bool) {
		return lx.emitFrom(k, start), true
	}

	switch {
	case lx.try3('?', '-', '>'):
		return emit(token.NullsafeArrow)
	case lx.try3('?', '?', '='):
		return emit(token.QuestionQuestionAssign)
	case lx.try3('.', '.', '.'):
		return emit(token.Ellipsis)
	case lx.try3('*', '*', '='):
		return emit(token.StarStarAssign)
	case lx.try3('<', '=', '>'):
		return emit(token.Spaceship)
	case lx.try3('<', '<', '='):
		return emit(token.ShlAssign)
	case lx.try3('>', '>', '='):
		return emit(token.ShrAssign)
	case lx.try3('=', '=', '='):
		return emit(token.EqEqEq)
	case lx.try3('!', '=', '='):
		return emit(token.BangEqEq)
	}

	switch {
	case lx.try2('?', '?'):
		return emit(token.QuestionQuestion)
	case lx.try2('.', '='):
		return emit(token.DotAssign)
	case lx.try2('*', '*'):
		return emit(token.StarStar)
	case lx.try2('*', '='):
		return emit(token.StarAssign)
	case lx.try2('<', '<'):
		return emit(token.Shl)
	case lx.try2('<', '='):
		return emit(token.LtEq)
	case lx.try2('<', '>'):
		return emit(token.LtGt)
	case lx.try2('>', '>'):
		return emit(token.Shr)
	case lx.try2('>', '='):
		return emit(token.GtEq)
	case lx.try2('=', '='):
		return emit(token.EqEq)
	case lx.try2('=', '>'):
		return emit(token.FatArrow)
	case lx.try2('!', '='):
		return emit(token.BangEq)
	case lx.try2('&', '&'):
		return emit(token.AndAnd)
	case lx.try2('&', '='):
		return emit(token.AmpAssign)
	case lx.try2('|', '|'):
		return emit(token.OrOr)
	case lx.try2('|', '='):
		return emit(token.PipeAssign)
	case lx.try2('|', '>'):
		return emit(token.PipeGt)
	case lx.try2('^', '='):
		return emit(token.CaretAssign)
	case lx.try2('%', '='):
		return emit(token.PercentAssign)
	case lx.try2('+', '='):
		return emit(token.PlusAssign)
	case lx.try2('+', '+'):
		return emit(token.PlusPlus)
	case lx.try2('-', '='):
		return emit(token.MinusAssign)
	case lx.try2('-', '-'):
		return emit(token.MinusMinus)
	case lx.try2('-', '>'):
		return emit(token.Arrow)
	case lx.try2('/', '='):
		return emit(token.SlashAssign)
	case lx.try2(':', ':'):
		return emit(token.ColonColon)
	}

	// односимвольные
	var kind token.Kind
	switch lx.cursor.Peek() {
	case '+':
		kind = token.Plus
	case '-':
		kind = token.Minus
	case '*':
		kind = token.Star
	case '/':
		kind = token.Slash
	case '%':
		kind = token.Percent
	case '.':
		kind = token.Dot
	case '=':
		kind = token.Assign
	case '!':
		kind = token.Bang
	case '<':
		kind = token.Lt
	case '>':
		kind = token.Gt
	case '&':
		kind = token.Amp
	case '|':
		kind = token.Pipe
	case '^':
		kind = token.Caret
	case '~':
		kind = token.Tilde
	case '?':
		kind = token.Question
	case ':':
		kind = token.Colon
	case ';':
		kind = token.Semicolon
	case ',':
		kind = token.Comma
	case '@':
		kind = token.At
	case '$':
		kind = token.Dollar
	case '\\':
		kind = token.Backslash
	case '(':
		kind = token.LParen
	case ')':
		kind = token.RParen
	case '{':
		kind = token.LBrace
	case '}':
		kind = token.RBrace
	case '[':
		kind = token.LBracket
	case ']':
		kind = token.RBracket
	default:
		return token.Token{}, false
	}
	lx.cursor.Bump()
	return emit(kind)
}
