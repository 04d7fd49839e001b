package lexer

import (
	"phpfront/internal/diag"
	"phpfront/internal/token"
)

// Поддержка: 123, 0x1F, 0b101, 0o17 (8.1), 017, 1_000, 1.5, .5, 1., 1e3, 1.5E-3.
// Text остаётся сырым; значение не вычисляем. Неверное положение '_' репортим,
// но токен всё равно завершаем.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit
	ok := true

	if lx.cursor.Peek() == '0' {
		switch lx.cursor.PeekAt(1) {
		case 'x', 'X':
			if isHex(lx.cursor.PeekAt(2)) {
				lx.cursor.Advance(2)
				ok = lx.digits(isHex)
				return lx.finishNumber(kind, start, ok)
			}
		case 'b', 'B':
			if isBin(lx.cursor.PeekAt(2)) {
				lx.cursor.Advance(2)
				ok = lx.digits(isBin)
				return lx.finishNumber(kind, start, ok)
			}
		case 'o', 'O':
			if isOct(lx.cursor.PeekAt(2)) {
				lx.cursor.Advance(2)
				ok = lx.digits(isOct)
				return lx.finishNumber(kind, start, ok)
			}
		}
	}

	// десятичная целая часть (может отсутствовать: ".5")
	if isDec(lx.cursor.Peek()) {
		ok = lx.digits(isDec)
	}

	// дробная часть: "1." тоже float, но "1..2": это "1." и ".2"
	if lx.cursor.Peek() == '.' && !(lx.cursor.PeekAt(1) == '.' && lx.cursor.PeekAt(2) == '.') {
		kind = token.FloatLit
		lx.cursor.Bump()
		if isDec(lx.cursor.Peek()) {
			ok = lx.digits(isDec) && ok
		}
	}

	// экспонента: только если дальше действительно цифры
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		n := uint32(1)
		if s := lx.cursor.PeekAt(1); s == '+' || s == '-' {
			n = 2
		}
		if isDec(lx.cursor.PeekAt(n)) {
			kind = token.FloatLit
			lx.cursor.Advance(n)
			ok = lx.digits(isDec) && ok
		}
	}
	return lx.finishNumber(kind, start, ok)
}

// digits consumes a digit run with '_' separators. It reports false when a
// separator is doubled or trailing; the separator is consumed anyway.
func (lx *Lexer) digits(accept func(byte) bool) bool {
	ok := true
	prevUnderscore := false
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case accept(b):
			prevUnderscore = false
		case b == '_':
			if prevUnderscore {
				ok = false
			}
			// '_' допустим только между цифрами
			if !accept(lx.cursor.PeekAt(1)) && lx.cursor.PeekAt(1) != '_' {
				lx.cursor.Bump()
				return false
			}
			prevUnderscore = true
		default:
			return ok
		}
		lx.cursor.Bump()
	}
	return ok && !prevUnderscore
}

func (lx *Lexer) finishNumber(kind token.Kind, start Mark, ok bool) token.Token {
	tok := lx.emitFrom(kind, start)
	if !ok {
		lx.errLex(diag.LexBadNumber, tok.Span, "invalid numeric literal separator")
	}
	return tok
}
