package lexer

import (
	"phpfront/internal/diag"
	"phpfront/internal/token"
)

// scanScript lexes one token of PHP code.
func (lx *Lexer) scanScript() token.Token {
	ch := lx.cursor.Peek()
	switch {
	case isSpace(ch):
		return lx.scanWhitespace()

	case ch == '#':
		if lx.cursor.PeekAt(1) == '[' {
			start := lx.cursor.Mark()
			lx.cursor.Advance(2)
			return lx.emitFrom(token.HashLBracket, start)
		}
		return lx.scanLineComment(token.HashComment, 1)

	case ch == '/' && lx.cursor.PeekAt(1) == '/':
		return lx.scanLineComment(token.SingleLineComment, 2)

	case ch == '/' && lx.cursor.PeekAt(1) == '*':
		return lx.scanBlockComment()

	case ch == '?' && lx.cursor.PeekAt(1) == '>' && !lx.nested():
		return lx.scanCloseTag()

	case ch == '$':
		return lx.scanDollar()

	case isIdentStartByte(ch):
		return lx.scanIdentOrKeyword()

	case ch == '\\' && isIdentStartByte(lx.cursor.PeekAt(1)):
		return lx.scanIdentOrKeyword()

	case isDec(ch), ch == '.' && lx.isNumberAfterDot():
		return lx.scanNumber()

	case ch == '\'':
		return lx.scanSingleQuoted()

	case ch == '"':
		return lx.scanDoubleQuoted()

	case ch == '`':
		start := lx.cursor.Mark()
		lx.cursor.Bump()
		lx.pushMode(mode{kind: modeBacktick})
		return lx.emitFrom(token.Backtick, start)

	case ch == '<' && lx.cursor.PeekAt(1) == '<' && lx.cursor.PeekAt(2) == '<':
		if tok, ok := lx.scanHeredocStart(); ok {
			return tok
		}
		return lx.scanOperatorOrPunct()

	case ch == '(':
		if tok, ok := lx.scanCast(); ok {
			return tok
		}
		return lx.scanOperatorOrPunct()

	case ch == '{':
		lx.mode().braces++
		return lx.scanOperatorOrPunct()

	case ch == '}':
		if lx.nested() && lx.mode().braces == 0 {
			start := lx.cursor.Mark()
			lx.cursor.Bump()
			lx.popMode()
			return lx.emitFrom(token.RBrace, start)
		}
		if lx.mode().braces > 0 {
			lx.mode().braces--
		}
		return lx.scanOperatorOrPunct()
	}

	if tok, ok := lx.tryOperatorOrPunct(); ok {
		return tok
	}

	// неизвестный байт → Invalid + диагностика, идём дальше
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnknownChar, sp, "unexpected character in input")
	return lx.emit(token.Invalid, sp)
}

// scanDollar: $name, ${ or a bare $ (variable variables: $$a).
func (lx *Lexer) scanDollar() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	switch {
	case isIdentStartByte(lx.cursor.Peek()):
		for isIdentContinueByte(lx.cursor.Peek()) && !lx.cursor.EOF() {
			lx.cursor.Bump()
		}
		return lx.emitFrom(token.Variable, start)
	case lx.cursor.Peek() == '{':
		lx.cursor.Bump()
		lx.mode().braces++
		return lx.emitFrom(token.DollarLBrace, start)
	}
	return lx.emitFrom(token.Dollar, start)
}

var castNames = map[string]token.Kind{
	"int":     token.IntCast,
	"integer": token.IntCast,
	"bool":    token.BoolCast,
	"boolean": token.BoolCast,
	"float":   token.FloatCast,
	"double":  token.FloatCast,
	"real":    token.FloatCast,
	"string":  token.StringCast,
	"binary":  token.StringCast,
	"array":   token.ArrayCast,
	"object":  token.ObjectCast,
	"unset":   token.UnsetCast,
	"void":    token.VoidCast,
}

// scanCast recognises "(" [ \t]* type [ \t]* ")" as a single cast token.
func (lx *Lexer) scanCast() (token.Token, bool) {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // (
	for isHorizontalSpace(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	nameStart := lx.cursor.Off
	for (lx.cursor.Peek() >= 'a' && lx.cursor.Peek() <= 'z') || (lx.cursor.Peek() >= 'A' && lx.cursor.Peek() <= 'Z') {
		lx.cursor.Bump()
	}
	name := lowerASCII(lx.file.Content[nameStart:lx.cursor.Off])
	for isHorizontalSpace(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	kind, ok := castNames[name]
	if !ok || !lx.cursor.Eat(')') {
		lx.cursor.Reset(start)
		return token.Token{}, false
	}
	return lx.emitFrom(kind, start), true
}

func lowerASCII(b []byte) string {
	out := make([]byte, len(b))
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}
