package lexer

import (
	"phpfront/internal/diag"
	"phpfront/internal/token"
)

// 'single quoted': only \\ and \' are escapes, no interpolation.
func (lx *Lexer) scanSingleQuoted() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '
	for !lx.cursor.EOF() {
		switch lx.cursor.Bump() {
		case '\\':
			lx.cursor.Bump()
		case '\'':
			return lx.emitFrom(token.StringLit, start)
		}
	}
	tok := lx.emitFrom(token.StringLit, start)
	lx.errLex(diag.LexUnterminatedString, tok.Span.ZeroideToEnd(), "unterminated string literal: expected '")
	return tok
}

// scanDoubleQuoted emits a whole StringLit when the string has no
// interpolation; otherwise it emits the opening quote and switches mode.
func (lx *Lexer) scanDoubleQuoted() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // "
	for !lx.cursor.EOF() {
		if lx.atInterpolationStart() {
			lx.cursor.Reset(start)
			lx.cursor.Bump()
			lx.pushMode(mode{kind: modeDoubleQuote})
			return lx.emitFrom(token.DoubleQuote, start)
		}
		switch lx.cursor.Bump() {
		case '\\':
			lx.cursor.Bump()
		case '"':
			return lx.emitFrom(token.StringLit, start)
		}
	}
	tok := lx.emitFrom(token.StringLit, start)
	lx.errLex(diag.LexUnterminatedString, tok.Span.ZeroideToEnd(), "unterminated string literal: expected '\"'")
	return tok
}

// atInterpolationStart: "$name", "${" или "{$".
func (lx *Lexer) atInterpolationStart() bool {
	b0, b1, ok := lx.cursor.Peek2()
	if !ok {
		return false
	}
	switch b0 {
	case '$':
		return isIdentStartByte(b1) || b1 == '{'
	case '{':
		return b1 == '$'
	}
	return false
}

// scanInterpolated produces one piece of a "..." or `...` string: the closing
// delimiter, an embedded-expression opener, or a run of literal text.
func (lx *Lexer) scanInterpolated(closer byte) token.Token {
	if lx.cursor.Peek() == closer {
		start := lx.cursor.Mark()
		lx.cursor.Bump()
		lx.popMode()
		kind := token.DoubleQuote
		if closer == '`' {
			kind = token.Backtick
		}
		return lx.emitFrom(kind, start)
	}
	if tok, ok := lx.scanEmbedded(); ok {
		return tok
	}

	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && lx.cursor.Peek() != closer && !lx.atInterpolationStart() {
		if lx.cursor.Bump() == '\\' {
			lx.cursor.Bump()
		}
	}
	return lx.emitFrom(token.StringPart, start)
}

// scanEmbedded handles the interpolation forms shared by strings and heredocs:
//
//	$var  $var[offset]  $var->prop  $var?->prop  {$expr}  ${expr}
func (lx *Lexer) scanEmbedded() (token.Token, bool) {
	start := lx.cursor.Mark()
	b0, b1, ok := lx.cursor.Peek2()
	if !ok {
		return token.Token{}, false
	}
	switch {
	case b0 == '{' && b1 == '$':
		lx.cursor.Bump()
		lx.pushMode(mode{kind: modeScript})
		return lx.emitFrom(token.LBrace, start), true

	case b0 == '$' && b1 == '{':
		lx.cursor.Advance(2)
		lx.pushMode(mode{kind: modeScript})
		return lx.emitFrom(token.DollarLBrace, start), true

	case b0 == '$' && isIdentStartByte(b1):
		lx.cursor.Bump()
		lx.bumpIdent()
		variable := lx.emitFrom(token.Variable, start)
		lx.scanSimpleSuffix()
		return variable, true
	}
	return token.Token{}, false
}

// scanSimpleSuffix queues "->name" / "?->name" or enters offset mode for "[".
func (lx *Lexer) scanSimpleSuffix() {
	switch {
	case lx.cursor.Peek() == '[':
		lx.pushMode(mode{kind: modeVarOffset})

	case lx.cursor.Peek() == '-' && lx.cursor.PeekAt(1) == '>' && isIdentStartByte(lx.cursor.PeekAt(2)):
		lx.queueProperty(token.Arrow, 2)

	case lx.cursor.Peek() == '?' && lx.cursor.PeekAt(1) == '-' && lx.cursor.PeekAt(2) == '>' && isIdentStartByte(lx.cursor.PeekAt(3)):
		lx.queueProperty(token.NullsafeArrow, 3)
	}
}

func (lx *Lexer) queueProperty(arrow token.Kind, n uint32) {
	start := lx.cursor.Mark()
	lx.cursor.Advance(n)
	lx.pending = append(lx.pending, lx.emitFrom(arrow, start))
	start = lx.cursor.Mark()
	lx.bumpIdent()
	lx.pending = append(lx.pending, lx.emitFrom(token.Ident, start))
}

// scanVarOffset lexes the inside of "$a[...]": a name, a number, a variable or "-"number.
func (lx *Lexer) scanVarOffset() token.Token {
	start := lx.cursor.Mark()
	ch := lx.cursor.Peek()
	switch {
	case ch == '[':
		lx.cursor.Bump()
		return lx.emitFrom(token.LBracket, start)
	case ch == ']':
		lx.cursor.Bump()
		lx.popMode()
		return lx.emitFrom(token.RBracket, start)
	case ch == '-':
		lx.cursor.Bump()
		return lx.emitFrom(token.Minus, start)
	case isDec(ch):
		lx.digits(isDec)
		return lx.emitFrom(token.IntLit, start)
	case ch == '$' && isIdentStartByte(lx.cursor.PeekAt(1)):
		lx.cursor.Bump()
		lx.bumpIdent()
		return lx.emitFrom(token.Variable, start)
	case isIdentStartByte(ch):
		lx.bumpIdent()
		return lx.emitFrom(token.Ident, start)
	}
	// что-то странное: возвращаемся к тексту строки, парсер сообщит о ']'
	lx.popMode()
	return lx.next()
}
