package lexer

import (
	"phpfront/internal/diag"
	"phpfront/internal/token"
)

// scanWhitespace folds a run of spaces, tabs and newlines into one token.
func (lx *Lexer) scanWhitespace() token.Token {
	start := lx.cursor.Mark()
	for isSpace(lx.cursor.Peek()) && !lx.cursor.EOF() {
		lx.cursor.Bump()
	}
	return lx.emitFrom(token.Whitespace, start)
}

// scanLineComment reads // or # comments. A single-line comment ends before
// the newline or before "?>" at the top script level.
func (lx *Lexer) scanLineComment(kind token.Kind, prefix uint32) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Advance(prefix)
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\n' || (b == '\r' && lx.cursor.PeekAt(1) == '\n') {
			break
		}
		if b == '?' && lx.cursor.PeekAt(1) == '>' && !lx.nested() {
			break
		}
		lx.cursor.Bump()
	}
	return lx.emitFrom(kind, start)
}

// /* ... */ и /** ... */ (doc-блок только если после "/**" идёт пробел)
func (lx *Lexer) scanBlockComment() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Advance(2)
	kind := token.MultiLineComment
	if lx.cursor.Peek() == '*' && isSpace(lx.cursor.PeekAt(1)) {
		kind = token.DocBlockComment
	}
	for !lx.cursor.EOF() {
		if lx.try2('*', '/') {
			return lx.emitFrom(kind, start)
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedBlockComment, sp.ZeroideToEnd(), "unterminated comment: expected '*/'")
	return lx.emit(kind, sp)
}
