package lexer

import (
	"phpfront/internal/token"
)

// scanInline handles everything outside <?php ... ?>.
// Raw text up to the next opening tag folds into one InlineText token.
func (lx *Lexer) scanInline() token.Token {
	if tok, ok := lx.scanOpenTag(); ok {
		return tok
	}
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		if lx.cursor.Peek() == '<' && lx.cursor.PeekAt(1) == '?' && lx.openTagLen() > 0 {
			break
		}
		lx.cursor.Bump()
	}
	return lx.emitFrom(token.InlineText, start)
}

func (lx *Lexer) scanOpenTag() (token.Token, bool) {
	n := lx.openTagLen()
	if n == 0 {
		return token.Token{}, false
	}
	start := lx.cursor.Mark()
	lx.cursor.Advance(n)
	kind := token.OpenTag
	switch n {
	case 3:
		kind = token.EchoTag
	case 2:
		kind = token.ShortOpenTag
	}
	lx.pushMode(mode{kind: modeScript})
	return lx.emitFrom(kind, start), true
}

// openTagLen returns the length of the opening tag at the cursor, or 0.
// "<?php" must be followed by whitespace or end of input.
func (lx *Lexer) openTagLen() uint32 {
	if lx.cursor.Peek() != '<' || lx.cursor.PeekAt(1) != '?' {
		return 0
	}
	if lx.cursor.HasPrefixFold("<?php") {
		next := lx.cursor.PeekAt(5)
		if isSpace(next) || lx.cursor.Off+5 >= lx.cursor.Limit {
			return 5
		}
	}
	if lx.cursor.PeekAt(2) == '=' {
		return 3
	}
	if lx.opts.ShortOpenTag {
		return 2
	}
	return 0
}

// scanCloseTag consumes "?>" plus one directly following newline,
// which PHP swallows together with the tag.
func (lx *Lexer) scanCloseTag() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Advance(2)
	if lx.cursor.Peek() == '\n' {
		lx.cursor.Bump()
	} else if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '\r' && b1 == '\n' {
		lx.cursor.Advance(2)
	}
	lx.popMode()
	return lx.emitFrom(token.CloseTag, start)
}
