package lexer

import (
	"strings"

	"phpfront/internal/token"
)

// scanIdentOrKeyword reads a plain or namespaced name.
//
//	foo         → Ident or keyword
//	Foo\Bar     → QualifiedIdent
//	\Foo\Bar    → FullyQualifiedIdent
//	namespace\X → RelativeIdent
//
// After -> and ?-> every word is a property name, so keywords are not looked up.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	leadingSlash := lx.cursor.Eat('\\')
	lx.bumpIdent()
	qualified := false
	for lx.cursor.Peek() == '\\' && isIdentStartByte(lx.cursor.PeekAt(1)) {
		qualified = true
		lx.cursor.Bump()
		lx.bumpIdent()
	}

	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])
	switch {
	case leadingSlash:
		return token.Token{Kind: token.FullyQualifiedIdent, Span: sp, Text: text}
	case qualified:
		kind := token.QualifiedIdent
		if first, _, _ := strings.Cut(text, `\`); strings.EqualFold(first, "namespace") {
			kind = token.RelativeIdent
		}
		return token.Token{Kind: kind, Span: sp, Text: text}
	}

	if lx.last == token.Arrow || lx.last == token.NullsafeArrow {
		return token.Token{Kind: token.Ident, Span: sp, Text: text}
	}
	kind, ok := token.LookupKeyword(text)
	if !ok {
		return token.Token{Kind: token.Ident, Span: sp, Text: text}
	}
	// public(set) / protected(set) / private(set): один токен
	switch kind {
	case token.KwPublic, token.KwProtected, token.KwPrivate:
		if lx.cursor.HasPrefixFold("(set)") {
			lx.cursor.Advance(5)
			return lx.emitFrom(asymmetric(text), start)
		}
	}
	return token.Token{Kind: kind, Span: sp, Text: text}
}

func asymmetric(word string) token.Kind {
	switch strings.ToLower(word) {
	case "public":
		return token.KwPublicSet
	case "protected":
		return token.KwProtectedSet
	}
	return token.KwPrivateSet
}

func (lx *Lexer) bumpIdent() {
	for !lx.cursor.EOF() && isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
}
