package lexer

import (
	"bytes"
	"fmt"

	"phpfront/internal/diag"
	"phpfront/internal/source"
	"phpfront/internal/token"
)

// scanHeredocStart recognises <<<LABEL, <<<"LABEL" and <<<'LABEL' (nowdoc)
// followed by a newline. DocumentStart covers the opener up to and including
// that newline. The closing label may be indented (flexible heredoc).
func (lx *Lexer) scanHeredocStart() (token.Token, bool) {
	start := lx.cursor.Mark()
	lx.cursor.Advance(3)
	for isHorizontalSpace(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}

	var quote byte
	if q := lx.cursor.Peek(); q == '\'' || q == '"' {
		quote = q
		lx.cursor.Bump()
	}
	if !isIdentStartByte(lx.cursor.Peek()) {
		lx.cursor.Reset(start)
		return token.Token{}, false
	}
	labelStart := lx.cursor.Off
	lx.bumpIdent()
	label := lx.file.Content[labelStart:lx.cursor.Off]
	if quote != 0 && !lx.cursor.Eat(quote) {
		lx.cursor.Reset(start)
		return token.Token{}, false
	}
	switch {
	case lx.cursor.Peek() == '\n':
		lx.cursor.Bump()
	case lx.cursor.Peek() == '\r' && lx.cursor.PeekAt(1) == '\n':
		lx.cursor.Advance(2)
	default:
		lx.cursor.Reset(start)
		return token.Token{}, false
	}

	m := mode{kind: modeHeredoc, nowdoc: quote == '\'', bodyEnd: lx.cursor.Limit, labelEnd: lx.cursor.Limit}
	bodyStart := lx.cursor.Off
	if lineStart, labelEnd, ok := lx.findClosingLabel(bodyStart, label); ok {
		m.closed = true
		m.bodyEnd = lineStart
		m.labelEnd = labelEnd
		lx.checkHeredocIndent(bodyStart, lineStart, labelEnd-lineStart-uint32(len(label)))
	}
	lx.pushMode(m)
	return lx.emitFrom(token.DocumentStart, start), true
}

// findClosingLabel scans line starts from off for [ \t]*LABEL not followed by a name byte.
func (lx *Lexer) findClosingLabel(off uint32, label []byte) (lineStart, labelEnd uint32, ok bool) {
	content := lx.file.Content[:lx.cursor.Limit]
	for p := off; p < lx.cursor.Limit; {
		q := p
		for q < lx.cursor.Limit && isHorizontalSpace(content[q]) {
			q++
		}
		if bytes.HasPrefix(content[q:], label) {
			end := q + uint32(len(label))
			if end >= lx.cursor.Limit || !isIdentContinueByte(content[end]) {
				return p, end, true
			}
		}
		nl := bytes.IndexByte(content[p:], '\n')
		if nl < 0 {
			break
		}
		p += uint32(nl) + 1
	}
	return 0, 0, false
}

// checkHeredocIndent reports body lines indented less than the closing label.
func (lx *Lexer) checkHeredocIndent(bodyStart, bodyEnd, indent uint32) {
	if indent == 0 {
		return
	}
	content := lx.file.Content
	for p := bodyStart; p < bodyEnd; {
		nl := bytes.IndexByte(content[p:bodyEnd], '\n')
		lineEnd := bodyEnd
		if nl >= 0 {
			lineEnd = p + uint32(nl)
		}
		line := bytes.TrimRight(content[p:lineEnd], "\r")
		n := uint32(0)
		for n < uint32(len(line)) && isHorizontalSpace(line[n]) {
			n++
		}
		if n < uint32(len(line)) && n < indent {
			sp := source.Span{File: lx.file.ID, Start: p, End: p + n}
			lx.errLex(diag.LexBadHeredocIndent, sp, fmt.Sprintf("invalid body indentation level (expecting at least %d)", indent))
			return
		}
		if nl < 0 {
			return
		}
		p = lineEnd + 1
	}
}

// scanHeredocBody emits one piece of a heredoc/nowdoc body up to the closing line.
func (lx *Lexer) scanHeredocBody() token.Token {
	m := lx.mode()
	start := lx.cursor.Mark()
	if m.nowdoc {
		lx.cursor.Off = m.bodyEnd
		return lx.emitFrom(token.StringPart, start)
	}
	if tok, ok := lx.scanEmbedded(); ok {
		return tok
	}
	end := m.bodyEnd
	for lx.cursor.Off < end && !lx.atInterpolationStart() {
		if lx.cursor.Bump() == '\\' && lx.cursor.Off < end {
			lx.cursor.Bump()
		}
	}
	return lx.emitFrom(token.StringPart, start)
}
