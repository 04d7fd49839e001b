package lexer

import (
	"phpfront/internal/diag"
	"phpfront/internal/source"
	"phpfront/internal/token"
)

type modeKind uint8

const (
	modeInline      modeKind = iota // HTML между тегами
	modeScript                      // PHP code
	modeDoubleQuote                 // "... $x ..."
	modeBacktick                    // `... $x ...`
	modeHeredoc                     // <<<EOT ... EOT
	modeVarOffset                   // "$a[...]" simple offset
)

type mode struct {
	kind   modeKind
	braces int // open '{' inside a nested script
	// heredoc only
	bodyEnd  uint32 // start of the closing label line
	labelEnd uint32 // end of the closing label
	nowdoc   bool
	closed   bool // closing label exists
}

type Lexer struct {
	file    *source.File
	cursor  Cursor
	opts    Options
	modes   []mode
	pending []token.Token // очередь уже готовых токенов
	last    token.Kind    // last significant kind emitted

	haltLeft int // significant tokens still expected after __halt_compiler
	halted   bool

	eofReported bool // one "unterminated" diagnostic per file is enough
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
		modes:  []mode{{kind: modeInline}},
		last:   token.Invalid,
	}
}

// Tokenize lexes the whole file. The result tiles the content exactly and
// always ends with EOF.
func Tokenize(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	toks := make([]token.Token, 0, len(file.Content)/4+1)
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

// Next returns the next token, trivia included. After EOF it keeps returning EOF.
func (lx *Lexer) Next() token.Token {
	tok := lx.next()
	if !tok.Kind.IsTrivia() {
		lx.last = tok.Kind
		lx.trackHalt(tok.Kind)
	}
	return tok
}

func (lx *Lexer) next() token.Token {
	if len(lx.pending) > 0 {
		tok := lx.pending[0]
		lx.pending = lx.pending[1:]
		return tok
	}
	if lx.halted && !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		lx.cursor.Off = lx.cursor.Limit
		return lx.emitFrom(token.HaltCompilerData, start)
	}

	for lx.cursor.EOF() || lx.atHeredocEnd() {
		if len(lx.modes) == 1 {
			return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
		}
		if tok, ok := lx.closeModeAtEnd(); ok {
			return tok
		}
	}

	switch lx.mode().kind {
	case modeInline:
		return lx.scanInline()
	case modeDoubleQuote:
		return lx.scanInterpolated('"')
	case modeBacktick:
		return lx.scanInterpolated('`')
	case modeHeredoc:
		return lx.scanHeredocBody()
	case modeVarOffset:
		return lx.scanVarOffset()
	default:
		return lx.scanScript()
	}
}

// closeModeAtEnd handles running out of input (or heredoc body) inside a nested mode.
// It either returns a closing token or pops the mode silently.
func (lx *Lexer) closeModeAtEnd() (token.Token, bool) {
	m := *lx.mode()
	switch m.kind {
	case modeHeredoc:
		lx.popMode()
		if m.closed && lx.cursor.Off == m.bodyEnd {
			start := lx.cursor.Mark()
			lx.cursor.Off = m.labelEnd
			return lx.emit(token.DocumentEnd, lx.cursor.SpanFrom(start)), true
		}
		if !m.closed {
			lx.errAtEOF(diag.LexUnterminatedHeredoc, "unterminated heredoc: closing label not found")
		}
		return lx.emit(token.DocumentEnd, lx.emptySpan()), true
	case modeDoubleQuote, modeBacktick:
		lx.popMode()
		kind := token.DoubleQuote
		if m.kind == modeBacktick {
			kind = token.Backtick
		}
		code, msg := diag.LexUnterminatedString, "unterminated string literal: expected '\"'"
		if kind == token.Backtick {
			code, msg = diag.LexUnterminatedBacktick, "unterminated shell command: expected '`'"
		}
		lx.errAtEOF(code, msg)
		return lx.emit(kind, lx.emptySpan()), true
	case modeScript:
		if len(lx.modes) > 2 {
			lx.errAtEOF(diag.LexUnterminatedInterpolation, "unterminated interpolation: expected '}'")
		}
		lx.popMode()
	default:
		lx.popMode()
	}
	return token.Token{}, false
}

func (lx *Lexer) mode() *mode {
	return &lx.modes[len(lx.modes)-1]
}

func (lx *Lexer) pushMode(m mode) {
	lx.modes = append(lx.modes, m)
}

func (lx *Lexer) popMode() {
	if len(lx.modes) > 1 {
		lx.modes = lx.modes[:len(lx.modes)-1]
	}
}

// nested reports whether the script mode on top lives inside a string.
func (lx *Lexer) nested() bool {
	return len(lx.modes) > 2
}

func (lx *Lexer) atHeredocEnd() bool {
	m := lx.mode()
	return m.kind == modeHeredoc && lx.cursor.Off >= m.bodyEnd
}

func (lx *Lexer) emit(kind token.Kind, sp source.Span) token.Token {
	return token.Token{
		Kind: kind,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	}
}

func (lx *Lexer) emitFrom(kind token.Kind, start Mark) token.Token {
	return lx.emit(kind, lx.cursor.SpanFrom(start))
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

// After the terminator of __halt_compiler ( ) ; the rest of the file is raw data.
func (lx *Lexer) trackHalt(k token.Kind) {
	switch {
	case k == token.KwHaltCompiler:
		lx.haltLeft = 3
	case lx.haltLeft > 0:
		lx.haltLeft--
		if lx.haltLeft == 0 || k == token.CloseTag {
			lx.haltLeft = 0
			lx.halted = true
		}
	}
}

func (lx *Lexer) errAtEOF(code diag.Code, msg string) {
	if lx.eofReported {
		return
	}
	lx.eofReported = true
	lx.errLex(code, lx.emptySpan(), msg)
}
