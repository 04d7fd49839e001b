package parser

import (
	"fmt"
	"strings"

	"phpfront/internal/ast"
	"phpfront/internal/diag"
	"phpfront/internal/phpver"
	"phpfront/internal/source"
	"phpfront/internal/token"
)

func (p *Parser) cur() token.Token {
	return p.ts.Current()
}

func (p *Parser) peek(k int) token.Token {
	return p.ts.Peek(k)
}

func (p *Parser) at(k token.Kind) bool {
	return p.ts.Current().Kind == k
}

func (p *Parser) atAny(kinds ...token.Kind) bool {
	return p.ts.At(kinds...)
}

// advance: съедает текущий токен и обновляет lastSpan.
// На EOF ничего не делает: поток паникует при выходе за конец.
func (p *Parser) advance() token.Token {
	tok := p.ts.Current()
	if tok.Kind == token.EOF {
		return tok
	}
	p.ts.Advance()
	p.lastSpan = tok.Span
	return tok
}

// eat consumes the current token when it has kind k.
func (p *Parser) eat(k token.Kind) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	return token.Token{}, false
}

// expect: ожидаем конкретный токен. Если нет: репортим и возвращаем (invalid,false).
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	n := len(p.diags)
	p.err(code, msg+", got "+describe(p.cur()))
	if k == token.Semicolon {
		p.suggestInsert(n, ";")
	}
	return token.Token{Kind: token.Invalid, Span: p.gap()}, false
}

// suggestInsert attaches an "insert text" fix to the diagnostic at index n,
// if one was reported. The edit sits right after the last consumed token.
func (p *Parser) suggestInsert(n int, text string) {
	if n >= len(p.diags) {
		return
	}
	p.diags[n] = p.diags[n].WithFix("insert '"+text+"'", diag.FixEdit{Span: p.gap(), NewText: text})
}

// gap is the zero-width span right after the last consumed token. Error
// placeholders live there so they stay inside their parent's span.
func (p *Parser) gap() source.Span {
	return p.lastSpan.ZeroideToEnd()
}

// spanFrom covers start up to the last consumed token. When nothing was
// consumed since start the result is the gap, not the unconsumed token.
func (p *Parser) spanFrom(start source.Span) source.Span {
	if p.lastSpan.End <= start.Start {
		return p.gap()
	}
	return start.Cover(p.lastSpan)
}

// nodeSpan is spanFrom widened to the direct children of n. A node whose
// first child is a placeholder starts at that placeholder's gap.
func (p *Parser) nodeSpan(start source.Span, n ast.Node) source.Span {
	sp := p.spanFrom(start)
	for _, c := range ast.Children(n) {
		sp = sp.Cover(c.Span())
	}
	return sp
}

// err reports at the current token.
func (p *Parser) err(code diag.Code, msg string) {
	sp := p.cur().Span
	if p.at(token.EOF) {
		sp = p.gap()
	}
	p.errAt(code, sp, msg)
}

// errAt reports a syntax error. A second error at the same token offset is
// dropped: it is almost always a consequence of the first one.
func (p *Parser) errAt(code diag.Code, sp source.Span, msg string) {
	pos := p.ts.Offset()
	if pos == p.lastErrPos {
		return
	}
	p.lastErrPos = pos
	p.report(code, diag.SevError, sp, msg)
}

func (p *Parser) warnAt(code diag.Code, sp source.Span, msg string) {
	p.report(code, diag.SevWarning, sp, msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) {
	if sev == diag.SevError {
		if p.opts.Enough() {
			return
		}
		p.opts.CurrentErrors++
	}
	p.diags = append(p.diags, diag.New(sev, code, sp, msg))
}

// requireFeature emits the compatibility warning when the target version
// predates f. The construct itself is always parsed completely.
func (p *Parser) requireFeature(f phpver.Feature, sp source.Span) {
	if p.opts.Version.Supports(f) {
		return
	}
	p.warnAt(diag.CompatFeatureUnavailable, sp,
		fmt.Sprintf("%s requires PHP %s or newer (targeting %s)", f, f.Since(), p.opts.Version))
}

// ===== Спекулятивный разбор =====

type checkpoint struct {
	cp         token.Checkpoint
	ndiags     int
	lastErrPos int
	lastSpan   source.Span
	errors     uint
}

func (p *Parser) checkpoint() checkpoint {
	return checkpoint{
		cp:         p.ts.Checkpoint(),
		ndiags:     len(p.diags),
		lastErrPos: p.lastErrPos,
		lastSpan:   p.lastSpan,
		errors:     p.opts.CurrentErrors,
	}
}

// restore rewinds the cursor and drops every diagnostic issued since cp.
func (p *Parser) restore(cp checkpoint) {
	p.ts.Restore(cp.cp)
	p.diags = p.diags[:cp.ndiags]
	p.lastErrPos = cp.lastErrPos
	p.lastSpan = cp.lastSpan
	p.opts.CurrentErrors = cp.errors
}

// failedSince reports whether an error was issued after cp.
func (p *Parser) failedSince(cp checkpoint) bool {
	for _, d := range p.diags[cp.ndiags:] {
		if d.Severity == diag.SevError {
			return true
		}
	}
	return false
}

// ===== Восстановление =====

// resyncStmt skips to the next statement boundary: ';' is consumed, '}' and
// statement starters are not. It returns the span of skipped tokens.
func (p *Parser) resyncStmt() source.Span {
	start := p.cur().Span
	skipped := false
	for !p.at(token.EOF) {
		k := p.cur().Kind
		if k == token.Semicolon {
			p.advance()
			return p.spanFrom(start)
		}
		if k == token.RBrace || isStmtStarter(k) || isClauseKeyword(k) {
			break
		}
		p.advance()
		skipped = true
	}
	if !skipped {
		return p.gap()
	}
	return p.spanFrom(start)
}

// resyncUntil пропускает токены до одного из kinds (не съедая его) или EOF.
func (p *Parser) resyncUntil(kinds ...token.Kind) {
	for !p.at(token.EOF) && !p.atAny(kinds...) {
		p.advance()
	}
}

// isClauseKeyword: слова, продолжающие или закрывающие составной оператор.
func isClauseKeyword(k token.Kind) bool {
	switch k {
	case token.KwElse, token.KwElseif, token.KwEndif, token.KwEndwhile, token.KwEndfor,
		token.KwEndforeach, token.KwEndswitch, token.KwEnddeclare, token.KwCase, token.KwDefault,
		token.KwCatch, token.KwFinally:
		return true
	}
	return false
}

func isStmtStarter(k token.Kind) bool {
	switch k {
	case token.KwIf, token.KwWhile, token.KwDo, token.KwFor, token.KwForeach, token.KwSwitch,
		token.KwBreak, token.KwContinue, token.KwReturn, token.KwFunction, token.KwClass,
		token.KwAbstract, token.KwFinal, token.KwInterface, token.KwTrait, token.KwTry,
		token.KwEcho, token.KwNamespace, token.KwUse, token.KwConst, token.KwGlobal,
		token.KwUnset, token.KwDeclare, token.KwGoto, token.KwThrow,
		token.InlineText, token.OpenTag, token.ShortOpenTag, token.CloseTag, token.EchoTag, token.HashLBracket:
		return true
	}
	return false
}

// ===== Имена =====

func (p *Parser) intern(s string) source.StringID {
	return p.strs.Intern(s)
}

func (p *Parser) identFrom(tok token.Token) *ast.Identifier {
	return &ast.Identifier{Base: ast.At(tok.Span), Name: tok.Text, ID: p.intern(tok.Text)}
}

// parseIdent: ожидает Ident и интернирует его.
// На ошибке: репорт SynExpectIdentifier и пустой идентификатор нулевой ширины.
func (p *Parser) parseIdent(what string) *ast.Identifier {
	if p.at(token.Ident) {
		return p.identFrom(p.advance())
	}
	p.err(diag.SynExpectIdentifier, "expected "+what+", got "+describe(p.cur()))
	return &ast.Identifier{Base: ast.At(p.gap())}
}

// parseMemberIdent accepts any semi-reserved word (method and constant names).
func (p *Parser) parseMemberIdent(what string) *ast.Identifier {
	if p.cur().Kind.IsSemiReserved() {
		return p.identFrom(p.advance())
	}
	return p.parseIdent(what)
}

func (p *Parser) nameFrom(tok token.Token) *ast.Name {
	form := ast.NameUnqualified
	switch tok.Kind {
	case token.QualifiedIdent:
		form = ast.NameQualified
	case token.FullyQualifiedIdent:
		form = ast.NameFullyQualified
	case token.RelativeIdent:
		form = ast.NameRelative
	}
	return &ast.Name{Base: ast.At(tok.Span), Text: tok.Text, Form: form, ID: p.intern(tok.Text)}
}

// parseName expects a class, function or namespace name.
func (p *Parser) parseName(what string) *ast.Name {
	if p.cur().Kind.IsName() {
		return p.nameFrom(p.advance())
	}
	p.err(diag.SynExpectIdentifier, "expected "+what+", got "+describe(p.cur()))
	return &ast.Name{Base: ast.At(p.gap())}
}

// parseNameList parses Name (',' Name)*.
func (p *Parser) parseNameList(what string) []*ast.Name {
	names := []*ast.Name{p.parseName(what)}
	for p.at(token.Comma) {
		p.advance()
		names = append(names, p.parseName(what))
	}
	return names
}

func (p *Parser) variableFrom(tok token.Token) *ast.Variable {
	name := strings.TrimPrefix(tok.Text, "$")
	return &ast.Variable{Base: ast.At(tok.Span), Name: name, ID: p.intern(name)}
}

func (p *Parser) parseVariable() *ast.Variable {
	if p.at(token.Variable) {
		return p.variableFrom(p.advance())
	}
	p.err(diag.SynExpectVariable, "expected variable, got "+describe(p.cur()))
	return &ast.Variable{Base: ast.At(p.gap())}
}

// describe renders a token for messages.
func describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of file"
	case token.Variable:
		return "variable " + tok.Text
	case token.Ident, token.QualifiedIdent, token.FullyQualifiedIdent, token.RelativeIdent:
		return "identifier '" + tok.Text + "'"
	case token.IntLit, token.FloatLit:
		return "number " + tok.Text
	case token.StringLit:
		return "string literal"
	case token.InlineText:
		return "inline HTML"
	}
	text := tok.Text
	if text == "" {
		text = tok.Kind.String()
	}
	return "'" + text + "'"
}
