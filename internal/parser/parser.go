package parser

import (
	"phpfront/internal/ast"
	"phpfront/internal/diag"
	"phpfront/internal/lexer"
	"phpfront/internal/phpver"
	"phpfront/internal/source"
	"phpfront/internal/token"
)

type Options struct {
	Version       phpver.Version
	Reporter      diag.Reporter
	Interner      *source.Interner // общий для пакета файлов; nil: свой на каждый разбор
	MaxErrors     uint
	CurrentErrors uint
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	Program  *ast.Program
	Errors   int
	Warnings int
}

// Parser: состояние парсера на один файл
type Parser struct {
	file     *source.File
	ts       *token.Stream
	opts     Options
	strs     *source.Interner
	lastSpan source.Span // span последнего съеденного токена

	// диагностики копим до конца разбора: спекулятивный разбор может их откатить
	diags      []diag.Diagnostic
	lastErrPos int // stream offset последней синтаксической ошибки

	ctx         []context
	initializer int // >0 внутри константного выражения (default, const, attribute args)
	arrayDepth  int
	destructure int // >0 пока разбираем цель foreach/list
}

// ParseFile parses a complete token sequence of file. It never fails: the
// result always holds one Program, possibly with error nodes inside.
func ParseFile(file *source.File, tokens []token.Token, opts Options) Result {
	p := &Parser{
		file:       file,
		ts:         token.NewStream(tokens),
		opts:       opts,
		strs:       opts.Interner,
		lastErrPos: -1,
		lastSpan:   source.Span{File: file.ID},
	}
	if p.strs == nil {
		p.strs = source.NewInterner()
	}
	if !p.opts.Version.Valid() {
		p.opts.Version = phpver.Latest
	}

	prog := &ast.Program{
		Base:   ast.At(file.Span()),
		Trivia: p.ts.Trivia(),
	}
	prog.Statements = p.parseTopLevel()

	res := Result{Program: prog}
	for _, d := range p.diags {
		switch d.Severity {
		case diag.SevError:
			res.Errors++
		case diag.SevWarning:
			res.Warnings++
		}
		if p.opts.Reporter != nil {
			p.opts.Reporter.Report(d.Code, d.Severity, d.Primary, d.Message, d.Notes, d.Fixes)
		}
	}
	return res
}

// Parse lexes and parses file, reporting all diagnostics to reporter.
func Parse(file *source.File, version phpver.Version, reporter diag.Reporter) *ast.Program {
	toks := lexer.Tokenize(file, lexer.Options{Reporter: reporter})
	return ParseFile(file, toks, Options{Version: version, Reporter: reporter}).Program
}

// parseTopLevel: основной цикл: пока не EOF: parseStmt.
func (p *Parser) parseTopLevel() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.at(token.EOF) {
		before := p.ts.Offset()
		if p.at(token.RBrace) {
			p.err(diag.SynUnexpectedToken, "unexpected '}'")
			tok := p.advance()
			stmts = append(stmts, &ast.BadStmt{Base: ast.At(tok.Span)})
			continue
		}
		stmts = append(stmts, p.parseStmt())
		p.ensureProgress(before, &stmts)
	}
	return stmts
}

// ensureProgress guarantees that a statement loop consumes at least one token
// per iteration: a stuck token becomes a BadStmt.
func (p *Parser) ensureProgress(before int, stmts *[]ast.Stmt) {
	if p.ts.Offset() != before || p.at(token.EOF) {
		return
	}
	// ошибка на том же токене уже могла быть выдана
	p.err(diag.SynUnexpectedToken, "unexpected "+describe(p.cur()))
	tok := p.advance()
	*stmts = append(*stmts, &ast.BadStmt{Base: ast.At(tok.Span)})
}
