package parser

import (
	"phpfront/internal/ast"
	"phpfront/internal/diag"
	"phpfront/internal/token"
)

// parseStmt разбирает один оператор. Всегда возвращает узел; если ничего
// не удалось съесть, вызывающий цикл сам продвинется через ensureProgress.
func (p *Parser) parseStmt() ast.Stmt {
	tok := p.cur()
	switch tok.Kind {
	case token.InlineText:
		p.advance()
		return &ast.InlineHTML{Base: ast.At(tok.Span), Text: tok.Text}

	case token.OpenTag, token.ShortOpenTag, token.CloseTag:
		p.advance()
		return &ast.Tag{Base: ast.At(tok.Span), Tok: tok.Kind}

	case token.EchoTag:
		p.advance()
		exprs := p.parseExprList(token.Semicolon, token.CloseTag)
		p.endStmt()
		return &ast.Echo{Base: ast.At(p.spanFrom(tok.Span)), Exprs: exprs, FromTag: true}

	case token.KwEcho:
		p.advance()
		exprs := p.parseExprList(token.Semicolon, token.CloseTag)
		p.endStmt()
		return &ast.Echo{Base: ast.At(p.spanFrom(tok.Span)), Exprs: exprs}

	case token.LBrace:
		return p.parseBlock()

	case token.Semicolon:
		p.advance()
		return &ast.EmptyStmt{Base: ast.At(tok.Span)}

	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwDo:
		return p.parseDoWhile()
	case token.KwFor:
		return p.parseFor()
	case token.KwForeach:
		return p.parseForeach()
	case token.KwSwitch:
		return p.parseSwitch()
	case token.KwBreak, token.KwContinue:
		return p.parseBreakContinue()
	case token.KwReturn:
		return p.parseReturn()
	case token.KwTry:
		return p.parseTry()
	case token.KwDeclare:
		return p.parseDeclare()
	case token.KwGlobal:
		return p.parseGlobal()
	case token.KwUnset:
		return p.parseUnset()
	case token.KwNamespace:
		return p.parseNamespace()
	case token.KwUse:
		return p.parseUse()
	case token.KwConst:
		p.advance()
		items := p.parseConstItems(false)
		p.endStmt()
		return &ast.Const{Base: ast.At(p.spanFrom(tok.Span)), Items: items}
	case token.KwHaltCompiler:
		return p.parseHaltCompiler()

	case token.KwGoto:
		p.advance()
		label := p.parseIdent("label")
		p.endStmt()
		return &ast.Goto{Base: ast.At(p.spanFrom(tok.Span)), Label: label}

	case token.KwStatic:
		if p.peek(1).Kind == token.Variable {
			return p.parseStaticVars()
		}

	case token.HashLBracket:
		return p.parseAttributedStmt()

	case token.Ident:
		if p.peek(1).Kind == token.Colon {
			name := p.identFrom(p.advance())
			p.advance()
			return &ast.Label{Base: ast.At(p.spanFrom(tok.Span)), Name: name}
		}
	}

	if d, ok := p.parseDecl(nil, tok.Span); ok {
		return d
	}
	return p.parseExprStmt()
}

func (p *Parser) parseExprStmt() ast.Stmt {
	start := p.cur().Span
	e := p.parseExpr()
	if p.atAny(token.Semicolon, token.CloseTag) {
		p.endStmt()
	} else {
		n := len(p.diags)
		p.err(diag.SynExpectSemicolon, "expected ';', got "+describe(p.cur()))
		p.suggestInsert(n, ";")
		p.resyncStmt()
	}
	return &ast.ExprStmt{Base: ast.At(e.Span().Cover(p.spanFrom(start))), Expr: e}
}

// parseAttributedStmt: #[...] перед объявлением или замыканием.
func (p *Parser) parseAttributedStmt() ast.Stmt {
	start := p.cur().Span
	attrs := p.parseAttributes()
	if d, ok := p.parseDecl(attrs, start); ok {
		return d
	}

	var e ast.Expr
	switch {
	case p.at(token.KwFunction), p.at(token.KwStatic) && p.peek(1).Kind == token.KwFunction:
		e = p.parseClosure(attrs, start)
	case p.at(token.KwFn), p.at(token.KwStatic) && p.peek(1).Kind == token.KwFn:
		e = p.parseArrowFunction(attrs, start)
	default:
		p.err(diag.SynUnexpectedToken, "expected declaration after attributes, got "+describe(p.cur()))
		return &ast.BadStmt{Base: ast.At(p.spanFrom(start))}
	}
	e = p.parseBinaryRest(p.parsePostfix(e), precLowest)
	p.endStmt()
	return &ast.ExprStmt{Base: ast.At(p.spanFrom(start)), Expr: e}
}

// endStmt: терминатор оператора: ';' съедается, '?>' остаётся Tag-ом.
func (p *Parser) endStmt() {
	if p.at(token.CloseTag) {
		return
	}
	p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';'")
}

// parseBlock: '{' stmt* '}'.
func (p *Parser) parseBlock() *ast.Block {
	open, ok := p.expect(token.LBrace, diag.SynExpectBlock, "expected '{'")
	if !ok {
		return &ast.Block{Base: ast.At(p.gap()), Braced: true}
	}
	stmts := p.parseStmtsUntil(token.RBrace)
	p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close block")
	return &ast.Block{Base: ast.At(p.spanFrom(open.Span)), Stmts: stmts, Braced: true}
}

// parseStmtsUntil parses statements up to (not including) one of stops.
func (p *Parser) parseStmtsUntil(stops ...token.Kind) []ast.Stmt {
	var stmts []ast.Stmt
	for !p.at(token.EOF) && !p.atAny(stops...) {
		before := p.ts.Offset()
		stmts = append(stmts, p.parseStmt())
		p.ensureProgress(before, &stmts)
	}
	return stmts
}

// parseAltBlock is the body of the colon syntax, without braces.
func (p *Parser) parseAltBlock(stops ...token.Kind) *ast.Block {
	start := p.cur().Span
	stmts := p.parseStmtsUntil(stops...)
	if len(stmts) == 0 {
		return &ast.Block{Base: ast.At(p.gap())}
	}
	return &ast.Block{Base: ast.At(p.spanFrom(start)), Stmts: stmts}
}

// parseParenExpr: '(' expr ')'.
func (p *Parser) parseParenExpr(what string) ast.Expr {
	p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after "+what)
	e := p.parseExpr()
	p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'")
	return e
}

func (p *Parser) parseGlobal() ast.Stmt {
	tok := p.advance()
	vars := p.parseExprList(token.Semicolon, token.CloseTag)
	p.endStmt()
	return &ast.Global{Base: ast.At(p.spanFrom(tok.Span)), Vars: vars}
}

// parseStaticVars: static $a = 1, $b;
func (p *Parser) parseStaticVars() ast.Stmt {
	tok := p.advance()
	s := &ast.StaticVars{}
	for {
		vStart := p.cur().Span
		sv := &ast.StaticVar{Var: p.parseVariable()}
		if _, ok := p.eat(token.Assign); ok {
			p.initializer++
			sv.Default = p.parseExpr()
			p.initializer--
		}
		sv.Loc = p.nodeSpan(vStart, sv)
		s.Vars = append(s.Vars, sv)
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	p.endStmt()
	s.Loc = p.spanFrom(tok.Span)
	return s
}

func (p *Parser) parseUnset() ast.Stmt {
	tok := p.advance()
	p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after unset")
	vars := p.parseExprList(token.RParen)
	p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close unset")
	p.endStmt()
	return &ast.Unset{Base: ast.At(p.spanFrom(tok.Span)), Vars: vars}
}

func (p *Parser) parseReturn() ast.Stmt {
	tok := p.advance()
	r := &ast.Return{}
	if !p.atAny(token.Semicolon, token.CloseTag, token.EOF) {
		r.Value = p.parseExpr()
	}
	p.endStmt()
	r.Loc = p.spanFrom(tok.Span)
	return r
}

func (p *Parser) parseBreakContinue() ast.Stmt {
	tok := p.advance()
	var level ast.Expr
	if !p.atAny(token.Semicolon, token.CloseTag, token.EOF) {
		level = p.parseExpr()
	}
	p.endStmt()
	sp := p.spanFrom(tok.Span)
	if tok.Kind == token.KwBreak {
		return &ast.Break{Base: ast.At(sp), Level: level}
	}
	return &ast.Continue{Base: ast.At(sp), Level: level}
}

// ===== namespace / use =====

// parseNamespace: namespace A; | namespace A { } | namespace { }
func (p *Parser) parseNamespace() ast.Stmt {
	tok := p.advance()
	ns := &ast.Namespace{}
	if !p.at(token.LBrace) {
		ns.Name = p.parseName("namespace name")
	}
	if p.at(token.LBrace) {
		ns.Body = p.parseBlock()
	} else {
		p.endStmt()
	}
	ns.Loc = p.spanFrom(tok.Span)
	return ns
}

// parseUse handles imports:
//
//	use A\B [as C], D;
//	use function f, g as h;
//	use A\{B, function c, const D as E};
func (p *Parser) parseUse() ast.Stmt {
	useTok := p.advance()
	u := &ast.Use{}
	switch p.cur().Kind {
	case token.KwFunction, token.KwConst:
		u.Tok = p.advance().Kind
	}

	first := p.parseName("import name")
	if p.at(token.Backslash) && p.peek(1).Kind == token.LBrace {
		p.advance()
		p.advance()
		u.Prefix = first
		for !p.at(token.RBrace) && !p.at(token.EOF) {
			itemStart := p.cur().Span
			item := &ast.UseItem{}
			if u.Tok == token.Invalid && p.atAny(token.KwFunction, token.KwConst) {
				item.Tok = p.advance().Kind
			}
			item.Name = p.parseName("import name")
			item.Alias = p.parseUseAlias()
			item.Loc = p.nodeSpan(itemStart, item)
			u.Items = append(u.Items, item)
			if _, ok := p.eat(token.Comma); !ok {
				break
			}
		}
		p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close group use")
	} else {
		item := &ast.UseItem{Name: first, Alias: p.parseUseAlias()}
		item.Loc = p.spanFrom(first.Span())
		u.Items = append(u.Items, item)
		for p.at(token.Comma) {
			p.advance()
			itemStart := p.cur().Span
			item := &ast.UseItem{Name: p.parseName("import name")}
			item.Alias = p.parseUseAlias()
			item.Loc = p.nodeSpan(itemStart, item)
			u.Items = append(u.Items, item)
		}
	}
	p.endStmt()
	u.Loc = p.spanFrom(useTok.Span)
	return u
}

func (p *Parser) parseUseAlias() *ast.Identifier {
	if _, ok := p.eat(token.KwAs); !ok {
		return nil
	}
	return p.parseIdent("alias")
}

// parseHaltCompiler: __halt_compiler(); всё, что дальше: данные.
func (p *Parser) parseHaltCompiler() ast.Stmt {
	tok := p.advance()
	p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after __halt_compiler")
	p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'")
	if !p.at(token.CloseTag) {
		p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';'")
	}
	h := &ast.HaltCompiler{}
	end := p.lastSpan
	if p.at(token.CloseTag) {
		end = p.advance().Span
	}
	if p.at(token.HaltCompilerData) {
		data := p.advance()
		h.Data = data.Text
		end = data.Span
	}
	h.Loc = tok.Span.Cover(end)
	return h
}
