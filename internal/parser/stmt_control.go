package parser

import (
	"phpfront/internal/ast"
	"phpfront/internal/diag"
	"phpfront/internal/token"
)

// closeAlt завершает альтернативный синтаксис: endif; endwhile; ...
func (p *Parser) closeAlt(end token.Kind) {
	p.expect(end, diag.SynUnclosedDelimiter, "expected '"+end.String()+"'")
	p.endStmt()
}

// parseIf: if (c) s [elseif (c) s]* [else s], или форма с ':' и endif.
func (p *Parser) parseIf() ast.Stmt {
	ifTok := p.advance()
	s := &ast.If{Cond: p.parseParenExpr("if")}

	if _, ok := p.eat(token.Colon); ok {
		s.Alt = true
		s.Then = p.parseAltBlock(token.KwElseif, token.KwElse, token.KwEndif)
		for p.at(token.KwElseif) {
			eTok := p.advance()
			ei := &ast.ElseIf{Cond: p.parseParenExpr("elseif")}
			p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':' after elseif condition")
			ei.Body = p.parseAltBlock(token.KwElseif, token.KwElse, token.KwEndif)
			ei.Loc = p.spanFrom(eTok.Span)
			s.ElseIfs = append(s.ElseIfs, ei)
		}
		if elseTok, ok := p.eat(token.KwElse); ok {
			p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':' after else")
			s.Else = &ast.Else{Body: p.parseAltBlock(token.KwEndif)}
			s.Else.Loc = p.spanFrom(elseTok.Span)
		}
		p.closeAlt(token.KwEndif)
		s.Loc = p.spanFrom(ifTok.Span)
		return s
	}

	s.Then = p.parseStmt()
	for p.at(token.KwElseif) {
		eTok := p.advance()
		ei := &ast.ElseIf{Cond: p.parseParenExpr("elseif")}
		ei.Body = p.parseStmt()
		ei.Loc = p.spanFrom(eTok.Span)
		s.ElseIfs = append(s.ElseIfs, ei)
	}
	if elseTok, ok := p.eat(token.KwElse); ok {
		s.Else = &ast.Else{Body: p.parseStmt()}
		s.Else.Loc = p.spanFrom(elseTok.Span)
	}
	s.Loc = p.spanFrom(ifTok.Span)
	return s
}

func (p *Parser) parseWhile() ast.Stmt {
	tok := p.advance()
	s := &ast.While{Cond: p.parseParenExpr("while")}
	if _, ok := p.eat(token.Colon); ok {
		s.Alt = true
		s.Body = p.parseAltBlock(token.KwEndwhile)
		p.closeAlt(token.KwEndwhile)
	} else {
		s.Body = p.parseStmt()
	}
	s.Loc = p.spanFrom(tok.Span)
	return s
}

func (p *Parser) parseDoWhile() ast.Stmt {
	tok := p.advance()
	s := &ast.DoWhile{Body: p.parseStmt()}
	p.expect(token.KwWhile, diag.SynUnexpectedToken, "expected 'while' after do body")
	s.Cond = p.parseParenExpr("while")
	p.endStmt()
	s.Loc = p.spanFrom(tok.Span)
	return s
}

// parseFor: for (init; cond; step) body
func (p *Parser) parseFor() ast.Stmt {
	tok := p.advance()
	s := &ast.For{}
	p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after for")
	s.Init = p.parseExprList(token.Semicolon)
	p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' in for header")
	s.Cond = p.parseExprList(token.Semicolon)
	p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' in for header")
	s.Step = p.parseExprList(token.RParen)
	p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close for header")

	if _, ok := p.eat(token.Colon); ok {
		s.Alt = true
		s.Body = p.parseAltBlock(token.KwEndfor)
		p.closeAlt(token.KwEndfor)
	} else {
		s.Body = p.parseStmt()
	}
	s.Loc = p.spanFrom(tok.Span)
	return s
}

// parseForeach: foreach (expr as [key =>] [&]value) body
func (p *Parser) parseForeach() ast.Stmt {
	tok := p.advance()
	s := &ast.Foreach{}
	p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after foreach")
	s.Expr = p.parseExpr()
	p.expect(token.KwAs, diag.SynUnexpectedToken, "expected 'as' in foreach")

	p.destructure++
	_, byRef := p.eat(token.Amp)
	target := p.parseExpr()
	if _, ok := p.eat(token.FatArrow); ok {
		if byRef {
			p.errAt(diag.SynInvalidAssignTarget, target.Span(), "key element cannot be a reference")
		}
		s.Key = target
		_, byRef = p.eat(token.Amp)
		target = p.parseExpr()
	}
	p.destructure--
	s.ByRef = byRef
	s.Value = target
	p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close foreach header")

	if _, ok := p.eat(token.Colon); ok {
		s.Alt = true
		s.Body = p.parseAltBlock(token.KwEndforeach)
		p.closeAlt(token.KwEndforeach)
	} else {
		s.Body = p.parseStmt()
	}
	s.Loc = p.spanFrom(tok.Span)
	return s
}

// parseSwitch: switch (x) { case e: ... default: ... } или ': ... endswitch;'
func (p *Parser) parseSwitch() ast.Stmt {
	tok := p.advance()
	s := &ast.Switch{Subject: p.parseParenExpr("switch")}

	closer := token.RBrace
	if _, ok := p.eat(token.Colon); ok {
		s.Alt = true
		closer = token.KwEndswitch
	} else if _, ok := p.expect(token.LBrace, diag.SynExpectBlock, "expected '{' to start switch body"); !ok {
		s.Loc = p.spanFrom(tok.Span)
		return s
	}
	p.eat(token.Semicolon)

	var seenDefault bool
	for !p.at(closer) && !p.at(token.EOF) {
		caseStart := p.cur().Span
		c := &ast.SwitchCase{}
		switch {
		case p.at(token.KwCase):
			p.advance()
			c.Cond = p.parseExpr()
		case p.at(token.KwDefault):
			defTok := p.advance()
			if seenDefault {
				p.errAt(diag.SynMultipleDefault, defTok.Span, "switch statements may only contain one default clause")
			}
			seenDefault = true
		default:
			p.err(diag.SynUnexpectedToken, "expected 'case' or 'default', got "+describe(p.cur()))
			p.resyncUntil(token.KwCase, token.KwDefault, closer)
			continue
		}
		if !p.atAny(token.Colon, token.Semicolon) {
			p.err(diag.SynUnexpectedToken, "expected ':' after case, got "+describe(p.cur()))
		} else {
			p.advance()
		}
		c.Body = p.parseStmtsUntil(token.KwCase, token.KwDefault, closer)
		c.Loc = p.spanFrom(caseStart)
		s.Cases = append(s.Cases, c)
	}

	if s.Alt {
		p.closeAlt(token.KwEndswitch)
	} else {
		p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close switch")
	}
	s.Loc = p.spanFrom(tok.Span)
	return s
}

// parseTry: try { } catch (A|B $e) { } finally { }
func (p *Parser) parseTry() ast.Stmt {
	tok := p.advance()
	s := &ast.Try{Body: p.parseBlock()}
	for p.at(token.KwCatch) {
		cTok := p.advance()
		c := &ast.Catch{}
		p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after catch")
		c.Types = append(c.Types, p.parseName("exception class"))
		for p.at(token.Pipe) {
			p.advance()
			c.Types = append(c.Types, p.parseName("exception class"))
		}
		// catch без переменной: PHP 8.0
		if p.at(token.Variable) {
			c.Var = p.variableFrom(p.advance())
		}
		p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close catch")
		c.Body = p.parseBlock()
		c.Loc = p.spanFrom(cTok.Span)
		s.Catches = append(s.Catches, c)
	}
	if fTok, ok := p.eat(token.KwFinally); ok {
		s.Finally = &ast.Finally{Body: p.parseBlock()}
		s.Finally.Loc = p.spanFrom(fTok.Span)
	}
	if len(s.Catches) == 0 && s.Finally == nil {
		p.err(diag.SynUnexpectedToken, "cannot use try without catch or finally")
	}
	s.Loc = p.spanFrom(tok.Span)
	return s
}

// parseDeclare: declare(strict_types=1); | declare(ticks=1) stmt | declare(...): ... enddeclare;
func (p *Parser) parseDeclare() ast.Stmt {
	tok := p.advance()
	s := &ast.Declare{}
	p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after declare")
	for !p.at(token.RParen) && !p.at(token.EOF) {
		dStart := p.cur().Span
		d := &ast.DeclareDirective{Name: p.parseIdent("directive name")}
		if _, ok := p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' in declare directive"); ok {
			d.Value = p.parseExpr()
		} else {
			d.Value = &ast.BadExpr{Base: ast.At(p.gap())}
		}
		d.Loc = p.nodeSpan(dStart, d)
		s.Directives = append(s.Directives, d)
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close declare")

	switch {
	case p.at(token.Colon):
		p.advance()
		s.Alt = true
		s.Body = p.parseAltBlock(token.KwEnddeclare)
		p.closeAlt(token.KwEnddeclare)
	case p.atAny(token.Semicolon, token.CloseTag):
		p.endStmt()
	default:
		s.Body = p.parseStmt()
	}
	s.Loc = p.spanFrom(tok.Span)
	return s
}
