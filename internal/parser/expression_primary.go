package parser

import (
	"strings"

	"phpfront/internal/ast"
	"phpfront/internal/diag"
	"phpfront/internal/phpver"
	"phpfront/internal/source"
	"phpfront/internal/token"
)

// parsePrimaryExpr парсит основные (атомарные) выражения
func (p *Parser) parsePrimary() ast.Expr {
	tok := p.cur()
	switch tok.Kind {
	case token.Variable:
		return p.variableFrom(p.advance())

	case token.Dollar, token.DollarLBrace:
		return p.parseVariableVariable()

	case token.IntLit:
		p.advance()
		if len(tok.Text) > 1 && tok.Text[0] == '0' && (tok.Text[1] == 'o' || tok.Text[1] == 'O') {
			p.requireFeature(phpver.ExplicitOctal, tok.Span)
		}
		return &ast.Literal{Base: ast.At(tok.Span), Lit: ast.LitInt, Raw: tok.Text}

	case token.FloatLit:
		p.advance()
		return &ast.Literal{Base: ast.At(tok.Span), Lit: ast.LitFloat, Raw: tok.Text}

	case token.StringLit:
		p.advance()
		return &ast.Literal{Base: ast.At(tok.Span), Lit: ast.LitString, Raw: tok.Text}

	case token.DoubleQuote, token.Backtick, token.DocumentStart:
		return p.parseInterpolated()

	case token.Ident, token.QualifiedIdent, token.FullyQualifiedIdent, token.RelativeIdent:
		return p.nameFrom(p.advance())

	case token.KwStatic:
		switch p.peek(1).Kind {
		case token.KwFunction:
			return p.parseClosure(nil, tok.Span)
		case token.KwFn:
			return p.parseArrowFunction(nil, tok.Span)
		}
		// static::...
		return p.nameFrom(p.advance())

	case token.KwFunction:
		return p.parseClosure(nil, tok.Span)

	case token.KwFn:
		return p.parseArrowFunction(nil, tok.Span)

	case token.HashLBracket:
		attrs := p.parseAttributes()
		switch {
		case p.at(token.KwFunction), p.at(token.KwStatic) && p.peek(1).Kind == token.KwFunction:
			return p.parseClosure(attrs, tok.Span)
		case p.at(token.KwFn), p.at(token.KwStatic) && p.peek(1).Kind == token.KwFn:
			return p.parseArrowFunction(attrs, tok.Span)
		}
		p.err(diag.SynUnexpectedToken, "expected closure or arrow function after attributes, got "+describe(p.cur()))
		return &ast.BadExpr{Base: ast.At(p.spanFrom(tok.Span))}

	case token.LParen:
		p.advance()
		inner := p.parseExpr()
		p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'")
		return &ast.Paren{Base: ast.At(p.spanFrom(tok.Span)), Expr: inner}

	case token.LBracket:
		return p.parseArrayLiteral()

	case token.KwArray, token.KwList:
		if p.peek(1).Kind == token.LParen {
			return p.parseArrayLiteral()
		}

	case token.KwNew:
		return p.parseNew()

	case token.KwClone:
		p.advance()
		operand := p.parsePostfix(p.parsePrimary())
		return &ast.Clone{Base: ast.At(tok.Span.Cover(operand.Span())), Expr: operand}

	case token.KwMatch:
		return p.parseMatch()

	case token.KwIsset:
		p.advance()
		p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after isset")
		vars := p.parseExprList(token.RParen)
		p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close isset")
		return &ast.Isset{Base: ast.At(p.spanFrom(tok.Span)), Vars: vars}

	case token.KwEmpty, token.KwEval:
		p.advance()
		p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after "+strings.ToLower(tok.Text))
		inner := p.parseExpr()
		p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'")
		sp := p.spanFrom(tok.Span)
		if tok.Kind == token.KwEmpty {
			return &ast.Empty{Base: ast.At(sp), Expr: inner}
		}
		return &ast.Eval{Base: ast.At(sp), Expr: inner}

	case token.KwExit, token.KwDie:
		p.advance()
		var arg ast.Expr
		if _, ok := p.eat(token.LParen); ok {
			if !p.at(token.RParen) {
				arg = p.parseExpr()
			}
			p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'")
		}
		return &ast.Exit{Base: ast.At(p.spanFrom(tok.Span)), Die: tok.Kind == token.KwDie, Arg: arg}

	case token.KwInclude, token.KwIncludeOnce, token.KwRequire, token.KwRequireOnce:
		p.advance()
		operand := p.parseExprPrec(precAssignment)
		return &ast.Include{Base: ast.At(tok.Span.Cover(operand.Span())), Tok: tok.Kind, Expr: operand}

	case token.KwPrint:
		p.advance()
		operand := p.parseExprPrec(precAssignment)
		return &ast.Print{Base: ast.At(tok.Span.Cover(operand.Span())), Expr: operand}

	case token.KwYield:
		return p.parseYield()

	case token.KwThrow:
		p.advance()
		operand := p.parseExpr()
		return &ast.Throw{Base: ast.At(tok.Span.Cover(operand.Span())), Expr: operand}

	case token.KwReadonly:
		// readonly() остаётся допустимым именем функции
		if p.peek(1).Kind == token.LParen {
			return p.nameFrom(p.advance())
		}
	}

	if tok.Kind.IsMagicConst() {
		p.advance()
		return &ast.MagicConst{Base: ast.At(tok.Span), Tok: tok.Kind}
	}
	return p.badExpr("expected expression, got " + describe(tok))
}

// badExpr reports a missing expression. The offending token is swallowed
// unless it is a delimiter an enclosing construct still needs.
func (p *Parser) badExpr(msg string) ast.Expr {
	p.err(diag.SynExpectExpression, msg)
	k := p.cur().Kind
	if k == token.EOF || isExprSync(k) || isStmtStarter(k) {
		return &ast.BadExpr{Base: ast.At(p.gap())}
	}
	tok := p.advance()
	return &ast.BadExpr{Base: ast.At(tok.Span)}
}

func isExprSync(k token.Kind) bool {
	switch k {
	case token.Semicolon, token.Comma, token.RParen, token.RBracket, token.RBrace, token.LBrace,
		token.FatArrow, token.Colon, token.CloseTag, token.DoubleQuote, token.Backtick,
		token.DocumentEnd, token.StringPart, token.KwAs, token.KwInsteadof:
		return true
	}
	return isClauseKeyword(k)
}

func (p *Parser) parseVariableVariable() ast.Expr {
	tok := p.advance()
	if tok.Kind == token.DollarLBrace {
		inner := p.parseExpr()
		p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close variable expression")
		return &ast.VariableVariable{Base: ast.At(p.spanFrom(tok.Span)), Inner: inner, Braced: true}
	}
	var inner ast.Expr
	switch p.cur().Kind {
	case token.Variable:
		inner = p.variableFrom(p.advance())
	case token.Dollar, token.DollarLBrace:
		inner = p.parseVariableVariable()
	default:
		p.err(diag.SynExpectVariable, "expected variable after '$', got "+describe(p.cur()))
		inner = &ast.BadExpr{Base: ast.At(p.gap())}
	}
	return &ast.VariableVariable{Base: ast.At(tok.Span.Cover(inner.Span())), Inner: inner}
}

func (p *Parser) parseYield() ast.Expr {
	tok := p.advance()
	if p.cur().Is("from") {
		p.advance()
		operand := p.parseExprPrec(precAssignment)
		return &ast.YieldFrom{Base: ast.At(tok.Span.Cover(operand.Span())), Expr: operand}
	}
	y := &ast.Yield{Base: ast.At(tok.Span)}
	if !startsExpr(p.cur().Kind) {
		return y
	}
	y.Value = p.parseExprPrec(precAssignment)
	if _, ok := p.eat(token.FatArrow); ok {
		y.Key = y.Value
		y.Value = p.parseExprPrec(precAssignment)
	}
	y.Loc = tok.Span.Cover(y.Value.Span())
	return y
}

// ===== Функции =====

// parseClosure: [static] function [&] (params) [use (...)] [: type] { body }
func (p *Parser) parseClosure(attrs []*ast.AttributeGroup, start source.Span) ast.Expr {
	c := &ast.Closure{Attrs: attrs}
	if _, ok := p.eat(token.KwStatic); ok {
		c.Static = true
	}
	fnTok, _ := p.expect(token.KwFunction, diag.SynUnexpectedToken, "expected 'function'")
	if p.in(ctxAttribute) {
		p.errAt(diag.SynClosureInAttribute, fnTok.Span, "closures are not allowed in attribute arguments")
	}
	if _, ok := p.eat(token.Amp); ok {
		c.ByRef = true
	}
	c.Params = p.parseParameterList()

	if _, ok := p.eat(token.KwUse); ok {
		if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after use"); ok {
			for !p.at(token.RParen) && !p.at(token.EOF) {
				uStart := p.cur().Span
				_, byRef := p.eat(token.Amp)
				v := p.parseVariable()
				use := &ast.ClosureUse{ByRef: byRef, Var: v}
				use.Loc = p.nodeSpan(uStart, use)
				c.Uses = append(c.Uses, use)
				if _, ok := p.eat(token.Comma); !ok {
					break
				}
			}
			p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close use list")
		}
	}
	if _, ok := p.eat(token.Colon); ok {
		c.ReturnType = p.parseType()
	}

	p.push(ctxFunction)
	c.Body = p.parseBlock()
	p.pop()
	c.Loc = p.spanFrom(start)
	return c
}

// parseArrowFunction handles fn(...) => expr. Without "=>" the tokens are
// re-read as a call to a function named fn.
func (p *Parser) parseArrowFunction(attrs []*ast.AttributeGroup, start source.Span) ast.Expr {
	cp := p.checkpoint()
	f := &ast.ArrowFunction{Attrs: attrs}
	if _, ok := p.eat(token.KwStatic); ok {
		f.Static = true
	}
	fnTok := p.advance() // fn
	if _, ok := p.eat(token.Amp); ok {
		f.ByRef = true
	}
	if p.at(token.LParen) {
		f.Params = p.parseParameterList()
		if _, ok := p.eat(token.Colon); ok {
			f.ReturnType = p.parseType()
		}
	}
	if !p.at(token.FatArrow) || p.failedSince(cp) {
		if attrs == nil && !f.Static {
			p.restore(cp)
			return p.nameFrom(p.advance())
		}
		p.expect(token.FatArrow, diag.SynUnexpectedToken, "expected '=>' in arrow function")
	} else {
		p.advance()
	}
	if f.Params == nil {
		f.Params = &ast.ParameterList{Base: ast.At(p.gap())}
	}
	if p.in(ctxAttribute) {
		p.errAt(diag.SynClosureInAttribute, fnTok.Span, "arrow functions are not allowed in attribute arguments")
	}

	p.push(ctxFunction)
	f.Body = p.parseExprPrec(precAssignment)
	p.pop()
	f.Loc = p.spanFrom(start)
	return f
}

// ===== new / match =====

func (p *Parser) parseNew() ast.Expr {
	newTok := p.advance()
	if p.initializer > 0 {
		p.requireFeature(phpver.NewInInitializers, newTok.Span)
	}

	if p.at(token.HashLBracket) || p.at(token.KwClass) ||
		(p.atAny(token.KwReadonly, token.KwFinal, token.KwAbstract) && p.peek(1).Kind == token.KwClass) {
		anon := p.parseAnonymousClass()
		// аргументы живут в самом AnonymousClass
		return &ast.New{Base: ast.At(p.spanFrom(newTok.Span)), Class: anon}
	}

	class := p.parseNewClassRef()
	n := &ast.New{Class: class}
	if p.at(token.LParen) {
		n.Args = p.parseArgumentList()
	}
	n.Loc = p.spanFrom(newTok.Span)
	return n
}

// parseNewClassRef: a name, static, (expr), or a variable with property,
// static property and index accesses but no calls.
func (p *Parser) parseNewClassRef() ast.Expr {
	tok := p.cur()
	switch {
	case tok.Kind.IsName(), tok.Kind == token.KwStatic:
		return p.nameFrom(p.advance())
	case tok.Kind == token.LParen:
		p.advance()
		inner := p.parseExpr()
		p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'")
		return &ast.Paren{Base: ast.At(p.spanFrom(tok.Span)), Expr: inner}
	case tok.Kind == token.Variable, tok.Kind == token.Dollar, tok.Kind == token.DollarLBrace:
	default:
		p.err(diag.SynExpectIdentifier, "expected class name after 'new', got "+describe(tok))
		return &ast.BadExpr{Base: ast.At(p.gap())}
	}

	var e ast.Expr
	if tok.Kind == token.Variable {
		e = p.variableFrom(p.advance())
	} else {
		e = p.parseVariableVariable()
	}
	for {
		switch p.cur().Kind {
		case token.Arrow, token.NullsafeArrow:
			op := p.advance()
			prop := p.parseMemberName()
			e = &ast.PropertyFetch{
				Base:     ast.At(e.Span().Cover(prop.Span())),
				Object:   e,
				Prop:     prop,
				Nullsafe: op.Kind == token.NullsafeArrow,
			}
		case token.ColonColon:
			if k := p.peek(1).Kind; k != token.Variable && k != token.Dollar {
				return e
			}
			p.advance()
			prop := p.parseStaticPropName()
			e = &ast.StaticPropertyFetch{Base: ast.At(e.Span().Cover(prop.Span())), Class: e, Prop: prop}
		case token.LBracket:
			e = p.parseIndexSuffix(e)
		default:
			return e
		}
	}
}

func (p *Parser) parseAnonymousClass() *ast.AnonymousClass {
	start := p.cur().Span
	c := &ast.AnonymousClass{}
	c.Attrs = p.parseAttributes()
	c.Modifiers = p.parseModifiers()
	p.checkClassModifiers(c.Modifiers)
	p.expect(token.KwClass, diag.SynUnexpectedToken, "expected 'class'")
	if p.at(token.LParen) {
		c.Args = p.parseArgumentList()
	}
	if _, ok := p.eat(token.KwExtends); ok {
		c.Extends = p.parseName("parent class name")
	}
	if _, ok := p.eat(token.KwImplements); ok {
		c.Implements = p.parseNameList("interface name")
	}
	c.Members = p.parseClassBody(ctxClass)
	c.Loc = p.spanFrom(start)
	return c
}

// parseMatch: match (subject) { cond, cond => expr, default => expr, }
func (p *Parser) parseMatch() ast.Expr {
	matchTok := p.advance()
	m := &ast.Match{}
	p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after match")
	m.Subject = p.parseExpr()
	p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close match subject")
	p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' to start match arms")

	var seenDefault bool
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		before := p.ts.Offset()
		arm := &ast.MatchArm{}
		armStart := p.cur().Span
		if defTok, ok := p.eat(token.KwDefault); ok {
			arm.Default = true
			if seenDefault {
				p.errAt(diag.SynMultipleDefault, defTok.Span, "match expression may only contain one default arm")
			}
			seenDefault = true
			p.eat(token.Comma)
		} else {
			for {
				arm.Conds = append(arm.Conds, p.parseExpr())
				if _, ok := p.eat(token.Comma); !ok || p.at(token.FatArrow) {
					break
				}
			}
		}
		p.expect(token.FatArrow, diag.SynUnexpectedToken, "expected '=>' in match arm")
		arm.Body = p.parseExpr()
		arm.Loc = p.nodeSpan(armStart, arm)
		m.Arms = append(m.Arms, arm)

		if _, ok := p.eat(token.Comma); !ok {
			break
		}
		if p.ts.Offset() == before {
			break
		}
	}
	p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close match")
	m.Loc = p.spanFrom(matchTok.Span)
	return m
}
