package parser

import (
	"phpfront/internal/ast"
	"phpfront/internal/diag"
	"phpfront/internal/phpver"
	"phpfront/internal/source"
	"phpfront/internal/token"
)

// atFunctionDecl: "function name" or "function &name"; otherwise it is a closure.
func (p *Parser) atFunctionDecl() bool {
	if !p.at(token.KwFunction) {
		return false
	}
	next := p.peek(1).Kind
	if next == token.Amp {
		next = p.peek(2).Kind
	}
	return next == token.Ident
}

// atClassDecl: [modifier]* class. Недопустимые модификаторы (static, public)
// тоже берём сюда, чтобы checkClassModifiers сказал о них внятно.
func (p *Parser) atClassDecl() bool {
	for i := 0; ; i++ {
		switch p.peek(i).Kind {
		case token.KwClass:
			return true
		case token.KwAbstract, token.KwFinal, token.KwReadonly, token.KwStatic,
			token.KwPublic, token.KwProtected, token.KwPrivate:
			continue
		}
		return false
	}
}

// parseDecl dispatches a top-level declaration after its attributes.
// ok is false when the current token does not start one.
func (p *Parser) parseDecl(attrs []*ast.AttributeGroup, start source.Span) (ast.Stmt, bool) {
	switch {
	case p.atFunctionDecl():
		return p.parseFunctionDecl(attrs, start), true
	case p.atClassDecl():
		return p.parseClassDecl(attrs, start), true
	case p.at(token.KwInterface):
		return p.parseInterfaceDecl(attrs, start), true
	case p.at(token.KwTrait):
		return p.parseTraitDecl(attrs, start), true
	case p.cur().Is("enum") && p.peek(1).Kind == token.Ident:
		return p.parseEnumDecl(attrs, start), true
	}
	return nil, false
}

func (p *Parser) parseFunctionDecl(attrs []*ast.AttributeGroup, start source.Span) *ast.FunctionDecl {
	p.advance() // function
	fn := &ast.FunctionDecl{Attrs: attrs}
	if _, ok := p.eat(token.Amp); ok {
		fn.ByRef = true
	}
	fn.Name = p.parseIdent("function name")
	fn.Params = p.parseParameterList()
	if _, ok := p.eat(token.Colon); ok {
		fn.ReturnType = p.parseType()
	}
	p.push(ctxFunction)
	fn.Body = p.parseBlock()
	p.pop()
	fn.Loc = p.spanFrom(start)
	return fn
}

// ===== Параметры =====

func startsParam(k token.Kind) bool {
	switch k {
	case token.Variable, token.Amp, token.Ellipsis, token.HashLBracket:
		return true
	}
	return k.IsModifier() || startsType(k)
}

// parseParameterList разбирает "(...)". Мусор внутри списка сворачивается
// в list.Bad; закрывающую ')' ищем только до '{' или ';'.
func (p *Parser) parseParameterList() *ast.ParameterList {
	list := &ast.ParameterList{}
	open, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' to start parameter list")
	if !ok {
		list.Bad = &ast.BadExpr{Base: ast.At(p.gap())}
		list.Loc = list.Bad.Loc
		return list
	}

	for !p.at(token.RParen) && !p.at(token.EOF) {
		if !startsParam(p.cur().Kind) {
			p.err(diag.SynExpectVariable, "expected parameter, got "+describe(p.cur()))
			badStart := p.cur().Span
			skipped := false
			for !p.atAny(token.RParen, token.LBrace, token.Semicolon, token.EOF) {
				p.advance()
				skipped = true
			}
			sp := p.gap()
			if skipped {
				sp = p.spanFrom(badStart)
			}
			list.Bad = &ast.BadExpr{Base: ast.At(sp)}
			break
		}
		list.Params = append(list.Params, p.parseParameter())
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close parameter list")
	list.Loc = p.spanFrom(open.Span)
	return list
}

func (p *Parser) parseParameter() *ast.Parameter {
	start := p.cur().Span
	prm := &ast.Parameter{}
	prm.Attrs = p.parseAttributes()
	prm.Modifiers = p.parseModifiers()
	if startsType(p.cur().Kind) {
		prm.Type = p.parseType()
	}
	if _, ok := p.eat(token.Amp); ok {
		prm.ByRef = true
	}
	if _, ok := p.eat(token.Ellipsis); ok {
		prm.Variadic = true
	}
	prm.Var = p.parseVariable()
	if _, ok := p.eat(token.Assign); ok {
		p.initializer++
		prm.Default = p.parseExpr()
		p.initializer--
	}
	if len(prm.Modifiers) > 0 {
		p.checkPromotedModifiers(prm.Modifiers, prm.Type)
		if p.at(token.LBrace) {
			prm.Hooks = p.parsePropertyHooks()
		}
	}
	prm.Loc = p.nodeSpan(start, prm)
	return prm
}

// ===== Классоподобные =====

func (p *Parser) parseClassDecl(attrs []*ast.AttributeGroup, start source.Span) *ast.ClassDecl {
	c := &ast.ClassDecl{Attrs: attrs}
	c.Modifiers = p.parseModifiers()
	p.checkClassModifiers(c.Modifiers)
	p.expect(token.KwClass, diag.SynUnexpectedToken, "expected 'class'")
	c.Name = p.parseIdent("class name")
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

func (p *Parser) parseInterfaceDecl(attrs []*ast.AttributeGroup, start source.Span) *ast.InterfaceDecl {
	p.advance() // interface
	d := &ast.InterfaceDecl{Attrs: attrs}
	d.Name = p.parseIdent("interface name")
	if _, ok := p.eat(token.KwExtends); ok {
		d.Extends = p.parseNameList("interface name")
	}
	d.Members = p.parseClassBody(ctxInterface)
	d.Loc = p.spanFrom(start)
	return d
}

func (p *Parser) parseTraitDecl(attrs []*ast.AttributeGroup, start source.Span) *ast.TraitDecl {
	p.advance() // trait
	d := &ast.TraitDecl{Attrs: attrs}
	d.Name = p.parseIdent("trait name")
	d.Members = p.parseClassBody(ctxTrait)
	d.Loc = p.spanFrom(start)
	return d
}

// parseEnumDecl: enum Name [: int|string] [implements A, B] { ... }
func (p *Parser) parseEnumDecl(attrs []*ast.AttributeGroup, start source.Span) *ast.EnumDecl {
	enumTok := p.advance()
	d := &ast.EnumDecl{Attrs: attrs}
	d.Name = p.parseIdent("enum name")
	p.requireFeature(phpver.Enums, enumTok.Span.Cover(d.Name.Span()))
	if _, ok := p.eat(token.Colon); ok {
		d.BackingType = p.parseType()
	}
	if _, ok := p.eat(token.KwImplements); ok {
		d.Implements = p.parseNameList("interface name")
	}
	d.Members = p.parseClassBody(ctxEnum)
	d.Loc = p.spanFrom(start)
	return d
}

// parseClassBody: '{' member* '}' in context c.
func (p *Parser) parseClassBody(c context) []ast.ClassMember {
	if _, ok := p.expect(token.LBrace, diag.SynExpectBlock, "expected '{' to start class body"); !ok {
		return nil
	}
	p.push(c)
	var members []ast.ClassMember
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		before := p.ts.Offset()
		m := p.parseMember()
		if p.ts.Offset() == before {
			// мусор сворачиваем в один BadMember до следующего члена
			badStart := p.cur().Span
			p.err(diag.SynUnexpectedToken, "unexpected "+describe(p.cur())+" in class body")
			p.advance()
			for !p.atAny(token.RBrace, token.EOF) && !startsMember(p.cur().Kind) {
				p.advance()
			}
			m = &ast.BadMember{Base: ast.At(p.spanFrom(badStart))}
		}
		members = append(members, m)
	}
	p.pop()
	p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close class body")
	return members
}

func startsMember(k token.Kind) bool {
	switch k {
	case token.KwUse, token.KwCase, token.KwConst, token.KwFunction, token.HashLBracket, token.Variable:
		return true
	}
	return k.IsModifier()
}
