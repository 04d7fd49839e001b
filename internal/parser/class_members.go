package parser

import (
	"strings"

	"phpfront/internal/ast"
	"phpfront/internal/diag"
	"phpfront/internal/phpver"
	"phpfront/internal/source"
	"phpfront/internal/token"
)

// parseMember разбирает один член класса: use, case, const, метод или свойство.
func (p *Parser) parseMember() ast.ClassMember {
	start := p.cur().Span
	attrs := p.parseAttributes()

	switch {
	case p.at(token.KwUse):
		if len(attrs) > 0 {
			p.errAt(diag.SynUnexpectedToken, attrs[0].Span(), "attributes are not allowed on trait use")
		}
		return p.parseTraitUse(start)
	case p.at(token.KwCase):
		return p.parseEnumCase(attrs, start)
	}

	mods := p.parseModifiers()
	switch {
	case p.at(token.KwConst):
		return p.parseClassConst(attrs, mods, start)
	case p.at(token.KwFunction):
		return p.parseMethod(attrs, mods, start)
	case p.at(token.Variable), startsType(p.cur().Kind):
		return p.parseProperty(attrs, mods, start)
	}

	if len(attrs) == 0 && len(mods) == 0 {
		// ничего не съели: parseClassBody сам пропустит токен
		return nil
	}
	p.err(diag.SynUnexpectedToken, "expected member declaration, got "+describe(p.cur()))
	return &ast.BadMember{Base: ast.At(p.spanFrom(start))}
}

func (p *Parser) parseMethod(attrs []*ast.AttributeGroup, mods ast.Modifiers, start source.Span) *ast.MethodDecl {
	p.advance() // function
	m := &ast.MethodDecl{Attrs: attrs, Modifiers: mods}
	p.checkMethodModifiers(mods)
	if _, ok := p.eat(token.Amp); ok {
		m.ByRef = true
	}
	m.Name = p.parseMemberIdent("method name")
	m.Params = p.parseParameterList()
	if _, ok := p.eat(token.Colon); ok {
		m.ReturnType = p.parseType()
	}

	abstract := mods.Has(token.KwAbstract)
	if p.at(token.LBrace) {
		switch {
		case p.in(ctxInterface):
			p.errAt(diag.SynMethodBodyInInterface, m.Name.Span(), "interface method "+m.Name.Name+"() cannot have a body")
		case abstract:
			p.warnAt(diag.CompatAbstractWithBody, m.Name.Span(), "abstract method "+m.Name.Name+"() cannot have a body")
		}
		p.push(ctxFunction)
		m.Body = p.parseBlock()
		p.pop()
	} else {
		if _, ok := p.expect(token.Semicolon, diag.SynMissingMethodBody, "expected method body or ';'"); ok &&
			!abstract && !p.in(ctxInterface) {
			p.errAt(diag.SynMissingMethodBody, m.Name.Span(), "non-abstract method "+m.Name.Name+"() must have a body")
		}
	}
	m.Loc = p.spanFrom(start)
	return m
}

func (p *Parser) parseProperty(attrs []*ast.AttributeGroup, mods ast.Modifiers, start source.Span) *ast.PropertyDecl {
	d := &ast.PropertyDecl{Attrs: attrs, Modifiers: mods}
	if !p.at(token.Variable) {
		d.Type = p.parseType()
	}
	for {
		itemStart := p.cur().Span
		item := &ast.PropertyItem{Var: p.parseVariable()}
		if _, ok := p.eat(token.Assign); ok {
			p.initializer++
			item.Default = p.parseExpr()
			p.initializer--
		}
		item.Loc = p.nodeSpan(itemStart, item)
		d.Props = append(d.Props, item)
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	if p.at(token.LBrace) {
		d.Hooks = p.parsePropertyHooks()
	} else {
		p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after property declaration")
	}

	if p.in(ctxEnum) {
		p.errAt(diag.SynPropertyInEnum, d.Props[0].Span(), "enums cannot include properties")
	}
	p.checkPropertyModifiers(mods, d.Type, len(d.Hooks) > 0)
	d.Loc = p.spanFrom(start)
	return d
}

// parsePropertyHooks: '{' (get|set) ... '}' after a property or promoted parameter.
func (p *Parser) parsePropertyHooks() []*ast.PropertyHook {
	open := p.advance()
	var hooks []*ast.PropertyHook
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		before := p.ts.Offset()
		hooks = append(hooks, p.parsePropertyHook())
		if p.ts.Offset() == before {
			p.err(diag.SynInvalidHook, "unexpected "+describe(p.cur())+" in property hook list")
			p.advance()
		}
	}
	p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close property hooks")
	sp := p.spanFrom(open.Span)
	p.requireFeature(phpver.PropertyHooks, sp)
	if len(hooks) == 0 {
		p.errAt(diag.SynInvalidHook, sp, "property hook list must not be empty")
	}
	return hooks
}

func (p *Parser) parsePropertyHook() *ast.PropertyHook {
	start := p.cur().Span
	h := &ast.PropertyHook{}
	h.Attrs = p.parseAttributes()
	h.Modifiers = p.parseModifiers()
	p.disallow(h.Modifiers, "a property hook", func(k token.Kind) bool { return k == token.KwFinal })
	if _, ok := p.eat(token.Amp); ok {
		h.ByRef = true
	}
	h.Name = p.parseIdent("hook name")
	if n := strings.ToLower(h.Name.Name); n != "" && n != "get" && n != "set" {
		p.errAt(diag.SynInvalidHook, h.Name.Span(), "unknown hook '"+h.Name.Name+"', expected get or set")
	}
	if p.at(token.LParen) {
		h.Params = p.parseParameterList()
	}

	p.push(ctxFunction)
	switch {
	case p.at(token.FatArrow):
		p.advance()
		h.Expr = p.parseExpr()
		p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after hook expression")
	case p.at(token.LBrace):
		h.Body = p.parseBlock()
	default:
		// абстрактный хук: get;
		p.expect(token.Semicolon, diag.SynInvalidHook, "expected hook body")
	}
	p.pop()
	h.Loc = p.nodeSpan(start, h)
	return h
}

// parseClassConst: [mods] const [type] NAME = expr, ... ;
func (p *Parser) parseClassConst(attrs []*ast.AttributeGroup, mods ast.Modifiers, start source.Span) *ast.ClassConstDecl {
	constTok := p.advance()
	d := &ast.ClassConstDecl{Attrs: attrs, Modifiers: mods}
	p.checkConstModifiers(mods)
	if p.in(ctxTrait) {
		p.requireFeature(phpver.ConstantsInTraits, constTok.Span)
	}
	// нетипизированная форма: const NAME =
	if !(p.cur().Kind.IsSemiReserved() && p.peek(1).Kind == token.Assign) {
		d.Type = p.parseType()
		p.requireFeature(phpver.TypedClassConstants, d.Type.Span())
	}
	d.Items = p.parseConstItems(true)
	p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after constant declaration")
	d.Loc = p.spanFrom(start)
	return d
}

// parseConstItems: NAME = expr (',' NAME = expr)*. Class constants may use
// semi-reserved names.
func (p *Parser) parseConstItems(member bool) []*ast.ConstItem {
	var items []*ast.ConstItem
	for {
		itemStart := p.cur().Span
		item := &ast.ConstItem{}
		if member {
			item.Name = p.parseMemberIdent("constant name")
		} else {
			item.Name = p.parseIdent("constant name")
		}
		if _, ok := p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' in constant declaration"); ok {
			p.initializer++
			item.Value = p.parseExpr()
			p.initializer--
		} else {
			item.Value = &ast.BadExpr{Base: ast.At(p.gap())}
		}
		item.Loc = p.nodeSpan(itemStart, item)
		items = append(items, item)
		if _, ok := p.eat(token.Comma); !ok {
			return items
		}
	}
}

// parseEnumCase: case NAME [= expr];
func (p *Parser) parseEnumCase(attrs []*ast.AttributeGroup, start source.Span) *ast.EnumCase {
	caseTok := p.advance()
	c := &ast.EnumCase{Attrs: attrs}
	if !p.in(ctxEnum) {
		p.errAt(diag.SynEnumCaseOutsideEnum, caseTok.Span, "case can only be used in enums")
	}
	c.Name = p.parseMemberIdent("case name")
	if _, ok := p.eat(token.Assign); ok {
		p.initializer++
		c.Value = p.parseExpr()
		p.initializer--
	}
	p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after enum case")
	c.Loc = p.spanFrom(start)
	return c
}

// parseTraitUse: use A, B; или use A, B { adaptations }
func (p *Parser) parseTraitUse(start source.Span) *ast.TraitUse {
	p.advance() // use
	u := &ast.TraitUse{Traits: p.parseNameList("trait name")}
	if _, ok := p.eat(token.LBrace); !ok {
		p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' or '{' after trait use")
		u.Loc = p.spanFrom(start)
		return u
	}
	u.Braced = true
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		before := p.ts.Offset()
		u.Adaptations = append(u.Adaptations, p.parseTraitAdaptation())
		if p.ts.Offset() == before {
			p.err(diag.SynUnexpectedToken, "unexpected "+describe(p.cur())+" in trait adaptation block")
			p.advance()
		}
	}
	p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close trait adaptations")
	u.Loc = p.spanFrom(start)
	return u
}

// parseTraitAdaptation:
//
//	[Trait::]method insteadof A, B;
//	[Trait::]method as [visibility] [alias];
func (p *Parser) parseTraitAdaptation() *ast.TraitAdaptation {
	start := p.cur().Span
	a := &ast.TraitAdaptation{}
	if p.cur().Kind.IsName() && p.peek(1).Kind == token.ColonColon {
		a.Trait = p.nameFrom(p.advance())
		p.advance()
	}
	a.Method = p.parseMemberIdent("method name")

	switch {
	case p.at(token.KwInsteadof):
		p.advance()
		a.Insteadof = p.parseNameList("trait name")
	case p.at(token.KwAs):
		p.advance()
		if k := p.cur().Kind; isVisibility(k) {
			tok := p.advance()
			a.Visibility = &ast.Modifier{Tok: tok.Kind, Span: tok.Span}
		}
		if p.cur().Kind.IsSemiReserved() {
			a.Alias = p.identFrom(p.advance())
		} else if a.Visibility == nil {
			p.err(diag.SynExpectIdentifier, "expected alias or visibility after 'as', got "+describe(p.cur()))
		}
	default:
		p.err(diag.SynUnexpectedToken, "expected 'as' or 'insteadof', got "+describe(p.cur()))
	}
	p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after trait adaptation")
	a.Loc = p.nodeSpan(start, a)
	return a
}
