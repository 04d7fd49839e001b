package parser

import (
	"strings"

	"phpfront/internal/ast"
	"phpfront/internal/diag"
	"phpfront/internal/phpver"
	"phpfront/internal/source"
	"phpfront/internal/token"
)

// parseType разбирает полный тип: T, ?T, A|B, A&B, (A&B)|C.
// Недопустимые вложенности дают диагностику, но дерево строится всегда.
func (p *Parser) parseType() ast.TypeHint {
	start := p.cur().Span
	var t ast.TypeHint

	if q, ok := p.eat(token.Question); ok {
		if p.at(token.LParen) {
			p.err(diag.SynInvalidTypeNesting, "a nullable type cannot contain a parenthesized group")
		}
		inner := p.parseIntersectionOrAtom()
		t = &ast.NullableType{Base: ast.At(q.Span.Cover(inner.Span())), Inner: inner}
		if p.at(token.Pipe) || p.atIntersectionAmp() {
			p.err(diag.SynInvalidTypeNesting, "a nullable type cannot be part of a union or intersection, use null instead")
			t = p.parseUnionRest(t, start)
		}
	} else {
		t = p.parseUnionRest(p.parseIntersectionOrAtom(), start)
	}

	p.checkTypeGates(t)
	return t
}

func (p *Parser) parseUnionRest(first ast.TypeHint, start source.Span) ast.TypeHint {
	if !p.at(token.Pipe) {
		return first
	}
	u := &ast.UnionType{Types: []ast.TypeHint{first}}
	for p.at(token.Pipe) {
		p.advance()
		u.Types = append(u.Types, p.parseIntersectionOrAtom())
	}
	u.Loc = p.nodeSpan(start, u)
	return u
}

func (p *Parser) parseIntersectionOrAtom() ast.TypeHint {
	start := p.cur().Span
	first := p.parseTypeAtomOrGroup()
	if !p.atIntersectionAmp() {
		return first
	}
	if _, grouped := first.(*ast.IntersectionType); grouped {
		p.err(diag.SynInvalidTypeNesting, "a parenthesized group cannot be part of an intersection")
	}
	inter := &ast.IntersectionType{Types: []ast.TypeHint{first}}
	for p.atIntersectionAmp() {
		p.advance()
		inter.Types = append(inter.Types, p.parseTypeAtomOrGroup())
	}
	inter.Loc = p.nodeSpan(start, inter)
	return inter
}

// atIntersectionAmp решает, что значит '&' после типа: пересечение A&B или
// by-ref параметр A &$x / A &...$x. Пробуем шагнуть за '&' и откатываемся.
func (p *Parser) atIntersectionAmp() bool {
	if !p.at(token.Amp) {
		return false
	}
	cp := p.checkpoint()
	p.advance()
	ok := startsType(p.cur().Kind)
	p.restore(cp)
	return ok
}

func startsType(k token.Kind) bool {
	switch k {
	case token.Question, token.LParen, token.KwArray, token.KwCallable, token.KwStatic:
		return true
	}
	return k.IsName()
}

func (p *Parser) parseTypeAtomOrGroup() ast.TypeHint {
	if p.at(token.LParen) {
		return p.parseTypeGroup()
	}
	return p.parseTypeAtom()
}

// parseTypeGroup: "(A&B)" inside a DNF type.
func (p *Parser) parseTypeGroup() ast.TypeHint {
	open := p.advance()
	first := p.parseTypeAtom()
	g := &ast.IntersectionType{Types: []ast.TypeHint{first}, Parens: true}
	for p.atIntersectionAmp() {
		p.advance()
		g.Types = append(g.Types, p.parseTypeAtom())
	}
	if p.at(token.Pipe) {
		p.err(diag.SynInvalidTypeNesting, "a union type cannot be nested in parentheses")
		// (A|B) восстанавливаем как union, а не как склеенное пересечение
		var head ast.TypeHint = first
		if len(g.Types) > 1 {
			g.Parens = false
			g.Loc = p.nodeSpan(first.Span(), g)
			head = g
		}
		u := &ast.UnionType{Types: []ast.TypeHint{head}}
		for p.at(token.Pipe) {
			p.advance()
			u.Types = append(u.Types, p.parseTypeAtom())
		}
		p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close type group")
		u.Loc = p.spanFrom(open.Span)
		return u
	}
	if len(g.Types) == 1 {
		p.err(diag.SynInvalidTypeNesting, "parentheses in a type must enclose an intersection")
	}
	p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close type group")
	g.Loc = p.spanFrom(open.Span)
	return g
}

func (p *Parser) parseTypeAtom() ast.TypeHint {
	tok := p.cur()
	switch {
	case tok.Kind.IsName(), tok.Kind == token.KwArray, tok.Kind == token.KwCallable, tok.Kind == token.KwStatic:
		name := p.nameFrom(p.advance())
		return &ast.NamedType{Base: ast.At(tok.Span), Name: name}
	}
	p.err(diag.SynExpectType, "expected type, got "+describe(tok))
	return &ast.BadType{Base: ast.At(p.gap())}
}

// checkTypeGates emits version warnings for the shape of a complete type.
func (p *Parser) checkTypeGates(t ast.TypeHint) {
	switch t := t.(type) {
	case *ast.NamedType:
		switch strings.ToLower(t.Name.Text) {
		case "null", "false", "true":
			p.requireFeature(phpver.StandaloneNullFalseTrue, t.Span())
		case "never":
			p.requireFeature(phpver.NeverType, t.Span())
		}
	case *ast.NullableType:
		p.checkNever(t.Inner)
	case *ast.IntersectionType:
		p.requireFeature(phpver.PureIntersectionTypes, t.Span())
	case *ast.UnionType:
		for _, m := range t.Types {
			if _, ok := m.(*ast.IntersectionType); ok {
				p.requireFeature(phpver.DNFTypes, t.Span())
				break
			}
		}
		for _, m := range t.Types {
			p.checkNever(m)
		}
	}
}

func (p *Parser) checkNever(t ast.TypeHint) {
	if n, ok := t.(*ast.NamedType); ok && strings.EqualFold(n.Name.Text, "never") {
		p.requireFeature(phpver.NeverType, n.Span())
	}
}
