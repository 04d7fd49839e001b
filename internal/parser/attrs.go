package parser

import (
	"phpfront/internal/ast"
	"phpfront/internal/diag"
	"phpfront/internal/token"
)

// parseAttributes parses zero or more #[...] groups.
func (p *Parser) parseAttributes() []*ast.AttributeGroup {
	var groups []*ast.AttributeGroup
	for p.at(token.HashLBracket) {
		open := p.advance()
		g := &ast.AttributeGroup{}
		for !p.at(token.RBracket) && !p.at(token.EOF) {
			g.Attrs = append(g.Attrs, p.parseAttribute())
			if _, ok := p.eat(token.Comma); !ok {
				break
			}
		}
		p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' to close attribute")
		g.Loc = p.spanFrom(open.Span)
		groups = append(groups, g)
	}
	return groups
}

func (p *Parser) parseAttribute() *ast.Attribute {
	start := p.cur().Span
	a := &ast.Attribute{Name: p.parseName("attribute name")}
	if p.at(token.LParen) {
		// аргументы атрибута: константные выражения
		p.push(ctxAttribute)
		p.initializer++
		a.Args = p.parseArgumentList()
		p.initializer--
		p.pop()
	}
	a.Loc = p.nodeSpan(start, a)
	return a
}
