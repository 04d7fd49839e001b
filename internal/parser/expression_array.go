package parser

import (
	"phpfront/internal/ast"
	"phpfront/internal/diag"
	"phpfront/internal/token"
)

// parseArrayLiteral: [..], array(..) и list(..).
func (p *Parser) parseArrayLiteral() ast.Expr {
	open := p.advance()
	arr := &ast.Array{Short: open.Kind == token.LBracket, List: open.Kind == token.KwList}
	closer := token.RBracket
	if !arr.Short {
		closer = token.RParen
		p.expect(token.LParen, diag.SynUnexpectedToken, "expected '('")
	}

	p.arrayDepth++
	for !p.at(closer) && !p.at(token.EOF) {
		if p.at(token.Comma) {
			sp := p.cur().Span.ZeroideToStart()
			p.advance()
			arr.Items = append(arr.Items, &ast.ArrayItem{Base: ast.At(sp), Skipped: true})
			continue
		}
		before := p.ts.Offset()
		arr.Items = append(arr.Items, p.parseArrayItem())
		if _, ok := p.eat(token.Comma); !ok || p.ts.Offset() == before {
			break
		}
	}
	p.arrayDepth--

	msg := "expected ']' to close array"
	code := diag.SynUnclosedBracket
	if !arr.Short {
		msg, code = "expected ')' to close array", diag.SynUnclosedParen
	}
	p.expect(closer, code, msg)
	arr.Loc = p.spanFrom(open.Span)
	return arr
}

func (p *Parser) parseArrayItem() *ast.ArrayItem {
	start := p.cur().Span
	item := &ast.ArrayItem{}
	switch {
	case p.at(token.Ellipsis):
		p.advance()
		item.Spread = true
		item.Value = p.parseExpr()
	case p.at(token.Amp):
		p.advance()
		item.ByRef = true
		item.Value = p.parseOperand()
	default:
		item.Value = p.parseExpr()
		if _, ok := p.eat(token.FatArrow); ok {
			item.Key = item.Value
			if _, ok := p.eat(token.Amp); ok {
				item.ByRef = true
				item.Value = p.parseOperand()
			} else {
				item.Value = p.parseExpr()
			}
		}
	}
	item.Loc = p.nodeSpan(start, item)
	return item
}

// checkSkipped reports "[, $x]" used as a value. Destructuring targets and
// list() may skip elements.
func (p *Parser) checkSkipped(arr *ast.Array) {
	if p.arrayDepth > 0 || p.destructure > 0 || arr.List {
		return
	}
	if item := firstSkipped(arr); item != nil {
		p.errAt(diag.SynMisplacedSkip, item.Span(), "cannot use empty array elements in arrays")
	}
}

func firstSkipped(arr *ast.Array) *ast.ArrayItem {
	for _, item := range arr.Items {
		if item.Skipped {
			return item
		}
		if nested, ok := item.Value.(*ast.Array); ok {
			if found := firstSkipped(nested); found != nil {
				return found
			}
		}
	}
	return nil
}
