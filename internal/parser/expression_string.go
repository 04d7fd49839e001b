package parser

import (
	"strings"

	"phpfront/internal/ast"
	"phpfront/internal/diag"
	"phpfront/internal/token"
)

// parseInterpolated разбирает строку с подстановками: "...", `...` или heredoc.
// Лексер уже разрезал её на StringPart и встроенные выражения.
func (p *Parser) parseInterpolated() ast.Expr {
	open := p.advance()
	s := &ast.Interpolated{}
	closer := open.Kind
	switch open.Kind {
	case token.Backtick:
		s.Form = ast.InterpShellExec
	case token.DocumentStart:
		closer = token.DocumentEnd
		s.Form = ast.InterpHeredoc
		s.Label = heredocLabel(open.Text)
		if strings.Contains(open.Text, "'") {
			s.Form = ast.InterpNowdoc
		}
	}

	for !p.at(closer) && !p.at(token.EOF) {
		before := p.ts.Offset()
		if part := p.parseStringPart(); part != nil {
			s.Parts = append(s.Parts, part)
		}
		if p.ts.Offset() == before {
			// мусор внутри строки; пропускаем, чтобы не зациклиться
			p.err(diag.SynUnexpectedToken, "unexpected "+describe(p.cur())+" inside string")
			p.advance()
		}
	}
	p.expect(closer, diag.SynUnclosedDelimiter, "expected end of string")
	s.Loc = p.spanFrom(open.Span)
	return s
}

// heredocLabel extracts LABEL from `<<<"LABEL"\n`.
func heredocLabel(opener string) string {
	label := strings.TrimPrefix(opener, "<<<")
	return strings.Trim(label, " \t\r\n'\"")
}

func (p *Parser) parseStringPart() ast.Expr {
	tok := p.cur()
	switch tok.Kind {
	case token.StringPart:
		p.advance()
		return &ast.StringFragment{Base: ast.At(tok.Span), Raw: tok.Text}

	case token.Variable:
		v := p.variableFrom(p.advance())
		return p.parseSimpleSuffix(v)

	case token.LBrace:
		// {$expr}
		p.advance()
		e := p.parseExpr()
		p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close interpolation")
		return e

	case token.DollarLBrace:
		return p.parseDollarBrace()
	}
	return nil
}

// parseSimpleSuffix handles "$a[offset]" and "$a->prop" inside a string.
func (p *Parser) parseSimpleSuffix(v *ast.Variable) ast.Expr {
	switch p.cur().Kind {
	case token.LBracket:
		p.advance()
		var idx ast.Expr
		tok := p.cur()
		switch tok.Kind {
		case token.Ident:
			idx = p.identFrom(p.advance())
		case token.IntLit:
			p.advance()
			idx = &ast.Literal{Base: ast.At(tok.Span), Lit: ast.LitInt, Raw: tok.Text}
		case token.Variable:
			idx = p.variableFrom(p.advance())
		case token.Minus:
			p.advance()
			num := p.cur()
			if _, ok := p.expect(token.IntLit, diag.SynUnexpectedToken, "expected number after '-' in string offset"); ok {
				lit := &ast.Literal{Base: ast.At(num.Span), Lit: ast.LitInt, Raw: num.Text}
				idx = &ast.Unary{Base: ast.At(tok.Span.Cover(num.Span)), Op: token.Minus, Operand: lit}
			} else {
				idx = &ast.BadExpr{Base: ast.At(p.gap())}
			}
		default:
			p.err(diag.SynExpectExpression, "expected string offset, got "+describe(tok))
			idx = &ast.BadExpr{Base: ast.At(p.gap())}
		}
		p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' in string offset")
		return &ast.Index{Base: ast.At(v.Span().Cover(p.lastSpan)), Target: v, Index: idx}

	case token.Arrow, token.NullsafeArrow:
		arrow := p.advance()
		prop := p.parseIdent("property name")
		return &ast.PropertyFetch{
			Base:     ast.At(v.Span().Cover(prop.Span())),
			Object:   v,
			Prop:     prop,
			Nullsafe: arrow.Kind == token.NullsafeArrow,
		}
	}
	return v
}

// parseDollarBrace: "${name}", "${name[expr]}" or "${expr}".
func (p *Parser) parseDollarBrace() ast.Expr {
	open := p.advance()
	if p.at(token.Ident) {
		switch p.peek(1).Kind {
		case token.RBrace:
			name := p.advance()
			p.advance()
			text := name.Text
			return &ast.Variable{Base: ast.At(p.spanFrom(open.Span)), Name: text, ID: p.intern(text)}
		case token.LBracket:
			name := p.advance()
			v := &ast.Variable{Base: ast.At(name.Span), Name: name.Text, ID: p.intern(name.Text)}
			p.advance()
			idx := p.parseExpr()
			p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']'")
			p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close interpolation")
			return &ast.Index{Base: ast.At(p.spanFrom(open.Span)), Target: v, Index: idx}
		}
	}
	inner := p.parseExpr()
	p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close interpolation")
	return &ast.VariableVariable{Base: ast.At(p.spanFrom(open.Span)), Inner: inner, Braced: true}
}
