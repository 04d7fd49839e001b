package parser

import (
	"phpfront/internal/ast"
	"phpfront/internal/diag"
	"phpfront/internal/phpver"
	"phpfront/internal/token"
)

// parsePostfix обрабатывает постфиксные операторы: [], (), ->, ?->, ::, ++, --.
func (p *Parser) parsePostfix(e ast.Expr) ast.Expr {
	if n, ok := e.(*ast.New); ok && n.Args != nil {
		switch p.cur().Kind {
		case token.Arrow, token.NullsafeArrow, token.ColonColon, token.LBracket:
			p.requireFeature(phpver.NewWithoutParentheses, n.Span())
		}
	}

	for {
		tok := p.cur()
		switch tok.Kind {
		case token.LBracket:
			e = p.parseIndexSuffix(e)

		case token.LBrace:
			// $s{0} удалён в PHP 8; разбираем, чтобы не потерять дерево
			// "if ($a { ... }": это потерянная ')', а не смещение
			if !isDereferencable(e) {
				return e
			}
			cp := p.checkpoint()
			p.advance()
			idx := p.parseExpr()
			if !p.at(token.RBrace) || p.failedSince(cp) {
				p.restore(cp)
				return e
			}
			p.advance()
			p.errAt(diag.SynUnexpectedToken, tok.Span, "curly brace offset access is not supported, use '[' instead")
			e = &ast.Index{Base: ast.At(e.Span().Cover(p.lastSpan)), Target: e, Index: idx, Brace: true}

		case token.LParen:
			args := p.parseArgumentList()
			e = &ast.Call{Base: ast.At(e.Span().Cover(args.Span())), Callee: e, Args: args}

		case token.Arrow, token.NullsafeArrow:
			p.advance()
			name := p.parseMemberName()
			nullsafe := tok.Kind == token.NullsafeArrow
			if p.at(token.LParen) {
				args := p.parseArgumentList()
				e = &ast.MethodCall{
					Base:     ast.At(e.Span().Cover(args.Span())),
					Object:   e,
					Method:   name,
					Args:     args,
					Nullsafe: nullsafe,
				}
				continue
			}
			e = &ast.PropertyFetch{
				Base:     ast.At(e.Span().Cover(name.Span())),
				Object:   e,
				Prop:     name,
				Nullsafe: nullsafe,
			}

		case token.ColonColon:
			e = p.parseStaticSuffix(e)

		case token.PlusPlus, token.MinusMinus:
			p.advance()
			return &ast.IncDec{Base: ast.At(e.Span().Cover(tok.Span)), Op: tok.Kind, Operand: e}

		default:
			return e
		}
	}
}

func isDereferencable(e ast.Expr) bool {
	switch e.(type) {
	case *ast.Variable, *ast.VariableVariable, *ast.Index, *ast.PropertyFetch,
		*ast.StaticPropertyFetch, *ast.Call, *ast.MethodCall, *ast.StaticCall:
		return true
	}
	return false
}

// parseIndexSuffix: e[expr] or e[] (append).
func (p *Parser) parseIndexSuffix(e ast.Expr) ast.Expr {
	p.advance()
	var idx ast.Expr
	if !p.at(token.RBracket) {
		idx = p.parseExpr()
	}
	p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']'")
	return &ast.Index{Base: ast.At(e.Span().Cover(p.lastSpan)), Target: e, Index: idx}
}

// parseStaticSuffix handles everything after "::".
func (p *Parser) parseStaticSuffix(class ast.Expr) ast.Expr {
	p.advance()
	tok := p.cur()
	switch {
	case tok.Kind == token.Variable, tok.Kind == token.Dollar, tok.Kind == token.DollarLBrace:
		prop := p.parseStaticPropName()
		if p.at(token.LParen) {
			// A::$fn() вызывает метод с именем из переменной
			args := p.parseArgumentList()
			return &ast.StaticCall{Base: ast.At(class.Span().Cover(args.Span())), Class: class, Method: prop, Args: args}
		}
		return &ast.StaticPropertyFetch{Base: ast.At(class.Span().Cover(prop.Span())), Class: class, Prop: prop}

	case tok.Kind == token.LBrace:
		open := p.advance()
		inner := p.parseExpr()
		p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}'")
		if p.at(token.LParen) {
			args := p.parseArgumentList()
			return &ast.StaticCall{Base: ast.At(class.Span().Cover(args.Span())), Class: class, Method: inner, Args: args}
		}
		p.requireFeature(phpver.DynamicClassConstantFetch, open.Span.Cover(p.lastSpan))
		return &ast.ClassConstFetch{Base: ast.At(class.Span().Cover(p.lastSpan)), Class: class, Const: inner, Dynamic: true}

	case tok.Kind.IsSemiReserved():
		name := p.identFrom(p.advance())
		if p.at(token.LParen) {
			args := p.parseArgumentList()
			return &ast.StaticCall{Base: ast.At(class.Span().Cover(args.Span())), Class: class, Method: name, Args: args}
		}
		return &ast.ClassConstFetch{Base: ast.At(class.Span().Cover(name.Span())), Class: class, Const: name}
	}

	p.err(diag.SynExpectIdentifier, "expected member name after '::', got "+describe(tok))
	bad := &ast.BadExpr{Base: ast.At(p.gap())}
	return &ast.ClassConstFetch{Base: ast.At(class.Span().Cover(bad.Span())), Class: class, Const: bad}
}

func (p *Parser) parseStaticPropName() ast.Expr {
	if p.at(token.Variable) {
		return p.variableFrom(p.advance())
	}
	return p.parseVariableVariable()
}

// parseMemberName is the name after -> or ?->: an identifier, a variable or
// a braced expression.
func (p *Parser) parseMemberName() ast.Expr {
	tok := p.cur()
	switch {
	case tok.Kind.IsSemiReserved():
		return p.identFrom(p.advance())
	case tok.Kind == token.Variable:
		return p.variableFrom(p.advance())
	case tok.Kind == token.Dollar, tok.Kind == token.DollarLBrace:
		return p.parseVariableVariable()
	case tok.Kind == token.LBrace:
		p.advance()
		inner := p.parseExpr()
		p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}'")
		return inner
	}
	p.err(diag.SynExpectIdentifier, "expected property or method name, got "+describe(tok))
	return &ast.Identifier{Base: ast.At(p.gap())}
}

// ===== Аргументы =====

// parseArgumentList: '(' [arg (',' arg)* [',']] ')' or the callable form '(...)'.
func (p *Parser) parseArgumentList() *ast.ArgumentList {
	open := p.advance()
	list := &ast.ArgumentList{}

	if p.at(token.Ellipsis) {
		cp := p.checkpoint()
		dots := p.advance()
		if _, ok := p.eat(token.RParen); ok {
			p.requireFeature(phpver.FirstClassCallable, dots.Span)
			list.Callable = true
			list.Loc = p.spanFrom(open.Span)
			return list
		}
		p.restore(cp)
	}

	seenNamed := false
	for !p.at(token.RParen) && !p.at(token.EOF) {
		arg := p.parseArgument()
		switch {
		case arg.Name != nil:
			seenNamed = true
		case seenNamed && !arg.Spread:
			p.errAt(diag.SynPositionalAfterNamed, arg.Span(), "cannot use positional argument after named argument")
		}
		list.Args = append(list.Args, arg)
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close argument list")
	list.Loc = p.spanFrom(open.Span)
	return list
}

func (p *Parser) parseArgument() *ast.Argument {
	start := p.cur().Span
	arg := &ast.Argument{}
	if _, ok := p.eat(token.Ellipsis); ok {
		arg.Spread = true
	} else if name := p.tryArgName(); name != nil {
		arg.Name = name
	}
	arg.Value = p.parseExpr()
	arg.Loc = p.nodeSpan(start, arg)
	return arg
}

// tryArgName consumes "name:" of a named argument. The colon is only taken
// as part of a name when a value follows it.
func (p *Parser) tryArgName() *ast.Identifier {
	if !p.cur().Kind.IsSemiReserved() || p.peek(1).Kind != token.Colon {
		return nil
	}
	cp := p.checkpoint()
	name := p.identFrom(p.advance())
	p.advance() // :
	if !startsExpr(p.cur().Kind) {
		p.restore(cp)
		return nil
	}
	return name
}
