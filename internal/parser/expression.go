package parser

import (
	"fmt"

	"phpfront/internal/ast"
	"phpfront/internal/diag"
	"phpfront/internal/phpver"
	"phpfront/internal/token"
)

// parseExpr - главная точка входа для парсинга выражений.
// Always returns a node; on error it is an *ast.BadExpr.
func (p *Parser) parseExpr() ast.Expr {
	return p.parseExprPrec(precLowest)
}

// parseExprPrec реализует precedence climbing для бинарных операторов.
// minPrec - минимальный приоритет для текущего уровня
func (p *Parser) parseExprPrec(minPrec int) ast.Expr {
	left := p.parseUnary()
	return p.parseBinaryRest(left, minPrec)
}

func (p *Parser) parseBinaryRest(left ast.Expr, minPrec int) ast.Expr {
	for {
		tok := p.cur()

		switch {
		case tok.Kind == token.Question:
			if precTernary < minPrec {
				return left
			}
			left = p.parseTernary(left)
			continue

		case tok.Kind.IsAssignOp():
			// присваиваемые цели уже съедены в parseOperand; сюда попадает только мусор
			if precAssignment < minPrec {
				return left
			}
			left = p.parseAssign(left)
			continue
		}

		prec, a, ok := binaryPrec(tok.Kind)
		if !ok || prec < minPrec {
			return left
		}
		opTok := p.advance()

		if opTok.Kind == token.KwInstanceof {
			class := p.parseClassRef()
			left = &ast.Instanceof{
				Base:  ast.At(left.Span().Cover(class.Span())),
				Expr:  left,
				Class: class,
			}
		} else {
			if opTok.Kind == token.PipeGt {
				p.requireFeature(phpver.PipeOperator, opTok.Span)
			}
			// Вычисляем приоритет для правой части
			next := prec + 1
			if a == assocRight {
				next = prec
			}
			right := p.parseExprPrec(next)
			left = &ast.Binary{
				Base:  ast.At(left.Span().Cover(right.Span())),
				Op:    opTok.Kind,
				OpPos: opTok.Span,
				Left:  left,
				Right: right,
			}
		}

		if a == assocNone {
			if prec2, _, ok := binaryPrec(p.cur().Kind); ok && prec2 == prec {
				p.err(diag.SynNonAssociative,
					fmt.Sprintf("'%s' is non-associative and cannot follow '%s' without parentheses", p.cur().Text, opTok.Text))
			}
		}
	}
}

// parseUnary handles prefix operators. The operand of a prefix operator only
// absorbs binary operators that bind tighter than the prefix itself.
func (p *Parser) parseUnary() ast.Expr {
	tok := p.cur()
	if prec, ok := prefixPrec(tok.Kind); ok {
		p.advance()
		operand := p.parseExprPrec(prec + 1)
		sp := tok.Span.Cover(operand.Span())
		if tok.Kind.IsCast() {
			return &ast.Cast{Base: ast.At(sp), Cast: tok.Kind, Expr: operand}
		}
		return &ast.Unary{Base: ast.At(sp), Op: tok.Kind, Operand: operand}
	}

	switch tok.Kind {
	case token.PlusPlus, token.MinusMinus:
		p.advance()
		operand := p.parsePostfix(p.parsePrimary())
		return &ast.IncDec{
			Base:    ast.At(tok.Span.Cover(operand.Span())),
			Op:      tok.Kind,
			Prefix:  true,
			Operand: operand,
		}
	}
	return p.parseOperand()
}

// parseOperand is a primary expression with its postfix chain. An assignment
// binds right here when the operand can be assigned to, whatever the
// surrounding precedence: !$a = f() is !($a = f()).
func (p *Parser) parseOperand() ast.Expr {
	e := p.parsePostfix(p.parsePrimary())
	if k := p.cur().Kind; k.IsAssignOp() && isAssignable(e, k) {
		return p.parseAssign(e)
	}
	if arr, ok := e.(*ast.Array); ok {
		p.checkSkipped(arr)
	}
	return e
}

func (p *Parser) parseAssign(target ast.Expr) ast.Expr {
	opTok := p.advance()
	byRef := false
	if opTok.Kind == token.Assign && p.at(token.Amp) {
		p.advance()
		byRef = true
	}
	if !isAssignable(target, opTok.Kind) {
		msg := "cannot assign to this expression"
		if _, ok := target.(*ast.Array); ok {
			msg = fmt.Sprintf("array destructuring cannot be combined with '%s'", compoundBase(opTok.Kind))
		}
		p.errAt(diag.SynInvalidAssignTarget, target.Span(), msg)
	}
	value := p.parseExprPrec(precAssignment)
	return &ast.Assign{
		Base:   ast.At(target.Span().Cover(value.Span())),
		Op:     opTok.Kind,
		Target: target,
		Value:  value,
		ByRef:  byRef,
	}
}

func isAssignable(e ast.Expr, op token.Kind) bool {
	switch e := e.(type) {
	case *ast.Variable, *ast.VariableVariable, *ast.Index, *ast.StaticPropertyFetch:
		return true
	case *ast.PropertyFetch:
		return !e.Nullsafe
	case *ast.Array:
		return op == token.Assign
	}
	return false
}

// parseTernary parses "? then : else" and "?: else" after cond.
func (p *Parser) parseTernary(cond ast.Expr) ast.Expr {
	qTok := p.advance()
	short := p.at(token.Colon)

	// PHP 8: a ? b : c ? d : e без скобок: ошибка; цепочка a ?: b ?: c разрешена
	if prev, ok := cond.(*ast.Ternary); ok && !(short && prev.Then == nil) {
		p.errAt(diag.SynNestedTernary, qTok.Span,
			"nested ternary operators require explicit parentheses")
	}

	var then ast.Expr
	if !short {
		then = p.parseExpr()
	}
	p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':' in ternary expression")
	els := p.parseExprPrec(precTernary + 1)
	return &ast.Ternary{
		Base: ast.At(cond.Span().Cover(els.Span())),
		Cond: cond,
		Then: then,
		Else: els,
	}
}

// parseClassRef parses the class operand of instanceof: a name, static, or
// a dynamic expression without calls.
func (p *Parser) parseClassRef() ast.Expr {
	switch {
	case p.cur().Kind.IsName():
		return p.nameFrom(p.advance())
	case p.at(token.KwStatic):
		return p.nameFrom(p.advance())
	}
	return p.parsePostfix(p.parsePrimary())
}

// parseExprList parses expr (',' expr)* until one of stop.
func (p *Parser) parseExprList(stop ...token.Kind) []ast.Expr {
	var out []ast.Expr
	if p.atAny(stop...) {
		return out
	}
	for {
		out = append(out, p.parseExpr())
		if _, ok := p.eat(token.Comma); !ok || p.atAny(stop...) {
			return out
		}
	}
}

// startsExpr reports whether k can begin an expression.
func startsExpr(k token.Kind) bool {
	switch k {
	case token.Variable, token.Dollar, token.DollarLBrace, token.IntLit, token.FloatLit,
		token.StringLit, token.DoubleQuote, token.DocumentStart, token.Backtick,
		token.Ident, token.QualifiedIdent, token.FullyQualifiedIdent, token.RelativeIdent,
		token.LParen, token.LBracket, token.Bang, token.Minus, token.Plus, token.Tilde, token.At,
		token.PlusPlus, token.MinusMinus, token.Amp, token.HashLBracket,
		token.KwNew, token.KwClone, token.KwFunction, token.KwFn, token.KwStatic, token.KwArray,
		token.KwList, token.KwIsset, token.KwEmpty, token.KwEval, token.KwExit, token.KwDie,
		token.KwInclude, token.KwIncludeOnce, token.KwRequire, token.KwRequireOnce,
		token.KwPrint, token.KwYield, token.KwThrow, token.KwMatch:
		return true
	}
	return k.IsCast() || k.IsMagicConst()
}
