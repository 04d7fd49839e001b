package parser

import (
	"fmt"

	"phpfront/internal/ast"
	"phpfront/internal/diag"
	"phpfront/internal/phpver"
	"phpfront/internal/token"
)

// parseModifiers съедает подряд идущие модификаторы, ничего не проверяя.
func (p *Parser) parseModifiers() ast.Modifiers {
	var mods ast.Modifiers
	for p.cur().Kind.IsModifier() {
		// static:: и static fn: не модификаторы
		if p.at(token.KwStatic) && (p.peek(1).Kind == token.ColonColon || p.peek(1).Kind == token.LParen) {
			break
		}
		tok := p.advance()
		mods = append(mods, ast.Modifier{Tok: tok.Kind, Span: tok.Span})
	}
	return mods
}

func isVisibility(k token.Kind) bool {
	return k == token.KwPublic || k == token.KwProtected || k == token.KwPrivate
}

func isSetVisibility(k token.Kind) bool {
	return k == token.KwPublicSet || k == token.KwProtectedSet || k == token.KwPrivateSet
}

// checkModifierSet reports the problems common to every declaration:
// repeated modifiers, conflicting visibility and abstract with final.
// what names the declaration in messages, e.g. "class".
func (p *Parser) checkModifierSet(mods ast.Modifiers, what string) {
	var vis, setVis, abstract, final *ast.Modifier
	seen := make(map[token.Kind]bool, len(mods))
	for i := range mods {
		m := &mods[i]
		if seen[m.Tok] {
			p.warnAt(diag.CompatDuplicateModifier, m.Span, fmt.Sprintf("duplicate modifier '%s'", m.Tok))
			continue
		}
		seen[m.Tok] = true
		switch {
		case isVisibility(m.Tok):
			if vis != nil {
				p.warnAt(diag.CompatMultipleVisibility, m.Span, "multiple access type modifiers are not allowed")
			}
			vis = m
		case isSetVisibility(m.Tok):
			if setVis != nil {
				p.warnAt(diag.CompatMultipleVisibility, m.Span, "multiple set visibility modifiers are not allowed")
			}
			setVis = m
		case m.Tok == token.KwAbstract:
			abstract = m
		case m.Tok == token.KwFinal:
			final = m
		}
	}
	if abstract != nil && final != nil {
		later := abstract
		if final.Span.Start > abstract.Span.Start {
			later = final
		}
		p.warnAt(diag.CompatAbstractFinal, later.Span, "cannot use the final modifier on an abstract "+what)
	}
}

// disallow reports every modifier for which allowed returns false.
func (p *Parser) disallow(mods ast.Modifiers, what string, allowed func(token.Kind) bool) {
	for _, m := range mods {
		if !allowed(m.Tok) {
			p.warnAt(diag.CompatModifierNotAllowed, m.Span,
				fmt.Sprintf("cannot use the '%s' modifier on %s", m.Tok, what))
		}
	}
}

// checkClassModifiers: abstract, final, readonly only.
func (p *Parser) checkClassModifiers(mods ast.Modifiers) {
	p.checkModifierSet(mods, "class")
	for _, m := range mods {
		switch {
		case isVisibility(m.Tok), isSetVisibility(m.Tok):
			p.warnAt(diag.CompatVisibilityNotAllowed, m.Span,
				fmt.Sprintf("cannot use '%s' as a class modifier", m.Tok))
		case m.Tok == token.KwStatic, m.Tok == token.KwVar:
			p.warnAt(diag.CompatModifierNotAllowed, m.Span,
				fmt.Sprintf("cannot use the '%s' modifier on a class", m.Tok))
		case m.Tok == token.KwReadonly:
			p.requireFeature(phpver.ReadonlyClasses, m.Span)
		}
	}
}

func (p *Parser) checkMethodModifiers(mods ast.Modifiers) {
	p.checkModifierSet(mods, "method")
	p.disallow(mods, "a method", func(k token.Kind) bool {
		return k != token.KwReadonly && k != token.KwVar && !isSetVisibility(k)
	})
}

// checkPropertyModifiers; hooked reports whether the property declares hooks.
func (p *Parser) checkPropertyModifiers(mods ast.Modifiers, typ ast.TypeHint, hooked bool) {
	p.checkModifierSet(mods, "property")
	if !hooked {
		p.disallow(mods, "a property without hooks", func(k token.Kind) bool {
			return k != token.KwAbstract && k != token.KwFinal
		})
	}
	for _, m := range mods {
		switch {
		case m.Tok == token.KwReadonly:
			p.requireFeature(phpver.ReadonlyProperties, m.Span)
			if typ == nil {
				p.warnAt(diag.CompatReadonlyWithoutType, m.Span, "readonly property must have a type")
			}
			if mods.Has(token.KwStatic) {
				p.warnAt(diag.CompatModifierNotAllowed, m.Span, "static property cannot be readonly")
			}
		case isSetVisibility(m.Tok):
			p.requireFeature(phpver.AsymmetricVisibility, m.Span)
			if typ == nil {
				p.warnAt(diag.CompatModifierNotAllowed, m.Span, "property with asymmetric visibility must have a type")
			}
		}
	}
}

func (p *Parser) checkConstModifiers(mods ast.Modifiers) {
	p.checkModifierSet(mods, "class constant")
	p.disallow(mods, "a class constant", func(k token.Kind) bool {
		return isVisibility(k) || k == token.KwFinal
	})
	for _, m := range mods {
		if m.Tok == token.KwFinal {
			p.requireFeature(phpver.FinalClassConstants, m.Span)
		}
	}
}

// checkPromotedModifiers: constructor promotion accepts visibility, readonly
// and set visibility.
func (p *Parser) checkPromotedModifiers(mods ast.Modifiers, typ ast.TypeHint) {
	p.checkModifierSet(mods, "promoted property")
	p.disallow(mods, "a promoted property", func(k token.Kind) bool {
		return isVisibility(k) || isSetVisibility(k) || k == token.KwReadonly
	})
	for _, m := range mods {
		switch {
		case m.Tok == token.KwReadonly:
			p.requireFeature(phpver.ReadonlyProperties, m.Span)
			if typ == nil {
				p.warnAt(diag.CompatReadonlyWithoutType, m.Span, "readonly property must have a type")
			}
		case isSetVisibility(m.Tok):
			p.requireFeature(phpver.AsymmetricVisibility, m.Span)
		}
	}
}
