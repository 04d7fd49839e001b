package parser

// context: маленький стек того, внутри чего мы сейчас разбираем.
// It only changes validation, never the shape of the tree.
type context uint8

const (
	ctxClass context = iota
	ctxInterface
	ctxTrait
	ctxEnum
	ctxAttribute // аргументы #[...]
	ctxFunction  // тело функции, метода или замыкания
)

func (p *Parser) push(c context) {
	p.ctx = append(p.ctx, c)
}

func (p *Parser) pop() {
	if len(p.ctx) > 0 {
		p.ctx = p.ctx[:len(p.ctx)-1]
	}
}

// top returns the innermost context; ok is false at file level.
func (p *Parser) top() (context, bool) {
	if len(p.ctx) == 0 {
		return 0, false
	}
	return p.ctx[len(p.ctx)-1], true
}

func (p *Parser) in(c context) bool {
	t, ok := p.top()
	return ok && t == c
}
