package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"phpfront/internal/ast"
	"phpfront/internal/source"
	"phpfront/internal/token"
)

// CheckTokenStream runs the token stream invariants on a lexed file:
// 1) the stream ends with exactly one empty EOF
// 2) spans are gapless: each token starts where the previous one ended
// 3) the stream covers the whole file and every Text equals its source slice
func CheckTokenStream(sf *source.File, toks []token.Token) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	if len(toks) == 0 {
		return fmt.Errorf("empty token stream")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	var off uint32
	for i, tok := range toks {
		if tok.Span.File != sf.ID {
			return fmt.Errorf("token %d (%s) file mismatch: got=%d want=%d", i, tok.Kind, tok.Span.File, sf.ID)
		}
		if tok.Span.Start != off {
			return fmt.Errorf("token %d (%s) starts at %d, previous ended at %d", i, tok.Kind, tok.Span.Start, off)
		}
		if tok.Span.End < tok.Span.Start || tok.Span.End > lenContent {
			return fmt.Errorf("token %d (%s) has bad span %v", i, tok.Kind, tok.Span)
		}
		// синтетические закрывающие токены бывают пустыми, EOF пуст всегда
		if tok.Kind == token.EOF {
			if i != len(toks)-1 {
				return fmt.Errorf("EOF at index %d of %d", i, len(toks))
			}
			if !tok.Span.Empty() {
				return fmt.Errorf("EOF span is not empty: %v", tok.Span)
			}
		}
		if got := sf.Slice(tok.Span); got != tok.Text {
			return fmt.Errorf("token %d (%s) text %q differs from source %q", i, tok.Kind, tok.Text, got)
		}
		off = tok.Span.End
	}

	if last := toks[len(toks)-1]; last.Kind != token.EOF {
		return fmt.Errorf("stream ends with %s, not EOF", last.Kind)
	}
	if off != lenContent {
		return fmt.Errorf("stream stops at %d, file has %d bytes", off, lenContent)
	}
	return nil
}

// CheckSpanInvariants runs the span invariants on a parsed file:
// 1) the program span is exactly the file span
// 2) every node span is well-formed and points into the same file
// 3) every child span is contained in its parent span
// 4) span starts never decrease in depth-first order
func CheckSpanInvariants(prog *ast.Program, sf *source.File) error {
	if prog == nil || sf == nil {
		return fmt.Errorf("nil program or file")
	}
	if ps, fsp := prog.Span(), sf.Span(); ps != fsp {
		return fmt.Errorf("program span %v does not match file span %v", ps, fsp)
	}

	return CheckNesting(prog)
}

// CheckNesting walks the tree and fails on the first child whose span is not
// contained in its parent span, or that starts before the node visited just
// before it.
func CheckNesting(root ast.Node) error {
	if root == nil {
		return fmt.Errorf("nil node")
	}
	c := &spanChecker{file: root.Span().File}
	ast.Walk(c, root)
	return c.err
}

type spanChecker struct {
	file  source.FileID
	stack []ast.Node
	err   error

	prev     ast.Node // последний посещённый узел в порядке обхода
	prevSpan source.Span
}

func (c *spanChecker) Enter(n ast.Node) bool {
	if c.err != nil {
		return false
	}
	sp := n.Span()
	switch {
	case sp.File != c.file:
		c.err = fmt.Errorf("%s span file mismatch: got=%d want=%d", n.Kind(), sp.File, c.file)
	case sp.End < sp.Start:
		c.err = fmt.Errorf("%s span is inverted: %v", n.Kind(), sp)
	case len(c.stack) > 0:
		// вложенность: ребёнок внутри родителя
		if parent := c.stack[len(c.stack)-1]; !parent.Span().Contains(sp) {
			c.err = fmt.Errorf("%s %v escapes parent %s %v", n.Kind(), sp, parent.Kind(), parent.Span())
		}
	}
	if c.err == nil && c.prev != nil && sp.Start < c.prevSpan.Start {
		c.err = fmt.Errorf("%s %v starts before preceding %s %v", n.Kind(), sp, c.prev.Kind(), c.prevSpan)
	}
	if c.err != nil {
		return false
	}
	c.prev, c.prevSpan = n, sp
	c.stack = append(c.stack, n)
	return true
}

func (c *spanChecker) Leave(ast.Node) {
	if len(c.stack) > 0 {
		c.stack = c.stack[:len(c.stack)-1]
	}
}
