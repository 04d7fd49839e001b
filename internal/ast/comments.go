package ast

import (
	"sort"
	"strings"

	"phpfront/internal/token"
)

// LeadingComments returns the comments directly in front of n: the run of
// trivia ending where n starts, stopping at a blank line. Closest last.
func LeadingComments(prog *Program, n Node) []token.Token {
	triv := prog.Trivia
	start := n.Span().Start
	// первый trivia, начинающийся не раньше узла
	i := sort.Search(len(triv), func(i int) bool { return triv[i].Span.Start >= start })

	var out []token.Token
	pos := start
	for i--; i >= 0; i-- {
		t := triv[i]
		if t.Span.End != pos {
			break
		}
		if t.Kind == token.Whitespace {
			if strings.Count(t.Text, "\n") > 1 {
				break
			}
		} else {
			out = append(out, t)
		}
		pos = t.Span.Start
	}
	// разворачиваем: собирали с конца
	for l, r := 0, len(out)-1; l < r; l, r = l+1, r-1 {
		out[l], out[r] = out[r], out[l]
	}
	return out
}

// DocComment returns the /** */ block attached to n, if any.
func DocComment(prog *Program, n Node) (token.Token, bool) {
	cs := LeadingComments(prog, n)
	if len(cs) > 0 && cs[len(cs)-1].Kind == token.DocBlockComment {
		return cs[len(cs)-1], true
	}
	return token.Token{}, false
}
