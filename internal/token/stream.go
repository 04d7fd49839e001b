package token

import (
	"fmt"
)

// Stream is a cursor over a complete token sequence.
// Grammar decisions see only significant tokens; trivia stay addressable by index.
// The sequence must end with EOF.
type Stream struct {
	toks []Token
	sig  []int // индексы значимых токенов в toks
	pos  int   // позиция в sig
}

// Checkpoint is a saved cursor position. Restoring is O(1).
type Checkpoint struct {
	pos int
}

// NewStream builds a cursor. A sequence without a trailing EOF gets one appended.
func NewStream(toks []Token) *Stream {
	if len(toks) == 0 || toks[len(toks)-1].Kind != EOF {
		var eof Token
		eof.Kind = EOF
		if len(toks) > 0 {
			last := toks[len(toks)-1].Span
			eof.Span = last.ZeroideToEnd()
		}
		toks = append(toks[:len(toks):len(toks)], eof)
	}
	sig := make([]int, 0, len(toks))
	for i := range toks {
		if !toks[i].Kind.IsTrivia() {
			sig = append(sig, i)
		}
	}
	return &Stream{toks: toks, sig: sig}
}

// Current returns the current significant token.
func (s *Stream) Current() Token {
	return s.toks[s.sig[s.pos]]
}

// Peek returns the k-th significant token after the current one; Peek(0) == Current().
// Looking beyond the end yields EOF.
func (s *Stream) Peek(k int) Token {
	i := s.pos + k
	if i >= len(s.sig) {
		i = len(s.sig) - 1
	}
	return s.toks[s.sig[i]]
}

// Advance consumes the current token and returns it.
// Advancing past EOF is a grammar bug and panics.
func (s *Stream) Advance() Token {
	tok := s.Current()
	if tok.Kind == EOF {
		panic(fmt.Errorf("token stream: advance past EOF at offset %d", tok.Span.Start))
	}
	s.pos++
	return tok
}

// At reports whether the current token has one of kinds.
func (s *Stream) At(kinds ...Kind) bool {
	k := s.Current().Kind
	for _, want := range kinds {
		if k == want {
			return true
		}
	}
	return false
}

// Prev returns the most recently consumed significant token.
// Before the first Advance it returns a zero-width token at the stream start.
func (s *Stream) Prev() Token {
	if s.pos == 0 {
		first := s.toks[0]
		return Token{Kind: Invalid, Span: first.Span.ZeroideToStart()}
	}
	return s.toks[s.sig[s.pos-1]]
}

func (s *Stream) Checkpoint() Checkpoint {
	return Checkpoint{pos: s.pos}
}

func (s *Stream) Restore(cp Checkpoint) {
	s.pos = cp.pos
}

// Offset is the number of significant tokens consumed so far.
func (s *Stream) Offset() int {
	return s.pos
}

// Tokens returns the full sequence, trivia included.
func (s *Stream) Tokens() []Token {
	return s.toks
}

// Trivia returns every trivia token in source order.
func (s *Stream) Trivia() []Token {
	out := make([]Token, 0, len(s.toks)-len(s.sig))
	for i := range s.toks {
		if s.toks[i].Kind.IsTrivia() {
			out = append(out, s.toks[i])
		}
	}
	return out
}

// LeadingTrivia returns the trivia between the previous significant token and the current one.
func (s *Stream) LeadingTrivia() []Token {
	end := s.sig[s.pos]
	start := 0
	if s.pos > 0 {
		start = s.sig[s.pos-1] + 1
	}
	return s.toks[start:end]
}
