package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"phpfront/internal/source"
	"phpfront/internal/token"
)

type TokenOutput struct {
	Kind   string      `json:"kind"`
	Text   string      `json:"text,omitempty"`
	Span   source.Span `json:"span"`
	Trivia bool        `json:"trivia,omitempty"`
}

// FormatTokensPretty выводит токены в человекочитаемом формате.
// Trivia (пробелы и комментарии) печатаются только при withTrivia.
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet, withTrivia bool) error {
	n := 0
	for _, tok := range tokens {
		if tok.IsTrivia() && !withTrivia {
			continue
		}
		n++
		startPos, endPos := fs.Resolve(tok.Span)

		if _, err := fmt.Fprintf(w, "%4d: %-24s", n, tok.Kind.String()); err != nil {
			return err
		}
		if tok.Text != "" {
			fmt.Fprintf(w, " %q", tok.Text)
		}
		fmt.Fprintf(w, " at %d:%d-%d:%d\n",
			startPos.Line, startPos.Col,
			endPos.Line, endPos.Col)

		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате. Поток без разрывов,
// поэтому trivia всегда включены.
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildTokensOutput(tokens))
}

// BuildTokensOutput converts tokens up to and including EOF.
func BuildTokensOutput(tokens []token.Token) []TokenOutput {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		output = append(output, TokenOutput{
			Kind:   tok.Kind.String(),
			Text:   tok.Text,
			Span:   tok.Span,
			Trivia: tok.IsTrivia(),
		})
		if tok.Kind == token.EOF {
			break
		}
	}
	return output
}
