// Package token defines lexical token kinds for PHP source.
// Invariants:
//   - Token.Text is a slice of the original source (no copies, no unescaping).
//   - Token.Span matches Text exactly (Start..End).
//   - Trivia (whitespace and comments) are ordinary tokens whose Kind.IsTrivia
//     is true, so the full token sequence tiles the file without gaps.
//   - Reserved words are keywords regardless of case. Contextual words such as
//     enum, mixed, never, self, parent, true, false and null are identifiers;
//     the parser decides what they mean.
//   - Number literals keep their raw text; evaluation is left to consumers.
package token
