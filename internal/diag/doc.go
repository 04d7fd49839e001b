// Package diag defines the diagnostic model shared by the lexer and the parser.
//
// # Purpose
//
//   - Provide deterministic, serialisable records for findings produced while
//     tokenizing and parsing PHP source.
//   - Offer light-weight utilities (Reporter, Bag) so producers emit diagnostics
//     without coupling to storage or formatting layers.
//
// # Scope
//
// Package diag performs no formatting beyond the stable one-line golden form,
// no IO and no CLI integration. Human rendering lives in internal/diagfmt.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – Hint, Warning or Error.
//   - Code – compact numeric identifier (see codes.go) with a stable string form.
//     Code ranges map onto a Category: LexError, SyntaxError or
//     CompatibilityWarning.
//   - Message – short, actionable text.
//   - Primary span – the canonical source.Span pointing to the issue.
//   - Notes – optional secondary labelled spans ("opened here").
//   - Fixes – optional structured edits.
//
// # Emitting diagnostics
//
// Producers receive a Reporter. BagReporter appends to a Bag, which keeps the
// detection order until Sort is called explicitly. ReportBuilder offers a
// fluent way to attach notes before emitting.
package diag
