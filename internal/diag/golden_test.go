package diag

import (
	"testing"

	"phpfront/internal/source"
)

func TestFormatGoldenDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Add("./testdata/sample.php", []byte("<?php\nfoo(\n"), 0)

	diags := []Diagnostic{
		{
			Severity: SevWarning,
			Code:     CompatFeatureUnavailable,
			Message:  "enums require PHP 8.1",
			Primary:  source.Span{File: file, Start: 6, End: 9},
		},
		{
			Severity: SevError,
			Code:     SynUnclosedParen,
			Message:  "expected ')'\nbefore end of file",
			Primary:  source.Span{File: file, Start: 11, End: 11},
			Notes: []Note{
				{Span: source.Span{File: file, Start: 9, End: 10}, Msg: "opened here"},
			},
		},
	}

	expected := "warning CMP7001 testdata/sample.php:2:1 enums require PHP 8.1\n" +
		"note SYN2006 testdata/sample.php:2:4 opened here\n" +
		"error SYN2006 testdata/sample.php:3:1 expected ')' before end of file"

	if got := FormatGoldenDiagnostics(diags, fs, true); got != expected {
		t.Fatalf("unexpected golden diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
	if got := FormatGoldenDiagnostics(nil, fs, true); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}

func TestFormatGoldenSkipsUnknownFiles(t *testing.T) {
	fs := source.NewFileSet()
	diags := []Diagnostic{{Severity: SevError, Code: SynUnexpectedToken, Primary: source.Span{File: 7}}}
	if got := FormatGoldenDiagnostics(diags, fs, false); got != "" {
		t.Fatalf("expected no output for unknown file, got %q", got)
	}
}
