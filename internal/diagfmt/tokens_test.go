package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"phpfront/internal/lexer"
	"phpfront/internal/source"
	"phpfront/internal/token"
)

func lexVirtual(t *testing.T, src string) (*source.FileSet, []token.Token) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("t.php", []byte(src)))
	return fs, lexer.Tokenize(file, lexer.Options{})
}

func TestFormatTokensPretty(t *testing.T) {
	fs, toks := lexVirtual(t, "<?php echo 1;")

	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, toks, fs, false); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	// <?php echo 1 ; EOF
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines without trivia, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "   1: <?php") || !strings.HasSuffix(lines[0], `"<?php" at 1:1-1:6`) {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.Contains(lines[2], "IntLit") || !strings.HasSuffix(lines[2], `"1" at 1:12-1:13`) {
		t.Errorf("line 2 = %q", lines[2])
	}

	buf.Reset()
	if err := FormatTokensPretty(&buf, toks, fs, true); err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(buf.String(), "\n"); got != 7 {
		t.Errorf("expected 7 lines with trivia, got %d:\n%s", got, buf.String())
	}
	if !strings.Contains(buf.String(), "Whitespace") {
		t.Errorf("trivia missing:\n%s", buf.String())
	}
}

func TestFormatTokensJSON(t *testing.T) {
	_, toks := lexVirtual(t, "<?php // hi\n$a;")

	var buf bytes.Buffer
	if err := FormatTokensJSON(&buf, toks); err != nil {
		t.Fatal(err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if len(out) != len(toks) {
		t.Fatalf("got %d tokens, want %d", len(out), len(toks))
	}

	// поток без разрывов: текст всех токенов восстанавливает исходник
	var sb strings.Builder
	trivia := 0
	for i, tok := range out {
		sb.WriteString(tok.Text)
		if tok.Trivia {
			trivia++
		}
		if i > 0 && tok.Span.Start != out[i-1].Span.End {
			t.Errorf("gap between token %d and %d", i-1, i)
		}
	}
	if sb.String() != "<?php // hi\n$a;" {
		t.Errorf("reconstructed %q", sb.String())
	}
	if trivia == 0 {
		t.Errorf("comment and whitespace must be marked as trivia")
	}
	if out[len(out)-1].Kind != token.EOF.String() {
		t.Errorf("last token = %s", out[len(out)-1].Kind)
	}
}
