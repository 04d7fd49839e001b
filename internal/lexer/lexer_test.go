package lexer_test

import (
	"fmt"
	"strings"
	"testing"

	"phpfront/internal/diag"
	"phpfront/internal/lexer"
	"phpfront/internal/source"
	"phpfront/internal/token"
)

// testReporter собирает все диагностики, полученные от лексера
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note, fixes []diag.Fix) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
		Fixes:    fixes,
	})
}

func (r *testReporter) codes() []diag.Code {
	out := make([]diag.Code, 0, len(r.diagnostics))
	for _, d := range r.diagnostics {
		out = append(out, d.Code)
	}
	return out
}

func (r *testReporter) ErrorMessages() []string {
	messages := make([]string, 0, len(r.diagnostics))
	for _, d := range r.diagnostics {
		messages = append(messages, fmt.Sprintf("[%s] %s: %s", d.Code.ID(), d.Severity, d.Message))
	}
	return messages
}

func tokenize(input string) ([]token.Token, *testReporter) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.php", []byte(input)))
	reporter := &testReporter{}
	return lexer.Tokenize(file, lexer.Options{Reporter: reporter}), reporter
}

// expectTokens проверяет последовательность токенов (без EOF)
func expectTokens(t *testing.T, input string, expected []token.Kind) []token.Token {
	t.Helper()
	tokens, reporter := tokenize(input)
	tokens = tokens[:len(tokens)-1]

	if len(tokens) != len(expected) {
		t.Fatalf("Expected %d tokens, got %d\nInput: %q\nTokens: %v\nErrors: %v",
			len(expected), len(tokens), input, tokensToString(tokens), reporter.ErrorMessages())
	}
	for i, tok := range tokens {
		if tok.Kind != expected[i] {
			t.Errorf("Token %d: expected %v, got %v (text: %q)", i, expected[i], tok.Kind, tok.Text)
		}
	}
	return tokens
}

func tokensToString(tokens []token.Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = fmt.Sprintf("%v(%q)", tok.Kind, tok.Text)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func TestInlineAndTags(t *testing.T) {
	toks := expectTokens(t, "<html><?php echo 1; ?>\n</html>", []token.Kind{
		token.InlineText, token.OpenTag, token.Whitespace, token.KwEcho, token.Whitespace,
		token.IntLit, token.Semicolon, token.Whitespace, token.CloseTag, token.InlineText,
	})
	if toks[8].Text != "?>\n" {
		t.Errorf("close tag must swallow one newline, got %q", toks[8].Text)
	}

	expectTokens(t, "<?= $a ?>", []token.Kind{
		token.EchoTag, token.Whitespace, token.Variable, token.Whitespace, token.CloseTag,
	})
	expectTokens(t, "<?xml version=\"1.0\"?>\n<p>", []token.Kind{token.InlineText})
	expectTokens(t, "<?PHP\n", []token.Kind{token.OpenTag, token.Whitespace})
	expectTokens(t, "<?php", []token.Kind{token.OpenTag})
	expectTokens(t, "a<?phpx", []token.Kind{token.InlineText})
}

func TestShortOpenTagOption(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("short.php", []byte("<? echo 1;")))
	toks := lexer.Tokenize(file, lexer.Options{ShortOpenTag: true})
	if toks[0].Kind != token.ShortOpenTag || toks[0].Text != "<?" {
		t.Fatalf("expected short open tag, got %v %q", toks[0].Kind, toks[0].Text)
	}
}

func TestKeywordsAndNames(t *testing.T) {
	toks := expectTokens(t, `<?php FUNCTION Foo \A\B C\D namespace\E enum`, []token.Kind{
		token.OpenTag, token.Whitespace, token.KwFunction, token.Whitespace, token.Ident,
		token.Whitespace, token.FullyQualifiedIdent, token.Whitespace, token.QualifiedIdent,
		token.Whitespace, token.RelativeIdent, token.Whitespace, token.Ident,
	})
	if toks[2].Text != "FUNCTION" {
		t.Errorf("keyword text must keep source case, got %q", toks[2].Text)
	}

	expectTokens(t, `<?php $o->class; $o?->list; A::class`, []token.Kind{
		token.OpenTag, token.Whitespace, token.Variable, token.Arrow, token.Ident, token.Semicolon,
		token.Whitespace, token.Variable, token.NullsafeArrow, token.Ident, token.Semicolon,
		token.Whitespace, token.Ident, token.ColonColon, token.KwClass,
	})
	expectTokens(t, `<?php private(set) Public(Set) __CLASS__`, []token.Kind{
		token.OpenTag, token.Whitespace, token.KwPrivateSet, token.Whitespace, token.KwPublicSet,
		token.Whitespace, token.MagicClass,
	})
}

func TestVariablesAndCasts(t *testing.T) {
	expectTokens(t, `<?php $$a ${'x'} ( int )$b (Binary)$c (foo)`, []token.Kind{
		token.OpenTag, token.Whitespace, token.Dollar, token.Variable, token.Whitespace,
		token.DollarLBrace, token.StringLit, token.RBrace, token.Whitespace,
		token.IntCast, token.Variable, token.Whitespace, token.StringCast, token.Variable,
		token.Whitespace, token.LParen, token.Ident, token.RParen,
	})
}

func TestOperators(t *testing.T) {
	expectTokens(t, `<?php ?-> ??= ?? ... **= ** <=> <<= >>= === !== <> |> #[ \ => ::`, []token.Kind{
		token.OpenTag, token.Whitespace, token.NullsafeArrow, token.Whitespace,
		token.QuestionQuestionAssign, token.Whitespace, token.QuestionQuestion, token.Whitespace,
		token.Ellipsis, token.Whitespace, token.StarStarAssign, token.Whitespace, token.StarStar,
		token.Whitespace, token.Spaceship, token.Whitespace, token.ShlAssign, token.Whitespace,
		token.ShrAssign, token.Whitespace, token.EqEqEq, token.Whitespace, token.BangEqEq,
		token.Whitespace, token.LtGt, token.Whitespace, token.PipeGt, token.Whitespace,
		token.HashLBracket, token.Whitespace, token.Backslash, token.Whitespace, token.FatArrow,
		token.Whitespace, token.ColonColon,
	})
}

func TestComments(t *testing.T) {
	toks := expectTokens(t, "<?php # h\n// s ?>x/* m */ /** d */", []token.Kind{
		token.OpenTag, token.Whitespace, token.HashComment, token.Whitespace,
		token.SingleLineComment, token.CloseTag, token.InlineText,
	})
	if toks[4].Text != "// s " {
		t.Errorf("line comment must stop before ?>, got %q", toks[4].Text)
	}
	expectTokens(t, "<?php /* m */ /** d */ /**/", []token.Kind{
		token.OpenTag, token.Whitespace, token.MultiLineComment, token.Whitespace,
		token.DocBlockComment, token.Whitespace, token.MultiLineComment,
	})
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		src  string
		kind token.Kind
	}{
		{"0x1F", token.IntLit},
		{"0b1010", token.IntLit},
		{"0o17", token.IntLit},
		{"017", token.IntLit},
		{"1_000_000", token.IntLit},
		{"1.5", token.FloatLit},
		{".5", token.FloatLit},
		{"1.", token.FloatLit},
		{"1e3", token.FloatLit},
		{"1.5E-3", token.FloatLit},
	}
	for _, tt := range tests {
		toks, rep := tokenize("<?php " + tt.src)
		tok := toks[2]
		if tok.Kind != tt.kind || tok.Text != tt.src {
			t.Errorf("%q: got %v %q", tt.src, tok.Kind, tok.Text)
		}
		if len(rep.diagnostics) != 0 {
			t.Errorf("%q: unexpected diagnostics %v", tt.src, rep.ErrorMessages())
		}
	}

	_, rep := tokenize("<?php 1__0;")
	if codes := rep.codes(); len(codes) != 1 || codes[0] != diag.LexBadNumber {
		t.Errorf("expected LexBadNumber, got %v", rep.ErrorMessages())
	}
}

func TestStrings(t *testing.T) {
	expectTokens(t, `<?php 'a\'b' "plain \"q\" \$x"`, []token.Kind{
		token.OpenTag, token.Whitespace, token.StringLit, token.Whitespace, token.StringLit,
	})
	expectTokens(t, `<?php "a $b c"`, []token.Kind{
		token.OpenTag, token.Whitespace, token.DoubleQuote, token.StringPart, token.Variable,
		token.StringPart, token.DoubleQuote,
	})
	expectTokens(t, `<?php "{$a->b()}"`, []token.Kind{
		token.OpenTag, token.Whitespace, token.DoubleQuote, token.LBrace, token.Variable,
		token.Arrow, token.Ident, token.LParen, token.RParen, token.RBrace, token.DoubleQuote,
	})
	expectTokens(t, `<?php "$a[0] $a->b $c[k] ${d}"`, []token.Kind{
		token.OpenTag, token.Whitespace, token.DoubleQuote,
		token.Variable, token.LBracket, token.IntLit, token.RBracket, token.StringPart,
		token.Variable, token.Arrow, token.Ident, token.StringPart,
		token.Variable, token.LBracket, token.Ident, token.RBracket, token.StringPart,
		token.DollarLBrace, token.Ident, token.RBrace, token.DoubleQuote,
	})
	expectTokens(t, "<?php `ls $dir`", []token.Kind{
		token.OpenTag, token.Whitespace, token.Backtick, token.StringPart, token.Variable, token.Backtick,
	})
}

func TestHeredocAndNowdoc(t *testing.T) {
	toks := expectTokens(t, "<?php <<<EOT\n  a $b\n  EOT;\n", []token.Kind{
		token.OpenTag, token.Whitespace, token.DocumentStart, token.StringPart, token.Variable,
		token.StringPart, token.DocumentEnd, token.Semicolon, token.Whitespace,
	})
	if toks[2].Text != "<<<EOT\n" || toks[6].Text != "  EOT" {
		t.Errorf("heredoc delimiters: %q / %q", toks[2].Text, toks[6].Text)
	}

	toks = expectTokens(t, "<?php <<<'EOT'\n$not {$vars}\nEOT\n", []token.Kind{
		token.OpenTag, token.Whitespace, token.DocumentStart, token.StringPart, token.DocumentEnd, token.Whitespace,
	})
	if toks[3].Text != "$not {$vars}\n" {
		t.Errorf("nowdoc body = %q", toks[3].Text)
	}

	expectTokens(t, "<?php <<<\"X\"\nX;", []token.Kind{
		token.OpenTag, token.Whitespace, token.DocumentStart, token.DocumentEnd, token.Semicolon,
	})

	_, rep := tokenize("<?php <<<EOT\n a\n  EOT;")
	if codes := rep.codes(); len(codes) != 1 || codes[0] != diag.LexBadHeredocIndent {
		t.Errorf("expected indentation error, got %v", rep.ErrorMessages())
	}
}

func TestUnterminated(t *testing.T) {
	tests := []struct {
		src  string
		code diag.Code
	}{
		{"<?php 'abc", diag.LexUnterminatedString},
		{`<?php "abc`, diag.LexUnterminatedString},
		{`<?php "a $b`, diag.LexUnterminatedString},
		{`<?php "{$a`, diag.LexUnterminatedInterpolation},
		{"<?php `ls", diag.LexUnterminatedBacktick},
		{"<?php /* never", diag.LexUnterminatedBlockComment},
		{"<?php <<<EOT\nbody\n", diag.LexUnterminatedHeredoc},
	}
	for _, tt := range tests {
		toks, rep := tokenize(tt.src)
		if codes := rep.codes(); len(codes) != 1 || codes[0] != tt.code {
			t.Errorf("%q: expected %v, got %v", tt.src, tt.code.ID(), rep.ErrorMessages())
			continue
		}
		if d := rep.diagnostics[0]; d.Primary.Start != uint32(len(tt.src)) {
			t.Errorf("%q: diagnostic must sit at end of input, got %v", tt.src, d.Primary)
		}
		checkTiling(t, tt.src, toks)
	}
}

func TestUnknownByte(t *testing.T) {
	toks, rep := tokenize("<?php \x01$a;")
	if toks[2].Kind != token.Invalid || toks[2].Text != "\x01" {
		t.Fatalf("expected Invalid token, got %v %q", toks[2].Kind, toks[2].Text)
	}
	if codes := rep.codes(); len(codes) != 1 || codes[0] != diag.LexUnknownChar {
		t.Fatalf("expected LexUnknownChar, got %v", rep.ErrorMessages())
	}
	if toks[3].Kind != token.Variable {
		t.Fatalf("lexing must continue after an invalid byte")
	}
}

func TestHaltCompiler(t *testing.T) {
	toks := expectTokens(t, "<?php __halt_compiler(); <?php raw \x00 data", []token.Kind{
		token.OpenTag, token.Whitespace, token.KwHaltCompiler, token.LParen, token.RParen,
		token.Semicolon, token.HaltCompilerData,
	})
	if toks[6].Text != " <?php raw \x00 data" {
		t.Errorf("halt data = %q", toks[6].Text)
	}
}

func checkTiling(t *testing.T, src string, toks []token.Token) {
	t.Helper()
	var b strings.Builder
	var off uint32
	for _, tok := range toks {
		if tok.Span.Start != off {
			t.Fatalf("%q: gap or overlap at %d (token %v starts at %d)", src, off, tok.Kind, tok.Span.Start)
		}
		off = tok.Span.End
		b.WriteString(tok.Text)
	}
	if b.String() != src {
		t.Fatalf("round trip mismatch:\nwant %q\ngot  %q", src, b.String())
	}
	if last := toks[len(toks)-1]; last.Kind != token.EOF || !last.Span.Empty() {
		t.Fatalf("%q: sequence must end with an empty EOF", src)
	}
}

func TestRoundTrip(t *testing.T) {
	corpus := []string{
		"",
		"just html",
		"<?php\n",
		"<?php\nnamespace App;\n\nuse Foo\\{Bar, Baz as Q};\n\nfinal class A extends B implements C {\n    public function __construct(private readonly int $x = 0x10) {}\n}\n",
		"<p><?= htmlspecialchars($name) ?></p>\n<?php if ($a): ?>yes<?php endif; ?>\n",
		"<?php\n$s = <<<SQL\n    SELECT * FROM {$table} WHERE id = $id[0]\n    SQL;\n$n = <<<'N'\nraw\nN;\n",
		"<?php echo \"a{$b['c']}d${e}f$g->h\", `cmd $x`, 'lit';",
		"<?php\r\n// windows\r\n$a = 1;\r\n?>\r\ntrailing",
		"<?php #[Attr(1)] fn($x) => $x ** 2 |> strlen(...);",
		"\xEF\xBB\xBF<?php echo 'bom';",
	}
	for _, src := range corpus {
		toks, _ := tokenize(src)
		checkTiling(t, src, toks)
	}
}

func TestStreamingMatchesTokenize(t *testing.T) {
	src := "<?php $a = \"x $y\"; ?>tail"
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("s.php", []byte(src)))
	lx := lexer.New(file, lexer.Options{})
	batch := lexer.Tokenize(file, lexer.Options{})
	for i := range batch {
		tok := lx.Next()
		if tok != batch[i] {
			t.Fatalf("token %d differs: %+v vs %+v", i, tok, batch[i])
		}
	}
	if lx.Next().Kind != token.EOF {
		t.Fatal("Next after EOF must keep returning EOF")
	}
}
