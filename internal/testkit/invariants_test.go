package testkit_test

import (
	"strings"
	"testing"

	"phpfront/internal/ast"
	"phpfront/internal/diag"
	"phpfront/internal/lexer"
	"phpfront/internal/parser"
	"phpfront/internal/phpver"
	"phpfront/internal/source"
	"phpfront/internal/testkit"
	"phpfront/internal/token"
)

var corpus = []string{
	"",
	"plain html",
	"<?php echo 1;",
	"<?php\nclass A { public function f(int $x): ?int { return $x ?? null; } }\n",
	"<?php $s = \"a {$b->c} d\";",
	"<?php $h = <<<EOT\n  x $y\n  EOT;\n",
	"<?php $s = \"unterminated",
	"<?php function f( { }",
	"<p><?= $x ?></p>",
}

func virtualFile(src string) *source.File {
	fs := source.NewFileSet()
	return fs.Get(fs.AddVirtual("t.php", []byte(src)))
}

func TestCorpusHoldsInvariants(t *testing.T) {
	for _, src := range corpus {
		file := virtualFile(src)
		toks := lexer.Tokenize(file, lexer.Options{})
		if err := testkit.CheckTokenStream(file, toks); err != nil {
			t.Errorf("%q: %v", src, err)
			continue
		}
		res := parser.ParseFile(file, toks, parser.Options{Version: phpver.Latest, Reporter: diag.NopReporter{}})
		if err := testkit.CheckSpanInvariants(res.Program, file); err != nil {
			t.Errorf("%q: %v", src, err)
		}
	}
}

func TestCheckTokenStreamRejects(t *testing.T) {
	file := virtualFile("<?php $a;")
	good := lexer.Tokenize(file, lexer.Options{})

	tests := []struct {
		name   string
		mutate func([]token.Token) []token.Token
		want   string
	}{
		{"gap", func(ts []token.Token) []token.Token {
			return append(ts[:1:1], ts[2:]...)
		}, "previous ended"},
		{"missing eof", func(ts []token.Token) []token.Token {
			return ts[:len(ts)-1]
		}, "not EOF"},
		{"wrong text", func(ts []token.Token) []token.Token {
			ts[0].Text = "<?PHP"
			return ts
		}, "differs from source"},
		{"short stream", func(ts []token.Token) []token.Token {
			return []token.Token{ts[0], {Kind: token.EOF, Span: source.Span{File: file.ID, Start: 5, End: 5}}}
		}, "stops at 5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks := tt.mutate(append([]token.Token(nil), good...))
			err := testkit.CheckTokenStream(file, toks)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestCheckNestingRejectsEscapingChild(t *testing.T) {
	fileSpan := source.Span{Start: 0, End: 10}
	prog := &ast.Program{
		Base: ast.At(fileSpan),
		Statements: []ast.Stmt{
			&ast.EmptyStmt{Base: ast.At(source.Span{Start: 8, End: 12})},
		},
	}
	if err := testkit.CheckNesting(prog); err == nil || !strings.Contains(err.Error(), "escapes parent") {
		t.Fatalf("expected nesting error, got %v", err)
	}

	prog.Statements[0] = &ast.EmptyStmt{Base: ast.At(source.Span{Start: 8, End: 9})}
	if err := testkit.CheckNesting(prog); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCheckNestingRejectsOutOfOrderSiblings(t *testing.T) {
	prog := &ast.Program{
		Base: ast.At(source.Span{Start: 0, End: 20}),
		Statements: []ast.Stmt{
			&ast.EmptyStmt{Base: ast.At(source.Span{Start: 10, End: 11})},
			&ast.EmptyStmt{Base: ast.At(source.Span{Start: 4, End: 5})},
		},
	}
	if err := testkit.CheckNesting(prog); err == nil || !strings.Contains(err.Error(), "starts before preceding") {
		t.Fatalf("expected ordering error, got %v", err)
	}

	prog.Statements[0], prog.Statements[1] = prog.Statements[1], prog.Statements[0]
	if err := testkit.CheckNesting(prog); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
