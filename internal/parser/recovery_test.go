package parser

import (
	"strings"
	"testing"

	"phpfront/internal/ast"
	"phpfront/internal/diag"
	"phpfront/internal/lexer"
	"phpfront/internal/phpver"
	"phpfront/internal/source"
	"phpfront/internal/testkit"
)

func TestRecoveryBrokenParameterList(t *testing.T) {
	prog, bag := parseSrc(t, "<?php function f( { }", phpver.Latest)
	if got := countErrors(bag); got != 1 {
		t.Fatalf("expected exactly 1 error, got %d: %s", got, diagnosticsSummary(bag))
	}
	stmts := stmtsOf(prog)
	if len(stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(stmts))
	}
	fn, ok := stmts[0].(*ast.FunctionDecl)
	if !ok {
		t.Fatalf("got %T, want function", stmts[0])
	}
	if fn.Params.Bad == nil {
		t.Errorf("broken parameter list should carry a bad node")
	}
	if fn.Body == nil || fn.Body.Span().Empty() {
		t.Errorf("body should still be parsed")
	}
	checkSpans(t, prog)
}

func TestRecoveryCases(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		code   diag.Code
		stmts  int
		errors int
	}{
		{"missing_semicolon", "<?php $a = 1 2; echo 3;", diag.SynExpectSemicolon, 2, 1},
		{"unclosed_block", "<?php function f() { echo 1;", diag.SynUnclosedBrace, 1, 1},
		{"unclosed_condition", "<?php if ($a { echo 1; }", diag.SynUnclosedParen, 1, 1},
		{"missing_operand", "<?php $a = ; echo 2;", diag.SynExpectExpression, 2, 1},
		{"stray_brace", "<?php } echo 1;", diag.SynUnexpectedToken, 2, 1},
		{"bad_member", "<?php class A { 42; public $x; }", diag.SynUnexpectedToken, 1, 1},
		{"missing_class_name", "<?php class { }", diag.SynExpectIdentifier, 1, 1},
		{"unterminated_call", "<?php f(1, 2; echo 3;", diag.SynUnclosedParen, 2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, bag := parseSrc(t, tt.input, phpver.Latest)
			if got := countErrors(bag); got != tt.errors {
				t.Errorf("expected %d errors, got %d: %s", tt.errors, got, diagnosticsSummary(bag))
			}
			if countCode(bag, tt.code) == 0 {
				t.Errorf("expected [%s], got: %s", tt.code.ID(), diagnosticsSummary(bag))
			}
			if got := len(stmtsOf(prog)); got != tt.stmts {
				t.Errorf("expected %d statements, got %d", tt.stmts, got)
			}
			checkSpans(t, prog)
		})
	}
}

func TestParserIsTotal(t *testing.T) {
	inputs := []string{
		"",
		"<?php",
		"<?php (",
		"<?php )))]]]}}}",
		"<?php function",
		"<?php class A extends { function",
		"<?php $a = [1, 2",
		"<?php match",
		"<?php new",
		"<?php fn(",
		"<?php \"abc {$x",
		"<?php <<<EOT\nabc",
		"<?php #[",
		"<?php #[A(",
		"<?php use A\\{",
		"<?php if: endif",
		"<?php switch ($x) { foo }",
		"<?php try",
		"<?php enum E: { case }",
		"<?php class A { public function f(): ?(A| {} }",
		"<?php foreach ($a as &$k => $v) {}",
		"<?php declare(",
		"<?php $a->",
		"<?php A::",
		"<?php static",
		"<?php abstract final",
		"<?php ?> text <?php ?>",
		"<?php __halt_compiler",
		strings.Repeat("(", 200),
		"<?php " + strings.Repeat("[", 200),
		"<?php " + strings.Repeat("$a = ", 50),
	}

	for _, src := range inputs {
		prog, bag := parseSrc(t, src, phpver.Latest)
		file := source.Span{Start: 0, End: uint32(len(src))}
		for _, s := range prog.Statements {
			sp := s.Span()
			if sp.Start < file.Start || sp.End > file.End {
				t.Errorf("%q: statement %s span %v escapes the file", src, s.Kind(), sp)
			}
		}
		if bag.Len() > len(src)+1 {
			t.Errorf("%q: %d diagnostics for %d bytes", src, bag.Len(), len(src))
		}
	}
}

func TestMaxErrorsCapsSyntaxErrors(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("many.php", []byte("<?php ); ); ); ); ); );")))
	toks := lexer.Tokenize(file, lexer.Options{})
	bag := diag.NewBag(0)
	res := ParseFile(file, toks, Options{Reporter: diag.BagReporter{Bag: bag}, MaxErrors: 2})
	if res.Errors != 2 {
		t.Errorf("expected errors capped at 2, got %d", res.Errors)
	}
	if res.Program == nil || len(res.Program.Statements) == 0 {
		t.Errorf("parsing must continue after the cap")
	}
}

func TestSpansNestInValidCode(t *testing.T) {
	src := `<?php
namespace App;

use Lib\{A, B as C};

#[Entity]
final class User extends Model implements \JsonSerializable {
    use HasName { HasName::name as protected fullName; }
    public const string TABLE = 'users';
    private array $tags = [];

    public function __construct(private readonly int $id, public ?string $email = null) {}

    public function jsonSerialize(): mixed {
        return match (true) {
            $this->id > 0 => ['id' => $this->id, 'email' => $this->email ?? ''],
            default => throw new \LogicException("bad {$this->id}"),
        };
    }
}

function &gen(iterable $xs): \Generator {
    foreach ($xs as $k => [$a, $b]) {
        yield $k => $a + $b;
    }
    yield from other();
}

$f = static fn(int ...$n): int => array_sum($n);
$obj = new class(1) { public function __construct(public int $n) {} };
if ($x): echo <<<TXT
  Hello {$name}
  TXT;
endif;
?>
<p><?= htmlspecialchars($f(1, 2)) ?></p>
`
	checkSpans(t, parseOK(t, src))
}

// checkSpans asserts that every child span lies within its parent span.
func checkSpans(t *testing.T, prog *ast.Program) {
	t.Helper()
	if err := testkit.CheckNesting(prog); err != nil {
		t.Error(err)
	}
}

// Placeholders must not drag a node span back before its first token.
func TestSpanInvariantsHoldOnBrokenItems(t *testing.T) {
	inputs := []string{
		"<?php #[fn] function f(){}",
		"<?php f( class",
		"<?php [ class",
		"<?php class A{public A $x, = 1;}",
		"<?php enum A{A =",
		"<?php function f(int) {}",
		"<?php declare(=1);",
		"<?php match($x){ => 1};",
		"<?php function() use (&) {};",
		"<?php function f((A|) $x) {}",
	}

	for _, src := range inputs {
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("t.php", []byte(src)))
		res := ParseFile(file, lexer.Tokenize(file, lexer.Options{}), Options{})
		if err := testkit.CheckSpanInvariants(res.Program, file); err != nil {
			t.Errorf("%q: %v", src, err)
		}
	}
}

func TestMissingSemicolonGoldenAndFix(t *testing.T) {
	const src = "<?php\n$a = 1\n$b = 2;\n"
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.php", []byte(src)))
	bag := diag.NewBag(0)
	rep := diag.BagReporter{Bag: bag}
	ParseFile(file, lexer.Tokenize(file, lexer.Options{Reporter: rep}), Options{Reporter: rep})

	want := "error SYN2012 test.php:3:1 expected ';', got variable $b"
	if got := diag.FormatGoldenDiagnostics(bag.Items(), fs, true); got != want {
		t.Fatalf("golden mismatch:\n got: %s\nwant: %s", got, want)
	}

	d := bag.Items()[0]
	if len(d.Fixes) != 1 || len(d.Fixes[0].Edits) != 1 {
		t.Fatalf("expected one single-edit fix, got %+v", d.Fixes)
	}
	edit := d.Fixes[0].Edits[0]
	if edit.NewText != ";" || edit.Span.Start != 12 || !edit.Span.Empty() {
		t.Fatalf("unexpected fix edit %+v", edit)
	}
}
