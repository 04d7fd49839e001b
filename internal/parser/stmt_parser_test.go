package parser

import (
	"strings"
	"testing"

	"phpfront/internal/ast"
	"phpfront/internal/token"
)

func TestStatementKinds(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  ast.Kind
	}{
		{"echo", "<?php echo 1, 2;", ast.StmtEcho},
		{"block", "<?php { $a = 1; }", ast.StmtBlock},
		{"empty", "<?php ;", ast.StmtEmpty},
		{"while", "<?php while ($a) { $a--; }", ast.StmtWhile},
		{"do_while", "<?php do { $a++; } while ($a < 3);", ast.StmtDoWhile},
		{"for", "<?php for ($i = 0, $j = 1; $i < 3; $i++) {}", ast.StmtFor},
		{"for_empty_header", "<?php for (;;) { break; }", ast.StmtFor},
		{"return", "<?php return;", ast.StmtReturn},
		{"break_level", "<?php while (1) { break 2; }", ast.StmtWhile},
		{"global", "<?php global $a, $b;", ast.StmtGlobal},
		{"static_vars", "<?php static $a = 1, $b;", ast.StmtStatic},
		{"unset", "<?php unset($a, $b['k']);", ast.StmtUnset},
		{"const", "<?php const A = 1, B = A + 1;", ast.StmtConst},
		{"label", "<?php retry:", ast.StmtLabel},
		{"goto", "<?php goto retry;", ast.StmtGoto},
		{"declare", "<?php declare(strict_types=1);", ast.StmtDeclare},
		{"namespace", "<?php namespace App\\Models;", ast.StmtNamespace},
		{"use", "<?php use App\\Models\\User;", ast.StmtUse},
		{"function", "<?php function f(int $a = 1, ...$rest): ?int { return $a; }", ast.DeclFunction},
		{"expr", "<?php $a = 1;", ast.StmtExpr},
		{"static_closure_stmt", "<?php static function () {};", ast.StmtExpr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmts := stmtsOf(parseOK(t, tt.input))
			if len(stmts) != 1 {
				t.Fatalf("expected 1 statement, got %d", len(stmts))
			}
			if got := stmts[0].Kind(); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestAltSyntax(t *testing.T) {
	src := `<?php
if ($a):
    echo 1;
elseif ($b):
    echo 2;
else:
    echo 3;
endif;
while ($a): $a--; endwhile;
for (;;): break; endfor;
foreach ($xs as $x): echo $x; endforeach;
switch ($x):
    case 1:
        echo 1;
        break;
    default:
        echo 2;
endswitch;
declare(ticks=1):
    tick();
enddeclare;
`
	stmts := stmtsOf(parseOK(t, src))
	if len(stmts) != 6 {
		t.Fatalf("expected 6 statements, got %d", len(stmts))
	}

	ifs := stmts[0].(*ast.If)
	if !ifs.Alt || len(ifs.ElseIfs) != 1 || ifs.Else == nil {
		t.Errorf("alt if shape: alt=%v elseifs=%d else=%v", ifs.Alt, len(ifs.ElseIfs), ifs.Else != nil)
	}
	if !stmts[1].(*ast.While).Alt || !stmts[2].(*ast.For).Alt || !stmts[3].(*ast.Foreach).Alt {
		t.Errorf("loop alt flags not set")
	}
	sw := stmts[4].(*ast.Switch)
	if !sw.Alt || len(sw.Cases) != 2 || sw.Cases[1].Cond != nil {
		t.Errorf("alt switch shape wrong")
	}
	decl := stmts[5].(*ast.Declare)
	if !decl.Alt || decl.Body == nil {
		t.Errorf("alt declare has no body")
	}
}

func TestIfElseChain(t *testing.T) {
	stmts := stmtsOf(parseOK(t, "<?php if ($a) f(); elseif ($b) { g(); } else if ($c) h(); else i();"))
	ifs := stmts[0].(*ast.If)
	if len(ifs.ElseIfs) != 1 {
		t.Fatalf("expected 1 elseif, got %d", len(ifs.ElseIfs))
	}
	// else if: это else с вложенным if
	nested, ok := ifs.Else.Body.(*ast.If)
	if !ok {
		t.Fatalf("else body = %T, want nested if", ifs.Else.Body)
	}
	if nested.Else == nil {
		t.Errorf("nested if lost its else")
	}
}

func TestForeachTargets(t *testing.T) {
	stmts := stmtsOf(parseOK(t, "<?php foreach ($rows as $k => [$a, , $c]) {} foreach ($xs as &$v) {}"))
	fe := stmts[0].(*ast.Foreach)
	if fe.Key == nil {
		t.Fatalf("key missing")
	}
	if _, ok := fe.Value.(*ast.Array); !ok {
		t.Errorf("value = %T, want destructuring array", fe.Value)
	}
	if !stmts[1].(*ast.Foreach).ByRef {
		t.Errorf("by-ref value not recorded")
	}
}

func TestSwitchCases(t *testing.T) {
	stmts := stmtsOf(parseOK(t, "<?php switch ($x) { case 1: case 2; echo 1; break; default: echo 2; }"))
	sw := stmts[0].(*ast.Switch)
	if len(sw.Cases) != 3 {
		t.Fatalf("expected 3 cases, got %d", len(sw.Cases))
	}
	if len(sw.Cases[0].Body) != 0 || len(sw.Cases[1].Body) != 2 {
		t.Errorf("fallthrough bodies wrong: %d, %d", len(sw.Cases[0].Body), len(sw.Cases[1].Body))
	}
}

func TestTryCatchFinally(t *testing.T) {
	stmts := stmtsOf(parseOK(t, "<?php try { f(); } catch (A|B) { } catch (\\C $e) { } finally { g(); }"))
	tr := stmts[0].(*ast.Try)
	if len(tr.Catches) != 2 || tr.Finally == nil {
		t.Fatalf("catches=%d finally=%v", len(tr.Catches), tr.Finally != nil)
	}
	if len(tr.Catches[0].Types) != 2 || tr.Catches[0].Var != nil {
		t.Errorf("multi-catch without variable parsed wrong")
	}
	if tr.Catches[1].Var == nil || tr.Catches[1].Var.Name != "e" {
		t.Errorf("catch variable lost")
	}
}

func TestUseForms(t *testing.T) {
	src := `<?php
namespace App;
use A\B as C, D;
use function A\b as c;
use const A\X;
use A\{B, function c, const D as E};
`
	stmts := stmtsOf(parseOK(t, src))
	if len(stmts) != 5 {
		t.Fatalf("expected 5 statements, got %d", len(stmts))
	}

	plain := stmts[1].(*ast.Use)
	if plain.Tok != token.Invalid || len(plain.Items) != 2 || plain.Items[0].Alias == nil {
		t.Errorf("plain use shape wrong")
	}
	if stmts[2].(*ast.Use).Tok != token.KwFunction {
		t.Errorf("use function kind lost")
	}
	if stmts[3].(*ast.Use).Tok != token.KwConst {
		t.Errorf("use const kind lost")
	}

	group := stmts[4].(*ast.Use)
	if group.Prefix == nil || group.Prefix.Text != "A" {
		t.Fatalf("group prefix = %v", group.Prefix)
	}
	if len(group.Items) != 3 {
		t.Fatalf("expected 3 group items, got %d", len(group.Items))
	}
	if group.Items[1].Tok != token.KwFunction || group.Items[2].Tok != token.KwConst {
		t.Errorf("per-item kinds lost")
	}
	if group.Items[2].Alias == nil || group.Items[2].Alias.Name != "E" {
		t.Errorf("group alias lost")
	}
}

func TestBracedNamespaces(t *testing.T) {
	stmts := stmtsOf(parseOK(t, "<?php namespace A { function f() {} } namespace { f(); }"))
	if len(stmts) != 2 {
		t.Fatalf("expected 2 namespaces, got %d", len(stmts))
	}
	first := stmts[0].(*ast.Namespace)
	if first.Body == nil || len(first.Body.Stmts) != 1 {
		t.Errorf("braced namespace body lost")
	}
	if global := stmts[1].(*ast.Namespace); global.Name != nil || global.Body == nil {
		t.Errorf("global namespace shape wrong")
	}
}

func TestInlineHTMLAndTags(t *testing.T) {
	prog := parseOK(t, "<html><?php echo 1 ?></html><?= $title ?>")
	var kinds []ast.Kind
	for _, s := range prog.Statements {
		kinds = append(kinds, s.Kind())
	}
	want := []ast.Kind{
		ast.StmtInlineHTML, ast.StmtTag, ast.StmtEcho, ast.StmtTag,
		ast.StmtInlineHTML, ast.StmtEcho, ast.StmtTag,
	}
	if len(kinds) != len(want) {
		t.Fatalf("got %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("stmt %d: got %s, want %s", i, kinds[i], want[i])
		}
	}
	if !prog.Statements[5].(*ast.Echo).FromTag {
		t.Errorf("<?= echo not marked FromTag")
	}
}

func TestHaltCompiler(t *testing.T) {
	stmts := stmtsOf(parseOK(t, "<?php echo 1; __halt_compiler(); raw ) data {"))
	if len(stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(stmts))
	}
	h, ok := stmts[1].(*ast.HaltCompiler)
	if !ok {
		t.Fatalf("got %T, want halt compiler", stmts[1])
	}
	if !strings.Contains(h.Data, "raw ) data {") {
		t.Errorf("data = %q", h.Data)
	}
}
