package parser

import (
	"testing"

	"phpfront/internal/ast"
	"phpfront/internal/diag"
	"phpfront/internal/phpver"
	"phpfront/internal/token"
)

func TestPrecedence(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"mul_over_add", "1 + 2 * 3", "(+ 1 (* 2 3))"},
		{"left_assoc_sub", "1 - 2 - 3", "(- (- 1 2) 3)"},
		{"right_assoc_pow", "2 ** 3 ** 2", "(** 2 (** 3 2))"},
		{"pow_binds_tighter_than_minus", "-2 ** 2", "(- (** 2 2))"},
		{"coalesce_right_assoc", "$a ?? $b ?? $c", "(?? $a (?? $b $c))"},
		{"and_over_or", "$a && $b || $c", "(|| (&& $a $b) $c)"},
		{"word_and_over_word_or", "$a and $b or $c", "(or (and $a $b) $c)"},
		{"assign_over_word_and", "$x = true and false", "(and (= $x true) false)"},
		{"add_over_concat", "$a . $b + $c", "(. $a (+ $b $c))"},
		{"bit_and_over_bit_or", "$a | $b & $c", "(| $a (& $b $c))"},
		{"compare_over_logical", "$a == $b && $c < $d", "(&& (== $a $b) (< $c $d))"},
		{"instanceof_over_and", "$a instanceof B && $c", "(&& (instanceof $a B) $c)"},
		{"not_over_instanceof", "!$a instanceof B", "(! (instanceof $a B))"},
		{"cast_binds_operand", "(int) $a + 1", "(+ ((int) $a) 1)"},
		{"assign_in_not", "!$a = f()", "(! (= $a (call f)))"},
		{"assign_chain", "$a = $b += 3", "(= $a (+= $b 3))"},
		{"assign_ternary", "$a = $b ? 1 : 2", "(= $a (? $b 1 2))"},
		{"assign_by_ref", "$a = &$b", "(=& $a $b)"},
		{"short_ternary_chain", "$a ?: $b ?: $c", "(?: (?: $a $b) $c)"},
		{"incdec", "$i++ + ++$j", "(+ (post++ $i) (pre++ $j))"},
		{"print_takes_expr", "print $a . $b", "(print (. $a $b))"},
		{"member_chain", "$a->b()->c", "(prop (mcall $a b) c)"},
		{"clone_postfix", "clone $a->b", "(clone (prop $a b))"},
		{"call_args", "f(1, $x + 2)", "(call f 1 (+ $x 2))"},
		{"new_with_args", "new Foo(1)", "(new Foo 1)"},
		{"new_without_args", "new Foo", "(new Foo)"},
		{"index_chain", "$a[1][$k]", "(index (index $a 1) $k)"},
		{"parens_override", "(1 + 2) * 3", "(* (+ 1 2) 3)"},
		{"pipe_left_assoc", "$x |> f(...) |> g(...)", "(|> (|> $x (call f)) (call g))"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sexpr(exprOf(t, tt.input))
			if got != tt.want {
				t.Errorf("%s\n got: %s\nwant: %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestExpressionDiagnostics(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  diag.Code
	}{
		{"non_associative_compare", "1 < 2 < 3", diag.SynNonAssociative},
		{"nested_ternary", "$a ? $b : $c ? $d : $e", diag.SynNestedTernary},
		{"assign_to_literal", "1 = 2", diag.SynInvalidAssignTarget},
		{"positional_after_named", "f(a: 1, 2)", diag.SynPositionalAfterNamed},
		{"skip_in_array_literal", "$x = [1, , 2]", diag.SynMisplacedSkip},
		{"match_two_defaults", "match ($x) { default => 1, default => 2 }", diag.SynMultipleDefault},
		{"missing_operand", "$a + ", diag.SynExpectExpression},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, bag := parseSrc(t, "<?php "+tt.input+";", phpver.Latest)
			if countCode(bag, tt.code) != 1 {
				t.Fatalf("expected one [%s], got: %s", tt.code.ID(), diagnosticsSummary(bag))
			}
		})
	}
}

func TestNestedTernaryWithParensIsFine(t *testing.T) {
	e := exprOf(t, "$a ? $b : ($c ? $d : $e)")
	if got := sexpr(e); got != "(? $a $b (? $c $d $e))" {
		t.Errorf("got %s", got)
	}
}

func TestDestructuringSkips(t *testing.T) {
	for _, src := range []string{
		"[, $a] = $b",
		"list(, $a) = $b",
		"[$a, [, $c]] = $b",
	} {
		t.Run(src, func(t *testing.T) {
			e := exprOf(t, src)
			as, ok := e.(*ast.Assign)
			if !ok {
				t.Fatalf("expected assignment, got %T", e)
			}
			arr, ok := as.Target.(*ast.Array)
			if !ok {
				t.Fatalf("expected array target, got %T", as.Target)
			}
			if firstSkipped(arr) == nil {
				t.Errorf("skipped element lost")
			}
		})
	}
}

func TestNamedArguments(t *testing.T) {
	e := exprOf(t, "f(a: 1, class: 2, ...$rest)")
	call, ok := e.(*ast.Call)
	if !ok {
		t.Fatalf("expected call, got %T", e)
	}
	args := call.Args.Args
	if len(args) != 3 {
		t.Fatalf("expected 3 args, got %d", len(args))
	}
	if args[0].Name == nil || args[0].Name.Name != "a" {
		t.Errorf("arg 0 name = %v", args[0].Name)
	}
	if args[1].Name == nil || args[1].Name.Name != "class" {
		t.Errorf("semi-reserved name not accepted: %v", args[1].Name)
	}
	if !args[2].Spread || args[2].Name != nil {
		t.Errorf("arg 2 should be an unnamed spread")
	}
}

func TestConstantInTernaryIsNotNamedArgument(t *testing.T) {
	e := exprOf(t, "f($x ? A : B)")
	call := e.(*ast.Call)
	if call.Args.Args[0].Name != nil {
		t.Fatalf("ternary branch parsed as named argument")
	}
	if got := sexpr(call); got != "(call f (? $x A B))" {
		t.Errorf("got %s", got)
	}
}

func TestFirstClassCallable(t *testing.T) {
	e := exprOf(t, "$obj->method(...)")
	mc, ok := e.(*ast.MethodCall)
	if !ok {
		t.Fatalf("expected method call, got %T", e)
	}
	if !mc.Args.Callable {
		t.Errorf("expected callable argument list")
	}
}

func TestArrowFunctionSpeculation(t *testing.T) {
	if _, ok := exprOf(t, "fn($x) => $x * 2").(*ast.ArrowFunction); !ok {
		t.Errorf("fn($x) => ... should be an arrow function")
	}
	af, ok := exprOf(t, "static fn(int $x): int => $x").(*ast.ArrowFunction)
	if !ok || !af.Static || af.ReturnType == nil {
		t.Errorf("static arrow function with return type not recognised")
	}
	// без '=>' это обычный вызов функции fn
	call, ok := exprOf(t, "fn(1)").(*ast.Call)
	if !ok {
		t.Fatalf("fn(1) should fall back to a call")
	}
	if got := sexpr(call); got != "(call fn 1)" {
		t.Errorf("got %s", got)
	}
}

func TestClosure(t *testing.T) {
	e := exprOf(t, "function ($a) use (&$b, $c): int { return $a + $b; }")
	cl, ok := e.(*ast.Closure)
	if !ok {
		t.Fatalf("expected closure, got %T", e)
	}
	if len(cl.Params.Params) != 1 || len(cl.Uses) != 2 {
		t.Fatalf("params=%d uses=%d", len(cl.Params.Params), len(cl.Uses))
	}
	if !cl.Uses[0].ByRef || cl.Uses[1].ByRef {
		t.Errorf("by-ref flags wrong on use list")
	}
	if cl.ReturnType == nil || cl.Body == nil || len(cl.Body.Stmts) != 1 {
		t.Errorf("return type or body missing")
	}
}

func TestMatch(t *testing.T) {
	e := exprOf(t, "match ($x) { 1, 2 => 'a', default => 'b', }")
	m, ok := e.(*ast.Match)
	if !ok {
		t.Fatalf("expected match, got %T", e)
	}
	if len(m.Arms) != 2 || len(m.Arms[0].Conds) != 2 || !m.Arms[1].Default {
		t.Errorf("unexpected arms: %+v", m.Arms)
	}
}

func TestStaticAccess(t *testing.T) {
	tests := []struct {
		input string
		want  ast.Kind
	}{
		{"A::$b", ast.ExprStaticPropertyFetch},
		{"A::b()", ast.ExprStaticCall},
		{"A::B", ast.ExprClassConstFetch},
		{"A::class", ast.ExprClassConstFetch},
		{"static::create()", ast.ExprStaticCall},
		{"$cls::$prop", ast.ExprStaticPropertyFetch},
		{"A::{$name}", ast.ExprClassConstFetch},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := exprOf(t, tt.input).Kind(); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestNewAnonymousClass(t *testing.T) {
	e := exprOf(t, "new readonly class(1, 2) extends Base implements I { public function f() {} }")
	n, ok := e.(*ast.New)
	if !ok {
		t.Fatalf("expected new, got %T", e)
	}
	anon, ok := n.Class.(*ast.AnonymousClass)
	if !ok {
		t.Fatalf("expected anonymous class, got %T", n.Class)
	}
	if n.Args != nil {
		t.Errorf("arguments must stay on the anonymous class")
	}
	if anon.Args == nil || len(anon.Args.Args) != 2 {
		t.Errorf("constructor args missing")
	}
	if anon.Extends == nil || len(anon.Implements) != 1 || len(anon.Members) != 1 {
		t.Errorf("class header or body incomplete")
	}
	if !anon.Modifiers.Has(token.KwReadonly) {
		t.Errorf("readonly modifier lost")
	}
}

func TestInterpolation(t *testing.T) {
	e := exprOf(t, `"a $b c"`)
	in, ok := e.(*ast.Interpolated)
	if !ok {
		t.Fatalf("expected interpolated string, got %T", e)
	}
	if len(in.Parts) != 3 {
		t.Fatalf("expected 3 parts, got %d", len(in.Parts))
	}
	if _, ok := in.Parts[1].(*ast.Variable); !ok {
		t.Errorf("middle part = %T", in.Parts[1])
	}

	e = exprOf(t, `"$a[0] $a[key] $a->b {$c->d()} ${e}"`)
	in = e.(*ast.Interpolated)
	var kinds []ast.Kind
	for _, part := range in.Parts {
		if _, frag := part.(*ast.StringFragment); frag {
			continue
		}
		kinds = append(kinds, part.Kind())
	}
	want := []ast.Kind{ast.ExprIndex, ast.ExprIndex, ast.ExprPropertyFetch, ast.ExprMethodCall, ast.ExprVariable}
	if len(kinds) != len(want) {
		t.Fatalf("got kinds %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("part %d: got %s, want %s", i, kinds[i], want[i])
		}
	}
}

func TestHeredoc(t *testing.T) {
	prog := parseOK(t, "<?php $x = <<<EOT\nHello $name\nEOT;\n$y = <<<'RAW'\nkeep $this\nRAW;\n")
	stmts := stmtsOf(prog)
	if len(stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(stmts))
	}
	here := stmts[0].(*ast.ExprStmt).Expr.(*ast.Assign).Value.(*ast.Interpolated)
	if here.Form != ast.InterpHeredoc || here.Label != "EOT" {
		t.Errorf("heredoc form=%v label=%q", here.Form, here.Label)
	}
	var sawVar bool
	for _, part := range here.Parts {
		if _, ok := part.(*ast.Variable); ok {
			sawVar = true
		}
	}
	if !sawVar {
		t.Errorf("heredoc lost its interpolated variable")
	}

	now := stmts[1].(*ast.ExprStmt).Expr.(*ast.Assign).Value.(*ast.Interpolated)
	if now.Form != ast.InterpNowdoc || now.Label != "RAW" {
		t.Errorf("nowdoc form=%v label=%q", now.Form, now.Label)
	}
}
