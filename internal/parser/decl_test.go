package parser

import (
	"strings"
	"testing"

	"phpfront/internal/ast"
	"phpfront/internal/diag"
	"phpfront/internal/phpver"
	"phpfront/internal/token"
)

func TestClassDecl(t *testing.T) {
	src := `<?php
#[Attr(1), Other]
final class Foo extends Bar implements Baz, Qux {
    use T1, T2 { T1::hello insteadof T2; T2::hello as protected hi; }
    public const int X = 1;
    private static ?string $name = null;
    public readonly int $id;
    public function __construct(private readonly int $x, public(set) string $y = "") {}
    abstract protected function f(): static;
}
`
	stmts := stmtsOf(parseOK(t, src))
	c, ok := stmts[0].(*ast.ClassDecl)
	if !ok {
		t.Fatalf("got %T, want class", stmts[0])
	}
	if c.Name.Name != "Foo" || c.Extends == nil || len(c.Implements) != 2 {
		t.Errorf("class header wrong")
	}
	if len(c.Attrs) != 1 || len(c.Attrs[0].Attrs) != 2 {
		t.Errorf("attribute group wrong")
	}
	if !c.Modifiers.Has(token.KwFinal) {
		t.Errorf("final modifier lost")
	}
	if len(c.Members) != 6 {
		t.Fatalf("expected 6 members, got %d", len(c.Members))
	}

	use := c.Members[0].(*ast.TraitUse)
	if len(use.Traits) != 2 || len(use.Adaptations) != 2 {
		t.Fatalf("trait use shape wrong")
	}
	if a := use.Adaptations[0]; a.Trait == nil || len(a.Insteadof) != 1 {
		t.Errorf("insteadof adaptation wrong")
	}
	if a := use.Adaptations[1]; a.Visibility == nil || a.Visibility.Tok != token.KwProtected || a.Alias == nil {
		t.Errorf("alias adaptation wrong")
	}

	if cc := c.Members[1].(*ast.ClassConstDecl); cc.Type == nil || len(cc.Items) != 1 {
		t.Errorf("typed constant wrong")
	}
	if pr := c.Members[2].(*ast.PropertyDecl); !pr.Modifiers.Has(token.KwStatic) || pr.Type == nil {
		t.Errorf("static property wrong")
	}

	ctor := c.Members[4].(*ast.MethodDecl)
	params := ctor.Params.Params
	if len(params) != 2 || !params[0].Modifiers.Has(token.KwReadonly) || !params[1].Modifiers.Has(token.KwPublicSet) {
		t.Errorf("promoted parameters wrong")
	}
	if abs := c.Members[5].(*ast.MethodDecl); abs.Body != nil {
		t.Errorf("abstract method should have no body")
	}
}

func TestFunctionByRefAndVariadic(t *testing.T) {
	stmts := stmtsOf(parseOK(t, "<?php function &f(A&B $a, int &...$rest) { }"))
	fn := stmts[0].(*ast.FunctionDecl)
	if !fn.ByRef {
		t.Errorf("by-ref return lost")
	}
	params := fn.Params.Params
	if len(params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(params))
	}
	if _, ok := params[0].Type.(*ast.IntersectionType); !ok {
		t.Errorf("A&B should be an intersection, got %T", params[0].Type)
	}
	if params[0].ByRef {
		t.Errorf("first param is not by-ref")
	}
	if !params[1].ByRef || !params[1].Variadic {
		t.Errorf("&... flags lost")
	}
}

func TestEnumDecl(t *testing.T) {
	src := `<?php
enum Suit: string implements HasLabel {
    case Hearts = 'H';
    case Spades = 'S';
    const Wild = self::Spades;
    public function label(): string { return ucfirst($this->name); }
}
`
	stmts := stmtsOf(parseOK(t, src))
	e, ok := stmts[0].(*ast.EnumDecl)
	if !ok {
		t.Fatalf("got %T, want enum", stmts[0])
	}
	if e.BackingType == nil || len(e.Implements) != 1 || len(e.Members) != 4 {
		t.Errorf("enum shape wrong: members=%d", len(e.Members))
	}
	if c := e.Members[0].(*ast.EnumCase); c.Name.Name != "Hearts" || c.Value == nil {
		t.Errorf("enum case wrong")
	}
}

func TestEnumAsIdentifier(t *testing.T) {
	// enum: не ключевое слово: функция и константа с этим именем законны
	stmts := stmtsOf(parseOK(t, "<?php enum($x); $y = enum;"))
	if len(stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(stmts))
	}
	if _, ok := stmts[0].(*ast.ExprStmt); !ok {
		t.Errorf("enum(...) should be a call, got %T", stmts[0])
	}
}

func TestInterfaceAndTrait(t *testing.T) {
	src := `<?php
interface I extends A, B {
    const X = 1;
    public function f(int $a): void;
}
trait T {
    abstract public function g();
    public static function h() { return static::class; }
}
`
	stmts := stmtsOf(parseOK(t, src))
	i := stmts[0].(*ast.InterfaceDecl)
	if len(i.Extends) != 2 || len(i.Members) != 2 {
		t.Errorf("interface shape wrong")
	}
	tr := stmts[1].(*ast.TraitDecl)
	if len(tr.Members) != 2 {
		t.Errorf("trait shape wrong")
	}
}

func TestPropertyHooks(t *testing.T) {
	src := `<?php
class User {
    public string $fullName {
        get => $this->first . ' ' . $this->last;
        set(string $value) { [$this->first, $this->last] = explode(' ', $value, 2); }
    }
    public function __construct(public int $age { final get => $this->age; }) {}
}
`
	stmts := stmtsOf(parseOK(t, src))
	c := stmts[0].(*ast.ClassDecl)
	prop := c.Members[0].(*ast.PropertyDecl)
	if len(prop.Hooks) != 2 {
		t.Fatalf("expected 2 hooks, got %d", len(prop.Hooks))
	}
	if prop.Hooks[0].Expr == nil || prop.Hooks[1].Body == nil || prop.Hooks[1].Params == nil {
		t.Errorf("hook bodies wrong")
	}
	ctor := c.Members[1].(*ast.MethodDecl)
	if hooks := ctor.Params.Params[0].Hooks; len(hooks) != 1 || !hooks[0].Modifiers.Has(token.KwFinal) {
		t.Errorf("promoted property hook wrong")
	}
}

func TestDeclarationDiagnostics(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  diag.Code
	}{
		{"interface_method_body", "interface I { function f() {} }", diag.SynMethodBodyInInterface},
		{"missing_method_body", "class A { function f(); }", diag.SynMissingMethodBody},
		{"property_in_enum", "enum E { public $x; }", diag.SynPropertyInEnum},
		{"case_outside_enum", "class A { case X; }", diag.SynEnumCaseOutsideEnum},
		{"closure_in_attribute", "#[A(fn() => 1)] function f() {}", diag.SynClosureInAttribute},
		{"empty_hook_list", "class A { public int $x {} }", diag.SynInvalidHook},
		{"unknown_hook", "class A { public int $x { fetch => 1; } }", diag.SynInvalidHook},
		{"nullable_union", "function f(?A|B $x) {}", diag.SynInvalidTypeNesting},
		{"union_in_group", "function f((A|B)|C $x) {}", diag.SynInvalidTypeNesting},
		{"nullable_group", "function f(?(A&B) $x) {}", diag.SynInvalidTypeNesting},
		{"multiple_default", "switch ($x) { default: break; default: break; }", diag.SynMultipleDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, bag := parseSrc(t, "<?php "+tt.input, phpver.Latest)
			if got := countCode(bag, tt.code); got != 1 {
				t.Fatalf("expected one [%s], got %d: %s", tt.code.ID(), got, diagnosticsSummary(bag))
			}
		})
	}
}

func TestModifierDiagnostics(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  diag.Code
	}{
		{"duplicate", "class A { public public $x; }", diag.CompatDuplicateModifier},
		{"multiple_visibility", "class A { public private $x; }", diag.CompatMultipleVisibility},
		{"abstract_final_class", "abstract final class A {}", diag.CompatAbstractFinal},
		{"abstract_final_method", "class A { final abstract function f(); }", diag.CompatAbstractFinal},
		{"readonly_method", "class A { readonly function f() {} }", diag.CompatModifierNotAllowed},
		{"static_class", "static class A {}", diag.CompatModifierNotAllowed},
		{"public_class", "public class A {}", diag.CompatVisibilityNotAllowed},
		{"static_readonly", "class A { private static readonly int $x; }", diag.CompatModifierNotAllowed},
		{"readonly_untyped", "class A { public readonly $x; }", diag.CompatReadonlyWithoutType},
		{"abstract_with_body", "abstract class A { abstract function f() {} }", diag.CompatAbstractWithBody},
		{"static_const", "class A { static const X = 1; }", diag.CompatModifierNotAllowed},
		{"abstract_property", "class A { abstract int $x; }", diag.CompatModifierNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, bag := parseSrc(t, "<?php "+tt.input, phpver.Latest)
			if got := countCode(bag, tt.code); got != 1 {
				t.Fatalf("expected one [%s], got %d: %s", tt.code.ID(), got, diagnosticsSummary(bag))
			}
			for _, d := range bag.Items() {
				if d.Code == tt.code && d.Severity != diag.SevWarning {
					t.Errorf("modifier diagnostic should be a warning, got %v", d.Severity)
				}
			}
		})
	}
}

func TestFinalAbstractNamesTheDeclaration(t *testing.T) {
	tests := []struct {
		input string
		what  string
	}{
		{"final abstract class X {}", "abstract class"},
		{"abstract class A { final abstract function f(); }", "abstract method"},
		{"abstract class A { final abstract const X = 1; }", "abstract class constant"},
	}

	for _, tt := range tests {
		_, bag := parseSrc(t, "<?php "+tt.input, phpver.Latest)
		found := false
		for _, d := range bag.Items() {
			if d.Code == diag.CompatAbstractFinal && strings.HasSuffix(d.Message, "on an "+tt.what) {
				found = true
			}
		}
		if !found {
			t.Errorf("%q: expected final/abstract warning naming %q, got: %s", tt.input, tt.what, diagnosticsSummary(bag))
		}
	}
}

func TestUnionInGroupRecoversAsUnion(t *testing.T) {
	for _, src := range []string{"<?php function f((A|B)&C $x) {}", "<?php function f((A&B|C)&D $x) {}"} {
		prog, bag := parseSrc(t, src, phpver.Latest)
		if countCode(bag, diag.SynInvalidTypeNesting) != 1 {
			t.Fatalf("%q: expected one [%s], got: %s", src, diag.SynInvalidTypeNesting.ID(), diagnosticsSummary(bag))
		}
		fn := stmtsOf(prog)[0].(*ast.FunctionDecl)
		inter, ok := fn.Params.Params[0].Type.(*ast.IntersectionType)
		if !ok || len(inter.Types) != 2 {
			t.Fatalf("%q: expected two-member intersection, got %T", src, fn.Params.Params[0].Type)
		}
		u, ok := inter.Types[0].(*ast.UnionType)
		if !ok || len(u.Types) != 2 {
			t.Fatalf("%q: expected group recovered as two-member union, got %T", src, inter.Types[0])
		}
		checkSpans(t, prog)
	}
}
