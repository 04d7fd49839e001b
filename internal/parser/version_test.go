package parser

import (
	"testing"

	"phpfront/internal/ast"
	"phpfront/internal/diag"
	"phpfront/internal/phpver"
)

func TestFeatureGates(t *testing.T) {
	tests := []struct {
		feature phpver.Feature
		input   string
	}{
		{phpver.Enums, "enum E {}"},
		{phpver.ReadonlyProperties, "class A { public readonly int $x; }"},
		{phpver.NeverType, "function f(): never {}"},
		{phpver.PureIntersectionTypes, "function f(A&B $x) {}"},
		{phpver.FirstClassCallable, "$f = strlen(...);"},
		{phpver.NewInInitializers, "function f($x = new A) {}"},
		{phpver.ExplicitOctal, "$a = 0o17;"},
		{phpver.FinalClassConstants, "class A { final public const X = 1; }"},
		{phpver.ReadonlyClasses, "readonly class A {}"},
		{phpver.DNFTypes, "function f((A&B)|null $x) {}"},
		{phpver.StandaloneNullFalseTrue, "function f(): null {}"},
		{phpver.ConstantsInTraits, "trait T { const X = 1; }"},
		{phpver.TypedClassConstants, "class A { const int X = 1; }"},
		{phpver.DynamicClassConstantFetch, "$a = A::{$name};"},
		{phpver.PropertyHooks, "class A { public int $x { get => 1; } }"},
		{phpver.AsymmetricVisibility, "class A { public private(set) int $x; }"},
		{phpver.NewWithoutParentheses, "$a = new A()->b();"},
		{phpver.PipeOperator, "$a = $b |> strlen(...);"},
	}

	for _, tt := range tests {
		t.Run(tt.feature.String(), func(t *testing.T) {
			src := "<?php " + tt.input
			since := tt.feature.Since()

			_, bag := parseSrc(t, src, since-1)
			if got := countCode(bag, diag.CompatFeatureUnavailable); got != 1 {
				t.Errorf("at %s: expected one compat warning, got %d: %s", since-1, got, diagnosticsSummary(bag))
			}
			if bag.HasErrors() {
				t.Errorf("at %s: gate must not be an error: %s", since-1, diagnosticsSummary(bag))
			}

			_, bag = parseSrc(t, src, since)
			if got := countCode(bag, diag.CompatFeatureUnavailable); got != 0 {
				t.Errorf("at %s: expected no compat warning, got %s", since, diagnosticsSummary(bag))
			}
		})
	}
}

func TestVersionDoesNotChangeTree(t *testing.T) {
	src := `<?php
enum Status: int { case On = 1; }
final class A {
    public function __construct(public readonly int $x = 0) {}
    public function f(): never { throw new E(); }
}
$x = new A()->f(...);
`
	shape := func(v phpver.Version) []ast.Kind {
		prog, _ := parseSrc(t, src, v)
		var kinds []ast.Kind
		ast.Inspect(prog, func(n ast.Node) bool {
			kinds = append(kinds, n.Kind())
			return true
		})
		return kinds
	}

	old, latest := shape(phpver.PHP80), shape(phpver.Latest)
	if len(old) != len(latest) {
		t.Fatalf("node count differs: %d vs %d", len(old), len(latest))
	}
	for i := range old {
		if old[i] != latest[i] {
			t.Fatalf("node %d differs: %s vs %s", i, old[i], latest[i])
		}
	}
}

func TestInvalidVersionFallsBackToLatest(t *testing.T) {
	_, bag := parseSrc(t, "<?php $a = $b |> f(...);", phpver.Version(0))
	if got := countCode(bag, diag.CompatFeatureUnavailable); got != 0 {
		t.Errorf("zero version should mean latest, got %s", diagnosticsSummary(bag))
	}
}
