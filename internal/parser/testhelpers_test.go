package parser

import (
	"fmt"
	"strings"
	"testing"

	"phpfront/internal/ast"
	"phpfront/internal/diag"
	"phpfront/internal/lexer"
	"phpfront/internal/phpver"
	"phpfront/internal/source"
)

// parseSrc lexes and parses src targeting v; lexer and parser share one bag.
func parseSrc(t testing.TB, src string, v phpver.Version) (*ast.Program, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.php", []byte(src)))
	bag := diag.NewBag(0)
	rep := diag.BagReporter{Bag: bag}
	toks := lexer.Tokenize(file, lexer.Options{Reporter: rep})
	res := ParseFile(file, toks, Options{Version: v, Reporter: rep})
	if res.Program == nil {
		t.Fatalf("ParseFile returned nil program")
	}
	return res.Program, bag
}

// parseOK parses with the latest version and fails on any error diagnostic.
func parseOK(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, bag := parseSrc(t, src, phpver.Latest)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics for %q: %s", src, diagnosticsSummary(bag))
	}
	return prog
}

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func countCode(bag *diag.Bag, code diag.Code) int {
	n := 0
	for _, d := range bag.Items() {
		if d.Code == code {
			n++
		}
	}
	return n
}

func countErrors(bag *diag.Bag) int {
	n := 0
	for _, d := range bag.Items() {
		if d.Severity == diag.SevError {
			n++
		}
	}
	return n
}

// stmtsOf drops open/close tags so tests can index real statements.
func stmtsOf(prog *ast.Program) []ast.Stmt {
	var out []ast.Stmt
	for _, s := range prog.Statements {
		if _, ok := s.(*ast.Tag); ok {
			continue
		}
		out = append(out, s)
	}
	return out
}

// exprOf parses "<?php <src>;" and returns the single expression.
func exprOf(t *testing.T, src string) ast.Expr {
	t.Helper()
	prog := parseOK(t, "<?php "+src+";")
	stmts := stmtsOf(prog)
	if len(stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(stmts))
	}
	es, ok := stmts[0].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("expected expression statement, got %T", stmts[0])
	}
	return es.Expr
}

// sexpr renders an expression as an s-expression for precedence checks.
func sexpr(e ast.Expr) string {
	switch e := e.(type) {
	case *ast.Literal:
		return e.Raw
	case *ast.Variable:
		return "$" + e.Name
	case *ast.Name:
		return e.Text
	case *ast.Identifier:
		return e.Name
	case *ast.Binary:
		return fmt.Sprintf("(%s %s %s)", e.Op, sexpr(e.Left), sexpr(e.Right))
	case *ast.Unary:
		return fmt.Sprintf("(%s %s)", e.Op, sexpr(e.Operand))
	case *ast.Cast:
		return fmt.Sprintf("(%s %s)", e.Cast, sexpr(e.Expr))
	case *ast.IncDec:
		if e.Prefix {
			return fmt.Sprintf("(pre%s %s)", e.Op, sexpr(e.Operand))
		}
		return fmt.Sprintf("(post%s %s)", e.Op, sexpr(e.Operand))
	case *ast.Assign:
		op := e.Op.String()
		if e.ByRef {
			op += "&"
		}
		return fmt.Sprintf("(%s %s %s)", op, sexpr(e.Target), sexpr(e.Value))
	case *ast.Ternary:
		if e.Then == nil {
			return fmt.Sprintf("(?: %s %s)", sexpr(e.Cond), sexpr(e.Else))
		}
		return fmt.Sprintf("(? %s %s %s)", sexpr(e.Cond), sexpr(e.Then), sexpr(e.Else))
	case *ast.Paren:
		return sexpr(e.Expr)
	case *ast.Instanceof:
		return fmt.Sprintf("(instanceof %s %s)", sexpr(e.Expr), sexpr(e.Class))
	case *ast.Call:
		return fmt.Sprintf("(call %s%s)", sexpr(e.Callee), sargs(e.Args))
	case *ast.MethodCall:
		return fmt.Sprintf("(mcall %s %s%s)", sexpr(e.Object), sexpr(e.Method), sargs(e.Args))
	case *ast.PropertyFetch:
		return fmt.Sprintf("(prop %s %s)", sexpr(e.Object), sexpr(e.Prop))
	case *ast.Index:
		if e.Index == nil {
			return fmt.Sprintf("(index %s)", sexpr(e.Target))
		}
		return fmt.Sprintf("(index %s %s)", sexpr(e.Target), sexpr(e.Index))
	case *ast.Print:
		return fmt.Sprintf("(print %s)", sexpr(e.Expr))
	case *ast.Clone:
		return fmt.Sprintf("(clone %s)", sexpr(e.Expr))
	case *ast.New:
		return fmt.Sprintf("(new %s%s)", sexpr(e.Class), sargs(e.Args))
	}
	return fmt.Sprintf("<%s>", e.Kind())
}

func sargs(args *ast.ArgumentList) string {
	if args == nil {
		return ""
	}
	var sb strings.Builder
	for _, a := range args.Args {
		sb.WriteByte(' ')
		sb.WriteString(sexpr(a.Value))
	}
	return sb.String()
}
