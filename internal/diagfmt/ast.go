package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"phpfront/internal/ast"
	"phpfront/internal/source"
	"phpfront/internal/token"
)

type ASTNodeOutput struct {
	Type     string          `json:"type"`
	Detail   string          `json:"detail,omitempty"`
	Span     source.Span     `json:"span"`
	Children []ASTNodeOutput `json:"children,omitempty"`
}

// BuildASTOutput converts the subtree rooted at n, children in source order.
func BuildASTOutput(n ast.Node) ASTNodeOutput {
	out := ASTNodeOutput{
		Type:   n.Kind().String(),
		Detail: nodeDetail(n),
		Span:   n.Span(),
	}
	for _, c := range ast.Children(n) {
		out.Children = append(out.Children, BuildASTOutput(c))
	}
	return out
}

func FormatASTJSON(w io.Writer, prog *ast.Program) error {
	if prog == nil {
		return fmt.Errorf("nil program")
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildASTOutput(prog))
}

// FormatASTPretty печатает дерево с рамками ├─ └─, по узлу на строку.
func FormatASTPretty(w io.Writer, prog *ast.Program, fs *source.FileSet, mode PathMode) error {
	if prog == nil {
		return fmt.Errorf("nil program")
	}
	header := "Program"
	if f := fileOf(fs, prog.Span()); f != nil {
		header = formatPath(fs, f, mode)
	}
	if _, err := fmt.Fprintf(w, "%s (span: %s)\n", header, formatSpan(prog.Span(), fs)); err != nil {
		return err
	}
	kids := ast.Children(prog)
	for i, c := range kids {
		writeTree(w, c, fs, "", i == len(kids)-1)
	}
	return nil
}

func writeTree(w io.Writer, n ast.Node, fs *source.FileSet, prefix string, last bool) {
	branch, next := "├─ ", "│  "
	if last {
		branch, next = "└─ ", "   "
	}
	label := n.Kind().String()
	if d := nodeDetail(n); d != "" {
		label += " " + d
	}
	fmt.Fprintf(w, "%s%s%s (span: %s)\n", prefix, branch, label, formatSpan(n.Span(), fs))

	kids := ast.Children(n)
	for i, c := range kids {
		writeTree(w, c, fs, prefix+next, i == len(kids)-1)
	}
}

func formatSpan(sp source.Span, fs *source.FileSet) string {
	f := fileOf(fs, sp)
	if f == nil {
		return fmt.Sprintf("%d..%d", sp.Start, sp.End)
	}
	start, end := f.LineCol(min(sp.Start, f.Len())), f.LineCol(min(sp.End, f.Len()))
	return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
}

// nodeDetail: короткое описание узла помимо вида: имя, оператор, литерал.
func nodeDetail(n ast.Node) string {
	switch n := n.(type) {
	case *ast.Identifier:
		return n.Name
	case *ast.Name:
		return n.Text
	case *ast.Variable:
		return "$" + n.Name
	case *ast.Literal:
		return n.Raw
	case *ast.StringFragment:
		return strconv.Quote(n.Raw)
	case *ast.MagicConst:
		return n.Tok.String()
	case *ast.Interpolated:
		if n.Label != "" {
			return n.Label
		}
	case *ast.Binary:
		return n.Op.String()
	case *ast.Unary:
		return n.Op.String()
	case *ast.Assign:
		if n.ByRef {
			return n.Op.String() + " &"
		}
		return n.Op.String()
	case *ast.IncDec:
		if n.Prefix {
			return "prefix " + n.Op.String()
		}
		return "postfix " + n.Op.String()
	case *ast.Cast:
		return n.Cast.String()
	case *ast.Tag:
		return n.Tok.String()
	case *ast.InlineHTML:
		return strconv.Quote(n.Text)
	case *ast.Use:
		if n.Tok != token.Invalid {
			return n.Tok.String()
		}
	case *ast.Argument:
		switch {
		case n.Spread:
			return "..."
		case n.Name != nil:
			return n.Name.Name + ":"
		}
	case *ast.ArgumentList:
		if n.Callable {
			return "(...)"
		}
	case *ast.Parameter:
		return joinFlags(modifiers(n.Modifiers), flag(n.ByRef, "&"), flag(n.Variadic, "..."))
	case *ast.FunctionDecl:
		return flag(n.ByRef, "&")
	case *ast.ClassDecl:
		return modifiers(n.Modifiers)
	case *ast.MethodDecl:
		return joinFlags(modifiers(n.Modifiers), flag(n.ByRef, "&"))
	case *ast.PropertyDecl:
		return modifiers(n.Modifiers)
	case *ast.ClassConstDecl:
		return modifiers(n.Modifiers)
	case *ast.PropertyHook:
		return joinFlags(modifiers(n.Modifiers), flag(n.ByRef, "&"))
	case *ast.Echo:
		return flag(n.FromTag, "<?=")
	}
	return ""
}

func modifiers(ms ast.Modifiers) string {
	parts := make([]string, len(ms))
	for i, m := range ms {
		parts[i] = m.Tok.String()
	}
	return strings.Join(parts, " ")
}

func flag(on bool, s string) string {
	if on {
		return s
	}
	return ""
}

func joinFlags(parts ...string) string {
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}
