package token_test

import (
	"testing"

	"phpfront/internal/token"
)

func TestKindClasses(t *testing.T) {
	for _, k := range []token.Kind{token.Whitespace, token.SingleLineComment, token.HashComment, token.MultiLineComment, token.DocBlockComment} {
		if !k.IsTrivia() {
			t.Fatalf("%v should be trivia", k)
		}
	}
	for _, k := range []token.Kind{token.InlineText, token.OpenTag, token.HashLBracket, token.Variable, token.EOF} {
		if k.IsTrivia() {
			t.Fatalf("%v must NOT be trivia", k)
		}
	}
	if token.Whitespace.IsComment() || !token.DocBlockComment.IsComment() {
		t.Fatal("IsComment misclassifies")
	}
	for _, k := range []token.Kind{token.Assign, token.DotAssign, token.QuestionQuestionAssign, token.StarStarAssign} {
		if !k.IsAssignOp() {
			t.Fatalf("%v should be an assignment operator", k)
		}
	}
	if token.EqEq.IsAssignOp() || token.FatArrow.IsAssignOp() {
		t.Fatal("comparison operators are not assignments")
	}
	if !token.IntCast.IsCast() || !token.VoidCast.IsCast() || token.LParen.IsCast() {
		t.Fatal("IsCast misclassifies")
	}
	if !token.KwClass.IsKeyword() || !token.KwPrivateSet.IsKeyword() || token.Ident.IsKeyword() || token.MagicDir.IsKeyword() {
		t.Fatal("IsKeyword misclassifies")
	}
	if !token.MagicDir.IsMagicConst() || !token.KwList.IsSemiReserved() || token.Variable.IsSemiReserved() {
		t.Fatal("magic/semi-reserved misclassified")
	}
}

func TestKindString(t *testing.T) {
	tests := map[token.Kind]string{
		token.Spaceship:     "<=>",
		token.KwFunction:    "function",
		token.MagicClass:    "__CLASS__",
		token.Variable:      "Variable",
		token.NullsafeArrow: "?->",
		token.PipeGt:        "|>",
	}
	for k, want := range tests {
		if got := k.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
	if got := token.Kind(250).String(); got != "Kind(250)" {
		t.Errorf("unknown kind String() = %q", got)
	}
}

func TestTokenIsContextual(t *testing.T) {
	tok := token.Token{Kind: token.Ident, Text: "ENUM"}
	if !tok.Is("enum") {
		t.Error("contextual keyword match must ignore case")
	}
	if tok.Is("enu") || (token.Token{Kind: token.StringLit, Text: "enum"}).Is("enum") {
		t.Error("Is must match only identifiers of the same spelling")
	}
}
