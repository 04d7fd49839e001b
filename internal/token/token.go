package token

import (
	"phpfront/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsLiteral reports whether the token is a self-contained number or string literal.
func (t Token) IsLiteral() bool { return t.Kind.IsLiteral() }

// IsKeyword reports whether the token is a reserved word.
func (t Token) IsKeyword() bool { return t.Kind.IsKeyword() }

// IsTrivia reports whether the token carries no grammar meaning.
func (t Token) IsTrivia() bool { return t.Kind.IsTrivia() }

// Is reports whether t is an Ident spelled name, ignoring case.
// Contextual keywords (enum, from, mixed, ...) are checked this way.
func (t Token) Is(name string) bool {
	return t.Kind == Ident && len(t.Text) == len(name) && equalFold(t.Text, name)
}

func equalFold(a, b string) bool {
	for i := range len(a) {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

func (k Kind) IsLiteral() bool {
	switch k {
	case IntLit, FloatLit, StringLit:
		return true
	default:
		return false
	}
}

func (k Kind) IsKeyword() bool {
	return k > keywordStart && k < keywordEnd
}

func (k Kind) IsMagicConst() bool {
	return k > magicStart && k < magicEnd
}

// IsName reports whether k is one of the name kinds (plain or qualified).
func (k Kind) IsName() bool {
	switch k {
	case Ident, QualifiedIdent, FullyQualifiedIdent, RelativeIdent:
		return true
	default:
		return false
	}
}

// IsSemiReserved reports whether k may be used as a member name
// (after ->, ::, in method and constant declarations, as a named argument).
func (k Kind) IsSemiReserved() bool {
	return k == Ident || k.IsKeyword() || k.IsMagicConst()
}

func (k Kind) IsCast() bool {
	return k >= IntCast && k <= VoidCast
}

// IsAssignOp reports whether k is "=" or a compound assignment.
func (k Kind) IsAssignOp() bool {
	return k >= Assign && k <= QuestionQuestionAssign
}

// IsModifier reports whether k can start a member modifier list.
func (k Kind) IsModifier() bool {
	switch k {
	case KwPublic, KwProtected, KwPrivate, KwStatic, KwAbstract, KwFinal, KwReadonly, KwVar,
		KwPublicSet, KwProtectedSet, KwPrivateSet:
		return true
	default:
		return false
	}
}
