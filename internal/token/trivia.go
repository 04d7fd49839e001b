package token

// IsTrivia reports whether the kind is whitespace or a comment.
func (k Kind) IsTrivia() bool {
	return k >= Whitespace && k <= DocBlockComment
}

// IsComment reports whether the kind is one of the comment forms.
func (k Kind) IsComment() bool {
	return k >= SingleLineComment && k <= DocBlockComment
}

// IsDocBlock reports whether the token is a /** */ comment.
func (t Token) IsDocBlock() bool {
	return t.Kind == DocBlockComment
}
