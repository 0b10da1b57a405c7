package token

import "strings"

// Synthetic is the Offset of tokens that did not come from the lexed source.
const Synthetic = -1

// Token represents a single source token with its original offset.
type Token struct {
	Kind   Kind
	Text   string
	Offset int
}

// New builds a synthetic token.
func New(kind Kind, text string) Token {
	return Token{Kind: kind, Text: text, Offset: Synthetic}
}

// IsIdent reports whether the token is the identifier name.
func (t Token) IsIdent(name string) bool {
	return t.Kind == Identifier && t.Text == name
}

// IsPunct reports whether the token is the punctuation p.
func (t Token) IsPunct(p string) bool {
	return t.Kind == Punctuation && t.Text == p
}

// IsTrivia reports whether the token is whitespace or a comment.
func (t Token) IsTrivia() bool { return t.Kind.IsTrivia() }

// IsSynthetic reports whether the token was produced by a mutation.
func (t Token) IsSynthetic() bool { return t.Offset == Synthetic }

// IsFloatLiteral reports whether the token is a decimal floating point literal.
// Hex literals are never treated as floats.
func (t Token) IsFloatLiteral() bool {
	if t.Kind != Number {
		return false
	}
	s := t.Text
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return false
	}
	return strings.ContainsAny(s, ".eE") || strings.HasSuffix(s, "f") || strings.HasSuffix(s, "h")
}
