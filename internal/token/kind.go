package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid is the zero value; the lexer never emits it.
	Invalid Kind = iota
	// Identifier covers names, keywords and built-in type names.
	Identifier
	// Number covers integer, hex and floating point literals with optional suffix.
	Number
	// Punctuation covers operators and delimiters.
	Punctuation
	// Whitespace is a run of spaces, tabs and newlines.
	Whitespace
	// Comment is a line or block comment including its delimiters.
	Comment
	// StringLiteral is a double-quoted string.
	StringLiteral
	// Unknown is a single character no other pattern matched.
	Unknown
)

var kindNames = [...]string{
	Invalid:       "Invalid",
	Identifier:    "Identifier",
	Number:        "Number",
	Punctuation:   "Punctuation",
	Whitespace:    "Whitespace",
	Comment:       "Comment",
	StringLiteral: "StringLiteral",
	Unknown:       "Unknown",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsTrivia reports whether tokens of this kind carry no syntax.
func (k Kind) IsTrivia() bool {
	return k == Whitespace || k == Comment
}
