package lexer

import (
	"wgslfuzz/internal/token"
)

type Lexer struct {
	cursor Cursor
	opts   Options
}

func New(src string, opts Options) *Lexer {
	return &Lexer{
		cursor: NewCursor(src),
		opts:   opts,
	}
}

// Tokenize lexes src completely. The result always covers every input byte.
func Tokenize(src string) token.Seq {
	return TokenizeWith(src, Options{})
}

// TokenizeWith lexes src, sending soft errors to opts.Reporter.
func TokenizeWith(src string, opts Options) token.Seq {
	lx := New(src, opts)
	out := make(token.Seq, 0, len(src)/3+1)
	for {
		tok, ok := lx.Next()
		if !ok {
			return out
		}
		out = append(out, tok)
	}
}

// Next returns the next token. ok is false once the input is exhausted.
// Patterns are tried in priority order: comment, whitespace, number,
// identifier, string, punctuation; anything else is a one-character Unknown.
func (lx *Lexer) Next() (tok token.Token, ok bool) {
	if lx.cursor.EOF() {
		return token.Token{}, false
	}
	ch := lx.cursor.Peek()

	switch {
	case ch == '/' && (lx.cursor.PeekAt(1) == '/' || lx.cursor.PeekAt(1) == '*'):
		return lx.scanComment(), true
	case isSpace(ch):
		return lx.scanWhitespace(), true
	case isDec(ch):
		return lx.scanNumber(), true
	case ch == '.' && isDec(lx.cursor.PeekAt(1)):
		return lx.scanNumber(), true
	case isIdentStart(ch):
		return lx.scanIdent(), true
	case ch == '"':
		return lx.scanString(), true
	default:
		return lx.scanPunctOrUnknown(), true
	}
}

func (lx *Lexer) emit(kind token.Kind, start Mark) token.Token {
	return token.Token{
		Kind:   kind,
		Text:   lx.cursor.TextFrom(start),
		Offset: int(start),
	}
}
