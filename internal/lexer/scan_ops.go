package lexer

import (
	"strings"
	"unicode/utf8"

	"wgslfuzz/internal/diag"
	"wgslfuzz/internal/token"
)

const singlePunct = "+-*/%=<>!&|^~.,:;(){}[]@?"

// scanPunctOrUnknown tries the two-character operators first, then the
// single-character set. Anything else becomes one Unknown token covering a
// whole UTF-8 rune (or one byte of invalid UTF-8).
func (lx *Lexer) scanPunctOrUnknown() token.Token {
	start := lx.cursor.Mark()

	switch {
	case lx.try2('-', '>'),
		lx.try2('=', '='),
		lx.try2('!', '='),
		lx.try2('<', '='),
		lx.try2('>', '='),
		lx.try2('&', '&'),
		lx.try2('|', '|'):
		return lx.emit(token.Punctuation, start)
	}

	ch := lx.cursor.Peek()
	if strings.IndexByte(singlePunct, ch) >= 0 {
		lx.cursor.Bump()
		return lx.emit(token.Punctuation, start)
	}

	size := 1
	if ch >= utf8.RuneSelf {
		_, size = utf8.DecodeRuneInString(lx.cursor.Src[lx.cursor.Off:])
	}
	lx.cursor.Advance(size)
	lx.report(diag.LexUnknownChar, start, "unknown character")
	return lx.emit(token.Unknown, start)
}
