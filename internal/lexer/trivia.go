package lexer

import (
	"wgslfuzz/internal/diag"
	"wgslfuzz/internal/token"
)

// scanWhitespace coalesces spaces, tabs and newlines into one token.
func (lx *Lexer) scanWhitespace() token.Token {
	start := lx.cursor.Mark()
	for isSpace(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	return lx.emit(token.Whitespace, start)
}

// scanComment handles "//..." up to (not including) the newline and
// nested "/* ... */". An unterminated block comment runs to EOF.
func (lx *Lexer) scanComment() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '/'
	if lx.cursor.Bump() == '/' {
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		return lx.emit(token.Comment, start)
	}

	depth := 1
	for !lx.cursor.EOF() && depth > 0 {
		if b0, b1, ok := lx.cursor.Peek2(); ok {
			if b0 == '/' && b1 == '*' {
				lx.cursor.Advance(2)
				depth++
				continue
			}
			if b0 == '*' && b1 == '/' {
				lx.cursor.Advance(2)
				depth--
				continue
			}
		}
		lx.cursor.Bump()
	}
	if depth > 0 {
		lx.report(diag.LexUnterminatedBlockComment, start, "unterminated block comment")
	}
	return lx.emit(token.Comment, start)
}
