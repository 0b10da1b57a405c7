package lexer

import (
	"wgslfuzz/internal/diag"
	"wgslfuzz/internal/token"
)

// scanIdent scans [A-Za-z_][A-Za-z0-9_]*. Keywords stay identifiers.
func (lx *Lexer) scanIdent() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	for isIdentContinue(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	return lx.emit(token.Identifier, start)
}

// scanString scans "..." with backslash escapes. A newline or EOF ends an
// unterminated literal without consuming the newline.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch b {
		case '"':
			lx.cursor.Bump()
			return lx.emit(token.StringLiteral, start)
		case '\\':
			lx.cursor.Bump()
			if lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
			continue
		case '\n':
			lx.report(diag.LexUnterminatedString, start, "newline in string literal")
			return lx.emit(token.StringLiteral, start)
		}
		lx.cursor.Bump()
	}
	lx.report(diag.LexUnterminatedString, start, "unterminated string literal")
	return lx.emit(token.StringLiteral, start)
}
