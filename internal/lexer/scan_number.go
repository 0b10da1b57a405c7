package lexer

import (
	"wgslfuzz/internal/token"
)

// scanNumber accepts:
//   - hex 0x[0-9a-fA-F]+ with optional u/i suffix
//   - floats: digits '.' digits?, '.' digits, digits with exponent; optional f/h suffix
//   - integers: digits with optional u/i suffix
//
// An 'e' that is not followed by an exponent is left for the next token.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	c := &lx.cursor

	if c.Peek() == '0' && (c.PeekAt(1) == 'x' || c.PeekAt(1) == 'X') && isHex(c.PeekAt(2)) {
		c.Advance(2)
		for isHex(c.Peek()) {
			c.Bump()
		}
		lx.eatIntSuffix()
		return lx.emit(token.Number, start)
	}

	float := false
	for isDec(c.Peek()) {
		c.Bump()
	}
	if c.Eat('.') {
		float = true
		for isDec(c.Peek()) {
			c.Bump()
		}
	}
	if lx.eatExponent() {
		float = true
	}

	switch b := c.Peek(); {
	case c.EOF():
	case b == 'f' || b == 'h':
		c.Bump()
	case !float:
		lx.eatIntSuffix()
	}
	return lx.emit(token.Number, start)
}

func (lx *Lexer) eatExponent() bool {
	c := &lx.cursor
	m := c.Mark()
	if !c.Eat('e') && !c.Eat('E') {
		return false
	}
	if !c.Eat('+') {
		c.Eat('-')
	}
	if !isDec(c.Peek()) {
		c.Reset(m)
		return false
	}
	for isDec(c.Peek()) {
		c.Bump()
	}
	return true
}

func (lx *Lexer) eatIntSuffix() {
	if b := lx.cursor.Peek(); !lx.cursor.EOF() && (b == 'u' || b == 'i') {
		lx.cursor.Bump()
	}
}
