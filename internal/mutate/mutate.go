package mutate

import (
	"strconv"
	"strings"

	"wgslfuzz/internal/anchor"
	"wgslfuzz/internal/lexer"
	"wgslfuzz/internal/rng"
	"wgslfuzz/internal/synth"
	"wgslfuzz/internal/token"
)

// Pass is one category of mutation.
type Pass func(seq token.Seq, intensity float64, r rng.Rand) token.Seq

// synthetic lexes generated text into tokens marked as synthetic.
func synthetic(text string) token.Seq {
	seq := lexer.Tokenize(text)
	for i := range seq {
		seq[i].Offset = token.Synthetic
	}
	return seq
}

// rewriteFloat applies f to the value of a float literal, keeping any f/h
// suffix. ok is false when the literal cannot be parsed.
func rewriteFloat(text string, f func(float64) float64) (string, bool) {
	body, suffix := text, ""
	if n := len(text); n > 0 && (text[n-1] == 'f' || text[n-1] == 'h') {
		body, suffix = text[:n-1], text[n-1:]
	}
	v, err := strconv.ParseFloat(body, 64)
	if err != nil {
		return text, false
	}
	return synth.Float(f(v)) + suffix, true
}

// wrapNegated parenthesizes rewritten negative literals that directly follow
// a minus sign, so "-" "-0.2" never serializes as the decrement "--".
func wrapNegated(seq token.Seq) token.Seq {
	var out token.Seq
	for i, tok := range seq {
		if i > 0 && tok.Kind == token.Number && tok.IsSynthetic() &&
			strings.HasPrefix(tok.Text, "-") && seq[i-1].IsPunct("-") {
			if out == nil {
				out = make(token.Seq, 0, len(seq)+2)
				out = append(out, seq[:i]...)
			}
			out = append(out, token.New(token.Punctuation, "("), tok, token.New(token.Punctuation, ")"))
			continue
		}
		if out != nil {
			out = append(out, tok)
		}
	}
	if out == nil {
		return seq
	}
	return out
}

// replaceReturn swaps the expression of ret for expr. The whitespace between
// `return` and the expression is kept; a single space is inserted if there
// was none.
func replaceReturn(seq token.Seq, ret anchor.Return, expr string) token.Seq {
	repl := make(token.Seq, 0, ret.ExprStart-ret.Keyword+8)
	if ret.ExprStart == ret.Keyword+1 {
		repl = append(repl, token.New(token.Whitespace, " "))
	} else {
		repl = append(repl, seq[ret.Keyword+1:ret.ExprStart]...)
	}
	repl = append(repl, synthetic(expr)...)
	return seq.Splice(ret.Keyword+1, ret.ExprEnd, repl...)
}

// bodyIndent returns the whitespace to put before a statement inserted right
// after the brace at open, mirroring the indentation of the next line.
func bodyIndent(seq token.Seq, open int) string {
	if open+1 >= len(seq) || seq[open+1].Kind != token.Whitespace {
		return " "
	}
	ws := seq[open+1].Text
	nl := strings.LastIndexByte(ws, '\n')
	if nl < 0 {
		return " "
	}
	return "\n" + ws[nl+1:]
}
