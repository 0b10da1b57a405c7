package mutate

import (
	"wgslfuzz/internal/rng"
	"wgslfuzz/internal/token"
)

var arithmeticOps = []string{"+", "-", "*", "/"}

func isArithmetic(t token.Token) bool {
	if t.Kind != token.Punctuation {
		return false
	}
	for _, op := range arithmeticOps {
		if t.Text == op {
			return true
		}
	}
	return false
}

// Operators swaps arithmetic operators for a random one from the same set.
func Operators(seq token.Seq, intensity float64, r rng.Rand) token.Seq {
	out := seq.Clone()
	for i := range out {
		if isArithmetic(out[i]) && rng.Chance(r, intensity) {
			out[i] = token.New(token.Punctuation, rng.Pick(r, arithmeticOps))
		}
	}
	return out
}
