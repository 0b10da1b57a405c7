package mutate

import (
	"slices"

	"wgslfuzz/internal/rng"
	"wgslfuzz/internal/token"
)

// UnaryBuiltins are single-argument functions whose result has the argument's
// type, so any one can stand in for another.
var UnaryBuiltins = []string{
	"sin", "cos", "tan", "abs", "fract", "floor", "ceil",
	"sign", "sqrt", "exp", "tanh", "saturate",
}

// Builtins replaces whitelisted function names with another whitelisted name.
func Builtins(seq token.Seq, intensity float64, r rng.Rand) token.Seq {
	out := seq.Clone()
	for i := range out {
		if out[i].Kind != token.Identifier || !slices.Contains(UnaryBuiltins, out[i].Text) {
			continue
		}
		if rng.Chance(r, intensity) {
			out[i] = token.New(token.Identifier, rng.Pick(r, UnaryBuiltins))
		}
	}
	return out
}
