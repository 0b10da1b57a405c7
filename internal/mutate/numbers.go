package mutate

import (
	"wgslfuzz/internal/rng"
	"wgslfuzz/internal/token"
)

// Numbers jitters float literals. Each literal is rewritten with probability
// intensity, either v + U(-0.5, 0.5) or v * U(0.5, 1.5), rounded to three
// decimals.
func Numbers(seq token.Seq, intensity float64, r rng.Rand) token.Seq {
	out := seq.Clone()
	for i := range out {
		if !out[i].IsFloatLiteral() || !rng.Chance(r, intensity) {
			continue
		}
		additive := rng.Chance(r, 0.5)
		delta := rng.Uniform(r, -0.5, 0.5)
		scale := rng.Uniform(r, 0.5, 1.5)
		text, ok := rewriteFloat(out[i].Text, func(v float64) float64 {
			if additive {
				return v + delta
			}
			return v * scale
		})
		if ok {
			out[i] = token.New(token.Number, text)
		}
	}
	return wrapNegated(out)
}
