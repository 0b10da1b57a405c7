package mutate

import (
	"slices"

	"wgslfuzz/internal/rng"
	"wgslfuzz/internal/token"
)

var colorConstructors = []string{"vec3", "vec4", "vec3f", "vec4f"}

// constructorArgs returns the parentheses of the constructor call whose name
// is at i, skipping an optional <...> clause.
func constructorArgs(seq token.Seq, i int) (open, close int, ok bool) {
	j := seq.NextSignificant(i)
	if j >= 0 && seq[j].IsPunct("<") {
		for j++; j < len(seq) && !seq[j].IsPunct(">"); j++ {
			if seq[j].IsPunct("(") || seq[j].IsPunct(";") {
				return -1, -1, false
			}
		}
		j = seq.NextSignificant(j)
	}
	if j < 0 || !seq[j].IsPunct("(") {
		return -1, -1, false
	}
	close = seq.MatchClose(j)
	if close < 0 {
		return -1, -1, false
	}
	return j, close, true
}

// Color offsets every float literal inside vec3/vec4 constructor arguments by
// U(-intensity, +intensity). Literals in nested constructors move once.
func Color(seq token.Seq, intensity float64, r rng.Rand) token.Seq {
	out := seq.Clone()
	touched := make([]bool, len(out))
	for i := range out {
		if out[i].Kind != token.Identifier || !slices.Contains(colorConstructors, out[i].Text) {
			continue
		}
		open, close, ok := constructorArgs(out, i)
		if !ok {
			continue
		}
		for k := open + 1; k < close; k++ {
			if touched[k] || !out[k].IsFloatLiteral() {
				continue
			}
			touched[k] = true
			delta := rng.Uniform(r, -intensity, intensity)
			if text, ok := rewriteFloat(out[k].Text, func(v float64) float64 { return v + delta }); ok {
				out[k] = token.New(token.Number, text)
			}
		}
	}
	return wrapNegated(out)
}
