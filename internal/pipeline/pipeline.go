package pipeline

import (
	"wgslfuzz/internal/lexer"
	"wgslfuzz/internal/mutate"
	"wgslfuzz/internal/rng"
	"wgslfuzz/internal/token"
)

// Fuzz lexes src once, applies the eligible passes and serializes the result.
// It never fails: when no anchor matches, the text comes back unchanged.
func Fuzz(src string, cfg Config, r rng.Rand) string {
	out, _ := Apply(lexer.Tokenize(src), cfg, r)
	return out.String()
}

// Apply threads seq through Stages and returns the final sequence together
// with the names of the passes that ran.
func Apply(seq token.Seq, cfg Config, r rng.Rand) (token.Seq, []PassName) {
	var ran []PassName
	for _, st := range Stages {
		if !eligible(st, cfg, r) {
			continue
		}
		seq = st.Pass(seq, cfg.Intensity, r)
		ran = append(ran, st.Name)
	}
	return seq, ran
}

// eligible draws the gate of st. The Bernoulli draw happens only for enabled
// stages, so disabled passes consume nothing from r.
func eligible(st Stage, cfg Config, r rng.Rand) bool {
	if !cfg.Enabled(st.Name) {
		return false
	}
	switch st.Gate {
	case GateBernoulli:
		return rng.Chance(r, cfg.Intensity)
	case GateThreshold:
		return cfg.Intensity > mutate.SwizzleThreshold
	default:
		return true
	}
}
