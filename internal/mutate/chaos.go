package mutate

import (
	"fmt"

	"wgslfuzz/internal/anchor"
	"wgslfuzz/internal/rng"
	"wgslfuzz/internal/synth"
	"wgslfuzz/internal/token"
)

// ChaosTemplates is the number of wrappers Chaos chooses from.
const ChaosTemplates = 5

func chaosWrap(kind int, expr string, r rng.Rand) string {
	f := func(lo, hi float64) string { return synth.Float(rng.Uniform(r, lo, hi)) }
	switch kind {
	case 0: // additive tint
		return fmt.Sprintf("(%s) + vec4<f32>(%s, %s, %s, 0.0)", expr, f(0.05, 0.4), f(0.05, 0.4), f(0.05, 0.4))
	case 1: // centered, doubled absolute value
		return fmt.Sprintf("abs((%s) - vec4<f32>(0.5)) * 2.0", expr)
	case 2: // channel rotation
		return fmt.Sprintf("vec4<f32>((%s).brg, 1.0)", expr)
	case 3: // blend toward a time-varying color
		t := synth.TimeExpr
		return fmt.Sprintf("mix(%s, vec4<f32>(0.5 + 0.5 * sin(%s), 0.5 + 0.5 * cos(%s * 1.3), 0.5, 1.0), %s)", expr, t, t, f(0.2, 0.6))
	default: // per-channel multiply
		return fmt.Sprintf("(%s) * vec4<f32>(%s, %s, %s, 1.0)", expr, f(0.5, 1.5), f(0.5, 1.5), f(0.5, 1.5))
	}
}

// Chaos wraps the final return expression in one of the color templates.
// The original expression text is kept verbatim inside the wrapper.
func Chaos(seq token.Seq, intensity float64, r rng.Rand) token.Seq {
	ret, ok := anchor.LocateReturn(seq)
	if !ok {
		return seq
	}
	return replaceReturn(seq, ret, chaosWrap(r.IntN(ChaosTemplates), ret.Expr(seq), r))
}
