package mutate

import (
	"wgslfuzz/internal/anchor"
	"wgslfuzz/internal/rng"
	"wgslfuzz/internal/synth"
	"wgslfuzz/internal/token"
)

// Structure discards the entry function's output and returns a freshly
// synthesized color gene instead. It needs the entry function, its
// coordinate parameter and a return statement inside its body.
func Structure(seq token.Seq, intensity float64, r rng.Rand) token.Seq {
	e, ok := anchor.Locate(seq)
	if !ok || !e.HasCoord() {
		return seq
	}
	ret, ok := anchor.LocateReturn(seq)
	if !ok || ret.Keyword < e.BodyOpen {
		return seq
	}
	gene := synth.New(r, e.Coord).Gene()
	return replaceReturn(seq, ret, "vec4<f32>("+gene+", 1.0)")
}
