package mutate

import (
	"fmt"

	"wgslfuzz/internal/anchor"
	"wgslfuzz/internal/rng"
	"wgslfuzz/internal/synth"
	"wgslfuzz/internal/token"
)

// GeometryTemplates is the number of coordinate warps Geometry chooses from.
const GeometryTemplates = 5

// warpStatement renders template kind as `let name = <warp of coord>;`.
func warpStatement(kind int, coord, name string, intensity float64, r rng.Rand) string {
	t := synth.TimeExpr
	var rhs string
	switch kind {
	case 0: // rotate about the center by time
		s := synth.Float(rng.Uniform(r, 0.2, 1.5))
		rhs = fmt.Sprintf("mat2x2<f32>(cos(%[1]s * %[2]s), -sin(%[1]s * %[2]s), sin(%[1]s * %[2]s), cos(%[1]s * %[2]s)) * (%[3]s - vec2<f32>(0.5)) + vec2<f32>(0.5)", t, s, coord)
	case 1: // scale with a drifting offset
		k := synth.Float(rng.Uniform(r, 0.5, 3.0))
		s := synth.Float(rng.Uniform(r, 0.3, 2.0))
		a := synth.Float(rng.Uniform(r, 0.05, 0.3) * intensity)
		rhs = fmt.Sprintf("%s * %s + vec2<f32>(sin(%s * %s), cos(%s * %s)) * %s", coord, k, t, s, t, s, a)
	case 2: // mirror fold
		rhs = fmt.Sprintf("abs(%s - vec2<f32>(0.5)) * 2.0", coord)
	case 3: // tiling
		k := synth.Float(float64(2 + r.IntN(5)))
		rhs = fmt.Sprintf("fract(%s * %s)", coord, k)
	default: // hash jitter
		k := synth.Float(rng.Uniform(r, 4.0, 32.0))
		a := synth.Float(rng.Uniform(r, 0.01, 0.1) * intensity)
		rhs = fmt.Sprintf("%[1]s + (vec2<f32>(hash21(%[1]s * %[2]s), hash21(%[1]s * %[2]s + vec2<f32>(1.7))) - vec2<f32>(0.5)) * %[3]s", coord, k, a)
	}
	return fmt.Sprintf("let %s = %s;", name, rhs)
}

// uniqueName returns coord_wN where N makes the name unused in idents.
func uniqueName(coord string, idents map[string]struct{}, r rng.Rand) string {
	n := r.IntN(1000)
	for {
		name := fmt.Sprintf("%s_w%d", coord, n)
		if _, taken := idents[name]; !taken {
			return name
		}
		n++
	}
}

// isFreeReference reports whether the identifier at i is a bare use of the
// variable: not a member name (`a.uv`) and not a member receiver (`uv.x`).
func isFreeReference(seq token.Seq, i int) bool {
	if p := seq.PrevSignificant(i); p >= 0 && seq[p].IsPunct(".") {
		return false
	}
	if n := seq.NextSignificant(i); n >= 0 && seq[n].IsPunct(".") {
		return false
	}
	return true
}

// Geometry binds a warped copy of the coordinate variable as the first
// statement of the entry function and points later free references at it.
func Geometry(seq token.Seq, intensity float64, r rng.Rand) token.Seq {
	e, ok := anchor.Locate(seq)
	if !ok || !e.HasCoord() {
		return seq
	}
	name := uniqueName(e.Coord, seq.Idents(), r)
	stmt := warpStatement(r.IntN(GeometryTemplates), e.Coord, name, intensity, r)

	insert := make(token.Seq, 0, 64)
	insert = append(insert, token.New(token.Whitespace, bodyIndent(seq, e.BodyOpen)))
	insert = append(insert, synthetic(stmt)...)

	end := seq.MatchClose(e.BodyOpen)
	if end < 0 {
		end = len(seq)
	}
	body := seq[e.BodyOpen+1 : end].Clone()
	for i := range body {
		if body[i].IsIdent(e.Coord) && isFreeReference(body, i) {
			body[i] = token.New(token.Identifier, name)
		}
	}

	out := make(token.Seq, 0, len(seq)+len(insert))
	out = append(out, seq[:e.BodyOpen+1]...)
	out = append(out, insert...)
	out = append(out, body...)
	out = append(out, seq[end:]...)
	return out
}
