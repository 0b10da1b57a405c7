package mutate

import (
	"strings"

	"wgslfuzz/internal/rng"
	"wgslfuzz/internal/token"
)

// SwizzleThreshold is the intensity above which the swizzle pass runs even
// though it has no flag of its own.
const SwizzleThreshold = 0.15

func isSwizzle(s string) bool {
	if len(s) < 2 || len(s) > 4 {
		return false
	}
	for _, set := range []string{"xyzw", "rgba"} {
		ok := true
		for i := 0; i < len(s); i++ {
			if strings.IndexByte(set, s[i]) < 0 {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

// Swizzle permutes the component letters of member accesses like .xy or .rgb.
func Swizzle(seq token.Seq, intensity float64, r rng.Rand) token.Seq {
	out := seq.Clone()
	for i := range out {
		if out[i].Kind != token.Identifier || !isSwizzle(out[i].Text) {
			continue
		}
		if p := out.PrevSignificant(i); p < 0 || !out[p].IsPunct(".") {
			continue
		}
		if !rng.Chance(r, intensity) {
			continue
		}
		b := []byte(out[i].Text)
		for j := len(b) - 1; j > 0; j-- {
			k := r.IntN(j + 1)
			b[j], b[k] = b[k], b[j]
		}
		out[i] = token.New(token.Identifier, string(b))
	}
	return out
}
