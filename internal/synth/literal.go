package synth

import (
	"math"
	"strconv"
)

// Float formats v as a WGSL float literal rounded to three decimals.
// Values within 0.001 of zero become "0.0"; the result always contains a '.'.
// Magnitudes too large to scale by 1000 have no fractional digits and are
// printed as is.
func Float(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) < 0.001 {
		return "0.0"
	}
	r := v
	if scaled := v * 1000; !math.IsInf(scaled, 0) {
		r = math.Round(scaled) / 1000
	}
	s := strconv.FormatFloat(r, 'f', -1, 64)
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			return s
		}
	}
	return s + ".0"
}
