package mutate_test

import (
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"wgslfuzz/internal/lexer"
	"wgslfuzz/internal/mutate"
	"wgslfuzz/internal/rng"
	"wgslfuzz/internal/token"
)

const shader = `fn shade(x: f32) -> f32 {
    return sin(x) * 0.5 + 0.5;
}

@fragment
fn main(@location(0) uv: vec2<f32>) -> @location(0) vec4<f32> {
    let col = vec3<f32>(uv, 0.25) * 2.0;
    let d = uv.x - 1.5 / 3;
    let t = abs(fract(d * 4.0));
    return vec4<f32>(col.rgb * shade(t), 1.0);
}

fn after(uv: vec2<f32>) -> f32 {
    return uv.y + length(uv);
}
`

// assertPure runs pass and fails if it wrote to its input.
func assertPure(t *testing.T, name string, pass mutate.Pass, src string, intensity float64, seed uint64) token.Seq {
	t.Helper()
	in := lexer.Tokenize(src)
	snapshot := in.Clone()
	out := pass(in, intensity, rng.New(seed))
	if diff := cmp.Diff(snapshot, in); diff != "" {
		t.Fatalf("%s mutated its input (-before +after):\n%s", name, diff)
	}
	return out
}

func floatTexts(seq token.Seq) []string {
	var out []string
	for _, tok := range seq {
		if tok.IsFloatLiteral() {
			out = append(out, tok.Text)
		}
	}
	return out
}

func checkDecimal(t *testing.T, s string) float64 {
	t.Helper()
	s = strings.TrimRight(s, "fh")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		t.Fatalf("literal %q is not a finite decimal", s)
	}
	dot := strings.IndexByte(s, '.')
	if dot < 0 || len(s)-dot-1 > 3 {
		t.Fatalf("literal %q must have a point and at most three decimals", s)
	}
	return v
}

func significantTexts(seq token.Seq) []string {
	var out []string
	for _, tok := range seq {
		if !tok.IsTrivia() {
			out = append(out, tok.Text)
		}
	}
	return out
}
