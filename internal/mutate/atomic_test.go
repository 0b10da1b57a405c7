package mutate_test

import (
	"slices"
	"strings"
	"testing"

	"wgslfuzz/internal/lexer"
	"wgslfuzz/internal/mutate"
	"wgslfuzz/internal/token"
)

func TestNumbersRewritesFloatsOnly(t *testing.T) {
	for seed := uint64(0); seed < 20; seed++ {
		out := assertPure(t, "Numbers", mutate.Numbers, shader, 1.0, seed)
		in := lexer.Tokenize(shader)
		if len(out) != len(in) {
			t.Fatalf("token count changed: %d -> %d", len(in), len(out))
		}
		for i := range in {
			if in[i].IsFloatLiteral() {
				if out[i].Kind != token.Number {
					t.Fatalf("literal %q became kind %v", in[i].Text, out[i].Kind)
				}
				checkDecimal(t, out[i].Text)
				continue
			}
			if in[i].Text != out[i].Text {
				t.Fatalf("non-float token %q changed to %q", in[i].Text, out[i].Text)
			}
		}
	}
}

func TestNumbersNormalizesNearZero(t *testing.T) {
	seen := false
	for seed := uint64(0); seed < 400; seed++ {
		out := assertPure(t, "Numbers", mutate.Numbers, "0.001 0.0004 0.0", 1.0, seed)
		for _, s := range floatTexts(out) {
			v := checkDecimal(t, s)
			if v == 0 {
				seen = true
				if s != "0.0" {
					t.Fatalf("zero rendered as %q", s)
				}
			}
		}
	}
	if !seen {
		t.Fatalf("expected at least one literal to land on zero")
	}
}

func TestNumbersKeepsSuffix(t *testing.T) {
	out := assertPure(t, "Numbers", mutate.Numbers, "2.0f", 1.0, 3)
	if s := out.String(); !strings.HasSuffix(s, "f") {
		t.Fatalf("suffix dropped: %q", s)
	}
}

func TestNumbersZeroIntensityIsIdentity(t *testing.T) {
	out := assertPure(t, "Numbers", mutate.Numbers, shader, 0, 1)
	if out.String() != shader {
		t.Fatalf("intensity 0 changed the program")
	}
}

func TestOperatorsStayInSet(t *testing.T) {
	in := lexer.Tokenize(shader)
	for seed := uint64(0); seed < 20; seed++ {
		out := assertPure(t, "Operators", mutate.Operators, shader, 1.0, seed)
		if len(out) != len(in) {
			t.Fatalf("token count changed")
		}
		for i := range in {
			if in[i].Kind == token.Punctuation && strings.Contains("+-*/", in[i].Text) && len(in[i].Text) == 1 {
				if !slices.Contains([]string{"+", "-", "*", "/"}, out[i].Text) {
					t.Fatalf("operator %q became %q", in[i].Text, out[i].Text)
				}
				continue
			}
			if in[i].Text != out[i].Text {
				t.Fatalf("token %q changed to %q", in[i].Text, out[i].Text)
			}
		}
		if !strings.Contains(out.String(), "->") {
			t.Fatalf("arrow must never be treated as an operator")
		}
	}
}

func TestBuiltinsStayInWhitelist(t *testing.T) {
	in := lexer.Tokenize(shader)
	changed := false
	for seed := uint64(0); seed < 20; seed++ {
		out := assertPure(t, "Builtins", mutate.Builtins, shader, 1.0, seed)
		for i := range in {
			if slices.Contains(mutate.UnaryBuiltins, in[i].Text) && in[i].Kind == token.Identifier {
				if !slices.Contains(mutate.UnaryBuiltins, out[i].Text) {
					t.Fatalf("builtin %q became %q", in[i].Text, out[i].Text)
				}
				changed = changed || in[i].Text != out[i].Text
				continue
			}
			if in[i].Text != out[i].Text {
				t.Fatalf("token %q changed to %q", in[i].Text, out[i].Text)
			}
		}
	}
	if !changed {
		t.Fatalf("no builtin was ever replaced")
	}
}

func TestSwizzlePermutesMembersOnly(t *testing.T) {
	src := "let xy = 1.0; let a = p.xyz + c.rgba + q.time + v.xr;"
	in := lexer.Tokenize(src)
	permuted := false
	for seed := uint64(0); seed < 30; seed++ {
		out := assertPure(t, "Swizzle", mutate.Swizzle, src, 1.0, seed)
		for i := range in {
			a, b := in[i].Text, out[i].Text
			switch a {
			case "xyz", "rgba":
				sa, sb := []byte(a), []byte(b)
				slices.Sort(sa)
				slices.Sort(sb)
				if string(sa) != string(sb) {
					t.Fatalf("%q is not a permutation of %q", b, a)
				}
				permuted = permuted || a != b
			default:
				if a != b {
					t.Fatalf("token %q changed to %q", a, b)
				}
			}
		}
	}
	if !permuted {
		t.Fatalf("no swizzle was permuted")
	}
}

func TestNumbersNeverEmitsDecrement(t *testing.T) {
	const src = "let a = -0.1; let b = x-0.2;"
	wrapped := false
	for seed := uint64(0); seed < 64; seed++ {
		out := assertPure(t, "Numbers", mutate.Numbers, src, 1.0, seed)
		s := out.String()
		if strings.Contains(s, "--") {
			t.Fatalf("seed %d: %q contains a decrement", seed, s)
		}
		if strings.Contains(s, "-(-") {
			wrapped = true
		}
		for _, lit := range floatTexts(out) {
			checkDecimal(t, lit)
		}
	}
	if !wrapped {
		t.Fatalf("expected some seed to turn a negated literal negative")
	}
}

func TestNumbersHugeLiteralStaysFinite(t *testing.T) {
	for seed := uint64(0); seed < 8; seed++ {
		out := assertPure(t, "Numbers", mutate.Numbers, "let a = 1e306;", 1.0, seed)
		lits := floatTexts(out)
		if len(lits) != 1 {
			t.Fatalf("seed %d: literals %v", seed, lits)
		}
		if v := checkDecimal(t, lits[0]); v < 4e305 {
			t.Fatalf("seed %d: %q lost its magnitude", seed, lits[0])
		}
	}
}
