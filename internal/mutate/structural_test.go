package mutate_test

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"wgslfuzz/internal/anchor"
	"wgslfuzz/internal/lexer"
	"wgslfuzz/internal/mutate"
)

const redFragment = "fn main(@location(0) uv: vec2<f32>) -> @location(0) vec4<f32> {\n    return vec4<f32>(1.0, 0.0, 0.0, 1.0);\n}\n"

func chaosPatterns(expr string) []*regexp.Regexp {
	e := regexp.QuoteMeta(expr)
	num := `-?\d+\.\d+`
	return []*regexp.Regexp{
		regexp.MustCompile(fmt.Sprintf(`^\(%s\) \+ vec4<f32>\(%s, %s, %s, 0\.0\)$`, e, num, num, num)),
		regexp.MustCompile(fmt.Sprintf(`^abs\(\(%s\) - vec4<f32>\(0\.5\)\) \* 2\.0$`, e)),
		regexp.MustCompile(fmt.Sprintf(`^vec4<f32>\(\(%s\)\.brg, 1\.0\)$`, e)),
		regexp.MustCompile(fmt.Sprintf(`^mix\(%s, vec4<f32>\(0\.5 \+ 0\.5 \* sin\(u\.time\), 0\.5 \+ 0\.5 \* cos\(u\.time \* 1\.3\), 0\.5, 1\.0\), %s\)$`, e, num)),
		regexp.MustCompile(fmt.Sprintf(`^\(%s\) \* vec4<f32>\(%s, %s, %s, 1\.0\)$`, e, num, num, num)),
	}
}

func TestChaosWrapsReturnInOneTemplate(t *testing.T) {
	const original = "vec4<f32>(1.0, 0.0, 0.0, 1.0)"
	patterns := chaosPatterns(original)
	seen := make(map[int]bool)
	for seed := uint64(0); seed < 64; seed++ {
		out := assertPure(t, "Chaos", mutate.Chaos, redFragment, 1.0, seed)
		ret, ok := anchor.LocateReturn(out)
		if !ok {
			t.Fatalf("seed %d: return vanished", seed)
		}
		expr := ret.Expr(out)
		matches := 0
		for i, p := range patterns {
			if p.MatchString(expr) {
				matches++
				seen[i] = true
			}
		}
		if matches != 1 {
			t.Fatalf("seed %d: %q matched %d templates", seed, expr, matches)
		}
		if !strings.Contains(out.String(), "    return ") {
			t.Fatalf("seed %d: leading whitespace not preserved", seed)
		}
	}
	if len(seen) != mutate.ChaosTemplates {
		t.Fatalf("only saw templates %v", seen)
	}
}

func TestChaosInsertsSpaceWhenMissing(t *testing.T) {
	out := assertPure(t, "Chaos", mutate.Chaos, "fn main() { return(x); }", 1.0, 1)
	if !strings.Contains(out.String(), "return ") {
		t.Fatalf("missing space after return: %q", out.String())
	}
}

func TestReturnPassesWithoutReturnAreIdentity(t *testing.T) {
	srcs := []string{
		"",
		"fn main(@location(0) uv: vec2<f32>) { let a = uv; }",
		"struct S { a: f32 }",
	}
	for _, src := range srcs {
		for name, pass := range map[string]mutate.Pass{"Chaos": mutate.Chaos, "Structure": mutate.Structure} {
			out := assertPure(t, name, pass, src, 1.0, 7)
			if out.String() != src {
				t.Errorf("%s changed %q into %q", name, src, out.String())
			}
		}
	}
}

func TestStructureReplacesReturnWithGene(t *testing.T) {
	for seed := uint64(0); seed < 32; seed++ {
		out := assertPure(t, "Structure", mutate.Structure, shader, 1.0, seed)
		ret, ok := anchor.LocateReturn(out)
		if !ok {
			t.Fatalf("return vanished")
		}
		expr := ret.Expr(out)
		if !strings.HasPrefix(expr, "vec4<f32>(vec3<f32>(") && !strings.HasPrefix(expr, "vec4<f32>(palette(") {
			t.Fatalf("seed %d: unexpected expression %q", seed, expr)
		}
		if !strings.HasSuffix(expr, ", 1.0)") {
			t.Fatalf("seed %d: alpha not fixed: %q", seed, expr)
		}
	}
}

func TestStructureTargetsEntryReturnOnly(t *testing.T) {
	// The only return lives in a helper declared before the entry function.
	src := "fn helper() -> f32 { return 1.0; }\nfn main(@location(0) uv: vec2<f32>) { }\n"
	out := assertPure(t, "Structure", mutate.Structure, src, 1.0, 1)
	if out.String() != src {
		t.Fatalf("return before the entry body was rewritten: %q", out.String())
	}
}

func TestStructureNeedsCoordinate(t *testing.T) {
	src := "fn main(p: vec2<f32>) -> vec4<f32> { return vec4<f32>(p, 0.0, 1.0); }"
	if out := assertPure(t, "Structure", mutate.Structure, src, 1.0, 1); out.String() != src {
		t.Fatalf("Structure ran without a coordinate parameter")
	}
}

var letRe = regexp.MustCompile(`\{\n    let (uv_w\d+) = ([^;]+);\n`)

func TestGeometryRebindsCoordinate(t *testing.T) {
	const src = "fn main(@location(0) uv: vec2<f32>) -> @location(0) vec4<f32> {\n    let col = vec3<f32>(uv, 0.5);\n    let d = uv.x + length(uv);\n    return vec4<f32>(col * d, 1.0);\n}\n"
	for seed := uint64(0); seed < 40; seed++ {
		out := assertPure(t, "Geometry", mutate.Geometry, src, 1.0, seed).String()
		m := letRe.FindStringSubmatch(out)
		if m == nil {
			t.Fatalf("seed %d: no leading let statement in\n%s", seed, out)
		}
		name, rhs := m[1], m[2]
		if !strings.Contains(rhs, "uv") {
			t.Fatalf("seed %d: warp %q does not derive from uv", seed, rhs)
		}
		if !strings.Contains(out, "@location(0) uv: vec2<f32>") {
			t.Fatalf("seed %d: parameter declaration renamed", seed)
		}
		if !strings.Contains(out, "vec3<f32>("+name+", 0.5)") {
			t.Fatalf("seed %d: free reference not renamed:\n%s", seed, out)
		}
		if !strings.Contains(out, "length("+name+")") {
			t.Fatalf("seed %d: second free reference not renamed:\n%s", seed, out)
		}
		if !strings.Contains(out, "uv.x") {
			t.Fatalf("seed %d: member receiver must keep its name:\n%s", seed, out)
		}
	}
}

func TestGeometryLeavesOtherFunctionsAlone(t *testing.T) {
	out := assertPure(t, "Geometry", mutate.Geometry, shader, 1.0, 5).String()
	if !strings.Contains(out, "fn after(uv: vec2<f32>) -> f32 {\n    return uv.y + length(uv);") {
		t.Fatalf("function after main was rewritten:\n%s", out)
	}
}

func TestGeometryNameIsUnique(t *testing.T) {
	var b strings.Builder
	b.WriteString("fn main(@location(0) uv: vec2<f32>) {\n")
	for n := 0; n < 1000; n++ {
		fmt.Fprintf(&b, "    let uv_w%d = 0.0;\n", n)
	}
	b.WriteString("}\n")
	src := b.String()
	out := assertPure(t, "Geometry", mutate.Geometry, src, 1.0, 2).String()
	if !strings.Contains(out, "let uv_w1000 = ") {
		t.Fatalf("expected the first free suffix to be chosen")
	}
}

func TestGeometryWithoutAnchorsIsIdentity(t *testing.T) {
	for _, src := range []string{
		"fn main(p: vec2<f32>) { return; }",
		"fn other(uv: vec2<f32>) { }",
		"uv + uv",
	} {
		if out := assertPure(t, "Geometry", mutate.Geometry, src, 1.0, 1); out.String() != src {
			t.Errorf("Geometry changed %q", src)
		}
	}
}

func TestGeometryOutputRoundTrips(t *testing.T) {
	for seed := uint64(0); seed < 20; seed++ {
		out := assertPure(t, "Geometry", mutate.Geometry, redFragment, 0.7, seed).String()
		if lexer.Tokenize(out).String() != out {
			t.Fatalf("seed %d: output does not round trip", seed)
		}
	}
}

func TestColorPerturbsConstructorLiteralsOnly(t *testing.T) {
	const src = "let a = 3.5; let c = vec4<f32>(0.25, vec3f(1.0, 2.0, 0.5), 1.0); let b = 0.75;"
	const intensity = 0.3
	in := lexer.Tokenize(src)
	for seed := uint64(0); seed < 30; seed++ {
		out := assertPure(t, "Color", mutate.Color, src, intensity, seed)
		if len(out) != len(in) {
			t.Fatalf("token count changed")
		}
		for i := range in {
			if !in[i].IsFloatLiteral() {
				if in[i].Text != out[i].Text {
					t.Fatalf("token %q changed to %q", in[i].Text, out[i].Text)
				}
				continue
			}
			before, _ := strconv.ParseFloat(in[i].Text, 64)
			after := checkDecimal(t, out[i].Text)
			switch in[i].Text {
			case "3.5", "0.75":
				if in[i].Text != out[i].Text {
					t.Fatalf("literal outside a constructor changed: %q -> %q", in[i].Text, out[i].Text)
				}
			default:
				if math.Abs(after-before) > intensity+0.001 {
					t.Fatalf("literal %q moved too far: %q", in[i].Text, out[i].Text)
				}
			}
		}
	}
}

func TestColorParenthesizesNegatedLiterals(t *testing.T) {
	const src = "let c = vec3<f32>(1.0, -0.05, 0.0);"
	wrapped := false
	for seed := uint64(0); seed < 64; seed++ {
		s := assertPure(t, "Color", mutate.Color, src, 1.0, seed).String()
		if strings.Contains(s, "--") {
			t.Fatalf("seed %d: %q contains a decrement", seed, s)
		}
		wrapped = wrapped || strings.Contains(s, "-(-")
	}
	if !wrapped {
		t.Fatalf("expected some seed to wrap the negated literal")
	}
}

func TestColorSkipsTypeAnnotations(t *testing.T) {
	const src = "fn f() -> vec3<f32> { var x: vec4<f32> = y; }"
	if out := assertPure(t, "Color", mutate.Color, src, 1.0, 1); out.String() != src {
		t.Fatalf("Color changed a program without constructor calls")
	}
}

func TestPassesAreDeterministicForSeed(t *testing.T) {
	passes := map[string]mutate.Pass{
		"Numbers": mutate.Numbers, "Operators": mutate.Operators, "Builtins": mutate.Builtins,
		"Geometry": mutate.Geometry, "Color": mutate.Color, "Chaos": mutate.Chaos,
		"Swizzle": mutate.Swizzle, "Structure": mutate.Structure,
	}
	for name, pass := range passes {
		a := assertPure(t, name, pass, shader, 0.8, 42).String()
		b := assertPure(t, name, pass, shader, 0.8, 42).String()
		if a != b {
			t.Errorf("%s is not deterministic for a fixed seed", name)
		}
	}
}
