package synth

import (
	"fmt"

	"wgslfuzz/internal/rng"
)

const (
	// TerminalProb is the chance of stopping early at any depth.
	TerminalProb = 0.15
	// TimeExpr is the uniform expression that advances with time.
	TimeExpr = "u.time"

	// GeneDepth is the depth of each channel in a vector gene.
	GeneDepth = 3
	// PaletteDepth is the depth of the palette argument.
	PaletteDepth = 4
)

// Generator synthesizes expressions over one coordinate variable.
// A Generator is not safe for concurrent use; sibling calls share only rng.
type Generator struct {
	rng   rng.Rand
	coord string
	calls int
}

func New(r rng.Rand, coord string) *Generator {
	return &Generator{rng: r, coord: coord}
}

// Calls returns how many ScalarExpr invocations this generator has made.
func (g *Generator) Calls() int { return g.calls }

// ScalarExpr returns a random f32 expression of at most depth nested levels.
func (g *Generator) ScalarExpr(depth int) string {
	g.calls++
	if depth <= 0 || rng.Chance(g.rng, TerminalProb) {
		return g.terminal()
	}
	switch rng.Weighted(g.rng, 0.35, 0.40, 0.25) {
	case 0:
		return g.unary(depth - 1)
	case 1:
		return g.binary(depth - 1)
	default:
		return g.ternary(depth - 1)
	}
}

func (g *Generator) terminal() string {
	c := g.coord
	switch g.rng.IntN(5) {
	case 0:
		return c + rng.Pick(g.rng, []string{".x", ".y"})
	case 1:
		return fmt.Sprintf("length(%s - vec2<f32>(0.5))", c)
	case 2:
		return TimeExpr
	case 3:
		return Float(rng.Uniform(g.rng, 0.1, 5.0))
	default:
		if rng.Chance(g.rng, 0.5) {
			return fmt.Sprintf("hash21(%s)", c)
		}
		return fmt.Sprintf("noise(%s * %s)", c, Float(rng.Uniform(g.rng, 1.0, 8.0)))
	}
}

func (g *Generator) unary(depth int) string {
	e := g.ScalarExpr(depth)
	switch g.rng.IntN(7) {
	case 0:
		return fmt.Sprintf("sin(%s)", e)
	case 1:
		return fmt.Sprintf("cos(%s)", e)
	case 2:
		return fmt.Sprintf("fract(%s)", e)
	case 3:
		return fmt.Sprintf("abs(%s)", e)
	case 4:
		return fmt.Sprintf("sqrt(abs(%s))", e)
	case 5:
		return fmt.Sprintf("exp(clamp(%s, -10.0, 10.0))", e)
	default:
		return fmt.Sprintf("clamp(%s, 0.0, 1.0)", e)
	}
}

func (g *Generator) binary(depth int) string {
	a := g.ScalarExpr(depth)
	b := g.ScalarExpr(depth)
	op := []string{"*", "+", "-"}[rng.Weighted(g.rng, 2, 1, 1)]
	return fmt.Sprintf("(%s %s %s)", a, op, b)
}

func (g *Generator) ternary(depth int) string {
	a := g.ScalarExpr(depth)
	b := g.ScalarExpr(depth)
	switch g.rng.IntN(3) {
	case 0:
		return fmt.Sprintf("mix(%s, %s, %s.y)", a, b, g.coord)
	case 1:
		return fmt.Sprintf("smoothstep(%s, %s, length(%s - vec2<f32>(0.5)))", a, b, g.coord)
	default:
		return fmt.Sprintf("smin(%s, %s, 0.3)", a, b)
	}
}

// Gene returns a vec3<f32> color expression: either three independent
// channels or a cosine palette driven by one synthesized scalar.
func (g *Generator) Gene() string {
	if rng.Chance(g.rng, 0.5) {
		return fmt.Sprintf("vec3<f32>(%s, %s, %s)",
			g.ScalarExpr(GeneDepth), g.ScalarExpr(GeneDepth), g.ScalarExpr(GeneDepth))
	}
	return fmt.Sprintf("palette(%s, %s, %s, %s, %s)",
		g.ScalarExpr(PaletteDepth),
		"vec3<f32>(0.5, 0.5, 0.5)",
		"vec3<f32>(0.5, 0.5, 0.5)",
		"vec3<f32>(1.0, 1.0, 1.0)",
		"vec3<f32>(0.0, 0.33, 0.67)",
	)
}
