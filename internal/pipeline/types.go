// Package pipeline applies the mutation passes to a shader in a fixed order.
package pipeline

import (
	"wgslfuzz/internal/mutate"
)

// PassName identifies one mutation pass.
type PassName string

const (
	// PassStructure replaces the entry function's output with a new gene.
	PassStructure PassName = "structure"
	// PassGeometry warps the coordinate variable.
	PassGeometry PassName = "geometry"
	// PassColor perturbs literals inside vec3/vec4 constructors.
	PassColor PassName = "color"
	// PassChaos wraps the final return expression.
	PassChaos PassName = "chaos"
	// PassNumbers jitters float literals.
	PassNumbers PassName = "numbers"
	// PassOperators swaps arithmetic operators.
	PassOperators PassName = "operators"
	// PassBuiltins swaps unary builtin names.
	PassBuiltins PassName = "builtins"
	// PassSwizzle permutes swizzle letters. It has no flag.
	PassSwizzle PassName = "swizzle"
)

// Gate decides whether an enabled stage runs on a given invocation.
type Gate uint8

const (
	// GateAlways runs the stage whenever it is enabled.
	GateAlways Gate = iota
	// GateBernoulli runs the stage with probability equal to the intensity.
	GateBernoulli
	// GateThreshold runs the stage when the intensity exceeds mutate.SwizzleThreshold.
	GateThreshold
)

// Stage binds a pass to its gate.
type Stage struct {
	Name PassName
	Pass mutate.Pass
	Gate Gate
}

// Stages lists the passes in application order.
var Stages = []Stage{
	{PassStructure, mutate.Structure, GateBernoulli},
	{PassGeometry, mutate.Geometry, GateBernoulli},
	{PassColor, mutate.Color, GateBernoulli},
	{PassChaos, mutate.Chaos, GateBernoulli},
	{PassNumbers, mutate.Numbers, GateAlways},
	{PassOperators, mutate.Operators, GateAlways},
	{PassBuiltins, mutate.Builtins, GateAlways},
	{PassSwizzle, mutate.Swizzle, GateThreshold},
}

// ParsePassName maps a flag-style name to a PassName.
func ParsePassName(s string) (PassName, bool) {
	for _, st := range Stages {
		if string(st.Name) == s {
			return st.Name, true
		}
	}
	return "", false
}
