// Package synth fabricates new WGSL expressions over a coordinate variable.
//
// ScalarExpr is a depth-bounded recursive grammar: every recursive branch
// strictly decreases depth, so a call at depth d makes at most 2^(d+1)-1
// invocations regardless of history. Gene packs synthesized scalars into a
// vec3<f32> color.
//
// The generated text refers to helpers defined by the preset preamble
// (hash21, noise, palette, smin) and to the uniform field u.time.
package synth
