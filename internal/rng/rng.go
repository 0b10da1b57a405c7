// Package rng is the explicit random source threaded through every pass.
// Passes never touch a global generator, so a fixed seed reproduces a run.
package rng

import (
	"math/rand/v2"
)

// Rand is the subset of *rand.Rand the engine samples from.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// New returns a PCG-backed generator for seed.
func New(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Stream returns the generator for sub-stream i of seed. Streams with
// different i are independent, which lets parallel workers stay reproducible.
func Stream(seed, i uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, i*0x9e3779b97f4a7c15+1))
}

// Chance reports true with probability p.
func Chance(r Rand, p float64) bool {
	return r.Float64() < p
}

// Uniform samples from [lo, hi).
func Uniform(r Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*r.Float64()
}

// Pick returns a uniformly chosen element of items. items must not be empty.
func Pick[T any](r Rand, items []T) T {
	return items[r.IntN(len(items))]
}

// Weighted returns an index chosen with probability proportional to weights.
func Weighted(r Rand, weights ...float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	x := r.Float64() * total
	for i, w := range weights {
		if x < w {
			return i
		}
		x -= w
	}
	return len(weights) - 1
}
