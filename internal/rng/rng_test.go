package rng_test

import (
	"testing"

	"wgslfuzz/internal/rng"
)

func TestNewIsReproducible(t *testing.T) {
	a, b := rng.New(7), rng.New(7)
	for i := 0; i < 16; i++ {
		if x, y := a.Float64(), b.Float64(); x != y {
			t.Fatalf("step %d: %v != %v", i, x, y)
		}
	}
}

func TestStreamsDiffer(t *testing.T) {
	a, b := rng.Stream(1, 0), rng.Stream(1, 1)
	same := 0
	for i := 0; i < 16; i++ {
		if a.Float64() == b.Float64() {
			same++
		}
	}
	if same == 16 {
		t.Fatalf("streams 0 and 1 are identical")
	}
}

func TestChanceBounds(t *testing.T) {
	r := rng.New(3)
	for i := 0; i < 100; i++ {
		if !rng.Chance(r, 1.0) {
			t.Fatalf("Chance(1.0) returned false")
		}
		if rng.Chance(r, 0) {
			t.Fatalf("Chance(0) returned true")
		}
	}
}

func TestUniformRange(t *testing.T) {
	r := rng.New(5)
	for i := 0; i < 1000; i++ {
		v := rng.Uniform(r, -0.5, 0.5)
		if v < -0.5 || v >= 0.5 {
			t.Fatalf("Uniform out of range: %v", v)
		}
	}
}

func TestWeightedSkipsZeroWeights(t *testing.T) {
	r := rng.New(9)
	for i := 0; i < 200; i++ {
		if got := rng.Weighted(r, 0, 1, 0); got != 1 {
			t.Fatalf("Weighted picked %d", got)
		}
	}
}
