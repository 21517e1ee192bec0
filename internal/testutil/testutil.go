// Package testutil provides shared test utilities and heightmap fixtures.
//
// This package centralises common test helpers to reduce code duplication
// across test files and improve test maintainability.
package testutil

import (
	"math/rand"
	"testing"

	"github.com/banshee-data/terrain.core/internal/grid"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// Flat returns a grid-sized heightmap with every cell set to v.
func Flat(v float32) []float32 {
	hm := make([]float32, grid.CellCount)
	if v != 0 {
		for i := range hm {
			hm[i] = v
		}
	}
	return hm
}

// Alternating returns a grid-sized heightmap whose columns alternate
// between lo and hi, starting with lo in column 0 of every row.
func Alternating(lo, hi float32) []float32 {
	hm := make([]float32, grid.CellCount)
	for i := range hm {
		if (i%grid.Width)%2 == 0 {
			hm[i] = lo
		} else {
			hm[i] = hi
		}
	}
	return hm
}

// Ramp returns a grid-sized heightmap that rises by step per column and
// restarts at zero on every row.
func Ramp(step float32) []float32 {
	hm := make([]float32, grid.CellCount)
	for i := range hm {
		hm[i] = float32(i%grid.Width) * step
	}
	return hm
}

// Random returns a deterministic grid-sized heightmap with samples drawn
// from [-0.1, 1.1) so that clamping is exercised.
func Random(seed int64) []float32 {
	rng := rand.New(rand.NewSource(seed))
	hm := make([]float32, grid.CellCount)
	for i := range hm {
		hm[i] = rng.Float32()*1.2 - 0.1
	}
	return hm
}
