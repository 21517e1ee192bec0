package testutil

import (
	"testing"

	"github.com/banshee-data/terrain.core/internal/grid"
)

func TestFixturesAreGridSized(t *testing.T) {
	for name, hm := range map[string][]float32{
		"flat":        Flat(0.5),
		"alternating": Alternating(0, 1),
		"ramp":        Ramp(0.0001),
		"random":      Random(1),
	} {
		if len(hm) != grid.CellCount {
			t.Errorf("%s: len = %d, want %d", name, len(hm), grid.CellCount)
		}
	}
}

func TestAlternatingRestartsEachRow(t *testing.T) {
	hm := Alternating(0.1, 0.9)
	if hm[0] != 0.1 || hm[1] != 0.9 {
		t.Errorf("row 0 starts %v, %v", hm[0], hm[1])
	}
	if hm[grid.Width] != 0.1 {
		t.Errorf("row 1 starts with %v, want 0.1", hm[grid.Width])
	}
}

func TestRandomIsDeterministic(t *testing.T) {
	a, b := Random(42), Random(42)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestAssertNoError(t *testing.T) {
	AssertNoError(t, nil)
}
