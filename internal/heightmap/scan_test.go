package heightmap

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/terrain.core/internal/grid"
	"github.com/banshee-data/terrain.core/internal/testutil"
)

const comparisonsPerRow = grid.Width - 2

func TestScanRow(t *testing.T) {
	t.Parallel()

	nan := float32(math.NaN())
	tests := []struct {
		name string
		row  []float32
		want Tally
	}{
		{"empty row", nil, Tally{}},
		{"single cell only drains", []float32{0.1}, Tally{Drainage: 1}},
		{"two cells define no comparison", []float32{0.1, 0.9}, Tally{Drainage: 1}},
		{"flat row is straight", []float32{0.5, 0.5, 0.5, 0.5}, Tally{Straights: 2}},
		{"step then flat is a turn", []float32{0, 0.5, 0.5}, Tally{Turns: 1, Drainage: 1}},
		{"zigzag turns every time", []float32{0, 1, 0, 1, 0}, Tally{Turns: 3, Drainage: 3}},
		{"values are clamped before use", []float32{-3, -1, 2, 5}, Tally{Turns: 2, Drainage: 2}},
		{"change below threshold is straight", []float32{0.5, 0.5, 0.5 + CurvatureThreshold/2}, Tally{Straights: 1}},
		{"drainage threshold is exclusive", []float32{DrainageThreshold, 0.41}, Tally{Drainage: 1}},
		{"NaN neither drains nor turns", []float32{nan, 0, 0}, Tally{Straights: 1, Drainage: 2}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ScanRow(tt.row))
		})
	}
}

func TestScanRowComparisonCount(t *testing.T) {
	t.Parallel()

	for _, n := range []int{3, 4, 17, grid.Width} {
		row := make([]float32, n)
		got := ScanRow(row)
		assert.Equal(t, uint64(n-2), got.Turns+got.Straights, "row length %d", n)
		assert.Equal(t, uint64(n), got.Drainage)
	}
}

func TestTallyAdd(t *testing.T) {
	t.Parallel()

	a := Tally{Turns: 1, Straights: 2, Drainage: 3}
	b := Tally{Turns: 10, Straights: 20, Drainage: 30}
	assert.Equal(t, Tally{Turns: 11, Straights: 22, Drainage: 33}, a.Add(b))
	assert.Equal(t, a.Add(b), b.Add(a))
	assert.Equal(t, a, a.Add(Tally{}))
}

func TestScanGridDoesNotCrossRows(t *testing.T) {
	t.Parallel()

	// Each row is constant but consecutive rows differ, so any delta taken
	// across a row boundary would register as a turn.
	hm := make([]float32, grid.CellCount)
	for y := 0; y < grid.Height; y++ {
		if y%2 == 1 {
			row := grid.Row(hm, y)
			for x := range row {
				row[x] = 1
			}
		}
	}

	got, err := ScanGrid(hm)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), got.Turns)
	assert.Equal(t, uint64(grid.Height*comparisonsPerRow), got.Straights)
	assert.Equal(t, uint64(grid.CellCount/2), got.Drainage)
}

func TestScanGridLengthMismatch(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, 1, grid.CellCount - 1, grid.CellCount + 1} {
		_, err := ScanGrid(make([]float32, n))
		assert.ErrorIs(t, err, ErrLengthMismatch, "length %d", n)
	}
	_, err := ScanGrid(nil)
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestScanGridRamp(t *testing.T) {
	t.Parallel()

	got, err := ScanGrid(testutil.Ramp(0.0001))
	require.NoError(t, err)
	assert.Equal(t, uint64(0), got.Turns)
	assert.Equal(t, uint64(grid.Height*comparisonsPerRow), got.Straights)
	assert.Equal(t, uint64(grid.CellCount), got.Drainage)
}
