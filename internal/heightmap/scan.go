package heightmap

import (
	"errors"
	"fmt"

	"github.com/banshee-data/terrain.core/internal/grid"
)

const (
	// DrainageThreshold is the elevation below which a cell drains.
	DrainageThreshold float32 = 0.42
	// CurvatureThreshold is the largest delta change still counted as straight.
	CurvatureThreshold float32 = 0.0035
	// SinuosityScale weights the turn/straight ratio in the sinuosity index.
	SinuosityScale = 0.1
)

// ErrLengthMismatch is returned when a buffer does not hold exactly one grid.
var ErrLengthMismatch = errors.New("flat heightmap length mismatch")

// Tally holds the counts accumulated over one or more rows.
type Tally struct {
	Turns     uint64 `json:"turns"`
	Straights uint64 `json:"straights"`
	Drainage  uint64 `json:"drainage"`
}

// Add combines two tallies. Rows are independent, so the order of Adds
// does not change the result.
func (t Tally) Add(o Tally) Tally {
	return Tally{
		Turns:     t.Turns + o.Turns,
		Straights: t.Straights + o.Straights,
		Drainage:  t.Drainage + o.Drainage,
	}
}

// ScanRow folds a single row into a Tally.
//
// Column 0 only takes part in the drainage test. Column 1 yields the first
// delta and column 2 onward compare each delta with the previous one. The
// previous delta starts at zero for every row.
func ScanRow(row []float32) Tally {
	var t Tally
	var prevDelta float32
	for x, raw := range row {
		v := clamp01(raw)
		if v < DrainageThreshold {
			t.Drainage++
		}
		if x == 0 {
			continue
		}
		delta := v - clamp01(row[x-1])
		if x > 1 {
			if abs32(delta-prevDelta) > CurvatureThreshold {
				t.Turns++
			} else {
				t.Straights++
			}
		}
		prevDelta = delta
	}
	return t
}

// ScanGrid folds every row of a grid-sized buffer in row order.
func ScanGrid(flat []float32) (Tally, error) {
	if err := checkLength(flat); err != nil {
		return Tally{}, err
	}
	var total Tally
	for y := 0; y < grid.Height; y++ {
		total = total.Add(ScanRow(grid.Row(flat, y)))
	}
	return total, nil
}

func checkLength(flat []float32) error {
	if len(flat) != grid.CellCount {
		return fmt.Errorf("%w: got %d, want %d", ErrLengthMismatch, len(flat), grid.CellCount)
	}
	return nil
}

// clamp01 leaves NaN untouched so that it fails every later comparison.
func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
