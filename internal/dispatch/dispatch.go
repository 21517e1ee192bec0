package dispatch

import (
	"errors"
	"fmt"
	"math"

	"github.com/banshee-data/terrain.core/internal/grid"
)

// ReductionFanIn is the number of primary work-groups folded by one
// reduction work-group.
const ReductionFanIn = 64

var (
	// ErrInvalidGridSize is returned when a flat cell count is not grid.CellCount.
	ErrInvalidGridSize = errors.New("flat_cell_count must match 2048x1024")
	// ErrInvalidCoverage is returned when coverage is outside [0, 1] or NaN.
	ErrInvalidCoverage = errors.New("coverage_norm must be within [0.0, 1.0]")
	// ErrInvalidPassCount is returned when a zero pass count is requested.
	ErrInvalidPassCount = errors.New("pass count must be at least 1")
)

// Plan is the sizing of one primary compute pass.
type Plan struct {
	CoveredCells uint32 `json:"covered_cells"`
	DispatchX    uint32 `json:"dispatch_x"`
}

// Reduction returns the work-group count of the reduction stage that folds
// this plan's partial results.
func (p Plan) Reduction() uint32 {
	return max(1, ceilDiv(p.DispatchX, ReductionFanIn))
}

// Compute validates the inputs and sizes the primary pass.
//
// Coverage 0 still yields one covered cell so a dispatch is never empty.
func Compute(cellCount uint32, coverage float32) (Plan, error) {
	if cellCount != grid.CellCount {
		return Plan{}, fmt.Errorf("%w: got %d", ErrInvalidGridSize, cellCount)
	}
	// Written so that NaN fails both comparisons.
	if !(coverage >= 0 && coverage <= 1) {
		return Plan{}, fmt.Errorf("%w: got %v", ErrInvalidCoverage, coverage)
	}

	covered := math.Ceil(float64(float32(cellCount) * coverage))
	coveredCells := uint32(max(covered, 1))
	return Plan{
		CoveredCells: coveredCells,
		DispatchX:    ceilDiv(coveredCells, grid.WorkgroupSize),
	}, nil
}

// MapFlat1DToGPU returns the uniform block the compute shaders read:
// [width, height, covered cells, dispatch x, work-group size].
func MapFlat1DToGPU(cellCount uint32, coverage float32) ([]uint32, error) {
	p, err := Compute(cellCount, coverage)
	if err != nil {
		return nil, err
	}
	return []uint32{grid.Width, grid.Height, p.CoveredCells, p.DispatchX, grid.WorkgroupSize}, nil
}

func ceilDiv(n, d uint32) uint32 {
	return (n + d - 1) / d
}
