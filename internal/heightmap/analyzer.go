package heightmap

import (
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/banshee-data/terrain.core/internal/grid"
	"github.com/banshee-data/terrain.core/internal/monitoring"
	"github.com/banshee-data/terrain.core/internal/timeutil"
)

// Analyzer scans heightmaps with rows spread across worker goroutines.
// A row is always scanned by a single goroutine from left to right; only
// whole rows are distributed.
type Analyzer struct {
	// Workers bounds the number of concurrent row scanners. Values below 1
	// use runtime.GOMAXPROCS(0).
	Workers int

	// Clock times each scan. Nil uses the wall clock.
	Clock timeutil.Clock
}

// NewAnalyzer returns an Analyzer with the given worker bound.
func NewAnalyzer(workers int) *Analyzer {
	return &Analyzer{Workers: workers}
}

func (a *Analyzer) workers() int {
	if a == nil || a.Workers < 1 {
		return runtime.GOMAXPROCS(0)
	}
	return min(a.Workers, grid.Height)
}

// Rows returns one Tally per grid row, indexed by row number.
func (a *Analyzer) Rows(hm []float32) ([]Tally, error) {
	if err := checkLength(hm); err != nil {
		return nil, err
	}

	rows := make([]Tally, grid.Height)
	workers := a.workers()
	band := (grid.Height + workers - 1) / workers

	var g errgroup.Group
	for start := 0; start < grid.Height; start += band {
		start := start
		end := min(start+band, grid.Height)
		g.Go(func() error {
			for y := start; y < end; y++ {
				rows[y] = ScanRow(grid.Row(hm, y))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rows, nil
}

// TimedRows is Rows plus the time the scan took.
func (a *Analyzer) TimedRows(hm []float32) ([]Tally, time.Duration, error) {
	var clock timeutil.Clock
	if a != nil {
		clock = a.Clock
	}
	clock = timeutil.OrReal(clock)

	start := clock.Now()
	rows, err := a.Rows(hm)
	if err != nil {
		return nil, 0, err
	}
	elapsed := clock.Since(start)
	monitoring.Took("heightmap scan", elapsed)
	return rows, elapsed, nil
}

// Analyze scans hm and derives its metrics. The result is identical to
// ComputeMetrics for any worker count.
func (a *Analyzer) Analyze(hm []float32, latencyMs float64) (Metrics, error) {
	rows, _, err := a.TimedRows(hm)
	if err != nil {
		return Metrics{}, err
	}
	return MetricsFromTally(Sum(rows), grid.CellCount, latencyMs), nil
}

// Sum adds row tallies in row order.
func Sum(rows []Tally) Tally {
	var total Tally
	for _, r := range rows {
		total = total.Add(r)
	}
	return total
}
