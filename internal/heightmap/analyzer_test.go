package heightmap

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/terrain.core/internal/grid"
	"github.com/banshee-data/terrain.core/internal/monitoring"
	"github.com/banshee-data/terrain.core/internal/testutil"
	"github.com/banshee-data/terrain.core/internal/timeutil"
)

func TestAnalyzerMatchesSequentialScan(t *testing.T) {
	muteLogs(t)

	hm := testutil.Random(2026)
	want, err := ComputeMetrics(hm, 4.75)
	require.NoError(t, err)

	for _, workers := range []int{0, 1, 3, 8, 1000, 5000} {
		got, err := NewAnalyzer(workers).Analyze(hm, 4.75)
		require.NoError(t, err, "workers=%d", workers)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("workers=%d metrics mismatch (-want +got):\n%s", workers, diff)
		}
	}
}

func TestAnalyzerRows(t *testing.T) {
	hm := testutil.Random(99)
	rows, err := NewAnalyzer(4).Rows(hm)
	require.NoError(t, err)
	require.Len(t, rows, grid.Height)

	for _, y := range []int{0, 1, 511, grid.Height - 1} {
		assert.Equal(t, ScanRow(grid.Row(hm, y)), rows[y], "row %d", y)
	}

	total, err := ScanGrid(hm)
	require.NoError(t, err)
	assert.Equal(t, total, Sum(rows))
}

func TestAnalyzerLengthMismatch(t *testing.T) {
	_, err := NewAnalyzer(2).Analyze(make([]float32, 10), 0)
	assert.ErrorIs(t, err, ErrLengthMismatch)

	_, err = NewAnalyzer(2).Rows(nil)
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestNilAnalyzerUsesDefaults(t *testing.T) {
	muteLogs(t)

	var a *Analyzer
	m, err := a.Analyze(testutil.Flat(0), 0)
	require.NoError(t, err)
	assert.Equal(t, 100.0, m.HydroDrainagePct)
}

// stepClock advances by step every time it is read.
type stepClock struct {
	*timeutil.MockClock
	step time.Duration
}

func (c stepClock) Now() time.Time {
	c.Advance(c.step)
	return c.MockClock.Now()
}

func (c stepClock) Since(t time.Time) time.Duration {
	return c.Now().Sub(t)
}

func TestAnalyzerTimedRows(t *testing.T) {
	original := monitoring.Logf
	t.Cleanup(func() { monitoring.Logf = original })
	var lines []string
	monitoring.SetLogger(func(format string, v ...interface{}) {
		lines = append(lines, fmt.Sprintf(format, v...))
	})

	a := &Analyzer{
		Workers: 2,
		Clock:   stepClock{MockClock: timeutil.NewMockClock(time.Unix(0, 0)), step: 3 * time.Millisecond},
	}
	rows, elapsed, err := a.TimedRows(testutil.Flat(0.5))
	require.NoError(t, err)
	assert.Len(t, rows, grid.Height)
	assert.Equal(t, 3*time.Millisecond, elapsed)
	assert.Equal(t, []string{"[terrain] heightmap scan took 3ms"}, lines)
}

func TestAnalyzerTimedRowsError(t *testing.T) {
	a := &Analyzer{Clock: timeutil.NewMockClock(time.Unix(0, 0))}
	_, elapsed, err := a.TimedRows(make([]float32, 3))
	assert.ErrorIs(t, err, ErrLengthMismatch)
	assert.Zero(t, elapsed)
}

func muteLogs(t *testing.T) {
	t.Helper()
	original := monitoring.Logf
	monitoring.SetLogger(nil)
	t.Cleanup(func() { monitoring.Logf = original })
}
