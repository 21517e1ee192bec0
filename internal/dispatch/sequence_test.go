package dispatch

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/terrain.core/internal/grid"
)

func TestReductionSequences(t *testing.T) {
	t.Parallel()

	builders := map[int]func(uint32, float32) ([]uint32, error){
		3: ThreePass,
		4: FourPass,
		5: FivePass,
		6: SixPass,
	}

	for k, build := range builders {
		for _, coverage := range []float32{0, 0.01, 0.3, 0.5, 0.999, 1} {
			seq, err := build(grid.CellCount, coverage)
			require.NoError(t, err)
			require.Len(t, seq, k)

			p, err := Compute(grid.CellCount, coverage)
			require.NoError(t, err)
			for i, v := range seq {
				if i == 1 {
					assert.Equal(t, max(1, (p.DispatchX+63)/64), v, "k=%d coverage=%v slot %d", k, coverage, i)
					continue
				}
				assert.Equal(t, p.DispatchX, v, "k=%d coverage=%v slot %d", k, coverage, i)
			}
		}
	}
}

func TestExactShapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		build func(uint32, float32) ([]uint32, error)
		want  []uint32
	}{
		{"single", SinglePass, []uint32{8192}},
		{"three", ThreePass, []uint32{8192, 128, 8192}},
		{"four", FourPass, []uint32{8192, 128, 8192, 8192}},
		{"five", FivePass, []uint32{8192, 128, 8192, 8192, 8192}},
		{"six", SixPass, []uint32{8192, 128, 8192, 8192, 8192, 8192}},
	}
	for _, tt := range tests {
		got, err := tt.build(grid.CellCount, 1)
		require.NoError(t, err, tt.name)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("%s sequence mismatch (-want +got):\n%s", tt.name, diff)
		}
	}
}

func TestSmallCoverageReductionFloor(t *testing.T) {
	t.Parallel()

	seq, err := SixPass(grid.CellCount, 0)
	require.NoError(t, err)
	assert.Equal(t, []uint32{1, 1, 1, 1, 1, 1}, seq)
}

func TestNPass(t *testing.T) {
	t.Parallel()

	_, err := NPass(grid.CellCount, 0.5, 0)
	assert.ErrorIs(t, err, ErrInvalidPassCount)

	_, err = NPass(grid.CellCount, 0.5, -3)
	assert.ErrorIs(t, err, ErrInvalidPassCount)

	for _, n := range []int{1, 2, 7, 32} {
		seq, err := NPass(grid.CellCount, 0.5, n)
		require.NoError(t, err)
		require.Len(t, seq, n)
		for _, v := range seq {
			assert.Equal(t, uint32(4096), v)
		}
	}
}

func TestBuildersPropagateValidation(t *testing.T) {
	t.Parallel()

	for _, build := range []func(uint32, float32) ([]uint32, error){SinglePass, ThreePass, FourPass, FivePass, SixPass} {
		_, err := build(100, 0.5)
		assert.ErrorIs(t, err, ErrInvalidGridSize)
		_, err = build(grid.CellCount, -1)
		assert.ErrorIs(t, err, ErrInvalidCoverage)
	}
	_, err := NPass(100, 0.5, 2)
	assert.ErrorIs(t, err, ErrInvalidGridSize)
}

func TestSequence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		passes int
		want   []uint32
	}{
		{1, []uint32{8192}},
		{2, []uint32{8192, 8192}},
		{3, []uint32{8192, 128, 8192}},
		{6, []uint32{8192, 128, 8192, 8192, 8192, 8192}},
		{7, []uint32{8192, 8192, 8192, 8192, 8192, 8192, 8192}},
	}
	for _, tt := range tests {
		got, err := Sequence(grid.CellCount, 1, tt.passes)
		require.NoError(t, err, "passes=%d", tt.passes)
		assert.Equal(t, tt.want, got, "passes=%d", tt.passes)
	}

	_, err := Sequence(grid.CellCount, 1, 0)
	assert.ErrorIs(t, err, ErrInvalidPassCount)
}
