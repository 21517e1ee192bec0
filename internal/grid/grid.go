// Package grid holds the fixed geometry shared by the dispatch planner and
// the heightmap analyzer.
//
// The grid size is a build-time contract with the GPU pipeline: buffers,
// shaders and the host all assume 2048x1024 cells. Nothing here is
// configurable at runtime.
package grid

const (
	// Width is the number of cells per row.
	Width = 2048
	// Height is the number of rows.
	Height = 1024
	// CellCount is the flat length of every grid-sized buffer.
	CellCount = Width * Height

	// WorkgroupSize is the number of invocations per compute work-group.
	WorkgroupSize = 256
)

// Row returns the slice of a flat row-major buffer that holds row y.
// The caller guarantees len(flat) == CellCount and 0 <= y < Height.
func Row(flat []float32, y int) []float32 {
	start := y * Width
	return flat[start : start+Width]
}
