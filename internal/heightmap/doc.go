// Package heightmap extracts terrain quality metrics from a flattened,
// row-major heightmap read back from the GPU.
//
// The core metric pass walks each row once. Along a row it compares
// consecutive elevation deltas: a change larger than CurvatureThreshold is
// a turn, anything smaller is a straight run. Cells below
// DrainageThreshold count toward the drainage area. Row results are
// independent partial sums (Tally) and are combined by addition, which is
// what lets Analyzer scan rows in parallel.
//
// The package also derives land-mask connectivity statistics and reads
// heightmap dumps from disk.
package heightmap
