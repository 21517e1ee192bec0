package heightmap

import (
	"errors"
	"fmt"
)

// ErrInvalidConnectivity is returned for a neighbourhood other than 4 or 8.
var ErrInvalidConnectivity = errors.New("connectivity must be 4 or 8")

// ConnectivityMetrics summarises the connected land regions of a mask.
type ConnectivityMetrics struct {
	NumComponents        int     `json:"num_components"`
	LargestComponentArea int     `json:"largest_component_area"`
	TotalLandPixels      int     `json:"total_land_pixels"`
	LargestLandRatio     float64 `json:"largest_land_ratio"`
	LandFraction         float64 `json:"land_fraction"`
}

// LandMask marks every cell whose clamped elevation is at or above
// threshold.
func LandMask(hm []float32, threshold float32) []bool {
	mask := make([]bool, len(hm))
	for i, v := range hm {
		mask[i] = clamp01(v) >= threshold
	}
	return mask
}

// Connectivity labels the land regions of a row-major mask using a 4- or
// 8-connected neighbourhood. A mask with no land returns the zero value.
func Connectivity(mask []bool, width, height, connectivity int) (ConnectivityMetrics, error) {
	if connectivity != 4 && connectivity != 8 {
		return ConnectivityMetrics{}, fmt.Errorf("%w: got %d", ErrInvalidConnectivity, connectivity)
	}
	if width <= 0 || height <= 0 || len(mask) != width*height {
		return ConnectivityMetrics{}, fmt.Errorf("%w: mask has %d cells for %dx%d", ErrLengthMismatch, len(mask), width, height)
	}

	visited := make([]bool, len(mask))
	var stack []int
	var m ConnectivityMetrics

	for start, land := range mask {
		if !land || visited[start] {
			continue
		}
		visited[start] = true
		stack = append(stack[:0], start)
		size := 0

		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			size++

			y, x := cur/width, cur%width
			for ny := max(0, y-1); ny <= min(height-1, y+1); ny++ {
				for nx := max(0, x-1); nx <= min(width-1, x+1); nx++ {
					if ny == y && nx == x {
						continue
					}
					if connectivity == 4 && ny != y && nx != x {
						continue
					}
					idx := ny*width + nx
					if mask[idx] && !visited[idx] {
						visited[idx] = true
						stack = append(stack, idx)
					}
				}
			}
		}

		m.NumComponents++
		m.TotalLandPixels += size
		if size > m.LargestComponentArea {
			m.LargestComponentArea = size
		}
	}

	if m.TotalLandPixels == 0 {
		return ConnectivityMetrics{}, nil
	}
	m.LargestLandRatio = float64(m.LargestComponentArea) / float64(m.TotalLandPixels)
	m.LandFraction = float64(m.TotalLandPixels) / float64(len(mask))
	return m, nil
}
