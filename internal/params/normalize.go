package params

import (
	"math"
)

// Defaults for every shader parameter.
const (
	DefaultFBMBaseFrequency     float32 = 1.20
	DefaultLandThreshold        float32 = 0.54
	DefaultFalloffStrength      float32 = 2.20
	DefaultNoiseAmplitude       float32 = 0.60
	DefaultEdgeWarp             float32 = 0.12
	DefaultPlateCount           uint32  = 15
	DefaultPlateWarpAmplitude   float32 = 0.50
	DefaultPlateWarpRoughness   float32 = 0.60
	DefaultMountainRadius       float32 = 20.0
	DefaultMountainHeight       float32 = 0.80
	DefaultTerrainRoughness     float32 = 0.50
	DefaultTerrainFrequency     float32 = 8.0
	DefaultSunAngle             float32 = 315.0
	DefaultElevationScale       float32 = 10.0
	DefaultVerticalExaggeration float32 = 5.0
	DefaultSeed                 uint32  = 1337
)

// Slider ranges.
const (
	MinLandThreshold, MaxLandThreshold               float32 = -1, 2
	MinFalloffStrength, MaxFalloffStrength           float32 = 0, 4
	MinNoiseAmplitude, MaxNoiseAmplitude             float32 = 0, 2
	MinPlateCount, MaxPlateCount                     float32 = 3, 100
	MinPlateWarpAmplitude, MaxPlateWarpAmplitude     float32 = 0, 2
	MinPlateWarpRoughness, MaxPlateWarpRoughness     float32 = 0.3, 0.8
	MinMountainRadius, MaxMountainRadius             float32 = 5, 50
	MinMountainHeight, MaxMountainHeight             float32 = 0.1, 2
	MinTerrainRoughness, MaxTerrainRoughness         float32 = 0, 1
	MinTerrainFrequency, MaxTerrainFrequency         float32 = 1, 20
	MinSunAngle, MaxSunAngle                         float32 = 0, 360
	MinElevationScale, MaxElevationScale             float32 = 1, 20
	MinVerticalExaggeration, MaxVerticalExaggeration float32 = 1, 20
)

// LandThresholdFromSlider clamps raw to [-1, 2].
func LandThresholdFromSlider(raw float32) float32 {
	return clamp(raw, MinLandThreshold, MaxLandThreshold)
}

// FalloffStrengthFromSlider clamps raw to [0, 4].
func FalloffStrengthFromSlider(raw float32) float32 {
	return clamp(raw, MinFalloffStrength, MaxFalloffStrength)
}

// NoiseAmplitudeFromSlider clamps raw to [0, 2].
func NoiseAmplitudeFromSlider(raw float32) float32 {
	return clamp(raw, MinNoiseAmplitude, MaxNoiseAmplitude)
}

// EdgeWarpFromInput passes finite input through and falls back to
// DefaultEdgeWarp otherwise.
func EdgeWarpFromInput(raw float32) float32 {
	if !isFinite(raw) {
		return DefaultEdgeWarp
	}
	return raw
}

// PlateCountFromSlider rounds raw half away from zero and clamps it to
// [3, 100]. Non-finite input yields DefaultPlateCount.
func PlateCountFromSlider(raw float32) uint32 {
	if !isFinite(raw) {
		return DefaultPlateCount
	}
	rounded := float32(math.Round(float64(raw)))
	return uint32(clamp(rounded, MinPlateCount, MaxPlateCount))
}

// PlateWarpAmplitudeFromSlider clamps raw to [0, 2].
func PlateWarpAmplitudeFromSlider(raw float32) float32 {
	return clamp(raw, MinPlateWarpAmplitude, MaxPlateWarpAmplitude)
}

// PlateWarpRoughnessFromSlider clamps raw to [0.3, 0.8].
func PlateWarpRoughnessFromSlider(raw float32) float32 {
	return clamp(raw, MinPlateWarpRoughness, MaxPlateWarpRoughness)
}

// MountainRadiusFromSlider clamps raw to [5, 50].
func MountainRadiusFromSlider(raw float32) float32 {
	return clamp(raw, MinMountainRadius, MaxMountainRadius)
}

// MountainHeightFromSlider clamps raw to [0.1, 2].
func MountainHeightFromSlider(raw float32) float32 {
	return clamp(raw, MinMountainHeight, MaxMountainHeight)
}

// TerrainRoughnessFromSlider clamps raw to [0, 1].
func TerrainRoughnessFromSlider(raw float32) float32 {
	return clamp(raw, MinTerrainRoughness, MaxTerrainRoughness)
}

// TerrainFrequencyFromSlider clamps raw to [1, 20].
func TerrainFrequencyFromSlider(raw float32) float32 {
	return clamp(raw, MinTerrainFrequency, MaxTerrainFrequency)
}

// SunAngleFromSlider clamps finite input to [0, 360] degrees and falls
// back to DefaultSunAngle otherwise.
func SunAngleFromSlider(raw float32) float32 {
	if !isFinite(raw) {
		return DefaultSunAngle
	}
	return clamp(raw, MinSunAngle, MaxSunAngle)
}

// ElevationScaleFromSlider clamps raw to [1, 20].
func ElevationScaleFromSlider(raw float32) float32 {
	return clamp(raw, MinElevationScale, MaxElevationScale)
}

// VerticalExaggerationFromSlider clamps raw to [1, 20].
func VerticalExaggerationFromSlider(raw float32) float32 {
	return clamp(raw, MinVerticalExaggeration, MaxVerticalExaggeration)
}

// SeedFromInput floors a non-negative finite input into a uint32 seed,
// saturating at math.MaxUint32. Negative input (including -0), NaN and
// infinities yield DefaultSeed.
func SeedFromInput(raw float64) uint32 {
	if math.IsNaN(raw) || math.IsInf(raw, 0) || math.Signbit(raw) {
		return DefaultSeed
	}
	return uint32(math.Min(math.Floor(raw), math.MaxUint32))
}

// clamp restricts v to [lo, hi]. NaN is returned unchanged.
func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func isFinite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
