package params

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Params is a complete, normalized shader parameter set.
type Params struct {
	FBMBaseFrequency     float32 `json:"fbm_base_frequency" yaml:"fbm_base_frequency"`
	LandThreshold        float32 `json:"land_threshold" yaml:"land_threshold"`
	FalloffStrength      float32 `json:"falloff_strength" yaml:"falloff_strength"`
	NoiseAmplitude       float32 `json:"noise_amplitude" yaml:"noise_amplitude"`
	EdgeWarp             float32 `json:"edge_warp" yaml:"edge_warp"`
	PlateCount           uint32  `json:"plate_count" yaml:"plate_count"`
	PlateWarpAmplitude   float32 `json:"plate_warp_amplitude" yaml:"plate_warp_amplitude"`
	PlateWarpRoughness   float32 `json:"plate_warp_roughness" yaml:"plate_warp_roughness"`
	MountainRadius       float32 `json:"mountain_radius" yaml:"mountain_radius"`
	MountainHeight       float32 `json:"mountain_height" yaml:"mountain_height"`
	TerrainRoughness     float32 `json:"terrain_roughness" yaml:"terrain_roughness"`
	TerrainFrequency     float32 `json:"terrain_frequency" yaml:"terrain_frequency"`
	SunAngle             float32 `json:"sun_angle" yaml:"sun_angle"`
	ElevationScale       float32 `json:"elevation_scale" yaml:"elevation_scale"`
	VerticalExaggeration float32 `json:"vertical_exaggeration" yaml:"vertical_exaggeration"`
	Seed                 uint32  `json:"seed" yaml:"seed"`
}

// Defaults returns the parameter set used before any slider moves.
func Defaults() Params {
	return Params{
		FBMBaseFrequency:     DefaultFBMBaseFrequency,
		LandThreshold:        DefaultLandThreshold,
		FalloffStrength:      DefaultFalloffStrength,
		NoiseAmplitude:       DefaultNoiseAmplitude,
		EdgeWarp:             DefaultEdgeWarp,
		PlateCount:           DefaultPlateCount,
		PlateWarpAmplitude:   DefaultPlateWarpAmplitude,
		PlateWarpRoughness:   DefaultPlateWarpRoughness,
		MountainRadius:       DefaultMountainRadius,
		MountainHeight:       DefaultMountainHeight,
		TerrainRoughness:     DefaultTerrainRoughness,
		TerrainFrequency:     DefaultTerrainFrequency,
		SunAngle:             DefaultSunAngle,
		ElevationScale:       DefaultElevationScale,
		VerticalExaggeration: DefaultVerticalExaggeration,
		Seed:                 DefaultSeed,
	}
}

// Sliders holds raw slider positions. A nil field keeps the default.
// The FBM base frequency has no slider.
type Sliders struct {
	LandThreshold        *float32 `json:"land_threshold,omitempty" yaml:"land_threshold,omitempty"`
	FalloffStrength      *float32 `json:"falloff_strength,omitempty" yaml:"falloff_strength,omitempty"`
	NoiseAmplitude       *float32 `json:"noise_amplitude,omitempty" yaml:"noise_amplitude,omitempty"`
	EdgeWarp             *float32 `json:"edge_warp,omitempty" yaml:"edge_warp,omitempty"`
	PlateCount           *float32 `json:"plate_count,omitempty" yaml:"plate_count,omitempty"`
	PlateWarpAmplitude   *float32 `json:"plate_warp_amplitude,omitempty" yaml:"plate_warp_amplitude,omitempty"`
	PlateWarpRoughness   *float32 `json:"plate_warp_roughness,omitempty" yaml:"plate_warp_roughness,omitempty"`
	MountainRadius       *float32 `json:"mountain_radius,omitempty" yaml:"mountain_radius,omitempty"`
	MountainHeight       *float32 `json:"mountain_height,omitempty" yaml:"mountain_height,omitempty"`
	TerrainRoughness     *float32 `json:"terrain_roughness,omitempty" yaml:"terrain_roughness,omitempty"`
	TerrainFrequency     *float32 `json:"terrain_frequency,omitempty" yaml:"terrain_frequency,omitempty"`
	SunAngle             *float32 `json:"sun_angle,omitempty" yaml:"sun_angle,omitempty"`
	ElevationScale       *float32 `json:"elevation_scale,omitempty" yaml:"elevation_scale,omitempty"`
	VerticalExaggeration *float32 `json:"vertical_exaggeration,omitempty" yaml:"vertical_exaggeration,omitempty"`
	Seed                 *float64 `json:"seed,omitempty" yaml:"seed,omitempty"`
}

// Normalize applies every slider rule on top of Defaults.
func Normalize(s Sliders) Params {
	p := Defaults()
	apply := func(raw *float32, dst *float32, rule func(float32) float32) {
		if raw != nil {
			*dst = rule(*raw)
		}
	}
	apply(s.LandThreshold, &p.LandThreshold, LandThresholdFromSlider)
	apply(s.FalloffStrength, &p.FalloffStrength, FalloffStrengthFromSlider)
	apply(s.NoiseAmplitude, &p.NoiseAmplitude, NoiseAmplitudeFromSlider)
	apply(s.EdgeWarp, &p.EdgeWarp, EdgeWarpFromInput)
	apply(s.PlateWarpAmplitude, &p.PlateWarpAmplitude, PlateWarpAmplitudeFromSlider)
	apply(s.PlateWarpRoughness, &p.PlateWarpRoughness, PlateWarpRoughnessFromSlider)
	apply(s.MountainRadius, &p.MountainRadius, MountainRadiusFromSlider)
	apply(s.MountainHeight, &p.MountainHeight, MountainHeightFromSlider)
	apply(s.TerrainRoughness, &p.TerrainRoughness, TerrainRoughnessFromSlider)
	apply(s.TerrainFrequency, &p.TerrainFrequency, TerrainFrequencyFromSlider)
	apply(s.SunAngle, &p.SunAngle, SunAngleFromSlider)
	apply(s.ElevationScale, &p.ElevationScale, ElevationScaleFromSlider)
	apply(s.VerticalExaggeration, &p.VerticalExaggeration, VerticalExaggerationFromSlider)
	if s.PlateCount != nil {
		p.PlateCount = PlateCountFromSlider(*s.PlateCount)
	}
	if s.Seed != nil {
		p.Seed = SeedFromInput(*s.Seed)
	}
	return p
}

// LoadSliders reads slider positions from a .json, .yaml or .yml file.
func LoadSliders(path string) (Sliders, error) {
	var s Sliders
	cleanPath := filepath.Clean(path)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return s, fmt.Errorf("failed to read sliders file: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(cleanPath)); ext {
	case ".json":
		err = json.Unmarshal(data, &s)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &s)
	default:
		return s, fmt.Errorf("sliders file must be .json, .yaml or .yml, got %q", ext)
	}
	if err != nil {
		return s, fmt.Errorf("failed to parse sliders file: %w", err)
	}
	return s, nil
}
