package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/banshee-data/terrain.core/internal/heightmap"
	"github.com/banshee-data/terrain.core/internal/params"
)

// DefaultConfigPath is the path to the canonical pipeline defaults file.
const DefaultConfigPath = "config/pipeline.defaults.json"

// PipelineConfig configures the terrain-core CLI. Every field is optional;
// the Get* methods supply the default for any field left unset, so partial
// files are safe.
type PipelineConfig struct {
	// Dispatch sizing
	Coverage *float64 `json:"coverage,omitempty" yaml:"coverage,omitempty"`
	Passes   *int     `json:"passes,omitempty" yaml:"passes,omitempty"`

	// Heightmap scan
	ScanWorkers *int    `json:"scan_workers,omitempty" yaml:"scan_workers,omitempty"` // 0 = GOMAXPROCS
	InputFormat *string `json:"input_format,omitempty" yaml:"input_format,omitempty"` // "" = guess from file name

	// Land connectivity
	LandThreshold *float64 `json:"land_threshold,omitempty" yaml:"land_threshold,omitempty"`
	Connectivity  *int     `json:"connectivity,omitempty" yaml:"connectivity,omitempty"`

	// Report output
	ReportDir *string `json:"report_dir,omitempty" yaml:"report_dir,omitempty"`
}

// EmptyPipelineConfig returns a PipelineConfig with all fields set to nil.
func EmptyPipelineConfig() *PipelineConfig {
	return &PipelineConfig{}
}

// LoadPipelineConfig loads a PipelineConfig from a .json, .yaml or .yml
// file no larger than 1MB.
func LoadPipelineConfig(path string) (*PipelineConfig, error) {
	cleanPath := filepath.Clean(path)
	ext := strings.ToLower(filepath.Ext(cleanPath))
	if ext != ".json" && ext != ".yaml" && ext != ".yml" {
		return nil, fmt.Errorf("config file must have .json, .yaml or .yml extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyPipelineConfig()
	if ext == ".json" {
		err = json.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// MustLoadDefaultConfig loads the canonical defaults from DefaultConfigPath,
// searching the current directory and its parents. Panics if the file
// cannot be loaded, intended for test setup.
func MustLoadDefaultConfig() *PipelineConfig {
	candidates := []string{
		DefaultConfigPath,
		"../" + DefaultConfigPath,
		"../../" + DefaultConfigPath, // from internal/config/
		"../../../" + DefaultConfigPath,
	}
	for _, path := range candidates {
		if cfg, err := LoadPipelineConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks the values that are set.
func (c *PipelineConfig) Validate() error {
	if c.Coverage != nil {
		if !(*c.Coverage >= 0 && *c.Coverage <= 1) {
			return fmt.Errorf("coverage must be between 0 and 1, got %f", *c.Coverage)
		}
	}

	if c.Passes != nil && *c.Passes < 1 {
		return fmt.Errorf("passes must be at least 1, got %d", *c.Passes)
	}

	if c.ScanWorkers != nil && *c.ScanWorkers < 0 {
		return fmt.Errorf("scan_workers must be non-negative, got %d", *c.ScanWorkers)
	}

	if c.InputFormat != nil && *c.InputFormat != "" {
		if _, err := heightmap.ParseFormat(*c.InputFormat); err != nil {
			return fmt.Errorf("invalid input_format: %w", err)
		}
	}

	if c.LandThreshold != nil {
		lo, hi := float64(params.MinLandThreshold), float64(params.MaxLandThreshold)
		if !(*c.LandThreshold >= lo && *c.LandThreshold <= hi) {
			return fmt.Errorf("land_threshold must be between %g and %g, got %f", lo, hi, *c.LandThreshold)
		}
	}

	if c.Connectivity != nil && *c.Connectivity != 4 && *c.Connectivity != 8 {
		return fmt.Errorf("connectivity must be 4 or 8, got %d", *c.Connectivity)
	}

	return nil
}

// GetCoverage returns the coverage value or the default (the full grid).
func (c *PipelineConfig) GetCoverage() float32 {
	if c.Coverage == nil {
		return 1.0
	}
	return float32(*c.Coverage)
}

// GetPasses returns the passes value or the default.
func (c *PipelineConfig) GetPasses() int {
	if c.Passes == nil {
		return 1
	}
	return *c.Passes
}

// GetScanWorkers returns the scan_workers value or the default.
func (c *PipelineConfig) GetScanWorkers() int {
	if c.ScanWorkers == nil {
		return 0
	}
	return *c.ScanWorkers
}

// GetInputFormat returns the configured format, or the format guessed from
// path when none is set.
func (c *PipelineConfig) GetInputFormat(path string) heightmap.Format {
	if c.InputFormat == nil || *c.InputFormat == "" {
		return heightmap.FormatFromPath(path)
	}
	f, err := heightmap.ParseFormat(*c.InputFormat)
	if err != nil {
		return heightmap.FormatFromPath(path) // default on parse error
	}
	return f
}

// GetLandThreshold returns the land_threshold value or the default.
func (c *PipelineConfig) GetLandThreshold() float32 {
	if c.LandThreshold == nil {
		return params.DefaultLandThreshold
	}
	return params.LandThresholdFromSlider(float32(*c.LandThreshold))
}

// GetConnectivity returns the connectivity value or the default.
func (c *PipelineConfig) GetConnectivity() int {
	if c.Connectivity == nil {
		return 8
	}
	return *c.Connectivity
}

// GetReportDir returns the report_dir value or "" when no report is wanted.
func (c *PipelineConfig) GetReportDir() string {
	if c.ReportDir == nil {
		return ""
	}
	return *c.ReportDir
}
