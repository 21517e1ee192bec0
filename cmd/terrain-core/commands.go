package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/banshee-data/terrain.core/internal/config"
	"github.com/banshee-data/terrain.core/internal/dispatch"
	"github.com/banshee-data/terrain.core/internal/grid"
	"github.com/banshee-data/terrain.core/internal/heightmap"
	"github.com/banshee-data/terrain.core/internal/monitoring"
	"github.com/banshee-data/terrain.core/internal/params"
	"github.com/banshee-data/terrain.core/internal/report"
)

// loadConfig reads path when set and applies every flag the user passed
// explicitly on top of it.
func loadConfig(fs *flag.FlagSet, path string, overrides map[string]func(*config.PipelineConfig)) (*config.PipelineConfig, error) {
	cfg := config.EmptyPipelineConfig()
	if path != "" {
		var err error
		if cfg, err = config.LoadPipelineConfig(path); err != nil {
			return nil, err
		}
	}
	fs.Visit(func(f *flag.Flag) {
		if apply, ok := overrides[f.Name]; ok {
			apply(cfg)
		}
	})
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func runDispatch(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("dispatch", flag.ContinueOnError)
	configPath := fs.String("config", "", "Pipeline configuration file")
	coverage := fs.Float64("coverage", 1.0, "Fraction of the grid to cover, 0 to 1")
	passes := fs.Int("passes", 1, "Number of compute passes")
	cells := fs.Uint("cells", grid.CellCount, "Total cell count")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(fs, *configPath, map[string]func(*config.PipelineConfig){
		"coverage": func(c *config.PipelineConfig) { c.Coverage = coverage },
		"passes":   func(c *config.PipelineConfig) { c.Passes = passes },
	})
	if err != nil {
		return err
	}

	if *cells > math.MaxUint32 {
		return fmt.Errorf("%w: got %d", dispatch.ErrInvalidGridSize, *cells)
	}
	cellCount := uint32(*cells)
	plan, err := dispatch.Compute(cellCount, cfg.GetCoverage())
	if err != nil {
		return err
	}
	seq, err := dispatch.Sequence(cellCount, cfg.GetCoverage(), cfg.GetPasses())
	if err != nil {
		return err
	}
	block, err := dispatch.MapFlat1DToGPU(cellCount, cfg.GetCoverage())
	if err != nil {
		return err
	}

	return writeJSON(w, struct {
		Plan      dispatch.Plan `json:"plan"`
		Reduction uint32        `json:"reduction"`
		Block     []uint32      `json:"block"`
		Sequence  []uint32      `json:"sequence"`
	}{plan, plan.Reduction(), block, seq})
}

func runMetrics(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("metrics", flag.ContinueOnError)
	configPath := fs.String("config", "", "Pipeline configuration file")
	in := fs.String("in", "", "Heightmap file (required)")
	format := fs.String("format", "", "Input format: f32, f16 or npy (default from file extension)")
	latency := fs.Float64("latency", 0, "Latency in milliseconds to echo in the record")
	measure := fs.Bool("measure", false, "Report the measured scan time as latency")
	workers := fs.Int("workers", 0, "Row scanner goroutines (0 = GOMAXPROCS)")
	reportDir := fs.String("report-dir", "", "Directory for the JSON report, plots and chart")
	landThreshold := fs.Float64("land-threshold", float64(params.DefaultLandThreshold), "Height at which a cell counts as land")
	connectivity := fs.Int("connectivity", 8, "Land neighbourhood, 4 or 8")
	components := fs.Bool("components", false, "Also print land connectivity metrics")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return fmt.Errorf("--in flag is required")
	}
	if math.IsNaN(*latency) || math.IsInf(*latency, 0) {
		return fmt.Errorf("--latency must be finite, got %v", *latency)
	}

	cfg, err := loadConfig(fs, *configPath, map[string]func(*config.PipelineConfig){
		"format":         func(c *config.PipelineConfig) { c.InputFormat = format },
		"workers":        func(c *config.PipelineConfig) { c.ScanWorkers = workers },
		"report-dir":     func(c *config.PipelineConfig) { c.ReportDir = reportDir },
		"land-threshold": func(c *config.PipelineConfig) { c.LandThreshold = landThreshold },
		"connectivity":   func(c *config.PipelineConfig) { c.Connectivity = connectivity },
	})
	if err != nil {
		return err
	}

	hm, err := heightmap.Load(*in, cfg.GetInputFormat(*in))
	if err != nil {
		return err
	}

	analyzer := heightmap.NewAnalyzer(cfg.GetScanWorkers())
	rows, elapsed, err := analyzer.TimedRows(hm)
	if err != nil {
		return err
	}

	latencyMs := *latency
	if *measure {
		latencyMs = float64(elapsed.Microseconds()) / 1000.0
	}
	m := heightmap.MetricsFromTally(heightmap.Sum(rows), grid.CellCount, latencyMs)
	fmt.Fprintln(w, m.String())

	var conn *heightmap.ConnectivityMetrics
	if *components || cfg.GetReportDir() != "" {
		mask := heightmap.LandMask(hm, cfg.GetLandThreshold())
		c, err := heightmap.Connectivity(mask, grid.Width, grid.Height, cfg.GetConnectivity())
		if err != nil {
			return err
		}
		conn = &c
		if *components {
			if err := json.NewEncoder(w).Encode(c); err != nil {
				return err
			}
		}
	}

	if dir := cfg.GetReportDir(); dir != "" {
		return writeReport(dir, *in, m, rows, cfg, conn)
	}
	return nil
}

func writeReport(dir, source string, m heightmap.Metrics, rows []heightmap.Tally, cfg *config.PipelineConfig, conn *heightmap.ConnectivityMetrics) error {
	plan, err := dispatch.Compute(grid.CellCount, cfg.GetCoverage())
	if err != nil {
		return err
	}
	seq, err := dispatch.Sequence(grid.CellCount, cfg.GetCoverage(), cfg.GetPasses())
	if err != nil {
		return err
	}

	r := report.Build(source, m, rows, plan, seq)
	r.Connectivity = conn

	start := report.Clock.Now()
	path, err := r.WriteJSON(dir)
	if err != nil {
		return err
	}
	monitoring.Logf("[terrain] report %s written to %s", r.RunID, path)

	plots, err := r.WritePlot(dir)
	if err != nil {
		return err
	}
	for _, p := range plots {
		monitoring.Logf("[terrain] plot written to %s", p)
	}

	chartPath := filepath.Join(dir, r.Prefix()+".html")
	f, err := os.Create(chartPath)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	if err := r.WriteChart(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to render chart: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close chart file: %w", err)
	}
	monitoring.Logf("[terrain] chart written to %s", chartPath)
	monitoring.Took("report "+r.RunID, report.Clock.Since(start))
	return nil
}

func runNormalize(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("normalize", flag.ContinueOnError)
	slidersPath := fs.String("sliders", "", "Slider snapshot (.json, .yaml or .yml); omit for defaults")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var s params.Sliders
	if *slidersPath != "" {
		var err error
		if s, err = params.LoadSliders(*slidersPath); err != nil {
			return err
		}
	}
	return writeJSON(w, params.Normalize(s))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
