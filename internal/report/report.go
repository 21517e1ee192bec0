// Package report assembles an analysis run into a JSON summary, a PNG
// row-profile plot and an HTML chart for offline inspection.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/terrain.core/internal/dispatch"
	"github.com/banshee-data/terrain.core/internal/heightmap"
	"github.com/banshee-data/terrain.core/internal/timeutil"
)

// Clock stamps GeneratedAt. Tests may replace it.
var Clock timeutil.Clock = timeutil.RealClock{}

// RowStats summarises how turns are distributed over the rows.
type RowStats struct {
	TurnsMean   float64 `json:"turns_mean"`
	TurnsStdDev float64 `json:"turns_stddev"`
	TurnsMax    float64 `json:"turns_max"`
	MaxRow      int     `json:"max_row"`
}

// Report is one analysis run.
type Report struct {
	RunID        string                         `json:"run_id"`
	GeneratedAt  time.Time                      `json:"generated_at"`
	Source       string                         `json:"source,omitempty"`
	Metrics      heightmap.Metrics              `json:"metrics"`
	Tally        heightmap.Tally                `json:"tally"`
	Plan         dispatch.Plan                  `json:"plan"`
	Sequence     []uint32                       `json:"dispatch_sequence,omitempty"`
	Rows         RowStats                       `json:"rows"`
	Connectivity *heightmap.ConnectivityMetrics `json:"connectivity,omitempty"`

	rows []heightmap.Tally
}

// Build assembles a report from per-row tallies and the metrics derived
// from them.
func Build(source string, m heightmap.Metrics, rows []heightmap.Tally, plan dispatch.Plan, seq []uint32) *Report {
	return &Report{
		RunID:       uuid.New().String(),
		GeneratedAt: Clock.Now().UTC(),
		Source:      source,
		Metrics:     m,
		Tally:       m.Tally,
		Plan:        plan,
		Sequence:    seq,
		Rows:        rowStats(rows),
		rows:        rows,
	}
}

func rowStats(rows []heightmap.Tally) RowStats {
	if len(rows) == 0 {
		return RowStats{}
	}
	turns := turnSeries(rows)
	mean, std := stat.MeanStdDev(turns, nil)
	return RowStats{
		TurnsMean:   mean,
		TurnsStdDev: std,
		TurnsMax:    floats.Max(turns),
		MaxRow:      floats.MaxIdx(turns),
	}
}

func turnSeries(rows []heightmap.Tally) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = float64(r.Turns)
	}
	return out
}

// drainageSeries returns the drained fraction of each row in percent.
func drainageSeries(rows []heightmap.Tally, width int) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = float64(r.Drainage) / float64(width) * 100
	}
	return out
}

// Prefix returns the file name prefix shared by every artifact of the run.
func (r *Report) Prefix() string {
	if r.Source == "" {
		return "terrain_" + r.RunID
	}
	base := filepath.Base(r.Source)
	if i := strings.IndexByte(base, '.'); i > 0 {
		base = base[:i]
	}
	return "terrain_" + sanitizeFilename(base) + "_" + r.RunID
}

// sanitizeFilename replaces every run of characters outside [A-Za-z0-9_-]
// with one underscore and caps the result at 64 bytes.
func sanitizeFilename(s string) string {
	const maxLen = 64
	var b strings.Builder
	lastUnderscore := false
	for _, r := range s {
		if b.Len() >= maxLen {
			break
		}
		switch {
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-':
			b.WriteRune(r)
			lastUnderscore = false
		case !lastUnderscore:
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	out := strings.Trim(b.String(), "_")
	if out == "" {
		return "heightmap"
	}
	return out
}

// WriteJSON writes the report as indented JSON into dir and returns the
// file path.
func (r *Report) WriteJSON(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}
	path := filepath.Join(dir, r.Prefix()+".json")
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}
