package report

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/terrain.core/internal/grid"
)

var (
	turnColor     = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	drainageColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}
)

// WritePlot renders turns per row and drained percentage per row as two
// PNG files in dir and returns their paths.
func (r *Report) WritePlot(dir string) ([]string, error) {
	if len(r.rows) == 0 {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}

	pTurns := plot.New()
	pTurns.Title.Text = fmt.Sprintf("Turns per Row (mean %.1f, stddev %.1f)", r.Rows.TurnsMean, r.Rows.TurnsStdDev)
	pTurns.X.Label.Text = "Row"
	pTurns.Y.Label.Text = "Turns"

	pDrain := plot.New()
	pDrain.Title.Text = fmt.Sprintf("Drainage per Row (total %.2f%%)", r.Metrics.HydroDrainagePct)
	pDrain.X.Label.Text = "Row"
	pDrain.Y.Label.Text = "Drained cells (%)"

	if err := addSeries(pTurns, turnSeries(r.rows), turnColor); err != nil {
		return nil, err
	}
	if err := addSeries(pDrain, drainageSeries(r.rows, grid.Width), drainageColor); err != nil {
		return nil, err
	}

	turnsFile := filepath.Join(dir, r.Prefix()+"_turns.png")
	if err := pTurns.Save(14*vg.Inch, 6*vg.Inch, turnsFile); err != nil {
		return nil, fmt.Errorf("failed to save turns plot: %w", err)
	}
	drainFile := filepath.Join(dir, r.Prefix()+"_drainage.png")
	if err := pDrain.Save(14*vg.Inch, 6*vg.Inch, drainFile); err != nil {
		return nil, fmt.Errorf("failed to save drainage plot: %w", err)
	}
	return []string{turnsFile, drainFile}, nil
}

func addSeries(p *plot.Plot, ys []float64, c color.Color) error {
	pts := make(plotter.XYs, len(ys))
	for i, y := range ys {
		pts[i] = plotter.XY{X: float64(i), Y: y}
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("failed to create line: %w", err)
	}
	line.Color = c
	line.Width = vg.Points(1)
	p.Add(line)
	return nil
}
