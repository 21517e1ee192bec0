package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/terrain.core/internal/grid"
)

// WriteChart renders an interactive HTML line chart of turns and drainage
// per row to w.
func (r *Report) WriteChart(w io.Writer) error {
	turns := turnSeries(r.rows)
	drain := drainageSeries(r.rows, grid.Width)

	xs := make([]string, len(r.rows))
	turnData := make([]opts.LineData, len(r.rows))
	drainData := make([]opts.LineData, len(r.rows))
	for i := range r.rows {
		xs[i] = strconv.Itoa(i)
		turnData[i] = opts.LineData{Value: turns[i]}
		drainData[i] = opts.LineData{Value: drain[i], YAxisIndex: 1}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Terrain Row Profile", Theme: "dark", Width: "1200px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{Title: "Terrain Row Profile", Subtitle: fmt.Sprintf("run=%s sinuosity=%.6f drainage=%.2f%%", r.RunID, r.Metrics.SinuosityIndex, r.Metrics.HydroDrainagePct)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Row"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Turns"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", Start: 0, End: 100}),
	)
	line.ExtendYAxis(opts.YAxis{Name: "Drained %", Min: 0, Max: 100})

	line.SetXAxis(xs).
		AddSeries("turns", turnData).
		AddSeries("drainage %", drainData)

	return line.Render(w)
}
