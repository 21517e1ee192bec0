package heightmap

import (
	"errors"
	"fmt"
	"math"

	"github.com/banshee-data/terrain.core/internal/grid"
)

// metricsFormat is the fixed schema consumed by the host. Field order and
// six-decimal precision are part of the contract.
const metricsFormat = `{"sinuosity_index":%.6f,"straight_to_turn_ratio":%.6f,"hydro_drainage_pct":%.6f,"latency_ms":%.6f}`

// ErrNonFiniteMetric is returned when a metric cannot be encoded as JSON.
var ErrNonFiniteMetric = errors.New("metric is not finite")

// Metrics are the scalar terrain-quality figures for one heightmap.
// LatencyMs is supplied by the caller and echoed unchanged.
type Metrics struct {
	SinuosityIndex      float64
	StraightToTurnRatio float64
	HydroDrainagePct    float64
	LatencyMs           float64

	// Tally is the raw scan result the metrics were derived from.
	Tally Tally
}

// MetricsFromTally derives the metrics from a combined tally over cells
// grid cells.
func MetricsFromTally(t Tally, cells int, latencyMs float64) Metrics {
	turns := float64(t.Turns)
	straights := float64(t.Straights)
	return Metrics{
		SinuosityIndex:      1.0 + (turns/float64(max(t.Straights, 1)))*SinuosityScale,
		StraightToTurnRatio: straights / float64(max(t.Turns, 1)),
		HydroDrainagePct:    float64(t.Drainage) / float64(cells) * 100.0,
		LatencyMs:           latencyMs,
		Tally:               t,
	}
}

// ComputeMetrics scans hm sequentially and derives its metrics.
func ComputeMetrics(hm []float32, latencyMs float64) (Metrics, error) {
	t, err := ScanGrid(hm)
	if err != nil {
		return Metrics{}, err
	}
	return MetricsFromTally(t, grid.CellCount, latencyMs), nil
}

// SourceOfTruthJSON returns the formatted metrics record for hm.
func SourceOfTruthJSON(hm []float32, latencyMs float64) (string, error) {
	m, err := ComputeMetrics(hm, latencyMs)
	if err != nil {
		return "", err
	}
	return m.String(), nil
}

// String formats m with the fixed schema.
func (m Metrics) String() string {
	return fmt.Sprintf(metricsFormat, m.SinuosityIndex, m.StraightToTurnRatio, m.HydroDrainagePct, m.LatencyMs)
}

// MarshalJSON implements json.Marshaler with the fixed schema. The raw
// tally is not part of the record. JSON has no NaN or infinity, so a
// non-finite field is an error.
func (m Metrics) MarshalJSON() ([]byte, error) {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"sinuosity_index", m.SinuosityIndex},
		{"straight_to_turn_ratio", m.StraightToTurnRatio},
		{"hydro_drainage_pct", m.HydroDrainagePct},
		{"latency_ms", m.LatencyMs},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return nil, fmt.Errorf("%w: %s is %v", ErrNonFiniteMetric, f.name, f.v)
		}
	}
	return []byte(m.String()), nil
}
