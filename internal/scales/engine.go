// Package scales derives coordinate mappings, tick sets, nearest samples and
// threshold gradients for chart series.
package scales

import (
	"fmt"
	"math"
	"time"

	"github.com/wcharczuk/go-chart/v2"

	"chartscope/internal/models"
)

// Engine builds per-series scales for one plot area
type Engine struct {
	PlotWidth  float64
	PlotHeight float64
}

// NewEngine creates an engine for a plot of the given pixel size
func NewEngine(plotWidth, plotHeight float64) *Engine {
	return &Engine{PlotWidth: plotWidth, PlotHeight: plotHeight}
}

// CreateXScale maps [first.X, last.X] onto [0, PlotWidth]. Samples are
// assumed ascending. Returns nil for an empty series.
func (e *Engine) CreateXScale(samples []models.SampleRecord) *TimeScale {
	if len(samples) == 0 {
		return nil
	}
	return NewTime(samples[0].X, samples[len(samples)-1].X, 0, e.PlotWidth)
}

// CreateYScale maps [min(Y), max(Y)] onto [PlotHeight, 0] with the lower
// bound clamped to at most zero. Returns nil for an empty series.
func (e *Engine) CreateYScale(samples []models.SampleRecord) *LinearScale {
	if len(samples) == 0 {
		return nil
	}
	lo, hi := Extent(samples)
	if lo > 0 {
		lo = 0
	}
	return NewLinear(lo, hi, e.PlotHeight, 0)
}

// Extent returns the smallest and largest Y of samples
func Extent(samples []models.SampleRecord) (float64, float64) {
	if len(samples) == 0 {
		return 0, 0
	}
	lo, hi := samples[0].Y, samples[0].Y
	for _, s := range samples[1:] {
		lo = math.Min(lo, s.Y)
		hi = math.Max(hi, s.Y)
	}
	return lo, hi
}

// XTickNumber picks the x tick count for a chart width
func XTickNumber(width float64) int {
	switch {
	case width >= 800:
		return 7
	case width >= 400:
		return 5
	case width < 400:
		return 3
	default:
		return 5
	}
}

// TickList returns n+1 evenly spaced values from min to max, descending when
// max < min. A zero span, n < 1 or non-finite input yields [max].
func TickList(min, max float64, n int) []float64 {
	if n < 1 || max == min || !isFinite(min) || !isFinite(max) {
		return []float64{max}
	}
	step := (max - min) / float64(n)
	ticks := make([]float64, n+1)
	for i := range ticks {
		ticks[i] = min + float64(i)*step
	}
	ticks[n] = max
	return ticks
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// TimeTickList is TickList over a time domain
func TimeTickList(t0, t1 time.Time, n int) []time.Time {
	values := TickList(chart.TimeToFloat64(t0), chart.TimeToFloat64(t1), n)
	ticks := make([]time.Time, len(values))
	for i, v := range values {
		ticks[i] = chart.TimeFromFloat64(v).In(t1.Location())
	}
	ticks[0] = t0
	ticks[len(ticks)-1] = t1
	return ticks
}

// FormatTick renders a y tick with k, kk and kkk suffixes for thousands,
// millions and billions
func FormatTick(v float64) string {
	switch {
	case v >= 1000 && v <= 999999:
		return fmt.Sprintf("%.1fk", v/1e3)
	case v > 999999 && v <= 999999999:
		return fmt.Sprintf("%.1fkk", v/1e6)
	case v > 999999999:
		return fmt.Sprintf("%.1fkkk", v/1e9)
	default:
		return fmt.Sprintf("%.1f", v)
	}
}
