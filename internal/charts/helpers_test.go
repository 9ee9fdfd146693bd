package charts

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"

	"chartscope/internal/logger"
	"chartscope/internal/models"
	"chartscope/internal/timefmt"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// samples returns one sample every ten minutes from t0
func samples(ys ...float64) []models.SampleRecord {
	out := make([]models.SampleRecord, len(ys))
	for i, y := range ys {
		out[i] = models.SampleRecord{X: t0.Add(time.Duration(i) * 10 * time.Minute), Y: y}
	}
	return out
}

func lineSeries(id, name, color string, ys ...float64) *models.LineSeries {
	return &models.LineSeries{
		SeriesCommon: models.SeriesCommon{ID: id, Name: name, Color: color, Data: samples(ys...)},
		Gradient:     true,
	}
}

func gaugeSeries(subtype models.GaugeSubtype, value float64) *models.GaugeSeries {
	return &models.GaugeSeries{
		SeriesCommon: models.SeriesCommon{
			ID:       "load",
			Name:     "Load",
			MaxValue: 100,
			Data:     []models.SampleRecord{{X: t0, Y: value}},
		},
		Unit: "%",
		Points: []models.GaugeBreakpoint{
			{Point: 50, Color: "green"},
			{Point: 80, Color: "yellow"},
			{Point: 100, Color: "red"},
		},
		Subtype: subtype,
	}
}

// bareConfig disables every optional sub-tree
func bareConfig() models.ChartConfig {
	cfg := models.DefaultChartConfig()
	cfg.ShowLegend = false
	cfg.ShowScales = false
	cfg.ShowTooltip = false
	cfg.EnableZoom = false
	return cfg
}

func newTestChart(t *testing.T, cfg models.ChartConfig, clk clock.Clock, series ...models.SeriesSpec) *Chart {
	t.Helper()
	if clk == nil {
		clk = clock.NewMock()
	}
	c, err := New(cfg, series,
		WithLogger(logger.Discard()),
		WithClock(clk),
		WithFormatter(timefmt.New(time.UTC)),
		WithID("test-chart"),
	)
	if err != nil {
		t.Fatalf("Failed to create chart: %v", err)
	}
	return c
}
