package charts

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chartscope/internal/events"
	"chartscope/internal/logger"
	"chartscope/internal/models"
)

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name    string
		series  []models.SeriesSpec
		wantErr error
	}{
		{
			name:    "duplicate ids",
			series:  []models.SeriesSpec{lineSeries("a", "A", "", 1), lineSeries("a", "B", "", 2)},
			wantErr: ErrDuplicateSeries,
		},
		{
			name:    "unknown gauge subtype",
			series:  []models.SeriesSpec{gaugeSeries("needle", 3)},
			wantErr: models.ErrUnknownGaugeSubtype,
		},
		{
			name:    "nil series",
			series:  []models.SeriesSpec{nil},
			wantErr: models.ErrUnknownSeriesKind,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(models.DefaultChartConfig(), tt.series, WithLogger(logger.Discard()))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLayout(t *testing.T) {
	c := newTestChart(t, models.DefaultChartConfig(), nil,
		lineSeries("cpu", "CPU", "red", 10, 20, 30, 40, 50),
		lineSeries("mem", "Memory", "", 1, 2, 3, 4, 5),
	)

	assert.Equal(t, 35.0, c.YAxisWidth())
	assert.Equal(t, 24.0, c.HeaderHeight())
	assert.Equal(t, 775.0, c.PlotWidth())
	assert.Equal(t, 296.0, c.PlotHeight())

	root := c.Root()
	assert.Equal(t, "test-chart", root.AttrValue("data-chart-id"))
	assert.True(t, root.HasClass("chart"))

	header := root.Select("foreignObject.chart-header")
	require.NotNil(t, header)
	assert.Equal(t, "24px", header.AttrValue("height"))
	assert.Equal(t, "100%", header.AttrValue("width"))

	container := root.Children()[1]
	assert.Equal(t, "translate(85,64)", container.AttrValue("transform"))
	assert.Equal(t, "810", container.AttrValue("width"))
}

func TestHeaderHeightWrapsLegendRows(t *testing.T) {
	cfg := models.DefaultChartConfig()
	cfg.Width = 300
	var series []models.SeriesSpec
	for _, id := range []string{"a", "b", "c", "d"} {
		series = append(series, lineSeries(id, "A rather long series name", "", 1, 2))
	}
	c := newTestChart(t, cfg, nil, series...)

	assert.Equal(t, 4*24.0, c.HeaderHeight())
}

func TestNoLegendNoHeader(t *testing.T) {
	c := newTestChart(t, bareConfig(), nil, lineSeries("cpu", "CPU", "", 1, 2))

	assert.Equal(t, 0.0, c.HeaderHeight())
	assert.Nil(t, c.Root().Select("foreignObject"))
}

func TestLegend(t *testing.T) {
	c := newTestChart(t, models.DefaultChartConfig(), nil,
		lineSeries("cpu", "CPU", "red", 1, 2),
		lineSeries("mem", "Memory", "", 1, 2),
	)

	list := c.Root().Select("div.legend-list")
	require.NotNil(t, list)
	entries := list.SelectAll("div.legend")
	require.Len(t, entries, 2)

	assert.Equal(t, "red", entries[0].Select("div.legend__color").StyleValue("background"))
	assert.Equal(t, DefaultColor, entries[1].Select("div.legend__color").StyleValue("background"))
	assert.Equal(t, "Memory", entries[1].Select("div.legend__name").Text())
	assert.Equal(t, "var(--text-base-color)", entries[1].Select("div.legend__name").StyleValue("color"))
}

func TestAxes(t *testing.T) {
	c := newTestChart(t, models.DefaultChartConfig(), nil,
		lineSeries("cpu", "CPU", "red", 10, 20, 30, 40, 50),
		lineSeries("mem", "Memory", "", 1, 2, 3, 4, 5),
	)
	root := c.Root()

	x := root.Select("g.chart-x-axis")
	require.NotNil(t, x)
	assert.Equal(t, "translate(0,296)", x.AttrValue("transform"))
	assert.Nil(t, x.Select(".domain"))
	assert.Nil(t, x.Select("line"))
	labels := x.SelectAll("text")
	require.Len(t, labels, 8)
	assert.Equal(t, "00:00, 01.01", labels[0].Text())
	assert.Equal(t, "00:40, 01.01", labels[7].Text())
	assert.Equal(t, "var(--text-base-color)", labels[0].StyleValue("fill"))

	cpu := root.Select("g.chart-y-axis-cpu")
	require.NotNil(t, cpu)
	assert.Equal(t, "translate(0,0)", cpu.AttrValue("transform"))
	assert.Nil(t, cpu.Select(".domain"))
	ticks := cpu.SelectAll("text")
	require.Len(t, ticks, 6)
	assert.Equal(t, "0.0", ticks[0].Text())
	assert.Equal(t, "50.0", ticks[5].Text())
	assert.Equal(t, "-10", ticks[0].AttrValue("x"))
	assert.Equal(t, "red", ticks[0].StyleValue("fill"))
	lines := cpu.SelectAll("line")
	require.Len(t, lines, 6)
	assert.Equal(t, "var(--layer)", lines[0].StyleValue("stroke"))
	assert.Equal(t, "775", lines[0].AttrValue("x2"))

	mem := root.Select("g.chart-y-axis-mem")
	require.NotNil(t, mem)
	assert.Equal(t, "translate(-35,0)", mem.AttrValue("transform"))
	assert.Empty(t, mem.SelectAll("line"))
	assert.Equal(t, DefaultColor, mem.Select("text").StyleValue("fill"))
}

func TestYAxisUsesMaxValue(t *testing.T) {
	s := lineSeries("cpu", "CPU", "", 100, 2500)
	s.MaxValue = 5000
	c := newTestChart(t, models.DefaultChartConfig(), nil, s)

	ticks := c.Root().Select("g.chart-y-axis-cpu").SelectAll("text")
	require.Len(t, ticks, 6)
	assert.Equal(t, "1.0k", ticks[1].Text())
	assert.Equal(t, "5.0k", ticks[5].Text())
}

func TestYAxisAllNegative(t *testing.T) {
	c := newTestChart(t, models.DefaultChartConfig(), nil, lineSeries("temp", "Temp", "", -20, -15, -5))

	ticks := c.Root().Select("g.chart-y-axis-temp").SelectAll("text")
	require.Len(t, ticks, 6)
	want := []string{"0.0", "-1.0", "-2.0", "-3.0", "-4.0", "-5.0"}
	for i, tick := range ticks {
		if tick.Text() != want[i] {
			t.Errorf("Expected tick %d to be %s, got %s", i, want[i], tick.Text())
		}
	}
}

func TestShowScalesOff(t *testing.T) {
	cfg := models.DefaultChartConfig()
	cfg.ShowScales = false
	c := newTestChart(t, cfg, nil, lineSeries("cpu", "CPU", "", 1, 2))

	assert.Nil(t, c.Root().Select("g.chart-x-axis"))
	xs, ys, err := c.Scales("cpu")
	require.NoError(t, err)
	assert.NotNil(t, xs)
	assert.NotNil(t, ys)
}

func TestLineRendering(t *testing.T) {
	s := lineSeries("cpu", "CPU", "red", 10, 20, 30)
	s.DashStyle = models.LongDash
	c := newTestChart(t, bareConfig(), nil, s)

	paths := c.Root().SelectAll("path")
	require.Len(t, paths, 1)
	p := paths[0]
	assert.Equal(t, "red", p.AttrValue("stroke"))
	assert.Equal(t, "none", p.AttrValue("fill"))
	assert.Equal(t, "9 3", p.AttrValue("stroke-dasharray"))
	assert.Equal(t, "1.5", p.AttrValue("stroke-width"))
	assert.Equal(t, "round", p.AttrValue("stroke-linejoin"))
	assert.Equal(t, "none", p.StyleValue("pointer-events"))
	assert.True(t, strings.HasPrefix(p.AttrValue("d"), "M0,"))

	circles := c.Root().SelectAll("circle")
	require.Len(t, circles, 2)
	assert.Equal(t, "7", circles[0].AttrValue("r"))
	assert.Equal(t, "0", circles[0].StyleValue("opacity"))
	assert.Equal(t, "10", circles[1].AttrValue("r"))
	assert.Equal(t, "red", circles[1].AttrValue("stroke"))
}

func TestDashArray(t *testing.T) {
	tests := map[models.DashStyle]string{
		models.Solid:     "",
		models.Dash:      "5",
		models.ShortDash: "2 4",
		models.LongDash:  "9 3",
		models.Dot:       "0.3 6",
		models.DashDot:   "8 4 1 4",
		"Wavy":           "",
	}
	for style, want := range tests {
		if got := DashArray(style); got != want {
			t.Errorf("DashArray(%s): expected %q, got %q", style, want, got)
		}
	}
}

func TestCriticalAreasGradient(t *testing.T) {
	cfg := bareConfig()
	cfg.ShowCriticalAreas = true
	s := lineSeries("cpu", "CPU", "red", 10, 20, 30, 40, 50)
	s.WarningValue = 20
	s.CriticalValue = 40
	c := newTestChart(t, cfg, nil, s)

	grad := c.Root().Select("linearGradient")
	require.NotNil(t, grad)
	assert.Equal(t, "areas-gradient-cpu", grad.AttrValue("id"))
	assert.Equal(t, "userSpaceOnUse", grad.AttrValue("gradientUnits"))
	assert.Equal(t, "320", grad.AttrValue("y1"))
	assert.Equal(t, "0", grad.AttrValue("y2"))

	var offsets []string
	for _, stop := range grad.SelectAll("stop") {
		offsets = append(offsets, stop.AttrValue("offset"))
	}
	assert.Equal(t, []string{"0%", "25%", "25%", "75%", "75%", "100%"}, offsets)
	assert.Equal(t, "url(#areas-gradient-cpu)", c.Root().Select("path").AttrValue("stroke"))
}

func TestCriticalAreasNeedThresholds(t *testing.T) {
	cfg := bareConfig()
	cfg.ShowCriticalAreas = true

	noThreshold := lineSeries("a", "A", "red", 1, 2)
	noThreshold.CriticalValue = 40
	toggledOff := lineSeries("b", "B", "red", 1, 2)
	toggledOff.WarningValue, toggledOff.CriticalValue = 1, 2
	toggledOff.Gradient = false

	c := newTestChart(t, cfg, nil, noThreshold, toggledOff)
	assert.Nil(t, c.Root().Select("linearGradient"))
}

func TestEmptySeriesDegradesGracefully(t *testing.T) {
	empty := lineSeries("idle", "Idle", "")
	c := newTestChart(t, models.DefaultChartConfig(), nil, empty, lineSeries("cpu", "CPU", "", 1, 2))

	xs, ys, err := c.Scales("idle")
	require.NoError(t, err)
	assert.Nil(t, xs)
	assert.Nil(t, ys)
	assert.Nil(t, c.Root().Select("g.chart-x-axis"))
	assert.Nil(t, c.Root().Select("g.chart-y-axis-idle"))
	assert.NotNil(t, c.Root().Select("g.chart-y-axis-cpu"))

	c.PointerEnter()
	c.PointerMove(100, 100)
	require.NotNil(t, c.Tooltip())
	assert.Len(t, c.Tooltip().Rows(), 1)

	assert.NoError(t, c.BrushTo(10, 200))
}

func TestHoverTooltipClampsToPlotWidth(t *testing.T) {
	c := newTestChart(t, models.DefaultChartConfig(), nil,
		lineSeries("cpu", "CPU", "red", 10, 20, 30),
		lineSeries("mem", "Memory", "", 1, 2, 3),
	)
	require.Equal(t, 775.0, c.PlotWidth())

	c.PointerEnter()
	c.PointerMove(770, 50)

	x, _ := c.Tooltip().Position()
	// right edge of the plot less three quarters of the panel width
	if want := 775.0 - TooltipWidth*3/4; x != want {
		t.Errorf("Expected tooltip x %v, got %v", want, x)
	}
}

func TestHoverTooltip(t *testing.T) {
	c := newTestChart(t, models.DefaultChartConfig(), nil, lineSeries("cpu", "CPU", "red", 10, 20, 30, 40, 50))
	// plot is 810x296: ten minutes every 202.5px

	c.PointerEnter()
	c.PointerMove(200, 50)

	tip := c.Tooltip()
	require.NotNil(t, tip)
	rows := tip.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "20.00", rows[0].Y)
	assert.Equal(t, "CPU", rows[0].Name)
	assert.Equal(t, "red", rows[0].Color)

	x, y := tip.Position()
	assert.Equal(t, 220.0, x)
	assert.Equal(t, 0.0, y)

	circles := c.Root().SelectAll("circle")
	require.Len(t, circles, 2)
	assert.Equal(t, "1", circles[0].StyleValue("opacity"))
	assert.Equal(t, "202.5", circles[0].AttrValue("cx"))
	assert.Equal(t, "177.6", circles[0].AttrValue("cy"))
	assert.Equal(t, "0.5", circles[1].StyleValue("opacity"))

	c.PointerLeave()
	assert.Nil(t, c.Tooltip())
	assert.Equal(t, "0", circles[0].StyleValue("opacity"))
	assert.Equal(t, "0", circles[1].StyleValue("opacity"))
	assert.Len(t, c.Root().SelectAll("foreignObject"), 1, "only the legend header remains")
}

func TestHoverWithoutZoomUsesPlainRect(t *testing.T) {
	cfg := models.DefaultChartConfig()
	cfg.EnableZoom = false
	c := newTestChart(t, cfg, nil, lineSeries("cpu", "CPU", "", 1, 2))

	assert.Nil(t, c.Brush())
	assert.Nil(t, c.Root().Select("g.pointer-container"))

	rect := c.Root().Select("rect")
	require.NotNil(t, rect)
	assert.Equal(t, "810", rect.AttrValue("width"))
	assert.Equal(t, "320", rect.AttrValue("height"))
	assert.Equal(t, "translate(50,40)", rect.AttrValue("transform"))
	assert.Equal(t, "all", rect.StyleValue("pointer-events"))

	c.PointerMove(10, 10)
	assert.NotNil(t, c.Tooltip())
	assert.Error(t, c.BrushTo(0, 10))
}

func TestZoom(t *testing.T) {
	c := newTestChart(t, models.DefaultChartConfig(), nil, lineSeries("cpu", "CPU", "", 10, 20, 30, 40, 50))

	var got []events.ZoomRange
	c.Events().OnEvent(events.Zoom, events.Listener(func(e events.Event) {
		got = append(got, e.Payload.(events.ZoomRange))
	}))

	require.NotNil(t, c.Brush())
	assert.Equal(t, "none", c.Root().Select("g.pointer-container").Select("rect.selection").StyleValue("stroke"))

	require.NoError(t, c.BrushTo(0, 405))
	require.Len(t, got, 1)
	assert.Equal(t, events.ZoomRange{Start: "2024-01-01 00:00:00", End: "2024-01-01 00:20:00"}, got[0])

	// dragging right to left selects the same range
	require.NoError(t, c.BrushTo(405, 0))
	require.Len(t, got, 2)
	assert.Equal(t, got[0], got[1])
}

func TestZoomEmptySelection(t *testing.T) {
	c := newTestChart(t, models.DefaultChartConfig(), nil, lineSeries("cpu", "CPU", "", 10, 20, 30))

	fired := 0
	c.Events().OnEvent(events.Zoom, events.Listener(func(events.Event) { fired++ }))

	require.NoError(t, c.BrushTo(100, 100))
	assert.Equal(t, 0, fired)
}

func TestZoomSnapsToSameSample(t *testing.T) {
	c := newTestChart(t, models.DefaultChartConfig(), nil, lineSeries("cpu", "CPU", "", 10, 20, 30, 40, 50))

	var got []events.ZoomRange
	c.Events().OnEvent(events.Zoom, events.Listener(func(e events.Event) {
		got = append(got, e.Payload.(events.ZoomRange))
	}))

	// both ends are nearest to the 00:10 sample
	require.NoError(t, c.BrushTo(190, 210))
	require.Len(t, got, 1)
	assert.Equal(t, "2024-01-01 00:09:22", got[0].Start)
	assert.Equal(t, "2024-01-01 00:10:22", got[0].End)
	assert.Less(t, got[0].Start, got[0].End)
}

func TestZoomSingleSampleIgnored(t *testing.T) {
	c := newTestChart(t, models.DefaultChartConfig(), nil, lineSeries("cpu", "CPU", "", 10))

	fired := 0
	c.Events().OnEvent(events.Zoom, events.Listener(func(events.Event) { fired++ }))

	require.NoError(t, c.BrushTo(10, 300))
	assert.Equal(t, 0, fired)
}

func TestUpdateGaugeErrors(t *testing.T) {
	c := newTestChart(t, bareConfig(), nil, lineSeries("cpu", "CPU", "", 1, 2))

	assert.ErrorIs(t, c.UpdateGauge("nope", 1), ErrUnknownSeries)
	assert.ErrorIs(t, c.UpdateGauge("cpu", 1), ErrNotGauge)
}

func TestWriteOutputs(t *testing.T) {
	cfg := models.DefaultChartConfig()
	cfg.Target = "cpu-chart"
	c := newTestChart(t, cfg, nil, lineSeries("cpu", "CPU", "red", 10, 20, 30))

	var svg bytes.Buffer
	require.NoError(t, c.WriteSVG(&svg))
	out := svg.String()
	assert.True(t, strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" class="chart"`))
	assert.Contains(t, out, `id="cpu-chart"`)
	assert.Contains(t, out, `<div xmlns="http://www.w3.org/1999/xhtml" class="chart-header__inner">`)

	var png bytes.Buffer
	require.NoError(t, c.WritePNG(&png))
	assert.True(t, bytes.HasPrefix(png.Bytes(), []byte("\x89PNG")))
}

func TestDestroyAndRender(t *testing.T) {
	c := newTestChart(t, models.DefaultChartConfig(), nil, lineSeries("cpu", "CPU", "red", 10, 20, 30))

	zooms := 0
	c.Events().OnEvent(events.Zoom, events.Listener(func(events.Event) { zooms++ }))

	c.Destroy()
	assert.Nil(t, c.Root())
	assert.ErrorIs(t, c.WriteSVG(&bytes.Buffer{}), ErrDestroyed)
	assert.ErrorIs(t, c.WritePNG(&bytes.Buffer{}), ErrDestroyed)

	// input on a destroyed chart is ignored
	c.PointerMove(10, 10)
	assert.Error(t, c.BrushTo(0, 100))

	require.NoError(t, c.Render())
	require.NotNil(t, c.Root())
	require.NoError(t, c.BrushTo(0, 400))
	assert.Equal(t, 1, zooms, "host subscriptions survive a re-render")
}

func TestRenderIsRepeatable(t *testing.T) {
	c := newTestChart(t, models.DefaultChartConfig(), nil,
		lineSeries("cpu", "CPU", "red", 10, 20, 30),
		gaugeSeries(models.SubtypeSegment, 40),
	)
	first := c.Root().SVG()

	require.NoError(t, c.Render())
	assert.Equal(t, first, c.Root().SVG())
}
