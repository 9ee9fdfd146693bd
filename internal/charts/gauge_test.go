package charts

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chartscope/internal/models"
	"chartscope/internal/scene"
)

func TestGaugeColor(t *testing.T) {
	breakpoints := []float64{50, 80, 100}
	colors := []string{"green", "yellow", "red"}

	tests := []struct {
		value float64
		want  string
	}{
		{40, "green"},
		{50, "yellow"},
		{65, "yellow"},
		{99.9, "red"},
		{150, "red"},
		{-5, "green"},
	}
	for _, tt := range tests {
		if got := GaugeColor(tt.value, breakpoints, colors); got != tt.want {
			t.Errorf("GaugeColor(%v): expected %s, got %s", tt.value, tt.want, got)
		}
	}
}

func TestGaugeColorMoreBreakpointsThanColors(t *testing.T) {
	got := GaugeColor(85, []float64{50, 80, 90, 100}, []string{"green", "yellow", "red"})
	assert.Equal(t, "red", got)
	assert.Equal(t, "", GaugeColor(1, []float64{5}, nil))
}

func TestSolidGaugeStructure(t *testing.T) {
	c := newTestChart(t, bareConfig(), nil, gaugeSeries(models.SubtypeSolid, 40))

	root := c.Root()
	arcChart := root.Select("g.arc-chart")
	require.NotNil(t, arcChart)
	assert.Equal(t, "translate(450,400)", arcChart.AttrValue("transform"))

	arc := arcChart.Select("g.arc")
	require.NotNil(t, arc)
	assert.Equal(t, "var(--layer)", arc.Select("path.arc__bg").StyleValue("fill"))
	assert.Equal(t, "#55BB00", arc.Select("path.arc__data").StyleValue("fill"))

	value := arc.Select("text.arc__value")
	assert.Equal(t, "40", value.Text())
	assert.Equal(t, "-15", value.AttrValue("y"))
	assert.Equal(t, "0", value.AttrValue("x"))
	assert.Equal(t, "30px", value.StyleValue("font-size"))

	units := arc.Select("text.arc__units")
	assert.Equal(t, "%", units.Text())
	assert.Equal(t, "-45", units.AttrValue("y"))

	ring := arc.SelectAll("g.arc__threshold")
	require.Len(t, ring, 1)
	paths := ring[0].SelectAll("path")
	require.Len(t, paths, 3)
	assert.Equal(t, "1", paths[0].StyleValue("opacity"))
	assert.Equal(t, "0.2", paths[1].StyleValue("opacity"))
	assert.Equal(t, "0.2", paths[2].StyleValue("opacity"))
	assert.Equal(t, "green", paths[0].AttrValue("fill"))
}

func TestThresholdRingRadii(t *testing.T) {
	c := newTestChart(t, bareConfig(), nil, gaugeSeries(models.SubtypeSolid, 40))
	g, err := c.Gauge("load")
	require.NoError(t, err)

	ring := g.Node().Select("g.arc__threshold")
	min, max := ring.SelectAll("path")[0].Path().Bounds()
	// the first band sweeps from -90 to 0 degrees at radius 86..88
	assert.InDelta(t, -88, min.X, 1e-6)
	assert.InDelta(t, -88, min.Y, 1e-6)
	assert.InDelta(t, 0, max.X, 1e-6)
	assert.InDelta(t, 0, max.Y, 1e-6)
}

func TestSegmentGaugeStructure(t *testing.T) {
	c := newTestChart(t, bareConfig(), nil, gaugeSeries(models.SubtypeSegment, 40))

	arcChart := c.Root().Select("g.arc-chart")
	assert.Equal(t, "translate(450,200)", arcChart.AttrValue("transform"))
	assert.Nil(t, arcChart.Select("g.arc__threshold"))
	assert.Nil(t, arcChart.Select("text.arc__value"))

	data := arcChart.Select("g.arc__data")
	require.NotNil(t, data)
	paths := data.SelectAll("path")
	require.Len(t, paths, 3)
	for i, want := range []string{"green", "yellow", "red"} {
		assert.Equal(t, want, paths[i].AttrValue("fill"))
		assert.Equal(t, "1", paths[i].StyleValue("opacity"))
	}

	segs := paths[1].Datum().(models.GaugeSegment)
	assert.Equal(t, 0.5, segs.Start)
	assert.Equal(t, 0.8, segs.End)
}

func TestGaugeAnimation(t *testing.T) {
	mock := clock.NewMock()
	c := newTestChart(t, bareConfig(), mock, gaugeSeries(models.SubtypeSolid, 40))
	g, err := c.Gauge("load")
	require.NoError(t, err)

	assert.True(t, g.Animating())
	assert.Equal(t, -90.0, g.Angle())

	assert.True(t, c.Tick())
	assert.Equal(t, -90.0, g.Angle())

	mock.Add(GaugeAnimation / 2)
	assert.True(t, c.Tick())
	assert.InDelta(t, -54, g.Angle(), 1e-9)

	mock.Add(GaugeAnimation / 2)
	assert.False(t, c.Tick())
	assert.InDelta(t, -18, g.Angle(), 1e-9)
	assert.False(t, g.Animating())

	// nothing left to advance
	assert.False(t, c.Tick())
}

func TestGaugeUpdateSupersedes(t *testing.T) {
	mock := clock.NewMock()
	c := newTestChart(t, bareConfig(), mock, gaugeSeries(models.SubtypeSolid, 40))
	g, err := c.Gauge("load")
	require.NoError(t, err)

	mock.Add(time.Second)
	c.Tick()
	require.InDelta(t, -18, g.Angle(), 1e-9)

	require.NoError(t, c.UpdateGauge("load", 100))
	mock.Add(GaugeAnimation / 2)
	c.Tick()
	assert.InDelta(t, 36, g.Angle(), 1e-9)

	// a new value starts from the rendered angle, not from the old target
	require.NoError(t, c.UpdateGauge("load", 0))
	c.Tick()
	assert.InDelta(t, 36, g.Angle(), 1e-9)

	mock.Add(GaugeAnimation)
	assert.False(t, c.Tick())
	assert.Equal(t, -90.0, g.Angle())
	assert.Equal(t, "0", g.Node().Select("text.arc__value").Text())

	s, _ := c.Series("load")
	assert.Equal(t, 0.0, s.Common().Data[0].Y)
}

func TestChartSettleFinishesGauges(t *testing.T) {
	mock := clock.NewMock()
	c := newTestChart(t, bareConfig(), mock, gaugeSeries(models.SubtypeSolid, 65))
	g, err := c.Gauge("load")
	require.NoError(t, err)
	require.True(t, g.Animating())

	c.Settle()
	assert.False(t, g.Animating())
	assert.InDelta(t, 27, g.Angle(), 1e-9)
	assert.False(t, c.Tick(), "settled gauges have nothing left to advance")

	min, max := g.Node().Select("path.arc__data").Path().Bounds()
	assert.InDelta(t, -80, min.X, 1e-6)
	assert.InDelta(t, 80*math.Sin(27*math.Pi/180), max.X, 1e-6)

	// settling twice is a no-op
	c.Settle()
	assert.InDelta(t, 27, g.Angle(), 1e-9)
}

func TestGaugeUpdateRecolours(t *testing.T) {
	c := newTestChart(t, bareConfig(), nil, gaugeSeries(models.SubtypeSolid, 40))
	g, _ := c.Gauge("load")

	g.Update(65)
	assert.Equal(t, "#FFB800", g.Node().Select("path.arc__data").StyleValue("fill"))

	g.Update(90)
	assert.Equal(t, "#FF4331", g.Node().Select("path.arc__data").StyleValue("fill"))
	for _, p := range g.Node().Select("g.arc__threshold").SelectAll("path") {
		assert.Equal(t, "1", p.StyleValue("opacity"))
	}
}

func TestGaugeDataArcGeometry(t *testing.T) {
	mock := clock.NewMock()
	c := newTestChart(t, bareConfig(), mock, gaugeSeries(models.SubtypeSolid, 100))
	g, _ := c.Gauge("load")

	mock.Add(time.Second)
	c.Tick()

	min, max := g.Node().Select("path.arc__data").Path().Bounds()
	assert.InDelta(t, -80, min.X, 1e-6)
	assert.InDelta(t, 80, max.X, 1e-6)
	assert.InDelta(t, -80, min.Y, 1e-6)
	assert.LessOrEqual(t, max.Y, 1e-6)
}

func TestNewGaugeRejectsUnknownSubtype(t *testing.T) {
	_, err := NewGauge(scene.New("g"), gaugeSeries("needle", 1), GaugeOptions{})
	assert.True(t, errors.Is(err, models.ErrUnknownGaugeSubtype))
}

func TestGaugeZeroMax(t *testing.T) {
	s := gaugeSeries(models.SubtypeSolid, 5)
	s.MaxValue = 0

	g, err := NewGauge(scene.New("g"), s, GaugeOptions{Clock: clock.NewMock()})
	require.NoError(t, err)
	assert.Empty(t, g.Segments())
	assert.False(t, math.IsNaN(g.Angle()))
}
