package models

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDefinition = `
chart:
  target: host-metrics
  width: 600
  margin:
    top: 20
  showCriticalAreas: true
  enableZoom: false
notes: |
  # Host metrics
series:
  - type: line
    id: cpu
    name: CPU
    color: "#3366ff"
    dashStyle: Dash
    warningValue: 30
    criticalValue: 70
    maxValue: 100
    data:
      - {x: "2024-01-01T00:00:00Z", y: 10}
      - {x: "2024-01-01 00:05:00", y: "55.5"}
      - {x: 1704067800000, y: 90}
  - type: gauge
    id: disk
    name: Disk
    unit: "%"
    maxValue: 100
    subtype: segment
    points:
      - {point: 50, color: "#55BB00"}
      - {point: 100, color: "#FF4331"}
    data:
      - {x: "2024-01-01T00:00:00Z", y: 42}
  - type: scatterplot
    id: deploys
    name: Deploys
    clickTarget: path
    data:
      - x: "2024-01-01T00:02:00Z"
        y: 1
        description: release 1.2
        linkText: open
        additionalData: {page: releases, id: 12}
`

func TestLoadDefinition(t *testing.T) {
	def, err := LoadDefinition(strings.NewReader(sampleDefinition))
	require.NoError(t, err)

	assert.Equal(t, "host-metrics", def.Chart.Target)
	assert.Equal(t, 600.0, def.Chart.Width)
	assert.Equal(t, 400.0, def.Chart.Height, "absent keys keep defaults")
	assert.Equal(t, Margin{Top: 20, Right: 40, Bottom: 40, Left: 50}, def.Chart.Margin)
	assert.True(t, def.Chart.ShowCriticalAreas)
	assert.False(t, def.Chart.EnableZoom)
	assert.True(t, def.Chart.ShowLegend)
	assert.Contains(t, def.Notes, "# Host metrics")
	require.Len(t, def.Series, 3)

	line, ok := def.Series[0].(*LineSeries)
	require.True(t, ok)
	assert.Equal(t, KindLine, line.Kind())
	assert.Equal(t, Dash, line.DashStyle)
	assert.True(t, line.Gradient)
	require.Len(t, line.Data, 3)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 5, 0, 0, time.UTC), line.Data[1].X)
	assert.Equal(t, 55.5, line.Data[1].Y)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 10, 0, 0, time.UTC), line.Data[2].X)

	gauge, ok := def.Series[1].(*GaugeSeries)
	require.True(t, ok)
	assert.Equal(t, SubtypeSegment, gauge.Subtype)
	assert.Equal(t, 42.0, gauge.Value())
	assert.Len(t, gauge.Points, 2)

	scatter, ok := def.Series[2].(*ScatterSeries)
	require.True(t, ok)
	assert.Equal(t, "path", scatter.ClickTarget)
	assert.Equal(t, "release 1.2", scatter.Data[0].Description)
	assert.Equal(t, map[string]any{"page": "releases", "id": 12}, scatter.Data[0].AdditionalData)
}

func TestLoadDefinitionCustomFields(t *testing.T) {
	src := `
chart: {xField: ts, yField: value}
series:
  - type: line
    id: a
    data: [{ts: "2024-01-01T00:00:00Z", value: 3}]
`
	def, err := LoadDefinition(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, 3.0, def.Series[0].Common().Data[0].Y)
}

func TestLoadDefinitionJSON(t *testing.T) {
	src := `{"series": [{"type": "gauge", "id": "g", "maxValue": 10, "data": [{"x": 0, "y": 4}]}]}`
	def, err := LoadDefinition(strings.NewReader(src))
	require.NoError(t, err)

	g := def.Series[0].(*GaugeSeries)
	assert.Equal(t, SubtypeSolid, g.Subtype, "subtype defaults to solid")
	assert.Equal(t, time.UnixMilli(0).UTC(), g.Data[0].X)
}

func TestLoadDefinitionErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		err  error
	}{
		{"unknown kind", "series: [{type: pie, id: p}]", ErrUnknownSeriesKind},
		{"unknown subtype", "series: [{type: gauge, id: g, subtype: needle}]", ErrUnknownGaugeSubtype},
		{"bad x", "series: [{type: line, id: l, data: [{x: yesterday, y: 1}]}]", ErrInvalidSample},
		{"missing y", "series: [{type: line, id: l, data: [{x: 0}]}]", ErrInvalidSample},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadDefinition(strings.NewReader(tt.src))
			if !errors.Is(err, tt.err) {
				t.Errorf("Expected %v, got %v", tt.err, err)
			}
		})
	}
}

func TestLoadDefinitionFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleDefinition), 0o644))

	def, err := LoadDefinitionFile(path)
	require.NoError(t, err)
	assert.Len(t, def.Series, 3)

	_, err = LoadDefinitionFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadDefinitionWithBase(t *testing.T) {
	base := DefaultChartConfig()
	base.Height = 250
	base.ShowLegend = false

	def, err := LoadDefinitionWith(strings.NewReader("chart:\n  width: 500\n"), base)
	require.NoError(t, err)

	assert.Equal(t, 500.0, def.Chart.Width)
	assert.Equal(t, 250.0, def.Chart.Height)
	assert.False(t, def.Chart.ShowLegend)
	assert.Empty(t, def.Series)
}
