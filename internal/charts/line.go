// Package charts renders line, gauge and scatter series into a scene and
// composes them into an interactive chart with axes, legend, tooltip and
// zoom gesture.
package charts

import (
	"chartscope/internal/models"
	"chartscope/internal/scales"
	"chartscope/internal/scene"
)

var dashArrays = map[models.DashStyle]string{
	models.Solid:     "",
	models.Dash:      "5",
	models.ShortDash: "2 4",
	models.LongDash:  "9 3",
	models.Dot:       "0.3 6",
	models.DashDot:   "8 4 1 4",
}

// DashArray returns the stroke-dasharray of a dash style, empty for solid
// and unknown styles
func DashArray(style models.DashStyle) string {
	return dashArrays[style]
}

// LineOptions is everything a line needs to draw one series
type LineOptions struct {
	XScale    *scales.TimeScale
	YScale    *scales.LinearScale
	Data      []models.SampleRecord
	Color     string
	DashStyle models.DashStyle
	// GradientURL replaces the flat colour when set
	GradientURL string
}

// Line is a monotone curve through a series
type Line struct {
	node *scene.Node
}

// NewLine appends the curve to parent
func NewLine(parent *scene.Node, opts LineOptions) *Line {
	points := make([]scene.Point, 0, len(opts.Data))
	for _, d := range opts.Data {
		points = append(points, scene.Point{X: opts.XScale.Map(d.X), Y: opts.YScale.Map(d.Y)})
	}

	stroke := opts.Color
	if opts.GradientURL != "" {
		stroke = opts.GradientURL
	}

	path := parent.Append("path").
		SetDatum(opts.Data).
		Attr("fill", "none").
		Attr("stroke", stroke).
		Attr("stroke-linejoin", "round").
		Attr("stroke-linecap", "round")
	if dash := DashArray(opts.DashStyle); dash != "" {
		path.Attr("stroke-dasharray", dash)
	}
	path.Attr("stroke-width", 1.5).
		Style("pointer-events", "none").
		SetPath(scene.MonotoneX(points))

	return &Line{node: path}
}

// Node is the path element
func (l *Line) Node() *scene.Node { return l.node }
