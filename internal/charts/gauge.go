package charts

import (
	"strconv"
	"time"

	"github.com/benbjohnson/clock"

	"chartscope/internal/animation"
	"chartscope/internal/logger"
	"chartscope/internal/models"
	"chartscope/internal/scales"
	"chartscope/internal/scene"
)

// Gauge defaults
const (
	DefaultInnerRadius  = 60
	DefaultOuterRadius  = 80
	DefaultArcMin       = -90
	DefaultArcMax       = 90
	DefaultCornerRadius = 3

	// GaugeAnimation is how long the data arc takes to reach a new value
	GaugeAnimation = 400 * time.Millisecond

	thresholdOffset = 6
	thresholdWidth  = 2
	thresholdRange  = 180
	dimmedOpacity   = 0.2
)

// DefaultGaugeColors are the fills of the solid data arc, one per breakpoint
var DefaultGaugeColors = []string{"#55BB00", "#FFB800", "#FF4331"}

// GaugeColor picks the colour of the first breakpoint strictly greater than
// value, or the last colour when value reaches every breakpoint
func GaugeColor(value float64, breakpoints []float64, colors []string) string {
	if len(colors) == 0 {
		return ""
	}
	for i, b := range breakpoints {
		if value < b {
			if i < len(colors) {
				return colors[i]
			}
			break
		}
	}
	return colors[len(colors)-1]
}

// GaugeOptions sizes and styles a gauge
type GaugeOptions struct {
	Width, Height float64
	InnerRadius   float64
	OuterRadius   float64
	CornerRadius  float64
	// ArcMin and ArcMax bound the sweep in degrees, zero at 12 o'clock
	ArcMin, ArcMax float64
	Colors         []string
	// Threshold adds a thin segmented ring outside a solid gauge
	Threshold bool
	Clock     clock.Clock
	Logger    *logger.Logger
}

func (o *GaugeOptions) defaults() {
	if o.Width == 0 {
		o.Width = 200
	}
	if o.Height == 0 {
		o.Height = 100
	}
	if o.InnerRadius == 0 {
		o.InnerRadius = DefaultInnerRadius
	}
	if o.OuterRadius == 0 {
		o.OuterRadius = DefaultOuterRadius
	}
	if o.CornerRadius == 0 {
		o.CornerRadius = DefaultCornerRadius
	}
	if o.ArcMin == 0 && o.ArcMax == 0 {
		o.ArcMin, o.ArcMax = DefaultArcMin, DefaultArcMax
	}
	if len(o.Colors) == 0 {
		o.Colors = DefaultGaugeColors
	}
	if o.Clock == nil {
		o.Clock = clock.New()
	}
	if o.Logger == nil {
		o.Logger = logger.GetGlobalLogger().WithComponent("gauge")
	}
}

type segmentArcs struct {
	inner, outer float64
	arcRange     float64
	opacity      func(models.GaugeSegment) float64
	paths        []*scene.Node
}

// Gauge draws a radial gauge for one series in either the solid or the
// segment variant
type Gauge struct {
	series   *models.GaugeSeries
	opts     GaugeOptions
	segments []models.GaugeSegment
	arcScale *scales.LinearScale

	container *scene.Node
	arcs      *scene.Node
	dataArc   *scene.Node
	valueText *scene.Node
	threshold *segmentArcs
	data      *segmentArcs

	value float64
	// angle is the rendered end angle of the data arc in degrees
	angle float64
	tween *animation.Tween
}

// NewGauge draws the gauge into parent and starts the animation towards
// the series value
func NewGauge(parent *scene.Node, series *models.GaugeSeries, opts GaugeOptions) (*Gauge, error) {
	if err := series.Validate(); err != nil {
		return nil, err
	}
	opts.defaults()

	g := &Gauge{
		series:   series,
		opts:     opts,
		segments: models.BuildSegments(series.Points, series.MaxValue),
		arcScale: scales.NewLinear(0, series.MaxValue, opts.ArcMin, opts.ArcMax),
		value:    series.Value(),
		angle:    opts.ArcMin,
	}

	g.container = parent.Append("g").Classed("arc-chart", true).SetDatum(series)
	g.arcs = g.container.Append("g").Classed("arc", true)

	if opts.Threshold {
		g.threshold = g.drawSegments("arc__threshold", &segmentArcs{
			inner:    opts.OuterRadius + thresholdOffset,
			outer:    opts.OuterRadius + thresholdOffset + thresholdWidth,
			arcRange: thresholdRange,
			opacity:  g.reached,
		})
	}

	switch series.Subtype {
	case models.SubtypeSolid:
		g.drawSolid()
	case models.SubtypeSegment:
		g.data = g.drawSegments("arc__data", &segmentArcs{
			inner:    opts.InnerRadius,
			outer:    opts.OuterRadius,
			arcRange: opts.ArcMax - opts.ArcMin,
			opacity:  func(models.GaugeSegment) float64 { return 1 },
		})
	}

	opts.Logger.Debug("Gauge rendered", logger.Fields{
		"series":   series.ID,
		"subtype":  string(series.Subtype),
		"segments": len(g.segments),
	})
	return g, nil
}

// reached is the threshold ring opacity: full for bands the value has entered
func (g *Gauge) reached(s models.GaugeSegment) float64 {
	if g.series.MaxValue != 0 && g.value/g.series.MaxValue >= s.Start {
		return 1
	}
	return dimmedOpacity
}

func (g *Gauge) arc(inner, outer, start, end float64) *scene.Path {
	return scene.ArcShape{
		InnerRadius:  inner,
		OuterRadius:  outer,
		CornerRadius: g.opts.CornerRadius,
		StartAngle:   scene.DegToRad(start),
		EndAngle:     scene.DegToRad(end),
	}.Path()
}

func (g *Gauge) drawSolid() {
	o := g.opts
	g.container.Attr("transform", scene.Translate(o.Width/2, o.Height))

	bg := g.arcs.Append("path").Classed("arc__bg", true)
	g.dataArc = g.arcs.Append("path").Classed("arc__data", true).
		Style("stroke-linejoin", "round").
		SetPath(g.arc(o.InnerRadius, o.OuterRadius, o.ArcMin, o.ArcMin))
	units := g.arcs.Append("text").Classed("arc__units", true)
	g.valueText = g.arcs.Append("text").Classed("arc__value", true)

	bg.Style("stroke-linejoin", "round").
		Style("fill", "var(--layer)").
		SetPath(g.arc(o.InnerRadius, o.OuterRadius, o.ArcMin, o.ArcMax))

	min, max := bg.Path().Bounds()
	cx := min.X + (max.X-min.X)/2

	g.valueText.Attr("x", cx).Attr("y", -15).
		Style("alignment-baseline", "central").
		Style("text-anchor", "middle").
		Style("font-size", "30px").
		Style("fill", "var(--text-base-color)")
	units.Attr("x", cx).Attr("y", -45).
		Style("alignment-baseline", "central").
		Style("text-anchor", "middle").
		Style("font-size", "20px").
		Style("fill", "var(--text-secondary-color)").
		SetText(g.series.Unit)

	g.Update(g.value)
}

func (g *Gauge) drawSegments(class string, s *segmentArcs) *segmentArcs {
	g.container.Attr("transform", scene.Translate(g.opts.Width/2, g.opts.Height/2))
	group := g.arcs.Append("g").Classed(class, true)
	for _, seg := range g.segments {
		start := g.opts.ArcMin + s.arcRange*seg.Start
		end := g.opts.ArcMin + s.arcRange*seg.End
		p := group.Append("path").
			SetDatum(seg).
			Attr("fill", seg.Color).
			Style("opacity", s.opacity(seg)).
			SetPath(g.arc(s.inner, s.outer, start, end))
		s.paths = append(s.paths, p)
	}
	return s
}

func (s *segmentArcs) refresh(segments []models.GaugeSegment) {
	for i, p := range s.paths {
		p.Style("opacity", s.opacity(segments[i]))
	}
}

// Update shows a new value. The data arc animates from its rendered angle;
// a running animation is replaced, not queued.
func (g *Gauge) Update(value float64) {
	g.value = value
	if g.threshold != nil {
		g.threshold.refresh(g.segments)
	}
	if g.data != nil {
		g.data.refresh(g.segments)
	}
	if g.dataArc == nil {
		return
	}

	breakpoints := make([]float64, len(g.series.Points))
	for i, p := range g.series.Points {
		breakpoints[i] = p.Point
	}
	g.dataArc.Style("fill", GaugeColor(value, breakpoints, g.opts.Colors))
	g.valueText.SetText(strconv.FormatFloat(value, 'f', -1, 64))

	g.tween = &animation.Tween{
		From:     g.angle,
		To:       g.arcScale.Map(value),
		Start:    g.opts.Clock.Now(),
		Duration: GaugeAnimation,
		Ease:     animation.EaseCubicInOut,
	}
}

// Advance redraws the data arc for now and reports whether the animation
// is still running. The tween is released once it completes.
func (g *Gauge) Advance(now time.Time) bool {
	if g.tween == nil {
		return false
	}
	g.angle = g.tween.Value(now)
	done := g.tween.Done(now)
	if done {
		g.angle = g.tween.To
		g.tween = nil
	}
	g.dataArc.SetPath(g.arc(g.opts.InnerRadius, g.opts.OuterRadius, g.opts.ArcMin, g.angle))
	return !done
}

// Finish jumps a running animation to its target angle and releases it
func (g *Gauge) Finish() {
	if g.tween == nil {
		return
	}
	g.angle = g.tween.To
	g.tween = nil
	g.dataArc.SetPath(g.arc(g.opts.InnerRadius, g.opts.OuterRadius, g.opts.ArcMin, g.angle))
}

// Animating reports whether a tween is in flight
func (g *Gauge) Animating() bool { return g.tween != nil }

// Angle is the rendered end angle of the data arc in degrees
func (g *Gauge) Angle() float64 { return g.angle }

// Value is the last value passed to Update
func (g *Gauge) Value() float64 { return g.value }

// Segments are the bands derived from the breakpoints
func (g *Gauge) Segments() []models.GaugeSegment { return g.segments }

// Node is the gauge's g.arc-chart container
func (g *Gauge) Node() *scene.Node { return g.container }
