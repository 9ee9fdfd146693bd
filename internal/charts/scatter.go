package charts

import (
	"math"
	"strconv"

	"chartscope/internal/events"
	"chartscope/internal/logger"
	"chartscope/internal/models"
	"chartscope/internal/scales"
	"chartscope/internal/scene"
	"chartscope/internal/timefmt"
)

const (
	// DefaultClickTarget is the marker element highlighted on click
	DefaultClickTarget = "circle"

	scatterIconOffset = 11
	defaultMarkerSize = 6
)

// ScatterOptions is what a scatter plot needs besides its series
type ScatterOptions struct {
	XScale    *scales.TimeScale
	YScale    *scales.LinearScale
	Color     string
	MaxX      float64
	Formatter *timefmt.Formatter
	Logger    *logger.Logger
}

// ScatterPlot draws one icon per sample. Clicking a point toggles a
// tooltip for it; at most one tooltip per series is open.
type ScatterPlot struct {
	series *models.ScatterSeries
	opts   ScatterOptions
	bus    *events.Bus

	group  *scene.Node
	points []*scene.Node

	open        bool
	tooltip     *Tooltip
	highlighted *scene.Node
}

// NewScatterPlot appends the points of series to parent
func NewScatterPlot(parent *scene.Node, series *models.ScatterSeries, opts ScatterOptions) *ScatterPlot {
	if opts.Formatter == nil {
		opts.Formatter = timefmt.New(nil)
	}
	if opts.Logger == nil {
		opts.Logger = logger.GetGlobalLogger().WithComponent("scatter")
	}
	s := &ScatterPlot{series: series, opts: opts, bus: events.NewBus()}

	s.group = parent.Append("g").Classed("scatter-plot", true)
	for i := range series.Data {
		d := series.Data[i]
		p := s.group.Append("g").Classed("scatter-plot__point", true).
			SetDatum(d).
			Attr("transform", scene.Translate(opts.XScale.Map(d.X), opts.YScale.Map(d.Y)-scatterIconOffset))

		icon := d.Icon
		if icon == "" {
			icon = series.Icon
		}
		if icon != "" {
			p.SetHTML(icon)
		} else {
			p.Append(DefaultClickTarget).
				Attr("r", defaultMarkerSize).
				Attr("fill", opts.Color)
		}
		p.On(scene.Click, s.onClick)
		s.points = append(s.points, p)
	}
	return s
}

// Events is the bus "route" requests are published on
func (s *ScatterPlot) Events() *events.Bus { return s.bus }

// Open reports whether a tooltip is showing
func (s *ScatterPlot) Open() bool { return s.open }

// Tooltip is the open tooltip, nil when closed
func (s *ScatterPlot) Tooltip() *Tooltip { return s.tooltip }

// Points are the per-sample groups in data order
func (s *ScatterPlot) Points() []*scene.Node { return s.points }

// Highlighted is the click target currently carrying the halo
func (s *ScatterPlot) Highlighted() *scene.Node { return s.highlighted }

// Click dispatches a click on point i at the given offset, on its click
// target when the point has one
func (s *ScatterPlot) Click(i int, offsetX, offsetY float64) bool {
	if i < 0 || i >= len(s.points) {
		return false
	}
	target := s.points[i]
	if t := target.Select(s.clickTarget()); t != nil {
		target = t
	}
	target.Dispatch(scene.Click, offsetX, offsetY)
	return true
}

func (s *ScatterPlot) clickTarget() string {
	if s.series.ClickTarget != "" {
		return s.series.ClickTarget
	}
	return DefaultClickTarget
}

func (s *ScatterPlot) onClick(e *scene.Event) {
	if s.open {
		s.closeTooltip()
		return
	}
	s.openTooltip(e)
}

// targetOf resolves the element to highlight for a click
func (s *ScatterPlot) targetOf(e *scene.Event) *scene.Node {
	if t := e.Target.Closest(s.clickTarget()); t != nil {
		return t
	}
	return e.Target
}

func (s *ScatterPlot) openTooltip(e *scene.Event) {
	point := e.Target.Closest("g.scatter-plot__point")
	if point == nil {
		return
	}
	d, ok := point.Datum().(models.SampleRecord)
	if !ok {
		return
	}

	s.highlight(s.targetOf(e))
	s.open = true

	s.tooltip = NewTooltip(s.group.Parent(), TooltipOptions{
		Width:          TooltipWidth,
		MaxX:           s.opts.MaxX,
		Closable:       true,
		HasDescription: true,
		HasLink:        true,
		Formatter:      s.opts.Formatter,
	})
	s.tooltip.Events().
		OnEvent(events.Hide, events.Listener(func(events.Event) { s.closeTooltip() })).
		Forward(s.bus, events.Route)

	s.tooltip.Update([]models.TooltipRow{{
		X:              d.X,
		Y:              strconv.FormatFloat(math.Round(d.Y*100)/100, 'f', -1, 64),
		Name:           s.series.Name,
		Description:    d.Description,
		LinkText:       d.LinkText,
		AdditionalData: d.AdditionalData,
	}}, e.X-50, e.Y-100)

	s.opts.Logger.Debug("Scatter tooltip opened", logger.Fields{"series": s.series.ID})
}

// closeTooltip hides the tooltip, drops the halo and releases the panel.
// It runs again through the tooltip's hide event and is a no-op then.
func (s *ScatterPlot) closeTooltip() {
	if s.tooltip != nil && s.tooltip.Visible() {
		s.tooltip.Hide()
	}
	if s.highlighted != nil {
		unhighlight(s.highlighted)
		s.highlighted = nil
	}
	s.tooltip = nil
	s.open = false
}

func (s *ScatterPlot) highlight(n *scene.Node) {
	n.Style("stroke", s.opts.Color).
		Style("stroke-width", "8px").
		Style("stroke-opacity", "0.5")
	s.highlighted = n
}

func unhighlight(n *scene.Node) {
	n.Attr("stroke", "0").
		Style("stroke-width", "0").
		Style("stroke-opacity", "0")
}
