package charts

import (
	"math"

	"chartscope/internal/events"
	"chartscope/internal/models"
	"chartscope/internal/scene"
	"chartscope/internal/timefmt"
)

const (
	// TooltipWidth is the panel width used by every chart tooltip
	TooltipWidth     = 240
	TooltipMinHeight = 72

	tooltipRowHeight  = 22
	tooltipLineHeight = 18
	tooltipPadding    = 16
)

const closeIcon = `<svg width="12" height="12" viewBox="0 0 12 12"><path d="M2,2L10,10M10,2L2,10" stroke="currentColor" stroke-width="1.5"/></svg>`

// TooltipOptions selects the affordances a tooltip panel offers
type TooltipOptions struct {
	Width float64
	// MaxX is the right edge of the area the panel must stay inside
	MaxX           float64
	HasIcon        bool
	Closable       bool
	HasDescription bool
	HasLink        bool
	Formatter      *timefmt.Formatter
}

// Tooltip is a floating panel listing one row per series. Its bus fires
// "hide" when the panel is torn down and "route" when a link is activated.
type Tooltip struct {
	parent *scene.Node
	opts   TooltipOptions
	bus    *events.Bus

	container *scene.Node
	inner     *scene.Node
	content   *scene.Node
	date      *scene.Node

	rows []models.TooltipRow
	x, y float64
}

// NewTooltip creates an empty panel inside parent
func NewTooltip(parent *scene.Node, opts TooltipOptions) *Tooltip {
	if opts.Width <= 0 {
		opts.Width = TooltipWidth
	}
	if opts.Formatter == nil {
		opts.Formatter = timefmt.New(nil)
	}
	t := &Tooltip{parent: parent, opts: opts, bus: events.NewBus()}
	t.create()
	return t
}

func (t *Tooltip) create() {
	t.container = t.parent.Append("foreignObject").
		Attr("width", t.opts.Width).
		Attr("min-height", TooltipMinHeight).
		Attr("height", 0)
	t.inner = t.container.Append("xhtml:div").Classed("tooltip", true)
	t.content = t.inner.Append("div")
	t.date = t.inner.Append("div").Classed("tooltip__date", true)
}

// Events is the tooltip's own bus
func (t *Tooltip) Events() *events.Bus { return t.bus }

// Visible reports whether the panel is mounted
func (t *Tooltip) Visible() bool { return t.container != nil }

// Node is the panel's foreignObject, nil once hidden
func (t *Tooltip) Node() *scene.Node { return t.container }

// Rows returns the rows of the last update
func (t *Tooltip) Rows() []models.TooltipRow { return t.rows }

// Position returns the panel offset applied by the last update
func (t *Tooltip) Position() (float64, float64) { return t.x, t.y }

// Update rebuilds the panel content from rows and moves it next to the
// requested point without crossing MaxX. A hidden panel is recreated.
func (t *Tooltip) Update(rows []models.TooltipRow, reqX, reqY float64) {
	if t.container == nil {
		t.create()
	}
	t.rows = rows
	t.content.Clear()

	w := t.opts.Width
	t.x = math.Min(t.opts.MaxX-w+w/4, reqX+20)
	t.y = math.Max(0, reqY-100)

	height := float64(tooltipPadding)
	for _, r := range rows {
		row := t.content.Append("div").Classed("tooltip__row", true)
		title := row.Append("div").Classed("tooltip__title", true)
		height += tooltipRowHeight

		if t.opts.HasIcon {
			title.Append("div").Classed("tooltip__color", true).Style("background", r.Color)
		}
		title.Append("div").Classed("tooltip__name", true).SetText(r.Name + ": " + r.Y)

		if t.opts.Closable {
			row.Append("g").Classed("tooltip__close", true).
				SetHTML(closeIcon).
				On(scene.Click, func(*scene.Event) { t.Hide() })
		}
		if t.opts.HasDescription && r.Description != "" {
			t.content.Append("div").Classed("tooltip__description", true).SetText(r.Description)
			height += tooltipLineHeight
		}
		if t.opts.HasLink && r.LinkText != "" {
			data := r.AdditionalData
			t.content.Append("div").Classed("tooltip__link", true).
				Append("a").SetText(r.LinkText).
				On(scene.Click, func(*scene.Event) {
					t.bus.Trigger(events.RouteRequest{Data: data})
				})
			height += tooltipLineHeight
		}
	}

	if len(rows) > 0 {
		t.date.SetText(t.opts.Formatter.Tooltip(rows[0].X))
		height += tooltipLineHeight
	} else {
		t.date.SetText("")
	}

	t.container.Style("opacity", 1).
		Attr("transform", scene.Translate(t.x, t.y)).
		Attr("height", math.Max(TooltipMinHeight, height))
}

// Hide removes the panel and fires "hide". Hiding an already hidden panel
// only fires the event again.
func (t *Tooltip) Hide() {
	if t.container != nil {
		t.container.Remove()
		t.container = nil
		t.inner = nil
		t.content = nil
		t.date = nil
	}
	t.bus.Trigger(events.Hidden{})
}

// CloseControls returns the close affordances of the current content
func (t *Tooltip) CloseControls() []*scene.Node {
	if t.container == nil {
		return nil
	}
	return t.container.SelectAll("g.tooltip__close")
}

// Links returns the link anchors of the current content
func (t *Tooltip) Links() []*scene.Node {
	if t.container == nil {
		return nil
	}
	var out []*scene.Node
	for _, l := range t.container.SelectAll("div.tooltip__link") {
		out = append(out, l.SelectAll("a")...)
	}
	return out
}
