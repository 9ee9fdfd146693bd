package charts

import (
	"fmt"
	"time"

	"chartscope/internal/events"
	"chartscope/internal/logger"
	"chartscope/internal/models"
	"chartscope/internal/scales"
	"chartscope/internal/scene"
)

// createPointerContainer installs the surface receiving pointer input: a
// brush when zoom is enabled, a plain rect otherwise
func (c *Chart) createPointerContainer() {
	if c.cfg.EnableZoom {
		g := c.container.Append("g").Classed("pointer-container", true)
		c.brush = scene.NewBrushX(0, 0, c.PlotWidth(), c.PlotHeight()).
			Attach(g).
			OnEnd(c.zoom)
		c.brush.SelectionNode().Style("stroke", "none")
		c.pointer = g
		return
	}

	m := c.cfg.Margin
	c.pointer = c.container.Append("rect").
		Style("fill", "none").
		Style("pointer-events", "all").
		Attr("width", c.cfg.Width-(m.Left+m.Right)-c.yAxisWidth).
		Attr("height", c.cfg.Height-(m.Top+m.Bottom)).
		Attr("transform", scene.Translate(m.Left+c.yAxisWidth, m.Top))
}

func (c *Chart) setPointerListeners() {
	c.pointer.
		On(scene.PointerOver, func(*scene.Event) { c.createTooltip() }).
		On(scene.PointerMove, func(e *scene.Event) { c.updateTooltip(e.X, e.Y) }).
		On(scene.PointerOut, func(*scene.Event) { c.hideTooltip() })
}

// target is the node pointer input is dispatched on
func (c *Chart) target() *scene.Node {
	if c.brush != nil {
		return c.brush.Overlay()
	}
	return c.pointer
}

// PointerEnter reports the pointer entering the plot area
func (c *Chart) PointerEnter() {
	if t := c.target(); t != nil {
		t.Dispatch(scene.PointerOver, 0, 0)
	}
}

// PointerMove reports the pointer at plot coordinates x, y
func (c *Chart) PointerMove(x, y float64) {
	if t := c.target(); t != nil {
		t.Dispatch(scene.PointerMove, x, y)
	}
}

// PointerLeave reports the pointer leaving the plot area
func (c *Chart) PointerLeave() {
	if t := c.target(); t != nil {
		t.Dispatch(scene.PointerOut, 0, 0)
	}
}

// BrushTo performs a complete drag from x0 to x1
func (c *Chart) BrushTo(x0, x1 float64) error {
	if c.brush == nil {
		return fmt.Errorf("zoom is disabled")
	}
	c.brush.Start(x0)
	c.brush.Move(x1)
	c.brush.End()
	return nil
}

// ClickPoint clicks sample index of a scatter series at its drawn position
func (c *Chart) ClickPoint(seriesID string, index int) error {
	s, err := c.Scatter(seriesID)
	if err != nil {
		return err
	}
	st := c.byID[seriesID]
	data := st.common().Data
	if index < 0 || index >= len(data) {
		return fmt.Errorf("%q: point %d out of range", seriesID, index)
	}
	x := st.xScale.Map(data[index].X)
	y := st.yScale.Map(data[index].Y)
	s.Click(index, x, y)
	return nil
}

func (c *Chart) createTooltip() {
	if c.tooltip != nil {
		c.tooltip.Hide()
	}
	c.tooltip = NewTooltip(c.container, TooltipOptions{
		Width:     TooltipWidth,
		MaxX:      c.PlotWidth(),
		HasIcon:   true,
		Formatter: c.fmt,
	})
}

// updateTooltip moves every line's hover marker to its sample nearest to
// x and lists those samples in the tooltip
func (c *Chart) updateTooltip(x, y float64) {
	if c.tooltip == nil {
		c.createTooltip()
	}
	var rows []models.TooltipRow
	for _, st := range c.series {
		if st.pointIcon == nil || st.xScale == nil {
			continue
		}
		d, _ := scales.ClosestPoint(x, st.xScale, st.common().Data)
		cx, cy := st.xScale.Map(d.X), st.yScale.Map(d.Y)

		st.pointIcon.Style("opacity", 1).Attr("cx", cx).Attr("cy", cy)
		st.pointShadow.Style("opacity", 0.5).Attr("cx", cx).Attr("cy", cy)

		rows = append(rows, models.TooltipRow{
			X:     d.X,
			Y:     fmt.Sprintf("%.2f", d.Y),
			Name:  st.common().Name,
			Color: c.colorOf(st),
		})
	}
	c.tooltip.Update(rows, x, y)
}

func (c *Chart) hideTooltip() {
	for _, st := range c.series {
		if st.pointIcon != nil {
			st.pointIcon.Style("opacity", 0)
			st.pointShadow.Style("opacity", 0)
		}
	}
	if c.tooltip != nil {
		c.tooltip.Hide()
		c.tooltip = nil
	}
}

// zoom turns a completed brush gesture into a "zoom" event over the first
// series' time range
func (c *Chart) zoom(e scene.BrushEvent) {
	if e.Selection == nil || len(c.series) == 0 {
		return
	}
	first := c.series[0]
	if first.xScale == nil {
		c.log.Warn("Ignoring zoom: first series has no samples")
		return
	}
	data := first.common().Data
	sel := *e.Selection

	p0, _ := scales.ClosestPoint(sel[0], first.xScale, data)
	p1, _ := scales.ClosestPoint(sel[1], first.xScale, data)
	start, end := c.fmt.Zoom(p0.X), c.fmt.Zoom(p1.X)

	if start >= end {
		// both ends snapped to one sample
		t0, t1 := first.xScale.Invert(sel[0]), first.xScale.Invert(sel[1])
		if !t0.Before(t1) {
			c.log.Warn("Ignoring zoom over an empty time range", logger.Fields{"selection": sel})
			return
		}
		t0 = t0.Truncate(time.Second)
		t1 = t1.Truncate(time.Second)
		if !t0.Before(t1) {
			t1 = t0.Add(time.Second)
		}
		start, end = c.fmt.Zoom(t0), c.fmt.Zoom(t1)
	}

	c.log.Debug("Zoom", logger.Fields{"start": start, "end": end})
	c.bus.Trigger(events.ZoomRange{Start: start, End: end})
}
