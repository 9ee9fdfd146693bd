package scene

// Orient is the side of the plot an axis is drawn on
type Orient int

const (
	Bottom Orient = iota
	Left
)

// Tick is one labelled position along an axis
type Tick struct {
	Pos   float64
	Label string
}

// Axis draws tick marks and labels into a group
type Axis struct {
	Orient Orient
	Ticks  []Tick
	// Range is the pixel extent covered by the domain line
	Range [2]float64
	// TickSize is the tick line length; negative values draw across the plot
	TickSize    float64
	TickPadding float64
}

// NewAxis creates an axis with 6px ticks and 3px padding
func NewAxis(orient Orient, ticks []Tick, r0, r1 float64) *Axis {
	return &Axis{Orient: orient, Ticks: ticks, Range: [2]float64{r0, r1}, TickSize: 6, TickPadding: 3}
}

// Render appends the domain path and one g.tick per tick to g
func (a *Axis) Render(g *Node) *Node {
	g.Attr("fill", "none").
		Attr("font-size", 10).
		Attr("font-family", "sans-serif")

	spacing := max0(a.TickSize) + a.TickPadding
	r0, r1 := a.Range[0], a.Range[1]

	domain := g.Append("path").Classed("domain", true).Attr("stroke", "currentColor")
	switch a.Orient {
	case Bottom:
		g.Attr("text-anchor", "middle")
		domain.SetPath(NewPath().MoveTo(r0+0.5, 6).LineTo(r0+0.5, 0.5).LineTo(r1+0.5, 0.5).LineTo(r1+0.5, 6))
	case Left:
		g.Attr("text-anchor", "end")
		domain.SetPath(NewPath().MoveTo(-6, r0+0.5).LineTo(0.5, r0+0.5).LineTo(0.5, r1+0.5).LineTo(-6, r1+0.5))
	}

	for _, t := range a.Ticks {
		tick := g.Append("g").Classed("tick", true).Attr("opacity", 1)
		line := tick.Append("line").Attr("stroke", "currentColor")
		text := tick.Append("text").Attr("fill", "currentColor").SetText(t.Label)

		switch a.Orient {
		case Bottom:
			tick.Attr("transform", Translate(t.Pos+0.5, 0))
			line.Attr("y2", a.TickSize)
			text.Attr("y", spacing).Attr("dy", "0.71em")
		case Left:
			tick.Attr("transform", Translate(0, t.Pos+0.5))
			line.Attr("x2", -a.TickSize)
			text.Attr("x", -spacing).Attr("dy", "0.32em")
		}
	}
	return g
}

func max0(v float64) float64 {
	if v > 0 {
		return v
	}
	return 0
}
