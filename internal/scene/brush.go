package scene

import (
	"math"
)

// BrushEvent reports the pixel selection at the end of a gesture. Selection
// is nil when the gesture selected nothing.
type BrushEvent struct {
	Selection *[2]float64
}

// BrushX is a horizontal drag-to-select gesture over a rectangular extent
type BrushX struct {
	extent    [2]Point
	group     *Node
	overlay   *Node
	selection *Node
	onEnd     []func(BrushEvent)

	active   bool
	origin   float64
	current  [2]float64
	selected *[2]float64
}

// NewBrushX creates a brush covering the rectangle from x0,y0 to x1,y1
func NewBrushX(x0, y0, x1, y1 float64) *BrushX {
	return &BrushX{extent: [2]Point{{x0, y0}, {x1, y1}}}
}

// OnEnd registers a callback for completed gestures
func (b *BrushX) OnEnd(fn func(BrushEvent)) *BrushX {
	b.onEnd = append(b.onEnd, fn)
	return b
}

// Attach draws the overlay and the selection rectangle into g
func (b *BrushX) Attach(g *Node) *BrushX {
	e0, e1 := b.extent[0], b.extent[1]
	b.group = g.Attr("fill", "none").Style("pointer-events", "all")
	b.overlay = g.Append("rect").Classed("overlay", true).
		Attr("pointer-events", "all").
		Attr("cursor", "crosshair").
		Attr("x", e0.X).Attr("y", e0.Y).
		Attr("width", e1.X-e0.X).Attr("height", e1.Y-e0.Y)
	b.selection = g.Append("rect").Classed("selection", true).
		Attr("cursor", "move").
		Attr("fill", "#777").
		Attr("fill-opacity", 0.3).
		Attr("stroke", "#fff").
		Attr("shape-rendering", "crispEdges").
		Style("display", "none")
	return b
}

// Group is the node the brush was attached to
func (b *BrushX) Group() *Node { return b.group }

// Overlay is the node receiving pointer events
func (b *BrushX) Overlay() *Node { return b.overlay }

// SelectionNode is the rectangle showing the current selection
func (b *BrushX) SelectionNode() *Node { return b.selection }

// Start begins a gesture at pixel x, clearing any previous selection
func (b *BrushX) Start(x float64) {
	b.active = true
	b.origin = b.clamp(x)
	b.current = [2]float64{b.origin, b.origin}
	b.selected = nil
	b.draw()
}

// Move extends the active gesture to pixel x
func (b *BrushX) Move(x float64) {
	if !b.active {
		return
	}
	x = b.clamp(x)
	b.current = [2]float64{math.Min(b.origin, x), math.Max(b.origin, x)}
	b.draw()
}

// End completes the gesture and notifies listeners
func (b *BrushX) End() {
	if !b.active {
		return
	}
	b.active = false
	if b.current[1]-b.current[0] > 0 {
		sel := b.current
		b.selected = &sel
	} else {
		b.selected = nil
	}
	b.draw()

	ev := BrushEvent{}
	if b.selected != nil {
		sel := *b.selected
		ev.Selection = &sel
	}
	for _, fn := range b.onEnd {
		fn(ev)
	}
}

// Selection returns the current selection, nil when empty
func (b *BrushX) Selection() *[2]float64 {
	if b.selected == nil {
		return nil
	}
	sel := *b.selected
	return &sel
}

// Active reports whether a gesture is in progress
func (b *BrushX) Active() bool { return b.active }

func (b *BrushX) clamp(x float64) float64 {
	return math.Max(b.extent[0].X, math.Min(b.extent[1].X, x))
}

func (b *BrushX) draw() {
	if b.selection == nil {
		return
	}
	sel := b.current
	if !b.active && b.selected == nil {
		b.selection.Style("display", "none")
		return
	}
	b.selection.Style("display", nil).
		Attr("x", sel[0]).
		Attr("y", b.extent[0].Y).
		Attr("width", sel[1]-sel[0]).
		Attr("height", b.extent[1].Y-b.extent[0].Y)
}
