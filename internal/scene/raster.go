package scene

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/golang/freetype/truetype"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Palette resolves CSS custom properties such as var(--green) to colours
type Palette map[string]drawing.Color

// DefaultPalette is a light theme for the custom properties charts use
func DefaultPalette() Palette {
	return Palette{
		"--green":                drawing.ColorFromHex("3cb371"),
		"--yellow":               drawing.ColorFromHex("f0c419"),
		"--red":                  drawing.ColorFromHex("e5484d"),
		"--layer":                drawing.ColorFromHex("e6e8eb"),
		"--text-base-color":      drawing.ColorFromHex("1f2328"),
		"--text-secondary-color": drawing.ColorFromHex("6e7781"),
		"--background":           drawing.ColorWhite,
	}
}

// Rasterizer paints a scene into a PNG with the go-chart raster renderer
type Rasterizer struct {
	Width, Height int
	Palette       Palette
	Background    drawing.Color

	font      *truetype.Font
	gradients map[string]*Node
}

// NewRasterizer creates a rasterizer using the go-chart default font
func NewRasterizer(width, height int) (*Rasterizer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid raster size %dx%d", width, height)
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}
	return &Rasterizer{
		Width:      width,
		Height:     height,
		Palette:    DefaultPalette(),
		Background: drawing.ColorWhite,
		font:       font,
	}, nil
}

// Render paints root and writes the PNG to w
func (r *Rasterizer) Render(root *Node, w io.Writer) error {
	rr, err := chart.PNG(r.Width, r.Height)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	rr.SetFont(r.font)

	if !r.Background.IsZero() {
		rr.SetFillColor(r.Background)
		rr.MoveTo(0, 0)
		rr.LineTo(r.Width, 0)
		rr.LineTo(r.Width, r.Height)
		rr.LineTo(0, r.Height)
		rr.Close()
		rr.Fill()
	}

	r.gradients = make(map[string]*Node)
	for _, g := range append(root.SelectAll("linearGradient"), linearGradientSelf(root)...) {
		if id := g.AttrValue("id"); id != "" {
			r.gradients[id] = g
		}
	}

	r.paint(rr, root, Point{}, 1)
	return rr.Save(w)
}

func linearGradientSelf(n *Node) []*Node {
	if n.tag == "linearGradient" {
		return []*Node{n}
	}
	return nil
}

func (r *Rasterizer) paint(rr chart.Renderer, n *Node, off Point, opacity float64) {
	if n.StyleValue("display") == "none" || n.tag == "defs" || n.tag == "linearGradient" {
		return
	}
	opacity *= nodeOpacity(n)
	if opacity <= 0 {
		return
	}
	if dx, dy, ok := ParseTranslate(n.AttrValue("transform")); ok {
		off = Point{off.X + dx, off.Y + dy}
	}

	switch n.tag {
	case "path":
		r.paintPath(rr, n, n.Path(), off, opacity)
	case "circle":
		p := NewPath()
		cx, cy, rad := n.AttrFloat("cx"), n.AttrFloat("cy"), n.AttrFloat("r")
		if rad > 0 {
			p.Arc(cx, cy, rad, 0, 2*math.Pi).Close()
			r.paintPath(rr, n, p, off, opacity)
		}
	case "rect":
		x, y := n.AttrFloat("x"), n.AttrFloat("y")
		w, h := n.AttrFloat("width"), n.AttrFloat("height")
		if w > 0 && h > 0 {
			p := NewPath().MoveTo(x, y).LineTo(x+w, y).LineTo(x+w, y+h).LineTo(x, y+h).Close()
			r.paintPath(rr, n, p, off, opacity)
		}
	case "line":
		p := NewPath().MoveTo(n.AttrFloat("x1"), n.AttrFloat("y1")).LineTo(n.AttrFloat("x2"), n.AttrFloat("y2"))
		r.paintPath(rr, n, p, off, opacity)
	case "text":
		r.paintText(rr, n, off, opacity)
		return
	case "foreignObject":
		r.paintForeign(rr, n, off, opacity)
		return
	}

	for _, c := range n.children {
		r.paint(rr, c, off, opacity)
	}
}

func (r *Rasterizer) paintPath(rr chart.Renderer, n *Node, p *Path, off Point, opacity float64) {
	if p == nil || p.Empty() {
		return
	}
	polys := p.Flatten()

	if fill, ok := r.color(n, "fill", "black", opacity); ok {
		rr.ResetStyle()
		rr.SetFillColor(fill)
		tracePolys(rr, polys, off, true)
		rr.Fill()
	}

	width := 1.0
	if v := inherited(n, "stroke-width"); v != "" {
		width, _ = strconv.ParseFloat(strings.TrimSuffix(v, "px"), 64)
	}
	if width <= 0 {
		return
	}

	stroke := inherited(n, "stroke")
	if id, ok := gradientRef(stroke); ok {
		if g := r.gradients[id]; g != nil {
			r.strokeGradient(rr, g, polys, off, width, opacity)
		}
		return
	}
	if c, ok := r.color(n, "stroke", "none", opacity); ok {
		rr.ResetStyle()
		rr.SetStrokeColor(c)
		rr.SetStrokeWidth(width)
		if dash := parseDash(inherited(n, "stroke-dasharray")); len(dash) > 0 {
			rr.SetStrokeDashArray(dash)
		}
		tracePolys(rr, polys, off, false)
		rr.Stroke()
	}
}

// strokeGradient colours each segment by the vertical gradient offset of
// its midpoint
func (r *Rasterizer) strokeGradient(rr chart.Renderer, g *Node, polys [][]Point, off Point, width, opacity float64) {
	y1, y2 := g.AttrFloat("y1"), g.AttrFloat("y2")
	var stops []gradientStop
	for _, s := range g.SelectAll("stop") {
		offset := strings.TrimSuffix(s.AttrValue("offset"), "%")
		v, err := strconv.ParseFloat(offset, 64)
		if err != nil {
			continue
		}
		c, ok := r.resolve(s.AttrValue("stop-color"))
		if !ok {
			continue
		}
		stops = append(stops, gradientStop{v / 100, c})
	}
	if len(stops) == 0 {
		return
	}

	for _, poly := range polys {
		for i := 1; i < len(poly); i++ {
			a, b := poly[i-1], poly[i]
			t := 0.0
			if y1 != y2 {
				t = (y1 - (a.Y+b.Y)/2) / (y1 - y2)
			}
			rr.ResetStyle()
			rr.SetStrokeColor(withOpacity(stopColor(stops, t), opacity))
			rr.SetStrokeWidth(width)
			rr.MoveTo(px(a.X+off.X), px(a.Y+off.Y))
			rr.LineTo(px(b.X+off.X), px(b.Y+off.Y))
			rr.Stroke()
		}
	}
}

type gradientStop struct {
	offset float64
	color  drawing.Color
}

// stopColor returns the colour of the last stop at or before t
func stopColor(stops []gradientStop, t float64) drawing.Color {
	c := stops[0].color
	for _, s := range stops {
		if s.offset > t {
			break
		}
		c = s.color
	}
	return c
}

func (r *Rasterizer) paintText(rr chart.Renderer, n *Node, off Point, opacity float64) {
	body := n.TextContent()
	if body == "" {
		return
	}
	size := 10.0
	if v := inherited(n, "font-size"); v != "" {
		if f, err := strconv.ParseFloat(strings.TrimSuffix(v, "px"), 64); err == nil {
			size = f
		}
	}
	c, ok := r.color(n, "fill", "black", opacity)
	if !ok {
		return
	}
	rr.ResetStyle()
	rr.SetFont(r.font)
	rr.SetFontSize(size)
	rr.SetFontColor(c)

	x := n.AttrFloat("x") + off.X
	y := n.AttrFloat("y") + off.Y
	box := rr.MeasureText(body)
	switch inherited(n, "text-anchor") {
	case "middle":
		x -= float64(box.Width()) / 2
	case "end":
		x -= float64(box.Width())
	}
	if n.AttrValue("alignment-baseline") == "central" || n.AttrValue("dy") == "0.32em" {
		y += float64(box.Height()) / 2
	} else if n.AttrValue("dy") == "0.71em" {
		y += float64(box.Height())
	}
	rr.Text(body, px(x), px(y))
}

// paintForeign draws the text of embedded HTML as one line per text node
func (r *Rasterizer) paintForeign(rr chart.Renderer, n *Node, off Point, opacity float64) {
	x := n.AttrFloat("x") + off.X
	y := n.AttrFloat("y") + off.Y
	c, ok := r.resolve("var(--text-base-color)")
	if !ok {
		c = drawing.ColorBlack
	}
	rr.ResetStyle()
	rr.SetFont(r.font)
	rr.SetFontSize(9)
	rr.SetFontColor(withOpacity(c, opacity))

	line := 0
	n.walkDescendants(func(d *Node) bool {
		if d.StyleValue("display") == "none" || nodeOpacity(d) <= 0 {
			return true
		}
		if d.text != "" {
			line++
			rr.Text(d.text, px(x+4), px(y+float64(line)*14))
		}
		return true
	})
}

func tracePolys(rr chart.Renderer, polys [][]Point, off Point, closed bool) {
	for _, poly := range polys {
		if len(poly) == 0 {
			continue
		}
		rr.MoveTo(px(poly[0].X+off.X), px(poly[0].Y+off.Y))
		for _, q := range poly[1:] {
			rr.LineTo(px(q.X+off.X), px(q.Y+off.Y))
		}
		if closed {
			rr.Close()
		}
	}
}

// color resolves a paint property, falling back to def when unset
func (r *Rasterizer) color(n *Node, prop, def string, opacity float64) (drawing.Color, bool) {
	v := inherited(n, prop)
	if v == "" {
		v = def
	}
	c, ok := r.resolve(v)
	if !ok {
		return drawing.Color{}, false
	}
	if f := n.StyleValue(prop + "-opacity"); f != "" {
		opacity *= parseOpacity(f)
	} else if f := n.AttrValue(prop + "-opacity"); f != "" {
		opacity *= parseOpacity(f)
	}
	return withOpacity(c, opacity), true
}

func (r *Rasterizer) resolve(v string) (drawing.Color, bool) {
	v = strings.TrimSpace(v)
	switch {
	case v == "" || v == "none" || v == "0":
		return drawing.Color{}, false
	case v == "transparent":
		return drawing.ColorTransparent, true
	case v == "currentColor":
		return r.resolve("var(--text-base-color)")
	case strings.HasPrefix(v, "var(") && strings.HasSuffix(v, ")"):
		c, ok := r.Palette[strings.TrimSpace(v[4:len(v)-1])]
		return c, ok
	}
	c := drawing.ParseColor(v)
	if c.IsZero() {
		return drawing.Color{}, false
	}
	return c, true
}

// inherited looks a presentation property up on n and its ancestors,
// styles taking precedence over attributes
func inherited(n *Node, prop string) string {
	for c := n; c != nil; c = c.parent {
		if v := c.StyleValue(prop); v != "" {
			return v
		}
		if v := c.AttrValue(prop); v != "" {
			return v
		}
	}
	return ""
}

func nodeOpacity(n *Node) float64 {
	if v := n.StyleValue("opacity"); v != "" {
		return parseOpacity(v)
	}
	if v := n.AttrValue("opacity"); v != "" {
		return parseOpacity(v)
	}
	return 1
}

func parseOpacity(v string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 1
	}
	return math.Max(0, math.Min(1, f))
}

func withOpacity(c drawing.Color, opacity float64) drawing.Color {
	if opacity >= 1 {
		return c
	}
	return c.WithAlpha(uint8(float64(c.A) * opacity))
}

func gradientRef(v string) (string, bool) {
	if !strings.HasPrefix(v, "url(#") || !strings.HasSuffix(v, ")") {
		return "", false
	}
	return v[len("url(#") : len(v)-1], true
}

func parseDash(v string) []float64 {
	var out []float64
	for _, f := range strings.FieldsFunc(v, func(r rune) bool { return r == ',' || r == ' ' }) {
		d, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil
		}
		out = append(out, d)
	}
	return out
}

func px(v float64) int {
	return int(math.Round(v))
}
