package scene

import (
	"math"
	"strings"
)

// Point is a 2D coordinate
type Point struct {
	X, Y float64
}

type op byte

const (
	opMove op = iota
	opLine
	opCubic
	opArc
	opClose
)

type segment struct {
	op  op
	pts [3]Point
	// arc in centre form, angles in radians clockwise from 12 o'clock
	center Point
	radius float64
	a0, a1 float64
}

// Path is a sequence of drawing commands
type Path struct {
	segs    []segment
	cur     Point
	start   Point
	started bool
}

// NewPath creates an empty path
func NewPath() *Path { return &Path{} }

// MoveTo starts a new subpath
func (p *Path) MoveTo(x, y float64) *Path {
	pt := Point{x, y}
	p.segs = append(p.segs, segment{op: opMove, pts: [3]Point{pt}})
	p.cur, p.start, p.started = pt, pt, true
	return p
}

// LineTo draws a straight line
func (p *Path) LineTo(x, y float64) *Path {
	pt := Point{x, y}
	p.segs = append(p.segs, segment{op: opLine, pts: [3]Point{pt}})
	p.cur = pt
	return p
}

// CubicTo draws a cubic Bézier curve
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) *Path {
	p.segs = append(p.segs, segment{op: opCubic, pts: [3]Point{{c1x, c1y}, {c2x, c2y}, {x, y}}})
	p.cur = Point{x, y}
	return p
}

// Arc draws a circular arc around (cx,cy) from angle a0 to a1. Angles are in
// radians, zero at 12 o'clock and increasing clockwise. The arc is joined to
// the current point by a line, or starts a subpath when there is none.
func (p *Path) Arc(cx, cy, r, a0, a1 float64) *Path {
	from := polar(cx, cy, r, a0)
	switch {
	case !p.started:
		p.MoveTo(from.X, from.Y)
	case !near(p.cur, from):
		p.LineTo(from.X, from.Y)
	}
	if r <= 0 || a0 == a1 {
		return p
	}
	p.segs = append(p.segs, segment{op: opArc, center: Point{cx, cy}, radius: r, a0: a0, a1: a1})
	p.cur = polar(cx, cy, r, a1)
	return p
}

// Close ends the current subpath
func (p *Path) Close() *Path {
	p.segs = append(p.segs, segment{op: opClose})
	p.cur = p.start
	return p
}

// Empty reports whether the path has no commands
func (p *Path) Empty() bool { return len(p.segs) == 0 }

func polar(cx, cy, r, a float64) Point {
	return Point{cx + r*math.Sin(a), cy - r*math.Cos(a)}
}

func near(a, b Point) bool {
	return math.Abs(a.X-b.X) < 1e-6 && math.Abs(a.Y-b.Y) < 1e-6
}

// String renders SVG path data
func (p *Path) String() string {
	var b strings.Builder
	for _, s := range p.segs {
		switch s.op {
		case opMove:
			b.WriteString("M" + pt(s.pts[0]))
		case opLine:
			b.WriteString("L" + pt(s.pts[0]))
		case opCubic:
			b.WriteString("C" + pt(s.pts[0]) + "," + pt(s.pts[1]) + "," + pt(s.pts[2]))
		case opArc:
			writeArc(&b, s)
		case opClose:
			b.WriteString("Z")
		}
	}
	return b.String()
}

func writeArc(b *strings.Builder, s segment) {
	da := s.a1 - s.a0
	sweep := "1"
	if da < 0 {
		sweep = "0"
	}
	// a full turn cannot be one SVG arc, so split it at the midpoint
	if math.Abs(da) >= 2*math.Pi-1e-9 {
		mid := s.a0 + da/2
		writeArc(b, segment{center: s.center, radius: s.radius, a0: s.a0, a1: mid})
		writeArc(b, segment{center: s.center, radius: s.radius, a0: mid, a1: s.a1})
		return
	}
	large := "0"
	if math.Abs(da) > math.Pi {
		large = "1"
	}
	r := Num(s.radius)
	b.WriteString("A" + r + "," + r + ",0," + large + "," + sweep + "," + pt(polar(s.center.X, s.center.Y, s.radius, s.a1)))
}

func pt(p Point) string {
	return Num(p.X) + "," + Num(p.Y)
}

// Flatten approximates the path with polylines, one per subpath. Closed
// subpaths end at their starting point.
func (p *Path) Flatten() [][]Point {
	var (
		out  [][]Point
		cur  []Point
		last Point
	)
	flush := func() {
		if len(cur) > 0 {
			out = append(out, cur)
		}
		cur = nil
	}
	for _, s := range p.segs {
		switch s.op {
		case opMove:
			flush()
			cur = []Point{s.pts[0]}
			last = s.pts[0]
		case opLine:
			cur = append(cur, s.pts[0])
			last = s.pts[0]
		case opCubic:
			const steps = 16
			p0 := last
			for i := 1; i <= steps; i++ {
				cur = append(cur, cubicAt(p0, s.pts[0], s.pts[1], s.pts[2], float64(i)/steps))
			}
			last = s.pts[2]
		case opArc:
			steps := int(math.Ceil(math.Abs(s.a1-s.a0) / (math.Pi / 32)))
			for i := 1; i <= steps; i++ {
				a := s.a0 + (s.a1-s.a0)*float64(i)/float64(steps)
				cur = append(cur, polar(s.center.X, s.center.Y, s.radius, a))
			}
			last = polar(s.center.X, s.center.Y, s.radius, s.a1)
		case opClose:
			if len(cur) > 0 {
				cur = append(cur, cur[0])
				last = cur[0]
			}
		}
	}
	flush()
	return out
}

func cubicAt(p0, c1, c2, p1 Point, t float64) Point {
	u := 1 - t
	a, b, c, d := u*u*u, 3*u*u*t, 3*u*t*t, t*t*t
	return Point{
		X: a*p0.X + b*c1.X + c*c2.X + d*p1.X,
		Y: a*p0.Y + b*c1.Y + c*c2.Y + d*p1.Y,
	}
}

// Bounds is the bounding box of the flattened path
func (p *Path) Bounds() (min, max Point) {
	first := true
	for _, poly := range p.Flatten() {
		for _, q := range poly {
			if first {
				min, max, first = q, q, false
				continue
			}
			min.X, min.Y = math.Min(min.X, q.X), math.Min(min.Y, q.Y)
			max.X, max.Y = math.Max(max.X, q.X), math.Max(max.Y, q.Y)
		}
	}
	return min, max
}
