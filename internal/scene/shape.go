package scene

import (
	"math"
)

// MonotoneX builds a cubic curve through points that preserves monotonicity
// in y, assuming points are ascending in x. Coincident consecutive points
// are skipped and a single point yields a closed degenerate subpath.
func MonotoneX(points []Point) *Path {
	c := &monotone{path: NewPath()}
	for _, p := range points {
		c.point(p.X, p.Y)
	}
	c.end()
	return c.path
}

type monotone struct {
	path           *Path
	n              int
	x0, y0, x1, y1 float64
	t0             float64
}

func (c *monotone) point(x, y float64) {
	if c.n > 0 && x == c.x1 && y == c.y1 {
		return
	}
	var t1 float64
	switch c.n {
	case 0:
		c.path.MoveTo(x, y)
		c.n = 1
	case 1:
		c.n = 2
	case 2:
		c.n = 3
		t1 = c.slope3(x, y)
		c.curve(c.slope2(t1), t1)
	default:
		t1 = c.slope3(x, y)
		c.curve(c.t0, t1)
	}
	c.x0, c.x1 = c.x1, x
	c.y0, c.y1 = c.y1, y
	c.t0 = t1
}

func (c *monotone) end() {
	switch c.n {
	case 1:
		c.path.Close()
	case 2:
		c.path.LineTo(c.x1, c.y1)
	case 3:
		c.curve(c.t0, c.slope2(c.t0))
	}
}

// slope3 is the tangent at (x1,y1) given the following point
func (c *monotone) slope3(x2, y2 float64) float64 {
	h0 := c.x1 - c.x0
	h1 := x2 - c.x1
	s0 := (c.y1 - c.y0) / nonZero(h0, h1 < 0)
	s1 := (y2 - c.y1) / nonZero(h1, h0 < 0)
	p := (s0*h1 + s1*h0) / (h0 + h1)
	t := (sign(s0) + sign(s1)) * math.Min(math.Min(math.Abs(s0), math.Abs(s1)), 0.5*math.Abs(p))
	if math.IsNaN(t) {
		return 0
	}
	return t
}

// slope2 is the one-sided tangent at the ends of the curve
func (c *monotone) slope2(t float64) float64 {
	h := c.x1 - c.x0
	if h == 0 {
		return t
	}
	return (3*(c.y1-c.y0)/h - t) / 2
}

func (c *monotone) curve(t0, t1 float64) {
	dx := (c.x1 - c.x0) / 3
	c.path.CubicTo(c.x0+dx, c.y0+dx*t0, c.x1-dx, c.y1-dx*t1, c.x1, c.y1)
}

func nonZero(h float64, negative bool) float64 {
	if h != 0 {
		return h
	}
	if negative {
		return math.Copysign(0, -1)
	}
	return 0
}

func sign(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}

// ArcShape describes an annular sector centred on the origin. Angles are in
// radians, zero at 12 o'clock and increasing clockwise.
type ArcShape struct {
	InnerRadius float64
	OuterRadius float64
	// CornerRadius is recorded for styling; the outline keeps sharp corners
	CornerRadius float64
	StartAngle   float64
	EndAngle     float64
}

// Path returns the sector outline: outer arc, radial edge, inner arc
// back, closed. A zero inner radius draws a pie slice.
func (a ArcShape) Path() *Path {
	p := NewPath()
	r0, r1 := math.Min(a.InnerRadius, a.OuterRadius), math.Max(a.InnerRadius, a.OuterRadius)
	if r1 <= 0 {
		return p.MoveTo(0, 0).Close()
	}

	da := a.EndAngle - a.StartAngle
	if math.Abs(da) >= 2*math.Pi-1e-9 {
		// full ring: two closed circles
		p.Arc(0, 0, r1, a.StartAngle, a.StartAngle+2*math.Pi).Close()
		if r0 > 0 {
			p.MoveTo(polar(0, 0, r0, a.StartAngle).X, polar(0, 0, r0, a.StartAngle).Y)
			p.Arc(0, 0, r0, a.StartAngle+2*math.Pi, a.StartAngle).Close()
		}
		return p
	}

	p.Arc(0, 0, r1, a.StartAngle, a.EndAngle)
	if r0 > 0 {
		p.Arc(0, 0, r0, a.EndAngle, a.StartAngle)
	} else {
		p.LineTo(0, 0)
	}
	return p.Close()
}

// DegToRad converts degrees to radians
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}
