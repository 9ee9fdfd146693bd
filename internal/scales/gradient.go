package scales

import (
	"math"
	"strconv"
)

const (
	ColorNormal   = "var(--green)"
	ColorWarning  = "var(--yellow)"
	ColorCritical = "var(--red)"
)

// GradientStop is one colour stop, Offset in percent
type GradientStop struct {
	Offset float64
	Color  string
}

// OffsetString renders the offset as a CSS percentage
func (s GradientStop) OffsetString() string {
	return strconv.FormatFloat(s.Offset, 'f', -1, 64) + "%"
}

// Gradient is a vertical threshold ramp from the series minimum to its maximum
type Gradient struct {
	Stops []GradientStop
}

// ColorAt returns the colour of the last stop at or below offset
func (g Gradient) ColorAt(offset float64) string {
	if len(g.Stops) == 0 {
		return ""
	}
	c := g.Stops[0].Color
	for _, s := range g.Stops {
		if s.Offset > offset {
			break
		}
		c = s.Color
	}
	return c
}

func uniform(color string) Gradient {
	return Gradient{Stops: []GradientStop{{0, color}, {100, color}}}
}

// ComputeGradient colours [min,max] by the warning and critical thresholds.
// Data entirely inside one band gets a uniform gradient; otherwise six stops
// at min, warning, warning, critical, critical and max split the span into
// normal, warning and critical bands.
func ComputeGradient(min, max, warning, critical float64) Gradient {
	switch {
	case min > warning && max < critical:
		return uniform(ColorWarning)
	case min < warning && max < warning:
		return uniform(ColorNormal)
	case min > critical:
		return uniform(ColorCritical)
	case max == min:
		// a zero span has no room for bands
		switch {
		case min < warning:
			return uniform(ColorNormal)
		case min < critical:
			return uniform(ColorWarning)
		default:
			return uniform(ColorCritical)
		}
	}

	span := max - min
	values := []float64{min, warning, warning, critical, critical, max}
	colors := []string{ColorNormal, ColorNormal, ColorWarning, ColorWarning, ColorCritical, ColorCritical}

	g := Gradient{Stops: make([]GradientStop, len(values))}
	for i, v := range values {
		offset := 100 * (v - min) / span
		g.Stops[i] = GradientStop{Offset: math.Max(0, math.Min(100, offset)), Color: colors[i]}
	}
	return g
}
