package scales

import (
	"time"

	"github.com/wcharczuk/go-chart/v2"
)

// LinearScale maps a numeric domain onto a pixel range
type LinearScale struct {
	d0, d1 float64
	r0, r1 float64
}

// NewLinear creates a scale mapping [d0,d1] onto [r0,r1]
func NewLinear(d0, d1, r0, r1 float64) *LinearScale {
	return &LinearScale{d0: d0, d1: d1, r0: r0, r1: r1}
}

// Map converts a domain value to a pixel. A zero-width domain maps every
// value to the middle of the range.
func (s *LinearScale) Map(v float64) float64 {
	if s.d1 == s.d0 {
		return (s.r0 + s.r1) / 2
	}
	return s.r0 + (v-s.d0)/(s.d1-s.d0)*(s.r1-s.r0)
}

// Invert converts a pixel back to a domain value
func (s *LinearScale) Invert(px float64) float64 {
	if s.r1 == s.r0 {
		return s.d0
	}
	return s.d0 + (px-s.r0)/(s.r1-s.r0)*(s.d1-s.d0)
}

func (s *LinearScale) Domain() (float64, float64) { return s.d0, s.d1 }
func (s *LinearScale) Range() (float64, float64)  { return s.r0, s.r1 }

// TimeScale maps a time domain onto a pixel range
type TimeScale struct {
	t0, t1 time.Time
	lin    *LinearScale
}

// NewTime creates a scale mapping [t0,t1] onto [r0,r1]
func NewTime(t0, t1 time.Time, r0, r1 float64) *TimeScale {
	return &TimeScale{
		t0:  t0,
		t1:  t1,
		lin: NewLinear(chart.TimeToFloat64(t0), chart.TimeToFloat64(t1), r0, r1),
	}
}

// Map converts a time to a pixel
func (s *TimeScale) Map(t time.Time) float64 {
	return s.lin.Map(chart.TimeToFloat64(t))
}

// Invert converts a pixel back to a time in the domain's location
func (s *TimeScale) Invert(px float64) time.Time {
	if s.t0.Equal(s.t1) {
		return s.t0
	}
	return chart.TimeFromFloat64(s.lin.Invert(px)).In(s.t0.Location())
}

func (s *TimeScale) Domain() (time.Time, time.Time) { return s.t0, s.t1 }
func (s *TimeScale) Range() (float64, float64)     { return s.lin.Range() }
