// Package animation interpolates a value over a fixed duration against an
// injected clock.
package animation

import (
	"time"
)

// Ease maps normalized time in [0,1] to progress in [0,1]
type Ease func(t float64) float64

// EaseLinear is the identity easing
func EaseLinear(t float64) float64 { return t }

// EaseCubicInOut accelerates through the first half and decelerates through the second
func EaseCubicInOut(t float64) float64 {
	t *= 2
	if t <= 1 {
		return t * t * t / 2
	}
	t -= 2
	return (t*t*t + 2) / 2
}

// Tween moves a value from From to To starting at Start
type Tween struct {
	From     float64
	To       float64
	Start    time.Time
	Duration time.Duration
	Ease     Ease
}

// Progress is the normalized elapsed time at now, clamped to [0,1]
func (tw *Tween) Progress(now time.Time) float64 {
	if tw.Duration <= 0 {
		return 1
	}
	p := float64(now.Sub(tw.Start)) / float64(tw.Duration)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

// Value is the interpolated value at now
func (tw *Tween) Value(now time.Time) float64 {
	ease := tw.Ease
	if ease == nil {
		ease = EaseCubicInOut
	}
	return Interpolate(tw.From, tw.To, ease(tw.Progress(now)))
}

// Done reports whether the tween has reached its end at now
func (tw *Tween) Done(now time.Time) bool {
	return tw.Progress(now) >= 1
}

// Interpolate blends a and b by t
func Interpolate(a, b, t float64) float64 {
	return a + (b-a)*t
}
