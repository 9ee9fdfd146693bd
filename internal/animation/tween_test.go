package animation

import (
	"math"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
)

func TestEaseCubicInOut(t *testing.T) {
	tests := []struct {
		in       float64
		expected float64
	}{
		{0, 0},
		{0.25, 0.0625},
		{0.5, 0.5},
		{0.75, 0.9375},
		{1, 1},
	}
	for _, test := range tests {
		if got := EaseCubicInOut(test.in); math.Abs(got-test.expected) > 1e-12 {
			t.Errorf("Expected ease(%v) = %v, got %v", test.in, test.expected, got)
		}
	}
}

func TestTweenAgainstMockClock(t *testing.T) {
	mock := clock.NewMock()
	tw := &Tween{From: 10, To: 20, Start: mock.Now(), Duration: 400 * time.Millisecond}

	if got := tw.Value(mock.Now()); got != 10 {
		t.Errorf("Expected start value 10, got %v", got)
	}
	if tw.Done(mock.Now()) {
		t.Error("Expected tween to be running at start")
	}

	mock.Add(200 * time.Millisecond)
	if got := tw.Value(mock.Now()); math.Abs(got-15) > 1e-9 {
		t.Errorf("Expected midpoint value 15, got %v", got)
	}

	mock.Add(300 * time.Millisecond)
	if got := tw.Value(mock.Now()); got != 20 {
		t.Errorf("Expected end value 20 after overrun, got %v", got)
	}
	if !tw.Done(mock.Now()) {
		t.Error("Expected tween to be done")
	}
}

func TestTweenLinearAndInstant(t *testing.T) {
	start := time.Unix(0, 0)
	tw := &Tween{From: 0, To: 8, Start: start, Duration: time.Second, Ease: EaseLinear}
	if got := tw.Value(start.Add(250 * time.Millisecond)); got != 2 {
		t.Errorf("Expected linear value 2, got %v", got)
	}
	if got := tw.Value(start.Add(-time.Second)); got != 0 {
		t.Errorf("Expected value before start to clamp to 0, got %v", got)
	}

	instant := &Tween{From: 1, To: 3, Start: start}
	if !instant.Done(start) || instant.Value(start) != 3 {
		t.Error("Expected zero-duration tween to finish immediately")
	}
}
