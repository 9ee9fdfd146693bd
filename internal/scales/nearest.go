package scales

import (
	"sort"

	"chartscope/internal/models"
)

// ClosestPoint returns the sample nearest in time to pixel x and its index.
// Samples must be ascending by X; this is not checked. A single sample is
// returned as is and an empty slice yields index -1.
func ClosestPoint(x float64, xScale *TimeScale, samples []models.SampleRecord) (models.SampleRecord, int) {
	switch {
	case len(samples) == 0:
		return models.SampleRecord{}, -1
	case len(samples) == 1 || xScale == nil:
		return samples[0], 0
	}

	target := xScale.Invert(x)
	// left insertion point with a lower bound of 1
	idx := 1 + sort.Search(len(samples)-1, func(i int) bool {
		return !samples[i+1].X.Before(target)
	})
	if idx > len(samples)-1 {
		idx = len(samples) - 1
	}

	left, right := samples[idx-1], samples[idx]
	if target.Sub(left.X) > right.X.Sub(target) {
		return right, idx
	}
	return left, idx - 1
}
