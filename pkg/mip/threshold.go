package mip

import (
	"fmt"
	"log"
	"math"
	"sort"

	"nifti2mips/internal/models"
)

// DefaultThresholdPercentile is the percentile cutoff applied to each
// projection before scaling when the caller does not override it.
const DefaultThresholdPercentile = 98.5

// ThresholdBounds computes the clipping bounds for a projection: the
// upper bound is the value at the given percentile, the lower bound the
// value at (100 - percentile). The percentile must lie in [0, 100].
// Bounds are computed with linear interpolation between sorted samples.
func ThresholdBounds(proj *models.Projection, percentile float64) (low, high float64, err error) {
	if percentile < 0 || percentile > 100 {
		return 0, 0, fmt.Errorf("percentile %g outside the range [0, 100]", percentile)
	}
	if len(proj.Data) == 0 {
		return 0, 0, fmt.Errorf("cannot compute percentiles of an empty projection")
	}

	// Work on a sorted copy so the projection keeps its spatial layout
	sorted := make([]float64, len(proj.Data))
	copy(sorted, proj.Data)
	sort.Float64s(sorted)

	high = percentileOfSorted(sorted, percentile)
	low = percentileOfSorted(sorted, 100-percentile)
	return low, high, nil
}

// percentileOfSorted returns the value at the given percentile of an
// ascending slice, interpolating linearly between the neighbors of the
// fractional index p/100 * (n-1).
func percentileOfSorted(sorted []float64, percentile float64) float64 {
	idx := percentile / 100 * float64(len(sorted)-1)
	lower := int(math.Floor(idx))
	if lower >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := idx - float64(lower)
	return sorted[lower] + frac*(sorted[lower+1]-sorted[lower])
}

// ClipToPercentileBounds clamps every projection value below the lower
// threshold bound up to it, and every value above the upper bound down
// to it, in place.
//
// A threshold-computation failure (percentile outside [0, 100], empty
// projection) is logged and the projection is returned unmodified: the
// clip step is skipped rather than aborting the pipeline, so callers
// must not assume clipping occurred.
func ClipToPercentileBounds(proj *models.Projection, percentile float64) *models.Projection {
	low, high, err := ThresholdBounds(proj, percentile)
	if err != nil {
		log.Printf("Error determining threshold bounds, leaving projection unclipped: %v", err)
		return proj
	}

	for i, v := range proj.Data {
		if v < low {
			v = low
		}
		if v > high {
			v = high
		}
		proj.Data[i] = v
	}

	return proj
}
