package mip

import (
	"math"
	"testing"

	"nifti2mips/internal/models"
)

// rampProjection builds a rows x cols projection whose values are the
// flat index 0, 1, 2, ... so percentile positions are easy to compute.
func rampProjection(rows, cols int) *models.Projection {
	proj := models.NewProjection(rows, cols)
	for i := range proj.Data {
		proj.Data[i] = float64(i)
	}
	return proj
}

// TestThresholdBounds verifies the percentile bounds on a known ramp
func TestThresholdBounds(t *testing.T) {
	proj := rampProjection(10, 10)

	low, high, err := ThresholdBounds(proj, 90)
	if err != nil {
		t.Fatalf("ThresholdBounds failed: %v", err)
	}

	// Linear interpolation over 0..99: the 90th percentile sits at
	// index 0.9*99 = 89.1, the 10th at 9.9
	if math.Abs(high-89.1) > 1e-9 {
		t.Errorf("Expected high bound 89.1, got %f", high)
	}
	if math.Abs(low-9.9) > 1e-9 {
		t.Errorf("Expected low bound 9.9, got %f", low)
	}
}

// TestThresholdBoundsFractionalIndex verifies the estimator on uneven
// data: the bound interpolates at fractional index p/100*(n-1), not at
// a position derived from the empirical CDF
func TestThresholdBoundsFractionalIndex(t *testing.T) {
	proj := &models.Projection{
		Data: []float64{0, 10, 20, 30, 1000},
		Rows: 1,
		Cols: 5,
	}

	low, high, err := ThresholdBounds(proj, 98.5)
	if err != nil {
		t.Fatalf("ThresholdBounds failed: %v", err)
	}

	// Index 0.985*4 = 3.94 interpolates 94% of the way from 30 to 1000;
	// index 0.015*4 = 0.06 sits 6% of the way from 0 to 10
	if math.Abs(high-941.8) > 1e-9 {
		t.Errorf("Expected high bound 941.8, got %f", high)
	}
	if math.Abs(low-0.6) > 1e-9 {
		t.Errorf("Expected low bound 0.6, got %f", low)
	}
}

// TestThresholdBoundsSingleValue verifies the one-element degenerate case
func TestThresholdBoundsSingleValue(t *testing.T) {
	proj := &models.Projection{Data: []float64{12.5}, Rows: 1, Cols: 1}

	low, high, err := ThresholdBounds(proj, 98.5)
	if err != nil {
		t.Fatalf("ThresholdBounds failed: %v", err)
	}
	if low != 12.5 || high != 12.5 {
		t.Errorf("Expected both bounds 12.5, got (%f, %f)", low, high)
	}
}

// TestThresholdBoundsInvalidPercentile verifies the failure cases
func TestThresholdBoundsInvalidPercentile(t *testing.T) {
	proj := rampProjection(4, 4)

	for _, p := range []float64{-1, -0.001, 100.001, 150} {
		if _, _, err := ThresholdBounds(proj, p); err == nil {
			t.Errorf("Expected error for percentile %f, got nil", p)
		}
	}

	// Empty projections have no percentiles
	empty := models.NewProjection(0, 0)
	if _, _, err := ThresholdBounds(empty, 98.5); err == nil {
		t.Error("Expected error for empty projection, got nil")
	}
}

// TestClipKnownValues verifies that outliers collapse onto the bounds
// while interior values pass through
func TestClipKnownValues(t *testing.T) {
	proj := rampProjection(10, 10)

	ClipToPercentileBounds(proj, 90)

	// Values below the 10th percentile are raised to it
	if math.Abs(proj.At(0, 0)-9.9) > 1e-9 {
		t.Errorf("Expected low outlier clipped to 9.9, got %f", proj.At(0, 0))
	}

	// Values above the 90th percentile are lowered to it
	if math.Abs(proj.At(9, 9)-89.1) > 1e-9 {
		t.Errorf("Expected high outlier clipped to 89.1, got %f", proj.At(9, 9))
	}

	// Interior values are untouched
	if proj.At(5, 0) != 50 {
		t.Errorf("Expected interior value 50 unchanged, got %f", proj.At(5, 0))
	}
}

// TestClipConstantArray verifies that flat projections pass through
// unchanged for any valid percentile
func TestClipConstantArray(t *testing.T) {
	for _, p := range []float64{0.1, 1.5, 50, 98.5, 99.9} {
		proj := models.NewProjection(5, 5)
		for i := range proj.Data {
			proj.Data[i] = 7.5
		}

		ClipToPercentileBounds(proj, p)

		for i, v := range proj.Data {
			if v != 7.5 {
				t.Fatalf("Percentile %f: constant array modified at %d: got %f", p, i, v)
			}
		}
	}
}

// TestClipInvalidPercentileIsIdentity verifies the recoverable failure
// mode: an out-of-range percentile skips the clip step entirely
func TestClipInvalidPercentileIsIdentity(t *testing.T) {
	for _, p := range []float64{-5, 101, 250} {
		proj := rampProjection(6, 6)

		result := ClipToPercentileBounds(proj, p)

		if result != proj {
			t.Errorf("Percentile %f: expected the same projection back", p)
		}
		for i, v := range proj.Data {
			if v != float64(i) {
				t.Fatalf("Percentile %f: projection modified at %d: got %f", p, i, v)
			}
		}
	}
}

// TestClipEmptyProjection verifies that an empty projection does not
// panic and comes back unmodified
func TestClipEmptyProjection(t *testing.T) {
	proj := models.NewProjection(0, 0)

	result := ClipToPercentileBounds(proj, 98.5)

	if len(result.Data) != 0 {
		t.Errorf("Expected empty projection, got %d values", len(result.Data))
	}
}

// TestClipFullRangePercentile verifies that percentile 100 clips to the
// data extrema and is therefore a no-op
func TestClipFullRangePercentile(t *testing.T) {
	proj := rampProjection(4, 4)

	ClipToPercentileBounds(proj, 100)

	for i, v := range proj.Data {
		if v != float64(i) {
			t.Fatalf("Percentile 100 modified value at %d: got %f", i, v)
		}
	}
}
