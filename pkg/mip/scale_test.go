package mip

import (
	"testing"

	"nifti2mips/internal/models"
)

// TestScaleKnownValues verifies the linear mapping onto [0, 255]
func TestScaleKnownValues(t *testing.T) {
	proj := &models.Projection{
		Data: []float64{0, 1, 2, 3},
		Rows: 2,
		Cols: 2,
	}

	out := ScaleToByteRange(proj)

	expected := []uint8{0, 85, 170, 255}
	for i, want := range expected {
		if out[i] != want {
			t.Errorf("Expected scaled value %d at %d, got %d", want, i, out[i])
		}
	}
}

// TestScaleMonotonic verifies that scaling preserves value ordering
func TestScaleMonotonic(t *testing.T) {
	proj := &models.Projection{
		Data: []float64{-3.5, 12.25, 0, 700, 699.5, 0.001, -3.4},
		Rows: 1,
		Cols: 7,
	}

	out := ScaleToByteRange(proj)

	for i := range proj.Data {
		for j := range proj.Data {
			if proj.Data[i] < proj.Data[j] && out[i] > out[j] {
				t.Errorf("Ordering violated: input %f < %f but output %d > %d",
					proj.Data[i], proj.Data[j], out[i], out[j])
			}
		}
	}

	// The extrema map to the ends of the displayable range
	if out[3] != 255 {
		t.Errorf("Expected maximum to scale to 255, got %d", out[3])
	}
	if out[0] != 0 {
		t.Errorf("Expected minimum to scale to 0, got %d", out[0])
	}
}

// TestScaleConstantArray verifies that a zero-range projection produces
// an all-zero result instead of dividing by zero
func TestScaleConstantArray(t *testing.T) {
	proj := models.NewProjection(3, 4)
	for i := range proj.Data {
		proj.Data[i] = 42.5
	}

	out := ScaleToByteRange(proj)

	if len(out) != 12 {
		t.Fatalf("Expected 12 values, got %d", len(out))
	}
	for i, v := range out {
		if v != 0 {
			t.Errorf("Expected 0 at %d for constant input, got %d", i, v)
		}
	}
}

// TestScaleEmptyProjection verifies the degenerate empty case
func TestScaleEmptyProjection(t *testing.T) {
	out := ScaleToByteRange(models.NewProjection(0, 0))
	if len(out) != 0 {
		t.Errorf("Expected empty output, got %d values", len(out))
	}
}
