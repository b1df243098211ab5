package mip

import (
	"gonum.org/v1/gonum/floats"

	"nifti2mips/internal/models"
)

// ScaleToByteRange linearly maps the projection's value range onto the
// displayable range [0, 255] and truncates to 8-bit integers:
//
//	out = (in - min) * 255 / (max - min)
//
// A projection with zero intensity range (max == min) maps to an
// all-zero result instead of dividing by zero. The returned slice is
// row-major with the projection's shape.
func ScaleToByteRange(proj *models.Projection) []uint8 {
	out := make([]uint8, len(proj.Data))
	if len(proj.Data) == 0 {
		return out
	}

	min := floats.Min(proj.Data)
	max := floats.Max(proj.Data)
	if max == min {
		return out
	}

	for i, v := range proj.Data {
		out[i] = uint8((v - min) * 255 / (max - min))
	}
	return out
}
