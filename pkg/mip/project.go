// Package mip implements the maximum intensity projection pipeline:
// reducing a 3D volume to its three anatomical-plane projections,
// percentile clipping, 8-bit dynamic-range scaling, and rendering the
// result as a display-oriented grayscale image.
package mip

import (
	"math"

	"nifti2mips/internal/models"
)

// Plane identifies one of the three standard anatomical viewing planes.
// Each plane corresponds to a fixed volume axis that the projection
// collapses; the mapping is a display convention, not derived geometry.
type Plane int

const (
	// Sagittal collapses the x axis, producing a (Height, Depth) projection
	Sagittal Plane = iota

	// Coronal collapses the y axis, producing a (Width, Depth) projection
	Coronal

	// Axial collapses the z axis, producing a (Width, Height) projection
	Axial
)

// String returns the anatomical name of the plane.
func (p Plane) String() string {
	switch p {
	case Sagittal:
		return "sagittal"
	case Coronal:
		return "coronal"
	case Axial:
		return "axial"
	default:
		return "unknown"
	}
}

// Abbrev returns the short plane tag used in output file names.
func (p Plane) Abbrev() string {
	switch p {
	case Sagittal:
		return "sag"
	case Coronal:
		return "cor"
	case Axial:
		return "ax"
	default:
		return "unknown"
	}
}

// Planes lists the three projection planes in rendering order.
var Planes = []Plane{Sagittal, Coronal, Axial}

// ExtractProjections computes the maximum intensity projection of the
// volume along each of the three axes. For a volume of shape
// (Width, Height, Depth) the resulting shapes are:
//
//	sagittal: (Height, Depth)
//	coronal:  (Width, Depth)
//	axial:    (Width, Height)
func ExtractProjections(vol *models.Volume) (sagittal, coronal, axial *models.Projection) {
	sagittal = Project(vol, Sagittal)
	coronal = Project(vol, Coronal)
	axial = Project(vol, Axial)
	return sagittal, coronal, axial
}

// Project computes the maximum intensity projection of the volume along
// the axis collapsed by the given plane.
func Project(vol *models.Volume, plane Plane) *models.Projection {
	var proj *models.Projection

	switch plane {
	case Sagittal:
		// Collapse x: each (y, z) pixel is the brightest voxel along x
		proj = models.NewProjection(vol.Height, vol.Depth)
		for y := 0; y < vol.Height; y++ {
			for z := 0; z < vol.Depth; z++ {
				max := math.Inf(-1)
				for x := 0; x < vol.Width; x++ {
					if v := vol.At(x, y, z); v > max {
						max = v
					}
				}
				proj.Set(y, z, max)
			}
		}

	case Coronal:
		// Collapse y: each (x, z) pixel is the brightest voxel along y
		proj = models.NewProjection(vol.Width, vol.Depth)
		for x := 0; x < vol.Width; x++ {
			for z := 0; z < vol.Depth; z++ {
				max := math.Inf(-1)
				for y := 0; y < vol.Height; y++ {
					if v := vol.At(x, y, z); v > max {
						max = v
					}
				}
				proj.Set(x, z, max)
			}
		}

	case Axial:
		// Collapse z: each (x, y) pixel is the brightest voxel along z
		proj = models.NewProjection(vol.Width, vol.Height)
		for x := 0; x < vol.Width; x++ {
			for y := 0; y < vol.Height; y++ {
				max := math.Inf(-1)
				for z := 0; z < vol.Depth; z++ {
					if v := vol.At(x, y, z); v > max {
						max = v
					}
				}
				proj.Set(x, y, max)
			}
		}
	}

	return proj
}
