package mip

import (
	"image"
	"image/color"

	"nifti2mips/internal/models"
)

// DefaultInvertImage controls whether rendered projections are inverted
// to a photometric negative unless the caller overrides it.
const DefaultInvertImage = true

// displayRotationDegrees is the fixed counter-clockwise rotation applied
// to every rendered projection. The volume's axis order does not match
// the desired on-screen orientation, and one quarter turn corrects it
// uniformly for all three planes.
const displayRotationDegrees = 90

// Render converts one projection into its displayable image:
// percentile clipping, scaling to the 8-bit range, optional photometric
// inversion, and the fixed display rotation. The projection is mutated
// by the clipping step.
func Render(proj *models.Projection, thresholdPercentile float64, invert bool) *image.Gray {
	ClipToPercentileBounds(proj, thresholdPercentile)
	scaled := ScaleToByteRange(proj)

	img := image.NewGray(image.Rect(0, 0, proj.Cols, proj.Rows))
	for r := 0; r < proj.Rows; r++ {
		for c := 0; c < proj.Cols; c++ {
			img.SetGray(c, r, color.Gray{Y: scaled[r*proj.Cols+c]})
		}
	}

	if invert {
		img = invertGray(img)
	}

	return rotateCCW(img)
}

// invertGray replaces every pixel with its photometric negative
// (value -> 255 - value).
func invertGray(img *image.Gray) *image.Gray {
	for i, v := range img.Pix {
		img.Pix[i] = 255 - v
	}
	return img
}

// rotateCCW rotates a grayscale image a quarter turn counter-clockwise,
// so a WxH source becomes an HxW result with the source's rightmost
// column as the top row.
func rotateCCW(src *image.Gray) *image.Gray {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	dst := image.NewGray(image.Rect(0, 0, h, w))
	for y := 0; y < w; y++ {
		for x := 0; x < h; x++ {
			dst.SetGray(x, y, src.GrayAt(w-1-y, x))
		}
	}
	return dst
}
