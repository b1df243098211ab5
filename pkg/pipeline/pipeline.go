// Package pipeline drives the NIfTI-to-MIP conversion: load the volume,
// validate its dimensionality, render the three anatomical projections,
// and export them as PNG files.
package pipeline

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"nifti2mips/pkg/mip"
	"nifti2mips/pkg/nifti"
)

// Params holds the conversion configuration.
type Params struct {
	// InputFile is the path to the input NIfTI volume (.nii or .nii.gz)
	InputFile string

	// OutputDir is the directory the three projection images are
	// written into
	OutputDir string

	// ThresholdPercentile is the percentile cutoff applied to each
	// projection before scaling
	ThresholdPercentile float64

	// InvertImage renders the projections as photometric negatives
	InvertImage bool

	// Verbose enables progress logging
	Verbose bool
}

// Pipeline converts one NIfTI volume into its three maximum intensity
// projection images. Processing is sequential: a fatal step aborts the
// run immediately and images already written stay on disk.
type Pipeline struct {
	params *Params
}

// New creates a pipeline instance with the provided parameters.
func New(params *Params) *Pipeline {
	return &Pipeline{params: params}
}

// Process runs the conversion end to end. A load failure, a volume that
// is not 3-dimensional, or a failed image write aborts with an error;
// threshold-computation problems inside rendering only skip the clip
// step and never abort.
func (p *Pipeline) Process() error {
	p.logf("Loading NIfTI file - %s", p.params.InputFile)
	img, err := nifti.Load(p.params.InputFile)
	if err != nil {
		return fmt.Errorf("loading volume: %w", err)
	}

	vol, err := img.Volume()
	if err != nil {
		return fmt.Errorf("validating volume: %w", err)
	}

	p.logf("Computing maximum intensity projections...")
	sagittal, coronal, axial := mip.ExtractProjections(vol)

	images := map[mip.Plane]*image.Gray{
		mip.Sagittal: mip.Render(sagittal, p.params.ThresholdPercentile, p.params.InvertImage),
		mip.Coronal:  mip.Render(coronal, p.params.ThresholdPercentile, p.params.InvertImage),
		mip.Axial:    mip.Render(axial, p.params.ThresholdPercentile, p.params.InvertImage),
	}

	p.logf("Exporting images as PNG format...")
	for _, plane := range mip.Planes {
		path := filepath.Join(p.params.OutputDir, OutputFileName(p.params.InputFile, plane))
		if err := writePNG(path, images[plane]); err != nil {
			return fmt.Errorf("saving %s projection: %w", plane, err)
		}
	}

	p.logf("Successfully converted %s into MIP images", filepath.Base(p.params.InputFile))
	return nil
}

func (p *Pipeline) logf(format string, args ...interface{}) {
	if p.params.Verbose {
		log.Printf(format, args...)
	}
}

// OutputFileName derives the output image name for one projection plane
// from the input file name: the base name up to any volume-format
// suffix, tagged with the plane abbreviation.
func OutputFileName(inputPath string, plane mip.Plane) string {
	base := filepath.Base(inputPath)
	if i := strings.Index(base, ".nii"); i >= 0 {
		base = base[:i]
	}
	return fmt.Sprintf("%s_MIPs_%s.png", base, plane.Abbrev())
}

// writePNG persists one rendered projection as an 8-bit grayscale PNG.
func writePNG(path string, img *image.Gray) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return png.Encode(f, img)
}
