package nifti

import (
	"compress/gzip"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strings"
)

// Encode writes the image as a little-endian single-file NIfTI-1 image
// with float64 voxels.
func Encode(w io.Writer, img *Image) error {
	ndim := len(img.Dims)
	if ndim < 1 || ndim > 7 {
		return fmt.Errorf("invalid dimension count %d", ndim)
	}

	voxels := 1
	for _, d := range img.Dims {
		voxels *= d
	}
	if voxels != len(img.Data) {
		return fmt.Errorf("shape %v does not match %d voxels", img.Dims, len(img.Data))
	}

	hdr := header{
		SizeofHdr: headerSize,
		Regular:   'r',
		Datatype:  DTFloat64,
		Bitpix:    64,
		VoxOffset: defaultVoxOffset,
		SclSlope:  1,
		Magic:     [4]byte{'n', '+', '1', 0},
	}

	// Unused trailing dims are 1 by convention
	hdr.Dim[0] = int16(ndim)
	for i := range hdr.Dim[1:] {
		hdr.Dim[i+1] = 1
		hdr.Pixdim[i+1] = 1
	}
	for i, d := range img.Dims {
		hdr.Dim[i+1] = int16(d)
	}
	for i, p := range img.Pixdim {
		hdr.Pixdim[i+1] = float32(p)
	}

	if err := binary.Write(w, binary.LittleEndian, &hdr); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	// Four-byte extension indicator, all zero: no extensions follow
	if _, err := w.Write(make([]byte, defaultVoxOffset-headerSize)); err != nil {
		return fmt.Errorf("writing extension indicator: %w", err)
	}

	if err := binary.Write(w, binary.LittleEndian, img.Data); err != nil {
		return fmt.Errorf("writing voxel data: %w", err)
	}
	return nil
}

// Save writes the image to disk, gzip-compressing when the path ends
// in .gz.
func Save(path string, img *Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating NIfTI file: %w", err)
	}
	defer f.Close()

	if strings.HasSuffix(path, ".gz") {
		gz := gzip.NewWriter(f)
		if err := Encode(gz, img); err != nil {
			return err
		}
		if err := gz.Close(); err != nil {
			return fmt.Errorf("compressing %s: %w", path, err)
		}
		return nil
	}

	return Encode(f, img)
}
