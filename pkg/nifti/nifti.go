// Package nifti reads and writes single-file NIfTI-1 images
// (.nii and .nii.gz). Only the header fields needed to decode the voxel
// grid are interpreted: dimensions, datatype, voxel spacing, and the
// scl_slope/scl_inter intensity rescaling.
package nifti

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"nifti2mips/internal/models"
)

// ErrNotVolume reports an image whose shape is not a 3D volume.
var ErrNotVolume = errors.New("nifti: image is not a 3-dimensional volume")

// Voxel datatype codes from the NIfTI-1 standard. Only the scalar types
// commonly produced by scanner conversion tools are supported.
const (
	DTUint8   = 2
	DTInt16   = 4
	DTInt32   = 8
	DTFloat32 = 16
	DTFloat64 = 64
)

// headerSize is the fixed size of a NIfTI-1 header in bytes.
const headerSize = 348

// defaultVoxOffset is where voxel data starts in a single-file image:
// the header plus the four-byte extension indicator.
const defaultVoxOffset = 352

// header mirrors the packed NIfTI-1 header struct byte for byte.
type header struct {
	SizeofHdr     int32
	DataType      [10]byte
	DBName        [18]byte
	Extents       int32
	SessionError  int16
	Regular       byte
	DimInfo       byte
	Dim           [8]int16
	IntentP1      float32
	IntentP2      float32
	IntentP3      float32
	IntentCode    int16
	Datatype      int16
	Bitpix        int16
	SliceStart    int16
	Pixdim        [8]float32
	VoxOffset     float32
	SclSlope      float32
	SclInter      float32
	SliceEnd      int16
	SliceCode     byte
	XyztUnits     byte
	CalMax        float32
	CalMin        float32
	SliceDuration float32
	Toffset       float32
	Glmax         int32
	Glmin         int32
	Descrip       [80]byte
	AuxFile       [24]byte
	QformCode     int16
	SformCode     int16
	QuaternB      float32
	QuaternC      float32
	QuaternD      float32
	QoffsetX      float32
	QoffsetY      float32
	QoffsetZ      float32
	SrowX         [4]float32
	SrowY         [4]float32
	SrowZ         [4]float32
	IntentName    [16]byte
	Magic         [4]byte
}

// Image is a decoded NIfTI image: the voxel intensities plus shape
// metadata. The dimensionality is whatever the file declares; callers
// needing a 3D volume go through Volume.
type Image struct {
	// Dims holds the extent of each image dimension, dim[1..dim[0]]
	// from the header
	Dims []int

	// Pixdim holds the voxel spacing for each dimension, in the
	// header's spatial units
	Pixdim []float64

	// Data holds the voxel intensities with the first dimension varying
	// fastest, scl_slope/scl_inter already applied
	Data []float64
}

// Volume converts the image into a 3D volume. It fails with ErrNotVolume
// unless the image has exactly three positive dimensions.
func (img *Image) Volume() (*models.Volume, error) {
	if len(img.Dims) != 3 {
		return nil, fmt.Errorf("%w: shape has %d dimensions", ErrNotVolume, len(img.Dims))
	}
	for _, d := range img.Dims {
		if d <= 0 {
			return nil, fmt.Errorf("%w: shape %v has a non-positive extent", ErrNotVolume, img.Dims)
		}
	}

	vol := &models.Volume{
		Data:   img.Data,
		Width:  img.Dims[0],
		Height: img.Dims[1],
		Depth:  img.Dims[2],
	}
	if len(img.Pixdim) == 3 {
		vol.VoxelSize.X = img.Pixdim[0]
		vol.VoxelSize.Y = img.Pixdim[1]
		vol.VoxelSize.Z = img.Pixdim[2]
	}
	return vol, nil
}

// Load reads a NIfTI-1 image from disk. Files ending in .gz are
// decompressed transparently.
func Load(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening NIfTI file: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("decompressing %s: %w", path, err)
		}
		defer gz.Close()
		r = gz
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	img, err := Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}

// Decode parses a raw single-file NIfTI-1 image.
func Decode(raw []byte) (*Image, error) {
	if len(raw) < headerSize {
		return nil, fmt.Errorf("file too small for a NIfTI-1 header (%d bytes)", len(raw))
	}

	// The header carries no explicit endianness flag; sizeof_hdr reads
	// as 348 only under the byte order the file was written with
	var order binary.ByteOrder = binary.LittleEndian
	if order.Uint32(raw[:4]) != headerSize {
		order = binary.BigEndian
		if order.Uint32(raw[:4]) != headerSize {
			return nil, fmt.Errorf("not a NIfTI-1 file: unrecognized header size")
		}
	}

	var hdr header
	if err := binary.Read(bytes.NewReader(raw[:headerSize]), order, &hdr); err != nil {
		return nil, fmt.Errorf("parsing header: %w", err)
	}

	if string(hdr.Magic[:3]) != "n+1" {
		if string(hdr.Magic[:3]) == "ni1" {
			return nil, fmt.Errorf("two-file (.hdr/.img) NIfTI images are not supported")
		}
		return nil, fmt.Errorf("not a NIfTI-1 file: bad magic %q", hdr.Magic[:])
	}

	ndim := int(hdr.Dim[0])
	if ndim < 1 || ndim > 7 {
		return nil, fmt.Errorf("invalid dimension count %d", ndim)
	}

	img := &Image{
		Dims:   make([]int, ndim),
		Pixdim: make([]float64, ndim),
	}
	voxels := 1
	for i := 0; i < ndim; i++ {
		img.Dims[i] = int(hdr.Dim[i+1])
		img.Pixdim[i] = float64(hdr.Pixdim[i+1])
		if img.Dims[i] > 0 {
			voxels *= img.Dims[i]
		}
	}

	bytesPerVoxel, err := voxelSize(hdr.Datatype)
	if err != nil {
		return nil, err
	}

	offset := int(hdr.VoxOffset)
	if offset < headerSize {
		offset = defaultVoxOffset
	}
	need := offset + voxels*bytesPerVoxel
	if len(raw) < need {
		return nil, fmt.Errorf("truncated voxel data: have %d bytes, need %d", len(raw), need)
	}

	img.Data = decodeVoxels(raw[offset:need], hdr.Datatype, order, voxels)

	// scl_slope == 0 means no rescaling per the standard
	if slope := float64(hdr.SclSlope); slope != 0 && !(slope == 1 && hdr.SclInter == 0) {
		inter := float64(hdr.SclInter)
		for i, v := range img.Data {
			img.Data[i] = v*slope + inter
		}
	}

	return img, nil
}

// voxelSize returns the storage size of one voxel for a datatype code.
func voxelSize(datatype int16) (int, error) {
	switch datatype {
	case DTUint8:
		return 1, nil
	case DTInt16:
		return 2, nil
	case DTInt32, DTFloat32:
		return 4, nil
	case DTFloat64:
		return 8, nil
	default:
		return 0, fmt.Errorf("unsupported NIfTI datatype code %d", datatype)
	}
}

// decodeVoxels converts raw voxel bytes into float64 intensities.
func decodeVoxels(raw []byte, datatype int16, order binary.ByteOrder, voxels int) []float64 {
	data := make([]float64, voxels)

	switch datatype {
	case DTUint8:
		for i := 0; i < voxels; i++ {
			data[i] = float64(raw[i])
		}
	case DTInt16:
		for i := 0; i < voxels; i++ {
			data[i] = float64(int16(order.Uint16(raw[2*i:])))
		}
	case DTInt32:
		for i := 0; i < voxels; i++ {
			data[i] = float64(int32(order.Uint32(raw[4*i:])))
		}
	case DTFloat32:
		for i := 0; i < voxels; i++ {
			data[i] = float64(math.Float32frombits(order.Uint32(raw[4*i:])))
		}
	case DTFloat64:
		for i := 0; i < voxels; i++ {
			data[i] = math.Float64frombits(order.Uint64(raw[8*i:]))
		}
	}

	return data
}
