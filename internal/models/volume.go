package models

// Volume represents a 3D scan volume loaded from a NIfTI file
type Volume struct {
	// Data is the 3D volume data as a 1D array with x varying fastest:
	// Data[x + Width*(y + Height*z)]
	Data []float64

	// Width is the extent of the volume along the x axis in voxels
	Width int

	// Height is the extent of the volume along the y axis in voxels
	Height int

	// Depth is the extent of the volume along the z axis in voxels
	Depth int

	// VoxelSize is the physical size of each voxel in mm
	VoxelSize struct {
		X, Y, Z float64
	}
}

// At returns the intensity at voxel (x, y, z).
func (v *Volume) At(x, y, z int) float64 {
	return v.Data[x+v.Width*(y+v.Height*z)]
}

// Projection is a 2D intensity array derived from a Volume by
// maximum-reduction along one axis. It is mutated in place by the
// clipping and scaling steps before being converted to an image.
type Projection struct {
	// Data holds the intensities in row-major order: Data[r*Cols + c]
	Data []float64

	// Rows and Cols are the projection dimensions
	Rows, Cols int
}

// NewProjection allocates a zero-valued projection with the given shape.
func NewProjection(rows, cols int) *Projection {
	return &Projection{
		Data: make([]float64, rows*cols),
		Rows: rows,
		Cols: cols,
	}
}

// At returns the intensity at row r, column c.
func (p *Projection) At(r, c int) float64 {
	return p.Data[r*p.Cols+c]
}

// Set stores an intensity at row r, column c.
func (p *Projection) Set(r, c int, value float64) {
	p.Data[r*p.Cols+c] = value
}
