package models

// Volume is the explicit value type exchanged with the external MINC toolkit.
// It holds a dense 3-dimensional grid of floating-point samples as a flat
// buffer, together with the geometry needed to write the grid back out.
type Volume struct {
	// Data is the sample buffer as a 1D array in file storage order
	// (slowest-varying dimension first)
	Data []float64

	// Dims are the dimension lengths in storage order
	Dims [3]int

	// DimNames are the MINC dimension names in storage order,
	// e.g. zspace, yspace, xspace
	DimNames [3]string

	// Steps are the per-dimension voxel step sizes in mm, indexed like Dims
	Steps [3]float64

	// Starts are the per-dimension world coordinates of the first voxel,
	// indexed like Dims
	Starts [3]float64
}

// NumVoxels returns the number of samples implied by the dimension lengths.
func (v *Volume) NumVoxels() int {
	return v.Dims[0] * v.Dims[1] * v.Dims[2]
}

// At returns the sample at position (i, j, k) in storage order.
func (v *Volume) At(i, j, k int) float64 {
	return v.Data[(i*v.Dims[1]+j)*v.Dims[2]+k]
}

// Sum returns the sum of all samples. For a binary mask this is the number
// of "on" voxels.
func (v *Volume) Sum() float64 {
	var total float64
	for _, s := range v.Data {
		total += s
	}
	return total
}
