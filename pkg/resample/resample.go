// Package resample produces subdivided volumes by the two strategies under
// comparison: interpolation through mincresample, and the exact
// Kronecker-product subdivision that serves as ground truth.
package resample

import (
	"github.com/FNNDSC/ep-subdivide-mnc-methods/internal/models"
	"github.com/FNNDSC/ep-subdivide-mnc-methods/pkg/minc"
)

// Resampler subdivides voxels of MINC volumes by a fixed division factor.
type Resampler struct {
	// Tools is the toolkit used for volume I/O and interpolation
	Tools minc.Toolkit
	// Divisions is the number of cuts along each voxel edge
	Divisions int
	// Verbose passes tool output through instead of silencing it
	Verbose bool
}

// Interpolated resamples input with the given interpolation method, writing
// the result to output. The result is binarized, since downstream diffing
// treats volumes as masks.
func (r Resampler) Interpolated(input, output string, method models.Method) error {
	return r.Tools.Resample(input, output, float64(r.Divisions), minc.ResampleOptions{
		Binarize: true,
		Verbose:  r.Verbose,
		Extra:    []string{method.Flag()},
	})
}

// Kronecker subdivides input without interpolation, writing the result to
// output. Every voxel becomes a block of identical sub-voxels, so the result
// is exact whenever the division factor is compatible with the voxel grid.
func (r Resampler) Kronecker(input, output string) error {
	vol, err := r.Tools.ReadVolume(input)
	if err != nil {
		return err
	}
	return r.Tools.WriteVolume(Kron(vol, r.Divisions), output)
}

// Kron returns the Kronecker product of v with a cube of ones of edge
// divisions: sample (i, j, k) of the result is sample (i/d, j/d, k/d) of v.
// Dimension lengths multiply and step sizes divide by the factor, keeping
// the physical extent of the volume unchanged.
func Kron(v *models.Volume, divisions int) *models.Volume {
	d := divisions
	out := &models.Volume{
		Dims:     [3]int{v.Dims[0] * d, v.Dims[1] * d, v.Dims[2] * d},
		DimNames: v.DimNames,
	}
	for i := range v.Steps {
		out.Steps[i] = v.Steps[i] / float64(d)
		out.Starts[i] = v.Starts[i]
	}

	out.Data = make([]float64, out.NumVoxels())
	idx := 0
	for i := 0; i < out.Dims[0]; i++ {
		for j := 0; j < out.Dims[1]; j++ {
			for k := 0; k < out.Dims[2]; k++ {
				out.Data[idx] = v.At(i/d, j/d, k/d)
				idx++
			}
		}
	}
	return out
}
