package minc

import (
	"os"
	"strconv"
)

// ResampleOptions adjust a single Resample invocation.
type ResampleOptions struct {
	// Binarize thresholds the result at 0.5 after resampling, turning the
	// interpolated intensities back into a mask
	Binarize bool
	// Verbose lets the underlying programs chatter on stderr instead of
	// passing -quiet
	Verbose bool
	// Extra is appended verbatim to the mincresample argument list, e.g.
	// an interpolation flag like -trilinear
	Extra []string
}

// Resample subdivides every voxel edge of the volume at input by divisions,
// writing the result to output. Dimension lengths are multiplied and step
// sizes divided by the factor, so the physical extent of the volume is
// unchanged. divisions is fractional on purpose: a value below 1 merges
// voxels instead of cutting them.
func (t Toolkit) Resample(input, output string, divisions float64, opts ResampleOptions) error {
	info, err := t.Info(input)
	if err != nil {
		return err
	}

	var args []string
	if !opts.Verbose {
		args = append(args, "-quiet")
	}
	args = append(args, "-nelements")
	for _, length := range info.Lengths {
		args = append(args, strconv.Itoa(int(divisions*float64(length))))
	}
	args = append(args, "-step")
	for _, step := range info.Steps {
		args = append(args, formatFloat(step/divisions))
	}
	args = append(args, opts.Extra...)
	args = append(args, input, output)
	if err := run(opts.Verbose, t.Mincresample, args...); err != nil {
		return err
	}

	if opts.Binarize {
		return t.Binarize(output, opts.Verbose)
	}
	return nil
}

// Binarize rewrites the volume at path as an unsigned byte mask, on where the
// sample exceeds 0.5. The result is produced next to path and renamed over
// it.
func (t Toolkit) Binarize(path string, verbose bool) error {
	tmp := path + ".binarized.mnc"
	var args []string
	if !verbose {
		args = append(args, "-quiet")
	}
	args = append(args, "-unsigned", "-byte", "-expression", "A[0]>0.5", path, tmp)
	if err := run(verbose, t.Minccalc, args...); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
