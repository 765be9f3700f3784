// Package minc wraps the command-line programs of the MINC toolkit. Every
// volume read, write and resample operation in this project goes through an
// external process; this package is the only place that spawns them.
package minc

import (
	"fmt"
	"strconv"
	"strings"
)

// spaces are the MINC spatial dimensions in the x, y, z order that
// mincresample reports and consumes sizes in.
var spaces = [3]string{"xspace", "yspace", "zspace"}

// Toolkit names the MINC toolkit executables to invoke. The zero value is not
// usable; call DefaultToolkit for binaries resolved from PATH, or fill in
// absolute paths for a nonstandard installation.
type Toolkit struct {
	Mincinfo     string
	Mincresample string
	Minccalc     string
	Mincextract  string
	Rawtominc    string
}

// DefaultToolkit returns a Toolkit that resolves every program from PATH.
func DefaultToolkit() Toolkit {
	return Toolkit{
		Mincinfo:     "mincinfo",
		Mincresample: "mincresample",
		Minccalc:     "minccalc",
		Mincextract:  "mincextract",
		Rawtominc:    "rawtominc",
	}
}

// Info holds the spatial metadata of a volume in x, y, z order.
type Info struct {
	// Lengths are the dimension sizes in voxels
	Lengths [3]int
	// Steps are the voxel step sizes in mm
	Steps [3]float64
}

// Info queries the dimension lengths and step sizes of the volume at path.
func (t Toolkit) Info(path string) (Info, error) {
	var info Info
	for i, dim := range spaces {
		length, err := t.DimLength(path, dim)
		if err != nil {
			return Info{}, err
		}
		step, err := t.Step(path, dim)
		if err != nil {
			return Info{}, err
		}
		info.Lengths[i] = length
		info.Steps[i] = step
	}
	return info, nil
}

// DimNames returns the dimension names of the volume at path in file storage
// order, slowest-varying first.
func (t Toolkit) DimNames(path string) ([3]string, error) {
	out, err := output(t.Mincinfo, "-dimnames", path)
	if err != nil {
		return [3]string{}, err
	}
	fields := strings.Fields(out)
	if len(fields) != 3 {
		return [3]string{}, fmt.Errorf("%s: expected 3 dimensions, got %v", path, fields)
	}
	var names [3]string
	copy(names[:], fields)
	return names, nil
}

// DimLength returns the size in voxels of one dimension of the volume at path.
func (t Toolkit) DimLength(path, dim string) (int, error) {
	out, err := output(t.Mincinfo, "-dimlength", dim, path)
	if err != nil {
		return 0, err
	}
	length, err := strconv.Atoi(out)
	if err != nil {
		return 0, fmt.Errorf("%s: bad %s length %q: %w", path, dim, out, err)
	}
	return length, nil
}

// Step returns the voxel step size in mm of one dimension of the volume at
// path.
func (t Toolkit) Step(path, dim string) (float64, error) {
	out, err := output(t.Mincinfo, "-attvalue", dim+":step", path)
	if err != nil {
		return 0, err
	}
	step, err := strconv.ParseFloat(out, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: bad %s step %q: %w", path, dim, out, err)
	}
	return step, nil
}

// Start returns the world coordinate of the first voxel along one dimension
// of the volume at path. Volumes without a start attribute read as 0.
func (t Toolkit) Start(path, dim string) (float64, error) {
	out, err := output(t.Mincinfo, "-error_string", "0", "-attvalue", dim+":start", path)
	if err != nil {
		return 0, err
	}
	start, err := strconv.ParseFloat(out, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: bad %s start %q: %w", path, dim, out, err)
	}
	return start, nil
}
