package minc

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/FNNDSC/ep-subdivide-mnc-methods/internal/models"
)

// ReadVolume loads the volume at path into memory. Samples come from
// mincextract as normalized real values, so integer-typed files read back as
// their scaled intensities.
func (t Toolkit) ReadVolume(path string) (*models.Volume, error) {
	names, err := t.DimNames(path)
	if err != nil {
		return nil, err
	}

	vol := &models.Volume{DimNames: names}
	for i, dim := range names {
		length, err := t.DimLength(path, dim)
		if err != nil {
			return nil, err
		}
		step, err := t.Step(path, dim)
		if err != nil {
			return nil, err
		}
		start, err := t.Start(path, dim)
		if err != nil {
			return nil, err
		}
		vol.Dims[i] = length
		vol.Steps[i] = step
		vol.Starts[i] = start
	}

	raw, err := t.extract(path)
	if err != nil {
		return nil, err
	}
	want := vol.NumVoxels() * 8
	if len(raw) != want {
		return nil, fmt.Errorf("%s: mincextract produced %d bytes, expected %d for dims %v",
			path, len(raw), want, vol.Dims)
	}
	vol.Data = make([]float64, vol.NumVoxels())
	for i := range vol.Data {
		vol.Data[i] = math.Float64frombits(binary.NativeEndian.Uint64(raw[i*8:]))
	}
	return vol, nil
}

// extract dumps the sample buffer of path as native-endian doubles.
func (t Toolkit) extract(path string) ([]byte, error) {
	cmd := exec.Command(t.Mincextract, "-double", "-normalize", path)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, &ToolError{
			Command: t.Mincextract,
			Args:    cmd.Args[1:],
			Stderr:  strings.TrimSpace(stderr.String()),
			Err:     err,
		}
	}
	return stdout.Bytes(), nil
}

// WriteVolume stores v at path in MINC format, replacing any existing file.
// The sample buffer is spooled to a sibling raw file and converted by
// rawtominc, which carries over the dimension order and geometry of v.
func (t Toolkit) WriteVolume(v *models.Volume, path string) error {
	raw := path + ".raw"
	if err := writeRaw(v.Data, raw); err != nil {
		return err
	}
	defer os.Remove(raw)

	args := []string{
		"-double", "-clobber",
		"-input", raw,
		"-dimorder", strings.Join(v.DimNames[:], ","),
	}
	for i, dim := range v.DimNames {
		args = append(args,
			axisFlag(dim, "step"), formatFloat(v.Steps[i]),
			axisFlag(dim, "start"), formatFloat(v.Starts[i]),
		)
	}
	args = append(args, path,
		strconv.Itoa(v.Dims[0]), strconv.Itoa(v.Dims[1]), strconv.Itoa(v.Dims[2]))
	return run(false, t.Rawtominc, args...)
}

// writeRaw spools samples as native-endian doubles to path.
func writeRaw(data []float64, path string) error {
	buf := make([]byte, len(data)*8)
	for i, s := range data {
		binary.NativeEndian.PutUint64(buf[i*8:], math.Float64bits(s))
	}
	return os.WriteFile(path, buf, 0644)
}

// axisFlag builds rawtominc per-axis flags such as -xstep and -zstart from a
// dimension name like xspace.
func axisFlag(dim, attr string) string {
	return "-" + dim[:1] + attr
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
