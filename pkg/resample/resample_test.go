package resample

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/FNNDSC/ep-subdivide-mnc-methods/internal/models"
	"github.com/FNNDSC/ep-subdivide-mnc-methods/pkg/minc"
)

func TestKronReplicatesBlocks(t *testing.T) {
	vol := &models.Volume{
		Data:     []float64{1, 2, 3, 4, 5, 6, 7, 8},
		Dims:     [3]int{2, 2, 2},
		DimNames: [3]string{"zspace", "yspace", "xspace"},
		Steps:    [3]float64{1, 2, 4},
		Starts:   [3]float64{0, -1, 1},
	}

	out := Kron(vol, 2)

	if out.Dims != [3]int{4, 4, 4} {
		t.Fatalf("Expected dims [4 4 4], got %v", out.Dims)
	}
	if out.DimNames != vol.DimNames {
		t.Errorf("Expected dimension names to carry over, got %v", out.DimNames)
	}
	if out.Steps != [3]float64{0.5, 1, 2} {
		t.Errorf("Expected steps halved to [0.5 1 2], got %v", out.Steps)
	}
	if out.Starts != vol.Starts {
		t.Errorf("Expected starts to carry over, got %v", out.Starts)
	}

	for i := 0; i < out.Dims[0]; i++ {
		for j := 0; j < out.Dims[1]; j++ {
			for k := 0; k < out.Dims[2]; k++ {
				want := vol.At(i/2, j/2, k/2)
				if got := out.At(i, j, k); got != want {
					t.Fatalf("Sample (%d,%d,%d): expected %v, got %v", i, j, k, want, got)
				}
			}
		}
	}
}

func TestKronPreservesMass(t *testing.T) {
	vol := &models.Volume{
		Data: []float64{0, 1, 1, 0, 1, 0, 0, 1},
		Dims: [3]int{2, 2, 2},
	}

	for _, d := range []int{1, 2, 4} {
		out := Kron(vol, d)
		scale := float64(d * d * d)
		if got, want := out.Sum(), vol.Sum()*scale; got != want {
			t.Errorf("divisions=%d: expected sum %v, got %v", d, want, got)
		}
	}
}

func TestKronIdentity(t *testing.T) {
	vol := &models.Volume{
		Data:  []float64{1, 0, 0, 1},
		Dims:  [3]int{1, 2, 2},
		Steps: [3]float64{1, 1, 1},
	}

	out := Kron(vol, 1)

	if out.Dims != vol.Dims {
		t.Fatalf("Expected dims unchanged, got %v", out.Dims)
	}
	for i, want := range vol.Data {
		if out.Data[i] != want {
			t.Errorf("Sample %d: expected %v, got %v", i, want, out.Data[i])
		}
	}
}

// TestKroneckerWriteThrough drives the file-to-file path against a stub
// toolkit: reading goes through mincextract, writing through rawtominc.
func TestKroneckerWriteThrough(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Toolkit stubs require a POSIX shell")
	}
	dir := t.TempDir()

	writeStub := func(name, script string) string {
		t.Helper()
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0755); err != nil {
			t.Fatalf("Failed to write stub %s: %v", name, err)
		}
		return path
	}

	tk := minc.Toolkit{
		// a 2x2x2 volume with unit steps
		Mincinfo: writeStub("mincinfo", `case "$1" in
-dimnames) echo "zspace yspace xspace" ;;
-dimlength) echo 2 ;;
-attvalue) echo 1 ;;
-error_string) echo 0 ;;
esac`),
		Mincextract: writeStub("mincextract", `for a in "$@"; do f="$a"; done
cat "$f"`),
		Rawtominc: writeStub("rawtominc", `raw=$4
n=$#
i=0
for a in "$@"; do
	i=$((i+1))
	if [ $i -eq $((n-3)) ]; then out=$a; fi
done
cp "$raw" "$out"`),
	}

	samples := []float64{1, 0, 0, 0, 0, 0, 0, 1}
	buf := make([]byte, len(samples)*8)
	for i, s := range samples {
		binary.NativeEndian.PutUint64(buf[i*8:], math.Float64bits(s))
	}
	in := filepath.Join(dir, "in.mnc")
	if err := os.WriteFile(in, buf, 0644); err != nil {
		t.Fatalf("Failed to write volume fixture: %v", err)
	}

	out := filepath.Join(dir, "out.mnc")
	r := Resampler{Tools: tk, Divisions: 2}
	if err := r.Kronecker(in, out); err != nil {
		t.Fatalf("Kronecker failed: %v", err)
	}

	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("Failed to read subdivided volume: %v", err)
	}
	if len(got) != 64*8 {
		t.Fatalf("Expected 64 samples, got %d bytes", len(got))
	}
	var sum float64
	for i := 0; i < len(got); i += 8 {
		sum += math.Float64frombits(binary.NativeEndian.Uint64(got[i:]))
	}
	// two on-voxels blown up to 2x2x2 blocks each
	if sum != 16 {
		t.Errorf("Expected 16 on-voxels after subdivision, got %v", sum)
	}
}
