// Command subdivide-kron subdivides the voxels of a single MINC file exactly,
// as the Kronecker product with a cube of ones. No interpolation is done, so
// the result is the ground truth the interpolation methods are measured
// against.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/FNNDSC/ep-subdivide-mnc-methods/pkg/minc"
	"github.com/FNNDSC/ep-subdivide-mnc-methods/pkg/resample"
)

func main() {
	var divisions int
	flag.IntVar(&divisions, "divisions", 2, "number of cuts along each voxel edge")
	flag.IntVar(&divisions, "d", 2, "shorthand for -divisions")
	flag.Usage = func() {
		out := flag.CommandLine.Output()
		fmt.Fprintf(out, "Usage: subdivide-kron [flags] input output\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(1)
	}
	if divisions < 1 {
		fmt.Fprintf(os.Stderr, "error: divisions=%d must be at least 1\n", divisions)
		os.Exit(1)
	}

	r := resample.Resampler{Tools: minc.DefaultToolkit(), Divisions: divisions}
	if err := r.Kronecker(flag.Arg(0), flag.Arg(1)); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
