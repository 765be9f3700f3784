// Command subdivide-minc subdivides the voxels of a single MINC file through
// mincresample. It is the one-shot sibling of the subdivide batch command.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/FNNDSC/ep-subdivide-mnc-methods/pkg/minc"
)

func main() {
	var (
		divisions  float64
		verbose    bool
		options    string
		noBinarize bool
	)
	flag.Float64Var(&divisions, "divisions", 2.0, "number of cuts along each voxel edge; fractional values interpolate")
	flag.Float64Var(&divisions, "d", 2.0, "shorthand for -divisions")
	flag.BoolVar(&verbose, "verbose", false, "pass tool output through")
	flag.BoolVar(&verbose, "v", false, "shorthand for -verbose")
	flag.StringVar(&options, "options", "", "extra mincresample options as a space-separated list, e.g. -trilinear")
	flag.StringVar(&options, "o", "", "shorthand for -options")
	flag.BoolVar(&noBinarize, "no-binarize", false, "skip the minccalc threshold step, keeping floating point values")
	flag.BoolVar(&noBinarize, "n", false, "shorthand for -no-binarize")
	flag.Usage = func() {
		out := flag.CommandLine.Output()
		fmt.Fprintf(out, "Usage: subdivide-minc [flags] input output\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(1)
	}

	tools := minc.DefaultToolkit()
	err := tools.Resample(flag.Arg(0), flag.Arg(1), divisions, minc.ResampleOptions{
		Binarize: !noBinarize,
		Verbose:  verbose,
		Extra:    strings.Fields(options),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		var toolErr *minc.ToolError
		if errors.As(err, &toolErr) && toolErr.ExitCode() > 0 {
			os.Exit(toolErr.ExitCode())
		}
		os.Exit(1)
	}
}
