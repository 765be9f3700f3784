// Command subdivide cuts the voxels of MINC volumes into sub-voxels using
// several interpolation methods, then measures how far each method strays
// from the exact Kronecker-product subdivision.
//
// Usage:
//
//	subdivide [flags] inputdir outputdir
//
// Every file under inputdir matching the pattern is subdivided into the
// mirrored location under outputdir, once per interpolation method plus the
// exact reference. The per-candidate records land next to the candidates;
// the aggregated summary artifacts land at the top of outputdir.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/FNNDSC/ep-subdivide-mnc-methods/pkg/config"
	"github.com/FNNDSC/ep-subdivide-mnc-methods/pkg/pipeline"
)

const version = "1.0.0"

const displayTitle = "\n" +
	"           _         _ _       _     _            ___  ________ _   _ _____ \n" +
	"          | |       | (_)     (_)   | |           |  \\/  |_   _| \\ | /  __ \\\n" +
	" ___ _   _| |__   __| |___   ___  __| | ___ ______| .  . | | | |  \\| | /  \\/\n" +
	"/ __| | | | '_ \\ / _` | \\ \\ / / |/ _` |/ _ \\______| |\\/| | | | | . ` | |    \n" +
	"\\__ \\ |_| | |_) | (_| | |\\ V /| | (_| |  __/      | |  | |_| |_| |\\  | \\__/\\\n" +
	"|___/\\__,_|_.__/ \\__,_|_| \\_/ |_|\\__,_|\\___|      \\_|  |_/\\___/\\_| \\_/\\____/\n"

func main() {
	defaults := config.DefaultConfig()

	var (
		pattern     string
		divisions   int
		workers     int
		verbose     bool
		configPath  string
		showVersion bool
	)
	flag.StringVar(&pattern, "pattern", defaults.Pattern, "glob selecting input volumes under inputdir")
	flag.StringVar(&pattern, "p", defaults.Pattern, "shorthand for -pattern")
	flag.IntVar(&divisions, "divisions", defaults.Divisions, "number of cuts along each voxel edge, must be a power of 2")
	flag.IntVar(&divisions, "d", defaults.Divisions, "shorthand for -divisions")
	flag.IntVar(&workers, "workers", defaults.Workers, "number of parallel jobs, 0 means one per CPU core")
	flag.BoolVar(&verbose, "verbose", defaults.Verbose, "enable debug logging and tool output")
	flag.BoolVar(&verbose, "v", defaults.Verbose, "shorthand for -verbose")
	flag.StringVar(&configPath, "config", "subdivide.yml", "optional YAML config file")
	flag.StringVar(&configPath, "c", "subdivide.yml", "shorthand for -config")
	flag.BoolVar(&showVersion, "version", false, "print the version and exit")
	flag.BoolVar(&showVersion, "V", false, "shorthand for -version")
	flag.Usage = usage
	flag.Parse()

	if showVersion {
		fmt.Printf("subdivide %s\n", version)
		return
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// flags override the config file only when given explicitly
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["pattern"] || set["p"] {
		cfg.Pattern = pattern
	}
	if set["divisions"] || set["d"] {
		cfg.Divisions = divisions
	}
	if set["workers"] {
		cfg.Workers = workers
	}
	if set["verbose"] || set["v"] {
		cfg.Verbose = verbose
	}

	if flag.NArg() != 2 {
		usage()
		os.Exit(1)
	}
	cfg.InputDir = flag.Arg(0)
	cfg.OutputDir = flag.Arg(1)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	setupLogging(cfg.Verbose)
	fmt.Print(displayTitle + "\n")

	startTime := time.Now()
	summary, err := pipeline.New(cfg).Run()
	if err != nil {
		log.Fatal().Err(err).Msg("pipeline failed")
	}

	log.Info().
		Int("inputs", summary.CountInputs).
		Dur("elapsed", time.Since(startTime)).
		Msg("pipeline completed")
}

func setupLogging(verbose bool) {
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "15:04:05",
	}).With().Timestamp().Logger()
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "Usage: subdivide [flags] inputdir outputdir\n\n")
	fmt.Fprintf(out, "Subdivide voxels of MINC volumes using several methods and measure\n")
	fmt.Fprintf(out, "the differences between them.\n\nFlags:\n")
	flag.PrintDefaults()
}
