package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// Pair maps one input volume to the stem of its outputs: the input's
// location mirrored under the output root.
type Pair struct {
	Input  string
	Output string
}

// FileMapper finds the files under inputDir matching pattern and pairs each
// with its mirror location under outputDir, preserving subdirectories.
// Output directories are created eagerly so jobs can write without checking.
func FileMapper(inputDir, outputDir, pattern string) ([]Pair, error) {
	matches, err := doublestar.Glob(os.DirFS(inputDir), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
	}

	pairs := make([]Pair, 0, len(matches))
	for _, rel := range matches {
		output := filepath.Join(outputDir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
			return nil, err
		}
		pairs = append(pairs, Pair{
			Input:  filepath.Join(inputDir, filepath.FromSlash(rel)),
			Output: output,
		})
	}
	return pairs, nil
}

// findCandidates rescans the output tree for the interpolated volumes
// produced by the resample phase.
func findCandidates(outputDir string) ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(outputDir), "**/*.mt.*.mnc", doublestar.WithFilesOnly())
	if err != nil {
		return nil, err
	}
	candidates := make([]string, 0, len(matches))
	for _, rel := range matches {
		candidates = append(candidates, filepath.Join(outputDir, filepath.FromSlash(rel)))
	}
	return candidates, nil
}
