// Package report turns the per-candidate voxel-difference records of a run
// into its summary artifacts: an aggregated JSON report, a CSV sheet and a
// sqlite record store.
package report

import (
	"encoding/json"
	"math"
	"os"

	"gonum.org/v1/gonum/stat"

	"github.com/FNNDSC/ep-subdivide-mnc-methods/internal/models"
	"github.com/FNNDSC/ep-subdivide-mnc-methods/pkg/voldiff"
)

// MethodStats is the distribution of percent_change across the records of
// one method. Mean and Std serialize as null when they are undefined: no
// records, a single record for Std, or degenerate ratios poisoning the
// sample.
type MethodStats struct {
	Mean *float64 `json:"mean"`
	Std  *float64 `json:"std"`
}

// Summary is the top-level report of one run, keyed by interpolation method.
// Every registered method appears even when it produced no records.
type Summary struct {
	Additions     map[models.Method]int         `json:"additions"`
	Deletions     map[models.Method]int         `json:"deletions"`
	TotalChanges  map[models.Method]int         `json:"total_changes"`
	PercentChange map[models.Method]MethodStats `json:"percent_change"`
	// CountInputs is the number of input files processed, not the number
	// of records
	CountInputs int `json:"count_inputs"`
}

// Aggregate groups records by method and reduces them: additions and
// deletions sum, total_changes sums the per-record changed-voxel counts, and
// percent_change keeps the mean and sample standard deviation of the
// per-record ratios.
//
// TODO: overlaid per-method histograms of the percent_change distribution
// would say more than mean and std once batches grow past a handful of
// inputs.
func Aggregate(diffs []voldiff.Diff, countInputs int) Summary {
	s := Summary{
		Additions:     make(map[models.Method]int),
		Deletions:     make(map[models.Method]int),
		TotalChanges:  make(map[models.Method]int),
		PercentChange: make(map[models.Method]MethodStats),
		CountInputs:   countInputs,
	}

	ratios := make(map[models.Method][]float64)
	for _, m := range models.Methods() {
		s.Additions[m] = 0
		s.Deletions[m] = 0
		s.TotalChanges[m] = 0
	}
	for _, d := range diffs {
		s.Additions[d.Method] += d.Additions
		s.Deletions[d.Method] += d.Deletions
		s.TotalChanges[d.Method] += d.CountChanges()
		ratios[d.Method] = append(ratios[d.Method], d.PercentChange())
	}
	for m := range s.Additions {
		s.PercentChange[m] = methodStats(ratios[m])
	}
	return s
}

func methodStats(ratios []float64) MethodStats {
	if len(ratios) == 0 {
		return MethodStats{}
	}
	return MethodStats{
		Mean: finite(stat.Mean(ratios, nil)),
		Std:  finite(stat.StdDev(ratios, nil)),
	}
}

// finite returns a pointer to x, or nil when x is not a finite number.
func finite(x float64) *float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return nil
	}
	return &x
}

// WriteSummary serializes the summary as indented JSON to path.
func WriteSummary(s Summary, path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}
