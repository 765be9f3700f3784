package report

import (
	"encoding/csv"
	"math"
	"os"
	"strconv"

	"github.com/FNNDSC/ep-subdivide-mnc-methods/pkg/voldiff"
)

// WriteCounts writes the records as a CSV sheet at path, one row per
// candidate volume. An undefined percent_change becomes an empty field.
func WriteCounts(diffs []voldiff.Diff, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		"additions", "deletions", "total",
		"change", "count_changes", "percent_change",
		"method", "path",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, d := range diffs {
		percent := ""
		if pc := d.PercentChange(); !math.IsNaN(pc) {
			percent = strconv.FormatFloat(pc, 'g', -1, 64)
		}
		row := []string{
			strconv.Itoa(d.Additions),
			strconv.Itoa(d.Deletions),
			strconv.Itoa(d.Total),
			strconv.Itoa(d.Change()),
			strconv.Itoa(d.CountChanges()),
			percent,
			string(d.Method),
			d.Path,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
