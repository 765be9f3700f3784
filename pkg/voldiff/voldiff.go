// Package voldiff measures how far an interpolated subdivision strays from
// the exact Kronecker-product subdivision, as voxel counts over binary
// masks.
package voldiff

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/FNNDSC/ep-subdivide-mnc-methods/internal/models"
)

// ErrShapeMismatch reports volumes whose voxel counts differ, which makes an
// element-for-element comparison impossible.
var ErrShapeMismatch = errors.New("volumes have different voxel counts")

// Diff is the voxel-count difference between the Kronecker reference and one
// candidate volume. Counts are over binary masks: a voxel is "on" when its
// sample exceeds 0.5.
type Diff struct {
	// Additions is the number of voxels on in the candidate but off in
	// the reference
	Additions int
	// Deletions is the number of voxels off in the candidate but on in
	// the reference
	Deletions int
	// Total is the number of on voxels of the candidate
	Total int
	// Method is the interpolation method that produced the candidate
	Method models.Method
	// Path is the location of the candidate file
	Path string
}

// Change returns the net gain of on voxels, additions minus deletions.
func (d Diff) Change() int {
	return d.Additions - d.Deletions
}

// CountChanges returns the number of voxels that differ at all.
func (d Diff) CountChanges() int {
	return d.Additions + d.Deletions
}

// PercentChange returns the net change relative to the candidate's on-voxel
// count. For a candidate with no on voxels the ratio is undefined and NaN is
// returned.
func (d Diff) PercentChange() float64 {
	if d.Total == 0 {
		return math.NaN()
	}
	return float64(d.Change()) / float64(d.Total)
}

// Between counts the voxels added and deleted in candidate relative to
// reference. Both volumes must be binary masks; under that precondition a
// single subtract-and-threshold pass distinguishes additions from deletions.
// Volumes are compared element-for-element in storage order, so candidates
// whose dimensions were reported differently still compare as long as the
// voxel counts agree.
func Between(reference, candidate *models.Volume) (additions, deletions int, err error) {
	if len(reference.Data) != len(candidate.Data) {
		return 0, 0, fmt.Errorf("%w: reference %v has %d, candidate %v has %d",
			ErrShapeMismatch, reference.Dims, len(reference.Data), candidate.Dims, len(candidate.Data))
	}
	for i, r := range reference.Data {
		delta := r - candidate.Data[i]
		switch {
		case delta < -0.5:
			additions++
		case delta > 0.5:
			deletions++
		}
	}
	return additions, deletions, nil
}

// FromVolumes builds the Diff record for a candidate volume loaded from
// candidatePath, compared against its Kronecker reference. The method is
// recovered from the candidate's file name.
func FromVolumes(reference, candidate *models.Volume, candidatePath string) (Diff, error) {
	method, err := MethodOf(candidatePath)
	if err != nil {
		return Diff{}, err
	}
	additions, deletions, err := Between(reference, candidate)
	if err != nil {
		return Diff{}, fmt.Errorf("%s: %w", candidatePath, err)
	}
	return Diff{
		Additions: additions,
		Deletions: deletions,
		Total:     int(candidate.Sum()),
		Method:    method,
		Path:      candidatePath,
	}, nil
}

// MarshalJSON emits the counts together with the derived quantities, so a
// record on disk is self-describing. An undefined percent_change serializes
// as null; encoding/json cannot represent NaN.
func (d Diff) MarshalJSON() ([]byte, error) {
	record := struct {
		Additions     int           `json:"additions"`
		Deletions     int           `json:"deletions"`
		Total         int           `json:"total"`
		Change        int           `json:"change"`
		CountChanges  int           `json:"count_changes"`
		PercentChange *float64      `json:"percent_change"`
		Method        models.Method `json:"method"`
		Path          string        `json:"path"`
	}{
		Additions:    d.Additions,
		Deletions:    d.Deletions,
		Total:        d.Total,
		Change:       d.Change(),
		CountChanges: d.CountChanges(),
		Method:       d.Method,
		Path:         d.Path,
	}
	if pc := d.PercentChange(); !math.IsNaN(pc) {
		record.PercentChange = &pc
	}
	return json.Marshal(record)
}

// WriteRecord serializes the record as indented JSON next to the candidate,
// at <candidate>.diff.json, and returns the record's path.
func (d Diff) WriteRecord() (string, error) {
	path := d.Path + ".diff.json"
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return "", err
	}
	return path, nil
}
