package voldiff

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/FNNDSC/ep-subdivide-mnc-methods/internal/models"
)

// minSegments is the least number of dot-separated segments in a candidate
// file name shaped like brain.subdiv.2.mt.trilinear.mnc.
const minSegments = 6

// NamingError reports a file whose name does not follow the output naming
// convention.
type NamingError struct {
	Path   string
	Reason string
}

func (e *NamingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

// MissingSiblingError reports a candidate whose Kronecker reference does not
// exist next to it.
type MissingSiblingError struct {
	Candidate string
	Reference string
}

func (e *MissingSiblingError) Error() string {
	return fmt.Sprintf("expected %s to exist as the reference for %s", e.Reference, e.Candidate)
}

// MethodOf recovers the interpolation method that produced a candidate file
// from its name. The method is the second-to-last dot-separated segment.
func MethodOf(path string) (models.Method, error) {
	parts := strings.Split(filepath.Base(path), ".")
	if len(parts) < minSegments {
		return "", &NamingError{
			Path:   path,
			Reason: "expected a name shaped like brain.subdiv.2.mt.trilinear.mnc",
		}
	}
	method, err := models.ParseMethod(parts[len(parts)-2])
	if err != nil {
		return "", &NamingError{Path: path, Reason: err.Error()}
	}
	return method, nil
}

// ReferencePath derives the Kronecker reference for a candidate file by
// replacing everything after the final ".mt." marker with "np.mnc", and
// verifies that the reference exists.
func ReferencePath(candidate string) (string, error) {
	name := filepath.Base(candidate)
	i := strings.LastIndex(name, ".mt.")
	if i < 0 {
		return "", &NamingError{Path: candidate, Reason: `no ".mt." marker in file name`}
	}
	reference := filepath.Join(filepath.Dir(candidate), name[:i]+".np.mnc")
	if _, err := os.Stat(reference); err != nil {
		if os.IsNotExist(err) {
			return "", &MissingSiblingError{Candidate: candidate, Reference: reference}
		}
		return "", err
	}
	return reference, nil
}
