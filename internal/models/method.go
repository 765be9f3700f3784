package models

import "fmt"

// Method identifies one of the interpolation methods under comparison.
// The set is fixed: these are exactly the interpolation flags that
// mincresample accepts.
type Method string

const (
	Trilinear        Method = "trilinear"
	Tricubic         Method = "tricubic"
	NearestNeighbour Method = "nearest_neighbour"
)

// Methods returns the registered interpolation methods in a stable order.
func Methods() []Method {
	return []Method{Trilinear, Tricubic, NearestNeighbour}
}

// ParseMethod validates a method identifier, typically one recovered from an
// output file name.
func ParseMethod(s string) (Method, error) {
	for _, m := range Methods() {
		if s == string(m) {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown interpolation method %q, expected one of %v", s, Methods())
}

// Flag returns the mincresample command-line flag selecting the method.
func (m Method) Flag() string {
	return "-" + string(m)
}
