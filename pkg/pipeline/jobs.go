package pipeline

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/FNNDSC/ep-subdivide-mnc-methods/internal/models"
)

// JobKind tags what a resample job produces.
type JobKind int

const (
	// JobReference produces the exact Kronecker-product subdivision
	JobReference JobKind = iota
	// JobCandidate produces an interpolated subdivision via mincresample
	JobCandidate
)

func (k JobKind) String() string {
	switch k {
	case JobReference:
		return "reference"
	case JobCandidate:
		return "candidate"
	default:
		return "unknown"
	}
}

// Job is one resample invocation, fully bound at build time and executed
// exactly once by the worker pool. Method is set on candidate jobs only.
type Job struct {
	Kind   JobKind
	Input  string
	Output string
	Method models.Method
}

// buildJobs prepares the whole batch up front: per input file, one candidate
// job per registered method plus the reference job. Every job writes a
// distinct output file, so jobs are independent of each other.
func buildJobs(pairs []Pair, divisions int) []Job {
	jobs := make([]Job, 0, len(pairs)*(len(models.Methods())+1))
	for _, pair := range pairs {
		log.Info().Str("input", pair.Input).Msg("enqueueing tasks")
		stem := outputStem(pair.Output, divisions)
		for _, method := range models.Methods() {
			jobs = append(jobs, Job{
				Kind:   JobCandidate,
				Input:  pair.Input,
				Output: stem + ".mt." + string(method) + ".mnc",
				Method: method,
			})
		}
		jobs = append(jobs, Job{
			Kind:   JobReference,
			Input:  pair.Input,
			Output: stem + ".np.mnc",
		})
	}
	return jobs
}

// outputStem rewrites a mapped output path to carry the subdivision marker:
// dir/brain.mnc becomes dir/brain.subdiv.2 for two divisions.
func outputStem(output string, divisions int) string {
	ext := filepath.Ext(output)
	return strings.TrimSuffix(output, ext) + ".subdiv." + strconv.Itoa(divisions)
}
