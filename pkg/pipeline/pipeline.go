// Package pipeline runs the whole batch: input discovery, parallel
// resampling by every registered method, the voxel-diff phase, and the
// summary artifacts.
package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/FNNDSC/ep-subdivide-mnc-methods/pkg/config"
	"github.com/FNNDSC/ep-subdivide-mnc-methods/pkg/minc"
	"github.com/FNNDSC/ep-subdivide-mnc-methods/pkg/report"
	"github.com/FNNDSC/ep-subdivide-mnc-methods/pkg/resample"
	"github.com/FNNDSC/ep-subdivide-mnc-methods/pkg/voldiff"
)

// Pipeline executes one batch for a fixed configuration.
type Pipeline struct {
	cfg       *config.Config
	tools     minc.Toolkit
	resampler resample.Resampler
}

// New creates a pipeline from the given configuration.
func New(cfg *config.Config) *Pipeline {
	return &Pipeline{
		cfg:   cfg,
		tools: cfg.Tools,
		resampler: resample.Resampler{
			Tools:     cfg.Tools,
			Divisions: cfg.Divisions,
			Verbose:   cfg.Verbose,
		},
	}
}

// Run executes the two phases and writes the summary artifacts into the
// output directory. The resample phase subdivides every input by every
// method; the diff phase measures each interpolated result against its
// Kronecker reference. Either phase aborts the run on its first error.
func (p *Pipeline) Run() (report.Summary, error) {
	if err := p.cfg.Validate(); err != nil {
		return report.Summary{}, err
	}
	workers := p.cfg.WorkerCount()
	log.Info().Int("workers", workers).Msg("using worker pool")

	if err := os.MkdirAll(p.cfg.OutputDir, 0755); err != nil {
		return report.Summary{}, err
	}
	pairs, err := FileMapper(p.cfg.InputDir, p.cfg.OutputDir, p.cfg.Pattern)
	if err != nil {
		return report.Summary{}, err
	}
	if len(pairs) == 0 {
		log.Warn().
			Str("pattern", p.cfg.Pattern).
			Str("inputdir", p.cfg.InputDir).
			Msg("no input files matched")
	}

	jobs := buildJobs(pairs, p.cfg.Divisions)
	if err := runJobs(jobs, workers, p.runJob); err != nil {
		return report.Summary{}, err
	}

	log.Info().Msg("done resampling, counting voxel differences")
	candidates, err := findCandidates(p.cfg.OutputDir)
	if err != nil {
		return report.Summary{}, err
	}
	diffs, err := collectDiffs(candidates, workers, p.measure)
	if err != nil {
		return report.Summary{}, err
	}
	sort.Slice(diffs, func(i, j int) bool { return diffs[i].Path < diffs[j].Path })

	log.Info().Msg("aggregating sums")
	summary := report.Aggregate(diffs, len(pairs))
	if err := p.writeArtifacts(summary, diffs); err != nil {
		return report.Summary{}, err
	}
	return summary, nil
}

// runJob dispatches one resample job.
func (p *Pipeline) runJob(job Job) error {
	start := time.Now()
	var err error
	switch job.Kind {
	case JobReference:
		err = p.resampler.Kronecker(job.Input, job.Output)
	case JobCandidate:
		err = p.resampler.Interpolated(job.Input, job.Output, job.Method)
	default:
		return fmt.Errorf("unknown job kind %d", job.Kind)
	}
	if err != nil {
		return fmt.Errorf("%s job for %s: %w", job.Kind, job.Input, err)
	}
	log.Info().
		Stringer("kind", job.Kind).
		Str("output", job.Output).
		Dur("elapsed", time.Since(start)).
		Msg("subdivided")
	return nil
}

// measure loads one candidate and its reference, counts the voxel
// difference, and writes the record next to the candidate.
func (p *Pipeline) measure(candidate string) (voldiff.Diff, error) {
	start := time.Now()
	reference, err := voldiff.ReferencePath(candidate)
	if err != nil {
		return voldiff.Diff{}, err
	}
	refVol, err := p.tools.ReadVolume(reference)
	if err != nil {
		return voldiff.Diff{}, err
	}
	candVol, err := p.tools.ReadVolume(candidate)
	if err != nil {
		return voldiff.Diff{}, err
	}
	diff, err := voldiff.FromVolumes(refVol, candVol, candidate)
	if err != nil {
		return voldiff.Diff{}, err
	}
	record, err := diff.WriteRecord()
	if err != nil {
		return voldiff.Diff{}, err
	}
	log.Info().
		Str("record", record).
		Dur("elapsed", time.Since(start)).
		Msg("counted voxel difference")
	return diff, nil
}

// writeArtifacts serializes the aggregated summary, the per-record CSV sheet
// and the sqlite record store into the output directory.
func (p *Pipeline) writeArtifacts(summary report.Summary, diffs []voldiff.Diff) error {
	summaryPath := filepath.Join(p.cfg.OutputDir, "summary.json")
	if err := report.WriteSummary(summary, summaryPath); err != nil {
		return err
	}
	log.Info().Str("path", summaryPath).Msg("wrote summary")

	countsPath := filepath.Join(p.cfg.OutputDir, "voxel_counts.csv")
	if err := report.WriteCounts(diffs, countsPath); err != nil {
		return err
	}
	log.Info().Str("path", countsPath).Msg("wrote voxel counts sheet")

	store, err := report.OpenStore(filepath.Join(p.cfg.OutputDir, "voxel_counts.db"))
	if err != nil {
		return err
	}
	defer store.Close()
	for _, d := range diffs {
		if err := store.Insert(d); err != nil {
			return err
		}
	}
	if counts, err := store.CountByMethod(); err == nil {
		log.Debug().Interface("records", counts).Msg("record store updated")
	}
	return nil
}
