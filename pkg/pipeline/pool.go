package pipeline

import (
	"sync"

	"github.com/FNNDSC/ep-subdivide-mnc-methods/pkg/voldiff"
)

// runJobs executes jobs on a bounded pool of workers. The first failure
// stops the feed: queued jobs are skipped, in-flight jobs drain, and the
// first observed error is returned.
func runJobs(jobs []Job, workers int, exec func(Job) error) error {
	if len(jobs) == 0 {
		return nil
	}
	if workers > len(jobs) {
		workers = len(jobs)
	}
	if workers < 1 {
		workers = 1
	}

	jobChan := make(chan Job)
	results := make(chan error)
	done := make(chan struct{})

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobChan {
				results <- exec(job)
			}
		}()
	}

	go func() {
		defer close(jobChan)
		for _, job := range jobs {
			select {
			case jobChan <- job:
			case <-done:
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var firstErr error
	for err := range results {
		if err != nil && firstErr == nil {
			firstErr = err
			close(done)
		}
	}
	return firstErr
}

// collectDiffs measures every candidate on a bounded pool with the same
// fail-fast semantics as runJobs, gathering the produced records. The
// records come back in completion order.
func collectDiffs(candidates []string, workers int, measure func(string) (voldiff.Diff, error)) ([]voldiff.Diff, error) {
	if len(candidates) == 0 {
		return nil, nil
	}
	if workers > len(candidates) {
		workers = len(candidates)
	}
	if workers < 1 {
		workers = 1
	}

	type result struct {
		diff voldiff.Diff
		err  error
	}

	pathChan := make(chan string)
	results := make(chan result)
	done := make(chan struct{})

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range pathChan {
				diff, err := measure(path)
				results <- result{diff: diff, err: err}
			}
		}()
	}

	go func() {
		defer close(pathChan)
		for _, path := range candidates {
			select {
			case pathChan <- path:
			case <-done:
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var firstErr error
	diffs := make([]voldiff.Diff, 0, len(candidates))
	for res := range results {
		if res.err != nil {
			if firstErr == nil {
				firstErr = res.err
				close(done)
			}
			continue
		}
		diffs = append(diffs, res.diff)
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return diffs, nil
}
