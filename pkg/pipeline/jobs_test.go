package pipeline

import (
	"path/filepath"
	"testing"

	"github.com/FNNDSC/ep-subdivide-mnc-methods/internal/models"
)

func TestBuildJobs(t *testing.T) {
	pairs := []Pair{{
		Input:  filepath.Join("in", "brain.mnc"),
		Output: filepath.Join("out", "brain.mnc"),
	}}

	jobs := buildJobs(pairs, 2)

	if len(jobs) != 4 {
		t.Fatalf("Expected 4 jobs per input, got %d", len(jobs))
	}

	byOutput := make(map[string]Job)
	for _, job := range jobs {
		if job.Input != pairs[0].Input {
			t.Errorf("Expected every job to read %s, got %s", pairs[0].Input, job.Input)
		}
		byOutput[filepath.Base(job.Output)] = job
	}

	for _, method := range models.Methods() {
		name := "brain.subdiv.2.mt." + string(method) + ".mnc"
		job, ok := byOutput[name]
		if !ok {
			t.Errorf("Expected a candidate job producing %s", name)
			continue
		}
		if job.Kind != JobCandidate {
			t.Errorf("Expected %s to be a candidate job, got %s", name, job.Kind)
		}
		if job.Method != method {
			t.Errorf("Expected %s to use %s, got %s", name, method, job.Method)
		}
	}

	reference, ok := byOutput["brain.subdiv.2.np.mnc"]
	if !ok {
		t.Fatal("Expected a reference job producing brain.subdiv.2.np.mnc")
	}
	if reference.Kind != JobReference {
		t.Errorf("Expected a reference job, got %s", reference.Kind)
	}
	if reference.Method != "" {
		t.Errorf("Expected no method on the reference job, got %s", reference.Method)
	}
}

func TestBuildJobsManyInputs(t *testing.T) {
	pairs := []Pair{
		{Input: "in/a.mnc", Output: "out/a.mnc"},
		{Input: "in/b.mnc", Output: "out/b.mnc"},
		{Input: "in/sub/c.mnc", Output: "out/sub/c.mnc"},
	}

	jobs := buildJobs(pairs, 8)

	if want := len(pairs) * 4; len(jobs) != want {
		t.Fatalf("Expected %d jobs, got %d", want, len(jobs))
	}

	outputs := make(map[string]bool)
	for _, job := range jobs {
		if outputs[job.Output] {
			t.Errorf("Output %s produced by more than one job", job.Output)
		}
		outputs[job.Output] = true
	}
}

func TestOutputStem(t *testing.T) {
	tests := []struct {
		output    string
		divisions int
		want      string
	}{
		{filepath.Join("out", "brain.mnc"), 2, filepath.Join("out", "brain.subdiv.2")},
		{filepath.Join("out", "brain.mnc"), 16, filepath.Join("out", "brain.subdiv.16")},
		{filepath.Join("out", "sub-01.ses-1.mnc"), 4, filepath.Join("out", "sub-01.ses-1.subdiv.4")},
		{"brain.mnc", 2, "brain.subdiv.2"},
	}
	for _, tt := range tests {
		if got := outputStem(tt.output, tt.divisions); got != tt.want {
			t.Errorf("outputStem(%q, %d): expected %q, got %q", tt.output, tt.divisions, tt.want, got)
		}
	}
}
