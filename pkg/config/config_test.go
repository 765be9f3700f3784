package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "**/*.mnc", cfg.Pattern)
	assert.Equal(t, 2, cfg.Divisions)
	assert.Equal(t, 0, cfg.Workers)
	assert.False(t, cfg.Verbose)
	assert.Equal(t, "mincresample", cfg.Tools.Mincresample)
	assert.Equal(t, "mincinfo", cfg.Tools.Mincinfo)
}

func TestValidate(t *testing.T) {
	valid := []int{1, 2, 4, 8, 16, 1024}
	for _, d := range valid {
		cfg := DefaultConfig()
		cfg.Divisions = d
		assert.NoError(t, cfg.Validate(), "divisions=%d", d)
	}

	invalid := []int{0, -1, -2, 3, 5, 6, 7, 12, 100}
	for _, d := range invalid {
		cfg := DefaultConfig()
		cfg.Divisions = d
		assert.Error(t, cfg.Validate(), "divisions=%d", d)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml"))

	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subdivide.yml")
	doc := `divisions: 4
workers: 3
verbose: true
tools:
  mincresample: /opt/minc/bin/mincresample
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Divisions)
	assert.Equal(t, 3, cfg.Workers)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, "/opt/minc/bin/mincresample", cfg.Tools.Mincresample)
	// untouched settings keep their defaults
	assert.Equal(t, "**/*.mnc", cfg.Pattern)
	assert.Equal(t, "mincinfo", cfg.Tools.Mincinfo)
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subdivide.yml")
	require.NoError(t, os.WriteFile(path, []byte("divisions: [not a number"), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "subdivide.yml")

	cfg := DefaultConfig()
	cfg.Divisions = 8
	cfg.Pattern = "**/*.subdiv.mnc"
	cfg.Tools.Mincinfo = "/usr/local/bin/mincinfo"
	require.NoError(t, SaveConfig(cfg, path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Divisions, loaded.Divisions)
	assert.Equal(t, cfg.Pattern, loaded.Pattern)
	assert.Equal(t, cfg.Tools.Mincinfo, loaded.Tools.Mincinfo)
}

func TestSavedConfigOmitsRunPaths(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subdivide.yml")

	cfg := DefaultConfig()
	cfg.InputDir = "/incoming"
	cfg.OutputDir = "/outgoing"
	require.NoError(t, SaveConfig(cfg, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "/incoming")
	assert.NotContains(t, string(data), "/outgoing")
}

func TestWorkerCount(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, runtime.NumCPU(), cfg.WorkerCount())

	cfg.Workers = 3
	assert.Equal(t, 3, cfg.WorkerCount())
}
