package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"EXPERIMENT_NAME": "cross-release",
		"DATA_PATH": "/data/in",
		"RESULTS_PATH": "/data/out",
		"SAVE_CLASSIFIER": true,
		"TRAINERS": ["bias", "logistic"],
		"STORAGE": {"ENABLED": true, "DRIVER": "sqlite3", "NAME": "/tmp/results.db"}
	}`), 0o644))

	cfg := Load(path)

	assert.Equal(t, "cross-release", cfg.ExperimentName)
	assert.Equal(t, "/data/in", cfg.DataPath)
	assert.True(t, cfg.SaveClassifier)
	assert.Equal(t, []string{"bias", "logistic"}, cfg.Trainers)
	assert.True(t, cfg.Storage.Enabled)
	assert.Equal(t, "sqlite3", cfg.Storage.Driver)
}

func TestLoadFromYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"EXPERIMENT_NAME: yaml-exp\n"+
			"DATA_PATH: /in\n"+
			"RESULTS_PATH: /out\n"), 0o644))

	cfg := Load(path)
	assert.Equal(t, "yaml-exp", cfg.ExperimentName)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("EXPERIMENT_NAME", "env-exp")
	t.Setenv("DATA_PATH", "/in")
	t.Setenv("RESULTS_PATH", "/out")

	cfg := Load("")

	assert.Equal(t, "env-exp", cfg.ExperimentName)
	assert.Equal(t, []string{"csv"}, cfg.Loaders)
	assert.Equal(t, []string{"logistic"}, cfg.Trainers)
	assert.Equal(t, []string{"csv"}, cfg.Evaluators)
	assert.Equal(t, "mysql", cfg.Storage.Driver)
	assert.Equal(t, "localhost", cfg.Storage.Host)
	assert.Equal(t, "3306", cfg.Storage.Port)
	assert.Equal(t, "results", cfg.Storage.TableName)
	assert.False(t, cfg.Storage.Enabled)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"EXPERIMENT_NAME": "from-file",
		"DATA_PATH": "/in",
		"RESULTS_PATH": "/out"
	}`), 0o644))

	t.Setenv("EXPERIMENT_NAME", "from-env")

	cfg := Load(path)
	assert.Equal(t, "from-env", cfg.ExperimentName)
	assert.Equal(t, "/in", cfg.DataPath)
}

func TestSearchUpwardsForFile(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "marker.json"), []byte("{}"), 0o644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { os.Chdir(wd) })
	require.NoError(t, os.Chdir(sub))

	found, err := SearchUpwardsForFile("marker.json")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "marker.json"), found)

	_, err = SearchUpwardsForFile("definitely-not-here.json")
	assert.ErrorIs(t, err, ErrFileNotFound)
}
