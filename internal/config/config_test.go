package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWhenMissing(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "tour.yaml"), cfg.Tour.Definition)
	assert.True(t, cfg.Tour.AutoStart)
	assert.Equal(t, "file", cfg.Storage.Backend)
	assert.Equal(t, filepath.Join(dir, ".tourguide"), cfg.Storage.Path)
	assert.False(t, cfg.Logging.Verbose)
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	yaml := `
tour:
  definition: /opt/tours/main.yaml
  auto_start: false
  watch: true
storage:
  backend: sqlite
  path: /tmp/tour.db
logging:
  verbose: true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tourguide.yaml"), []byte(yaml), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "/opt/tours/main.yaml", cfg.Tour.Definition)
	assert.False(t, cfg.Tour.AutoStart)
	assert.True(t, cfg.Tour.Watch)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, "/tmp/tour.db", cfg.Storage.Path)
	assert.True(t, cfg.Logging.Verbose)
}

func TestLoad_RejectsUnknownBackend(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tourguide.yaml"),
		[]byte("storage:\n  backend: redis\n"), 0644))

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TOURGUIDE_DEFINITION", "/env/tour.yaml")
	t.Setenv("TOURGUIDE_STORAGE", "sqlite")
	t.Setenv("TOURGUIDE_STATE_PATH", "/env/state.db")
	t.Setenv("TOURGUIDE_VERBOSE", "1")
	t.Setenv("TOURGUIDE_NO_AUTOSTART", "1")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "/env/tour.yaml", cfg.Tour.Definition)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, "/env/state.db", cfg.Storage.Path)
	assert.True(t, cfg.Logging.Verbose)
	assert.False(t, cfg.Tour.AutoStart)
}
