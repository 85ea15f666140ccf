package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Editor, cfg.Editor)
	assert.Equal(t, 50, cfg.History.Limit)
	assert.Equal(t, 400*time.Millisecond, cfg.Autosave.DebounceDuration())
	assert.Empty(t, cfg.Validate())
}

func TestLoadExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mlcd", "config.toml")
	cfg := Default()
	cfg.Editor.SnapGrid = 20
	cfg.Editor.GroupLabel = "Stage"
	cfg.Autosave.Debounce = "1s"
	cfg.Log.Level = "debug"
	require.NoError(t, Save(cfg, path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 20.0, got.Editor.SnapGrid)
	assert.Equal(t, "Stage", got.Editor.GroupLabel)
	assert.Equal(t, time.Second, got.Autosave.DebounceDuration())
	assert.Equal(t, "debug", got.Log.Level)
	assert.True(t, got.Editor.SnapToGrid)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[history]\nlimit = 7\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.History.Limit)
	assert.Equal(t, 10.0, cfg.Editor.SnapGrid)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("MLCD_EDITOR_SNAP_GRID", "25")
	t.Setenv("MLCD_LOG_FORMAT", "json")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 25.0, cfg.Editor.SnapGrid)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestValidateWarnings(t *testing.T) {
	cfg := Default()
	cfg.Editor.SnapGrid = 1
	cfg.History.Limit = 0
	cfg.Autosave.Debounce = "soon"
	cfg.Log.Level = "loud"

	warnings := cfg.Validate()
	assert.Len(t, warnings, 4)
	assert.Equal(t, 400*time.Millisecond, cfg.Autosave.DebounceDuration())
}

func TestEnsureExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.toml")
	created, err := EnsureExists(path)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = EnsureExists(path)
	require.NoError(t, err)
	assert.False(t, created)
}
