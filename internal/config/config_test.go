package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "preflight.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 65.0, cfg.Scoring.HighBoundary)
	assert.Equal(t, 35.0, cfg.Scoring.MediumBoundary)
	assert.Equal(t, 0.6, cfg.Scoring.RuleWeight)
	assert.Equal(t, 30, cfg.Scoring.FatigueWindowDays)
	assert.False(t, cfg.Model.Enabled)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
[server]
port = 9090

[logging]
level = "debug"
format = "json"

[scoring]
high_boundary = 60.0
medium_boundary = 30.0
rule_weight = 0.5
fatigue_window_days = 7

[model]
enabled = true
artifact_path = "artifacts/lr.json"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 60.0, cfg.Scoring.HighBoundary)
	assert.Equal(t, 30.0, cfg.Scoring.MediumBoundary)
	assert.Equal(t, 0.5, cfg.Scoring.RuleWeight)
	assert.Equal(t, 7, cfg.Scoring.FatigueWindowDays)
	assert.True(t, cfg.Model.Enabled)
	assert.Equal(t, "artifacts/lr.json", cfg.Model.ArtifactPath)

	// Unset sections keep defaults.
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, int64(10<<20), cfg.Server.MaxUploadBytes)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
		assert.Error(t, err)
	})

	t.Run("malformed TOML", func(t *testing.T) {
		path := writeConfig(t, "[server\nport=")
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("rule weight out of range", func(t *testing.T) {
		path := writeConfig(t, "[scoring]\nrule_weight = 1.2\n")
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rule_weight")
	})

	t.Run("inverted boundaries", func(t *testing.T) {
		path := writeConfig(t, "[scoring]\nhigh_boundary = 30.0\nmedium_boundary = 60.0\n")
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("model enabled without path", func(t *testing.T) {
		path := writeConfig(t, "[model]\nenabled = true\nartifact_path = \"\"\n")
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("invalid port", func(t *testing.T) {
		path := writeConfig(t, "[server]\nport = -1\n")
		_, err := Load(path)
		assert.Error(t, err)
	})
}
