package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, DefaultDataDir, cfg.DefaultDataDir)
	assert.Equal(t, "skip", cfg.RowPolicy)
	assert.Equal(t, DefaultStepThreshold, cfg.StepThreshold)
	assert.Equal(t, DefaultActiveArea, cfg.ActiveAreaCm2)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.JSONLogs)
}

func TestLoadOverridesFromFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
default_data_dir: /data/exports
row_policy: strict
step_threshold: 1.0
active_area_cm2: 50
log_level: debug
json_logs: true
`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "/data/exports", cfg.DefaultDataDir)
	assert.Equal(t, "strict", cfg.RowPolicy)
	assert.Equal(t, 1.0, cfg.StepThreshold)
	assert.Equal(t, 50.0, cfg.ActiveAreaCm2)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.JSONLogs)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "default_data_dir: elsewhere\n")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "elsewhere", cfg.DefaultDataDir)
	assert.Equal(t, DefaultRowPolicy, cfg.RowPolicy)
	assert.Equal(t, DefaultActiveArea, cfg.ActiveAreaCm2)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"bad row policy", "row_policy: keep\n"},
		{"zero threshold", "step_threshold: 0\n"},
		{"negative area", "active_area_cm2: -1\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, tc.content)

			_, err := Load(dir)
			require.Error(t, err)
		})
	}
}
