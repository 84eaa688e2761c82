package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_EmptyPathYieldsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 200, cfg.Solver.MaxIterations)
	assert.Equal(t, 50, cfg.Solver.MaxAttempts)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.MQTT.Enabled)
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
solver:
  max_iterations: 10
  seed: 7
logging:
  level: debug
metrics:
  prom_addr: ":9090"
  sinks:
    - type: nop
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Solver.MaxIterations)
	// Unset fields fall back to defaults.
	assert.Equal(t, 50, cfg.Solver.MaxAttempts)
	assert.Equal(t, int64(7), cfg.Solver.Seed)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, ":9090", cfg.Metrics.PromAddr)
	require.Len(t, cfg.Metrics.Sinks, 1)
	assert.Equal(t, "nop", cfg.Metrics.Sinks[0].Type)
}

func TestLoad_JSON(t *testing.T) {
	path := writeConfig(t, "config.json", `{"solver": {"max_attempts": 5}}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Solver.MaxAttempts)
	assert.Equal(t, 200, cfg.Solver.MaxIterations)
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfig(t, "config.yaml", "logging:\n  level: debug\n")
	t.Setenv("VRPTW_LOGGING__LEVEL", "warn")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("unsupported extension", func(t *testing.T) {
		path := writeConfig(t, "config.toml", "")
		_, err := Load(path)
		assert.Error(t, err)
	})
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
	t.Run("bad log level", func(t *testing.T) {
		path := writeConfig(t, "config.yaml", "logging:\n  level: loud\n")
		_, err := Load(path)
		assert.Error(t, err)
	})
	t.Run("negative iterations", func(t *testing.T) {
		path := writeConfig(t, "config.yaml", "solver:\n  max_iterations: -1\n")
		_, err := Load(path)
		assert.Error(t, err)
	})
	t.Run("mqtt enabled without broker", func(t *testing.T) {
		path := writeConfig(t, "config.yaml", "mqtt:\n  enabled: true\n  topic: fleet/results\n")
		_, err := Load(path)
		assert.Error(t, err)
	})
}
