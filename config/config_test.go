package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	config, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 9095, config.Port)
	assert.Zero(t, config.Quantum)
	assert.Equal(t, "table", config.Format)
	assert.Equal(t, "info", config.LogLevel)
	assert.False(t, config.Tracing.Enabled)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "escalonador.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: 8080
quantum: 3
format: json
log_level: debug
tracing:
  enabled: true
  output: spans.txt
`), 0o600))

	config, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, &SchedulerConfig{
		Port:     8080,
		Quantum:  3,
		Format:   "json",
		LogLevel: "debug",
		Tracing:  TracingConfig{Enabled: true, Output: "spans.txt"},
	}, config)
}

func TestLoadEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("ESCALONADOR_QUANTUM", "4")
	t.Setenv("ESCALONADOR_TRACING_ENABLED", "true")

	config, err := Load("")
	require.NoError(t, err)
	assert.EqualValues(t, 4, config.Quantum)
	assert.True(t, config.Tracing.Enabled)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("quantum: -2\n"), 0o600))
	_, err = Load(path)
	assert.Error(t, err)
}
