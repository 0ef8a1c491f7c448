package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kersk/ballista/internal/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ballista.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, 50*time.Millisecond, cfg.Sim.TickRate)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, "data/yaml/projectile_list.yaml", cfg.Paths.Templates)
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, `
[sim]
tick_rate = "200ms"
duration = "30s"
seed = 42

[logging]
level = "debug"
format = "json"

[metrics]
enabled = true
listen = "0.0.0.0:9999"

[profile]
mode = "cpu"
`))
	require.NoError(t, err)

	assert.Equal(t, 200*time.Millisecond, cfg.Sim.TickRate)
	assert.Equal(t, 30*time.Second, cfg.Sim.Duration)
	assert.Equal(t, int64(42), cfg.Sim.Seed)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "0.0.0.0:9999", cfg.Metrics.Listen)
	assert.Equal(t, "cpu", cfg.Profile.Mode)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}

func TestLoadBadToml(t *testing.T) {
	_, err := config.Load(writeConfig(t, "[sim\ntick_rate ="))
	require.Error(t, err)
}

func TestLoadRejectsNonPositiveTickRate(t *testing.T) {
	// The tick loop ticker requires a positive interval.
	for _, rate := range []string{`"0s"`, `"-50ms"`} {
		_, err := config.Load(writeConfig(t, "[sim]\ntick_rate = "+rate+"\n"))
		assert.ErrorContains(t, err, "tick_rate")
	}
}
