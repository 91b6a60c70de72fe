package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"codeberg.org/mutker/gaugectl/internal/config"
	"codeberg.org/mutker/gaugectl/internal/errors"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gaugectl.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
log_level = "debug"
dashboard = "/srv/board.yaml"
theme = "hmi-future"
refresh_ms = 250

[journal]
enabled = true
db_path = "/tmp/journal.db"
batch_size = 10
batch_timeout = 2

[alarm]
enabled = true
frequency = 440.0
duration_ms = 150
`)
	t.Setenv("GAUGECTL_CONFIG", path)

	cfg, err := config.Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/srv/board.yaml", cfg.Dashboard)
	assert.Equal(t, "hmi-future", cfg.Theme)
	assert.Equal(t, 250*time.Millisecond, cfg.Refresh())
	assert.True(t, cfg.Journal.Enabled)
	assert.Equal(t, "/tmp/journal.db", cfg.Journal.DBPath)
	assert.Equal(t, 10, cfg.Journal.BatchSize)
	assert.Equal(t, 2*time.Second, cfg.Journal.Timeout())
	assert.True(t, cfg.Alarm.Enabled)
	assert.InDelta(t, 440.0, cfg.Alarm.Frequency, 1e-9)
	assert.Equal(t, 150*time.Millisecond, cfg.Alarm.Duration())
	assert.Equal(t, time.Duration(config.DefaultCooldownMs)*time.Millisecond, cfg.Alarm.Cooldown())
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GAUGECTL_CONFIG", "")
	t.Chdir(t.TempDir())

	cfg, err := config.Load(nil)
	require.NoError(t, err)

	assert.Equal(t, string(config.DefaultLogLevel), cfg.LogLevel)
	assert.Equal(t, config.DefaultDashboard, cfg.Dashboard)
	assert.Equal(t, config.DefaultTheme, cfg.Theme)
	assert.Equal(t, config.DefaultRefreshMs, cfg.RefreshMs)
	assert.False(t, cfg.Journal.Enabled)
	assert.NotEmpty(t, cfg.Journal.DBPath)
	assert.False(t, cfg.Alarm.Enabled)
}

func TestLoadConfigFileInvalidFormat(t *testing.T) {
	path := writeConfig(t, "This is not a valid TOML file\n")

	_, err := config.Load(nil, config.WithConfigFile(path))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrReadConfig))
	assert.Contains(t, err.Error(), "Failed to read config file")
}

func TestInvalidLogLevel(t *testing.T) {
	path := writeConfig(t, `log_level = "invalid"`)

	_, err := config.Load(nil, config.WithConfigFile(path))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid log level")
	assert.True(t, errors.HasCode(err, errors.ErrInvalidLogLevel))
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, `theme = "dark-night"`)
	t.Setenv("GAUGECTL_THEME", "hmi-classic")
	t.Setenv("GAUGECTL_JOURNAL_BATCH_SIZE", "7")

	cfg, err := config.Load(nil, config.WithConfigFile(path))
	require.NoError(t, err)
	assert.Equal(t, "hmi-classic", cfg.Theme)
	assert.Equal(t, 7, cfg.Journal.BatchSize)
}

func TestEnvPrefixOption(t *testing.T) {
	t.Setenv("GAUGECTL_CONFIG", "")
	t.Setenv("BOARD_REFRESH_MS", "40")
	t.Chdir(t.TempDir())

	cfg, err := config.Load(nil, config.WithEnvPrefix("BOARD"))
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.RefreshMs)
}

func TestFlagsOverrideFile(t *testing.T) {
	path := writeConfig(t, "log_level = \"warning\"\ntheme = \"dark-night\"\n")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	config.RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--config", path, "--log-level", "debug", "--journal"}))

	cfg, err := config.Load(fs)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel, "flag wins over file")
	assert.Equal(t, "dark-night", cfg.Theme, "unset flag keeps file value")
	assert.True(t, cfg.Journal.Enabled)
}

func TestValidate(t *testing.T) {
	cfg := &config.Config{LogLevel: "info", RefreshMs: 0}
	assert.True(t, errors.HasCode(cfg.Validate(), errors.ErrInvalidInterval))

	cfg = &config.Config{LogLevel: "info", RefreshMs: 100, Alarm: config.AlarmConfig{Enabled: true}}
	assert.True(t, errors.HasCode(cfg.Validate(), errors.ErrInvalidConfig))

	assert.True(t, config.LogLevelWarning.IsValid())
	assert.False(t, config.LogLevel("trace").IsValid())
}
