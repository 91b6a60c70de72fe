// Package config loads gaugectl settings from a TOML file, the environment
// and command-line flags, in increasing order of precedence.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"codeberg.org/mutker/gaugectl/internal/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultLogLevel     = LogLevelInfo
	DefaultDashboard    = "dashboard.yaml"
	DefaultTheme        = "standard"
	DefaultRefreshMs    = 100
	DefaultEnvPrefix    = "GAUGECTL"
	DefaultBatchSize    = 50
	DefaultBatchTimeout = 5 // seconds
	DefaultAlarmFreq    = 880.0
	DefaultAlarmMs      = 200
	DefaultCooldownMs   = 2000

	configName = "gaugectl"
)

type Config struct {
	LogLevel  string        `mapstructure:"log_level"`
	LogFile   string        `mapstructure:"log_file"`
	Dashboard string        `mapstructure:"dashboard"`
	Theme     string        `mapstructure:"theme"`
	RefreshMs int           `mapstructure:"refresh_ms"`
	Journal   JournalConfig `mapstructure:"journal"`
	Alarm     AlarmConfig   `mapstructure:"alarm"`
}

type JournalConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	DBPath       string `mapstructure:"db_path"`
	BatchSize    int    `mapstructure:"batch_size"`
	BatchTimeout int    `mapstructure:"batch_timeout"`
}

type AlarmConfig struct {
	Enabled    bool    `mapstructure:"enabled"`
	Frequency  float64 `mapstructure:"frequency"`
	DurationMs int     `mapstructure:"duration_ms"`
	CooldownMs int     `mapstructure:"cooldown_ms"`
}

// flagKeys maps flag names to config keys.
var flagKeys = map[string]string{
	"log-level":  "log_level",
	"log-file":   "log_file",
	"dashboard":  "dashboard",
	"theme":      "theme",
	"refresh-ms": "refresh_ms",
	"journal":    "journal.enabled",
	"journal-db": "journal.db_path",
	"alarm":      "alarm.enabled",
}

// RegisterFlags adds the persistent flags Load understands to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "Path to configuration file")
	fs.String("log-level", string(DefaultLogLevel), "Log level (debug, info, warning, error)")
	fs.String("log-file", "", "Write logs to this file instead of stderr")
	fs.StringP("dashboard", "d", DefaultDashboard, "Dashboard definition file")
	fs.String("theme", DefaultTheme, "Color theme")
	fs.Int("refresh-ms", DefaultRefreshMs, "Terminal redraw interval in milliseconds")
	fs.Bool("journal", false, "Record readings and crossings to SQLite")
	fs.String("journal-db", "", "Journal database path")
	fs.Bool("alarm", false, "Sound an alarm on threshold crossings")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", string(DefaultLogLevel))
	v.SetDefault("log_file", "")
	v.SetDefault("dashboard", DefaultDashboard)
	v.SetDefault("theme", DefaultTheme)
	v.SetDefault("refresh_ms", DefaultRefreshMs)
	v.SetDefault("journal.enabled", false)
	v.SetDefault("journal.db_path", defaultJournalPath())
	v.SetDefault("journal.batch_size", DefaultBatchSize)
	v.SetDefault("journal.batch_timeout", DefaultBatchTimeout)
	v.SetDefault("alarm.enabled", false)
	v.SetDefault("alarm.frequency", DefaultAlarmFreq)
	v.SetDefault("alarm.duration_ms", DefaultAlarmMs)
	v.SetDefault("alarm.cooldown_ms", DefaultCooldownMs)
}

func defaultJournalPath() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, configName, "journal.db")
	}
	return configName + ".db"
}

// Load reads the configuration. flags may be nil; only flags the user
// actually set override file and environment values.
func Load(flags *pflag.FlagSet, opts ...Option) (*Config, error) {
	errFactory := errors.New()

	o := options{envPrefix: DefaultEnvPrefix}
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
		}
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(o.envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path := o.configPath
	if path == "" && flags != nil {
		if f := flags.Lookup("config"); f != nil && f.Changed {
			path = f.Value.String()
		}
	}
	if path == "" {
		path = os.Getenv(o.envPrefix + "_CONFIG")
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", configName))
		}
		v.AddConfigPath("/etc/" + configName)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errFactory.Wrap(errors.ErrReadConfig, err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil || !f.Changed {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, errFactory.Wrap(errors.ErrBindFlags, err).WithData(name)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
	}
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	errFactory := errors.New()

	if !LogLevel(c.LogLevel).IsValid() {
		return errFactory.WithData(errors.ErrInvalidLogLevel, c.LogLevel)
	}
	if c.RefreshMs <= 0 {
		return errFactory.WithData(errors.ErrInvalidInterval, c.RefreshMs)
	}
	if c.Journal.Enabled && c.Journal.DBPath == "" {
		return errFactory.WithMessage(errors.ErrInvalidConfig, "journal.db_path is required when the journal is enabled")
	}
	if c.Journal.BatchSize < 0 || c.Journal.BatchTimeout < 0 {
		return errFactory.WithMessage(errors.ErrInvalidConfig, "journal batch settings must not be negative")
	}
	if c.Alarm.Enabled && (c.Alarm.Frequency <= 0 || c.Alarm.DurationMs <= 0) {
		return errFactory.WithMessage(errors.ErrInvalidConfig, "alarm frequency and duration must be positive")
	}
	return nil
}

// Refresh is the terminal redraw period.
func (c *Config) Refresh() time.Duration {
	return time.Duration(c.RefreshMs) * time.Millisecond
}

// Timeout is the journal flush period.
func (j JournalConfig) Timeout() time.Duration {
	return time.Duration(j.BatchTimeout) * time.Second
}

// Duration is the alarm tone length.
func (a AlarmConfig) Duration() time.Duration {
	return time.Duration(a.DurationMs) * time.Millisecond
}

// Cooldown is the minimum gap between two tones for one gauge.
func (a AlarmConfig) Cooldown() time.Duration {
	return time.Duration(a.CooldownMs) * time.Millisecond
}
