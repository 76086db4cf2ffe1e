// Package config provides configuration management for the trading journal.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"trade-journal/internal/errors"
)

// Config holds all application configuration.
type Config struct {
	Account AccountConfig `mapstructure:"account"`
	Journal JournalConfig `mapstructure:"journal"`
	Logging LoggingConfig `mapstructure:"logging"`
	UI      UIConfig      `mapstructure:"ui"`
}

// AccountConfig holds equity settings used for risk-limit checks.
type AccountConfig struct {
	StartingEquity float64 `mapstructure:"starting_equity"`
}

// JournalConfig holds journal storage settings.
type JournalConfig struct {
	DatabasePath string `mapstructure:"database_path"`
	CoachWindow  int    `mapstructure:"coach_window"` // recent grades fed to the coach
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Console    bool   `mapstructure:"console"`
	File       bool   `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
}

// UIConfig holds display settings.
type UIConfig struct {
	ColorEnabled bool   `mapstructure:"color_enabled"`
	DateFormat   string `mapstructure:"date_format"`
}

// DefaultConfigDir returns the configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".trade-journal"
	}
	return filepath.Join(home, ".config", "trade-journal")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("account.starting_equity", 100000.0)
	v.SetDefault("journal.database_path", filepath.Join(DefaultConfigDir(), "journal.db"))
	v.SetDefault("journal.coach_window", 10)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.console", true)
	v.SetDefault("logging.file", true)
	v.SetDefault("logging.max_size", 100)
	v.SetDefault("logging.max_backups", 7)
	v.SetDefault("logging.max_age", 30)
	v.SetDefault("ui.color_enabled", true)
	v.SetDefault("ui.date_format", "2006-01-02")
}

// Load reads configuration from the config directory, falling back to
// defaults when no file exists.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(DefaultConfigDir())
	v.SetEnvPrefix("TRADE_JOURNAL")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Wrap(err, "failed to read config file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value-level constraints on the configuration.
func (c *Config) Validate() error {
	if c.Account.StartingEquity < 0 {
		return errors.Wrapf(errors.ErrConfigInvalid,
			"account.starting_equity must be non-negative, got %v", c.Account.StartingEquity)
	}
	if c.Journal.CoachWindow <= 0 {
		return errors.Wrapf(errors.ErrConfigInvalid,
			"journal.coach_window must be positive, got %d", c.Journal.CoachWindow)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.Wrapf(errors.ErrConfigInvalid,
			"logging.level must be one of debug, info, warn, error, got %q", c.Logging.Level)
	}
	return nil
}

// WriteDefault writes a commented default config file if none exists.
func WriteDefault() (string, error) {
	dir := DefaultConfigDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrap(err, "failed to create config directory")
	}
	path := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	content := fmt.Sprintf(`# trade-journal configuration
account:
  starting_equity: 100000.0

journal:
  database_path: %s
  coach_window: 10

logging:
  level: info
  console: true
  file: true

ui:
  color_enabled: true
  date_format: "2006-01-02"
`, filepath.Join(dir, "journal.db"))
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", errors.Wrap(err, "failed to write default config")
	}
	return path, nil
}
