package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration. It is loaded from
// ~/.somnus/config.yaml and every key can be overridden by a SOMNUS_*
// environment variable (e.g. SOMNUS_TELEGRAM_TOKEN).
type Config struct {
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Weather   WeatherConfig   `mapstructure:"weather"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

type TelegramConfig struct {
	Token          string `mapstructure:"token"`
	PollTimeoutSec int    `mapstructure:"poll_timeout_sec"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type WeatherConfig struct {
	APIKey    string `mapstructure:"api_key"`
	BaseURL   string `mapstructure:"base_url"`
	TimeoutMs int    `mapstructure:"timeout_ms"`
}

type SchedulerConfig struct {
	// TickSeconds is the evaluator interval. The trigger match is exact
	// hour:minute equality, so anything other than 60 risks double or
	// missed fires.
	TickSeconds int `mapstructure:"tick_seconds"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"` // debug, info, warn, error
}

// Load reads configuration from the config file and environment.
// A missing config file is fine; defaults plus environment apply.
func Load() (*Config, error) {
	v := viper.New()

	// Every key needs a default registered so AutomaticEnv can see it
	// during Unmarshal.
	v.SetDefault("telegram.token", "")
	v.SetDefault("telegram.poll_timeout_sec", 10)
	v.SetDefault("database.path", defaultDBPath())
	v.SetDefault("weather.api_key", "")
	v.SetDefault("weather.base_url", "https://api.openweathermap.org")
	v.SetDefault("weather.timeout_ms", 10000)
	v.SetDefault("scheduler.tick_seconds", 60)
	v.SetDefault("logging.level", "info")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".somnus"))
	}
	v.AddConfigPath(".")

	v.SetEnvPrefix("SOMNUS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "somnus.db"
	}
	return filepath.Join(home, ".somnus", "somnus.db")
}
