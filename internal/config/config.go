package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"parlay-api/internal/models"
)

type Config struct {
	Port        string       `mapstructure:"port"`
	Environment string       `mapstructure:"environment"`
	Log         LogConfig    `mapstructure:"log"`
	Odds        OddsConfig   `mapstructure:"odds"`
	Parlay      ParlayConfig `mapstructure:"parlay"`
	CORS        CORSConfig   `mapstructure:"cors"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type OddsConfig struct {
	APIKey     string        `mapstructure:"api_key"`
	BaseURL    string        `mapstructure:"base_url"`
	Region     string        `mapstructure:"region"`
	Format     string        `mapstructure:"format"`
	DateFormat string        `mapstructure:"date_format"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

type ParlayConfig struct {
	MaxLegs     int `mapstructure:"max_legs"`
	DefaultLegs int `mapstructure:"default_legs"`
}

type CORSConfig struct {
	AllowOrigins string `mapstructure:"allow_origins"`
}

var defaults = map[string]any{
	"port":                "8080",
	"environment":         "production",
	"log.level":           "info",
	"odds.api_key":        "",
	"odds.base_url":       "https://api.the-odds-api.com/v4",
	"odds.region":         "us",
	"odds.format":         string(models.OddsFormatAmerican),
	"odds.date_format":    "iso",
	"odds.timeout":        "10s",
	"parlay.max_legs":     10,
	"parlay.default_legs": 3,
	"cors.allow_origins":  "*",
}

// Load reads configuration from a local .env file, an optional
// configs/config.yml and the process environment, in increasing precedence.
// Nested keys map onto env vars with dots replaced by underscores,
// e.g. odds.api_key <- ODDS_API_KEY.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.AddConfigPath("configs")
	v.SetConfigName("config")
	v.SetConfigType("yml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	c.Odds.Format = strings.ToLower(c.Odds.Format)
	switch models.OddsFormat(c.Odds.Format) {
	case models.OddsFormatAmerican, models.OddsFormatDecimal:
	default:
		return fmt.Errorf("odds.format must be american or decimal, got %q", c.Odds.Format)
	}

	if c.Odds.Timeout <= 0 {
		return fmt.Errorf("odds.timeout must be positive, got %s", c.Odds.Timeout)
	}

	if c.Parlay.MaxLegs < 1 {
		return fmt.Errorf("parlay.max_legs must be at least 1, got %d", c.Parlay.MaxLegs)
	}

	if c.Parlay.DefaultLegs < 1 || c.Parlay.DefaultLegs > c.Parlay.MaxLegs {
		return fmt.Errorf("parlay.default_legs must be between 1 and %d, got %d", c.Parlay.MaxLegs, c.Parlay.DefaultLegs)
	}

	return nil
}

// OddsFormat returns the configured provider odds format
func (c *Config) OddsFormat() models.OddsFormat {
	return models.OddsFormat(c.Odds.Format)
}
