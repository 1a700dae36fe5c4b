// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"log"

	"github.com/spf13/viper"
)

// Config holds application configuration values loaded from file or
// environment variables.
type Config struct {
	Port           string `mapstructure:"PORT"`
	Env            string `mapstructure:"APP_ENV"`
	JWTSecret      string `mapstructure:"JWT_SECRET"`
	RedisURL       string `mapstructure:"REDIS_URL"`
	AllowedOrigins string `mapstructure:"ALLOWED_ORIGINS"`

	// ReadLatencyMS is the simulated remote latency applied to every read.
	// Zero disables it.
	ReadLatencyMS int `mapstructure:"READ_LATENCY_MS"`

	// SessionTTLMin is how long an idle session sandbox is kept before the
	// janitor discards it.
	SessionTTLMin int `mapstructure:"SESSION_TTL_MIN"`

	// SeedExtraUsers / SeedExtraProblems add randomized records on top of the
	// fixed demo fixtures.
	SeedExtraUsers    int `mapstructure:"SEED_EXTRA_USERS"`
	SeedExtraProblems int `mapstructure:"SEED_EXTRA_PROBLEMS"`
}

// LoadConfig loads application configuration from config.yml and environment
// variables, with development defaults.
func LoadConfig() (*Config, error) {
	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if errors.As(err, &notFoundErr) {
			log.Println("Config file not found; using environment variables and defaults")
		} else {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("JWT_SECRET", "your-secret-key-change-in-production")
	viper.SetDefault("REDIS_URL", "localhost:6379")
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")
	viper.SetDefault("READ_LATENCY_MS", 300)
	viper.SetDefault("SESSION_TTL_MIN", 120)
	viper.SetDefault("SEED_EXTRA_USERS", 0)
	viper.SetDefault("SEED_EXTRA_PROBLEMS", 0)

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate checks configuration invariants that would otherwise surface as
// confusing runtime failures.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	if c.ReadLatencyMS < 0 {
		return errors.New("READ_LATENCY_MS must not be negative")
	}
	if c.SessionTTLMin <= 0 {
		return errors.New("SESSION_TTL_MIN must be positive")
	}
	return nil
}
