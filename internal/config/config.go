// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all service configuration, read from the environment.
type Config struct {
	Port          string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	DBPath        string
	IntentsPath   string
	SessionTTL    time.Duration
}

// Load reads configuration from environment variables with sane defaults.
// SESSION_TTL_MINUTES defaults to 10, the conversation inactivity reset.
func Load() (*Config, error) {
	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		DBPath:        getEnv("DB_PATH", "./data/tickets.db"),
		IntentsPath:   getEnv("INTENTS_PATH", "config/intents.yaml"),
		SessionTTL:    time.Duration(getEnvInt("SESSION_TTL_MINUTES", 10)) * time.Minute,
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if c.RedisAddr == "" {
		return fmt.Errorf("REDIS_ADDR cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	if c.IntentsPath == "" {
		return fmt.Errorf("INTENTS_PATH cannot be empty")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL_MINUTES must be > 0")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}
