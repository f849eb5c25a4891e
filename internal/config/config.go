package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config captures runtime configuration for the PULSE service.
type Config struct {
	ListenAddr        string
	Environment       string
	LogLevel          string
	DefaultWindowDays int
	DefaultPlatform   string
	CatalogPath       string
	SimulatedLatency  time.Duration
	RemoteURL         string
	Seed              int64
}

// FromEnv creates a configuration instance sourced from environment variables.
func FromEnv() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		ListenAddr:        getEnv("PULSE_LISTEN_ADDR", ":8080"),
		Environment:       getEnv("APP_ENV", "development"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		DefaultWindowDays: 30,
		DefaultPlatform:   getEnv("PULSE_DEFAULT_PLATFORM", "twitter"),
		CatalogPath:       getEnv("PULSE_CATALOG_PATH", ""),
		RemoteURL:         getEnv("PULSE_REMOTE_URL", ""),
	}

	if window := os.Getenv("PULSE_DEFAULT_WINDOW_DAYS"); window != "" {
		if _, err := fmt.Sscanf(window, "%d", &cfg.DefaultWindowDays); err != nil {
			return Config{}, fmt.Errorf("parse PULSE_DEFAULT_WINDOW_DAYS: %w", err)
		}
		if cfg.DefaultWindowDays < 1 {
			return Config{}, fmt.Errorf("PULSE_DEFAULT_WINDOW_DAYS must be positive, got %d", cfg.DefaultWindowDays)
		}
	}

	if latency := os.Getenv("PULSE_SIMULATED_LATENCY_MS"); latency != "" {
		var ms int
		if _, err := fmt.Sscanf(latency, "%d", &ms); err != nil {
			return Config{}, fmt.Errorf("parse PULSE_SIMULATED_LATENCY_MS: %w", err)
		}
		if ms < 0 {
			return Config{}, fmt.Errorf("PULSE_SIMULATED_LATENCY_MS must not be negative, got %d", ms)
		}
		cfg.SimulatedLatency = time.Duration(ms) * time.Millisecond
	}

	if seed := os.Getenv("PULSE_SEED"); seed != "" {
		if _, err := fmt.Sscanf(seed, "%d", &cfg.Seed); err != nil {
			return Config{}, fmt.Errorf("parse PULSE_SEED: %w", err)
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
