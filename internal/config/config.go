package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Server
	Port int
	Env  string

	// CORS
	AllowedOrigins []string

	// Datasets
	DataDir     string
	DefaultGame string

	// Analysis
	RecentWindow int

	// GRID match provider (ingestion is disabled when the key is unset)
	GridBaseURL string
	GridAPIKey  string
	GridTimeout time.Duration

	// HTTP server
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Load loads configuration from environment variables.
// It returns an error if critical configuration is invalid.
func Load() (*Config, error) {
	cfg := &Config{
		Port: getEnvInt("PORT", 8080),
		Env:  getEnv("ENV", "development"),

		DataDir:     getEnv("DATA_DIR", "data"),
		DefaultGame: strings.ToLower(getEnv("DEFAULT_GAME", "valorant")),

		RecentWindow: getEnvInt("RECENT_WINDOW", 2),

		GridBaseURL: strings.TrimRight(getEnv("GRID_BASE_URL", "https://api.grid.gg"), "/"),
		GridAPIKey:  getEnv("GRID_API_KEY", ""),
		GridTimeout: getEnvDuration("GRID_TIMEOUT", 30*time.Second),

		ReadTimeout:     getEnvDuration("READ_TIMEOUT", 10*time.Second),
		WriteTimeout:    getEnvDuration("WRITE_TIMEOUT", 30*time.Second),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 15*time.Second),
	}

	// CORS
	origins := getEnv("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:8080")
	rawOrigins := strings.Split(origins, ",")
	for _, o := range rawOrigins {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
		}
	}

	if cfg.RecentWindow < 1 {
		return nil, fmt.Errorf("RECENT_WINDOW must be at least 1, got %d", cfg.RecentWindow)
	}
	if cfg.DataDir == "" {
		return nil, fmt.Errorf("DATA_DIR must not be empty")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
