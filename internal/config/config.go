package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr  string
	MetricsAddr string

	AlertWorkers   int
	AlertQueueSize int

	ShutdownTimeout time.Duration
}

// Load reads configuration from the environment, with a .env file as an
// optional overlay for local development.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ListenAddr:  getEnv("LISTEN_ADDR", ":8080"),
		MetricsAddr: getEnv("METRICS_ADDR", ":9090"),

		AlertWorkers:   getEnvInt("ALERT_WORKERS", 3),
		AlertQueueSize: getEnvInt("ALERT_QUEUE_SIZE", 1000),

		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
	}
}

func (c *Config) Validate() error {
	if c.AlertWorkers < 1 {
		return fmt.Errorf("invalid ALERT_WORKERS %d: must be at least 1", c.AlertWorkers)
	}
	if c.AlertQueueSize < 1 {
		return fmt.Errorf("invalid ALERT_QUEUE_SIZE %d: must be at least 1", c.AlertQueueSize)
	}
	if c.ListenAddr == "" || c.MetricsAddr == "" {
		return fmt.Errorf("listen and metrics addresses must not be empty")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("invalid SHUTDOWN_TIMEOUT %s: must be positive", c.ShutdownTimeout)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}
