// Package config provides configuration for the gateway.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the gateway configuration.
type Config struct {
	// Server settings
	HTTPPort int

	// Remote chat service
	BackendURL     string
	BackendTimeout time.Duration

	// Local fallback
	FallbackDelay time.Duration

	// Session storage
	StoreDriver string
	DatabaseURL string
	RedisAddr   string

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables.
func Load() *Config {
	cfg := &Config{
		HTTPPort:       getEnvInt("HTTP_PORT", 8080),
		BackendURL:     getEnv("BACKEND_URL", "http://localhost:8000"),
		BackendTimeout: time.Duration(getEnvInt("BACKEND_TIMEOUT_MS", 15000)) * time.Millisecond,
		FallbackDelay:  time.Duration(getEnvInt("FALLBACK_DELAY_MS", 800)) * time.Millisecond,
		StoreDriver:    getEnv("STORE_DRIVER", "sqlite"),
		DatabaseURL:    getEnv("DATABASE_URL", "file:chat.db?cache=shared&mode=rwc"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}
