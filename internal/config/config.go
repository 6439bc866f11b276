// Package config handles loading and validation of application configuration
// from environment variables. Supports .env files via godotenv.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server settings
	Port        int
	Environment string // "development" | "staging" | "production"

	// Storage (embedded SQLite key/value document store)
	StorageDSN string

	// Security
	JWTSecret      string
	AllowedOrigins []string
	RateLimitRPM   int

	// Demo-mode policy values. These simulate the backend: one shared
	// password for every account and one accepted OTP. Not security.
	DemoPassword string
	AcceptedOTP  string

	// Simulated request latency scale. 1.0 keeps the stock delays so UI
	// loading states stay observable; tests may shrink it but the
	// default must stay non-zero.
	LatencyScale float64
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (development)
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnvInt("PORT", 8080),
		Environment: getEnv("ENVIRONMENT", "development"),

		StorageDSN: getEnv("STORAGE_DSN", "civiccred.db?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"),

		JWTSecret:      getEnv("JWT_SECRET", "dev-secret-change-in-production"),
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000"), ","),
		RateLimitRPM:   getEnvInt("RATE_LIMIT_RPM", 120),

		DemoPassword: getEnv("DEMO_PASSWORD", "password123"),
		AcceptedOTP:  getEnv("DEMO_ACCEPTED_OTP", "123456"),

		LatencyScale: getEnvFloat("SIM_LATENCY_SCALE", 1.0),
	}

	if cfg.LatencyScale <= 0 {
		return nil, fmt.Errorf("SIM_LATENCY_SCALE must be positive")
	}

	// Validate required fields in production
	if cfg.Environment == "production" {
		if cfg.JWTSecret == "dev-secret-change-in-production" {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return fallback
}
