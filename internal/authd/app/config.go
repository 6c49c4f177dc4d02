package app

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Issuer         string // Issuer claim for both token kinds (default: authd)
	PrivateKeyFile string // Required: path to the RSA private key PEM
	KeyID          string // Key id published in the JWKS (default: authd-1)
	RefreshSecret  string // Required: HMAC secret for refresh tokens
	CookieDomain   string // Domain attribute on session cookies (default: localhost)

	DatabaseFile         string        // Path to SQLite database file (default: ./authd.db)
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Expired refresh record sweep interval (default: 1h)
}

func LoadConfig() Config {
	// A .env file is a dev convenience; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	return Config{
		Issuer:               getEnvOrDefault("AUTHD_ISSUER", "authd"),
		PrivateKeyFile:       os.Getenv("AUTHD_PRIVATE_KEY_FILE"),
		KeyID:                getEnvOrDefault("AUTHD_KEY_ID", "authd-1"),
		RefreshSecret:        os.Getenv("AUTHD_REFRESH_SECRET"),
		CookieDomain:         getEnvOrDefault("AUTHD_COOKIE_DOMAIN", "localhost"),
		DatabaseFile:         getEnvOrDefault("AUTHD_DATABASE_FILE", "authd.db"),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Accept duration strings (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Accept plain integers as minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
