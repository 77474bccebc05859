package app

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AccessSecret  string // Required: HMAC secret for access tokens
	RefreshSecret string // Required: HMAC secret for refresh tokens

	AccessTokenTTL  time.Duration // Optional: access token lifetime (default: 1h)
	RefreshTokenTTL time.Duration // Optional: refresh token lifetime (default: 168h)

	DatabaseFile         string        // Optional: path to SQLite database file (default: ./church.db)
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 5000)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)

	// Optional first-run bootstrap. When both are set and no account with
	// AdminEmail exists yet, an active admin account is created at startup.
	// Registration only ever creates members, so this is the way the first
	// staff account comes to exist.
	AdminEmail    string
	AdminPassword string
}

var errMissingSecrets = errors.New(
	"JWT_SECRET and JWT_REFRESH_SECRET must be set and distinct")

// LoadConfig reads configuration from the environment, loading a local .env
// file first when one exists. Missing token secrets are a startup failure,
// never a silent default.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		AccessSecret:         os.Getenv("JWT_SECRET"),
		RefreshSecret:        os.Getenv("JWT_REFRESH_SECRET"),
		AccessTokenTTL:       getEnvDurationOrDefault("ACCESS_TOKEN_TTL", 0),
		RefreshTokenTTL:      getEnvDurationOrDefault("REFRESH_TOKEN_TTL", 0),
		DatabaseFile:         getEnvOrDefault("CHURCH_DATABASE_FILE", "church.db"),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 5000),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
		AdminEmail:           os.Getenv("ADMIN_EMAIL"),
		AdminPassword:        os.Getenv("ADMIN_PASSWORD"),
	}

	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" ||
		cfg.AccessSecret == cfg.RefreshSecret {
		return Config{}, errMissingSecrets
	}

	return cfg, nil
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

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}
