package config

import (
	"fmt"
	"os"
	"strconv"
)

// DefaultJWTSecret is a development-only placeholder. Any production
// deployment must set JWT_SECRET explicitly; serve logs a warning when
// the placeholder is in use.
const DefaultJWTSecret = "change-me-dev-only"

// Config holds the application configuration
type Config struct {
	// Database connection string (DSN). PostgreSQL DSNs start with
	// postgres://; anything else is treated as a SQLite path.
	DatabaseURL string

	// Server bind address (host:port)
	ServerAddr string

	// Symmetric signing secret for access tokens
	JWTSecret string

	// Single configured login credential
	AuthUsername string
	AuthPassword string

	// Optional bcrypt hash of the password. When set, it takes
	// precedence over AuthPassword for credential verification.
	AuthPasswordHash string

	// Path to a classifier artifact. Empty selects the built-in
	// rule-based model.
	ModelPath string

	// Maximum database connection pool size (PostgreSQL only)
	MaxDBConnections int

	// Enable debug logging
	Debug bool
}

// Load reads configuration from environment variables with fallback defaults
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:      getEnv("DATABASE_URL", "predictions.db"),
		ServerAddr:       getEnv("SERVER_ADDR", "localhost:8080"),
		JWTSecret:        getEnv("JWT_SECRET", DefaultJWTSecret),
		AuthUsername:     getEnv("AUTH_USERNAME", "usuario"),
		AuthPassword:     getEnv("AUTH_PASSWORD", "senha"),
		AuthPasswordHash: getEnv("AUTH_PASSWORD_HASH", ""),
		ModelPath:        getEnv("MODEL_PATH", ""),
		MaxDBConnections: getEnvInt("MAX_DB_CONNECTIONS", 25),
		Debug:            getEnvBool("DEBUG", false),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must not be empty")
	}
	if cfg.AuthUsername == "" {
		return nil, fmt.Errorf("AUTH_USERNAME must not be empty")
	}
	if cfg.AuthPassword == "" && cfg.AuthPasswordHash == "" {
		return nil, fmt.Errorf("one of AUTH_PASSWORD or AUTH_PASSWORD_HASH is required")
	}
	if cfg.MaxDBConnections < 1 {
		return nil, fmt.Errorf("MAX_DB_CONNECTIONS must be at least 1")
	}

	return cfg, nil
}

// UsesDefaultSecret reports whether the development placeholder secret is active.
func (c *Config) UsesDefaultSecret() bool {
	return c.JWTSecret == DefaultJWTSecret
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if result, err := strconv.Atoi(value); err == nil {
			return result
		}
	}
	return defaultValue
}

// getEnvBool retrieves a boolean environment variable or returns a default value
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}
