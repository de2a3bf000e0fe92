package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Quotes   QuotesConfig
	CORS     CORSConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// QuotesConfig holds quote-provider configuration.
//
// APIKey is the Financial Modeling Prep API key. It is deliberately plain
// configuration rather than process-wide mutable state; a key stored via the
// settings endpoint overrides it at request time. FernetKey is a base64
// fernet key used to encrypt the stored override at rest.
type QuotesConfig struct {
	BaseURL        string
	APIKey         string
	FernetKey      string
	RequestTimeout time.Duration
	MaxConcurrent  int
	RefreshCron    string // empty disables the scheduled refresh
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	timeoutSec, err := getEnvInt("QUOTE_TIMEOUT_SECONDS", 10)
	if err != nil {
		return nil, err
	}
	maxConcurrent, err := getEnvInt("QUOTE_MAX_CONCURRENT", 4)
	if err != nil {
		return nil, err
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/stock_tracker.db"),
		},
		Quotes: QuotesConfig{
			BaseURL:        getEnv("FMP_BASE_URL", "https://financialmodelingprep.com"),
			APIKey:         getEnv("FMP_API_KEY", ""),
			FernetKey:      getEnv("SETTINGS_FERNET_KEY", ""),
			RequestTimeout: time.Duration(timeoutSec) * time.Second,
			MaxConcurrent:  maxConcurrent,
			RefreshCron:    getEnv("REFRESH_CRON", ""),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt gets an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return parsed, nil
}
