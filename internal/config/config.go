package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Database configuration
	PostgresURL string

	// Vehicle enquiry configuration
	DVLAAPIURL  string
	DVLAAPIKey  string
	DVLATimeout time.Duration

	// Cache configuration
	CacheTTL time.Duration

	// Logging configuration
	LogLevel  string
	LogFormat string
}

// LoadConfig loads the application configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading .env file. Using environment variables.")
	}

	// Create and populate config
	config := &Config{
		// Server configuration
		Port:         getEnvInt("PORT", 8080),
		ReadTimeout:  time.Duration(getEnvInt("READ_TIMEOUT", 15)) * time.Second,
		WriteTimeout: time.Duration(getEnvInt("WRITE_TIMEOUT", 15)) * time.Second,

		// Database configuration
		PostgresURL: os.Getenv("POSTGRES_DB_URL"),

		// Vehicle enquiry configuration
		DVLAAPIURL:  getEnvString("DVLA_API_URL", "https://driver-vehicle-licensing.api.gov.uk"),
		DVLAAPIKey:  os.Getenv("DVLA_API_KEY"),
		DVLATimeout: time.Duration(getEnvInt("DVLA_TIMEOUT", 15)) * time.Second,

		// Cache configuration
		CacheTTL: time.Duration(getEnvInt("CACHE_TTL", 3600)) * time.Second,

		// Logging configuration
		LogLevel:  getEnvString("LOG_LEVEL", "info"),
		LogFormat: getEnvString("LOG_FORMAT", "json"),
	}

	// Validate critical configuration
	validateConfig(config)

	return config, nil
}

// validateConfig checks if critical configuration values are set and logs warnings if they're missing
func validateConfig(config *Config) {
	// Check if database URL is provided
	if config.PostgresURL == "" {
		log.Println("Warning: No PostgreSQL URL provided. Sale persistence will fail.")
	}

	// Check if DVLA API key is provided
	if config.DVLAAPIKey == "" {
		log.Println("Warning: No DVLA API key provided. Vehicle lookups will fail.")
	}
}

// getEnvInt gets an integer from an environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}

	return value
}

// getEnvString gets a string from an environment variable with a default value
func getEnvString(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
