package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds application configuration
type Config struct {
	// HTTP server
	HTTPPort int

	// Database configuration
	DatabaseHost     string
	DatabasePort     string
	DatabaseName     string
	DatabaseUser     string
	DatabasePassword string

	// Redis configuration
	RedisHost     string
	RedisPassword string
	RedisPort     string

	// Market-data provider
	Brapi BrapiConfig

	// Display configuration
	Display DisplayConfig

	// Logging
	LogLevel  string
	LogPretty bool

	// Seed indicator_definitions from the metric registry when the table is empty
	SeedDefinitions bool
}

// BrapiConfig holds market-data API configuration
type BrapiConfig struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// DisplayConfig holds formatting preferences
type DisplayConfig struct {
	Currency string
	Locale   string
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() *Config {
	// Load .env file if exists
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	return &Config{
		HTTPPort: getEnvInt("HTTP_PORT", 8080),

		// Database configuration
		DatabaseHost:     getEnvOrDefault("DB_HOST", "localhost"),
		DatabasePort:     getEnvOrDefault("DB_PORT", "5432"),
		DatabaseName:     getEnvOrDefault("DB_NAME", "finboard"),
		DatabaseUser:     getEnvOrDefault("DB_USER", "finboard"),
		DatabasePassword: getEnvOrDefault("DB_PASSWORD", "finboard"),

		// Redis configuration
		RedisHost:     getEnvOrDefault("REDIS_HOST", "localhost"),
		RedisPort:     getEnvOrDefault("REDIS_PORT", "6379"),
		RedisPassword: getEnvOrDefault("REDIS_PASSWORD", ""),

		Brapi: BrapiConfig{
			BaseURL: getEnvOrDefault("BRAPI_BASE_URL", "https://brapi.dev/api"),
			Token:   getEnvOrDefault("BRAPI_TOKEN", ""),
			Timeout: time.Duration(getEnvInt("BRAPI_TIMEOUT_SECONDS", 15)) * time.Second,
		},

		Display: DisplayConfig{
			Currency: getEnvOrDefault("DISPLAY_CURRENCY", "BRL"),
			Locale:   getEnvOrDefault("DISPLAY_LOCALE", "pt-BR"),
		},

		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogPretty: getEnvBool("LOG_PRETTY", true),

		SeedDefinitions: getEnvBool("SEED_DEFINITIONS", true),
	}
}

// DatabasePortInt returns the database port as an int
func (c *Config) DatabasePortInt() (int, error) {
	var port int
	if _, err := fmt.Sscanf(c.DatabasePort, "%d", &port); err != nil {
		return 0, fmt.Errorf("invalid DB_PORT %q: %w", c.DatabasePort, err)
	}
	return port, nil
}

// Level returns the zerolog level of LogLevel, defaulting to info
func (c *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

// getEnvInt gets environment variable as int or returns default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var intValue int
	if _, err := fmt.Sscanf(value, "%d", &intValue); err != nil {
		return defaultValue
	}
	return intValue
}

// getEnvBool accepts true/false, 1/0, yes/no
func getEnvBool(key string, defaultValue bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultValue
}

// getEnvOrDefault gets environment variable or returns default value
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
