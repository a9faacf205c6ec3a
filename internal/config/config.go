package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Market data. The provider and key are passed explicitly to the quote
	// client at construction; nothing reads them ambiently after startup.
	QuoteProvider string
	QuoteAPIKey   string

	// Analytics
	RiskFreeRate    float64
	SeriesLength    int
	CurveStartValue float64
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		// Server
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "pulserisk"),
		DBPassword: getEnv("DB_PASSWORD", "pulserisk"),
		DBName:     getEnv("DB_NAME", "pulserisk"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// Market data
		QuoteProvider: getEnv("MARKET_DATA_PROVIDER", "alphavantage"),
		QuoteAPIKey:   getEnv("MARKET_DATA_API_KEY", ""),

		// Analytics
		RiskFreeRate:    getEnvFloat("RISK_FREE_RATE", 0.04),
		SeriesLength:    getEnvInt("SERIES_LENGTH", 120),
		CurveStartValue: getEnvFloat("CURVE_START_VALUE", 138000),
	}

	return config, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Printf("Warning: invalid %s value '%s', falling back to %v\n", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}

func getEnvInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: invalid %s value '%s', falling back to %v\n", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}
