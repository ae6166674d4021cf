package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all configuration for the freight quote service
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Geocoder GeocoderConfig
	RedisURL string
	NATSURL  string
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// GeocoderConfig holds forward-geocoding service configuration
type GeocoderConfig struct {
	BaseURL         string
	UserAgent       string
	TimeoutSeconds  int
	CacheTTLMinutes int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8090"),
			Env:  getEnv("APP_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "freight_quotes"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Geocoder: GeocoderConfig{
			BaseURL:         getEnv("GEOCODER_BASE_URL", "https://nominatim.openstreetmap.org"),
			UserAgent:       getEnv("GEOCODER_USER_AGENT", "freight-quote-service/1.0"),
			TimeoutSeconds:  getEnvAsInt("GEOCODER_TIMEOUT_SECONDS", 10),
			CacheTTLMinutes: getEnvAsInt("GEOCODER_CACHE_TTL_MINUTES", 1440),
		},
		// Redis and NATS are optional; empty values disable them
		RedisURL: getEnv("REDIS_URL", ""),
		NATSURL:  getEnv("NATS_URL", ""),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if c.Geocoder.BaseURL == "" {
		return fmt.Errorf("GEOCODER_BASE_URL is required")
	}
	if c.Geocoder.TimeoutSeconds <= 0 {
		return fmt.Errorf("GEOCODER_TIMEOUT_SECONDS must be positive")
	}
	return nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsInt gets an integer environment variable or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
