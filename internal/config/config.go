package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the configuration settings for the matching service.
//
// Fields:
// - Env: The current environment (e.g., local, dev, prod).
// - Port: The port for the HTTP API and monitoring server.
// - ProviderType: The type of geocoding provider to use (nominatim, google).
// - APIKey: The API key for accessing external services (required for Google).
// - Workers: The number of concurrent workers for coordinate resolution.
// - GeocodeTimeout: The upper bound on a single geocoding lookup.
// - Database: Configuration settings for the PostgreSQL database.
type Config struct {
	Env            string         // Env is the current environment: local, dev, prod.
	Port           int            // Port is the HTTP API and monitoring server port.
	ProviderType   string         // ProviderType specifies which geocoding provider to use.
	APIKey         string         // The API key for accessing external services.
	Workers        int            // The number of concurrent workers for coordinate resolution.
	GeocodeTimeout time.Duration  // The upper bound on a single geocoding lookup.
	Database       PostgresConfig // Database holds the postgres database configuration.
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string // Host is the database server address.
	Port     string // Port is the database server port.
	User     string // User is the database user.
	Password string // Password is the database user's password.
	Name     string // Name is the name of the database.
}

// MustLoad loads the configuration from the environment and returns a Config
// struct, panicking on malformed values.
func MustLoad() *Config {
	_ = godotenv.Load()

	geocodeTimeout, err := time.ParseDuration(setDefaultEnv("MEALMATCH_GEOCODE_TIMEOUT", "10s"))
	if err != nil {
		panic("failed to parse geocode timeout from configuration")
	}

	port, err := strconv.Atoi(setDefaultEnv("MEALMATCH_PORT", "8080"))
	if err != nil {
		panic("failed to parse port for API server from configuration")
	}

	workers, err := strconv.Atoi(setDefaultEnv("MEALMATCH_WORKERS", "10"))
	if err != nil {
		panic("failed to parse workers from configuration, must be an integer type")
	}

	return &Config{
		Env:            setDefaultEnv("MEALMATCH_ENV", "production"),
		Port:           port,
		ProviderType:   setDefaultEnv("MEALMATCH_PROVIDER_TYPE", "nominatim"),
		APIKey:         os.Getenv("MEALMATCH_PROVIDER_KEY"),
		Workers:        workers,
		GeocodeTimeout: geocodeTimeout,
		Database: PostgresConfig{
			Host:     os.Getenv("DB_HOST"),
			Port:     os.Getenv("DB_PORT"),
			User:     os.Getenv("DB_USERNAME"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
		},
	}
}

func setDefaultEnv(key, override string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		value = override
	}

	return value
}
