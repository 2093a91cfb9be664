package config

import (
	"os"
	"strconv"
	"time"

	"github.com/UnknownOlympus/roadbook/internal/models"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the configuration settings for the route service.
//
// Fields:
// - Env: The current environment (local, development, production).
// - HealthPort: The port for the monitoring server (/healthz, /metrics).
// - APIPort: The port for the HTTP API.
// - Provider: Routing provider selection and limits.
// - Home: The fixed origin of every route.
// - Workers: The number of concurrent workers for route warm-up.
// - Map: Server-side map viewport defaults.
// - Database: Configuration settings for the PostgreSQL database.
// - Redis: Optional Redis cache in front of the database.
type Config struct {
	Env        string
	HealthPort int
	APIPort    int
	Provider   ProviderConfig
	Home       models.Coordinates
	Workers    int
	Map        MapConfig
	Database   PostgresConfig
	Redis      RedisConfig
}

// ProviderConfig selects and tunes the routing provider.
type ProviderConfig struct {
	Type      string        // osrm, mapbox or google
	APIKey    string        // Access token or API key (mapbox, google)
	URL       string        // Base URL override, e.g. a self-hosted OSRM
	Timeout   time.Duration // Upper bound of one provider call
	RateLimit int           // Requests per second
}

// MapConfig holds viewport defaults for composed maps.
type MapConfig struct {
	Padding int     // Margin around fitted bounds, in pixels
	MaxZoom float64 // Zoom cap for single points and tight clusters
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string // Host is the database server address.
	Port     int    // Port is the database server port.
	User     string // User is the database user.
	Password string // Password is the database user's password.
	Name     string // Name is the name of the database.
}

// RedisConfig configures the optional route cache. An empty Addr disables it.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// MustLoad reads the configuration from the environment, optionally seeded from a
// .env file, and panics on malformed or missing required values.
func MustLoad() *Config {
	if envFile, ok := os.LookupEnv("ROADBOOK_ENV_FILE"); ok {
		if err := godotenv.Load(envFile); err != nil {
			panic("failed to load env file " + envFile)
		}
	} else {
		_ = godotenv.Load()
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("ROADBOOK_ENV", "production")
	v.SetDefault("ROADBOOK_HEALTH_PORT", "8080")
	v.SetDefault("ROADBOOK_API_PORT", "8000")
	v.SetDefault("ROADBOOK_PROVIDER_TYPE", "osrm")
	v.SetDefault("ROADBOOK_PROVIDER_TIMEOUT", "10s")
	v.SetDefault("ROADBOOK_PROVIDER_RATE", "1")
	v.SetDefault("ROADBOOK_WORKERS", "4")
	v.SetDefault("ROADBOOK_MAP_PADDING", "50")
	v.SetDefault("ROADBOOK_MAP_MAX_ZOOM", "14")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("REDIS_DB", "0")

	if v.GetString("ROADBOOK_HOME_LAT") == "" || v.GetString("ROADBOOK_HOME_LNG") == "" {
		panic("ROADBOOK_HOME_LAT and ROADBOOK_HOME_LNG are required")
	}

	home := models.Coordinates{
		Latitude:  mustFloat(v, "ROADBOOK_HOME_LAT", "failed to parse home latitude from configuration"),
		Longitude: mustFloat(v, "ROADBOOK_HOME_LNG", "failed to parse home longitude from configuration"),
	}
	if !home.Valid() {
		panic("home coordinates are out of range")
	}

	timeout, err := time.ParseDuration(v.GetString("ROADBOOK_PROVIDER_TIMEOUT"))
	if err != nil || timeout <= 0 {
		panic("failed to parse provider timeout from configuration")
	}

	workers := mustInt(v, "ROADBOOK_WORKERS",
		"failed to parse workers from configuration, must be an integer types")
	if workers <= 0 {
		panic("workers must be a positive number")
	}

	return &Config{
		Env:        v.GetString("ROADBOOK_ENV"),
		HealthPort: mustInt(v, "ROADBOOK_HEALTH_PORT", "failed to parse port for monitoring server from configuration"),
		APIPort:    mustInt(v, "ROADBOOK_API_PORT", "failed to parse port for API server from configuration"),
		Provider: ProviderConfig{
			Type:      v.GetString("ROADBOOK_PROVIDER_TYPE"),
			APIKey:    v.GetString("ROADBOOK_PROVIDER_KEY"),
			URL:       v.GetString("ROADBOOK_PROVIDER_URL"),
			Timeout:   timeout,
			RateLimit: mustInt(v, "ROADBOOK_PROVIDER_RATE", "failed to parse provider rate limit from configuration"),
		},
		Home:    home,
		Workers: workers,
		Map: MapConfig{
			Padding: mustInt(v, "ROADBOOK_MAP_PADDING", "failed to parse map padding from configuration"),
			MaxZoom: mustFloat(v, "ROADBOOK_MAP_MAX_ZOOM", "failed to parse map max zoom from configuration"),
		},
		Database: PostgresConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     mustInt(v, "DB_PORT", "failed to parse database port from configuration"),
			User:     v.GetString("DB_USERNAME"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       mustInt(v, "REDIS_DB", "failed to parse redis db from configuration"),
		},
	}
}

func mustInt(v *viper.Viper, key, msg string) int {
	value, err := strconv.Atoi(v.GetString(key))
	if err != nil {
		panic(msg)
	}

	return value
}

func mustFloat(v *viper.Viper, key, msg string) float64 {
	value, err := strconv.ParseFloat(v.GetString(key), 64)
	if err != nil {
		panic(msg)
	}

	return value
}
