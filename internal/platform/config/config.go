// Package config loads the application configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds every runtime setting for the server and the import tool.
type Config struct {
	Server struct {
		Port string `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		// Host selects the backend: when set, connect to MySQL.
		// When empty, fall back to a local SQLite file.
		Host          string `envconfig:"DB_HOST"`
		Port          string `envconfig:"DB_PORT" default:"3306"`
		User          string `envconfig:"DB_USER"`
		Password      string `envconfig:"DB_PASSWORD"`
		Name          string `envconfig:"DB_NAME" default:"stock_analysis"`
		SQLitePath    string `envconfig:"SQLITE_PATH" default:"stock_analysis.db"`
		RunMigrations bool   `envconfig:"RUN_MIGRATIONS" default:"true"`
	}

	Redis struct {
		Host     string        `envconfig:"REDIS_HOST"`
		Port     string        `envconfig:"REDIS_PORT" default:"6379"`
		Password string        `envconfig:"REDIS_PASSWORD"`
		CacheTTL time.Duration `envconfig:"CACHE_TTL" default:"5m"`
	}

	JWT struct {
		Secret     string        `envconfig:"JWT_SECRET"`
		Expiration time.Duration `envconfig:"JWT_EXPIRATION" default:"24h"`
	}
}

// validate checks settings that envconfig tags cannot express.
func validate(cfg *Config) error {
	if cfg.Redis.CacheTTL < 0 {
		return fmt.Errorf("CACHE_TTL must not be negative")
	}
	if cfg.JWT.Expiration <= 0 {
		return fmt.Errorf("JWT_EXPIRATION must be positive")
	}
	if cfg.DB.Host != "" && (cfg.DB.User == "" || cfg.DB.Name == "") {
		return fmt.Errorf("DB_USER and DB_NAME are required when DB_HOST is set")
	}
	return nil
}

// Load reads the optional .env file, then the environment, into a Config.
func Load() (*Config, error) {
	// .env is a development convenience, its absence is not an error
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}
