package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Database configuration
	DatabaseURL string

	// HTTP server configuration
	HTTPPort int

	// NATS configuration (empty disables outbound notifications)
	NATSURL string

	// Redis configuration (empty disables the ranking cache)
	RedisURL string

	// Token required by admin endpoints
	AdminToken string

	// Ranking cache TTL in seconds
	RankingCacheTTL int

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load loads configuration from environment variables
func load() (*Config, error) {
	// An absent .env file is fine; real environments set vars directly
	_ = godotenv.Load()

	config := &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		NATSURL:     os.Getenv("NATS_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),
		AdminToken:  os.Getenv("ADMIN_TOKEN"),

		// Defaults
		HTTPPort:        8080,
		RankingCacheTTL: 30,

		Environment: os.Getenv("ENVIRONMENT"),
	}

	// Override defaults if environment variables are set
	if port := os.Getenv("HTTP_PORT"); port != "" {
		parsedPort, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid HTTP_PORT %q: %w", port, err)
		}
		config.HTTPPort = parsedPort
	}
	if ttl := os.Getenv("RANKING_CACHE_TTL"); ttl != "" {
		if parsedTTL, err := strconv.Atoi(ttl); err == nil {
			config.RankingCacheTTL = parsedTTL
		}
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		// Validate required configuration
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
		if config.AdminToken == "" {
			return nil, fmt.Errorf("ADMIN_TOKEN is required")
		}
	}

	return config, nil
}
