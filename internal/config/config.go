// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Environment represents the deployment environment
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"
)

// Config holds all application configuration
type Config struct {
	// Environment
	Env      Environment `envconfig:"ENV" default:"development"`
	LogLevel string      `envconfig:"LOG_LEVEL" default:"info"`

	// Application
	App AppConfig

	// Server
	Server ServerConfig

	// Browser
	Browser BrowserConfig

	// Engine
	Engine EngineConfig

	// Rate limits
	RateLimit RateLimitConfig
}

// AppConfig holds application metadata
type AppConfig struct {
	Name    string `envconfig:"APP_NAME" default:"applyforge-engine"`
	Version string `envconfig:"APP_VERSION" default:"1.0.0"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host            string        `envconfig:"SERVER_HOST" default:"127.0.0.1"`
	Port            int           `envconfig:"SERVER_PORT" default:"8733"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"30s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`
	EnableCORS      bool          `envconfig:"SERVER_ENABLE_CORS" default:"true"`
}

// Addr returns the listen address
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// BrowserConfig holds playwright settings
type BrowserConfig struct {
	Headless          bool          `envconfig:"BROWSER_HEADLESS" default:"true"`
	NavigationTimeout time.Duration `envconfig:"BROWSER_NAVIGATION_TIMEOUT" default:"30s"`
	MaxSessions       int           `envconfig:"BROWSER_MAX_SESSIONS" default:"8"`
	SessionTTL        time.Duration `envconfig:"BROWSER_SESSION_TTL" default:"15m"`
}

// EngineConfig holds matching-engine settings
type EngineConfig struct {
	// MinConfidence is the score below which a field match is discarded.
	// A tunable heuristic, not a derived value.
	MinConfidence int `envconfig:"ENGINE_MIN_CONFIDENCE" default:"40"`
}

// RateLimitConfig holds API rate-limit settings
type RateLimitConfig struct {
	RequestsPerMinute int `envconfig:"RATE_LIMIT_RPM" default:"300"`
}

// Load reads configuration from a .env file (if present) and the environment
func Load() (*Config, error) {
	godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("processing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// Validate checks the configuration for impossible values
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Engine.MinConfidence < 0 || c.Engine.MinConfidence > 100 {
		return fmt.Errorf("engine min confidence must be within [0,100], got %d", c.Engine.MinConfidence)
	}
	if c.Browser.MaxSessions <= 0 {
		return fmt.Errorf("browser max sessions must be positive, got %d", c.Browser.MaxSessions)
	}
	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}
