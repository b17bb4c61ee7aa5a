package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	SessionBackendRedis    = "redis"
	SessionBackendDatabase = "database"
)

type Config struct {
	// Environment
	GoEnv string `env:"GO_ENV" default:"development"`

	// HTTP
	HTTPHost string `env:"HTTP_HOST" default:"127.0.0.1"`
	HTTPPort int    `env:"HTTP_PORT" default:"8080"`

	// Database
	DatabaseDriver string `env:"DATABASE_DRIVER" default:"sqlite"`
	DatabaseURL    string `env:"DATABASE_URL" default:"file:artshare.db?_foreign_keys=on"`

	// Sessions
	SessionBackend string        `env:"SESSION_BACKEND" default:"database"`
	SessionSecret  string        `env:"SESSION_SECRET" required:"true"`
	SessionTTL     time.Duration `env:"SESSION_TTL" default:"24h"`
	CookieSecure   bool          `env:"COOKIE_SECURE" default:"false"`

	// Redis (session backend)
	RedisURL      string `env:"REDIS_URL" default:"redis://localhost:6379/0"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	// File Storage
	UploadDir      string `env:"UPLOAD_DIR" default:"./data/uploads"`
	UploadMaxBytes int64  `env:"UPLOAD_MAX_BYTES" default:"16777216"`

	// Presentation
	TemplateDir   string `env:"TEMPLATE_DIR" default:"./web/templates"`
	StaticDir     string `env:"STATIC_DIR" default:"./web/static"`
	FeaturedCount int    `env:"FEATURED_COUNT" default:"3"`

	// Abuse protection
	AuthRatePerMinute int `env:"AUTH_RATE_PER_MINUTE" default:"20"`
	AuthRateBurst     int `env:"AUTH_RATE_BURST" default:"5"`

	// Development
	LogLevel    string   `env:"LOG_LEVEL" default:"info"`
	LogFormat   string   `env:"LOG_FORMAT" default:"text"`
	CORSOrigins []string `env:"CORS_ORIGINS" default:"http://localhost:8080"`

	// Bootstrap admin, created on startup when all three are set
	AdminUsername string `env:"ADMIN_USERNAME"`
	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// A missing .env is fine, system env vars still apply.
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}

	config := &Config{}

	loadEnvString(&config.GoEnv, "GO_ENV", "development")

	// HTTP
	loadEnvString(&config.HTTPHost, "HTTP_HOST", "127.0.0.1")
	if err := loadEnvInt(&config.HTTPPort, "HTTP_PORT", 8080); err != nil {
		return nil, err
	}

	// Database
	loadEnvString(&config.DatabaseDriver, "DATABASE_DRIVER", DriverSQLite)
	loadEnvString(&config.DatabaseURL, "DATABASE_URL", "file:artshare.db?_foreign_keys=on")

	// Sessions
	loadEnvString(&config.SessionBackend, "SESSION_BACKEND", SessionBackendDatabase)
	if err := loadEnvStringRequired(&config.SessionSecret, "SESSION_SECRET"); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&config.SessionTTL, "SESSION_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if err := loadEnvBool(&config.CookieSecure, "COOKIE_SECURE", false); err != nil {
		return nil, err
	}

	// Redis
	loadEnvString(&config.RedisURL, "REDIS_URL", "redis://localhost:6379/0")
	loadEnvString(&config.RedisPassword, "REDIS_PASSWORD", "")

	// File Storage
	loadEnvString(&config.UploadDir, "UPLOAD_DIR", "./data/uploads")
	if err := loadEnvInt64(&config.UploadMaxBytes, "UPLOAD_MAX_BYTES", 16<<20); err != nil {
		return nil, err
	}

	// Presentation
	loadEnvString(&config.TemplateDir, "TEMPLATE_DIR", "./web/templates")
	loadEnvString(&config.StaticDir, "STATIC_DIR", "./web/static")
	if err := loadEnvInt(&config.FeaturedCount, "FEATURED_COUNT", 3); err != nil {
		return nil, err
	}

	// Abuse protection
	if err := loadEnvInt(&config.AuthRatePerMinute, "AUTH_RATE_PER_MINUTE", 20); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&config.AuthRateBurst, "AUTH_RATE_BURST", 5); err != nil {
		return nil, err
	}

	// Development
	loadEnvString(&config.LogLevel, "LOG_LEVEL", "info")
	loadEnvString(&config.LogFormat, "LOG_FORMAT", "text")
	loadEnvStringSlice(&config.CORSOrigins, "CORS_ORIGINS", []string{"http://localhost:8080"})

	// Bootstrap admin
	loadEnvString(&config.AdminUsername, "ADMIN_USERNAME", "")
	loadEnvString(&config.AdminEmail, "ADMIN_EMAIL", "")
	loadEnvString(&config.AdminPassword, "ADMIN_PASSWORD", "")

	return config, nil
}

// Helper functions for type conversion and validation
func loadEnvString(target *string, key, defaultValue string) {
	if value := os.Getenv(key); value != "" {
		*target = value
	} else {
		*target = defaultValue
	}
}

func loadEnvStringRequired(target *string, key string) error {
	value := os.Getenv(key)
	if value == "" {
		return fmt.Errorf("required environment variable %s is not set", key)
	}
	*target = value
	return nil
}

func loadEnvInt(target *int, key string, defaultValue int) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value for %s: %w", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvInt64(target *int64, key string, defaultValue int64) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer value for %s: %w", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvBool(target *bool, key string, defaultValue bool) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean value for %s: %w", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvDuration(target *time.Duration, key string, defaultValue time.Duration) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration value for %s: %w", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvStringSlice(target *[]string, key string, defaultValue []string) {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, v := range parts {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
		*target = out
	} else {
		*target = defaultValue
	}
}

// Validate performs validation on the loaded configuration
func (c *Config) Validate() error {
	var errors []string

	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		errors = append(errors, "HTTP_PORT must be between 1 and 65535")
	}

	if !contains([]string{DriverPostgres, DriverSQLite}, c.DatabaseDriver) {
		errors = append(errors, "DATABASE_DRIVER must be one of: postgres, sqlite")
	}
	if c.DatabaseURL == "" {
		errors = append(errors, "DATABASE_URL must not be empty")
	}

	if !contains([]string{SessionBackendRedis, SessionBackendDatabase}, c.SessionBackend) {
		errors = append(errors, "SESSION_BACKEND must be one of: redis, database")
	}
	// HS256 key, keep it at least as long as the digest
	if len(c.SessionSecret) < 32 {
		errors = append(errors, "SESSION_SECRET should be at least 32 characters long")
	}
	if c.SessionTTL <= 0 {
		errors = append(errors, "SESSION_TTL must be positive")
	}

	if c.UploadDir == "" {
		errors = append(errors, "UPLOAD_DIR must not be empty")
	}
	if c.UploadMaxBytes <= 0 {
		errors = append(errors, "UPLOAD_MAX_BYTES must be positive")
	}
	if c.FeaturedCount < 1 {
		errors = append(errors, "FEATURED_COUNT must be at least 1")
	}
	if c.AuthRatePerMinute < 1 || c.AuthRateBurst < 1 {
		errors = append(errors, "AUTH_RATE_PER_MINUTE and AUTH_RATE_BURST must be at least 1")
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, c.LogLevel) {
		errors = append(errors, fmt.Sprintf("LOG_LEVEL must be one of: %s", strings.Join(validLogLevels, ", ")))
	}

	validLogFormats := []string{"text", "json"}
	if !contains(validLogFormats, c.LogFormat) {
		errors = append(errors, fmt.Sprintf("LOG_FORMAT must be one of: %s", strings.Join(validLogFormats, ", ")))
	}

	if c.HasBootstrapAdmin() && len(c.AdminPassword) < 8 {
		errors = append(errors, "ADMIN_PASSWORD should be at least 8 characters long")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errors, "; "))
	}

	return nil
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GoEnv == "development"
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

// HasBootstrapAdmin reports whether an admin account should be ensured at startup.
func (c *Config) HasBootstrapAdmin() bool {
	return c.AdminUsername != "" && c.AdminEmail != "" && c.AdminPassword != ""
}

// HTTPAddr is the listen address for the web server.
func (c *Config) HTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.HTTPHost, c.HTTPPort)
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
