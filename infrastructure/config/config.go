package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration. One Config is shared by
// the catalog, admin, and auth services; each reads the fields it
// needs.
type Config struct {
	// Server configuration
	CatalogAddress string
	AdminAddress   string
	AuthAddress    string
	Environment    string

	// Durable store
	DatabasePath string

	// Cache
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	CacheTTL       time.Duration
	CacheOpTimeout time.Duration

	// Authentication
	JWTSecret string
	JWTIssuer string
	TokenTTL  time.Duration

	// Media uploads
	MediaBackend string // "s3" or "local"
	AWSRegion    string
	S3Bucket     string
	S3Folder     string
	MediaDir     string
	MediaBaseURL string

	// Logging and features
	LogLevel   string
	EnableCORS bool
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		CatalogAddress: getEnv("CATALOG_ADDRESS", ":8000"),
		AdminAddress:   getEnv("ADMIN_ADDRESS", ":8001"),
		AuthAddress:    getEnv("AUTH_ADDRESS", ":8002"),
		Environment:    getEnv("ENVIRONMENT", "development"),

		DatabasePath: getEnv("DATABASE_PATH", "musicapp.db"),

		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisDB:        getEnvInt("REDIS_DB", 0),
		CacheTTL:       time.Duration(getEnvInt("CACHE_TTL_SECONDS", 1800)) * time.Second,
		CacheOpTimeout: time.Duration(getEnvInt("CACHE_OP_TIMEOUT_MS", 500)) * time.Millisecond,

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTIssuer: getEnv("JWT_ISSUER", "musicapp"),
		TokenTTL:  time.Duration(getEnvInt("TOKEN_TTL_HOURS", 24)) * time.Hour,

		MediaBackend: getEnv("MEDIA_BACKEND", "local"),
		AWSRegion:    getEnv("AWS_REGION", "us-east-1"),
		S3Bucket:     getEnv("S3_BUCKET", ""),
		S3Folder:     getEnv("S3_FOLDER", "uploads"),
		MediaDir:     getEnv("MEDIA_DIR", "media"),
		MediaBaseURL: getEnv("MEDIA_BASE_URL", "http://localhost:8001"),

		LogLevel:   getEnv("LOG_LEVEL", "info"),
		EnableCORS: getEnvBool("ENABLE_CORS", true),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if all required configuration is present.
func (c *Config) Validate() error {
	if c.Environment == "production" {
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required in production")
		}
		if c.MediaBackend == "s3" && c.S3Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required when MEDIA_BACKEND=s3")
		}
	}
	if c.MediaBackend != "s3" && c.MediaBackend != "local" {
		return fmt.Errorf("MEDIA_BACKEND must be s3 or local, got %q", c.MediaBackend)
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("CACHE_TTL_SECONDS must be positive")
	}
	return nil
}

// IsDevelopment checks if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value.
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
