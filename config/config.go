package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store drivers.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DefaultDBName is the database holding the recipes, cuisines and tags collections.
const DefaultDBName = "sctp_recipe_book"

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Store selection
	StoreDriver string

	// MongoDB configuration
	MongoURI string

	// Shared by MongoDB and PostgreSQL
	DBName string

	// PostgreSQL configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	// SQLite configuration
	SQLitePath string

	// Logging
	LogLevel  string
	LogFormat string

	// CORS
	CORSAllowedOrigins []string

	// Export target
	S3BucketName string
	AWSRegion    string
}

// Addr is the listen address of the HTTP server.
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{}

	switch env {
	case CI, Development, Test:
		loadEnvConfig(cfg)
	case Production:
		loadProdConfig(cfg)
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadEnvConfig reads plain environment variables, falling back to local defaults.
func loadEnvConfig(cfg *Config) {
	cfg.ServerPort = getEnv("SERVER_PORT", "3000")
	cfg.ServerHost = getEnv("SERVER_HOST", "")
	cfg.StoreDriver = strings.ToLower(getEnv("STORE_DRIVER", DriverMongo))
	cfg.MongoURI = getEnv("MONGO_URI", "mongodb://localhost:27017")
	cfg.DBName = getEnv("DB_NAME", DefaultDBName)
	cfg.DBHost = getEnv("DB_HOST", "localhost")
	cfg.DBPort = getEnv("DB_PORT", "5432")
	cfg.DBUser = getEnv("DB_USER", "postgres")
	cfg.DBPassword = getEnv("DB_PASSWORD", "")
	cfg.DBSSLMode = getEnv("DB_SSL_MODE", "disable")
	cfg.SQLitePath = getEnv("SQLITE_PATH", "recipes.db")
	cfg.LogLevel = getEnv("LOG_LEVEL", "debug")
	cfg.LogFormat = getEnv("LOG_FORMAT", "console")
	cfg.CORSAllowedOrigins = splitList(getEnv("CORS_ALLOWED_ORIGINS", ""))
	cfg.S3BucketName = getEnv("S3_BUCKET_NAME", "")
	cfg.AWSRegion = getEnv("AWS_REGION", "")
}

// loadProdConfig reads credentials from Docker secrets and the rest from the environment
func loadProdConfig(cfg *Config) {
	loadEnvConfig(cfg)
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("LOG_FORMAT", "json")

	if uri := readSecret("mongo_uri"); uri != "" {
		cfg.MongoURI = uri
	}
	if user := readSecret("db_user"); user != "" {
		cfg.DBUser = user
	}
	if password := readSecret("db_password"); password != "" {
		cfg.DBPassword = password
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
