package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// driverRequirements lists the settings each store driver cannot run without.
var driverRequirements = map[string][]string{
	DriverMongo:    {"MONGO_URI", "DB_NAME"},
	DriverPostgres: {"DB_HOST", "DB_PORT", "DB_USER", "DB_NAME", "DB_SSL_MODE"},
	DriverSQLite:   {"SQLITE_PATH"},
}

func (c *Config) value(key string) string {
	switch key {
	case "MONGO_URI":
		return c.MongoURI
	case "DB_NAME":
		return c.DBName
	case "DB_HOST":
		return c.DBHost
	case "DB_PORT":
		return c.DBPort
	case "DB_USER":
		return c.DBUser
	case "DB_SSL_MODE":
		return c.DBSSLMode
	case "SQLITE_PATH":
		return c.SQLitePath
	}
	return ""
}

// ValidateConfig checks that the configuration is complete for the selected store driver
func ValidateConfig(cfg *Config) error {
	var errs []string

	if cfg.ServerPort == "" {
		errs = append(errs, ValidationError{Field: "SERVER_PORT", Message: "is required"}.Error())
	}

	required, ok := driverRequirements[cfg.StoreDriver]
	if !ok {
		errs = append(errs, ValidationError{
			Field:   "STORE_DRIVER",
			Message: fmt.Sprintf("unknown driver %q (want mongo, postgres or sqlite)", cfg.StoreDriver),
		}.Error())
	}
	for _, key := range required {
		if cfg.value(key) == "" {
			errs = append(errs, ValidationError{Field: key, Message: "is required"}.Error())
		}
	}

	if cfg.StoreDriver == DriverPostgres && GetEnvironment() == Production && cfg.DBPassword == "" {
		errs = append(errs, "db_password secret is required")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errs, "\n"))
	}

	return nil
}
