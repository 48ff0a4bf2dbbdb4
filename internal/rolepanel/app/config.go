package app

import (
	"os"
	"strconv"
	"time"
)

// Database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	TokenIssuer     string // Optional: expected iss claim of bearer tokens (default: rolepanel)
	TokenSecretFile string // Optional: file holding the HS256 secret; empty generates an ephemeral one

	DatabaseDriver  string // Optional: sqlite or postgres (default: sqlite)
	DatabaseFile    string // Optional: SQLite database file (default: ./rolepanel.db)
	DatabaseURL     string // Required for postgres: connection string
	PermissionsFile string // Optional: YAML permission catalog; empty uses the built in one

	NatsURL      string // Optional: NATS endpoint for audit events; empty disables publication
	AuditSubject string // Optional: subject prefix for audit events (default: rolepanel.audit)

	ImportMaxBytes      int64         // Optional: upload cap for spreadsheet imports (default: 10 MiB)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		TokenIssuer:         getEnvOrDefault("TOKEN_ISSUER", "rolepanel"),
		TokenSecretFile:     os.Getenv("TOKEN_SECRET_FILE"),
		DatabaseDriver:      getEnvOrDefault("DATABASE_DRIVER", DriverSQLite),
		DatabaseFile:        getEnvOrDefault("DATABASE_FILE", "rolepanel.db"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		PermissionsFile:     os.Getenv("PERMISSIONS_FILE"),
		NatsURL:             os.Getenv("NATS_URL"),
		AuditSubject:        getEnvOrDefault("AUDIT_SUBJECT", "rolepanel.audit"),
		ImportMaxBytes:      int64(getEnvIntOrDefault("IMPORT_MAX_BYTES", 10<<20)),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are seconds
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
