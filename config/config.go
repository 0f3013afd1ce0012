package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"
)

// Config holds every setting of stockledger. Values come from the
// environment, optionally seeded from a .env file by the entrypoints.
type Config struct {
	// General
	Port        string
	Environment string
	LogLevel    string

	// Store
	DBDriver    string // sqlite or postgres
	DBPath      string // sqlite store file
	DatabaseURL string // postgres DSN
	DBTimeout   time.Duration

	// Cache (Redis). Empty address disables caching and rate limiting.
	RedisAddr     string
	RedisPassword string
	CacheTTL      time.Duration

	// Auth. Empty admin credential leaves the API open.
	JWTSecretKey      string
	TokenExpiry       time.Duration
	AdminUsername     string
	AdminPasswordHash string

	// Rate limiting
	RateLimitMaxRequests int
	RateLimitPeriod      time.Duration

	// Files
	ExportDir    string
	BackupDir    string
	SettingsFile string
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// LoadConfig reads the configuration from the environment.
func LoadConfig() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		DBDriver:    getEnv("DB_DRIVER", DriverSQLite),
		DBPath:      getEnv("DB_PATH", "inventory.db"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		DBTimeout:   getDurationEnv("DB_TIMEOUT_SEC", 5) * time.Second,

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		CacheTTL:      getDurationEnv("CACHE_TTL_SEC", 300) * time.Second,

		JWTSecretKey:      getEnv("JWT_SECRET_KEY", ""),
		TokenExpiry:       getDurationEnv("JWT_EXPIRY_MIN", 60) * time.Minute,
		AdminUsername:     getEnv("ADMIN_USERNAME", ""),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),

		RateLimitMaxRequests: getIntEnv("RATE_LIMIT_MAX_REQUESTS", 100),
		RateLimitPeriod:      getDurationEnv("RATE_LIMIT_PERIOD_MIN", 1) * time.Minute,

		ExportDir:    getEnv("EXPORT_DIR", "exports"),
		BackupDir:    getEnv("BACKUP_DIR", "backups"),
		SettingsFile: getEnv("SETTINGS_FILE", "settings.yaml"),
	}
}

// Validate rejects combinations the entrypoints cannot start with.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverSQLite:
		if c.DBPath == "" {
			return fmt.Errorf("DB_PATH must be set for the sqlite driver")
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL must be set for the postgres driver")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}

	if c.AuthEnabled() && c.JWTSecretKey == "" {
		return fmt.Errorf("JWT_SECRET_KEY must be set when an admin credential is configured")
	}
	return nil
}

// AuthEnabled reports whether mutating API routes require a token.
func (c *Config) AuthEnabled() bool {
	return c.AdminUsername != "" && c.AdminPasswordHash != ""
}

// DSN returns the data source name for the configured driver.
func (c *Config) DSN() string {
	if c.DBDriver == DriverPostgres {
		return c.DatabaseURL
	}
	return c.DBPath
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getDurationEnv reads an integer variable as a time.Duration count; the
// caller multiplies by the unit.
func getDurationEnv(key string, defaultValue int) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return time.Duration(defaultValue)
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("warning: %s=%q is not an integer, using default %d", key, valueStr, defaultValue)
		return time.Duration(defaultValue)
	}
	return time.Duration(value)
}

func getIntEnv(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("warning: %s=%q is not an integer, using default %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
