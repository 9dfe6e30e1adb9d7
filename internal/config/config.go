// Package config provides application configuration management with support for environment variables, command-line flags, and .env files.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Supported token formats.
const (
	TokenFormatPASETO = "paseto"
	TokenFormatJWT    = "jwt"
)

// Config holds the application configuration.
type Config struct {
	App      AppConfig
	Logger   LoggerConfig
	Database DatabaseConfig
	Server   ServerConfig
	Auth     AuthConfig
	Cache    CacheConfig
	Metrics  MetricsConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
	// DataPath holds the SQLite database and the generated token key.
	DataPath string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// DatabaseConfig selects the storage backend.
type DatabaseConfig struct {
	Driver string // sqlite or postgres
	URL    string // PostgreSQL DSN, required for postgres
}

// ServerConfig holds server configuration.
type ServerConfig struct {
	Port          string
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	IdleTimeout   time.Duration
	AuthRateLimit int // requests per minute per IP on /auth routes
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	TokenFormat string
	// SecretKey signs HS256 tokens when TokenFormat is jwt.
	SecretKey string
	// AccessTokenKey is the PASETO v4 symmetric key (32 bytes), set by providers.
	AccessTokenKey      []byte
	AccessTokenDuration time.Duration
}

// CacheConfig configures the catalog lookup cache.
type CacheConfig struct {
	RedisURL string // empty disables caching
	TTL      time.Duration
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool
}

// LoadConfig loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func LoadConfig() (*Config, error) {
	env := flag.String("env", "", "Environment (development, staging, production)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	dataPath := flag.String("data-path", "", "Directory for the SQLite database and token key")
	dbDriver := flag.String("db-driver", "", "Storage driver (sqlite, postgres)")
	dbURL := flag.String("database-url", "", "PostgreSQL connection string")

	serverPort := flag.String("port", "", "Server port (default: 8080)")
	readTimeout := flag.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := flag.String("write-timeout", "", "HTTP write timeout (default: 15s)")
	idleTimeout := flag.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")

	tokenFormat := flag.String("token-format", "", "Access token format (paseto, jwt)")
	accessTokenDuration := flag.String("access-token-duration", "", "Access token lifetime (e.g., 60m)")

	redisURL := flag.String("redis-url", "", "Redis URL for the catalog cache")
	envFile := flag.String("env-file", ".env", "Path to .env file")

	flag.Parse()

	// godotenv.Load never overrides variables already present in the environment.
	_ = godotenv.Load(*envFile)

	return Load(Flags{
		Env:                 *env,
		LogLevel:            *logLevel,
		DataPath:            *dataPath,
		DBDriver:            *dbDriver,
		DatabaseURL:         *dbURL,
		Port:                *serverPort,
		ReadTimeout:         *readTimeout,
		WriteTimeout:        *writeTimeout,
		IdleTimeout:         *idleTimeout,
		TokenFormat:         *tokenFormat,
		AccessTokenDuration: *accessTokenDuration,
		RedisURL:            *redisURL,
	})
}

// Flags carries raw flag values. Empty strings fall through to the environment.
type Flags struct {
	Env                 string
	LogLevel            string
	DataPath            string
	DBDriver            string
	DatabaseURL         string
	Port                string
	ReadTimeout         string
	WriteTimeout        string
	IdleTimeout         string
	TokenFormat         string
	AccessTokenDuration string
	RedisURL            string
}

// Load builds a Config from explicit flag values, the environment and defaults.
// It is used by LoadConfig and by the cocktailctl command which owns its own flags.
func Load(f Flags) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(f.Env, "ENV", "development"),
			DataPath:    getConfigValue(f.DataPath, "DATA_PATH", ""),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(f.LogLevel, "LOG_LEVEL", "info"),
		},
		Database: DatabaseConfig{
			Driver: strings.ToLower(getConfigValue(f.DBDriver, "DB_DRIVER", DriverSQLite)),
			URL:    getConfigValue(f.DatabaseURL, "DATABASE_URL", ""),
		},
		Server: ServerConfig{
			Port:          getConfigValue(f.Port, "SERVER_PORT", "8080"),
			AuthRateLimit: getIntConfigValue("", "AUTH_RATE_LIMIT", 20),
		},
		Auth: AuthConfig{
			TokenFormat: strings.ToLower(getConfigValue(f.TokenFormat, "TOKEN_FORMAT", TokenFormatPASETO)),
			SecretKey:   getConfigValue("", "SECRET_KEY", ""),
		},
		Cache: CacheConfig{
			RedisURL: getConfigValue(f.RedisURL, "REDIS_URL", ""),
		},
		Metrics: MetricsConfig{
			Enabled: getBoolConfigValue("", "METRICS_ENABLED", true),
		},
	}

	durations := []struct {
		flagValue string
		envKey    string
		def       string
		dst       *time.Duration
	}{
		{f.AccessTokenDuration, "ACCESS_TOKEN_DURATION", "60m", &cfg.Auth.AccessTokenDuration},
		{f.ReadTimeout, "SERVER_READ_TIMEOUT", "15s", &cfg.Server.ReadTimeout},
		{f.WriteTimeout, "SERVER_WRITE_TIMEOUT", "15s", &cfg.Server.WriteTimeout},
		{f.IdleTimeout, "SERVER_IDLE_TIMEOUT", "60s", &cfg.Server.IdleTimeout},
		{"", "CACHE_TTL", "10m", &cfg.Cache.TTL},
	}
	for _, d := range durations {
		raw := getConfigValue(d.flagValue, d.envKey, d.def)
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", strings.ToLower(d.envKey), raw, err)
		}
		*d.dst = parsed
	}

	if err := cfg.expandDataPath(); err != nil {
		return nil, fmt.Errorf("invalid data path: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	if c.App.Environment == "" {
		return errors.New("ENV is required")
	}

	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	switch c.Database.Driver {
	case DriverSQLite:
		if c.App.DataPath == "" {
			return errors.New("data path cannot be empty when using sqlite")
		}
	case DriverPostgres:
		if c.Database.URL == "" {
			return errors.New("DATABASE_URL is required when DB_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("invalid database driver: %s (must be sqlite or postgres)", c.Database.Driver)
	}

	switch c.Auth.TokenFormat {
	case TokenFormatPASETO:
	case TokenFormatJWT:
		if c.Auth.SecretKey == "" {
			return errors.New("SECRET_KEY is required when TOKEN_FORMAT=jwt")
		}
	default:
		return fmt.Errorf("invalid token format: %s (must be paseto or jwt)", c.Auth.TokenFormat)
	}

	if c.Auth.AccessTokenDuration <= 0 {
		return errors.New("access token duration must be positive")
	}

	return nil
}

// SQLitePath returns the database file location under the data path.
func (c *Config) SQLitePath() string {
	return filepath.Join(c.App.DataPath, "cocktails.db")
}

// expandPath expands ~ and makes the path absolute.
// If path is empty, defaultPath is returned as is.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}

	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// expandDataPath defaults the data path to ~/Cocktails.
func (c *Config) expandDataPath() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	expanded, err := expandPath(c.App.DataPath, filepath.Join(homeDir, "Cocktails"))
	if err != nil {
		return err
	}
	c.App.DataPath = expanded
	return nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}

// getBoolConfigValue accepts "true", "1", "yes" (case-insensitive) as true.
func getBoolConfigValue(flagValue, envKey string, defaultValue bool) bool {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	strValue = strings.ToLower(strValue)
	return strValue == "true" || strValue == "1" || strValue == "yes"
}

// getIntConfigValue returns an int from flag, env var, or default.
func getIntConfigValue(flagValue, envKey string, defaultValue int) int {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	result, err := strconv.Atoi(strValue)
	if err != nil {
		return defaultValue
	}
	return result
}
