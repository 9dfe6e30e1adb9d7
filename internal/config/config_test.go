package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App:      AppConfig{Environment: "development", DataPath: "/some/path"},
		Logger:   LoggerConfig{Level: "info"},
		Database: DatabaseConfig{Driver: DriverSQLite},
		Auth: AuthConfig{
			TokenFormat:         TokenFormatPASETO,
			AccessTokenDuration: time.Hour,
		},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_AllEnvironments(t *testing.T) {
	tests := []struct {
		env   string
		valid bool
	}{
		{"development", true},
		{"staging", true},
		{"production", true},
		{"test", false},
		{"", false},
		{"DEVELOPMENT", false},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := validConfig()
			cfg.App.Environment = tt.env

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_AllLogLevels(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"debug", true},
		{"info", true},
		{"warn", true},
		{"error", true},
		{"INFO", true},
		{"trace", false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := validConfig()
			cfg.Logger.Level = tt.level

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_PostgresRequiresURL(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Driver = DriverPostgres

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")

	cfg.Database.URL = "postgres://localhost/cocktails?sslmode=disable"
	assert.NoError(t, cfg.Validate())
}

func TestValidate_UnknownDriver(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Driver = "mysql"
	assert.Error(t, cfg.Validate())
}

func TestValidate_JWTRequiresSecret(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.TokenFormat = TokenFormatJWT

	require.Error(t, cfg.Validate())

	cfg.Auth.SecretKey = "sssecretkey"
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EnvironmentAndFlagPrecedence(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ENV", "staging")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DATA_PATH", dir)
	t.Setenv("ACCESS_TOKEN_DURATION", "5m")
	t.Setenv("AUTH_RATE_LIMIT", "7")

	cfg, err := Load(Flags{LogLevel: "warn"})
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.App.Environment)
	assert.Equal(t, "warn", cfg.Logger.Level, "flag wins over environment")
	assert.Equal(t, dir, cfg.App.DataPath)
	assert.Equal(t, 5*time.Minute, cfg.Auth.AccessTokenDuration)
	assert.Equal(t, 7, cfg.Server.AuthRateLimit)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, filepath.Join(dir, "cocktails.db"), cfg.SQLitePath())
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("DATA_PATH", t.TempDir())
	t.Setenv("ACCESS_TOKEN_DURATION", "soon")

	_, err := Load(Flags{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access_token_duration")
}

func TestDotEnvDoesNotOverrideEnvironment(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("COCKTAIL_TEST_A=from-file\nCOCKTAIL_TEST_B=from-file\n"), 0o600))

	t.Setenv("COCKTAIL_TEST_A", "from-env")
	t.Setenv("COCKTAIL_TEST_B", "")
	require.NoError(t, os.Unsetenv("COCKTAIL_TEST_B"))

	require.NoError(t, godotenv.Load(envPath))

	assert.Equal(t, "from-env", os.Getenv("COCKTAIL_TEST_A"))
	assert.Equal(t, "from-file", os.Getenv("COCKTAIL_TEST_B"))
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := expandPath("~/bar", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "bar"), got)

	got, err = expandPath("", "/default")
	require.NoError(t, err)
	assert.Equal(t, "/default", got)
}
