package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ENV", "CI", "SECRETS_DIR",
		"SERVER_PORT", "SERVER_HOST",
		"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSL_MODE",
		"REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD", "REDIS_DB", "REDIS_URL",
	} {
		t.Setenv(key, "")
	}
}

func TestGetEnvironment(t *testing.T) {
	t.Run("defaults to development", func(t *testing.T) {
		clearEnv(t)
		assert.Equal(t, Development, GetEnvironment())
	})

	t.Run("CI flag wins over ENV", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("CI", "true")
		t.Setenv("ENV", "production")
		assert.Equal(t, CI, GetEnvironment())
	})

	t.Run("reads ENV", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ENV", "test")
		assert.Equal(t, Test, GetEnvironment())
		assert.True(t, IsTest())
		assert.False(t, IsProduction())
	})
}

func TestLoadConfig(t *testing.T) {
	t.Run("development uses local defaults", func(t *testing.T) {
		clearEnv(t)

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.ServerPort)
		assert.Equal(t, "localhost", cfg.DBHost)
		assert.Equal(t, "5432", cfg.DBPort)
		assert.Equal(t, "forkcast", cfg.DBName)
		assert.Equal(t, "disable", cfg.DBSSLMode)
		assert.Equal(t, "localhost", cfg.RedisHost)
		assert.Equal(t, "6379", cfg.RedisPort)
	})

	t.Run("environment variables override defaults", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("SERVER_PORT", "9090")
		t.Setenv("DB_NAME", "forkcast_test")
		t.Setenv("REDIS_DB", "3")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "9090", cfg.ServerPort)
		assert.Equal(t, "forkcast_test", cfg.DBName)
		assert.Equal(t, 3, cfg.RedisDB)
	})

	t.Run("CI requires a database password", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("CI", "true")

		_, err := LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database password is required")

		t.Setenv("DB_PASSWORD", "ci-password")
		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "ci-password", cfg.DBPassword)
	})

	t.Run("production reads Docker secrets", func(t *testing.T) {
		clearEnv(t)
		secretsDir := t.TempDir()
		writeSecret := func(name, value string) {
			require.NoError(t, os.WriteFile(filepath.Join(secretsDir, name), []byte(value+"\n"), 0o600))
		}
		writeSecret("db_user", "forkcast_prod")
		writeSecret("db_password", "super-secret")
		writeSecret("redis_password", "redis-secret")

		t.Setenv("ENV", "production")
		t.Setenv("SECRETS_DIR", secretsDir)
		t.Setenv("SERVER_PORT", "8080")
		t.Setenv("DB_HOST", "db.internal")
		t.Setenv("DB_PORT", "5432")
		t.Setenv("DB_NAME", "forkcast")
		t.Setenv("REDIS_HOST", "redis.internal")
		t.Setenv("REDIS_PORT", "6379")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "forkcast_prod", cfg.DBUser)
		assert.Equal(t, "super-secret", cfg.DBPassword)
		assert.Equal(t, "redis-secret", cfg.RedisPassword)
		assert.Equal(t, "db.internal", cfg.DBHost)
	})

	t.Run("secrets win over environment variables", func(t *testing.T) {
		clearEnv(t)
		secretsDir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(secretsDir, "db_host"), []byte("secret-db-host"), 0o600))
		require.NoError(t, os.WriteFile(filepath.Join(secretsDir, "db_password"), []byte("pw"), 0o600))
		require.NoError(t, os.WriteFile(filepath.Join(secretsDir, "db_user"), []byte("u"), 0o600))

		t.Setenv("ENV", "production")
		t.Setenv("SECRETS_DIR", secretsDir)
		t.Setenv("SERVER_PORT", "8080")
		t.Setenv("DB_HOST", "env-db-host")
		t.Setenv("DB_PORT", "5432")
		t.Setenv("DB_NAME", "forkcast")
		t.Setenv("REDIS_HOST", "redis")
		t.Setenv("REDIS_PORT", "6379")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "secret-db-host", cfg.DBHost)
	})
}

func TestValidateConfig(t *testing.T) {
	clearEnv(t)

	t.Run("accepts a complete config", func(t *testing.T) {
		cfg := &Config{
			ServerPort: "8080",
			DBHost:     "localhost", DBPort: "5432", DBName: "forkcast",
			RedisHost: "localhost", RedisPort: "6379",
		}
		assert.NoError(t, ValidateConfig(cfg))
	})

	t.Run("redis URL substitutes for host and port", func(t *testing.T) {
		cfg := &Config{
			ServerPort: "8080",
			DBHost:     "localhost", DBPort: "5432", DBName: "forkcast",
			RedisURL: "redis://localhost:6379/0",
		}
		assert.NoError(t, ValidateConfig(cfg))
	})

	t.Run("rejects a missing server port", func(t *testing.T) {
		cfg := &Config{
			DBHost: "localhost", DBPort: "5432", DBName: "forkcast",
			RedisHost: "localhost", RedisPort: "6379",
		}
		err := ValidateConfig(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "server port")
	})
}
