package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"MEDISTORE_APP_NAME":          os.Getenv("MEDISTORE_APP_NAME"),
		"MEDISTORE_APP_ENV":           os.Getenv("MEDISTORE_APP_ENV"),
		"MEDISTORE_APP_PORT":          os.Getenv("MEDISTORE_APP_PORT"),
		"MEDISTORE_DATABASE_HOST":     os.Getenv("MEDISTORE_DATABASE_HOST"),
		"MEDISTORE_DATABASE_PORT":     os.Getenv("MEDISTORE_DATABASE_PORT"),
		"MEDISTORE_DATABASE_PASSWORD": os.Getenv("MEDISTORE_DATABASE_PASSWORD"),
		"MEDISTORE_JWT_SECRET":        os.Getenv("MEDISTORE_JWT_SECRET"),
		"MEDISTORE_STORAGE_BUCKET":    os.Getenv("MEDISTORE_STORAGE_BUCKET"),
		"MEDISTORE_EMAIL_HOST":        os.Getenv("MEDISTORE_EMAIL_HOST"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "medistore-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "medistore", cfg.Database.DBName)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, "prescriptions", cfg.Storage.Bucket)
		assert.Equal(t, 587, cfg.Email.Port)
		assert.False(t, cfg.Email.Enabled)
	})

	t.Run("loads values from environment variables with MEDISTORE prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("MEDISTORE_APP_NAME", "test-app")
		os.Setenv("MEDISTORE_APP_PORT", "9000")
		os.Setenv("MEDISTORE_DATABASE_HOST", "testdb.local")
		os.Setenv("MEDISTORE_DATABASE_PORT", "5433")
		os.Setenv("MEDISTORE_STORAGE_BUCKET", "rx-files")
		os.Setenv("MEDISTORE_EMAIL_HOST", "smtp.test.local")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "rx-files", cfg.Storage.Bucket)
		assert.Equal(t, "smtp.test.local", cfg.Email.Host)
	})

	t.Run("production requires jwt secret", func(t *testing.T) {
		clearEnv()
		os.Setenv("MEDISTORE_APP_ENV", "production")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret")
	})
}

func TestDatabaseDSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "p@ss/word",
		DBName:   "medistore",
		SSLMode:  "disable",
	}

	dsn := d.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "localhost:5432")
	assert.Contains(t, dsn, "sslmode=disable")
	// special characters in the password must be escaped
	assert.NotContains(t, dsn, "p@ss/word")
}
