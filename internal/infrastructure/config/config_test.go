package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"CARTSYNC_APP_NAME":                  os.Getenv("CARTSYNC_APP_NAME"),
		"CARTSYNC_APP_ENV":                   os.Getenv("CARTSYNC_APP_ENV"),
		"CARTSYNC_APP_PORT":                  os.Getenv("CARTSYNC_APP_PORT"),
		"CARTSYNC_LOG_LEVEL":                 os.Getenv("CARTSYNC_LOG_LEVEL"),
		"CARTSYNC_LOG_FORMAT":                os.Getenv("CARTSYNC_LOG_FORMAT"),
		"CARTSYNC_ORDERDESK_CREDENTIALS":     os.Getenv("CARTSYNC_ORDERDESK_CREDENTIALS"),
		"CARTSYNC_ORDERDESK_STORE_ID":        os.Getenv("CARTSYNC_ORDERDESK_STORE_ID"),
		"CARTSYNC_ORDERDESK_API_KEY":         os.Getenv("CARTSYNC_ORDERDESK_API_KEY"),
		"CARTSYNC_ORDERDESK_API_BASE_URL":    os.Getenv("CARTSYNC_ORDERDESK_API_BASE_URL"),
		"CARTSYNC_ORDERDESK_TIMEOUT_SECONDS": os.Getenv("CARTSYNC_ORDERDESK_TIMEOUT_SECONDS"),
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

	setCredentials := func() {
		os.Setenv("CARTSYNC_ORDERDESK_STORE_ID", "12345")
		os.Setenv("CARTSYNC_ORDERDESK_API_KEY", "testkey")
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()
		setCredentials()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "cartsync", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "console", cfg.Log.Format)
		assert.Equal(t, "stdout", cfg.Log.Output)
		assert.Equal(t, 15*time.Second, cfg.HTTP.ReadTimeout)
		assert.Equal(t, 30*time.Second, cfg.HTTP.WriteTimeout)
		assert.Equal(t, 60*time.Second, cfg.HTTP.IdleTimeout)
		assert.Equal(t, 1<<20, cfg.HTTP.MaxHeaderBytes)
		assert.Equal(t, 30, cfg.OrderDesk.TimeoutSeconds)
	})

	t.Run("loads values from environment variables with CARTSYNC prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("CARTSYNC_APP_NAME", "test-app")
		os.Setenv("CARTSYNC_APP_ENV", "staging")
		os.Setenv("CARTSYNC_APP_PORT", "9000")
		os.Setenv("CARTSYNC_LOG_LEVEL", "debug")
		os.Setenv("CARTSYNC_ORDERDESK_STORE_ID", "98765")
		os.Setenv("CARTSYNC_ORDERDESK_API_KEY", "envkey")
		os.Setenv("CARTSYNC_ORDERDESK_API_BASE_URL", "http://localhost:9999")
		os.Setenv("CARTSYNC_ORDERDESK_TIMEOUT_SECONDS", "5")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "staging", cfg.App.Env)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, "98765", cfg.OrderDesk.StoreID)
		assert.Equal(t, "envkey", cfg.OrderDesk.APIKey)
		assert.Equal(t, "http://localhost:9999", cfg.OrderDesk.APIBaseURL)
		assert.Equal(t, 5, cfg.OrderDesk.TimeoutSeconds)
	})

	t.Run("accepts combined credentials string", func(t *testing.T) {
		clearEnv()
		os.Setenv("CARTSYNC_ORDERDESK_CREDENTIALS", "Store ID 12345 API Key abc123")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "Store ID 12345 API Key abc123", cfg.OrderDesk.Credentials)
	})

	t.Run("json log format defaults in production", func(t *testing.T) {
		clearEnv()
		setCredentials()
		os.Setenv("CARTSYNC_APP_ENV", "production")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "json", cfg.Log.Format)
	})

	t.Run("fails without any credentials", func(t *testing.T) {
		clearEnv()

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "orderdesk credentials missing")
	})

	t.Run("fails with only a store id", func(t *testing.T) {
		clearEnv()
		os.Setenv("CARTSYNC_ORDERDESK_STORE_ID", "12345")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "orderdesk credentials missing")
	})

	t.Run("rejects unknown environment", func(t *testing.T) {
		clearEnv()
		setCredentials()
		os.Setenv("CARTSYNC_APP_ENV", "qa")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid app.env")
	})
}
