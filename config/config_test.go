package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", DriverSQLite)

	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "inventory.db", cfg.DSN())
	assert.Equal(t, 5*time.Second, cfg.DBTimeout)
	assert.Equal(t, time.Minute, cfg.RateLimitPeriod)
	assert.False(t, cfg.AuthEnabled())
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", DriverPostgres)
	t.Setenv("DATABASE_URL", "postgres://localhost/stock?sslmode=disable")
	t.Setenv("DB_TIMEOUT_SEC", "2")
	t.Setenv("RATE_LIMIT_MAX_REQUESTS", "not-a-number")

	cfg := LoadConfig()

	assert.Equal(t, "postgres://localhost/stock?sslmode=disable", cfg.DSN())
	assert.Equal(t, 2*time.Second, cfg.DBTimeout)
	assert.Equal(t, 100, cfg.RateLimitMaxRequests)
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	t.Run("unknown driver", func(t *testing.T) {
		cfg := &Config{DBDriver: "mysql"}
		assert.ErrorContains(t, cfg.Validate(), "unsupported DB_DRIVER")
	})

	t.Run("postgres without url", func(t *testing.T) {
		cfg := &Config{DBDriver: DriverPostgres}
		assert.ErrorContains(t, cfg.Validate(), "DATABASE_URL")
	})

	t.Run("admin without secret", func(t *testing.T) {
		cfg := &Config{DBDriver: DriverSQLite, DBPath: "x.db", AdminUsername: "admin", AdminPasswordHash: "$2a$10$abc"}
		assert.ErrorContains(t, cfg.Validate(), "JWT_SECRET_KEY")
	})
}
