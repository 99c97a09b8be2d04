package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Run("success defaults", func(t *testing.T) {
		t.Setenv("APP_ENV", "development")
		t.Setenv("JWT_SECRET", "")

		cfg, err := Load()

		assert.NoError(t, err)
		assert.Equal(t, "3000", cfg.Port)
		assert.Equal(t, 15*time.Minute, cfg.JWTAccessTTL)
		assert.Equal(t, 168*time.Hour, cfg.JWTRefreshTTL)
		assert.Equal(t, 3*time.Second, cfg.OutboxPollInterval)
		assert.Equal(t, 50, cfg.OutboxBatchSize)
		assert.Equal(t, 24, cfg.PayslipHistoryMax)
		assert.True(t, cfg.DBAutoMigrate)
	})

	t.Run("success env overrides", func(t *testing.T) {
		t.Setenv("PORT", "8080")
		t.Setenv("OUTBOX_BATCH_SIZE", "10")
		t.Setenv("APP_TIMEZONE", "Asia/Jakarta")

		cfg, err := Load()

		assert.NoError(t, err)
		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, 10, cfg.OutboxBatchSize)
		assert.Equal(t, "Asia/Jakarta", cfg.Location().String())
	})

	t.Run("negative production without secret", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		t.Setenv("JWT_SECRET", "")

		_, err := Load()
		assert.Error(t, err)
	})
}

func TestValidate_InvalidTimezone(t *testing.T) {
	cfg := Config{Timezone: "Mars/Olympus", PayslipHistoryMax: 24}
	assert.Error(t, cfg.Validate())
}

func TestNewLogger(t *testing.T) {
	for _, env := range []string{"development", "production"} {
		logger, err := NewLogger(Config{AppEnv: env})
		assert.NoError(t, err)
		assert.NotNil(t, logger)
	}
}
