package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DEV_ADMIN_BYPASS", "")
	t.Setenv("STORAGE_DRIVER", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.NotificationPollInterval)
	assert.Equal(t, 3000*time.Millisecond, cfg.ToastDuration)
	assert.True(t, cfg.DevAdminBypass)
	assert.Equal(t, "local", cfg.Storage.Driver)
}

func TestLoad_ProdRejectsDevBypass(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "a-real-secret")
	t.Setenv("DEV_ADMIN_BYPASS", "true")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DEV_ADMIN_BYPASS")
}

func TestLoad_ProdDisablesBypassByDefault(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "a-real-secret")
	t.Setenv("DEV_ADMIN_BYPASS", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.DevAdminBypass)
}

func TestLoad_ProdRequiresSecret(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DEV_ADMIN_BYPASS", "false")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestValidate_S3NeedsBucket(t *testing.T) {
	cfg := &Config{
		AppEnv:                   "dev",
		SessionTTL:               time.Hour,
		NotificationPollInterval: time.Second,
		ToastDuration:            time.Second,
		Storage:                  StorageConfig{Driver: "s3"},
	}
	assert.Error(t, Validate(cfg))

	cfg.Storage.S3Bucket = "ink"
	cfg.Storage.S3Region = "us-east-1"
	assert.NoError(t, Validate(cfg))
}
