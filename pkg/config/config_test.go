package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "123:abc", cfg.Telegram.BotToken)
	assert.Zero(t, cfg.Telegram.AdminChatID)
	assert.Equal(t, ":3000", cfg.Server.Addr())
	assert.Equal(t, "http://localhost:3000", cfg.Server.BaseURL)
	assert.Equal(t, "https://example.com", cfg.Server.ResourceBaseURL)
	assert.Equal(t, 10*time.Second, cfg.Saleor.Timeout)
	assert.Equal(t, 20, cfg.Saleor.ProductLimit)
	assert.False(t, cfg.Saleor.Enabled())
	assert.False(t, cfg.Redis.Enabled())
	assert.True(t, cfg.App.IsDev())
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("ADMIN_CHAT_ID", "-1001234")
	t.Setenv("PORT", "8081")
	t.Setenv("SALEOR_API_URL", "https://shop.example.com/graphql/")
	t.Setenv("SALEOR_TIMEOUT", "3s")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("CATALOG_SNAPSHOT_TTL", "1h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, int64(-1001234), cfg.Telegram.AdminChatID)
	assert.Equal(t, ":8081", cfg.Server.Addr())
	assert.True(t, cfg.Saleor.Enabled())
	assert.Equal(t, 3*time.Second, cfg.Saleor.Timeout)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, time.Hour, cfg.Redis.SnapshotTTL)
}

func TestLoad_MissingToken(t *testing.T) {
	clearEnv(t)

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_RejectsRelativeWebhookURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("WEBHOOK_URL", "/telegram")

	_, err := Load()
	assert.ErrorContains(t, err, "WEBHOOK_URL")
}

func TestLoad_ProductionRequiresHTTPSMiniAppURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("APP_ENV", "production")

	_, err := Load()
	assert.ErrorContains(t, err, "BASE_URL must use https")

	t.Setenv("BASE_URL", "https://tma.example.com")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.App.IsProd())
	assert.Equal(t, "json", cfg.App.LogOutput())
}

func TestAppConfigLogOutput(t *testing.T) {
	assert.Equal(t, "console", AppConfig{Env: "DEV"}.LogOutput())
	assert.Equal(t, "json", AppConfig{Env: "staging"}.LogOutput())
	assert.Equal(t, "json", AppConfig{Env: "development", LogFormat: "json"}.LogOutput())
	assert.False(t, AppConfig{Env: "DEV"}.IsProd())
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"TELEGRAM_BOT_TOKEN", "ADMIN_CHAT_ID", "PORT", "BASE_URL", "WEBHOOK_URL",
		"RESOURCE_BASE_URL", "SALEOR_API_URL", "SALEOR_CHANNEL_TOKEN", "SALEOR_TIMEOUT",
		"REDIS_URL", "CATALOG_SNAPSHOT_TTL", "APP_ENV", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}
