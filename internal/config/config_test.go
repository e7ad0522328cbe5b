package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()

	t.Setenv("BOT_TOKEN", "123:token")
	t.Setenv("API_KEY", "api-key")
	t.Setenv("ADMIN_USER_ID", "7490634345")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "123:token", cfg.BotToken)
	assert.Equal(t, ":5000", cfg.ListenAddr)
	assert.Equal(t, "https://flipcartstore.serv00.net/INFO.php", cfg.LookupBaseURL)
	// Webhook secret falls back to the bot token.
	assert.Equal(t, "123:token", cfg.WebhookSecret)
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("LISTEN_ADDR", ":8080")
	t.Setenv("WEBHOOK_SECRET", "hook-secret")
	t.Setenv("ADMIN_CHAT_ID", "42")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "hook-secret", cfg.WebhookSecret)
	assert.Equal(t, int64(42), cfg.AdminChatID)
}

func TestLoadMissingRequired(t *testing.T) {
	t.Setenv("BOT_TOKEN", "")
	t.Setenv("API_KEY", "")
	t.Setenv("ADMIN_USER_ID", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validate config")
}
