package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the deployment glue the engine itself does not own: credentials,
// the admin identity, and transport addresses. Plan prices and quotas are not
// configurable; they live in the domain catalog.
type Config struct {
	BotToken      string `mapstructure:"bot_token" validate:"required"`
	APIKey        string `mapstructure:"api_key" validate:"required"`
	AdminUserID   string `mapstructure:"admin_user_id" validate:"required"`
	AdminChatID   int64  `mapstructure:"admin_chat_id"`
	ListenAddr    string `mapstructure:"listen_addr" validate:"required"`
	WebhookSecret string `mapstructure:"webhook_secret"`
	LookupBaseURL string `mapstructure:"lookup_base_url" validate:"required,url"`
}

// Load reads configuration from the environment, with an optional .env file
// for local runs. Env names match the original deployment (BOT_TOKEN,
// API_KEY, ...).
func Load() (*Config, error) {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	v := viper.New()
	bindings := map[string]string{
		"bot_token":       "BOT_TOKEN",
		"api_key":         "API_KEY",
		"admin_user_id":   "ADMIN_USER_ID",
		"admin_chat_id":   "ADMIN_CHAT_ID",
		"listen_addr":     "LISTEN_ADDR",
		"webhook_secret":  "WEBHOOK_SECRET",
		"lookup_base_url": "LOOKUP_BASE_URL",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	v.SetDefault("listen_addr", ":5000")
	v.SetDefault("lookup_base_url", "https://flipcartstore.serv00.net/INFO.php")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// The webhook path segment doubles as a shared secret; default to the
	// bot token the way the original deployment registered its webhook.
	if cfg.WebhookSecret == "" {
		cfg.WebhookSecret = cfg.BotToken
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}
