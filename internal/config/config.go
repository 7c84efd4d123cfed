// Package config loads runtime configuration from the environment (spec
// §6, §9: "treat as environment-configured, never hardcoded").
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds every environment-configured value the monitor needs.
type Config struct {
	StreamURL string
	RPCURL    string
	RedisURL  string

	MarketCapFloor float64

	AIAPIKey         string
	AIBaseURL        string
	XAPIKey          string
	XSearchBaseURL   string
	TelegramBotToken string
	TelegramChatID   string

	NewCoinMinTime time.Duration
	NewCoinMaxTime time.Duration
}

// Load reads a .env file if present (original_source/src/main.rs's
// dotenv::dotenv(), ignored if the file does not exist) then binds
// environment variables via viper, applying the spec's defaults for any
// value left unset.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("MARKET_CAP", 50000.0)
	v.SetDefault("NEW_COIN_MIN_TIME", 10)
	v.SetDefault("NEW_COIN_MAX_TIME", 15)
	v.SetDefault("AI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta/models/gemini-1.5-flash:generateContent")
	v.SetDefault("X_SEARCH_BASE_URL", "https://api.twitterapi.io/twitter/tweet/advanced_search")

	cfg := Config{
		StreamURL:        v.GetString("STREAM_URL"),
		RPCURL:           v.GetString("RPC_URL"),
		RedisURL:         v.GetString("REDIS_URL"),
		MarketCapFloor:   v.GetFloat64("MARKET_CAP"),
		AIAPIKey:         v.GetString("AI_API_KEY"),
		AIBaseURL:        v.GetString("AI_BASE_URL"),
		XAPIKey:          v.GetString("X_API_KEY"),
		XSearchBaseURL:   v.GetString("X_SEARCH_BASE_URL"),
		TelegramBotToken: v.GetString("TELEGRAM_BOT_TOKEN"),
		TelegramChatID:   v.GetString("TELEGRAM_CHAT_ID"),
		NewCoinMinTime:   time.Duration(v.GetInt("NEW_COIN_MIN_TIME")) * time.Minute,
		NewCoinMaxTime:   time.Duration(v.GetInt("NEW_COIN_MAX_TIME")) * time.Minute,
	}
	if cfg.StreamURL == "" {
		cfg.StreamURL = v.GetString("GRPC_URL")
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// validate rejects configurations missing a value with no sensible
// default: a running monitor with no stream or store is a misconfiguration,
// not a degraded mode.
func (c Config) validate() error {
	missing := func(name, val string) error {
		if val == "" {
			return fmt.Errorf("config: %s is required", name)
		}
		return nil
	}
	for _, check := range []struct {
		name string
		val  string
	}{
		{"STREAM_URL", c.StreamURL},
		{"REDIS_URL", c.RedisURL},
		{"TELEGRAM_BOT_TOKEN", c.TelegramBotToken},
		{"TELEGRAM_CHAT_ID", c.TelegramChatID},
	} {
		if err := missing(check.name, check.val); err != nil {
			return err
		}
	}
	return nil
}
