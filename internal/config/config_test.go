package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadRequiresStreamURL(t *testing.T) {
	t.Setenv("STREAM_URL", "")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("TELEGRAM_BOT_TOKEN", "tok")
	t.Setenv("TELEGRAM_CHAT_ID", "123")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadAppliesDefaults(t *testing.T) {
	t.Setenv("STREAM_URL", "wss://example.com/feed")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("TELEGRAM_BOT_TOKEN", "tok")
	t.Setenv("TELEGRAM_CHAT_ID", "123")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 50000.0, cfg.MarketCapFloor)
	require.Equal(t, 10*time.Minute, cfg.NewCoinMinTime)
	require.Equal(t, 15*time.Minute, cfg.NewCoinMaxTime)
}
