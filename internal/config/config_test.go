package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 10*time.Minute, cfg.SessionTTL)
	assert.Equal(t, "config/intents.yaml", cfg.IntentsPath)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("SESSION_TTL_MINUTES", "25")
	t.Setenv("REDIS_DB", "3")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, 25*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 3, cfg.RedisDB)
}

func TestLoadRejectsZeroTTL(t *testing.T) {
	t.Setenv("SESSION_TTL_MINUTES", "0")

	_, err := Load()
	require.Error(t, err)
}
