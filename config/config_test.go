package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("JWT_TTL", "")
	t.Setenv("ENABLE_DEV_LOGIN", "")

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.False(t, cfg.EnableDevLogin)
	assert.Equal(t, 15*time.Second, cfg.APITimeout)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9191")
	t.Setenv("DB_PATH", "/tmp/plots.db")
	t.Setenv("JWT_TTL", "90m")
	t.Setenv("ENABLE_DEV_LOGIN", "true")
	t.Setenv("API_BASE_URL", "http://api.example")

	cfg := Load()
	assert.Equal(t, "9191", cfg.Port)
	assert.Equal(t, "/tmp/plots.db", cfg.DBPath)
	assert.Equal(t, 90*time.Minute, cfg.JWTTTL)
	assert.True(t, cfg.EnableDevLogin)
	assert.Equal(t, "http://api.example", cfg.APIBaseURL)
}
