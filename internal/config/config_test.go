package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateReportsMissingVariables(t *testing.T) {
	cfg := Config{Upload: UploadConfig{MaxBytes: 1}}

	err := cfg.Validate()
	require.Error(t, err)

	for _, key := range []string{"DB_HOST", "AUTH_JWT_SECRET", "GEMINI_API_KEY", "FRONTEND_URL"} {
		assert.Contains(t, err.Error(), key)
	}
}

func TestValidateAcceptsCompleteConfig(t *testing.T) {
	cfg := Config{
		FrontURL: "http://localhost:3000",
		DB:       DatabaseConfig{DB_HOST: "127.0.0.1"},
		Auth:     AuthConfig{JWT_SECRET: "secret"},
		AI:       AIConfig{GEMINI_API_KEY: "key", MODEL: "gemini-1.5-flash"},
		Upload:   UploadConfig{MaxBytes: 1024},
	}

	assert.NoError(t, cfg.Validate())
}

func TestGetConfigRouteLimits(t *testing.T) {
	t.Setenv("RATE_LIMIT_AUTH_ATTEMPTS", "3")
	t.Setenv("RATE_LIMIT_AUTH_TIME_FRAME", "10m")
	t.Setenv("RATE_LIMIT_AI_TIME_FRAME", "not-a-duration")

	cfg := GetConfig()

	assert.Equal(t, 3, cfg.RateLimiter.AuthAttempts)
	assert.Equal(t, 10*time.Minute, cfg.RateLimiter.AuthTimeFrame)
	assert.Equal(t, time.Hour, cfg.RateLimiter.AITimeFrame)
	assert.Equal(t, 50, cfg.RateLimiter.Invitations)
}
