package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "password123", cfg.DemoPassword)
	assert.Equal(t, "123456", cfg.AcceptedOTP)
	assert.Equal(t, 1.0, cfg.LatencyScale)
	assert.NotEmpty(t, cfg.StorageDSN)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DEMO_ACCEPTED_OTP", "654321")
	t.Setenv("SIM_LATENCY_SCALE", "0.01")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "654321", cfg.AcceptedOTP)
	assert.Equal(t, 0.01, cfg.LatencyScale)
}

func TestLoad_ProductionRequiresRealSecret(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "a-real-secret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Environment)
}

func TestLoad_RejectsNonPositiveLatencyScale(t *testing.T) {
	t.Setenv("SIM_LATENCY_SCALE", "0")
	_, err := Load()
	assert.Error(t, err)
}
