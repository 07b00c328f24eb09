package config_test

import (
	"strings"
	"testing"
	"time"

	"github.com/oscarsebastian/jup-airdrop-checker/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	require.Equal(t, config.DefaultEndpoint, cfg.Endpoint)
	require.Equal(t, 3, cfg.MaxRetries)
	require.Equal(t, 2*time.Second, cfg.Backoff())
	require.Equal(t, 1.0, cfg.BackoffMultiplier)
	require.Equal(t, config.DefaultWalletFile, cfg.WalletsFile)
	require.True(t, cfg.FailFast)
	require.NoError(t, cfg.Validate())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("JUP_API_ENDPOINT", "http://localhost:8091/transactions")
	t.Setenv("MAX_RETRIES", "5")
	t.Setenv("BACKOFF_SECONDS", "0.5")
	t.Setenv("BACKOFF_MULTIPLIER", "2")
	t.Setenv("CONCURRENCY", "0")
	t.Setenv("FAIL_FAST", "false")
	t.Setenv("REQUEST_TIMEOUT", "3s")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CACHE_TTL", "1m")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	require.Equal(t, "http://localhost:8091/transactions", cfg.Endpoint)
	require.Equal(t, 5, cfg.MaxRetries)
	require.Equal(t, 500*time.Millisecond, cfg.Backoff())
	require.Equal(t, 2.0, cfg.BackoffMultiplier)
	require.Equal(t, 0, cfg.Concurrency)
	require.False(t, cfg.FailFast)
	require.Equal(t, 3*time.Second, cfg.RequestTimeout)
	require.Equal(t, time.Minute, cfg.CacheTTL)
	require.Equal(t, logrus.DebugLevel, cfg.NewLogger().GetLevel())

	logrus.SetLevel(logrus.InfoLevel)
}

func TestValidate(t *testing.T) {
	t.Setenv("JUP_API_ENDPOINT", "ftp://example.com")
	t.Setenv("MAX_RETRIES", "0")
	t.Setenv("BACKOFF_MULTIPLIER", "0.5")
	t.Setenv("CONCURRENCY", "-1")
	t.Setenv("LOG_LEVEL", "loud")
	t.Setenv("HTTP_PORT", "70000")

	cfg, err := config.Load()
	require.NoError(t, err)

	err = cfg.Validate()
	require.Error(t, err)

	for _, problem := range []string{"endpoint scheme", "max retries", "backoff multiplier", "concurrency", "log level", "http port"} {
		require.True(t, strings.Contains(err.Error(), problem), problem)
	}
}
