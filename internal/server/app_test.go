package server

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/steptrack/internal/logging"
	"github.com/dmitrijs2005/steptrack/internal/server/config"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestEnsureSecretKey_ReplacesPlaceholder(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()

	require.NoError(t, ensureSecretKey(context.Background(), cfg, testLogger()))

	assert.NotEqual(t, config.DefaultSecretKey, cfg.SecretKey)
	assert.Len(t, cfg.SecretKey, 64) // 32 random bytes, hex encoded
}

func TestEnsureSecretKey_UniquePerStartup(t *testing.T) {
	ctx := context.Background()

	cfg1 := &config.Config{}
	cfg1.LoadDefaults()
	require.NoError(t, ensureSecretKey(ctx, cfg1, testLogger()))

	cfg2 := &config.Config{}
	cfg2.LoadDefaults()
	require.NoError(t, ensureSecretKey(ctx, cfg2, testLogger()))

	assert.NotEqual(t, cfg1.SecretKey, cfg2.SecretKey)
}

func TestEnsureSecretKey_KeepsConfiguredKey(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = "operator-provided-key"

	require.NoError(t, ensureSecretKey(context.Background(), cfg, testLogger()))

	assert.Equal(t, "operator-provided-key", cfg.SecretKey)
}
