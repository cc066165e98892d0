package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadWithRetryEmptyPathReturnsDefault(t *testing.T) {
	cfg, err := LoadWithRetry(context.Background(), "")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadWithRetryGivesUpWhenContextCancelled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := LoadWithRetry(ctx, "/nonexistent/rtpscored.yaml")
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
