package config

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/rtpscore/corecache/pkg/logging"
	"go.uber.org/zap"
)

// LoadWithRetry calls Load repeatedly with exponential backoff until it
// succeeds or ctx is cancelled. It exists for deployments where rtpscored
// starts before its config file is provisioned (e.g. mounted by a sidecar)
// rather than failing out on the first missed read. Adapted from
// sakateka-yanet2's BIRD import reconnect loop
// (modules/route/bird-adapter/service.go), which retries a failed gRPC
// stream with the same backoff.ExponentialBackOff + select-on-ctx pattern.
func LoadWithRetry(ctx context.Context, path string) (Config, error) {
	if path == "" {
		return Load(path)
	}

	b := backoff.ExponentialBackOff{
		InitialInterval:     backoff.DefaultInitialInterval,
		RandomizationFactor: backoff.DefaultRandomizationFactor,
		Multiplier:          backoff.DefaultMultiplier,
		MaxInterval:         10 * time.Second,
	}
	b.Reset()

	for {
		cfg, err := Load(path)
		if err == nil {
			return cfg, nil
		}

		logging.Warn("failed to load config, retrying",
			zap.String("path", path), zap.Error(err))

		select {
		case <-ctx.Done():
			return Config{}, ctx.Err()
		case <-time.After(b.NextBackOff()):
		}
	}
}
