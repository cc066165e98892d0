// Package config handles process configuration loading using viper,
// mirroring firestige-Otus's internal/config package: a root struct with
// mapstructure tags, bound to a YAML file plus environment overrides.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// GCConfig controls stale AssemblyBuffer eviction (§4.2/§9).
type GCConfig struct {
	Interval  time.Duration `mapstructure:"interval"`
	Threshold time.Duration `mapstructure:"threshold"`
}

// LogConfig controls the process-wide logger (pkg/logging).
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
	FilePath    string `mapstructure:"file_path"`
}

// Config is the top-level static configuration for a rtpscored process.
type Config struct {
	GC  GCConfig `mapstructure:"gc"`
	Log LogConfig `mapstructure:"log"`
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	return Config{
		GC: GCConfig{
			Interval:  5 * time.Second,
			Threshold: 30 * time.Second, // recommended default per §9
		},
		Log: LogConfig{
			Level:       "info",
			Development: true,
		},
	}
}

// Load reads configuration from path (if non-empty) with viper, falling
// back to Default() for anything unset. Environment variables prefixed
// RTPSCORE_ override file values.
func Load(path string) (Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetEnvPrefix("RTPSCORE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return cfg, fmt.Errorf("config: reading %s: %w", path, err)
		}
		if err := v.Unmarshal(&cfg); err != nil {
			return cfg, fmt.Errorf("config: decoding: %w", err)
		}
	}

	return cfg, nil
}
