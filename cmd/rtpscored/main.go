// Command rtpscored wires together the fragment router, sample cache,
// and stale-buffer GC loop for local inspection — there is no real UDP
// transport or RTPS submessage parser here, both of which remain external
// collaborators. It exists so the core can be exercised end-to-end
// without standing up a full participant.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rtpscore/corecache/internal/guid"
	"github.com/rtpscore/corecache/pkg/cache"
	"github.com/rtpscore/corecache/pkg/config"
	"github.com/rtpscore/corecache/pkg/fragment"
	"github.com/rtpscore/corecache/pkg/logging"
	"github.com/rtpscore/corecache/pkg/router"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "rtpscored",
	Short: "Demo host for the RTPS fragment assembler and sample cache core",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(configPath)
	},
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to the configuration file (optional)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := config.LoadWithRetry(ctx, configPath)
	if err != nil {
		return err
	}

	if err := logging.Init(logging.Config{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
		FilePath:    cfg.Log.FilePath,
	}); err != nil {
		return fmt.Errorf("failed to init logging: %w", err)
	}
	defer logging.Sync()

	sampleCache := cache.NewSampleCache()
	gc := fragment.NewGCLoop(cfg.GC.Interval, cfg.GC.Threshold)
	gc.Start()
	defer gc.Stop()

	fixedFragmentSize := func(writer guid.GUID, topic string) uint16 { return 1024 }
	r := router.New(sampleCache, fixedFragmentSize, gc)

	logging.Info("rtpscored ready",
		zap.Duration("gc_interval", cfg.GC.Interval),
		zap.Duration("gc_threshold", cfg.GC.Threshold))

	// A real process would hand r.Deliver to a UDP receive loop fed by an
	// RTPS submessage parser; this demo binary instead exposes the same
	// operations through a line-oriented stdin driver so the core can be
	// exercised manually.
	runREPL(os.Stdin, os.Stdout, sampleCache, r)
	return nil
}
