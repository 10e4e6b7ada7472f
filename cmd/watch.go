package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/slotwatch/internal/config"
	"github.com/example/slotwatch/internal/watch"
)

func newWatchCmd() *cobra.Command {
	var interval time.Duration

	c := &cobra.Command{
		Use:   "watch",
		Short: "Run observation cycles on an interval until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			if interval > 0 {
				cfg.WatchInterval = interval
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			r, cleanup, err := buildRunner(ctx, cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			loop := &watch.Loop{Interval: cfg.WatchInterval, Cycle: r.RunCycle}
			if err := loop.Run(ctx); !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}

	c.Flags().DurationVar(&interval, "interval", 0, "time between cycles (overrides WATCH_INTERVAL)")
	return c
}
