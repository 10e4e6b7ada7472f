package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/slotwatch/internal/browser"
	"github.com/example/slotwatch/internal/config"
	"github.com/example/slotwatch/internal/db"
	"github.com/example/slotwatch/internal/notify"
	"github.com/example/slotwatch/internal/runner"
	"github.com/example/slotwatch/internal/state"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Run one observation cycle",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			r, cleanup, err := buildRunner(ctx, cfg)
			if err != nil {
				return err
			}
			defer cleanup()
			return r.RunCycle(ctx)
		},
	}
}

// buildRunner wires the state store (Postgres when STATE_DATABASE_URL is
// set, the local file otherwise), the notification router and the browser
// session factory.
func buildRunner(ctx context.Context, cfg config.Config) (*runner.Runner, func(), error) {
	var (
		st      state.Store
		cleanup = func() {}
	)
	if cfg.StateDatabaseURL != "" {
		d, err := db.Open(ctx, cfg.StateDatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := d.Ping(ctx); err != nil {
			d.Close()
			return nil, nil, fmt.Errorf("db ping: %w", err)
		}
		ps, err := state.NewPostgresStore(ctx, d)
		if err != nil {
			d.Close()
			return nil, nil, err
		}
		st = ps
		cleanup = d.Close
	} else {
		st = state.NewFileStore(cfg.StateFile)
	}

	r := runner.New(cfg, st, notify.NewRouter(cfg), func() (browser.Session, error) {
		return browser.StartPlaywright(browser.Options{Headless: cfg.Headless})
	})
	return r, cleanup, nil
}
