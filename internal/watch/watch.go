// Package watch runs observation cycles on a fixed interval.
package watch

import (
	"context"
	"log"
	"time"
)

// Loop runs cycles sequentially: the first immediately, then one per tick.
// A cycle runs to completion before the next can start, so cycles never
// overlap and the state file sees one writer at a time. Per-cycle failures
// are logged and the loop keeps going.
type Loop struct {
	Interval time.Duration
	Cycle    func(ctx context.Context) error

	// Logf defaults to log.Printf.
	Logf func(format string, args ...any)
}

func (l *Loop) Run(ctx context.Context) error {
	t := time.NewTicker(l.Interval)
	defer t.Stop()

	// kick immediately
	l.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			l.runOnce(ctx)
		}
	}
}

func (l *Loop) runOnce(ctx context.Context) {
	if err := l.Cycle(ctx); err != nil {
		l.logf("watch: cycle failed: %v", err)
	}
}

func (l *Loop) logf(format string, args ...any) {
	if l.Logf != nil {
		l.Logf(format, args...)
		return
	}
	log.Printf(format, args...)
}
