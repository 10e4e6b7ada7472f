// Package state persists the last-known observation across runs.
package state

import (
	"context"
	"time"
)

// Observation is the single record carried between cycles. It reflects only
// the most recent cycle, except for Booked which is sticky: once an automated
// booking succeeds it stays true and suppresses all future booking attempts.
type Observation struct {
	LastSeenAt  time.Time `json:"last_seen"`
	Available   bool      `json:"available"`
	Fingerprint string    `json:"fingerprint"`
	Booked      bool      `json:"booked"`
}

// Store loads and saves the observation record. Load returns a zero
// Observation when no usable prior state exists; an unreadable record is
// never fatal.
type Store interface {
	Load(ctx context.Context) (Observation, error)
	Save(ctx context.Context, obs Observation) error
}
