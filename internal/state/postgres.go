package state

import (
	"context"

	"github.com/example/slotwatch/internal/db"
)

// PostgresStore keeps the observation record in a single-row table, for
// deployments on ephemeral runners where a local state file would be lost
// between invocations.
type PostgresStore struct {
	db *db.DB
}

func NewPostgresStore(ctx context.Context, d *db.DB) (*PostgresStore, error) {
	if err := d.Exec(ctx, `
CREATE TABLE IF NOT EXISTS observation_state (
  id           smallint PRIMARY KEY DEFAULT 1 CHECK (id = 1),
  last_seen_at timestamptz NOT NULL,
  available    boolean NOT NULL,
  fingerprint  text NOT NULL,
  booked       boolean NOT NULL
)`); err != nil {
		return nil, err
	}
	return &PostgresStore{db: d}, nil
}

func (s *PostgresStore) Load(ctx context.Context) (Observation, error) {
	var obs Observation
	err := db.WrapNotFound(s.db.QueryRow(ctx, `
SELECT last_seen_at, available, fingerprint, booked
FROM observation_state
WHERE id = 1`).Scan(&obs.LastSeenAt, &obs.Available, &obs.Fingerprint, &obs.Booked))
	if err != nil {
		if db.IsNotFound(err) {
			return Observation{}, nil
		}
		return Observation{}, err
	}
	return obs, nil
}

func (s *PostgresStore) Save(ctx context.Context, obs Observation) error {
	return s.db.Exec(ctx, `
INSERT INTO observation_state(id, last_seen_at, available, fingerprint, booked)
VALUES (1, $1, $2, $3, $4)
ON CONFLICT (id) DO UPDATE
SET last_seen_at = EXCLUDED.last_seen_at,
    available    = EXCLUDED.available,
    fingerprint  = EXCLUDED.fingerprint,
    booked       = EXCLUDED.booked`,
		obs.LastSeenAt, obs.Available, obs.Fingerprint, obs.Booked)
}
