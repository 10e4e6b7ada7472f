package state

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewFileStore(filepath.Join(t.TempDir(), "state.json"))

	obs := Observation{
		LastSeenAt:  time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		Available:   true,
		Fingerprint: "abc123",
		Booked:      true,
	}
	require.NoError(t, s.Save(ctx, obs))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, obs, got)
}

func TestFileStoreMissingFileIsEmptyState(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "does-not-exist.json"))
	got, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Observation{}, got)
}

func TestFileStoreCorruptFileIsEmptyState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s := NewFileStore(path)
	got, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Observation{}, got)
}

func TestFileStoreOverwrites(t *testing.T) {
	ctx := context.Background()
	s := NewFileStore(filepath.Join(t.TempDir(), "state.json"))

	require.NoError(t, s.Save(ctx, Observation{Available: true}))
	require.NoError(t, s.Save(ctx, Observation{Available: false, Booked: true}))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.False(t, got.Available)
	assert.True(t, got.Booked)

	// no temp files left behind
	entries, err := os.ReadDir(filepath.Dir(s.Path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
