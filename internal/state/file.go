package state

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
)

// FileStore keeps the observation record as a single JSON file overwritten
// on every run.
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load returns a zero Observation when the file is missing or unparsable;
// corruption is treated as "no prior state".
func (s *FileStore) Load(_ context.Context) (Observation, error) {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		return Observation{}, nil
	}
	var obs Observation
	if err := json.Unmarshal(b, &obs); err != nil {
		return Observation{}, nil
	}
	return obs, nil
}

// Save writes the record via a temp file and rename so a crash mid-write
// never leaves a truncated state file behind.
func (s *FileStore) Save(_ context.Context, obs Observation) error {
	b, err := json.MarshalIndent(obs, "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.Path)
	tmp, err := os.CreateTemp(dir, ".state-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.Path)
}
