// Package session persists in-progress form state on the applicant's
// machine so a closed client can resume where it left off.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// Snapshot is the durable copy of the form state. It mirrors the single
// JSON document the store holds: the active step, every field value, and
// when it was last written.
type Snapshot struct {
	Step      int               `json:"step"`
	FormData  map[string]string `json:"formData"`
	LastSaved time.Time         `json:"lastSaved"`
}

// Store reads and writes the persisted snapshot.
type Store interface {
	Load() (*Snapshot, error)
	Save(Snapshot) error
	Clear() error
}

// FileStore keeps the snapshot as a single JSON file.
type FileStore struct {
	path string
}

// DefaultPath places the session file under the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("session: resolve config dir: %w", err)
	}
	return filepath.Join(dir, "stocktaker-intake", "session.json"), nil
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load returns the persisted snapshot, nil when none exists, or an error
// when the file is unreadable or corrupt. Callers treat errors as "start
// fresh", never as fatal.
func (s *FileStore) Load() (*Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session: read %s: %w", s.path, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("session: corrupt session file %s: %w", s.path, err)
	}
	return &snap, nil
}

// Save writes the snapshot atomically (temp file + rename) with owner-only
// permissions.
func (s *FileStore) Save(snap Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("session: create dir: %w", err)
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("session: marshal snapshot: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("session: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("session: rename %s: %w", tmp, err)
	}
	return nil
}

// Clear removes the persisted snapshot. A missing file is not an error.
func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("session: remove %s: %w", s.path, err)
	}
	return nil
}
