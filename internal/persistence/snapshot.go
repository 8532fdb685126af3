package persistence

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// Snapshot is the on-disk document mirroring the canonical in-memory
// state: tickets, users and branding in one JSON file with RFC3339
// timestamps. It plays the role browser local storage played for the
// original single-page app.
type Snapshot struct {
	Tickets  []domain.Ticket  `json:"tickets"`
	Users    []domain.User    `json:"users"`
	Branding *domain.Branding `json:"branding,omitempty"`
	SavedAt  time.Time        `json:"saved_at"`
}

// LoadSnapshot reads and parses the snapshot file. Callers treat any
// error (missing file, corrupt JSON) as a signal to fall back to seed
// data rather than failing startup.
func LoadSnapshot(path string) (*Snapshot, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var snapshot Snapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	return &snapshot, nil
}

// SaveSnapshot writes the snapshot atomically via a temp file rename so
// a crash mid-write never corrupts the previous state.
func SaveSnapshot(path string, snapshot *Snapshot) error {
	snapshot.SavedAt = time.Now()
	raw, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".snapshot-*.json")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}
