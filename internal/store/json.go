package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// processedFile is the on-disk shape of the processed set.
type processedFile struct {
	JobIDs      []string  `json:"jobIds"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// JSONStore persists processed job IDs as a single JSON file. Insertion
// order is preserved. Writes rewrite the whole file via a temp file and
// rename, so a crash mid-write never leaves a structurally invalid store.
//
// Single-writer by design: the pipeline's sequential scoring loop is the
// only mutator.
type JSONStore struct {
	path   string
	ids    []string
	seen   map[string]struct{}
	logger *slog.Logger
}

// NewJSONStore opens the store at path, loading any existing set. A missing
// or corrupt file degrades to an empty set with a warning, never an error.
func NewJSONStore(path string, logger *slog.Logger) (*JSONStore, error) {
	s := &JSONStore{
		path:   path,
		seen:   make(map[string]struct{}),
		logger: logger,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Warn("processed store unreadable, starting empty", "path", path, "error", err)
		}
		return s, nil
	}

	var pf processedFile
	if err := json.Unmarshal(data, &pf); err != nil {
		logger.Warn("processed store corrupt, starting empty", "path", path, "error", err)
		return s, nil
	}

	for _, id := range pf.JobIDs {
		if _, ok := s.seen[id]; ok {
			continue
		}
		s.ids = append(s.ids, id)
		s.seen[id] = struct{}{}
	}
	return s, nil
}

// Load returns the processed IDs in insertion order.
func (s *JSONStore) Load() ([]string, error) {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out, nil
}

// Has reports whether id has already been processed.
func (s *JSONStore) Has(id string) (bool, error) {
	_, ok := s.seen[id]
	return ok, nil
}

// Add records id as processed and persists the full set synchronously.
// No-op if the id is already present.
func (s *JSONStore) Add(id string) error {
	if _, ok := s.seen[id]; ok {
		return nil
	}
	s.ids = append(s.ids, id)
	s.seen[id] = struct{}{}
	return s.persist()
}

// Clear resets the store to an empty set and persists it.
func (s *JSONStore) Clear() error {
	s.ids = nil
	s.seen = make(map[string]struct{})
	return s.persist()
}

func (s *JSONStore) persist() error {
	pf := processedFile{
		JobIDs:      s.ids,
		LastUpdated: time.Now().UTC(),
	}
	if pf.JobIDs == nil {
		pf.JobIDs = []string{}
	}

	data, err := json.MarshalIndent(pf, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal processed store: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}

	// Write-to-temp-then-rename keeps the store valid even if we crash
	// mid-write.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write processed store: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace processed store: %w", err)
	}
	return nil
}
