package settings

import (
	"encoding/json"
	"errors"
	"os"
	"sync"
	"time"
)

const lockTimeout = 5 * time.Second

// Store persists Settings in a single JSON file.
// It keeps an in-memory mirror of the last loaded or saved settings and is
// safe for concurrent use.
type Store struct {
	path string
	mu   sync.RWMutex
	data Settings
}

// NewStore creates a settings store backed by the JSON file at path.
// If the file exists it is loaded; a missing or corrupt file yields empty
// settings rather than an error, so a fresh install starts at onboarding.
func NewStore(path string) *Store {
	s := &Store{path: path}
	s.data = s.read()
	return s
}

// Load returns the persisted settings, or zero-value strings for unset
// fields. It never fails.
func (s *Store) Load() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data
}

// IsComplete reports whether all three credentials are present.
func (s *Store) IsComplete() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.IsComplete()
}

// Save validates and persists the settings, then updates the in-memory
// mirror. A blank field fails with *ValidationError before anything is
// written.
func (s *Store) Save(settings Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lock := NewFileLock(s.path)
	if err := lock.Lock(lockTimeout); err != nil {
		return err
	}
	defer lock.Unlock()

	if err := s.write(settings); err != nil {
		return err
	}

	s.data = settings
	return nil
}

// read loads settings from disk, falling back to empty settings on any error.
func (s *Store) read() Settings {
	var settings Settings

	data, err := os.ReadFile(s.path)
	if err != nil {
		return settings
	}
	if err := json.Unmarshal(data, &settings); err != nil {
		return Settings{}
	}
	return settings
}

// write persists settings to disk atomically.
func (s *Store) write(settings Settings) error {
	writer, err := NewAtomicWriter(s.path)
	if err != nil {
		return &StoreError{Op: "write", Err: err}
	}

	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(settings); err != nil {
		writer.Abort()
		return &StoreError{Op: "write", Err: err}
	}

	if err := writer.Commit(); err != nil {
		return &StoreError{Op: "write", Err: err}
	}

	return nil
}

// Exists reports whether a settings file is present on disk.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return !errors.Is(err, os.ErrNotExist)
}
