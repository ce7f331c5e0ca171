// Package gate decides whether a tour should auto-start, backed by a small
// durable key-value store. Store failures never propagate upward: reads
// collapse to "not completed" (fail toward showing the tour again) and
// write failures are logged and swallowed.
package gate

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store is a durable string-keyed store scoped to the local client.
// Implementations may fail on any call; callers are expected to treat
// failures as best-effort.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool, error)

	// Set writes a single key.
	Set(key, value string) error

	// SetBatch writes all pairs together; either all or none become
	// visible to subsequent reads.
	SetBatch(pairs map[string]string) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(key string) error

	Close() error
}

// FileStore persists the key-value map as one JSON document. Writes go
// through a temp file and rename so a crash never leaves a torn document.
type FileStore struct {
	mu   sync.RWMutex
	path string
}

// NewFileStore creates a store at <dir>/state.json.
func NewFileStore(dir string) *FileStore {
	return &FileStore{path: filepath.Join(dir, "state.json")}
}

func (s *FileStore) load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}
	kv := map[string]string{}
	if err := json.Unmarshal(data, &kv); err != nil {
		return nil, fmt.Errorf("failed to parse state file: %w", err)
	}
	return kv, nil
}

func (s *FileStore) save(kv map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	data, err := json.MarshalIndent(kv, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace state file: %w", err)
	}
	return nil
}

// Get returns the stored value for key.
func (s *FileStore) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	kv, err := s.load()
	if err != nil {
		return "", false, err
	}
	v, ok := kv[key]
	return v, ok, nil
}

// Set writes a single key.
func (s *FileStore) Set(key, value string) error {
	return s.SetBatch(map[string]string{key: value})
}

// SetBatch writes all pairs in one document replacement.
func (s *FileStore) SetBatch(pairs map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kv, err := s.load()
	if err != nil {
		return err
	}
	for k, v := range pairs {
		kv[k] = v
	}
	return s.save(kv)
}

// Delete removes a key.
func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kv, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := kv[key]; !ok {
		return nil
	}
	delete(kv, key)
	return s.save(kv)
}

// Close is a no-op; the file store holds no open handles.
func (s *FileStore) Close() error { return nil }
