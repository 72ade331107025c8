// Package session owns the stored credentials and the guard every remote call passes through.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Keys under which the credentials are stored.
const (
	AccessTokenKey  = "accessToken"
	RefreshTokenKey = "refreshToken"
)

// Store is a process-wide key-value store for credentials.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(keys ...string) error
}

// FileStore persists values as a JSON object in a single file with mode 0600.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a store backed by path. The file is created on first write.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string { return s.path }

// Get implements Store. A missing or unreadable file reads as empty.
func (s *FileStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		return "", false
	}
	v, ok := values[key]
	if v == "" {
		return "", false
	}
	return v, ok
}

// Set implements Store.
func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		values = make(map[string]string)
	}
	values[key] = value
	return s.write(values)
}

// Delete implements Store. When the store becomes empty the file is removed.
func (s *FileStore) Delete(keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		// Corrupt file: nothing worth keeping.
		return removeIfExists(s.path)
	}
	for _, k := range keys {
		delete(values, k)
	}
	if len(values) == 0 {
		return removeIfExists(s.path)
	}
	return s.write(values)
}

func (s *FileStore) read() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	values := make(map[string]string)
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", filepath.Base(s.path), err)
	}
	return values, nil
}

func (s *FileStore) write(values map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("create session directory: %w", err)
	}
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0600)
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Get implements Store.
func (s *MemoryStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok && v != ""
}

// Set implements Store.
func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Delete implements Store.
func (s *MemoryStore) Delete(keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.values, k)
	}
	return nil
}
