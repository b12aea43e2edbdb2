// Package prefs persists editor preferences as text blobs under fixed keys.
package prefs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

type MemStore struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemStore() *MemStore {
	return &MemStore{values: map[string]string{}}
}

func (s *MemStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *MemStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// FileStore keeps all keys in one YAML mapping and rewrites the file on
// every Set.
type FileStore struct {
	mu     sync.Mutex
	path   string
	values map[string]string
}

// CorruptSuffix is appended to a preference file that could not be parsed
// when it is moved aside.
const CorruptSuffix = ".corrupt"

// OpenFile loads path if it exists. A missing file is an empty store. A file
// that does not parse is moved to path+CorruptSuffix and the store starts
// empty; only an unreadable file is an error.
func OpenFile(path string, log *zap.Logger) (*FileStore, error) {
	s := &FileStore{path: path, values: map[string]string{}}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("prefs: read %s: %w", path, err)
	}
	var values map[string]string
	if err := yaml.Unmarshal(data, &values); err != nil {
		aside := path + CorruptSuffix
		log.Warn("discarding unreadable preferences", zap.String("path", path), zap.String("moved_to", aside), zap.Error(err))
		if err := os.Rename(path, aside); err != nil {
			log.Warn("could not move preferences aside", zap.String("path", path), zap.Error(err))
		}
		return s, nil
	}
	for k, v := range values {
		s.values[k] = v
	}
	return s, nil
}

func (s *FileStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	data, err := yaml.Marshal(s.values)
	if err != nil {
		return fmt.Errorf("prefs: encode: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("prefs: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("prefs: replace %s: %w", filepath.Base(s.path), err)
	}
	return nil
}
