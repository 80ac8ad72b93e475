// Package jsonstore persists courses, files, and cards as indented JSON
// documents on local disk. Each store owns one file and serializes all
// access through a mutex; writes go to a temp file first and are renamed
// into place so a crash never leaves a half-written document.
package jsonstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

type fileStore struct {
	path string
	mu   sync.Mutex
}

func newFileStore(dir, name string) (*fileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &fileStore{path: filepath.Join(dir, name)}, nil
}

// load reads the document into out. A missing file is not an error; out
// is left untouched so the caller's zero value becomes the empty document.
func (s *fileStore) load(out any) error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read %s: %w", s.path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w", s.path, err)
	}
	return nil
}

func (s *fileStore) save(doc any) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", s.path, err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}
