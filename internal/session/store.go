// Package session is the local session store: a single JSON blob on disk
// with per-name get/set. No logic beyond that lives here.
package session

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Store persists a map of named JSON values in one file. A missing file
// reads as empty; writes are atomic (tmp + rename) and private (0600).
type Store struct {
	path string
}

func Open(path string) *Store {
	return &Store{path: path}
}

// Get decodes the value stored under name into out and reports whether a
// non-null value was present. Unreadable files read as empty.
func (s *Store) Get(name string, out any) bool {
	blob, err := s.load()
	if err != nil {
		return false
	}
	raw, ok := blob[name]
	if !ok || len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return false
	}
	return json.Unmarshal(raw, out) == nil
}

// Set stores value under name. A nil value clears the entry.
func (s *Store) Set(name string, value any) error {
	blob, err := s.load()
	if err != nil {
		return err
	}
	if value == nil {
		delete(blob, name)
	} else {
		raw, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("encode %s: %w", name, err)
		}
		blob[name] = raw
	}
	return s.save(blob)
}

func (s *Store) load() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]json.RawMessage{}, nil
		}
		return nil, err
	}
	blob := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &blob); err != nil {
		return nil, err
	}
	return blob, nil
}

func (s *Store) save(blob map[string]json.RawMessage) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(blob, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
