package jsonstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/idilsaglam/taskboard/internal/store"
)

// JSON-backed storage. Single file, human-readable, portable.
// Every key maps to a JSON value. No locking; fine for a local single-user CLI.

const DefaultFileName = "taskboard.json"

type Store struct {
	path string
}

// New returns a store backed by the file at path. The file and its parent
// directory are created on first write.
func New(path string) *Store {
	return &Store{path: path}
}

// InDir returns a store backed by DefaultFileName inside dir.
func InDir(dir string) *Store {
	return New(filepath.Join(dir, DefaultFileName))
}

func (s *Store) Path() string { return s.path }

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	v, ok := doc[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	return []byte(v), nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if !json.Valid(value) {
		return fmt.Errorf("set %q: value is not valid JSON", key)
	}
	doc, err := s.load()
	if errors.Is(err, store.ErrCorrupt) {
		// An unreadable document is replaced rather than blocking every write.
		doc = map[string]json.RawMessage{}
	} else if err != nil {
		return err
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, value); err != nil {
		return fmt.Errorf("json compact: %w", err)
	}
	doc[key] = json.RawMessage(compact.Bytes())
	return s.save(doc)
}

func (s *Store) Remove(ctx context.Context, key string) error {
	doc, err := s.load()
	if errors.Is(err, store.ErrCorrupt) {
		return s.save(map[string]json.RawMessage{})
	}
	if err != nil {
		return err
	}
	if _, ok := doc[key]; !ok {
		return nil
	}
	delete(doc, key)
	return s.save(doc)
}

func (s *Store) Close() error { return nil }

func (s *Store) load() (map[string]json.RawMessage, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]json.RawMessage{}, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	doc := map[string]json.RawMessage{}
	if len(bytes.TrimSpace(b)) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", store.ErrCorrupt, s.path, err)
	}
	return doc, nil
}

func (s *Store) save(doc map[string]json.RawMessage) error {
	// 0700 dir, 0600 file: the document carries the login snapshot.
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := os.WriteFile(s.path, b, 0o600); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
