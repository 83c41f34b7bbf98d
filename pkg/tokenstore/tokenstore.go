// Package tokenstore persists the gateway session token between process
// invocations. The cache is advisory: a stale entry just costs one extra
// login, so implementations favor simplicity over durability.
package tokenstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
)

// Entry is one cached session token with its local advisory expiry.
type Entry struct {
	Token  string    `json:"token"`
	Expiry time.Time `json:"expiry"`
}

// Store holds at most one current token. Writes are last-write-wins.
type Store interface {
	// Load returns the cached entry, or nil when nothing is cached.
	Load() (*Entry, error)
	Save(Entry) error
	Clear() error
	Close() error
}

// FileStore keeps the token in a JSON file with 0600 permissions.
type FileStore struct {
	path string
}

// NewFileStore caches the token at <dir>/token.json.
func NewFileStore(dir string) *FileStore {
	return &FileStore{path: filepath.Join(dir, "token.json")}
}

func (s *FileStore) Load() (*Entry, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "tokenstore: read cache")
	}
	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		// A corrupt cache is the same as no cache.
		return nil, nil
	}
	if entry.Token == "" {
		return nil, nil
	}
	return &entry, nil
}

func (s *FileStore) Save(entry Entry) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return errors.Wrap(err, "tokenstore: create cache dir")
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return errors.Wrap(err, "tokenstore: encode entry")
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return errors.Wrap(err, "tokenstore: write cache")
	}
	return nil
}

func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *FileStore) Close() error { return nil }
