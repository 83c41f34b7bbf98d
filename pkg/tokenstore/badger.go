package tokenstore

import (
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"
)

const badgerTokenKey = "session/token"

// BadgerStore keeps the token in a Badger KV directory, optionally
// encrypted at rest. Encryption comes from Badger options (value log +
// key registry), not from this wrapper.
type BadgerStore struct {
	db *badger.DB
}

// BadgerOptions configures OpenBadger.
type BadgerOptions struct {
	Path          string
	EncryptionKey []byte // 32 bytes; nil opens the DB unencrypted
}

// OpenBadger opens (or creates) the token database at opts.Path.
func OpenBadger(opts BadgerOptions) (*BadgerStore, error) {
	if strings.TrimSpace(opts.Path) == "" {
		return nil, errors.New("tokenstore: path is required")
	}
	bopts := badger.DefaultOptions(opts.Path).WithLogger(nil)
	if len(opts.EncryptionKey) > 0 {
		// Badger requires an index cache for encrypted workloads.
		bopts = bopts.
			WithEncryptionKey(opts.EncryptionKey).
			WithIndexCacheSize(16 << 20)
	}
	db, err := badger.Open(bopts)
	if err != nil {
		return nil, errors.Wrap(err, "tokenstore: open badger")
	}
	return &BadgerStore{db: db}, nil
}

func (s *BadgerStore) Load() (*Entry, error) {
	var raw []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(badgerTokenKey))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}
		return item.Value(func(val []byte) error {
			raw = append([]byte(nil), val...)
			return nil
		})
	})
	if err != nil {
		return nil, errors.Wrap(err, "tokenstore: read badger")
	}
	if raw == nil {
		return nil, nil
	}
	var entry Entry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, nil
	}
	if entry.Token == "" {
		return nil, nil
	}
	return &entry, nil
}

func (s *BadgerStore) Save(entry Entry) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return errors.Wrap(err, "tokenstore: encode entry")
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(badgerTokenKey), raw)
	})
}

func (s *BadgerStore) Clear() error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(badgerTokenKey))
	})
}

func (s *BadgerStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// ParseKey decodes a 32-byte encryption key given as hex or base64.
// Empty input returns nil (no encryption).
func ParseKey(raw string) ([]byte, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if b, err := hex.DecodeString(strings.TrimPrefix(raw, "0x")); err == nil {
		if len(b) != 32 {
			return nil, fmt.Errorf("decoded key length must be 32, got %d", len(b))
		}
		return b, nil
	}
	if b, err := base64.StdEncoding.DecodeString(raw); err == nil {
		if len(b) != 32 {
			return nil, fmt.Errorf("decoded key length must be 32, got %d", len(b))
		}
		return b, nil
	}
	return nil, errors.New("key must be base64(32 bytes) or hex(32 bytes)")
}
