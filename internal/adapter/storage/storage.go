package storage

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/syndtr/goleveldb/leveldb"
	lvlerrors "github.com/syndtr/goleveldb/leveldb/errors"
	lvlstorage "github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.KeyValueStore = (*KV)(nil)

// KV is the persistence collaborator, a string key-value store backed
// by LevelDB. A corrupt database is recovered in place on open, so a
// damaged first run behaves like an empty one.
type KV struct {
	db *leveldb.DB
}

func NewKV(path string) (KV, error) {
	const op = "storage.NewKV"

	db, err := leveldb.OpenFile(path, nil)
	if lvlerrors.IsCorrupted(err) {
		slog.Warn("store is corrupted, recovering", "op", op, "path", path)
		db, err = leveldb.RecoverFile(path, nil)
	}
	if err != nil {
		return KV{}, fmt.Errorf("%s: failed to open store: %w", op, err)
	}
	return KV{db}, nil
}

// NewMemKV opens a store on volatile in-memory backing, used in tests
// and as the graceful fallback when the filesystem store is broken.
func NewMemKV() (KV, error) {
	const op = "storage.NewMemKV"

	db, err := leveldb.Open(lvlstorage.NewMemStorage(), nil)
	if err != nil {
		return KV{}, fmt.Errorf("%s: %w", op, err)
	}
	return KV{db}, nil
}

func (s KV) Get(key string) (string, error) {
	const op = "KV.Get"

	v, err := s.db.Get([]byte(key), nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return "", fmt.Errorf("%s: %q: %w", op, key, port.ErrNotFound)
		}
		return "", fmt.Errorf("%s: %q: %w", op, key, err)
	}
	return string(v), nil
}

func (s KV) Set(key, value string) error {
	const op = "KV.Set"

	if err := s.db.Put([]byte(key), []byte(value), nil); err != nil {
		return fmt.Errorf("%s: %q: %w", op, key, err)
	}
	return nil
}

func (s KV) Delete(key string) error {
	const op = "KV.Delete"

	if err := s.db.Delete([]byte(key), nil); err != nil {
		return fmt.Errorf("%s: %q: %w", op, key, err)
	}
	return nil
}

func (s KV) Close() {
	const op = "KV.Close"
	log := slog.With("op", op)

	if err := s.db.Close(); err != nil {
		log.Error("failed to close store", "err", err)
		return
	}
	log.Info("store is closed")
}
