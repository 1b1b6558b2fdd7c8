package cache

import (
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
)

// PebbleStore implements Store on an embedded pebble database. Writes use
// NoSync: the store is a cache, losing the tail of it on a crash only costs
// refetches.
type PebbleStore struct {
	db *pebble.DB
}

// OpenPebble opens (or creates) the persistent cache at path.
func OpenPebble(path string) (*PebbleStore, error) {
	cache := pebble.NewCache(64 << 20)
	defer cache.Unref()

	db, err := pebble.Open(path, &pebble.Options{
		Cache:        cache,
		MemTableSize: 32 << 20,
	})
	if err != nil {
		return nil, fmt.Errorf("open pebble at %s: %w", path, err)
	}
	return &PebbleStore{db: db}, nil
}

// Get returns a copy of the stored value, or ErrStoreMiss when absent.
func (s *PebbleStore) Get(key []byte) ([]byte, error) {
	value, closer, err := s.db.Get(key)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, ErrStoreMiss
		}
		return nil, fmt.Errorf("pebble get: %w", err)
	}
	defer closer.Close()

	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Put inserts or overwrites a value. Content-addressed keys make overwrites
// idempotent.
func (s *PebbleStore) Put(key, value []byte) error {
	if err := s.db.Set(key, value, pebble.NoSync); err != nil {
		return fmt.Errorf("pebble set: %w", err)
	}
	return nil
}

// Delete removes a single key.
func (s *PebbleStore) Delete(key []byte) error {
	if err := s.db.Delete(key, pebble.NoSync); err != nil {
		return fmt.Errorf("pebble delete: %w", err)
	}
	return nil
}

// DeleteRange removes all keys in [start, end).
func (s *PebbleStore) DeleteRange(start, end []byte) error {
	if err := s.db.DeleteRange(start, end, pebble.NoSync); err != nil {
		return fmt.Errorf("pebble delete range: %w", err)
	}
	return nil
}

// Close flushes memtables and closes the database.
func (s *PebbleStore) Close() error {
	if err := s.db.Flush(); err != nil {
		_ = s.db.Close()
		return fmt.Errorf("pebble flush: %w", err)
	}
	return s.db.Close()
}
