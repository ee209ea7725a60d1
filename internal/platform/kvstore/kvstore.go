// Package kvstore is the embedded storage backend: one bolt file, one bucket
// per entity, JSON values keyed by entity id.
package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/boltdb/bolt"
)

// ErrReadOnlyTx is returned when a write is attempted through a context that
// carries a read-only transaction.
var ErrReadOnlyTx = errors.New("kvstore: write inside read-only transaction")

type txKey struct{}

type Store struct {
	db *bolt.DB
}

// Open opens (creating if needed) the bolt file at path and ensures the
// given buckets exist.
func Open(path string, buckets ...string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt file %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range buckets {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return fmt.Errorf("create bucket %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close the database and release the file lock.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping reports bolt.ErrDatabaseNotOpen once the store is closed.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.View(func(*bolt.Tx) error { return nil })
}

// WithinTx runs fn inside a single read-write bolt transaction. Store calls
// made with the context passed to fn reuse that transaction; opening a second
// one from the same goroutine would deadlock bolt.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := txFrom(ctx); ok {
		return fn(ctx)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

func txFrom(ctx context.Context) (*bolt.Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(*bolt.Tx)
	return tx, ok && tx != nil
}

func (s *Store) view(ctx context.Context, fn func(tx *bolt.Tx) error) error {
	if tx, ok := txFrom(ctx); ok {
		return fn(tx)
	}
	return s.db.View(fn)
}

func (s *Store) update(ctx context.Context, fn func(tx *bolt.Tx) error) error {
	if tx, ok := txFrom(ctx); ok {
		if !tx.Writable() {
			return ErrReadOnlyTx
		}
		return fn(tx)
	}
	return s.db.Update(fn)
}

func bucketFor(tx *bolt.Tx, name string) (*bolt.Bucket, error) {
	if tx.Writable() {
		return tx.CreateBucketIfNotExists([]byte(name))
	}
	return tx.Bucket([]byte(name)), nil
}

// Put stores v as JSON under key, replacing any previous value.
func (s *Store) Put(ctx context.Context, bucket, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", bucket, key, err)
	}
	return s.update(ctx, func(tx *bolt.Tx) error {
		b, err := bucketFor(tx, bucket)
		if err != nil {
			return err
		}
		return b.Put([]byte(key), raw)
	})
}

// Insert is Put that refuses to overwrite; it reports false when key exists.
func (s *Store) Insert(ctx context.Context, bucket, key string, v any) (bool, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return false, fmt.Errorf("encode %s/%s: %w", bucket, key, err)
	}
	inserted := false
	err = s.update(ctx, func(tx *bolt.Tx) error {
		b, err := bucketFor(tx, bucket)
		if err != nil {
			return err
		}
		if b.Get([]byte(key)) != nil {
			return nil
		}
		inserted = true
		return b.Put([]byte(key), raw)
	})
	return inserted, err
}

// Get decodes the value under key into v. It reports false when absent.
func (s *Store) Get(ctx context.Context, bucket, key string, v any) (bool, error) {
	found := false
	err := s.view(ctx, func(tx *bolt.Tx) error {
		b, err := bucketFor(tx, bucket)
		if err != nil || b == nil {
			return err
		}
		raw := b.Get([]byte(key))
		if raw == nil {
			return nil
		}
		found = true
		if err := json.Unmarshal(raw, v); err != nil {
			return fmt.Errorf("decode %s/%s: %w", bucket, key, err)
		}
		return nil
	})
	return found, err
}

// Delete removes key and reports whether it was present.
func (s *Store) Delete(ctx context.Context, bucket, key string) (bool, error) {
	deleted := false
	err := s.update(ctx, func(tx *bolt.Tx) error {
		b, err := bucketFor(tx, bucket)
		if err != nil {
			return err
		}
		if b.Get([]byte(key)) == nil {
			return nil
		}
		deleted = true
		return b.Delete([]byte(key))
	})
	return deleted, err
}

// ForEach calls fn for every raw value in bucket in key order. Returning an
// error from fn stops the walk.
func (s *Store) ForEach(ctx context.Context, bucket string, fn func(key string, raw []byte) error) error {
	return s.view(ctx, func(tx *bolt.Tx) error {
		b, err := bucketFor(tx, bucket)
		if err != nil || b == nil {
			return err
		}
		return b.ForEach(func(k, v []byte) error {
			return fn(string(k), v)
		})
	})
}

// List decodes every value in bucket that satisfies keep. A nil keep
// returns everything.
func List[T any](ctx context.Context, s *Store, bucket string, keep func(T) bool) ([]T, error) {
	var out []T
	err := s.ForEach(ctx, bucket, func(key string, raw []byte) error {
		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			return fmt.Errorf("decode %s/%s: %w", bucket, key, err)
		}
		if keep == nil || keep(item) {
			out = append(out, item)
		}
		return nil
	})
	return out, err
}
