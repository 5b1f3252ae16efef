package store

import (
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
	"gopkg.in/yaml.v3"
)

// bucketName is the bbolt bucket holding persisted store values.
const bucketName = "fern.store"

// Open opens the database file at path, creating it if needed. The open
// times out instead of blocking forever when another process holds the file
// lock. Close the handle when the last store using it is done.
func Open(path string) (*bolt.DB, error) {
	return bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
}

// persister loads and saves a store's state value.
type persister[T any] interface {
	// load returns the saved value and whether one existed.
	load() (T, bool, error)
	save(value T) error
}

// WithBolt persists the store's state under key in db, encoded as YAML.
// The database handle is owned by the caller; several stores may share one
// database under distinct keys.
func WithBolt[T any](db *bolt.DB, key string) Option[T] {
	return func(s *Store[T]) {
		s.persist = &boltPersister[T]{db: db, key: []byte(key)}
	}
}

type boltPersister[T any] struct {
	db  *bolt.DB
	key []byte
}

func (p *boltPersister[T]) load() (T, bool, error) {
	var value T
	var found bool
	err := p.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b == nil {
			return nil
		}
		raw := b.Get(p.key)
		if raw == nil {
			return nil
		}
		if err := yaml.Unmarshal(raw, &value); err != nil {
			return fmt.Errorf("decode %q: %w", p.key, err)
		}
		found = true
		return nil
	})
	return value, found, err
}

func (p *boltPersister[T]) save(value T) error {
	raw, err := yaml.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %q: %w", p.key, err)
	}
	return p.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		if err != nil {
			return err
		}
		return b.Put(p.key, raw)
	})
}
