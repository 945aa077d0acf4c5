package repo

import (
	"bytes"
	"context"
	"fmt"

	bolt "go.etcd.io/bbolt"
)

// kvBucket is the single bbolt bucket holding every key.
var kvBucket = []byte("kv")

// boltKVStore is the bbolt implementation of KVStore.
// It is the default local store: one file on disk, no server.
type boltKVStore struct {
	db *bolt.DB
}

// NewBoltKVStore constructs a KVStore on an open bbolt database, creating the
// bucket if it does not exist yet. The caller owns db and closes it.
func NewBoltKVStore(db *bolt.DB) (KVStore, error) {
	err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(kvBucket)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("repo.NewBoltKVStore: create bucket: %w", err)
	}
	return &boltKVStore{db: db}, nil
}

func (s *boltKVStore) Put(_ context.Context, key string, value []byte) error {
	if value == nil {
		// bbolt treats a nil value as "no value"; store written-empty explicitly.
		value = []byte{}
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(kvBucket).Put([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("repo.boltKVStore.Put: %w", err)
	}
	return nil
}

func (s *boltKVStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	var (
		value []byte
		ok    bool
	)
	err := s.db.View(func(tx *bolt.Tx) error {
		// Seek rather than Get: Get cannot tell a missing key from an empty value.
		k, v := tx.Bucket(kvBucket).Cursor().Seek([]byte(key))
		if k == nil || !bytes.Equal(k, []byte(key)) {
			return nil
		}
		// v is only valid for the life of the transaction.
		value = append([]byte{}, v...)
		ok = true
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("repo.boltKVStore.Get: %w", err)
	}
	return value, ok, nil
}
