package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	bolt "go.etcd.io/bbolt"
)

// bucketPreferences holds every preference keyed by its logical name.
var bucketPreferences = []byte("preferences") //nolint:gochecknoglobals // bbolt bucket names are []byte.

const boltLockTimeout = 2 * time.Second

// BoltStore keeps preferences in a bbolt database.
type BoltStore struct {
	db *bolt.DB
}

var _ Store = (*BoltStore)(nil)

// OpenBolt creates or opens the database at path and ensures the preferences bucket exists.
func OpenBolt(path string) (*BoltStore, error) {
	expandedPath, err := ExpandPath(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(expandedPath), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	logrus.Debug("Opening preferences database: ", expandedPath)
	db, err := bolt.Open(expandedPath, 0o600, &bolt.Options{Timeout: boltLockTimeout})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketPreferences)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket %s: %w", bucketPreferences, err)
	}

	return &BoltStore{db: db}, nil
}

// Lookup implements Store.
func (s *BoltStore) Lookup(key string, dst any) (bool, error) {
	found := false
	err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketPreferences)
		if bucket == nil {
			return fmt.Errorf("bucket not found: %s", bucketPreferences)
		}
		data := bucket.Get([]byte(key))
		if data == nil {
			return nil
		}
		found = true
		if err := json.Unmarshal(data, dst); err != nil {
			return fmt.Errorf("decode %q: %w", key, err)
		}
		return nil
	})
	return found, err
}

// Set implements Store.
func (s *BoltStore) Set(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketPreferences)
		if bucket == nil {
			return fmt.Errorf("bucket not found: %s", bucketPreferences)
		}
		return bucket.Put([]byte(key), data)
	})
}

// Close releases the database file lock.
func (s *BoltStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
