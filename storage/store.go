// Package storage persists the collective's artifacts in BadgerDB. The
// minds write through the narrow ArtifactRepository interface; prefix reads
// exist only for the observability API.
package storage

import (
	"encoding/json"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v3"
)

// Store wraps a BadgerDB instance.
type Store struct {
	db     *badger.DB
	mu     sync.Mutex
	config Config
	stopGC chan struct{}
}

// Open opens (or creates) the store described by config.
func Open(config Config) (*Store, error) {
	opts := badger.DefaultOptions(filepath.Join(config.DataDir, "badgerdb"))
	if config.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	if config.DisableLogging {
		opts.Logger = nil
	}
	opts.SyncWrites = config.SyncWrites

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open BadgerDB: %v", err)
	}

	s := &Store{db: db, config: config, stopGC: make(chan struct{})}
	if config.GCInterval > 0 {
		go s.gcRoutine(time.Duration(config.GCInterval) * time.Second)
	}
	return s, nil
}

func (s *Store) gcRoutine(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopGC:
			return
		case <-ticker.C:
			if err := s.RunGC(); err != nil && err != badger.ErrNoRewrite {
				log.Printf("BadgerDB GC failed: %v", err)
			}
		}
	}
}

// Close stops background GC and closes the database.
func (s *Store) Close() error {
	close(s.stopGC)
	return s.db.Close()
}

// RunGC runs value-log garbage collection.
func (s *Store) RunGC() error {
	return s.db.RunValueLogGC(0.5)
}

// Put stores a key-value pair.
func (s *Store) Put(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
}

// Get retrieves a value by key; a missing key returns a nil value.
func (s *Store) Get(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var valCopy []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return nil
			}
			return err
		}
		return item.Value(func(val []byte) error {
			valCopy = append([]byte{}, val...)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get value: %v", err)
	}
	return valCopy, nil
}

// GetByPrefix retrieves all key-value pairs under a prefix.
func (s *Store) GetByPrefix(prefix string) (map[string][]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make(map[string][]byte)
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefixBytes := []byte(prefix)
		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
			item := it.Item()
			k := item.KeyCopy(nil)
			err := item.Value(func(v []byte) error {
				result[string(k)] = append([]byte{}, v...)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get values by prefix: %v", err)
	}
	return result, nil
}

// PutObject serializes and stores an object.
func (s *Store) PutObject(key string, obj interface{}) error {
	data, err := json.Marshal(obj)
	if err != nil {
		return fmt.Errorf("failed to marshal object: %v", err)
	}
	return s.Put(key, data)
}
