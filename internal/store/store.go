// Praedictus - Employee Attrition Prediction and Retention Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/praedictus

package store

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/praedictus/internal/feature"
	"github.com/tomtom215/praedictus/internal/logging"
	"github.com/tomtom215/praedictus/internal/metrics"
	"github.com/tomtom215/praedictus/internal/model"
)

var (
	// ErrNotFound is returned when no bundle exists for the given ID.
	ErrNotFound = errors.New("model not found")

	// ErrClosed is returned for operations on a closed store.
	ErrClosed = errors.New("model store is closed")
)

// bundlePrefix namespaces bundle keys inside the database.
const bundlePrefix = "bundle:"

// gcDiscardRatio is the minimum fraction of a value log file that must
// be garbage before BadgerDB rewrites it.
const gcDiscardRatio = 0.5

// Bundle is a trained model together with everything needed to apply
// it to new records: the fitted feature codec, the serialized
// classifier, and the evaluation metrics from the held-out split.
type Bundle struct {
	ID           string          `json:"id"`
	CreatedAt    time.Time       `json:"created_at"`
	Algorithm    model.Algorithm `json:"algorithm"`
	TargetColumn string          `json:"target_column"`
	IDColumn     string          `json:"id_column"`
	Seed         int64           `json:"seed"`
	TrainRows    int             `json:"train_rows"`
	TestRows     int             `json:"test_rows"`
	Fitted       *feature.Fitted `json:"fitted"`
	Classifier   json.RawMessage `json:"classifier"`
	Metrics      model.Metrics   `json:"metrics"`
}

// Summary is the listing view of a bundle, without the fitted codec
// and classifier payloads.
type Summary struct {
	ID           string          `json:"id"`
	CreatedAt    time.Time       `json:"created_at"`
	Algorithm    model.Algorithm `json:"algorithm"`
	TargetColumn string          `json:"target_column"`
	TrainRows    int             `json:"train_rows"`
	TestRows     int             `json:"test_rows"`
	Metrics      model.Metrics   `json:"metrics"`
}

// Summary returns the listing view of the bundle.
func (b *Bundle) Summary() Summary {
	return Summary{
		ID:           b.ID,
		CreatedAt:    b.CreatedAt,
		Algorithm:    b.Algorithm,
		TargetColumn: b.TargetColumn,
		TrainRows:    b.TrainRows,
		TestRows:     b.TestRows,
		Metrics:      b.Metrics,
	}
}

// Config holds model store settings.
type Config struct {
	// Path is the BadgerDB directory. Ignored when InMemory is set.
	Path string

	// InMemory keeps all data in memory. Intended for tests.
	InMemory bool
}

// Store is a BadgerDB-backed bundle store. Safe for concurrent use.
type Store struct {
	db *badger.DB

	mu     sync.RWMutex
	closed bool
}

// Open opens (or creates) the store at cfg.Path.
func Open(cfg Config) (*Store, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, fmt.Errorf("store path must be set")
	}

	opts := badger.DefaultOptions(cfg.Path)
	opts.InMemory = cfg.InMemory
	if cfg.InMemory {
		opts.Dir = ""
		opts.ValueDir = ""
	}
	opts.SyncWrites = !cfg.InMemory
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	s := &Store{db: db}

	count, err := s.count()
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("count bundles: %w", err)
	}
	metrics.StoredModels.Set(float64(count))

	logging.Info().
		Str("path", cfg.Path).
		Bool("in_memory", cfg.InMemory).
		Int("models", count).
		Msg("model store opened")
	return s, nil
}

// Put persists the bundle and returns its ID. A bundle with no ID is
// assigned one; an existing ID overwrites the previous version.
func (s *Store) Put(b *Bundle) (id string, err error) {
	defer func() { metrics.RecordStoreOp("put", err) }()

	if err = s.checkOpen(); err != nil {
		return "", err
	}
	if b == nil {
		return "", fmt.Errorf("bundle cannot be nil")
	}

	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}

	payload, err := json.Marshal(b)
	if err != nil {
		return "", fmt.Errorf("marshal bundle: %w", err)
	}

	key := []byte(bundlePrefix + b.ID)
	var existed bool
	err = s.db.Update(func(txn *badger.Txn) error {
		if _, gerr := txn.Get(key); gerr == nil {
			existed = true
		}
		return txn.Set(key, payload)
	})
	if err != nil {
		return "", fmt.Errorf("store bundle %s: %w", b.ID, err)
	}
	if !existed {
		metrics.StoredModels.Inc()
	}

	logging.Info().
		Str("model_id", b.ID).
		Str("algorithm", string(b.Algorithm)).
		Int("bytes", len(payload)).
		Msg("model bundle stored")
	return b.ID, nil
}

// Get returns the bundle for the given ID, or ErrNotFound.
func (s *Store) Get(id string) (b *Bundle, err error) {
	defer func() { metrics.RecordStoreOp("get", err) }()

	if err = s.checkOpen(); err != nil {
		return nil, err
	}

	var bundle Bundle
	err = s.db.View(func(txn *badger.Txn) error {
		item, gerr := txn.Get([]byte(bundlePrefix + id))
		if errors.Is(gerr, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if gerr != nil {
			return gerr
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &bundle)
		})
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load bundle %s: %w", id, err)
	}
	return &bundle, nil
}

// List returns summaries of all stored bundles, newest first.
func (s *Store) List() (summaries []Summary, err error) {
	defer func() { metrics.RecordStoreOp("list", err) }()

	if err = s.checkOpen(); err != nil {
		return nil, err
	}

	summaries = []Summary{}
	err = s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(bundlePrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			verr := it.Item().Value(func(val []byte) error {
				var b Bundle
				if uerr := json.Unmarshal(val, &b); uerr != nil {
					return uerr
				}
				summaries = append(summaries, b.Summary())
				return nil
			})
			if verr != nil {
				return verr
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list bundles: %w", err)
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
	})
	return summaries, nil
}

// Delete removes the bundle for the given ID, or returns ErrNotFound.
func (s *Store) Delete(id string) (err error) {
	defer func() { metrics.RecordStoreOp("delete", err) }()

	if err = s.checkOpen(); err != nil {
		return err
	}

	key := []byte(bundlePrefix + id)
	err = s.db.Update(func(txn *badger.Txn) error {
		if _, gerr := txn.Get(key); errors.Is(gerr, badger.ErrKeyNotFound) {
			return ErrNotFound
		} else if gerr != nil {
			return gerr
		}
		return txn.Delete(key)
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete bundle %s: %w", id, err)
	}

	metrics.StoredModels.Dec()
	logging.Info().Str("model_id", id).Msg("model bundle deleted")
	return nil
}

// RunGC runs value-log garbage collection until no file qualifies for
// a rewrite. Intended to be called periodically.
func (s *Store) RunGC() error {
	if err := s.checkOpen(); err != nil {
		return err
	}

	for {
		err := s.db.RunValueLogGC(gcDiscardRatio)
		if errors.Is(err, badger.ErrNoRewrite) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("run GC: %w", err)
		}
	}
}

// Close shuts down the store. Further operations return ErrClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

func (s *Store) checkOpen() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}
	return nil
}

func (s *Store) count() (int, error) {
	n := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(bundlePrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}
