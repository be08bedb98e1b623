// Package barreldb is an embedded, log-structured key/value store: an
// append-only segmented record log on disk plus an in-memory ordered
// index, in the style of Bitcask. DB is the single entry point; everything
// under internal/ is an implementation detail reachable only through it.
package barreldb

import (
	"github.com/barreldb/barreldb/internal/engine"
	"github.com/barreldb/barreldb/pkg/logger"
	"github.com/barreldb/barreldb/pkg/options"
)

// DB is an open handle onto a BarrelDB data directory.
type DB struct {
	eng *engine.Engine
}

// Open opens (creating if necessary) a data directory, replaying its
// segments and building the in-memory index before returning. opts
// defaults to options.NewDefaultOptions and is customized with the
// options.With* functional options.
func Open(opts ...options.OptionFunc) (*DB, error) {
	cfg := options.NewDefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	eng, err := engine.Open(&engine.Config{
		Options: &cfg,
		Logger:  logger.New("engine"),
	})
	if err != nil {
		return nil, err
	}
	return &DB{eng: eng}, nil
}

// Set writes key to value, superseding any prior value for key.
func (db *DB) Set(key, value []byte) error {
	return db.eng.Set(key, value)
}

// Get returns the current value for key, or a KeyError if key isn't
// present.
func (db *DB) Get(key []byte) ([]byte, error) {
	return db.eng.Get(key)
}

// Delete removes key. It is an error to delete a key that isn't present.
func (db *DB) Delete(key []byte) error {
	return db.eng.Delete(key)
}

// Sync fsyncs the active segment, forcing every write up to this point to
// stable storage.
func (db *DB) Sync() error {
	return db.eng.Sync()
}

// Close flushes and releases every open file handle. DB is unusable after
// Close returns.
func (db *DB) Close() error {
	return db.eng.Close()
}

// Iter returns a cursor over the keyspace, snapshotted at call time and
// configured by cfg (prefix filter, ascending/descending).
func (db *DB) Iter(cfg options.IteratorConfig) *engine.Cursor {
	return db.eng.Iter(cfg)
}

// Fold calls fn with every live key/value pair in ascending key order,
// stopping early if fn returns false.
func (db *DB) Fold(fn func(key, value []byte) bool) error {
	return db.eng.Fold(fn)
}
