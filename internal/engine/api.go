package engine

import (
	"github.com/barreldb/barreldb/internal/index"
	"github.com/barreldb/barreldb/internal/record"
	"github.com/barreldb/barreldb/internal/segment"
	barrelerrors "github.com/barreldb/barreldb/pkg/errors"
	"github.com/barreldb/barreldb/pkg/options"
)

// Set writes key/value as a Normal record and updates the index to point
// at it (spec §4.5, invariant 2: the index always reflects the latest
// write for a key).
func (e *Engine) Set(key, value []byte) error {
	if e.closed.Load() {
		return ErrClosed
	}
	if len(key) == 0 {
		return barrelerrors.NewKeyError("Set", key, "key must not be empty")
	}

	pos, err := e.appendRecord(record.NewSet(key, value))
	if err != nil {
		return err
	}
	e.idx.Put(key, pos)
	return nil
}

// Get looks key up in the index and reads the record it points at.
func (e *Engine) Get(key []byte) ([]byte, error) {
	if e.closed.Load() {
		return nil, ErrClosed
	}
	if len(key) == 0 {
		return nil, barrelerrors.NewKeyError("Get", key, "key must not be empty")
	}

	pos, ok := e.idx.Get(key)
	if !ok {
		return nil, barrelerrors.NewKeyError("Get", key, "key not found")
	}

	rec, err := e.readAt(pos)
	if err != nil {
		return nil, err
	}
	return rec.Value, nil
}

// Delete appends a tombstone for key and removes it from the index. A
// delete of a key that isn't present is an error (spec §4.5), not a no-op.
func (e *Engine) Delete(key []byte) error {
	if e.closed.Load() {
		return ErrClosed
	}
	if len(key) == 0 {
		return barrelerrors.NewKeyError("Delete", key, "key must not be empty")
	}
	if _, ok := e.idx.Get(key); !ok {
		return barrelerrors.NewKeyError("Delete", key, "key not found")
	}

	if _, err := e.appendRecord(record.NewRemove(key)); err != nil {
		return err
	}
	e.idx.Delete(key)
	return nil
}

// Sync fsyncs the active segment.
func (e *Engine) Sync() error {
	if e.closed.Load() {
		return ErrClosed
	}
	e.activeMu.RLock()
	defer e.activeMu.RUnlock()
	return e.active.Sync()
}

// Close fsyncs and closes every segment the engine holds open. It is safe
// to call exactly once; a second call returns ErrClosed. Sync failures on
// teardown are logged, not returned, matching the best-effort
// sync-on-shutdown behavior of the original implementation this engine's
// recovery semantics are drawn from.
func (e *Engine) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return ErrClosed
	}

	e.activeMu.Lock()
	defer e.activeMu.Unlock()
	if err := e.active.Sync(); err != nil {
		e.log.Warnw("fsync active segment on close failed", "error", err)
	}

	var firstErr error
	if err := e.active.Close(); err != nil {
		firstErr = err
	}

	e.olderMu.Lock()
	defer e.olderMu.Unlock()
	for gen, s := range e.older {
		if err := s.Close(); err != nil {
			e.log.Warnw("close frozen segment failed", "gen", gen, "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	return firstErr
}

// Iter returns a snapshotted, ordered cursor over the index, configured by
// cfg (spec §4.4/§4.6). A Cursor resolves each entry's value lazily, on
// Value(), rather than up front.
func (e *Engine) Iter(cfg options.IteratorConfig) *Cursor {
	return &Cursor{eng: e, it: e.idx.Iterator(cfg)}
}

// Cursor pairs a snapshotted index iterator with the engine needed to
// resolve each position into a full record's value.
type Cursor struct {
	eng *Engine
	it  *index.Iterator

	key []byte
	pos segment.Position
	ok  bool
}

// Rewind re-points the cursor at the first entry of its snapshot.
func (c *Cursor) Rewind() { c.it.Rewind(); c.key, c.pos, c.ok = nil, segment.Position{}, false }

// Seek advances the cursor to the first entry at or past key (spec §4.4
// direction semantics).
func (c *Cursor) Seek(key []byte) { c.it.Seek(key) }

// Next advances the cursor and reports whether another entry matched the
// cursor's configured prefix. Call Key/Value after a true result.
func (c *Cursor) Next() bool {
	key, pos, ok := c.it.Next()
	c.key, c.pos, c.ok = key, pos, ok
	return ok
}

// Key returns the current entry's key.
func (c *Cursor) Key() []byte { return c.key }

// Value reads and returns the current entry's value from its segment.
func (c *Cursor) Value() ([]byte, error) {
	if !c.ok {
		return nil, barrelerrors.NewKeyError("Iter", nil, "cursor has no current entry")
	}
	rec, err := c.eng.readAt(c.pos)
	if err != nil {
		return nil, err
	}
	return rec.Value, nil
}

// Fold walks every live key in ascending order, calling fn with each key
// and value until fn returns false or the scan is exhausted (spec §4.6):
// sugar over Iter + Next + Value.
func (e *Engine) Fold(fn func(key, value []byte) bool) error {
	if e.closed.Load() {
		return ErrClosed
	}

	c := e.Iter(options.IteratorConfig{})
	for c.Next() {
		value, err := c.Value()
		if err != nil {
			return err
		}
		if !fn(c.Key(), value) {
			break
		}
	}
	return nil
}
