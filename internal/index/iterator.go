package index

import (
	"bytes"
	"sort"

	"github.com/barreldb/barreldb/internal/segment"
	"github.com/barreldb/barreldb/pkg/options"
)

// Iterator walks a snapshotted, ordered (key, pos) sequence (spec §4.4).
// It is not safe for concurrent use by multiple goroutines — callers
// wrap it in their own synchronization if needed, the same way the
// teacher's engine/index types do for their own state.
type Iterator struct {
	entries []entry
	cfg     options.IteratorConfig
	cursor  int
}

func newIterator(entries []entry, cfg options.IteratorConfig) *Iterator {
	it := &Iterator{entries: entries, cfg: cfg}
	it.Rewind()
	return it
}

// Rewind re-points the iterator at the first item of the snapshot.
func (it *Iterator) Rewind() {
	it.cursor = 0
}

// Seek advances the iterator to the first item whose key is >= key in
// ascending mode, or <= key in reverse mode.
func (it *Iterator) Seek(key []byte) {
	n := len(it.entries)
	if !it.cfg.Reverse {
		it.cursor = sort.Search(n, func(i int) bool {
			return bytes.Compare(it.entries[i].key, key) >= 0
		})
		return
	}

	it.cursor = sort.Search(n, func(i int) bool {
		return bytes.Compare(it.entries[i].key, key) <= 0
	})
}

// Next returns the next (key, pos) pair whose key begins with the
// iterator's configured prefix (a no-op filter when the prefix is empty),
// advancing past it. ok is false once the snapshot is exhausted.
func (it *Iterator) Next() (key []byte, pos segment.Position, ok bool) {
	for it.cursor < len(it.entries) {
		e := it.entries[it.cursor]
		it.cursor++
		if len(it.cfg.Prefix) == 0 || bytes.HasPrefix(e.key, it.cfg.Prefix) {
			return e.key, e.pos, true
		}
	}
	return nil, segment.Position{}, false
}
