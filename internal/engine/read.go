package engine

import (
	"github.com/barreldb/barreldb/internal/record"
	"github.com/barreldb/barreldb/internal/segment"
	barrelerrors "github.com/barreldb/barreldb/pkg/errors"
)

// readAt dereferences pos against whichever segment currently holds that
// generation: the active segment if pos.Gen matches it, otherwise the
// frozen segment map. It never holds activeMu and olderMu at once (spec §5
// lock ordering: active is checked and released before older is touched).
func (e *Engine) readAt(pos segment.Position) (record.Record, error) {
	e.activeMu.RLock()
	if e.active.Gen() == pos.Gen {
		rec, err := e.active.ReadRecord(pos.Offset)
		e.activeMu.RUnlock()
		return rec, err
	}
	e.activeMu.RUnlock()

	e.olderMu.RLock()
	defer e.olderMu.RUnlock()

	seg, ok := e.older[pos.Gen]
	if !ok {
		return record.Record{}, barrelerrors.NewIOError(nil, "index points at a generation with no backing segment").WithGen(pos.Gen)
	}
	return seg.ReadRecord(pos.Offset)
}
