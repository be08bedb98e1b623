package engine

import (
	"github.com/barreldb/barreldb/internal/record"
	"github.com/barreldb/barreldb/internal/segment"
)

// appendRecord encodes rec and appends it to the active segment, rolling
// over to a new generation first if the write would overflow the
// configured storage size (spec §4.5 step 7, §5 lock ordering: activeMu is
// held for the whole operation, and rollover's brief olderMu acquisition
// nests inside it).
func (e *Engine) appendRecord(rec record.Record) (segment.Position, error) {
	buf := record.Encode(rec)
	length := uint64(len(buf))

	e.activeMu.Lock()
	defer e.activeMu.Unlock()

	if e.active.Offset()+length > e.opts.StorageSize {
		if err := e.rollover(); err != nil {
			return segment.Position{}, err
		}
	}

	preOffset, err := e.active.Write(buf)
	if err != nil {
		return segment.Position{}, err
	}
	pos := segment.Position{Gen: e.active.Gen(), Offset: preOffset}

	if e.opts.SyncWrite {
		if err := e.active.Sync(); err != nil {
			return pos, err
		}
	}

	return pos, nil
}

// rollover fsyncs and freezes the current active segment, then opens a
// fresh one at the next generation as the new active segment. Callers must
// already hold activeMu for writing.
func (e *Engine) rollover() error {
	if err := e.active.Sync(); err != nil {
		return err
	}

	old := e.active
	oldGen := old.Gen()

	e.olderMu.Lock()
	e.older[oldGen] = old
	e.olderMu.Unlock()

	next, err := segment.Create(e.opts.DirPath, oldGen+1)
	if err != nil {
		return err
	}

	e.active = next
	e.log.Infow("segment rollover", "old_gen", oldGen, "new_gen", next.Gen())
	return nil
}
