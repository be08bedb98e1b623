// Package segment implements BarrelDB's log file abstraction (spec §4.3):
// one append-only file per generation, holding a monotonically advancing
// write offset and backed by the internal/fio adapter.
package segment

import (
	stdErrors "errors"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/barreldb/barreldb/internal/fio"
	"github.com/barreldb/barreldb/internal/record"
	barrelerrors "github.com/barreldb/barreldb/pkg/errors"
)

// Position is an opaque locator for a record: which segment generation it
// lives in, and the byte offset of its header within that segment
// (spec §3).
type Position struct {
	Gen    uint32
	Offset uint64
}

// Segment is one log file: a generation number, an atomically-tracked
// write offset, and the underlying file handle.
type Segment struct {
	gen    uint32
	offset atomic.Uint64
	file   *fio.File
}

// Create makes a brand new segment file at generation gen under dir. It
// fails if the file already exists — callers (engine.Open, rollover)
// never expect to recreate an existing generation.
func Create(dir string, gen uint32) (*Segment, error) {
	path := filepath.Join(dir, FileName(gen))
	if _, err := os.Stat(path); err == nil {
		return nil, barrelerrors.NewIOError(os.ErrExist, "segment file already exists").WithPath(path)
	}
	f, err := fio.Open(path)
	if err != nil {
		return nil, err
	}
	return &Segment{gen: gen, file: f}, nil
}

// Open opens an existing segment file by its base name, parsing the
// generation strictly from the name (spec §4.3). name must already be
// known to be a file in dir.
func Open(dir, name string) (*Segment, error) {
	gen, ok := ParseName(name)
	if !ok {
		return nil, barrelerrors.NewInvalidPathError(filepath.Join(dir, name), "not a valid segment filename")
	}

	f, err := fio.Open(filepath.Join(dir, name))
	if err != nil {
		return nil, err
	}
	return &Segment{gen: gen, file: f}, nil
}

// Gen returns the segment's generation number.
func (s *Segment) Gen() uint32 { return s.gen }

// Offset returns the current write offset: the byte position at which the
// next append would land.
func (s *Segment) Offset() uint64 { return s.offset.Load() }

// SetOffset overwrites the tracked write offset. Used by recovery once it
// has replayed every record in the segment (spec §4.5 step 6).
func (s *Segment) SetOffset(off uint64) { s.offset.Store(off) }

// Write appends buf to the segment and advances the write offset by the
// number of bytes actually written. It returns the offset the write
// started at, i.e. the position the caller should index the appended
// record under.
func (s *Segment) Write(buf []byte) (preOffset uint64, err error) {
	n, err := s.file.Append(buf)
	preOffset = s.offset.Load()
	s.offset.Add(uint64(n))
	if err != nil {
		return preOffset, err
	}
	return preOffset, nil
}

// Sync fsyncs the segment file.
func (s *Segment) Sync() error { return s.file.Sync() }

// Close releases the segment's file handle.
func (s *Segment) Close() error { return s.file.Close() }

// ReadHeader reads the fixed MaxHeaderLen-byte window starting at offset
// and parses it into a record.Header. A zero-type sentinel or a genuine
// EOF both surface as record.ErrEOF(err) == true, signaling "stop scanning
// this segment" to recovery; any other error is a hard failure.
func (s *Segment) ReadHeader(offset uint64) (record.Header, error) {
	buf := make([]byte, record.MaxHeaderLen)
	n, err := s.file.ReadAt(buf, int64(offset))
	if n == 0 && err != nil {
		if err == io.EOF {
			return record.Header{}, record.EOF()
		}
		return record.Header{}, barrelerrors.NewIOError(err, "read record header").WithPath(s.file.Path())
	}

	h, decErr := record.DecodeHeader(buf[:n])
	if decErr != nil && !record.ErrEOF(decErr) {
		return record.Header{}, decErr
	}
	return h, decErr
}

// ReadKey reads just the key_len bytes of the key following the header at
// offset, without touching the value or validating the CRC. Used during
// recovery, where only the key is needed to update the index.
func (s *Segment) ReadKey(offset uint64, h record.Header) ([]byte, error) {
	buf := make([]byte, h.KeyLen)
	start := int64(offset) + int64(h.HeaderLen())
	n, err := s.file.ReadAt(buf, start)
	if err != nil && err != io.EOF {
		return nil, barrelerrors.NewIOError(err, "read record key").WithPath(s.file.Path())
	}
	if uint64(n) != h.KeyLen {
		return nil, barrelerrors.NewDecodeError(io.ErrUnexpectedEOF, "short read on record key")
	}
	return buf, nil
}

// ReadRecord reads and fully validates the record starting at offset:
// header, key, value, and CRC-32.
func (s *Segment) ReadRecord(offset uint64) (record.Record, error) {
	h, err := s.ReadHeader(offset)
	if err != nil {
		return record.Record{}, err
	}

	size := h.Size()
	body := make([]byte, size)
	n, err := s.file.ReadAt(body, int64(offset))
	if err != nil && err != io.EOF {
		return record.Record{}, barrelerrors.NewIOError(err, "read record body").WithPath(s.file.Path())
	}
	if uint64(n) != size {
		return record.Record{}, barrelerrors.NewDecodeError(io.ErrUnexpectedEOF, "short read on record body")
	}

	rec, err := record.DecodeFull(h, body)
	if err != nil {
		var ce *barrelerrors.CodecError
		if stdErrors.As(err, &ce) {
			ce.WithGen(s.gen).WithOffset(offset)
		}
		return record.Record{}, err
	}
	return rec, nil
}
