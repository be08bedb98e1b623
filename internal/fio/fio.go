// Package fio is BarrelDB's file I/O adapter (spec §4.2): a thin
// capability over a single open file exposing positional read, append,
// and fsync. Reads never mutate a shared cursor (they use ReadAt), so many
// readers can run concurrently with each other and with an in-flight
// append; appends to the same handle are serialized against each other.
package fio

import (
	"os"
	"sync"

	barrelerrors "github.com/barreldb/barreldb/pkg/errors"
)

// File wraps an *os.File opened O_APPEND, serializing writers against each
// other while leaving positional reads lock-free.
type File struct {
	path string
	f    *os.File
	wmu  sync.Mutex
}

// Open opens path for reading and appending, creating it if it doesn't
// exist.
func Open(path string) (*File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return nil, barrelerrors.NewIOError(err, "open segment file").WithPath(path)
	}
	return &File{path: path, f: f}, nil
}

// ReadAt reads len(buf) bytes starting at off, returning however many
// bytes it actually got (possibly short, at EOF) and the underlying error,
// unwrapped so callers can still test for io.EOF.
func (f *File) ReadAt(buf []byte, off int64) (int, error) {
	return f.f.ReadAt(buf, off)
}

// Append writes buf to the end of the file. Because the file descriptor
// was opened O_APPEND, concurrent Append calls on the same handle from
// different goroutines would already be atomic at the syscall level on
// POSIX systems for writes that fit a single write(2); the mutex here
// serializes Append calls on this handle so behavior is uniform across
// platforms. It covers only the write itself: offset accounting a caller
// does after Append returns (see segment.Segment.Write) is outside it.
func (f *File) Append(buf []byte) (int, error) {
	f.wmu.Lock()
	defer f.wmu.Unlock()

	n, err := f.f.Write(buf)
	if err != nil {
		return n, barrelerrors.NewIOError(err, "append to segment file").WithPath(f.path)
	}
	return n, nil
}

// Sync forces the file's data and metadata to stable storage.
func (f *File) Sync() error {
	if err := f.f.Sync(); err != nil {
		return barrelerrors.NewIOError(err, "fsync segment file").WithPath(f.path)
	}
	return nil
}

// Close closes the underlying file descriptor.
func (f *File) Close() error {
	if err := f.f.Close(); err != nil {
		return barrelerrors.NewIOError(err, "close segment file").WithPath(f.path)
	}
	return nil
}

// Path returns the path the file was opened from.
func (f *File) Path() string { return f.path }
