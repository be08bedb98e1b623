// Package options configures a BarrelDB engine: the data directory,
// rollover threshold, index variant, and fsync policy, following the
// functional-options pattern the teacher (iamNilotpal/ignite) uses for
// its own Options type.
package options

import (
	"os"
	"path/filepath"
	"strings"
)

// IndexType names an index implementation an engine can be configured
// with. BarrelDB ships one: an ordered B-tree.
type IndexType string

const (
	// IndexTypeBTree is the ordered-map index backed by google/btree.
	// The ordered scan (spec §4.4) requires this variant; it is the
	// default and, in this implementation, the only one wired up.
	IndexTypeBTree IndexType = "btree"
)

// Options holds every recognized engine configuration knob (spec §6).
type Options struct {
	// DirPath is the directory holding segment files.
	DirPath string

	// StorageSize is the rollover threshold, in bytes, for the active
	// segment.
	StorageSize uint64

	// IndexType names the index implementation. engine.Open does not read
	// it: it always builds the B-tree index.
	IndexType IndexType

	// SyncWrite, if set, fsyncs the active segment after every
	// successful append.
	SyncWrite bool
}

// OptionFunc mutates an Options value; applied in order by Open.
type OptionFunc func(*Options)

// WithDefaultOptions resets every field to the package defaults.
func WithDefaultOptions() OptionFunc {
	return func(o *Options) {
		*o = NewDefaultOptions()
	}
}

// WithDirPath overrides the data directory. Empty/whitespace-only values
// are ignored.
func WithDirPath(dir string) OptionFunc {
	return func(o *Options) {
		dir = strings.TrimSpace(dir)
		if dir != "" {
			o.DirPath = dir
		}
	}
}

// WithStorageSize overrides the rollover threshold. Values below
// MinStorageSize are ignored.
func WithStorageSize(size uint64) OptionFunc {
	return func(o *Options) {
		if size >= MinStorageSize {
			o.StorageSize = size
		}
	}
}

// WithIndexType overrides the index variant.
func WithIndexType(t IndexType) OptionFunc {
	return func(o *Options) {
		if t != "" {
			o.IndexType = t
		}
	}
}

// WithSyncWrite toggles fsync-per-write.
func WithSyncWrite(sync bool) OptionFunc {
	return func(o *Options) {
		o.SyncWrite = sync
	}
}

// IteratorConfig configures an engine scan: a key prefix filter and scan
// direction (spec §4.4/§4.6).
type IteratorConfig struct {
	Prefix  []byte
	Reverse bool
}

func defaultDirPath() string {
	return filepath.Join(os.TempDir(), "barreldb")
}
