package options

const (
	// DefaultStorageSize is the rollover threshold for the active segment:
	// 64 MiB, per spec §6.
	DefaultStorageSize uint64 = 64 * 1024 * 1024

	// MinStorageSize is the smallest threshold WithStorageSize will accept.
	// Below this, rollover would thrash on every write of any real size.
	MinStorageSize uint64 = 4 * 1024

	// DefaultIndexType is the only index variant BarrelDB ships: an
	// ordered map backed by a B-tree.
	DefaultIndexType = IndexTypeBTree

	// DefaultSyncWrite leaves fsync-per-write off; durability is opt-in
	// via Sync() or WithSyncWrite(true).
	DefaultSyncWrite = false
)

var defaultOptions = Options{
	StorageSize: DefaultStorageSize,
	IndexType:   DefaultIndexType,
	SyncWrite:   DefaultSyncWrite,
}

// NewDefaultOptions returns the baseline Options, with DirPath resolved to
// the OS temp directory (spec §6 default).
func NewDefaultOptions() Options {
	opts := defaultOptions
	opts.DirPath = defaultDirPath()
	return opts
}
