package errors

// StorageError reports a failure in the segment/file-I/O layer: opening,
// reading, writing, or syncing a segment file, or a directory entry that
// doesn't parse as a segment name.
type StorageError struct {
	*baseError
	path string
	gen  uint32
	hasG bool
}

// NewIOError wraps an underlying filesystem error.
func NewIOError(cause error, msg string) *StorageError {
	return &StorageError{baseError: NewBaseError(cause, ErrorCodeIO, msg)}
}

// NewInvalidPathError reports a directory entry that failed to parse as a
// segment filename.
func NewInvalidPathError(path, msg string) *StorageError {
	return &StorageError{baseError: NewBaseError(nil, ErrorCodeInvalidPath, msg), path: path}
}

// WithPath attaches the file path involved in the failure.
func (e *StorageError) WithPath(path string) *StorageError {
	e.path = path
	return e
}

// WithGen attaches the segment generation involved in the failure.
func (e *StorageError) WithGen(gen uint32) *StorageError {
	e.gen = gen
	e.hasG = true
	return e
}

// Path returns the file path recorded on this error, if any.
func (e *StorageError) Path() string { return e.path }

// Gen returns the segment generation recorded on this error and whether
// one was set.
func (e *StorageError) Gen() (uint32, bool) { return e.gen, e.hasG }
