package errors

import stdErrors "errors"

// IsInvalidKey reports whether err is (or wraps) a KeyError.
func IsInvalidKey(err error) bool {
	var ke *KeyError
	return stdErrors.As(err, &ke)
}

// IsInvalidPath reports whether err is (or wraps) a StorageError carrying
// ErrorCodeInvalidPath.
func IsInvalidPath(err error) bool {
	var se *StorageError
	return stdErrors.As(err, &se) && se.Code() == ErrorCodeInvalidPath
}

// IsInvalidCRC reports whether err is (or wraps) a CodecError carrying
// ErrorCodeInvalidCRC.
func IsInvalidCRC(err error) bool {
	var ce *CodecError
	return stdErrors.As(err, &ce) && ce.Code() == ErrorCodeInvalidCRC
}

// IsIO reports whether err is (or wraps) a StorageError carrying
// ErrorCodeIO.
func IsIO(err error) bool {
	var se *StorageError
	return stdErrors.As(err, &se) && se.Code() == ErrorCodeIO
}

// Code extracts the ErrorCode from any of this package's error types,
// defaulting to ErrorCodeInternal for anything else.
func Code(err error) ErrorCode {
	var ke *KeyError
	if stdErrors.As(err, &ke) {
		return ke.Code()
	}

	var se *StorageError
	if stdErrors.As(err, &se) {
		return se.Code()
	}

	var ce *CodecError
	if stdErrors.As(err, &ce) {
		return ce.Code()
	}

	return ErrorCodeInternal
}
