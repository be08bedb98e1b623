package errors

// ErrorCode categorizes a BarrelDB error so callers can branch on it
// without parsing error strings.
type ErrorCode string

// The taxonomy is deliberately narrow: it covers exactly the error
// categories spec'd for the storage engine. ReadEOF is intentionally
// absent here — it never leaves the recovery scan, so it has no public
// code (see internal/record.errEOF).
const (
	// ErrorCodeIO covers any underlying filesystem failure: open, read,
	// write, or fsync.
	ErrorCodeIO ErrorCode = "IO_ERROR"

	// ErrorCodeInvalidKey covers an empty key passed to set/get/delete,
	// or a get/delete against a key absent from the index.
	ErrorCodeInvalidKey ErrorCode = "INVALID_KEY"

	// ErrorCodeInvalidPath covers a directory entry that does not parse
	// as a segment filename when one was expected.
	ErrorCodeInvalidPath ErrorCode = "INVALID_PATH"

	// ErrorCodeInvalidCRC covers a decoded record whose recomputed CRC-32
	// does not match the trailing stored checksum.
	ErrorCodeInvalidCRC ErrorCode = "INVALID_CRC"

	// ErrorCodeDecode covers a truncated or malformed varint encountered
	// while decoding a record header, or a short read of a record's key
	// or body.
	ErrorCodeDecode ErrorCode = "DECODE_ERROR"

	// ErrorCodeInternal is the fallback for anything that doesn't carry
	// one of the codes above.
	ErrorCodeInternal ErrorCode = "INTERNAL_ERROR"
)
