package errors

// CodecError reports a failure while parsing a single log record: a
// truncated varint or short read on decode, or a CRC-32 mismatch.
type CodecError struct {
	*baseError
	gen    uint32
	offset uint64
}

// NewDecodeError reports a truncated or malformed varint header, or a
// record key or body cut short.
func NewDecodeError(cause error, msg string) *CodecError {
	return &CodecError{baseError: NewBaseError(cause, ErrorCodeDecode, msg)}
}

// NewInvalidCRCError reports a CRC-32 mismatch on a decoded record.
func NewInvalidCRCError(gen uint32, offset uint64) *CodecError {
	return &CodecError{
		baseError: NewBaseError(nil, ErrorCodeInvalidCRC, "crc mismatch decoding record"),
		gen:       gen,
		offset:    offset,
	}
}

// WithGen attaches the segment generation the record was read from.
func (e *CodecError) WithGen(gen uint32) *CodecError {
	e.gen = gen
	return e
}

// WithOffset attaches the byte offset the record's header started at.
func (e *CodecError) WithOffset(offset uint64) *CodecError {
	e.offset = offset
	return e
}

// Gen returns the segment generation the record was read from.
func (e *CodecError) Gen() uint32 { return e.gen }

// Offset returns the byte offset the record's header started at.
func (e *CodecError) Offset() uint64 { return e.offset }
