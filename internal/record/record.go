// Package record implements BarrelDB's on-disk record framing: encode a
// key/value (or tombstone) pair into a CRC-32-protected byte string, and
// decode that string back, in two passes (header, then full record) so the
// caller can size its second read exactly.
//
// Layout (spec §4.1), all fixed-width integers big-endian:
//
//	| type (1B) | key_len (varint) | val_len (varint) | key | value | crc32 (4B) |
package record

import (
	"encoding/binary"
	"errors"
	"hash/crc32"

	barrelerrors "github.com/barreldb/barreldb/pkg/errors"
)

// Type identifies what a record does: write a value, or tombstone a key.
type Type byte

const (
	// TypeReserved (the zero value) never appears in a record written by
	// this package. On disk, a type byte of 0 is the end-of-stream
	// sentinel recovery uses to stop scanning a segment's zero-padded or
	// partially-written tail.
	TypeReserved Type = 0
	// TypeNormal is a live key/value write.
	TypeNormal Type = 1
	// TypeRemove is a tombstone: it supersedes any prior Normal record
	// for its key and carries no value.
	TypeRemove Type = 2
)

// MaxHeaderLen is the fixed window recovery and point reads use for a
// header read: 1 type byte plus two 5-byte (max) varints.
const MaxHeaderLen = 1 + binary.MaxVarintLen32 + binary.MaxVarintLen32

// crcLen is the width of the trailing CRC-32 field.
const crcLen = 4

// errEOF is the internal "zero-type sentinel" recovery uses to stop
// scanning a segment. It is never returned from Engine's public surface —
// spec §7 classifies it as "internal; used to terminate a segment scan,
// not surfaced to the user".
var errEOF = errors.New("record: end of segment")

// ErrEOF reports whether err is the internal end-of-segment sentinel.
func ErrEOF(err error) bool {
	return errors.Is(err, errEOF)
}

// EOF returns the end-of-segment sentinel. internal/segment uses it to
// report a genuine filesystem EOF on a header read that starts at or past
// the end of the file, so
// that both causes of "nothing more to replay here" (a zero-type tail and
// running off the end of the file) look identical to recovery.
func EOF() error {
	return errEOF
}

// Header is the parsed fixed-format prefix of a record: its type and the
// byte lengths of the key and value that follow.
type Header struct {
	Type   Type
	KeyLen uint64
	ValLen uint64
	// headerLen is the number of bytes the type+varints actually occupied
	// on disk — not necessarily MaxHeaderLen.
	headerLen int
}

// HeaderLen returns the number of bytes the type byte and both varints
// occupy on disk.
func (h Header) HeaderLen() int { return h.headerLen }

// Size returns the total on-disk length of the record this header
// describes: header + key + value + CRC trailer.
func (h Header) Size() uint64 {
	return uint64(h.headerLen) + h.KeyLen + h.ValLen + crcLen
}

// Record is a fully decoded log entry.
type Record struct {
	Type  Type
	Key   []byte
	Value []byte
}

// NewSet builds a Normal record.
func NewSet(key, value []byte) Record {
	return Record{Type: TypeNormal, Key: key, Value: value}
}

// NewRemove builds a Remove (tombstone) record; it carries no value.
func NewRemove(key []byte) Record {
	return Record{Type: TypeRemove, Key: key}
}

// Encode frames r into its on-disk byte string. A Go []byte's length is
// always an int, which always fits a uint64 varint in at most
// binary.MaxVarintLen64 bytes, so framing the header can never fail.
func Encode(r Record) []byte {
	keyLen := uint64(len(r.Key))
	valLen := uint64(len(r.Value))

	header := make([]byte, 1+binary.MaxVarintLen64*2)
	header[0] = byte(r.Type)
	n := 1
	n += binary.PutUvarint(header[n:], keyLen)
	n += binary.PutUvarint(header[n:], valLen)
	header = header[:n]

	buf := make([]byte, 0, len(header)+len(r.Key)+len(r.Value)+crcLen)
	buf = append(buf, header...)
	buf = append(buf, r.Key...)
	buf = append(buf, r.Value...)

	sum := crc32.ChecksumIEEE(buf)
	var crcBuf [crcLen]byte
	binary.BigEndian.PutUint32(crcBuf[:], sum)
	buf = append(buf, crcBuf[:]...)

	return buf
}

// DecodeHeader parses a Header out of buf, which must contain at least the
// bytes up through the end of the val_len varint (callers typically supply
// a MaxHeaderLen-sized window read from the segment, possibly short at
// EOF).
//
// A leading type byte of 0 (TypeReserved) reports errEOF: this is the
// zero-type / end-of-stream sentinel recovery uses to stop scanning a
// segment's tail. A key_len of 0 is always an error, per spec §4.1.
func DecodeHeader(buf []byte) (Header, error) {
	if len(buf) == 0 {
		return Header{}, errEOF
	}

	t := Type(buf[0])
	if t == TypeReserved {
		return Header{}, errEOF
	}

	rest := buf[1:]
	keyLen, n1 := binary.Uvarint(rest)
	if n1 <= 0 {
		return Header{}, barrelerrors.NewDecodeError(nil, "truncated key_len varint")
	}

	rest = rest[n1:]
	valLen, n2 := binary.Uvarint(rest)
	if n2 <= 0 {
		return Header{}, barrelerrors.NewDecodeError(nil, "truncated val_len varint")
	}

	if keyLen == 0 {
		return Header{}, barrelerrors.NewKeyError("Decode", nil, "record key_len is zero")
	}

	return Header{
		Type:      t,
		KeyLen:    keyLen,
		ValLen:    valLen,
		headerLen: 1 + n1 + n2,
	}, nil
}

// DecodeFull reconstructs the full Record given its already-parsed header
// and the header+key+value+crc bytes read starting at the record's offset
// (i.e. body must start with the header bytes again, so the CRC can be
// recomputed over exactly what was on disk).
func DecodeFull(h Header, body []byte) (Record, error) {
	want := h.Size()
	if uint64(len(body)) != want {
		return Record{}, barrelerrors.NewDecodeError(nil, "record body short read")
	}

	payloadEnd := uint64(h.headerLen) + h.KeyLen + h.ValLen
	key := body[h.headerLen:int(uint64(h.headerLen)+h.KeyLen)]
	value := body[int(uint64(h.headerLen)+h.KeyLen):payloadEnd]
	storedCRC := binary.BigEndian.Uint32(body[payloadEnd:])

	gotCRC := crc32.ChecksumIEEE(body[:payloadEnd])
	if gotCRC != storedCRC {
		return Record{}, barrelerrors.NewInvalidCRCError(0, 0)
	}
	// The caller (internal/segment) knows which generation/offset this
	// record came from and wraps this error with that context; see
	// segment.Segment.ReadRecord.

	keyCopy := append([]byte(nil), key...)
	valCopy := append([]byte(nil), value...)

	return Record{Type: h.Type, Key: keyCopy, Value: valCopy}, nil
}
