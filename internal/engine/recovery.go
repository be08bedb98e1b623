package engine

import (
	"github.com/barreldb/barreldb/internal/record"
	"github.com/barreldb/barreldb/internal/segment"
)

// recoverSegment replays every record in s header-by-header, applying each
// to the index in log order, and leaves s's tracked write offset at the
// first byte past the last valid record (spec §4.5 steps 3-6).
//
// A Normal record's key is put into the index at s's (gen, offset);
// a Remove tombstone deletes the key. The scan stops, without error, at
// the first record.ErrEOF (a zero-type byte or a genuine end of file) or
// at a reserved type byte recovery doesn't recognize — both mark "nothing
// further here was ever durably committed".
func (e *Engine) recoverSegment(s *segment.Segment) error {
	var offset uint64

	for {
		h, err := s.ReadHeader(offset)
		if err != nil {
			if record.ErrEOF(err) {
				break
			}
			return err
		}

		switch h.Type {
		case record.TypeNormal, record.TypeRemove:
			key, err := s.ReadKey(offset, h)
			if err != nil {
				return err
			}
			if h.Type == record.TypeNormal {
				e.idx.Put(key, segment.Position{Gen: s.Gen(), Offset: offset})
			} else {
				e.idx.Delete(key)
			}
		default:
			// A reserved/unrecognized type mid-scan means the rest of the
			// segment was never a complete write; stop here.
			s.SetOffset(offset)
			return nil
		}

		offset += h.Size()
	}

	s.SetOffset(offset)
	return nil
}
