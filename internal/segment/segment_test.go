package segment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barreldb/barreldb/internal/record"
	"github.com/barreldb/barreldb/internal/segment"
	barrelerrors "github.com/barreldb/barreldb/pkg/errors"
)

func TestFileName_and_ParseName(t *testing.T) {
	t.Parallel()

	name := segment.FileName(42)
	assert.Equal(t, "000000042.storage", name)

	gen, ok := segment.ParseName(name)
	require.True(t, ok)
	assert.Equal(t, uint32(42), gen)
}

func TestParseName_rejectsMalformed(t *testing.T) {
	t.Parallel()

	testCases := []string{
		"42.storage",
		"000000042.txt",
		"00000004X.storage",
		"not-a-segment",
		"",
	}

	for _, name := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, ok := segment.ParseName(name)
			assert.False(t, ok)
		})
	}
}

func TestSegment_createOpenWriteRead(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	s, err := segment.Create(dir, 0)
	require.NoError(t, err)
	defer s.Close()

	buf := record.Encode(record.NewSet([]byte("name"), []byte("Bob")))

	preOffset, err := s.Write(buf)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), preOffset)
	assert.Equal(t, uint64(len(buf)), s.Offset())

	rec, err := s.ReadRecord(preOffset)
	require.NoError(t, err)
	assert.Equal(t, []byte("name"), rec.Key)
	assert.Equal(t, []byte("Bob"), rec.Value)

	require.NoError(t, s.Sync())
	require.NoError(t, s.Close())

	reopened, err := segment.Open(dir, segment.FileName(0))
	require.NoError(t, err)
	defer reopened.Close()

	rec, err = reopened.ReadRecord(0)
	require.NoError(t, err)
	assert.Equal(t, []byte("name"), rec.Key)
}

func TestSegment_openRejectsMalformedName(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, err := segment.Open(dir, "not-a-segment")
	require.Error(t, err)
	assert.True(t, barrelerrors.IsInvalidPath(err))
}

func TestSegment_readHeaderEOFAtEndOfFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s, err := segment.Create(dir, 0)
	require.NoError(t, err)
	defer s.Close()

	_, err = s.ReadHeader(0)
	assert.True(t, record.ErrEOF(err))
}

func TestSegment_readRecordDetectsCorruption(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s, err := segment.Create(dir, 0)
	require.NoError(t, err)
	defer s.Close()

	buf := record.Encode(record.NewSet([]byte("name"), []byte("Bob")))
	buf[len(buf)-1] ^= 0xff // corrupt the CRC trailer

	_, err = s.Write(buf)
	require.NoError(t, err)
	require.NoError(t, s.Sync())

	_, err = s.ReadRecord(0)
	require.Error(t, err)
	assert.True(t, barrelerrors.IsInvalidCRC(err))

	var ce *barrelerrors.CodecError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, uint32(0), ce.Gen())
	assert.Equal(t, uint64(0), ce.Offset())
}
