package fio_test

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barreldb/barreldb/internal/fio"
)

func TestFile_appendAndReadAt(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "segment")
	f, err := fio.Open(path)
	require.NoError(t, err)
	defer f.Close()

	n, err := f.Append([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	n, err = f.Append([]byte(" world"))
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	buf := make([]byte, 5)
	n, err = f.ReadAt(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(buf[:n]))

	buf = make([]byte, 6)
	n, err = f.ReadAt(buf, 5)
	require.NoError(t, err)
	assert.Equal(t, " world", string(buf[:n]))
}

func TestFile_readAtPastEnd(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "segment")
	f, err := fio.Open(path)
	require.NoError(t, err)
	defer f.Close()

	_, err = f.Append([]byte("hi"))
	require.NoError(t, err)

	buf := make([]byte, 10)
	n, err := f.ReadAt(buf, 0)
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, 2, n)
}

func TestFile_concurrentAppend(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "segment")
	f, err := fio.Open(path)
	require.NoError(t, err)
	defer f.Close()

	const writers = 8
	done := make(chan struct{}, writers)
	for i := 0; i < writers; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			_, _ = f.Append([]byte("x"))
		}()
	}
	for i := 0; i < writers; i++ {
		<-done
	}

	require.NoError(t, f.Sync())

	buf := make([]byte, writers)
	n, err := f.ReadAt(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, writers, n)
}

func TestFile_pathAndClose(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "segment")
	f, err := fio.Open(path)
	require.NoError(t, err)

	assert.Equal(t, path, f.Path())
	assert.NoError(t, f.Close())
}
