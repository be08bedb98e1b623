package engine_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barreldb/barreldb/internal/engine"
	"github.com/barreldb/barreldb/internal/segment"
	barrelerrors "github.com/barreldb/barreldb/pkg/errors"
	"github.com/barreldb/barreldb/pkg/logger"
	"github.com/barreldb/barreldb/pkg/options"
)

func openTestEngine(t *testing.T, opts options.Options) *engine.Engine {
	t.Helper()
	eng, err := engine.Open(&engine.Config{Options: &opts, Logger: logger.Nop()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = eng.Close() })
	return eng
}

func defaultTestOptions(dir string) options.Options {
	opts := options.NewDefaultOptions()
	opts.DirPath = dir
	return opts
}

func TestEngine_openEmptyDirCreatesGenZero(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	eng := openTestEngine(t, defaultTestOptions(dir))

	_, err := os.Stat(filepath.Join(dir, segment.FileName(0)))
	assert.NoError(t, err)

	_, err = eng.Get([]byte("missing"))
	require.Error(t, err)
	assert.True(t, barrelerrors.IsInvalidKey(err))
}

func TestEngine_setGetDelete(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	eng := openTestEngine(t, defaultTestOptions(dir))

	require.NoError(t, eng.Set([]byte("name"), []byte("Moist von Lipwig")))

	value, err := eng.Get([]byte("name"))
	require.NoError(t, err)
	assert.Equal(t, []byte("Moist von Lipwig"), value)

	require.NoError(t, eng.Delete([]byte("name")))

	_, err = eng.Get([]byte("name"))
	require.Error(t, err)
	assert.True(t, barrelerrors.IsInvalidKey(err))
}

func TestEngine_setRejectsEmptyKey(t *testing.T) {
	t.Parallel()

	eng := openTestEngine(t, defaultTestOptions(t.TempDir()))

	err := eng.Set(nil, []byte("v"))
	require.Error(t, err)
	assert.True(t, barrelerrors.IsInvalidKey(err))
}

func TestEngine_deleteMissingKeyIsError(t *testing.T) {
	t.Parallel()

	eng := openTestEngine(t, defaultTestOptions(t.TempDir()))

	err := eng.Delete([]byte("missing"))
	require.Error(t, err)
	assert.True(t, barrelerrors.IsInvalidKey(err))
}

func TestEngine_reopenReplaysLog(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	opts := defaultTestOptions(dir)

	eng, err := engine.Open(&engine.Config{Options: &opts, Logger: logger.Nop()})
	require.NoError(t, err)

	require.NoError(t, eng.Set([]byte("name"), []byte("Bob")))
	require.NoError(t, eng.Set([]byte("nick"), []byte("B0B")))
	require.NoError(t, eng.Delete([]byte("nick")))
	require.NoError(t, eng.Close())

	reopened, err := engine.Open(&engine.Config{Options: &opts, Logger: logger.Nop()})
	require.NoError(t, err)
	defer reopened.Close()

	value, err := reopened.Get([]byte("name"))
	require.NoError(t, err)
	assert.Equal(t, []byte("Bob"), value)

	_, err = reopened.Get([]byte("nick"))
	require.Error(t, err)
	assert.True(t, barrelerrors.IsInvalidKey(err))
}

func TestEngine_rolloverCreatesNewGeneration(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	opts := defaultTestOptions(dir)
	opts.StorageSize = options.MinStorageSize

	eng := openTestEngine(t, opts)

	for i := 0; i < 2000; i++ {
		require.NoError(t, eng.Set([]byte{byte(i), byte(i >> 8)}, []byte("0123456789")))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Greater(t, len(entries), 1, "rollover should have produced more than one segment file")
}

func TestEngine_rolloverPreservesReadsAcrossGenerations(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	opts := defaultTestOptions(dir)
	opts.StorageSize = options.MinStorageSize

	eng := openTestEngine(t, opts)

	keys := make([][]byte, 0, 500)
	for i := 0; i < 500; i++ {
		k := []byte{byte(i), byte(i >> 8)}
		keys = append(keys, k)
		require.NoError(t, eng.Set(k, []byte("some reasonably sized value to force rollover")))
	}

	for i, k := range keys {
		value, err := eng.Get(k)
		require.NoError(t, err, "key %d", i)
		assert.Equal(t, []byte("some reasonably sized value to force rollover"), value)
	}
}

func TestEngine_corruptionDetectedOnReopen(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	opts := defaultTestOptions(dir)

	eng, err := engine.Open(&engine.Config{Options: &opts, Logger: logger.Nop()})
	require.NoError(t, err)
	require.NoError(t, eng.Set([]byte("name"), []byte("Bob")))
	require.NoError(t, eng.Close())

	path := filepath.Join(dir, segment.FileName(0))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	data[len(data)-1] ^= 0xff
	require.NoError(t, os.WriteFile(path, data, 0o644))

	reopened, err := engine.Open(&engine.Config{Options: &opts, Logger: logger.Nop()})
	require.NoError(t, err)
	defer reopened.Close()

	_, err = reopened.Get([]byte("name"))
	require.Error(t, err)
	assert.True(t, barrelerrors.IsInvalidCRC(err), "recovery doesn't validate CRCs, so the key is indexed; corruption is only caught when Get reads the record back")
}

func TestEngine_foldWalksAscending(t *testing.T) {
	t.Parallel()

	eng := openTestEngine(t, defaultTestOptions(t.TempDir()))

	require.NoError(t, eng.Set([]byte("b"), []byte("2")))
	require.NoError(t, eng.Set([]byte("a"), []byte("1")))
	require.NoError(t, eng.Set([]byte("c"), []byte("3")))

	var keys []string
	require.NoError(t, eng.Fold(func(key, value []byte) bool {
		keys = append(keys, string(key))
		return true
	}))
	assert.Equal(t, []string{"a", "b", "c"}, keys)
}

func TestEngine_foldStopsEarly(t *testing.T) {
	t.Parallel()

	eng := openTestEngine(t, defaultTestOptions(t.TempDir()))
	require.NoError(t, eng.Set([]byte("a"), []byte("1")))
	require.NoError(t, eng.Set([]byte("b"), []byte("2")))

	var visited int
	require.NoError(t, eng.Fold(func(key, value []byte) bool {
		visited++
		return false
	}))
	assert.Equal(t, 1, visited)
}

func TestEngine_concurrentReadersAndWriter(t *testing.T) {
	t.Parallel()

	eng := openTestEngine(t, defaultTestOptions(t.TempDir()))
	require.NoError(t, eng.Set([]byte("name"), []byte("Bob")))

	var wg sync.WaitGroup
	for r := 0; r < 8; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				_, _ = eng.Get([]byte("name"))
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			_ = eng.Set([]byte("counter"), []byte{byte(i)})
		}
	}()

	wg.Wait()
}

func TestEngine_closeIsIdempotentError(t *testing.T) {
	t.Parallel()

	opts := defaultTestOptions(t.TempDir())
	eng, err := engine.Open(&engine.Config{Options: &opts, Logger: logger.Nop()})
	require.NoError(t, err)

	require.NoError(t, eng.Close())
	assert.ErrorIs(t, eng.Close(), engine.ErrClosed)
}
