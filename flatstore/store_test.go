package flatstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateSetGetInt(t *testing.T) {
	s := Create(16)
	s.SetHeader(42, 7, 300)
	s.SetInt(StartPointer, -5)
	s.SetInt(StartPointer+3, 99)

	magic, checksum, res := s.Header()
	require.EqualValues(t, 42, magic)
	require.EqualValues(t, 7, checksum)
	require.EqualValues(t, 300, res)
	require.EqualValues(t, -5, s.GetInt(StartPointer))
	require.EqualValues(t, 99, s.GetInt(StartPointer+3))
}

func TestLoadMissingFileReturnsNotFound(t *testing.T) {
	s, found, err := Load(filepath.Join(t.TempDir(), "does-not-exist.idx"))
	require.NoError(t, err)
	require.False(t, found)
	require.Nil(t, s)
}

func TestFlushLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.locidx")

	s := Create(8)
	s.SetHeader(1, 2, 300)
	s.SetInt(StartPointer, -10)
	s.SetInt(StartPointer+1, 500)
	require.NoError(t, s.Flush(path))

	loaded, found, err := Load(path)
	require.NoError(t, err)
	require.True(t, found)

	magic, checksum, res := loaded.Header()
	require.EqualValues(t, 1, magic)
	require.EqualValues(t, 2, checksum)
	require.EqualValues(t, 300, res)
	require.EqualValues(t, -10, loaded.GetInt(StartPointer))
	require.EqualValues(t, 500, loaded.GetInt(StartPointer+1))

	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestCloseThenFlushFails(t *testing.T) {
	s := Create(8)
	require.NoError(t, s.Close())
	err := s.Flush(filepath.Join(t.TempDir(), "x.idx"))
	require.ErrorIs(t, err, ErrClosed)
}
